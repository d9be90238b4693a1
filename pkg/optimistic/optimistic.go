// Package optimistic implements the optimistic-mutation pattern: apply a
// mutation's expected effect to local state immediately, then commit it when
// the authoritative operation succeeds or replay it in reverse when it
// fails. The pattern is generic over the state it captures, so any mutating
// action can reuse it, not only favorites.
package optimistic

// Mutation captures the previous value of a piece of local state so an
// eagerly applied change can be rolled back exactly.
//
// A Mutation is not safe for concurrent use; callers hold their own lock
// around Apply and Rollback.
type Mutation[S any] struct {
	load    func() S
	store   func(S)
	prev    S
	applied bool
}

// Capture builds a Mutation over state accessed through load and store.
func Capture[S any](load func() S, store func(S)) *Mutation[S] {
	return &Mutation[S]{load: load, store: store}
}

// Apply records the current value and writes next in its place.
func (m *Mutation[S]) Apply(next S) {
	m.prev = m.load()
	m.store(next)
	m.applied = true
}

// Rollback restores the value captured by Apply. Rolling back a mutation
// that was never applied, or twice, is a no-op, so failure paths can call it
// unconditionally.
func (m *Mutation[S]) Rollback() {
	if !m.applied {
		return
	}
	m.store(m.prev)
	m.applied = false
}

// Commit marks the mutation as settled; a later Rollback becomes a no-op.
func (m *Mutation[S]) Commit() {
	m.applied = false
}
