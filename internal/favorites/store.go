// Package favorites keeps the session's favorited-product set in sync with
// the service, applying toggles optimistically so the UI reflects intent
// with zero latency.
package favorites

import (
	"context"
	"sort"
	"sync"

	"github.com/go-faster/errors"

	"github.com/colorindo-sonhos/storefront-client/internal/credential"
	"github.com/colorindo-sonhos/storefront-client/internal/domain/product"
	"github.com/colorindo-sonhos/storefront-client/pkg/optimistic"
)

// Action is the settled outcome of a toggle.
type Action int

const (
	ActionAdded Action = iota + 1
	ActionRemoved
)

func (a Action) String() string {
	switch a {
	case ActionAdded:
		return "added"
	case ActionRemoved:
		return "removed"
	default:
		return "none"
	}
}

var (
	// ErrAuthRequired is returned when an unauthenticated caller tries to
	// toggle; no network call is made.
	ErrAuthRequired = errors.New("authentication required")

	// ErrTogglePending is returned when a toggle for the same product is
	// still in flight. The second request is ignored, never queued, so two
	// opposite in-flight toggles can never race.
	ErrTogglePending = errors.New("toggle already in flight for this product")
)

// Client is the favorites surface of the API consumed by Store.
// *api.Client satisfies it.
type Client interface {
	ListFavorites(ctx context.Context) ([]product.Product, error)
	AddFavorite(ctx context.Context, productID string) error
	RemoveFavorite(ctx context.Context, productID string) error
	ClearFavorites(ctx context.Context) error
}

// Store is the session-owned favorite set. The member set is mutated only
// through Toggle (and the confirmed Clear); readers share it read-only.
type Store struct {
	client Client
	creds  credential.Store

	mu      sync.Mutex
	members map[string]struct{}
	pending map[string]struct{}
}

// New creates an empty Store. Call Load to hydrate it from the service.
func New(client Client, creds credential.Store) *Store {
	return &Store{
		client:  client,
		creds:   creds,
		members: make(map[string]struct{}),
		pending: make(map[string]struct{}),
	}
}

// Load replaces the member set with the server's current favorites.
func (s *Store) Load(ctx context.Context) error {
	items, err := s.client.ListFavorites(ctx)
	if err != nil {
		return errors.Wrap(err, "load favorites")
	}
	members := make(map[string]struct{}, len(items))
	for _, p := range items {
		members[p.ID] = struct{}{}
	}
	s.mu.Lock()
	s.members = members
	s.mu.Unlock()
	return nil
}

// IsFavorite reports membership of the given product.
func (s *Store) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[productID]
	return ok
}

// IDs returns the favorited product identifiers, sorted.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.members))
	for id := range s.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the size of the local member set.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

// Toggle flips the favorite state of a product: the local set is updated
// immediately, then the server call settles it. On failure the optimistic
// flip is rolled back and the set ends up exactly as before.
func (s *Store) Toggle(ctx context.Context, productID string) (Action, error) {
	if _, ok := s.creds.Get(); !ok {
		return 0, ErrAuthRequired
	}

	s.mu.Lock()
	if _, inFlight := s.pending[productID]; inFlight {
		s.mu.Unlock()
		return 0, ErrTogglePending
	}
	s.pending[productID] = struct{}{}

	mut := optimistic.Capture(
		func() bool { _, ok := s.members[productID]; return ok },
		func(member bool) {
			if member {
				s.members[productID] = struct{}{}
			} else {
				delete(s.members, productID)
			}
		},
	)
	_, wasMember := s.members[productID]
	mut.Apply(!wasMember)
	s.mu.Unlock()

	var (
		action Action
		err    error
	)
	if wasMember {
		action = ActionRemoved
		err = s.client.RemoveFavorite(ctx, productID)
	} else {
		action = ActionAdded
		err = s.client.AddFavorite(ctx, productID)
	}

	s.mu.Lock()
	delete(s.pending, productID)
	if err != nil {
		mut.Rollback()
		s.mu.Unlock()
		return 0, err
	}
	mut.Commit()
	s.mu.Unlock()
	return action, nil
}

// Clear removes every favorite. The local set is emptied only after the
// server confirms, never optimistically.
func (s *Store) Clear(ctx context.Context) error {
	if _, ok := s.creds.Get(); !ok {
		return ErrAuthRequired
	}
	if err := s.client.ClearFavorites(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.members = make(map[string]struct{})
	s.mu.Unlock()
	return nil
}
