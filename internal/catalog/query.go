// Package catalog coordinates catalog browsing state: category and
// subcategory filters, server-side pagination, and the ordering guarantee
// between overlapping fetches.
package catalog

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"github.com/colorindo-sonhos/storefront-client/internal/api"
	"github.com/colorindo-sonhos/storefront-client/internal/domain/product"
)

// AllCategories is the category value meaning "no filter".
const AllCategories = "Todos"

// PageSizes are the accepted page sizes.
var PageSizes = []int{10, 20, 50}

// DefaultPageSize is used when the caller does not pick one.
const DefaultPageSize = 20

// ErrInvalidPageSize is returned for page sizes outside PageSizes.
var ErrInvalidPageSize = errors.New("page size must be 10, 20 or 50")

// State is the query lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher is the read side of the catalog service consumed by Query.
// *api.Client satisfies it.
type Fetcher interface {
	ListProducts(ctx context.Context, params api.ListParams) (product.ListResult, error)
}

// Snapshot is a consistent view of the query state. Items and Total always
// come from the same response; a Failed snapshot keeps the last known-good
// items alongside the error.
type Snapshot struct {
	State       State
	Items       []product.Product
	Total       int
	Page        int
	PageSize    int
	Category    string
	Subcategory string
	Err         error
}

// TotalPages derives the page count, at least 1 even for an empty catalog.
func (s Snapshot) TotalPages() int {
	if s.Total <= 0 {
		return 1
	}
	pages := (s.Total + s.PageSize - 1) / s.PageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// PageStrip returns the bounded page-number window for this snapshot.
func (s Snapshot) PageStrip() []int {
	return PageWindow(s.Page, s.TotalPages(), DefaultDelta)
}

// Query is the catalog state machine. Every filter, page, or page-size
// change dispatches a fresh fetch tagged with a generation number; a fetch
// result is applied only while its generation is still current, so rapid
// successive changes can never let an older response overwrite a newer one.
//
// There is no in-flight cancellation: superseded fetches run to completion
// and are discarded at apply time.
type Query struct {
	fetcher  Fetcher
	onUpdate func(Snapshot)

	mu          sync.Mutex
	generation  uint64
	state       State
	items       []product.Product
	total       int
	page        int
	pageSize    int
	category    string
	subcategory string
	err         error
}

// QueryOption configures a Query.
type QueryOption func(*Query)

// WithPageSize sets the initial page size. Invalid sizes are ignored in
// favour of the default.
func WithPageSize(n int) QueryOption {
	return func(q *Query) {
		if validPageSize(n) {
			q.pageSize = n
		}
	}
}

// WithOnUpdate registers a callback invoked after every applied result,
// outside the query's lock.
func WithOnUpdate(fn func(Snapshot)) QueryOption {
	return func(q *Query) { q.onUpdate = fn }
}

// NewQuery creates an idle Query showing all categories, page 1.
func NewQuery(fetcher Fetcher, opts ...QueryOption) *Query {
	q := &Query{
		fetcher:  fetcher,
		state:    StateIdle,
		page:     1,
		pageSize: DefaultPageSize,
		category: AllCategories,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Snapshot returns the current visible state.
func (q *Query) Snapshot() Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

func (q *Query) snapshotLocked() Snapshot {
	return Snapshot{
		State:       q.state,
		Items:       q.items,
		Total:       q.total,
		Page:        q.page,
		PageSize:    q.pageSize,
		Category:    q.category,
		Subcategory: q.subcategory,
		Err:         q.err,
	}
}

// SetCategory switches the category filter, clearing the subcategory and
// resetting to page 1. Setting the current category again is a no-op.
func (q *Query) SetCategory(ctx context.Context, category string) {
	if category == "" {
		category = AllCategories
	}
	q.mu.Lock()
	if category == q.category {
		q.mu.Unlock()
		return
	}
	q.category = category
	q.subcategory = ""
	q.page = 1
	q.dispatchLocked(ctx)
	q.mu.Unlock()
}

// SetSubcategory switches the subcategory filter within the current
// category, resetting to page 1.
func (q *Query) SetSubcategory(ctx context.Context, subcategory string) {
	q.mu.Lock()
	if subcategory == q.subcategory {
		q.mu.Unlock()
		return
	}
	q.subcategory = subcategory
	q.page = 1
	q.dispatchLocked(ctx)
	q.mu.Unlock()
}

// SetPage moves to the given page, clamped to at least 1.
func (q *Query) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	q.mu.Lock()
	if page == q.page {
		q.mu.Unlock()
		return
	}
	q.page = page
	q.dispatchLocked(ctx)
	q.mu.Unlock()
}

// SetPageSize changes the page size, resetting to page 1.
func (q *Query) SetPageSize(ctx context.Context, size int) error {
	if !validPageSize(size) {
		return ErrInvalidPageSize
	}
	q.mu.Lock()
	if size == q.pageSize {
		q.mu.Unlock()
		return nil
	}
	q.pageSize = size
	q.page = 1
	q.dispatchLocked(ctx)
	q.mu.Unlock()
	return nil
}

// Refresh re-fetches the current page without changing any parameter.
func (q *Query) Refresh(ctx context.Context) {
	q.mu.Lock()
	q.dispatchLocked(ctx)
	q.mu.Unlock()
}

// dispatchLocked starts a fetch for the current parameters. Caller holds mu.
func (q *Query) dispatchLocked(ctx context.Context) {
	q.generation++
	gen := q.generation
	q.state = StateLoading

	params := api.ListParams{
		Page:        q.page,
		MaxResults:  q.pageSize,
		Subcategory: q.subcategory,
	}
	if q.category != AllCategories {
		params.Category = q.category
	}

	go func() {
		res, err := q.fetcher.ListProducts(ctx, params)
		q.apply(gen, res, err)
	}()
}

// apply installs a fetch result if its generation is still current; stale
// results are dropped silently.
func (q *Query) apply(gen uint64, res product.ListResult, err error) {
	q.mu.Lock()
	if gen != q.generation {
		q.mu.Unlock()
		return
	}

	if err != nil {
		// Keep the last known-good items visible alongside the error.
		q.state = StateFailed
		q.err = err
	} else {
		q.state = StateReady
		q.err = nil
		q.items = res.Products
		q.total = res.Total
	}
	snap := q.snapshotLocked()
	q.mu.Unlock()

	if q.onUpdate != nil {
		q.onUpdate(snap)
	}
}

func validPageSize(n int) bool {
	for _, s := range PageSizes {
		if n == s {
			return true
		}
	}
	return false
}
