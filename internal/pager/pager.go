// Package pager implements a one-page-at-a-time list controller: it fetches
// a single page of a collection, tracks position and total, and guards
// forward/backward navigation at the boundaries.
package pager

import "context"

// DefaultPageSize is the number of entries fetched per page.
const DefaultPageSize = 3

// Entry is one row of a paginated listing.
type Entry struct {
	ID          int64
	DisplayName string
}

// Page is one fetched slice of a collection plus its position metadata.
// It is replaced whole on every fetch, never merged.
type Page struct {
	Items      []Entry
	Index      int
	Size       int
	TotalPages int
}

// Fetch retrieves one page of the collection.
type Fetch func(ctx context.Context, index, size int) (Page, error)

// Result carries a finished fetch back to Finish. The generation stamp lets
// the controller drop responses that a newer request has superseded.
type Result struct {
	gen  int
	Page Page
	Err  error
}

// Controller fetches one page at a time. Start and Finish must be called
// from the same goroutine (the UI loop); only the returned fetch closure
// runs elsewhere.
type Controller struct {
	fetch   Fetch
	size    int
	page    Page
	pending bool
	err     error
	gen     int
}

// New returns a controller over fetch. A non-positive size falls back to
// DefaultPageSize.
func New(fetch Fetch, size int) *Controller {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Controller{fetch: fetch, size: size}
}

// Start begins loading the page at index and returns the closure that
// performs the fetch. ok is false for a negative index. The closure's
// Result must be handed back to Finish whatever the outcome, so the
// controller always leaves the pending state.
func (c *Controller) Start(index int) (run func(context.Context) Result, ok bool) {
	if index < 0 {
		return nil, false
	}
	c.pending = true
	c.gen++
	gen := c.gen
	fetch, size := c.fetch, c.size
	return func(ctx context.Context) Result {
		p, err := fetch(ctx, index, size)
		return Result{gen: gen, Page: p, Err: err}
	}, true
}

// Finish applies a completed fetch and reports whether the page changed.
// Results superseded by a newer Start are dropped. A failed fetch leaves
// the previous page untouched and records a retryable error.
func (c *Controller) Finish(r Result) bool {
	if r.gen != c.gen {
		return false
	}
	c.pending = false
	if r.Err != nil {
		c.err = r.Err
		return false
	}
	c.err = nil
	c.page = r.Page
	return true
}

// Next starts loading the following page. No-op on the last page.
func (c *Controller) Next() (func(context.Context) Result, bool) {
	if !c.CanNext() {
		return nil, false
	}
	return c.Start(c.page.Index + 1)
}

// Previous starts loading the preceding page. No-op on the first page.
func (c *Controller) Previous() (func(context.Context) Result, bool) {
	if !c.CanPrevious() {
		return nil, false
	}
	return c.Start(c.page.Index - 1)
}

// CanNext reports whether a following page exists.
func (c *Controller) CanNext() bool {
	return c.page.Index+1 < c.page.TotalPages
}

// CanPrevious reports whether a preceding page exists.
func (c *Controller) CanPrevious() bool {
	return c.page.Index > 0
}

// Page returns the current page.
func (c *Controller) Page() Page {
	return c.page
}

// Pending reports whether a fetch is in flight.
func (c *Controller) Pending() bool {
	return c.pending
}

// Err returns the error from the most recent failed fetch, cleared by the
// next successful one.
func (c *Controller) Err() error {
	return c.err
}
