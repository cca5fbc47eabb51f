package ui

import "time"

// DefaultCooldown is the pause after a page transition during which further
// page changes are ignored.
const DefaultCooldown = 500 * time.Millisecond

// PagerOptions configures a Pager.
type PagerOptions struct {
	PageSize     int           // items per page in desktop mode
	InitialCount int           // items shown in compact mode before "show all"
	Cooldown     time.Duration // zero means DefaultCooldown, negative disables it
	Now          func() time.Time
}

// Pager selects the visible slice of an ordered collection. Desktop mode
// pages through fixed-size pages; compact mode shows an initial slice with
// a show-all toggle. Pager is not safe for concurrent use.
type Pager[T any] struct {
	items          []T
	pageSize       int
	initialCount   int
	cooldown       time.Duration
	now            func() time.Time
	compact        bool
	page           int
	showAll        bool
	animatingUntil time.Time
}

// NewPager creates a desktop-mode pager positioned on the first page.
// Non-positive sizes fall back to the whole collection.
func NewPager[T any](items []T, opts PagerOptions) *Pager[T] {
	p := &Pager[T]{
		items:        items,
		pageSize:     opts.PageSize,
		initialCount: opts.InitialCount,
		cooldown:     opts.Cooldown,
		now:          opts.Now,
	}
	if p.cooldown == 0 {
		p.cooldown = DefaultCooldown
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Len returns the number of items in the collection.
func (p *Pager[T]) Len() int {
	return len(p.items)
}

// PageSize returns the effective desktop page size.
func (p *Pager[T]) PageSize() int {
	if p.pageSize <= 0 {
		if len(p.items) == 0 {
			return 1
		}
		return len(p.items)
	}
	return p.pageSize
}

// InitialCount returns the effective compact-mode initial count.
func (p *Pager[T]) InitialCount() int {
	if p.initialCount <= 0 {
		return len(p.items)
	}
	return p.initialCount
}

// TotalPages returns ceil(N/P), which is 0 for an empty collection.
func (p *Pager[T]) TotalPages() int {
	n := len(p.items)
	if n == 0 {
		return 0
	}
	size := p.PageSize()
	return (n + size - 1) / size
}

// Page returns the zero-based current page index.
func (p *Pager[T]) Page() int {
	return p.page
}

// Compact reports whether the pager is in compact mode.
func (p *Pager[T]) Compact() bool {
	return p.compact
}

// ShowAll reports whether the compact show-all toggle is active.
func (p *Pager[T]) ShowAll() bool {
	return p.showAll
}

// Visible returns the items that should be rendered. The result is always a
// contiguous slice of the original order.
func (p *Pager[T]) Visible() []T {
	n := len(p.items)
	if n == 0 {
		return nil
	}
	if p.compact {
		if p.showAll {
			return p.items
		}
		return p.items[:min(p.InitialCount(), n)]
	}
	size := p.PageSize()
	start := p.page * size
	if start >= n {
		return nil
	}
	return p.items[start:min(start+size, n)]
}

// Offset returns the index of the first visible item in the collection.
func (p *Pager[T]) Offset() int {
	if p.compact {
		return 0
	}
	return p.page * p.PageSize()
}

// Paged reports whether desktop mode has more than one page.
func (p *Pager[T]) Paged() bool {
	return p.TotalPages() > 1
}

// HasPrev reports whether PrevPage can move. It is false in compact mode.
func (p *Pager[T]) HasPrev() bool {
	return !p.compact && p.page > 0
}

// HasNext reports whether NextPage can move. It is false in compact mode.
func (p *Pager[T]) HasNext() bool {
	return !p.compact && p.page+1 < p.TotalPages()
}

// CanToggle reports whether the compact show-all toggle changes anything.
func (p *Pager[T]) CanToggle() bool {
	return p.compact && len(p.items) > p.InitialCount()
}

// IsAnimating reports whether a page transition cooldown is active.
func (p *Pager[T]) IsAnimating() bool {
	if p.animatingUntil.IsZero() {
		return false
	}
	return p.now().Before(p.animatingUntil)
}

// NextPage advances one page. It returns false when at the last page, in
// compact mode, or during the cooldown.
func (p *Pager[T]) NextPage() bool {
	if !p.HasNext() || p.IsAnimating() {
		return false
	}
	p.page++
	p.startCooldown()
	return true
}

// PrevPage moves back one page with the same guards as NextPage.
func (p *Pager[T]) PrevPage() bool {
	if !p.HasPrev() || p.IsAnimating() {
		return false
	}
	p.page--
	p.startCooldown()
	return true
}

// ToggleShowAll flips the compact show-all flag and returns its new value.
func (p *Pager[T]) ToggleShowAll() bool {
	p.showAll = !p.showAll
	return p.showAll
}

// SetCompact switches layout mode. A real mode change resets the page to 0
// and show-all to false; setting the current mode again changes nothing.
// It returns true when the mode changed.
func (p *Pager[T]) SetCompact(compact bool) bool {
	if p.compact == compact {
		return false
	}
	p.compact = compact
	p.reset()
	return true
}

// SetItems replaces the collection and resets paging state.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
	p.reset()
}

// Close clears the cooldown so nothing outlives the owning view.
func (p *Pager[T]) Close() {
	p.animatingUntil = time.Time{}
}

func (p *Pager[T]) reset() {
	p.page = 0
	p.showAll = false
	p.animatingUntil = time.Time{}
}

func (p *Pager[T]) startCooldown() {
	if p.cooldown <= 0 {
		return
	}
	p.animatingUntil = p.now().Add(p.cooldown)
}
