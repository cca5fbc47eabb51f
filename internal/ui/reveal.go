package ui

// DefaultRevealThreshold is the visible fraction used by most sections.
const DefaultRevealThreshold = 0.2

// Handle is a rendered element bound to a stable item key. A nil *Handle
// stands for an element that has not been mounted yet.
type Handle[K comparable] struct {
	Key K
}

// NewHandle returns a handle for key.
func NewHandle[K comparable](key K) *Handle[K] {
	return &Handle[K]{Key: key}
}

// RevealController tracks which observed items crossed the visibility
// threshold. It is not safe for concurrent use; callers serialize events.
type RevealController[K comparable] struct {
	threshold   float64
	onReveal    func(K)
	observed    map[K]struct{}
	revealed    map[K]struct{}
	order       []K
	unsupported bool
	torndown    bool
}

// NewRevealController builds a controller. onReveal may be nil; when set it
// runs once per key, the first time that key is revealed.
func NewRevealController[K comparable](threshold float64, onReveal func(K)) *RevealController[K] {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultRevealThreshold
	}
	return &RevealController[K]{
		threshold: threshold,
		onReveal:  onReveal,
		observed:  make(map[K]struct{}),
		revealed:  make(map[K]struct{}),
	}
}

// Threshold returns the visible fraction needed to reveal an item.
func (r *RevealController[K]) Threshold() float64 {
	return r.threshold
}

// SetSupported records whether the client can report intersections.
// Without support every item is considered revealed.
func (r *RevealController[K]) SetSupported(supported bool) {
	r.unsupported = !supported
}

// Supported reports whether intersection events are expected.
func (r *RevealController[K]) Supported() bool {
	return !r.unsupported
}

// Observe starts observing the given handles. Nil handles are skipped.
func (r *RevealController[K]) Observe(handles ...*Handle[K]) {
	if r.torndown || r.unsupported {
		return
	}
	for _, h := range handles {
		if h == nil {
			continue
		}
		r.observed[h.Key] = struct{}{}
	}
}

// Unobserve stops observing keys. Items already revealed stay revealed.
func (r *RevealController[K]) Unobserve(keys ...K) {
	for _, key := range keys {
		delete(r.observed, key)
	}
}

// Sync makes the observed set equal to the given handles: keys no longer
// rendered are unobserved and new ones are observed.
func (r *RevealController[K]) Sync(handles ...*Handle[K]) {
	if r.torndown {
		return
	}
	keep := make(map[K]struct{}, len(handles))
	for _, h := range handles {
		if h != nil {
			keep[h.Key] = struct{}{}
		}
	}
	for key := range r.observed {
		if _, ok := keep[key]; !ok {
			delete(r.observed, key)
		}
	}
	r.Observe(handles...)
}

// Observing reports whether key is currently observed.
func (r *RevealController[K]) Observing(key K) bool {
	_, ok := r.observed[key]
	return ok
}

// Intersect handles an intersection event for key at the given visible
// ratio. It returns true only when the event revealed the item.
func (r *RevealController[K]) Intersect(key K, ratio float64) bool {
	if r.torndown || r.unsupported {
		return false
	}
	if _, ok := r.observed[key]; !ok {
		return false
	}
	if ratio < r.threshold {
		return false
	}
	if _, done := r.revealed[key]; done {
		return false
	}
	r.revealed[key] = struct{}{}
	r.order = append(r.order, key)
	if r.onReveal != nil {
		r.onReveal(key)
	}
	return true
}

// Revealed reports whether key has been revealed.
func (r *RevealController[K]) Revealed(key K) bool {
	if r.unsupported {
		return true
	}
	_, ok := r.revealed[key]
	return ok
}

// RevealedKeys returns revealed keys in reveal order.
func (r *RevealController[K]) RevealedKeys() []K {
	out := make([]K, len(r.order))
	copy(out, r.order)
	return out
}

// Teardown stops all observation, drops the callback and resets reveal
// state. The controller ignores every later event.
func (r *RevealController[K]) Teardown() {
	r.torndown = true
	r.onReveal = nil
	r.observed = make(map[K]struct{})
	r.revealed = make(map[K]struct{})
	r.order = nil
}

// TornDown reports whether Teardown was called.
func (r *RevealController[K]) TornDown() bool {
	return r.torndown
}
