package ui

// Modal holds at most one selected item. Opening while open replaces the
// selection; overlays never stack.
type Modal[T any] struct {
	selected T
	open     bool
}

// Open selects item, replacing any previous selection.
func (m *Modal[T]) Open(item T) {
	m.selected = item
	m.open = true
}

// Close clears the selection.
func (m *Modal[T]) Close() {
	var zero T
	m.selected = zero
	m.open = false
}

// IsOpen reports whether an item is selected.
func (m *Modal[T]) IsOpen() bool {
	return m.open
}

// Selected returns the selected item and whether there is one.
func (m *Modal[T]) Selected() (T, bool) {
	return m.selected, m.open
}
