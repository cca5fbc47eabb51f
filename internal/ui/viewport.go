// Package ui holds the view-state primitives shared by every portfolio
// section: the reveal controller, the paged collection view, the modal
// overlay and the viewport mode signal.
package ui

// DefaultBreakpoint is the viewport width, in CSS pixels, below which the
// compact layout is used.
const DefaultBreakpoint = 768

// Viewport turns a reported viewport width into a layout mode.
type Viewport struct {
	Breakpoint int
}

// IsCompact reports whether width selects the compact layout. Unknown
// (non-positive) widths are treated as desktop.
func (v Viewport) IsCompact(width int) bool {
	if width <= 0 {
		return false
	}
	bp := v.Breakpoint
	if bp <= 0 {
		bp = DefaultBreakpoint
	}
	return width < bp
}
