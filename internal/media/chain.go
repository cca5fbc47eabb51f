// Package media resolves image sources for portfolio cards and reads image
// dimensions for local assets.
package media

import "strings"

// Chain is the ordered list of image sources tried for one card: explicit
// override, data-provided path, per-title fallback, shared placeholder.
// Empty and repeated sources are dropped.
type Chain struct {
	sources []string
}

// NewChain builds a chain from the candidate sources in priority order.
func NewChain(override, dataPath, fallback, placeholder string) Chain {
	var c Chain
	seen := make(map[string]struct{}, 4)
	for _, src := range []string{override, dataPath, fallback, placeholder} {
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}
		c.sources = append(c.sources, src)
	}
	return c
}

// Len returns the number of distinct sources.
func (c Chain) Len() int {
	return len(c.sources)
}

// Empty reports whether no source resolved.
func (c Chain) Empty() bool {
	return len(c.sources) == 0
}

// Primary returns the first source to try.
func (c Chain) Primary() string {
	return c.At(0)
}

// At returns the source to show after the given number of load failures.
// Failures past the end of the chain stay on the last source.
func (c Chain) At(failures int) string {
	if len(c.sources) == 0 {
		return ""
	}
	if failures < 0 {
		failures = 0
	}
	if failures >= len(c.sources) {
		failures = len(c.sources) - 1
	}
	return c.sources[failures]
}

// Sources returns a copy of the chain.
func (c Chain) Sources() []string {
	out := make([]string, len(c.sources))
	copy(out, c.sources)
	return out
}
