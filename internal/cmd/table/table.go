// Package table provides common table formatting utilities for CLI commands.
package table

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 1 || len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// Hash renders a content hash for table cells. Long hashes keep their
// prefix and tail so neighbouring rows stay comparable.
func Hash(h string) string {
	const head, tail = 10, 6
	runes := []rune(h)
	if len(runes) <= head+tail+1 {
		return h
	}
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}
