package textedit

import "sort"

// MeasureFunc returns the x position, in pixels, of byte offset n in a piece
// of text. It must be non-decreasing in n.
type MeasureFunc func(n int) float32

// OffsetAtX returns the grapheme boundary in text whose x position is closest
// to x. Boundaries are binary-searched by measured position, then the two
// nearest candidates are compared.
func OffsetAtX(text string, x float32, measure MeasureFunc) int {
	if text == "" || x <= 0 {
		return 0
	}
	bounds := Boundaries(make([]int, 0, len(text)+1), text)

	i := sort.Search(len(bounds), func(i int) bool {
		return measure(bounds[i]) >= x
	})
	if i >= len(bounds) {
		return len(text)
	}
	if i == 0 {
		return 0
	}
	after := measure(bounds[i]) - x
	before := x - measure(bounds[i-1])
	if before <= after {
		return bounds[i-1]
	}
	return bounds[i]
}
