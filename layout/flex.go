package layout

// FlexChild is a measured child entering the solver.
type FlexChild struct {
	// Size is the child's measured size.
	Size Size
	// Flex is the proportional weight. Zero means the child keeps its
	// measured main-axis size.
	Flex float32
}

// Fixed reports whether the child keeps its measured main-axis size.
func (c FlexChild) Fixed() bool {
	return c.Flex <= 0
}

// Solve sizes and positions children along axis inside a container whose
// main-axis length is available. Rects are relative to the container origin,
// returned in input order, and appended to out (which may be nil).
//
// Fixed children keep their measured size on both axes. Flex children share
// the space left after fixed children, gaps and padding in proportion to
// their weights, and take the largest cross size among the fixed children.
func Solve(children []FlexChild, axis Axis, gap, padding, available float32, out []Rect) []Rect {
	n := len(children)
	if n == 0 {
		return out
	}

	used := gap*float32(n-1) + 2*padding
	var flexTotal, maxCross float32
	for _, c := range children {
		if c.Fixed() {
			used += c.Size.Main(axis)
			maxCross = max(maxCross, c.Size.Cross(axis))
		} else {
			flexTotal += c.Flex
		}
	}

	remaining := max(available-used, 0)
	var unit float32
	if flexTotal > 0 {
		unit = remaining / flexTotal
	}

	pos := padding
	for _, c := range children {
		var main, cross float32
		if flexTotal > 0 && !c.Fixed() {
			main = c.Flex * unit
			cross = maxCross
		} else {
			main = c.Size.Main(axis)
			cross = c.Size.Cross(axis)
		}

		var r Rect
		if axis == Horizontal {
			r = Rect{X: pos, Y: padding, W: main, H: cross}
		} else {
			r = Rect{X: padding, Y: pos, W: cross, H: main}
		}
		out = append(out, r)
		pos += main + gap
	}
	return out
}

// Natural returns the size a container wants for children laid along axis:
// the sum of main sizes plus gaps and padding, by the widest cross size plus
// padding. Flex children contribute their measured size.
func Natural(children []FlexChild, axis Axis, gap, padding float32) Size {
	var main, cross float32
	for i, c := range children {
		if i > 0 {
			main += gap
		}
		main += c.Size.Main(axis)
		cross = max(cross, c.Size.Cross(axis))
	}
	return SizeOn(axis, main+2*padding, cross+2*padding)
}
