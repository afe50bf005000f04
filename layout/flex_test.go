package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_FillsAvailableLength(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 500; iter++ {
		axis := Axis(rng.Intn(2))
		gap := float32(rng.Intn(10))
		padding := float32(rng.Intn(12))
		n := 1 + rng.Intn(8)

		children := make([]FlexChild, n)
		var fixedTotal float32
		hasFlex := false
		for i := range children {
			size := Size{W: float32(rng.Intn(80)), H: float32(rng.Intn(80))}
			var flex float32
			if rng.Intn(2) == 0 {
				flex = float32(1 + rng.Intn(4))
				hasFlex = true
			} else {
				fixedTotal += size.Main(axis)
			}
			children[i] = FlexChild{Size: size, Flex: flex}
		}
		if !hasFlex {
			children[0].Flex = 1
			fixedTotal -= children[0].Size.Main(axis)
		}

		minimum := fixedTotal + gap*float32(n-1) + 2*padding
		available := minimum + float32(rng.Intn(400))

		rects := Solve(children, axis, gap, padding, available, nil)
		require.Len(t, rects, n)

		total := gap*float32(n-1) + 2*padding
		for _, r := range rects {
			total += r.Size().Main(axis)
		}
		assert.InDelta(t, available, total, 1e-3, "iteration %d", iter)
	}
}

func TestSolve_PreservesOrderAndAdvancesByGap(t *testing.T) {
	children := []FlexChild{
		{Size: Size{W: 10, H: 5}},
		{Size: Size{W: 20, H: 8}, Flex: 1},
		{Size: Size{W: 30, H: 3}},
	}
	rects := Solve(children, Horizontal, 4, 2, 100, nil)
	require.Len(t, rects, 3)

	// used = 10 + 30 + 4*2 + 2*2 = 52, remaining 48 to the single flex child.
	assert.Equal(t, Rect{X: 2, Y: 2, W: 10, H: 5}, rects[0])
	assert.Equal(t, Rect{X: 16, Y: 2, W: 48, H: 5}, rects[1])
	assert.Equal(t, Rect{X: 68, Y: 2, W: 30, H: 3}, rects[2])
}

func TestSolve_FixedChildrenNeverStretch(t *testing.T) {
	children := []FlexChild{
		{Size: Size{W: 40, H: 10}},
		{Size: Size{W: 15, H: 10}},
	}
	rects := Solve(children, Vertical, 0, 0, 500, nil)
	assert.Equal(t, float32(40), rects[0].W)
	assert.Equal(t, float32(15), rects[1].W)
	assert.Equal(t, float32(10), rects[0].H)
	assert.Equal(t, float32(10), rects[1].Y)
}

func TestSolve_FlexChildrenTakeWidestFixedCross(t *testing.T) {
	children := []FlexChild{
		{Size: Size{W: 40, H: 10}},
		{Size: Size{W: 0, H: 0}, Flex: 1},
		{Size: Size{W: 90, H: 10}},
	}
	rects := Solve(children, Vertical, 0, 0, 100, nil)
	assert.Equal(t, float32(90), rects[1].W)
	assert.Equal(t, float32(80), rects[1].H)
}

func TestSolve_WeightsSplitProportionally(t *testing.T) {
	children := []FlexChild{{Flex: 1}, {Flex: 3}}
	rects := Solve(children, Horizontal, 0, 0, 200, nil)
	assert.InDelta(t, 50, rects[0].W, 1e-4)
	assert.InDelta(t, 150, rects[1].W, 1e-4)
	assert.InDelta(t, 50, rects[1].X, 1e-4)
}

func TestSolve_OverflowGivesFlexNothing(t *testing.T) {
	children := []FlexChild{
		{Size: Size{W: 80, H: 1}},
		{Size: Size{W: 30, H: 1}, Flex: 2},
	}
	rects := Solve(children, Horizontal, 0, 0, 50, nil)
	assert.Equal(t, float32(80), rects[0].W)
	assert.Equal(t, float32(0), rects[1].W)
}

func TestSolve_AppendsToOut(t *testing.T) {
	out := []Rect{{X: -1}}
	out = Solve([]FlexChild{{Size: Size{W: 1, H: 1}}}, Horizontal, 0, 0, 10, out)
	require.Len(t, out, 2)
	assert.Equal(t, float32(-1), out[0].X)
	assert.Empty(t, Solve(nil, Vertical, 3, 3, 10, nil))
}

func TestNatural(t *testing.T) {
	children := []FlexChild{
		{Size: Size{W: 20, H: 10}},
		{Size: Size{W: 30, H: 10}},
	}
	assert.Equal(t, Size{W: 50, H: 10}, Natural(children, Horizontal, 0, 0))
	assert.Equal(t, Size{W: 40, H: 35}, Natural(children, Vertical, 5, 5))
	assert.Equal(t, Size{W: 8, H: 8}, Natural(nil, Vertical, 3, 4))
}

func TestRect_Helpers(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}
	assert.True(t, r.Contains(Point{X: 10, Y: 10}))
	assert.False(t, r.Contains(Point{X: 30, Y: 15}))
	assert.Equal(t, Rect{X: 12, Y: 12, W: 16, H: 6}, r.Inset(2))
	assert.Equal(t, Rect{X: 0, Y: 10, W: 30, H: 10}, r.Union(Rect{X: 0, Y: 12, W: 5, H: 2}))
	assert.Equal(t, r, Rect{}.Union(r))
	assert.Equal(t, Rect{X: 20, Y: 15, W: 10, H: 5}, r.Intersect(Rect{X: 20, Y: 15, W: 50, H: 50}))
	assert.True(t, r.Intersect(Rect{X: 100, Y: 100, W: 5, H: 5}).Empty())
	assert.Equal(t, Point{X: 20, Y: 15}, r.Center())
}
