package scroll

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/mcore/ident"
	"github.com/agiangrant/mcore/layout"
)

func TestState_OffsetStaysClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for iter := 0; iter < 200; iter++ {
		s := &State{Axes: Both}
		s.SetViewport(layout.Size{W: float32(rng.Intn(300)), H: float32(rng.Intn(300))})
		s.SetContent(layout.Size{W: float32(rng.Intn(600)), H: float32(rng.Intn(600))})

		for step := 0; step < 30; step++ {
			switch rng.Intn(4) {
			case 0:
				s.SetContent(layout.Size{W: float32(rng.Intn(600)), H: float32(rng.Intn(600))})
			case 1:
				s.SetViewport(layout.Size{W: float32(rng.Intn(300)), H: float32(rng.Intn(300))})
			default:
				s.ScrollBy(layout.Point{X: float32(rng.Intn(800) - 400), Y: float32(rng.Intn(800) - 400)})
			}

			m := s.MaxOffset()
			require.GreaterOrEqual(t, s.Offset.X, float32(0))
			require.GreaterOrEqual(t, s.Offset.Y, float32(0))
			require.LessOrEqual(t, s.Offset.X, m.X)
			require.LessOrEqual(t, s.Offset.Y, m.Y)
		}
	}
}

func TestState_ScrollByRespectsAxes(t *testing.T) {
	s := &State{Axes: AxisY}
	s.SetViewport(layout.Size{W: 100, H: 100})
	s.SetContent(layout.Size{W: 400, H: 400})

	assert.True(t, s.ScrollBy(layout.Point{X: 50, Y: 30}))
	assert.Equal(t, layout.Point{X: 0, Y: 30}, s.Offset)

	assert.True(t, s.ScrollBy(layout.Point{Y: 1000}))
	assert.Equal(t, float32(300), s.Offset.Y)
	assert.False(t, s.ScrollBy(layout.Point{Y: 10}), "already at the end")
}

func TestState_ShrinkingContentPullsOffsetBack(t *testing.T) {
	s := &State{Axes: Both}
	s.SetViewport(layout.Size{W: 100, H: 100})
	s.SetContent(layout.Size{W: 100, H: 500})
	s.ScrollBy(layout.Point{Y: 350})
	require.Equal(t, float32(350), s.Offset.Y)

	s.SetContent(layout.Size{W: 100, H: 150})
	assert.Equal(t, float32(50), s.Offset.Y)
	s.SetContent(layout.Size{W: 100, H: 80})
	assert.Equal(t, float32(0), s.Offset.Y)
	assert.False(t, s.CanScroll())
}

func TestStore_GetOrCreatePersists(t *testing.T) {
	st := NewStore()
	_, ok := st.Get(5)
	assert.False(t, ok)

	s := st.GetOrCreate(5, AxisY)
	s.Offset.Y = 12
	again := st.GetOrCreate(5, Both)
	assert.Same(t, s, again)
	assert.Equal(t, float32(12), again.Offset.Y)
	assert.Equal(t, Both, again.Axes)
	assert.Equal(t, 1, st.Len())
}

func TestRouter_TopmostCommittedAreaWins(t *testing.T) {
	var r Router
	r.Register(1, layout.Rect{W: 200, H: 200})
	r.Register(2, layout.Rect{X: 50, Y: 50, W: 50, H: 50})

	_, ok := r.Hit(layout.Point{X: 60, Y: 60})
	assert.False(t, ok, "nothing is committed yet")

	r.Commit()
	id, ok := r.Hit(layout.Point{X: 60, Y: 60})
	require.True(t, ok)
	assert.Equal(t, ident.WidgetID(2), id)

	id, _ = r.Hit(layout.Point{X: 10, Y: 10})
	assert.Equal(t, ident.WidgetID(1), id)

	_, ok = r.Hit(layout.Point{X: 500, Y: 10})
	assert.False(t, ok)
}

func TestRouter_CommitReplacesPreviousFrame(t *testing.T) {
	var r Router
	r.Register(1, layout.Rect{W: 10, H: 10})
	r.Commit()
	r.Register(2, layout.Rect{X: 20, W: 10, H: 10})

	id, ok := r.Hit(layout.Point{X: 5, Y: 5})
	require.True(t, ok, "pending areas do not replace committed ones")
	assert.Equal(t, ident.WidgetID(1), id)

	r.Commit()
	_, ok = r.Hit(layout.Point{X: 5, Y: 5})
	assert.False(t, ok)
	assert.Len(t, r.Areas(), 1)

	r.Register(3, layout.Rect{W: 1, H: 1})
	r.Discard()
	r.Commit()
	assert.Empty(t, r.Areas())
}
