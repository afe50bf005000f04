package headless

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/agiangrant/mcore/a11y"
	"github.com/agiangrant/mcore/cmdbuf"
	"github.com/agiangrant/mcore/ident"
	"github.com/agiangrant/mcore/layout"
)

func newBitmap(t *testing.T) *Engine {
	t.Helper()
	e, err := New(WithBitmapFont())
	require.NoError(t, err)
	return e
}

// ============================================================================
// Text metrics
// ============================================================================

func TestMeasureText_Bitmap(t *testing.T) {
	e := newBitmap(t)

	tests := []struct {
		name     string
		text     string
		maxWidth float32
		want     layout.Size
		lines    int
	}{
		{"single line", "hello", 0, layout.Size{W: 35, H: 13}, 1},
		{"fits", "hello world", 100, layout.Size{W: 77, H: 13}, 1},
		{"wraps at words", "hello world", 50, layout.Size{W: 35, H: 26}, 2},
		{"long word overflows", "abcdefghij", 21, layout.Size{W: 70, H: 13}, 1},
		{"newline", "ab\ncdef", 0, layout.Size{W: 28, H: 26}, 2},
		{"empty", "", 0, layout.Size{W: 0, H: 13}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, lines := e.MeasureText(tt.text, 0, 14, tt.maxWidth)
			assert.Equal(t, tt.want, size)
			assert.Equal(t, tt.lines, lines)
		})
	}
}

func TestMeasureToByte_BitmapIsLinear(t *testing.T) {
	e := newBitmap(t)
	for i := 0; i <= 5; i++ {
		assert.Equal(t, float32(7*i), e.MeasureToByte("hello", 0, 14, i))
	}
	assert.Equal(t, float32(35), e.MeasureToByte("hello", 0, 14, 99))
	assert.Equal(t, float32(0), e.MeasureToByte("hello", 0, 14, -3))
}

func TestMeasureToByte_OpenTypeIsMonotonic(t *testing.T) {
	e, err := New()
	require.NoError(t, err)
	defer e.Close()

	text := "The quick brown fox"
	prev := float32(-1)
	for i := 0; i <= len(text); i++ {
		x := e.MeasureToByte(text, 0, 16, i)
		assert.GreaterOrEqual(t, x, prev)
		prev = x
	}
	size, _ := e.MeasureText(text, 0, 16, 0)
	assert.InDelta(t, size.W, prev, 0.01)
	assert.Greater(t, size.H, float32(0))
}

func TestRegisterFont(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	id, err := e.RegisterFont("mono", gomono.TTF)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), id)
	name, ok := e.FontName(id)
	assert.True(t, ok)
	assert.Equal(t, "mono", name)

	_, err = e.RegisterFont("junk", []byte("not a font"))
	assert.Error(t, err)

	// Every glyph in a monospace face has the same advance.
	w1 := e.MeasureToByte("iiii", id, 16, 4)
	w2 := e.MeasureToByte("MMMM", id, 16, 4)
	assert.InDelta(t, w1, w2, 0.01)
}

// ============================================================================
// Recording
// ============================================================================

func TestEngine_RecordsPresentedFrames(t *testing.T) {
	e := newBitmap(t)
	cmds := []cmdbuf.Command{
		cmdbuf.RoundedRect(layout.Rect{W: 10, H: 10}, 2, cmdbuf.RGBA(255, 0, 0, 255)),
		cmdbuf.Text(layout.Point{}, 0, "hi", 14, 0, cmdbuf.RGBA(0, 0, 0, 255)),
	}

	e.BeginFrame(1.5)
	require.NoError(t, e.Submit(cmds))
	cmds[0].Radius = 99
	require.NoError(t, e.Present(cmdbuf.Transparent))

	f, ok := e.LastFrame()
	require.True(t, ok)
	assert.Equal(t, 1.5, f.Time)
	assert.Len(t, f.Commands, 2)
	assert.Equal(t, float32(2), f.Commands[0].Radius, "submitted commands are copied")
	assert.Equal(t, 1, f.Count(cmdbuf.KindText))
	assert.Equal(t, []string{"hi"}, f.Texts())

	assert.Error(t, e.Present(cmdbuf.Transparent), "present needs a new frame")
}

func TestEngine_FailNext(t *testing.T) {
	e := newBitmap(t)
	boom := errors.New("device lost")
	e.FailNext(OpPresent, boom)

	e.BeginFrame(0)
	require.NoError(t, e.Submit(nil))
	assert.ErrorIs(t, e.Present(cmdbuf.Transparent), boom)
	assert.Empty(t, e.Frames())

	e.BeginFrame(0)
	assert.NoError(t, e.Present(cmdbuf.Transparent), "faults fire once")
	assert.Len(t, e.Frames(), 1)
}

func TestEngine_Accessibility(t *testing.T) {
	e := newBitmap(t)
	tree := a11y.Tree{Nodes: []a11y.Node{{ID: 1, Role: a11y.RoleWindow, Children: []ident.WidgetID{2}}}, Root: 1, Focus: 1}
	require.NoError(t, e.UpdateAccessibility(tree))
	tree.Nodes[0].Label = "changed"

	got, ok := e.LastTree()
	require.True(t, ok)
	assert.Empty(t, got.Nodes[0].Label)
	assert.Len(t, e.Trees(), 1)
}

func TestEngine_ResizeAndClose(t *testing.T) {
	e, err := New(WithSize(100, 50, 2))
	require.NoError(t, err)
	w, h, s := e.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)
	assert.Equal(t, float32(2), s)

	require.NoError(t, e.Resize(300, 200, 1))
	w, h, _ = e.Size()
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)

	e.MeasureText("warm the face cache", 0, 12, 0)
	require.NoError(t, e.Close())
	assert.ErrorIs(t, e.Resize(1, 1, 1), ErrClosed)
	assert.NoError(t, e.Close())
}
