package headless

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/agiangrant/mcore/layout"
)

// face returns the face for a font id and pixel size. Unknown ids fall back
// to font 0.
func (e *Engine) face(id uint32, size float32) font.Face {
	if e.bitmap {
		return basicfont.Face7x13
	}
	if int(id) >= len(e.fonts) {
		id = 0
	}
	key := faceKey{font: id, size: size}
	if f, ok := e.faces[key]; ok {
		return f
	}
	f, err := opentype.NewFace(e.fonts[id], &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	e.faces[key] = f
	return f
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// MeasureText returns the size of text wrapped greedily at word boundaries
// to maxWidth, and its line count. Explicit newlines always break. A word
// wider than maxWidth overflows its line.
func (e *Engine) MeasureText(text string, fontID uint32, fontSize, maxWidth float32) (layout.Size, int) {
	f := e.face(fontID, fontSize)
	lineHeight := float32(f.Metrics().Height.Ceil())

	var width float32
	lines := 0
	for _, para := range strings.Split(text, "\n") {
		for _, line := range wrap(f, para, maxWidth) {
			width = max(width, toFloat(font.MeasureString(f, line)))
			lines++
		}
	}
	return layout.Size{W: width, H: lineHeight * float32(lines)}, lines
}

// MeasureToByte returns the advance of text[:offset] on a single line.
func (e *Engine) MeasureToByte(text string, fontID uint32, fontSize float32, offset int) float32 {
	offset = min(max(offset, 0), len(text))
	return toFloat(font.MeasureString(e.face(fontID, fontSize), text[:offset]))
}

// wrap splits para into lines no wider than maxWidth where possible.
func wrap(f font.Face, para string, maxWidth float32) []string {
	if maxWidth <= 0 || toFloat(font.MeasureString(f, para)) <= maxWidth {
		return []string{para}
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(para) {
		if line == "" {
			line = word
			continue
		}
		candidate := line + " " + word
		if toFloat(font.MeasureString(f, candidate)) > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
