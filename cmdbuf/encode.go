package cmdbuf

import (
	"encoding/binary"
	"math"
)

// Batch wire format, little-endian:
//
//	u32 count
//	count records, each:
//	  u8  kind
//	  f32 x, y, w, h
//	  then per kind:
//	    rounded_rect: f32 radius, 4*f32 fill, 4*f32 border, f32 border_width,
//	                  f32 shadow_dx, f32 shadow_dy, f32 shadow_blur, 4*f32 shadow_color
//	    text:         f32 font_size, u32 font_id, 4*f32 color, u32 len, len bytes UTF-8
//	    image:        u32 texture
//	    push_clip, pop_clip: nothing
//
// pop_clip records still carry a zero rect so every record starts with the
// same 17-byte header.

// EncodedSize returns the number of bytes Encode appends for cmds.
func EncodedSize(cmds []Command) int {
	n := 4
	for i := range cmds {
		n += recordSize(&cmds[i])
	}
	return n
}

func recordSize(c *Command) int {
	n := 1 + 16
	switch c.Kind {
	case KindRoundedRect:
		n += 4 + 16 + 16 + 4 + 12 + 16
	case KindText:
		n += 4 + 4 + 16 + 4 + len(c.Text)
	case KindImage:
		n += 4
	}
	return n
}

// Encode appends the batch encoding of cmds to dst and returns the result.
func Encode(dst []byte, cmds []Command) []byte {
	if need := EncodedSize(cmds); cap(dst)-len(dst) < need {
		grown := make([]byte, len(dst), len(dst)+need)
		copy(grown, dst)
		dst = grown
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(cmds)))
	for i := range cmds {
		dst = encodeOne(dst, &cmds[i])
	}
	return dst
}

func encodeOne(dst []byte, c *Command) []byte {
	dst = append(dst, byte(c.Kind))
	dst = appendRect(dst, c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H)
	switch c.Kind {
	case KindRoundedRect:
		dst = appendFloat(dst, c.Radius)
		dst = appendColor(dst, c.Fill)
		dst = appendColor(dst, c.Border)
		dst = appendFloat(dst, c.BorderWidth)
		dst = appendFloat(dst, c.Shadow.Offset.X)
		dst = appendFloat(dst, c.Shadow.Offset.Y)
		dst = appendFloat(dst, c.Shadow.Blur)
		dst = appendColor(dst, c.Shadow.Color)
	case KindText:
		dst = appendFloat(dst, c.FontSize)
		dst = binary.LittleEndian.AppendUint32(dst, c.FontID)
		dst = appendColor(dst, c.Color)
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(c.Text)))
		dst = append(dst, c.Text...)
	case KindImage:
		dst = binary.LittleEndian.AppendUint32(dst, c.Texture)
	}
	return dst
}

func appendFloat(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}

func appendRect(dst []byte, x, y, w, h float32) []byte {
	dst = appendFloat(dst, x)
	dst = appendFloat(dst, y)
	dst = appendFloat(dst, w)
	return appendFloat(dst, h)
}

func appendColor(dst []byte, c Color) []byte {
	return appendRect(dst, c.R, c.G, c.B, c.A)
}
