package a11y

import (
	"encoding/binary"
	"math"
)

// Tree wire format for the native bridge, little-endian:
//
//	u64 root, u64 focus, u32 count
//	count nodes, each:
//	  u64 id, u8 role, u8 actions, f32 x, y, w, h
//	  u32 label_len, label bytes
//	  u32 value_len, value bytes
//	  i32 sel_start, i32 sel_end (both -1 without a selection)
//	  u32 child_count, child_count * u64 child ids

// Encode appends the wire encoding of t to dst.
func Encode(dst []byte, t Tree) []byte {
	le := binary.LittleEndian
	dst = le.AppendUint64(dst, uint64(t.Root))
	dst = le.AppendUint64(dst, uint64(t.Focus))
	dst = le.AppendUint32(dst, uint32(len(t.Nodes)))
	for i := range t.Nodes {
		n := &t.Nodes[i]
		dst = le.AppendUint64(dst, uint64(n.ID))
		dst = append(dst, byte(n.Role), byte(n.Actions))
		for _, f := range [4]float32{n.Bounds.X, n.Bounds.Y, n.Bounds.W, n.Bounds.H} {
			dst = le.AppendUint32(dst, math.Float32bits(f))
		}
		dst = le.AppendUint32(dst, uint32(len(n.Label)))
		dst = append(dst, n.Label...)
		dst = le.AppendUint32(dst, uint32(len(n.Value)))
		dst = append(dst, n.Value...)
		start, end := int32(-1), int32(-1)
		if n.Selection != nil {
			start, end = int32(n.Selection.Start), int32(n.Selection.End)
		}
		dst = le.AppendUint32(dst, uint32(start))
		dst = le.AppendUint32(dst, uint32(end))
		dst = le.AppendUint32(dst, uint32(len(n.Children)))
		for _, c := range n.Children {
			dst = le.AppendUint64(dst, uint64(c))
		}
	}
	return dst
}
