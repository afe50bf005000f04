// Package ident derives stable widget identifiers from a push/pop label stack.
//
// An id is a 64-bit hash of the labels pushed to reach a widget. Declaring the
// same sequence of labels on every frame yields the same id, which is what ties
// a widget declared this frame to the state it owned last frame.
package ident

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// WidgetID identifies a widget across frames.
type WidgetID uint64

// None is the zero id. It is returned by Current on an empty stack and is
// never produced by Push.
const None WidgetID = 0

func (id WidgetID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// HashString returns the 64-bit FNV-1a hash of s.
func HashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// HashInt returns the 64-bit FNV-1a hash of n's little-endian encoding.
func HashInt(n int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	h := fnv.New64a()
	h.Write(buf[:])
	return h.Sum64()
}

// Combine folds a child hash into a parent id.
func Combine(parent WidgetID, h uint64) WidgetID {
	p := uint64(parent)
	return nonZero(mix(p ^ (h + 0x9e3779b97f4a7c15 + (p << 6) + (p >> 2))))
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

func nonZero(x uint64) WidgetID {
	if x == 0 {
		return 1
	}
	return WidgetID(x)
}

// FromLabel returns the id a label gets when pushed onto an empty stack.
func FromLabel(label string) WidgetID {
	return nonZero(HashString(label))
}

// Stack is the label stack. The zero value is an empty stack ready to use.
type Stack struct {
	ids []WidgetID
}

// Push derives an id for label under the current top and pushes it.
func (s *Stack) Push(label string) WidgetID {
	return s.push(HashString(label))
}

// PushInt is Push for integer keys, typically loop indices.
func (s *Stack) PushInt(n int) WidgetID {
	return s.push(HashInt(n))
}

func (s *Stack) push(h uint64) WidgetID {
	var id WidgetID
	if len(s.ids) == 0 {
		id = nonZero(h)
	} else {
		id = Combine(s.ids[len(s.ids)-1], h)
	}
	s.ids = append(s.ids, id)
	return id
}

// Pop removes the top id. Popping an empty stack panics.
func (s *Stack) Pop() {
	if len(s.ids) == 0 {
		panic("ident: Pop on empty stack")
	}
	s.ids = s.ids[:len(s.ids)-1]
}

// Current returns the top id, or None if the stack is empty.
func (s *Stack) Current() WidgetID {
	if len(s.ids) == 0 {
		return None
	}
	return s.ids[len(s.ids)-1]
}

// Derive returns the id label would get if pushed, without pushing it.
func (s *Stack) Derive(label string) WidgetID {
	if len(s.ids) == 0 {
		return nonZero(HashString(label))
	}
	return Combine(s.ids[len(s.ids)-1], HashString(label))
}

// Depth returns the number of pushed labels.
func (s *Stack) Depth() int {
	return len(s.ids)
}

// Reset empties the stack, keeping its storage.
func (s *Stack) Reset() {
	s.ids = s.ids[:0]
}
