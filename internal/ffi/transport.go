//go:build !js

package ffi

import (
	"errors"
	"unsafe"

	"github.com/agiangrant/mcore/a11y"
	"github.com/agiangrant/mcore/cmdbuf"
)

// Batches are encoded into a reusable request buffer and handed to the engine
// as (pointer, length) in a single call.
const (
	initialBatchBufferSize = 64 * 1024        // 64KB
	maxBatchBufferSize     = 64 * 1024 * 1024 // 64MB max
)

// ErrBatchTooLarge is returned when an encoded batch exceeds the buffer limit.
var ErrBatchTooLarge = errors.New("ffi: batch exceeds maximum buffer size")

// batchBuffer is the request buffer shared by command and accessibility
// submission. It grows on demand and is never shrunk.
type batchBuffer struct {
	buf []byte
}

func newBatchBuffer() *batchBuffer {
	return &batchBuffer{buf: make([]byte, 0, initialBatchBufferSize)}
}

// commands encodes cmds into the buffer.
func (b *batchBuffer) commands(cmds []cmdbuf.Command) ([]byte, error) {
	if cmdbuf.EncodedSize(cmds) > maxBatchBufferSize {
		return nil, ErrBatchTooLarge
	}
	b.buf = cmdbuf.Encode(b.buf[:0], cmds)
	return b.buf, nil
}

// tree encodes an accessibility tree into the buffer.
func (b *batchBuffer) tree(t a11y.Tree) ([]byte, error) {
	b.buf = a11y.Encode(b.buf[:0], t)
	if len(b.buf) > maxBatchBufferSize {
		return nil, ErrBatchTooLarge
	}
	return b.buf, nil
}

// pointer returns the address and length of p for a native call.
func pointer(p []byte) (uintptr, uintptr) {
	if len(p) == 0 {
		return 0, 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(p))), uintptr(len(p))
}
