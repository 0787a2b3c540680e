// Package vector is the runtime used by generated vectorized entry points:
// output buffer allocation, argument unpacking and result wrapping.
package vector

import (
	"sync"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Func is the calling convention shared by every variant: positional
// arguments in, positional results out.
type Func func(args []any) ([]any, error)

var (
	allocMu   sync.RWMutex
	allocator memory.Allocator = memory.NewGoAllocator()
)

// Allocator returns the allocator used for output buffers.
func Allocator() memory.Allocator {
	allocMu.RLock()
	defer allocMu.RUnlock()
	return allocator
}

// SetAllocator replaces the output buffer allocator and returns a function
// restoring the previous one.
func SetAllocator(mem memory.Allocator) (restore func()) {
	allocMu.Lock()
	defer allocMu.Unlock()
	prev := allocator
	allocator = mem
	return func() {
		allocMu.Lock()
		defer allocMu.Unlock()
		allocator = prev
	}
}

// Arena owns the output buffers of one vectorized call.
//
// Allocation is chained: once one allocation fails every later one returns
// nil, so a loop checks Failed once after allocating all of its outputs.
type Arena struct {
	mem    memory.Allocator
	bufs   [][]byte
	failed bool
}

// NewArena returns an arena backed by the current allocator.
func NewArena() *Arena {
	return &Arena{mem: Allocator()}
}

// Float64 allocates n zeroed float64 values.
func (a *Arena) Float64(n int) []float64 {
	if a.failed {
		return nil
	}
	if n == 0 {
		return []float64{}
	}
	b := a.alloc(arrow.Float64Traits.BytesRequired(n))
	if b == nil {
		return nil
	}
	return arrow.Float64Traits.CastFromBytes(b)[:n]
}

// Int64 allocates n zeroed int64 values.
func (a *Arena) Int64(n int) []int64 {
	if a.failed {
		return nil
	}
	if n == 0 {
		return []int64{}
	}
	b := a.alloc(arrow.Int64Traits.BytesRequired(n))
	if b == nil {
		return nil
	}
	return arrow.Int64Traits.CastFromBytes(b)[:n]
}

// Bool allocates n false values.
func (a *Arena) Bool(n int) []bool {
	if a.failed {
		return nil
	}
	if n == 0 {
		return []bool{}
	}
	b := a.alloc(n)
	if b == nil {
		return nil
	}
	return unsafe.Slice((*bool)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

func (a *Arena) alloc(size int) []byte {
	if a.failed {
		return nil
	}
	b := a.mem.Allocate(size)
	if len(b) < size {
		a.failed = true
		if b != nil {
			a.mem.Free(b)
		}
		return nil
	}
	clear(b)
	a.bufs = append(a.bufs, b)
	return b
}

// Failed reports whether any allocation failed.
func (a *Arena) Failed() bool {
	return a.failed
}

// Release frees every buffer. Results must have been copied out first.
func (a *Arena) Release() {
	for _, b := range a.bufs {
		a.mem.Free(b)
	}
	a.bufs = nil
}

// LimitAllocator fails every allocation once the byte budget is spent.
// Used to exercise allocation-failure paths.
type LimitAllocator struct {
	mem       memory.Allocator
	remaining int
}

// NewLimitAllocator wraps mem with a budget of limit bytes.
func NewLimitAllocator(mem memory.Allocator, limit int) *LimitAllocator {
	return &LimitAllocator{mem: mem, remaining: limit}
}

func (l *LimitAllocator) Allocate(size int) []byte {
	if size > l.remaining {
		return nil
	}
	l.remaining -= size
	return l.mem.Allocate(size)
}

func (l *LimitAllocator) Reallocate(size int, b []byte) []byte {
	if size-len(b) > l.remaining {
		return nil
	}
	l.remaining -= size - len(b)
	return l.mem.Reallocate(size, b)
}

func (l *LimitAllocator) Free(b []byte) {
	l.remaining += len(b)
	l.mem.Free(b)
}
