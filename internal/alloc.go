package internal

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
)

// memory tracks the instance bytes reserved by live objects.
var memory struct {
	live    atomic.Int64
	objects atomic.Int64
}

// LiveBytes returns the number of bytes reserved by live objects.
func LiveBytes() int64 {
	return memory.live.Load()
}

// LiveObjects returns the number of live objects.
func LiveObjects() int64 {
	return memory.objects.Load()
}

// reserve accounts for a new object of n bytes, failing with ErrOutOfMemory
// if that would exceed the memory limit.
func reserve(n uintptr) error {
	limit := config.limit.Load()
	for {
		cur := memory.live.Load()
		if limit > 0 && cur+int64(n) > limit {
			return ErrOutOfMemory
		}
		if memory.live.CompareAndSwap(cur, cur+int64(n)) {
			break
		}
	}
	memory.objects.Add(1)
	return nil
}

// unreserve returns the bytes of an object to the allocator.
func unreserve(n uintptr) {
	memory.live.Add(-int64(n))
	memory.objects.Add(-1)
}

// adopt fills in the header of a newly allocated object of class c.
func adopt(o Instance, c *Class) {
	h := o.Header()
	h.class = c
	h.table = c.table
	h.self = o
	h.size = c.size
	h.refs = new(atomic.Int32)
	h.refs.Store(1)
}

// errNilInit is the error recorded when an init method returns neither an
// instance nor an error.
var errNilInit = errors.New("init returned no instance")

// New allocates and initializes an instance of c, initializing c first if
// needed. The arguments are passed to the init method in c's table, which
// chains to the init methods of c's ancestors. The new object has a reference
// count of 1.
//
// An init method may return an instance other than the one allocated for it,
// such as a shared instance it has retained. New then releases the allocated
// instance, running its dealloc chain, and returns the substitute.
//
// The error is ErrOutOfMemory, possibly wrapped, if the allocation would
// exceed the memory limit, or a *ConstructError if init fails.
func New(c *Class, args ...interface{}) (Instance, error) {
	ensure(c)
	if err := reserve(c.size); err != nil {
		return nil, fmt.Errorf("allocating %s: %w", c.Name, err)
	}
	o := reflect.New(c.typ).Interface().(Instance)
	adopt(o, c)
	r, err := c.table.Init()(o, args...)
	if err == nil && isNil(r) {
		err = errNilInit
	}
	if err != nil {
		discard(o.Header())
		return nil, &ConstructError{Class: c, Err: err}
	}
	if r.Header() != o.Header() {
		tracef("%s init substituted %T for the new instance", c.Name, r)
		Release(o)
	}
	return r, nil
}

// discard frees a header without running dealloc.
func discard(h *Object) {
	size := h.size
	h.refs.Store(0)
	h.class, h.table, h.self, h.size, h.refs = nil, nil, nil, 0, nil
	unreserve(size)
}
