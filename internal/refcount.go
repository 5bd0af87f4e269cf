package internal

// Retain increments the reference count of o. It is fatal if o is not alive.
func Retain(o Instance) {
	h := header("retain", o)
	if h.refs.Add(1) <= 1 {
		fatalf("retain", h.class, "object was already released")
	}
}

// Release decrements the reference count of o. The release that brings the
// count to zero calls the dealloc method of o's class and then frees o. It is
// fatal if o is not alive.
func Release(o Instance) {
	h := header("release", o)
	n := h.refs.Add(-1)
	switch {
	case n > 0:
		return
	case n < 0:
		fatalf("release", h.class, "object was released too many times")
	}
	h.table.Dealloc()(h.self)
	discard(h)
}

// RefCount returns the current reference count of o. The value may be stale
// as soon as it is returned if other goroutines hold references.
func RefCount(o Instance) int {
	return int(header("refCount", o).refs.Load())
}
