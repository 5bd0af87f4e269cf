//go:build nounsafe

package internal

import "reflect"

// The default implementations use unsafe.Pointer. If you can't use packages
// importing unsafe, build with -tags=nounsafe to select these instead. Casts
// to embedded instance types that are not exported then fail.

// uniqueID returns the address of the object's header.
func uniqueID(h *Object) uintptr {
	return reflect.ValueOf(h).Pointer()
}

// classID returns a unique identifier for a class.
func classID(c *Class) uintptr {
	return reflect.ValueOf(c).Pointer()
}

// fieldAddr returns a pointer to the addressable field v, if it is exported.
func fieldAddr(v reflect.Value) (reflect.Value, bool) {
	p := v.Addr()
	return p, p.CanInterface()
}
