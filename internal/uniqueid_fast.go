//go:build !nounsafe

package internal

import (
	"reflect"
	"unsafe"
)

// Using unsafe to retrieve addresses avoids reflect on the hash path and lets
// casts reach embedded instance types that are not exported.

// uniqueID returns the address of the object's header. Headers are the first
// field of every instance, so this is also the address of the instance.
func uniqueID(h *Object) uintptr {
	return uintptr(unsafe.Pointer(h))
}

// classID returns a unique identifier for a class. Classes are package-level
// variables, so their addresses are stable.
func classID(c *Class) uintptr {
	return uintptr(unsafe.Pointer(c))
}

// fieldAddr returns a pointer to the addressable field v.
func fieldAddr(v reflect.Value) (reflect.Value, bool) {
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())), true
}
