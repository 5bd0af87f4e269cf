// Package testutils provides utilities for testing objectively classes.
package testutils

import (
	"reflect"
	"testing"

	"github.com/zephyrtronium/objectively"
)

// BenchDummy is a dummy variable to prevent dead code elimination in
// benchmarks.
var BenchDummy interface{}

// CatchFatal calls f and returns the *FatalError with which it panics, or nil
// if it returns normally. Panics with any other value propagate.
func CatchFatal(f func()) (err *objectively.FatalError) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(*objectively.FatalError)
		if !ok {
			panic(r)
		}
		err = e
	}()
	f()
	return nil
}

// CheckFatal checks that f panics with a *FatalError from the given runtime
// operation.
func CheckFatal(t *testing.T, op string, f func()) {
	t.Helper()
	err := CatchFatal(f)
	if err == nil {
		t.Fatalf("expected fatal error from %s, got none", op)
	}
	if err.Op != op {
		t.Errorf("fatal error from wrong operation: want %s, have %s (%v)", op, err.Op, err)
	}
}

// CheckRefCount checks that o has the given reference count.
func CheckRefCount(t *testing.T, o objectively.Instance, want int) {
	t.Helper()
	if have := objectively.RefCount(o); have != want {
		t.Errorf("wrong reference count for %s: want %d, have %d", objectively.Description(o), want, have)
	}
}

// SameMethod returns whether two table entries are the same function.
func SameMethod(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	return va.Pointer() == vb.Pointer()
}

// CheckInherited checks that every entry of super's table appears unchanged
// in sub's table, except at the selectors sub overrides.
func CheckInherited(t *testing.T, sub, super *objectively.Class, overrides ...objectively.Selector) {
	t.Helper()
	over := make(map[objectively.Selector]bool, len(overrides))
	for _, sel := range overrides {
		over[sel] = true
	}
	st, pt := sub.Table(), super.Table()
	if len(st) < len(pt) {
		t.Fatalf("%s table has %d entries, fewer than %s's %d", sub, len(st), super, len(pt))
	}
	for i, m := range pt {
		sel := objectively.Selector(i)
		same := SameMethod(st[i], m)
		if over[sel] && same {
			t.Errorf("%s does not override selector %d of %s", sub, i, super)
		}
		if !over[sel] && !same {
			t.Errorf("%s changed inherited selector %d of %s", sub, i, super)
		}
	}
}
