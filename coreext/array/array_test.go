package array_test

import (
	"testing"

	"github.com/zephyrtronium/objectively"
	"github.com/zephyrtronium/objectively/coreext/array"
	"github.com/zephyrtronium/objectively/coreext/str"
	"github.com/zephyrtronium/objectively/testutils"
)

func strings(t *testing.T, ss ...string) []objectively.Instance {
	t.Helper()
	r := make([]objectively.Instance, len(ss))
	for i, s := range ss {
		o, err := str.New(s)
		if err != nil {
			t.Fatal(err)
		}
		r[i] = o
	}
	return r
}

func release(elems []objectively.Instance) {
	for _, e := range elems {
		objectively.Release(e)
	}
}

// TestRetainsElements tests that an array holds a reference to each element
// for its lifetime.
func TestRetainsElements(t *testing.T) {
	elems := strings(t, "a", "b")
	defer release(elems)
	a, err := array.New(elems...)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range elems {
		testutils.CheckRefCount(t, e, 2)
	}
	if n := array.Count(a); n != 2 {
		t.Errorf("wrong count %d", n)
	}
	if array.ObjectAt(a, 1) != elems[1] {
		t.Error("wrong element at 1")
	}
	objectively.Release(a)
	for _, e := range elems {
		testutils.CheckRefCount(t, e, 1)
	}
}

// TestElementsAreComplete tests that elements stored through ancestor
// references come back as complete instances.
func TestElementsAreComplete(t *testing.T) {
	m, err := str.NewMutable("grow")
	if err != nil {
		t.Fatal(err)
	}
	defer objectively.Release(m)
	a, err := array.New(&m.String)
	if err != nil {
		t.Fatal(err)
	}
	defer objectively.Release(a)
	if e := array.ObjectAt(a, 0); e != objectively.Instance(m) {
		t.Errorf("element is %T, want the complete MutableString", e)
	}
}

// TestInitFailure tests that a failed init releases the references it took.
func TestInitFailure(t *testing.T) {
	elems := strings(t, "x", "y")
	defer release(elems)
	cases := map[string]interface{}{
		"NotObject": "not an object",
		"Nil":       nil,
		"TypedNil":  (*str.String)(nil),
	}
	for name, bad := range cases {
		t.Run(name, func(t *testing.T) {
			before := objectively.LiveObjects()
			o, err := objectively.New(array.ArrayClass, elems[0], elems[1], bad)
			if err == nil {
				objectively.Release(o)
				t.Fatal("no error")
			}
			for _, e := range elems {
				testutils.CheckRefCount(t, e, 1)
			}
			if after := objectively.LiveObjects(); after != before {
				t.Errorf("live objects changed from %d to %d", before, after)
			}
		})
	}
}

// TestDescription tests that descriptions dispatch to each element's class.
func TestDescription(t *testing.T) {
	elems := strings(t, "one", "two")
	defer release(elems)
	inner, err := array.New(elems[1])
	if err != nil {
		t.Fatal(err)
	}
	defer objectively.Release(inner)
	a, err := array.New(elems[0], inner)
	if err != nil {
		t.Fatal(err)
	}
	defer objectively.Release(a)
	if d := objectively.Description(a); d != "[one, [two]]" {
		t.Errorf("wrong description %q", d)
	}
	e, err := array.New()
	if err != nil {
		t.Fatal(err)
	}
	defer objectively.Release(e)
	if d := objectively.Description(e); d != "[]" {
		t.Errorf("wrong empty description %q", d)
	}
}

// TestEquality tests element-wise equality and copying.
func TestEquality(t *testing.T) {
	xs := strings(t, "p", "q")
	ys := strings(t, "p", "q")
	zs := strings(t, "p")
	defer release(xs)
	defer release(ys)
	defer release(zs)
	x, err := array.New(xs...)
	if err != nil {
		t.Fatal(err)
	}
	defer objectively.Release(x)
	y, err := array.New(ys...)
	if err != nil {
		t.Fatal(err)
	}
	defer objectively.Release(y)
	z, err := array.New(zs...)
	if err != nil {
		t.Fatal(err)
	}
	defer objectively.Release(z)
	if !objectively.IsEqual(x, y) || objectively.Hash(x) != objectively.Hash(y) {
		t.Error("arrays with equal elements are unequal or hash differently")
	}
	if objectively.IsEqual(x, z) {
		t.Error("arrays of different lengths are equal")
	}
	c, err := objectively.Copy(x)
	if err != nil {
		t.Fatal(err)
	}
	if !objectively.IsEqual(c, x) {
		t.Error("copy is not equal to the original")
	}
	testutils.CheckRefCount(t, xs[0], 3)
	objectively.Release(c)
	testutils.CheckRefCount(t, xs[0], 2)
}
