// Package array provides the Array class, an immutable list of objects.
package array

import (
	"fmt"
	"strings"

	"github.com/zephyrtronium/objectively"
)

// Array is an immutable list of objects. An Array holds a reference to each
// of its elements for as long as it is alive.
type Array struct {
	objectively.Object
	elems []objectively.Instance
}

// Methods Array adds to the object protocol.
const (
	// CountEntry is a func(self objectively.Instance) int.
	CountEntry = objectively.Selector(objectively.ObjectTableSize + iota)
	// ObjectAtEntry is a func(self objectively.Instance, i int)
	// objectively.Instance. The result is not retained.
	ObjectAtEntry

	// ArrayTableSize is the TableSize of ArrayClass.
	ArrayTableSize = objectively.ObjectTableSize + iota
)

// ArrayClass is the class of arrays. Its init method accepts the elements,
// each of which it retains.
var ArrayClass = &objectively.Class{
	Name:       "Array",
	Superclass: objectively.ObjectClass,
	Instance:   (*Array)(nil),
	TableSize:  ArrayTableSize,
}

func init() {
	ArrayClass.Initialize = initArray
}

func initArray(t objectively.Table) {
	t[objectively.CopyEntry] = arrayCopy
	t[objectively.DeallocEntry] = dealloc
	t[objectively.DescriptionEntry] = description
	t[objectively.HashEntry] = hash
	t[objectively.InitEntry] = arrayInit
	t[objectively.IsEqualEntry] = isEqual

	t[CountEntry] = count
	t[ObjectAtEntry] = objectAt
}

// New creates an Array holding elems.
func New(elems ...objectively.Instance) (*Array, error) {
	args := make([]interface{}, len(elems))
	for i, e := range elems {
		args[i] = e
	}
	o, err := objectively.New(ArrayClass, args...)
	if err != nil {
		return nil, err
	}
	return objectively.Cast[*Array](o, ArrayClass), nil
}

// Count returns the number of elements in an Array.
func Count(o objectively.Instance) int {
	self, m := objectively.Method(o, ArrayClass, CountEntry)
	return m.(func(objectively.Instance) int)(self)
}

// ObjectAt returns the element at index i of an Array without retaining it.
// It panics if i is out of range.
func ObjectAt(o objectively.Instance, i int) objectively.Instance {
	self, m := objectively.Method(o, ArrayClass, ObjectAtEntry)
	return m.(func(objectively.Instance, int) objectively.Instance)(self, i)
}

func elements(self objectively.Instance) []objectively.Instance {
	return objectively.Cast[*Array](self, ArrayClass).elems
}

func arrayInit(self objectively.Instance, args ...interface{}) (objectively.Instance, error) {
	self, err := objectively.Super(ArrayClass).Init()(self, args...)
	if err != nil {
		return nil, err
	}
	a := objectively.Cast[*Array](self, ArrayClass)
	a.elems = make([]objectively.Instance, 0, len(args))
	for i, arg := range args {
		e, ok := arg.(objectively.Instance)
		if !ok || !objectively.IsKindOf(e, objectively.ObjectClass) {
			// Give back the references taken so far.
			for _, e := range a.elems {
				objectively.Release(e)
			}
			a.elems = nil
			return nil, fmt.Errorf("array element %d is %T, not an object", i, arg)
		}
		objectively.Retain(e)
		a.elems = append(a.elems, objectively.Self(e))
	}
	return self, nil
}

func arrayCopy(self objectively.Instance) (objectively.Instance, error) {
	elems := elements(self)
	args := make([]interface{}, len(elems))
	for i, e := range elems {
		args[i] = e
	}
	return objectively.New(ArrayClass, args...)
}

func dealloc(self objectively.Instance) {
	a := objectively.Cast[*Array](self, ArrayClass)
	for _, e := range a.elems {
		objectively.Release(e)
	}
	a.elems = nil
	objectively.Super(ArrayClass).Dealloc()(self)
}

func description(self objectively.Instance) string {
	elems := elements(self)
	d := make([]string, len(elems))
	for i, e := range elems {
		d[i] = objectively.Description(e)
	}
	return "[" + strings.Join(d, ", ") + "]"
}

func hash(self objectively.Instance) int {
	h := len(elements(self))
	for _, e := range elements(self) {
		h = 31*h + objectively.Hash(e)
	}
	return h
}

func isEqual(self, other objectively.Instance) bool {
	if !objectively.IsKindOf(other, ArrayClass) {
		return false
	}
	a, b := elements(self), elements(other)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !objectively.IsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func count(self objectively.Instance) int {
	return len(elements(self))
}

func objectAt(self objectively.Instance, i int) objectively.Instance {
	return elements(self)[i]
}
