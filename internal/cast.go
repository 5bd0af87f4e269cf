package internal

import (
	"reflect"
)

// IsKindOf returns whether o is an instance of c or of a subclass of c. It
// returns false if o is nil.
func IsKindOf(o Instance, c *Class) bool {
	if isNil(o) {
		return false
	}
	ensure(c)
	return kindOf("isKindOf", header("isKindOf", o).class, c)
}

// kindOf walks k's ancestry looking for c.
func kindOf(op string, k, c *Class) bool {
	for ; k != nil; k = k.Superclass {
		if k.state.Load() != ready {
			fatalf(op, k, "ancestor class is not ready")
		}
		// Every class descends from the root, so there is no need to walk
		// the rest of the chain.
		if k == c || c == ObjectClass {
			return true
		}
	}
	return false
}

// Cast converts o to T after verifying that o is an instance of c or of a
// subclass of c. T may be the instance type of any class in o's ancestry or an
// interface o implements. If o is nil, the result is the zero T.
//
// It is fatal if o is not a kind of c or if o cannot be represented as a T.
// Use IsKindOf when the relationship is not certain.
func Cast[T Instance](o Instance, c *Class) T {
	var zero T
	if isNil(o) {
		return zero
	}
	ensure(c)
	h := header("cast", o)
	if !kindOf("cast", h.class, c) {
		fatalf("cast", h.class, "not a kind of %s", c.Name)
	}
	r, ok := narrow[T](h.self)
	if !ok {
		fatalf("cast", h.class, "%T cannot be represented as %v", h.self, reflect.TypeOf((*T)(nil)).Elem())
	}
	return r
}

// narrow finds the representation of o as a T, following embedded
// superclass instances from the complete instance.
func narrow[T Instance](o Instance) (T, bool) {
	if r, ok := o.(T); ok {
		return r, true
	}
	var zero T
	want := reflect.TypeOf((*T)(nil)).Elem()
	if want.Kind() != reflect.Ptr {
		return zero, false
	}
	v := reflect.ValueOf(o).Elem()
	for v.Kind() == reflect.Struct && v.NumField() > 0 && v.Type().Field(0).Anonymous {
		v = v.Field(0)
		if reflect.PtrTo(v.Type()) == want {
			p, ok := fieldAddr(v)
			if !ok {
				return zero, false
			}
			return p.Interface().(T), true
		}
	}
	return zero, false
}
