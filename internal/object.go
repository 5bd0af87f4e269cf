package internal

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// Object is the header of every instance. Every instance type is a struct
// whose first field embeds its superclass's instance type, so that following
// first fields from any instance eventually reaches an Object.
//
// Always use New or Copy to obtain objects. Objects created directly are not
// alive, and the runtime aborts when they are used.
type Object struct {
	// class is the object's class. It is nil once the object is freed.
	class *Class
	// table is the class's dispatch table, cached at construction.
	table Table
	// self is the complete instance that contains this header.
	self Instance
	// refs is the object's reference count. It lives outside the instance so
	// that copying an instance never reads a count other goroutines update.
	refs *atomic.Int32
	// size is the number of bytes reserved for the object.
	size uintptr
}

// Instance is any object. Types satisfy it by embedding Object, directly or
// through their superclass's instance type.
type Instance interface {
	// Header returns the object's header.
	Header() *Object

	isObject()
}

// Header returns o.
func (o *Object) Header() *Object {
	return o
}

func (*Object) isObject() {}

// Class returns the object's class, or nil if the object is not alive.
func (o *Object) Class() *Class {
	return o.class
}

// ObjectClass is the root class. Every class descends from it.
var ObjectClass = &Class{
	Name:      "Object",
	Instance:  (*Object)(nil),
	TableSize: ObjectTableSize,
}

func init() {
	ObjectClass.Initialize = initObject
}

func initObject(t Table) {
	t[CopyEntry] = objectCopy
	t[DeallocEntry] = objectDealloc
	t[DescriptionEntry] = objectDescription
	t[HashEntry] = objectHash
	t[InitEntry] = objectInit
	t[IsEqualEntry] = objectIsEqual
	t[IsKindOfEntry] = objectIsKindOf
}

// objectCopy is the default copy method. It makes a shallow copy of the
// complete instance.
func objectCopy(self Instance) (Instance, error) {
	h := self.Header()
	c := h.class
	if err := reserve(c.size); err != nil {
		return nil, fmt.Errorf("copying %s: %w", c.Name, err)
	}
	v := reflect.New(c.typ)
	v.Elem().Set(reflect.ValueOf(h.self).Elem())
	r := v.Interface().(Instance)
	adopt(r, c)
	return r, nil
}

func objectDealloc(self Instance) {}

func objectDescription(self Instance) string {
	h := self.Header()
	return fmt.Sprintf("%s@%p", h.class.Name, h.self)
}

func objectHash(self Instance) int {
	return int(uniqueID(self.Header()))
}

func objectInit(self Instance, args ...interface{}) (Instance, error) {
	return self, nil
}

func objectIsEqual(self, other Instance) bool {
	if isNil(other) {
		return false
	}
	return self.Header() == other.Header()
}

func objectIsKindOf(self Instance, c *Class) bool {
	return IsKindOf(self, c)
}

// isNil returns whether o is nil or a nil pointer.
func isNil(o Instance) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// header returns the header of o, aborting if o is not a live object.
func header(op string, o Instance) *Object {
	if isNil(o) {
		fatalf(op, nil, "nil object")
	}
	h := o.Header()
	if h.class == nil {
		fatalf(op, nil, "%T@%p is not a live object", o, o)
	}
	if h.class.state.Load() != ready {
		fatalf(op, h.class, "object's class is not ready")
	}
	return h
}

// ClassOf returns the class of o. It is fatal if o is not alive.
func ClassOf(o Instance) *Class {
	return header("classOf", o).class
}

// Copy returns a copy of o using its class's copy method. The copy has a
// reference count of 1.
func Copy(o Instance) (Instance, error) {
	h := header("copy", o)
	return h.table.Copy()(h.self)
}

// Description returns a description of o using its class's description
// method.
func Description(o Instance) string {
	h := header("description", o)
	return h.table.Description()(h.self)
}

// Hash returns the hash of o using its class's hash method.
func Hash(o Instance) int {
	h := header("hash", o)
	return h.table.Hash()(h.self)
}

// IsEqual returns whether o and other are equal using o's class's isEqual
// method. other may be nil.
func IsEqual(o, other Instance) bool {
	h := header("isEqual", o)
	if !isNil(other) {
		other = header("isEqual", other).self
	}
	return h.table.IsEqual()(h.self, other)
}

// Self returns the complete instance containing o's header. This is the
// value every method receives as self.
func Self(o Instance) Instance {
	return header("self", o).self
}

// Method returns the complete instance of o and the entry at sel in its
// class's table, for calling methods that classes append to the protocol. It
// is fatal if o is not a kind of c, the class that declares sel.
func Method(o Instance, c *Class, sel Selector) (self Instance, m interface{}) {
	ensure(c)
	h := header("method", o)
	if !kindOf("method", h.class, c) {
		fatalf("method", h.class, "not a kind of %s", c.Name)
	}
	return h.self, h.table.Method(sel)
}
