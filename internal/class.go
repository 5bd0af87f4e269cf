package internal

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Class describes a type of object. Each type authors exactly one Class as a
// package-level variable, and every instance of the type shares it.
//
// A Class is initialized lazily by the first allocation or cast that uses it.
// Initialization first initializes the superclass, then builds the class's
// dispatch table by copying the superclass's table and letting Initialize
// override entries and append new ones.
type Class struct {
	// Name is the name of the class. It must not be empty.
	Name string
	// Superclass is the parent class. Only the root class, ObjectClass, may
	// have a nil Superclass.
	Superclass *Class
	// Instance is a typed nil pointer to the Go struct that holds instances
	// of the class, e.g. (*String)(nil). The struct's first field must be the
	// embedded instance type of the superclass.
	Instance Instance
	// TableSize is the number of entries in the class's dispatch table. It
	// must be at least the superclass's TableSize.
	TableSize int
	// Initialize installs the class's overrides and new entries into its
	// table, which already holds a copy of the superclass's table.
	Initialize func(t Table)
	// Teardown, if not nil, is called once by the runtime Teardown.
	Teardown func(c *Class)

	// state is the initialization state of the class.
	state atomic.Int32
	// once guards building the class.
	once sync.Once
	// table is the class's dispatch table, owned by the class.
	table Table
	// typ is the instance struct type.
	typ reflect.Type
	// size is the instance size in bytes.
	size uintptr
	// next is the next class in the registry.
	next *Class
}

// Class initialization states.
const (
	uninitialized int32 = iota
	initializing
	ready
)

// Ready returns whether the class has been initialized and published.
func (c *Class) Ready() bool {
	return c.state.Load() == ready
}

// Table returns the class's dispatch table, initializing the class if needed.
// The table must not be modified.
func (c *Class) Table() Table {
	ensure(c)
	return c.table
}

// InstanceSize returns the size in bytes of instances of the class,
// initializing the class if needed.
func (c *Class) InstanceSize() uintptr {
	ensure(c)
	return c.size
}

// IsSubclassOf returns whether c is super or has super among its ancestors.
func (c *Class) IsSubclassOf(super *Class) bool {
	for k := c; k != nil; k = k.Superclass {
		if k == super {
			return true
		}
	}
	return false
}

// String returns the class's name.
func (c *Class) String() string {
	return c.Name
}

// Super returns the dispatch table of c's superclass, for classes to chain to
// the behavior they override. It is fatal to call Super on the root class.
func Super(c *Class) Table {
	if c.Superclass == nil {
		fatalf("super", c, "root class has no superclass")
	}
	return c.Superclass.Table()
}

// A Selector is an offset into a dispatch table.
type Selector int

// Selectors of the object protocol. Every dispatch table begins with these.
// Subclasses number their own selectors from their superclass's TableSize.
const (
	CopyEntry Selector = iota
	DeallocEntry
	DescriptionEntry
	HashEntry
	InitEntry
	IsEqualEntry
	IsKindOfEntry

	// ObjectTableSize is the TableSize of ObjectClass.
	ObjectTableSize int = iota
)

// Protocol method types.
type (
	// CopyFunc returns a shallow copy of self with a reference count of 1.
	CopyFunc = func(self Instance) (Instance, error)
	// DeallocFunc releases resources owned by self. It is called exactly once,
	// when the reference count of self reaches zero, and must chain to the
	// superclass's dealloc after releasing its own resources.
	DeallocFunc = func(self Instance)
	// DescriptionFunc returns a human-readable summary of self.
	DescriptionFunc = func(self Instance) string
	// HashFunc returns a hash of self consistent with IsEqualFunc.
	HashFunc = func(self Instance) int
	// InitFunc initializes a newly allocated instance with the constructor
	// arguments. It must chain to the superclass's init before initializing
	// its own fields. On failure it releases anything it acquired and returns
	// an error. It may instead return a different, retained instance; the
	// runtime then releases self.
	InitFunc = func(self Instance, args ...interface{}) (Instance, error)
	// IsEqualFunc tests whether other is equal to self. other may be nil or
	// of any class.
	IsEqualFunc = func(self, other Instance) bool
	// IsKindOfFunc tests whether self is an instance of c or its subclasses.
	IsKindOfFunc = func(self Instance, c *Class) bool
)

// Table is a class's dispatch table. Each entry is a function whose type is
// determined by its selector.
type Table []interface{}

// entry returns the entry at sel, aborting if the table is too short or the
// entry is unset.
func (t Table) entry(sel Selector) interface{} {
	if int(sel) < 0 || int(sel) >= len(t) {
		fatalf("dispatch", nil, "selector %d out of range for table of size %d", sel, len(t))
	}
	m := t[sel]
	if m == nil {
		fatalf("dispatch", nil, "no method at selector %d", sel)
	}
	return m
}

// Method returns the entry at sel. It aborts if the entry is unset.
func (t Table) Method(sel Selector) interface{} {
	return t.entry(sel)
}

// Copy returns the table's copy method.
func (t Table) Copy() CopyFunc {
	f, ok := t.entry(CopyEntry).(CopyFunc)
	if !ok {
		fatalf("dispatch", nil, "copy entry has type %T", t[CopyEntry])
	}
	return f
}

// Dealloc returns the table's dealloc method.
func (t Table) Dealloc() DeallocFunc {
	f, ok := t.entry(DeallocEntry).(DeallocFunc)
	if !ok {
		fatalf("dispatch", nil, "dealloc entry has type %T", t[DeallocEntry])
	}
	return f
}

// Description returns the table's description method.
func (t Table) Description() DescriptionFunc {
	f, ok := t.entry(DescriptionEntry).(DescriptionFunc)
	if !ok {
		fatalf("dispatch", nil, "description entry has type %T", t[DescriptionEntry])
	}
	return f
}

// Hash returns the table's hash method.
func (t Table) Hash() HashFunc {
	f, ok := t.entry(HashEntry).(HashFunc)
	if !ok {
		fatalf("dispatch", nil, "hash entry has type %T", t[HashEntry])
	}
	return f
}

// Init returns the table's init method.
func (t Table) Init() InitFunc {
	f, ok := t.entry(InitEntry).(InitFunc)
	if !ok {
		fatalf("dispatch", nil, "init entry has type %T", t[InitEntry])
	}
	return f
}

// IsEqual returns the table's isEqual method.
func (t Table) IsEqual() IsEqualFunc {
	f, ok := t.entry(IsEqualEntry).(IsEqualFunc)
	if !ok {
		fatalf("dispatch", nil, "isEqual entry has type %T", t[IsEqualEntry])
	}
	return f
}

// IsKindOf returns the table's isKindOf method.
func (t Table) IsKindOf() IsKindOfFunc {
	f, ok := t.entry(IsKindOfEntry).(IsKindOfFunc)
	if !ok {
		fatalf("dispatch", nil, "isKindOf entry has type %T", t[IsKindOfEntry])
	}
	return f
}
