package internal

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/zephyrtronium/contains"
)

// registry is the process-wide list of initialized classes. Classes are
// pushed onto the head, so the list runs from most to least recently
// initialized.
var registry struct {
	// head is the most recently published class.
	head atomic.Pointer[Class]
	// count is the number of published classes.
	count atomic.Int32
	// armed is set when the root class initializes and cleared by Teardown.
	armed atomic.Bool
}

// ensure initializes c if it is not already initialized. It is safe to call
// concurrently for the same or different classes; exactly one caller builds
// each class, and all others wait until it is ready.
func ensure(c *Class) {
	if c == nil {
		fatalf("initialize", nil, "nil class")
	}
	if c.state.Load() == ready {
		return
	}
	c.once.Do(func() { initialize(c) })
	if c.state.Load() != ready {
		// The builder panicked. Nobody may use a half-built class.
		fatalf("initialize", c, "class failed to initialize")
	}
}

// initialize builds and publishes c. It must be called only within c.once.
func initialize(c *Class) {
	if !c.state.CompareAndSwap(uninitialized, initializing) {
		fatalf("initialize", c, "class is already initializing")
	}
	checkAuthoring(c)
	super := c.Superclass
	if c == ObjectClass {
		setup()
	} else {
		ensure(super)
	}
	checkLayout(c)

	t := make(Table, c.TableSize)
	if super != nil {
		copy(t, super.table)
	}
	c.Initialize(t)
	c.table = t
	tracef("initialized class %s (instance %d bytes, %d entries)", c.Name, c.size, len(t))

	publish(c)
	c.state.Store(ready)
}

// checkAuthoring verifies the parts of c that must be correct before its
// superclass can be initialized.
func checkAuthoring(c *Class) {
	if c.Name == "" {
		fatalf("initialize", c, "class has no name")
	}
	if c.Initialize == nil {
		fatalf("initialize", c, "class has no Initialize hook")
	}
	if c.Instance == nil {
		fatalf("initialize", c, "class has no Instance type")
	}
	if c == ObjectClass {
		if c.Superclass != nil {
			fatalf("initialize", c, "root class has superclass %s", c.Superclass.Name)
		}
		return
	}
	if c.Superclass == nil {
		fatalf("initialize", c, "class has no superclass")
	}
	// A cycle in the superclass chain would make initialization wait on
	// itself forever.
	set := contains.Set{}
	for k := c; k != nil; k = k.Superclass {
		if !set.Add(classID(k)) {
			fatalf("initialize", c, "superclass chain contains a cycle at %s", k.Name)
		}
	}
}

// checkLayout verifies c's instance type and sizes against its superclass,
// which must already be ready, and records the instance layout.
func checkLayout(c *Class) {
	typ := reflect.TypeOf(c.Instance)
	if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		fatalf("initialize", c, "Instance must be a pointer to struct, not %v", typ)
	}
	elem := typ.Elem()
	super := c.Superclass
	if super == nil {
		if c.TableSize < ObjectTableSize {
			fatalf("initialize", c, "table size %d is smaller than the object protocol", c.TableSize)
		}
		c.typ, c.size = elem, elem.Size()
		return
	}
	if elem.NumField() == 0 {
		fatalf("initialize", c, "%v does not embed %v", elem, super.typ)
	}
	first := elem.Field(0)
	if !first.Anonymous || first.Type != super.typ {
		fatalf("initialize", c, "first field of %v must embed %v", elem, super.typ)
	}
	if elem.Size() < super.size {
		fatalf("initialize", c, "instance size %d is smaller than superclass %s's %d", elem.Size(), super.Name, super.size)
	}
	if c.TableSize < super.TableSize {
		fatalf("initialize", c, "table size %d is smaller than superclass %s's %d", c.TableSize, super.Name, super.TableSize)
	}
	c.typ, c.size = elem, elem.Size()
}

// publish pushes c onto the registry.
func publish(c *Class) {
	for {
		head := registry.head.Load()
		c.next = head
		if registry.head.CompareAndSwap(head, c) {
			break
		}
	}
	registry.count.Add(1)
	tracef("published class %s", c.Name)
}

// setup prepares the runtime when the root class initializes.
func setup() {
	registry.armed.Store(true)
	tracef("runtime armed")
}

// Classes returns the initialized classes, most recently initialized first.
func Classes() []*Class {
	r := make([]*Class, 0, registry.count.Load())
	set := contains.Set{}
	for c := registry.head.Load(); c != nil; c = c.next {
		if !set.Add(classID(c)) {
			fatalf("registry", c, "registry contains a cycle")
		}
		if c.state.Load() != ready {
			fatalf("registry", c, "registered class is not ready")
		}
		r = append(r, c)
	}
	return r
}

// Teardown runs the Teardown hook of each initialized class in registry order,
// then releases every class's dispatch table and returns every class to the
// uninitialized state. Classes used afterward initialize again.
//
// Teardown is meant to run at process exit. It must not run concurrently with
// any other use of the runtime, and objects still alive when it runs must not
// be used again.
func Teardown() {
	if !registry.armed.CompareAndSwap(true, false) {
		return
	}
	classes := Classes()
	for _, c := range classes {
		if c.Teardown != nil {
			tracef("tearing down class %s", c.Name)
			c.Teardown(c)
		}
	}
	// Hooks may use any class's table, so nothing is released until all have
	// run.
	for _, c := range classes {
		c.table = nil
	}
	registry.head.Store(nil)
	registry.count.Store(0)
	for _, c := range classes {
		c.next = nil
		c.typ, c.size = nil, 0
		c.once = sync.Once{}
		c.state.Store(uninitialized)
	}
	tracef("released %d classes", len(classes))
}
