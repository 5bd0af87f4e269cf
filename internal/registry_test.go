package internal_test

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zephyrtronium/objectively/internal"
	"github.com/zephyrtronium/objectively/testutils"
)

type W struct{ internal.Object }
type X struct{ internal.Object }
type Y struct{ internal.Object }
type Z struct{ internal.Object }

// raceClass returns a class whose Initialize and Teardown hooks count their
// calls. Initialize sleeps to widen the window for concurrent first use.
func raceClass(name string, inst internal.Instance, inits, teardowns *atomic.Int32) *internal.Class {
	return &internal.Class{
		Name:       name,
		Superclass: internal.ObjectClass,
		Instance:   inst,
		TableSize:  internal.ObjectTableSize,
		Initialize: func(t internal.Table) {
			inits.Add(1)
			time.Sleep(5 * time.Millisecond)
		},
		Teardown: func(c *internal.Class) {
			teardowns.Add(1)
		},
	}
}

// TestConcurrentInitialize tests that a class used concurrently for the first
// time initializes exactly once and every user sees the same table.
func TestConcurrentInitialize(t *testing.T) {
	var inits, teardowns atomic.Int32
	c := raceClass("ConcurrentW", (*W)(nil), &inits, &teardowns)
	const n = 16
	tables := make([]uintptr, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			o, err := internal.New(c)
			if err != nil {
				t.Error(err)
				return
			}
			tables[i] = reflect.ValueOf(c.Table()).Pointer()
			internal.Release(o)
		}(i)
	}
	close(start)
	wg.Wait()
	if k := inits.Load(); k != 1 {
		t.Errorf("Initialize ran %d times", k)
	}
	for i, p := range tables {
		if p != tables[0] {
			t.Errorf("goroutine %d saw table %#x, goroutine 0 saw %#x", i, p, tables[0])
		}
	}
	if !c.Ready() {
		t.Error("class is not ready")
	}
	internal.Teardown()
	if k := teardowns.Load(); k != 1 {
		t.Errorf("Teardown hook ran %d times", k)
	}
}

// TestRegistryConcurrent constructs 1000 instances of four classes across 8
// goroutines and checks that each class is registered exactly once.
func TestRegistryConcurrent(t *testing.T) {
	internal.Teardown()
	var inits, teardowns [4]atomic.Int32
	classes := []*internal.Class{
		raceClass("RaceW", (*W)(nil), &inits[0], &teardowns[0]),
		raceClass("RaceX", (*X)(nil), &inits[1], &teardowns[1]),
		raceClass("RaceY", (*Y)(nil), &inits[2], &teardowns[2]),
		raceClass("RaceZ", (*Z)(nil), &inits[3], &teardowns[3]),
	}
	const (
		workers = 8
		total   = 1000
	)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			<-start
			for i := w; i < total; i += workers {
				o, err := internal.New(classes[i%len(classes)])
				if err != nil {
					t.Error(err)
					return
				}
				internal.Release(o)
			}
		}(w)
	}
	close(start)
	wg.Wait()

	reg := internal.Classes()
	seen := make(map[*internal.Class]int)
	for _, c := range reg {
		seen[c]++
	}
	for i, c := range classes {
		if seen[c] != 1 {
			t.Errorf("%s registered %d times", c.Name, seen[c])
		}
		if k := inits[i].Load(); k != 1 {
			t.Errorf("%s initialized %d times", c.Name, k)
		}
	}
	if seen[internal.ObjectClass] != 1 {
		t.Errorf("Object registered %d times", seen[internal.ObjectClass])
	}
	// The registry holds the four classes plus the root.
	if len(reg) != len(classes)+1 {
		t.Errorf("registry has %d classes, want %d: %v", len(reg), len(classes)+1, reg)
	}
	if reg[len(reg)-1] != internal.ObjectClass {
		t.Errorf("root is not the first registered class: %v", reg)
	}
}

// TestRegistryOrder tests that superclasses register before subclasses.
func TestRegistryOrder(t *testing.T) {
	internal.Teardown()
	b := newB("order", 0)
	defer internal.Release(b)
	reg := internal.Classes()
	want := []*internal.Class{BClass, AClass, internal.ObjectClass}
	if len(reg) != len(want) {
		t.Fatalf("wrong registry: want %v, have %v", want, reg)
	}
	for i := range want {
		if reg[i] != want[i] {
			t.Errorf("wrong class at %d: want %v, have %v", i, want[i], reg[i])
		}
	}
}

// TestTeardown tests that Teardown runs hooks in registry order, releases
// tables only after all hooks run, and allows classes to initialize again.
func TestTeardown(t *testing.T) {
	internal.Teardown()
	var order []string
	var tablesDuringHooks []bool
	var first, second *internal.Class
	first = &internal.Class{
		Name:       "TeardownFirst",
		Superclass: internal.ObjectClass,
		Instance:   (*X)(nil),
		TableSize:  internal.ObjectTableSize,
		Initialize: func(internal.Table) {},
		Teardown: func(c *internal.Class) {
			order = append(order, c.Name)
			// second tore down already, but its table must still exist.
			tablesDuringHooks = append(tablesDuringHooks, len(second.Table()) > 0)
		},
	}
	second = &internal.Class{
		Name:       "TeardownSecond",
		Superclass: internal.ObjectClass,
		Instance:   (*Y)(nil),
		TableSize:  internal.ObjectTableSize,
		Initialize: func(internal.Table) {},
		Teardown: func(c *internal.Class) {
			order = append(order, c.Name)
			tablesDuringHooks = append(tablesDuringHooks, len(first.Table()) > 0)
		},
	}
	for _, c := range []*internal.Class{first, second} {
		o, err := internal.New(c)
		if err != nil {
			t.Fatal(err)
		}
		internal.Release(o)
	}
	internal.Teardown()
	if len(order) != 2 || order[0] != "TeardownSecond" || order[1] != "TeardownFirst" {
		t.Errorf("wrong teardown order: %v", order)
	}
	for i, ok := range tablesDuringHooks {
		if !ok {
			t.Errorf("hook %d ran after another class was released", i)
		}
	}
	if first.Ready() || second.Ready() || internal.ObjectClass.Ready() {
		t.Error("classes still ready after teardown")
	}
	if n := len(internal.Classes()); n != 0 {
		t.Errorf("registry has %d classes after teardown", n)
	}
	// Classes initialize again on next use.
	o, err := internal.New(first)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Ready() || !internal.ObjectClass.Ready() {
		t.Error("classes did not initialize again")
	}
	internal.Release(o)
	// Teardown twice in a row is harmless.
	internal.Teardown()
	internal.Teardown()
}

// TestMalformedClasses tests that authoring errors are fatal.
func TestMalformedClasses(t *testing.T) {
	nop := func(internal.Table) {}
	cases := map[string]*internal.Class{
		"NoName":       {Superclass: internal.ObjectClass, Instance: (*W)(nil), TableSize: internal.ObjectTableSize, Initialize: nop},
		"NoInitialize": {Name: "NoInitialize", Superclass: internal.ObjectClass, Instance: (*W)(nil), TableSize: internal.ObjectTableSize},
		"NoInstance":   {Name: "NoInstance", Superclass: internal.ObjectClass, TableSize: internal.ObjectTableSize, Initialize: nop},
		"NoSuperclass": {Name: "NoSuperclass", Instance: (*W)(nil), TableSize: internal.ObjectTableSize, Initialize: nop},
		"TableShrinks": {Name: "TableShrinks", Superclass: AClass, Instance: (*B)(nil), TableSize: internal.ObjectTableSize, Initialize: nop},
		"NotEmbedded":  {Name: "NotEmbedded", Superclass: AClass, Instance: (*W)(nil), TableSize: AClass.TableSize, Initialize: nop},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			testutils.CheckFatal(t, "initialize", func() { internal.New(c) })
			if c.Ready() {
				t.Error("malformed class became ready")
			}
			// Later uses are fatal, too.
			testutils.CheckFatal(t, "initialize", func() { internal.New(c) })
		})
	}
}

// TestSuperclassCycle tests that a cycle in a superclass chain is fatal rather
// than a deadlock.
func TestSuperclassCycle(t *testing.T) {
	p := &internal.Class{Name: "CycleP", Instance: (*W)(nil), TableSize: internal.ObjectTableSize, Initialize: func(internal.Table) {}}
	q := &internal.Class{Name: "CycleQ", Instance: (*X)(nil), TableSize: internal.ObjectTableSize, Initialize: func(internal.Table) {}}
	p.Superclass, q.Superclass = q, p
	testutils.CheckFatal(t, "initialize", func() { internal.New(p) })
}
