package internal_test

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/zephyrtronium/objectively/internal"
)

// A is a direct subclass of Object with a name.
type A struct {
	internal.Object
	name string
}

// B is a subclass of A that overrides description.
type B struct {
	A
	extra int
}

const (
	NameEntry  = internal.Selector(internal.ObjectTableSize + iota)
	aTableSize = internal.ObjectTableSize + iota
)

const (
	ExtraEntry = internal.Selector(aTableSize + iota)
	bTableSize = aTableSize + iota
)

var AClass = &internal.Class{
	Name:       "A",
	Superclass: internal.ObjectClass,
	Instance:   (*A)(nil),
	TableSize:  aTableSize,
}

var BClass = &internal.Class{
	Name:       "B",
	Superclass: AClass,
	Instance:   (*B)(nil),
	TableSize:  bTableSize,
}

// errRejected is returned by A's init when asked to fail.
var errRejected = errors.New("rejected")

var (
	// trail records dealloc calls in order.
	trail   []string
	trailMu sync.Mutex
	// aDeallocs counts A's dealloc calls.
	aDeallocs atomic.Int32
)

func record(s string) {
	trailMu.Lock()
	trail = append(trail, s)
	trailMu.Unlock()
}

func takeTrail() []string {
	trailMu.Lock()
	defer trailMu.Unlock()
	r := trail
	trail = nil
	return r
}

func init() {
	AClass.Initialize = func(t internal.Table) {
		t[internal.DeallocEntry] = aDealloc
		t[internal.DescriptionEntry] = aDescription
		t[internal.InitEntry] = aInit
		t[NameEntry] = aName
	}
	BClass.Initialize = func(t internal.Table) {
		t[internal.DeallocEntry] = bDealloc
		t[internal.DescriptionEntry] = bDescription
		t[internal.InitEntry] = bInit
		t[ExtraEntry] = bExtra
	}
}

// aInit takes an optional name. The name "fail" makes it fail.
func aInit(self internal.Instance, args ...interface{}) (internal.Instance, error) {
	self, err := internal.Super(AClass).Init()(self, args...)
	if err != nil {
		return nil, err
	}
	a := internal.Cast[*A](self, AClass)
	if len(args) > 0 {
		name, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("A name must be string, not %T", args[0])
		}
		if name == "fail" {
			return nil, errRejected
		}
		a.name = name
	}
	return self, nil
}

func aDealloc(self internal.Instance) {
	aDeallocs.Add(1)
	record("A")
	internal.Super(AClass).Dealloc()(self)
}

func aDescription(self internal.Instance) string {
	return "A " + internal.Cast[*A](self, AClass).name
}

func aName(self internal.Instance) string {
	return internal.Cast[*A](self, AClass).name
}

// bInit takes A's arguments followed by an optional int.
func bInit(self internal.Instance, args ...interface{}) (internal.Instance, error) {
	self, err := internal.Super(BClass).Init()(self, args...)
	if err != nil {
		return nil, err
	}
	b := internal.Cast[*B](self, BClass)
	if len(args) > 1 {
		n, ok := args[1].(int)
		if !ok {
			return nil, fmt.Errorf("B extra must be int, not %T", args[1])
		}
		b.extra = n
	}
	return self, nil
}

func bDealloc(self internal.Instance) {
	record("B")
	internal.Super(BClass).Dealloc()(self)
}

func bDescription(self internal.Instance) string {
	b := internal.Cast[*B](self, BClass)
	return fmt.Sprintf("B %s %d", b.name, b.extra)
}

func bExtra(self internal.Instance) int {
	return internal.Cast[*B](self, BClass).extra
}

// C is unrelated to A and B.
type C struct {
	internal.Object
}

var CClass = &internal.Class{
	Name:       "C",
	Superclass: internal.ObjectClass,
	Instance:   (*C)(nil),
	TableSize:  internal.ObjectTableSize,
}

func init() {
	CClass.Initialize = func(t internal.Table) {}
}

func newA(name string) *A {
	o, err := internal.New(AClass, name)
	if err != nil {
		panic(err)
	}
	return internal.Cast[*A](o, AClass)
}

func newB(name string, extra int) *B {
	o, err := internal.New(BClass, name, extra)
	if err != nil {
		panic(err)
	}
	return internal.Cast[*B](o, BClass)
}
