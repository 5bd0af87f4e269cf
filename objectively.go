package objectively

import (
	"log"

	"github.com/zephyrtronium/objectively/internal"
)

// Class describes a type of object. Each type authors exactly one Class as a
// package-level variable.
type Class = internal.Class

// Object is the header of every instance. Instance types embed their
// superclass's instance type as their first field, and the root instance type
// is Object.
type Object = internal.Object

// Instance is any object.
type Instance = internal.Instance

// Table is a class's dispatch table.
type Table = internal.Table

// A Selector is an offset into a dispatch table.
type Selector = internal.Selector

// Config holds the runtime's tunable settings.
type Config = internal.Config

// FatalError is the value with which the runtime panics on programming
// errors.
type FatalError = internal.FatalError

// ConstructError is returned by New when a class's init method fails.
type ConstructError = internal.ConstructError

// Protocol method types.
type (
	CopyFunc        = internal.CopyFunc
	DeallocFunc     = internal.DeallocFunc
	DescriptionFunc = internal.DescriptionFunc
	HashFunc        = internal.HashFunc
	InitFunc        = internal.InitFunc
	IsEqualFunc     = internal.IsEqualFunc
	IsKindOfFunc    = internal.IsKindOfFunc
)

// Selectors of the object protocol.
const (
	CopyEntry        = internal.CopyEntry
	DeallocEntry     = internal.DeallocEntry
	DescriptionEntry = internal.DescriptionEntry
	HashEntry        = internal.HashEntry
	InitEntry        = internal.InitEntry
	IsEqualEntry     = internal.IsEqualEntry
	IsKindOfEntry    = internal.IsKindOfEntry
)

// ObjectTableSize is the TableSize of ObjectClass. Direct subclasses of Object
// number their own selectors from it.
const ObjectTableSize = internal.ObjectTableSize

// ObjectClass is the root class.
var ObjectClass = internal.ObjectClass

// ErrOutOfMemory is returned, possibly wrapped, when an allocation would
// exceed the memory limit.
var ErrOutOfMemory = internal.ErrOutOfMemory

// New allocates and initializes an instance of c with a reference count of 1.
func New(c *Class, args ...interface{}) (Instance, error) {
	return internal.New(c, args...)
}

// Retain increments the reference count of o.
func Retain(o Instance) {
	internal.Retain(o)
}

// Release decrements the reference count of o, destroying it when the count
// reaches zero.
func Release(o Instance) {
	internal.Release(o)
}

// RefCount returns the current reference count of o.
func RefCount(o Instance) int {
	return internal.RefCount(o)
}

// IsKindOf returns whether o is an instance of c or of a subclass of c.
func IsKindOf(o Instance, c *Class) bool {
	return internal.IsKindOf(o, c)
}

// Cast converts o to T after verifying that o is a kind of c. It panics with a
// *FatalError if it is not.
func Cast[T Instance](o Instance, c *Class) T {
	return internal.Cast[T](o, c)
}

// Super returns the dispatch table of c's superclass.
func Super(c *Class) Table {
	return internal.Super(c)
}

// ClassOf returns the class of o.
func ClassOf(o Instance) *Class {
	return internal.ClassOf(o)
}

// Self returns the complete instance containing o's header.
func Self(o Instance) Instance {
	return internal.Self(o)
}

// Method returns the complete instance of o and the entry at sel in its
// class's table. c is the class that declares sel.
func Method(o Instance, c *Class, sel Selector) (Instance, interface{}) {
	return internal.Method(o, c, sel)
}

// Copy returns a copy of o with a reference count of 1.
func Copy(o Instance) (Instance, error) {
	return internal.Copy(o)
}

// Description returns a human-readable description of o.
func Description(o Instance) string {
	return internal.Description(o)
}

// Hash returns the hash of o.
func Hash(o Instance) int {
	return internal.Hash(o)
}

// IsEqual returns whether o and other are equal.
func IsEqual(o, other Instance) bool {
	return internal.IsEqual(o, other)
}

// Classes returns the initialized classes, most recently initialized first.
func Classes() []*Class {
	return internal.Classes()
}

// Teardown runs class teardown hooks and releases all dispatch tables. Call it
// once at program exit, typically deferred in main.
func Teardown() {
	internal.Teardown()
}

// ParseConfig decodes a YAML configuration.
func ParseConfig(b []byte) (Config, error) {
	return internal.ParseConfig(b)
}

// Configure replaces the active configuration.
func Configure(cfg Config) {
	internal.Configure(cfg)
}

// CurrentConfig returns the active configuration.
func CurrentConfig() Config {
	return internal.CurrentConfig()
}

// SetLogger sets the logger that receives debug traces.
func SetLogger(l *log.Logger) {
	internal.SetLogger(l)
}

// LiveBytes returns the number of bytes reserved by live objects.
func LiveBytes() int64 {
	return internal.LiveBytes()
}

// LiveObjects returns the number of live objects.
func LiveObjects() int64 {
	return internal.LiveObjects()
}

// MemoryLimit returns the effective memory limit, or zero for none.
func MemoryLimit() int64 {
	return internal.MemoryLimit()
}
