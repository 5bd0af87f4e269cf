/*
Package objectively implements a small object runtime: classes with single
inheritance, virtual dispatch through per-class tables, and reference-counted
object lifetimes.

# Classes

A class is a package-level *Class naming its superclass, its instance type,
the size of its dispatch table, and an Initialize hook that fills in the table:

	type Point struct {
		objectively.Object
		X, Y int
	}

	var PointClass = &objectively.Class{
		Name:       "Point",
		Superclass: objectively.ObjectClass,
		Instance:   (*Point)(nil),
		TableSize:  objectively.ObjectTableSize,
	}

	func init() {
		PointClass.Initialize = func(t objectively.Table) {
			t[objectively.DescriptionEntry] = pointDescription
			t[objectively.InitEntry] = pointInit
		}
	}

The Initialize hook is assigned in an init function because the methods it
installs usually refer back to the class.

The instance type's first field must embed the superclass's instance type.
Classes initialize lazily on first use: the superclass is initialized first,
then the class's table starts as a copy of the superclass's table, and
Initialize overrides entries or fills in new ones after the inherited prefix.
A class that adds methods declares selectors starting at its superclass's
TableSize:

	const (
		NormEntry objectively.Selector = objectively.Selector(objectively.ObjectTableSize) + iota
	)

Every table begins with the object protocol: copy, dealloc, description, hash,
init, isEqual, and isKindOf. Methods receive the complete instance as self, so
an overridden method runs even when the caller holds a reference typed as an
ancestor.

# Lifetimes

New allocates an instance, runs the init chain with the constructor arguments,
and returns the object with a reference count of 1. Retain and Release adjust
the count; the release that brings it to zero runs the dealloc chain and frees
the object. Each init method chains to its superclass's init first, and each
dealloc method releases its own resources and then chains to its superclass's
dealloc:

	func pointInit(self objectively.Instance, args ...interface{}) (objectively.Instance, error) {
		self, err := objectively.Super(PointClass).Init()(self, args...)
		if err != nil {
			return nil, err
		}
		p := objectively.Cast[*Point](self, PointClass)
		...
	}

# Errors

The runtime separates two kinds of failure. Running out of memory and init
methods rejecting their arguments are ordinary errors returned from New and
Copy. Programming errors, such as malformed classes, casts to unrelated classes,
and releasing an object that is already destroyed, panic with a *FatalError.
Use IsKindOf rather than Cast when a relationship is not certain.

At program exit, call Teardown to run the classes' Teardown hooks.
*/
package objectively
