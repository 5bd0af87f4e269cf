// Package coreext collects the classes provided by its subpackages.
package coreext

import (
	"github.com/zephyrtronium/objectively"
	"github.com/zephyrtronium/objectively/coreext/array"
	"github.com/zephyrtronium/objectively/coreext/date"
	"github.com/zephyrtronium/objectively/coreext/str"
)

// Classes returns the classes of the coreext packages, superclasses before
// subclasses.
func Classes() []*objectively.Class {
	return []*objectively.Class{
		str.StringClass,
		str.MutableStringClass,
		date.DateClass,
		array.ArrayClass,
	}
}

// Initialize initializes every coreext class ahead of first use.
func Initialize() {
	for _, c := range Classes() {
		c.Table()
	}
}
