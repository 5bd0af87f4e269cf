package internal

import (
	"errors"
	"fmt"
)

// FatalError is the value with which the runtime panics when it detects a
// programming error: a malformed class, a cast to an unrelated class, or a
// retain or release of an object that is not alive. Programs are not meant to
// recover from these.
type FatalError struct {
	// Op is the runtime operation that detected the error.
	Op string
	// Class is the name of the class involved, if any.
	Class string
	// Reason describes the violated invariant.
	Reason string
}

func (e *FatalError) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("objectively: %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("objectively: %s %s: %s", e.Op, e.Class, e.Reason)
}

// fatalf panics with a *FatalError.
func fatalf(op string, c *Class, format string, args ...interface{}) {
	err := &FatalError{Op: op, Reason: fmt.Sprintf(format, args...)}
	if c != nil {
		err.Class = c.Name
	}
	panic(err)
}

// ErrOutOfMemory is returned, possibly wrapped, when an allocation would
// exceed the configured memory limit.
var ErrOutOfMemory = errors.New("objectively: out of memory")

// ConstructError is returned by New when a class's init method rejects its
// arguments.
type ConstructError struct {
	// Class is the class being constructed.
	Class *Class
	// Err is the error returned by the init method.
	Err error
}

func (e *ConstructError) Error() string {
	return fmt.Sprintf("objectively: constructing %s: %v", e.Class.Name, e.Err)
}

func (e *ConstructError) Unwrap() error {
	return e.Err
}
