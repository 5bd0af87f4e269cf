package str

import (
	"fmt"

	"github.com/zephyrtronium/objectively"
)

// MutableString is a String that can be appended to. Like all objects, it is
// not synchronized; goroutines sharing one must coordinate their own writes.
type MutableString struct {
	String
	// buf holds the text. The embedded String's value is unused.
	buf []byte
}

// Methods MutableString adds to String's.
const (
	// AppendEntry is a func(self objectively.Instance, s string).
	AppendEntry = objectively.Selector(StringTableSize + iota)
	// AppendFormatEntry is a func(self objectively.Instance, format string,
	// args ...interface{}).
	AppendFormatEntry

	// MutableStringTableSize is the TableSize of MutableStringClass.
	MutableStringTableSize = StringTableSize + iota
)

// MutableStringClass is the class of mutable strings.
//
// Its init method accepts an optional int capacity followed by any arguments
// acceptable to StringClass.
var MutableStringClass = &objectively.Class{
	Name:       "MutableString",
	Superclass: StringClass,
	Instance:   (*MutableString)(nil),
	TableSize:  MutableStringTableSize,
}

func init() {
	MutableStringClass.Initialize = initMutableString
}

func initMutableString(t objectively.Table) {
	t[objectively.CopyEntry] = mutableCopy
	t[objectively.InitEntry] = mutableInit

	t[AppendEntry] = mutableAppend
	t[AppendFormatEntry] = mutableAppendFormat
}

// NewMutable creates a MutableString with the given initial text.
func NewMutable(s string) (*MutableString, error) {
	o, err := objectively.New(MutableStringClass, s)
	if err != nil {
		return nil, err
	}
	return objectively.Cast[*MutableString](o, MutableStringClass), nil
}

// Append appends s to a MutableString.
func Append(o objectively.Instance, s string) {
	self, m := objectively.Method(o, MutableStringClass, AppendEntry)
	m.(func(objectively.Instance, string))(self, s)
}

// AppendFormat appends formatted text to a MutableString.
func AppendFormat(o objectively.Instance, format string, args ...interface{}) {
	self, m := objectively.Method(o, MutableStringClass, AppendFormatEntry)
	m.(func(objectively.Instance, string, ...interface{}))(self, format, args...)
}

func mutableInit(self objectively.Instance, args ...interface{}) (objectively.Instance, error) {
	capacity := 0
	if len(args) > 0 {
		if n, ok := args[0].(int); ok {
			if n < 0 {
				return nil, fmt.Errorf("negative capacity %d", n)
			}
			capacity, args = n, args[1:]
		}
	}
	self, err := objectively.Super(MutableStringClass).Init()(self, args...)
	if err != nil {
		return nil, err
	}
	s := objectively.Cast[*MutableString](self, MutableStringClass)
	if capacity < len(s.value) {
		capacity = len(s.value)
	}
	s.buf = append(make([]byte, 0, capacity), s.value...)
	s.value = ""
	return self, nil
}

func mutableCopy(self objectively.Instance) (objectively.Instance, error) {
	return objectively.New(MutableStringClass, Value(self))
}

func mutableAppend(self objectively.Instance, x string) {
	s := objectively.Cast[*MutableString](self, MutableStringClass)
	s.buf = append(s.buf, x...)
}

func mutableAppendFormat(self objectively.Instance, format string, args ...interface{}) {
	s := objectively.Cast[*MutableString](self, MutableStringClass)
	s.buf = fmt.Appendf(s.buf, format, args...)
}
