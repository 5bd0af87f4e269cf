// Package str provides the String and MutableString classes.
package str

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/objectively"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is a character encoding for converting between strings and bytes.
type Encoding int

// Supported encodings.
const (
	UTF8 Encoding = iota
	ASCII
	Latin1
	Windows1252
	UTF16LE
	UTF16BE
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case ASCII:
		return "ASCII"
	case Latin1:
		return "ISO-8859-1"
	case Windows1252:
		return "Windows-1252"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// codec returns the x/text encoding for e, or nil for encodings handled
// directly.
func (e Encoding) codec() (encoding.Encoding, error) {
	switch e {
	case UTF8, ASCII:
		return nil, nil
	case Latin1:
		return charmap.ISO8859_1, nil
	case Windows1252:
		return charmap.Windows1252, nil
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	}
	return nil, fmt.Errorf("unknown encoding %v", e)
}

// ErrInvalidText is returned when bytes are not valid in their claimed
// encoding.
var ErrInvalidText = errors.New("str: invalid text for encoding")

// decode converts b from e to UTF-8.
func decode(b []byte, e Encoding) (string, error) {
	c, err := e.codec()
	if err != nil {
		return "", err
	}
	switch e {
	case UTF8:
		if !utf8.Valid(b) {
			return "", fmt.Errorf("%w %v", ErrInvalidText, e)
		}
		return string(b), nil
	case ASCII:
		for _, ch := range b {
			if ch >= utf8.RuneSelf {
				return "", fmt.Errorf("%w %v", ErrInvalidText, e)
			}
		}
		return string(b), nil
	}
	r, err := c.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w %v: %v", ErrInvalidText, e, err)
	}
	return string(r), nil
}

// encode converts s from UTF-8 to e.
func encode(s string, e Encoding) ([]byte, error) {
	c, err := e.codec()
	if err != nil {
		return nil, err
	}
	switch e {
	case UTF8:
		return []byte(s), nil
	case ASCII:
		for i := 0; i < len(s); i++ {
			if s[i] >= utf8.RuneSelf {
				return nil, fmt.Errorf("%w %v", ErrInvalidText, e)
			}
		}
		return []byte(s), nil
	}
	r, err := c.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w %v: %v", ErrInvalidText, e, err)
	}
	return r, nil
}

// String is an immutable string.
type String struct {
	objectively.Object
	value string
}

// Methods String adds to the object protocol.
const (
	// LengthEntry is a func(self objectively.Instance) int returning the
	// number of runes in the string.
	LengthEntry = objectively.Selector(objectively.ObjectTableSize + iota)
	// HasPrefixEntry is a func(self objectively.Instance, prefix string) bool.
	HasPrefixEntry
	// BytesEntry is a func(self objectively.Instance, e Encoding) ([]byte,
	// error) encoding the string.
	BytesEntry

	// StringTableSize is the TableSize of StringClass.
	StringTableSize = objectively.ObjectTableSize + iota
)

// StringClass is the class of immutable strings.
//
// Its init method accepts no arguments for an empty string, a Go string, a
// String instance whose text to share, or a []byte with its Encoding.
var StringClass = &objectively.Class{
	Name:       "String",
	Superclass: objectively.ObjectClass,
	Instance:   (*String)(nil),
	TableSize:  StringTableSize,
}

func init() {
	StringClass.Initialize = initString
}

func initString(t objectively.Table) {
	t[objectively.CopyEntry] = stringCopy
	t[objectively.DescriptionEntry] = stringDescription
	t[objectively.HashEntry] = stringHash
	t[objectively.InitEntry] = stringInit
	t[objectively.IsEqualEntry] = stringIsEqual

	t[LengthEntry] = stringLength
	t[HasPrefixEntry] = stringHasPrefix
	t[BytesEntry] = stringBytes
}

// New creates a String with the given text.
func New(s string) (*String, error) {
	o, err := objectively.New(StringClass, s)
	if err != nil {
		return nil, err
	}
	return objectively.Cast[*String](o, StringClass), nil
}

// Decode creates a String from bytes in the given encoding.
func Decode(b []byte, e Encoding) (*String, error) {
	o, err := objectively.New(StringClass, b, e)
	if err != nil {
		return nil, err
	}
	return objectively.Cast[*String](o, StringClass), nil
}

// Value returns the text of a String or MutableString.
func Value(o objectively.Instance) string {
	if objectively.IsKindOf(o, MutableStringClass) {
		return string(objectively.Cast[*MutableString](o, MutableStringClass).buf)
	}
	return objectively.Cast[*String](o, StringClass).value
}

// Length returns the number of runes in a String.
func Length(o objectively.Instance) int {
	self, m := objectively.Method(o, StringClass, LengthEntry)
	return m.(func(objectively.Instance) int)(self)
}

// HasPrefix returns whether a String begins with prefix.
func HasPrefix(o objectively.Instance, prefix string) bool {
	self, m := objectively.Method(o, StringClass, HasPrefixEntry)
	return m.(func(objectively.Instance, string) bool)(self, prefix)
}

// Bytes encodes a String.
func Bytes(o objectively.Instance, e Encoding) ([]byte, error) {
	self, m := objectively.Method(o, StringClass, BytesEntry)
	return m.(func(objectively.Instance, Encoding) ([]byte, error))(self, e)
}

func stringInit(self objectively.Instance, args ...interface{}) (objectively.Instance, error) {
	self, err := objectively.Super(StringClass).Init()(self, args...)
	if err != nil {
		return nil, err
	}
	s := objectively.Cast[*String](self, StringClass)
	switch len(args) {
	case 0:
		return self, nil
	case 1:
		switch v := args[0].(type) {
		case string:
			s.value = v
			return self, nil
		case objectively.Instance:
			if !objectively.IsKindOf(v, StringClass) {
				break
			}
			s.value = Value(v)
			return self, nil
		}
	case 2:
		b, ok := args[0].([]byte)
		e, ok2 := args[1].(Encoding)
		if ok && ok2 {
			v, err := decode(b, e)
			if err != nil {
				return nil, err
			}
			s.value = v
			return self, nil
		}
	}
	return nil, fmt.Errorf("cannot initialize a String from %s", argTypes(args))
}

// argTypes describes the types of constructor arguments for errors.
func argTypes(args []interface{}) string {
	t := make([]string, len(args))
	for i, arg := range args {
		t[i] = fmt.Sprintf("%T", arg)
	}
	return "(" + strings.Join(t, ", ") + ")"
}

func stringCopy(self objectively.Instance) (objectively.Instance, error) {
	return objectively.New(StringClass, Value(self))
}

func stringDescription(self objectively.Instance) string {
	return Value(self)
}

func stringHash(self objectively.Instance) int {
	h := fnv.New32a()
	h.Write([]byte(Value(self)))
	return int(h.Sum32())
}

func stringIsEqual(self, other objectively.Instance) bool {
	if !objectively.IsKindOf(other, StringClass) {
		return false
	}
	return Value(self) == Value(other)
}

func stringLength(self objectively.Instance) int {
	return utf8.RuneCountInString(Value(self))
}

func stringHasPrefix(self objectively.Instance, prefix string) bool {
	return strings.HasPrefix(Value(self), prefix)
}

func stringBytes(self objectively.Instance, e Encoding) ([]byte, error) {
	return encode(Value(self), e)
}
