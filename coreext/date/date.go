// Package date provides the Date class.
package date

import (
	"fmt"
	"time"

	"github.com/zephyrtronium/objectively"

	"gitlab.com/variadico/lctime"
)

// DescriptionFormat is the strftime format of a Date's description.
const DescriptionFormat = "%Y-%m-%d %H:%M:%S"

// Date is an instant in time.
type Date struct {
	objectively.Object
	t time.Time
}

// Methods Date adds to the object protocol.
const (
	// FormatEntry is a func(self objectively.Instance, format string) string
	// formatting the date with strftime directives.
	FormatEntry = objectively.Selector(objectively.ObjectTableSize + iota)
	// TimeEntry is a func(self objectively.Instance) time.Time.
	TimeEntry

	// DateTableSize is the TableSize of DateClass.
	DateTableSize = objectively.ObjectTableSize + iota
)

// DateClass is the class of dates. Its init method accepts an optional
// time.Time, defaulting to the current time. Dates use Object's copy.
var DateClass = &objectively.Class{
	Name:       "Date",
	Superclass: objectively.ObjectClass,
	Instance:   (*Date)(nil),
	TableSize:  DateTableSize,
}

func init() {
	DateClass.Initialize = initDate
}

func initDate(t objectively.Table) {
	t[objectively.DescriptionEntry] = description
	t[objectively.HashEntry] = hash
	t[objectively.InitEntry] = dateInit
	t[objectively.IsEqualEntry] = isEqual

	t[FormatEntry] = format
	t[TimeEntry] = dateTime
}

// New creates a new Date object with the given time.
func New(t time.Time) (*Date, error) {
	o, err := objectively.New(DateClass, t)
	if err != nil {
		return nil, err
	}
	return objectively.Cast[*Date](o, DateClass), nil
}

// Format formats a Date using strftime directives.
func Format(o objectively.Instance, f string) string {
	self, m := objectively.Method(o, DateClass, FormatEntry)
	return m.(func(objectively.Instance, string) string)(self, f)
}

// Time returns the time of a Date.
func Time(o objectively.Instance) time.Time {
	self, m := objectively.Method(o, DateClass, TimeEntry)
	return m.(func(objectively.Instance) time.Time)(self)
}

func dateInit(self objectively.Instance, args ...interface{}) (objectively.Instance, error) {
	self, err := objectively.Super(DateClass).Init()(self, args...)
	if err != nil {
		return nil, err
	}
	d := objectively.Cast[*Date](self, DateClass)
	switch len(args) {
	case 0:
		d.t = time.Now()
		return self, nil
	case 1:
		if t, ok := args[0].(time.Time); ok {
			d.t = t
			return self, nil
		}
	}
	return nil, fmt.Errorf("cannot initialize a Date from %d arguments", len(args))
}

func description(self objectively.Instance) string {
	return format(self, DescriptionFormat)
}

func hash(self objectively.Instance) int {
	return int(dateTime(self).UnixNano())
}

func isEqual(self, other objectively.Instance) bool {
	if !objectively.IsKindOf(other, DateClass) {
		return false
	}
	return dateTime(self).Equal(dateTime(other))
}

func format(self objectively.Instance, f string) string {
	return lctime.Strftime(f, dateTime(self))
}

func dateTime(self objectively.Instance) time.Time {
	return objectively.Cast[*Date](self, DateClass).t
}
