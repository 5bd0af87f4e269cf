package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/zephyrtronium/objectively"
	"github.com/zephyrtronium/objectively/coreext"
	"github.com/zephyrtronium/objectively/coreext/array"
	"github.com/zephyrtronium/objectively/coreext/date"
	"github.com/zephyrtronium/objectively/coreext/str"
)

func main() {
	var config string
	var debug bool
	flag.StringVar(&config, "config", "", "runtime configuration as inline YAML")
	flag.BoolVar(&debug, "debug", false, "trace class lifecycle events to standard error")
	flag.Parse()

	cfg, err := objectively.ParseConfig([]byte(config))
	if err != nil {
		fail(err)
	}
	cfg.Debug = cfg.Debug || debug
	objectively.Configure(cfg)
	defer objectively.Teardown()
	coreext.Initialize()

	if err := run(flag.Args()); err != nil {
		objectively.Teardown()
		fail(err)
	}
	fmt.Println("live bytes after release:", objectively.LiveBytes())
}

// run builds a few objects, prints them through references typed as their
// ancestors, and releases them. Each command-line argument becomes a string.
func run(args []string) error {
	if len(args) == 0 {
		args = []string{"hello", "world"}
	}
	var elems []objectively.Instance
	defer func() {
		for _, e := range elems {
			objectively.Release(e)
		}
	}()
	for _, arg := range args {
		s, err := str.New(arg)
		if err != nil {
			return err
		}
		elems = append(elems, s)
	}

	m, err := str.NewMutable("args:")
	if err != nil {
		return err
	}
	elems = append(elems, m)
	for _, arg := range args {
		str.AppendFormat(m, " %s", arg)
	}

	d, err := date.New(time.Now())
	if err != nil {
		return err
	}
	elems = append(elems, d)

	a, err := array.New(elems...)
	if err != nil {
		return err
	}
	defer objectively.Release(a)

	// Descriptions dispatch to each object's own class even through the root
	// type.
	for i := 0; i < array.Count(a); i++ {
		o := objectively.Cast[*objectively.Object](array.ObjectAt(a, i), objectively.ObjectClass)
		fmt.Printf("%s\t%s\n", objectively.ClassOf(o), objectively.Description(o))
	}
	// The mutable string is also a string.
	s := objectively.Cast[*str.String](m, str.StringClass)
	fmt.Printf("%s has %d runes\n", objectively.Description(s), str.Length(s))
	fmt.Println(objectively.Description(a))
	fmt.Println("live bytes:", objectively.LiveBytes())
	return nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
