// Command vtc loads a VTC source file (or inline string) and prints the
// value of a queried namespace.variable path, or drops into an interactive
// query REPL when stdin is a terminal and none of -f, -e or -q is given.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vtcfg/vtc/pkg/vtc"
)

func main() {
	var (
		file    = flag.String("f", "", "load a VTC file")
		evalStr = flag.String("e", "", "load an inline VTC source string")
		query   = flag.String("q", "", "namespace.variable path to query and print")
	)
	flag.Parse()

	rt := vtc.New()
	defer rt.Close()

	switch {
	case *file != "":
		if err := rt.LoadFile(*file); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading file: %v\n", err)
			os.Exit(1)
		}
	case *evalStr != "":
		if err := rt.Load(*evalStr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case !isTerminal(os.Stdin):
		input, err := readAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		if err := rt.Load(input); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *query != "" {
		printQuery(rt, *query)
		return
	}

	if *file == "" && *evalStr == "" && isTerminal(os.Stdin) {
		runREPL(rt)
	}
}

func printQuery(rt *vtc.Runtime, path string) {
	ns, name, ok := strings.Cut(path, ".")
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: query must be namespace.variable\n")
		os.Exit(1)
	}
	v, err := rt.GetValue(ns, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(formatValue(v))
}

func formatValue(v vtc.Value) string {
	switch v.Kind() {
	case vtc.KindString:
		s, _ := v.AsString()
		return s
	case vtc.KindInteger:
		i, _ := v.AsInteger()
		return fmt.Sprintf("%d", i)
	case vtc.KindFloat:
		f, _ := v.AsFloat()
		return fmt.Sprintf("%g", f)
	case vtc.KindBoolean:
		b, _ := v.AsBoolean()
		return fmt.Sprintf("%t", b)
	case vtc.KindNil:
		return "Nil"
	case vtc.KindList:
		items, _ := v.AsList()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

func readAll(f *os.File) (string, error) {
	data, err := io.ReadAll(f)
	return string(data), err
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
