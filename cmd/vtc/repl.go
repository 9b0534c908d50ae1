package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vtcfg/vtc/pkg/vtc"
)

// runREPL runs an interactive namespace.variable query loop against rt. It
// puts the terminal into raw mode so it can echo input itself and support
// backspace and Ctrl+C/Ctrl+D without pulling in a line-editing library.
func runREPL(rt *vtc.Runtime) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return
	}

	fmt.Print("vtc query REPL (Ctrl+D to exit)\r\n")
	fmt.Print("enter namespace.variable, or a bare namespace to list its variables\r\n")

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set raw mode: %v\n", err)
		return
	}
	defer term.Restore(fd, oldState)

	for {
		fmt.Print("> ")
		line, eof := readLineRaw()
		if eof {
			fmt.Print("\r\n")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		handleREPLLine(rt, line)
	}
}

func handleREPLLine(rt *vtc.Runtime, line string) {
	if !strings.Contains(line, ".") {
		for _, v := range rt.ListVariables(line) {
			fmt.Print(v, "\r\n")
		}
		return
	}

	ns, name, _ := strings.Cut(line, ".")
	v, err := rt.GetValue(ns, name)
	if err != nil {
		fmt.Printf("Error: %v\r\n", err)
		return
	}
	fmt.Print(formatValue(v), "\r\n")
}

// readLineRaw reads a single line from the raw terminal, honoring
// backspace and Ctrl+C/Ctrl+D. It returns the line and whether EOF (or
// Ctrl+D on an empty line) was seen.
func readLineRaw() (string, bool) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return string(line), true
		}
		switch b := buf[0]; b {
		case 0x04: // Ctrl+D
			if len(line) == 0 {
				return "", true
			}
		case 0x03: // Ctrl+C
			fmt.Print("^C\r\n")
			return "", false
		case 0x0d, 0x0a: // Enter
			fmt.Print("\r\n")
			return string(line), false
		case 0x7f, 0x08: // Backspace
			if len(line) > 0 {
				line = line[:len(line)-1]
				fmt.Print("\b \b")
			}
		default:
			if b >= 0x20 && b < 0x7f {
				line = append(line, b)
				fmt.Print(string(b))
			}
		}
	}
}
