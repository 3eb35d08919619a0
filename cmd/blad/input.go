package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// isPiped reports whether r carries input worth reading: anything other than
// an interactive terminal.
func isPiped(r io.Reader) bool {
	if f, ok := r.(*os.File); ok {
		return !term.IsTerminal(int(f.Fd()))
	}
	return r != nil
}

// inputLine is one meaningful line of text input.
type inputLine struct {
	number int
	text   string
}

// eachLine calls fn for every line of r as it is read, skipping blank lines
// and # comments. It stops at the first error fn returns.
func eachLine(r io.Reader, fn func(inputLine) error) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(inputLine{number: n, text: text}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// readLines returns the lines of r, skipping blank lines and # comments.
func readLines(r io.Reader) ([]inputLine, error) {
	var lines []inputLine
	err := eachLine(r, func(l inputLine) error {
		lines = append(lines, l)
		return nil
	})
	return lines, err
}
