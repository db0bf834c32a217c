// Package script reads cell scripts: plain text files with one cell entry
// per line.
//
//	# comment
//	A1 10
//	A2 20
//	B1 =A1+A2
//
// The address ends at the first run of spaces or tabs and everything after
// that run is the cell text, kept exactly. A line holding only an address
// enters blank text.
package script

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const commentPrefix = "#"

// Entry is one cell assignment
type Entry struct {
	Line    int
	Address string
	Text    string
}

// Parse reads every entry from r in file order
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		entry, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		entry.Line = line
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script at line %d: %w", line+1, err)
	}
	return entries, nil
}

// ParseFile opens and parses the script at path
func ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

func parseLine(raw string) (Entry, bool) {
	raw = strings.TrimRight(raw, "\r")
	trimmed := strings.TrimLeft(raw, " \t")
	if trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) {
		return Entry{}, false
	}

	end := strings.IndexAny(trimmed, " \t")
	if end < 0 {
		return Entry{Address: trimmed}, true
	}
	return Entry{
		Address: trimmed[:end],
		Text:    strings.TrimLeft(trimmed[end:], " \t"),
	}, true
}
