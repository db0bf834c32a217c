package main

import (
	"errors"
	"fmt"

	"github.com/vogtb/go-spreadsheet/packages/script"
	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

// load enters every line of the script at path into a new spreadsheet.
// a malformed address stops the load. a cycle does not: values stay frozen
// until a later line breaks it, and only a cycle still present after the
// last line is reported.
func (a *app) load(path string) (*spreadsheet.Spreadsheet, error) {
	entries, err := script.ParseFile(path)
	if err != nil {
		return nil, err
	}

	s := a.newSpreadsheet()
	for _, entry := range entries {
		err := s.Enter(entry.Address, entry.Text)
		if err == nil || errors.Is(err, spreadsheet.ErrCyclicDependency) {
			continue
		}
		return nil, fmt.Errorf("%s:%d: %w", path, entry.Line, err)
	}
	a.logger.Info("script loaded", "path", path, "entries", len(entries), "cells", s.Len())

	if err := s.Recalculate(); err != nil {
		if a.strict {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(a.stderr, "warning: %s: %v; formula values are stale\n", path, err)
	}
	return s, nil
}
