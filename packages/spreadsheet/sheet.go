package spreadsheet

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// formulaSigil marks cell text that should be parsed as a formula
const formulaSigil = "="

// Spreadsheet combines cell storage, parsing, dependency tracking and
// formula evaluation into a single API. every Set runs to completion,
// including recalculation, before returning.
//
// a Spreadsheet is not safe for concurrent use; callers that share one
// must serialize access.
type Spreadsheet struct {
	cells        *Sheet
	dependencies *DependencyGraph[CellID]
	logger       *slog.Logger
	metrics      *Metrics
}

// Option configures a Spreadsheet
type Option func(*Spreadsheet)

// WithLogger sets the logger used for write and recalculation events
func WithLogger(logger *slog.Logger) Option {
	return func(s *Spreadsheet) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the collectors updated on every write
func WithMetrics(metrics *Metrics) Option {
	return func(s *Spreadsheet) {
		s.metrics = metrics
	}
}

// NewSpreadsheet creates a spreadsheet with no cells and no dependencies
func NewSpreadsheet(opts ...Option) *Spreadsheet {
	s := &Spreadsheet{
		cells:        NewSheet(),
		dependencies: NewDependencyGraph[CellID](),
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves the cell at id. a cell that was never written is absent,
// which is distinct from a written cell holding Empty.
func (s *Spreadsheet) Get(id CellID) (Cell, bool) {
	return s.cells.Get(id)
}

// Cells iterates every written cell in id order
func (s *Spreadsheet) Cells() iter.Seq2[CellID, Cell] {
	return s.cells.All()
}

// Len returns the number of written cells
func (s *Spreadsheet) Len() int {
	return s.cells.Len()
}

// Enter parses address and sets its cell to text
func (s *Spreadsheet) Enter(address string, text string) error {
	id, err := ParseCellID(address)
	if err != nil {
		return err
	}
	return s.Set(id, text)
}

// Set stores text in the cell at id and recalculates every formula.
//
// text starting with '=' is parsed as a formula; a formula that fails to
// parse is kept as invalid content holding the parse error and depends on
// nothing. any other text is a literal value. when the formulas form a
// cycle, the cell's own content is still updated but no formula value is
// recomputed, and an error matching ErrCyclicDependency is returned.
func (s *Spreadsheet) Set(id CellID, text string) error {
	cell := s.cells.getOrCreate(id)
	cell.Raw = text

	if strings.HasPrefix(text, formulaSigil) {
		expr, err := ParseFormula(text)
		if err != nil {
			cell.Content = Content{Kind: ContentInvalid, Err: err}
			cell.Value = Value{}
			cell.Err = err
			s.dependencies.SetIncomingEdges(id, nil)
			s.logger.Debug("formula rejected", "cell", id.String(), "error", err)
		} else {
			references := References(expr)
			cell.Content = Content{Kind: ContentFormula, Formula: expr}
			s.dependencies.SetIncomingEdges(id, references)
			s.logger.Debug("formula set",
				"cell", id.String(),
				"formula", expr.ToString(),
				"references", len(references))
		}
	} else {
		value := ParseValue(text)
		cell.Content = Content{Kind: ContentLiteral, Literal: value}
		cell.Value = value
		cell.Err = nil
		s.dependencies.SetIncomingEdges(id, nil)
		s.logger.Debug("literal set", "cell", id.String(), "type", value.Type.String())
	}
	s.metrics.recordWrite(cell.Content.Kind)

	if err := s.Recalculate(); err != nil {
		return fmt.Errorf("set %s: %w", id, err)
	}
	return nil
}

// Recalculate recomputes every formula cell in dependency order. literal
// and invalid cells keep their values. if the dependencies contain a cycle
// nothing is recomputed.
func (s *Spreadsheet) Recalculate() error {
	start := time.Now()

	order, err := s.dependencies.TopologicalSort()
	if err != nil {
		s.metrics.recordCycle()
		s.logger.Warn("recalculation skipped", "error", err)
		return &EvaluationError{
			Code:    ErrorCodeCycle,
			Message: "cyclic dependency between formulas",
			cause:   err,
		}
	}

	evaluated := 0
	for _, id := range order {
		if s.calculateCell(id) {
			evaluated++
		}
	}

	duration := time.Since(start)
	s.metrics.recordRecalculation(duration, evaluated)
	s.logger.Debug("recalculated",
		"nodes", len(order),
		"evaluated", evaluated,
		"duration", duration)
	return nil
}

// calculateCell evaluates the formula at id, if there is one. reports
// whether a formula was evaluated.
func (s *Spreadsheet) calculateCell(id CellID) bool {
	cell, exists := s.cells.Get(id)
	if !exists || cell.Content.Kind != ContentFormula {
		return false
	}
	value, err := Evaluate(cell.Content.Formula, s.cells)
	s.cells.setResult(id, value, err)
	return true
}

// Precedents returns the cells id's formula reads, in id order
func (s *Spreadsheet) Precedents(id CellID) []CellID {
	ids := s.dependencies.DirectPrecedents(id)
	slices.SortFunc(ids, CellID.Compare)
	return ids
}

// Dependents returns every cell whose value is derived from id, directly
// or transitively, in id order
func (s *Spreadsheet) Dependents(id CellID) []CellID {
	ids := s.dependencies.AllDependents(id)
	slices.SortFunc(ids, CellID.Compare)
	return ids
}
