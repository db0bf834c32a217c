package spreadsheet

import (
	"iter"
	"slices"
)

// ContentKind represents what a cell was last given
type ContentKind uint8

const (
	ContentLiteral ContentKind = 0 // plain value, including blank text
	ContentFormula ContentKind = 1 // parsed formula
	ContentInvalid ContentKind = 2 // formula text that failed to parse
)

func (k ContentKind) String() string {
	switch k {
	case ContentLiteral:
		return "literal"
	case ContentFormula:
		return "formula"
	case ContentInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Content is the parsed form of a cell's raw text
type Content struct {
	Kind    ContentKind
	Literal Value // for ContentLiteral
	Formula Expr  // for ContentFormula
	Err     error // for ContentInvalid
}

// Cell represents a spreadsheet cell with its input and computed result
type Cell struct {
	Raw     string  // last entered text, exactly as typed
	Content Content // parsed form of Raw
	Value   Value   // computed value when Err is nil
	Err     error   // evaluation or parse failure
}

// Result returns the computed value, or the error the cell holds
func (c Cell) Result() (Value, error) {
	if c.Err != nil {
		return Value{}, c.Err
	}
	return c.Value, nil
}

// Display renders the cell's result for output
func (c Cell) Display() string {
	if c.Err != nil {
		return DisplayError(c.Err)
	}
	return c.Value.String()
}

// IsFormula reports whether the cell holds a successfully parsed formula
func (c Cell) IsFormula() bool {
	return c.Content.Kind == ContentFormula
}

// CellReader is the read-only view of cells used during evaluation
type CellReader interface {
	Get(id CellID) (Cell, bool)
}

// Sheet stores cells by id and iterates them in id order
type Sheet struct {
	cells map[CellID]*Cell
}

// NewSheet creates an empty sheet
func NewSheet() *Sheet {
	return &Sheet{
		cells: make(map[CellID]*Cell),
	}
}

var _ CellReader = (*Sheet)(nil)

// Get returns a copy of the cell at id
func (s *Sheet) Get(id CellID) (Cell, bool) {
	cell, exists := s.cells[id]
	if !exists {
		return Cell{}, false
	}
	return *cell, true
}

// getOrCreate returns the stored cell at id, creating a blank one if needed
func (s *Sheet) getOrCreate(id CellID) *Cell {
	if cell, exists := s.cells[id]; exists {
		return cell
	}
	cell := &Cell{}
	s.cells[id] = cell
	return cell
}

// setResult stores a computed result for an existing cell
func (s *Sheet) setResult(id CellID, value Value, err error) {
	cell := s.getOrCreate(id)
	cell.Value = value
	cell.Err = err
}

// Len returns the number of stored cells
func (s *Sheet) Len() int {
	return len(s.cells)
}

// IDs returns all stored cell ids in order
func (s *Sheet) IDs() []CellID {
	ids := make([]CellID, 0, len(s.cells))
	for id := range s.cells {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, CellID.Compare)
	return ids
}

// All iterates cells in id order
func (s *Sheet) All() iter.Seq2[CellID, Cell] {
	return func(yield func(CellID, Cell) bool) {
		for _, id := range s.IDs() {
			if !yield(id, *s.cells[id]) {
				return
			}
		}
	}
}
