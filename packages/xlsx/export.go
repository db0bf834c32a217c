// Package xlsx exports a spreadsheet as an Excel workbook.
//
// The first worksheet holds the cell inputs: literals as typed values and
// formulas as Excel formulas. A second worksheet holds the values computed
// by the engine, with errors written as their display codes.
package xlsx

import (
	"fmt"
	"io"
	"iter"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

const (
	DefaultInputSheet  = "Sheet1"
	DefaultValuesSheet = "Values"
)

// nonFiniteCode replaces infinite and NaN results on the values sheet
const nonFiniteCode = "#NUM!"

// Source is anything that can list its cells in id order
type Source interface {
	Cells() iter.Seq2[spreadsheet.CellID, spreadsheet.Cell]
}

type Options struct {
	InputSheet  string
	ValuesSheet string
	// SkipValues omits the computed values worksheet
	SkipValues bool
}

func (o Options) withDefaults() Options {
	if o.InputSheet == "" {
		o.InputSheet = DefaultInputSheet
	}
	if o.ValuesSheet == "" {
		o.ValuesSheet = DefaultValuesSheet
	}
	return o
}

// Build creates a workbook holding src. the caller closes the file.
func Build(src Source, opts Options) (*excelize.File, error) {
	opts = opts.withDefaults()
	if !opts.SkipValues && opts.InputSheet == opts.ValuesSheet {
		return nil, fmt.Errorf("input and values sheets share the name %q", opts.InputSheet)
	}

	f := excelize.NewFile()
	if opts.InputSheet != DefaultInputSheet {
		if err := f.SetSheetName(DefaultInputSheet, opts.InputSheet); err != nil {
			f.Close()
			return nil, err
		}
	}
	if !opts.SkipValues {
		if _, err := f.NewSheet(opts.ValuesSheet); err != nil {
			f.Close()
			return nil, err
		}
	}

	for id, cell := range src.Cells() {
		name, err := excelize.CoordinatesToCellName(id.Column, id.Row)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := writeInput(f, opts.InputSheet, name, cell); err != nil {
			f.Close()
			return nil, fmt.Errorf("write %s: %w", id, err)
		}
		if opts.SkipValues {
			continue
		}
		if err := writeValue(f, opts.ValuesSheet, name, cell); err != nil {
			f.Close()
			return nil, fmt.Errorf("write value %s: %w", id, err)
		}
	}
	return f, nil
}

// Write builds the workbook and streams it to w
func Write(w io.Writer, src Source, opts Options) error {
	f, err := Build(src, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Save builds the workbook and saves it at path
func Save(path string, src Source, opts Options) error {
	f, err := Build(src, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeInput(f *excelize.File, sheet, name string, cell spreadsheet.Cell) error {
	switch cell.Content.Kind {
	case spreadsheet.ContentFormula:
		return f.SetCellFormula(sheet, name, strings.TrimPrefix(cell.Raw, "="))
	case spreadsheet.ContentInvalid:
		return f.SetCellStr(sheet, name, cell.Raw)
	default:
		if !isFinite(cell.Content.Literal) {
			return f.SetCellStr(sheet, name, cell.Raw)
		}
		return setValue(f, sheet, name, cell.Content.Literal)
	}
}

func writeValue(f *excelize.File, sheet, name string, cell spreadsheet.Cell) error {
	if cell.Err != nil {
		return f.SetCellStr(sheet, name, cell.Display())
	}
	return setValue(f, sheet, name, cell.Value)
}

// setValue writes v with its native type; Empty leaves the cell unset
func setValue(f *excelize.File, sheet, name string, v spreadsheet.Value) error {
	switch v.Type {
	case spreadsheet.ValueTypeInteger:
		return f.SetCellValue(sheet, name, v.Int)
	case spreadsheet.ValueTypeFloat:
		if !isFinite(v) {
			return f.SetCellStr(sheet, name, nonFiniteCode)
		}
		return f.SetCellValue(sheet, name, v.Float)
	case spreadsheet.ValueTypeText:
		return f.SetCellStr(sheet, name, v.Text)
	default:
		return nil
	}
}

// isFinite reports whether v can be stored as a numeric cell. workbook
// numbers have no infinity or NaN.
func isFinite(v spreadsheet.Value) bool {
	if v.Type != spreadsheet.ValueTypeFloat {
		return true
	}
	return !math.IsInf(v.Float, 0) && !math.IsNaN(v.Float)
}
