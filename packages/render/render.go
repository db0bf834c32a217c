// Package render writes evaluated cells for terminal output
package render

import (
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vogtb/go-spreadsheet/packages/spreadsheet"
)

// Source is anything that can list its cells in id order
type Source interface {
	Cells() iter.Seq2[spreadsheet.CellID, spreadsheet.Cell]
}

type Options struct {
	// ShowErrors appends the underlying message to error cells
	ShowErrors bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"})
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#626262"})
)

// Display renders a single cell result
func Display(cell spreadsheet.Cell, opts Options) string {
	display := cell.Display()
	if opts.ShowErrors && cell.Err != nil && cell.Err.Error() != display {
		return fmt.Sprintf("%s (%s)", display, cell.Err.Error())
	}
	return display
}

// Plain writes one "A1 = value" line per cell
func Plain(w io.Writer, src Source, opts Options) error {
	for id, cell := range src.Cells() {
		if _, err := fmt.Fprintf(w, "%s = %s\n", id, Display(cell, opts)); err != nil {
			return err
		}
	}
	return nil
}

// Table writes the cells as a bordered grid spanning A1 to the last used
// column and row. nothing is written for a sheet without cells.
func Table(w io.Writer, src Source, opts Options) error {
	grid, lastColumn, lastRow := collect(src, opts)
	if lastColumn == 0 {
		return nil
	}

	headers := make([]string, 0, lastColumn+1)
	headers = append(headers, "")
	for col := 1; col <= lastColumn; col++ {
		headers = append(headers, spreadsheet.ColumnName(col))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return headerStyle
			}
			if _, failed := grid.errors[spreadsheet.CellID{Column: col, Row: row + 1}]; failed {
				return errorStyle
			}
			return cellStyle
		})

	for row := 1; row <= lastRow; row++ {
		cells := make([]string, 0, lastColumn+1)
		cells = append(cells, strconv.Itoa(row))
		for col := 1; col <= lastColumn; col++ {
			cells = append(cells, grid.display[spreadsheet.CellID{Column: col, Row: row}])
		}
		t.Row(cells...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

type renderedGrid struct {
	display map[spreadsheet.CellID]string
	errors  map[spreadsheet.CellID]struct{}
}

func collect(src Source, opts Options) (renderedGrid, int, int) {
	grid := renderedGrid{
		display: make(map[spreadsheet.CellID]string),
		errors:  make(map[spreadsheet.CellID]struct{}),
	}
	lastColumn, lastRow := 0, 0
	for id, cell := range src.Cells() {
		grid.display[id] = Display(cell, opts)
		if cell.Err != nil {
			grid.errors[id] = struct{}{}
		}
		lastColumn = max(lastColumn, id.Column)
		lastRow = max(lastRow, id.Row)
	}
	return grid, lastColumn, lastRow
}
