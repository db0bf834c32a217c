package spreadsheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// referencePattern accepts one or two column letters followed by a row
// number of 1-3 digits without a leading zero. compiled once, read-only.
var referencePattern = regexp.MustCompile(`^[a-zA-Z]{1,2}[1-9][0-9]{0,2}$`)

// CellID identifies a grid position. Column and Row are both 1-based, so
// "A1" is {Column: 1, Row: 1} and "AB12" is {Column: 28, Row: 12}.
type CellID struct {
	Column int
	Row    int
}

// ParseCellID parses an address like "A1" or "zz999". letters are case
// insensitive.
func ParseCellID(address string) (CellID, error) {
	if !referencePattern.MatchString(address) {
		return CellID{}, NewEvaluationError(ErrorCodeRef, fmt.Sprintf("invalid cell reference: %q", address))
	}

	// find where letters end and numbers begin
	letterEnd := 0
	for letterEnd < len(address) && isASCIILetter(rune(address[letterEnd])) {
		letterEnd++
	}

	col := 0
	for _, ch := range strings.ToUpper(address[:letterEnd]) {
		col = col*26 + int(ch-'A'+1)
	}

	row, err := strconv.Atoi(address[letterEnd:])
	if err != nil {
		return CellID{}, NewEvaluationError(ErrorCodeRef, fmt.Sprintf("invalid row in cell reference: %q", address))
	}

	return CellID{Column: col, Row: row}, nil
}

// MustParseCellID is ParseCellID for addresses known to be valid
func MustParseCellID(address string) CellID {
	id, err := ParseCellID(address)
	if err != nil {
		panic(err)
	}
	return id
}

// ColumnName converts a 1-based column index into letters (1 -> A, 28 -> AB)
func ColumnName(col int) string {
	var name []byte
	for col > 0 {
		col--
		name = append([]byte{byte('A' + col%26)}, name...)
		col /= 26
	}
	return string(name)
}

func (id CellID) String() string {
	return ColumnName(id.Column) + strconv.Itoa(id.Row)
}

// Compare orders cells by column, then by row
func (id CellID) Compare(other CellID) int {
	switch {
	case id.Column < other.Column:
		return -1
	case id.Column > other.Column:
		return 1
	case id.Row < other.Row:
		return -1
	case id.Row > other.Row:
		return 1
	default:
		return 0
	}
}

func isASCIILetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
