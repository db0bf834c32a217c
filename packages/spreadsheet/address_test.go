package spreadsheet

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellID(t *testing.T) {
	tests := []struct {
		address  string
		expected CellID
	}{
		{"A1", CellID{Column: 1, Row: 1}},
		{"a1", CellID{Column: 1, Row: 1}},
		{"Z9", CellID{Column: 26, Row: 9}},
		{"AA1", CellID{Column: 27, Row: 1}},
		{"AB12", CellID{Column: 28, Row: 12}},
		{"ZZ999", CellID{Column: 702, Row: 999}},
	}

	for _, tc := range tests {
		t.Run(tc.address, func(t *testing.T) {
			id, err := ParseCellID(tc.address)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestParseCellIDInvalid(t *testing.T) {
	invalid := []string{"", "A", "1", "A0", "A01", "A1000", "ABC1", "A1B", "1A", "A-1", "Ä1"}

	for _, address := range invalid {
		t.Run(address, func(t *testing.T) {
			_, err := ParseCellID(address)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidReference))
		})
	}
}

func TestCellIDString(t *testing.T) {
	for _, address := range []string{"A1", "Z26", "AA1", "AZ100", "ZZ999"} {
		assert.Equal(t, address, MustParseCellID(address).String())
	}
	assert.Equal(t, "B3", MustParseCellID("b3").String())
}

func TestCellIDOrdering(t *testing.T) {
	ids := []CellID{
		MustParseCellID("B1"),
		MustParseCellID("A10"),
		MustParseCellID("AA1"),
		MustParseCellID("A2"),
		MustParseCellID("A1"),
	}
	slices.SortFunc(ids, CellID.Compare)

	var got []string
	for _, id := range ids {
		got = append(got, id.String())
	}
	assert.Equal(t, []string{"A1", "A2", "A10", "B1", "AA1"}, got)
	assert.Equal(t, 0, MustParseCellID("C3").Compare(MustParseCellID("c3")))
}
