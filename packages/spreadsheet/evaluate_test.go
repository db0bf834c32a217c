package spreadsheet

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sheetWith builds a sheet whose cells hold the given results directly
func sheetWith(cells map[string]Cell) *Sheet {
	sheet := NewSheet()
	for address, cell := range cells {
		stored := sheet.getOrCreate(MustParseCellID(address))
		*stored = cell
	}
	return sheet
}

func evalFormula(t *testing.T, formula string, cells CellReader) (Value, error) {
	t.Helper()
	expr, err := ParseFormula(formula)
	require.NoError(t, err)
	return Evaluate(expr, cells)
}

func TestEvaluateArithmetic(t *testing.T) {
	sheet := sheetWith(map[string]Cell{
		"A1": {Value: Integer(10)},
		"A2": {Value: Integer(20)},
		"A3": {Value: Float(1.5)},
		"A4": {Value: Empty()},
	})

	tests := []struct {
		formula  string
		expected Value
	}{
		{"=1+2", Integer(3)},
		{"=A1+A2", Integer(30)},
		{"=A1-A2", Integer(-10)},
		{"=A1*A2", Integer(200)},
		{"=A2/A1", Integer(2)},
		{"=7/2", Integer(3)},
		{"=0-7", Integer(-7)},
		{"=(0-7)/2", Integer(-3)},
		{"=7/(0-2)", Integer(-3)},
		{"=A3*2", Float(3)},
		{"=A1+A3", Float(11.5)},
		{"=1.0/4", Float(0.25)},
		{"=A4+5", Integer(5)},
		{"=A4*A3", Float(0)},
		{"=Z9+5", Integer(5)},
		{"=2+3*4", Integer(14)},
		{"=(2+3)*4", Integer(20)},
		{"=10-4-3", Integer(3)},
	}

	for _, tc := range tests {
		t.Run(tc.formula, func(t *testing.T) {
			value, err := evalFormula(t, tc.formula, sheet)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, value)
		})
	}
}

func TestEvaluateBareReference(t *testing.T) {
	sheet := sheetWith(map[string]Cell{
		"A1": {Value: Text("hello")},
		"A2": {Value: Empty()},
	})

	value, err := evalFormula(t, "=A1", sheet)
	require.NoError(t, err)
	assert.Equal(t, Text("hello"), value)

	// coercion to zero only happens at an operator
	value, err = evalFormula(t, "=A2", sheet)
	require.NoError(t, err)
	assert.Equal(t, Empty(), value)

	value, err = evalFormula(t, "=B7", sheet)
	require.NoError(t, err)
	assert.Equal(t, Empty(), value)
}

func TestEvaluateErrors(t *testing.T) {
	sheet := sheetWith(map[string]Cell{
		"A1": {Value: Integer(10)},
		"A2": {Value: Text("abc")},
		"A3": {Err: NewEvaluationError(ErrorCodeParse, "bad formula")},
		"A4": {Value: Float(0)},
		"A5": {Err: NewEvaluationError(ErrorCodeDiv0, "")},
	})

	tests := []struct {
		formula  string
		expected error
	}{
		{"=A1/0", ErrDivisionByZero},
		{"=A1/(3-3)", ErrDivisionByZero},
		{"=A1/A4", ErrDivisionByZero},
		{"=1.5/0", ErrDivisionByZero},
		{"=A1/B1", ErrDivisionByZero},
		{"=A1+A2", ErrIncompatibleTypes},
		{"=A2*2", ErrIncompatibleTypes},
		{"=A2/0", ErrIncompatibleTypes},
		{"=A3+1", ErrParse},
		{"=A3", ErrParse},
		{"=A5+A3", ErrDivisionByZero},
		{"=A3+A5", ErrParse},
		{"=A2+A3", ErrParse},
	}

	for _, tc := range tests {
		t.Run(tc.formula, func(t *testing.T) {
			_, err := evalFormula(t, tc.formula, sheet)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.expected), "got %v, want %v", err, tc.expected)
		})
	}
}

func TestEvaluateIsPure(t *testing.T) {
	sheet := sheetWith(map[string]Cell{
		"A1": {Value: Integer(4)},
		"B1": {Value: Float(0.5)},
	})
	expr, err := ParseFormula("=A1*B1+C1")
	require.NoError(t, err)

	first, err := Evaluate(expr, sheet)
	require.NoError(t, err)
	second, err := Evaluate(expr, sheet)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, Float(2), first)
	assert.Equal(t, 2, sheet.Len())
	_, exists := sheet.Get(MustParseCellID("C1"))
	assert.False(t, exists)
}

func TestEvaluateNilExpr(t *testing.T) {
	_, err := Evaluate(nil, NewSheet())
	assert.True(t, errors.Is(err, ErrParse))
}

func TestCoerceTypes(t *testing.T) {
	tests := []struct {
		name         string
		x, y         Value
		wantX, wantY Value
	}{
		{"empty right", Integer(3), Empty(), Integer(3), Integer(0)},
		{"empty left", Empty(), Float(2), Float(0), Float(2)},
		{"both empty", Empty(), Empty(), Integer(0), Integer(0)},
		{"int float", Integer(1), Float(2.5), Float(1), Float(2.5)},
		{"float int", Float(2.5), Integer(1), Float(2.5), Float(1)},
		{"text untouched", Text("a"), Integer(1), Text("a"), Integer(1)},
		{"text and empty", Text("a"), Empty(), Text("a"), Integer(0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := coerceTypes(tc.x, tc.y)
			assert.Equal(t, tc.wantX, x)
			assert.Equal(t, tc.wantY, y)
		})
	}
}

func TestIntegerOverflowWraps(t *testing.T) {
	value, err := applyBinaryOp(BinOpAdd, Integer(math.MaxInt64), Integer(1))
	require.NoError(t, err)
	assert.Equal(t, Integer(math.MinInt64), value)
}
