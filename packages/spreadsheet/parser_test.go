package spreadsheet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFormula(formula string) bool {
	tokens, err := Lex(formula)
	if err != nil {
		return false
	}
	_, err = Parse(tokens)
	return err == nil
}

func TestParserBasicFormulas(t *testing.T) {
	validFormulas := []string{
		"=1+2",
		"=A1",
		"=1.5",
		"=A1+A2*A3",
		"=(A1+A2)*A3",
		"=((1))",
		"=1-2-3",
		"=A1 / B2 / C3",
		"=  ZZ999 * 2.25 ",
		"=Z9+5",
	}

	for _, formula := range validFormulas {
		t.Run(formula, func(t *testing.T) {
			if !parseFormula(formula) {
				t.Errorf("Failed to parse valid formula: %s", formula)
			}
		})
	}
}

func TestParserInvalidFormulas(t *testing.T) {
	invalidFormulas := []string{
		"=",
		"=1+",
		"=*2",
		"=(1+2",
		"=1+2)",
		"=()",
		"=1 2",
		"=A1 A2",
		"=-1",
		"=+A1",
		"=2A1",
	}

	for _, formula := range invalidFormulas {
		t.Run(formula, func(t *testing.T) {
			if parseFormula(formula) {
				t.Errorf("Expected formula to fail but it succeeded: %s", formula)
			}
		})
	}
}

func TestParserPrecedenceAndAssociativity(t *testing.T) {
	tests := []struct {
		formula  string
		expected string
	}{
		{"=1+2*3", "(1 + (2 * 3))"},
		{"=(1+2)*3", "((1 + 2) * 3)"},
		{"=1-2-3", "((1 - 2) - 3)"},
		{"=8/4/2", "((8 / 4) / 2)"},
		{"=A1*B2+C3/D4", "((A1 * B2) + (C3 / D4))"},
		{"=a1+1.5", "(A1 + 1.5)"},
		{"=7", "7"},
		{"=2.0*3", "(2.0 * 3)"},
		{"=10.50", "10.5"},
	}

	for _, tc := range tests {
		t.Run(tc.formula, func(t *testing.T) {
			expr, err := ParseFormula(tc.formula)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, expr.ToString())
		})
	}
}

func TestParserBuildsTypedNodes(t *testing.T) {
	expr, err := ParseFormula("=A1+2.5")
	require.NoError(t, err)

	op, ok := expr.(*BinaryOpNode)
	require.True(t, ok)
	assert.Equal(t, BinOpAdd, op.Op())

	ref, ok := op.Left().(*RefNode)
	require.True(t, ok)
	assert.Equal(t, MustParseCellID("A1"), ref.ID())

	lit, ok := op.Right().(*LiteralNode)
	require.True(t, ok)
	assert.Equal(t, Float(2.5), lit.Value())

	assert.Equal(t, NodePosition{Start: 1, End: 7}, op.GetPosition())
}

func TestParserReparseIsStructurallyEqual(t *testing.T) {
	first, err := ParseFormula("=(A1 + 2) * B3 - 4.5")
	require.NoError(t, err)
	second, err := ParseFormula("=(A1 + 2) * B3 - 4.5")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestParserToStringReparses(t *testing.T) {
	formulas := []string{
		"=1+2*3",
		"=(A1 - 2.0) / B2",
		"=4.25*(C3+1.0)-7",
		"=1.0/3",
	}

	for _, formula := range formulas {
		t.Run(formula, func(t *testing.T) {
			expr, err := ParseFormula(formula)
			require.NoError(t, err)

			again, err := ParseFormula("=" + expr.ToString())
			require.NoError(t, err)
			assert.Equal(t, expr.ToString(), again.ToString())

			want, err := Evaluate(expr, NewSheet())
			require.NoError(t, err)
			got, err := Evaluate(again, NewSheet())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParserErrorsAreParseErrors(t *testing.T) {
	_, err := ParseFormula("=1+")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
	assert.Contains(t, err.Error(), "position")
}

func TestParseWithoutEOFToken(t *testing.T) {
	expr, err := Parse([]Token{
		{Type: TokenInteger, Value: "4", Pos: 1},
		{Type: TokenOperator, Value: "*", Pos: 2},
		{Type: TokenInteger, Value: "5", Pos: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "(4 * 5)", expr.ToString())

	_, err = Parse(nil)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestReferences(t *testing.T) {
	expr, err := ParseFormula("=A1 + (b2 * A1) - C3 / 2")
	require.NoError(t, err)

	assert.Equal(t, map[CellID]struct{}{
		MustParseCellID("A1"): {},
		MustParseCellID("B2"): {},
		MustParseCellID("C3"): {},
	}, References(expr))

	literal, err := ParseFormula("=1+2")
	require.NoError(t, err)
	assert.Empty(t, References(literal))
}
