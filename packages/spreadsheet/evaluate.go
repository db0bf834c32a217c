package spreadsheet

import "fmt"

// Evaluate computes expr against a read-only view of the cells. it never
// modifies cells and returns the same result for the same inputs.
func Evaluate(expr Expr, cells CellReader) (Value, error) {
	if expr == nil {
		return Value{}, NewEvaluationError(ErrorCodeParse, "no formula to evaluate")
	}
	return expr.Eval(cells)
}

func applyBinaryOp(op BinaryOp, left, right Value) (Value, error) {
	left, right = coerceTypes(left, right)

	switch op {
	case BinOpAdd:
		return add(left, right)
	case BinOpSubtract:
		return sub(left, right)
	case BinOpMultiply:
		return mul(left, right)
	case BinOpDivide:
		return div(left, right)
	default:
		return Value{}, NewEvaluationError(ErrorCodeValue, fmt.Sprintf("unknown operator %d", op))
	}
}

// coerceTypes brings both operands to a common numeric type. Empty becomes
// Integer(0) and a mixed Integer/Float pair widens to Float. Text is left
// alone, so the operator rejects it.
func coerceTypes(x, y Value) (Value, Value) {
	if x.IsEmpty() {
		x = Integer(0)
	}
	if y.IsEmpty() {
		y = Integer(0)
	}

	switch {
	case x.Type == ValueTypeInteger && y.Type == ValueTypeFloat:
		return Float(float64(x.Int)), y
	case x.Type == ValueTypeFloat && y.Type == ValueTypeInteger:
		return x, Float(float64(y.Int))
	default:
		return x, y
	}
}

func incompatible(op BinaryOp, x, y Value) error {
	return NewEvaluationError(ErrorCodeValue,
		fmt.Sprintf("cannot apply %s to %s and %s", op, x.Type, y.Type))
}

func add(x, y Value) (Value, error) {
	switch {
	case x.Type == ValueTypeInteger && y.Type == ValueTypeInteger:
		return Integer(x.Int + y.Int), nil
	case x.Type == ValueTypeFloat && y.Type == ValueTypeFloat:
		return Float(x.Float + y.Float), nil
	}
	return Value{}, incompatible(BinOpAdd, x, y)
}

func sub(x, y Value) (Value, error) {
	switch {
	case x.Type == ValueTypeInteger && y.Type == ValueTypeInteger:
		return Integer(x.Int - y.Int), nil
	case x.Type == ValueTypeFloat && y.Type == ValueTypeFloat:
		return Float(x.Float - y.Float), nil
	}
	return Value{}, incompatible(BinOpSubtract, x, y)
}

func mul(x, y Value) (Value, error) {
	switch {
	case x.Type == ValueTypeInteger && y.Type == ValueTypeInteger:
		return Integer(x.Int * y.Int), nil
	case x.Type == ValueTypeFloat && y.Type == ValueTypeFloat:
		return Float(x.Float * y.Float), nil
	}
	return Value{}, incompatible(BinOpMultiply, x, y)
}

// div checks the divisor before dividing. integer division truncates
// toward zero.
func div(x, y Value) (Value, error) {
	switch {
	case x.Type == ValueTypeInteger && y.Type == ValueTypeInteger:
		if y.Int == 0 {
			return Value{}, NewEvaluationError(ErrorCodeDiv0, "division by zero")
		}
		return Integer(x.Int / y.Int), nil
	case x.Type == ValueTypeFloat && y.Type == ValueTypeFloat:
		if y.Float == 0 {
			return Value{}, NewEvaluationError(ErrorCodeDiv0, "division by zero")
		}
		return Float(x.Float / y.Float), nil
	}
	return Value{}, incompatible(BinOpDivide, x, y)
}
