package spreadsheet

import "errors"

// ErrorCode represents the kind of failure a cell can hold
type ErrorCode uint8

const (
	ErrorCodeParse ErrorCode = 1 // #ERROR! - formula text did not lex or parse
	ErrorCodeValue ErrorCode = 2 // #VALUE! - operand types are incompatible
	ErrorCodeDiv0  ErrorCode = 3 // #DIV/0! - division by zero
	ErrorCodeRef   ErrorCode = 4 // #REF! - malformed cell address
	ErrorCodeCycle ErrorCode = 5 // #CYCLE! - cyclic dependency between formulas
)

// ErrorMapper maps error codes to their display representations
var ErrorMapper = map[ErrorCode]string{
	ErrorCodeParse: "#ERROR!",
	ErrorCodeValue: "#VALUE!",
	ErrorCodeDiv0:  "#DIV/0!",
	ErrorCodeRef:   "#REF!",
	ErrorCodeCycle: "#CYCLE!",
}

// EvaluationError preserves the error code so it can be displayed in cells
// and matched with errors.Is regardless of the message.
type EvaluationError struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *EvaluationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrorMapper[e.Code]
}

// Is matches any EvaluationError carrying the same code
func (e *EvaluationError) Is(target error) bool {
	var t *EvaluationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func (e *EvaluationError) Unwrap() error {
	return e.cause
}

func NewEvaluationError(code ErrorCode, message string) *EvaluationError {
	if message == "" {
		message = ErrorMapper[code]
	}
	return &EvaluationError{
		Code:    code,
		Message: message,
	}
}

// Sentinels for errors.Is checks
var (
	ErrParse             = NewEvaluationError(ErrorCodeParse, "")
	ErrIncompatibleTypes = NewEvaluationError(ErrorCodeValue, "")
	ErrDivisionByZero    = NewEvaluationError(ErrorCodeDiv0, "")
	ErrInvalidReference  = NewEvaluationError(ErrorCodeRef, "")
	ErrCyclicDependency  = NewEvaluationError(ErrorCodeCycle, "")
)

// ErrGraphHasCycles is returned by a topological sort that cannot order
// every node.
var ErrGraphHasCycles = errors.New("dependency graph has cycles")

// ErrorCodeOf returns the code carried by err, or false when err is not an
// EvaluationError.
func ErrorCodeOf(err error) (ErrorCode, bool) {
	var e *EvaluationError
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// DisplayError renders err the way a cell shows it
func DisplayError(err error) string {
	if code, ok := ErrorCodeOf(err); ok {
		return ErrorMapper[code]
	}
	return "#ERROR!"
}
