package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"
)

// BinaryOp represents binary operators in AST nodes
type BinaryOp int

const (
	BinOpAdd BinaryOp = iota
	BinOpSubtract
	BinOpMultiply
	BinOpDivide
)

var binaryOpSymbols = map[BinaryOp]string{
	BinOpAdd:      "+",
	BinOpSubtract: "-",
	BinOpMultiply: "*",
	BinOpDivide:   "/",
}

var binaryOpsBySymbol = map[string]BinaryOp{
	"+": BinOpAdd,
	"-": BinOpSubtract,
	"*": BinOpMultiply,
	"/": BinOpDivide,
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpSymbols[op]; ok {
		return s
	}
	return "?"
}

type NodePosition struct {
	Start int
	End   int
}

// Expr is a node of a parsed formula. trees are built once by the parser
// and never modified afterwards; re-entering a formula parses a new tree.
type Expr interface {
	Eval(cells CellReader) (Value, error)
	GetPosition() NodePosition
	ToString() string
}

// Parser parses tokens into an AST
type Parser struct {
	tokens []Token
	pos    int
}

// LiteralNode represents a numeric literal (Integer or Float)
type LiteralNode struct {
	value    Value
	position NodePosition
}

func (n *LiteralNode) Value() Value {
	return n.value
}

func (n *LiteralNode) Eval(cells CellReader) (Value, error) {
	return n.value, nil
}

func (n *LiteralNode) GetPosition() NodePosition {
	return n.position
}

// ToString renders the literal in formula syntax. floats always carry a
// '.' so they read back as floats.
func (n *LiteralNode) ToString() string {
	if n.value.Type != ValueTypeFloat {
		return n.value.String()
	}
	s := n.value.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// RefNode represents a reference to another cell
type RefNode struct {
	id       CellID
	position NodePosition
}

func (n *RefNode) ID() CellID {
	return n.id
}

// Eval returns the referenced cell's stored value or error unchanged. a cell
// that was never written reads as Empty.
func (n *RefNode) Eval(cells CellReader) (Value, error) {
	cell, exists := cells.Get(n.id)
	if !exists {
		return Empty(), nil
	}
	return cell.Result()
}

func (n *RefNode) GetPosition() NodePosition {
	return n.position
}

func (n *RefNode) ToString() string {
	return n.id.String()
}

// BinaryOpNode represents a binary operation
type BinaryOpNode struct {
	op       BinaryOp
	left     Expr
	right    Expr
	position NodePosition
}

func (n *BinaryOpNode) Op() BinaryOp {
	return n.op
}

func (n *BinaryOpNode) Left() Expr {
	return n.left
}

func (n *BinaryOpNode) Right() Expr {
	return n.right
}

func (n *BinaryOpNode) Eval(cells CellReader) (Value, error) {
	// left error wins when both sides fail
	left, err := n.left.Eval(cells)
	if err != nil {
		return Value{}, err
	}
	right, err := n.right.Eval(cells)
	if err != nil {
		return Value{}, err
	}
	return applyBinaryOp(n.op, left, right)
}

func (n *BinaryOpNode) GetPosition() NodePosition {
	return n.position
}

func (n *BinaryOpNode) ToString() string {
	return fmt.Sprintf("(%s %s %s)", n.left.ToString(), n.op, n.right.ToString())
}

// NewParser creates a new parser with the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
	}
}

// Parse parses a token stream produced by Lex into an expression tree
func Parse(tokens []Token) (Expr, error) {
	return NewParser(tokens).Parse()
}

// ParseFormula lexes and parses formula text starting with '='
func ParseFormula(text string) (Expr, error) {
	tokens, err := Lex(text)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse parses the tokens into an AST. every token up to EOF must be
// consumed.
func (p *Parser) Parse() (Expr, error) {
	if len(p.tokens) == 0 {
		return nil, NewEvaluationError(ErrorCodeParse, "empty formula")
	}

	ast, err := p.parseAddition()
	if err != nil {
		return nil, err
	}

	if tok := p.current(); tok.Type != TokenEOF {
		return nil, p.errorAt(tok, "unexpected %s %q", tok.Type, tok.Value)
	}

	return ast, nil
}

// parseAddition handles addition and subtraction
func (p *Parser) parseAddition() (Expr, error) {
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}

	for p.isOperator("+", "-") {
		opToken := p.advance()
		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}
		left = newBinaryOpNode(binaryOpsBySymbol[opToken.Value], left, right)
	}

	return left, nil
}

// parseMultiplication handles multiplication and division
func (p *Parser) parseMultiplication() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.isOperator("*", "/") {
		opToken := p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = newBinaryOpNode(binaryOpsBySymbol[opToken.Value], left, right)
	}

	return left, nil
}

// parsePrimary handles literals, references and parenthesized expressions
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.current()
	position := NodePosition{Start: tok.Pos, End: tok.Pos + len([]rune(tok.Value))}

	switch tok.Type {
	case TokenInteger:
		p.advance()
		value, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.errorAt(tok, "invalid integer %q", tok.Value)
		}
		return &LiteralNode{value: Integer(value), position: position}, nil

	case TokenFloat:
		p.advance()
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorAt(tok, "invalid float %q", tok.Value)
		}
		return &LiteralNode{value: Float(value), position: position}, nil

	case TokenReference:
		p.advance()
		id, err := ParseCellID(tok.Value)
		if err != nil {
			return nil, p.errorAt(tok, "invalid cell reference %q", tok.Value)
		}
		return &RefNode{id: id, position: position}, nil

	case TokenLeftParen:
		p.advance()
		expr, err := p.parseAddition()
		if err != nil {
			return nil, err
		}
		closing := p.current()
		if closing.Type != TokenRightParen {
			return nil, p.errorAt(closing, "expected ')' but found %s", closing.Type)
		}
		p.advance()
		return expr, nil

	default:
		return nil, p.errorAt(tok, "expected a number, reference or '(' but found %s", tok.Type)
	}
}

func newBinaryOpNode(op BinaryOp, left, right Expr) *BinaryOpNode {
	return &BinaryOpNode{
		op:    op,
		left:  left,
		right: right,
		position: NodePosition{
			Start: left.GetPosition().Start,
			End:   right.GetPosition().End,
		},
	}
}

// current returns the token under the cursor. a stream without a trailing
// EOF token behaves as if it had one.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		pos := 0
		if len(p.tokens) > 0 {
			pos = p.tokens[len(p.tokens)-1].Pos
		}
		return Token{Type: TokenEOF, Pos: pos}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) isOperator(symbols ...string) bool {
	tok := p.current()
	if tok.Type != TokenOperator {
		return false
	}
	for _, s := range symbols {
		if tok.Value == s {
			return true
		}
	}
	return false
}

func (p *Parser) errorAt(tok Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return NewEvaluationError(ErrorCodeParse, fmt.Sprintf("%s at position %d", msg, tok.Pos))
}

// References returns the distinct cells mentioned anywhere in expr
func References(expr Expr) map[CellID]struct{} {
	refs := make(map[CellID]struct{})
	collectReferences(expr, refs)
	return refs
}

func collectReferences(node Expr, refs map[CellID]struct{}) {
	switch n := node.(type) {
	case *RefNode:
		refs[n.id] = struct{}{}
	case *BinaryOpNode:
		collectReferences(n.left, refs)
		collectReferences(n.right, refs)
	case *LiteralNode:
		// no references
	}
}
