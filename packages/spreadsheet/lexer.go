package spreadsheet

import (
	"fmt"
	"strconv"
)

// TokenType represents different types of tokens in formulas
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenInteger
	TokenFloat
	TokenOperator
	TokenLeftParen
	TokenRightParen
	TokenReference
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of formula"
	case TokenInteger:
		return "integer"
	case TokenFloat:
		return "float"
	case TokenOperator:
		return "operator"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenReference:
		return "reference"
	default:
		return "unknown"
	}
}

// character classification constants. slightly easier to read.
const (
	charNull     = 0
	charTab      = '\t'
	charNewline  = '\n'
	charReturn   = '\r'
	charSpace    = ' '
	charLParen   = '('
	charRParen   = ')'
	charAsterisk = '*'
	charPlus     = '+'
	charMinus    = '-'
	charPeriod   = '.'
	charSlash    = '/'
	charEqual    = '='
)

// Token represents a lexical token with position information
type Token struct {
	Type  TokenType
	Value string
	Pos   int // rune position in input
}

// Lexer tokenizes formula text. a Lexer is single use; create one per
// formula.
type Lexer struct {
	runes  []rune // UTF-8 aware representation
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given formula input
func NewLexer(input string) *Lexer {
	return &Lexer{
		runes:  []rune(input),
		tokens: []Token{},
	}
}

// Lex tokenizes a formula. the text must start with '='; the sigil itself is
// not returned as a token. the returned slice always ends with TokenEOF.
func Lex(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}

// Tokenize tokenizes the entire input. any character that does not start a
// valid token fails the whole formula.
func (l *Lexer) Tokenize() ([]Token, error) {
	if len(l.runes) == 0 || l.runes[0] != charEqual {
		return nil, NewEvaluationError(ErrorCodeParse, "formula must start with '='")
	}
	l.pos = 1

	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.Type == TokenEOF {
			return l.tokens, nil
		}
	}
}

// nextToken returns the next token from the input
func (l *Lexer) nextToken() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.runes) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	startPos := l.pos
	ch := l.current()

	if l.isDigit(ch) {
		return l.scanNumber()
	}

	switch ch {
	case charLParen:
		l.pos++
		return Token{Type: TokenLeftParen, Value: "(", Pos: startPos}, nil
	case charRParen:
		l.pos++
		return Token{Type: TokenRightParen, Value: ")", Pos: startPos}, nil
	case charPlus, charMinus, charAsterisk, charSlash:
		l.pos++
		return Token{Type: TokenOperator, Value: string(ch), Pos: startPos}, nil
	}

	if l.isAlpha(ch) {
		return l.scanReference()
	}

	return Token{}, l.errorAt(startPos, "unexpected character: %q", ch)
}

// helper methods for character navigation and classification

// substring returns a substring of the original input based on rune positions
func (l *Lexer) substring(start, end int) string {
	if start < 0 || end > len(l.runes) || start > end {
		return ""
	}
	return string(l.runes[start:end])
}

func (l *Lexer) current() rune {
	if l.pos >= len(l.runes) {
		return charNull
	}
	return l.runes[l.pos]
}

func (l *Lexer) peek(offset int) rune {
	pos := l.pos + offset
	if pos >= len(l.runes) || pos < 0 {
		return charNull
	}
	return l.runes[pos]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.runes) {
		ch := l.current()
		if ch == charSpace || ch == charTab || ch == charNewline || ch == charReturn {
			l.pos++
		} else {
			break
		}
	}
}

func (l *Lexer) isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func (l *Lexer) isAlpha(ch rune) bool {
	return isASCIILetter(ch)
}

func (l *Lexer) isAlphaNumeric(ch rune) bool {
	return l.isAlpha(ch) || l.isDigit(ch)
}

// scanNumber scans an integer or a float of the form digits.digits
func (l *Lexer) scanNumber() (Token, error) {
	startPos := l.pos

	for l.pos < len(l.runes) && l.isDigit(l.current()) {
		l.pos++
	}

	tokenType := TokenInteger
	if l.current() == charPeriod && l.isDigit(l.peek(1)) {
		tokenType = TokenFloat
		l.pos++ // consume '.'
		for l.pos < len(l.runes) && l.isDigit(l.current()) {
			l.pos++
		}
	}

	value := l.substring(startPos, l.pos)
	if tokenType == TokenInteger {
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return Token{}, l.errorAt(startPos, "integer literal out of range: %s", value)
		}
	}
	return Token{Type: tokenType, Value: value, Pos: startPos}, nil
}

// scanReference scans an alphanumeric run that must form a cell reference
func (l *Lexer) scanReference() (Token, error) {
	startPos := l.pos

	for l.pos < len(l.runes) && l.isAlphaNumeric(l.current()) {
		l.pos++
	}

	value := l.substring(startPos, l.pos)
	if !referencePattern.MatchString(value) {
		return Token{}, l.errorAt(startPos, "invalid cell reference: %s", value)
	}
	return Token{Type: TokenReference, Value: value, Pos: startPos}, nil
}

func (l *Lexer) errorAt(pos int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return NewEvaluationError(ErrorCodeParse, fmt.Sprintf("%s at position %d", msg, pos))
}
