package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/xuri/efp"
)

// TokenType represents different types of tokens in formulas
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenCell
	TokenUnaryPrefixOp
	TokenBinaryOp
	TokenLeftParen
	TokenRightParen
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of expression"
	case TokenNumber:
		return "number"
	case TokenCell:
		return "cell reference"
	case TokenUnaryPrefixOp:
		return "unary operator"
	case TokenBinaryOp:
		return "operator"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	}
	return "unknown token"
}

// BinaryOp represents binary operators in AST nodes
type BinaryOp int

const (
	BinOpAdd BinaryOp = iota
	BinOpSubtract
	BinOpMultiply
	BinOpDivide
	BinOpPower
)

// UnaryOp represents unary operators in AST nodes
type UnaryOp int

const (
	UnaryOpPlus UnaryOp = iota
	UnaryOpMinus
)

// TokenState represents the lexer state for validation
type TokenState int

const (
	StateStart TokenState = iota
	StateAfterValue
	StateAfterOperator
	StateAfterLeftParen
	StateAfterRightParen
)

// tokenTransitions maps the current state to valid next token types
var tokenTransitions = map[TokenState]map[TokenType]bool{
	StateStart: {
		TokenUnaryPrefixOp: true,
		TokenNumber:        true,
		TokenCell:          true,
		TokenLeftParen:     true,
	},
	StateAfterValue: { // after number or cell
		TokenBinaryOp:   true,
		TokenRightParen: true,
		TokenEOF:        true,
	},
	StateAfterOperator: {
		TokenNumber:        true,
		TokenCell:          true,
		TokenLeftParen:     true,
		TokenUnaryPrefixOp: true,
	},
	StateAfterLeftParen: {
		TokenNumber:        true,
		TokenCell:          true,
		TokenLeftParen:     true, // nested
		TokenUnaryPrefixOp: true,
	},
	StateAfterRightParen: {
		TokenBinaryOp:   true,
		TokenRightParen: true, // if nested
		TokenEOF:        true,
	},
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Lexer turns an expression (without the leading '=') into the token stream
// the Parser consumes. scanning is delegated to the Excel formula tokenizer;
// the lexer narrows its output to the arithmetic subset and validates token
// order.
type Lexer struct {
	input      string
	state      TokenState
	parenDepth int
	tokens     []Token
}

// NewLexer creates a new lexer for the given expression
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		state: StateStart,
	}
}

// Tokenize tokenizes the entire input
func (l *Lexer) Tokenize() ([]Token, error) {
	if strings.TrimSpace(l.input) == "" {
		return nil, syntaxError("empty expression")
	}

	// the tokenizer treats a leading '=' as the formula sign and drops it
	if strings.HasPrefix(strings.TrimSpace(l.input), "=") {
		return nil, syntaxError(`unexpected "="`)
	}

	// the tokenizer is lenient about stray parentheses, so check balance up
	// front
	if err := checkParens(l.input); err != nil {
		return nil, err
	}

	ps := efp.ExcelParser()
	raws := ps.Parse(l.input)
	if ps.InString || ps.InPath || ps.InRange || ps.InError {
		return nil, syntaxError("unterminated literal")
	}

	for _, raw := range raws {
		tok, skip, err := l.convert(raw)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		if err := l.push(tok); err != nil {
			return nil, err
		}
	}

	if l.parenDepth != 0 {
		return nil, syntaxError("unbalanced parentheses")
	}

	if err := l.push(Token{Type: TokenEOF}); err != nil {
		return nil, err
	}

	return l.tokens, nil
}

// push validates the state transition and records the token
func (l *Lexer) push(tok Token) error {
	if !tokenTransitions[l.state][tok.Type] {
		if tok.Value == "" {
			return syntaxError(fmt.Sprintf("unexpected %s", tok.Type))
		}
		return syntaxError(fmt.Sprintf("unexpected %s %q", tok.Type, tok.Value))
	}

	switch tok.Type {
	case TokenLeftParen:
		l.parenDepth++
	case TokenRightParen:
		l.parenDepth--
	}

	l.tokens = append(l.tokens, tok)
	l.updateState(tok.Type)
	return nil
}

// updateState updates the lexer state based on the token type
func (l *Lexer) updateState(tokenType TokenType) {
	switch tokenType {
	case TokenNumber, TokenCell:
		l.state = StateAfterValue
	case TokenUnaryPrefixOp, TokenBinaryOp:
		l.state = StateAfterOperator
	case TokenLeftParen:
		l.state = StateAfterLeftParen
	case TokenRightParen:
		l.state = StateAfterRightParen
	}
}

// convert maps one tokenizer token onto the arithmetic token set. skip is
// true for tokens that carry no meaning (no-ops and whitespace).
func (l *Lexer) convert(raw efp.Token) (tok Token, skip bool, err error) {
	switch raw.TType {
	case efp.TokenTypeNoop, efp.TokenTypeWhitespace:
		return Token{}, true, nil

	case efp.TokenTypeOperand:
		switch raw.TSubType {
		case efp.TokenSubTypeNumber:
			// the tokenizer accepts anything strconv does, including "Inf",
			// "NaN", hex floats and a lower-case exponent
			if !isNumber(raw.TValue) {
				return Token{}, false, syntaxError(fmt.Sprintf("invalid number %q", raw.TValue))
			}
			return Token{Type: TokenNumber, Value: raw.TValue}, false, nil
		case efp.TokenSubTypeRange:
			if !isCell(raw.TValue) {
				return Token{}, false, syntaxError(fmt.Sprintf("invalid cell reference %q", raw.TValue))
			}
			return Token{Type: TokenCell, Value: raw.TValue}, false, nil
		}
		return Token{}, false, syntaxError(fmt.Sprintf("unsupported operand %q", raw.TValue))

	case efp.TokenTypeOperatorPrefix:
		if raw.TValue == "-" || raw.TValue == "+" {
			return Token{Type: TokenUnaryPrefixOp, Value: raw.TValue}, false, nil
		}

	case efp.TokenTypeOperatorInfix:
		switch raw.TValue {
		case "+", "-", "*", "/", "^":
			return Token{Type: TokenBinaryOp, Value: raw.TValue}, false, nil
		}

	case efp.TokenTypeSubexpression:
		switch raw.TSubType {
		case efp.TokenSubTypeStart:
			return Token{Type: TokenLeftParen, Value: "("}, false, nil
		case efp.TokenSubTypeStop:
			return Token{Type: TokenRightParen, Value: ")"}, false, nil
		}

	case efp.TokenTypeFunction:
		if raw.TSubType == efp.TokenSubTypeStart {
			return Token{}, false, syntaxError(fmt.Sprintf("functions are not supported: %s", raw.TValue))
		}
	}

	if raw.TValue == "" {
		return Token{}, false, syntaxError(fmt.Sprintf("unexpected %s", strings.ToLower(raw.TType)))
	}
	return Token{}, false, syntaxError(fmt.Sprintf("unexpected %q", raw.TValue))
}

// checkParens rejects unbalanced parentheses outside of quoted text
func checkParens(input string) error {
	depth := 0
	inString := false
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '"':
			inString = !inString
		case '(':
			if !inString {
				depth++
			}
		case ')':
			if !inString {
				depth--
				if depth < 0 {
					return syntaxError("unbalanced parentheses: unexpected ')'")
				}
			}
		}
	}
	if depth > 0 {
		return syntaxError("unbalanced parentheses: missing ')'")
	}
	return nil
}

// isCell checks if a string is a cell reference in "A1" notation
func isCell(s string) bool {
	_, ok := parseCellAddress(s)
	return ok
}

// isNumber reports whether s is a decimal literal with an optional
// upper-case exponent, such as "12", ".5" or "1.5E-3"
func isNumber(s string) bool {
	if s == "" || !isDigit(s[0]) && s[0] != '.' {
		return false
	}
	return strings.Trim(s, "0123456789.E+-") == ""
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
