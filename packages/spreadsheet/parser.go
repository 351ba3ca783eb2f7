package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
)

// binding strength of each node kind, used to print the minimum number of
// parentheses that still reproduces the same tree
const (
	precAdditive = iota + 1
	precMultiplicative
	precPower
	precUnary
	precAtom
)

// ASTNode is a node of a parsed arithmetic expression
type ASTNode interface {
	Eval(r SheetReader) (float64, error)
	ToString() string
	precedence() int
	collectCells(cells *[]Position)
}

// Parser parses tokens into an AST
type Parser struct {
	tokens []Token
	pos    int
}

// NumberNode represents a numeric literal
type NumberNode struct {
	Value float64
}

func (n *NumberNode) Eval(r SheetReader) (float64, error) {
	return n.Value, nil
}

func (n *NumberNode) ToString() string {
	// integers print without an exponent; everything else in the shortest
	// form the lexer can read back (upper-case exponent)
	if n.Value == math.Trunc(n.Value) && math.Abs(n.Value) < 1e15 {
		return strconv.FormatFloat(n.Value, 'f', -1, 64)
	}
	return strconv.FormatFloat(n.Value, 'G', -1, 64)
}

func (n *NumberNode) precedence() int {
	return precAtom
}

func (n *NumberNode) collectCells(cells *[]Position) {}

// CellRefNode represents a reference to another cell
type CellRefNode struct {
	Position Position
	Ref      string // reference as written, kept for positions that are out of range
}

func (n *CellRefNode) Eval(r SheetReader) (float64, error) {
	if !n.Position.IsValid() {
		return 0, NewFormulaError(ErrorCodeRef)
	}

	cell, err := r.GetCell(n.Position)
	if err != nil {
		return 0, NewFormulaError(ErrorCodeRef)
	}
	if cell == nil {
		return 0, nil
	}

	return toNumber(cell.GetValue())
}

func (n *CellRefNode) ToString() string {
	if n.Position.IsValid() {
		return n.Position.String()
	}
	return n.Ref
}

func (n *CellRefNode) precedence() int {
	return precAtom
}

func (n *CellRefNode) collectCells(cells *[]Position) {
	*cells = append(*cells, n.Position)
}

// BinaryOpNode represents a binary operation
type BinaryOpNode struct {
	Op    BinaryOp
	Left  ASTNode
	Right ASTNode
}

func (n *BinaryOpNode) Eval(r SheetReader) (float64, error) {
	// an error on the left short-circuits the right operand
	left, err := n.Left.Eval(r)
	if err != nil {
		return 0, err
	}

	right, err := n.Right.Eval(r)
	if err != nil {
		return 0, err
	}

	var result float64
	switch n.Op {
	case BinOpAdd:
		result = left + right
	case BinOpSubtract:
		result = left - right
	case BinOpMultiply:
		result = left * right
	case BinOpDivide:
		if right == 0 {
			return 0, NewFormulaError(ErrorCodeDiv0)
		}
		result = left / right
	case BinOpPower:
		result = math.Pow(left, right)
	default:
		return 0, NewFormulaError(ErrorCodeValue)
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, NewFormulaError(ErrorCodeDiv0)
	}
	return result, nil
}

func (n *BinaryOpNode) ToString() string {
	opStr := ""
	switch n.Op {
	case BinOpAdd:
		opStr = "+"
	case BinOpSubtract:
		opStr = "-"
	case BinOpMultiply:
		opStr = "*"
	case BinOpDivide:
		opStr = "/"
	case BinOpPower:
		opStr = "^"
	}

	prec := n.precedence()
	leftNeedsParens := n.Left.precedence() < prec
	rightNeedsParens := n.Right.precedence() <= prec
	if n.Op == BinOpPower {
		// right-associative
		leftNeedsParens = n.Left.precedence() <= prec
		rightNeedsParens = n.Right.precedence() < prec
	}

	return wrap(n.Left.ToString(), leftNeedsParens) + opStr + wrap(n.Right.ToString(), rightNeedsParens)
}

func (n *BinaryOpNode) precedence() int {
	switch n.Op {
	case BinOpAdd, BinOpSubtract:
		return precAdditive
	case BinOpMultiply, BinOpDivide:
		return precMultiplicative
	}
	return precPower
}

func (n *BinaryOpNode) collectCells(cells *[]Position) {
	n.Left.collectCells(cells)
	n.Right.collectCells(cells)
}

// UnaryOpNode represents a unary operation
type UnaryOpNode struct {
	Op      UnaryOp
	Operand ASTNode
}

func (n *UnaryOpNode) Eval(r SheetReader) (float64, error) {
	val, err := n.Operand.Eval(r)
	if err != nil {
		return 0, err
	}

	if n.Op == UnaryOpMinus {
		return -val, nil
	}
	return val, nil
}

func (n *UnaryOpNode) ToString() string {
	opStr := "+"
	if n.Op == UnaryOpMinus {
		opStr = "-"
	}
	return opStr + wrap(n.Operand.ToString(), n.Operand.precedence() < precUnary)
}

func (n *UnaryOpNode) precedence() int {
	return precUnary
}

func (n *UnaryOpNode) collectCells(cells *[]Position) {
	n.Operand.collectCells(cells)
}

func wrap(s string, parens bool) string {
	if parens {
		return "(" + s + ")"
	}
	return s
}

// NewParser creates a new parser with the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		pos:    0,
	}
}

// Parse parses the tokens into an AST
func (p *Parser) Parse() (ASTNode, error) {
	if len(p.tokens) == 0 {
		return nil, syntaxError("no tokens to parse")
	}

	node, err := p.parseAddition()
	if err != nil {
		return nil, err
	}

	// ensure we've consumed all tokens except EOF
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, syntaxError(fmt.Sprintf("unexpected token after expression: %s", tok.Value))
	}

	return node, nil
}

// peek returns the current token, or EOF past the end of the stream
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// parseAddition handles addition and subtraction (lowest precedence)
func (p *Parser) parseAddition() (ASTNode, error) {
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Type != TokenBinaryOp {
			return left, nil
		}

		var op BinaryOp
		switch tok.Value {
		case "+":
			op = BinOpAdd
		case "-":
			op = BinOpSubtract
		default:
			return left, nil
		}

		p.pos++
		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{Op: op, Left: left, Right: right}
	}
}

// parseMultiplication handles multiplication and division
func (p *Parser) parseMultiplication() (ASTNode, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.Type != TokenBinaryOp {
			return left, nil
		}

		var op BinaryOp
		switch tok.Value {
		case "*":
			op = BinOpMultiply
		case "/":
			op = BinOpDivide
		default:
			return left, nil
		}

		p.pos++
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}

		left = &BinaryOpNode{Op: op, Left: left, Right: right}
	}
}

// parsePower handles exponentiation
func (p *Parser) parsePower() (ASTNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	// right-associative
	if tok := p.peek(); tok.Type == TokenBinaryOp && tok.Value == "^" {
		p.pos++
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}

		return &BinaryOpNode{Op: BinOpPower, Left: left, Right: right}, nil
	}

	return left, nil
}

// parseUnary handles unary operators
func (p *Parser) parseUnary() (ASTNode, error) {
	tok := p.peek()
	if tok.Type != TokenUnaryPrefixOp {
		return p.parsePrimary()
	}

	op := UnaryOpPlus
	if tok.Value == "-" {
		op = UnaryOpMinus
	}

	p.pos++
	operand, err := p.parseUnary() // recurse for chained unary operators
	if err != nil {
		return nil, err
	}

	return &UnaryOpNode{Op: op, Operand: operand}, nil
}

// parsePrimary handles literals, references and parentheses
func (p *Parser) parsePrimary() (ASTNode, error) {
	tok := p.peek()

	switch tok.Type {
	case TokenNumber:
		p.pos++
		val, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, syntaxError(fmt.Sprintf("invalid number: %s", tok.Value))
		}
		return &NumberNode{Value: val}, nil

	case TokenCell:
		p.pos++
		// a well-formed reference may still be out of range; that is
		// reported when the formula is assigned to a cell
		pos, _ := parseCellAddress(tok.Value)
		if !pos.IsValid() {
			pos = NonePosition
		}
		return &CellRefNode{Position: pos, Ref: tok.Value}, nil

	case TokenLeftParen:
		p.pos++
		node, err := p.parseAddition()
		if err != nil {
			return nil, err
		}

		if p.peek().Type != TokenRightParen {
			return nil, syntaxError("expected closing parenthesis")
		}
		p.pos++

		return node, nil

	case TokenEOF:
		return nil, syntaxError("unexpected end of expression")

	default:
		return nil, syntaxError(fmt.Sprintf("unexpected token: %s", tok.Value))
	}
}
