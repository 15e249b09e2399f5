package expression

import (
	"strconv"
	"strings"
)

// Node represents an AST node
type Node interface {
	eval(s *scope) (any, error)
}

// LiteralNode holds a number, string, bool or nil
type LiteralNode struct {
	Value any
}

// IdentifierNode looks up a top-level variable
type IdentifierNode struct {
	Name string
}

// MemberNode reads a named member of a map value
type MemberNode struct {
	Object Node
	Name   string
}

// IndexNode reads a list element or map entry
type IndexNode struct {
	Object Node
	Index  Node
}

// ArrayNode builds a list literal
type ArrayNode struct {
	Elements []Node
}

// UnaryNode applies ! or - to its operand
type UnaryNode struct {
	Operator string
	Operand  Node
}

// BinaryNode applies an infix operator
type BinaryNode struct {
	Operator string
	Left     Node
	Right    Node
}

// CallNode invokes a registered function
type CallNode struct {
	Name string
	Args []Node
}

// binary operator precedence, higher binds tighter
var precedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, "<=": 4, ">": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

// keyword spellings accepted alongside the symbolic operators
var keywords = map[string]string{
	"and": "&&",
	"or":  "||",
	"not": "!",
}

type parser struct {
	tokens   []*Token
	current  int
	depth    int
	maxDepth int
}

// parse parses a token stream into an AST
func parse(tokens []*Token, maxDepth int) (Node, error) {
	p := &parser{tokens: tokens, maxDepth: maxDepth}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, syntaxError(tok.Pos, "unexpected %s %q", tok.Type, tok.Value)
	}
	return node, nil
}

func (p *parser) peek() *Token {
	return p.tokens[p.current]
}

func (p *parser) next() *Token {
	tok := p.tokens[p.current]
	if tok.Type != TokenEOF {
		p.current++
	}
	return tok
}

func (p *parser) expect(t TokenType) (*Token, error) {
	tok := p.next()
	if tok.Type != t {
		return nil, syntaxError(tok.Pos, "expected %s, got %s", t, tok.Type)
	}
	return tok, nil
}

// operator returns the binary operator at the cursor, if any
func (p *parser) operator() (string, bool) {
	tok := p.peek()
	switch tok.Type {
	case TokenOperator:
		_, ok := precedence[tok.Value]
		return tok.Value, ok
	case TokenIdentifier:
		if op, ok := keywords[strings.ToLower(tok.Value)]; ok && op != "!" {
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseExpression() (Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return nil, syntaxError(p.peek().Pos, "max expression depth %d exceeded", p.maxDepth)
	}
	return p.parseBinary(1)
}

// parseBinary parses operators of at least the given precedence
func (p *parser) parseBinary(minPrec int) (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.operator()
		if !ok || precedence[op] < minPrec {
			return left, nil
		}
		p.next()

		right, err := p.parseBinary(precedence[op] + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Operator: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Node, error) {
	tok := p.peek()
	isNot := tok.Type == TokenIdentifier && strings.EqualFold(tok.Value, "not")
	if isNot || (tok.Type == TokenOperator && (tok.Value == "!" || tok.Value == "-")) {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := tok.Value
		if isNot {
			op = "!"
		}
		return &UnaryNode{Operator: op, Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().Type {
		case TokenDot:
			p.next()
			name, err := p.expect(TokenIdentifier)
			if err != nil {
				return nil, err
			}
			node = &MemberNode{Object: node, Name: name.Value}

		case TokenLBracket:
			p.next()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenRBracket); err != nil {
				return nil, err
			}
			node = &IndexNode{Object: node, Index: index}

		case TokenLParen:
			name, ok := calleeName(node)
			if !ok {
				return nil, syntaxError(p.peek().Pos, "only named functions can be called")
			}
			p.next()
			args, err := p.parseList(TokenRParen)
			if err != nil {
				return nil, err
			}
			node = &CallNode{Name: name, Args: args}

		default:
			return node, nil
		}
	}
}

// calleeName flattens Identifier / Member chains such as String.startsWith
func calleeName(node Node) (string, bool) {
	switch n := node.(type) {
	case *IdentifierNode:
		return n.Name, true
	case *MemberNode:
		prefix, ok := calleeName(n.Object)
		if !ok {
			return "", false
		}
		return prefix + "." + n.Name, true
	default:
		return "", false
	}
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.next()

	switch tok.Type {
	case TokenNumber:
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, syntaxError(tok.Pos, "invalid number %q", tok.Value)
		}
		return &LiteralNode{Value: value}, nil

	case TokenString:
		return &LiteralNode{Value: tok.Value}, nil

	case TokenIdentifier:
		switch strings.ToLower(tok.Value) {
		case "true":
			return &LiteralNode{Value: true}, nil
		case "false":
			return &LiteralNode{Value: false}, nil
		case "null", "nil":
			return &LiteralNode{Value: nil}, nil
		}
		if _, ok := keywords[strings.ToLower(tok.Value)]; ok {
			return nil, syntaxError(tok.Pos, "unexpected keyword %q", tok.Value)
		}
		return &IdentifierNode{Name: tok.Value}, nil

	case TokenLParen:
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return node, nil

	case TokenLBracket:
		elements, err := p.parseList(TokenRBracket)
		if err != nil {
			return nil, err
		}
		return &ArrayNode{Elements: elements}, nil

	case TokenEOF:
		return nil, syntaxError(tok.Pos, "unexpected end of expression")

	default:
		return nil, syntaxError(tok.Pos, "unexpected %s %q", tok.Type, tok.Value)
	}
}

// parseList parses comma separated expressions up to the closing token
func (p *parser) parseList(closing TokenType) ([]Node, error) {
	var items []Node
	if p.peek().Type == closing {
		p.next()
		return items, nil
	}

	for {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		tok := p.next()
		switch tok.Type {
		case closing:
			return items, nil
		case TokenComma:
			continue
		default:
			return nil, syntaxError(tok.Pos, "expected ',' or %s, got %s", closing, tok.Type)
		}
	}
}
