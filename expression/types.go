package expression

import (
	"errors"
	"fmt"
)

// TokenType represents expression token type
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenString
	TokenIdentifier
	TokenOperator
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenDot
	TokenComma
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of expression"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenIdentifier:
		return "identifier"
	case TokenOperator:
		return "operator"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenDot:
		return "'.'"
	case TokenComma:
		return "','"
	default:
		return "unknown"
	}
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Function is a callable exposed to expressions. Arity -1 accepts any number
// of arguments.
type Function struct {
	Name    string
	Arity   int
	Handler func(args []any) (any, error)
}

// Config represents engine configuration
type Config struct {
	MaxDepth  int
	MaxLength int
	CacheSize int
}

// DefaultConfig returns default engine configuration
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:  32,
		MaxLength: 4096,
		CacheSize: 256,
	}
}

var (
	// ErrEmptyExpression is returned for blank conditions.
	ErrEmptyExpression = errors.New("empty expression")
	// ErrNotBoolean is returned by EvaluateBool when the result is not a bool.
	ErrNotBoolean = errors.New("expression did not evaluate to a boolean")
)

// Error represents an expression error
type Error struct {
	Type    string // syntax, runtime
	Message string
	Pos     int
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s error at position %d: %s", e.Type, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func syntaxError(pos int, format string, args ...any) error {
	return &Error{Type: "syntax", Message: fmt.Sprintf(format, args...), Pos: pos}
}

func runtimeError(format string, args ...any) error {
	return &Error{Type: "runtime", Message: fmt.Sprintf(format, args...), Pos: -1}
}
