package expression

import "strings"

// tokenize splits the expression into tokens
func tokenize(expr string) ([]*Token, error) {
	var tokens []*Token
	current := 0

	for current < len(expr) {
		char := expr[current]

		switch {
		case isWhitespace(char):
			current++

		case isDigit(char):
			token, next := readNumber(expr, current)
			tokens = append(tokens, token)
			current = next

		case isLetter(char):
			token, next := readIdentifier(expr, current)
			tokens = append(tokens, token)
			current = next

		case char == '"' || char == '\'':
			token, next, err := readString(expr, current)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
			current = next

		case isOperator(char):
			token, next, err := readOperator(expr, current)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)
			current = next

		case strings.IndexByte("()[].,", char) >= 0:
			tokens = append(tokens, &Token{Type: punctuation(char), Value: string(char), Pos: current})
			current++

		default:
			return nil, syntaxError(current, "unexpected character %q", char)
		}
	}

	tokens = append(tokens, &Token{Type: TokenEOF, Pos: current})
	return tokens, nil
}

// readNumber reads a number token from the input
func readNumber(input string, start int) (*Token, int) {
	current := start
	hasDot := false

	for current < len(input) {
		char := input[current]
		if isDigit(char) {
			current++
			continue
		}
		// a dot only belongs to the number when a digit follows
		if char == '.' && !hasDot && current+1 < len(input) && isDigit(input[current+1]) {
			hasDot = true
			current++
			continue
		}
		break
	}

	return &Token{Type: TokenNumber, Value: input[start:current], Pos: start}, current
}

// readIdentifier reads an identifier token from the input
func readIdentifier(input string, start int) (*Token, int) {
	current := start
	for current < len(input) && (isLetter(input[current]) || isDigit(input[current])) {
		current++
	}
	return &Token{Type: TokenIdentifier, Value: input[start:current], Pos: start}, current
}

// readString reads a quoted string token from the input
func readString(input string, start int) (*Token, int, error) {
	var value strings.Builder
	quote := input[start]
	current := start + 1

	for current < len(input) {
		char := input[current]
		if char == quote {
			return &Token{Type: TokenString, Value: value.String(), Pos: start}, current + 1, nil
		}
		if char == '\\' && current+1 < len(input) {
			current++
			char = input[current]
			switch char {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			case '\\', '"', '\'':
				value.WriteByte(char)
			default:
				return nil, 0, syntaxError(current-1, "invalid escape sequence \\%c", char)
			}
		} else {
			value.WriteByte(char)
		}
		current++
	}

	return nil, 0, syntaxError(start, "unterminated string")
}

// readOperator reads an operator token from the input
func readOperator(input string, start int) (*Token, int, error) {
	if start+1 < len(input) {
		switch compound := input[start : start+2]; compound {
		case "==", "!=", ">=", "<=", "&&", "||":
			return &Token{Type: TokenOperator, Value: compound, Pos: start}, start + 2, nil
		}
	}

	switch op := input[start : start+1]; op {
	case "+", "-", "*", "/", "%", "!", "<", ">":
		return &Token{Type: TokenOperator, Value: op, Pos: start}, start + 1, nil
	default:
		return nil, 0, syntaxError(start, "invalid operator %q", op)
	}
}

func punctuation(c byte) TokenType {
	switch c {
	case '(':
		return TokenLParen
	case ')':
		return TokenRParen
	case '[':
		return TokenLBracket
	case ']':
		return TokenRBracket
	case '.':
		return TokenDot
	default:
		return TokenComma
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isOperator(c byte) bool {
	return strings.IndexByte("+-*/%=!<>&|", c) >= 0
}
