package expression

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// scope carries everything a single evaluation needs
type scope struct {
	ctx       context.Context
	variables map[string]any
	functions map[string]Function
}

func (n *LiteralNode) eval(*scope) (any, error) {
	return n.Value, nil
}

func (n *IdentifierNode) eval(s *scope) (any, error) {
	value, ok := s.variables[n.Name]
	if !ok {
		return nil, runtimeError("undefined variable: %s", n.Name)
	}
	return value, nil
}

func (n *MemberNode) eval(s *scope) (any, error) {
	object, err := n.Object.eval(s)
	if err != nil {
		return nil, err
	}
	return member(object, n.Name), nil
}

func (n *IndexNode) eval(s *scope) (any, error) {
	object, err := n.Object.eval(s)
	if err != nil {
		return nil, err
	}
	index, err := n.Index.eval(s)
	if err != nil {
		return nil, err
	}

	if key, ok := index.(string); ok {
		return member(object, key), nil
	}
	i, ok := toNumber(index)
	if !ok {
		return nil, runtimeError("invalid index %v", index)
	}
	items, ok := toList(object)
	if !ok || math.IsNaN(i) || i < 0 || i >= float64(len(items)) {
		return nil, nil
	}
	return items[int(i)], nil
}

func (n *ArrayNode) eval(s *scope) (any, error) {
	items := make([]any, len(n.Elements))
	for i, element := range n.Elements {
		value, err := element.eval(s)
		if err != nil {
			return nil, err
		}
		items[i] = value
	}
	return items, nil
}

func (n *UnaryNode) eval(s *scope) (any, error) {
	value, err := n.Operand.eval(s)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "!":
		return !truthy(value), nil
	case "-":
		number, ok := toNumber(value)
		if !ok {
			return nil, runtimeError("invalid operand for unary -: %T", value)
		}
		return -number, nil
	default:
		return nil, runtimeError("unknown unary operator %s", n.Operator)
	}
}

func (n *BinaryNode) eval(s *scope) (any, error) {
	left, err := n.Left.eval(s)
	if err != nil {
		return nil, err
	}

	// logical operators short-circuit
	switch n.Operator {
	case "&&":
		if !truthy(left) {
			return false, nil
		}
		right, err := n.Right.eval(s)
		if err != nil {
			return nil, err
		}
		return truthy(right), nil
	case "||":
		if truthy(left) {
			return true, nil
		}
		right, err := n.Right.eval(s)
		if err != nil {
			return nil, err
		}
		return truthy(right), nil
	}

	right, err := n.Right.eval(s)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "==":
		return equal(left, right), nil
	case "!=":
		return !equal(left, right), nil
	case "<", "<=", ">", ">=":
		return compare(n.Operator, left, right)
	case "+":
		return add(left, right)
	case "-", "*", "/", "%":
		return arithmetic(n.Operator, left, right)
	default:
		return nil, runtimeError("unknown operator %s", n.Operator)
	}
}

func (n *CallNode) eval(s *scope) (any, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}

	function, ok := s.functions[n.Name]
	if !ok {
		return nil, runtimeError("function %s not registered", n.Name)
	}
	if function.Arity >= 0 && len(n.Args) != function.Arity {
		return nil, runtimeError("function %s expects %d arguments, got %d", n.Name, function.Arity, len(n.Args))
	}

	args := make([]any, len(n.Args))
	for i, arg := range n.Args {
		value, err := arg.eval(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d of %s: %w", i, n.Name, err)
		}
		args[i] = value
	}

	result, err := function.Handler(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", n.Name, err)
	}
	return result, nil
}

// member reads a key from a map; anything else yields nil
func member(object any, name string) any {
	switch m := object.(type) {
	case map[string]any:
		return m[name]
	case map[string]string:
		if v, ok := m[name]; ok {
			return v
		}
		return nil
	case nil:
		return nil
	}

	rv := reflect.ValueOf(object)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if v.IsValid() {
			return v.Interface()
		}
	}
	return nil
}

// truthy mirrors loose boolean coercion of the condition language
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	}
	if n, ok := toNumber(v); ok {
		return n != 0
	}
	if items, ok := toList(v); ok {
		return len(items) > 0
	}
	return true
}

func equal(left, right any) bool {
	ln, lok := toNumber(left)
	rn, rok := toNumber(right)
	if lok && rok {
		return ln == rn
	}
	return reflect.DeepEqual(normalize(left), normalize(right))
}

// normalize turns typed slices into []any so list equality is type agnostic
func normalize(v any) any {
	if items, ok := toList(v); ok {
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = normalize(item)
		}
		return out
	}
	return v
}

func compare(op string, left, right any) (any, error) {
	var cmp int
	ln, lok := toNumber(left)
	rn, rok := toNumber(right)
	ls, lsok := left.(string)
	rs, rsok := right.(string)

	switch {
	case lok && rok:
		cmp = compareFloat(ln, rn)
	case lsok && rsok:
		switch {
		case ls < rs:
			cmp = -1
		case ls > rs:
			cmp = 1
		}
	default:
		return nil, runtimeError("invalid operands for %s: %T and %T", op, left, right)
	}

	switch op {
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	default:
		return cmp >= 0, nil
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// add returns the sum or concatenation of two operands
func add(left, right any) (any, error) {
	_, lstr := left.(string)
	_, rstr := right.(string)
	if lstr || rstr {
		return toString(left) + toString(right), nil
	}

	ln, lok := toNumber(left)
	rn, rok := toNumber(right)
	if lok && rok {
		return ln + rn, nil
	}
	return nil, runtimeError("invalid operands for +: %T and %T", left, right)
}

func arithmetic(op string, left, right any) (any, error) {
	ln, lok := toNumber(left)
	rn, rok := toNumber(right)
	if !lok || !rok {
		return nil, runtimeError("invalid operands for %s: %T and %T", op, left, right)
	}

	switch op {
	case "-":
		return ln - rn, nil
	case "*":
		return ln * rn, nil
	case "/":
		if rn == 0 {
			return nil, runtimeError("division by zero")
		}
		return ln / rn, nil
	default:
		if rn == 0 {
			return nil, runtimeError("modulo by zero")
		}
		return math.Mod(ln, rn), nil
	}
}

// toNumber converts numeric Go values to float64; strings are not coerced
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// toList converts any slice or array value to []any
func toList(v any) ([]any, bool) {
	switch items := v.(type) {
	case []any:
		return items, true
	case []string:
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out, true
	case nil, string:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	}
	if n, ok := toNumber(v); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
