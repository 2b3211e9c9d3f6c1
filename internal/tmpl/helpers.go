package tmpl

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/aymerick/raymond"
)

// Helpers returns the handlebars helpers:
//
//	{{#compare a "<" b}}...{{else}}...{{/compare}}
//	{{#compare a b}}...{{/compare}}  (a === b)
//	{{{json value}}}
//	{{#md}}**markdown**{{/md}}
//	{{#each_upto items 5}}...{{else}}...{{/each_upto}}
func Helpers(markdown MarkdownFunc) map[string]interface{} {
	return map[string]interface{}{
		"compare":   compareHelper,
		"json":      jsonHelper,
		"md":        markdownHelper(markdown),
		"each_upto": eachUptoHelper,
	}
}

// twoArgCompare matches a compare block opened with two params and no
// operator. A param is a quoted string or a bare token.
var twoArgCompare = regexp.MustCompile(
	`\{\{(~?)#compare\s+("[^"]*"|'[^']*'|[^\s"'(){}~]+)\s+("[^"]*"|'[^']*'|[^\s"'(){}~]+)\s*(~?)\}\}`,
)

// ExpandCompare rewrites {{#compare a b}} to {{#compare a "===" b}} so the
// helper always receives an operator. Other compare forms are untouched.
func ExpandCompare(source string) string {
	return twoArgCompare.ReplaceAllString(source, `{{${1}#compare ${2} "===" ${3}${4}}}`)
}

// compareHelper renders the block when lvalue operator rvalue holds.
// Helper errors panic; raymond turns the panic into an Exec error.
func compareHelper(lvalue, operator, rvalue interface{}, options *raymond.Options) raymond.SafeString {
	op, ok := operator.(string)
	if !ok {
		panic(fmt.Errorf("helper compare: operator must be a string, got %T", operator))
	}
	result, err := Compare(lvalue, op, rvalue)
	if err != nil {
		panic(err)
	}
	if result {
		return raymond.SafeString(options.Fn())
	}
	return raymond.SafeString(options.Inverse())
}

func jsonHelper(value interface{}) string {
	b, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Errorf("helper json: %w", err))
	}
	return string(b)
}

func markdownHelper(markdown MarkdownFunc) func(options *raymond.Options) raymond.SafeString {
	return func(options *raymond.Options) raymond.SafeString {
		source := options.Fn()
		if markdown == nil {
			return raymond.SafeString(source)
		}
		out, err := markdown(source)
		if err != nil {
			panic(fmt.Errorf("helper md: %w", err))
		}
		return raymond.SafeString(out)
	}
}

func eachUptoHelper(ary, max interface{}, options *raymond.Options) raymond.SafeString {
	items := toSlice(ary)
	if len(items) == 0 {
		return raymond.SafeString(options.Inverse())
	}
	limit, ok := toNumber(max)
	if !ok {
		panic(fmt.Errorf("helper each_upto: max must be a number, got %T", max))
	}
	var b strings.Builder
	for i := 0; float64(i) < limit && i < len(items); i++ {
		b.WriteString(options.FnWith(items[i]))
	}
	return raymond.SafeString(b.String())
}

// Compare evaluates lvalue operator rvalue with JavaScript semantics for
// the operators ==, ===, !=, !==, <, >, <=, >= and typeof.
func Compare(lvalue interface{}, operator string, rvalue interface{}) (bool, error) {
	switch operator {
	case "==":
		return looseEqual(lvalue, rvalue), nil
	case "===":
		return strictEqual(lvalue, rvalue), nil
	case "!=":
		return !looseEqual(lvalue, rvalue), nil
	case "!==":
		return !strictEqual(lvalue, rvalue), nil
	case "<", ">", "<=", ">=":
		return relational(lvalue, operator, rvalue), nil
	case "typeof":
		return TypeOf(lvalue) == raymond.Str(rvalue), nil
	default:
		return false, fmt.Errorf("helper compare: unknown operator %q", operator)
	}
}

// TypeOf returns the JavaScript typeof name of a decoded JSON value.
func TypeOf(v interface{}) string {
	switch v.(type) {
	case nil:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		return "number"
	}
	return "object"
}

func strictEqual(l, r interface{}) bool {
	if TypeOf(l) != TypeOf(r) {
		return false
	}
	if ln, ok := toNumber(l); ok {
		rn, _ := toNumber(r)
		return ln == rn
	}
	switch l.(type) {
	case string, bool, nil:
		return l == r
	}
	// Objects and arrays compare by identity in JavaScript.
	lv, rv := reflect.ValueOf(l), reflect.ValueOf(r)
	if lv.Kind() == reflect.Map || lv.Kind() == reflect.Slice {
		return lv.Kind() == rv.Kind() && lv.Pointer() == rv.Pointer()
	}
	return l == r
}

func looseEqual(l, r interface{}) bool {
	if l == nil || r == nil {
		return l == nil && r == nil
	}
	if TypeOf(l) == TypeOf(r) {
		return strictEqual(l, r)
	}
	ln, lok := toNumber(l)
	rn, rok := toNumber(r)
	return lok && rok && ln == rn
}

func relational(l interface{}, op string, r interface{}) bool {
	ls, lstr := l.(string)
	rs, rstr := r.(string)
	if lstr && rstr {
		switch op {
		case "<":
			return ls < rs
		case ">":
			return ls > rs
		case "<=":
			return ls <= rs
		default:
			return ls >= rs
		}
	}
	ln, lok := toNumber(l)
	rn, rok := toNumber(r)
	if !lok || !rok {
		return false
	}
	switch op {
	case "<":
		return ln < rn
	case ">":
		return ln > rn
	case "<=":
		return ln <= rn
	default:
		return ln >= rn
	}
}

// toNumber converts v the way JavaScript's Number() does for JSON values.
func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
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
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func toSlice(v interface{}) []interface{} {
	if v == nil {
		return nil
	}
	if s, ok := v.([]interface{}); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
