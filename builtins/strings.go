package builtins

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/object"
)

func upper(s string) string  { return cases.Upper(language.Und).String(s) }
func lower(s string) string  { return cases.Lower(language.Und).String(s) }
func proper(s string) string { return cases.Title(language.Und).String(s) }
func ltrim(s string) string  { return strings.TrimLeft(s, " \t") }
func rtrim(s string) string  { return strings.TrimRight(s, " \t") }
func trim(s string) string   { return strings.Trim(s, " \t") }

func stringFn(fn func(string) string) func(object.Object) (object.Object, error) {
	return func(arg object.Object) (object.Object, error) {
		s, ok := arg.(*object.String)
		if !ok {
			return nil, typeMismatch()
		}
		return &object.String{Value: fn(s.Value)}, nil
	}
}

// LEN counts characters in a string or elements in an array
func lenFn(arg object.Object) (object.Object, error) {
	switch v := arg.(type) {
	case *object.String:
		return &object.Integer{Value: int64(utf8.RuneCountInString(v.Value))}, nil
	case *object.Array:
		return &object.Integer{Value: int64(v.Len())}, nil
	}
	return nil, typeMismatch()
}

func reverseFn(arg object.Object) (object.Object, error) {
	switch v := arg.(type) {
	case *object.String:
		r := []rune(v.Value)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return &object.String{Value: string(r)}, nil
	case *object.Array:
		out := v.Copy()
		for i, j := 0, len(out.Elements)-1; i < j; i, j = i+1, j-1 {
			out.Elements[i], out.Elements[j] = out.Elements[j], out.Elements[i]
		}
		return out, nil
	}
	return nil, typeMismatch()
}

func ascFn(arg object.Object) (object.Object, error) {
	s, ok := arg.(*object.String)
	if !ok {
		return nil, typeMismatch()
	}
	if len(s.Value) == 0 {
		return nil, illegalCall()
	}
	r, _ := utf8.DecodeRuneInString(s.Value)
	return &object.Integer{Value: int64(r)}, nil
}

func chrFn(arg object.Object) (object.Object, error) {
	n, ok := object.ToInt(arg)
	if !ok {
		return nil, typeMismatch()
	}
	if n < 0 || n > utf8.MaxRune {
		return nil, illegalCall()
	}
	return &object.String{Value: string(rune(n))}, nil
}

func strFn(arg object.Object) (object.Object, error) {
	if !object.IsNumeric(arg) {
		return nil, typeMismatch()
	}
	return &object.String{Value: arg.Inspect()}, nil
}

// VAL reads a number from the front of a string, 0 when there is none
func valFn(arg object.Object) (object.Object, error) {
	s, ok := arg.(*object.String)
	if !ok {
		return nil, typeMismatch()
	}
	return ParseNumber(s.Value), nil
}

// ParseNumber converts text to the narrowest numeric value that holds it,
// Integer 0 when the text is not a number
func ParseNumber(text string) object.Object {
	text = strings.TrimSpace(text)
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &object.Integer{Value: i}
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return &object.Real{Value: f}
	}
	if c, err := strconv.ParseComplex(strings.ToLower(text), 128); err == nil {
		return &object.Complex{Value: c}
	}
	return &object.Integer{Value: 0}
}

func radixFn(base int) func(object.Object) (object.Object, error) {
	return func(arg object.Object) (object.Object, error) {
		n, ok := object.ToInt(arg)
		if !ok {
			return nil, typeMismatch()
		}
		return &object.String{Value: strings.ToUpper(strconv.FormatUint(uint64(n), base))}, nil
	}
}

func stringAndCount(s, n object.Object) (string, int, error) {
	str, ok := s.(*object.String)
	if !ok {
		return "", 0, typeMismatch()
	}
	cnt, ok := object.ToInt(n)
	if !ok {
		return "", 0, typeMismatch()
	}
	if cnt < 0 {
		return "", 0, illegalCall()
	}
	return str.Value, int(cnt), nil
}

// "Hello" LEFT 2
func leftFn(l, r object.Object) (object.Object, error) {
	s, n, err := stringAndCount(l, r)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if n > len(runes) {
		n = len(runes)
	}
	return &object.String{Value: string(runes[:n])}, nil
}

// "Hello" RIGHT 3
func rightFn(l, r object.Object) (object.Object, error) {
	s, n, err := stringAndCount(l, r)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if n > len(runes) {
		n = len(runes)
	}
	return &object.String{Value: string(runes[len(runes)-n:])}, nil
}

// "Hello" MID 2 TO 4 is "ell", without TO runs to the end
func midFn(env *object.Environment, args ...object.Object) (object.Object, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, syntaxError()
	}
	s, start, err := stringAndCount(args[0], args[1])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)

	end := len(runes)
	if len(args) == 3 {
		e, ok := object.ToInt(args[2])
		if !ok {
			return nil, typeMismatch()
		}
		end = int(e)
	}

	if start < 1 {
		start = 1
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start > end {
		return &object.String{}, nil
	}
	return &object.String{Value: string(runes[start-1 : end])}, nil
}

func twoStrings(l, r object.Object) (string, string, error) {
	ls, ok := l.(*object.String)
	if !ok {
		return "", "", typeMismatch()
	}
	rs, ok := r.(*object.String)
	if !ok {
		return "", "", typeMismatch()
	}
	return ls.Value, rs.Value, nil
}

// "Hello" INSTR "l" is 3, 0 when missing
func instrFn(l, r object.Object) (object.Object, error) {
	s, sub, err := twoStrings(l, r)
	if err != nil {
		return nil, err
	}
	i := strings.Index(s, sub)
	if i < 0 {
		return &object.Integer{Value: 0}, nil
	}
	return &object.Integer{Value: int64(utf8.RuneCountInString(s[:i]) + 1)}, nil
}

// "a.a" REPLACE "." WITH "!" replaces every occurence
func replaceFn(env *object.Environment, args ...object.Object) (object.Object, error) {
	if len(args) != 3 {
		return nil, syntaxError()
	}
	s, old, err := twoStrings(args[0], args[1])
	if err != nil {
		return nil, err
	}
	with, ok := args[2].(*object.String)
	if !ok {
		return nil, typeMismatch()
	}
	if len(old) == 0 {
		return &object.String{Value: s}, nil
	}
	return &object.String{Value: strings.ReplaceAll(s, old, with.Value)}, nil
}

func startsWithFn(l, r object.Object) (object.Object, error) {
	s, pre, err := twoStrings(l, r)
	if err != nil {
		return nil, err
	}
	return object.Bool(strings.HasPrefix(s, pre)), nil
}

func endsWithFn(l, r object.Object) (object.Object, error) {
	s, suf, err := twoStrings(l, r)
	if err != nil {
		return nil, err
	}
	return object.Bool(strings.HasSuffix(s, suf)), nil
}

// "a,b" SPLIT "," gives a string array
func splitFn(l, r object.Object) (object.Object, error) {
	s, sep, err := twoStrings(l, r)
	if err != nil {
		return nil, err
	}
	var parts []string
	if len(s) > 0 {
		parts = strings.Split(s, sep)
	}
	items := make([]object.Object, len(parts))
	for i, p := range parts {
		items[i] = &object.String{Value: p}
	}
	return object.NewList(ast.StringVar, items), nil
}
