package evaluator

import (
	"math"
	"math/bits"
	"math/cmplx"
	"strings"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/object"
)

type infixFn func(operator string, left, right object.Object) (object.Object, error)

// typeConverters picks the arithmetic for a pair of operand types,
// promoting Integer -> Real -> Complex
var typeConverters = map[object.ObjectType]infixFn{
	object.INTEGER_OBJ + object.INTEGER_OBJ: func(op string, l, r object.Object) (object.Object, error) {
		return evalIntegerInfix(op, l.(*object.Integer).Value, r.(*object.Integer).Value)
	},
	object.STRING_OBJ + object.STRING_OBJ: func(op string, l, r object.Object) (object.Object, error) {
		return evalStringInfix(op, l.(*object.String).Value, r.(*object.String).Value)
	},

	object.INTEGER_OBJ + object.REAL_OBJ: realInfix,
	object.REAL_OBJ + object.INTEGER_OBJ: realInfix,
	object.REAL_OBJ + object.REAL_OBJ:    realInfix,

	object.COMPLEX_OBJ + object.INTEGER_OBJ: complexInfix,
	object.COMPLEX_OBJ + object.REAL_OBJ:    complexInfix,
	object.COMPLEX_OBJ + object.COMPLEX_OBJ: complexInfix,
	object.INTEGER_OBJ + object.COMPLEX_OBJ: complexInfix,
	object.REAL_OBJ + object.COMPLEX_OBJ:    complexInfix,
}

func realInfix(op string, l, r object.Object) (object.Object, error) {
	lf, _ := object.ToFloat(l)
	rf, _ := object.ToFloat(r)
	return evalRealInfix(op, lf, rf)
}

func complexInfix(op string, l, r object.Object) (object.Object, error) {
	lc, _ := object.ToComplex(l)
	rc, _ := object.ToComplex(r)
	return evalComplexInfix(op, lc, rc)
}

func typeMismatch() error {
	return berrors.Std(berrors.TypeMismatch)
}

// Eval returns the value of an expression
func Eval(node ast.Expression, env *object.Environment) (object.Object, error) {
	switch node := node.(type) {
	case *ast.IntegerLiteral:
		return &object.Integer{Value: node.Value}, nil

	case *ast.RealLiteral:
		return &object.Real{Value: node.Value}, nil

	case *ast.ComplexLiteral:
		return &object.Complex{Value: node.Value}, nil

	case *ast.StringLiteral:
		return &object.String{Value: node.Value}, nil

	case *ast.Identifier:
		return evalIdentifier(node, env), nil

	case *ast.GroupedExpression:
		return Eval(node.Exp, env)

	case *ast.ArrayLiteral:
		return evalArrayLiteral(node, env)

	case *ast.StructureLiteral:
		return evalStructureLiteral(node, env)

	case *ast.PrefixExpression:
		right, err := Eval(node.Right, env)
		if err != nil {
			return nil, err
		}
		return evalPrefixExpression(node.Operator, right)

	case *ast.InfixExpression:
		left, err := Eval(node.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := Eval(node.Right, env)
		if err != nil {
			return nil, err
		}
		if node.Category == ast.Logical {
			return evalLogicalInfix(node.Operator, left, right)
		}
		return evalInfixExpression(node.Operator, left, right)

	case *ast.FunctionExpression:
		return evalFunctionExpression(node, env)

	case *ast.KeywordInfixExpression:
		return evalKeywordInfix(node, env)

	case *ast.AccessExpression:
		return evalAccessExpression(node, env)
	}

	return nil, berrors.Std(berrors.Syntax)
}

// an unassigned variable reads as the zero value of its type
func evalIdentifier(node *ast.Identifier, env *object.Environment) object.Object {
	if val := env.Get(node.Key()); val != nil {
		return val
	}
	if node.IsArray() {
		return object.NewList(node.Type, nil)
	}
	return object.ZeroValue(node.Type)
}

func evalExpressions(exps []ast.Expression, env *object.Environment) ([]object.Object, error) {
	res := make([]object.Object, 0, len(exps))
	for _, e := range exps {
		v, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func evalArrayLiteral(node *ast.ArrayLiteral, env *object.Environment) (object.Object, error) {
	items, err := evalExpressions(node.Elements, env)
	if err != nil {
		return nil, err
	}
	return object.NewList(ast.Dynamic, items), nil
}

func evalStructureLiteral(node *ast.StructureLiteral, env *object.Environment) (object.Object, error) {
	st := object.NewStructure()
	for i, k := range node.Keys {
		v, err := Eval(node.Values[i], env)
		if err != nil {
			return nil, err
		}
		st.Set(k, v)
	}
	return st, nil
}

func evalPrefixExpression(operator string, right object.Object) (object.Object, error) {
	switch operator {
	case "-":
		switch v := right.(type) {
		case *object.Integer:
			if v.Value == math.MinInt64 {
				return &object.Real{Value: -float64(v.Value)}, nil
			}
			return &object.Integer{Value: -v.Value}, nil
		case *object.Real:
			return &object.Real{Value: -v.Value}, nil
		case *object.Complex:
			return &object.Complex{Value: -v.Value}, nil
		}
	case "+":
		if object.IsNumeric(right) {
			return right, nil
		}
	case "NOT":
		i, err := logicalOperand(right)
		if err != nil {
			return nil, err
		}
		return &object.Integer{Value: ^i}, nil
	}
	return nil, typeMismatch()
}

func evalInfixExpression(operator string, left, right object.Object) (object.Object, error) {
	fn, ok := typeConverters[left.Type()+right.Type()]
	if !ok {
		return nil, typeMismatch()
	}
	return fn(operator, left, right)
}

func evalIntegerInfix(operator string, l, r int64) (object.Object, error) {
	switch operator {
	case "+":
		s := l + r
		if (s > l) != (r > 0) {
			return &object.Real{Value: float64(l) + float64(r)}, nil
		}
		return &object.Integer{Value: s}, nil
	case "-":
		d := l - r
		if (d < l) != (r > 0) {
			return &object.Real{Value: float64(l) - float64(r)}, nil
		}
		return &object.Integer{Value: d}, nil
	case "*":
		if mulOverflows(l, r) {
			return &object.Real{Value: float64(l) * float64(r)}, nil
		}
		return &object.Integer{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, berrors.Std(berrors.DivByZero)
		}
		if l%r == 0 && !(l == math.MinInt64 && r == -1) {
			return &object.Integer{Value: l / r}, nil
		}
		return &object.Real{Value: float64(l) / float64(r)}, nil
	case "MOD":
		if r == 0 {
			return nil, berrors.Std(berrors.DivByZero)
		}
		if r == -1 {
			return &object.Integer{Value: 0}, nil
		}
		return &object.Integer{Value: l % r}, nil
	case "^", "**":
		return evalRealInfix(operator, float64(l), float64(r))
	}
	return evalComparison(operator, compareInts(l, r))
}

func mulOverflows(l, r int64) bool {
	if l == 0 || r == 0 {
		return false
	}
	neg := (l < 0) != (r < 0)
	hi, lo := bits.Mul64(absU(l), absU(r))
	if hi != 0 {
		return true
	}
	if neg {
		return lo > 1<<63
	}
	return lo > math.MaxInt64
}

func absU(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

func compareInts(l, r int64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func evalRealInfix(operator string, l, r float64) (object.Object, error) {
	switch operator {
	case "+":
		return &object.Real{Value: l + r}, nil
	case "-":
		return &object.Real{Value: l - r}, nil
	case "*":
		return &object.Real{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, berrors.Std(berrors.DivByZero)
		}
		return &object.Real{Value: l / r}, nil
	case "MOD":
		if r == 0 {
			return nil, berrors.Std(berrors.DivByZero)
		}
		return &object.Real{Value: math.Mod(l, r)}, nil
	case "^", "**":
		// a negative base to a fractional power leaves the reals
		if l < 0 && r != math.Trunc(r) {
			return &object.Complex{Value: cmplx.Pow(complex(l, 0), complex(r, 0))}, nil
		}
		return &object.Real{Value: math.Pow(l, r)}, nil
	}

	cmp := 0
	switch {
	case l < r:
		cmp = -1
	case l > r:
		cmp = 1
	}
	return evalComparison(operator, cmp)
}

func evalComplexInfix(operator string, l, r complex128) (object.Object, error) {
	switch operator {
	case "+":
		return &object.Complex{Value: l + r}, nil
	case "-":
		return &object.Complex{Value: l - r}, nil
	case "*":
		return &object.Complex{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, berrors.Std(berrors.DivByZero)
		}
		return &object.Complex{Value: l / r}, nil
	case "^", "**":
		return &object.Complex{Value: cmplx.Pow(l, r)}, nil
	case "=":
		return object.Bool(l == r), nil
	case "<>":
		return object.Bool(l != r), nil
	case "<", ">", "<=", ">=":
		return nil, berrors.Std(berrors.ComplexCompare)
	}
	return nil, typeMismatch()
}

func evalStringInfix(operator string, l, r string) (object.Object, error) {
	if operator == "+" {
		return &object.String{Value: l + r}, nil
	}
	if _, ok := comparisons[operator]; !ok {
		return nil, typeMismatch()
	}
	return evalComparison(operator, strings.Compare(l, r))
}

var comparisons = map[string]func(int) bool{
	"=":  func(c int) bool { return c == 0 },
	"<>": func(c int) bool { return c != 0 },
	"<":  func(c int) bool { return c < 0 },
	">":  func(c int) bool { return c > 0 },
	"<=": func(c int) bool { return c <= 0 },
	">=": func(c int) bool { return c >= 0 },
}

func evalComparison(operator string, cmp int) (object.Object, error) {
	test, ok := comparisons[operator]
	if !ok {
		return nil, typeMismatch()
	}
	return object.Bool(test(cmp)), nil
}

// logical operators work bitwise on integers, reals are truncated first
func logicalOperand(obj object.Object) (int64, error) {
	switch v := obj.(type) {
	case *object.Integer:
		return v.Value, nil
	case *object.Real:
		return int64(v.Value), nil
	}
	return 0, typeMismatch()
}

func evalLogicalInfix(operator string, left, right object.Object) (object.Object, error) {
	l, err := logicalOperand(left)
	if err != nil {
		return nil, err
	}
	r, err := logicalOperand(right)
	if err != nil {
		return nil, err
	}

	var v int64
	switch operator {
	case "AND":
		v = l & r
	case "OR":
		v = l | r
	case "XOR":
		v = l ^ r
	case "NAND":
		v = ^(l & r)
	case "NOR":
		v = ^(l | r)
	case "XNOR":
		v = ^(l ^ r)
	case "IMP":
		v = ^l | r
	default:
		return nil, typeMismatch()
	}
	return &object.Integer{Value: v}, nil
}

// truthy decides a condition, only numbers are allowed
func truthy(obj object.Object) (bool, error) {
	switch v := obj.(type) {
	case *object.Integer:
		return v.Value != 0, nil
	case *object.Real:
		return v.Value != 0, nil
	case *object.Complex:
		return v.Value != 0, nil
	}
	return false, typeMismatch()
}

func evalCondition(exp ast.Expression, env *object.Environment) (bool, error) {
	val, err := Eval(exp, env)
	if err != nil {
		return false, err
	}
	return truthy(val)
}
