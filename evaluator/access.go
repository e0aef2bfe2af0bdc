package evaluator

import (
	"math"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/builtins"
	"github.com/navionguy/edubasic/object"
)

func evalFunctionExpression(node *ast.FunctionExpression, env *object.Environment) (object.Object, error) {
	if node.Arg == nil {
		return builtins.Call(node.Name, env)
	}
	arg, err := Eval(node.Arg, env)
	if err != nil {
		return nil, err
	}
	return builtins.Call(node.Name, env, arg)
}

func evalKeywordInfix(node *ast.KeywordInfixExpression, env *object.Environment) (object.Object, error) {
	exps := []ast.Expression{node.Left, node.Right}
	if node.Extra != nil {
		exps = append(exps, node.Extra)
	}
	args, err := evalExpressions(exps, env)
	if err != nil {
		return nil, err
	}
	return builtins.Call(node.Operator, env, args...)
}

// indexValue turns a subscript into an int, reals are floored
func indexValue(obj object.Object) (int, error) {
	switch v := obj.(type) {
	case *object.Integer:
		return int(v.Value), nil
	case *object.Real:
		return int(math.Floor(v.Value)), nil
	}
	return 0, typeMismatch()
}

func evalIndices(exps []ast.Expression, env *object.Environment) ([]int, error) {
	vals, err := evalExpressions(exps, env)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(vals))
	for i, v := range vals {
		if idx[i], err = indexValue(v); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// memberKey is the name used for p.name or p["name"]
func memberKey(node *ast.AccessExpression, env *object.Environment) (string, error) {
	if len(node.Member) > 0 {
		return node.Member, nil
	}
	if len(node.Indices) != 1 {
		return "", typeMismatch()
	}
	key, err := Eval(node.Indices[0], env)
	if err != nil {
		return "", err
	}
	s, ok := key.(*object.String)
	if !ok {
		return "", typeMismatch()
	}
	return s.Value, nil
}

func evalAccessExpression(node *ast.AccessExpression, env *object.Environment) (object.Object, error) {
	base, err := Eval(node.Base, env)
	if err != nil {
		return nil, err
	}

	switch b := base.(type) {
	case *object.Array:
		if len(node.Member) > 0 {
			return nil, typeMismatch()
		}
		idx, err := evalIndices(node.Indices, env)
		if err != nil {
			return nil, err
		}
		return b.Get(idx)

	case *object.Structure:
		key, err := memberKey(node, env)
		if err != nil {
			return nil, err
		}
		if v, ok := b.Get(key); ok {
			return v, nil
		}
		return object.ZeroValue(ast.Dynamic), nil

	case *object.String:
		// s$[i] is the i'th character
		if len(node.Member) > 0 || len(node.Indices) != 1 {
			return nil, typeMismatch()
		}
		idx, err := evalIndices(node.Indices, env)
		if err != nil {
			return nil, err
		}
		runes := []rune(b.Value)
		if idx[0] < 1 || idx[0] > len(runes) {
			return nil, berrors.Std(berrors.SubscriptRange)
		}
		return &object.String{Value: string(runes[idx[0]-1])}, nil
	}

	return nil, typeMismatch()
}

// assign stores val into a variable, array element or structure member
func assign(target ast.Expression, val object.Object, env *object.Environment) error {
	switch t := target.(type) {
	case *ast.Identifier:
		return assignVariable(t, val, env)
	case *ast.AccessExpression:
		return assignAccess(t, val, env)
	}
	return berrors.Std(berrors.Syntax)
}

func assignVariable(id *ast.Identifier, val object.Object, env *object.Environment) error {
	if id.IsArray() {
		if _, ok := val.(*object.Array); !ok {
			return typeMismatch()
		}
	}

	val, err := object.Coerce(val, id.Type)
	if err != nil {
		return err
	}

	// arrays and structures are copied on assignment
	switch v := val.(type) {
	case *object.Array:
		if v.ElemType == ast.Dynamic {
			val = v.Copy()
		}
	case *object.Structure:
		val = copyStructure(v)
	}

	env.Set(id.Key(), val)
	return nil
}

func copyStructure(st *object.Structure) *object.Structure {
	cp := object.NewStructure()
	for _, k := range st.Keys() {
		v, _ := st.Get(k)
		cp.Set(k, v)
	}
	return cp
}

// container finds what an access expression writes into, an undefined
// variable used with a member or key becomes a new structure
func container(node *ast.AccessExpression, env *object.Environment) (object.Object, error) {
	if id, ok := node.Base.(*ast.Identifier); ok && env.Get(id.Key()) == nil {
		if len(node.Member) > 0 || isStringKey(node, env) {
			st := object.NewStructure()
			env.Set(id.Key(), st)
			return st, nil
		}
		return nil, berrors.Std(berrors.SubscriptRange)
	}
	return Eval(node.Base, env)
}

func isStringKey(node *ast.AccessExpression, env *object.Environment) bool {
	if len(node.Indices) != 1 {
		return false
	}
	v, err := Eval(node.Indices[0], env)
	if err != nil {
		return false
	}
	_, ok := v.(*object.String)
	return ok
}

func assignAccess(node *ast.AccessExpression, val object.Object, env *object.Environment) error {
	base, err := container(node, env)
	if err != nil {
		return err
	}

	switch b := base.(type) {
	case *object.Array:
		if len(node.Member) > 0 {
			return typeMismatch()
		}
		idx, err := evalIndices(node.Indices, env)
		if err != nil {
			return err
		}
		val, err = object.Coerce(val, b.ElemType)
		if err != nil {
			return err
		}
		return b.Set(idx, val)

	case *object.Structure:
		key, err := memberKey(node, env)
		if err != nil {
			return err
		}
		b.Set(key, val)
		return nil
	}

	return typeMismatch()
}
