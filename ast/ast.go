package ast

import (
	"bytes"
	"strings"

	"github.com/navionguy/edubasic/token"
)

// Node defines interface for all node types
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement defines the interface for all statement nodes
type Statement interface {
	Node
	statementNode()
}

//Expression defines interface for all expression nodes
type Expression interface {
	Node
	expressionNode()
}

// VarType is the static type fixed by an identifier's sigil
type VarType int

const (
	Dynamic VarType = iota // no sigil, holds anything
	IntegerVar
	RealVar
	StringVar
	ComplexVar
)

// VarTypeOf maps a sigil character to its type
func VarTypeOf(sigil byte) VarType {
	switch sigil {
	case token.SIGIL_INT:
		return IntegerVar
	case token.SIGIL_REAL:
		return RealVar
	case token.SIGIL_STRING:
		return StringVar
	case token.SIGIL_COMPLEX:
		return ComplexVar
	}
	return Dynamic
}

func (vt VarType) String() string {
	return []string{"DYNAMIC", "INTEGER", "REAL", "STRING", "COMPLEX"}[vt]
}

// Sigil returns the trailing character for the type, "" for Dynamic
func (vt VarType) Sigil() string {
	return []string{"", "%", "#", "$", "&"}[vt]
}

// Identifier names a variable, the sigil and rank suffix are resolved here
// so nobody downstream has to look at the lexeme again
type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string      // the lexeme as written, m%[,]
	Name  string      // base name plus sigil, m%
	Type  VarType
	Rank  int // dimensions named by a rank suffix, 0 if none
}

// NewIdentifier splits an identifier lexeme into its parts
func NewIdentifier(tok token.Token) *Identifier {
	id := &Identifier{Token: tok, Value: tok.Literal, Name: tok.Literal}

	if i := strings.IndexByte(id.Name, '['); i >= 0 {
		id.Rank = strings.Count(id.Name[i:], ",") + 1
		id.Name = id.Name[:i]
	}

	if n := len(id.Name); n > 0 {
		id.Type = VarTypeOf(id.Name[n-1])
	}

	return id
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return strings.ToUpper(i.Token.Literal) }
func (i *Identifier) String() string       { return i.Value }

// Key is the name variables are stored under
func (i *Identifier) Key() string { return strings.ToUpper(i.Name) }

// IsArray is true when the identifier carried a rank suffix
func (i *Identifier) IsArray() bool { return i.Rank > 0 }

// IntegerLiteral holds a whole number constant
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

// RealLiteral holds a floating point constant
type RealLiteral struct {
	Token token.Token
	Value float64
}

func (rl *RealLiteral) expressionNode()      {}
func (rl *RealLiteral) TokenLiteral() string { return rl.Token.Literal }
func (rl *RealLiteral) String() string       { return rl.Token.Literal }

// ComplexLiteral holds 4i or 3+4i
type ComplexLiteral struct {
	Token token.Token
	Value complex128
}

func (cl *ComplexLiteral) expressionNode()      {}
func (cl *ComplexLiteral) TokenLiteral() string { return cl.Token.Literal }
func (cl *ComplexLiteral) String() string       { return cl.Token.Literal }

// StringLiteral holds a quoted string, escapes already resolved
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return quote(sl.Value) }

// quote renders a string back into EduBASIC source form
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return `"` + r.Replace(s) + `"`
}

// ArrayLiteral is a bracketed list [1, 2, 3]
type ArrayLiteral struct {
	Token    token.Token // the '['
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) String() string {
	return "[" + joinExpressions(al.Elements) + "]"
}

// StructureLiteral is a braced list of members {name: "x", age: 3}
type StructureLiteral struct {
	Token  token.Token // the '{'
	Keys   []string
	Values []Expression
}

func (sl *StructureLiteral) expressionNode()      {}
func (sl *StructureLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StructureLiteral) String() string {
	var out bytes.Buffer

	out.WriteString("{")
	for i, k := range sl.Keys {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(k + ": " + sl.Values[i].String())
	}
	out.WriteString("}")

	return out.String()
}

// GroupedExpression is enclosed in parentheses
type GroupedExpression struct {
	Token token.Token
	Exp   Expression
}

func (ge *GroupedExpression) expressionNode()      {}
func (ge *GroupedExpression) TokenLiteral() string { return ge.Token.Literal }
func (ge *GroupedExpression) String() string       { return "(" + ge.Exp.String() + ")" }

// PrefixExpression -x, +x or NOT x
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string {
	var out bytes.Buffer
	out.WriteString(pe.Operator)
	if pe.Operator == "NOT" {
		out.WriteString(" ")
	}
	out.WriteString(pe.Right.String())
	return out.String()
}

// OpCategory groups binary operators by how they evaluate
type OpCategory int

const (
	Arithmetic OpCategory = iota
	Comparison
	Logical
)

// InfixExpression things like 5 + 6
type InfixExpression struct {
	Token    token.Token // The operator token, e.g. +
	Left     Expression
	Operator string
	Right    Expression
	Category OpCategory
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	var out bytes.Buffer
	out.WriteString(ie.Left.String())
	out.WriteString(" " + ie.Operator + " ")
	out.WriteString(ie.Right.String())
	return out.String()
}

// FunctionExpression is a keyword function, SIN(x) or SIN x, or a
// constant like PI when Arg is nil
type FunctionExpression struct {
	Token token.Token
	Name  string
	Arg   Expression
}

func (fe *FunctionExpression) expressionNode()      {}
func (fe *FunctionExpression) TokenLiteral() string { return fe.Token.Literal }
func (fe *FunctionExpression) String() string {
	if fe.Arg == nil {
		return fe.Name
	}
	if _, ok := fe.Arg.(*GroupedExpression); ok {
		return fe.Name + fe.Arg.String()
	}
	return fe.Name + " " + fe.Arg.String()
}

// KeywordInfixExpression is a binary keyword operator with an optional
// second infix, "Hello" MID 2 TO 4 or s$ REPLACE "." WITH "!"
type KeywordInfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
	ExtraOp  string // TO or WITH
	Extra    Expression
}

func (ke *KeywordInfixExpression) expressionNode()      {}
func (ke *KeywordInfixExpression) TokenLiteral() string { return ke.Token.Literal }
func (ke *KeywordInfixExpression) String() string {
	var out bytes.Buffer
	out.WriteString(ke.Left.String())
	out.WriteString(" " + ke.Operator + " ")
	out.WriteString(ke.Right.String())
	if ke.Extra != nil {
		out.WriteString(" " + ke.ExtraOp + " ")
		out.WriteString(ke.Extra.String())
	}
	return out.String()
}

// AccessExpression is postfix access on a value, either an index list
// a#[i, j], a key p["name"] or a member p.name
type AccessExpression struct {
	Token   token.Token // the '[' or '.'
	Base    Expression
	Indices []Expression
	Member  string
}

func (ae *AccessExpression) expressionNode()      {}
func (ae *AccessExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AccessExpression) String() string {
	if len(ae.Member) > 0 {
		return ae.Base.String() + "." + ae.Member
	}
	return ae.Base.String() + "[" + joinExpressions(ae.Indices) + "]"
}

func joinExpressions(exps []Expression) string {
	parts := make([]string, 0, len(exps))
	for _, e := range exps {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
