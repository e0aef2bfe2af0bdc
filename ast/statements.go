package ast

import (
	"bytes"
	"strings"

	"github.com/navionguy/edubasic/token"
)

// LetStatement assigns a value, with or without the LET keyword
type LetStatement struct {
	Token   token.Token
	Target  Expression // Identifier or AccessExpression
	Value   Expression
	Implied bool // no LET keyword in the source
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LetStatement) String() string {
	lit := ls.Target.String() + " = " + ls.Value.String()
	if ls.Implied {
		return lit
	}
	return "LET " + lit
}

// DimRange is one dimension of a DIM, either a size or start TO end
type DimRange struct {
	Start Expression // nil for the size form
	End   Expression
}

func (dr *DimRange) String() string {
	if dr.Start == nil {
		return dr.End.String()
	}
	return dr.Start.String() + " TO " + dr.End.String()
}

// DimDecl is a single array declared by a DIM
type DimDecl struct {
	Name *Identifier
	Dims []*DimRange
}

func (dd *DimDecl) String() string {
	dims := make([]string, 0, len(dd.Dims))
	for _, d := range dd.Dims {
		dims = append(dims, d.String())
	}
	return dd.Name.String() + " [" + strings.Join(dims, ", ") + "]"
}

// DimStatement allocates arrays
// DIM a%[10], grid#[,] [0 TO 3, 4]
type DimStatement struct {
	Token token.Token
	Decls []*DimDecl
}

func (ds *DimStatement) statementNode()       {}
func (ds *DimStatement) TokenLiteral() string { return ds.Token.Literal }
func (ds *DimStatement) String() string {
	decls := make([]string, 0, len(ds.Decls))
	for _, d := range ds.Decls {
		decls = append(decls, d.String())
	}
	return "DIM " + strings.Join(decls, ", ")
}

// LocalStatement declares a variable in the active SUB's scope
type LocalStatement struct {
	Token token.Token
	Name  *Identifier
	Value Expression // optional
}

func (ls *LocalStatement) statementNode()       {}
func (ls *LocalStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LocalStatement) String() string {
	if ls.Value == nil {
		return "LOCAL " + ls.Name.String()
	}
	return "LOCAL " + ls.Name.String() + " = " + ls.Value.String()
}

// SwapStatement exchanges two variables of the same type
type SwapStatement struct {
	Token token.Token
	Left  Expression
	Right Expression
}

func (ss *SwapStatement) statementNode()       {}
func (ss *SwapStatement) TokenLiteral() string { return ss.Token.Literal }
func (ss *SwapStatement) String() string {
	return "SWAP " + ss.Left.String() + ", " + ss.Right.String()
}

// IfStatement is both IF and UNLESS.  With Then nil it opens a block that
// runs to END IF, otherwise it is the single line form.
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Negate    bool // UNLESS
	Then      Statement
	Else      Statement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer

	if is.Negate {
		out.WriteString("UNLESS ")
	} else {
		out.WriteString("IF ")
	}
	out.WriteString(is.Condition.String())
	out.WriteString(" THEN")

	if is.Then != nil {
		out.WriteString(" " + is.Then.String())
	}
	if is.Else != nil {
		out.WriteString(" ELSE " + is.Else.String())
	}

	return out.String()
}

// IsBlock reports whether the IF opens a multi line block
func (is *IfStatement) IsBlock() bool { return is.Then == nil }

// ElseIfStatement ELSEIF cond THEN
type ElseIfStatement struct {
	Token     token.Token
	Condition Expression
}

func (es *ElseIfStatement) statementNode()       {}
func (es *ElseIfStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ElseIfStatement) String() string {
	return "ELSEIF " + es.Condition.String() + " THEN"
}

// ElseStatement is the ELSE of a block IF or UNLESS
type ElseStatement struct {
	Token token.Token
}

func (es *ElseStatement) statementNode()       {}
func (es *ElseStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ElseStatement) String() string       { return "ELSE" }

// EndBlockStatement closes a block: END IF, END UNLESS, END SELECT,
// END SUB or END TRY
type EndBlockStatement struct {
	Token token.Token
	Block string
}

func (eb *EndBlockStatement) statementNode()       {}
func (eb *EndBlockStatement) TokenLiteral() string { return eb.Token.Literal }
func (eb *EndBlockStatement) String() string       { return "END " + eb.Block }

// EndStatement stops the program
type EndStatement struct {
	Token token.Token
}

func (es *EndStatement) statementNode()       {}
func (es *EndStatement) TokenLiteral() string { return es.Token.Literal }
func (es *EndStatement) String() string       { return "END" }

// ForStatement FOR var = start TO end [STEP step]
type ForStatement struct {
	Token token.Token
	Var   *Identifier
	Start Expression
	End   Expression
	Step  Expression // nil means 1
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) String() string {
	lit := "FOR " + fs.Var.String() + " = " + fs.Start.String() + " TO " + fs.End.String()
	if fs.Step != nil {
		lit += " STEP " + fs.Step.String()
	}
	return lit
}

// NextStatement closes a FOR, the variable is optional
type NextStatement struct {
	Token token.Token
	Var   *Identifier
}

func (ns *NextStatement) statementNode()       {}
func (ns *NextStatement) TokenLiteral() string { return ns.Token.Literal }
func (ns *NextStatement) String() string {
	if ns.Var == nil {
		return "NEXT"
	}
	return "NEXT " + ns.Var.String()
}

// WhileStatement WHILE cond
type WhileStatement struct {
	Token     token.Token
	Condition Expression
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string       { return "WHILE " + ws.Condition.String() }

// WendStatement closes a WHILE
type WendStatement struct {
	Token token.Token
}

func (ws *WendStatement) statementNode()       {}
func (ws *WendStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WendStatement) String() string       { return "WEND" }

// DoStatement DO [WHILE|UNTIL cond]
type DoStatement struct {
	Token     token.Token
	Condition Expression // nil when untested at the head
	Until     bool
}

func (ds *DoStatement) statementNode()       {}
func (ds *DoStatement) TokenLiteral() string { return ds.Token.Literal }
func (ds *DoStatement) String() string       { return "DO" + loopTest(ds.Condition, ds.Until) }

// LoopStatement LOOP [WHILE|UNTIL cond]
type LoopStatement struct {
	Token     token.Token
	Condition Expression
	Until     bool
}

func (ls *LoopStatement) statementNode()       {}
func (ls *LoopStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LoopStatement) String() string       { return "LOOP" + loopTest(ls.Condition, ls.Until) }

func loopTest(cond Expression, until bool) string {
	if cond == nil {
		return ""
	}
	if until {
		return " UNTIL " + cond.String()
	}
	return " WHILE " + cond.String()
}

// UntilStatement UNTIL cond, loops while cond is false
type UntilStatement struct {
	Token     token.Token
	Condition Expression
}

func (us *UntilStatement) statementNode()       {}
func (us *UntilStatement) TokenLiteral() string { return us.Token.Literal }
func (us *UntilStatement) String() string       { return "UNTIL " + us.Condition.String() }

// UendStatement closes an UNTIL
type UendStatement struct {
	Token token.Token
}

func (us *UendStatement) statementNode()       {}
func (us *UendStatement) TokenLiteral() string { return us.Token.Literal }
func (us *UendStatement) String() string       { return "UEND" }

// SelectCaseStatement SELECT CASE expr
type SelectCaseStatement struct {
	Token token.Token
	Test  Expression
}

func (sc *SelectCaseStatement) statementNode()       {}
func (sc *SelectCaseStatement) TokenLiteral() string { return sc.Token.Literal }
func (sc *SelectCaseStatement) String() string       { return "SELECT CASE " + sc.Test.String() }

// SelectorKind says how a CASE selector matches
type SelectorKind int

const (
	SelectValue      SelectorKind = iota // CASE 3
	SelectRange                          // CASE 1 TO 5
	SelectRelational                     // CASE IS > 5
)

// CaseSelector is a single comma separated selector in a CASE
type CaseSelector struct {
	Kind  SelectorKind
	Op    string // relational operator for IS
	Value Expression
	High  Expression // upper bound for ranges
}

func (cs *CaseSelector) String() string {
	switch cs.Kind {
	case SelectRange:
		return cs.Value.String() + " TO " + cs.High.String()
	case SelectRelational:
		return "IS " + cs.Op + " " + cs.Value.String()
	}
	return cs.Value.String()
}

// CaseStatement CASE sel[, sel] or CASE ELSE
type CaseStatement struct {
	Token     token.Token
	Selectors []*CaseSelector
	Else      bool
}

func (cs *CaseStatement) statementNode()       {}
func (cs *CaseStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CaseStatement) String() string {
	if cs.Else {
		return "CASE ELSE"
	}
	sels := make([]string, 0, len(cs.Selectors))
	for _, s := range cs.Selectors {
		sels = append(sels, s.String())
	}
	return "CASE " + strings.Join(sels, ", ")
}

// GotoStatement GOTO label
type GotoStatement struct {
	Token token.Token
	Label string
}

func (gs *GotoStatement) statementNode()       {}
func (gs *GotoStatement) TokenLiteral() string { return gs.Token.Literal }
func (gs *GotoStatement) String() string       { return "GOTO " + gs.Label }

// GosubStatement GOSUB label
type GosubStatement struct {
	Token token.Token
	Label string
}

func (gs *GosubStatement) statementNode()       {}
func (gs *GosubStatement) TokenLiteral() string { return gs.Token.Literal }
func (gs *GosubStatement) String() string       { return "GOSUB " + gs.Label }

// ReturnStatement returns from a GOSUB
type ReturnStatement struct {
	Token token.Token
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string       { return "RETURN" }

// LabelStatement LABEL name, a jump target
type LabelStatement struct {
	Token token.Token
	Name  string
}

func (ls *LabelStatement) statementNode()       {}
func (ls *LabelStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LabelStatement) String() string       { return "LABEL " + ls.Name }

// SubParam is one SUB parameter
type SubParam struct {
	Name  *Identifier
	ByRef bool
}

func (sp *SubParam) String() string {
	if sp.ByRef {
		return "BYREF " + sp.Name.String()
	}
	return sp.Name.String()
}

// SubStatement opens a SUB definition that runs to END SUB
type SubStatement struct {
	Token  token.Token
	Name   string
	Params []*SubParam
}

func (ss *SubStatement) statementNode()       {}
func (ss *SubStatement) TokenLiteral() string { return ss.Token.Literal }
func (ss *SubStatement) String() string {
	if len(ss.Params) == 0 {
		return "SUB " + ss.Name
	}
	params := make([]string, 0, len(ss.Params))
	for _, p := range ss.Params {
		params = append(params, p.String())
	}
	return "SUB " + ss.Name + " " + strings.Join(params, ", ")
}

// CallStatement CALL name [args]
type CallStatement struct {
	Token token.Token
	Name  string
	Args  []Expression
}

func (cs *CallStatement) statementNode()       {}
func (cs *CallStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CallStatement) String() string {
	if len(cs.Args) == 0 {
		return "CALL " + cs.Name
	}
	return "CALL " + cs.Name + " " + joinExpressions(cs.Args)
}

// ExitStatement EXIT FOR|WHILE|DO|UNTIL|SUB
type ExitStatement struct {
	Token  token.Token
	Target string
}

func (es *ExitStatement) statementNode()       {}
func (es *ExitStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExitStatement) String() string       { return "EXIT " + es.Target }

// ContinueStatement CONTINUE FOR|WHILE|DO|UNTIL
type ContinueStatement struct {
	Token  token.Token
	Target string
}

func (cs *ContinueStatement) statementNode()       {}
func (cs *ContinueStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ContinueStatement) String() string       { return "CONTINUE " + cs.Target }

// TryStatement opens a TRY block
type TryStatement struct {
	Token token.Token
}

func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *TryStatement) String() string       { return "TRY" }

// CatchStatement CATCH [var$], the variable receives the error message
type CatchStatement struct {
	Token token.Token
	Var   *Identifier
}

func (cs *CatchStatement) statementNode()       {}
func (cs *CatchStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CatchStatement) String() string {
	if cs.Var == nil {
		return "CATCH"
	}
	return "CATCH " + cs.Var.String()
}

// FinallyStatement starts the FINALLY section of a TRY
type FinallyStatement struct {
	Token token.Token
}

func (fs *FinallyStatement) statementNode()       {}
func (fs *FinallyStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *FinallyStatement) String() string       { return "FINALLY" }

// ThrowStatement raises a runtime error with the given message
type ThrowStatement struct {
	Token token.Token
	Value Expression
}

func (ts *ThrowStatement) statementNode()       {}
func (ts *ThrowStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *ThrowStatement) String() string       { return "THROW " + ts.Value.String() }

// SleepStatement SLEEP ms, a hint for the host scheduler
type SleepStatement struct {
	Token    token.Token
	Duration Expression
}

func (ss *SleepStatement) statementNode()       {}
func (ss *SleepStatement) TokenLiteral() string { return ss.Token.Literal }
func (ss *SleepStatement) String() string       { return "SLEEP " + ss.Duration.String() }

// TronCommand turns on line tracing
type TronCommand struct {
	Token token.Token
}

func (tc *TronCommand) statementNode()       {}
func (tc *TronCommand) TokenLiteral() string { return tc.Token.Literal }
func (tc *TronCommand) String() string       { return "TRON" }

// TroffCommand turns off line tracing
type TroffCommand struct {
	Token token.Token
}

func (tc *TroffCommand) statementNode()       {}
func (tc *TroffCommand) TokenLiteral() string { return tc.Token.Literal }
func (tc *TroffCommand) String() string       { return "TROFF" }

// RemStatement is a remark, the lexer has already thrown the text away
type RemStatement struct {
	Token token.Token
}

func (rs *RemStatement) statementNode()       {}
func (rs *RemStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RemStatement) String() string       { return "REM" }

// RandomizeStatement RANDOMIZE [seed]
type RandomizeStatement struct {
	Token token.Token
	Seed  Expression
}

func (rs *RandomizeStatement) statementNode()       {}
func (rs *RandomizeStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RandomizeStatement) String() string {
	if rs.Seed == nil {
		return "RANDOMIZE"
	}
	return "RANDOMIZE " + rs.Seed.String()
}
