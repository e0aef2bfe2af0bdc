package evaluator

import (
	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/object"
)

// frame is an open control structure on the runtime stack
type frame interface {
	kind() string
}

// forFrame is an active FOR loop, end is the index of its NEXT
type forFrame struct {
	start, end int
	loopVar    *ast.Identifier
	limit      object.Object
	step       object.Object
}

// loopFrame is an active WHILE, DO or UNTIL loop, end is the index of the
// WEND, LOOP or UEND
type loopFrame struct {
	block      string
	start, end int
}

// selectFrame is a SELECT CASE whose matching clause is running
type selectFrame struct {
	start, end int
}

type gosubFrame struct {
	ret int
}

// byrefArg ties a BYREF parameter to the caller's variable
type byrefArg struct {
	param  string
	target ast.Expression
}

// subFrame is an active SUB call
type subFrame struct {
	name  string
	ret   int
	end   int
	byref []byrefArg
}

type tryPhase int

const (
	inTry tryPhase = iota
	inCatch
	inFinally
)

// tryFrame is an active TRY block, catch and finally are -1 when absent
type tryFrame struct {
	start, catch, finally, end int
	phase                      tryPhase
	pending                    error // rethrown at END TRY
}

func (f *forFrame) kind() string    { return "FOR" }
func (f *loopFrame) kind() string   { return f.block }
func (f *selectFrame) kind() string { return "SELECT" }
func (f *gosubFrame) kind() string  { return "GOSUB" }
func (f *subFrame) kind() string    { return "SUB" }
func (f *tryFrame) kind() string    { return "TRY" }

func (rt *Runtime) push(f frame) {
	rt.frames = append(rt.frames, f)
}

// findFrame searches from the top for the nearest frame of a kind, -1
// when there is none.  The search stops at the active SUB call.
func (rt *Runtime) findFrame(kind string) int {
	for i := len(rt.frames) - 1; i >= 0; i-- {
		k := rt.frames[i].kind()
		if k == kind {
			return i
		}
		if k == "SUB" {
			break
		}
	}
	return -1
}

// truncate pops frames until only n remain, closing SUB scopes on the way
func (rt *Runtime) truncate(n int) {
	for len(rt.frames) > n {
		top := rt.frames[len(rt.frames)-1]
		if _, ok := top.(*subFrame); ok {
			rt.env.PopScope()
		}
		rt.frames = rt.frames[:len(rt.frames)-1]
	}
}

// reenter drops an earlier frame for the same loop head, a GOTO back to a
// loop statement must not leave a stale frame behind
func (rt *Runtime) reenter(kind string, start int) {
	for i := len(rt.frames) - 1; i >= 0; i-- {
		switch f := rt.frames[i].(type) {
		case *forFrame:
			if kind == "FOR" && f.start == start {
				rt.truncate(i)
				return
			}
		case *loopFrame:
			if f.block == kind && f.start == start {
				rt.truncate(i)
				return
			}
		case *subFrame:
			// frames of the caller are not ours to drop
			return
		}
	}
}

type blockRole int

const (
	notBlock blockRole = iota
	opensBlock
	midBlock
	closesBlock
)

// classify names the part a statement plays in block structure
func classify(stmt ast.Statement) blockRole {
	switch s := stmt.(type) {
	case *ast.IfStatement:
		if s.IsBlock() {
			return opensBlock
		}
	case *ast.ForStatement, *ast.WhileStatement, *ast.DoStatement, *ast.UntilStatement,
		*ast.SelectCaseStatement, *ast.SubStatement, *ast.TryStatement:
		return opensBlock
	case *ast.ElseIfStatement, *ast.ElseStatement, *ast.CaseStatement,
		*ast.CatchStatement, *ast.FinallyStatement:
		return midBlock
	case *ast.EndBlockStatement, *ast.NextStatement, *ast.WendStatement,
		*ast.LoopStatement, *ast.UendStatement:
		return closesBlock
	}
	return notBlock
}

// blockKind names the block a statement opens, continues or closes.  ELSE
// and ELSEIF belong to either an IF or an UNLESS.
func blockKind(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case *ast.IfStatement:
		if s.Negate {
			return "UNLESS"
		}
		return "IF"
	case *ast.ElseIfStatement, *ast.ElseStatement:
		return "ELSE"
	case *ast.ForStatement, *ast.NextStatement:
		return "FOR"
	case *ast.WhileStatement, *ast.WendStatement:
		return "WHILE"
	case *ast.DoStatement, *ast.LoopStatement:
		return "DO"
	case *ast.UntilStatement, *ast.UendStatement:
		return "UNTIL"
	case *ast.SelectCaseStatement, *ast.CaseStatement:
		return "SELECT"
	case *ast.SubStatement:
		return "SUB"
	case *ast.TryStatement, *ast.CatchStatement, *ast.FinallyStatement:
		return "TRY"
	case *ast.EndBlockStatement:
		return s.Block
	}
	return ""
}

// closes reports whether a closer of kind ends a block of kind owner
func closes(owner, kind string) bool {
	if owner == "ELSE" {
		return kind == "IF" || kind == "UNLESS"
	}
	return owner == kind
}

// scan walks forward from the statement at from, staying at its nesting
// depth.  It stops at the first middle statement accepted by stop, or at
// the statement that closes the block.  Closers of another kind are passed
// over, they fail with "X without Y" if they are ever executed.  ok is
// false when the program ends first.
func (rt *Runtime) scan(from int, stop func(ast.Statement) bool) (int, bool) {
	owner := blockKind(rt.program.Statement(from))
	var open []string
	for i := from + 1; i < rt.program.Len(); i++ {
		stmt := rt.program.Statement(i)
		switch classify(stmt) {
		case opensBlock:
			open = append(open, blockKind(stmt))
		case closesBlock:
			kind := blockKind(stmt)
			if len(open) == 0 {
				if closes(owner, kind) {
					return i, true
				}
				continue
			}
			// pop back to the block this closes, strays are ignored
			for j := len(open) - 1; j >= 0; j-- {
				if open[j] == kind {
					open = open[:j]
					break
				}
			}
		case midBlock:
			if len(open) == 0 && stop != nil && stop(stmt) {
				return i, true
			}
		}
	}
	return -1, false
}

// closer finds the statement that ends the block opened at from
func (rt *Runtime) closer(from int) (ast.Statement, int, bool) {
	idx, ok := rt.scan(from, nil)
	if !ok {
		return nil, -1, false
	}
	return rt.program.Statement(idx), idx, true
}

func isEndOf(stmt ast.Statement, block string) bool {
	eb, ok := stmt.(*ast.EndBlockStatement)
	return ok && eb.Block == block
}
