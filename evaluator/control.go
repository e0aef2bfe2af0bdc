package evaluator

import (
	"math"
	"time"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/object"
	"github.com/navionguy/edubasic/settings"
)

func (rt *Runtime) evalLetStatement(stmt *ast.LetStatement) error {
	val, err := Eval(stmt.Value, rt.env)
	if err != nil {
		return err
	}
	return assign(stmt.Target, val, rt.env)
}

// DIM arr[size] gives a lower bound of 1, DIM arr[a TO b] a lower bound of a
func (rt *Runtime) evalDimStatement(stmt *ast.DimStatement) error {
	for _, decl := range stmt.Decls {
		dims := make([]object.Dimension, 0, len(decl.Dims))
		for _, dr := range decl.Dims {
			dim, err := rt.evalDimRange(dr)
			if err != nil {
				return err
			}
			dims = append(dims, dim)
		}

		arr, err := object.NewArray(decl.Name.Type, dims)
		if err != nil {
			return err
		}
		rt.env.Set(decl.Name.Key(), arr)
	}
	return nil
}

func (rt *Runtime) evalDimRange(dr *ast.DimRange) (object.Dimension, error) {
	end, err := rt.dimBound(dr.End)
	if err != nil {
		return object.Dimension{}, err
	}
	if dr.Start == nil {
		if end < 0 {
			return object.Dimension{}, berrors.New(berrors.DimNegative)
		}
		return object.Dimension{Lower: 1, Length: end}, nil
	}

	start, err := rt.dimBound(dr.Start)
	if err != nil {
		return object.Dimension{}, err
	}
	if end < start-1 {
		return object.Dimension{}, berrors.New(berrors.DimNegative)
	}
	return object.Dimension{Lower: start, Length: end - start + 1}, nil
}

func (rt *Runtime) dimBound(exp ast.Expression) (int, error) {
	val, err := Eval(exp, rt.env)
	if err != nil {
		return 0, err
	}
	return indexValue(val)
}

func (rt *Runtime) evalLocalStatement(stmt *ast.LocalStatement) error {
	var val object.Object
	if stmt.Value == nil {
		if stmt.Name.IsArray() {
			val = object.NewList(stmt.Name.Type, nil)
		} else {
			val = object.ZeroValue(stmt.Name.Type)
		}
	} else {
		v, err := Eval(stmt.Value, rt.env)
		if err != nil {
			return err
		}
		val = v
	}
	return declareLocal(stmt.Name, val, rt.env)
}

// declareLocal is assignVariable into the innermost scope
func declareLocal(id *ast.Identifier, val object.Object, env *object.Environment) error {
	if id.IsArray() {
		if _, ok := val.(*object.Array); !ok {
			return typeMismatch()
		}
	}
	val, err := object.Coerce(val, id.Type)
	if err != nil {
		return err
	}
	switch v := val.(type) {
	case *object.Array:
		if v.ElemType == ast.Dynamic {
			val = v.Copy()
		}
	case *object.Structure:
		val = copyStructure(v)
	}
	env.Local(id.Key(), val)
	return nil
}

func (rt *Runtime) evalSwapStatement(stmt *ast.SwapStatement) error {
	left, err := Eval(stmt.Left, rt.env)
	if err != nil {
		return err
	}
	right, err := Eval(stmt.Right, rt.env)
	if err != nil {
		return err
	}
	if left.Type() != right.Type() {
		return typeMismatch()
	}
	if err = assign(stmt.Left, right, rt.env); err != nil {
		return err
	}
	return assign(stmt.Right, left, rt.env)
}

// IF and UNLESS

func (rt *Runtime) evalIfStatement(stmt *ast.IfStatement) error {
	cond, err := evalCondition(stmt.Condition, rt.env)
	if err != nil {
		return err
	}
	if stmt.Negate {
		cond = !cond
	}

	if !stmt.IsBlock() {
		switch {
		case cond:
			return rt.execute(stmt.Then)
		case stmt.Else != nil:
			return rt.execute(stmt.Else)
		}
		return nil
	}

	if cond {
		return nil
	}
	return rt.nextBranch(rt.env.PC(), stmt)
}

// nextBranch moves to the first ELSEIF that holds, the ELSE, or past the
// END IF of the block opened at from
func (rt *Runtime) nextBranch(from int, stmt *ast.IfStatement) error {
	missing := berrors.MissingEndIf
	block := "IF"
	if stmt.Negate {
		missing = berrors.MissingEndUnless
		block = "UNLESS"
	}

	isBranch := func(s ast.Statement) bool {
		switch s.(type) {
		case *ast.ElseIfStatement, *ast.ElseStatement:
			return true
		}
		return false
	}

	for {
		idx, ok := rt.scan(from, isBranch)
		if !ok {
			return berrors.New(missing)
		}

		switch s := rt.program.Statement(idx).(type) {
		case *ast.ElseIfStatement:
			cond, err := evalCondition(s.Condition, rt.env)
			if err != nil {
				return err
			}
			if cond {
				rt.jump(idx + 1)
				return nil
			}
			from = idx
		case *ast.ElseStatement:
			rt.jump(idx + 1)
			return nil
		default:
			if !isEndOf(s, block) {
				return berrors.New(missing)
			}
			rt.jump(idx + 1)
			return nil
		}
	}
}

// an ELSE or ELSEIF reached in sequence ends the branch that just ran
func (rt *Runtime) evalElseStatement(orphan string) error {
	stmt, idx, ok := rt.closer(rt.env.PC())
	if !ok || !(isEndOf(stmt, "IF") || isEndOf(stmt, "UNLESS")) {
		return berrors.New(orphan)
	}
	rt.jump(idx + 1)
	return nil
}

func (rt *Runtime) evalEndBlockStatement(stmt *ast.EndBlockStatement) error {
	switch stmt.Block {
	case "IF", "UNLESS":
		if !rt.closesIf(rt.env.PC()) {
			return berrors.New(berrors.EndIfWoIf)
		}
		return nil

	case "SELECT":
		idx := rt.findFrame("SELECT")
		if idx < 0 {
			return berrors.New(berrors.EndSelectWoCase)
		}
		rt.truncate(idx)
		return nil

	case "SUB":
		idx := rt.findFrame("SUB")
		if idx < 0 {
			return berrors.New(berrors.EndSubWoSub)
		}
		return rt.returnFromSub(idx)

	case "TRY":
		return rt.evalEndTryStatement()
	}

	return berrors.Std(berrors.Syntax)
}

// closesIf looks back from an END IF for the block IF it belongs to
func (rt *Runtime) closesIf(at int) bool {
	kind := blockKind(rt.program.Statement(at))
	var closed []string
	for i := at - 1; i >= 0; i-- {
		stmt := rt.program.Statement(i)
		switch classify(stmt) {
		case closesBlock:
			closed = append(closed, blockKind(stmt))
		case opensBlock:
			k := blockKind(stmt)
			if len(closed) == 0 {
				if k == kind {
					return true
				}
				continue
			}
			for j := len(closed) - 1; j >= 0; j-- {
				if closed[j] == k {
					closed = closed[:j]
					break
				}
			}
		}
	}
	return false
}

// FOR / NEXT

func (rt *Runtime) evalForStatement(stmt *ast.ForStatement) error {
	pc := rt.env.PC()
	rt.reenter("FOR", pc)

	next, end, ok := rt.closer(pc)
	if _, isNext := next.(*ast.NextStatement); !ok || !isNext {
		return berrors.New(berrors.MissingNext)
	}

	start, err := Eval(stmt.Start, rt.env)
	if err != nil {
		return err
	}
	limit, err := Eval(stmt.End, rt.env)
	if err != nil {
		return err
	}
	var step object.Object = &object.Integer{Value: 1}
	if stmt.Step != nil {
		if step, err = Eval(stmt.Step, rt.env); err != nil {
			return err
		}
	}
	if !object.IsNumeric(limit) || !object.IsNumeric(step) {
		return typeMismatch()
	}

	if err = assignVariable(stmt.Var, start, rt.env); err != nil {
		return err
	}

	f := &forFrame{start: pc, end: end, loopVar: stmt.Var, limit: limit, step: step}
	more, err := f.more(rt.env)
	if err != nil {
		return err
	}
	if !more {
		rt.jump(end + 1)
		return nil
	}

	rt.push(f)
	return nil
}

// more tests the loop variable against the limit in the direction of step
func (f *forFrame) more(env *object.Environment) (bool, error) {
	cur, ok := object.ToFloat(evalIdentifier(f.loopVar, env))
	if !ok {
		return false, typeMismatch()
	}
	limit, _ := object.ToFloat(f.limit)
	step, _ := object.ToFloat(f.step)

	if step < 0 {
		return cur >= limit, nil
	}
	return cur <= limit, nil
}

func (rt *Runtime) evalNextStatement(stmt *ast.NextStatement) error {
	idx := rt.findFor(stmt.Var)
	if idx < 0 {
		return berrors.Std(berrors.NextWithoutFor)
	}
	f := rt.frames[idx].(*forFrame)
	rt.truncate(idx + 1)

	cur := evalIdentifier(f.loopVar, rt.env)
	val, err := evalInfixExpression("+", cur, f.step)
	if err != nil {
		return err
	}
	if err = assignVariable(f.loopVar, val, rt.env); err != nil {
		return err
	}

	more, err := f.more(rt.env)
	if err != nil {
		return err
	}
	if more {
		rt.jump(f.start + 1)
		return nil
	}

	rt.truncate(idx)
	return nil
}

// findFor finds the FOR a NEXT belongs to, by variable when one is given
func (rt *Runtime) findFor(id *ast.Identifier) int {
	for i := len(rt.frames) - 1; i >= 0; i-- {
		switch f := rt.frames[i].(type) {
		case *forFrame:
			if id == nil || f.loopVar.Key() == id.Key() {
				return i
			}
		case *subFrame:
			return -1
		}
	}
	return -1
}

// WHILE, DO and UNTIL

// loopHead runs the shared part of a head tested loop: find the closer,
// then enter the body or skip past it
func (rt *Runtime) loopHead(block string, missing string, closed func(ast.Statement) bool, run bool) error {
	pc := rt.env.PC()
	rt.reenter(block, pc)

	stmt, end, ok := rt.closer(pc)
	if !ok || !closed(stmt) {
		return berrors.New(missing)
	}

	if !run {
		rt.jump(end + 1)
		return nil
	}
	rt.push(&loopFrame{block: block, start: pc, end: end})
	return nil
}

func (rt *Runtime) evalWhileStatement(stmt *ast.WhileStatement) error {
	cond, err := evalCondition(stmt.Condition, rt.env)
	if err != nil {
		return err
	}
	return rt.loopHead("WHILE", berrors.MissingWend, func(s ast.Statement) bool {
		_, ok := s.(*ast.WendStatement)
		return ok
	}, cond)
}

func (rt *Runtime) evalDoStatement(stmt *ast.DoStatement) error {
	run := true
	if stmt.Condition != nil {
		cond, err := evalCondition(stmt.Condition, rt.env)
		if err != nil {
			return err
		}
		run = cond != stmt.Until
	}
	return rt.loopHead("DO", berrors.MissingLoop, func(s ast.Statement) bool {
		_, ok := s.(*ast.LoopStatement)
		return ok
	}, run)
}

func (rt *Runtime) evalUntilStatement(stmt *ast.UntilStatement) error {
	cond, err := evalCondition(stmt.Condition, rt.env)
	if err != nil {
		return err
	}
	return rt.loopHead("UNTIL", berrors.MissingUend, func(s ast.Statement) bool {
		_, ok := s.(*ast.UendStatement)
		return ok
	}, !cond)
}

// evalLoopEnd sends WEND and UEND back to the head, which tests again
func (rt *Runtime) evalLoopEnd(block string, orphan error) error {
	idx := rt.findFrame(block)
	if idx < 0 {
		return orphan
	}
	f := rt.frames[idx].(*loopFrame)
	rt.truncate(idx)
	rt.jump(f.start)
	return nil
}

func (rt *Runtime) evalLoopStatement(stmt *ast.LoopStatement) error {
	idx := rt.findFrame("DO")
	if idx < 0 {
		return berrors.Std(berrors.LoopWoDo)
	}
	f := rt.frames[idx].(*loopFrame)
	rt.truncate(idx)

	again := true
	if stmt.Condition != nil {
		cond, err := evalCondition(stmt.Condition, rt.env)
		if err != nil {
			return err
		}
		again = cond != stmt.Until
	}
	if again {
		rt.jump(f.start)
	}
	return nil
}

// EXIT and CONTINUE

func (rt *Runtime) evalExitStatement(stmt *ast.ExitStatement) error {
	idx := rt.findFrame(stmt.Target)
	if idx < 0 {
		return berrors.Newf("EXIT %s outside of %s", stmt.Target, stmt.Target)
	}

	switch f := rt.frames[idx].(type) {
	case *subFrame:
		return rt.returnFromSub(idx)
	case *forFrame:
		rt.truncate(idx)
		rt.jump(f.end + 1)
	case *loopFrame:
		rt.truncate(idx)
		rt.jump(f.end + 1)
	}
	return nil
}

// CONTINUE goes to the loop's terminator so the usual test decides
func (rt *Runtime) evalContinueStatement(stmt *ast.ContinueStatement) error {
	idx := rt.findFrame(stmt.Target)
	if idx < 0 {
		return berrors.Newf("CONTINUE %s outside of %s", stmt.Target, stmt.Target)
	}

	switch f := rt.frames[idx].(type) {
	case *forFrame:
		rt.truncate(idx + 1)
		rt.jump(f.end)
	case *loopFrame:
		rt.truncate(idx + 1)
		rt.jump(f.end)
	default:
		return berrors.Newf("CONTINUE %s: not a loop", stmt.Target)
	}
	return nil
}

// SELECT CASE

func (rt *Runtime) evalSelectCaseStatement(stmt *ast.SelectCaseStatement) error {
	pc := rt.env.PC()
	closer, end, ok := rt.closer(pc)
	if !ok || !isEndOf(closer, "SELECT") {
		return berrors.New(berrors.MissingEndSelect)
	}

	test, err := Eval(stmt.Test, rt.env)
	if err != nil {
		return err
	}

	isCase := func(s ast.Statement) bool {
		_, ok := s.(*ast.CaseStatement)
		return ok
	}

	for from := pc; ; {
		idx, _ := rt.scan(from, isCase)
		cs, ok := rt.program.Statement(idx).(*ast.CaseStatement)
		if !ok {
			// no clause matched
			rt.jump(end + 1)
			return nil
		}

		hit, err := rt.caseMatches(cs, test)
		if err != nil {
			return err
		}
		if hit {
			rt.push(&selectFrame{start: pc, end: end})
			rt.jump(idx + 1)
			return nil
		}
		from = idx
	}
}

func (rt *Runtime) caseMatches(cs *ast.CaseStatement, test object.Object) (bool, error) {
	if cs.Else {
		return true, nil
	}

	for _, sel := range cs.Selectors {
		val, err := Eval(sel.Value, rt.env)
		if err != nil {
			return false, err
		}

		var hit bool
		switch sel.Kind {
		case ast.SelectValue:
			hit, err = compare("=", test, val)
		case ast.SelectRange:
			high, herr := Eval(sel.High, rt.env)
			if herr != nil {
				return false, herr
			}
			if hit, err = compare(">=", test, val); err == nil && hit {
				hit, err = compare("<=", test, high)
			}
		case ast.SelectRelational:
			if _, known := comparisons[sel.Op]; !known {
				return false, berrors.New(berrors.UnknownRelOp)
			}
			hit, err = compare(sel.Op, test, val)
		}

		if err != nil {
			return false, err
		}
		if hit {
			return true, nil
		}
	}
	return false, nil
}

func compare(op string, left, right object.Object) (bool, error) {
	res, err := evalInfixExpression(op, left, right)
	if err != nil {
		return false, err
	}
	return truthy(res)
}

// a CASE reached in sequence ends the clause that matched
func (rt *Runtime) evalCaseStatement() error {
	idx := rt.findFrame("SELECT")
	if idx < 0 {
		return berrors.Std(berrors.CaseWoSelect)
	}
	f := rt.frames[idx].(*selectFrame)
	rt.truncate(idx)
	rt.jump(f.end + 1)
	return nil
}

// GOTO, GOSUB and RETURN

func (rt *Runtime) label(name string) (int, error) {
	idx, ok := rt.program.Label(name)
	if !ok {
		return 0, berrors.Newf("%s: %s", berrors.TextForError(berrors.UndefinedLabel), name)
	}
	return idx, nil
}

func (rt *Runtime) evalGotoStatement(name string) error {
	idx, err := rt.label(name)
	if err != nil {
		return err
	}
	rt.jump(idx)
	return nil
}

func (rt *Runtime) evalGosubStatement(stmt *ast.GosubStatement) error {
	idx, err := rt.label(stmt.Label)
	if err != nil {
		return err
	}
	rt.push(&gosubFrame{ret: rt.next})
	rt.jump(idx)
	return nil
}

func (rt *Runtime) evalReturnStatement() error {
	idx := rt.findFrame("GOSUB")
	if idx < 0 {
		return berrors.Std(berrors.ReturnWoGosub)
	}
	f := rt.frames[idx].(*gosubFrame)
	rt.truncate(idx)
	rt.jump(f.ret)
	return nil
}

// SUB and CALL

// a SUB met in flat execution is stepped over
func (rt *Runtime) evalSubStatement() error {
	stmt, end, ok := rt.closer(rt.env.PC())
	if !ok || !isEndOf(stmt, "SUB") {
		return berrors.New(berrors.MissingEndSub)
	}
	rt.jump(end + 1)
	return nil
}

func (rt *Runtime) evalCallStatement(stmt *ast.CallStatement) error {
	start, ok := rt.program.Sub(stmt.Name)
	if !ok {
		return berrors.Newf("%s: %s", berrors.TextForError(berrors.UndefinedSub), stmt.Name)
	}
	sub := rt.program.Statement(start).(*ast.SubStatement)

	closer, end, ok := rt.closer(start)
	if !ok || !isEndOf(closer, "SUB") {
		return berrors.New(berrors.MissingEndSub)
	}

	if len(stmt.Args) != len(sub.Params) {
		return berrors.Newf("CALL %s: expected %d arguments, got %d", sub.Name, len(sub.Params), len(stmt.Args))
	}

	args, err := evalExpressions(stmt.Args, rt.env)
	if err != nil {
		return err
	}

	var byref []byrefArg
	for i, p := range sub.Params {
		if !p.ByRef {
			continue
		}
		switch stmt.Args[i].(type) {
		case *ast.Identifier, *ast.AccessExpression:
			byref = append(byref, byrefArg{param: p.Name.Key(), target: stmt.Args[i]})
		default:
			return berrors.Newf("CALL %s: BYREF %s needs a variable", sub.Name, p.Name.String())
		}
	}

	rt.env.PushScope()
	for i, p := range sub.Params {
		if err := declareLocal(p.Name, args[i], rt.env); err != nil {
			rt.env.PopScope()
			return err
		}
	}

	rt.push(&subFrame{name: sub.Name, ret: rt.next, end: end, byref: byref})
	rt.jump(start + 1)
	return nil
}

// returnFromSub unwinds the call at idx and copies BYREF parameters back
// to the caller's variables
func (rt *Runtime) returnFromSub(idx int) error {
	f := rt.frames[idx].(*subFrame)

	vals := make([]object.Object, len(f.byref))
	for i, br := range f.byref {
		vals[i] = rt.env.Get(br.param)
	}

	rt.truncate(idx)

	for i, br := range f.byref {
		if vals[i] == nil {
			continue
		}
		if err := assign(br.target, vals[i], rt.env); err != nil {
			return err
		}
	}

	rt.jump(f.ret)
	return nil
}

// TRY, CATCH, FINALLY and THROW

func (rt *Runtime) evalTryStatement() error {
	pc := rt.env.PC()
	f := &tryFrame{start: pc, catch: -1, finally: -1}

	isSection := func(s ast.Statement) bool {
		switch s.(type) {
		case *ast.CatchStatement, *ast.FinallyStatement:
			return true
		}
		return false
	}

	for from := pc; ; {
		idx, ok := rt.scan(from, isSection)
		if !ok {
			return berrors.New(berrors.MissingEndTry)
		}
		switch s := rt.program.Statement(idx).(type) {
		case *ast.CatchStatement:
			f.catch = idx
		case *ast.FinallyStatement:
			f.finally = idx
		default:
			if !isEndOf(s, "TRY") {
				return berrors.New(berrors.MissingEndTry)
			}
			f.end = idx
			rt.push(f)
			return nil
		}
		from = idx
	}
}

func (rt *Runtime) tryFrame(orphan string) (int, *tryFrame, error) {
	idx := rt.findFrame("TRY")
	if idx < 0 {
		return -1, nil, berrors.New(orphan)
	}
	return idx, rt.frames[idx].(*tryFrame), nil
}

// a CATCH reached in sequence means the body finished cleanly
func (rt *Runtime) evalCatchStatement() error {
	idx, f, err := rt.tryFrame(berrors.CatchWoTry)
	if err != nil {
		return err
	}
	if f.finally >= 0 {
		rt.truncate(idx + 1)
		f.phase = inFinally
		rt.jump(f.finally + 1)
		return nil
	}
	rt.truncate(idx)
	rt.jump(f.end + 1)
	return nil
}

func (rt *Runtime) evalFinallyStatement() error {
	idx, f, err := rt.tryFrame(berrors.FinallyWoTry)
	if err != nil {
		return err
	}
	rt.truncate(idx + 1)
	f.phase = inFinally
	return nil
}

func (rt *Runtime) evalEndTryStatement() error {
	idx, f, err := rt.tryFrame(berrors.EndTryWoTry)
	if err != nil {
		return err
	}
	rt.truncate(idx)
	return f.pending
}

func (rt *Runtime) evalThrowStatement(stmt *ast.ThrowStatement) error {
	val, err := Eval(stmt.Value, rt.env)
	if err != nil {
		return err
	}
	return &berrors.RuntimeError{Msg: val.Inspect(), Thrown: true}
}

// host hints

func (rt *Runtime) evalSleepStatement(stmt *ast.SleepStatement) error {
	val, err := Eval(stmt.Duration, rt.env)
	if err != nil {
		return err
	}
	ms, ok := object.ToFloat(val)
	if !ok {
		return typeMismatch()
	}
	if ms < 0 || math.IsNaN(ms) {
		ms = 0
	}
	rt.sleep = time.Duration(ms * float64(time.Millisecond))
	rt.env.SaveSetting(settings.Sleep, &object.Integer{Value: int64(ms)})
	return nil
}

func (rt *Runtime) evalRandomizeStatement(stmt *ast.RandomizeStatement) error {
	if stmt.Seed == nil {
		rt.env.Randomize(time.Now().UnixNano())
		return nil
	}
	val, err := Eval(stmt.Seed, rt.env)
	if err != nil {
		return err
	}
	seed, ok := object.ToInt(val)
	if !ok {
		return typeMismatch()
	}
	rt.env.Randomize(seed)
	return nil
}
