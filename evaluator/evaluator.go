// Package evaluator steps an EduBASIC program one statement at a time
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/logger"
	"github.com/navionguy/edubasic/object"
	"github.com/navionguy/edubasic/settings"
)

// Result tells the host whether to keep stepping
type Result int

const (
	Continue Result = iota
	End
)

func (r Result) String() string {
	if r == End {
		return "End"
	}
	return "Continue"
}

// InputFunc supplies a line for INPUT when nothing is queued, false when
// no more input is coming
type InputFunc func() (string, bool)

// Runtime executes a parsed program against an environment
type Runtime struct {
	program *ast.Program
	env     *object.Environment
	frames  []frame

	next      int // program counter after the current statement
	ended     bool
	prompted  int // pc of an INPUT whose prompt has been shown, -1 if none
	sleep     time.Duration
	stepLimit int
	input     InputFunc
}

// Option adjusts a Runtime as it is built
type Option func(*Runtime)

// WithStepLimit makes Run give up after n statements, 0 is no limit
func WithStepLimit(n int) Option {
	return func(rt *Runtime) { rt.stepLimit = n }
}

// WithInput lets Run fetch INPUT lines on demand
func WithInput(fn InputFunc) Option {
	return func(rt *Runtime) { rt.input = fn }
}

// WithSeed makes RND repeatable
func WithSeed(seed int64) Option {
	return func(rt *Runtime) { rt.env.Randomize(seed) }
}

// New prepares a program to run against the given devices
func New(prog *ast.Program, dev object.Devices, opts ...Option) *Runtime {
	rt := &Runtime{program: prog, env: object.NewEnvironment(dev), prompted: -1}
	for _, opt := range opts {
		opt(rt)
	}
	logger.Debug(logger.AreaRuntime, "loaded program with %d statements", prog.Len())
	return rt
}

// Env exposes the environment, hosts use it to inspect variables
func (rt *Runtime) Env() *object.Environment { return rt.env }

// Program being run
func (rt *Runtime) Program() *ast.Program { return rt.program }

// Variables returns a snapshot of the global variables
func (rt *Runtime) Variables() map[string]object.Object { return rt.env.Variables() }

// QueueInput buffers lines for INPUT
func (rt *Runtime) QueueInput(lines ...string) { rt.env.QueueInput(lines...) }

// SleepHint returns how long the host should pause before the next step
// and clears it
func (rt *Runtime) SleepHint() time.Duration {
	d := rt.sleep
	rt.sleep = 0
	rt.env.SaveSetting(settings.Sleep, &object.Integer{Value: 0})
	return d
}

// Ended reports if the program has finished
func (rt *Runtime) Ended() bool { return rt.ended }

// Reset rewinds to the first statement with a clean environment
func (rt *Runtime) Reset() {
	rt.env.Clear()
	rt.frames = nil
	rt.ended = false
	rt.prompted = -1
	rt.sleep = 0
}

// ExecuteStep runs the statement at the program counter.  A runtime error
// ends the program unless a TRY is active.  berrors.ErrInputPending leaves
// the program counter where it is so the step can be retried.
func (rt *Runtime) ExecuteStep() (Result, error) {
	if rt.ended {
		return End, nil
	}

	pc := rt.env.PC()
	if pc < 0 || pc >= rt.program.Len() {
		rt.ended = true
		return End, nil
	}

	stmt := rt.program.Statement(pc)
	rt.trace(pc, stmt)

	rt.next = pc + 1
	err := rt.execute(stmt)

	if errors.Is(err, berrors.ErrInputPending) {
		return Continue, err
	}

	if err != nil {
		err = rt.annotate(err, pc)
		if !rt.catch(err) {
			rt.ended = true
			logger.Warn(logger.AreaRuntime, "line %d: %s", berrors.Line(err), err)
			return End, err
		}
	}

	if rt.ended {
		return End, nil
	}

	rt.env.SetPC(rt.next)
	return Continue, nil
}

// Run steps until the program ends, fails, the context is cancelled or the
// step limit is reached
func (rt *Runtime) Run(ctx context.Context) error {
	steps := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := rt.ExecuteStep()
		if errors.Is(err, berrors.ErrInputPending) {
			if rt.input == nil {
				return err
			}
			line, ok := rt.input()
			if !ok {
				return err
			}
			rt.QueueInput(line)
			continue
		}
		if err != nil || res == End {
			return err
		}

		steps++
		if rt.stepLimit > 0 && steps >= rt.stepLimit {
			return fmt.Errorf("step limit of %d reached", rt.stepLimit)
		}

		if d := rt.SleepHint(); d > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d):
			}
		}
	}
}

// jump makes the statement at idx run next
func (rt *Runtime) jump(idx int) {
	rt.next = idx
}

// annotate turns any error into a RuntimeError that knows its line
func (rt *Runtime) annotate(err error, pc int) error {
	var re *berrors.RuntimeError
	if !errors.As(err, &re) {
		re = berrors.New(err.Error())
	}
	if re.Line == 0 {
		re.Line = rt.program.LineNum(pc)
	}
	return re
}

func (rt *Runtime) trace(pc int, stmt ast.Statement) {
	if !rt.env.GetTrace() {
		return
	}
	line := rt.program.LineNum(pc)
	logger.Info(logger.AreaRuntime, "[%d] %s", line, stmt.String())
	if con := rt.env.Console(); con != nil {
		con.PrintOutput(fmt.Sprintf("[%d] %s", line, stmt.String()))
	}
}

// catch routes an error to the innermost TRY still running its body,
// false when nothing handles it.  An error in a CATCH body runs the
// FINALLY and is raised again at END TRY.
func (rt *Runtime) catch(err error) bool {
	for i := len(rt.frames) - 1; i >= 0; i-- {
		tf, ok := rt.frames[i].(*tryFrame)
		if !ok || tf.phase == inFinally {
			continue
		}
		if tf.phase == inCatch {
			if tf.finally < 0 {
				continue
			}
			rt.truncate(i + 1)
			tf.phase = inFinally
			tf.pending = err
			rt.jump(tf.finally + 1)
			return true
		}

		rt.truncate(i + 1)
		msg := err.Error()

		switch {
		case tf.catch >= 0:
			tf.phase = inCatch
			if cs, ok := rt.program.Statement(tf.catch).(*ast.CatchStatement); ok && cs.Var != nil {
				if aerr := assignVariable(cs.Var, &object.String{Value: msg}, rt.env); aerr != nil {
					return false
				}
			}
			rt.jump(tf.catch + 1)
		case tf.finally >= 0:
			tf.phase = inFinally
			tf.pending = err
			rt.jump(tf.finally + 1)
		default:
			rt.truncate(i)
			rt.jump(tf.end + 1)
		}

		logger.Debug(logger.AreaRuntime, "caught: %s", msg)
		return true
	}
	return false
}

// execute dispatches a statement
func (rt *Runtime) execute(stmt ast.Statement) error {
	switch stmt := stmt.(type) {
	// variables
	case *ast.LetStatement:
		return rt.evalLetStatement(stmt)
	case *ast.DimStatement:
		return rt.evalDimStatement(stmt)
	case *ast.LocalStatement:
		return rt.evalLocalStatement(stmt)
	case *ast.SwapStatement:
		return rt.evalSwapStatement(stmt)

	// control flow
	case *ast.IfStatement:
		return rt.evalIfStatement(stmt)
	case *ast.ElseIfStatement:
		return rt.evalElseStatement(berrors.ElseIfWoIf)
	case *ast.ElseStatement:
		return rt.evalElseStatement(berrors.ElseWoIf)
	case *ast.EndBlockStatement:
		return rt.evalEndBlockStatement(stmt)
	case *ast.EndStatement:
		rt.ended = true
		return nil
	case *ast.ForStatement:
		return rt.evalForStatement(stmt)
	case *ast.NextStatement:
		return rt.evalNextStatement(stmt)
	case *ast.WhileStatement:
		return rt.evalWhileStatement(stmt)
	case *ast.WendStatement:
		return rt.evalLoopEnd("WHILE", berrors.Std(berrors.WendWoWhile))
	case *ast.DoStatement:
		return rt.evalDoStatement(stmt)
	case *ast.LoopStatement:
		return rt.evalLoopStatement(stmt)
	case *ast.UntilStatement:
		return rt.evalUntilStatement(stmt)
	case *ast.UendStatement:
		return rt.evalLoopEnd("UNTIL", berrors.Std(berrors.UendWoUntil))
	case *ast.SelectCaseStatement:
		return rt.evalSelectCaseStatement(stmt)
	case *ast.CaseStatement:
		return rt.evalCaseStatement()
	case *ast.GotoStatement:
		return rt.evalGotoStatement(stmt.Label)
	case *ast.GosubStatement:
		return rt.evalGosubStatement(stmt)
	case *ast.ReturnStatement:
		return rt.evalReturnStatement()
	case *ast.LabelStatement, *ast.RemStatement:
		return nil
	case *ast.SubStatement:
		return rt.evalSubStatement()
	case *ast.CallStatement:
		return rt.evalCallStatement(stmt)
	case *ast.ExitStatement:
		return rt.evalExitStatement(stmt)
	case *ast.ContinueStatement:
		return rt.evalContinueStatement(stmt)
	case *ast.TryStatement:
		return rt.evalTryStatement()
	case *ast.CatchStatement:
		return rt.evalCatchStatement()
	case *ast.FinallyStatement:
		return rt.evalFinallyStatement()
	case *ast.ThrowStatement:
		return rt.evalThrowStatement(stmt)
	case *ast.SleepStatement:
		return rt.evalSleepStatement(stmt)
	case *ast.TronCommand:
		rt.env.SetTrace(true)
		return nil
	case *ast.TroffCommand:
		rt.env.SetTrace(false)
		return nil
	case *ast.RandomizeStatement:
		return rt.evalRandomizeStatement(stmt)

	// text screen and console
	case *ast.PrintStatement:
		return rt.evalPrintStatement(stmt)
	case *ast.InputStatement:
		return rt.evalInputStatement(stmt)
	case *ast.LocateStatement:
		return rt.evalLocateStatement(stmt)
	case *ast.ColorStatement:
		return rt.evalColorStatement(stmt)
	case *ast.ClsStatement:
		if g := rt.env.Graphics(); g != nil {
			g.Clear()
		}
		return nil
	case *ast.ConsoleStatement:
		return rt.evalConsoleStatement(stmt)
	case *ast.HelpStatement:
		rt.evalHelpStatement(stmt)
		return nil

	// graphics
	case *ast.PsetStatement, *ast.LineStatement, *ast.RectangleStatement, *ast.OvalStatement,
		*ast.CircleStatement, *ast.TriangleStatement, *ast.ArcStatement:
		return rt.evalDrawStatement(stmt)
	case *ast.PaintStatement:
		return rt.evalPaintStatement(stmt)
	case *ast.GetStatement:
		return rt.evalGetStatement(stmt)
	case *ast.PutStatement:
		return rt.evalPutStatement(stmt)

	// audio
	case *ast.TempoStatement, *ast.VolumeStatement, *ast.MuteStatement,
		*ast.VoiceStatement, *ast.PlayStatement:
		return rt.evalAudioStatement(stmt)

	// files
	case *ast.OpenStatement:
		return rt.evalOpenStatement(stmt)
	case *ast.CloseStatement:
		return rt.evalCloseStatement(stmt)
	case *ast.ReadFileStatement:
		return rt.evalReadFileStatement(stmt)
	case *ast.WriteFileStatement:
		return rt.evalWriteFileStatement(stmt)
	case *ast.SeekStatement:
		return rt.evalSeekStatement(stmt)
	case *ast.ListDirStatement:
		return rt.evalListDirStatement(stmt)
	case *ast.FileOpStatement:
		return rt.evalFileOpStatement(stmt)

	// arrays
	case *ast.ArrayOpStatement:
		return rt.evalArrayOpStatement(stmt)
	}

	return berrors.Newf("%s: not supported", stmt.TokenLiteral())
}
