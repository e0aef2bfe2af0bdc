package evaluator

import (
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/fileio"
	"github.com/navionguy/edubasic/keywords"
	"github.com/navionguy/edubasic/logger"
	"github.com/navionguy/edubasic/object"
	"github.com/navionguy/edubasic/settings"
)

// operand helpers

func (rt *Runtime) evalInt(exp ast.Expression) (int, error) {
	val, err := Eval(exp, rt.env)
	if err != nil {
		return 0, err
	}
	i, ok := object.ToInt(val)
	if !ok {
		return 0, typeMismatch()
	}
	return int(i), nil
}

func (rt *Runtime) evalFloat(exp ast.Expression) (float64, error) {
	val, err := Eval(exp, rt.env)
	if err != nil {
		return 0, err
	}
	f, ok := object.ToFloat(val)
	if !ok {
		return 0, typeMismatch()
	}
	return f, nil
}

func (rt *Runtime) evalString(exp ast.Expression) (string, error) {
	val, err := Eval(exp, rt.env)
	if err != nil {
		return "", err
	}
	s, ok := val.(*object.String)
	if !ok {
		return "", typeMismatch()
	}
	return s.Value, nil
}

// evalColor resolves an optional color, the foreground when omitted
func (rt *Runtime) evalColor(exp ast.Expression) (uint32, error) {
	if exp == nil {
		return rt.env.Foreground(), nil
	}
	val, err := Eval(exp, rt.env)
	if err != nil {
		return 0, err
	}
	return object.ColorValue(val)
}

// screen

func (rt *Runtime) evalPrintStatement(stmt *ast.PrintStatement) error {
	g := rt.env.Graphics()
	newline := true

	for _, it := range stmt.Items {
		if it.Exp != nil {
			val, err := Eval(it.Exp, rt.env)
			if err != nil {
				return err
			}
			if g != nil {
				g.PrintText(val.Inspect())
			}
		}

		switch it.Sep {
		case ",":
			if g != nil {
				g.PrintText("\t")
			}
			newline = false
		case ";":
			newline = false
		default:
			newline = true
		}
	}

	if newline && g != nil {
		g.NewLine()
	}
	return nil
}

// INPUT shows its prompt once, then waits until the host queues a line
func (rt *Runtime) evalInputStatement(stmt *ast.InputStatement) error {
	pc := rt.env.PC()
	g := rt.env.Graphics()

	if rt.prompted != pc {
		prompt := "? "
		if stmt.Prompt != nil {
			val, err := Eval(stmt.Prompt, rt.env)
			if err != nil {
				return err
			}
			prompt = val.Inspect()
		}
		if g != nil {
			g.PrintText(prompt)
		}
		rt.prompted = pc
	}

	line, ok := rt.env.NextInput()
	if !ok {
		return berrors.ErrInputPending
	}
	rt.prompted = -1

	if g != nil {
		g.PrintText(line)
		g.NewLine()
	}

	vt := targetType(stmt.Var)
	val, ok := parseText(line, vt)
	if !ok {
		switch vt {
		case ast.IntegerVar:
			return berrors.New(berrors.InputInvalidInteger)
		case ast.RealVar:
			return berrors.New(berrors.InputInvalidReal)
		case ast.ComplexVar:
			return berrors.New(berrors.InputInvalidComplex)
		}
		return berrors.Std(berrors.InputFormat)
	}
	return assign(stmt.Var, val, rt.env)
}

func targetType(exp ast.Expression) ast.VarType {
	if id, ok := exp.(*ast.Identifier); ok {
		return id.Type
	}
	return ast.Dynamic
}

// parseText converts a line of text for a variable of type vt.  Untyped
// targets take a number when the text is one, otherwise the string.
func parseText(text string, vt ast.VarType) (object.Object, bool) {
	trimmed := strings.TrimSpace(text)

	switch vt {
	case ast.StringVar:
		return &object.String{Value: text}, true
	case ast.IntegerVar:
		i, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, false
		}
		return &object.Integer{Value: i}, true
	case ast.RealVar:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, false
		}
		return &object.Real{Value: f}, true
	case ast.ComplexVar:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return &object.Complex{Value: complex(f, 0)}, true
		}
		c, err := strconv.ParseComplex(strings.ToLower(trimmed), 128)
		if err != nil {
			return nil, false
		}
		return &object.Complex{Value: c}, true
	}

	for _, t := range []ast.VarType{ast.IntegerVar, ast.RealVar} {
		if v, ok := parseText(trimmed, t); ok {
			return v, true
		}
	}
	if c, err := strconv.ParseComplex(strings.ToLower(trimmed), 128); err == nil && strings.ContainsAny(trimmed, "iI") {
		return &object.Complex{Value: c}, true
	}
	return &object.String{Value: text}, true
}

func (rt *Runtime) evalLocateStatement(stmt *ast.LocateStatement) error {
	row, err := rt.evalInt(stmt.Row)
	if err != nil {
		return err
	}
	col, err := rt.evalInt(stmt.Col)
	if err != nil {
		return err
	}
	if g := rt.env.Graphics(); g != nil {
		g.SetCursorPosition(row, col)
	}
	return nil
}

func (rt *Runtime) evalColorStatement(stmt *ast.ColorStatement) error {
	fg, err := rt.evalColor(stmt.Fg)
	if err != nil {
		return err
	}
	g := rt.env.Graphics()

	rt.env.SaveSetting(settings.Foreground, &object.Integer{Value: int64(fg)})
	if g != nil {
		g.SetForegroundColor(fg)
	}

	if stmt.Bg == nil {
		return nil
	}
	bg, err := rt.evalColor(stmt.Bg)
	if err != nil {
		return err
	}
	rt.env.SaveSetting(settings.Background, &object.Integer{Value: int64(bg)})
	if g != nil {
		g.SetBackgroundColor(bg)
	}
	return nil
}

// console

func (rt *Runtime) evalConsoleStatement(stmt *ast.ConsoleStatement) error {
	val, err := Eval(stmt.Value, rt.env)
	if err != nil {
		return err
	}
	if con := rt.env.Console(); con != nil {
		con.PrintOutput(val.Inspect())
	}
	return nil
}

func (rt *Runtime) evalHelpStatement(stmt *ast.HelpStatement) {
	con := rt.env.Console()
	if con == nil {
		return
	}

	if len(stmt.Topic) == 0 {
		words := keywords.All()
		sort.Strings(words)
		con.PrintOutput("Keywords: " + strings.Join(words, " "))
		return
	}

	topic := strings.ToUpper(stmt.Topic)
	cat := keywords.Category(topic)
	if len(cat) == 0 {
		con.PrintOutput("HELP: " + topic + " is not a keyword")
		return
	}
	con.PrintOutput(topic + ": " + cat)
}

// audio

func (rt *Runtime) evalAudioStatement(stmt ast.Statement) error {
	au := rt.env.Audio()

	switch stmt := stmt.(type) {
	case *ast.TempoStatement:
		bpm, err := rt.evalFloat(stmt.Value)
		if err != nil || au == nil {
			return err
		}
		au.SetTempo(bpm)

	case *ast.VolumeStatement:
		level, err := rt.evalFloat(stmt.Value)
		if err != nil || au == nil {
			return err
		}
		au.SetVolume(level)

	case *ast.MuteStatement:
		if au != nil {
			au.SetMuted(stmt.On)
		}

	case *ast.VoiceStatement:
		return rt.evalVoiceStatement(stmt, au)

	case *ast.PlayStatement:
		voice, err := rt.evalInt(stmt.Voice)
		if err != nil {
			return err
		}
		mml, err := rt.evalString(stmt.Music)
		if err != nil || au == nil {
			return err
		}
		au.PlaySequence(voice, mml)
	}
	return nil
}

func (rt *Runtime) evalVoiceStatement(stmt *ast.VoiceStatement, au object.Audio) error {
	idx, err := rt.evalInt(stmt.Index)
	if err != nil {
		return err
	}

	var inst object.Object
	if stmt.Instrument != nil {
		if inst, err = Eval(stmt.Instrument, rt.env); err != nil {
			return err
		}
	}
	if au == nil {
		return nil
	}

	au.SetVoice(idx)
	switch v := inst.(type) {
	case nil:
	case *object.String:
		if err := au.SetVoiceInstrumentByName(idx, v.Value); err != nil {
			return berrors.New(err.Error())
		}
	default:
		prog, ok := object.ToInt(v)
		if !ok {
			return typeMismatch()
		}
		au.SetVoiceInstrument(idx, int(prog))
	}
	return nil
}

// files

func (rt *Runtime) fileSystem() (object.FileSystem, error) {
	fs := rt.env.FileSystem()
	if fs == nil {
		return nil, berrors.Std(berrors.DeviceIOError)
	}
	return fs, nil
}

func fileError(what string, err error) error {
	logger.Debug(logger.AreaFileSystem, "%s failed: %s", what, err)
	return berrors.Newf("%s: %s", what, err)
}

func (rt *Runtime) evalOpenStatement(stmt *ast.OpenStatement) error {
	fs, err := rt.fileSystem()
	if err != nil {
		return err
	}
	path, err := rt.evalString(stmt.Path)
	if err != nil {
		return err
	}
	mode, ok := fileio.ParseAccessMode(stmt.Mode)
	if !ok {
		return berrors.Newf("OPEN: unknown mode %s", stmt.Mode)
	}

	h, err := fs.Open(path, mode)
	if err != nil {
		return fileError("OPEN", err)
	}
	return assignVariable(stmt.Handle, &object.Integer{Value: int64(h)}, rt.env)
}

func (rt *Runtime) evalCloseStatement(stmt *ast.CloseStatement) error {
	fs, err := rt.fileSystem()
	if err != nil {
		return err
	}
	h, err := rt.evalInt(stmt.Handle)
	if err != nil {
		return err
	}
	if err = fs.Close(h); err != nil {
		return fileError("CLOSE", err)
	}
	return nil
}

func (rt *Runtime) evalReadFileStatement(stmt *ast.ReadFileStatement) error {
	fs, err := rt.fileSystem()
	if err != nil {
		return err
	}
	h, err := rt.evalInt(stmt.Handle)
	if err != nil {
		return err
	}

	line, err := fs.ReadLine(h)
	if errors.Is(err, io.EOF) {
		return berrors.New("READFILE: end of file")
	}
	if err != nil {
		return fileError("READFILE", err)
	}

	vt := targetType(stmt.Var)
	val, ok := parseText(line, vt)
	if !ok {
		return berrors.Newf("READFILE: invalid %s", strings.ToLower(vt.String()))
	}
	return assign(stmt.Var, val, rt.env)
}

func (rt *Runtime) evalWriteFileStatement(stmt *ast.WriteFileStatement) error {
	fs, err := rt.fileSystem()
	if err != nil {
		return err
	}
	val, err := Eval(stmt.Value, rt.env)
	if err != nil {
		return err
	}
	h, err := rt.evalInt(stmt.Handle)
	if err != nil {
		return err
	}
	if err = fs.Write(h, val.Inspect()+"\n"); err != nil {
		return fileError("WRITEFILE", err)
	}
	return nil
}

func (rt *Runtime) evalSeekStatement(stmt *ast.SeekStatement) error {
	fs, err := rt.fileSystem()
	if err != nil {
		return err
	}
	h, err := rt.evalInt(stmt.Handle)
	if err != nil {
		return err
	}
	pos, err := rt.evalInt(stmt.Position)
	if err != nil {
		return err
	}
	if err = fs.Seek(h, int64(pos)); err != nil {
		return fileError("SEEK", err)
	}
	return nil
}

func (rt *Runtime) evalListDirStatement(stmt *ast.ListDirStatement) error {
	fs, err := rt.fileSystem()
	if err != nil {
		return err
	}
	path, err := rt.evalString(stmt.Path)
	if err != nil {
		return err
	}

	names, err := fs.List(path)
	if err != nil {
		return fileError("LISTDIR", err)
	}
	items := make([]object.Object, len(names))
	for i, n := range names {
		items[i] = &object.String{Value: n}
	}
	return assignVariable(stmt.Array, object.NewList(ast.StringVar, items), rt.env)
}

func (rt *Runtime) evalFileOpStatement(stmt *ast.FileOpStatement) error {
	fs, err := rt.fileSystem()
	if err != nil {
		return err
	}
	path, err := rt.evalString(stmt.Path)
	if err != nil {
		return err
	}
	var dest string
	if stmt.Dest != nil {
		if dest, err = rt.evalString(stmt.Dest); err != nil {
			return err
		}
	}

	switch stmt.Op {
	case "MKDIR":
		err = fs.Mkdir(path)
	case "RMDIR":
		err = fs.Rmdir(path)
	case "DELETE":
		err = fs.Delete(path)
	case "COPY":
		err = fs.Copy(path, dest)
	case "MOVE":
		err = fs.Move(path, dest)
	default:
		return berrors.Std(berrors.Syntax)
	}
	if err != nil {
		return fileError(stmt.Op, err)
	}
	return nil
}

// arrays

func (rt *Runtime) evalArrayOpStatement(stmt *ast.ArrayOpStatement) error {
	id := stmt.Array
	var arr *object.Array

	switch cur := rt.env.Get(id.Key()).(type) {
	case nil:
		arr = object.NewList(id.Type, nil)
	case *object.Array:
		arr = cur
	default:
		return typeMismatch()
	}

	switch stmt.Op {
	case "PUSH", "UNSHIFT":
		val, err := Eval(stmt.Value, rt.env)
		if err != nil {
			return err
		}
		if val, err = object.Coerce(val, arr.ElemType); err != nil {
			return err
		}
		if stmt.Op == "PUSH" {
			arr.Push(val)
		} else {
			arr.Unshift(val)
		}
		rt.env.Set(id.Key(), arr)
		return nil

	case "POP", "SHIFT":
		var val object.Object
		var ok bool
		if stmt.Op == "POP" {
			val, ok = arr.Pop()
		} else {
			val, ok = arr.Shift()
		}
		if !ok {
			return berrors.Newf("%s: %s is empty", stmt.Op, id.Name)
		}
		if stmt.Value == nil {
			return nil
		}
		return assign(stmt.Value, val, rt.env)
	}

	return berrors.Std(berrors.Syntax)
}
