// Package cli runs EduBASIC programs in a text terminal
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/evaluator"
	"github.com/navionguy/edubasic/logger"
	"github.com/navionguy/edubasic/object"
	"github.com/navionguy/edubasic/parser"
	"github.com/navionguy/edubasic/terminal"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Options controls a run
type Options struct {
	StepLimit int
	Width     int // canvas size, zero for no canvas
	Height    int
	ANSI      bool
	Screen    string // write the canvas here as a PNG when the run ends
	Files     object.FileSystem
}

// Runner ties a program to a terminal and a source of INPUT lines
type Runner struct {
	opts Options
	in   *bufio.Scanner
	out  io.Writer
	con  io.Writer
}

// New creates a Runner reading INPUT lines from in, program output goes to
// out and errors plus console lines to con
func New(in io.Reader, out, con io.Writer, opts Options) *Runner {
	return &Runner{opts: opts, in: bufio.NewScanner(in), out: out, con: con}
}

// RunFile loads and runs a program file
func (r *Runner) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		r.giveError(err.Error())
		return err
	}
	logger.Info(logger.AreaCLI, "running %s", path)
	return r.Run(ctx, string(src))
}

// Run parses and runs src to the end
func (r *Runner) Run(ctx context.Context, src string) error {
	prog, err := parser.ParseProgram(src)
	if err != nil {
		r.giveError("Syntax error: " + err.Error())
		return err
	}

	trm := terminal.New(r.out, r.con, r.opts.Width, r.opts.Height)
	trm.ANSI = r.opts.ANSI

	opts := []evaluator.Option{evaluator.WithInput(r.readLine)}
	if r.opts.StepLimit > 0 {
		opts = append(opts, evaluator.WithStepLimit(r.opts.StepLimit))
	}
	rt := evaluator.New(prog, trm.Devices(r.opts.Files), opts...)

	err = rt.Run(ctx)
	if c, ok := r.opts.Files.(interface{ CloseAll() error }); ok {
		if cerr := c.CloseAll(); cerr != nil {
			r.giveError(cerr.Error())
		}
	}
	if err != nil {
		r.giveError(describe(err))
	} else {
		fmt.Fprintln(r.con, infoStyle.Render("Ok"))
	}

	if len(r.opts.Screen) > 0 {
		if serr := saveScreen(trm, r.opts.Screen); serr != nil {
			r.giveError(serr.Error())
		}
	}
	return err
}

func (r *Runner) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return r.in.Text(), true
}

// describe prefixes a runtime error with its line
func describe(err error) string {
	if errors.Is(err, berrors.ErrInputPending) {
		return "INPUT: end of input"
	}
	if l := berrors.Line(err); l > 0 {
		return fmt.Sprintf("%s in line %d", err, l)
	}
	return err.Error()
}

func (r *Runner) giveError(msg string) {
	fmt.Fprintln(r.con, errStyle.Render(msg))
}

func saveScreen(trm *terminal.Terminal, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := trm.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
