package fileserv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/evaluator"
	"github.com/navionguy/edubasic/logger"
	"github.com/navionguy/edubasic/object"
	"github.com/navionguy/edubasic/parser"
	"github.com/navionguy/edubasic/terminal"
)

// largest program body accepted by /run
const maxSource = 1 << 20

// RunRequest is the body of POST /run
type RunRequest struct {
	Source string   `json:"source"`
	Volume string   `json:"volume,omitempty"`
	Input  []string `json:"input,omitempty"`
}

// RunResult reports what a program printed and how it ended
type RunResult struct {
	ID      string `json:"id"`
	Output  string `json:"output"`
	Console string `json:"console"`
	Error   string `json:"error,omitempty"`
	Line    int    `json:"line,omitempty"`
}

func (s *Server) runProgram(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSource)).Decode(&req); err != nil {
		http.Error(w, "bad run request", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	res := RunResult{ID: uuid.NewString()}
	var out, con bytes.Buffer
	err := s.execute(ctx, res.ID, req, &out, &con, queuedInput(req.Input))

	res.Output = out.String()
	res.Console = con.String()
	if err != nil {
		res.Error = errorText(err)
		res.Line = berrors.Line(err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// execute parses and runs one program to its end
func (s *Server) execute(ctx context.Context, id string, req RunRequest, out, con io.Writer, input evaluator.InputFunc) error {
	prog, err := parser.ParseProgram(req.Source)
	if err != nil {
		logger.Info(logger.AreaServer, "run %s: %s", id, err)
		return err
	}

	var fs object.FileSystem
	if s.store != nil && len(req.Volume) > 0 {
		vol := s.store.Volume(req.Volume)
		defer vol.CloseAll()
		fs = vol
	}

	trm := terminal.New(out, con, 0, 0)
	rt := evaluator.New(prog, trm.Devices(fs),
		evaluator.WithStepLimit(s.stepLimit),
		evaluator.WithInput(input))

	logger.Info(logger.AreaServer, "run %s: %d statements", id, prog.Len())
	err = rt.Run(ctx)
	if err != nil {
		logger.Info(logger.AreaServer, "run %s ended: %s", id, err)
	}
	return err
}

// queuedInput answers INPUT from a fixed list of lines
func queuedInput(lines []string) evaluator.InputFunc {
	return func() (string, bool) {
		if len(lines) == 0 {
			return "", false
		}
		l := lines[0]
		lines = lines[1:]
		return l, true
	}
}

func errorText(err error) string {
	var pe *berrors.ParseError
	if errors.As(err, &pe) {
		return pe.Msg
	}
	return err.Error()
}
