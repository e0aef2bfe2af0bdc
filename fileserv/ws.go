package fileserv

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/navionguy/edubasic/berrors"
	"github.com/navionguy/edubasic/logger"
)

// message types on the /ws connection
const (
	msgRun     = "run"     // client: start a program
	msgInput   = "input"   // client: a line for INPUT, server: waiting for one
	msgStart   = "start"   // server: run id
	msgOutput  = "output"  // server: program text
	msgConsole = "console" // server: console line
	msgEnd     = "end"     // server: program finished
)

type wsMessage struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	Text   string `json:"text,omitempty"`
	Source string `json:"source,omitempty"`
	Volume string `json:"volume,omitempty"`
	Error  string `json:"error,omitempty"`
	Line   int    `json:"line,omitempty"`
}

// jsonWriter is the sending half of a websocket connection
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// send writes one message, a client that went away is only logged
func send(conn jsonWriter, msg wsMessage) error {
	err := conn.WriteJSON(msg)
	if err != nil {
		logger.Debug(logger.AreaServer, "websocket write %s: %s", msg.Type, err)
	}
	return err
}

// wsWriter forwards everything written to it as one message
type wsWriter struct {
	conn jsonWriter
	kind string
}

func (w *wsWriter) Write(p []byte) (int, error) {
	if err := send(w.conn, wsMessage{Type: w.kind, Text: string(p)}); err != nil {
		return 0, err
	}
	return len(p), nil
}

// streamProgram runs one program per connection.  The program is started by
// a run message, output is sent as it happens and INPUT waits for the client.
func (s *Server) streamProgram(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn(logger.AreaServer, "websocket upgrade: %s", err)
		return
	}
	defer conn.Close()

	var start wsMessage
	if err := conn.ReadJSON(&start); err != nil {
		return
	}
	if start.Type != msgRun {
		send(conn, wsMessage{Type: msgEnd, Error: "expected a run message"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	lines := make(chan string)
	go func() {
		// a closed connection stops the program
		defer cancel()
		for {
			var msg wsMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debug(logger.AreaServer, "websocket read: %s", err)
				}
				return
			}
			if msg.Type != msgInput {
				continue
			}
			select {
			case lines <- msg.Text:
			case <-ctx.Done():
				return
			}
		}
	}()

	id := uuid.NewString()
	send(conn, wsMessage{Type: msgStart, ID: id})

	input := func() (string, bool) {
		if err := send(conn, wsMessage{Type: msgInput, ID: id}); err != nil {
			return "", false
		}
		select {
		case l := <-lines:
			return l, true
		case <-ctx.Done():
			return "", false
		}
	}

	req := RunRequest{Source: start.Source, Volume: start.Volume}
	out := &wsWriter{conn: conn, kind: msgOutput}
	con := &wsWriter{conn: conn, kind: msgConsole}

	end := wsMessage{Type: msgEnd, ID: id}
	if err := s.execute(ctx, id, req, out, con, input); err != nil {
		end.Error = errorText(err)
		end.Line = berrors.Line(err)
	}
	send(conn, end)
}
