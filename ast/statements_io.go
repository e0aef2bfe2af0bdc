package ast

import (
	"bytes"
	"strings"

	"github.com/navionguy/edubasic/token"
)

// PrintItem is one expression in a PRINT list and the separator after it,
// one of ";", "," or "" for the last item
type PrintItem struct {
	Exp Expression
	Sep string
}

// PrintStatement PRINT [items]
type PrintStatement struct {
	Token token.Token
	Items []PrintItem
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) String() string {
	var out bytes.Buffer

	out.WriteString("PRINT")
	for i, it := range ps.Items {
		if i == 0 || it.Exp != nil {
			out.WriteString(" ")
		}
		if it.Exp != nil {
			out.WriteString(it.Exp.String())
		}
		out.WriteString(it.Sep)
	}

	return strings.TrimRight(out.String(), " ")
}

// InputStatement INPUT ["prompt";] var
type InputStatement struct {
	Token  token.Token
	Prompt Expression
	Var    Expression
}

func (is *InputStatement) statementNode()       {}
func (is *InputStatement) TokenLiteral() string { return is.Token.Literal }
func (is *InputStatement) String() string {
	if is.Prompt == nil {
		return "INPUT " + is.Var.String()
	}
	return "INPUT " + is.Prompt.String() + "; " + is.Var.String()
}

// LocateStatement LOCATE row, col
type LocateStatement struct {
	Token token.Token
	Row   Expression
	Col   Expression
}

func (ls *LocateStatement) statementNode()       {}
func (ls *LocateStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LocateStatement) String() string {
	return "LOCATE " + ls.Row.String() + ", " + ls.Col.String()
}

// ColorStatement COLOR fg[, bg]
type ColorStatement struct {
	Token token.Token
	Fg    Expression
	Bg    Expression
}

func (cs *ColorStatement) statementNode()       {}
func (cs *ColorStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ColorStatement) String() string {
	if cs.Bg == nil {
		return "COLOR " + cs.Fg.String()
	}
	return "COLOR " + cs.Fg.String() + ", " + cs.Bg.String()
}

// ClsStatement clears the screen
type ClsStatement struct {
	Token token.Token
}

func (cs *ClsStatement) statementNode()       {}
func (cs *ClsStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ClsStatement) String() string       { return "CLS" }

// ConsoleStatement writes to the host console, not the screen
type ConsoleStatement struct {
	Token token.Token
	Value Expression
}

func (cs *ConsoleStatement) statementNode()       {}
func (cs *ConsoleStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ConsoleStatement) String() string       { return "CONSOLE " + cs.Value.String() }

// HelpStatement HELP [keyword]
type HelpStatement struct {
	Token token.Token
	Topic string
}

func (hs *HelpStatement) statementNode()       {}
func (hs *HelpStatement) TokenLiteral() string { return hs.Token.Literal }
func (hs *HelpStatement) String() string {
	if len(hs.Topic) == 0 {
		return "HELP"
	}
	return "HELP " + hs.Topic
}

// Point is a parenthesised coordinate pair
type Point struct {
	X Expression
	Y Expression
}

func (p *Point) String() string {
	return "(" + p.X.String() + ", " + p.Y.String() + ")"
}

// shapeTail renders the optional WITH and FILLED clauses
func shapeTail(color Expression, filled bool) string {
	lit := ""
	if color != nil {
		lit += " WITH " + color.String()
	}
	if filled {
		lit += " FILLED"
	}
	return lit
}

// PsetStatement PSET (x, y) [WITH c]
type PsetStatement struct {
	Token token.Token
	At    *Point
	Color Expression
}

func (ps *PsetStatement) statementNode()       {}
func (ps *PsetStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PsetStatement) String() string {
	return "PSET " + ps.At.String() + shapeTail(ps.Color, false)
}

// LineStatement LINE FROM (x1, y1) TO (x2, y2) [WITH c]
type LineStatement struct {
	Token token.Token
	From  *Point
	To    *Point
	Color Expression
}

func (ls *LineStatement) statementNode()       {}
func (ls *LineStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *LineStatement) String() string {
	return "LINE FROM " + ls.From.String() + " TO " + ls.To.String() + shapeTail(ls.Color, false)
}

// RectangleStatement RECTANGLE FROM (..) TO (..) [WITH c] [FILLED]
type RectangleStatement struct {
	Token  token.Token
	From   *Point
	To     *Point
	Color  Expression
	Filled bool
}

func (rs *RectangleStatement) statementNode()       {}
func (rs *RectangleStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RectangleStatement) String() string {
	return "RECTANGLE FROM " + rs.From.String() + " TO " + rs.To.String() + shapeTail(rs.Color, rs.Filled)
}

// OvalStatement OVAL AT (x, y) RADII (rx, ry) [WITH c] [FILLED]
type OvalStatement struct {
	Token  token.Token
	Center *Point
	Radii  *Point
	Color  Expression
	Filled bool
}

func (os *OvalStatement) statementNode()       {}
func (os *OvalStatement) TokenLiteral() string { return os.Token.Literal }
func (os *OvalStatement) String() string {
	return "OVAL AT " + os.Center.String() + " RADII " + os.Radii.String() + shapeTail(os.Color, os.Filled)
}

// CircleStatement CIRCLE AT (x, y) RADIUS r [WITH c] [FILLED]
type CircleStatement struct {
	Token  token.Token
	Center *Point
	Radius Expression
	Color  Expression
	Filled bool
}

func (cs *CircleStatement) statementNode()       {}
func (cs *CircleStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CircleStatement) String() string {
	return "CIRCLE AT " + cs.Center.String() + " RADIUS " + cs.Radius.String() + shapeTail(cs.Color, cs.Filled)
}

// TriangleStatement TRIANGLE (..) TO (..) TO (..) [WITH c] [FILLED]
type TriangleStatement struct {
	Token  token.Token
	P1     *Point
	P2     *Point
	P3     *Point
	Color  Expression
	Filled bool
}

func (ts *TriangleStatement) statementNode()       {}
func (ts *TriangleStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *TriangleStatement) String() string {
	return "TRIANGLE " + ts.P1.String() + " TO " + ts.P2.String() + " TO " + ts.P3.String() + shapeTail(ts.Color, ts.Filled)
}

// ArcStatement ARC AT (x, y) RADIUS r ANGLES a TO b [WITH c]
type ArcStatement struct {
	Token  token.Token
	Center *Point
	Radius Expression
	Start  Expression
	End    Expression
	Color  Expression
}

func (as *ArcStatement) statementNode()       {}
func (as *ArcStatement) TokenLiteral() string { return as.Token.Literal }
func (as *ArcStatement) String() string {
	return "ARC AT " + as.Center.String() + " RADIUS " + as.Radius.String() +
		" ANGLES " + as.Start.String() + " TO " + as.End.String() + shapeTail(as.Color, false)
}

// PaintStatement PAINT (x, y) WITH c [BORDER c]
type PaintStatement struct {
	Token  token.Token
	At     *Point
	Color  Expression
	Border Expression
}

func (ps *PaintStatement) statementNode()       {}
func (ps *PaintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PaintStatement) String() string {
	lit := "PAINT " + ps.At.String() + " WITH " + ps.Color.String()
	if ps.Border != nil {
		lit += " BORDER " + ps.Border.String()
	}
	return lit
}

// GetStatement GET arr%[] FROM (x1, y1) TO (x2, y2)
type GetStatement struct {
	Token token.Token
	Array *Identifier
	From  *Point
	To    *Point
}

func (gs *GetStatement) statementNode()       {}
func (gs *GetStatement) TokenLiteral() string { return gs.Token.Literal }
func (gs *GetStatement) String() string {
	return "GET " + gs.Array.String() + " FROM " + gs.From.String() + " TO " + gs.To.String()
}

// PutStatement PUT arr%[] AT (x, y)
type PutStatement struct {
	Token token.Token
	Array *Identifier
	At    *Point
}

func (ps *PutStatement) statementNode()       {}
func (ps *PutStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PutStatement) String() string {
	return "PUT " + ps.Array.String() + " AT " + ps.At.String()
}

// TempoStatement TEMPO bpm
type TempoStatement struct {
	Token token.Token
	Value Expression
}

func (ts *TempoStatement) statementNode()       {}
func (ts *TempoStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *TempoStatement) String() string       { return "TEMPO " + ts.Value.String() }

// VolumeStatement VOLUME level
type VolumeStatement struct {
	Token token.Token
	Value Expression
}

func (vs *VolumeStatement) statementNode()       {}
func (vs *VolumeStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VolumeStatement) String() string       { return "VOLUME " + vs.Value.String() }

// MuteStatement MUTE ON|OFF
type MuteStatement struct {
	Token token.Token
	On    bool
}

func (ms *MuteStatement) statementNode()       {}
func (ms *MuteStatement) TokenLiteral() string { return ms.Token.Literal }
func (ms *MuteStatement) String() string {
	if ms.On {
		return "MUTE ON"
	}
	return "MUTE OFF"
}

// VoiceStatement VOICE n [INSTRUMENT program|name]
type VoiceStatement struct {
	Token      token.Token
	Index      Expression
	Instrument Expression
}

func (vs *VoiceStatement) statementNode()       {}
func (vs *VoiceStatement) TokenLiteral() string { return vs.Token.Literal }
func (vs *VoiceStatement) String() string {
	if vs.Instrument == nil {
		return "VOICE " + vs.Index.String()
	}
	return "VOICE " + vs.Index.String() + " INSTRUMENT " + vs.Instrument.String()
}

// PlayStatement PLAY voice, mml$
type PlayStatement struct {
	Token token.Token
	Voice Expression
	Music Expression
}

func (ps *PlayStatement) statementNode()       {}
func (ps *PlayStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PlayStatement) String() string {
	return "PLAY " + ps.Voice.String() + ", " + ps.Music.String()
}

// OpenStatement OPEN path FOR mode AS handle
type OpenStatement struct {
	Token  token.Token
	Path   Expression
	Mode   string // READ, WRITE, APPEND or READWRITE
	Handle *Identifier
}

func (os *OpenStatement) statementNode()       {}
func (os *OpenStatement) TokenLiteral() string { return os.Token.Literal }
func (os *OpenStatement) String() string {
	return "OPEN " + os.Path.String() + " FOR " + os.Mode + " AS " + os.Handle.String()
}

// CloseStatement CLOSE handle
type CloseStatement struct {
	Token  token.Token
	Handle Expression
}

func (cs *CloseStatement) statementNode()       {}
func (cs *CloseStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CloseStatement) String() string       { return "CLOSE " + cs.Handle.String() }

// ReadFileStatement READFILE var FROM handle
type ReadFileStatement struct {
	Token  token.Token
	Var    Expression
	Handle Expression
}

func (rs *ReadFileStatement) statementNode()       {}
func (rs *ReadFileStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReadFileStatement) String() string {
	return "READFILE " + rs.Var.String() + " FROM " + rs.Handle.String()
}

// WriteFileStatement WRITEFILE value TO handle
type WriteFileStatement struct {
	Token  token.Token
	Value  Expression
	Handle Expression
}

func (ws *WriteFileStatement) statementNode()       {}
func (ws *WriteFileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WriteFileStatement) String() string {
	return "WRITEFILE " + ws.Value.String() + " TO " + ws.Handle.String()
}

// SeekStatement SEEK handle, position
type SeekStatement struct {
	Token    token.Token
	Handle   Expression
	Position Expression
}

func (ss *SeekStatement) statementNode()       {}
func (ss *SeekStatement) TokenLiteral() string { return ss.Token.Literal }
func (ss *SeekStatement) String() string {
	return "SEEK " + ss.Handle.String() + ", " + ss.Position.String()
}

// ListDirStatement LISTDIR arr$[] FROM path
type ListDirStatement struct {
	Token token.Token
	Array *Identifier
	Path  Expression
}

func (ls *ListDirStatement) statementNode()       {}
func (ls *ListDirStatement) TokenLiteral() string { return ls.Token.Literal }
func (ls *ListDirStatement) String() string {
	return "LISTDIR " + ls.Array.String() + " FROM " + ls.Path.String()
}

// FileOpStatement covers the path commands MKDIR, RMDIR and DELETE and
// the two path forms COPY a TO b and MOVE a TO b
type FileOpStatement struct {
	Token token.Token
	Op    string
	Path  Expression
	Dest  Expression // COPY and MOVE only
}

func (fs *FileOpStatement) statementNode()       {}
func (fs *FileOpStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *FileOpStatement) String() string {
	if fs.Dest == nil {
		return fs.Op + " " + fs.Path.String()
	}
	return fs.Op + " " + fs.Path.String() + " TO " + fs.Dest.String()
}

// ArrayOpStatement is PUSH, POP, SHIFT or UNSHIFT.  Value is the pushed
// expression for PUSH and UNSHIFT, and the optional target for POP and SHIFT.
type ArrayOpStatement struct {
	Token token.Token
	Op    string
	Array *Identifier
	Value Expression
}

func (as *ArrayOpStatement) statementNode()       {}
func (as *ArrayOpStatement) TokenLiteral() string { return as.Token.Literal }
func (as *ArrayOpStatement) String() string {
	if as.Value == nil {
		return as.Op + " " + as.Array.String()
	}
	return as.Op + " " + as.Array.String() + ", " + as.Value.String()
}
