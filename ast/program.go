package ast

import (
	"bytes"
	"fmt"
	"strings"
)

type codeLine struct {
	lineNum int // source line the statement came from
	stmt    Statement
}

// Program holds the root of the AST, a flat list of statements addressed
// by a program counter plus the jump targets found while loading
type Program struct {
	lines  []codeLine
	labels map[string]int // upper cased label name to statement index
	subs   map[string]int // upper cased SUB name to index of its SUB statement
}

// NewProgram returns an empty program ready for statements
func NewProgram() *Program {
	p := &Program{}
	p.New()
	return p
}

// New resets internal state
func (p *Program) New() {
	p.lines = nil
	p.labels = map[string]int{}
	p.subs = map[string]int{}
}

// TokenLiteral returns string representation of the program
func (p *Program) TokenLiteral() string { return "EduBASIC" }

// String renders the program back to source, one statement per line
func (p *Program) String() string {
	var out bytes.Buffer

	for i, cl := range p.lines {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(cl.stmt.String())
	}

	return out.String()
}

// AddStatement appends a statement found on source line lineNum.
// LABEL and SUB statements are indexed as they arrive, a name
// declared twice is an error.
func (p *Program) AddStatement(lineNum int, stmt Statement) error {
	if p.labels == nil {
		p.New()
	}
	index := len(p.lines)

	switch st := stmt.(type) {
	case *LabelStatement:
		key := strings.ToUpper(st.Name)
		if _, dup := p.labels[key]; dup {
			return fmt.Errorf("LABEL: duplicate label %s", st.Name)
		}
		p.labels[key] = index
	case *SubStatement:
		key := strings.ToUpper(st.Name)
		if _, dup := p.subs[key]; dup {
			return fmt.Errorf("SUB: duplicate SUB %s", st.Name)
		}
		p.subs[key] = index
	}

	p.lines = append(p.lines, codeLine{lineNum: lineNum, stmt: stmt})
	return nil
}

// Len tells caller how many statements I have
func (p *Program) Len() int {
	return len(p.lines)
}

// Statement returns the statement at index, nil when out of range
func (p *Program) Statement(index int) Statement {
	if index < 0 || index >= len(p.lines) {
		return nil
	}
	return p.lines[index].stmt
}

// LineNum returns the source line of the statement at index, zero if none
func (p *Program) LineNum(index int) int {
	if index < 0 || index >= len(p.lines) {
		return 0
	}
	return p.lines[index].lineNum
}

// MaxLineNum finds the highest source line currently in the program
func (p *Program) MaxLineNum() int {
	if len(p.lines) == 0 {
		return 0
	}
	return p.lines[len(p.lines)-1].lineNum
}

// Label finds the statement index of a LABEL, case insensitive
func (p *Program) Label(name string) (int, bool) {
	i, ok := p.labels[strings.ToUpper(name)]
	return i, ok
}

// Sub finds the statement index of a SUB definition, case insensitive
func (p *Program) Sub(name string) (int, bool) {
	i, ok := p.subs[strings.ToUpper(name)]
	return i, ok
}
