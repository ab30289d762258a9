// Package parse builds a shell AST from a token stream.
//
// The grammar is recursive descent:
//
//	script   := list
//	list     := and_or (SEP list)?
//	and_or   := pipeline ((&& | ||) pipeline)*
//	pipeline := '!'? command ('|' command)*
//	command  := subshell | simple
//	subshell := '(' list ')' redirect*
//	simple   := assignment* (WORD (WORD | redirect)*)?
//
// Only structural problems (an unclosed subshell, a redirect with no
// target) are errors; everything word-shaped parses.
package parse

import (
	"fmt"
	"strings"

	"github.com/joyi-ai/bash-to-powershell/lex"
	"mvdan.cc/sh/v3/syntax"
)

// Error is a structural parse error.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

type parser struct {
	toks []lex.Token
	pos  int
}

// The parser bails on structural errors by panicking with *Error, which
// Parse recovers into its error return.
func (p *parser) bail(format string, args ...interface{}) {
	panic(&Error{Msg: fmt.Sprintf(format, args...)})
}

// Parse consumes a token stream produced by lex.Lex and returns the AST.
func Parse(toks []lex.Token) (s *Script, err error) {
	defer func() {
		if v := recover(); v != nil {
			if perr, ok := v.(*Error); ok {
				s, err = nil, perr
				return
			}
			panic(v)
		}
	}()

	p := &parser{toks: toks}
	s = p.script()
	if !p.at(lex.EOF) {
		p.bail("unexpected %q", p.cur().Val)
	}
	return s, nil
}

func (p *parser) cur() lex.Token {
	if p.pos >= len(p.toks) {
		return lex.Token{Kind: lex.EOF, TargetFd: -1}
	}
	return p.toks[p.pos]
}

func (p *parser) at(k lex.Kind) bool { return p.cur().Kind == k }

func (p *parser) next() lex.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) script() *Script {
	s := &Script{}
	for {
		for p.at(lex.Newline) || p.at(lex.Semi) {
			p.next()
		}
		if p.at(lex.EOF) || p.at(lex.RightParen) {
			return s
		}
		st := p.andOr()
		if p.at(lex.Background) {
			p.next()
			markBackground(st)
		}
		s.Stmts = append(s.Stmts, st)
	}
}

// markBackground flags the pipeline a trailing & applies to. After a
// logical chain that is its rightmost pipeline.
func markBackground(st Stmt) {
	switch st := st.(type) {
	case *Pipeline:
		st.Background = true
	case *LogicalExpr:
		markBackground(st.Right)
	}
}

func (p *parser) andOr() Stmt {
	var left Stmt = p.pipelineOrAssignments()
	for {
		var op LogicalOp
		switch {
		case p.at(lex.And):
			op = OpAnd
		case p.at(lex.Or):
			op = OpOr
		default:
			return left
		}
		p.next()
		left = &LogicalExpr{Op: op, Left: left, Right: p.pipelineOrAssignments()}
	}
}

// pipelineOrAssignments lifts a bare VAR=value run with no command word to
// an AssignmentStatement.
func (p *parser) pipelineOrAssignments() Stmt {
	pl := p.pipeline()
	if len(pl.Commands) == 1 && !pl.Negated {
		if cmd, ok := pl.Commands[0].(*SimpleCommand); ok {
			if cmd.Name == nil && len(cmd.Redirects) == 0 && len(cmd.Assignments) > 0 {
				return &AssignmentStatement{Assignments: cmd.Assignments}
			}
		}
	}
	return pl
}

func (p *parser) pipeline() *Pipeline {
	pl := &Pipeline{}
	if t := p.cur(); t.Kind == lex.Word && t.Val == "!" {
		pl.Negated = true
		p.next()
	}
	pl.Commands = append(pl.Commands, p.command())
	for p.at(lex.Pipe) {
		p.next()
		pl.Commands = append(pl.Commands, p.command())
	}
	return pl
}

func (p *parser) command() Command {
	if p.at(lex.LeftParen) {
		return p.subshell()
	}
	return p.simple()
}

func (p *parser) subshell() *Subshell {
	p.next()
	body := p.script()
	if !p.at(lex.RightParen) {
		p.bail("missing ) to close subshell")
	}
	p.next()
	sub := &Subshell{Body: body}
	for p.atRedirect() {
		sub.Redirects = append(sub.Redirects, p.redirect())
	}
	return sub
}

func (p *parser) simple() *SimpleCommand {
	cmd := &SimpleCommand{}
	for cmd.Name == nil && p.atAssignment() {
		cmd.Assignments = append(cmd.Assignments, p.assignment())
	}
	for {
		switch {
		case p.atRedirect():
			cmd.Redirects = append(cmd.Redirects, p.redirect())
		case p.atWordToken():
			w := p.word()
			if cmd.Name == nil {
				cmd.Name = w
			} else {
				cmd.Args = append(cmd.Args, w)
			}
		default:
			if cmd.Name == nil && len(cmd.Assignments) == 0 && len(cmd.Redirects) == 0 {
				p.bail("unexpected %q", p.cur().Val)
			}
			return cmd
		}
	}
}

func (p *parser) atWordToken() bool {
	switch p.cur().Kind {
	case lex.Word, lex.SingleQuoted, lex.DoubleQuoted, lex.DollarSingleQuoted:
		return true
	}
	return false
}

// atAssignment reports whether the current token starts a NAME=value word.
func (p *parser) atAssignment() bool {
	t := p.cur()
	if t.Kind != lex.Word || t.Adj {
		return false
	}
	eq := strings.IndexByte(t.Val, '=')
	if eq <= 0 {
		return false
	}
	return syntax.ValidName(t.Val[:eq])
}

func (p *parser) assignment() Assignment {
	t := p.next()
	eq := strings.IndexByte(t.Val, '=')
	w := &Word{}
	if rest := t.Val[eq+1:]; rest != "" {
		w.Parts = append(w.Parts, scanUnquoted(rest)...)
	}
	p.adjacentParts(w)
	return Assignment{Name: t.Val[:eq], Value: w}
}

// word assembles one Word from the current token plus any segments glued to
// it.
func (p *parser) word() *Word {
	w := &Word{Parts: tokenParts(p.next())}
	p.adjacentParts(w)
	return w
}

func (p *parser) adjacentParts(w *Word) {
	for p.atWordToken() && p.cur().Adj {
		w.Parts = append(w.Parts, tokenParts(p.next())...)
	}
}

func tokenParts(t lex.Token) []WordPart {
	switch t.Kind {
	case lex.SingleQuoted:
		return []WordPart{&Literal{Val: t.Val, Quoting: Single}}
	case lex.DollarSingleQuoted:
		return []WordPart{&Literal{Val: t.Val, Quoting: DollarSingle}}
	case lex.DoubleQuoted:
		return scanDouble(t.Val)
	default:
		return scanUnquoted(t.Val)
	}
}

func (p *parser) atRedirect() bool {
	switch p.cur().Kind {
	case lex.RedirectOut, lex.RedirectAppend, lex.RedirectIn, lex.HereDoc, lex.HereString:
		return true
	}
	return false
}

func (p *parser) redirect() Redirect {
	t := p.next()
	switch t.Kind {
	case lex.RedirectOut, lex.RedirectAppend:
		op := RedirOut
		if t.Kind == lex.RedirectAppend {
			op = RedirAppend
		}
		if t.TargetFd >= 0 {
			return Redirect{
				Op:       op,
				Fd:       t.Fd,
				Target:   LitWord(fmt.Sprintf("&%d", t.TargetFd)),
				TargetFd: t.TargetFd,
			}
		}
		return Redirect{Op: op, Fd: t.Fd, Target: p.target(op.String()), TargetFd: -1}
	case lex.RedirectIn:
		return Redirect{Op: RedirIn, Fd: t.Fd, Target: p.target("<"), TargetFd: -1}
	case lex.HereString:
		return Redirect{Op: RedirHereString, Fd: t.Fd, Target: p.target("<<<"), TargetFd: -1}
	default: // lex.HereDoc
		var w *Word
		if t.Fd == 0 {
			// Quoted delimiter: the body is verbatim.
			w = &Word{Parts: []WordPart{&Literal{Val: t.Val, Quoting: Single}}}
		} else {
			w = &Word{Parts: scanDouble(t.Val)}
		}
		return Redirect{Op: RedirHereString, Fd: 0, Target: w, TargetFd: -1}
	}
}

func (p *parser) target(op string) *Word {
	if !p.atWordToken() {
		p.bail("missing target after %s", op)
	}
	return p.word()
}
