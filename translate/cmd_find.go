package translate

// find. Its expression language is not GNU flags, so the arguments are
// walked by hand. The native path uses fd for the common
// name/type/depth subset; anything with an action (-delete, -exec) or
// -mtime drops to Get-ChildItem. Other predicates are warned about and
// ignored on either path.

import (
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

type findExpr struct {
	paths    []*parse.Word
	name     *parse.Word
	iname    bool
	typ      string // "f", "d" or ""
	maxDepth string
	mtime    string
	delete   bool
	exec     []*parse.Word
	unknown  []string
}

func findCmd(cmd *parse.SimpleCommand, c *context) string {
	e := parseFind(cmd.Args)
	for _, u := range e.unknown {
		c.warnf("find: unsupported predicate %s ignored", u)
	}

	simple := !e.delete && e.exec == nil && e.mtime == ""
	if c.native && c.tools.Fd && simple {
		return findNative(c, e)
	}
	c.tookFallback()
	return findFallback(c, e)
}

func parseFind(args []*parse.Word) *findExpr {
	e := &findExpr{}
	for i := 0; i < len(args); i++ {
		lit, ok := args[i].Lit()
		if !ok || !strings.HasPrefix(lit, "-") {
			e.paths = append(e.paths, args[i])
			continue
		}
		value := func() *parse.Word {
			if i+1 < len(args) {
				i++
				return args[i]
			}
			return nil
		}
		switch lit {
		case "-name":
			e.name = value()
		case "-iname":
			e.name = value()
			e.iname = true
		case "-type":
			if w := value(); w != nil {
				e.typ, _ = w.Lit()
			}
		case "-maxdepth":
			if w := value(); w != nil {
				e.maxDepth, _ = w.Lit()
			}
		case "-mtime":
			if w := value(); w != nil {
				e.mtime, _ = w.Lit()
			}
		case "-delete":
			e.delete = true
		case "-exec":
			for i+1 < len(args) {
				i++
				if lit, _ := args[i].Lit(); lit == ";" || lit == "+" {
					break
				}
				e.exec = append(e.exec, args[i])
			}
		case "-print":
			// the default
		default:
			e.unknown = append(e.unknown, lit)
			// Predicates take one operand; skip it so it doesn't become
			// a path.
			if i+1 < len(args) {
				if next, ok := args[i+1].Lit(); ok && !strings.HasPrefix(next, "-") {
					i++
				}
			}
		}
	}
	return e
}

func findNative(c *context, e *findExpr) string {
	var b strings.Builder
	b.WriteString("fd")
	if e.name != nil {
		b.WriteString(" -g " + c.singleQuoted(e.name))
	}
	switch e.typ {
	case "f":
		b.WriteString(" -t f")
	case "d":
		b.WriteString(" -t d")
	}
	if e.maxDepth != "" {
		b.WriteString(" --max-depth " + e.maxDepth)
	}
	for _, p := range e.paths {
		b.WriteString(" " + c.singleQuoted(p))
	}
	return b.String()
}

func findFallback(c *context, e *findExpr) string {
	var b strings.Builder
	b.WriteString("Get-ChildItem")
	if len(e.paths) > 0 {
		b.WriteString(" -Path " + c.files(e.paths))
	}
	b.WriteString(" -Recurse")
	if e.name != nil {
		b.WriteString(" -Filter " + c.singleQuoted(e.name))
	}
	switch e.typ {
	case "f":
		b.WriteString(" -File")
	case "d":
		b.WriteString(" -Directory")
	}
	if e.maxDepth != "" {
		b.WriteString(" -Depth " + e.maxDepth)
	}
	if e.mtime != "" {
		if cond, ok := mtimeFilter(e.mtime); ok {
			b.WriteString(" | Where-Object { " + cond + " }")
		} else {
			c.warnf("find: -mtime %s not translated", e.mtime)
		}
	}

	switch {
	case e.delete:
		b.WriteString(" | Remove-Item -Recurse -Force")
	case e.exec != nil:
		b.WriteString(" | ForEach-Object { " + c.execBody(e.exec) + " }")
	default:
		b.WriteString(" | Select-Object -ExpandProperty FullName")
	}
	return b.String()
}

// mtimeFilter maps find's +N/-N day expressions.
func mtimeFilter(v string) (string, bool) {
	switch {
	case strings.HasPrefix(v, "+"):
		return "$_.LastWriteTime -lt (Get-Date).AddDays(-" + v[1:] + ")", true
	case strings.HasPrefix(v, "-"):
		return "$_.LastWriteTime -gt (Get-Date).AddDays(-" + v[1:] + ")", true
	}
	return "", false
}

// execBody rebuilds the -exec command with {} replaced by the piped path.
func (c *context) execBody(words []*parse.Word) string {
	outs := make([]string, 0, len(words))
	for i, w := range words {
		if lit, ok := w.Lit(); ok && lit == "{}" {
			outs = append(outs, "$_.FullName")
			continue
		}
		if i == 0 {
			outs = append(outs, c.commandName(w))
			continue
		}
		outs = append(outs, c.word(w))
	}
	return strings.Join(outs, " ")
}
