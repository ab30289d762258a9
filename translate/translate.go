// Package translate turns a bash AST into PowerShell text.
//
// The package also carries the top-level entry points: Transpile wires
// lex→parse→translate and converts the one class of hard failure (a
// structural parse error) into an error comment, so callers never see a
// panic or an error value from a command string.
package translate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joyi-ai/bash-to-powershell/lex"
	"github.com/joyi-ai/bash-to-powershell/parse"
)

// Options configures one translation.
type Options struct {
	// Tools overrides the PATH probe.
	Tools *Tools
	// NoNativeTools forces the cmdlet fallback path even when rg, fd or
	// curl.exe are available.
	NoNativeTools bool
	// PSVersion is "5.1" (default) or "7". Reserved: the current emitter
	// targets the 5.1 baseline with forward-compatible syntax.
	PSVersion string
}

// Result is the output of TranspileWithMeta.
type Result struct {
	PowerShell    string
	Warnings      []string
	Unsupported   []string
	UsedFallbacks bool
}

// context is the mutable scratchpad threaded through one translation. One
// instance per Transpile call; different calls share nothing.
type context struct {
	tools         Tools
	native        bool
	psVersion     string
	warnings      []string
	unsupported   []string
	usedFallbacks bool
}

func newContext(opts *Options) *context {
	if opts == nil {
		opts = &Options{}
	}
	c := &context{
		native:    !opts.NoNativeTools,
		psVersion: opts.PSVersion,
	}
	if c.psVersion == "" {
		c.psVersion = "5.1"
	}
	if opts.Tools != nil {
		c.tools = *opts.Tools
	} else {
		c.tools = DetectTools()
	}
	return c
}

func (c *context) warnf(format string, args ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

func (c *context) tookFallback() {
	c.usedFallbacks = true
}

func (c *context) result(ps string) *Result {
	return &Result{
		PowerShell:    ps,
		Warnings:      c.warnings,
		Unsupported:   c.unsupported,
		UsedFallbacks: c.usedFallbacks,
	}
}

// Transpile converts one bash command string to PowerShell text. It never
// fails: parse errors come back as an error comment.
func Transpile(bash string, opts *Options) string {
	return TranspileWithMeta(bash, opts).PowerShell
}

// TranspileWithMeta is Transpile plus the warning and fallback bookkeeping
// accumulated along the way.
func TranspileWithMeta(bash string, opts *Options) *Result {
	return transpileJoin(bash, opts, "; ")
}

// TranspileScript behaves like TranspileWithMeta but joins statements with
// newlines, for file-at-a-time use.
func TranspileScript(bash string, opts *Options) *Result {
	return transpileJoin(bash, opts, "\n")
}

func transpileJoin(bash string, opts *Options, sep string) *Result {
	c := newContext(opts)
	if strings.TrimSpace(bash) == "" {
		return c.result("")
	}
	script, err := parse.Parse(lex.Lex(bash))
	if err != nil {
		c.warnf("Transpilation failed: %v", err)
		c.unsupported = append(c.unsupported, bash)
		return c.result(errorComment(bash, err))
	}
	return c.result(c.scriptSep(script, sep))
}

func (c *context) script(s *parse.Script) string {
	return c.scriptSep(s, "; ")
}

func (c *context) scriptSep(s *parse.Script, sep string) string {
	outs := make([]string, 0, len(s.Stmts))
	for _, st := range s.Stmts {
		outs = append(outs, c.stmt(st))
	}
	return strings.Join(outs, sep)
}

func (c *context) stmt(st parse.Stmt) string {
	switch st := st.(type) {
	case *parse.Pipeline:
		return c.pipeline(st)
	case *parse.LogicalExpr:
		return c.logical(st)
	case *parse.AssignmentStatement:
		return c.assignments(st.Assignments)
	}
	return ""
}

func (c *context) logical(e *parse.LogicalExpr) string {
	left := c.stmt(e.Left)
	right := c.stmt(e.Right)
	switch e.Op {
	case parse.OpAnd:
		return fmt.Sprintf("%s; if ($?) { %s }", left, right)
	case parse.OpOr:
		return fmt.Sprintf("%s; if (-not $?) { %s }", left, right)
	}
	return left + "; " + right
}

func (c *context) pipeline(pl *parse.Pipeline) string {
	segs := make([]string, 0, len(pl.Commands))
	for _, cmd := range pl.Commands {
		segs = append(segs, c.command(cmd))
	}
	out := strings.Join(segs, " | ")
	if pl.Negated {
		out = "!(" + out + ")"
	}
	if pl.Background {
		out = "Start-Job -ScriptBlock { " + out + " }"
	}
	return out
}

func (c *context) command(cmd parse.Command) string {
	switch cmd := cmd.(type) {
	case *parse.SimpleCommand:
		return c.simpleCommand(cmd)
	case *parse.Subshell:
		pre, post := c.redirects(cmd.Redirects)
		return pre + "& { " + c.script(cmd.Body) + " }" + post
	}
	return ""
}

func (c *context) simpleCommand(cmd *parse.SimpleCommand) string {
	pre, post := c.redirects(cmd.Redirects)

	var prefix strings.Builder
	for _, a := range cmd.Assignments {
		prefix.WriteString(c.assignment(a))
		prefix.WriteString("; ")
	}

	if cmd.Name == nil {
		// Redirects alone: `> file` truncates in bash, $null does in
		// PowerShell.
		return prefix.String() + pre + "$null" + post
	}

	var out string
	if name, ok := cmd.Name.Lit(); ok {
		if tr, found := registry[name]; found {
			out = tr(cmd, c)
		} else {
			out = c.passthrough(cmd)
		}
	} else {
		out = c.passthrough(cmd)
	}

	return prefix.String() + pre + out + post
}

// assignments lowers a bare VAR=value run.
func (c *context) assignments(as []parse.Assignment) string {
	outs := make([]string, 0, len(as))
	for _, a := range as {
		outs = append(outs, c.assignment(a))
	}
	return strings.Join(outs, "; ")
}

func (c *context) assignment(a parse.Assignment) string {
	return "$env:" + a.Name + " = " + c.word(a.Value)
}

// redirects lowers a redirect list into a pipe prefix (input) and an
// operator suffix (output).
func (c *context) redirects(rs []parse.Redirect) (prefix, suffix string) {
	for _, r := range rs {
		switch r.Op {
		case parse.RedirHereString:
			prefix += "(" + c.word(r.Target) + ") | "
		case parse.RedirIn:
			prefix += "Get-Content " + c.word(r.Target) + " | "
		default:
			suffix += c.outputRedirect(r)
		}
	}
	return prefix, suffix
}

func (c *context) outputRedirect(r parse.Redirect) string {
	if r.TargetFd >= 0 {
		// 2>&1 passes through: the syntax is shared.
		return fmt.Sprintf(" %d>&%d", r.Fd, r.TargetFd)
	}
	op := ">"
	if r.Op == parse.RedirAppend {
		op = ">>"
	}
	fd := ""
	if r.Fd != 1 {
		fd = strconv.Itoa(r.Fd)
	}
	if target, ok := r.Target.Lit(); ok {
		switch target {
		case "/dev/null":
			return " " + fd + op + "$null"
		case "/dev/stdout", "/dev/stderr":
			return " " + fd + op + " CON"
		}
	}
	return " " + fd + op + " " + c.word(r.Target)
}
