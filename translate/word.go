package translate

// Word emission: bash expansion semantics rebuilt in PowerShell's quoting
// model. The quoting tag on each literal decides its escaping; variables
// go through the mapping table; command substitutions recursively reuse
// the whole pipeline.

import (
	"fmt"
	"strings"

	"github.com/joyi-ai/bash-to-powershell/lex"
	"github.com/joyi-ai/bash-to-powershell/parse"
)

// envVars maps well-known bash environment variables onto their Windows
// counterparts. Anything not listed resolves to $env:NAME.
var envVars = map[string]string{
	"HOME":     "$env:USERPROFILE",
	"USER":     "$env:USERNAME",
	"SHELL":    "$env:ComSpec",
	"TMPDIR":   "$env:TEMP",
	"HOSTNAME": "$env:COMPUTERNAME",
}

// specialVars maps bash special variables onto PowerShell expressions.
var specialVars = map[string]string{
	"?": "$LASTEXITCODE",
	"$": "$PID",
	"!": "$PID",
	"#": "$args.Count",
	"@": "$args",
	"0": "$MyInvocation.MyCommand.Name",
}

// safeUnquoted holds the characters a bare argument may contain without
// needing quotes in PowerShell.
var safeUnquoted [256]bool

func init() {
	for c := byte('a'); c <= 'z'; c++ {
		safeUnquoted[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		safeUnquoted[c] = true
	}
	for c := byte('0'); c <= '9'; c++ {
		safeUnquoted[c] = true
	}
	for _, c := range []byte("_./:-*?=@%") {
		safeUnquoted[c] = true
	}
}

func isSafeUnquoted(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !safeUnquoted[s[i]] {
			return false
		}
	}
	return true
}

// word renders one Word as a PowerShell expression or bare argument.
func (c *context) word(w *parse.Word) string {
	if w == nil || len(w.Parts) == 0 {
		return "''"
	}
	if len(w.Parts) == 1 {
		if lit, ok := w.Parts[0].(*parse.Literal); ok && lit.Quoting == parse.Unquoted {
			if expr, ok := rewritePath(lit.Val); ok {
				return expr
			}
		}
		return c.part(w.Parts[0])
	}
	if interpolatable(w.Parts) {
		return c.interpolated(w.Parts)
	}
	rendered := make([]string, 0, len(w.Parts))
	for _, p := range w.Parts {
		rendered = append(rendered, c.part(p))
	}
	return "(" + strings.Join(rendered, " + ") + ")"
}

func interpolatable(parts []parse.WordPart) bool {
	for _, p := range parts {
		switch p.(type) {
		case *parse.Literal, *parse.Variable, *parse.CmdSubst:
		default:
			return false
		}
	}
	return true
}

// part renders a single word part standing alone.
func (c *context) part(p parse.WordPart) string {
	switch p := p.(type) {
	case *parse.Literal:
		return c.literal(p)
	case *parse.Variable:
		return c.variable(p)
	case *parse.CmdSubst:
		return c.cmdSubst(p)
	case *parse.Glob:
		return p.Pattern
	}
	return "''"
}

func (c *context) literal(l *parse.Literal) string {
	switch l.Quoting {
	case parse.Unquoted:
		if l.Val == "" {
			return "''"
		}
		switch l.Val {
		case "$null", "$true", "$false":
			return l.Val
		}
		if isSafeUnquoted(l.Val) {
			return l.Val
		}
		return psSingleQuote(l.Val)
	case parse.Single:
		return psSingleQuote(l.Val)
	case parse.Double:
		return `"` + psDoubleEscape(l.Val) + `"`
	default: // parse.DollarSingle
		if hasControl(l.Val) {
			return `"` + psControlEscape(l.Val) + `"`
		}
		return psSingleQuote(l.Val)
	}
}

// interpolated renders a multi-part word as one PowerShell double-quoted
// string.
func (c *context) interpolated(parts []parse.WordPart) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, p := range parts {
		switch p := p.(type) {
		case *parse.Literal:
			if p.Quoting == parse.DollarSingle && hasControl(p.Val) {
				b.WriteString(psControlEscape(p.Val))
			} else {
				b.WriteString(psDoubleEscape(p.Val))
			}
		case *parse.Variable:
			b.WriteString(embedVariable(c.variable(p)))
		case *parse.CmdSubst:
			b.WriteString("$(" + c.cmdSubstBody(p) + ")")
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (c *context) variable(v *parse.Variable) string {
	if expr, ok := envVars[v.Name]; ok {
		return expr
	}
	if expr, ok := specialVars[v.Name]; ok {
		return expr
	}
	switch v.Name {
	case "PWD":
		return "$PWD"
	case "OLDPWD":
		return "$OLDPWD"
	case "RANDOM":
		return "(Get-Random)"
	}
	if len(v.Name) == 1 && v.Name[0] >= '1' && v.Name[0] <= '9' {
		return fmt.Sprintf("$args[%d]", v.Name[0]-'1')
	}
	if v.Braced {
		return "${env:" + v.Name + "}"
	}
	return "$env:" + v.Name
}

// embedVariable adapts a mapped variable expression for interpolation
// inside a double-quoted string.
func embedVariable(expr string) string {
	if strings.HasPrefix(expr, "${") {
		return expr
	}
	if strings.HasPrefix(expr, "(") {
		return "$" + expr
	}
	if strings.HasPrefix(expr, "$") && !strings.ContainsAny(expr[1:], "[].") {
		return expr
	}
	return "$(" + expr + ")"
}

func (c *context) cmdSubst(cs *parse.CmdSubst) string {
	return "$(" + c.cmdSubstBody(cs) + ")"
}

// cmdSubstBody re-lexes and translates the inner command in a fresh
// context that shares only the tool record; warnings aggregate upward. A
// parse failure keeps the raw text and warns.
func (c *context) cmdSubstBody(cs *parse.CmdSubst) string {
	sub := &context{tools: c.tools, native: c.native, psVersion: c.psVersion}
	script, err := parse.Parse(lex.Lex(cs.Command))
	if err != nil {
		c.warnf("could not translate command substitution: %v", err)
		return cs.Command
	}
	out := sub.script(script)
	c.warnings = append(c.warnings, sub.warnings...)
	c.unsupported = append(c.unsupported, sub.unsupported...)
	if sub.usedFallbacks {
		c.usedFallbacks = true
	}
	return out
}

// passthrough is the default for unregistered commands: the name stays
// verbatim and every argument is word-translated. Agents lean on this for
// git, npm, node and anything else on PATH.
func (c *context) passthrough(cmd *parse.SimpleCommand) string {
	parts := make([]string, 0, 1+len(cmd.Args))
	parts = append(parts, c.commandName(cmd.Name))
	for _, a := range cmd.Args {
		parts = append(parts, c.word(a))
	}
	return strings.Join(parts, " ")
}

// commandName renders the name word; a quoted rendering needs the call
// operator in front.
func (c *context) commandName(w *parse.Word) string {
	out := c.word(w)
	if strings.HasPrefix(out, "'") || strings.HasPrefix(out, `"`) {
		return "& " + out
	}
	return out
}

// rewritePath maps the POSIX path shortcuts onto their Windows homes.
// Only whole unquoted literals qualify; "~/x" inside quotes stays as is,
// matching bash.
func rewritePath(val string) (string, bool) {
	var root, rest string
	switch {
	case val == "~":
		return "$env:USERPROFILE", true
	case val == "/tmp", val == "/tmp/":
		return "$env:TEMP", true
	case strings.HasPrefix(val, "~/"):
		root, rest = "$env:USERPROFILE", val[2:]
	case strings.HasPrefix(val, "/tmp/"):
		root, rest = "$env:TEMP", val[5:]
	default:
		return "", false
	}
	rest = strings.ReplaceAll(rest, "/", `\`)
	if isSafeUnquotedPath(rest) {
		return root + `\` + rest, true
	}
	return `"` + root + `\` + psDoubleEscape(rest) + `"`, true
}

func isSafeUnquotedPath(s string) bool {
	for i := 0; i < len(s); i++ {
		if !safeUnquoted[s[i]] && s[i] != '\\' {
			return false
		}
	}
	return s != ""
}

// psSingleQuote wraps s in PowerShell single quotes, doubling embedded
// quotes.
func psSingleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// psDoubleEscape escapes the characters PowerShell expands inside double
// quotes.
func psDoubleEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '`', '$', '"':
			b.WriteByte('`')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// psControlEscape renders $'…' content whose control bytes need backtick
// escapes inside a double-quoted string.
func psControlEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '`', '$', '"':
			b.WriteByte('`')
			b.WriteByte(c)
		case '\n':
			b.WriteString("`n")
		case '\r':
			b.WriteString("`r")
		case '\t':
			b.WriteString("`t")
		case 0:
			b.WriteString("`0")
		case 7:
			b.WriteString("`a")
		case 8:
			b.WriteString("`b")
		case 27:
			b.WriteString("`e")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func hasControl(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return true
		}
	}
	return false
}
