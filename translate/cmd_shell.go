package translate

// Shell builtins and session commands: cd, pwd, echo, printf, export,
// unset, env, true, false, date, sleep, whoami, hostname, uname,
// history, exit, source, nohup, sudo, chmod, clear, mktemp.

import (
	"strconv"
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

func cdCmd(cmd *parse.SimpleCommand, c *context) string {
	if len(cmd.Args) == 0 {
		return "Set-Location $env:USERPROFILE"
	}
	if lit, ok := cmd.Args[0].Lit(); ok && lit == "-" {
		if c.psVersion != "7" {
			c.warnf("cd -: requires PowerShell 6.2 or newer")
		}
		return "Set-Location -"
	}
	return "Set-Location " + c.word(cmd.Args[0])
}

func pwdCmd(cmd *parse.SimpleCommand, c *context) string {
	return "Get-Location | Select-Object -ExpandProperty Path"
}

var echoFlags = []flagSpec{
	{short: 'n'},
	{short: 'e'},
	{short: 'E'},
}

func echoCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, echoFlags)
	merged := mergeEchoArgs(a.positional)
	if a.has("e") {
		expandEchoEscapes(merged)
	}
	out := c.word(merged)
	if a.has("n") {
		return "Write-Host -NoNewline " + out
	}
	return "Write-Output " + out
}

// mergeEchoArgs joins the argument words with spaces into one word so the
// output is a single line, the way echo prints it.
func mergeEchoArgs(args []*parse.Word) *parse.Word {
	if len(args) == 1 {
		return args[0]
	}
	merged := &parse.Word{}
	for i, w := range args {
		if i > 0 {
			merged.Parts = append(merged.Parts, &parse.Literal{Val: " ", Quoting: parse.Double})
		}
		for _, p := range w.Parts {
			if g, ok := p.(*parse.Glob); ok {
				merged.Parts = append(merged.Parts, &parse.Literal{Val: g.Pattern, Quoting: parse.Double})
				continue
			}
			merged.Parts = append(merged.Parts, p)
		}
	}
	return merged
}

// expandEchoEscapes resolves echo -e's backslash escapes inside literal
// parts. The literals are retagged dollar-single so control bytes render
// as backtick escapes; this is the documented choice for the -e versus
// $'…' ambiguity.
func expandEchoEscapes(w *parse.Word) {
	for _, p := range w.Parts {
		if lit, ok := p.(*parse.Literal); ok {
			if lit.Quoting == parse.Unquoted || lit.Quoting == parse.Double {
				lit.Val = cUnescape(lit.Val)
				lit.Quoting = parse.DollarSingle
			}
		}
	}
}

// cUnescape resolves the echo -e / printf escape set.
func cUnescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte(7)
		case 'b':
			b.WriteByte(8)
		case 'e', 'E':
			b.WriteByte(27)
		case '\\':
			b.WriteByte('\\')
		case '0':
			n := 0
			for d := 0; d < 3 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; d++ {
				n = n*8 + int(s[i+1]-'0')
				i++
			}
			b.WriteByte(byte(n))
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func printfCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, nil)
	if len(a.positional) == 0 {
		c.warnf("printf: missing format")
		return "$null"
	}
	format, ok := a.positional[0].Lit()
	if !ok {
		c.warnf("printf: dynamic format not translated")
		return c.passthrough(cmd)
	}
	psFormat, ok := printfFormat(cUnescape(format))
	if !ok {
		c.warnf("printf: format %q not translated", format)
		return c.passthrough(cmd)
	}

	lit := c.literal(&parse.Literal{Val: psFormat, Quoting: parse.DollarSingle})
	if len(a.positional) == 1 {
		return "Write-Host -NoNewline " + lit
	}
	vals := make([]string, 0, len(a.positional)-1)
	for _, w := range a.positional[1:] {
		vals = append(vals, c.word(w))
	}
	return "Write-Host -NoNewline (" + lit + " -f " + strings.Join(vals, ", ") + ")"
}

// printfFormat rewrites %-directives as .NET format items.
func printfFormat(format string) (string, bool) {
	var b strings.Builder
	arg := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			// Literal braces would confuse -f.
			switch format[i] {
			case '{':
				b.WriteString("{{")
			case '}':
				b.WriteString("}}")
			default:
				b.WriteByte(format[i])
			}
			continue
		}
		if i+1 >= len(format) {
			return "", false
		}
		i++
		switch format[i] {
		case '%':
			b.WriteByte('%')
		case 's', 'd', 'i', 'f', 'x':
			b.WriteString("{")
			b.WriteString(strconv.Itoa(arg))
			b.WriteString("}")
			arg++
		default:
			return "", false
		}
	}
	return b.String(), true
}

func exportCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'p'}})
	if a.has("p") || len(a.positional) == 0 {
		return "Get-ChildItem Env:"
	}
	outs := make([]string, 0, len(a.positional))
	for _, w := range a.positional {
		if name, value, ok := splitAssignWord(w); ok {
			outs = append(outs, "$env:"+name+" = "+c.word(value))
			continue
		}
		if name, ok := w.Lit(); ok && isName(name) {
			// export NAME re-exports; environment variables already
			// propagate, so this is a no-op spelled explicitly.
			outs = append(outs, "$env:"+name+" = $env:"+name)
			continue
		}
		c.warnf("export: argument not translated")
	}
	if len(outs) == 0 {
		return "$null"
	}
	return strings.Join(outs, "; ")
}

func unsetCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'f'}, {short: 'v'}})
	if a.has("f") {
		c.warnf("unset -f: function unsets have no environment equivalent")
	}
	outs := make([]string, 0, len(a.positional))
	for _, w := range a.positional {
		if name, ok := w.Lit(); ok && isName(name) {
			outs = append(outs, "Remove-Item Env:\\"+name+" -ErrorAction SilentlyContinue")
		}
	}
	if len(outs) == 0 {
		return "$null"
	}
	return strings.Join(outs, "; ")
}

func envCmd(cmd *parse.SimpleCommand, c *context) string {
	args := cmd.Args
	var prefix strings.Builder
	for len(args) > 0 {
		name, value, ok := splitAssignWord(args[0])
		if !ok {
			break
		}
		prefix.WriteString("$env:" + name + " = " + c.word(value) + "; ")
		args = args[1:]
	}
	if len(args) == 0 {
		if prefix.Len() == 0 {
			return "Get-ChildItem Env:"
		}
		return strings.TrimSuffix(prefix.String(), "; ")
	}
	inner := &parse.SimpleCommand{Name: args[0], Args: args[1:]}
	return prefix.String() + c.simpleCommand(inner)
}

func trueCmd(cmd *parse.SimpleCommand, c *context) string  { return "$true" }
func falseCmd(cmd *parse.SimpleCommand, c *context) string { return "$false" }

func dateCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'u', long: "utc"}})
	var format string
	for _, w := range a.positional {
		if lit, ok := w.Lit(); ok && strings.HasPrefix(lit, "+") {
			format = lit[1:]
		}
	}
	if format != "" {
		if a.has("utc") {
			c.warnf("date: -u with a format prints local time")
		}
		return "Get-Date -UFormat " + psSingleQuote("%"+strings.TrimPrefix(format, "%"))
	}
	if a.has("utc") {
		return "(Get-Date).ToUniversalTime()"
	}
	return "Get-Date"
}

func sleepCmd(cmd *parse.SimpleCommand, c *context) string {
	if len(cmd.Args) == 0 {
		c.warnf("sleep: missing duration")
		return "Start-Sleep -Seconds 0"
	}
	lit, ok := cmd.Args[0].Lit()
	if !ok {
		return "Start-Sleep -Seconds " + c.word(cmd.Args[0])
	}
	mult := ""
	switch {
	case strings.HasSuffix(lit, "s"):
		lit = lit[:len(lit)-1]
	case strings.HasSuffix(lit, "m"):
		lit, mult = lit[:len(lit)-1], " * 60"
	case strings.HasSuffix(lit, "h"):
		lit, mult = lit[:len(lit)-1], " * 3600"
	case strings.HasSuffix(lit, "d"):
		lit, mult = lit[:len(lit)-1], " * 86400"
	}
	if mult != "" {
		return "Start-Sleep -Seconds (" + lit + mult + ")"
	}
	return "Start-Sleep -Seconds " + lit
}

func whoamiCmd(cmd *parse.SimpleCommand, c *context) string   { return "$env:USERNAME" }
func hostnameCmd(cmd *parse.SimpleCommand, c *context) string { return "$env:COMPUTERNAME" }

func unameCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'a', long: "all"}, {short: 'm', long: "machine"}, {short: 's', long: "kernel-name"}, {short: 'r', long: "kernel-release"}})
	switch {
	case a.has("all"):
		return `"$env:OS $env:COMPUTERNAME $env:PROCESSOR_ARCHITECTURE"`
	case a.has("machine"):
		return "$env:PROCESSOR_ARCHITECTURE"
	case a.has("kernel-release"):
		return "[System.Environment]::OSVersion.Version.ToString()"
	}
	return "$env:OS"
}

func historyCmd(cmd *parse.SimpleCommand, c *context) string { return "Get-History" }

func exitCmd(cmd *parse.SimpleCommand, c *context) string {
	if len(cmd.Args) > 0 {
		return "exit " + c.word(cmd.Args[0])
	}
	return "exit"
}

func sourceCmd(cmd *parse.SimpleCommand, c *context) string {
	if len(cmd.Args) == 0 {
		c.warnf("source: missing file")
		return "$null"
	}
	c.warnf("source: the sourced file is executed as PowerShell, not translated")
	return ". " + c.word(cmd.Args[0])
}

func nohupCmd(cmd *parse.SimpleCommand, c *context) string {
	return c.stripWrapper(cmd, "nohup")
}

func sudoCmd(cmd *parse.SimpleCommand, c *context) string {
	return c.stripWrapper(cmd, "sudo")
}

// stripWrapper drops a prefix command like sudo or nohup and translates
// what it wrapped.
func (c *context) stripWrapper(cmd *parse.SimpleCommand, name string) string {
	c.warnf("%s: stripped, running the command directly", name)
	if len(cmd.Args) == 0 {
		return "$null"
	}
	inner := &parse.SimpleCommand{Name: cmd.Args[0], Args: cmd.Args[1:]}
	return c.simpleCommand(inner)
}

func chmodCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'R', long: "recursive"}})
	if len(a.positional) < 2 {
		c.warnf("chmod: missing operand")
		return "$null"
	}
	mode, _ := a.positional[0].Lit()
	files := a.positional[1:]

	if strings.Contains(mode, "+x") {
		return "Unblock-File -Path " + c.quotedFiles(files)
	}
	if isOctal(mode) {
		c.warnf("chmod: numeric mode %s has no POSIX equivalent on Windows", mode)
		return placeholder("chmod "+mode+" "+c.quotedFiles(files), "no equivalent, consider icacls")
	}
	c.warnf("chmod: mode %s not translated", mode)
	return placeholder("chmod "+mode, "unsupported chmod mode")
}

func isOctal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return true
}

func clearCmd(cmd *parse.SimpleCommand, c *context) string { return "Clear-Host" }

func mktempCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'd', long: "directory"}})
	if len(a.positional) > 0 {
		c.warnf("mktemp: template ignored")
	}
	if a.has("directory") {
		return "New-Item -ItemType Directory -Path (Join-Path $env:TEMP ([System.IO.Path]::GetRandomFileName())) | Select-Object -ExpandProperty FullName"
	}
	return "[System.IO.Path]::GetTempFileName()"
}

// splitAssignWord breaks a NAME=value word, the shape export and env
// arguments take.
func splitAssignWord(w *parse.Word) (string, *parse.Word, bool) {
	if len(w.Parts) == 0 {
		return "", nil, false
	}
	first, ok := w.Parts[0].(*parse.Literal)
	if !ok || first.Quoting != parse.Unquoted {
		return "", nil, false
	}
	eq := strings.IndexByte(first.Val, '=')
	if eq <= 0 || !isName(first.Val[:eq]) {
		return "", nil, false
	}
	value := &parse.Word{}
	if rest := first.Val[eq+1:]; rest != "" {
		value.Parts = append(value.Parts, &parse.Literal{Val: rest, Quoting: parse.Unquoted})
	}
	value.Parts = append(value.Parts, w.Parts[1:]...)
	return first.Val[:eq], value, true
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
