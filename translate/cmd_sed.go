package translate

// sed. Supported programs: s/PAT/REPL/FLAGS (delimiters / | #), /PAT/d,
// Nd, /PAT/p, Np, N,Mp; the p forms only together with -n. Anything else
// becomes a commented placeholder with a warning rather than a silent
// wrong translation.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

var sedFlags = []flagSpec{
	{short: 'n', long: "quiet"},
	{short: 'e', long: "expression", takesValue: true},
	{short: 'i', long: "in-place"},
	{short: 'E', long: "regexp-extended"},
	{short: 'r'},
}

func sedCmd(cmd *parse.SimpleCommand, c *context) string {
	a, inPlace, backup := parseSedArgs(cmd.Args)

	exprs := a.all("expression")
	files := a.positional
	if len(exprs) == 0 {
		if len(files) == 0 {
			c.warnf("sed: missing script")
			return c.passthrough(cmd)
		}
		exprs = files[:1]
		files = files[1:]
	}

	var ops []string
	for _, e := range exprs {
		script, _ := e.Lit()
		op, ok := sedExpr(script, a.has("quiet"))
		if !ok {
			c.warnf("sed: script %q not translated", script)
			return placeholder(script, "unsupported sed script")
		}
		ops = append(ops, op)
	}
	chain := strings.Join(ops, " | ")

	if inPlace {
		if len(files) == 0 {
			c.warnf("sed: -i without a file")
			return chain
		}
		f := c.singleQuoted(files[0])
		out := ""
		if backup != "" {
			out = "Copy-Item " + f + " " + c.singleQuoted(parse.LitWord(sedBackupName(files[0], backup))) + "; "
		}
		return out + "(Get-Content " + f + ") | " + chain + " | Set-Content " + f
	}
	return c.inputPrefix(files) + chain
}

// parseSedArgs handles -i's attached optional backup suffix before the
// shared parser sees the rest.
func parseSedArgs(args []*parse.Word) (a *parsedArgs, inPlace bool, backup string) {
	kept := make([]*parse.Word, 0, len(args))
	for _, w := range args {
		if lit, ok := w.Lit(); ok && strings.HasPrefix(lit, "-i") && len(lit) > 2 {
			inPlace = true
			backup = lit[2:]
			continue
		}
		kept = append(kept, w)
	}
	a = parseArgs(kept, sedFlags)
	if a.has("in-place") {
		inPlace = true
	}
	return a, inPlace, backup
}

func sedBackupName(file *parse.Word, suffix string) string {
	name, _ := file.Lit()
	return name + suffix
}

// sedExpr lowers one sed expression onto a pipe segment.
func sedExpr(script string, quiet bool) (string, bool) {
	script = strings.TrimSpace(script)
	if script == "" {
		return "", false
	}

	if script[0] == 's' && len(script) > 1 {
		return sedSubst(script)
	}

	// /PAT/d and /PAT/p
	if strings.HasPrefix(script, "/") {
		end := strings.LastIndexByte(script, '/')
		if end <= 0 || end != len(script)-2 {
			return "", false
		}
		pat := psSingleQuote(script[1:end])
		switch script[len(script)-1] {
		case 'd':
			return "Where-Object { $_ -notmatch " + pat + " }", true
		case 'p':
			if quiet {
				return "Where-Object { $_ -match " + pat + " }", true
			}
			return "", false
		}
		return "", false
	}

	// Nd, Np, N,Mp
	body, action := script[:len(script)-1], script[len(script)-1]
	switch action {
	case 'd':
		n, err := strconv.Atoi(body)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("ForEach-Object -Begin { $n = 0 } -Process { $n++; if ($n -ne %d) { $_ } }", n), true
	case 'p':
		if !quiet {
			return "", false
		}
		if from, to, ok := parseRange(body); ok {
			return fmt.Sprintf("ForEach-Object -Begin { $n = 0 } -Process { $n++; if ($n -ge %d -and $n -le %d) { $_ } }", from, to), true
		}
		if lo, hi, found := strings.Cut(body, ","); found {
			f, err1 := strconv.Atoi(lo)
			t, err2 := strconv.Atoi(hi)
			if err1 != nil || err2 != nil {
				return "", false
			}
			return fmt.Sprintf("ForEach-Object -Begin { $n = 0 } -Process { $n++; if ($n -ge %d -and $n -le %d) { $_ } }", f, t), true
		}
		n, err := strconv.Atoi(body)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("ForEach-Object -Begin { $n = 0 } -Process { $n++; if ($n -eq %d) { $_ } }", n), true
	}
	return "", false
}

// sedSubst lowers s/PAT/REPL/FLAGS. Backrefs \1..\9 become $1..$9 and &
// becomes $0, which -replace understands.
func sedSubst(script string) (string, bool) {
	delim := script[1]
	switch delim {
	case '/', '|', '#':
	default:
		return "", false
	}
	fields, ok := splitSed(script[2:], delim)
	if !ok {
		return "", false
	}
	pat, repl, flags := fields[0], fields[1], fields[2]
	for _, f := range flags {
		switch f {
		case 'g', 'i':
			// -replace is global already; i is handled below.
		default:
			return "", false
		}
	}

	repl = sedReplacement(repl)
	// sed matches case-sensitively unless told otherwise; -replace is the
	// opposite, so the default is -creplace.
	op := "-creplace"
	if strings.ContainsRune(flags, 'i') {
		op = "-replace"
	}
	return fmt.Sprintf("ForEach-Object { $_ %s %s, %s }", op, psSingleQuote(pat), psSingleQuote(repl)), true
}

// splitSed breaks PAT/REPL/FLAGS on an unescaped delimiter.
func splitSed(s string, delim byte) ([3]string, bool) {
	var fields [3]string
	var b strings.Builder
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			if s[i+1] == delim {
				b.WriteByte(delim)
			} else {
				b.WriteByte('\\')
				b.WriteByte(s[i+1])
			}
			i++
			continue
		}
		if c == delim {
			if n == 2 {
				return fields, false
			}
			fields[n] = b.String()
			b.Reset()
			n++
			continue
		}
		b.WriteByte(c)
	}
	if n < 2 {
		return fields, false
	}
	fields[2] = b.String()
	return fields, true
}

func sedReplacement(repl string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case c == '\\' && i+1 < len(repl) && repl[i+1] >= '1' && repl[i+1] <= '9':
			b.WriteByte('$')
			b.WriteByte(repl[i+1])
			i++
		case c == '&':
			b.WriteString("$0")
		case c == '$':
			// Literal $ in a -replace substitution needs doubling.
			b.WriteString("$$")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
