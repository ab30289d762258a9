package translate

// Text-stream commands: wc, sort, uniq, cut, tr, diff, xargs, seq. With
// no file operand these emit the pure pipe-segment form so they compose
// inside a larger pipeline.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

var wcFlags = []flagSpec{
	{short: 'l', long: "lines"},
	{short: 'w', long: "words"},
	{short: 'c', long: "bytes"},
	{short: 'm', long: "chars"},
}

func wcCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, wcFlags)
	if len(a.positional) > 1 {
		c.warnf("wc: per-file totals are not reproduced for multiple files")
	}
	prefix := c.inputPrefix(a.positional)
	switch {
	case a.has("lines"):
		return prefix + "Measure-Object -Line | ForEach-Object { $_.Lines }"
	case a.has("words"):
		return prefix + "Measure-Object -Word | ForEach-Object { $_.Words }"
	case a.has("bytes"), a.has("chars"):
		return prefix + "Measure-Object -Character | ForEach-Object { $_.Characters }"
	}
	return prefix + `Measure-Object -Line -Word -Character | ForEach-Object { "$($_.Lines) $($_.Words) $($_.Characters)" }`
}

var sortFlags = []flagSpec{
	{short: 'r', long: "reverse"},
	{short: 'n', long: "numeric-sort"},
	{short: 'u', long: "unique"},
	{short: 'f', long: "ignore-case"},
	{short: 'k', long: "key", takesValue: true},
	{short: 't', long: "field-separator", takesValue: true},
}

func sortCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, sortFlags)
	if a.has("key") {
		c.warnf("sort: -k ignored, sorting whole lines")
	}
	out := c.inputPrefix(a.positional) + "Sort-Object"
	if a.has("numeric-sort") {
		out += " { [double]$_ }"
	}
	if a.has("reverse") {
		out += " -Descending"
	}
	if a.has("unique") {
		out += " -Unique"
	}
	return out
}

var uniqFlags = []flagSpec{
	{short: 'c', long: "count"},
	{short: 'd', long: "repeated"},
	{short: 'u', long: "unique"},
	{short: 'i', long: "ignore-case"},
}

func uniqCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, uniqFlags)
	prefix := c.inputPrefix(a.positional)
	switch {
	case a.has("count"):
		return prefix + `Group-Object | ForEach-Object { "$($_.Count) $($_.Name)" }`
	case a.has("repeated"):
		return prefix + "Group-Object | Where-Object { $_.Count -gt 1 } | ForEach-Object { $_.Name }"
	case a.has("unique"):
		return prefix + "Group-Object | Where-Object { $_.Count -eq 1 } | ForEach-Object { $_.Name }"
	}
	return prefix + "Get-Unique"
}

var cutFlags = []flagSpec{
	{short: 'd', long: "delimiter", takesValue: true},
	{short: 'f', long: "fields", takesValue: true},
	{short: 'c', long: "characters", takesValue: true},
}

func cutCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, cutFlags)
	prefix := c.inputPrefix(a.positional)

	if spec := a.str("characters"); spec != "" {
		if from, to, ok := parseRange(spec); ok {
			return prefix + fmt.Sprintf("ForEach-Object { $_.Substring(%d, [Math]::Min(%d, $_.Length - %d)) }", from-1, to-from+1, from-1)
		}
		c.warnf("cut: -c %s not translated", spec)
		return prefix + "ForEach-Object { $_ }"
	}

	delim := a.str("delimiter")
	if delim == "" {
		delim = "`t"
	}
	d := "'" + strings.ReplaceAll(delim, "'", "''") + "'"
	spec := a.str("fields")
	if spec == "" {
		c.warnf("cut: missing field list")
		return prefix + "ForEach-Object { $_ }"
	}

	if n, err := strconv.Atoi(spec); err == nil {
		return prefix + fmt.Sprintf("ForEach-Object { ($_ -split %s)[%d] }", d, n-1)
	}
	if from, to, ok := parseRange(spec); ok {
		return prefix + fmt.Sprintf("ForEach-Object { (($_ -split %s)[%d..%d] -join %s) }", d, from-1, to-1, d)
	}
	if idxs, ok := parseList(spec); ok {
		return prefix + fmt.Sprintf("ForEach-Object { (($_ -split %s)[%s] -join %s) }", d, idxs, d)
	}
	c.warnf("cut: -f %s not translated", spec)
	return prefix + "ForEach-Object { $_ }"
}

// parseRange reads an N-M field range.
func parseRange(spec string) (from, to int, ok bool) {
	lo, hi, found := strings.Cut(spec, "-")
	if !found {
		return 0, 0, false
	}
	f, err1 := strconv.Atoi(lo)
	t, err2 := strconv.Atoi(hi)
	if err1 != nil || err2 != nil || f < 1 || t < f {
		return 0, 0, false
	}
	return f, t, true
}

// parseList reads an N,M,… field list into zero-based indices.
func parseList(spec string) (string, bool) {
	var idxs []string
	for _, part := range strings.Split(spec, ",") {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return "", false
		}
		idxs = append(idxs, strconv.Itoa(n-1))
	}
	return strings.Join(idxs, ","), true
}

var trFlags = []flagSpec{
	{short: 'd', long: "delete"},
	{short: 's', long: "squeeze-repeats"},
}

func trCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, trFlags)

	set := func(i int) string {
		if i < len(a.positional) {
			s, _ := a.positional[i].Lit()
			return s
		}
		return ""
	}
	from := set(0)

	if a.has("delete") {
		if from == "" {
			c.warnf("tr: -d missing set")
			return "ForEach-Object { $_ }"
		}
		return fmt.Sprintf("ForEach-Object { $_ -replace '[%s]', '' }", charClass(from))
	}

	to := set(1)
	switch {
	case from == "" || to == "":
		c.warnf("tr: missing operand")
		return "ForEach-Object { $_ }"
	case (from == "a-z" || from == "[:lower:]") && (to == "A-Z" || to == "[:upper:]"):
		return "ForEach-Object { $_.ToUpper() }"
	case (from == "A-Z" || from == "[:upper:]") && (to == "a-z" || to == "[:lower:]"):
		return "ForEach-Object { $_.ToLower() }"
	case len(from) == 1 && len(to) == 1:
		return fmt.Sprintf("ForEach-Object { $_ -replace '%s', '%s' }", regexp.QuoteMeta(from), strings.ReplaceAll(to, "'", "''"))
	}
	c.warnf("tr: set mapping %q -> %q not translated", from, to)
	return "ForEach-Object { $_ }"
}

// charClass escapes a tr set for use inside a regex character class.
func charClass(set string) string {
	var b strings.Builder
	for i := 0; i < len(set); i++ {
		switch set[i] {
		case ']', '\\', '^':
			b.WriteByte('\\')
		}
		b.WriteByte(set[i])
	}
	return strings.ReplaceAll(b.String(), "'", "''")
}

func diffCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'u', long: "unified"}, {short: 'q', long: "brief"}, {short: 'r', long: "recursive"}})
	if len(a.positional) < 2 {
		c.warnf("diff: missing operand")
		return c.passthrough(cmd)
	}
	left := c.word(a.positional[0])
	right := c.word(a.positional[1])
	return fmt.Sprintf("Compare-Object (Get-Content %s) (Get-Content %s)", left, right)
}

var xargsFlags = []flagSpec{
	{short: 'I', takesValue: true},
	{short: 'n', long: "max-args", takesValue: true},
	{short: '0', long: "null"},
	{short: 'r', long: "no-run-if-empty"},
}

func xargsCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, xargsFlags)
	if a.has("null") {
		c.warnf("xargs: -0 ignored")
	}
	if len(a.positional) == 0 {
		return "ForEach-Object { $_ }"
	}

	repl := a.str("I")
	outs := make([]string, 0, len(a.positional)+1)
	used := false
	for i, w := range a.positional {
		if lit, ok := w.Lit(); ok && repl != "" && lit == repl {
			outs = append(outs, "$_")
			used = true
			continue
		}
		if i == 0 {
			outs = append(outs, c.commandName(w))
			continue
		}
		outs = append(outs, c.word(w))
	}
	if repl == "" || !used {
		outs = append(outs, "$_")
	}
	return "ForEach-Object { " + strings.Join(outs, " ") + " }"
}

func seqCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, nil)
	lit := func(i int) string {
		s, _ := a.positional[i].Lit()
		return s
	}
	switch len(a.positional) {
	case 1:
		return "1.." + lit(0)
	case 2:
		return lit(0) + ".." + lit(1)
	case 3:
		return fmt.Sprintf("for ($i = %s; $i -le %s; $i += %s) { $i }", lit(0), lit(2), lit(1))
	}
	c.warnf("seq: expected 1-3 operands")
	return c.passthrough(cmd)
}
