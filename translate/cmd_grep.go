package translate

// grep, egrep, fgrep. The native path emits rg; the fallback rebuilds
// bash grep's output shapes on Select-String, because downstream agents
// parse them.

import (
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

var grepFlags = []flagSpec{
	{short: 'r', long: "recursive"},
	{short: 'R', long: "dereference-recursive"},
	{short: 'n', long: "line-number"},
	{short: 'i', long: "ignore-case"},
	{short: 'v', long: "invert-match"},
	{short: 'l', long: "files-with-matches"},
	{short: 'c', long: "count"},
	{short: 'o', long: "only-matching"},
	{short: 'q', long: "quiet"},
	{short: 'w', long: "word-regexp"},
	{short: 'E', long: "extended-regexp"},
	{short: 'F', long: "fixed-strings"},
	{short: 'h', long: "no-filename"},
	{short: 'e', long: "regexp", takesValue: true},
	{short: 'A', long: "after-context", takesValue: true},
	{short: 'B', long: "before-context", takesValue: true},
	{short: 'C', long: "context", takesValue: true},
	{long: "include", takesValue: true},
}

func grepCmd(cmd *parse.SimpleCommand, c *context) string {
	name, _ := cmd.Name.Lit()
	a := parseArgs(cmd.Args, grepFlags)

	var pat *parse.Word
	var paths []*parse.Word
	if w, ok := a.word("regexp"); ok {
		pat = w
		paths = a.positional
	} else if len(a.positional) > 0 {
		pat = a.positional[0]
		paths = a.positional[1:]
	}
	if pat == nil {
		c.warnf("grep: missing pattern")
		return c.passthrough(cmd)
	}

	fixed := a.has("fixed-strings") || name == "fgrep"
	recursive := a.has("recursive") || a.has("dereference-recursive")

	if c.native && c.tools.Rg {
		return grepNative(c, a, pat, paths, fixed)
	}
	c.tookFallback()
	return grepFallback(c, a, pat, paths, fixed, recursive)
}

func grepNative(c *context, a *parsedArgs, pat *parse.Word, paths []*parse.Word, fixed bool) string {
	var b strings.Builder
	b.WriteString("rg")
	if a.has("ignore-case") {
		b.WriteString(" -i")
	}
	if a.has("invert-match") {
		b.WriteString(" -v")
	}
	if a.has("line-number") {
		b.WriteString(" -n")
	}
	if a.has("files-with-matches") {
		b.WriteString(" -l")
	}
	if a.has("count") {
		b.WriteString(" -c")
	}
	if a.has("only-matching") {
		b.WriteString(" -o")
	}
	if a.has("quiet") {
		b.WriteString(" -q")
	}
	if a.has("word-regexp") {
		b.WriteString(" -w")
	}
	if a.has("no-filename") {
		b.WriteString(" -I")
	}
	if fixed {
		b.WriteString(" -F")
	}
	for _, flag := range []struct{ name, rg string }{
		{"after-context", "-A"}, {"before-context", "-B"}, {"context", "-C"},
	} {
		if w, ok := a.word(flag.name); ok {
			b.WriteString(" " + flag.rg + " " + c.word(w))
		}
	}
	if w, ok := a.word("include"); ok {
		b.WriteString(" -g " + c.singleQuoted(w))
	}
	// rg recurses by default, so -r needs no mapping.
	b.WriteString(" " + c.singleQuoted(pat))
	for _, p := range paths {
		b.WriteString(" " + c.singleQuoted(p))
	}
	return b.String()
}

func grepFallback(c *context, a *parsedArgs, pat *parse.Word, paths []*parse.Word, fixed, recursive bool) string {
	var b strings.Builder

	// Only a recursive grep may walk the tree; the piped and single-file
	// shapes stay a pure Select-String.
	multi := recursive || len(paths) > 1
	if recursive {
		dir := "'.'"
		if len(paths) > 0 {
			dir = c.singleQuoted(paths[0])
		}
		b.WriteString("Get-ChildItem -Path " + dir + " -Recurse -File")
		if w, ok := a.word("include"); ok {
			b.WriteString(" -Include " + c.singleQuoted(w))
		}
		b.WriteString(" | ")
	}

	b.WriteString("Select-String -Pattern " + c.singleQuoted(pat))
	if fixed {
		b.WriteString(" -SimpleMatch")
	}
	if !a.has("ignore-case") {
		// Select-String ignores case unless told otherwise; bash grep is
		// the opposite.
		b.WriteString(" -CaseSensitive")
	}
	if a.has("invert-match") {
		b.WriteString(" -NotMatch")
	}
	if !recursive && len(paths) > 0 {
		b.WriteString(" -Path " + c.quotedFiles(paths))
	}

	switch {
	case a.has("quiet"):
		b.WriteString(" | Out-Null")
	case a.has("files-with-matches"):
		b.WriteString(" | Select-Object -ExpandProperty Path -Unique")
	case a.has("count") && multi:
		b.WriteString(" | Group-Object Path | ForEach-Object { \"$($_.Name):$($_.Count)\" }")
	case a.has("count"):
		b.WriteString(" | Measure-Object | ForEach-Object { $_.Count }")
	case a.has("only-matching"):
		b.WriteString(" | ForEach-Object { $_.Matches.Value }")
	case multi && a.has("line-number"):
		b.WriteString(" | ForEach-Object { \"$($_.Path):$($_.LineNumber):$($_.Line)\" }")
	case multi:
		b.WriteString(" | ForEach-Object { \"$($_.Path):$($_.Line)\" }")
	case a.has("line-number"):
		b.WriteString(" | ForEach-Object { \"$($_.LineNumber):$($_.Line)\" }")
	default:
		b.WriteString(" | ForEach-Object { $_.Line }")
	}
	return b.String()
}
