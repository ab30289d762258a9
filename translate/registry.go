package translate

import (
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

// A translator maps one SimpleCommand onto PowerShell text. It reports
// shortfalls through the context (warnf, tookFallback) rather than
// failing; the transformer wraps its output with inline assignments and
// lowered redirects.
type translator func(cmd *parse.SimpleCommand, c *context) string

// registry keys translators by command name. Anything absent passes
// through with word-translated arguments.
//
// Populated by init() rather than a var initializer: the translator
// funcs assigned here transitively reach back into code that reads
// registry, which the compiler flags as an initialization cycle when
// the map literal is itself the var's initializer.
var registry map[string]translator

func init() {
	registry = map[string]translator{
		"grep":  grepCmd,
		"egrep": grepCmd,
		"fgrep": grepCmd,

		"find": findCmd,

		"curl": curlCmd,
		"wget": wgetCmd,
		"jq":   jqCmd,

		"ls":    lsCmd,
		"cat":   catCmd,
		"head":  headCmd,
		"tail":  tailCmd,
		"tee":   teeCmd,
		"touch": touchCmd,
		"rm":    rmCmd,
		"mkdir": mkdirCmd,
		"cp":    cpCmd,
		"mv":    mvCmd,
		"ln":    lnCmd,
		"which": whichCmd,
		"du":    duCmd,
		"df":    dfCmd,

		"wc":    wcCmd,
		"sort":  sortCmd,
		"uniq":  uniqCmd,
		"cut":   cutCmd,
		"tr":    trCmd,
		"diff":  diffCmd,
		"xargs": xargsCmd,
		"seq":   seqCmd,

		"sed": sedCmd,
		"awk": awkCmd,

		"test": testCmd,
		"[":    testCmd,

		"cd":       cdCmd,
		"pwd":      pwdCmd,
		"echo":     echoCmd,
		"printf":   printfCmd,
		"export":   exportCmd,
		"unset":    unsetCmd,
		"env":      envCmd,
		"true":     trueCmd,
		"false":    falseCmd,
		"date":     dateCmd,
		"sleep":    sleepCmd,
		"whoami":   whoamiCmd,
		"hostname": hostnameCmd,
		"uname":    unameCmd,
		"history":  historyCmd,
		"exit":     exitCmd,
		"source":   sourceCmd,
		".":        sourceCmd,
		"nohup":    nohupCmd,
		"sudo":     sudoCmd,
		"chmod":    chmodCmd,
		"clear":    clearCmd,
		"mktemp":   mktempCmd,

		"ps":      psCmd,
		"kill":    killCmd,
		"pkill":   pkillCmd,
		"killall": killallCmd,
		"pgrep":   pgrepCmd,
		"lsof":    lsofCmd,

		"basename": basenameCmd,
		"dirname":  dirnameCmd,
		"realpath": realpathCmd,
		"readlink": readlinkCmd,

		"zip":   zipCmd,
		"unzip": unzipCmd,
	}
}

// singleQuoted renders a word the way translator operands want it: plain
// literals are always single-quoted, even when they would survive bare.
func (c *context) singleQuoted(w *parse.Word) string {
	if w == nil || len(w.Parts) == 0 {
		return "''"
	}
	if len(w.Parts) == 1 {
		switch p := w.Parts[0].(type) {
		case *parse.Literal:
			// A lone literal has no expansions left in it, whatever its
			// quoting was; only control bytes need the double-quoted form.
			if p.Quoting != parse.DollarSingle || !hasControl(p.Val) {
				return psSingleQuote(p.Val)
			}
		case *parse.Glob:
			return psSingleQuote(p.Pattern)
		}
	}
	return c.word(w)
}

// files renders a comma-separated path list for -Path style parameters.
func (c *context) files(words []*parse.Word) string {
	outs := make([]string, 0, len(words))
	for _, w := range words {
		outs = append(outs, c.word(w))
	}
	return strings.Join(outs, ",")
}

// quotedFiles is files with translator-operand quoting.
func (c *context) quotedFiles(words []*parse.Word) string {
	outs := make([]string, 0, len(words))
	for _, w := range words {
		outs = append(outs, c.singleQuoted(w))
	}
	return strings.Join(outs, ",")
}

// wordList renders words space-joined, for rebuilding an argument tail.
func (c *context) wordList(words []*parse.Word) string {
	outs := make([]string, 0, len(words))
	for _, w := range words {
		outs = append(outs, c.word(w))
	}
	return strings.Join(outs, " ")
}

// inputPrefix is the Get-Content lead-in shared by the text-stream
// translators: with file operands it reads them, without it stays a pure
// pipe segment.
func (c *context) inputPrefix(files []*parse.Word) string {
	if len(files) == 0 {
		return ""
	}
	return "Get-Content " + c.files(files) + " | "
}
