package translate

// File and filesystem commands: cat, head, tail, tee, touch, rm, mkdir,
// cp, mv, ln, which, du, df.

import (
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

func catCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'n', long: "number"}})
	if len(a.positional) == 0 {
		if a.has("number") {
			return `ForEach-Object -Begin { $n = 0 } -Process { $n++; "$n` + "`t" + `$_" }`
		}
		return "ForEach-Object { $_ }"
	}
	out := "Get-Content " + c.files(a.positional)
	if a.has("number") {
		out += ` | ForEach-Object { "$($_.ReadCount)` + "`t" + `$_" }`
	}
	return out
}

var headTailFlags = []flagSpec{
	{short: 'n', long: "lines", takesValue: true},
	{short: 'c', long: "bytes", takesValue: true},
	{short: 'f', long: "follow"},
}

// legacyCount picks up head/tail's -5 shorthand, which the shared parser
// stores as boolean digit flags.
func legacyCount(a *parsedArgs) string {
	var digits []string
	for name := range a.bools {
		if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
			digits = append(digits, name)
		}
	}
	if len(digits) != 1 {
		return ""
	}
	return digits[0]
}

func headCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, headTailFlags)
	n := a.str("lines")
	if n == "" {
		n = legacyCount(a)
	}
	if n == "" {
		n = "10"
	}
	if a.has("bytes") {
		c.warnf("head: -c not translated, using lines")
	}
	return c.inputPrefix(a.positional) + "Select-Object -First " + n
}

func tailCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, headTailFlags)
	n := a.str("lines")
	if n == "" {
		n = legacyCount(a)
	}
	if n == "" {
		n = "10"
	}
	if strings.HasPrefix(n, "+") {
		c.warnf("tail: -n +N not translated, using last %s lines", n[1:])
		n = n[1:]
	}
	if a.has("follow") {
		if len(a.positional) == 0 {
			c.warnf("tail: -f without a file not translated")
			return "Select-Object -Last " + n
		}
		return "Get-Content -Path " + c.files(a.positional) + " -Wait -Tail " + n
	}
	return c.inputPrefix(a.positional) + "Select-Object -Last " + n
}

func teeCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'a', long: "append"}})
	if len(a.positional) == 0 {
		c.warnf("tee: missing file")
		return "ForEach-Object { $_ }"
	}
	out := "Tee-Object -FilePath " + c.word(a.positional[0])
	if a.has("append") {
		out += " -Append"
	}
	return out
}

func touchCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, nil)
	if len(a.positional) == 0 {
		c.warnf("touch: missing file")
		return "$null"
	}
	outs := make([]string, 0, len(a.positional))
	for _, w := range a.positional {
		f := c.singleQuoted(w)
		outs = append(outs, "if (Test-Path "+f+") { (Get-Item "+f+").LastWriteTime = Get-Date } else { New-Item -ItemType File -Path "+f+" | Out-Null }")
	}
	return strings.Join(outs, "; ")
}

var rmFlags = []flagSpec{
	{short: 'r', long: "recursive"},
	{short: 'R'},
	{short: 'f', long: "force"},
	{short: 'v', long: "verbose"},
	{short: 'i'},
	{short: 'd'},
}

func rmCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, rmFlags)
	if len(a.positional) == 0 {
		c.warnf("rm: missing operand")
		return "$null"
	}
	out := "Remove-Item -Path " + c.quotedFiles(a.positional)
	if a.has("recursive") || a.has("R") {
		out += " -Recurse"
	}
	if a.has("force") {
		out += " -Force"
	}
	return out
}

func mkdirCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'p', long: "parents"}, {short: 'v', long: "verbose"}})
	if len(a.positional) == 0 {
		c.warnf("mkdir: missing operand")
		return "$null"
	}
	if a.has("parents") {
		return "New-Item -ItemType Directory -Force -Path " + c.quotedFiles(a.positional)
	}
	return "New-Item -ItemType Directory -Path " + c.quotedFiles(a.positional)
}

var cpFlags = []flagSpec{
	{short: 'r', long: "recursive"},
	{short: 'R'},
	{short: 'a', long: "archive"},
	{short: 'f', long: "force"},
	{short: 'v', long: "verbose"},
	{short: 'p', long: "preserve"},
}

func cpCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, cpFlags)
	if len(a.positional) < 2 {
		c.warnf("cp: missing destination")
		return c.passthrough(cmd)
	}
	srcs := a.positional[:len(a.positional)-1]
	dst := a.positional[len(a.positional)-1]
	out := "Copy-Item -Path " + c.files(srcs) + " -Destination " + c.word(dst)
	if a.has("recursive") || a.has("R") || a.has("archive") {
		out += " -Recurse"
	}
	if a.has("force") {
		out += " -Force"
	}
	return out
}

func mvCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'f', long: "force"}, {short: 'v', long: "verbose"}, {short: 'n', long: "no-clobber"}})
	if len(a.positional) < 2 {
		c.warnf("mv: missing destination")
		return c.passthrough(cmd)
	}
	srcs := a.positional[:len(a.positional)-1]
	dst := a.positional[len(a.positional)-1]
	out := "Move-Item -Path " + c.files(srcs) + " -Destination " + c.word(dst)
	if a.has("force") {
		out += " -Force"
	}
	return out
}

func lnCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 's', long: "symbolic"}, {short: 'f', long: "force"}})
	if len(a.positional) < 2 {
		c.warnf("ln: missing operand")
		return c.passthrough(cmd)
	}
	kind := "HardLink"
	if a.has("symbolic") {
		kind = "SymbolicLink"
		c.warnf("ln -s: creating symbolic links on Windows may require elevation or developer mode")
	}
	out := "New-Item -ItemType " + kind + " -Path " + c.word(a.positional[1]) + " -Target " + c.word(a.positional[0])
	if a.has("force") {
		out += " -Force"
	}
	return out
}

func whichCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, nil)
	if len(a.positional) == 0 {
		c.warnf("which: missing command name")
		return "$null"
	}
	return "Get-Command " + c.word(a.positional[0]) + " | Select-Object -ExpandProperty Source"
}

func duCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 's', long: "summarize"}, {short: 'h', long: "human-readable"}, {short: 'd', long: "max-depth", takesValue: true}})
	path := "'.'"
	if len(a.positional) > 0 {
		path = c.singleQuoted(a.positional[0])
	}
	return "Get-ChildItem -Path " + path + " -Recurse | Measure-Object -Property Length -Sum | ForEach-Object { $_.Sum }"
}

func dfCmd(cmd *parse.SimpleCommand, c *context) string {
	return "Get-PSDrive -PSProvider FileSystem"
}
