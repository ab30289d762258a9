package translate

// Path commands: basename, dirname, realpath, readlink.

import (
	"regexp"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

func basenameCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, nil)
	if len(a.positional) == 0 {
		c.warnf("basename: missing operand")
		return "$null"
	}
	out := "Split-Path " + c.word(a.positional[0]) + " -Leaf"
	if len(a.positional) > 1 {
		if suffix, ok := a.positional[1].Lit(); ok {
			return "(" + out + ") -replace " + psSingleQuote(regexp.QuoteMeta(suffix)+"$") + ", ''"
		}
	}
	return out
}

func dirnameCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, nil)
	if len(a.positional) == 0 {
		c.warnf("dirname: missing operand")
		return "$null"
	}
	return "Split-Path " + c.word(a.positional[0]) + " -Parent"
}

func realpathCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, nil)
	if len(a.positional) == 0 {
		c.warnf("realpath: missing operand")
		return "$null"
	}
	return "Resolve-Path -Path " + c.word(a.positional[0]) + " | Select-Object -ExpandProperty Path"
}

func readlinkCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'f', long: "canonicalize"}})
	if len(a.positional) == 0 {
		c.warnf("readlink: missing operand")
		return "$null"
	}
	if a.has("canonicalize") {
		return "Resolve-Path -Path " + c.word(a.positional[0]) + " | Select-Object -ExpandProperty Path"
	}
	return "Get-Item " + c.word(a.positional[0]) + " | Select-Object -ExpandProperty Target"
}
