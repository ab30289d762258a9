package translate

// ls. Bare ls is names only; -l builds the mode/size/date/name row by
// hand since Format-Table output is not parseable by agents.

import (
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

var lsFlags = []flagSpec{
	{short: 'l'},
	{short: 'a', long: "all"},
	{short: 'A', long: "almost-all"},
	{short: 'R', long: "recursive"},
	{short: 't'},
	{short: 'S'},
	{short: 'r', long: "reverse"},
	{short: 'h', long: "human-readable"},
	{short: '1'},
	{short: 'd', long: "directory"},
}

func lsCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, lsFlags)

	var b strings.Builder
	b.WriteString("Get-ChildItem")
	if a.has("all") || a.has("almost-all") {
		b.WriteString(" -Force")
	}
	if a.has("recursive") {
		b.WriteString(" -Recurse")
	}
	if len(a.positional) > 0 {
		b.WriteString(" -Path " + c.files(a.positional))
	}
	if a.has("directory") {
		c.warnf("ls: -d ignored")
	}

	reverse := a.has("reverse")
	switch {
	case a.has("t"):
		b.WriteString(" | Sort-Object LastWriteTime")
		if !reverse {
			b.WriteString(" -Descending")
		}
	case a.has("S"):
		b.WriteString(" | Sort-Object Length")
		if !reverse {
			b.WriteString(" -Descending")
		}
	case reverse:
		b.WriteString(" | Sort-Object Name -Descending")
	}

	if a.has("l") {
		b.WriteString(` | ForEach-Object { "$($_.Mode) $($_.Length) $($_.LastWriteTime) $($_.Name)" }`)
	} else {
		b.WriteString(" | Select-Object -ExpandProperty Name")
	}
	return b.String()
}
