package translate

// zip and unzip via the archive cmdlets. tar is deliberately absent from
// the registry: tar.exe ships with Windows 10+ and passes through.

import (
	"github.com/joyi-ai/bash-to-powershell/parse"
)

var zipFlags = []flagSpec{
	{short: 'r', long: "recurse-paths"},
	{short: 'q', long: "quiet"},
	{short: '9'},
}

func zipCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, zipFlags)
	if len(a.positional) < 2 {
		c.warnf("zip: missing archive or input")
		return c.passthrough(cmd)
	}
	// Compress-Archive recurses into directories on its own, so -r needs
	// no mapping.
	return "Compress-Archive -Path " + c.files(a.positional[1:]) +
		" -DestinationPath " + c.word(a.positional[0]) + " -Force"
}

var unzipFlags = []flagSpec{
	{short: 'q', long: "quiet"},
	{short: 'o', long: "overwrite"},
	{short: 'd', takesValue: true},
}

func unzipCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, unzipFlags)
	if len(a.positional) == 0 {
		c.warnf("unzip: missing archive")
		return c.passthrough(cmd)
	}
	out := "Expand-Archive -Path " + c.word(a.positional[0])
	if w, ok := a.word("d"); ok {
		out += " -DestinationPath " + c.word(w)
	} else {
		out += " -DestinationPath ."
	}
	if a.has("overwrite") {
		out += " -Force"
	}
	return out
}
