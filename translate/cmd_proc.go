package translate

// Process commands: ps, kill, pkill, killall, pgrep, lsof.

import (
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

func psCmd(cmd *parse.SimpleCommand, c *context) string {
	return "Get-Process"
}

func killCmd(cmd *parse.SimpleCommand, c *context) string {
	force := false
	var pids []string
	for _, w := range cmd.Args {
		lit, ok := w.Lit()
		if !ok {
			pids = append(pids, c.word(w))
			continue
		}
		switch {
		case lit == "-9", lit == "-KILL", lit == "-SIGKILL":
			force = true
		case strings.HasPrefix(lit, "-"):
			c.warnf("kill: signal %s ignored", lit)
		default:
			pids = append(pids, lit)
		}
	}
	if len(pids) == 0 {
		c.warnf("kill: missing pid")
		return "$null"
	}
	out := "Stop-Process -Id " + strings.Join(pids, ",")
	if force {
		out += " -Force"
	}
	return out
}

var pkillFlags = []flagSpec{
	{short: 'f', long: "full"},
	{short: '9'},
	{short: 'i', long: "ignore-case"},
}

func pkillCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, pkillFlags)
	if len(a.positional) == 0 {
		c.warnf("pkill: missing pattern")
		return "$null"
	}
	pat := c.singleQuoted(a.positional[0])
	out := "Get-Process | Where-Object { $_.ProcessName -match " + pat + " } | Stop-Process"
	if a.has("9") {
		out += " -Force"
	}
	if a.has("full") {
		c.warnf("pkill: -f matches process names only on Windows")
	}
	return out
}

func killallCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: '9'}})
	if len(a.positional) == 0 {
		c.warnf("killall: missing name")
		return "$null"
	}
	out := "Stop-Process -Name " + c.singleQuoted(a.positional[0])
	if a.has("9") {
		out += " -Force"
	}
	return out
}

func pgrepCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'f', long: "full"}, {short: 'l', long: "list-name"}})
	if len(a.positional) == 0 {
		c.warnf("pgrep: missing pattern")
		return "Get-Process | Select-Object -ExpandProperty Id"
	}
	pat := c.singleQuoted(a.positional[0])
	out := "Get-Process | Where-Object { $_.ProcessName -match " + pat + " }"
	if a.has("list-name") {
		return out + ` | ForEach-Object { "$($_.Id) $($_.ProcessName)" }`
	}
	return out + " | Select-Object -ExpandProperty Id"
}

func lsofCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, []flagSpec{{short: 'i', takesValue: true}, {short: 't'}, {short: 'n'}, {short: 'P'}})
	spec := a.str("i")
	if spec == "" {
		c.warnf("lsof: only the -i :PORT form is translated")
		return placeholder("lsof", "unsupported lsof invocation")
	}
	port := strings.TrimPrefix(spec, "tcp:")
	port = strings.TrimPrefix(port, ":")
	out := "Get-NetTCPConnection -LocalPort " + port
	if a.has("t") {
		out += " | Select-Object -ExpandProperty OwningProcess -Unique"
	}
	return out
}
