package translate

// test and [. Compound -a/-o chains, ! negation, the file/string unary
// predicates, and the comparison operators. The result is a boolean
// expression; bash's exit-code view of it is the caller's concern.

import (
	"github.com/joyi-ai/bash-to-powershell/parse"
)

func testCmd(cmd *parse.SimpleCommand, c *context) string {
	args := cmd.Args
	if name, _ := cmd.Name.Lit(); name == "[" {
		if n := len(args); n > 0 {
			if last, _ := args[n-1].Lit(); last == "]" {
				args = args[:n-1]
			}
		}
	}
	if len(args) == 0 {
		return "$false"
	}
	expr, ok := c.testOr(args)
	if !ok {
		c.warnf("test: expression not translated")
		return c.passthrough(cmd)
	}
	return "(" + expr + ")"
}

// testOr handles -o, the loosest-binding operator.
func (c *context) testOr(args []*parse.Word) (string, bool) {
	for i, w := range args {
		if lit, ok := w.Lit(); ok && lit == "-o" && i > 0 && i < len(args)-1 {
			left, lok := c.testAnd(args[:i])
			right, rok := c.testOr(args[i+1:])
			if !lok || !rok {
				return "", false
			}
			return left + " -or " + right, true
		}
	}
	return c.testAnd(args)
}

func (c *context) testAnd(args []*parse.Word) (string, bool) {
	for i, w := range args {
		if lit, ok := w.Lit(); ok && lit == "-a" && i > 0 && i < len(args)-1 {
			left, lok := c.testAtom(args[:i])
			right, rok := c.testAnd(args[i+1:])
			if !lok || !rok {
				return "", false
			}
			return left + " -and " + right, true
		}
	}
	return c.testAtom(args)
}

func (c *context) testAtom(args []*parse.Word) (string, bool) {
	if len(args) == 0 {
		return "", false
	}
	if lit, ok := args[0].Lit(); ok && lit == "!" {
		inner, iok := c.testAtom(args[1:])
		if !iok {
			return "", false
		}
		return "-not (" + inner + ")", true
	}

	switch len(args) {
	case 1:
		return "-not [string]::IsNullOrEmpty(" + c.word(args[0]) + ")", true
	case 2:
		op, _ := args[0].Lit()
		operand := c.word(args[1])
		switch op {
		case "-f":
			return "Test-Path -Path " + operand + " -PathType Leaf", true
		case "-d":
			return "Test-Path -Path " + operand + " -PathType Container", true
		case "-e":
			return "Test-Path -Path " + operand, true
		case "-s":
			return "(Test-Path -Path " + operand + ") -and ((Get-Item " + operand + ").Length -gt 0)", true
		case "-z":
			return "[string]::IsNullOrEmpty(" + operand + ")", true
		case "-n":
			return "-not [string]::IsNullOrEmpty(" + operand + ")", true
		case "-L", "-h":
			return "($null -ne (Get-Item " + operand + " -Force).LinkType)", true
		}
		return "", false
	case 3:
		op, _ := args[1].Lit()
		left := c.word(args[0])
		right := c.word(args[2])
		switch op {
		case "=", "==":
			return left + " -eq " + right, true
		case "!=":
			return left + " -ne " + right, true
		case "-eq", "-ne", "-gt", "-ge", "-lt", "-le":
			return left + " " + op + " " + right, true
		case "-nt":
			return "(Get-Item " + left + ").LastWriteTime -gt (Get-Item " + right + ").LastWriteTime", true
		case "-ot":
			return "(Get-Item " + left + ").LastWriteTime -lt (Get-Item " + right + ").LastWriteTime", true
		}
		return "", false
	}
	return "", false
}
