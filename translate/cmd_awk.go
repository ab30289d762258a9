package translate

// awk, restricted to the programs agents actually emit: field printing,
// NR==N, /PAT/ guards, NF. Anything richer gets a commented placeholder
// and a warning — never a silent wrong translation.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

var awkFlags = []flagSpec{
	{short: 'F', long: "field-separator", takesValue: true},
	{short: 'v', long: "assign", takesValue: true},
}

var (
	awkPrintFields = regexp.MustCompile(`^\{\s*print\s+\$(\d+)(?:\s*,\s*\$(\d+))*\s*\}$`)
	awkFieldRef    = regexp.MustCompile(`\$(\d+)`)
	awkNRGuard     = regexp.MustCompile(`^NR\s*==\s*(\d+)\s*(\{\s*print(?:\s+\$(\d+))?\s*\})?$`)
	awkPatGuard    = regexp.MustCompile(`^/((?:[^/\\]|\\.)*)/\s*(\{\s*print(?:\s+\$(\d+))?\s*\})?$`)
)

func awkCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, awkFlags)
	if a.has("assign") {
		c.warnf("awk: -v not translated")
	}
	if len(a.positional) == 0 {
		c.warnf("awk: missing program")
		return c.passthrough(cmd)
	}
	program, _ := a.positional[0].Lit()
	files := a.positional[1:]

	sep := "'\\s+'"
	if d := a.str("field-separator"); d != "" {
		sep = psSingleQuote(regexp.QuoteMeta(d))
	}

	body, ok := awkProgram(strings.TrimSpace(program), sep)
	if !ok {
		c.warnf("awk: program %q not translated", program)
		return placeholder(program, "unsupported awk program")
	}
	return c.inputPrefix(files) + body
}

func awkProgram(program, sep string) (string, bool) {
	field := func(n string) string {
		return fmt.Sprintf("($_ -split %s)[%s]", sep, dec(n))
	}

	switch program {
	case "{print}", "{ print }", "{print $0}", "{ print $0 }":
		return "ForEach-Object { $_ }", true
	case "{print NF}", "{ print NF }":
		return fmt.Sprintf("ForEach-Object { ($_ -split %s).Count }", sep), true
	}

	if awkPrintFields.MatchString(program) {
		nums := awkFieldRef.FindAllStringSubmatch(program, -1)
		idxs := make([]string, 0, len(nums))
		for _, n := range nums {
			if n[1] == "0" {
				return "", false
			}
			idxs = append(idxs, dec(n[1]))
		}
		if len(idxs) == 1 {
			return "ForEach-Object { " + field(nums[0][1]) + " }", true
		}
		return fmt.Sprintf("ForEach-Object { (($_ -split %s)[%s] -join ' ') }", sep, strings.Join(idxs, ",")), true
	}

	if m := awkNRGuard.FindStringSubmatch(program); m != nil {
		inner := "$_"
		if m[3] != "" && m[3] != "0" {
			inner = field(m[3])
		}
		return fmt.Sprintf("ForEach-Object -Begin { $n = 0 } -Process { $n++; if ($n -eq %s) { %s } }", m[1], inner), true
	}

	if m := awkPatGuard.FindStringSubmatch(program); m != nil {
		pat := psSingleQuote(m[1])
		if m[3] != "" && m[3] != "0" {
			return fmt.Sprintf("Where-Object { $_ -match %s } | ForEach-Object { %s }", pat, field(m[3])), true
		}
		return "Where-Object { $_ -match " + pat + " }", true
	}

	return "", false
}

// dec shifts awk's 1-based field number to a 0-based index. $0 never
// reaches here.
func dec(n string) string {
	v, _ := strconv.Atoi(n)
	return strconv.Itoa(v - 1)
}
