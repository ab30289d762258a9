// Command bash-to-powershell converts agent-style bash command lines into
// PowerShell. It reads one command from -c or stdin, or runs an
// interactive prompt when stdin is a terminal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/joyi-ai/bash-to-powershell/lex"
	"github.com/joyi-ai/bash-to-powershell/parse"
	"github.com/joyi-ai/bash-to-powershell/translate"
)

type options struct {
	Command string
	Dump    bool
	Meta    bool
	Script  bool
	Native  bool
	Tools   string
}

func do() error {
	var o options
	flag.StringVar(&o.Command, "c", "", "translate this command instead of reading stdin")
	flag.BoolVar(&o.Dump, "dump", false, "dump the AST instead of translating")
	flag.BoolVar(&o.Meta, "meta", false, "append warnings as trailing comments")
	flag.BoolVar(&o.Script, "script", false, "join statements with newlines")
	flag.BoolVar(&o.Native, "native", true, "prefer rg/fd/curl.exe when available")
	flag.StringVar(&o.Tools, "tools", "", "override the PATH probe: comma list of rg,fd,curl,jq, or 'none'")
	flag.Parse()

	opts := &translate.Options{NoNativeTools: !o.Native}
	if o.Tools != "" {
		opts.Tools = parseTools(o.Tools)
	}

	if o.Command != "" {
		return emit(o.Command, &o, opts)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return repl(&o, opts)
	}
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	return emit(string(input), &o, opts)
}

func parseTools(list string) *translate.Tools {
	t := &translate.Tools{}
	if list == "none" {
		return t
	}
	for _, name := range strings.Split(list, ",") {
		switch strings.TrimSpace(name) {
		case "rg":
			t.Rg = true
		case "fd":
			t.Fd = true
		case "curl":
			t.Curl = true
		case "jq":
			t.Jq = true
		}
	}
	return t
}

func emit(bash string, o *options, opts *translate.Options) error {
	if o.Dump {
		script, err := parse.Parse(lex.Lex(bash))
		if err != nil {
			return err
		}
		fmt.Println(parse.PprintAST(script))
		return nil
	}

	var result *translate.Result
	if o.Script {
		result = translate.TranspileScript(bash, opts)
	} else {
		result = translate.TranspileWithMeta(bash, opts)
	}
	fmt.Println(result.PowerShell)
	if o.Meta {
		for _, w := range result.Warnings {
			fmt.Println("# warning:", w)
		}
		if result.UsedFallbacks {
			fmt.Println("# used cmdlet fallbacks")
		}
	}
	return nil
}

func repl(o *options, opts *translate.Options) error {
	stdin := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("bash> ")
		input, err := stdin.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return err
			}
			return nil
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		if err := emit(input, o, opts); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func main() {
	if err := do(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
