package translate

// Shared GNU-style flag parsing. Every command translator declares a small
// spec table and gets back flags split from positionals. Unknown long
// flags are captured under their raw name; unknown short letters become
// booleans keyed by the letter, so translators can warn on what they saw
// rather than lose it.

import (
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

type flagSpec struct {
	short      byte
	long       string
	takesValue bool
}

type parsedArgs struct {
	bools map[string]bool
	// values keeps the last occurrence; lists keeps them all, for flags
	// like sed -e and curl -H that repeat.
	values     map[string]*parse.Word
	lists      map[string][]*parse.Word
	positional []*parse.Word
}

// has reports whether the flag was present, with or without a value.
func (a *parsedArgs) has(name string) bool {
	if a.bools[name] {
		return true
	}
	_, ok := a.values[name]
	return ok
}

// word returns the flag's value word.
func (a *parsedArgs) word(name string) (*parse.Word, bool) {
	w, ok := a.values[name]
	return w, ok
}

// str returns the flag value's literal text, or "" when absent or not
// literal.
func (a *parsedArgs) str(name string) string {
	w, ok := a.values[name]
	if !ok {
		return ""
	}
	s, _ := w.Lit()
	return s
}

// all returns every value the flag was given, in order.
func (a *parsedArgs) all(name string) []*parse.Word {
	return a.lists[name]
}

func (a *parsedArgs) setValue(name string, w *parse.Word) {
	a.values[name] = w
	a.lists[name] = append(a.lists[name], w)
}

// parseArgs splits args into flags and positionals.
//
// Handled forms: --long, --long=value, --long value, -x, combined -xyz,
// -xVALUE when -x takes a value, and -- as end-of-flags.
func parseArgs(args []*parse.Word, specs []flagSpec) *parsedArgs {
	a := &parsedArgs{
		bools:  make(map[string]bool),
		values: make(map[string]*parse.Word),
		lists:  make(map[string][]*parse.Word),
	}
	long := make(map[string]flagSpec)
	short := make(map[byte]flagSpec)
	for _, sp := range specs {
		if sp.long != "" {
			long[sp.long] = sp
		}
		if sp.short != 0 {
			short[sp.short] = sp
		}
	}

	rest := false
	for i := 0; i < len(args); i++ {
		w := args[i]
		lit, ok := w.Lit()
		if rest || !ok || len(lit) < 2 || lit[0] != '-' {
			a.positional = append(a.positional, w)
			continue
		}
		if lit == "--" {
			rest = true
			continue
		}
		if strings.HasPrefix(lit, "--") {
			name, val, hasEq := strings.Cut(lit[2:], "=")
			sp, known := long[name]
			switch {
			case hasEq:
				a.setValue(name, parse.LitWord(val))
			case known && sp.takesValue && i+1 < len(args):
				i++
				a.setValue(name, args[i])
			default:
				a.bools[name] = true
			}
			continue
		}
		body := lit[1:]
		for j := 0; j < len(body); j++ {
			sp, known := short[body[j]]
			name := string(body[j])
			if known && sp.long != "" {
				name = sp.long
			}
			if known && sp.takesValue {
				switch {
				case j+1 < len(body):
					a.setValue(name, parse.LitWord(body[j+1:]))
				case i+1 < len(args):
					i++
					a.setValue(name, args[i])
				default:
					a.bools[name] = true
				}
				j = len(body)
				continue
			}
			a.bools[name] = true
		}
	}
	return a
}
