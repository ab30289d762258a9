package parse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joyi-ai/bash-to-powershell/lex"
)

func equal(t testing.TB, wanted, actual interface{}) {
	t.Helper()
	if diff := cmp.Diff(wanted, actual); diff != "" {
		t.Errorf("%s", diff)
		fmt.Println(actual)
	}
}

func mustParse(t *testing.T, in string) *Script {
	t.Helper()
	s, err := Parse(lex.Lex(in))
	if err != nil {
		t.Fatalf("parse %q: %v", in, err)
	}
	return s
}

func lit(s string) *Word {
	return &Word{Parts: []WordPart{&Literal{Val: s}}}
}

func simple(name string, args ...*Word) *SimpleCommand {
	return &SimpleCommand{Name: lit(name), Args: args}
}

func pipeline(cmds ...Command) *Pipeline {
	return &Pipeline{Commands: cmds}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected *Script
	}{
		{
			name: "simple command",
			in:   "echo hello world",
			expected: &Script{Stmts: []Stmt{
				pipeline(simple("echo", lit("hello"), lit("world"))),
			}},
		},
		{
			name: "pipeline",
			in:   "cat f.txt | wc -l",
			expected: &Script{Stmts: []Stmt{
				pipeline(
					simple("cat", lit("f.txt")),
					simple("wc", lit("-l")),
				),
			}},
		},
		{
			name: "logical chain is left associative",
			in:   "cd a && npm i || echo fail",
			expected: &Script{Stmts: []Stmt{
				&LogicalExpr{
					Op: OpOr,
					Left: &LogicalExpr{
						Op:    OpAnd,
						Left:  pipeline(simple("cd", lit("a"))),
						Right: pipeline(simple("npm", lit("i"))),
					},
					Right: pipeline(simple("echo", lit("fail"))),
				},
			}},
		},
		{
			name: "semicolon separates statements",
			in:   "cd a; ls",
			expected: &Script{Stmts: []Stmt{
				pipeline(simple("cd", lit("a"))),
				pipeline(simple("ls")),
			}},
		},
		{
			name: "negated pipeline",
			in:   "! grep -q x f",
			expected: &Script{Stmts: []Stmt{
				&Pipeline{
					Negated:  true,
					Commands: []Command{simple("grep", lit("-q"), lit("x"), lit("f"))},
				},
			}},
		},
		{
			name: "background pipeline",
			in:   "node server.js &",
			expected: &Script{Stmts: []Stmt{
				&Pipeline{
					Background: true,
					Commands:   []Command{simple("node", lit("server.js"))},
				},
			}},
		},
		{
			name: "inline assignments attach to the command",
			in:   "FOO=1 BAR=2 make",
			expected: &Script{Stmts: []Stmt{
				pipeline(&SimpleCommand{
					Assignments: []Assignment{
						{Name: "FOO", Value: lit("1")},
						{Name: "BAR", Value: lit("2")},
					},
					Name: lit("make"),
				}),
			}},
		},
		{
			name: "bare assignment lifts to a statement",
			in:   "FOO=bar",
			expected: &Script{Stmts: []Stmt{
				&AssignmentStatement{Assignments: []Assignment{
					{Name: "FOO", Value: lit("bar")},
				}},
			}},
		},
		{
			name: "empty assignment value",
			in:   "FOO=",
			expected: &Script{Stmts: []Stmt{
				&AssignmentStatement{Assignments: []Assignment{
					{Name: "FOO", Value: &Word{}},
				}},
			}},
		},
		{
			name: "subshell with redirect",
			in:   "(cd a; ls) > out.txt",
			expected: &Script{Stmts: []Stmt{
				pipeline(&Subshell{
					Body: &Script{Stmts: []Stmt{
						pipeline(simple("cd", lit("a"))),
						pipeline(simple("ls")),
					}},
					Redirects: []Redirect{
						{Op: RedirOut, Fd: 1, Target: lit("out.txt"), TargetFd: -1},
					},
				}),
			}},
		},
		{
			name: "redirect with fd prefix",
			in:   "cmd 2> err.log",
			expected: &Script{Stmts: []Stmt{
				pipeline(&SimpleCommand{
					Name: lit("cmd"),
					Redirects: []Redirect{
						{Op: RedirOut, Fd: 2, Target: lit("err.log"), TargetFd: -1},
					},
				}),
			}},
		},
		{
			name: "fd duplication",
			in:   "cmd 2>&1",
			expected: &Script{Stmts: []Stmt{
				pipeline(&SimpleCommand{
					Name: lit("cmd"),
					Redirects: []Redirect{
						{Op: RedirOut, Fd: 2, Target: lit("&1"), TargetFd: 1},
					},
				}),
			}},
		},
		{
			name: "double quoted word splits into parts",
			in:   `echo "a $HOME b"`,
			expected: &Script{Stmts: []Stmt{
				pipeline(simple("echo", &Word{Parts: []WordPart{
					&Literal{Val: "a ", Quoting: Double},
					&Variable{Name: "HOME"},
					&Literal{Val: " b", Quoting: Double},
				}})),
			}},
		},
		{
			name: "braced variable glues to literal",
			in:   "echo ${FOO}bar",
			expected: &Script{Stmts: []Stmt{
				pipeline(simple("echo", &Word{Parts: []WordPart{
					&Variable{Name: "FOO", Braced: true},
					&Literal{Val: "bar"},
				}})),
			}},
		},
		{
			name: "special variables",
			in:   `echo $? $@ $1`,
			expected: &Script{Stmts: []Stmt{
				pipeline(simple("echo",
					&Word{Parts: []WordPart{&Variable{Name: "?"}}},
					&Word{Parts: []WordPart{&Variable{Name: "@"}}},
					&Word{Parts: []WordPart{&Variable{Name: "1"}}},
				)),
			}},
		},
		{
			name: "glob pattern",
			in:   "rm *.txt",
			expected: &Script{Stmts: []Stmt{
				pipeline(simple("rm", &Word{Parts: []WordPart{&Glob{Pattern: "*.txt"}}})),
			}},
		},
		{
			name: "escaped glob is a literal",
			in:   `rm \*.txt`,
			expected: &Script{Stmts: []Stmt{
				pipeline(simple("rm", lit("*.txt"))),
			}},
		},
		{
			name: "command substitution",
			in:   "echo $(basename $(pwd))",
			expected: &Script{Stmts: []Stmt{
				pipeline(simple("echo", &Word{Parts: []WordPart{
					&CmdSubst{Command: "basename $(pwd)"},
				}})),
			}},
		},
		{
			name: "here-string attaches as redirect",
			in:   `wc -l <<< "a b"`,
			expected: &Script{Stmts: []Stmt{
				pipeline(&SimpleCommand{
					Name: lit("wc"),
					Args: []*Word{lit("-l")},
					Redirects: []Redirect{
						{
							Op: RedirHereString,
							Fd: 0,
							Target: &Word{Parts: []WordPart{
								&Literal{Val: "a b", Quoting: Double},
							}},
							TargetFd: -1,
						},
					},
				}),
			}},
		},
		{
			name: "quoted heredoc body is one single-quoted literal",
			in:   "cat <<'EOF'\n$HOME\nEOF\n",
			expected: &Script{Stmts: []Stmt{
				pipeline(&SimpleCommand{
					Name: lit("cat"),
					Redirects: []Redirect{
						{
							Op: RedirHereString,
							Fd: 0,
							Target: &Word{Parts: []WordPart{
								&Literal{Val: "$HOME", Quoting: Single},
							}},
							TargetFd: -1,
						},
					},
				}),
			}},
		},
		{
			name: "unsupported parameter expansion stays literal",
			in:   "echo ${FOO:-bar}",
			expected: &Script{Stmts: []Stmt{
				pipeline(simple("echo", lit("${FOO:-bar}"))),
			}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			equal(t, test.expected, mustParse(t, test.in))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "unclosed subshell", in: "(echo hi"},
		{name: "stray close paren", in: "echo hi )"},
		{name: "missing redirect target", in: "echo >"},
		{name: "missing pipe operand", in: "ls |"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Parse(lex.Lex(test.in)); err == nil {
				t.Errorf("expected error for %q", test.in)
			}
		})
	}
}

func TestPprintAST(t *testing.T) {
	s := mustParse(t, "cat f.txt | wc -l")
	out := PprintAST(s)
	for _, want := range []string{"Script{", "Pipeline{", "SimpleCommand{", `"cat"`, `"-l"`} {
		if !strings.Contains(out, want) {
			t.Errorf("pprint output missing %q:\n%s", want, out)
		}
	}
}

func TestWordLit(t *testing.T) {
	s := mustParse(t, `grep "a b"'c' *.go`)
	cmd := s.Stmts[0].(*Pipeline).Commands[0].(*SimpleCommand)

	got, ok := cmd.Args[0].Lit()
	if !ok || got != "a bc" {
		t.Errorf("Lit() = %q, %v", got, ok)
	}
	got, ok = cmd.Args[1].Lit()
	if !ok || got != "*.go" {
		t.Errorf("Lit() = %q, %v", got, ok)
	}
	if _, ok := mustParse(t, "echo $HOME").Stmts[0].(*Pipeline).Commands[0].(*SimpleCommand).Args[0].Lit(); ok {
		t.Error("Lit() should fail on a variable word")
	}
}
