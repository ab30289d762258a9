package lex

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func equal(t testing.TB, wanted, actual interface{}) {
	t.Helper()
	if diff := cmp.Diff(wanted, actual); diff != "" {
		t.Errorf("%s", diff)
		fmt.Println(actual)
	}
}

func tok(k Kind, val string) Token {
	return Token{Kind: k, Val: val, TargetFd: -1}
}

func adj(k Kind, val string) Token {
	return Token{Kind: k, Val: val, TargetFd: -1, Adj: true}
}

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []Token
	}{
		{
			name: "words",
			in:   "echo hello",
			expected: []Token{
				tok(Word, "echo"),
				tok(Word, "hello"),
				tok(EOF, ""),
			},
		},
		{
			name: "quoting segments",
			in:   `echo "a b" 'c'$'d\t'`,
			expected: []Token{
				tok(Word, "echo"),
				tok(DoubleQuoted, "a b"),
				tok(SingleQuoted, "c"),
				adj(DollarSingleQuoted, "d\t"),
				tok(EOF, ""),
			},
		},
		{
			name: "operators",
			in:   "ls | wc -l && echo ok",
			expected: []Token{
				tok(Word, "ls"),
				tok(Pipe, "|"),
				tok(Word, "wc"),
				tok(Word, "-l"),
				tok(And, "&&"),
				tok(Word, "echo"),
				tok(Word, "ok"),
				tok(EOF, ""),
			},
		},
		{
			name: "background and semicolon",
			in:   "node server.js & echo done;",
			expected: []Token{
				tok(Word, "node"),
				tok(Word, "server.js"),
				tok(Background, "&"),
				tok(Word, "echo"),
				tok(Word, "done"),
				tok(Semi, ";"),
				tok(EOF, ""),
			},
		},
		{
			name: "redirects with fds",
			in:   "cmd > out.txt 2>&1",
			expected: []Token{
				tok(Word, "cmd"),
				{Kind: RedirectOut, Val: ">", Fd: 1, TargetFd: -1},
				tok(Word, "out.txt"),
				{Kind: RedirectOut, Val: ">&", Fd: 2, TargetFd: 1},
				tok(EOF, ""),
			},
		},
		{
			name: "append and input",
			in:   "sort < in.txt >> out.txt",
			expected: []Token{
				tok(Word, "sort"),
				{Kind: RedirectIn, Val: "<", Fd: 0, TargetFd: -1},
				tok(Word, "in.txt"),
				{Kind: RedirectAppend, Val: ">>", Fd: 1, TargetFd: -1},
				tok(Word, "out.txt"),
				tok(EOF, ""),
			},
		},
		{
			name: "here-string",
			in:   `grep x <<< "y z"`,
			expected: []Token{
				tok(Word, "grep"),
				tok(Word, "x"),
				{Kind: HereString, Val: "<<<", Fd: 0, TargetFd: -1},
				tok(DoubleQuoted, "y z"),
				tok(EOF, ""),
			},
		},
		{
			name: "heredoc expanding",
			in:   "cat <<EOF\nline1\nline2\nEOF\n",
			expected: []Token{
				tok(Word, "cat"),
				{Kind: HereDoc, Val: "line1\nline2", Fd: 1, TargetFd: -1},
				tok(Newline, "\n"),
				tok(EOF, ""),
			},
		},
		{
			name: "heredoc quoted delimiter",
			in:   "cat <<'EOF'\n$HOME\nEOF\n",
			expected: []Token{
				tok(Word, "cat"),
				{Kind: HereDoc, Val: "$HOME", Fd: 0, TargetFd: -1},
				tok(Newline, "\n"),
				tok(EOF, ""),
			},
		},
		{
			name: "heredoc tab strip matches delimiter only",
			in:   "cat <<-END\n\tbody\n\tEND\n",
			expected: []Token{
				tok(Word, "cat"),
				{Kind: HereDoc, Val: "\tbody", Fd: 1, TargetFd: -1},
				tok(Newline, "\n"),
				tok(EOF, ""),
			},
		},
		{
			name: "runaway heredoc closes at end of input",
			in:   "cat <<EOF\nleft",
			expected: []Token{
				tok(Word, "cat"),
				{Kind: HereDoc, Val: "left", Fd: 1, TargetFd: -1},
				tok(Newline, "\n"),
				tok(EOF, ""),
			},
		},
		{
			name: "unterminated quote closes at end of input",
			in:   "echo 'abc",
			expected: []Token{
				tok(Word, "echo"),
				tok(SingleQuoted, "abc"),
				tok(EOF, ""),
			},
		},
		{
			name: "comment skipped",
			in:   "echo hi # trailing words\n",
			expected: []Token{
				tok(Word, "echo"),
				tok(Word, "hi"),
				tok(Newline, "\n"),
				tok(EOF, ""),
			},
		},
		{
			name: "hash inside word is literal",
			in:   "nix run a#hello",
			expected: []Token{
				tok(Word, "nix"),
				tok(Word, "run"),
				tok(Word, "a#hello"),
				tok(EOF, ""),
			},
		},
		{
			name: "line continuation joins",
			in:   "echo a\\\nb",
			expected: []Token{
				tok(Word, "echo"),
				tok(Word, "ab"),
				tok(EOF, ""),
			},
		},
		{
			name: "command substitution stays balanced",
			in:   "echo $(ls $(pwd))",
			expected: []Token{
				tok(Word, "echo"),
				tok(Word, "$(ls $(pwd))"),
				tok(EOF, ""),
			},
		},
		{
			name: "quoted parens inside substitution",
			in:   `echo $(echo ")")`,
			expected: []Token{
				tok(Word, "echo"),
				tok(Word, `$(echo ")")`),
				tok(EOF, ""),
			},
		},
		{
			name: "double quote keeps escaped dollar for the parser",
			in:   `echo "\$HOME \"x\""`,
			expected: []Token{
				tok(Word, "echo"),
				tok(DoubleQuoted, `\$HOME "x"`),
				tok(EOF, ""),
			},
		},
		{
			name: "dollar single escapes",
			in:   `echo $'a\x41A\0101\q'`,
			expected: []Token{
				tok(Word, "echo"),
				tok(DollarSingleQuoted, "aAAAq"),
				tok(EOF, ""),
			},
		},
		{
			name: "subshell parens",
			in:   "(cd a; ls)",
			expected: []Token{
				tok(LeftParen, "("),
				tok(Word, "cd"),
				tok(Word, "a"),
				tok(Semi, ";"),
				tok(Word, "ls"),
				tok(RightParen, ")"),
				tok(EOF, ""),
			},
		},
		{
			name: "newline suppressed after separator",
			in:   "cd a &&\nls",
			expected: []Token{
				tok(Word, "cd"),
				tok(Word, "a"),
				tok(And, "&&"),
				tok(Word, "ls"),
				tok(EOF, ""),
			},
		},
		{
			name: "adjacent segments keep word glue",
			in:   `tag=v"1.2"'-rc'`,
			expected: []Token{
				tok(Word, "tag=v"),
				adj(DoubleQuoted, "1.2"),
				adj(SingleQuoted, "-rc"),
				tok(EOF, ""),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			equal(t, test.expected, Lex(test.in))
		})
	}
}

func TestLexDeterministic(t *testing.T) {
	in := `grep -rn "TODO" src/ | head -5 > /tmp/out.txt 2>&1`
	equal(t, Lex(in), Lex(in))
}
