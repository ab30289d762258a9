package translate

import (
	"testing"
)

func TestPsSingleQuote(t *testing.T) {
	equal(t, `'cool ''shit'' yo'`, psSingleQuote(`cool 'shit' yo`))
	equal(t, `''`, psSingleQuote(""))
}

func TestPsDoubleEscape(t *testing.T) {
	equal(t, "a`$b``"+"`\"c", psDoubleEscape("a$b`\"c"))
	equal(t, "plain", psDoubleEscape("plain"))
}

func TestPsControlEscape(t *testing.T) {
	equal(t, "a`tb`nc`r`0", psControlEscape("a\tb\nc\r\x00"))
	equal(t, "`a`b`e", psControlEscape("\x07\x08\x1b"))
}

func TestEmbedVariable(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"$env:USERPROFILE", "$env:USERPROFILE"},
		{"${env:MY_VAR}", "${env:MY_VAR}"},
		{"(Get-Random)", "$(Get-Random)"},
		{"$args[0]", "$($args[0])"},
		{"$args.Count", "$($args.Count)"},
		{"$MyInvocation.MyCommand.Name", "$($MyInvocation.MyCommand.Name)"},
		{"$LASTEXITCODE", "$LASTEXITCODE"},
	}
	for _, test := range tests {
		equal(t, test.expected, embedVariable(test.in))
	}
}

func TestRewritePath(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		ok       bool
	}{
		{"~", "$env:USERPROFILE", true},
		{"~/src", `$env:USERPROFILE\src`, true},
		{"~/a b", `"$env:USERPROFILE\a b"`, true},
		{"/tmp", "$env:TEMP", true},
		{"/tmp/", "$env:TEMP", true},
		{"/tmp/build/out.txt", `$env:TEMP\build\out.txt`, true},
		{"/tmpfile", "", false},
		{"src/~", "", false},
		{"plain", "", false},
	}
	for _, test := range tests {
		got, ok := rewritePath(test.in)
		equal(t, test.ok, ok)
		equal(t, test.expected, got)
	}
}

func TestSafeUnquoted(t *testing.T) {
	for _, safe := range []string{"frontend", "a-b_c.d", "src/", "http://x", "*.txt", "v1.2?", "k=v", "100%"} {
		if !isSafeUnquoted(safe) {
			t.Errorf("%q should be safe bare", safe)
		}
	}
	for _, unsafe := range []string{"", "a b", "a'b", `a"b`, "a(b)", "a;b", "a$b"} {
		if isSafeUnquoted(unsafe) {
			t.Errorf("%q should need quotes", unsafe)
		}
	}
}
