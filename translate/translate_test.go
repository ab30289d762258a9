package translate

import (
	"fmt"
	"strings"
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

// noTools pins the probe so tests never depend on the host PATH.
var noTools = &Tools{}

func run(in string) string {
	return Transpile(in, &Options{Tools: noTools})
}

func runWith(in string, tools *Tools) *Result {
	return TranspileWithMeta(in, &Options{Tools: tools})
}

func TestTranspile(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			name:     "logical and",
			in:       "cd frontend && npm install",
			expected: "Set-Location frontend; if ($?) { npm install }",
		},
		{
			name:     "logical or",
			in:       "npm test || echo failed",
			expected: "npm test; if (-not $?) { Write-Output failed }",
		},
		{
			name:     "statement sequence",
			in:       "cd a; ls",
			expected: "Set-Location a; Get-ChildItem | Select-Object -ExpandProperty Name",
		},
		{
			name:     "count pipeline",
			in:       `cat file.txt | grep "error" | wc -l`,
			expected: "Get-Content file.txt | Select-String -Pattern 'error' -CaseSensitive | ForEach-Object { $_.Line } | Measure-Object -Line | ForEach-Object { $_.Lines }",
		},
		{
			name:     "background job",
			in:       "node server.js &",
			expected: "Start-Job -ScriptBlock { node server.js }",
		},
		{
			name:     "remove then create",
			in:       "rm -rf dist && mkdir -p build",
			expected: "Remove-Item -Path 'dist' -Recurse -Force; if ($?) { New-Item -ItemType Directory -Force -Path 'build' }",
		},
		{
			name:     "ls long listing",
			in:       "ls -la src/",
			expected: `Get-ChildItem -Force -Path src/ | ForEach-Object { "$($_.Mode) $($_.Length) $($_.LastWriteTime) $($_.Name)" }`,
		},
		{
			name:     "ls sorted by time",
			in:       "ls -t",
			expected: "Get-ChildItem | Sort-Object LastWriteTime -Descending | Select-Object -ExpandProperty Name",
		},
		{
			name:     "unknown command passes through",
			in:       "git commit -m 'fix the bug'",
			expected: "git commit -m 'fix the bug'",
		},
		{
			name:     "passthrough keeps variables",
			in:       "docker run -e TOKEN=$TOKEN img",
			expected: `docker run -e "TOKEN=$env:TOKEN" img`,
		},
		{
			name:     "subshell",
			in:       "(cd /tmp && ls)",
			expected: "& { Set-Location $env:TEMP; if ($?) { Get-ChildItem | Select-Object -ExpandProperty Name } }",
		},
		{
			name:     "negated pipeline",
			in:       "! grep -q x f.txt",
			expected: "!(Select-String -Pattern 'x' -CaseSensitive -Path 'f.txt' | Out-Null)",
		},
		{
			name:     "bare assignment",
			in:       "FOO=bar",
			expected: "$env:FOO = bar",
		},
		{
			name:     "inline assignments prefix the command",
			in:       "FOO='a b' BAZ=2 make",
			expected: "$env:FOO = 'a b'; $env:BAZ = 2; make",
		},
		{
			name:     "export with expansion",
			in:       "export PATH=$HOME/bin:$PATH",
			expected: `$env:PATH = "$env:USERPROFILE/bin:$env:PATH"`,
		},
		{
			name:     "null redirect collapses",
			in:       "npm install > /dev/null 2>&1",
			expected: "npm install >$null 2>&1",
		},
		{
			name:     "stderr redirect keeps fd",
			in:       "node x.js 2> err.log",
			expected: "node x.js 2> err.log",
		},
		{
			name:     "append redirect",
			in:       "echo done >> build.log",
			expected: "Write-Output done >> build.log",
		},
		{
			name:     "input redirect becomes a pipe",
			in:       "wc -l < notes.txt",
			expected: "Get-Content notes.txt | Measure-Object -Line | ForEach-Object { $_.Lines }",
		},
		{
			name:     "here-string feeds the pipe",
			in:       `wc -l <<< "a b"`,
			expected: `("a b") | Measure-Object -Line | ForEach-Object { $_.Lines }`,
		},
		{
			name:     "quoted heredoc stays verbatim",
			in:       "cat <<'EOF'\nraw $HOME\nEOF\n",
			expected: "('raw $HOME') | ForEach-Object { $_ }",
		},
		{
			name:     "unquoted heredoc expands",
			in:       "cat <<EOF\nhome $HOME\nEOF\n",
			expected: `("home $env:USERPROFILE") | ForEach-Object { $_ }`,
		},
		{
			name:     "tilde expands unquoted",
			in:       "cat ~/notes.txt",
			expected: `Get-Content $env:USERPROFILE\notes.txt`,
		},
		{
			name:     "tmp maps to TEMP",
			in:       "cp a.txt /tmp/b.txt",
			expected: `Copy-Item -Path a.txt -Destination $env:TEMP\b.txt`,
		},
		{
			name:     "command substitution",
			in:       "echo $(basename /tmp/x.txt)",
			expected: `Write-Output $(Split-Path $env:TEMP\x.txt -Leaf)`,
		},
		{
			name:     "substitution inside quotes",
			in:       `echo "today is $(date)"`,
			expected: `Write-Output "today is $(Get-Date)"`,
		},
		{
			name:     "special variables",
			in:       "echo $?",
			expected: "Write-Output $LASTEXITCODE",
		},
		{
			name:     "positional argument",
			in:       "echo $1",
			expected: "Write-Output $args[0]",
		},
		{
			name:     "single quotes preserved",
			in:       "echo 'a$b'",
			expected: "Write-Output 'a$b'",
		},
		{
			name:     "dollar single with control bytes",
			in:       `echo $'a\tb'`,
			expected: "Write-Output \"a`tb\"",
		},
		{
			name:     "echo -n",
			in:       "echo -n hi",
			expected: "Write-Host -NoNewline hi",
		},
		{
			name:     "echo -e escapes",
			in:       `echo -e "a\nb"`,
			expected: "Write-Output \"a`nb\"",
		},
		{
			name:     "echo joins arguments",
			in:       "echo a b",
			expected: `Write-Output "a b"`,
		},
		{
			name:     "test file predicate",
			in:       "[ -f config.json ] && cat config.json",
			expected: "(Test-Path -Path config.json -PathType Leaf); if ($?) { Get-Content config.json }",
		},
		{
			name:     "test string comparison",
			in:       `[ "$NODE_ENV" != production ]`,
			expected: "($env:NODE_ENV -ne production)",
		},
		{
			name:     "test negation",
			in:       "[ ! -d build ]",
			expected: "(-not (Test-Path -Path build -PathType Container))",
		},
		{
			name:     "head",
			in:       "head -n 5 log.txt",
			expected: "Get-Content log.txt | Select-Object -First 5",
		},
		{
			name:     "tail follow",
			in:       "tail -f app.log",
			expected: "Get-Content -Path app.log -Wait -Tail 10",
		},
		{
			name:     "sort unique reverse",
			in:       "sort -ru names.txt",
			expected: "Get-Content names.txt | Sort-Object -Descending -Unique",
		},
		{
			name:     "uniq counts",
			in:       "sort names.txt | uniq -c",
			expected: `Get-Content names.txt | Sort-Object | Group-Object | ForEach-Object { "$($_.Count) $($_.Name)" }`,
		},
		{
			name:     "cut field",
			in:       "cut -d: -f1 /etc/passwd",
			expected: "Get-Content /etc/passwd | ForEach-Object { ($_ -split ':')[0] }",
		},
		{
			name:     "sed substitute",
			in:       "sed 's/foo/bar/' file.txt",
			expected: "Get-Content file.txt | ForEach-Object { $_ -creplace 'foo', 'bar' }",
		},
		{
			name:     "sed in place with backup",
			in:       "sed -i.bak 's/a/b/' f.txt",
			expected: "Copy-Item 'f.txt' 'f.txt.bak'; (Get-Content 'f.txt') | ForEach-Object { $_ -creplace 'a', 'b' } | Set-Content 'f.txt'",
		},
		{
			name:     "sed delete matching",
			in:       "sed '/^#/d' conf",
			expected: "Get-Content conf | Where-Object { $_ -notmatch '^#' }",
		},
		{
			name:     "awk field",
			in:       "ps aux | awk '{print $2}'",
			expected: `Get-Process | ForEach-Object { ($_ -split '\s+')[1] }`,
		},
		{
			name:     "awk with separator",
			in:       "awk -F: '{print $1}' /etc/passwd",
			expected: "Get-Content /etc/passwd | ForEach-Object { ($_ -split ':')[0] }",
		},
		{
			name:     "xargs with placeholder",
			in:       "ls | xargs -I{} echo {}",
			expected: "Get-ChildItem | Select-Object -ExpandProperty Name | ForEach-Object { echo $_ }",
		},
		{
			name:     "kill force",
			in:       "kill -9 1234",
			expected: "Stop-Process -Id 1234 -Force",
		},
		{
			name:     "lsof port form",
			in:       "lsof -i :8080",
			expected: "Get-NetTCPConnection -LocalPort 8080",
		},
		{
			name:     "chmod executable",
			in:       "chmod +x run.sh",
			expected: "Unblock-File -Path 'run.sh'",
		},
		{
			name:     "zip archive",
			in:       "zip -r out.zip src",
			expected: "Compress-Archive -Path src -DestinationPath out.zip -Force",
		},
		{
			name:     "unzip to directory",
			in:       "unzip pkg.zip -d vendor",
			expected: "Expand-Archive -Path pkg.zip -DestinationPath vendor",
		},
		{
			name:     "which",
			in:       "which node",
			expected: "Get-Command node | Select-Object -ExpandProperty Source",
		},
		{
			name:     "sleep minutes",
			in:       "sleep 5m",
			expected: "Start-Sleep -Seconds (5 * 60)",
		},
		{
			name:     "date format",
			in:       "date +%Y-%m-%d",
			expected: "Get-Date -UFormat '%Y-%m-%d'",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			equal(t, test.expected, run(test.in))
		})
	}
}

func TestDualPath(t *testing.T) {
	t.Run("grep prefers rg", func(t *testing.T) {
		r := runWith(`grep -r "TODO" src/`, &Tools{Rg: true})
		equal(t, "rg 'TODO' 'src/'", r.PowerShell)
		equal(t, false, r.UsedFallbacks)
	})
	t.Run("grep falls back to Select-String", func(t *testing.T) {
		r := runWith(`grep -r "TODO" src/`, noTools)
		equal(t, true, r.UsedFallbacks)
		if !strings.Contains(r.PowerShell, "Get-ChildItem") || !strings.Contains(r.PowerShell, "-Recurse") {
			t.Errorf("recursive fallback must walk the tree: %s", r.PowerShell)
		}
	})
	t.Run("piped grep stays pure", func(t *testing.T) {
		r := runWith("history | grep ssh", noTools)
		for _, banned := range []string{"Get-ChildItem", "-Path"} {
			if strings.Contains(r.PowerShell, banned) {
				t.Errorf("piped grep must not contain %s: %s", banned, r.PowerShell)
			}
		}
	})
	t.Run("single file grep avoids Get-ChildItem", func(t *testing.T) {
		r := runWith("grep err app.log", noTools)
		if strings.Contains(r.PowerShell, "Get-ChildItem") {
			t.Errorf("single-file grep must not walk the tree: %s", r.PowerShell)
		}
		if !strings.Contains(r.PowerShell, "ForEach-Object { $_.Line }") {
			t.Errorf("single-file grep must emit lines only: %s", r.PowerShell)
		}
	})
	t.Run("find prefers fd", func(t *testing.T) {
		r := runWith(`find . -name "*.ts" -type f`, &Tools{Fd: true})
		equal(t, "fd -g '*.ts' -t f '.'", r.PowerShell)
		equal(t, false, r.UsedFallbacks)
	})
	t.Run("find fallback expands FullName", func(t *testing.T) {
		r := runWith(`find . -name "*.ts"`, noTools)
		equal(t, "Get-ChildItem -Path . -Recurse -Filter '*.ts' | Select-Object -ExpandProperty FullName", r.PowerShell)
		equal(t, true, r.UsedFallbacks)
	})
	t.Run("find delete replaces the tail", func(t *testing.T) {
		r := runWith(`find . -name "*.log" -delete`, &Tools{Fd: true})
		if strings.Contains(r.PowerShell, "FullName") {
			t.Errorf("-delete must replace the expand tail: %s", r.PowerShell)
		}
		if !strings.Contains(r.PowerShell, "Remove-Item") {
			t.Errorf("-delete must remove: %s", r.PowerShell)
		}
	})
	t.Run("curl passes through to curl.exe", func(t *testing.T) {
		r := runWith("curl -s https://api.test/v1", &Tools{Curl: true})
		equal(t, "curl.exe -s https://api.test/v1", r.PowerShell)
		equal(t, false, r.UsedFallbacks)
	})
	t.Run("curl falls back to Invoke-RestMethod", func(t *testing.T) {
		r := runWith("curl -s https://api.test/v1", noTools)
		equal(t, "Invoke-RestMethod -Uri https://api.test/v1", r.PowerShell)
		equal(t, true, r.UsedFallbacks)
	})
	t.Run("curl output file uses Invoke-WebRequest", func(t *testing.T) {
		r := runWith("curl -o out.json https://api.test/v1", noTools)
		equal(t, "Invoke-WebRequest -Uri https://api.test/v1 -OutFile out.json", r.PowerShell)
	})
	t.Run("jq warns when absent", func(t *testing.T) {
		r := runWith("cat p.json | jq .name", noTools)
		equal(t, "Get-Content p.json | jq .name", r.PowerShell)
		equal(t, 1, len(r.Warnings))
		equal(t, false, r.UsedFallbacks)
	})
	t.Run("NoNativeTools forces the fallback", func(t *testing.T) {
		r := TranspileWithMeta("grep x f", &Options{Tools: &Tools{Rg: true}, NoNativeTools: true})
		equal(t, true, r.UsedFallbacks)
		if !strings.Contains(r.PowerShell, "Select-String") {
			t.Errorf("expected Select-String: %s", r.PowerShell)
		}
	})
}

func TestMeta(t *testing.T) {
	t.Run("blank input", func(t *testing.T) {
		r := runWith("   \n\t", noTools)
		equal(t, &Result{PowerShell: ""}, r)
	})
	t.Run("parse error becomes a comment", func(t *testing.T) {
		r := runWith("echo (", noTools)
		if !strings.HasPrefix(r.PowerShell, "# TRANSPILE ERROR: ") {
			t.Errorf("missing error comment: %s", r.PowerShell)
		}
		if !strings.Contains(r.PowerShell, "\n# Original: echo (") {
			t.Errorf("missing original line: %s", r.PowerShell)
		}
		equal(t, 1, len(r.Warnings))
		equal(t, []string{"echo ("}, r.Unsupported)
	})
	t.Run("sudo strips with a warning", func(t *testing.T) {
		r := runWith("sudo npm install -g tsc", noTools)
		equal(t, "npm install -g tsc", r.PowerShell)
		equal(t, 1, len(r.Warnings))
	})
	t.Run("chmod numeric mode warns with a placeholder", func(t *testing.T) {
		r := runWith("chmod 755 run.sh", noTools)
		if !strings.HasPrefix(r.PowerShell, "# ") {
			t.Errorf("expected a comment placeholder: %s", r.PowerShell)
		}
		equal(t, 1, len(r.Warnings))
	})
	t.Run("awk rejects unknown programs loudly", func(t *testing.T) {
		r := runWith("awk 'BEGIN{x=1}'", noTools)
		if !strings.HasPrefix(r.PowerShell, "# ") {
			t.Errorf("expected a comment placeholder: %s", r.PowerShell)
		}
		equal(t, 1, len(r.Warnings))
	})
	t.Run("substitution warnings aggregate upward", func(t *testing.T) {
		r := runWith("echo $(sudo whoami)", noTools)
		equal(t, 1, len(r.Warnings))
		equal(t, "Write-Output $($env:USERNAME)", r.PowerShell)
	})
	t.Run("deterministic", func(t *testing.T) {
		in := `grep -rn "TODO" src/ | head -3`
		equal(t, run(in), run(in))
	})
	t.Run("statements keep source order", func(t *testing.T) {
		r := runWith("echo one; echo two; echo three", noTools)
		first := strings.Index(r.PowerShell, "one")
		second := strings.Index(r.PowerShell, "two")
		third := strings.Index(r.PowerShell, "three")
		if !(first < second && second < third) {
			t.Errorf("statement order lost: %s", r.PowerShell)
		}
	})
}

func TestTranspileScript(t *testing.T) {
	r := TranspileScript("cd a\nls", &Options{Tools: noTools})
	equal(t, "Set-Location a\nGet-ChildItem | Select-Object -ExpandProperty Name", r.PowerShell)
}

func TestToolCache(t *testing.T) {
	ResetToolCache()
	first := DetectTools()
	second := DetectTools()
	equal(t, first, second)
	ResetToolCache()
	equal(t, first, DetectTools())
}
