package translate

// curl, wget, jq. The native path hands curl and jq through untouched:
// curl.exe ships with modern Windows builds and agents already speak its
// flags. The fallback rebuilds the request on Invoke-WebRequest /
// Invoke-RestMethod.

import (
	"strings"

	"github.com/joyi-ai/bash-to-powershell/parse"
)

var curlFlags = []flagSpec{
	{short: 's', long: "silent"},
	{short: 'S', long: "show-error"},
	{short: 'L', long: "location"},
	{short: 'f', long: "fail"},
	{short: 'k', long: "insecure"},
	{short: 'I', long: "head"},
	{short: 'o', long: "output", takesValue: true},
	{short: 'O', long: "remote-name"},
	{short: 'X', long: "request", takesValue: true},
	{short: 'H', long: "header", takesValue: true},
	{short: 'd', long: "data", takesValue: true},
	{short: 'u', long: "user", takesValue: true},
	{short: 'A', long: "user-agent", takesValue: true},
	{long: "data-raw", takesValue: true},
	{long: "json", takesValue: true},
	{long: "retry", takesValue: true},
	{long: "max-time", takesValue: true},
}

func curlCmd(cmd *parse.SimpleCommand, c *context) string {
	if c.native && c.tools.Curl {
		return "curl.exe " + c.wordList(cmd.Args)
	}
	c.tookFallback()
	return c.curlFallback(parseArgs(cmd.Args, curlFlags))
}

func (c *context) curlFallback(a *parsedArgs) string {
	if len(a.positional) == 0 {
		c.warnf("curl: missing URL")
		return "$null"
	}
	url := c.word(a.positional[0])

	outFile := ""
	if w, ok := a.word("output"); ok {
		outFile = c.word(w)
	} else if a.has("remote-name") {
		outFile = "(Split-Path " + url + " -Leaf)"
	}

	var b strings.Builder
	if outFile != "" {
		b.WriteString("Invoke-WebRequest -Uri " + url + " -OutFile " + outFile)
	} else {
		b.WriteString("Invoke-RestMethod -Uri " + url)
	}

	method := a.str("request")
	data, hasData := a.word("data")
	if !hasData {
		data, hasData = a.word("data-raw")
	}
	if method == "" && hasData {
		method = "POST"
	}
	if a.has("head") {
		method = "HEAD"
	}
	if method != "" {
		b.WriteString(" -Method " + method)
	}
	if hasData {
		b.WriteString(" -Body " + c.word(data))
	}
	if headers := a.all("header"); len(headers) > 0 {
		b.WriteString(" -Headers @{ " + c.headerTable(headers) + " }")
	}
	if ua, ok := a.word("user-agent"); ok {
		b.WriteString(" -UserAgent " + c.word(ua))
	}
	if a.has("insecure") {
		c.warnf("curl: -k has no Invoke-WebRequest equivalent on PowerShell 5.1")
	}
	if a.has("user") {
		c.warnf("curl: -u credentials not translated")
	}
	return b.String()
}

// headerTable renders -H 'Key: Value' pairs as a hashtable body.
func (c *context) headerTable(headers []*parse.Word) string {
	entries := make([]string, 0, len(headers))
	for _, h := range headers {
		lit, ok := h.Lit()
		if !ok {
			entries = append(entries, c.word(h))
			continue
		}
		key, value, found := strings.Cut(lit, ":")
		if !found {
			c.warnf("curl: header %q not translated", lit)
			continue
		}
		entries = append(entries, psSingleQuote(strings.TrimSpace(key))+" = "+psSingleQuote(strings.TrimSpace(value)))
	}
	return strings.Join(entries, "; ")
}

var wgetFlags = []flagSpec{
	{short: 'q', long: "quiet"},
	{short: 'O', long: "output-document", takesValue: true},
	{short: 'c', long: "continue"},
}

func wgetCmd(cmd *parse.SimpleCommand, c *context) string {
	a := parseArgs(cmd.Args, wgetFlags)
	if len(a.positional) == 0 {
		c.warnf("wget: missing URL")
		return "$null"
	}
	url := c.word(a.positional[0])
	out := a.str("output-document")

	if c.native && c.tools.Curl {
		switch out {
		case "":
			return "curl.exe -sSL -O " + url
		case "-":
			return "curl.exe -sSL " + url
		default:
			return "curl.exe -sSL -o " + psSingleQuote(out) + " " + url
		}
	}

	c.tookFallback()
	switch out {
	case "":
		return "Invoke-WebRequest -Uri " + url + " -OutFile (Split-Path " + url + " -Leaf)"
	case "-":
		return "Invoke-RestMethod -Uri " + url
	default:
		return "Invoke-WebRequest -Uri " + url + " -OutFile " + psSingleQuote(out)
	}
}

func jqCmd(cmd *parse.SimpleCommand, c *context) string {
	if !c.tools.Jq {
		// There is no cmdlet that runs jq programs; the passthrough plus a
		// warning beats a wrong ConvertFrom-Json guess.
		c.warnf("jq: not found on PATH; install jq or rewrite with ConvertFrom-Json")
	}
	return c.passthrough(cmd)
}
