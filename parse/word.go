package parse

// Second-pass word scanning. The lexer closes quotes but does not identify
// embedded expansions; these scanners split a token payload into parts.

import (
	"strings"

	"mvdan.cc/sh/v3/pattern"
	"mvdan.cc/sh/v3/syntax"
)

const specialVars = "?#!$@0123456789"

// scanUnquoted splits an unquoted segment into parts: literal runs,
// expansions, and glob patterns. Backslash escapes resolve here; the raw
// form of each run (escapes intact) decides whether it is a glob.
func scanUnquoted(s string) []WordPart {
	var parts []WordPart
	var lit, raw strings.Builder
	flush := func() {
		if raw.Len() == 0 {
			return
		}
		if pattern.HasMeta(raw.String(), 0) {
			parts = append(parts, &Glob{Pattern: raw.String()})
		} else {
			parts = append(parts, &Literal{Val: lit.String(), Quoting: Unquoted})
		}
		lit.Reset()
		raw.Reset()
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\':
			if i+1 < len(s) {
				lit.WriteByte(s[i+1])
				raw.WriteString(s[i : i+2])
				i += 2
			} else {
				lit.WriteByte('\\')
				raw.WriteByte('\\')
				i++
			}
		case c == '$':
			part, width := scanDollar(s[i:])
			if part != nil {
				flush()
				parts = append(parts, part)
				i += width
				continue
			}
			if width == 0 {
				width = 1
			}
			lit.WriteString(s[i : i+width])
			raw.WriteString(s[i : i+width])
			i += width
		default:
			lit.WriteByte(c)
			raw.WriteByte(c)
			i++
		}
	}
	flush()
	return parts
}

// scanDouble splits double-quoted content into parts. The lexer left \\ \$
// and \` in place; they resolve here. An empty payload is one empty
// double-quoted literal so that "" stays a word.
func scanDouble(s string) []WordPart {
	if s == "" {
		return []WordPart{&Literal{Quoting: Double}}
	}
	var parts []WordPart
	var lit strings.Builder
	flush := func() {
		if lit.Len() == 0 {
			return
		}
		parts = append(parts, &Literal{Val: lit.String(), Quoting: Double})
		lit.Reset()
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '$' || s[i+1] == '`'):
			lit.WriteByte(s[i+1])
			i += 2
		case c == '$':
			part, width := scanDollar(s[i:])
			if part != nil {
				flush()
				parts = append(parts, part)
				i += width
				continue
			}
			if width == 0 {
				width = 1
			}
			lit.WriteString(s[i : i+width])
			i += width
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return parts
}

// scanDollar decodes the expansion starting at a $. It returns the part
// and its width in the source. A nil part with nonzero width means
// "consume that many bytes as literal text" (an unsupported ${…} form); a
// nil part with zero width means the $ itself is literal.
func scanDollar(s string) (WordPart, int) {
	if len(s) < 2 {
		return nil, 0
	}
	c := s[1]
	switch {
	case c == '(':
		end := balancedParen(s[2:])
		inner := s[2 : 2+end]
		width := 2 + end
		if width < len(s) {
			width++ // closing paren
		}
		return &CmdSubst{Command: inner}, width
	case c == '{':
		j := strings.IndexByte(s, '}')
		if j < 0 {
			// Unterminated ${…: literal to the end.
			return nil, len(s)
		}
		name := s[2:j]
		if syntax.ValidName(name) || (len(name) == 1 && strings.ContainsRune(specialVars, rune(name[0]))) {
			return &Variable{Name: name, Braced: true}, j + 1
		}
		// Modifier forms like ${a:-b} are out of dialect; keep the raw
		// text.
		return nil, j + 1
	case strings.IndexByte(specialVars, c) >= 0:
		return &Variable{Name: string(c)}, 2
	case nameStart(c):
		j := 2
		for j < len(s) && nameChar(s[j]) {
			j++
		}
		return &Variable{Name: s[1:j]}, j
	default:
		return nil, 0
	}
}

func nameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func nameChar(c byte) bool {
	return nameStart(c) || (c >= '0' && c <= '9')
}

// balancedParen returns the index of the ) matching an already-consumed (,
// honoring nested quotes so their parens don't affect depth. Returns
// len(s) when unbalanced.
func balancedParen(s string) int {
	depth := 1
	i := 0
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case '\'':
			i++
			for i < len(s) && s[i] != '\'' {
				i++
			}
		case '"':
			i++
			for i < len(s) && s[i] != '"' {
				if s[i] == '\\' {
					i++
				}
				i++
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return len(s)
}
