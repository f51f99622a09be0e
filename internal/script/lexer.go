package script

import "strings"

// lexState is the SQL lexical context a scanner is in.
type lexState int

const (
	lexNormal lexState = iota
	lexBlockComment
	lexSingleQuote
	lexEscapeQuote
	lexDoubleQuote
	lexDollarQuote
)

// sqlScanner follows SQL lexical state across lines, so a caller can tell
// whether a line begins at statement level or inside a string, dollar-quoted
// body, or block comment.
//
// Handles:
// - Line comments: -- to end of line
// - Block comments: /* */ with PostgreSQL nesting
// - Single-quoted strings with '' escape, and E'...' with backslash escapes
// - Quoted identifiers: "..." with "" escape
// - Dollar-quoted strings: $$...$$ and $tag$...$tag$
type sqlScanner struct {
	state      lexState
	blockDepth int
	dollarTag  string
}

// topLevel reports whether the next line starts outside any quote or comment.
func (s *sqlScanner) topLevel() bool {
	return s.state == lexNormal
}

// scanLine advances the state past line and the newline that ends it.
func (s *sqlScanner) scanLine(line string) {
	i := 0
	for i < len(line) {
		c := line[i]
		var next byte
		if i+1 < len(line) {
			next = line[i+1]
		}

		switch s.state {
		case lexNormal:
			switch {
			case c == '-' && next == '-':
				return
			case c == '/' && next == '*':
				s.state = lexBlockComment
				s.blockDepth = 1
				i += 2
			case c == '\'':
				s.state = lexSingleQuote
				if i > 0 && (line[i-1] == 'E' || line[i-1] == 'e') && (i == 1 || !isIdentByte(line[i-2])) {
					s.state = lexEscapeQuote
				}
				i++
			case c == '"':
				s.state = lexDoubleQuote
				i++
			case c == '$' && (i == 0 || !isIdentByte(line[i-1])):
				if tag := extractDollarTag(line, i); tag != "" {
					s.state = lexDollarQuote
					s.dollarTag = tag
					i += len(tag)
				} else {
					i++
				}
			default:
				i++
			}

		case lexBlockComment:
			switch {
			case c == '/' && next == '*':
				s.blockDepth++
				i += 2
			case c == '*' && next == '/':
				s.blockDepth--
				i += 2
				if s.blockDepth == 0 {
					s.state = lexNormal
				}
			default:
				i++
			}

		case lexSingleQuote:
			if c == '\'' {
				if next == '\'' {
					i += 2
					continue
				}
				s.state = lexNormal
			}
			i++

		case lexEscapeQuote:
			switch {
			case c == '\\':
				i += 2
			case c == '\'' && next == '\'':
				i += 2
			case c == '\'':
				s.state = lexNormal
				i++
			default:
				i++
			}

		case lexDoubleQuote:
			if c == '"' {
				if next == '"' {
					i += 2
					continue
				}
				s.state = lexNormal
			}
			i++

		case lexDollarQuote:
			if strings.HasPrefix(line[i:], s.dollarTag) {
				i += len(s.dollarTag)
				s.state = lexNormal
				s.dollarTag = ""
			} else {
				i++
			}
		}
	}
}

// extractDollarTag returns the dollar-quote tag ("$$" or "$tag$") starting at
// position i, or "" when there is none. Positional parameters like $1 are not tags.
func extractDollarTag(s string, i int) string {
	if i >= len(s) || s[i] != '$' {
		return ""
	}
	for j := i + 1; j < len(s); j++ {
		c := s[j]
		if c == '$' {
			return s[i : j+1]
		}
		if c >= '0' && c <= '9' {
			if j == i+1 {
				return ""
			}
			continue
		}
		if !isIdentByte(c) {
			return ""
		}
	}
	return ""
}

// isIdentByte reports whether c can appear in an unquoted identifier.
// Bytes of multi-byte UTF-8 letters count as identifier bytes.
func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c >= 0x80
}
