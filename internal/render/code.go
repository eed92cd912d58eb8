package render

import "strings"

const (
	// MaxCodeLines caps the code panel.
	MaxCodeLines = 10

	wrapWidth      = 50
	maxLineRunes   = 72
	indentUnit     = "  "
	literalNewline = `\n`
)

// CodeLines turns a snippet into display lines.
//
// Snippets arrive with a literal two-character `\n` as the line delimiter (real
// newlines are treated the same). A snippet that is still a single long line is
// re-wrapped: first on brace and semicolon boundaries with brace-depth
// indentation, and if that yields one part, greedily on word boundaries.
// At most MaxCodeLines lines are returned.
func CodeLines(snippet string) []string {
	s := strings.ReplaceAll(snippet, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", literalNewline)
	if strings.TrimSpace(s) == "" {
		return nil
	}

	lines := trimBlankEdges(strings.Split(s, literalNewline))
	if len(lines) <= 1 && len(s) > wrapWidth {
		lines = splitOnBraces(s)
		if len(lines) <= 1 {
			lines = wrapWords(s, wrapWidth)
		}
	}

	if len(lines) > MaxCodeLines {
		lines = lines[:MaxCodeLines]
	}
	for i, l := range lines {
		lines[i] = clip(strings.TrimRight(l, " \t"), maxLineRunes)
	}
	return lines
}

// splitOnBraces breaks single-line code after '{' and ';' and around '}',
// indenting each part by the number of currently open braces. A '}' directly
// followed by ';', ',' or ')' stays on the same line as that punctuation.
func splitOnBraces(s string) []string {
	var lines []string
	var cur strings.Builder
	depth := 0

	flush := func() {
		if t := strings.TrimSpace(cur.String()); t != "" {
			lines = append(lines, strings.Repeat(indentUnit, depth)+t)
		}
		cur.Reset()
	}

	rs := []rune(s)
	for i, r := range rs {
		switch r {
		case '{':
			cur.WriteRune(r)
			flush()
			depth++
		case '}':
			flush()
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
			if !closesExpression(rs[i+1:]) {
				flush()
			}
		case ';':
			cur.WriteRune(r)
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return lines
}

// closesExpression reports whether the next non-space rune is ';', ',' or ')'.
func closesExpression(rest []rune) bool {
	for _, r := range rest {
		switch r {
		case ' ', '\t':
			continue
		case ';', ',', ')':
			return true
		default:
			return false
		}
	}
	return false
}

// wrapWords greedily packs words into lines of at most width runes. Words
// longer than width are split hard.
func wrapWords(s string, width int) []string {
	var lines []string
	var cur []rune

	for _, w := range strings.Fields(s) {
		word := []rune(w)
		for len(word) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(word[:width]))
			word = word[width:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, word...)
		case len(cur)+1+len(word) <= width:
			cur = append(cur, ' ')
			cur = append(cur, word...)
		default:
			lines = append(lines, string(cur))
			cur = append([]rune(nil), word...)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// clip shortens s to at most n runes, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
