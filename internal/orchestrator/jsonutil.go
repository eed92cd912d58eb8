package orchestrator

import (
	"regexp"
	"strings"
)

var (
	leadingFence  = regexp.MustCompile("^```[a-zA-Z0-9_-]*[ \t]*\r?\n?")
	trailingFence = regexp.MustCompile("\r?\n?```$")
)

// stripFences removes a Markdown code fence wrapped around a model response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// firstJSONObject returns the first balanced {...} span in s, skipping braces
// inside JSON strings. ok is false when no complete object is found.
func firstJSONObject(s string) (obj string, ok bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
