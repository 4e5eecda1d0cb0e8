package theme

import (
	"strings"
)

const (
	importPrefix = `@import url("resource://`
	importSuffix = `");`
)

// ResourcePath extracts the resource path from a stylesheet consisting of a
// single `@import url("resource://...");` line.
func ResourcePath(content string) string {
	s := strings.TrimSpace(strings.ReplaceAll(content, "'", ""))
	s = strings.ReplaceAll(s, importPrefix, "")
	s = strings.ReplaceAll(s, importSuffix, "")
	// Some themes ship the import without the trailing semicolon.
	s = strings.TrimSuffix(s, ")")
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}

// FindAccent returns the color declared on the first line of css containing
// marker. The color is the first '#' on that line and the six hex digits after
// it. The zero Accent is returned when no line matches or the matching line
// carries no complete color.
func FindAccent(css, marker string) Accent {
	for line := range strings.Lines(css) {
		if !strings.Contains(line, marker) {
			continue
		}
		start := strings.IndexByte(line, '#')
		if start < 0 || len(line)-start < 7 || !isHex(line[start+1:start+7]) {
			return Accent{}
		}
		return Accent{hex: line[start : start+7]}
	}
	return Accent{}
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
