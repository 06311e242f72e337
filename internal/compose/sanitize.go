package compose

import "strings"

// StripFence removes a single markdown code fence wrapping the whole
// response. Models occasionally return the entire post inside a
// ```markdown block despite instructions; interior fences are kept.
func StripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return s
	}

	inner := strings.Join(lines[1:len(lines)-1], "\n")
	// An interior closing fence means the wrapper assumption was wrong.
	if strings.Count(inner, "```")%2 != 0 {
		return s
	}
	return strings.TrimSpace(inner)
}
