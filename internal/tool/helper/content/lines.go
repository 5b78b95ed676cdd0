package content

import "strings"

// LastLines returns the last n lines of text, keeping their line endings.
// A trailing newline does not count as an extra empty line.
func LastLines(text string, n int) string {
	if n <= 0 || text == "" {
		return ""
	}
	end := len(text)
	if strings.HasSuffix(text, "\n") {
		end--
	}
	idx := end
	for range n {
		i := strings.LastIndexByte(text[:idx], '\n')
		if i < 0 {
			return text
		}
		idx = i
	}
	return text[idx+1:]
}
