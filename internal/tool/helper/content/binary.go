package content

import "unicode/utf8"

// sniffSize matches Git's heuristic for binary detection.
const sniffSize = 8000

// IsBinary reports whether data looks binary: a NUL byte within the first
// sniffSize bytes, unless the data starts with a UTF-16 or UTF-32 BOM.
func IsBinary(data []byte) bool {
	if hasWideBOM(data) {
		return false
	}
	for _, b := range data[:min(len(data), sniffSize)] {
		if b == 0 {
			return true
		}
	}
	return false
}

func hasWideBOM(data []byte) bool {
	if len(data) >= 4 && data[0] == 0x00 && data[1] == 0x00 && data[2] == 0xFE && data[3] == 0xFF {
		return true
	}
	return len(data) >= 2 && ((data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF))
}

// ToText drops invalid UTF-8 sequences.
func ToText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	out := make([]rune, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r != utf8.RuneError || size > 1 {
			out = append(out, r)
		}
		data = data[size:]
	}
	return string(out)
}
