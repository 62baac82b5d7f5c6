// pkg/model/colref.go
package model

import (
	"fmt"
	"strings"
)

// ParseColumnRef resolves a spreadsheet-style column reference (A, B, ..., Z,
// AA, AB, ...) to a zero-based column index. The legacy transformation script
// addresses columns this way, so the resolution is explicit rather than an
// artifact of any storage layout.
func ParseColumnRef(ref string) (int, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" {
		return 0, fmt.Errorf("empty column reference")
	}

	idx := 0
	for _, r := range ref {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column reference %q: unexpected character %q", ref, r)
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1, nil
}

// FormatColumnRef converts a zero-based column index to its spreadsheet-style
// letter reference (0 -> A, 25 -> Z, 26 -> AA).
func FormatColumnRef(idx int) string {
	if idx < 0 {
		return ""
	}

	var sb strings.Builder
	n := idx + 1
	for n > 0 {
		n--
		sb.WriteByte(byte('A' + n%26))
		n /= 26
	}

	// Reverse the accumulated letters
	s := sb.String()
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = s[len(s)-1-i]
	}
	return string(out)
}
