package rag

import "fmt"

// FormatTimestamp renders an offset in seconds as a zero-padded MM:SS
// label, or HH:MM:SS past the one hour mark. Negative offsets clamp to
// 00:00.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	s := total % 60
	m := (total / 60) % 60
	h := total / 3600
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
