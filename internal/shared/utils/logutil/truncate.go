package logutil

// TruncateForLog keeps the first maxLen runes of s and marks the cut with
// "...". Bearer tokens are logged through it so only a prefix is visible.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
