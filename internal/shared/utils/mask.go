package utils

import "strings"

// MaskEmail hides the local part of an actor email before it reaches the logs,
// keeping the first character and the domain: "dana@acme.io" -> "d***@acme.io".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || domain == "" {
		return "***"
	}
	r := []rune(local)
	if len(r) == 0 {
		return "***@" + domain
	}
	return string(r[0]) + "***@" + domain
}
