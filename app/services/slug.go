package services

import "strings"

// Slugify lowercases s and replaces runs of non-alphanumeric characters
// with single hyphens: "Gaming Laptop (15\")" → "gaming-laptop-15".
func Slugify(s string) string {
	var b strings.Builder
	prevHyphen := true // trims leading hyphens
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
