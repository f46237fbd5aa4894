// Package urlutil classifies and normalizes the free-form strings users feed
// the terminal. The URL check is a heuristic, not a parser: anything with an
// http(s) scheme or a trailing dot-extension counts, so "file.txt" is a URL
// as far as the terminal is concerned.
package urlutil

import (
	"regexp"
	"strings"
)

var (
	schemePattern    = regexp.MustCompile(`(?i)^https?://`)
	extensionPattern = regexp.MustCompile(`(?i)\.[a-z]{2,}(\.[a-z]{2,})?$`)
)

// IsURL reports whether s looks like a link: either it carries an http(s)
// scheme already, or it ends in one or two chained domain extensions.
func IsURL(s string) bool {
	if schemePattern.MatchString(s) {
		return true
	}
	return extensionPattern.MatchString(s)
}

// Normalize prefixes bare links with https://. Strings that already start
// with a scheme are returned unchanged.
func Normalize(s string) string {
	if !schemePattern.MatchString(s) {
		return "https://" + s
	}
	return s
}

// Suggest returns the completion suffix for the first command in commands
// that case-insensitively extends the trimmed input. No suggestion is offered
// for empty input, an exact match, or while unauthenticated.
func Suggest(input string, commands []string, authenticated bool) string {
	if input == "" || !authenticated {
		return ""
	}
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return ""
	}
	for _, cmd := range commands {
		lower := strings.ToLower(cmd)
		if strings.HasPrefix(lower, trimmed) && lower != trimmed {
			return cmd[len(trimmed):]
		}
	}
	return ""
}
