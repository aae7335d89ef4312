package chat

import (
	"strings"
)

const (
	defaultTitle       = "New Chat"
	fallbackTitleRunes = 30
	defenseTitleRunes  = 25
	ellipsis           = "..."
)

// resolveTitle keeps a non-blank title, otherwise derives one from the email
func resolveTitle(title, email string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	if strings.TrimSpace(email) == "" {
		return defaultTitle
	}

	if truncated, cut := truncateRunes(email, fallbackTitleRunes); cut {
		return truncated + ellipsis
	}
	return email
}

// DefenseTitle is the first line of the client email cut to 25 characters,
// always followed by "...".
func DefenseTitle(email string) string {
	if strings.TrimSpace(email) == "" {
		return defaultTitle
	}

	firstLine, _, _ := strings.Cut(email, "\n")
	firstLine = strings.TrimRight(firstLine, "\r")
	truncated, _ := truncateRunes(firstLine, defenseTitleRunes)
	return truncated + ellipsis
}

// truncateRunes cuts s to at most n runes and reports whether it cut
func truncateRunes(s string, n int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= n {
		return s, false
	}
	return string(runes[:n]), true
}
