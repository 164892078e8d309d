package bot

import (
	"fmt"
	"strings"
)

// User-facing texts.
const (
	startMessageFormat = "Instant Meet Bot\nUse /meet or @%s meet in any chat!"
	meetMessageFormat  = "Instant Meet (full access for all, first joiner is host!)\nJoin → %s"

	unauthorizedMessage = "⚠️ Authorization Required: You are not allowed to use this bot."

	inlineTitle          = "Instant Open Google Meet"
	inlineDescription    = "Full access for all, first joiner is host!"
	inlineMessageFormat  = "Open Meet → %s"
	inlineDeniedTitle    = "Unauthorized"
	inlineDeniedDesc     = "You are not allowed to use this bot."
	inlineDeniedMessage  = "⚠️ Unauthorized usage request."
	inlineCacheTime      = 1
	inlineDeniedCacheTTL = 60
)

// inlineTriggers are the words that make an inline query ask for a link.
var inlineTriggers = []string{"meet", "link", "room"}

// MatchesInlineTrigger reports whether an inline query should be answered:
// the query is empty or mentions one of the trigger words, case-insensitively.
func MatchesInlineTrigger(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, t := range inlineTriggers {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

func startMessage(username string) string {
	if username == "" {
		username = "yourbot"
	}
	return fmt.Sprintf(startMessageFormat, username)
}

func meetMessage(link string) string {
	return fmt.Sprintf(meetMessageFormat, link)
}

func errorMessage(err error) string {
	return "Error: " + err.Error()
}
