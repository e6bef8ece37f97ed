package provider

import "strings"

// TruncateRecent bounds a prompt to maxChars keeping the most recent
// turns. Different backends have different context budgets, so history
// windowing happens here at the adapter boundary rather than centrally.
// The cut lands on a turn boundary when one exists inside the window.
func TruncateRecent(prompt string, maxChars int) string {
	if maxChars <= 0 || len(prompt) <= maxChars {
		return prompt
	}

	tail := prompt[len(prompt)-maxChars:]

	if idx := strings.Index(tail, "\nUser: "); idx != -1 {
		return tail[idx+1:]
	}
	if idx := strings.IndexByte(tail, '\n'); idx != -1 && idx+1 < len(tail) {
		return tail[idx+1:]
	}
	return tail
}
