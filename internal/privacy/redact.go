package privacy

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// Phone patterns (US, international, 7-digit local)
	phoneRegex = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]\d{4}|\b\d{3}[-.\s]\d{4}\b`)

	ssnRegex = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

	creditCardRegex = regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{4}\b`)

	// Health-service identifiers users sometimes paste from portals
	healthIDRegex = regexp.MustCompile(`\b(MRN|Medical Record|Patient ID|Member ID)[-:\s]*[A-Z0-9]{6,}\b`)
)

// RedactSensitiveData removes PII from text before it leaves the
// service. Messages go to third-party translation and generation APIs;
// identifiers have no business in either.
func RedactSensitiveData(text string) string {
	text = emailRegex.ReplaceAllString(text, "[EMAIL]")
	text = phoneRegex.ReplaceAllString(text, "[PHONE]")
	text = ssnRegex.ReplaceAllString(text, "[SSN]")
	text = creditCardRegex.ReplaceAllString(text, "[CARD]")

	text = healthIDRegex.ReplaceAllStringFunc(text, func(s string) string {
		lower := strings.ToLower(s)
		if strings.Contains(lower, "mrn") ||
			strings.Contains(lower, "medical") ||
			strings.Contains(lower, "patient") ||
			strings.Contains(lower, "member") {
			return "[HEALTH_ID]"
		}
		return s
	})

	return text
}

// SanitizeForLogging prepares text for safe logging.
func SanitizeForLogging(text string) string {
	redacted := RedactSensitiveData(text)

	if len(redacted) > 200 {
		return redacted[:197] + "..."
	}
	return redacted
}

// ContainsPII checks if text contains potential PII.
func ContainsPII(text string) bool {
	return emailRegex.MatchString(text) ||
		phoneRegex.MatchString(text) ||
		ssnRegex.MatchString(text) ||
		creditCardRegex.MatchString(text) ||
		healthIDRegex.MatchString(text)
}
