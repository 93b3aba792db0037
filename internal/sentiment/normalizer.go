package sentiment

import (
	"regexp"
	"strings"
)

// MaxTextLength caps the normalized text fed into the classifiers.
const MaxTextLength = 512

var (
	urlPattern        = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	charsetPattern    = regexp.MustCompile(`[^\w\s.,!?;:-]`)
)

// Normalize cleans raw document text into a bounded, model-ready string:
// URLs and email-like tokens are stripped, whitespace runs collapse to a
// single space, characters outside word/whitespace/sentence punctuation are
// removed, and the result is truncated to MaxTextLength preferring the last
// sentence boundary. Pure and idempotent.
func Normalize(raw string) string {
	text := urlPattern.ReplaceAllString(raw, "")
	text = emailPattern.ReplaceAllString(text, "")
	// Character filtering runs before whitespace collapse so the gaps it
	// leaves behind are collapsed too, keeping Normalize idempotent.
	text = charsetPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if len(text) > MaxTextLength {
		text = truncateAtSentence(text, MaxTextLength)
	}

	return strings.TrimSpace(text)
}

// truncateAtSentence cuts at the last "." boundary that keeps the text
// under limit; without any boundary inside the limit it hard-cuts.
func truncateAtSentence(text string, limit int) string {
	sentences := strings.Split(text, ".")
	var truncated strings.Builder
	for _, sentence := range sentences {
		if truncated.Len()+len(sentence) >= limit {
			break
		}
		truncated.WriteString(sentence)
		truncated.WriteString(".")
	}
	if truncated.Len() == 0 {
		return text[:limit]
	}
	return truncated.String()
}
