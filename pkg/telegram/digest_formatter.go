package telegram

import (
	"fmt"
	"strings"
)

// DigestData holds the numbers for one analysis run digest.
type DigestData struct {
	Topic         string
	TotalArticles int
	Positive      int
	Negative      int
	Neutral       int
	AvgConfidence float64
}

// FormatAnalysisDigest renders a short Markdown digest for one topic run.
func FormatAnalysisDigest(d DigestData) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("*Sentiment digest: %s*\n", escapeMarkdown(d.Topic)))
	b.WriteString(fmt.Sprintf("Articles analyzed: %d\n", d.TotalArticles))
	if d.TotalArticles > 0 {
		b.WriteString(fmt.Sprintf("Positive: %d (%.1f%%)\n", d.Positive, pct(d.Positive, d.TotalArticles)))
		b.WriteString(fmt.Sprintf("Negative: %d (%.1f%%)\n", d.Negative, pct(d.Negative, d.TotalArticles)))
		b.WriteString(fmt.Sprintf("Neutral: %d (%.1f%%)\n", d.Neutral, pct(d.Neutral, d.TotalArticles)))
		b.WriteString(fmt.Sprintf("Avg confidence: %.3f", d.AvgConfidence))
	}

	return b.String()
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	return replacer.Replace(s)
}
