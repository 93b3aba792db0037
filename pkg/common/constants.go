package common

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	RedisKeyAnalysisResult = "analysis.result"

	CacheKeySummaryStats = "insights.summary"
	CacheKeyTrends       = "insights.trends"
	CacheKeyTopTopics    = "insights.top_topics"

	ExportFormatJSON = "json"
	ExportFormatCSV  = "csv"
)

// Sentiments lists the three classes in the deterministic tie-break order
// used by the ensemble: an equal score never displaces an earlier class.
var Sentiments = []string{SentimentNegative, SentimentNeutral, SentimentPositive}
