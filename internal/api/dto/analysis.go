package dto

import (
	"golang-news-sentiment/internal/entity"
	"golang-news-sentiment/internal/sentiment"
)

// AnalyzeRequest asks for one topic to be fetched, scored, and stored.
type AnalyzeRequest struct {
	Keywords string `json:"keywords"`
	Limit    int    `json:"limit"`
}

// AnalyzedArticle is one document together with its ensemble verdict.
type AnalyzedArticle struct {
	entity.Document
	Sentiment  string                   `json:"sentiment"`
	Confidence float64                  `json:"confidence"`
	Scores     map[string]float64       `json:"scores"`
	Details    sentiment.VerdictDetails `json:"details"`
}

// BatchSummary is the per-run rollup returned with an analyze call.
type BatchSummary struct {
	TotalArticles int `json:"total_articles"`
	Positive      int `json:"positive"`
	Negative      int `json:"negative"`
	Neutral       int `json:"neutral"`
}

// AnalyzeResponse is the result of one analyze call.
type AnalyzeResponse struct {
	Success  bool              `json:"success"`
	Articles []AnalyzedArticle `json:"articles"`
	Summary  BatchSummary      `json:"summary"`
}

// HistoryItem is one row of recent analysis history.
type HistoryItem struct {
	Keywords   string  `json:"keywords"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	CreatedAt  string  `json:"created_at"`
	Title      string  `json:"title"`
	Source     string  `json:"source"`
}

// SummaryStats is the aggregate view over a topic filter and date window.
// Zero matching rows yields the zero value, never an error.
type SummaryStats struct {
	TotalArticles      int     `json:"total_articles"`
	PositiveCount      int     `json:"positive_count"`
	NegativeCount      int     `json:"negative_count"`
	NeutralCount       int     `json:"neutral_count"`
	PositivePercentage float64 `json:"positive_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
	AvgConfidence      float64 `json:"avg_confidence"`
	UniqueKeywords     int     `json:"unique_keywords"`
	UniqueSources      int     `json:"unique_sources"`
	PeriodDays         int     `json:"period_days"`
}

// TrendPoint is one date's aggregated counts and percentages for a topic.
type TrendPoint struct {
	Date        string  `json:"date"`
	Positive    int     `json:"positive"`
	Negative    int     `json:"negative"`
	Neutral     int     `json:"neutral"`
	Total       int     `json:"total"`
	PositivePct float64 `json:"positive_pct"`
	NegativePct float64 `json:"negative_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
}

// TrendResponse is the time series for one topic over a window.
type TrendResponse struct {
	Keyword    string       `json:"keyword"`
	PeriodDays int          `json:"period_days"`
	Trends     []TrendPoint `json:"trends"`
}

// TopTopic is one entry of the most-analyzed topics ranking.
type TopTopic struct {
	Keywords       string  `json:"keywords"`
	ArticleCount   int     `json:"article_count"`
	AvgConfidence  float64 `json:"avg_confidence"`
	PositiveCount  int     `json:"positive_count"`
	NegativeCount  int     `json:"negative_count"`
	SentimentRatio float64 `json:"sentiment_ratio"`
}

// ModelInfo describes the registered ensemble.
type ModelInfo struct {
	AvailableModels     []string           `json:"available_models"`
	ModelWeights        map[string]float64 `json:"model_weights"`
	ConfidenceThreshold float64            `json:"confidence_threshold"`
	EnsembleEnabled     bool               `json:"ensemble_enabled"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
