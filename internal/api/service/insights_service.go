package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"golang-news-sentiment/internal/api/dto"
	"golang-news-sentiment/internal/api/repository"
	"golang-news-sentiment/internal/entity"
	"golang-news-sentiment/pkg/common"
	"golang-news-sentiment/pkg/logger"
	"golang-news-sentiment/pkg/utils"
)

// InsightsService is the read side: history, aggregate stats, trends,
// rankings, and export over stored verdicts.
type InsightsService interface {
	History(ctx context.Context, maxAgeDays int) ([]dto.HistoryItem, error)
	SummaryStats(ctx context.Context, topic string, maxAgeDays int) (dto.SummaryStats, error)
	Trends(ctx context.Context, topic string, maxAgeDays int) (dto.TrendResponse, error)
	TopTopics(ctx context.Context, maxAgeDays, limit int) ([]dto.TopTopic, error)
	Export(ctx context.Context, topic string, maxAgeDays int, format string) ([]byte, error)
}

type insightsService struct {
	log   *logger.Logger
	repo  repository.AnalysisRepository
	cache *cache.Cache
}

// NewInsightsService creates the insights service with a short-lived
// in-process cache over the hot aggregate reads.
func NewInsightsService(log *logger.Logger, repo repository.AnalysisRepository) InsightsService {
	return &insightsService{
		log:   log,
		repo:  repo,
		cache: cache.New(time.Minute, 5*time.Minute),
	}
}

// History returns the most recent analysis rows, newest first.
func (s *insightsService) History(ctx context.Context, maxAgeDays int) ([]dto.HistoryItem, error) {
	rows, err := s.repo.History(ctx, maxAgeDays)
	if err != nil {
		return nil, err
	}

	items := make([]dto.HistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.HistoryItem{
			Keywords:   row.Keywords,
			Sentiment:  row.Sentiment,
			Confidence: row.Confidence,
			CreatedAt:  row.CreatedAt.Format(time.RFC3339),
			Title:      row.Title,
			Source:     row.Source,
		})
	}
	return items, nil
}

// SummaryStats aggregates the window. Zero matching rows yields an
// all-zero structure, never an error.
func (s *insightsService) SummaryStats(ctx context.Context, topic string, maxAgeDays int) (dto.SummaryStats, error) {
	key := fmt.Sprintf("%s:%s:%d", common.CacheKeySummaryStats, topic, maxAgeDays)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(dto.SummaryStats), nil
	}

	row, err := s.repo.SummaryStats(ctx, topic, maxAgeDays)
	if err != nil {
		return dto.SummaryStats{}, err
	}

	stats := dto.SummaryStats{
		TotalArticles:  row.TotalArticles,
		PositiveCount:  row.PositiveCount,
		NegativeCount:  row.NegativeCount,
		NeutralCount:   row.NeutralCount,
		AvgConfidence:  utils.RoundScore(row.AvgConfidence),
		UniqueKeywords: row.UniqueKeywords,
		UniqueSources:  row.UniqueSources,
		PeriodDays:     maxAgeDays,
	}
	if row.TotalArticles > 0 {
		total := float64(row.TotalArticles)
		stats.PositivePercentage = float64(row.PositiveCount) / total * 100
		stats.NegativePercentage = float64(row.NegativeCount) / total * 100
		stats.NeutralPercentage = float64(row.NeutralCount) / total * 100
	}

	s.cache.Set(key, stats, cache.DefaultExpiration)
	return stats, nil
}

// Trends assembles one TrendPoint per date present within the window for
// topics containing the given substring. Dates without rows are omitted;
// callers needing a continuous series zero-fill themselves.
func (s *insightsService) Trends(ctx context.Context, topic string, maxAgeDays int) (dto.TrendResponse, error) {
	response := dto.TrendResponse{
		Keyword:    topic,
		PeriodDays: maxAgeDays,
		Trends:     []dto.TrendPoint{},
	}

	key := fmt.Sprintf("%s:%s:%d", common.CacheKeyTrends, topic, maxAgeDays)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(dto.TrendResponse), nil
	}

	buckets, err := s.repo.TrendBuckets(ctx, topic, maxAgeDays)
	if err != nil {
		return response, err
	}

	// Buckets arrive date-ascending; fold the per-sentiment groups into
	// one point per date.
	var current *dto.TrendPoint
	flush := func() {
		if current == nil {
			return
		}
		if current.Total > 0 {
			total := float64(current.Total)
			current.PositivePct = float64(current.Positive) / total * 100
			current.NegativePct = float64(current.Negative) / total * 100
			current.NeutralPct = float64(current.Neutral) / total * 100
		}
		response.Trends = append(response.Trends, *current)
	}

	for _, bucket := range buckets {
		if current == nil || current.Date != bucket.Date {
			flush()
			current = &dto.TrendPoint{Date: bucket.Date}
		}
		switch bucket.Sentiment {
		case common.SentimentPositive:
			current.Positive = bucket.Count
		case common.SentimentNegative:
			current.Negative = bucket.Count
		case common.SentimentNeutral:
			current.Neutral = bucket.Count
		}
		current.Total += bucket.Count
	}
	flush()

	s.cache.Set(key, response, cache.DefaultExpiration)
	return response, nil
}

// TopTopics ranks topics by document count, each with its sentiment ratio.
func (s *insightsService) TopTopics(ctx context.Context, maxAgeDays, limit int) ([]dto.TopTopic, error) {
	key := fmt.Sprintf("%s:%d:%d", common.CacheKeyTopTopics, maxAgeDays, limit)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]dto.TopTopic), nil
	}

	rows, err := s.repo.TopTopics(ctx, maxAgeDays, limit)
	if err != nil {
		return nil, err
	}

	topics := make([]dto.TopTopic, 0, len(rows))
	for _, row := range rows {
		topic := dto.TopTopic{
			Keywords:      row.Keywords,
			ArticleCount:  row.ArticleCount,
			AvgConfidence: utils.RoundScore(row.AvgConfidence),
			PositiveCount: row.PositiveCount,
			NegativeCount: row.NegativeCount,
		}
		if row.ArticleCount > 0 {
			topic.SentimentRatio = float64(row.PositiveCount-row.NegativeCount) / float64(row.ArticleCount)
		}
		topics = append(topics, topic)
	}

	s.cache.Set(key, topics, cache.DefaultExpiration)
	return topics, nil
}

// Export serializes the window's rows as JSON or CSV.
func (s *insightsService) Export(ctx context.Context, topic string, maxAgeDays int, format string) ([]byte, error) {
	rows, err := s.repo.Export(ctx, topic, maxAgeDays)
	if err != nil {
		return nil, err
	}

	switch format {
	case common.ExportFormatCSV:
		return exportCSV(rows)
	case "", common.ExportFormatJSON:
		return json.MarshalIndent(rows, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

func exportCSV(rows []entity.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"id", "keywords", "title", "description", "url", "source", "author",
		"published_at", "sentiment", "confidence",
		"positive_score", "negative_score", "neutral_score", "created_at",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.ID), 10),
			row.Keywords,
			row.Title,
			row.Description,
			row.URL,
			row.Source,
			row.Author,
			row.PublishedAt,
			row.Sentiment,
			strconv.FormatFloat(row.Confidence, 'f', 3, 64),
			strconv.FormatFloat(row.PositiveScore, 'f', 3, 64),
			strconv.FormatFloat(row.NegativeScore, 'f', 3, 64),
			strconv.FormatFloat(row.NeutralScore, 'f', 3, 64),
			row.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
