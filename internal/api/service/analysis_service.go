package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"golang-news-sentiment/internal/api/config"
	"golang-news-sentiment/internal/api/dto"
	"golang-news-sentiment/internal/api/repository"
	"golang-news-sentiment/internal/entity"
	"golang-news-sentiment/internal/fetcher"
	"golang-news-sentiment/internal/sentiment"
	"golang-news-sentiment/pkg/common"
	"golang-news-sentiment/pkg/logger"
	"golang-news-sentiment/pkg/telegram"
	"golang-news-sentiment/pkg/utils"
)

// ErrNoArticles signals that the fetch layer produced nothing for a topic.
// Distinct from a store failure: the caller reports "no data", not an
// internal error.
var ErrNoArticles = errors.New("no articles found")

// AnalysisService runs the scoring pipeline for a topic: fetch documents,
// score each through the ensemble, persist the batch.
type AnalysisService interface {
	AnalyzeTopic(ctx context.Context, topic string, limit int) (*dto.AnalyzeResponse, error)
	ScoreDocuments(ctx context.Context, topic string, docs []entity.Document) (*dto.AnalyzeResponse, error)
	ModelInfo() dto.ModelInfo
}

type analysisService struct {
	cfg      *config.Config
	log      *logger.Logger
	fetcher  *fetcher.Fetcher
	analyzer *sentiment.Analyzer
	repo     repository.AnalysisRepository
	redis    *goredis.Client
	notifier telegram.Notifier
	cacheTTL time.Duration
}

// NewAnalysisService creates the analysis service. redis and notifier may
// be nil; result caching and digests are then disabled.
func NewAnalysisService(
	cfg *config.Config,
	log *logger.Logger,
	newsFetcher *fetcher.Fetcher,
	analyzer *sentiment.Analyzer,
	repo repository.AnalysisRepository,
	redisClient *goredis.Client,
	notifier telegram.Notifier,
) AnalysisService {
	cacheTTL := time.Hour
	if d, err := time.ParseDuration(cfg.Analyzer.ResultCacheTTL); err == nil && d > 0 {
		cacheTTL = d
	}

	return &analysisService{
		cfg:      cfg,
		log:      log,
		fetcher:  newsFetcher,
		analyzer: analyzer,
		repo:     repo,
		redis:    redisClient,
		notifier: notifier,
		cacheTTL: cacheTTL,
	}
}

// AnalyzeTopic fetches documents for the topic, scores them, and stores
// the batch.
func (s *analysisService) AnalyzeTopic(ctx context.Context, topic string, limit int) (*dto.AnalyzeResponse, error) {
	docs, err := s.fetcher.FetchNews(ctx, topic, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNoArticles
	}

	return s.ScoreDocuments(ctx, topic, docs)
}

// ScoreDocuments runs the pipeline over already-fetched documents. One
// batch at a time: every document is scored and the whole batch is stored
// before returning.
func (s *analysisService) ScoreDocuments(ctx context.Context, topic string, docs []entity.Document) (*dto.AnalyzeResponse, error) {
	articles := make([]dto.AnalyzedArticle, 0, len(docs))
	results := make([]entity.AnalysisResult, 0, len(docs))
	summary := dto.BatchSummary{}

	for _, doc := range docs {
		verdict := s.scoreDocument(ctx, doc)

		articles = append(articles, dto.AnalyzedArticle{
			Document:   doc,
			Sentiment:  verdict.Sentiment,
			Confidence: verdict.Confidence,
			Scores:     verdict.Scores,
			Details:    verdict.Details,
		})

		result, err := toEntity(doc, verdict)
		if err != nil {
			s.log.Warn("failed to encode verdict details", logger.ErrorField(err))
		}
		results = append(results, result)

		summary.TotalArticles++
		switch verdict.Sentiment {
		case common.SentimentPositive:
			summary.Positive++
		case common.SentimentNegative:
			summary.Negative++
		default:
			summary.Neutral++
		}
	}

	if err := s.repo.StoreBatch(ctx, topic, results); err != nil {
		return nil, fmt.Errorf("failed to store analysis batch: %w", err)
	}

	s.log.Info("stored analysis batch",
		logger.StringField("topic", topic),
		logger.IntField("articles", summary.TotalArticles),
	)

	s.sendDigest(topic, articles)

	return &dto.AnalyzeResponse{
		Success:  true,
		Articles: articles,
		Summary:  summary,
	}, nil
}

// scoreDocument scores one document, consulting the Redis result cache
// first. A missing or unreachable cache degrades to scoring.
func (s *analysisService) scoreDocument(ctx context.Context, doc entity.Document) sentiment.Verdict {
	key := s.cacheKey(doc)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			var verdict sentiment.Verdict
			if err := json.Unmarshal([]byte(cached), &verdict); err == nil {
				return verdict
			}
		}
	}

	verdict := s.analyzer.Analyze(ctx, doc.Content)

	if s.redis != nil {
		if payload, err := json.Marshal(verdict); err == nil {
			if err := s.redis.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
				s.log.Debug("failed to cache verdict", logger.ErrorField(err))
			}
		}
	}

	return verdict
}

func (s *analysisService) cacheKey(doc entity.Document) string {
	sum := sha256.Sum256([]byte(doc.URL + "|" + doc.Content))
	return fmt.Sprintf("%s:%s", common.RedisKeyAnalysisResult, hex.EncodeToString(sum[:16]))
}

// ModelInfo describes the registered ensemble.
func (s *analysisService) ModelInfo() dto.ModelInfo {
	models := s.analyzer.Models()

	weights := sentiment.DefaultWeights()
	for model, weight := range s.cfg.Analyzer.ModelWeights {
		weights[model] = weight
	}

	threshold := s.cfg.Analyzer.ConfidenceThreshold
	if threshold <= 0 {
		threshold = sentiment.DefaultConfidenceThreshold
	}

	return dto.ModelInfo{
		AvailableModels:     models,
		ModelWeights:        weights,
		ConfidenceThreshold: threshold,
		EnsembleEnabled:     len(models) > 1,
	}
}

func (s *analysisService) sendDigest(topic string, articles []dto.AnalyzedArticle) {
	if s.notifier == nil {
		return
	}

	digest := telegram.DigestData{Topic: topic, TotalArticles: len(articles)}
	var confidenceSum float64
	for _, a := range articles {
		confidenceSum += a.Confidence
		switch a.Sentiment {
		case common.SentimentPositive:
			digest.Positive++
		case common.SentimentNegative:
			digest.Negative++
		default:
			digest.Neutral++
		}
	}
	if len(articles) > 0 {
		digest.AvgConfidence = confidenceSum / float64(len(articles))
	}

	utils.GoSafe(func() {
		if err := s.notifier.SendMessage(telegram.FormatAnalysisDigest(digest)); err != nil {
			s.log.Warn("failed to send telegram digest", logger.ErrorField(err))
		}
	})
}

func toEntity(doc entity.Document, verdict sentiment.Verdict) (entity.AnalysisResult, error) {
	details, err := json.Marshal(verdict.Details)
	if err != nil {
		details = []byte("{}")
	}

	return entity.AnalysisResult{
		Title:         doc.Title,
		Content:       doc.Content,
		Description:   doc.Description,
		URL:           doc.URL,
		Source:        doc.Source,
		Author:        doc.Author,
		PublishedAt:   doc.PublishedAt,
		Sentiment:     verdict.Sentiment,
		Confidence:    verdict.Confidence,
		PositiveScore: verdict.Scores[common.SentimentPositive],
		NegativeScore: verdict.Scores[common.SentimentNegative],
		NeutralScore:  verdict.Scores[common.SentimentNeutral],
		ModelDetails:  details,
	}, err
}
