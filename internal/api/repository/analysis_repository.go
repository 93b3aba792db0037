package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"golang-news-sentiment/internal/entity"
	"golang-news-sentiment/pkg/common"
)

// SummaryRow is one aggregate row over the results table.
type SummaryRow struct {
	TotalArticles  int
	PositiveCount  int
	NegativeCount  int
	NeutralCount   int
	AvgConfidence  float64
	UniqueKeywords int
	UniqueSources  int
}

// HistoryRow is one row of recent history.
type HistoryRow struct {
	Keywords   string
	Sentiment  string
	Confidence float64
	CreatedAt  time.Time
	Title      string
	Source     string
}

// TrendBucket is one (date, sentiment) group within the trend window.
type TrendBucket struct {
	Date          string
	Sentiment     string
	Count         int
	AvgConfidence float64
}

// TopTopicRow is one entry of the most-analyzed topics ranking.
type TopTopicRow struct {
	Keywords      string
	ArticleCount  int
	AvgConfidence float64
	PositiveCount int
	NegativeCount int
}

// AnalysisRepository defines the interface for the verdict store: an
// append-only results table plus its derived daily summary, and the
// read-side aggregation queries.
type AnalysisRepository interface {
	StoreBatch(ctx context.Context, topic string, results []entity.AnalysisResult) error
	History(ctx context.Context, maxAgeDays int) ([]HistoryRow, error)
	SummaryStats(ctx context.Context, topic string, maxAgeDays int) (SummaryRow, error)
	TrendBuckets(ctx context.Context, topic string, maxAgeDays int) ([]TrendBucket, error)
	TopTopics(ctx context.Context, maxAgeDays, limit int) ([]TopTopicRow, error)
	Export(ctx context.Context, topic string, maxAgeDays int) ([]entity.AnalysisResult, error)
	Cleanup(ctx context.Context, maxAgeDays int) error
}

// NewAnalysisRepository creates a new instance of AnalysisRepository.
func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

type analysisRepository struct {
	db *gorm.DB
}

const historyLimit = 100

// StoreBatch appends one row per result, then recomputes and upserts the
// (topic, today) summary. Both run in one transaction: either the rows and
// the summary land together or neither does. The summary is recomputed
// from all of today's rows for the topic under a per-key advisory lock, so
// repeated or concurrent same-day batches accumulate instead of
// overwriting each other.
func (r *analysisRepository) StoreBatch(ctx context.Context, topic string, results []entity.AnalysisResult) error {
	if len(results) == 0 {
		return nil
	}

	for i := range results {
		results[i].Keywords = topic
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		today := time.Now().Format("2006-01-02")

		// Writers for the same (topic, date) key serialize on this lock, so
		// the recompute below sees every committed row for the day. Without
		// it, a concurrent batch's aggregate runs on a snapshot missing this
		// batch's rows and its upsert lands a stale total.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", topic+"|"+today).Error; err != nil {
				return fmt.Errorf("failed to lock summary key: %w", err)
			}
		}

		if err := tx.Create(&results).Error; err != nil {
			return fmt.Errorf("failed to insert analysis results: %w", err)
		}

		var stats struct {
			Total         int
			PositiveCount int
			NegativeCount int
			NeutralCount  int
			AvgConfidence float64
		}
		err := tx.Raw(`
			SELECT
				COUNT(*) AS total,
				SUM(CASE WHEN sentiment = ? THEN 1 ELSE 0 END) AS positive_count,
				SUM(CASE WHEN sentiment = ? THEN 1 ELSE 0 END) AS negative_count,
				SUM(CASE WHEN sentiment = ? THEN 1 ELSE 0 END) AS neutral_count,
				COALESCE(AVG(confidence), 0) AS avg_confidence
			FROM analysis_results
			WHERE keywords = ? AND DATE(created_at) = ?`,
			common.SentimentPositive, common.SentimentNegative, common.SentimentNeutral,
			topic, today,
		).Scan(&stats).Error
		if err != nil {
			return fmt.Errorf("failed to compute daily summary: %w", err)
		}

		summary := entity.AnalysisSummary{
			Keywords:      topic,
			Date:          today,
			TotalArticles: stats.Total,
			PositiveCount: stats.PositiveCount,
			NegativeCount: stats.NegativeCount,
			NeutralCount:  stats.NeutralCount,
			AvgConfidence: stats.AvgConfidence,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "keywords"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_articles", "positive_count", "negative_count", "neutral_count", "avg_confidence",
			}),
		}).Create(&summary).Error
		if err != nil {
			return fmt.Errorf("failed to upsert daily summary: %w", err)
		}

		return nil
	})
}

// History returns the most recent rows within the window, newest first,
// capped at 100.
func (r *analysisRepository) History(ctx context.Context, maxAgeDays int) ([]HistoryRow, error) {
	var rows []HistoryRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT keywords, sentiment, confidence, created_at, title, source
		FROM analysis_results
		WHERE created_at >= ?
		ORDER BY created_at DESC
		LIMIT ?`,
		cutoff(maxAgeDays), historyLimit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return rows, nil
}

// SummaryStats aggregates the window, optionally filtered by topic
// substring. Zero matching rows yields a zero-valued row.
func (r *analysisRepository) SummaryStats(ctx context.Context, topic string, maxAgeDays int) (SummaryRow, error) {
	query := r.db.WithContext(ctx).
		Table("analysis_results").
		Select(`
			COUNT(*) AS total_articles,
			SUM(CASE WHEN sentiment = ? THEN 1 ELSE 0 END) AS positive_count,
			SUM(CASE WHEN sentiment = ? THEN 1 ELSE 0 END) AS negative_count,
			SUM(CASE WHEN sentiment = ? THEN 1 ELSE 0 END) AS neutral_count,
			COALESCE(AVG(confidence), 0) AS avg_confidence,
			COUNT(DISTINCT keywords) AS unique_keywords,
			COUNT(DISTINCT source) AS unique_sources`,
			common.SentimentPositive, common.SentimentNegative, common.SentimentNeutral).
		Where("created_at >= ?", cutoff(maxAgeDays))
	if topic != "" {
		query = query.Where("keywords LIKE ?", "%"+topic+"%")
	}

	var row SummaryRow
	if err := query.Scan(&row).Error; err != nil {
		return SummaryRow{}, fmt.Errorf("failed to query summary stats: %w", err)
	}
	return row, nil
}

// TrendBuckets groups the window's rows by (date, sentiment) for topics
// containing the given substring. Dates without rows do not appear.
func (r *analysisRepository) TrendBuckets(ctx context.Context, topic string, maxAgeDays int) ([]TrendBucket, error) {
	var buckets []TrendBucket
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE(created_at) AS date,
			sentiment,
			COUNT(*) AS count,
			AVG(confidence) AS avg_confidence
		FROM analysis_results
		WHERE keywords LIKE ? AND created_at >= ?
		GROUP BY DATE(created_at), sentiment
		ORDER BY DATE(created_at)`,
		"%"+topic+"%", cutoff(maxAgeDays),
	).Scan(&buckets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query trend buckets: %w", err)
	}
	return buckets, nil
}

// TopTopics ranks topics by document count within the window.
func (r *analysisRepository) TopTopics(ctx context.Context, maxAgeDays, limit int) ([]TopTopicRow, error) {
	var rows []TopTopicRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			keywords,
			COUNT(*) AS article_count,
			COALESCE(AVG(confidence), 0) AS avg_confidence,
			SUM(CASE WHEN sentiment = ? THEN 1 ELSE 0 END) AS positive_count,
			SUM(CASE WHEN sentiment = ? THEN 1 ELSE 0 END) AS negative_count
		FROM analysis_results
		WHERE created_at >= ?
		GROUP BY keywords
		ORDER BY article_count DESC
		LIMIT ?`,
		common.SentimentPositive, common.SentimentNegative,
		cutoff(maxAgeDays), limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query top topics: %w", err)
	}
	return rows, nil
}

// Export returns the full rows for the window, optionally filtered by
// topic substring, newest first.
func (r *analysisRepository) Export(ctx context.Context, topic string, maxAgeDays int) ([]entity.AnalysisResult, error) {
	query := r.db.WithContext(ctx).
		Where("created_at >= ?", cutoff(maxAgeDays)).
		Order("created_at DESC")
	if topic != "" {
		query = query.Where("keywords LIKE ?", "%"+topic+"%")
	}

	var rows []entity.AnalysisResult
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query export rows: %w", err)
	}
	return rows, nil
}

// Cleanup irreversibly deletes rows older than the cutoff from both tables
// and reclaims storage. Destructive: call sites are explicit, never a
// schedule inside this component.
func (r *analysisRepository) Cleanup(ctx context.Context, maxAgeDays int) error {
	cutoffTime := cutoff(maxAgeDays)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM analysis_results WHERE created_at < ?`, cutoffTime).Error; err != nil {
			return fmt.Errorf("failed to delete old results: %w", err)
		}
		if err := tx.Exec(`DELETE FROM analysis_summary WHERE date < ?`, cutoffTime.Format("2006-01-02")).Error; err != nil {
			return fmt.Errorf("failed to delete old summaries: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// VACUUM cannot run inside a transaction.
	if err := r.db.WithContext(ctx).Exec("VACUUM").Error; err != nil {
		return fmt.Errorf("failed to vacuum: %w", err)
	}
	return nil
}

// cutoff is the full-timestamp window boundary: exactly maxAgeDays before
// now, not rounded to a calendar date.
func cutoff(maxAgeDays int) time.Time {
	return time.Now().AddDate(0, 0, -maxAgeDays)
}
