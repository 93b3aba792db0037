package entity

import (
	"time"
)

// AnalysisSummary is the derived daily rollup, one row per (keywords, date).
// It is recomputed and upserted inside the same transaction that stores the
// day's results, so repeated batches for the same day accumulate.
type AnalysisSummary struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Keywords      string    `gorm:"not null;uniqueIndex:idx_keywords_date" json:"keywords"`
	Date          string    `gorm:"not null;uniqueIndex:idx_keywords_date" json:"date"`
	TotalArticles int       `gorm:"default:0" json:"total_articles"`
	PositiveCount int       `gorm:"default:0" json:"positive_count"`
	NegativeCount int       `gorm:"default:0" json:"negative_count"`
	NeutralCount  int       `gorm:"default:0" json:"neutral_count"`
	AvgConfidence float64   `gorm:"default:0" json:"avg_confidence"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the AnalysisSummary model.
func (AnalysisSummary) TableName() string {
	return "analysis_summary"
}
