package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AnalysisResult is one scored document. Rows are append-only: nothing
// mutates or deletes them except the explicit retention cleanup.
type AnalysisResult struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Keywords    string `gorm:"not null;index:idx_keywords" json:"keywords"`
	Title       string `gorm:"not null" json:"title"`
	Content     string `gorm:"not null" json:"content"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Author      string `json:"author"`
	PublishedAt string `gorm:"index:idx_published_at" json:"published_at"`

	Sentiment     string         `gorm:"not null;index:idx_sentiment" json:"sentiment"`
	Confidence    float64        `gorm:"not null" json:"confidence"`
	PositiveScore float64        `gorm:"not null" json:"positive_score"`
	NegativeScore float64        `gorm:"not null" json:"negative_score"`
	NeutralScore  float64        `gorm:"not null" json:"neutral_score"`
	ModelDetails  datatypes.JSON `json:"model_details"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_created_at" json:"created_at"`
}

// TableName specifies the table name for the AnalysisResult model.
func (AnalysisResult) TableName() string {
	return "analysis_results"
}
