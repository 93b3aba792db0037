package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"golang-news-sentiment/pkg/common"
)

func TestNormalizeCompound(t *testing.T) {
	tests := []struct {
		name          string
		compound      float64
		pos, neu, neg float64
		wantSentiment string
		wantConf      float64
	}{
		{
			name:     "strong positive compound",
			compound: 0.8, pos: 0.6, neu: 0.3, neg: 0.1,
			wantSentiment: common.SentimentPositive,
			wantConf:      0.8,
		},
		{
			name:     "strong negative compound",
			compound: -0.7, pos: 0.1, neu: 0.3, neg: 0.6,
			wantSentiment: common.SentimentNegative,
			wantConf:      0.7,
		},
		{
			name:     "inside neutral band",
			compound: 0.02, pos: 0.1, neu: 0.8, neg: 0.1,
			wantSentiment: common.SentimentNeutral,
			wantConf:      0.98,
		},
		{
			name:     "exactly at positive threshold",
			compound: 0.05, pos: 0.2, neu: 0.7, neg: 0.1,
			wantSentiment: common.SentimentPositive,
			wantConf:      0.05,
		},
		{
			name:     "exactly at negative threshold",
			compound: -0.05, pos: 0.1, neu: 0.7, neg: 0.2,
			wantSentiment: common.SentimentNegative,
			wantConf:      0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeCompound(tt.compound, tt.pos, tt.neu, tt.neg)

			assert.Equal(t, tt.wantSentiment, got.Sentiment)
			assert.InDelta(t, tt.wantConf, got.Confidence, 0.0001)

			sum := got.Scores[common.SentimentPositive] +
				got.Scores[common.SentimentNegative] +
				got.Scores[common.SentimentNeutral]
			assert.InDelta(t, 1.0, sum, 0.0001)
		})
	}
}

func TestNormalizeCompoundZeroTotalKeepsZeroScores(t *testing.T) {
	got := normalizeCompound(0, 0, 0, 0)

	assert.Equal(t, common.SentimentNeutral, got.Sentiment)
	assert.Equal(t, 0.0, got.Scores[common.SentimentPositive])
	assert.Equal(t, 0.0, got.Scores[common.SentimentNegative])
	assert.Equal(t, 0.0, got.Scores[common.SentimentNeutral])
}

func TestVaderClassifierScoresRealText(t *testing.T) {
	classifier := NewVaderClassifier()

	assert.Equal(t, "vader", classifier.Name())

	got, err := classifier.Score(context.Background(), "This is an absolutely wonderful, fantastic achievement")
	assert.NoError(t, err)
	assert.Equal(t, common.SentimentPositive, got.Sentiment)

	got, err = classifier.Score(context.Background(), "This horrible disaster was a terrible tragic failure")
	assert.NoError(t, err)
	assert.Equal(t, common.SentimentNegative, got.Sentiment)
}
