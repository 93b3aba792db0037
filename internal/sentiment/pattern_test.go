package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"golang-news-sentiment/pkg/common"
)

func TestPatternClassifierScore(t *testing.T) {
	classifier := NewPatternClassifier()

	tests := []struct {
		name          string
		text          string
		wantSentiment string
	}{
		{
			name:          "positive wording",
			text:          "excellent growth and strong gains this quarter",
			wantSentiment: common.SentimentPositive,
		},
		{
			name:          "negative wording",
			text:          "the crash deepened the crisis and losses mounted",
			wantSentiment: common.SentimentNegative,
		},
		{
			name:          "no lexicon matches",
			text:          "the committee met on tuesday afternoon",
			wantSentiment: common.SentimentNeutral,
		},
		{
			name:          "mixed wording cancels out",
			text:          "gains offset by losses",
			wantSentiment: common.SentimentNeutral,
		},
		{
			name:          "punctuation trimmed before lookup",
			text:          "what a success!",
			wantSentiment: common.SentimentPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifier.Score(context.Background(), tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantSentiment, got.Sentiment)
		})
	}
}

func TestNormalizePolarityScoreShape(t *testing.T) {
	got := normalizePolarity(0.6)
	assert.Equal(t, common.SentimentPositive, got.Sentiment)
	assert.InDelta(t, 0.6, got.Confidence, 0.0001)
	assert.InDelta(t, 0.6, got.Scores[common.SentimentPositive], 0.0001)
	assert.InDelta(t, 0.0, got.Scores[common.SentimentNegative], 0.0001)
	assert.InDelta(t, 0.4, got.Scores[common.SentimentNeutral], 0.0001)

	got = normalizePolarity(-0.4)
	assert.Equal(t, common.SentimentNegative, got.Sentiment)
	assert.InDelta(t, 0.4, got.Scores[common.SentimentNegative], 0.0001)

	got = normalizePolarity(0)
	assert.Equal(t, common.SentimentNeutral, got.Sentiment)
	assert.InDelta(t, 1.0, got.Confidence, 0.0001)
	assert.InDelta(t, 1.0, got.Scores[common.SentimentNeutral], 0.0001)
}

func TestNormalizePolarityThresholdBoundary(t *testing.T) {
	// Exactly at the threshold stays neutral; only strictly beyond flips.
	assert.Equal(t, common.SentimentNeutral, normalizePolarity(0.1).Sentiment)
	assert.Equal(t, common.SentimentNeutral, normalizePolarity(-0.1).Sentiment)
	assert.Equal(t, common.SentimentPositive, normalizePolarity(0.11).Sentiment)
	assert.Equal(t, common.SentimentNegative, normalizePolarity(-0.11).Sentiment)
}
