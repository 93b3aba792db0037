package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-news-sentiment/pkg/common"
	"golang-news-sentiment/pkg/logger"
)

type stubClassifier struct {
	name       string
	prediction Prediction
	err        error
}

func (s *stubClassifier) Name() string { return s.name }

func (s *stubClassifier) Score(ctx context.Context, text string) (Prediction, error) {
	if s.err != nil {
		return Prediction{}, s.err
	}
	return s.prediction, nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func TestAnalyzeShortTextReturnsFallback(t *testing.T) {
	analyzer := NewAnalyzer([]Classifier{
		&stubClassifier{name: "vader", prediction: prediction(common.SentimentPositive, 0.9, 0.9, 0.05, 0.05)},
	}, NewCombiner(nil, 0), testLogger(t))

	verdict := analyzer.Analyze(context.Background(), "too short")

	assert.Equal(t, common.SentimentNeutral, verdict.Sentiment)
	assert.Equal(t, 0.5, verdict.Confidence)
	assert.Equal(t, "text too short for analysis", verdict.Details.Note)
	assert.Equal(t, len("too short"), verdict.Details.TextLength)
	assert.Empty(t, verdict.Details.ModelsUsed)
}

func TestAnalyzeFailingClassifierIsOmitted(t *testing.T) {
	analyzer := NewAnalyzer([]Classifier{
		&stubClassifier{name: "solid", prediction: prediction(common.SentimentPositive, 0.9, 0.9, 0.05, 0.05)},
		&stubClassifier{name: "flaky", err: errors.New("upstream timeout")},
	}, NewCombiner(Weights{"solid": 1.0, "flaky": 1.0}, 0.6), testLogger(t))

	verdict := analyzer.Analyze(context.Background(), "markets rallied sharply on strong earnings")

	assert.Equal(t, common.SentimentPositive, verdict.Sentiment)
	assert.Equal(t, []string{"solid"}, verdict.Details.ModelsUsed)
	assert.NotContains(t, verdict.Details.ModelPredictions, "flaky")
}

func TestAnalyzeAllClassifiersFailingYieldsFallback(t *testing.T) {
	analyzer := NewAnalyzer([]Classifier{
		&stubClassifier{name: "a", err: errors.New("down")},
		&stubClassifier{name: "b", err: errors.New("down")},
	}, NewCombiner(nil, 0), testLogger(t))

	verdict := analyzer.Analyze(context.Background(), "markets rallied sharply on strong earnings")

	assert.Equal(t, common.SentimentNeutral, verdict.Sentiment)
	assert.Equal(t, 0.5, verdict.Confidence)
	assert.Equal(t, "no model predictions available", verdict.Details.Note)
	assert.Empty(t, verdict.Details.ModelsUsed)
}

func TestAnalyzeRecordsProcessingDetails(t *testing.T) {
	analyzer := NewAnalyzer([]Classifier{
		&stubClassifier{name: "vader", prediction: prediction(common.SentimentNegative, 0.8, 0.1, 0.8, 0.1)},
	}, NewCombiner(Weights{"vader": 1.0}, 0.6), testLogger(t))

	raw := "Profits fell 20% at https://example.com and investors fled"
	verdict := analyzer.Analyze(context.Background(), raw)

	assert.Equal(t, len(raw), verdict.Details.TextLength)
	assert.Less(t, verdict.Details.ProcessedLength, verdict.Details.TextLength)
	assert.Equal(t, []string{"vader"}, verdict.Details.ModelsUsed)
	require.Contains(t, verdict.Details.ModelPredictions, "vader")
	assert.Equal(t, common.SentimentNegative, verdict.Sentiment)
}

func TestModelsReturnsSortedNames(t *testing.T) {
	analyzer := NewAnalyzer([]Classifier{
		&stubClassifier{name: "vader"},
		&stubClassifier{name: "gemini"},
		&stubClassifier{name: "roberta"},
	}, NewCombiner(nil, 0), testLogger(t))

	assert.Equal(t, []string{"gemini", "roberta", "vader"}, analyzer.Models())
}
