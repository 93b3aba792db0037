package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-news-sentiment/internal/api/config"
	"golang-news-sentiment/internal/entity"
	"golang-news-sentiment/internal/sentiment"
	"golang-news-sentiment/pkg/common"
)

type stubClassifier struct {
	name       string
	prediction sentiment.Prediction
	err        error
}

func (s *stubClassifier) Name() string { return s.name }

func (s *stubClassifier) Score(ctx context.Context, text string) (sentiment.Prediction, error) {
	return s.prediction, s.err
}

func positivePrediction() sentiment.Prediction {
	return sentiment.Prediction{
		Sentiment:  common.SentimentPositive,
		Confidence: 0.9,
		Scores: map[string]float64{
			common.SentimentPositive: 0.9,
			common.SentimentNegative: 0.05,
			common.SentimentNeutral:  0.05,
		},
	}
}

func testAnalysisService(t *testing.T, repo *stubRepository, classifiers ...sentiment.Classifier) AnalysisService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Analyzer.ConfidenceThreshold = 0.6

	log := serviceLogger(t)
	analyzer := sentiment.NewAnalyzer(classifiers, sentiment.NewCombiner(nil, 0.6), log)

	return NewAnalysisService(cfg, log, nil, analyzer, repo, nil, nil)
}

func testDocument(title string) entity.Document {
	return entity.Document{
		Title:   title,
		Content: "Markets posted excellent gains after a strong earnings season",
		URL:     "https://example.com/" + title,
		Source:  "Example News",
	}
}

func TestScoreDocumentsStoresBatchAndSummarizes(t *testing.T) {
	repo := &stubRepository{}
	svc := testAnalysisService(t, repo,
		&stubClassifier{name: "vader", prediction: positivePrediction()},
	)

	response, err := svc.ScoreDocuments(context.Background(), "markets", []entity.Document{
		testDocument("one"),
		testDocument("two"),
	})
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.Equal(t, 2, response.Summary.TotalArticles)
	assert.Equal(t, 2, response.Summary.Positive)
	require.Len(t, response.Articles, 2)
	assert.Equal(t, common.SentimentPositive, response.Articles[0].Sentiment)

	assert.Equal(t, "markets", repo.storedTopic)
	require.Len(t, repo.stored, 2)
	assert.Equal(t, common.SentimentPositive, repo.stored[0].Sentiment)
	assert.NotEmpty(t, repo.stored[0].ModelDetails)
}

func TestScoreDocumentsFailingClassifiersFallBackToNeutral(t *testing.T) {
	repo := &stubRepository{}
	svc := testAnalysisService(t, repo,
		&stubClassifier{name: "vader", err: errors.New("lexicon unavailable")},
	)

	response, err := svc.ScoreDocuments(context.Background(), "markets", []entity.Document{
		testDocument("one"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, response.Summary.Neutral)
	assert.Equal(t, common.SentimentNeutral, response.Articles[0].Sentiment)
	assert.Equal(t, 0.5, response.Articles[0].Confidence)
}

func TestModelInfoMergesConfiguredWeights(t *testing.T) {
	repo := &stubRepository{}
	svc := testAnalysisService(t, repo,
		&stubClassifier{name: "vader", prediction: positivePrediction()},
		&stubClassifier{name: "pattern", prediction: positivePrediction()},
	)

	info := svc.ModelInfo()

	assert.Equal(t, []string{"pattern", "vader"}, info.AvailableModels)
	assert.Equal(t, 0.6, info.ConfidenceThreshold)
	assert.True(t, info.EnsembleEnabled)
	assert.Equal(t, 0.20, info.ModelWeights["vader"])
}
