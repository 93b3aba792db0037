package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-news-sentiment/pkg/common"
)

func prediction(sentiment string, confidence, pos, neg, neu float64) Prediction {
	return Prediction{
		Sentiment:  sentiment,
		Confidence: confidence,
		Scores: map[string]float64{
			common.SentimentPositive: pos,
			common.SentimentNegative: neg,
			common.SentimentNeutral:  neu,
		},
	}
}

func TestCombineEmptyInputYieldsFallback(t *testing.T) {
	combiner := NewCombiner(nil, 0)

	verdict := combiner.Combine(map[string]Prediction{})

	assert.Equal(t, common.SentimentNeutral, verdict.Sentiment)
	assert.Equal(t, 0.5, verdict.Confidence)
	assert.Equal(t, 0.33, verdict.Scores[common.SentimentPositive])
	assert.Equal(t, 0.33, verdict.Scores[common.SentimentNegative])
	assert.Equal(t, 0.34, verdict.Scores[common.SentimentNeutral])
}

func TestCombineWeightedMeanRenormalizedOverPresentModels(t *testing.T) {
	// Two strong models and one neutral one, weighted 0.4/0.3/0.2. Total
	// present weight 0.9: combined positive is
	// (0.9*0.4 + 0.8*0.3 + 0.0*0.2) / 0.9 ≈ 0.667.
	combiner := NewCombiner(Weights{"a": 0.4, "b": 0.3, "c": 0.2}, 0.6)

	verdict := combiner.Combine(map[string]Prediction{
		"a": prediction(common.SentimentPositive, 0.9, 0.9, 0.05, 0.05),
		"b": prediction(common.SentimentPositive, 0.8, 0.8, 0.1, 0.1),
		"c": prediction(common.SentimentNeutral, 0.5, 0.0, 0.0, 1.0),
	})

	assert.Equal(t, common.SentimentPositive, verdict.Sentiment)
	assert.InDelta(t, 0.667, verdict.Confidence, 0.001)
}

func TestCombineConfidenceThresholdForcesNeutral(t *testing.T) {
	combiner := NewCombiner(Weights{"m": 1.0}, 0.6)

	verdict := combiner.Combine(map[string]Prediction{
		"m": prediction(common.SentimentPositive, 0.55, 0.55, 0.2, 0.25),
	})

	assert.Equal(t, common.SentimentNeutral, verdict.Sentiment)
	// Neutral score 0.25 is below the floor, so confidence resets to 0.5.
	assert.Equal(t, 0.5, verdict.Confidence)
}

func TestCombineSingleWeakModelForcedNeutral(t *testing.T) {
	combiner := NewCombiner(nil, 0.6)

	verdict := combiner.Combine(map[string]Prediction{
		"vader": prediction(common.SentimentPositive, 0.5, 0.5, 0.2, 0.3),
	})

	assert.Equal(t, common.SentimentNeutral, verdict.Sentiment)
	assert.GreaterOrEqual(t, verdict.Confidence, 0.5)
}

func TestCombineUnknownModelGetsDefaultWeight(t *testing.T) {
	combiner := NewCombiner(Weights{}, 0.6)

	verdict := combiner.Combine(map[string]Prediction{
		"mystery": prediction(common.SentimentNegative, 0.9, 0.05, 0.9, 0.05),
	})

	// A single unknown model renormalizes to its own scores.
	assert.Equal(t, common.SentimentNegative, verdict.Sentiment)
	assert.InDelta(t, 0.9, verdict.Confidence, 0.001)
}

func TestCombineScoresSumToOne(t *testing.T) {
	combiner := NewCombiner(DefaultWeights(), 0.6)

	verdict := combiner.Combine(map[string]Prediction{
		"vader":   prediction(common.SentimentPositive, 0.7, 0.6, 0.1, 0.3),
		"pattern": prediction(common.SentimentNeutral, 0.8, 0.1, 0.1, 0.8),
		"roberta": prediction(common.SentimentPositive, 0.9, 0.85, 0.05, 0.1),
	})

	sum := verdict.Scores[common.SentimentPositive] +
		verdict.Scores[common.SentimentNegative] +
		verdict.Scores[common.SentimentNeutral]
	assert.InDelta(t, 1.0, sum, 0.01)
}

func TestCombineTieBreakIsDeterministic(t *testing.T) {
	combiner := NewCombiner(Weights{"m": 1.0}, 0.1)

	// Positive and negative tie exactly; the earlier class in
	// negative, neutral, positive order wins.
	verdict := combiner.Combine(map[string]Prediction{
		"m": prediction(common.SentimentPositive, 0.45, 0.45, 0.45, 0.1),
	})

	require.Equal(t, verdict.Scores[common.SentimentPositive], verdict.Scores[common.SentimentNegative])
	assert.Equal(t, common.SentimentNegative, verdict.Sentiment)
}

func TestCombineRoundsToThreeDecimals(t *testing.T) {
	combiner := NewCombiner(Weights{"a": 0.3, "b": 0.3}, 0.0001)

	verdict := combiner.Combine(map[string]Prediction{
		"a": prediction(common.SentimentPositive, 1, 1.0/3.0, 1.0/3.0, 1.0/3.0),
		"b": prediction(common.SentimentPositive, 1, 1.0/3.0, 1.0/3.0, 1.0/3.0),
	})

	assert.Equal(t, 0.333, verdict.Scores[common.SentimentPositive])
	assert.Equal(t, 0.333, verdict.Scores[common.SentimentNegative])
	assert.Equal(t, 0.333, verdict.Scores[common.SentimentNeutral])
}
