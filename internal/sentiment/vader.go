package sentiment

import (
	"context"

	"github.com/jonreiter/govader"

	"golang-news-sentiment/pkg/common"
)

// compoundPositive and compoundNegative are the standard VADER thresholds
// on the signed compound score.
const (
	compoundPositive = 0.05
	compoundNegative = -0.05
)

// VaderClassifier is the lexicon-style adapter: it maps govader's compound
// polarity to a class and renormalizes the native pos/neu/neg proportions
// into the common score distribution.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderClassifier creates the VADER adapter.
func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Name returns the model name used for weighting.
func (c *VaderClassifier) Name() string {
	return "vader"
}

// Score runs the lexicon over the text and normalizes its output.
func (c *VaderClassifier) Score(_ context.Context, text string) (Prediction, error) {
	native := c.analyzer.PolarityScores(text)
	return normalizeCompound(native.Compound, native.Positive, native.Neutral, native.Negative), nil
}

// normalizeCompound maps a compound-style output (signed compound score
// plus native class proportions) into the common schema.
func normalizeCompound(compound, pos, neu, neg float64) Prediction {
	var sentiment string
	var confidence float64

	switch {
	case compound >= compoundPositive:
		sentiment = common.SentimentPositive
		confidence = abs(compound)
	case compound <= compoundNegative:
		sentiment = common.SentimentNegative
		confidence = abs(compound)
	default:
		sentiment = common.SentimentNeutral
		confidence = 1 - abs(compound)
	}

	scores := map[string]float64{
		common.SentimentPositive: 0,
		common.SentimentNeutral:  0,
		common.SentimentNegative: 0,
	}
	if total := pos + neu + neg; total > 0 {
		scores[common.SentimentPositive] = pos / total
		scores[common.SentimentNeutral] = neu / total
		scores[common.SentimentNegative] = neg / total
	}

	return Prediction{
		Sentiment:  sentiment,
		Confidence: confidence,
		Scores:     scores,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
