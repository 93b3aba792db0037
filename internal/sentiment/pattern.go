package sentiment

import (
	"context"
	"strings"

	"golang-news-sentiment/pkg/common"
)

// polarity thresholds for the scalar-polarity adapter.
const (
	polarityPositive = 0.1
	polarityNegative = -0.1
)

// patternLexicon scores words on a [-1,1] polarity scale. Deliberately
// small: this adapter exists as the low-weight scalar-polarity member of
// the ensemble, not as a serious lexicon.
var patternLexicon = map[string]float64{
	"good": 0.7, "great": 0.8, "excellent": 1.0, "positive": 0.6,
	"strong": 0.5, "gain": 0.6, "gains": 0.6, "rise": 0.5, "rises": 0.5,
	"surge": 0.7, "boost": 0.6, "success": 0.8, "successful": 0.8,
	"win": 0.7, "wins": 0.7, "growth": 0.6, "improve": 0.6, "improved": 0.6,
	"record": 0.4, "best": 0.9, "optimistic": 0.7, "recovery": 0.5,
	"profit": 0.6, "profits": 0.6, "happy": 0.8, "hope": 0.4, "love": 0.9,

	"bad": -0.7, "terrible": -1.0, "negative": -0.6, "weak": -0.5,
	"loss": -0.6, "losses": -0.6, "fall": -0.5, "falls": -0.5,
	"drop": -0.5, "drops": -0.5, "crash": -0.9, "crisis": -0.8,
	"fail": -0.8, "fails": -0.8, "failure": -0.8, "decline": -0.6,
	"fear": -0.7, "fears": -0.7, "worst": -0.9, "concern": -0.4,
	"concerns": -0.4, "risk": -0.4, "risks": -0.4, "warning": -0.5,
	"death": -0.8, "war": -0.8, "attack": -0.7, "threat": -0.6,
	"fraud": -0.9, "scandal": -0.8, "angry": -0.7, "hate": -0.9,
}

// PatternClassifier is the polarity-style adapter: a single scalar polarity
// in [-1,1] derived from an embedded lexicon, normalized per the polarity
// contract.
type PatternClassifier struct{}

// NewPatternClassifier creates the polarity lexicon adapter.
func NewPatternClassifier() *PatternClassifier {
	return &PatternClassifier{}
}

// Name returns the model name used for weighting.
func (c *PatternClassifier) Name() string {
	return "pattern"
}

// Score averages the lexicon polarity of matched tokens and normalizes.
func (c *PatternClassifier) Score(_ context.Context, text string) (Prediction, error) {
	return normalizePolarity(c.polarity(text)), nil
}

func (c *PatternClassifier) polarity(text string) float64 {
	var sum float64
	var matched int
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,!?;:-")
		if score, ok := patternLexicon[token]; ok {
			sum += score
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return sum / float64(matched)
}

// normalizePolarity maps a scalar polarity in [-1,1] into the common
// schema: scores are pos=max(0,p), neg=max(0,-p), neu=1-pos-neg.
func normalizePolarity(polarity float64) Prediction {
	var sentiment string
	var confidence float64

	switch {
	case polarity > polarityPositive:
		sentiment = common.SentimentPositive
		confidence = min(abs(polarity), 1.0)
	case polarity < polarityNegative:
		sentiment = common.SentimentNegative
		confidence = min(abs(polarity), 1.0)
	default:
		sentiment = common.SentimentNeutral
		confidence = 1 - abs(polarity)
	}

	posScore := max(0, polarity)
	negScore := max(0, -polarity)

	return Prediction{
		Sentiment:  sentiment,
		Confidence: confidence,
		Scores: map[string]float64{
			common.SentimentPositive: posScore,
			common.SentimentNegative: negScore,
			common.SentimentNeutral:  1 - posScore - negScore,
		},
	}
}
