package sentiment

import (
	"golang-news-sentiment/pkg/common"
	"golang-news-sentiment/pkg/utils"
)

// DefaultConfidenceThreshold is the minimum winning-class score required to
// report a non-neutral verdict.
const DefaultConfidenceThreshold = 0.6

// defaultModelWeight applies to models missing from the weight table.
const defaultModelWeight = 0.1

// Weights is the model trust table. Weights need not sum to 1: the combiner
// renormalizes by the total weight of the models actually present, so the
// ensemble degrades gracefully when models are unavailable.
type Weights map[string]float64

// DefaultWeights mirrors the trust ordering of the ensemble: transformer
// models highest, lexicon and polarity models lower.
func DefaultWeights() Weights {
	return Weights{
		"roberta": 0.40,
		"gemini":  0.30,
		"vader":   0.20,
		"pattern": 0.10,
	}
}

func (w Weights) of(model string) float64 {
	if weight, ok := w[model]; ok {
		return weight
	}
	return defaultModelWeight
}

// Verdict is the combined ensemble decision for one document.
type Verdict struct {
	Sentiment  string             `json:"sentiment"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores"`
	Details    VerdictDetails     `json:"details"`
}

// VerdictDetails records how the verdict was produced.
type VerdictDetails struct {
	ModelPredictions map[string]Prediction `json:"model_predictions"`
	TextLength       int                   `json:"text_length"`
	ProcessedLength  int                   `json:"processed_length"`
	ModelsUsed       []string              `json:"models_used"`
	Note             string                `json:"note,omitempty"`
}

// Combiner merges per-model predictions into one verdict.
type Combiner struct {
	weights   Weights
	threshold float64
}

// NewCombiner creates a combiner with the given weight table and
// confidence threshold. Zero threshold falls back to the default.
func NewCombiner(weights Weights, threshold float64) *Combiner {
	if weights == nil {
		weights = DefaultWeights()
	}
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Combiner{weights: weights, threshold: threshold}
}

// Combine computes the weighted mean of the present models' per-class
// scores, renormalized over the weights of those models only, then applies
// the confidence-threshold override: a winner below the threshold is
// reported as neutral. An empty input yields the fixed fallback verdict.
// Ties resolve deterministically to the earliest class in
// negative, neutral, positive order.
func (c *Combiner) Combine(predictions map[string]Prediction) Verdict {
	if len(predictions) == 0 {
		return FallbackVerdict("no model predictions available")
	}

	combined := map[string]float64{
		common.SentimentPositive: 0,
		common.SentimentNegative: 0,
		common.SentimentNeutral:  0,
	}
	var totalWeight float64

	for model, prediction := range predictions {
		weight := c.weights.of(model)
		totalWeight += weight
		for sentiment, score := range prediction.Scores {
			combined[sentiment] += score * weight
		}
	}
	if totalWeight > 0 {
		for sentiment := range combined {
			combined[sentiment] /= totalWeight
		}
	}

	var winner string
	var confidence float64
	for _, sentiment := range common.Sentiments {
		if winner == "" || combined[sentiment] > confidence {
			winner = sentiment
			confidence = combined[sentiment]
		}
	}

	// Low-certainty ensembles are never reported as polarized.
	if confidence < c.threshold {
		winner = common.SentimentNeutral
		confidence = combined[common.SentimentNeutral]
		if confidence < 0.5 {
			confidence = 0.5
		}
	}

	return Verdict{
		Sentiment:  winner,
		Confidence: utils.RoundScore(confidence),
		Scores: map[string]float64{
			common.SentimentPositive: utils.RoundScore(combined[common.SentimentPositive]),
			common.SentimentNegative: utils.RoundScore(combined[common.SentimentNegative]),
			common.SentimentNeutral:  utils.RoundScore(combined[common.SentimentNeutral]),
		},
	}
}

// FallbackVerdict is the fixed verdict used when no classifier output is
// available, either because the text is too short or every adapter failed.
func FallbackVerdict(note string) Verdict {
	return Verdict{
		Sentiment:  common.SentimentNeutral,
		Confidence: 0.5,
		Scores: map[string]float64{
			common.SentimentPositive: 0.33,
			common.SentimentNegative: 0.33,
			common.SentimentNeutral:  0.34,
		},
		Details: VerdictDetails{
			ModelPredictions: map[string]Prediction{},
			ModelsUsed:       []string{},
			Note:             note,
		},
	}
}
