package sentiment

import (
	"context"
)

// Prediction is the normalized output of a single classifier: one of the
// three class labels, a confidence in [0,1], and a per-class score
// distribution summing to 1 within rounding tolerance.
type Prediction struct {
	Sentiment  string             `json:"sentiment"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores"`
}

// Classifier adapts one sentiment model into the common schema. Classifiers
// are independently optional: the ensemble runs with whatever subset is
// registered, down to a single model.
type Classifier interface {
	Name() string
	Score(ctx context.Context, text string) (Prediction, error)
}

// LabelMap translates a classifier's native label vocabulary into the
// common labels. It is supplied at adapter construction so new classifiers
// plug in without touching combiner logic.
type LabelMap map[string]string

// Resolve maps a native label, passing unmapped labels through verbatim.
func (m LabelMap) Resolve(native string) string {
	if mapped, ok := m[native]; ok {
		return mapped
	}
	return native
}
