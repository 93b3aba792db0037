package sentiment

import (
	"context"
	"sort"
	"sync"

	"golang-news-sentiment/pkg/logger"
	"golang-news-sentiment/pkg/utils"
)

// MinTextLength is the shortest normalized text worth classifying. Anything
// below it short-circuits to the fixed fallback verdict.
const MinTextLength = 10

// Analyzer runs the full scoring pipeline for one document: normalize,
// fan out to every registered classifier, combine.
type Analyzer struct {
	classifiers []Classifier
	combiner    *Combiner
	log         *logger.Logger
}

// NewAnalyzer creates an analyzer over whatever classifiers are registered.
// The set may be empty; the pipeline then always produces the fallback.
func NewAnalyzer(classifiers []Classifier, combiner *Combiner, log *logger.Logger) *Analyzer {
	return &Analyzer{
		classifiers: classifiers,
		combiner:    combiner,
		log:         log,
	}
}

// Models lists the registered classifier names in stable order.
func (a *Analyzer) Models() []string {
	names := make([]string, 0, len(a.classifiers))
	for _, c := range a.classifiers {
		names = append(names, c.Name())
	}
	sort.Strings(names)
	return names
}

// Analyze scores one document's text. Adapters run concurrently; a failing
// adapter is logged and omitted, never aborts the pipeline. The returned
// verdict is always well-formed.
func (a *Analyzer) Analyze(ctx context.Context, text string) Verdict {
	cleaned := Normalize(text)
	if len(cleaned) < MinTextLength {
		verdict := FallbackVerdict("text too short for analysis")
		verdict.Details.TextLength = len(text)
		verdict.Details.ProcessedLength = len(cleaned)
		return verdict
	}

	predictions := a.scoreAll(ctx, cleaned)

	verdict := a.combiner.Combine(predictions)
	verdict.Details = VerdictDetails{
		ModelPredictions: predictions,
		TextLength:       len(text),
		ProcessedLength:  len(cleaned),
		ModelsUsed:       modelNames(predictions),
	}
	if len(predictions) == 0 {
		verdict.Details.Note = "no model predictions available"
	}
	return verdict
}

// scoreAll fans the text out to all classifiers and collects whatever
// subset succeeds.
func (a *Analyzer) scoreAll(ctx context.Context, text string) map[string]Prediction {
	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		predictions = make(map[string]Prediction, len(a.classifiers))
	)

	for _, classifier := range a.classifiers {
		classifier := classifier
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()

			prediction, err := classifier.Score(ctx, text)
			if err != nil {
				a.log.Warn("classifier failed, omitting from ensemble",
					logger.StringField("model", classifier.Name()),
					logger.ErrorField(err),
				)
				return
			}

			mu.Lock()
			predictions[classifier.Name()] = prediction
			mu.Unlock()
		})
	}
	wg.Wait()

	return predictions
}

func modelNames(predictions map[string]Prediction) []string {
	names := make([]string, 0, len(predictions))
	for name := range predictions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
