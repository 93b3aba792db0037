package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"golang-news-sentiment/pkg/common"
)

// GeminiConfig holds the settings for the Gemini classifier.
type GeminiConfig struct {
	Model               string
	MaxRequestPerMinute int
}

// GeminiClassifier is the LLM-as-classifier adapter. The model is prompted
// to return a three-class score distribution as JSON; its named labels go
// through the same LabelMap path as any other labeled classifier.
type GeminiClassifier struct {
	cfg     GeminiConfig
	client  *genai.Client
	labels  LabelMap
	limiter *rate.Limiter
}

const geminiClassifyPrompt = `Classify the sentiment of the following text.
Respond with only a JSON object of the form
{"positive": <0..1>, "negative": <0..1>, "neutral": <0..1>}
where the three values sum to 1.

Text:
%s`

// NewGeminiClassifier creates the Gemini adapter.
func NewGeminiClassifier(cfg GeminiConfig, client *genai.Client, labels LabelMap) *GeminiClassifier {
	if cfg.MaxRequestPerMinute <= 0 {
		cfg.MaxRequestPerMinute = 15
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.MaxRequestPerMinute)

	return &GeminiClassifier{
		cfg:     cfg,
		client:  client,
		labels:  labels,
		limiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// Name returns the model name used for weighting.
func (c *GeminiClassifier) Name() string {
	return "gemini"
}

// Score prompts the model and parses its JSON score distribution. Any
// request or parse failure is an adapter failure and the model is omitted
// from the ensemble for this document.
func (c *GeminiClassifier) Score(ctx context.Context, text string) (Prediction, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Prediction{}, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(geminiClassifyPrompt, text), "user"),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, contents, nil)
	if err != nil {
		return Prediction{}, fmt.Errorf("gemini request failed: %w", err)
	}

	return parseGeminiPrediction(resp.Text(), c.labels)
}

// parseGeminiPrediction extracts the JSON score object from a model reply
// and normalizes it. A reply missing any of the three classes is rejected.
func parseGeminiPrediction(reply string, labels LabelMap) (Prediction, error) {
	raw := extractJSONObject(reply)
	var native map[string]float64
	if err := json.Unmarshal([]byte(raw), &native); err != nil {
		return Prediction{}, fmt.Errorf("failed to parse gemini response %q: %w", raw, err)
	}

	scored := make([]inferenceLabelScore, 0, len(native))
	for label, score := range native {
		scored = append(scored, inferenceLabelScore{Label: label, Score: score})
	}
	pred := normalizeLabeledScores(scored, labels)

	for _, label := range common.Sentiments {
		if _, ok := pred.Scores[label]; !ok {
			return Prediction{}, fmt.Errorf("gemini response missing %s score", label)
		}
	}
	return pred, nil
}

// extractJSONObject trims markdown fences and surrounding prose the model
// sometimes wraps around its JSON.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}
