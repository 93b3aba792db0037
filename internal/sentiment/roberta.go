package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"golang-news-sentiment/pkg/common"
)

// RobertaConfig holds the settings for the hosted transformer classifier.
type RobertaConfig struct {
	BaseURL             string
	Model               string
	APIToken            string
	MaxRequestPerMinute int
}

// RobertaClassifier is the transformer-style adapter. It calls a hosted
// inference endpoint that returns a full per-label score distribution and
// maps the endpoint's label vocabulary through a LabelMap supplied at
// construction.
type RobertaClassifier struct {
	cfg     RobertaConfig
	client  *http.Client
	labels  LabelMap
	limiter *rate.Limiter
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type inferenceLabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewRobertaClassifier creates the hosted transformer adapter.
func NewRobertaClassifier(cfg RobertaConfig, labels LabelMap) *RobertaClassifier {
	if cfg.MaxRequestPerMinute <= 0 {
		cfg.MaxRequestPerMinute = 60
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.MaxRequestPerMinute)

	return &RobertaClassifier{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		labels:  labels,
		limiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// Name returns the model name used for weighting.
func (c *RobertaClassifier) Name() string {
	return "roberta"
}

// Score sends the text to the inference endpoint and normalizes the
// returned label distribution. A timeout or non-200 response is an adapter
// failure; the caller omits this model from the ensemble.
func (c *RobertaClassifier) Score(ctx context.Context, text string) (Prediction, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Prediction{}, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to marshal inference request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.cfg.BaseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to read inference response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("inference endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var result [][]inferenceLabelScore
	if err := json.Unmarshal(body, &result); err != nil {
		return Prediction{}, fmt.Errorf("failed to unmarshal inference response: %w", err)
	}
	if len(result) == 0 || len(result[0]) == 0 {
		return Prediction{}, fmt.Errorf("inference endpoint returned no scores")
	}

	return normalizeLabeledScores(result[0], c.labels), nil
}

// normalizeLabeledScores maps a native label distribution into the common
// schema. Unmapped labels pass through verbatim; the winner is the argmax
// over the mapped distribution, evaluated in the same fixed class order the
// ensemble uses so exact ties resolve deterministically.
func normalizeLabeledScores(result []inferenceLabelScore, labels LabelMap) Prediction {
	scores := make(map[string]float64, len(result))
	for _, item := range result {
		scores[labels.Resolve(strings.ToLower(item.Label))] = item.Score
	}

	ordered := make([]string, 0, len(scores))
	seen := make(map[string]bool, len(scores))
	for _, label := range common.Sentiments {
		if _, ok := scores[label]; ok {
			ordered = append(ordered, label)
			seen[label] = true
		}
	}
	var passthrough []string
	for label := range scores {
		if !seen[label] {
			passthrough = append(passthrough, label)
		}
	}
	sort.Strings(passthrough)
	ordered = append(ordered, passthrough...)

	var sentiment string
	var confidence float64
	for _, label := range ordered {
		if sentiment == "" || scores[label] > confidence {
			sentiment = label
			confidence = scores[label]
		}
	}

	return Prediction{
		Sentiment:  sentiment,
		Confidence: confidence,
		Scores:     scores,
	}
}
