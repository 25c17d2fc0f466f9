package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"MisinfoScanner/internal/config"
	"MisinfoScanner/internal/domain"
	"MisinfoScanner/internal/ports"
)

// Client talks to a HuggingFace-style inference API for zero-shot
// classification and AI-generated content detection.
type Client struct {
	endpoint            string
	token               string
	classificationModel string
	aiDetectionModel    string
	http                *http.Client
}

var _ ports.Classifier = (*Client)(nil)

// NewClient creates a reusable HTTP client for the inference endpoint.
func NewClient(cfg config.InferenceConfig) *Client {
	return &Client{
		endpoint:            cfg.Endpoint,
		token:               cfg.Token,
		classificationModel: cfg.ClassificationModel,
		aiDetectionModel:    cfg.AIDetectionModel,
		http:                &http.Client{Timeout: 15 * time.Second},
	}
}

// Classify runs zero-shot classification of text against the candidate
// labels and returns the parallel label/score sequences.
func (c *Client) Classify(ctx context.Context, text string, candidateLabels []string) (domain.Classification, error) {
	payload := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"candidate_labels": candidateLabels,
		},
	}

	var resp struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}

	if err := c.post(ctx, c.classificationModel, payload, &resp); err != nil {
		return domain.Classification{}, err
	}

	return domain.Classification{
		Labels: resp.Labels,
		Scores: resp.Scores,
		Model:  c.classificationModel,
	}, nil
}

// DetectGenerated runs the binary real/fake content classifier and
// returns the highest-confidence label.
func (c *Client) DetectGenerated(ctx context.Context, text string) (domain.LabelScore, error) {
	payload := map[string]any{"inputs": text}

	var resp [][]struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}

	if err := c.post(ctx, c.aiDetectionModel, payload, &resp); err != nil {
		return domain.LabelScore{}, err
	}

	if len(resp) == 0 || len(resp[0]) == 0 {
		return domain.LabelScore{}, fmt.Errorf("empty detection response")
	}

	best := resp[0][0]
	for _, candidate := range resp[0][1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}

	return domain.LabelScore{Label: best.Label, Score: best.Score}, nil
}

func (c *Client) post(ctx context.Context, model string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/models/"+model, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return fmt.Errorf("unexpected status %s, close body: %v", resp.Status, closeErr)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("decode response: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}
