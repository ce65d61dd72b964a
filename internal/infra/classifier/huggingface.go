// Package classifier implements the object-detection contract against the
// Hugging Face inference API.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"edrop/config"
	"edrop/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultTimeout       = 20 * time.Second
	defaultMinConfidence = 0.25
)

// huggingFaceClassifier implements service.ObjectClassifier against a hosted
// DETR-style object-detection endpoint.
type huggingFaceClassifier struct {
	endpoint      string
	apiToken      string
	minConfidence float64
	httpClient    *http.Client
	logger        *slog.Logger
}

// detectionResponse mirrors the inference API's response shape.
type detectionResponse struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
	Box   struct {
		XMin float64 `json:"xmin"`
		YMin float64 `json:"ymin"`
		XMax float64 `json:"xmax"`
		YMax float64 `json:"ymax"`
	} `json:"box"`
}

// Params holds dependencies for the classifier, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewHuggingFaceClassifier creates an ObjectClassifier backed by the
// Hugging Face inference API.
func NewHuggingFaceClassifier(params Params) (service.ObjectClassifier, error) {
	cfg := params.Config.Classifier
	if cfg == nil || cfg.Endpoint == "" {
		return nil, errors.New("classifier endpoint must be configured")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	minConfidence := cfg.MinConfidence
	if minConfidence <= 0 {
		minConfidence = defaultMinConfidence
	}

	return &huggingFaceClassifier{
		endpoint:      cfg.Endpoint,
		apiToken:      cfg.APIToken,
		minConfidence: minConfidence,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: params.Logger,
	}, nil
}

// Detect sends raw image bytes to the inference endpoint and returns the
// detections above the confidence floor.
func (c *huggingFaceClassifier) Detect(ctx context.Context, image []byte) ([]service.Detection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(image))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "classifier request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read classifier response")
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Classifier returned non-OK status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)

		return nil, errors.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var raw []detectionResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode classifier response")
	}

	detections := make([]service.Detection, 0, len(raw))
	for _, d := range raw {
		if d.Score < c.minConfidence {
			continue
		}

		detections = append(detections, service.Detection{
			Label:      d.Label,
			Confidence: d.Score,
			Box: service.BoundingBox{
				XMin: d.Box.XMin,
				YMin: d.Box.YMin,
				XMax: d.Box.XMax,
				YMax: d.Box.YMax,
			},
		})
	}

	c.logger.Debug("Classifier detections",
		slog.Int("raw", len(raw)),
		slog.Int("kept", len(detections)),
	)

	return detections, nil
}
