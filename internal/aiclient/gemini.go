package aiclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/budget-insight/internal/logging"
	"fjacquet/budget-insight/internal/parsererror"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

const (
	serviceName = "gemini"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.0-flash"
)

// GeminiConfig holds the settings for the Gemini completer.
type GeminiConfig struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
	Timeout           time.Duration
}

// GeminiClient implements Completer on top of the Google Gemini API. Calls
// are rate limited and bounded by the configured timeout.
type GeminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	limiter   *rate.Limiter
	timeout   time.Duration
	logger    logging.Logger
}

// NewGeminiClient creates a Gemini completer. It fails when no API key is
// configured.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig, logger logging.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &parsererror.ValidationError{Field: "ai.api_key", Reason: "GEMINI_API_KEY is not set"}
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		model:     client.GenerativeModel(cfg.Model),
		modelName: cfg.Model,
		limiter:   NewLimiter(cfg.RequestsPerMinute),
		timeout:   cfg.Timeout,
		logger:    logger.WithField(logging.FieldComponent, "gemini"),
	}, nil
}

// NewLimiter allows requestsPerMinute calls per minute with no burst. A
// non-positive rate disables limiting.
func NewLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}

// Complete sends prompt to Gemini and returns the concatenated text parts
// of the first candidate.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &parsererror.ServiceError{Service: serviceName, Operation: "rate limit wait", Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &parsererror.ServiceError{Service: serviceName, Operation: "generate content", Err: err}
	}

	text := responseText(resp)
	c.logger.Debug("Gemini completion received",
		logging.F(logging.FieldModel, c.modelName),
		logging.F(logging.FieldDuration, time.Since(started).Milliseconds()),
		logging.F(logging.FieldCount, len(text)))

	if strings.TrimSpace(text) == "" {
		return "", &parsererror.ServiceError{Service: serviceName, Operation: "generate content", Err: parsererror.ErrEmptyResponse}
	}
	return text, nil
}

// Close releases the underlying client connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
