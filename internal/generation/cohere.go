package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"proposalforge_backend/internal/logger"
	"proposalforge_backend/pkg/apperrors"
)

const (
	cohereChatAPI = "https://api.cohere.com/v2/chat"

	// Single non-streaming attempt with a fixed sampling temperature.
	samplingTemperature = 0.75
	requestTimeout      = 60 * time.Second
)

// Provider is a single-shot text generator. Implementations must not
// retry; the caller decides what is retryable.
type Provider interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// CohereClient calls the Cohere v2 chat endpoint directly.
type CohereClient struct {
	model   string
	baseURL string
	http    *http.Client
}

func NewCohereClient(model string) *CohereClient {
	return &CohereClient{
		model:   model,
		baseURL: cohereChatAPI,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

type cohereContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type cohereMessage struct {
	Role    string          `json:"role"`
	Content []cohereContent `json:"content"`
}

type cohereChatRequest struct {
	Model          string          `json:"model"`
	Messages       []cohereMessage `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type cohereChatResponse struct {
	Message struct {
		Content []cohereContent `json:"content"`
	} `json:"message"`
}

// Generate performs one chat round trip and returns the plain answer text.
// Provider failures map onto the error taxonomy by HTTP status; no retry.
func (c *CohereClient) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	reqBody := cohereChatRequest{
		Model: c.model,
		Messages: []cohereMessage{
			{Role: "user", Content: []cohereContent{{Type: "text", Text: prompt}}},
		},
		Temperature: samplingTemperature,
	}
	reqBody.ResponseFormat.Type = "text"

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.ErrGenerationFailed(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", apperrors.ErrGenerationFailed(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperrors.ErrGenerationFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		logger.CtxWarn(ctx, "cohere chat error",
			"status", resp.StatusCode, "body", string(bodyBytes))

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", apperrors.ErrInvalidProviderKey
		case http.StatusTooManyRequests:
			return "", apperrors.ErrProviderRateLimited
		case http.StatusPaymentRequired:
			return "", apperrors.ErrProviderQuota
		default:
			return "", apperrors.ErrGenerationFailed(
				fmt.Errorf("cohere: status %d", resp.StatusCode))
		}
	}

	var apiResp cohereChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", apperrors.ErrGenerationFailed(err)
	}

	var text strings.Builder
	for _, part := range apiResp.Message.Content {
		if part.Type == "text" {
			text.WriteString(part.Text)
		}
	}

	result := strings.TrimSpace(text.String())
	if result == "" {
		return "", apperrors.ErrEmptyGeneration
	}
	return result, nil
}
