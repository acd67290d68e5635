package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/httpclient"
	"github.com/oukeidos/quicktrans/internal/metadata"
	"github.com/oukeidos/quicktrans/internal/prompt"
	"github.com/oukeidos/quicktrans/internal/version"
)

const defaultBaseURL = "https://api.openai.com/v1"

// RequestData is the body of a Responses API call.
type RequestData struct {
	Model           string      `json:"model"`
	Instructions    string      `json:"instructions,omitempty"`
	Input           []InputItem `json:"input"`
	MaxOutputTokens int         `json:"max_output_tokens,omitempty"`
}

type InputItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseData is the subset of the Responses API reply we read.
type ResponseData struct {
	ID                string             `json:"id"`
	Status            string             `json:"status"`
	IncompleteDetails *IncompleteDetails `json:"incomplete_details,omitempty"`
	Output            []OutputItem       `json:"output"`
	Usage             Usage              `json:"usage"`
}

type IncompleteDetails struct {
	Reason string `json:"reason"`
}

type OutputItem struct {
	Type    string            `json:"type"`
	Role    string            `json:"role,omitempty"`
	Content []ResponseContent `json:"content,omitempty"`
}

type ResponseContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

type errorEnvelope struct {
	Error errorDetails `json:"error"`
}

type errorDetails struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}

func (e errorDetails) codeString() string {
	if e.Code == nil {
		return ""
	}
	return fmt.Sprint(e.Code)
}

// Client talks to the OpenAI Responses API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
	}
}

// Close is a no-op; connections belong to the shared HTTP client.
func (c *Client) Close() error { return nil }

// Translate sends req and returns the concatenated output text.
func (c *Client) Translate(ctx context.Context, req prompt.Request) (string, error) {
	resp, err := c.Generate(ctx, RequestData{
		Instructions: req.System,
		Input:        []InputItem{{Role: "user", Content: req.User}},
	})
	if err != nil {
		return "", err
	}
	text := resp.OutputText()
	if strings.TrimSpace(text) == "" {
		reason := resp.Status
		if resp.IncompleteDetails != nil {
			reason = resp.IncompleteDetails.Reason
		}
		return "", apperrors.New(
			apperrors.KindValidation,
			"OpenAI response contained no text.",
			fmt.Errorf("empty output (status=%s)", reason),
		)
	}
	return text, nil
}

func (c *Client) Generate(ctx context.Context, req RequestData) (*ResponseData, error) {
	req.Model = c.model

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("User-Agent", version.UserAgent())

	body, resp, err := httpclient.DoAndRead(httpclient.Default(), httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, apperrors.New(
			apperrors.KindTransient,
			"OpenAI request failed due to a network/runtime error.",
			fmt.Errorf("request failed: %w", err),
		)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyOpenAIError(resp.StatusCode, resp.Status, parseErrorDetails(body))
	}

	var result ResponseData
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperrors.New(
			apperrors.KindValidation,
			"OpenAI response format was invalid.",
			fmt.Errorf("failed to decode response: %w", err),
		)
	}

	slog.Debug("OpenAI usage",
		"model", c.model,
		"status", result.Status,
		"usage_total", result.Usage.TotalTokens,
		"cost_usd", metadata.EstimateCost(c.model, result.Usage.InputTokens, result.Usage.OutputTokens),
		"response_id", result.ID,
	)
	return &result, nil
}

// OutputText joins every output_text part of assistant messages.
func (r *ResponseData) OutputText() string {
	var sb strings.Builder
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				sb.WriteString(c.Text)
			}
		}
	}
	return sb.String()
}

func parseErrorDetails(body []byte) errorDetails {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errorDetails{}
	}
	return envelope.Error
}

func classifyOpenAIError(statusCode int, status string, details errorDetails) error {
	cause := fmt.Errorf("openai status=%s type=%s code=%s message=%s", status, details.Type, details.codeString(), details.Message)

	switch statusCode {
	case http.StatusTooManyRequests:
		return apperrors.New(apperrors.KindRateLimit, "OpenAI API rate limit exceeded (429): please try again later.", cause)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.New(
			apperrors.KindAuth,
			fmt.Sprintf("OpenAI API authentication/authorization failed (%d): please verify your API key and permissions.", statusCode),
			cause,
		)
	case http.StatusNotFound:
		if isModelNotFound(details) {
			return apperrors.New(apperrors.KindBadRequest, "The model does not exist or you do not have access to it.", cause)
		}
		return apperrors.New(apperrors.KindBadRequest, "OpenAI resource not found (404).", cause)
	default:
		if statusCode >= 500 {
			return apperrors.New(apperrors.KindTransient, fmt.Sprintf("OpenAI server error (%d): please try again later.", statusCode), cause)
		}
		return apperrors.New(apperrors.KindBadRequest, fmt.Sprintf("OpenAI API error (%d): %s", statusCode, status), cause)
	}
}

func isModelNotFound(details errorDetails) bool {
	needle := strings.ToLower(details.codeString() + " " + details.Type + " " + details.Message)
	return strings.Contains(needle, "model_not_found") ||
		strings.Contains(needle, "does not exist or you do not have access to it")
}
