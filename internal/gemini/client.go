package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/oukeidos/quicktrans/internal/apperrors"
	"github.com/oukeidos/quicktrans/internal/httpclient"
	"github.com/oukeidos/quicktrans/internal/metadata"
	"github.com/oukeidos/quicktrans/internal/prompt"
	"github.com/oukeidos/quicktrans/internal/version"
	"google.golang.org/api/option"
)

// Client handles communication with the Gemini API.
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, apiKey string, modelName string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperrors.New(apperrors.KindAuth, "Gemini API key is required.", fmt.Errorf("empty api key"))
	}
	// Note: option.WithHTTPClient is avoided because it bypasses the genai
	// library's API key header injection (403). Timeouts are enforced via
	// context in Translate instead.
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey), option.WithUserAgent(version.UserAgent()))
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	return &Client{
		client:    client,
		model:     client.GenerativeModel(modelName),
		modelName: modelName,
	}, nil
}

// Close closes the underlying genai client.
func (c *Client) Close() error {
	return c.client.Close()
}

// Translate sends a translation request to Gemini and returns the model's
// text reply.
func (c *Client) Translate(ctx context.Context, req prompt.Request) (string, error) {
	// The genai client has no HTTP timeout of its own.
	ctx, cancel := context.WithTimeout(ctx, httpclient.DefaultTimeout)
	defer cancel()

	c.model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.System)},
	}
	resp, err := c.model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text, err := extractResponseText(resp)
	if err != nil {
		return "", apperrors.New(apperrors.KindValidation, "Gemini response was empty or malformed.", err)
	}

	if u := resp.UsageMetadata; u != nil {
		// Reasoning tokens are the remainder of the total and bill as output.
		in := int(u.PromptTokenCount)
		out := int(u.TotalTokenCount) - in
		if out < 0 {
			out = 0
		}
		slog.Debug("Gemini usage",
			"model", c.modelName,
			"usage_in", u.PromptTokenCount,
			"usage_out", u.CandidatesTokenCount,
			"usage_total", u.TotalTokenCount,
			"cost_usd", metadata.EstimateCost(c.modelName, in, out),
		)
	}
	return text, nil
}

func extractResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("no response received from Gemini")
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			continue
		}
		var combined strings.Builder
		for _, part := range candidate.Content.Parts {
			text, ok := part.(genai.Text)
			if !ok {
				continue
			}
			combined.WriteString(string(text))
		}
		if strings.TrimSpace(combined.String()) != "" {
			return combined.String(), nil
		}
	}
	return "", fmt.Errorf("no text parts found in Gemini response")
}
