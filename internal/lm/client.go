// Package lm talks to the model extraction collaborator: an OpenAI-compatible
// chat-completions endpoint (LM Studio in production). The collaborator is
// treated as opaque and possibly failing; every failure mode maps to a
// deterministic fallback so the chat user never sees a model error.
package lm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bcare-id/bcare/internal/domain"
)

// callTimeout bounds every model call. After it fires the fallback response
// is substituted; there is no retry.
const callTimeout = 25 * time.Second

var reJSONBlock = regexp.MustCompile(`(?s)\{.*\}`)

// completionAPI is the slice of the OpenAI client the package uses, split
// out so tests can substitute a fake.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client wraps the chat-completions API with the model, temperature and
// fallback policy for this service.
type Client struct {
	api         completionAPI
	model       string
	temperature float32
	now         func() time.Time
}

// New builds a Client against an OpenAI-compatible server at baseURL.
func New(baseURL, apiKey, model string, temperature float32) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		now:         time.Now,
	}
}

// Message is a prompt message for the collaborator.
type Message struct {
	Role    string
	Content string
}

// Complete runs a chat completion and returns the reply text. It never
// returns an error: timeouts, transport failures, HTTP 400/503 and empty
// bodies all degrade to the keyword fallback for the last user message.
func (c *Client) Complete(ctx context.Context, messages []Message) string {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logFailure(err)
		return c.fallback(messages)
	}

	if len(resp.Choices) == 0 {
		slog.Warn("model returned no choices, using fallback")
		return c.fallback(messages)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		slog.Warn("model returned empty content, using fallback")
		return c.fallback(messages)
	}
	return content
}

func (c *Client) logFailure(err error) {
	var apiErr *openai.APIError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		slog.Error("model call timed out", "timeout", callTimeout)
	case errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusBadRequest:
		slog.Warn("model rejected request, likely unloaded", "status", apiErr.HTTPStatusCode)
	case errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusServiceUnavailable:
		slog.Warn("model service unavailable", "status", apiErr.HTTPStatusCode)
	default:
		slog.Error("model call failed", "error", err)
	}
}

func (c *Client) fallback(messages []Message) string {
	last := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == openai.ChatMessageRoleUser {
			last = messages[i].Content
			break
		}
	}
	return FallbackResponse(last, c.now())
}

// ExtractJSON asks the model to turn a free-text complaint into the
// structured field set. The reply may wrap the JSON in prose; the first
// {...} block is taken. A reply with no parseable JSON is an error, which
// callers treat as "one-shot extraction failed".
func (c *Client) ExtractJSON(ctx context.Context, text string) (domain.CollectedInfo, error) {
	content := c.Complete(ctx, []Message{
		{Role: openai.ChatMessageRoleSystem, Content: ExtractionSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: ExtractionUserPrompt(text)},
	})

	raw := content
	if block := reJSONBlock.FindString(content); block != "" {
		raw = block
	}

	var info domain.CollectedInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		snippet := content
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return domain.CollectedInfo{}, fmt.Errorf("parse model JSON: %w (raw=%q)", err, snippet)
	}
	return info, nil
}

// SummarizeDescription asks the model for a short professional summary of
// the complaint. On any failure it falls back to a templated sentence built
// from the collected category and channel.
func (c *Client) SummarizeDescription(ctx context.Context, messages []domain.Message, collected domain.CollectedInfo) string {
	var parts []string
	for _, m := range messages {
		if m.Role == domain.RoleUser {
			parts = append(parts, m.Content)
		}
	}

	content := c.Complete(ctx, []Message{
		{Role: openai.ChatMessageRoleSystem, Content: SummarySystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: SummaryUserPrompt(string(collected.Category), string(collected.Channel), strings.Join(parts, " "))},
	})

	summary := strings.TrimSpace(content)
	summary = strings.Trim(summary, `"'`)
	if summary == "" {
		return fmt.Sprintf("Nasabah mengalami masalah terkait %s melalui %s.", collected.Category, collected.Channel)
	}
	if !strings.HasPrefix(strings.ToLower(summary), "nasabah") {
		summary = "Nasabah mengalami " + strings.ToLower(summary)
	}
	return summary
}
