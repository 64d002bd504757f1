package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNoAPIKey means no credential is configured at all.
	ErrNoAPIKey = errors.New("no API key saved, add one with `dreem key set`")

	// ErrRateLimited distinguishes 429 responses so callers can show a
	// different message than for generic failures. Never retried here.
	ErrRateLimited = errors.New("rate limit exceeded, please wait a moment before trying again")
)

const (
	defaultBase  = "https://api.openai.com/v1"
	defaultModel = "gpt-4o-mini"

	systemPrompt = "You are a thoughtful dream interpreter. Offer gentle, non-judgmental insights, patterns, and questions. Avoid medical or legal advice."
)

// Client talks to the interpretation service. The zero value is not usable;
// construct with NewClient.
type Client struct {
	apiKey string
	model  string
	base   string
	http   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  defaultModel,
		base:   defaultBase,
		http:   &http.Client{},
	}
}

// WithBase overrides the API base URL. Used by tests.
func (c *Client) WithBase(base string) *Client {
	c.base = strings.TrimRight(base, "/")
	return c
}

// Turn is one prior message in a conversation.
type Turn struct {
	Role    string
	Content string
}

type chatRequest struct {
	Model       string              `json:"model"`
	Messages    []map[string]string `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float32             `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Interpret asks the model for a reading of one dream. It never retries; a
// 429 comes back as ErrRateLimited so the caller can word it apart from
// other failures.
func (c *Client) Interpret(ctx context.Context, text string, date time.Time, moonPhase string) (string, error) {
	prompt := fmt.Sprintf(
		"Dream date: %s\nMoon phase: %s\n\nDream:\n%s\n\nProvide a concise interpretation (150-250 words), noting themes, emotions, symbols, and possible real-life connections.",
		date.Format("Mon Jan 02 2006"), moonPhase, text)

	return c.complete(ctx, []Turn{{Role: "user", Content: prompt}})
}

// Converse continues a chat with the full message history. Same failure
// contract as Interpret.
func (c *Client) Converse(ctx context.Context, turns []Turn) (string, error) {
	return c.complete(ctx, turns)
}

func (c *Client) complete(ctx context.Context, turns []Turn) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	messages := make([]map[string]string, 0, len(turns)+1)
	messages = append(messages, map[string]string{"role": "system", "content": systemPrompt})
	for _, t := range turns {
		messages = append(messages, map[string]string{"role": t.Role, "content": t.Content})
	}

	req := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   400,
	}

	b, _ := json.Marshal(req)
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	r.Header.Set("Authorization", "Bearer "+c.apiKey)
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(r)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("ai: API error: %d %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var ch chatResponse
	if err := json.Unmarshal(body, &ch); err != nil {
		return "", fmt.Errorf("ai: decode response: %w", err)
	}
	if ch.Error != nil {
		return "", fmt.Errorf("ai: API error: %s", ch.Error.Message)
	}
	if len(ch.Choices) == 0 {
		return "", errors.New("ai: empty response")
	}
	content := strings.TrimSpace(ch.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("ai: empty response")
	}
	return content, nil
}

// Verify checks the stored credential against the models endpoint without
// spending an interpretation call.
func (c *Client) Verify(ctx context.Context) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/models", nil)
	if err != nil {
		return err
	}
	r.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ai: validation failed: %d %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
