package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const modelName = "gemini-2.5-flash"

// ErrNoCandidates is returned when Gemini answers without a usable candidate
// (quota, safety block, malformed response).
var ErrNoCandidates = errors.New("gemini: response contains no candidates")

// ChatTurn is one prior exchange entry supplied by the caller.
type ChatTurn struct {
	Role    string // "user" or "model"
	Content string
}

// Client wraps the Gemini API. The raw genai response never leaves this
// package; every call returns plain text or an error. Safe for concurrent
// use.
type Client struct {
	client *genai.Client
}

// New creates the shared Gemini client.
func New(ctx context.Context, apiKey string) (*Client, error) {
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	return &Client{client: c}, nil
}

// Close releases the underlying genai client.
func (c *Client) Close() error {
	return c.client.Close()
}

// Chat sends the system priming message, at most the last three exchange
// pairs of history and the current question, and returns the model's reply.
func (c *Client) Chat(ctx context.Context, system string, history []ChatTurn, question string) (string, error) {
	model := c.client.GenerativeModel(modelName)
	cs := model.StartChat()
	cs.History = []*genai.Content{
		{Role: "user", Parts: []genai.Part{genai.Text(system)}},
		{Role: "model", Parts: []genai.Part{genai.Text("Understood. I am ready to assist the customer.")}},
	}

	if len(history) > 6 {
		history = history[len(history)-6:]
	}
	for _, turn := range history {
		role := turn.Role
		if role != "user" && role != "model" {
			role = "user"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(question))
	if err != nil {
		return "", err
	}
	return firstCandidateText(resp)
}

// Generate runs a single-shot text prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return firstCandidateText(resp)
}

// GenerateWithImage runs a multimodal prompt (text instructions plus an
// inline image).
func (c *Client) GenerateWithImage(ctx context.Context, prompt, mimeType string, image []byte) (string, error) {
	model := c.client.GenerativeModel(modelName)
	format := strings.TrimPrefix(mimeType, "image/")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt), genai.ImageData(format, image))
	if err != nil {
		return "", err
	}
	return firstCandidateText(resp)
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", ErrNoCandidates
	}
	text, ok := content.Parts[0].(genai.Text)
	if !ok {
		return "", ErrNoCandidates
	}
	return string(text), nil
}
