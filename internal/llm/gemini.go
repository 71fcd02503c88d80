// Package llm wraps the generative model behind a one-method interface so
// the agents that compose prompts never depend on a concrete SDK.
package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// Low temperature keeps extraction and SQL generation close to
// deterministic.
const temperature float32 = 0.1

// Generator produces text from a prompt. Model responses are untrusted text;
// callers own cleanup and validation.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Gemini is the Generator backed by the Gemini API. The client reads its
// API key from the environment (GEMINI_API_KEY or GOOGLE_API_KEY).
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator for the given model name; an empty
// name selects DefaultModel.
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// GenerateText implements Generator.
func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("llm: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("llm: empty response from model")
	}
	return text, nil
}
