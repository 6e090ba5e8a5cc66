package provider

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// Gemini talks to the Gemini API via the official genai SDK. The SDK
// client needs a context, so it is created on first Generate.
type Gemini struct {
	cfg Config

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGemini(cfg Config) *Gemini {
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	return &Gemini{cfg: cfg}
}

func (p *Gemini) Name() string { return "gemini" }

func (p *Gemini) Generate(ctx context.Context, prompt, systemPrompt string) (*Response, error) {
	if p.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	p.once.Do(func() {
		p.client, p.initErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  p.cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	if p.initErr != nil {
		return nil, fmt.Errorf("gemini client: %w", p.initErr)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(p.cfg.Temperature),
		MaxOutputTokens: int32(p.cfg.MaxTokens),
	}
	if systemPrompt != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.cfg.Model, genai.Text(prompt), genCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini generate content: empty response")
	}
	return &Response{Content: text, Model: p.cfg.Model}, nil
}
