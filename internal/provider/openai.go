package provider

import (
	"context"
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultGroqModel   = "llama-3.3-70b-versatile"

	groqBaseURL = "https://api.groq.com/openai/v1"
)

// OpenAI talks to an OpenAI-compatible chat-completion endpoint.
// A non-empty baseURL redirects it to another compatible host (Groq).
type OpenAI struct {
	name    string
	baseURL string
	cfg     Config

	once   sync.Once
	client *openai.Client
}

// NewOpenAI returns a provider for the OpenAI API. The client is built
// lazily so construction never fails; a missing key surfaces from
// Generate instead.
func NewOpenAI(cfg Config) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}
	return &OpenAI{name: "openai", cfg: cfg}
}

// NewGroq returns a provider for Groq's OpenAI-compatible API.
func NewGroq(cfg Config) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = defaultGroqModel
	}
	return &OpenAI{name: "groq", baseURL: groqBaseURL, cfg: cfg}
}

func (p *OpenAI) Name() string { return p.name }

func (p *OpenAI) init() {
	if p.baseURL == "" {
		p.client = openai.NewClient(p.cfg.APIKey)
		return
	}
	clientCfg := openai.DefaultConfig(p.cfg.APIKey)
	clientCfg.BaseURL = p.baseURL
	p.client = openai.NewClientWithConfig(clientCfg)
}

func (p *OpenAI) Generate(ctx context.Context, prompt, systemPrompt string) (*Response, error) {
	if p.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	p.once.Do(p.init)

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.cfg.Model,
		Messages:    messages,
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s chat completion: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s chat completion: empty choices", p.name)
	}

	return &Response{Content: resp.Choices[0].Message.Content, Model: p.cfg.Model}, nil
}
