package provider

import (
	"context"
	"strings"
)

const defaultEchoModel = "echo-model"

// Echo is a deterministic offline backend that reflects its input. It
// never fails, which makes it useful in tests and local setups without
// credentials.
type Echo struct {
	model string
}

func NewEcho(model string) *Echo {
	if model == "" {
		model = defaultEchoModel
	}
	return &Echo{model: model}
}

func (p *Echo) Name() string { return "echo" }

func (p *Echo) Generate(ctx context.Context, prompt, systemPrompt string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	if systemPrompt != "" {
		b.WriteString("[System: ")
		b.WriteString(systemPrompt)
		b.WriteString("] ")
	}
	b.WriteString("[Echo response to: ")
	b.WriteString(prompt)
	b.WriteString("]")

	return &Response{Content: b.String(), Model: p.model}, nil
}
