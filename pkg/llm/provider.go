package llm

import "context"

// Message is a chat turn in provider-agnostic form.
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // override the provider's default model
	JSONOnly    bool   // ask the provider for a JSON-object response when supported
}

type Option func(*Options)

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithJSONOnly() Option {
	return func(o *Options) {
		o.JSONOnly = true
	}
}

// LLMProvider is the contract for any scoring backend. The rubric grader only
// ever needs a single completion per call.
type LLMProvider interface {
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}
