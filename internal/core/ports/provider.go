package ports

import "context"

// GenerateInput is the consumed interface of the generative-AI provider:
// a system instruction assembled from the agent persona plus the user prompt.
type GenerateInput struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int64
}

// TextGenerator produces a completion for a persona-framed prompt.
type TextGenerator interface {
	Generate(ctx context.Context, input GenerateInput) (string, error)
}

// SpeechSynthesizer renders text to audio bytes using the named voice.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}
