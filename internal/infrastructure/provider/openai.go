// Package provider adapts external generative-AI and text-to-speech services
// to the core ports. Clients are constructed once at process start and passed
// by reference into handlers; there is no ambient global state.
package provider

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/arclab/arclab-api/internal/core/ports"
)

// Config captures the OpenAI settings for both generation and speech.
type Config struct {
	APIKey    string
	ChatModel string
	TTSModel  string
	BaseURL   string // optional override, e.g. a proxy
}

const (
	defaultChatModel = openai.ChatModelGPT4oMini
	defaultTTSModel  = string(openai.SpeechModelTTS1)
	defaultVoice     = "alloy"
)

// OpenAIProvider implements ports.TextGenerator and ports.SpeechSynthesizer
// against the OpenAI API.
type OpenAIProvider struct {
	client    openai.Client
	chatModel string
	ttsModel  string
}

func NewOpenAIProvider(cfg Config) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = defaultChatModel
	}
	ttsModel := cfg.TTSModel
	if ttsModel == "" {
		ttsModel = defaultTTSModel
	}

	return &OpenAIProvider{
		client:    openai.NewClient(opts...),
		chatModel: chatModel,
		ttsModel:  ttsModel,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, input ports.GenerateInput) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.chatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(input.System),
			openai.UserMessage(input.Prompt),
		},
		Temperature: openai.Float(input.Temperature),
		MaxTokens:   openai.Int(input.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if voice == "" {
		voice = defaultVoice
	}

	resp, err := p.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(p.ttsModel),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: read audio: %w", err)
	}
	return audio, nil
}
