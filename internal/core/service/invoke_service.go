package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arclab/arclab-api/internal/api/metrics"
	"github.com/arclab/arclab-api/internal/core/domain"
	"github.com/arclab/arclab-api/internal/core/ports"
)

const (
	defaultCallTimeout = 30 * time.Second
	defaultTemperature = 0.8
	defaultMaxTokens   = 512
)

type invokeService struct {
	agents      ports.AgentRepository
	generator   ports.TextGenerator
	synthesizer ports.SpeechSynthesizer
	callTimeout time.Duration
	log         zerolog.Logger
	now         nowFunc
}

// NewInvokeService returns an InvokeService implementation. synthesizer may
// be nil, in which case responses carry no audio.
func NewInvokeService(
	agents ports.AgentRepository,
	generator ports.TextGenerator,
	synthesizer ports.SpeechSynthesizer,
	callTimeout time.Duration,
	log zerolog.Logger,
) ports.InvokeService {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &invokeService{
		agents:      agents,
		generator:   generator,
		synthesizer: synthesizer,
		callTimeout: callTimeout,
		log:         log,
		now:         utcNow,
	}
}

// Invoke loads the agent, frames the prompt with its persona, and proxies to
// the generative-AI and TTS providers. Provider failures degrade to an
// in-character apology rather than propagating as hard errors.
func (s *invokeService) Invoke(ctx context.Context, agentID, prompt string) (*ports.InvocationResult, error) {
	started := time.Now()

	// 1. Load the persona.
	agent, err := s.agents.FindByID(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("invoke agent: %w", err)
	}

	result := &ports.InvocationResult{AgentName: agent.Name}

	// 2. Generate the reply under a bounded timeout.
	genCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	text, err := s.generator.Generate(genCtx, ports.GenerateInput{
		System:      PersonaInstruction(agent),
		Prompt:      prompt,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	cancel()
	if err != nil {
		s.log.Warn().Err(err).Str("agent_id", agentID).Msg("generation failed, degrading to apology")
		result.Text = apologyReply(agent)
		result.Degraded = true
		metrics.AgentInvocationsTotal.WithLabelValues("degraded").Inc()
		metrics.AgentInvocationDuration.WithLabelValues("degraded").Observe(time.Since(started).Seconds())
		return result, nil
	}
	result.Text = text

	// 3. Best-effort speech synthesis; failure leaves the audio empty.
	if s.synthesizer != nil {
		ttsCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		audio, err := s.synthesizer.Synthesize(ttsCtx, text, agent.Voice)
		cancel()
		if err != nil {
			s.log.Warn().Err(err).Str("agent_id", agentID).Msg("speech synthesis failed")
		} else {
			result.Audio = audio
		}
	}

	// 4. Record usage (non-fatal on failure).
	if err := s.agents.TouchLastUsed(ctx, agentID, s.now()); err != nil {
		s.log.Warn().Err(err).Str("agent_id", agentID).Msg("failed to update last_used_at")
	}

	metrics.AgentInvocationsTotal.WithLabelValues("ok").Inc()
	metrics.AgentInvocationDuration.WithLabelValues("ok").Observe(time.Since(started).Seconds())

	s.log.Info().
		Str("agent_id", agentID).
		Str("agent", agent.Name).
		Bool("audio", len(result.Audio) > 0).
		Msg("agent invoked")

	return result, nil
}

// PersonaInstruction assembles the deterministic system instruction sent to
// the generative-AI provider. Field order is fixed so identical personas
// always yield the identical instruction.
func PersonaInstruction(a *domain.Agent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, an AI assistant.", a.Name)
	if a.Personality != "" {
		fmt.Fprintf(&b, " Your personality is %s.", a.Personality)
	}
	if a.Tone != "" {
		fmt.Fprintf(&b, " You speak in a %s tone.", a.Tone)
	}
	if a.Gender != "" {
		fmt.Fprintf(&b, " You present as %s.", a.Gender)
	}
	if a.Description != "" {
		fmt.Fprintf(&b, " About you: %s", strings.TrimRight(a.Description, ". ")+".")
	}
	if len(a.Behaviors) > 0 {
		fmt.Fprintf(&b, " You always: %s.", strings.Join(a.Behaviors, "; "))
	}
	if len(a.Skills) > 0 {
		fmt.Fprintf(&b, " You are skilled at: %s.", strings.Join(a.Skills, ", "))
	}
	b.WriteString(" Stay in character at all times.")
	return b.String()
}

func apologyReply(a *domain.Agent) string {
	return fmt.Sprintf("I'm sorry, %s needs a short break and can't answer right now. Please try again in a moment.", a.Name)
}
