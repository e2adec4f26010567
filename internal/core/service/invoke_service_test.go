package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arclab/arclab-api/internal/core/domain"
	"github.com/arclab/arclab-api/internal/core/ports"
)

type stubGenerator struct {
	lastInput ports.GenerateInput
	reply     string
	err       error
}

func (g *stubGenerator) Generate(_ context.Context, input ports.GenerateInput) (string, error) {
	g.lastInput = input
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type stubSynthesizer struct {
	lastVoice string
	audio     []byte
	err       error
}

func (s *stubSynthesizer) Synthesize(_ context.Context, _, voice string) ([]byte, error) {
	s.lastVoice = voice
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

func invokeFixture(t *testing.T, gen *stubGenerator, tts *stubSynthesizer) (ports.InvokeService, *domain.Agent) {
	t.Helper()
	repo := newStubAgentRepo()
	agent, err := repo.Create(context.Background(), &domain.Agent{
		Name:        "Nova",
		Personality: "witty",
		Tone:        "casual",
		Voice:       "nova",
		Description: "A helpful research companion",
		Behaviors:   []string{"answer concisely"},
		Skills:      []string{"storytelling", "tutoring"},
		OwnerUserID: "user_1",
		LabID:       "lab_1",
	})
	if err != nil {
		t.Fatalf("agent setup failed: %v", err)
	}

	var synthesizer ports.SpeechSynthesizer
	if tts != nil {
		synthesizer = tts
	}
	return NewInvokeService(repo, gen, synthesizer, time.Second, zerolog.Nop()), agent
}

func TestInvokeService_Success(t *testing.T) {
	gen := &stubGenerator{reply: "Once upon a time..."}
	tts := &stubSynthesizer{audio: []byte("mp3bytes")}
	svc, agent := invokeFixture(t, gen, tts)

	result, err := svc.Invoke(context.Background(), agent.ID, "tell me a story")
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if result.Text != "Once upon a time..." {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if string(result.Audio) != "mp3bytes" {
		t.Fatalf("unexpected audio: %q", result.Audio)
	}
	if result.Degraded {
		t.Fatalf("expected non-degraded result")
	}
	if tts.lastVoice != "nova" {
		t.Fatalf("expected agent voice passed to synthesizer, got %q", tts.lastVoice)
	}
	if gen.lastInput.Prompt != "tell me a story" {
		t.Fatalf("unexpected prompt: %q", gen.lastInput.Prompt)
	}
}

func TestInvokeService_SystemInstructionCarriesPersona(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	svc, agent := invokeFixture(t, gen, nil)

	if _, err := svc.Invoke(context.Background(), agent.ID, "hi"); err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}

	system := gen.lastInput.System
	for _, want := range []string{"Nova", "witty", "casual", "storytelling, tutoring", "answer concisely"} {
		if !strings.Contains(system, want) {
			t.Fatalf("system instruction missing %q: %s", want, system)
		}
	}
}

func TestInvokeService_PersonaInstructionDeterministic(t *testing.T) {
	a := &domain.Agent{Name: "Nova", Personality: "witty", Tone: "casual"}
	if PersonaInstruction(a) != PersonaInstruction(a) {
		t.Fatalf("expected identical instruction for identical persona")
	}
}

func TestInvokeService_GenerationFailureDegrades(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream 500")}
	tts := &stubSynthesizer{audio: []byte("mp3bytes")}
	svc, agent := invokeFixture(t, gen, tts)

	// Provider failure is not a hard failure: the agent answers in character.
	result, err := svc.Invoke(context.Background(), agent.ID, "hi")
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}
	if !result.Degraded {
		t.Fatalf("expected degraded flag")
	}
	if !strings.Contains(result.Text, "Nova") {
		t.Fatalf("expected in-character apology, got %q", result.Text)
	}
	if len(result.Audio) != 0 {
		t.Fatalf("expected no audio on degraded path")
	}
}

func TestInvokeService_SynthesisFailureLeavesAudioEmpty(t *testing.T) {
	gen := &stubGenerator{reply: "hello"}
	tts := &stubSynthesizer{err: errors.New("tts down")}
	svc, agent := invokeFixture(t, gen, tts)

	result, err := svc.Invoke(context.Background(), agent.ID, "hi")
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if result.Text != "hello" {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if len(result.Audio) != 0 {
		t.Fatalf("expected empty audio when synthesis fails")
	}
	if result.Degraded {
		t.Fatalf("text path succeeded, result should not be degraded")
	}
}

func TestInvokeService_AgentNotFound(t *testing.T) {
	svc, _ := invokeFixture(t, &stubGenerator{reply: "ok"}, nil)

	if _, err := svc.Invoke(context.Background(), "missing", "hi"); !errors.Is(err, domain.ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
}

func TestInvokeService_TouchesLastUsed(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	repo := newStubAgentRepo()
	agent, _ := repo.Create(context.Background(), &domain.Agent{Name: "Nova", OwnerUserID: "u", LabID: "l"})
	svc := NewInvokeService(repo, gen, nil, time.Second, zerolog.Nop())

	if _, err := svc.Invoke(context.Background(), agent.ID, "hi"); err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), agent.ID)
	if stored.LastUsedAt.IsZero() {
		t.Fatalf("expected last_used_at to be set")
	}
}
