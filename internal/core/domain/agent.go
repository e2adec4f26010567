package domain

import (
	"errors"
	"time"
)

var ErrAgentNotFound = errors.New("agent not found")
var ErrAgentExists = errors.New("agent already exists")
var ErrForbidden = errors.New("access forbidden")

// Agent is a configurable persona scoped to a single lab and owned by a
// single user. Persona fields feed the instruction template on invocation.
type Agent struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Personality string    `json:"personality"`
	Tone        string    `json:"tone"`
	Voice       string    `json:"voice"`
	Gender      string    `json:"gender"`
	Description string    `json:"description"`
	Behaviors   []string  `json:"behaviors"`
	Skills      []string  `json:"skills"`
	OwnerUserID string    `json:"owner_user_id"`
	LabID       string    `json:"lab_id"`
	CreatedAt   time.Time `json:"created_at"`
	LastUsedAt  time.Time `json:"last_used_at,omitempty"`
}

// Persona option tables. These are display/prompt-assembly data only; the
// service does not reject values outside the lists.
var (
	PersonalityOptions = []string{
		"friendly", "professional", "witty", "empathetic", "analytical",
		"enthusiastic", "calm", "sarcastic",
	}

	ToneOptions = []string{
		"casual", "formal", "playful", "serious", "encouraging", "direct",
	}

	VoiceOptions = []string{
		"alloy", "echo", "fable", "onyx", "nova", "shimmer",
	}

	SkillOptions = []string{
		"storytelling", "coding help", "tutoring", "brainstorming",
		"summarization", "translation", "roleplay", "customer support",
	}
)
