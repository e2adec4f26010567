package handler

import (
	"time"

	"github.com/arclab/arclab-api/internal/core/domain"
)

// --- Request / Response types ---

type createAgentRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Personality string   `json:"personality" validate:"required"`
	Tone        string   `json:"tone"        validate:"required"`
	Voice       string   `json:"voice"       validate:"required"`
	Gender      string   `json:"gender"`
	Description string   `json:"description"`
	Behaviors   []string `json:"behaviors"`
	Skills      []string `json:"skills"`
}

type invokeRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type agentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Personality string    `json:"personality"`
	Tone        string    `json:"tone"`
	Voice       string    `json:"voice"`
	Gender      string    `json:"gender,omitempty"`
	Description string    `json:"description,omitempty"`
	Behaviors   []string  `json:"behaviors,omitempty"`
	Skills      []string  `json:"skills,omitempty"`
	LabID       string    `json:"lab_id"`
	CreatedAt   time.Time `json:"created_at"`
	LastUsedAt  time.Time `json:"last_used_at,omitzero"`
}

type listAgentsResponse struct {
	Data []agentResponse `json:"data"`
}

// invokeResponse carries the combined text+audio result. Audio is emitted as
// base64 by encoding/json's []byte handling; it is empty when synthesis was
// skipped or failed.
type invokeResponse struct {
	Agent    string `json:"agent"`
	Response string `json:"response"`
	Audio    []byte `json:"audio,omitempty"`
	Degraded bool   `json:"degraded,omitempty"`
}

type agentOptionsResponse struct {
	Personalities []string `json:"personalities"`
	Tones         []string `json:"tones"`
	Voices        []string `json:"voices"`
	Skills        []string `json:"skills"`
}

func toAgentResponse(a *domain.Agent) agentResponse {
	return agentResponse{
		ID:          a.ID,
		Name:        a.Name,
		Personality: a.Personality,
		Tone:        a.Tone,
		Voice:       a.Voice,
		Gender:      a.Gender,
		Description: a.Description,
		Behaviors:   a.Behaviors,
		Skills:      a.Skills,
		LabID:       a.LabID,
		CreatedAt:   a.CreatedAt,
		LastUsedAt:  a.LastUsedAt,
	}
}
