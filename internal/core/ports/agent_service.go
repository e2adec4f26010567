package ports

import (
	"context"

	"github.com/arclab/arclab-api/internal/core/domain"
)

// CreateAgentInput carries the persona fields for a new agent.
type CreateAgentInput struct {
	OwnerUserID string
	LabID       string
	Name        string
	Personality string
	Tone        string
	Voice       string
	Gender      string
	Description string
	Behaviors   []string
	Skills      []string
}

type AgentService interface {
	Create(ctx context.Context, input CreateAgentInput) (*domain.Agent, error)
	Get(ctx context.Context, id string) (*domain.Agent, error)
	ListByLab(ctx context.Context, ownerUserID, labID string) ([]domain.Agent, error)
	Delete(ctx context.Context, ownerUserID, id string) error
}

// InvocationResult is the combined output of one agent conversation turn.
// Audio is empty when speech synthesis was unavailable or failed.
type InvocationResult struct {
	AgentName string
	Text      string
	Audio     []byte
	Degraded  bool
}

type InvokeService interface {
	Invoke(ctx context.Context, agentID, prompt string) (*InvocationResult, error)
}
