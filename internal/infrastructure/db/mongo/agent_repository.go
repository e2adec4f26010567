package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arclab/arclab-api/internal/core/domain"
)

const agentsCollection = "agents"

type MongoAgentRepository struct {
	coll *mongo.Collection
}

func NewAgentRepository(db *mongo.Database) *MongoAgentRepository {
	return &MongoAgentRepository{coll: db.Collection(agentsCollection)}
}

type mongoAgent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Personality string             `bson:"personality,omitempty"`
	Tone        string             `bson:"tone,omitempty"`
	Voice       string             `bson:"voice,omitempty"`
	Gender      string             `bson:"gender,omitempty"`
	Description string             `bson:"description,omitempty"`
	Behaviors   []string           `bson:"behaviors,omitempty"`
	Skills      []string           `bson:"skills,omitempty"`
	OwnerUserID string             `bson:"owner_user_id"`
	LabID       string             `bson:"lab_id"`
	CreatedAt   int64              `bson:"created_at"`
	LastUsedAt  int64              `bson:"last_used_at,omitempty"`
}

func (r *MongoAgentRepository) Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	doc := mongoAgent{
		Name:        agent.Name,
		Personality: agent.Personality,
		Tone:        agent.Tone,
		Voice:       agent.Voice,
		Gender:      agent.Gender,
		Description: agent.Description,
		Behaviors:   agent.Behaviors,
		Skills:      agent.Skills,
		OwnerUserID: agent.OwnerUserID,
		LabID:       agent.LabID,
		CreatedAt:   agent.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAgentExists
		}
		return nil, fmt.Errorf("insert agent: %w", err)
	}

	created := *agent
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoAgentRepository) FindByID(ctx context.Context, id string) (*domain.Agent, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAgentNotFound
	}

	var ma mongoAgent
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAgentNotFound
		}
		return nil, fmt.Errorf("find agent: %w", err)
	}
	return agentFromDoc(ma), nil
}

func (r *MongoAgentRepository) ListByLab(ctx context.Context, labID string) ([]domain.Agent, error) {
	cur, err := r.coll.Find(ctx, bson.M{"lab_id": labID})
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer cur.Close(ctx)

	agents := []domain.Agent{}
	for cur.Next(ctx) {
		var ma mongoAgent
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode agent: %w", err)
		}
		agents = append(agents, *agentFromDoc(ma))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}

func (r *MongoAgentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAgentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete agent: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

func (r *MongoAgentRepository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAgentNotFound
	}

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"last_used_at": at.Unix()}},
	)
	if err != nil {
		return fmt.Errorf("touch agent: %w", err)
	}
	return nil
}

func agentFromDoc(ma mongoAgent) *domain.Agent {
	return &domain.Agent{
		ID:          ma.ID.Hex(),
		Name:        ma.Name,
		Personality: ma.Personality,
		Tone:        ma.Tone,
		Voice:       ma.Voice,
		Gender:      ma.Gender,
		Description: ma.Description,
		Behaviors:   ma.Behaviors,
		Skills:      ma.Skills,
		OwnerUserID: ma.OwnerUserID,
		LabID:       ma.LabID,
		CreatedAt:   unixToTime(ma.CreatedAt),
		LastUsedAt:  unixToTime(ma.LastUsedAt),
	}
}
