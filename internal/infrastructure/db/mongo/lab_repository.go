package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arclab/arclab-api/internal/core/domain"
)

const labsCollection = "labs"

type MongoLabRepository struct {
	coll *mongo.Collection
}

func NewLabRepository(db *mongo.Database) *MongoLabRepository {
	return &MongoLabRepository{coll: db.Collection(labsCollection)}
}

type mongoLab struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	OwnerUserID string             `bson:"owner_user_id"`
	CreatedAt   int64              `bson:"created_at"`
}

func (r *MongoLabRepository) Create(ctx context.Context, lab *domain.Lab) (*domain.Lab, error) {
	doc := mongoLab{
		Name:        lab.Name,
		OwnerUserID: lab.OwnerUserID,
		CreatedAt:   lab.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrLabExists
		}
		return nil, fmt.Errorf("insert lab: %w", err)
	}

	created := *lab
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoLabRepository) FindByID(ctx context.Context, id string) (*domain.Lab, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLabNotFound
	}

	var ml mongoLab
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrLabNotFound
		}
		return nil, fmt.Errorf("find lab: %w", err)
	}
	return labFromDoc(ml), nil
}

func (r *MongoLabRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Lab, error) {
	cur, err := r.coll.Find(ctx, bson.M{"owner_user_id": ownerUserID})
	if err != nil {
		return nil, fmt.Errorf("list labs: %w", err)
	}
	defer cur.Close(ctx)

	labs := []domain.Lab{}
	for cur.Next(ctx) {
		var ml mongoLab
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode lab: %w", err)
		}
		labs = append(labs, *labFromDoc(ml))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list labs: %w", err)
	}
	return labs, nil
}

func (r *MongoLabRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrLabNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete lab: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLabNotFound
	}
	return nil
}

func labFromDoc(ml mongoLab) *domain.Lab {
	return &domain.Lab{
		ID:          ml.ID.Hex(),
		Name:        ml.Name,
		OwnerUserID: ml.OwnerUserID,
		CreatedAt:   unixToTime(ml.CreatedAt),
	}
}
