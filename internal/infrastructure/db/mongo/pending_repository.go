package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arclab/arclab-api/internal/core/domain"
)

const (
	pendingsCollection = "pending_registrations"
	resetsCollection   = "password_resets"
)

// Both pending collections store otp_expiry as a BSON date so the TTL index
// can purge expired records server-side.

type MongoPendingRepository struct {
	coll *mongo.Collection
}

func NewPendingRepository(db *mongo.Database) *MongoPendingRepository {
	return &MongoPendingRepository{coll: db.Collection(pendingsCollection)}
}

type mongoPending struct {
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	OTPCode      string    `bson:"otp_code"`
	OTPExpiry    time.Time `bson:"otp_expiry"`
}

func (r *MongoPendingRepository) Upsert(ctx context.Context, pending *domain.PendingRegistration) error {
	doc := mongoPending{
		Name:         pending.Name,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		OTPCode:      pending.OTPCode,
		OTPExpiry:    pending.OTPExpiry.UTC(),
	}

	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"email": pending.Email},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("upsert pending registration: %w", err)
	}
	return nil
}

func (r *MongoPendingRepository) FindByEmail(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	var mp mongoPending
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPendingNotFound
		}
		return nil, fmt.Errorf("find pending registration: %w", err)
	}

	return &domain.PendingRegistration{
		Name:         mp.Name,
		Email:        mp.Email,
		PasswordHash: mp.PasswordHash,
		OTPCode:      mp.OTPCode,
		OTPExpiry:    mp.OTPExpiry.UTC(),
	}, nil
}

func (r *MongoPendingRepository) Delete(ctx context.Context, email string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("delete pending registration: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPendingNotFound
	}
	return nil
}

type MongoResetRepository struct {
	coll *mongo.Collection
}

func NewResetRepository(db *mongo.Database) *MongoResetRepository {
	return &MongoResetRepository{coll: db.Collection(resetsCollection)}
}

type mongoReset struct {
	Email     string    `bson:"email"`
	OTPCode   string    `bson:"otp_code"`
	OTPExpiry time.Time `bson:"otp_expiry"`
}

func (r *MongoResetRepository) Upsert(ctx context.Context, reset *domain.PasswordReset) error {
	doc := mongoReset{
		Email:     reset.Email,
		OTPCode:   reset.OTPCode,
		OTPExpiry: reset.OTPExpiry.UTC(),
	}

	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"email": reset.Email},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert password reset: %w", err)
	}
	return nil
}

func (r *MongoResetRepository) FindByEmail(ctx context.Context, email string) (*domain.PasswordReset, error) {
	var mr mongoReset
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPendingNotFound
		}
		return nil, fmt.Errorf("find password reset: %w", err)
	}

	return &domain.PasswordReset{
		Email:     mr.Email,
		OTPCode:   mr.OTPCode,
		OTPExpiry: mr.OTPExpiry.UTC(),
	}, nil
}

func (r *MongoResetRepository) Delete(ctx context.Context, email string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("delete password reset: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPendingNotFound
	}
	return nil
}
