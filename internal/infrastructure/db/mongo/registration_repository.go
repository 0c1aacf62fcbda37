package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

const collectionRegistrations = "event_registrations"

type RegistrationRepository struct {
	coll *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{coll: db.Collection(collectionRegistrations)}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *reg
	out.ID = uuid.NewString()
	if _, err := r.coll.InsertOne(ctx, &out); err != nil {
		// The unique (event_id, user_id) index is the cross-process
		// backstop against duplicate registrations.
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	return &out, nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var reg domain.Registration
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&reg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) ExistsByEventAndUser(ctx context.Context, eventID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"event_id": eventID, "user_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("registration exists: %w", err)
	}
	return n > 0, nil
}

// CountActiveByEvent counts registrations occupying a capacity slot:
// everything except rejected ones.
func (r *RegistrationRepository) CountActiveByEvent(ctx context.Context, eventID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"event_id": eventID,
		"status":   bson.M{"$ne": domain.RegistrationRejected},
	})
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update registration: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return r.list(ctx, bson.M{"event_id": eventID})
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *RegistrationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "registered_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var regs []*domain.Registration
	for cursor.Next(ctx) {
		var reg domain.Registration
		if err := cursor.Decode(&reg); err != nil {
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		regs = append(regs, &reg)
	}
	return regs, cursor.Err()
}

// EnsureIndexes creates the unique (event_id, user_id) compound index
// and the occupancy query index.
func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: indexUnique(),
		},
		{Keys: bson.D{{Key: "event_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
