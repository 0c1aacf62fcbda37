package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

const (
	collectionChannels = "channels"
	collectionPosts    = "posts"
)

type ChannelRepository struct {
	coll *mongo.Collection
}

func NewChannelRepository(db *mongo.Database) *ChannelRepository {
	return &ChannelRepository{coll: db.Collection(collectionChannels)}
}

func (r *ChannelRepository) ExistsByEvent(ctx context.Context, eventID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"event_id": eventID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("channel exists: %w", err)
	}
	return n > 0, nil
}

func (r *ChannelRepository) Create(ctx context.Context, ch *domain.Channel) (*domain.Channel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *ch
	out.ID = uuid.NewString()
	if _, err := r.coll.InsertOne(ctx, &out); err != nil {
		return nil, fmt.Errorf("insert channel: %w", err)
	}
	return &out, nil
}

// EnsureIndexes enforces the 1:1 channel-per-event relationship.
func (r *ChannelRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event_id", Value: 1}},
		Options: indexUnique(),
	})
	return err
}

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(collectionPosts)}
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *p
	out.ID = uuid.NewString()
	if _, err := r.coll.InsertOne(ctx, &out); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &out, nil
}
