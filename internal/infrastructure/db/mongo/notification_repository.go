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

const collectionNotifications = "notifications"

type NotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{coll: db.Collection(collectionNotifications)}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := *n
	out.ID = uuid.NewString()
	if _, err := r.coll.InsertOne(ctx, &out); err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return &out, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *NotificationRepository) ListUnreadByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return r.list(ctx, bson.M{"user_id": userID, "read": false})
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}

// MarkRead flips the read flag. The filter includes the recipient so a
// user can only acknowledge their own notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"read": true}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n domain.Notification
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": userID}, update, opts).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return &n, nil
}

func (r *NotificationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Notification
	for cursor.Next(ctx) {
		var n domain.Notification
		if err := cursor.Decode(&n); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		out = append(out, &n)
	}
	return out, cursor.Err()
}

// EnsureIndexes creates the recipient query index.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
