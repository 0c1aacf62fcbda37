package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

const collectionRoles = "roles"

// RoleRepository stores roles keyed by name. Reads go straight to the
// collection on every call; permission edits must be visible to the
// next authorization check without any cache window.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(collectionRoles)}
}

type mongoRole struct {
	Name        string   `bson:"_id"`
	Description string   `bson:"description,omitempty"`
	Permissions []string `bson:"permissions"`
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRole{
		Name:        role.Name,
		Description: role.Description,
		Permissions: role.Permissions,
	}
	if doc.Permissions == nil {
		doc.Permissions = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrRoleExists
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return toRole(mr), nil
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cursor.Close(ctx)

	var roles []*domain.Role
	for cursor.Next(ctx) {
		var mr mongoRole
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, toRole(mr))
	}
	return roles, cursor.Err()
}

// AddPermissions unions permissions into the role's set in a single
// atomic $addToSet and returns the updated document.
func (r *RoleRepository) AddPermissions(ctx context.Context, name string, permissions []string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$addToSet": bson.M{"permissions": bson.M{"$each": permissions}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mr mongoRole
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": name}, update, opts).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("grant permissions: %w", err)
	}
	return toRole(mr), nil
}

func (r *RoleRepository) Delete(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func toRole(mr mongoRole) *domain.Role {
	return &domain.Role{
		Name:        mr.Name,
		Description: mr.Description,
		Permissions: mr.Permissions,
	}
}
