package users

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accountd/accountd/internal/models"
)

// UserRepository defines persistence operations for credential records
type UserRepository interface {
	// Create inserts a new record and returns ErrEmailInUse when the email is
	// already taken. Uniqueness is decided by the store at write time, never by
	// a prior read.
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	// GetByEmail returns (nil, nil) when no record matches.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	ListAll(ctx context.Context) ([]*models.User, error)
}

// MongoUserRepository implements UserRepository using MongoDB
type MongoUserRepository struct {
	col *mongo.Collection
}

// NewMongoUserRepository creates a new repository for the given collection
func NewMongoUserRepository(col *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{col: col}
}

func (r *MongoUserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	now := time.Now().UTC()
	u := &models.User{
		// ids are generated here and stored as hex strings; ObjectIDs embed a
		// timestamp + random component so an id is never reused after deletion
		ID:           primitive.NewObjectID().Hex(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return u, nil
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoUserRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	upd := bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": time.Now().UTC(),
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, upd)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoUserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.User{}
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
