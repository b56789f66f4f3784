package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	blogsCollection    = "blogs"
	commentsCollection = "comments"
	likesCollection    = "likes"
	messagesCollection = "messages"
)

// NewMongoStore wires every repository to db and makes sure the unique
// indexes backing the duplicate guards exist.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*Store, error) {
	if err := EnsureMongoIndexes(ctx, db); err != nil {
		return nil, err
	}
	return &Store{
		Users:    NewMongoUserRepository(db),
		Blogs:    NewMongoBlogRepository(db),
		Comments: NewMongoCommentRepository(db),
		Likes:    NewMongoLikeRepository(db),
		Messages: NewMongoMessageRepository(db),
	}, nil
}

// EnsureMongoIndexes creates the indexes the repositories rely on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "firebase_uid", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		likesCollection: {
			{Keys: bson.D{{Key: "blog_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "blog_id", Value: 1}}},
		},
	}
	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

func objectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return objID, nil
}

// mongoErr maps driver errors onto the package sentinels.
func mongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	defer cursor.Close(ctx)
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
