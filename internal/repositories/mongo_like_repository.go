package repositories

import (
	"context"
	"time"

	"github.com/anonto42/folio/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type likeDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	BlogID    string             `bson:"blog_id"`
	UserID    string             `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection(likesCollection)}
}

// CreateLike inserts a like. A second like for the same pair fails with
// ErrDuplicate through the unique (blog_id, user_id) index.
func (r *MongoLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	doc := likeDocument{
		ID:        primitive.NewObjectID(),
		BlogID:    like.BlogID,
		UserID:    like.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}
	like.ID = doc.ID.Hex()
	like.CreatedAt = doc.CreatedAt
	return nil
}

// HasUserLikedBlog checks if a user has liked a specific blog
func (r *MongoLikeRepository) HasUserLikedBlog(ctx context.Context, blogID, userID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"blog_id": blogID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoLikeRepository) DeleteLike(ctx context.Context, blogID, userID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"blog_id": blogID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoLikeRepository) CountByBlogID(ctx context.Context, blogID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"blog_id": blogID})
}

func (r *MongoLikeRepository) DeleteByBlogID(ctx context.Context, blogID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"blog_id": blogID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
