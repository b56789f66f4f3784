package repositories

import (
	"context"
	"time"

	"github.com/anonto42/folio/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type commentDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CreatorID   string             `bson:"creator_id"`
	CreatorName string             `bson:"creator_name"`
	BlogID      string             `bson:"blog_id"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d commentDocument) toModel() models.Comment {
	return models.Comment{
		ID:          d.ID.Hex(),
		CreatorID:   d.CreatorID,
		CreatorName: d.CreatorName,
		BlogID:      d.BlogID,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection(commentsCollection)}
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	now := time.Now().UTC()
	doc := commentDocument{
		ID:          primitive.NewObjectID(),
		CreatorID:   comment.CreatorID,
		CreatorName: comment.CreatorName,
		BlogID:      comment.BlogID,
		Description: comment.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}
	*comment = doc.toModel()
	return nil
}

func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc commentDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	comment := doc.toModel()
	return &comment, nil
}

// GetComments retrieves every comment, newest first
func (r *MongoCommentRepository) GetComments(ctx context.Context) ([]models.Comment, error) {
	return r.find(ctx, bson.D{}, newestFirst)
}

// GetCommentsByBlogID retrieves the comments of one blog in posting order
func (r *MongoCommentRepository) GetCommentsByBlogID(ctx context.Context, blogID string) ([]models.Comment, error) {
	oldestFirst := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, bson.M{"blog_id": blogID}, oldestFirst)
}

func (r *MongoCommentRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Comment, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[commentDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	comments := make([]models.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, d.toModel())
	}
	return comments, nil
}

func (r *MongoCommentRepository) CountByBlogID(ctx context.Context, blogID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"blog_id": blogID})
}

func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id string) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByBlogID removes every comment of a blog and returns how many went
func (r *MongoCommentRepository) DeleteByBlogID(ctx context.Context, blogID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"blog_id": blogID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
