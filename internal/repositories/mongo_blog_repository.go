package repositories

import (
	"context"
	"time"

	"github.com/anonto42/folio/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type blogDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"image_url"`
	Comments    int64              `bson:"comments"`
	Likes       int64              `bson:"likes"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d blogDocument) toModel() models.Blog {
	return models.Blog{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Comments:    d.Comments,
		Likes:       d.Likes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoBlogRepository implements BlogRepository for MongoDB
type MongoBlogRepository struct {
	collection *mongo.Collection
}

// NewMongoBlogRepository creates a new MongoBlogRepository
func NewMongoBlogRepository(db *mongo.Database) *MongoBlogRepository {
	return &MongoBlogRepository{collection: db.Collection(blogsCollection)}
}

// CreateBlog creates a new blog in MongoDB
func (r *MongoBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	now := time.Now().UTC()
	doc := blogDocument{
		ID:          primitive.NewObjectID(),
		Title:       blog.Title,
		Description: blog.Description,
		ImageURL:    blog.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}
	*blog = doc.toModel()
	return nil
}

// GetBlogByID retrieves a blog by ID from MongoDB
func (r *MongoBlogRepository) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc blogDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	blog := doc.toModel()
	return &blog, nil
}

// GetBlogs retrieves all blogs, newest first
func (r *MongoBlogRepository) GetBlogs(ctx context.Context) ([]models.Blog, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, newestFirst)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[blogDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	blogs := make([]models.Blog, 0, len(docs))
	for _, d := range docs {
		blogs = append(blogs, d.toModel())
	}
	return blogs, nil
}

// UpdateBlog updates title, description and image of an existing blog
func (r *MongoBlogRepository) UpdateBlog(ctx context.Context, blog *models.Blog) error {
	objID, err := objectID(blog.ID)
	if err != nil {
		return err
	}

	blog.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"title":       blog.Title,
			"description": blog.Description,
			"image_url":   blog.ImageURL,
			"updated_at":  blog.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return mongoErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBlog deletes a blog by ID from MongoDB
func (r *MongoBlogRepository) DeleteBlog(ctx context.Context, id string) error {
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

func (r *MongoBlogRepository) HasDuplicate(ctx context.Context, title, description, imageURL, excludeID string) (bool, error) {
	or := bson.A{bson.M{"title": title}, bson.M{"description": description}}
	if imageURL != "" {
		or = append(or, bson.M{"image_url": imageURL})
	}
	filter := bson.M{"$or": or}
	if excludeID != "" {
		objID, err := objectID(excludeID)
		if err != nil {
			return false, err
		}
		filter["_id"] = bson.M{"$ne": objID}
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetCommentsCount overwrites the denormalized comment counter
func (r *MongoBlogRepository) SetCommentsCount(ctx context.Context, id string, count int64) error {
	return r.setCounter(ctx, id, "comments", count)
}

// SetLikesCount overwrites the denormalized like counter
func (r *MongoBlogRepository) SetLikesCount(ctx context.Context, id string, count int64) error {
	return r.setCounter(ctx, id, "likes", count)
}

func (r *MongoBlogRepository) setCounter(ctx context.Context, id, field string, count int64) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{field: count}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
