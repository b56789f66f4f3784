package repositories

import (
	"context"
	"time"

	"github.com/anonto42/folio/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Email       string             `bson:"email"`
	Name        string             `bson:"name"`
	Password    string             `bson:"password"`
	Photo       string             `bson:"photo"`
	DOB         string             `bson:"dob"`
	IsAdmin     bool               `bson:"is_admin"`
	FirebaseUID string             `bson:"firebase_uid,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d userDocument) toModel() models.User {
	return models.User{
		ID:          d.ID.Hex(),
		Email:       d.Email,
		Name:        d.Name,
		Password:    d.Password,
		Photo:       d.Photo,
		DOB:         d.DOB,
		IsAdmin:     d.IsAdmin,
		FirebaseUID: d.FirebaseUID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection(usersCollection)}
}

// CreateUser inserts user and fills in its ID and timestamps
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	doc := userDocument{
		ID:          primitive.NewObjectID(),
		Email:       user.Email,
		Name:        user.Name,
		Password:    user.Password,
		Photo:       user.Photo,
		DOB:         user.DOB,
		IsAdmin:     user.IsAdmin,
		FirebaseUID: user.FirebaseUID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}
	*user = doc.toModel()
	return nil
}

// GetUserByID retrieves a user by ID from MongoDB
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"firebase_uid": uid})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	user := doc.toModel()
	return &user, nil
}

// GetUsers retrieves all users, newest first
func (r *MongoUserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, newestFirst)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[userDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}

// UpdateUser persists the mutable profile fields and the admin flag
func (r *MongoUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	objID, err := objectID(user.ID)
	if err != nil {
		return err
	}

	user.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":         user.Name,
			"photo":        user.Photo,
			"dob":          user.DOB,
			"is_admin":     user.IsAdmin,
			"firebase_uid": user.FirebaseUID,
			"updated_at":   user.UpdatedAt,
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
