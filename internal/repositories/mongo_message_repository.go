package repositories

import (
	"context"
	"time"

	"github.com/anonto42/folio/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type messageDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Email       string             `bson:"email"`
	Subject     string             `bson:"subject"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d messageDocument) toModel() models.Message {
	return models.Message{
		ID:          d.ID.Hex(),
		Email:       d.Email,
		Subject:     d.Subject,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection(messagesCollection)}
}

func (r *MongoMessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	now := time.Now().UTC()
	doc := messageDocument{
		ID:          primitive.NewObjectID(),
		Email:       msg.Email,
		Subject:     msg.Subject,
		Description: msg.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return mongoErr(err)
	}
	*msg = doc.toModel()
	return nil
}

func (r *MongoMessageRepository) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc messageDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		return nil, mongoErr(err)
	}
	msg := doc.toModel()
	return &msg, nil
}

func (r *MongoMessageRepository) GetMessages(ctx context.Context) ([]models.Message, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, newestFirst)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[messageDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	msgs := make([]models.Message, 0, len(docs))
	for _, d := range docs {
		msgs = append(msgs, d.toModel())
	}
	return msgs, nil
}

func (r *MongoMessageRepository) DeleteMessage(ctx context.Context, id string) error {
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
