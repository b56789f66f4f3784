package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/folio/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a lookup or targeted write matches nothing.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidID is returned for identifiers that are not 24-char hex ObjectIDs.
	ErrInvalidID = errors.New("invalid id")
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// BlogRepository defines the interface for blog data operations
type BlogRepository interface {
	CreateBlog(ctx context.Context, blog *models.Blog) error
	GetBlogByID(ctx context.Context, id string) (*models.Blog, error)
	GetBlogs(ctx context.Context) ([]models.Blog, error)
	UpdateBlog(ctx context.Context, blog *models.Blog) error
	DeleteBlog(ctx context.Context, id string) error
	// HasDuplicate reports whether any blog other than excludeID shares the
	// title, the description or the image URL. An empty imageURL is not
	// compared.
	HasDuplicate(ctx context.Context, title, description, imageURL, excludeID string) (bool, error)
	SetCommentsCount(ctx context.Context, id string, count int64) error
	SetLikesCount(ctx context.Context, id string, count int64) error
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetComments(ctx context.Context) ([]models.Comment, error)
	GetCommentsByBlogID(ctx context.Context, blogID string) ([]models.Comment, error)
	CountByBlogID(ctx context.Context, blogID string) (int64, error)
	DeleteComment(ctx context.Context, id string) error
	DeleteByBlogID(ctx context.Context, blogID string) (int64, error)
}

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	HasUserLikedBlog(ctx context.Context, blogID, userID string) (bool, error)
	DeleteLike(ctx context.Context, blogID, userID string) error
	CountByBlogID(ctx context.Context, blogID string) (int64, error)
	DeleteByBlogID(ctx context.Context, blogID string) (int64, error)
}

// MessageRepository defines the interface for contact message operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessageByID(ctx context.Context, id string) (*models.Message, error)
	GetMessages(ctx context.Context) ([]models.Message, error)
	DeleteMessage(ctx context.Context, id string) error
}

// Store bundles one repository per collection over a single backend.
type Store struct {
	Users    UserRepository
	Blogs    BlogRepository
	Comments CommentRepository
	Likes    LikeRepository
	Messages MessageRepository
}

// IsValidID reports whether id is a well-formed ObjectID hex string. Every
// backend uses the same identifier format so clients see one id shape.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func newID() string {
	return primitive.NewObjectID().Hex()
}
