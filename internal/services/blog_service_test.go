package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/anonto42/folio/backend/internal/models"
	"github.com/anonto42/folio/backend/internal/repositories"
	"github.com/anonto42/folio/backend/internal/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type fakeUploader struct {
	keys []string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func newBlogFixture(t *testing.T) (*BlogService, *repositories.Store, *fakeUploader) {
	store := repotest.NewStore(t)
	up := &fakeUploader{}
	return NewBlogService(store, up), store, up
}

func blogReq(n string) models.BlogRequest {
	return models.BlogRequest{
		Title:       "Title " + n,
		Description: "Description " + n,
		ImageURL:    "https://img.example.com/" + n + ".png",
	}
}

func TestCreateBlog(t *testing.T) {
	s, _, _ := newBlogFixture(t)
	ctx := context.Background()

	blog, err := s.CreateBlog(ctx, blogReq("one"), nil)
	require.NoError(t, err)
	assert.True(t, repositories.IsValidID(blog.ID))
	assert.Zero(t, blog.Likes)
	assert.Zero(t, blog.Comments)

	collisions := map[string]models.BlogRequest{
		"title":       {Title: "Title one", Description: "Fresh description", ImageURL: "https://img.example.com/x.png"},
		"description": {Title: "Fresh title", Description: "Description one", ImageURL: "https://img.example.com/x.png"},
		"image":       {Title: "Fresh title", Description: "Fresh description", ImageURL: "https://img.example.com/one.png"},
	}
	for name, req := range collisions {
		t.Run(name, func(t *testing.T) {
			_, err := s.CreateBlog(ctx, req, nil)
			requireStatus(t, err, http.StatusConflict)
		})
	}

	_, err = s.CreateBlog(ctx, blogReq("two"), nil)
	require.NoError(t, err)
}

func TestCreateBlogValidation(t *testing.T) {
	s, _, _ := newBlogFixture(t)
	ctx := context.Background()

	_, err := s.CreateBlog(ctx, models.BlogRequest{Title: "  abc ", Description: "long enough", ImageURL: "u"}, nil)
	e := requireStatus(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, e.Fields, "title")

	_, err = s.CreateBlog(ctx, models.BlogRequest{Title: "Valid title", Description: "Valid body"}, nil)
	e = requireStatus(t, err, http.StatusUnprocessableEntity)
	assert.Contains(t, e.Fields, "imageUrl")
}

func TestCreateBlogWithImage(t *testing.T) {
	s, _, up := newBlogFixture(t)
	ctx := context.Background()
	req := models.BlogRequest{Title: "Pictured post", Description: "With an image"}

	blog, err := s.CreateBlog(ctx, req, &ImageUpload{Filename: "a.png", Data: pngBytes})
	require.NoError(t, err)
	require.Len(t, up.keys, 1)
	assert.Equal(t, "https://cdn.example.com/"+up.keys[0], blog.ImageURL)

	_, err = s.CreateBlog(ctx, models.BlogRequest{Title: "Text upload", Description: "Not an image"},
		&ImageUpload{Filename: "a.txt", Data: []byte("plain text")})
	requireStatus(t, err, http.StatusUnsupportedMediaType)

	_, err = s.CreateBlog(ctx, models.BlogRequest{Title: "Empty upload", Description: "Nothing inside"},
		&ImageUpload{Filename: "a.png"})
	requireStatus(t, err, http.StatusUnsupportedMediaType)

	up.err = errors.New("bucket gone")
	_, err = s.CreateBlog(ctx, models.BlogRequest{Title: "Failing upload", Description: "Storage is down"},
		&ImageUpload{Filename: "b.png", Data: pngBytes})
	requireStatus(t, err, http.StatusInternalServerError)
}

func TestGetBlog(t *testing.T) {
	s, _, _ := newBlogFixture(t)
	ctx := context.Background()
	blog, err := s.CreateBlog(ctx, blogReq("one"), nil)
	require.NoError(t, err)

	got, err := s.GetBlog(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, blog.Title, got.Title)

	_, err = s.GetBlog(ctx, "xyz")
	requireStatus(t, err, http.StatusBadRequest)

	_, err = s.GetBlog(ctx, primitive.NewObjectID().Hex())
	requireStatus(t, err, http.StatusNotFound)
}

func TestUpdateBlog(t *testing.T) {
	s, _, _ := newBlogFixture(t)
	ctx := context.Background()
	one, err := s.CreateBlog(ctx, blogReq("one"), nil)
	require.NoError(t, err)
	_, err = s.CreateBlog(ctx, blogReq("two"), nil)
	require.NoError(t, err)

	req := blogReq("one")
	req.Title = "Renamed title"
	updated, err := s.UpdateBlog(ctx, one.ID, req, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed title", updated.Title)

	_, err = s.UpdateBlog(ctx, one.ID, blogReq("two"), nil)
	requireStatus(t, err, http.StatusConflict)

	_, err = s.UpdateBlog(ctx, "bad", blogReq("three"), nil)
	requireStatus(t, err, http.StatusBadRequest)

	_, err = s.UpdateBlog(ctx, one.ID, models.BlogRequest{Title: "x"}, nil)
	requireStatus(t, err, http.StatusUnprocessableEntity)

	_, err = s.UpdateBlog(ctx, primitive.NewObjectID().Hex(), blogReq("three"), nil)
	requireStatus(t, err, http.StatusNotFound)

	// duplicates are reported before existence
	_, err = s.UpdateBlog(ctx, primitive.NewObjectID().Hex(), blogReq("two"), nil)
	requireStatus(t, err, http.StatusConflict)
}

func TestDeleteBlogCascades(t *testing.T) {
	s, store, _ := newBlogFixture(t)
	ctx := context.Background()
	blog, err := s.CreateBlog(ctx, blogReq("one"), nil)
	require.NoError(t, err)
	other, err := s.CreateBlog(ctx, blogReq("two"), nil)
	require.NoError(t, err)

	comments := NewCommentService(store)
	likes := NewLikeService(store)
	author := models.Principal{UserID: primitive.NewObjectID().Hex(), Name: "Ada"}
	for i := 0; i < 3; i++ {
		_, err := comments.PostComment(ctx, author, blog.ID, models.CreateCommentRequest{Description: "hi"})
		require.NoError(t, err)
	}
	_, err = comments.PostComment(ctx, author, other.ID, models.CreateCommentRequest{Description: "kept"})
	require.NoError(t, err)
	_, err = likes.AddLike(ctx, author, blog.ID)
	require.NoError(t, err)

	removed, err := s.DeleteBlog(ctx, blog.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)

	left, err := store.Comments.GetComments(ctx)
	require.NoError(t, err)
	assert.Len(t, left, 1)

	n, err := store.Likes.CountByBlogID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.DeleteBlog(ctx, blog.ID)
	requireStatus(t, err, http.StatusNotFound)

	_, err = s.DeleteBlog(ctx, "nope")
	requireStatus(t, err, http.StatusBadRequest)
}
