package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/anonto42/folio/backend/internal/models"
	"github.com/anonto42/folio/backend/internal/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComments(t *testing.T) {
	store := repotest.NewStore(t)
	blogs := NewBlogService(store, nil)
	s := NewCommentService(store)
	ctx := context.Background()

	blog, err := blogs.CreateBlog(ctx, blogReq("one"), nil)
	require.NoError(t, err)
	author := models.Principal{UserID: primitive.NewObjectID().Hex(), Name: "Ada"}

	list, err := s.ListBlogComments(ctx, blog.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	c, err := s.PostComment(ctx, author, blog.ID, models.CreateCommentRequest{Description: "  first!  "})
	require.NoError(t, err)
	assert.Equal(t, "first!", c.Description)
	assert.Equal(t, "Ada", c.CreatorName)
	assert.Equal(t, author.UserID, c.CreatorID)

	_, err = s.PostComment(ctx, author, blog.ID, models.CreateCommentRequest{Description: "second"})
	require.NoError(t, err)

	got, err := blogs.GetBlog(ctx, blog.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Comments)

	list, err = s.ListBlogComments(ctx, blog.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, s.DeleteComment(ctx, c.ID))
	got, err = blogs.GetBlog(ctx, blog.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Comments)

	err = s.DeleteComment(ctx, c.ID)
	requireStatus(t, err, http.StatusNotFound)

	_, err = s.PostComment(ctx, author, blog.ID, models.CreateCommentRequest{Description: "   "})
	requireStatus(t, err, http.StatusUnprocessableEntity)

	_, err = s.PostComment(ctx, author, "bad", models.CreateCommentRequest{Description: "hi"})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = s.PostComment(ctx, author, primitive.NewObjectID().Hex(), models.CreateCommentRequest{Description: "hi"})
	requireStatus(t, err, http.StatusNotFound)

	_, err = s.ListBlogComments(ctx, primitive.NewObjectID().Hex())
	requireStatus(t, err, http.StatusNotFound)
}

func TestLikes(t *testing.T) {
	store := repotest.NewStore(t)
	blogs := NewBlogService(store, nil)
	s := NewLikeService(store)
	ctx := context.Background()

	blog, err := blogs.CreateBlog(ctx, blogReq("one"), nil)
	require.NoError(t, err)
	ada := models.Principal{UserID: primitive.NewObjectID().Hex()}
	bob := models.Principal{UserID: primitive.NewObjectID().Hex()}

	_, err = s.RemoveLike(ctx, ada, blog.ID)
	requireStatus(t, err, http.StatusNotFound)

	n, err := s.AddLike(ctx, ada, blog.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = s.AddLike(ctx, ada, blog.ID)
	requireStatus(t, err, http.StatusConflict)

	n, err = s.AddLike(ctx, bob, blog.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	liked, err := s.HasLiked(ctx, ada, blog.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	n, err = s.RemoveLike(ctx, ada, blog.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := blogs.GetBlog(ctx, blog.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Likes)

	liked, err = s.HasLiked(ctx, ada, blog.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = s.AddLike(ctx, ada, "0123")
	requireStatus(t, err, http.StatusBadRequest)
	_, err = s.AddLike(ctx, ada, primitive.NewObjectID().Hex())
	requireStatus(t, err, http.StatusNotFound)
}

type fakeNotifier struct {
	sent chan *models.Message
	err  error
}

func (f *fakeNotifier) NotifyNewMessage(_ context.Context, msg *models.Message) error {
	f.sent <- msg
	return f.err
}

func TestMessages(t *testing.T) {
	store := repotest.NewStore(t)
	notifier := &fakeNotifier{sent: make(chan *models.Message, 2)}
	s := NewMessageService(store.Messages, notifier)
	ctx := context.Background()

	msg, err := s.PostMessage(ctx, models.CreateMessageRequest{
		Email: " Bob@Example.com ", Subject: "Hello", Description: "Nice site",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", msg.Email)

	select {
	case sent := <-notifier.sent:
		assert.Equal(t, msg.ID, sent.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("owner was not notified")
	}

	notifier.err = errors.New("smtp down")
	_, err = s.PostMessage(ctx, models.CreateMessageRequest{Email: "amy@example.com", Subject: "Hi", Description: "Still stored"})
	require.NoError(t, err)
	<-notifier.sent

	_, err = s.PostMessage(ctx, models.CreateMessageRequest{Email: "not-mail", Subject: "Hi", Description: "x"})
	requireStatus(t, err, http.StatusUnprocessableEntity)

	list, err := s.ListMessages(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := s.GetMessage(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Subject)

	_, err = s.GetMessage(ctx, "zz")
	requireStatus(t, err, http.StatusBadRequest)
	_, err = s.GetMessage(ctx, primitive.NewObjectID().Hex())
	requireStatus(t, err, http.StatusNotFound)

	require.NoError(t, s.DeleteMessage(ctx, msg.ID))
	requireStatus(t, s.DeleteMessage(ctx, msg.ID), http.StatusNotFound)
}
