package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/folio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyNewMessage(t *testing.T) {
	var got ResendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"em_1"}`))
	}))
	defer srv.Close()

	m := NewResend("key", "site@example.com", "owner@example.com")
	m.Endpoint = srv.URL

	err := m.NotifyNewMessage(context.Background(), &models.Message{
		Email: "bob@example.com", Subject: "Hi", Description: "<b>hello</b>",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "bob@example.com", got.ReplyTo)
	assert.Equal(t, "New contact message: Hi", got.Subject)
	assert.Contains(t, got.Html, "&lt;b&gt;hello&lt;/b&gt;")
}

func TestNotifyNewMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	m := NewResend("key", "bad", "owner@example.com")
	m.Endpoint = srv.URL

	err := m.NotifyNewMessage(context.Background(), &models.Message{Email: "a@b.c", Subject: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid from address")
}
