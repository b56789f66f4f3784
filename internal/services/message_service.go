package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/anonto42/folio/backend/internal/models"
	"github.com/anonto42/folio/backend/internal/repositories"
	"github.com/anonto42/folio/backend/internal/validators"
	"github.com/rs/zerolog/log"
)

const (
	msgInvalidMessageID = "Invalid message id"
	msgMessageNotFound  = "Message not found"
	notifyTimeout       = 15 * time.Second
)

// MessageNotifier tells the site owner about a new contact message.
type MessageNotifier interface {
	NotifyNewMessage(ctx context.Context, msg *models.Message) error
}

// MessageService stores contact-form messages and serves them to admins.
type MessageService struct {
	messages repositories.MessageRepository
	notifier MessageNotifier
}

// NewMessageService creates a MessageService; notifier may be nil.
func NewMessageService(messages repositories.MessageRepository, notifier MessageNotifier) *MessageService {
	return &MessageService{messages: messages, notifier: notifier}
}

// PostMessage stores the message and notifies the owner in the background.
// Notification failures are logged only.
func (s *MessageService) PostMessage(ctx context.Context, req models.CreateMessageRequest) (*models.Message, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Subject = strings.TrimSpace(req.Subject)
	req.Description = strings.TrimSpace(req.Description)
	if err := validators.Check(req); err != nil {
		return nil, err
	}

	msg := &models.Message{Email: req.Email, Subject: req.Subject, Description: req.Description}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, errs.Internal(err)
	}

	if s.notifier != nil {
		copied := *msg
		go func() {
			nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := s.notifier.NotifyNewMessage(nctx, &copied); err != nil {
				log.Error().Err(err).Str("messageId", copied.ID).Msg("Failed to notify owner of new message")
			}
		}()
	}
	return msg, nil
}

func (s *MessageService) ListMessages(ctx context.Context) ([]models.Message, error) {
	msgs, err := s.messages.GetMessages(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return msgs, nil
}

func (s *MessageService) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	if err := requireID(id, msgInvalidMessageID); err != nil {
		return nil, err
	}
	msg, err := s.messages.GetMessageByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgInvalidMessageID, msgMessageNotFound)
	}
	return msg, nil
}

func (s *MessageService) DeleteMessage(ctx context.Context, id string) error {
	if err := requireID(id, msgInvalidMessageID); err != nil {
		return err
	}
	return storeErr(s.messages.DeleteMessage(ctx, id), msgInvalidMessageID, msgMessageNotFound)
}
