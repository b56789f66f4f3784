// Package mailer sends owner notifications through the Resend HTTP API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/anonto42/folio/backend/internal/models"
	"github.com/rs/zerolog/log"
)

const defaultEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// Resend notifies the site owner about new contact messages.
type Resend struct {
	APIKey   string
	From     string
	To       string
	Endpoint string
	Client   *http.Client
}

func NewResend(apiKey, from, to string) *Resend {
	return &Resend{
		APIKey:   apiKey,
		From:     from,
		To:       to,
		Endpoint: defaultEndpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifyNewMessage e-mails the owner a copy of msg with Reply-To set to the
// sender.
func (r *Resend) NotifyNewMessage(ctx context.Context, msg *models.Message) error {
	payload := ResendEmailRequest{
		From:    r.From,
		To:      []string{r.To},
		ReplyTo: msg.Email,
		Subject: "New contact message: " + msg.Subject,
		Html: fmt.Sprintf("<p><strong>From:</strong> %s</p><p>%s</p>",
			html.EscapeString(msg.Email), html.EscapeString(msg.Description)),
	}
	return r.send(ctx, payload)
}

func (r *Resend) send(ctx context.Context, payload ResendEmailRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var sent ResendEmailResponse
	if err := json.Unmarshal(respBody, &sent); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", sent.ID).Msg("Sent contact notification via Resend")
	}
	return nil
}
