package out

import (
	"context"
	"fmt"

	"aria/internal/modules/reminder/domain"
	reminderout "aria/internal/modules/reminder/port/out"
	apperrors "aria/internal/platform/errors"
	"aria/internal/platform/httpjson"
)

const DefaultEmailJSURL = "https://api.emailjs.com"

type emailRequest struct {
	ServiceID  string         `json:"service_id"`
	TemplateID string         `json:"template_id"`
	UserID     string         `json:"user_id"`
	Params     templateParams `json:"template_params"`
}

type templateParams struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// EmailJSSender sends through the EmailJS REST endpoint using the template
// the user configured in settings.
type EmailJSSender struct {
	client *httpjson.Client
}

func NewEmailJSSender(client *httpjson.Client) reminderout.EmailSender {
	return &EmailJSSender{client: client}
}

func (s *EmailJSSender) Send(ctx context.Context, cfg reminderout.EmailConfig, alert domain.Alert) error {
	if cfg.PubKey == "" || cfg.ServiceID == "" || cfg.TemplateID == "" || cfg.ToEmail == "" {
		return fmt.Errorf("email config incomplete: %w", apperrors.ErrInvalidInput)
	}
	req := emailRequest{
		ServiceID:  cfg.ServiceID,
		TemplateID: cfg.TemplateID,
		UserID:     cfg.PubKey,
		Params:     templateParams{ToEmail: cfg.ToEmail, Subject: alert.Title, Message: alert.Body},
	}
	if err := s.client.Post(ctx, "/api/v1.0/email/send", req, nil); err != nil {
		return fmt.Errorf("send email %s: %w", alert.Key, err)
	}
	return nil
}
