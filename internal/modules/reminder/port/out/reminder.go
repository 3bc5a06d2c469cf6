package out

import (
	"context"

	"aria/internal/modules/reminder/domain"
)

type LedgerRepository interface {
	Ledger(ctx context.Context) (domain.Ledger, error)
	// UpdateLedger rewrites both dedup logs in one transaction.
	UpdateLedger(ctx context.Context, fn func(*domain.Ledger) error) error
}

type Notifier interface {
	Notify(ctx context.Context, alert domain.Alert) error
}

type EmailConfig struct {
	PubKey     string
	ServiceID  string
	TemplateID string
	ToEmail    string
}

type EmailSender interface {
	Send(ctx context.Context, cfg EmailConfig, alert domain.Alert) error
}
