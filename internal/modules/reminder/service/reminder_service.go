package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"aria/internal/modules/reminder/domain"
	reminderout "aria/internal/modules/reminder/port/out"
)

const defaultConcurrency = 4

type Options struct {
	RetentionDays int
	Concurrency   int
}

type Report struct {
	Delivered []domain.Alert
	Failed    []string
	Pruned    int
}

type ReminderService struct {
	ledger   reminderout.LedgerRepository
	notifier reminderout.Notifier
	email    reminderout.EmailSender
	logger   *zap.Logger
	opts     Options

	// runs are serialized so two overlapping runs cannot deliver the same key
	runMu sync.Mutex
}

func NewReminderService(ledger reminderout.LedgerRepository, notifier reminderout.Notifier, email reminderout.EmailSender, logger *zap.Logger, opts Options) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &ReminderService{ledger: ledger, notifier: notifier, email: email, logger: logger, opts: opts}
}

func (s *ReminderService) Plan(ctx context.Context, in domain.Inputs) ([]domain.Alert, error) {
	ledger, err := s.ledger.Ledger(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Plan(in, ledger), nil
}

// Run delivers every pending alert and records the keys that made it. A key
// whose delivery failed stays pending for the next run.
func (s *ReminderService) Run(ctx context.Context, in domain.Inputs, cfg reminderout.EmailConfig) (Report, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	pending, err := s.Plan(ctx, in)
	if err != nil {
		return Report{}, err
	}

	var (
		mu        sync.Mutex
		delivered []domain.Alert
		failed    []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for _, alert := range pending {
		alert := alert
		g.Go(func() error {
			err := s.deliver(gctx, alert, cfg)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("reminder delivery failed", zap.String("key", alert.Key), zap.String("channel", string(alert.Channel)), zap.Error(err))
				failed = append(failed, alert.Key)
				return nil
			}
			delivered = append(delivered, alert)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Delivered: orderLike(pending, delivered), Failed: failed}
	err = s.ledger.UpdateLedger(ctx, func(l *domain.Ledger) error {
		l.Record(report.Delivered)
		report.Pruned = l.Prune(in, s.opts.RetentionDays)
		return nil
	})
	if err != nil {
		return Report{}, err
	}
	if len(report.Delivered) > 0 || report.Pruned > 0 {
		s.logger.Info("reminders run", zap.Int("delivered", len(report.Delivered)), zap.Int("failed", len(failed)), zap.Int("pruned", report.Pruned))
	}
	return report, nil
}

func (s *ReminderService) deliver(ctx context.Context, alert domain.Alert, cfg reminderout.EmailConfig) error {
	if alert.Channel == domain.ChannelEmail {
		return s.email.Send(ctx, cfg, alert)
	}
	return s.notifier.Notify(ctx, alert)
}

// orderLike returns delivered in the order the alerts were planned.
func orderLike(planned, delivered []domain.Alert) []domain.Alert {
	ok := map[string]bool{}
	for _, a := range delivered {
		ok[string(a.Channel)+"\x00"+a.Key] = true
	}
	out := []domain.Alert{}
	for _, a := range planned {
		if ok[string(a.Channel)+"\x00"+a.Key] {
			out = append(out, a)
		}
	}
	return out
}
