package out

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"aria/internal/modules/reminder/domain"
	reminderout "aria/internal/modules/reminder/port/out"
)

// LogNotifier delivers notifications as structured log lines. It is what a
// headless `aria serve` uses.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) reminderout.Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return LogNotifier{logger: logger}
}

func (n LogNotifier) Notify(_ context.Context, alert domain.Alert) error {
	n.logger.Info(alert.Body, zap.String("title", alert.Title), zap.String("key", alert.Key))
	return nil
}

// WriterNotifier prints one line per notification.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) reminderout.Notifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(_ context.Context, alert domain.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.w, "🔔 %s: %s\n", alert.Title, alert.Body)
	return err
}
