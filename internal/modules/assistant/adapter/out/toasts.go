package out

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"aria/internal/modules/assistant/domain"
	assistantout "aria/internal/modules/assistant/port/out"
)

type LogToasts struct {
	logger *zap.Logger
}

func NewLogToasts(logger *zap.Logger) assistantout.ToastSink {
	return &LogToasts{logger: logger}
}

func (t *LogToasts) Toast(_ context.Context, toast domain.Toast) {
	t.logger.Info("toast", zap.String("level", string(toast.Level)), zap.String("message", toast.Message))
}

// WriterToasts prints one toast per line.
type WriterToasts struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterToasts(w io.Writer) assistantout.ToastSink {
	return &WriterToasts{w: w}
}

func (t *WriterToasts) Toast(_ context.Context, toast domain.Toast) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "[%s] %s\n", toast.Level, toast.Message)
}

// ChannelToasts forwards toasts to a consumer such as the terminal UI. Toasts
// are dropped when the buffer is full.
type ChannelToasts struct {
	ch chan domain.Toast
}

func NewChannelToasts(buffer int) *ChannelToasts {
	return &ChannelToasts{ch: make(chan domain.Toast, buffer)}
}

func (t *ChannelToasts) Toast(_ context.Context, toast domain.Toast) {
	select {
	case t.ch <- toast:
	default:
	}
}

func (t *ChannelToasts) C() <-chan domain.Toast {
	return t.ch
}
