package app

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	assistantdto "aria/internal/modules/assistant/dto"
	apperrors "aria/internal/platform/errors"
)

type fakeAssistant struct {
	mu      sync.Mutex
	sent    []string
	history []assistantdto.ChatMessage
}

func (f *fakeAssistant) Send(_ context.Context, text string) (assistantdto.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	f.history = append(f.history,
		assistantdto.ChatMessage{Role: "user", Content: text},
		assistantdto.ChatMessage{Role: "aria", Content: "ok"},
	)
	return assistantdto.Reply{Message: "ok"}, nil
}

func (f *fakeAssistant) History(context.Context, int) ([]assistantdto.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]assistantdto.ChatMessage(nil), f.history...), nil
}

func (f *fakeAssistant) NextQuestion(context.Context) (assistantdto.QuizStep, error) {
	return assistantdto.QuizStep{}, apperrors.ErrNoActiveQuiz
}

func (f *fakeAssistant) Clear(context.Context) error { return nil }

func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func TestSubmitSendsOnceAndReloadsHistory(t *testing.T) {
	t.Parallel()
	fake := &fakeAssistant{}
	m := sized(t, NewModel(context.Background(), fake, nil, "Sam"))

	next, cmd := m.submit("  hello  ")
	m = next.(Model)
	if !m.sending || m.transcript.Len() != 1 {
		t.Fatalf("expected pending turn with echoed message, sending=%v len=%d", m.sending, m.transcript.Len())
	}
	if cmd == nil {
		t.Fatalf("expected send command")
	}

	if _, again := m.submit("second"); again != nil {
		t.Fatalf("second submit while sending should be a no-op")
	}

	reply := m.sendCmd("hello")()
	next, reload := m.Update(reply)
	m = next.(Model)
	if m.sending {
		t.Fatalf("sending flag not cleared")
	}
	next, _ = m.Update(reload())
	m = next.(Model)
	if m.transcript.Len() != 2 {
		t.Fatalf("transcript len = %d, want 2", m.transcript.Len())
	}
	if len(fake.sent) != 1 || fake.sent[0] != "hello" {
		t.Fatalf("sent = %v", fake.sent)
	}
}

func TestToastExpiresOnlyForLatest(t *testing.T) {
	t.Parallel()
	m := sized(t, NewModel(context.Background(), &fakeAssistant{}, nil, ""))

	next, _ := m.Update(toastMsg{toast: assistantdto.Toast{Message: "one", Level: "info"}})
	next, _ = next.(Model).Update(toastMsg{toast: assistantdto.Toast{Message: "two", Level: "success"}})
	next, _ = next.(Model).Update(toastExpiredMsg{seq: 1})
	m = next.(Model)
	if m.toast == nil || m.toast.Message != "two" {
		t.Fatalf("latest toast should survive an older expiry, got %+v", m.toast)
	}
	next, _ = m.Update(toastExpiredMsg{seq: 2})
	if next.(Model).toast != nil {
		t.Fatalf("toast should expire")
	}
}

func TestQuizNextWithoutQuiz(t *testing.T) {
	t.Parallel()
	m := sized(t, NewModel(context.Background(), &fakeAssistant{}, nil, ""))
	next, cmd := m.runCommand("quiz:next")
	next, _ = next.(Model).Update(cmd())
	if got := next.(Model).status; got != "no quiz running" {
		t.Fatalf("status = %q", got)
	}
}
