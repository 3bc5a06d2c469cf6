package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	assistantout "aria/internal/modules/assistant/adapter/out"
	"aria/internal/modules/assistant/domain"
	assistantin "aria/internal/modules/assistant/port/in"
	assistantport "aria/internal/modules/assistant/port/out"
	"aria/internal/modules/assistant/usecase"
	financeout "aria/internal/modules/finance/adapter/out"
	financeservice "aria/internal/modules/finance/service"
	financeusecase "aria/internal/modules/finance/usecase"
	plannerout "aria/internal/modules/planner/adapter/out"
	plannerdto "aria/internal/modules/planner/dto"
	plannerin "aria/internal/modules/planner/port/in"
	plannerservice "aria/internal/modules/planner/service"
	plannerusecase "aria/internal/modules/planner/usecase"
	quizout "aria/internal/modules/quiz/adapter/out"
	quizdomain "aria/internal/modules/quiz/domain"
	quizservice "aria/internal/modules/quiz/service"
	quizusecase "aria/internal/modules/quiz/usecase"
	wellnessout "aria/internal/modules/wellness/adapter/out"
	wellnessservice "aria/internal/modules/wellness/service"
	wellnessusecase "aria/internal/modules/wellness/usecase"
	"aria/internal/platform/clock"
	apperrors "aria/internal/platform/errors"
	"aria/internal/platform/id"
	"aria/internal/platform/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type toastRecorder struct {
	mu     sync.Mutex
	toasts []domain.Toast
}

func (r *toastRecorder) Toast(_ context.Context, toast domain.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

func (r *toastRecorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.toasts))
	for _, t := range r.toasts {
		out = append(out, t.Message)
	}
	return out
}

type fakeQuestions struct {
	raw string
	err error
}

func (f fakeQuestions) Generate(context.Context, quizdomain.Request) (string, error) {
	return f.raw, f.err
}

// scriptedReasoner answers every chat with reply. When gate is set, Chat
// signals entered and blocks until gate is closed.
type scriptedReasoner struct {
	mu      sync.Mutex
	reply   assistantport.ChatReply
	err     error
	gate    chan struct{}
	entered chan struct{}
	seen    []assistantport.ChatRequest
}

func (r *scriptedReasoner) Chat(ctx context.Context, req assistantport.ChatRequest) (assistantport.ChatReply, error) {
	r.mu.Lock()
	r.seen = append(r.seen, req)
	gate, entered := r.gate, r.entered
	r.mu.Unlock()
	if gate != nil {
		entered <- struct{}{}
		select {
		case <-gate:
		case <-ctx.Done():
			return assistantport.ChatReply{}, ctx.Err()
		}
	}
	return r.reply, r.err
}

type fixture struct {
	assistant assistantin.Usecase
	planner   plannerin.Usecase
	reasoner  *scriptedReasoner
	toasts    *toastRecorder
	store     *store.Memory
}

func newFixture(t *testing.T, questions fakeQuestions) fixture {
	t.Helper()
	st := store.NewMemory()
	clk := clock.FixedDate("2024-03-01")
	logger := zap.NewNop()

	planner := plannerusecase.NewInteractor(
		plannerservice.NewPlannerService(clk, id.NewSequence("d"), plannerout.NewKVRepository(st, logger)),
		plannerout.NewVaultExporter(),
	)
	wellness := wellnessusecase.NewInteractor(
		wellnessservice.NewWellnessService(clk, id.NewSequence("w"), wellnessout.NewKVRepository(st, logger)),
		planner, wellnessout.NewNopMirror(), logger, time.Second,
	)
	finance := financeusecase.NewInteractor(financeservice.NewFinanceService(clk, id.NewSequence("f"), financeout.NewKVRepository(st, logger)))
	quiz := quizusecase.NewInteractor(quizservice.NewQuizService(clk, id.NewSequence("q"), questions, quizout.NewKVHistory(st, logger), logger))

	mods := usecase.Modules{Planner: planner, Wellness: wellness, Finance: finance, Quiz: quiz}
	builder := usecase.NewContextBuilder(mods, clk)
	sessions := assistantout.NewKVSessions(st, logger)
	toasts := &toastRecorder{}
	reasoner := &scriptedReasoner{}
	assistant := usecase.NewInteractor(usecase.Dependencies{
		Dispatcher: usecase.NewDispatcher(mods, builder, sessions, toasts, nil, logger),
		Builder:    builder,
		Reasoner:   reasoner,
		Sessions:   sessions,
		Chat:       assistantout.NewKVChat(st, logger),
		Eraser:     st,
		Clock:      clk,
		Logger:     logger,
	})
	t.Cleanup(func() { _ = assistant.Close() })
	return fixture{assistant: assistant, planner: planner, reasoner: reasoner, toasts: toasts, store: st}
}

func action(t *testing.T, kind domain.Kind, data any) domain.RawAction {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return domain.RawAction{Type: string(kind), Data: raw}
}

func TestDeadlineAskedForStartDateThenCompleted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, fakeQuestions{})

	out, err := f.assistant.Apply(ctx, action(t, domain.KindAddDeadline, map[string]any{
		"title": "Essay", "subject": "History", "dueDate": "2024-03-20", "askingForStartDate": true,
	}))
	require.NoError(t, err)
	assert.True(t, out.Handled)
	assert.Nil(t, out.Toast)

	session, err := f.assistant.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, session.PendingDeadline)
	deadlines, err := f.planner.ListDeadlines(ctx, plannerdto.ListDeadlinesInput{})
	require.NoError(t, err)
	assert.Empty(t, deadlines)

	out, err = f.assistant.Apply(ctx, action(t, domain.KindAddDeadline, map[string]any{"startDate": "2024-03-05"}))
	require.NoError(t, err)
	require.NotNil(t, out.Toast)
	assert.Equal(t, "📅 Deadline added: Essay", out.Toast.Message)
	assert.Equal(t, domain.ViewDeadlines, out.Refresh)

	deadlines, err = f.planner.ListDeadlines(ctx, plannerdto.ListDeadlinesInput{})
	require.NoError(t, err)
	require.Len(t, deadlines, 1)
	assert.Equal(t, "History", deadlines[0].Subject)
	assert.Equal(t, "2024-03-05", deadlines[0].StartDate)
	assert.Equal(t, "2024-03-20", deadlines[0].DueDate)

	session, err = f.assistant.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, session.PendingDeadline)
}

func TestFinanceActionsToastExactAmounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, fakeQuestions{})

	_, err := f.assistant.Apply(ctx, action(t, domain.KindSetBalance, map[string]any{"amount": "100"}))
	require.NoError(t, err)
	_, err = f.assistant.Apply(ctx, action(t, domain.KindAddTransaction, map[string]any{"amount": "25.5", "type": "expense", "description": "Groceries"}))
	require.NoError(t, err)
	_, err = f.assistant.Apply(ctx, action(t, domain.KindAddSplitwise, map[string]any{"amount": 12, "description": "Pizza night"}))
	require.NoError(t, err)
	out, err := f.assistant.Apply(ctx, action(t, domain.KindCompleteSplitwise, map[string]any{"description": "pizza"}))
	require.NoError(t, err)
	assert.True(t, out.Handled)

	assert.Equal(t, []string{
		"Balance updated to $100.00",
		"Expense of $25.50 logged!",
		"Splitwise reminder added: $12.00",
		"Checked off Splitwise: Pizza night",
	}, f.toasts.messages())

	snapshot, err := f.assistant.Context(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 74.5, snapshot.Balance, 1e-9)
	require.Len(t, snapshot.SplitwiseReminders, 1)
	assert.Equal(t, "done", snapshot.SplitwiseReminders[0].Status)
}

func TestQuizStartAdvanceAndGrade(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, fakeQuestions{raw: "Q1. What is a monad?\nQ2. Define a functor."})

	out, err := f.assistant.Apply(ctx, action(t, domain.KindStartQuiz, map[string]any{"quizType": "theory", "count": "2", "subject": "Haskell"}))
	require.NoError(t, err)
	assert.True(t, out.Handled)
	assert.Equal(t, "🎯 Quiz time! 2 questions. Let's go!\n\nQ1. What is a monad?", out.Message)
	assert.Contains(t, f.toasts.messages(), "Generating quiz questions... 📝")

	snapshot, err := f.assistant.Context(ctx)
	require.NoError(t, err)
	assert.True(t, snapshot.InQuiz)

	step, err := f.assistant.NextQuestion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Q2. Define a functor.", step.Question)
	assert.False(t, step.Finished)
	step, err = f.assistant.NextQuestion(ctx)
	require.NoError(t, err)
	assert.True(t, step.Finished)

	_, err = f.assistant.Apply(ctx, action(t, domain.KindGradeQuiz, map[string]any{"score": 1, "total": 2, "subject": "Haskell"}))
	require.NoError(t, err)
	assert.Contains(t, f.toasts.messages(), "Quiz done! Score: 1/2 🎉")

	snapshot, err = f.assistant.Context(ctx)
	require.NoError(t, err)
	assert.False(t, snapshot.InQuiz)
	require.Len(t, snapshot.QuizHistory, 1)
	assert.Equal(t, 50, snapshot.QuizHistory[0].Pct)

	_, err = f.assistant.NextQuestion(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNoActiveQuiz)
}

func TestQuizFailureDoesNotStartSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, fakeQuestions{err: errors.New("dial tcp: refused")})

	out, err := f.assistant.Apply(ctx, action(t, domain.KindStartQuiz, map[string]any{}))
	require.NoError(t, err)
	assert.False(t, out.Handled)
	assert.Equal(t, "Couldn't fetch quiz questions. Check your connection and API key!", out.Message)

	session, err := f.assistant.Session(ctx)
	require.NoError(t, err)
	assert.False(t, session.InQuiz())
}

func TestDuplicatePeriodStartIgnored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, fakeQuestions{})

	first, err := f.assistant.Apply(ctx, action(t, domain.KindLogPeriodStart, map[string]any{"date": "2024-02-27"}))
	require.NoError(t, err)
	assert.True(t, first.Handled)
	second, err := f.assistant.Apply(ctx, action(t, domain.KindLogPeriodStart, map[string]any{"date": "2024-02-27"}))
	require.NoError(t, err)
	assert.False(t, second.Handled)
	assert.Equal(t, []string{"🌸 Period start logged"}, f.toasts.messages())
}

func TestInvalidAndUnknownActionsAreIgnored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, fakeQuestions{})

	for _, raw := range []domain.RawAction{
		{Type: "LAUNCH_ROCKET"},
		action(t, domain.KindCompleteDeadline, map[string]any{"id": "missing"}),
		action(t, domain.KindAddNote, map[string]any{"text": "   "}),
		{Type: "ADD_NOTE", Data: json.RawMessage(`"oops"`)},
	} {
		out, err := f.assistant.Apply(ctx, raw)
		require.NoError(t, err, raw.Type)
		assert.False(t, out.Handled, raw.Type)
	}
	assert.Empty(t, f.toasts.messages())
}

func TestSendRecordsConversationAndAppliesAction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, fakeQuestions{})
	f.reasoner.reply = assistantport.ChatReply{
		Message: "Noted!",
		Action:  &domain.RawAction{Type: "ADD_NOTE", Data: json.RawMessage(`{"text":"buy milk"}`)},
	}

	reply, err := f.assistant.Send(ctx, "  remind me to buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "Noted!", reply.Message)
	require.NotNil(t, reply.Outcome)
	assert.True(t, reply.Outcome.Handled)

	history, err := f.assistant.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "remind me to buy milk", history[0].Content)
	assert.Equal(t, "2024-03-01T12:00:00.000Z", history[0].TS)
	assert.Equal(t, domain.RoleAria, history[1].Role)

	require.Len(t, f.reasoner.seen, 1)
	req := f.reasoner.seen[0]
	assert.Equal(t, "remind me to buy milk", req.Message)
	assert.Len(t, req.ChatHistory, 1)
	assert.Equal(t, "2024-03-01", req.Context.Today)
}

func TestSendFallsBackOnEmptyReply(t *testing.T) {
	t.Parallel()
	f := newFixture(t, fakeQuestions{})

	reply, err := f.assistant.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackReply, reply.Message)
	assert.Nil(t, reply.Outcome)
}

func TestSendReportsConnectionFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, fakeQuestions{})
	f.reasoner.err = errors.New("connection refused")

	reply, err := f.assistant.Send(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionReply, reply.Message)

	history, err := f.assistant.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ConnectionReply, history[0].Content)
}

func TestSendRejectsConcurrentTurn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, fakeQuestions{})
	f.reasoner.gate = make(chan struct{})
	f.reasoner.entered = make(chan struct{}, 1)
	f.reasoner.reply = assistantport.ChatReply{Message: "hi"}

	done := make(chan error, 1)
	go func() {
		_, err := f.assistant.Send(ctx, "first")
		done <- err
	}()
	<-f.reasoner.entered

	_, err := f.assistant.Send(ctx, "second")
	assert.ErrorIs(t, err, apperrors.ErrBusy)

	close(f.reasoner.gate)
	require.NoError(t, <-done)

	_, err = f.assistant.Send(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestClearErasesEverything(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t, fakeQuestions{})
	_, err := f.assistant.Apply(ctx, action(t, domain.KindAddNote, map[string]any{"text": "keep me"}))
	require.NoError(t, err)
	_, err = f.assistant.Apply(ctx, action(t, domain.KindAddDeadline, map[string]any{"title": "Thesis", "askingForStartDate": true}))
	require.NoError(t, err)

	require.NoError(t, f.assistant.Clear(ctx))

	snapshot, err := f.assistant.Context(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Notes)
	assert.Nil(t, snapshot.PendingDeadline)
	keys, err := f.store.Keys(ctx)
	require.NoError(t, err)
	assert.NotContains(t, keys, store.KeyNotes)
	assert.NotContains(t, keys, store.KeyChat)
}
