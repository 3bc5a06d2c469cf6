package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"aria/internal/modules/assistant/domain"
	"aria/internal/modules/assistant/dto"
	assistantin "aria/internal/modules/assistant/port/in"
	assistantout "aria/internal/modules/assistant/port/out"
	"aria/internal/platform/clock"
	apperrors "aria/internal/platform/errors"
	"aria/internal/platform/store"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Dependencies struct {
	Dispatcher *Dispatcher
	Builder    *ContextBuilder
	Reasoner   assistantout.Reasoner
	Sessions   assistantout.SessionStore
	Chat       assistantout.ChatStore
	Eraser     assistantout.KeyEraser
	Clock      clock.Clock
	Logger     *zap.Logger
}

type Interactor struct {
	deps    Dependencies
	logger  *zap.Logger
	sending atomic.Bool
}

func NewInteractor(deps Dependencies) assistantin.Usecase {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{deps: deps, logger: logger}
}

func (i *Interactor) Send(ctx context.Context, text string) (dto.Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return dto.Reply{}, fmt.Errorf("message is empty: %w", apperrors.ErrInvalidInput)
	}
	if !i.sending.CompareAndSwap(false, true) {
		return dto.Reply{}, apperrors.ErrBusy
	}
	defer i.sending.Store(false)

	if err := i.say(ctx, domain.RoleUser, text); err != nil {
		return dto.Reply{}, err
	}
	session, err := i.deps.Sessions.Load(ctx)
	if err != nil {
		return dto.Reply{}, err
	}
	snapshot, err := i.deps.Builder.Build(ctx, session)
	if err != nil {
		return dto.Reply{}, err
	}
	history, err := i.deps.Chat.History(ctx)
	if err != nil {
		return dto.Reply{}, err
	}

	resp, err := i.deps.Reasoner.Chat(ctx, assistantout.ChatRequest{
		Message:     text,
		Context:     snapshot,
		ChatHistory: domain.Tail(history, domain.PromptHistory),
	})
	if err != nil {
		i.logger.Warn("reasoning service call failed", zap.Error(err))
		if err := i.say(ctx, domain.RoleAria, domain.ConnectionReply); err != nil {
			return dto.Reply{}, err
		}
		return dto.Reply{Message: domain.ConnectionReply}, nil
	}

	message := strings.TrimSpace(resp.Message)
	if message == "" {
		message = domain.FallbackReply
	}
	if err := i.say(ctx, domain.RoleAria, message); err != nil {
		return dto.Reply{}, err
	}
	reply := dto.Reply{Message: message}
	if resp.Action == nil || strings.TrimSpace(resp.Action.Type) == "" {
		return reply, nil
	}

	outcome, err := i.Apply(ctx, *resp.Action)
	if err != nil {
		// the reply has already been recorded; a failed action is not a failed turn
		i.logger.Warn("action failed", zap.String("type", resp.Action.Type), zap.Error(err))
		return reply, nil
	}
	reply.Outcome = &outcome
	if outcome.Message != "" {
		if err := i.say(ctx, domain.RoleAria, outcome.Message); err != nil {
			return dto.Reply{}, err
		}
		reply.Followup = outcome.Message
	}
	return reply, nil
}

func (i *Interactor) Apply(ctx context.Context, raw dto.RawAction) (dto.Outcome, error) {
	action, err := domain.Decode(raw)
	if err != nil {
		i.logger.Debug("undecodable action ignored", zap.String("type", raw.Type), zap.Error(err))
		return domain.Ignored(domain.Kind(raw.Type)), nil
	}
	return i.deps.Dispatcher.Dispatch(ctx, action)
}

func (i *Interactor) Context(ctx context.Context) (dto.Snapshot, error) {
	session, err := i.deps.Sessions.Load(ctx)
	if err != nil {
		return dto.Snapshot{}, err
	}
	return i.deps.Builder.Build(ctx, session)
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.ChatMessage, error) {
	history, err := i.deps.Chat.History(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = domain.ShownHistory
	}
	return domain.Tail(history, limit), nil
}

func (i *Interactor) Session(ctx context.Context) (dto.Session, error) {
	return i.deps.Sessions.Load(ctx)
}

func (i *Interactor) NextQuestion(ctx context.Context) (dto.QuizStep, error) {
	d := i.deps.Dispatcher
	d.sessionMu.Lock()
	defer d.sessionMu.Unlock()
	session, err := i.deps.Sessions.Load(ctx)
	if err != nil {
		return dto.QuizStep{}, err
	}
	out, err := d.mods.Quiz.Advance(session.Quiz)
	if err != nil {
		return dto.QuizStep{}, err
	}
	next := out.Session
	session.Quiz = &next
	if err := i.deps.Sessions.Save(ctx, session); err != nil {
		return dto.QuizStep{}, err
	}
	return dto.QuizStep{Question: out.Question, Index: next.CurrentIndex, Total: next.Total, Finished: out.Finished}, nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	if err := i.deps.Eraser.Delete(ctx, store.DomainKeys()...); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return i.deps.Sessions.Save(ctx, domain.Session{})
}

func (i *Interactor) Close() error {
	return i.deps.Dispatcher.Close()
}

func (i *Interactor) say(ctx context.Context, role domain.Role, content string) error {
	return i.deps.Chat.Append(ctx, domain.ChatMessage{
		Role:    role,
		Content: content,
		TS:      i.deps.Clock.Now().UTC().Format(timestampLayout),
	})
}
