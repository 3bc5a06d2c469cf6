package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"aria/internal/modules/assistant/domain"
	assistantout "aria/internal/modules/assistant/port/out"
	financedto "aria/internal/modules/finance/dto"
	plannerdto "aria/internal/modules/planner/dto"
	quizdto "aria/internal/modules/quiz/dto"
	reminderin "aria/internal/modules/reminder/port/in"
	wellnessdto "aria/internal/modules/wellness/dto"
	apperrors "aria/internal/platform/errors"
)

const reminderTimeout = 30 * time.Second

// Dispatcher applies decoded actions. Each action is one logical mutation.
type Dispatcher struct {
	mods      Modules
	builder   *ContextBuilder
	sessions  assistantout.SessionStore
	toasts    assistantout.ToastSink
	reminders reminderin.Usecase
	logger    *zap.Logger

	sessionMu sync.Mutex
	inflight  sync.WaitGroup
}

func NewDispatcher(mods Modules, builder *ContextBuilder, sessions assistantout.SessionStore, toasts assistantout.ToastSink, reminders reminderin.Usecase, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{mods: mods, builder: builder, sessions: sessions, toasts: toasts, reminders: reminders, logger: logger}
}

// Dispatch never fails on bad input: rejected or unmatched actions come back
// as an unhandled Outcome. Only storage failures are returned as errors.
func (d *Dispatcher) Dispatch(ctx context.Context, action domain.Action) (domain.Outcome, error) {
	out, err := d.dispatch(ctx, action)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) || errors.Is(err, apperrors.ErrNotFound) {
			d.logger.Debug("action ignored", zap.String("kind", string(action.Kind())), zap.Error(err))
			return domain.Ignored(action.Kind()), nil
		}
		return domain.Ignored(action.Kind()), err
	}
	if out.Toast != nil && d.toasts != nil {
		d.toasts.Toast(ctx, *out.Toast)
	}
	return out, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, action domain.Action) (domain.Outcome, error) {
	kind := action.Kind()
	switch a := action.(type) {
	case domain.AddDeadline:
		return d.addDeadline(ctx, a)

	case domain.UpdateDeadline:
		if _, err := d.mods.Planner.UpdateDeadline(ctx, plannerdto.UpdateDeadlineInput{ID: a.ID, Updates: a.Updates}); err != nil {
			return domain.Outcome{}, err
		}
		d.scheduleReminders(ctx)
		return domain.Done(kind, domain.ViewDeadlines, domain.ToastSuccess, "Deadline updated ✓"), nil

	case domain.CompleteDeadline:
		done, err := d.mods.Planner.CompleteDeadline(ctx, plannerdto.CompleteDeadlineInput{ID: a.ID, Title: a.Title})
		if err != nil {
			return domain.Outcome{}, err
		}
		return domain.Done(kind, domain.ViewDeadlines, domain.ToastSuccess, fmt.Sprintf("✅ \"%s\" marked as done!", done.Title)), nil

	case domain.DeleteDeadline:
		if _, err := d.mods.Planner.DeleteDeadline(ctx, a.ID); err != nil {
			return domain.Outcome{}, err
		}
		return domain.Done(kind, domain.ViewDeadlines, domain.ToastInfo, "Deadline removed"), nil

	case domain.AddNote:
		if _, err := d.mods.Planner.AddNote(ctx, a.Text); err != nil {
			return domain.Outcome{}, err
		}
		return domain.Done(kind, domain.ViewNotes, domain.ToastSuccess, "📝 Note saved!"), nil

	case domain.DeleteNote:
		if _, err := d.mods.Planner.DeleteNote(ctx, a.ID); err != nil {
			return domain.Outcome{}, err
		}
		return domain.Done(kind, domain.ViewNotes, domain.ToastInfo, "Note deleted"), nil

	case domain.LogGym:
		out, err := d.mods.Wellness.LogGym(ctx, wellnessdto.LogGymInput{Date: a.Date, DidGo: a.DidGo})
		if err != nil {
			return domain.Outcome{}, err
		}
		if a.DidGo {
			return domain.Done(kind, domain.ViewProgress, domain.ToastSuccess, fmt.Sprintf("💪 Gym logged! Streak: %d days", out.Stats.CurrentStreak)), nil
		}
		return domain.Done(kind, domain.ViewProgress, domain.ToastInfo, "Gym skip logged"), nil

	case domain.LogPeriodStart:
		out, err := d.mods.Wellness.StartPeriod(ctx, a.Date)
		if err != nil {
			return domain.Outcome{}, err
		}
		if !out.Added {
			return domain.Ignored(kind), nil
		}
		d.scheduleReminders(ctx)
		return domain.Done(kind, domain.ViewProgress, domain.ToastInfo, "🌸 Period start logged"), nil

	case domain.LogPeriodEnd:
		if _, err := d.mods.Wellness.EndPeriod(ctx, a.EndDate); err != nil {
			return domain.Outcome{}, err
		}
		return domain.Done(kind, domain.ViewProgress, domain.ToastInfo, "Period end logged ✓"), nil

	case domain.AddTopic:
		if _, err := d.mods.Planner.AddTopics(ctx, plannerdto.AddTopicsInput{Subject: a.Subject, Topics: a.Topics}); err != nil {
			return domain.Outcome{}, err
		}
		return domain.Done(kind, domain.ViewProgress, domain.ToastSuccess, "📚 Topics added for "+a.Subject), nil

	case domain.CompleteTopic:
		if _, err := d.mods.Planner.CompleteTopic(ctx, plannerdto.CompleteTopicInput{Subject: a.Subject, Topic: a.Topic}); err != nil {
			return domain.Outcome{}, err
		}
		return domain.Done(kind, domain.ViewProgress, domain.ToastSuccess, fmt.Sprintf("✅ \"%s\" completed!", a.Topic)), nil

	case domain.LogDailyProgress:
		if _, err := d.mods.Planner.LogProgress(ctx, plannerdto.LogProgressInput{Summary: a.Summary, Date: a.Date}); err != nil {
			return domain.Outcome{}, err
		}
		return domain.Done(kind, domain.ViewProgress, domain.ToastSuccess, "Daily progress logged ✓"), nil

	case domain.StartQuiz:
		return d.startQuiz(ctx, a)

	case domain.GradeQuiz:
		return d.gradeQuiz(ctx, a)

	case domain.AddSubject:
		added, err := d.mods.Planner.AddSubject(ctx, a.Subject)
		if err != nil {
			return domain.Outcome{}, err
		}
		if !added {
			return domain.Ignored(kind), nil
		}
		return domain.Done(kind, domain.ViewSettings, domain.ToastSuccess, "Subject added: "+a.Subject), nil

	case domain.RemoveSubject:
		if _, err := d.mods.Planner.RemoveSubject(ctx, a.Subject); err != nil {
			return domain.Outcome{}, err
		}
		return domain.Done(kind, domain.ViewSettings, domain.ToastInfo, "Subject removed: "+a.Subject), nil

	case domain.SetBalance:
		st, err := d.mods.Finance.SetBalance(ctx, float64(a.Amount))
		if err != nil {
			return domain.Outcome{}, err
		}
		return domain.Done(kind, domain.ViewFinance, domain.ToastSuccess, fmt.Sprintf("Balance updated to $%.2f", st.Balance)), nil

	case domain.AddTransaction:
		out, err := d.mods.Finance.AddTransaction(ctx, financedto.AddTransactionInput{Amount: float64(a.Amount), Type: a.Type, Description: a.Description})
		if err != nil {
			return domain.Outcome{}, err
		}
		label := "Expense"
		if out.Transaction.Type == "income" {
			label = "Income"
		}
		return domain.Done(kind, domain.ViewFinance, domain.ToastSuccess, fmt.Sprintf("%s of $%.2f logged!", label, out.Transaction.Amount)), nil

	case domain.AddSplitwise:
		item, err := d.mods.Finance.AddSplitwise(ctx, financedto.AddSplitwiseInput{Amount: float64(a.Amount), Description: a.Description})
		if err != nil {
			return domain.Outcome{}, err
		}
		return domain.Done(kind, domain.ViewFinance, domain.ToastSuccess, fmt.Sprintf("Splitwise reminder added: $%.2f", item.Amount)), nil

	case domain.CompleteSplitwise:
		item, found, err := d.mods.Finance.CompleteSplitwise(ctx, financedto.CompleteSplitwiseInput{ID: a.ID, Description: a.Description})
		if err != nil {
			return domain.Outcome{}, err
		}
		if !found {
			return domain.Ignored(kind), nil
		}
		return domain.Done(kind, domain.ViewFinance, domain.ToastSuccess, "Checked off Splitwise: "+item.Description), nil

	case domain.Unknown:
		d.logger.Debug("unknown action type", zap.String("type", a.Type))
		return domain.Ignored(kind), nil
	}
	return domain.Ignored(kind), nil
}

func (d *Dispatcher) addDeadline(ctx context.Context, a domain.AddDeadline) (domain.Outcome, error) {
	d.sessionMu.Lock()
	defer d.sessionMu.Unlock()
	session, err := d.sessions.Load(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}
	if a.Draft.AskingForStartDate {
		draft := a.Draft
		session.PendingDeadline = &draft
		if err := d.sessions.Save(ctx, session); err != nil {
			return domain.Outcome{}, err
		}
		return domain.Outcome{Kind: a.Kind(), Handled: true}, nil
	}

	draft := session.CompleteDraft(a.Draft)
	session.PendingDeadline = nil
	if err := d.sessions.Save(ctx, session); err != nil {
		return domain.Outcome{}, err
	}
	added, err := d.mods.Planner.AddDeadline(ctx, draft)
	if err != nil {
		return domain.Outcome{}, err
	}
	d.scheduleReminders(ctx)
	return domain.Done(a.Kind(), domain.ViewDeadlines, domain.ToastSuccess, "📅 Deadline added: "+added.Title), nil
}

func (d *Dispatcher) startQuiz(ctx context.Context, a domain.StartQuiz) (domain.Outcome, error) {
	if d.toasts != nil {
		d.toasts.Toast(ctx, domain.Toast{Message: "Generating quiz questions... 📝", Level: domain.ToastInfo})
	}
	d.sessionMu.Lock()
	defer d.sessionMu.Unlock()
	session, err := d.sessions.Load(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}
	snapshot, err := d.builder.Build(ctx, session)
	if err != nil {
		return domain.Outcome{}, err
	}
	out, err := d.mods.Quiz.Start(ctx, quizdto.StartInput{
		QuizType: a.QuizType,
		Count:    int(a.Count),
		Subject:  a.Subject,
		Context:  snapshot,
	})
	if err != nil {
		return domain.Outcome{}, err
	}
	if !out.Started {
		return domain.Outcome{Kind: a.Kind(), Message: out.Message}, nil
	}
	quiz := out.Session
	session.Quiz = &quiz
	if err := d.sessions.Save(ctx, session); err != nil {
		return domain.Outcome{}, err
	}
	return domain.Outcome{Kind: a.Kind(), Handled: true, Refresh: domain.ViewQuiz, Message: out.Message}, nil
}

func (d *Dispatcher) gradeQuiz(ctx context.Context, a domain.GradeQuiz) (domain.Outcome, error) {
	d.sessionMu.Lock()
	defer d.sessionMu.Unlock()
	session, err := d.sessions.Load(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}
	entry, err := d.mods.Quiz.Grade(ctx, quizdto.GradeInput{Score: int(a.Score), Total: int(a.Total), Subject: a.Subject})
	if err != nil {
		return domain.Outcome{}, err
	}
	session.Quiz = nil
	if err := d.sessions.Save(ctx, session); err != nil {
		return domain.Outcome{}, err
	}
	return domain.Done(a.Kind(), domain.ViewQuiz, domain.ToastSuccess, fmt.Sprintf("Quiz done! Score: %d/%d 🎉", entry.Score, entry.Total)), nil
}

// scheduleReminders runs the reminder scheduler in the background after a
// mutation that can create new alerts.
func (d *Dispatcher) scheduleReminders(ctx context.Context) {
	if d.reminders == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		ctx, cancel := context.WithTimeout(detached, reminderTimeout)
		defer cancel()
		if _, err := d.reminders.Run(ctx); err != nil {
			d.logger.Warn("reminder run after action failed", zap.Error(err))
		}
	}()
}

// Close waits for background reminder runs and pending mirror writes.
func (d *Dispatcher) Close() error {
	d.inflight.Wait()
	if d.mods.Wellness != nil {
		return d.mods.Wellness.Close()
	}
	return nil
}
