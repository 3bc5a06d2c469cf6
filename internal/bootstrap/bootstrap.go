package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	assistantinadapter "aria/internal/modules/assistant/adapter/in"
	assistantoutadapter "aria/internal/modules/assistant/adapter/out"
	assistantin "aria/internal/modules/assistant/port/in"
	assistantout "aria/internal/modules/assistant/port/out"
	assistantusecase "aria/internal/modules/assistant/usecase"
	financeinadapter "aria/internal/modules/finance/adapter/in"
	financeoutadapter "aria/internal/modules/finance/adapter/out"
	financeservice "aria/internal/modules/finance/service"
	financeusecase "aria/internal/modules/finance/usecase"
	leetcodeinadapter "aria/internal/modules/leetcode/adapter/in"
	leetcodeoutadapter "aria/internal/modules/leetcode/adapter/out"
	leetcodeusecase "aria/internal/modules/leetcode/usecase"
	plannerinadapter "aria/internal/modules/planner/adapter/in"
	planneroutadapter "aria/internal/modules/planner/adapter/out"
	plannerin "aria/internal/modules/planner/port/in"
	plannerservice "aria/internal/modules/planner/service"
	plannerusecase "aria/internal/modules/planner/usecase"
	quizoutadapter "aria/internal/modules/quiz/adapter/out"
	quizservice "aria/internal/modules/quiz/service"
	quizusecase "aria/internal/modules/quiz/usecase"
	reminderinadapter "aria/internal/modules/reminder/adapter/in"
	reminderoutadapter "aria/internal/modules/reminder/adapter/out"
	reminderin "aria/internal/modules/reminder/port/in"
	reminderout "aria/internal/modules/reminder/port/out"
	reminderservice "aria/internal/modules/reminder/service"
	reminderusecase "aria/internal/modules/reminder/usecase"
	wellnessinadapter "aria/internal/modules/wellness/adapter/in"
	wellnessoutadapter "aria/internal/modules/wellness/adapter/out"
	wellnessout "aria/internal/modules/wellness/port/out"
	wellnessservice "aria/internal/modules/wellness/service"
	wellnessusecase "aria/internal/modules/wellness/usecase"
	"aria/internal/platform/clock"
	"aria/internal/platform/config"
	"aria/internal/platform/httpjson"
	"aria/internal/platform/id"
	"aria/internal/platform/logging"
	"aria/internal/platform/store"
	uiapp "aria/internal/ui/app"
)

const reminderConcurrency = 4

// Options select the front-end specific sinks. Nil fields fall back to the
// logger.
type Options struct {
	Toasts assistantout.ToastSink
	Alerts io.Writer
	// Store replaces the SQLite store, mainly for tests.
	Store store.Store
}

type App struct {
	PlannerCLI   plannerinadapter.CLIHandler
	WellnessCLI  wellnessinadapter.CLIHandler
	FinanceCLI   financeinadapter.CLIHandler
	LeetcodeCLI  leetcodeinadapter.CLIHandler
	ReminderCLI  reminderinadapter.CLIHandler
	AssistantCLI assistantinadapter.CLIHandler

	Planner   plannerin.Usecase
	Reminders reminderin.Usecase
	Assistant assistantin.Usecase

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger, opts Options) (*App, error) {
	logger = logging.OrNop(logger)
	clk := clock.SystemClock{}
	ids := id.UUID{}

	st := opts.Store
	if st == nil {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		sqlite, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		st = sqlite
	}
	app := &App{closers: []func() error{st.Close}}

	service := httpjson.New(cfg.Service.BaseURL, cfg.Service.Timeout)

	plannerUC := plannerusecase.NewInteractor(
		plannerservice.NewPlannerService(clk, ids, planneroutadapter.NewKVRepository(st, logger)),
		planneroutadapter.NewVaultExporter(),
	)

	mirror, closeMirror, err := newMirror(ctx, cfg, service)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if closeMirror != nil {
		app.closers = append(app.closers, closeMirror)
	}
	wellnessUC := wellnessusecase.NewInteractor(
		wellnessservice.NewWellnessService(clk, ids, wellnessoutadapter.NewKVRepository(st, logger)),
		plannerUC,
		mirror,
		logger.Named("mirror"),
		cfg.Service.Timeout,
	)

	financeUC := financeusecase.NewInteractor(financeservice.NewFinanceService(clk, ids, financeoutadapter.NewKVRepository(st, logger)))
	quizUC := quizusecase.NewInteractor(quizservice.NewQuizService(
		clk, ids,
		quizoutadapter.NewHTTPSource(service),
		quizoutadapter.NewKVHistory(st, logger),
		logger.Named("quiz"),
	))
	leetcodeUC := leetcodeusecase.NewInteractor(leetcodeoutadapter.NewHTTPSource(service), plannerUC)

	var notifier reminderout.Notifier = reminderoutadapter.NewLogNotifier(logger.Named("alerts"))
	if opts.Alerts != nil {
		notifier = reminderoutadapter.NewWriterNotifier(opts.Alerts)
	}
	reminderSvc := reminderservice.NewReminderService(
		reminderoutadapter.NewKVLedger(st, logger),
		notifier,
		reminderoutadapter.NewEmailJSSender(httpjson.New(reminderoutadapter.DefaultEmailJSURL, cfg.Service.Timeout)),
		logger.Named("reminders"),
		reminderservice.Options{RetentionDays: cfg.Reminders.DedupRetentionDays, Concurrency: reminderConcurrency},
	)
	reminderUC := reminderusecase.NewInteractor(reminderSvc, plannerUC, wellnessUC, clk, logger.Named("reminders"))

	var sessions assistantout.SessionStore = assistantoutadapter.NewMemorySessions()
	if cfg.Session.Persist {
		sessions = assistantoutadapter.NewKVSessions(st, logger)
	}
	toasts := opts.Toasts
	if toasts == nil {
		toasts = assistantoutadapter.NewLogToasts(logger.Named("toasts"))
	}
	mods := assistantusecase.Modules{Planner: plannerUC, Wellness: wellnessUC, Finance: financeUC, Quiz: quizUC}
	builder := assistantusecase.NewContextBuilder(mods, clk)
	assistantUC := assistantusecase.NewInteractor(assistantusecase.Dependencies{
		Dispatcher: assistantusecase.NewDispatcher(mods, builder, sessions, toasts, reminderUC, logger.Named("actions")),
		Builder:    builder,
		Reasoner:   assistantoutadapter.NewHTTPReasoner(service),
		Sessions:   sessions,
		Chat:       assistantoutadapter.NewKVChat(st, logger),
		Eraser:     st,
		Clock:      clk,
		Logger:     logger.Named("assistant"),
	})
	// closers run in reverse: drain background work before the store closes
	app.closers = append(app.closers, assistantUC.Close)

	app.PlannerCLI = plannerinadapter.NewCLIHandler(plannerUC)
	app.WellnessCLI = wellnessinadapter.NewCLIHandler(wellnessUC)
	app.FinanceCLI = financeinadapter.NewCLIHandler(financeUC)
	app.LeetcodeCLI = leetcodeinadapter.NewCLIHandler(leetcodeUC)
	app.ReminderCLI = reminderinadapter.NewCLIHandler(reminderUC)
	app.AssistantCLI = assistantinadapter.NewCLIHandler(assistantUC)
	app.Planner = plannerUC
	app.Reminders = reminderUC
	app.Assistant = assistantUC
	return app, nil
}

func newMirror(ctx context.Context, cfg config.Config, service *httpjson.Client) (wellnessout.CycleMirror, func() error, error) {
	switch cfg.Mirror.Kind {
	case config.MirrorHTTP:
		return wellnessoutadapter.NewHTTPMirror(service), nil, nil
	case config.MirrorPostgres:
		pg, err := wellnessoutadapter.OpenPostgresMirror(ctx, cfg.Mirror.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres mirror: %w", err)
		}
		return pg, func() error { pg.Close(); return nil }, nil
	default:
		return wellnessoutadapter.NewNopMirror(), nil, nil
	}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(ctx context.Context, app *App, toasts *assistantoutadapter.ChannelToasts) error {
	profile, err := app.PlannerCLI.Profile(ctx)
	if err != nil {
		return err
	}
	model := uiapp.NewModel(ctx, app.AssistantCLI, toasts.C(), profile.DisplayName)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
