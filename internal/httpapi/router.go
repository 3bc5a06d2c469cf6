package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	assistantin "aria/internal/modules/assistant/port/in"
	plannerin "aria/internal/modules/planner/port/in"
	reminderin "aria/internal/modules/reminder/port/in"
)

// requestTimeout covers a chat turn, which includes the reasoning call.
const requestTimeout = 90 * time.Second

// API exposes the engine over HTTP. When Tokens is nil the /api routes are
// open, which is only sensible on a loopback address.
type API struct {
	Assistant assistantin.Usecase
	Planner   plannerin.Usecase
	Reminders reminderin.Usecase
	Tokens    *TokenManager
	Origins   []string

	logger *zap.Logger
}

func New(assistant assistantin.Usecase, planner plannerin.Usecase, reminders reminderin.Usecase, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{Assistant: assistant, Planner: planner, Reminders: reminders, logger: logger}
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(a.logRequests)
	r.Use(a.cors)

	r.Get("/health", a.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if a.Tokens != nil {
			r.Use(a.requireToken)
		}
		r.Get("/context", a.handleContext)
		r.Post("/actions", a.handleAction)
		r.Post("/chat", a.handleChat)
		r.Get("/chat/history", a.handleHistory)
		r.Post("/quiz/next", a.handleNextQuestion)
		r.Get("/deadlines", a.handleDeadlines)
		r.Get("/reminders", a.handlePlanReminders)
		r.Post("/reminders/run", a.handleRunReminders)
	})
	return r
}
