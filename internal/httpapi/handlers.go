package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	assistantdto "aria/internal/modules/assistant/dto"
	plannerdto "aria/internal/modules/planner/dto"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleContext(w http.ResponseWriter, r *http.Request) {
	snapshot, err := a.Assistant.Context(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (a *API) handleAction(w http.ResponseWriter, r *http.Request) {
	var action assistantdto.RawAction
	if !decodeBody(w, r, &action) {
		return
	}
	if strings.TrimSpace(action.Type) == "" {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "action type is required")
		return
	}
	outcome, err := a.Assistant.Apply(r.Context(), action)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (a *API) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	reply, err := a.Assistant.Send(r.Context(), req.Message)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (a *API) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit")
	if !ok {
		return
	}
	history, err := a.Assistant.History(r.Context(), limit)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (a *API) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	step, err := a.Assistant.NextQuestion(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (a *API) handleDeadlines(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit")
	if !ok {
		return
	}
	includeDone := r.URL.Query().Get("includeDone") == "true"
	deadlines, err := a.Planner.ListDeadlines(r.Context(), plannerdto.ListDeadlinesInput{IncludeDone: includeDone, Limit: limit})
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deadlines)
}

func (a *API) handlePlanReminders(w http.ResponseWriter, r *http.Request) {
	alerts, err := a.Reminders.Plan(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (a *API) handleRunReminders(w http.ResponseWriter, r *http.Request) {
	report, err := a.Reminders.Run(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}
