package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	financedto "aria/internal/modules/finance/dto"
	plannerdto "aria/internal/modules/planner/dto"
)

type Kind string

const (
	KindAddDeadline       Kind = "ADD_DEADLINE"
	KindUpdateDeadline    Kind = "UPDATE_DEADLINE"
	KindCompleteDeadline  Kind = "COMPLETE_DEADLINE"
	KindDeleteDeadline    Kind = "DELETE_DEADLINE"
	KindAddNote           Kind = "ADD_NOTE"
	KindDeleteNote        Kind = "DELETE_NOTE"
	KindLogGym            Kind = "LOG_GYM"
	KindLogPeriodStart    Kind = "LOG_PERIOD_START"
	KindLogPeriodEnd      Kind = "LOG_PERIOD_END"
	KindAddTopic          Kind = "ADD_TOPIC"
	KindCompleteTopic     Kind = "COMPLETE_TOPIC"
	KindLogDailyProgress  Kind = "LOG_DAILY_PROGRESS"
	KindStartQuiz         Kind = "START_QUIZ"
	KindGradeQuiz         Kind = "GRADE_QUIZ"
	KindAddSubject        Kind = "ADD_SUBJECT"
	KindRemoveSubject     Kind = "REMOVE_SUBJECT"
	KindSetBalance        Kind = "SET_BALANCE"
	KindAddTransaction    Kind = "ADD_TRANSACTION"
	KindAddSplitwise      Kind = "ADD_SPLITWISE"
	KindCompleteSplitwise Kind = "COMPLETE_SPLITWISE"
)

// RawAction is an action as the reasoning service emits it.
type RawAction struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Action is one of the payload types below. The set is closed.
type Action interface {
	Kind() Kind
	isAction()
}

// Number decodes from a JSON number or a numeric string; anything else is 0.
type Number = financedto.Amount

type (
	AddDeadline struct {
		Draft plannerdto.DeadlineDraft
	}
	UpdateDeadline struct {
		ID      string                     `json:"id"`
		Updates plannerdto.DeadlineUpdates `json:"updates"`
	}
	CompleteDeadline struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	DeleteDeadline struct {
		ID string `json:"id"`
	}
	AddNote struct {
		Text string `json:"text"`
	}
	DeleteNote struct {
		ID string `json:"id"`
	}
	LogGym struct {
		Date  string `json:"date"`
		DidGo bool   `json:"didGo"`
	}
	LogPeriodStart struct {
		Date string `json:"date"`
	}
	LogPeriodEnd struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	AddTopic struct {
		Subject string   `json:"subject"`
		Topics  []string `json:"topics"`
	}
	CompleteTopic struct {
		Subject string `json:"subject"`
		Topic   string `json:"topic"`
	}
	LogDailyProgress struct {
		Summary string `json:"summary"`
		Date    string `json:"date"`
	}
	StartQuiz struct {
		QuizType string `json:"quizType"`
		Count    Number `json:"count"`
		Subject  string `json:"subject"`
	}
	GradeQuiz struct {
		Score   Number `json:"score"`
		Total   Number `json:"total"`
		Subject string `json:"subject"`
	}
	AddSubject struct {
		Subject string `json:"subject"`
	}
	RemoveSubject struct {
		Subject string `json:"subject"`
	}
	SetBalance struct {
		Amount Number `json:"amount"`
	}
	AddTransaction struct {
		Amount      Number `json:"amount"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}
	AddSplitwise struct {
		Amount      Number `json:"amount"`
		Description string `json:"description"`
	}
	CompleteSplitwise struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	}
	// Unknown is any action type outside the closed set. It is a no-op.
	Unknown struct {
		Type string
	}
)

func (AddDeadline) Kind() Kind       { return KindAddDeadline }
func (UpdateDeadline) Kind() Kind    { return KindUpdateDeadline }
func (CompleteDeadline) Kind() Kind  { return KindCompleteDeadline }
func (DeleteDeadline) Kind() Kind    { return KindDeleteDeadline }
func (AddNote) Kind() Kind           { return KindAddNote }
func (DeleteNote) Kind() Kind        { return KindDeleteNote }
func (LogGym) Kind() Kind            { return KindLogGym }
func (LogPeriodStart) Kind() Kind    { return KindLogPeriodStart }
func (LogPeriodEnd) Kind() Kind      { return KindLogPeriodEnd }
func (AddTopic) Kind() Kind          { return KindAddTopic }
func (CompleteTopic) Kind() Kind     { return KindCompleteTopic }
func (LogDailyProgress) Kind() Kind  { return KindLogDailyProgress }
func (StartQuiz) Kind() Kind         { return KindStartQuiz }
func (GradeQuiz) Kind() Kind         { return KindGradeQuiz }
func (AddSubject) Kind() Kind        { return KindAddSubject }
func (RemoveSubject) Kind() Kind     { return KindRemoveSubject }
func (SetBalance) Kind() Kind        { return KindSetBalance }
func (AddTransaction) Kind() Kind    { return KindAddTransaction }
func (AddSplitwise) Kind() Kind      { return KindAddSplitwise }
func (CompleteSplitwise) Kind() Kind { return KindCompleteSplitwise }
func (u Unknown) Kind() Kind         { return Kind(u.Type) }

func (AddDeadline) isAction()       {}
func (UpdateDeadline) isAction()    {}
func (CompleteDeadline) isAction()  {}
func (DeleteDeadline) isAction()    {}
func (AddNote) isAction()           {}
func (DeleteNote) isAction()        {}
func (LogGym) isAction()            {}
func (LogPeriodStart) isAction()    {}
func (LogPeriodEnd) isAction()      {}
func (AddTopic) isAction()          {}
func (CompleteTopic) isAction()     {}
func (LogDailyProgress) isAction()  {}
func (StartQuiz) isAction()         {}
func (GradeQuiz) isAction()         {}
func (AddSubject) isAction()        {}
func (RemoveSubject) isAction()     {}
func (SetBalance) isAction()        {}
func (AddTransaction) isAction()    {}
func (AddSplitwise) isAction()      {}
func (CompleteSplitwise) isAction() {}
func (Unknown) isAction()           {}

// Decode turns a raw action into its typed payload. Missing or null data
// decodes as an empty payload. Unrecognised types decode to Unknown.
func Decode(raw RawAction) (Action, error) {
	kind := Kind(strings.TrimSpace(raw.Type))
	data := bytes.TrimSpace(raw.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		data = []byte("{}")
	}
	switch kind {
	case KindAddDeadline:
		return decode[AddDeadline](kind, data)
	case KindUpdateDeadline:
		return decode[UpdateDeadline](kind, data)
	case KindCompleteDeadline:
		return decode[CompleteDeadline](kind, data)
	case KindDeleteDeadline:
		return decode[DeleteDeadline](kind, data)
	case KindAddNote:
		return decode[AddNote](kind, data)
	case KindDeleteNote:
		return decode[DeleteNote](kind, data)
	case KindLogGym:
		return decode[LogGym](kind, data)
	case KindLogPeriodStart:
		return decode[LogPeriodStart](kind, data)
	case KindLogPeriodEnd:
		return decode[LogPeriodEnd](kind, data)
	case KindAddTopic:
		return decode[AddTopic](kind, data)
	case KindCompleteTopic:
		return decode[CompleteTopic](kind, data)
	case KindLogDailyProgress:
		return decode[LogDailyProgress](kind, data)
	case KindStartQuiz:
		return decode[StartQuiz](kind, data)
	case KindGradeQuiz:
		return decode[GradeQuiz](kind, data)
	case KindAddSubject:
		return decode[AddSubject](kind, data)
	case KindRemoveSubject:
		return decode[RemoveSubject](kind, data)
	case KindSetBalance:
		return decode[SetBalance](kind, data)
	case KindAddTransaction:
		return decode[AddTransaction](kind, data)
	case KindAddSplitwise:
		return decode[AddSplitwise](kind, data)
	case KindCompleteSplitwise:
		return decode[CompleteSplitwise](kind, data)
	default:
		return Unknown{Type: raw.Type}, nil
	}
}

// UnmarshalJSON reads the draft fields directly from the action data.
func (a *AddDeadline) UnmarshalJSON(raw []byte) error {
	return json.Unmarshal(raw, &a.Draft)
}

func decode[T Action](kind Kind, data []byte) (Action, error) {
	var payload T
	if err := json.Unmarshal(data, &payload); err != nil {
		return Unknown{Type: string(kind)}, fmt.Errorf("decode %s: %w", kind, err)
	}
	return payload, nil
}
