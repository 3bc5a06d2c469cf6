package domain

type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastInfo    ToastLevel = "info"
	ToastError   ToastLevel = "error"
)

type Toast struct {
	Message string     `json:"message"`
	Level   ToastLevel `json:"level"`
}

// View names a screen whose data an action changed.
type View string

const (
	ViewNone      View = ""
	ViewDeadlines View = "deadlines"
	ViewNotes     View = "notes"
	ViewProgress  View = "progress"
	ViewQuiz      View = "quiz"
	ViewFinance   View = "finance"
	ViewSettings  View = "settings"
)

// Outcome is what dispatching one action produced. Message, when set, is an
// extra assistant line for the conversation (quiz start).
type Outcome struct {
	Kind    Kind   `json:"kind"`
	Handled bool   `json:"handled"`
	Toast   *Toast `json:"toast,omitempty"`
	Refresh View   `json:"refresh,omitempty"`
	Message string `json:"message,omitempty"`
}

func Ignored(kind Kind) Outcome {
	return Outcome{Kind: kind}
}

func Done(kind Kind, refresh View, level ToastLevel, message string) Outcome {
	return Outcome{Kind: kind, Handled: true, Refresh: refresh, Toast: &Toast{Message: message, Level: level}}
}
