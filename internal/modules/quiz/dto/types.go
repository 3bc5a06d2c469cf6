package dto

type Session struct {
	Questions    []string `json:"questions"`
	CurrentIndex int      `json:"currentIndex"`
	Score        int      `json:"score"`
	Total        int      `json:"total"`
	Type         string   `json:"type"`
	Subject      string   `json:"subject"`
	StartedAt    int64    `json:"startedAt"`
}

type StartInput struct {
	QuizType string
	Count    int
	Subject  string
	Context  any
}

// StartOutput reports a started session or, when Started is false, the
// message explaining why none was created.
type StartOutput struct {
	Started bool
	Session Session
	Message string
}

type GradeInput struct {
	Score   int
	Total   int
	Subject string
}

type HistoryEntry struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Subject string `json:"subject"`
	Pct     int    `json:"pct"`
}

type AdvanceOutput struct {
	Session  Session
	Question string
	Finished bool
}
