package domain

const (
	NoteStarted    = "Period started"
	NoteHistorical = "Historical data"
)

type MirrorStart struct {
	UserID string `json:"userId"`
	Date   string `json:"date"`
	Notes  string `json:"notes,omitempty"`
}

type MirrorEnd struct {
	UserID    string `json:"userId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
