package domain

type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type ProgressEntry struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Date    string `json:"date"`
}

// Prepend puts item first, matching the newest-first order of notes and progress.
func Prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}
