package domain

const (
	ManagedDeadlinesStart = "<!-- aria:deadlines:start -->"
	ManagedDeadlinesEnd   = "<!-- aria:deadlines:end -->"
	ManagedProgressStart  = "<!-- aria:progress:start -->"
	ManagedProgressEnd    = "<!-- aria:progress:end -->"
)

// Journal is everything the planner exports as markdown.
type Journal struct {
	GeneratedOn string
	Profile     Profile
	Deadlines   []Deadline
	Notes       []Note
	Progress    []ProgressEntry
	Topics      TopicMap
}
