package out

import (
	"context"

	"aria/internal/modules/planner/domain"
)

type Repository interface {
	Deadlines(ctx context.Context) ([]domain.Deadline, error)
	UpdateDeadlines(ctx context.Context, fn func([]domain.Deadline) ([]domain.Deadline, error)) error
	Notes(ctx context.Context) ([]domain.Note, error)
	UpdateNotes(ctx context.Context, fn func([]domain.Note) ([]domain.Note, error)) error
	Progress(ctx context.Context) ([]domain.ProgressEntry, error)
	UpdateProgress(ctx context.Context, fn func([]domain.ProgressEntry) ([]domain.ProgressEntry, error)) error
	Topics(ctx context.Context) (domain.TopicMap, error)
	UpdateTopics(ctx context.Context, fn func(domain.TopicMap) error) error
	Profile(ctx context.Context) (domain.Profile, error)
	UpdateProfile(ctx context.Context, fn func(*domain.Profile) error) error
}

// Exporter renders a journal as files under dir and returns their paths.
type Exporter interface {
	Export(ctx context.Context, dir string, journal domain.Journal) ([]string, error)
}
