package in

import (
	"context"

	"aria/internal/modules/planner/dto"
)

type Usecase interface {
	AddDeadline(ctx context.Context, draft dto.DeadlineDraft) (dto.Deadline, error)
	UpdateDeadline(ctx context.Context, input dto.UpdateDeadlineInput) (dto.Deadline, error)
	CompleteDeadline(ctx context.Context, input dto.CompleteDeadlineInput) (dto.Deadline, error)
	DeleteDeadline(ctx context.Context, id string) (bool, error)
	ListDeadlines(ctx context.Context, input dto.ListDeadlinesInput) ([]dto.Deadline, error)

	AddNote(ctx context.Context, text string) (dto.Note, error)
	DeleteNote(ctx context.Context, id string) (bool, error)
	ListNotes(ctx context.Context, input dto.ListNotesInput) ([]dto.Note, error)

	AddTopics(ctx context.Context, input dto.AddTopicsInput) (dto.TopicTracker, error)
	CompleteTopic(ctx context.Context, input dto.CompleteTopicInput) (dto.CompleteTopicOutput, error)
	Topics(ctx context.Context) (dto.TopicMap, error)

	LogProgress(ctx context.Context, input dto.LogProgressInput) (dto.ProgressEntry, error)
	ListProgress(ctx context.Context, limit int) ([]dto.ProgressEntry, error)

	Profile(ctx context.Context) (dto.Profile, error)
	Onboard(ctx context.Context, input dto.OnboardInput) (dto.Profile, error)
	SaveSettings(ctx context.Context, input dto.SettingsInput) (dto.Profile, error)
	AddSubject(ctx context.Context, subject string) (bool, error)
	RemoveSubject(ctx context.Context, subject string) (bool, error)

	Export(ctx context.Context, dir string) (dto.ExportOutput, error)
}
