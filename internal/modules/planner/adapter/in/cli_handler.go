package in

import (
	"context"

	plannerdto "aria/internal/modules/planner/dto"
	plannerin "aria/internal/modules/planner/port/in"
)

type CLIHandler struct {
	usecase plannerin.Usecase
}

func NewCLIHandler(usecase plannerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Deadlines(ctx context.Context, includeDone bool) ([]plannerdto.Deadline, error) {
	return h.usecase.ListDeadlines(ctx, plannerdto.ListDeadlinesInput{IncludeDone: includeDone})
}

func (h CLIHandler) Notes(ctx context.Context, query string, limit int) ([]plannerdto.Note, error) {
	return h.usecase.ListNotes(ctx, plannerdto.ListNotesInput{Query: query, Limit: limit})
}

func (h CLIHandler) Progress(ctx context.Context, limit int) ([]plannerdto.ProgressEntry, error) {
	return h.usecase.ListProgress(ctx, limit)
}

func (h CLIHandler) Topics(ctx context.Context) (plannerdto.TopicMap, error) {
	return h.usecase.Topics(ctx)
}

func (h CLIHandler) Profile(ctx context.Context) (plannerdto.Profile, error) {
	return h.usecase.Profile(ctx)
}

func (h CLIHandler) Onboard(ctx context.Context, name, leetcode string, subjects []string) (plannerdto.Profile, error) {
	return h.usecase.Onboard(ctx, plannerdto.OnboardInput{Name: name, LeetcodeUsername: leetcode, Subjects: subjects})
}

func (h CLIHandler) SaveSettings(ctx context.Context, input plannerdto.SettingsInput) (plannerdto.Profile, error) {
	return h.usecase.SaveSettings(ctx, input)
}

func (h CLIHandler) Export(ctx context.Context, dir string) (plannerdto.ExportOutput, error) {
	return h.usecase.Export(ctx, dir)
}
