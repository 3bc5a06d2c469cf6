package usecase

import (
	"context"
	"fmt"
	"strings"

	"aria/internal/modules/planner/domain"
	"aria/internal/modules/planner/dto"
	plannerin "aria/internal/modules/planner/port/in"
	plannerout "aria/internal/modules/planner/port/out"
	"aria/internal/modules/planner/service"
)

type Interactor struct {
	svc      *service.PlannerService
	exporter plannerout.Exporter
}

func NewInteractor(svc *service.PlannerService, exporter plannerout.Exporter) plannerin.Usecase {
	return &Interactor{svc: svc, exporter: exporter}
}

func (i *Interactor) AddDeadline(ctx context.Context, draft dto.DeadlineDraft) (dto.Deadline, error) {
	d, err := i.svc.AddDeadline(ctx, domain.Deadline{
		Title:     draft.Title,
		Subject:   draft.Subject,
		DueDate:   draft.DueDate,
		StartDate: draft.StartDate,
		Type:      draft.Type,
	})
	if err != nil {
		return dto.Deadline{}, err
	}
	return i.toDeadline(d), nil
}

func (i *Interactor) UpdateDeadline(ctx context.Context, input dto.UpdateDeadlineInput) (dto.Deadline, error) {
	patch := domain.DeadlinePatch{
		Title:         input.Updates.Title,
		Subject:       input.Updates.Subject,
		DueDate:       input.Updates.DueDate,
		StartDate:     input.Updates.StartDate,
		Type:          input.Updates.Type,
		MidwayChecked: input.Updates.MidwayChecked,
	}
	if input.Updates.Status != nil {
		status := domain.Status(*input.Updates.Status)
		patch.Status = &status
	}
	d, err := i.svc.UpdateDeadline(ctx, input.ID, patch)
	if err != nil {
		return dto.Deadline{}, err
	}
	return i.toDeadline(d), nil
}

func (i *Interactor) CompleteDeadline(ctx context.Context, input dto.CompleteDeadlineInput) (dto.Deadline, error) {
	d, err := i.svc.CompleteDeadline(ctx, input.ID, input.Title)
	if err != nil {
		return dto.Deadline{}, err
	}
	return i.toDeadline(d), nil
}

func (i *Interactor) DeleteDeadline(ctx context.Context, id string) (bool, error) {
	return i.svc.DeleteDeadline(ctx, id)
}

func (i *Interactor) ListDeadlines(ctx context.Context, input dto.ListDeadlinesInput) ([]dto.Deadline, error) {
	all, err := i.svc.Deadlines(ctx)
	if err != nil {
		return nil, err
	}
	if !input.IncludeDone {
		all = domain.ActiveDeadlines(all)
	}
	out := make([]dto.Deadline, 0, len(all))
	for _, d := range all {
		if input.Limit > 0 && len(out) >= input.Limit {
			break
		}
		out = append(out, i.toDeadline(d))
	}
	return out, nil
}

func (i *Interactor) AddNote(ctx context.Context, text string) (dto.Note, error) {
	n, err := i.svc.AddNote(ctx, text)
	if err != nil {
		return dto.Note{}, err
	}
	return toNote(n), nil
}

func (i *Interactor) DeleteNote(ctx context.Context, id string) (bool, error) {
	return i.svc.DeleteNote(ctx, id)
}

func (i *Interactor) ListNotes(ctx context.Context, input dto.ListNotesInput) ([]dto.Note, error) {
	notes, err := i.svc.Notes(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(strings.TrimSpace(input.Query))
	out := []dto.Note{}
	for _, n := range notes {
		if input.Limit > 0 && len(out) >= input.Limit {
			break
		}
		if query != "" && !strings.Contains(strings.ToLower(n.Text), query) {
			continue
		}
		out = append(out, toNote(n))
	}
	return out, nil
}

func (i *Interactor) AddTopics(ctx context.Context, input dto.AddTopicsInput) (dto.TopicTracker, error) {
	t, err := i.svc.AddTopics(ctx, input.Subject, input.Topics)
	if err != nil {
		return dto.TopicTracker{}, err
	}
	return toTracker(t), nil
}

func (i *Interactor) CompleteTopic(ctx context.Context, input dto.CompleteTopicInput) (dto.CompleteTopicOutput, error) {
	created, err := i.svc.CompleteTopic(ctx, input.Subject, input.Topic)
	if err != nil {
		return dto.CompleteTopicOutput{}, err
	}
	return dto.CompleteTopicOutput{Subject: input.Subject, Topic: input.Topic, NewlyCreated: created}, nil
}

func (i *Interactor) Topics(ctx context.Context) (dto.TopicMap, error) {
	m, err := i.svc.Topics(ctx)
	if err != nil {
		return nil, err
	}
	out := make(dto.TopicMap, len(m))
	for subject, t := range m {
		out[subject] = toTracker(t)
	}
	return out, nil
}

func (i *Interactor) LogProgress(ctx context.Context, input dto.LogProgressInput) (dto.ProgressEntry, error) {
	e, err := i.svc.LogProgress(ctx, input.Summary, input.Date)
	if err != nil {
		return dto.ProgressEntry{}, err
	}
	return dto.ProgressEntry{ID: e.ID, Summary: e.Summary, Date: e.Date}, nil
}

func (i *Interactor) ListProgress(ctx context.Context, limit int) ([]dto.ProgressEntry, error) {
	entries, err := i.svc.Progress(ctx)
	if err != nil {
		return nil, err
	}
	out := []dto.ProgressEntry{}
	for _, e := range entries {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, dto.ProgressEntry{ID: e.ID, Summary: e.Summary, Date: e.Date})
	}
	return out, nil
}

func (i *Interactor) Profile(ctx context.Context) (dto.Profile, error) {
	p, err := i.svc.Profile(ctx)
	if err != nil {
		return dto.Profile{}, err
	}
	return toProfile(p), nil
}

func (i *Interactor) Onboard(ctx context.Context, input dto.OnboardInput) (dto.Profile, error) {
	p, err := i.svc.Onboard(ctx, input.Name, input.LeetcodeUsername, input.Subjects)
	if err != nil {
		return dto.Profile{}, err
	}
	return toProfile(p), nil
}

func (i *Interactor) SaveSettings(ctx context.Context, input dto.SettingsInput) (dto.Profile, error) {
	p, err := i.svc.SaveSettings(ctx, input.Name, input.LeetcodeUsername, domain.EmailConfig{
		PubKey:     input.Email.PubKey,
		ServiceID:  input.Email.ServiceID,
		TemplateID: input.Email.TemplateID,
		ToEmail:    input.Email.ToEmail,
	})
	if err != nil {
		return dto.Profile{}, err
	}
	return toProfile(p), nil
}

func (i *Interactor) AddSubject(ctx context.Context, subject string) (bool, error) {
	return i.svc.AddSubject(ctx, subject)
}

func (i *Interactor) RemoveSubject(ctx context.Context, subject string) (bool, error) {
	return i.svc.RemoveSubject(ctx, subject)
}

func (i *Interactor) Export(ctx context.Context, dir string) (dto.ExportOutput, error) {
	if i.exporter == nil {
		return dto.ExportOutput{}, fmt.Errorf("exporter is not configured")
	}
	if strings.TrimSpace(dir) == "" {
		return dto.ExportOutput{}, fmt.Errorf("export directory is required")
	}
	journal, err := i.svc.Journal(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	files, err := i.exporter.Export(ctx, dir, journal)
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("export journal: %w", err)
	}
	return dto.ExportOutput{Dir: dir, Files: files}, nil
}

func (i *Interactor) toDeadline(d domain.Deadline) dto.Deadline {
	urgency := domain.Classify(d, i.svc.Today())
	return dto.Deadline{
		ID:            d.ID,
		Title:         d.Title,
		Subject:       d.Subject,
		DueDate:       d.DueDate,
		StartDate:     d.StartDate,
		Type:          d.Type,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
		CompletedAt:   d.CompletedAt,
		MidwayChecked: d.MidwayChecked,
		Urgency:       string(urgency),
		Color:         string(urgency.Color()),
	}
}

func toNote(n domain.Note) dto.Note {
	return dto.Note{ID: n.ID, Text: n.Text, CreatedAt: n.CreatedAt}
}

func toTracker(t domain.TopicTracker) dto.TopicTracker {
	out := dto.TopicTracker{
		Topics:    append([]string{}, t.Topics...),
		Completed: make([]dto.CompletedTopic, 0, len(t.Completed)),
	}
	for _, c := range t.Completed {
		out.Completed = append(out.Completed, dto.CompletedTopic{Topic: c.Topic, Date: c.Date})
	}
	return out
}

func toProfile(p domain.Profile) dto.Profile {
	subjects := p.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return dto.Profile{
		Name:             p.Name,
		LeetcodeUsername: p.LeetcodeUsername,
		Subjects:         append([]string{}, subjects...),
		Email: dto.EmailConfig{
			PubKey:     p.Email.PubKey,
			ServiceID:  p.Email.ServiceID,
			TemplateID: p.Email.TemplateID,
			ToEmail:    p.Email.ToEmail,
		},
		Onboarded:   p.Onboarded(),
		DisplayName: p.DisplayName(),
		UserID:      p.UserID(),
		EmailReady:  p.Email.Complete(),
	}
}
