package service

import (
	"context"
	"fmt"
	"strings"

	"aria/internal/modules/planner/domain"
	plannerout "aria/internal/modules/planner/port/out"
	"aria/internal/platform/civil"
	"aria/internal/platform/clock"
	apperrors "aria/internal/platform/errors"
	"aria/internal/platform/id"
)

type PlannerService struct {
	clock clock.Clock
	idGen id.Generator
	repo  plannerout.Repository
}

func NewPlannerService(clock clock.Clock, idGen id.Generator, repo plannerout.Repository) *PlannerService {
	return &PlannerService{clock: clock, idGen: idGen, repo: repo}
}

func (s *PlannerService) Today() string {
	return clock.Today(s.clock)
}

func (s *PlannerService) AddDeadline(ctx context.Context, d domain.Deadline) (domain.Deadline, error) {
	if d.DueDate != "" && !civil.Valid(d.DueDate) {
		return domain.Deadline{}, fmt.Errorf("due date %q: %w", d.DueDate, apperrors.ErrInvalidInput)
	}
	if d.StartDate != "" && !civil.Valid(d.StartDate) {
		return domain.Deadline{}, fmt.Errorf("start date %q: %w", d.StartDate, apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Title) == "" {
		d.Title = domain.DefaultTitle
	}
	if d.Type == "" {
		d.Type = domain.DefaultDeadlineType
	}
	d.ID = s.idGen.New()
	d.Status = domain.StatusActive
	d.CreatedAt = s.Today()
	d.CompletedAt = ""
	d.MidwayChecked = false

	err := s.repo.UpdateDeadlines(ctx, func(current []domain.Deadline) ([]domain.Deadline, error) {
		return append(current, d), nil
	})
	if err != nil {
		return domain.Deadline{}, err
	}
	return d, nil
}

func (s *PlannerService) UpdateDeadline(ctx context.Context, id string, patch domain.DeadlinePatch) (domain.Deadline, error) {
	var updated domain.Deadline
	err := s.repo.UpdateDeadlines(ctx, func(current []domain.Deadline) ([]domain.Deadline, error) {
		idx := domain.FindDeadline(current, id, "")
		if idx < 0 || id == "" {
			return nil, fmt.Errorf("deadline %q: %w", id, apperrors.ErrNotFound)
		}
		current[idx] = patch.Apply(current[idx], s.Today())
		updated = current[idx]
		return current, nil
	})
	return updated, err
}

func (s *PlannerService) CompleteDeadline(ctx context.Context, id, title string) (domain.Deadline, error) {
	var completed domain.Deadline
	err := s.repo.UpdateDeadlines(ctx, func(current []domain.Deadline) ([]domain.Deadline, error) {
		idx := domain.FindDeadline(current, id, title)
		if idx < 0 {
			return nil, fmt.Errorf("deadline %q: %w", firstNonEmpty(id, title), apperrors.ErrNotFound)
		}
		current[idx].Complete(s.Today())
		completed = current[idx]
		return current, nil
	})
	return completed, err
}

func (s *PlannerService) DeleteDeadline(ctx context.Context, id string) (bool, error) {
	removed := false
	err := s.repo.UpdateDeadlines(ctx, func(current []domain.Deadline) ([]domain.Deadline, error) {
		kept := make([]domain.Deadline, 0, len(current))
		for _, d := range current {
			if d.ID == id {
				removed = true
				continue
			}
			kept = append(kept, d)
		}
		return kept, nil
	})
	return removed, err
}

func (s *PlannerService) Deadlines(ctx context.Context) ([]domain.Deadline, error) {
	return s.repo.Deadlines(ctx)
}

func (s *PlannerService) AddNote(ctx context.Context, text string) (domain.Note, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Note{}, fmt.Errorf("note text is required: %w", apperrors.ErrInvalidInput)
	}
	note := domain.Note{ID: s.idGen.New(), Text: text, CreatedAt: s.Today()}
	err := s.repo.UpdateNotes(ctx, func(current []domain.Note) ([]domain.Note, error) {
		return domain.Prepend(current, note), nil
	})
	if err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

func (s *PlannerService) DeleteNote(ctx context.Context, id string) (bool, error) {
	removed := false
	err := s.repo.UpdateNotes(ctx, func(current []domain.Note) ([]domain.Note, error) {
		kept := make([]domain.Note, 0, len(current))
		for _, n := range current {
			if n.ID == id {
				removed = true
				continue
			}
			kept = append(kept, n)
		}
		return kept, nil
	})
	return removed, err
}

func (s *PlannerService) Notes(ctx context.Context) ([]domain.Note, error) {
	return s.repo.Notes(ctx)
}

func (s *PlannerService) AddTopics(ctx context.Context, subject string, topics []string) (domain.TopicTracker, error) {
	var tracker domain.TopicTracker
	err := s.repo.UpdateTopics(ctx, func(m domain.TopicMap) error {
		m.AddTopics(subject, topics)
		tracker = m[subject]
		return nil
	})
	return tracker, err
}

func (s *PlannerService) CompleteTopic(ctx context.Context, subject, topic string) (bool, error) {
	if strings.TrimSpace(topic) == "" {
		return false, fmt.Errorf("topic is required: %w", apperrors.ErrInvalidInput)
	}
	created := false
	err := s.repo.UpdateTopics(ctx, func(m domain.TopicMap) error {
		created = m.CompleteTopic(subject, topic, s.Today())
		return nil
	})
	return created, err
}

func (s *PlannerService) Topics(ctx context.Context) (domain.TopicMap, error) {
	return s.repo.Topics(ctx)
}

func (s *PlannerService) LogProgress(ctx context.Context, summary, date string) (domain.ProgressEntry, error) {
	if date == "" {
		date = s.Today()
	}
	entry := domain.ProgressEntry{ID: s.idGen.New(), Summary: summary, Date: date}
	err := s.repo.UpdateProgress(ctx, func(current []domain.ProgressEntry) ([]domain.ProgressEntry, error) {
		return domain.Prepend(current, entry), nil
	})
	if err != nil {
		return domain.ProgressEntry{}, err
	}
	return entry, nil
}

func (s *PlannerService) Progress(ctx context.Context) ([]domain.ProgressEntry, error) {
	return s.repo.Progress(ctx)
}

func (s *PlannerService) Profile(ctx context.Context) (domain.Profile, error) {
	return s.repo.Profile(ctx)
}

func (s *PlannerService) Onboard(ctx context.Context, name, leetcode string, subjects []string) (domain.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Profile{}, fmt.Errorf("name is required: %w", apperrors.ErrInvalidInput)
	}
	var saved domain.Profile
	err := s.repo.UpdateProfile(ctx, func(p *domain.Profile) error {
		*p = domain.Profile{
			Name:             name,
			LeetcodeUsername: strings.TrimSpace(leetcode),
			Subjects:         domain.UniqueSubjects(subjects),
		}
		saved = *p
		return nil
	})
	return saved, err
}

func (s *PlannerService) SaveSettings(ctx context.Context, name, leetcode string, email domain.EmailConfig) (domain.Profile, error) {
	var saved domain.Profile
	err := s.repo.UpdateProfile(ctx, func(p *domain.Profile) error {
		if n := strings.TrimSpace(name); n != "" {
			p.Name = n
		}
		p.LeetcodeUsername = strings.TrimSpace(leetcode)
		p.Email = domain.EmailConfig{
			PubKey:     strings.TrimSpace(email.PubKey),
			ServiceID:  strings.TrimSpace(email.ServiceID),
			TemplateID: strings.TrimSpace(email.TemplateID),
			ToEmail:    strings.TrimSpace(email.ToEmail),
		}
		saved = *p
		return nil
	})
	return saved, err
}

func (s *PlannerService) AddSubject(ctx context.Context, subject string) (bool, error) {
	if strings.TrimSpace(subject) == "" {
		return false, fmt.Errorf("subject is required: %w", apperrors.ErrInvalidInput)
	}
	added := false
	err := s.repo.UpdateProfile(ctx, func(p *domain.Profile) error {
		added = p.AddSubject(subject)
		return nil
	})
	return added, err
}

func (s *PlannerService) RemoveSubject(ctx context.Context, subject string) (bool, error) {
	removed := false
	err := s.repo.UpdateProfile(ctx, func(p *domain.Profile) error {
		removed = p.RemoveSubject(subject)
		return nil
	})
	return removed, err
}

// Journal gathers the exportable state in one pass.
func (s *PlannerService) Journal(ctx context.Context) (domain.Journal, error) {
	profile, err := s.repo.Profile(ctx)
	if err != nil {
		return domain.Journal{}, err
	}
	deadlines, err := s.repo.Deadlines(ctx)
	if err != nil {
		return domain.Journal{}, err
	}
	notes, err := s.repo.Notes(ctx)
	if err != nil {
		return domain.Journal{}, err
	}
	progress, err := s.repo.Progress(ctx)
	if err != nil {
		return domain.Journal{}, err
	}
	topics, err := s.repo.Topics(ctx)
	if err != nil {
		return domain.Journal{}, err
	}
	return domain.Journal{
		GeneratedOn: s.Today(),
		Profile:     profile,
		Deadlines:   deadlines,
		Notes:       notes,
		Progress:    progress,
		Topics:      topics,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
