package out

import (
	"context"

	"go.uber.org/zap"

	"aria/internal/modules/planner/domain"
	plannerout "aria/internal/modules/planner/port/out"
	"aria/internal/platform/store"
)

type KVRepository struct {
	store  store.Store
	logger *zap.Logger
}

func NewKVRepository(st store.Store, logger *zap.Logger) plannerout.Repository {
	return &KVRepository{store: st, logger: logger}
}

func emptyDeadlines() []domain.Deadline     { return []domain.Deadline{} }
func emptyNotes() []domain.Note             { return []domain.Note{} }
func emptyProgress() []domain.ProgressEntry { return []domain.ProgressEntry{} }
func emptyTopics() domain.TopicMap          { return domain.TopicMap{} }
func emptyProfile() domain.Profile          { return domain.Profile{Subjects: []string{}} }

func (r *KVRepository) Deadlines(ctx context.Context) ([]domain.Deadline, error) {
	return store.Read(ctx, r.store, store.KeyDeadlines, emptyDeadlines, r.logger)
}

func (r *KVRepository) UpdateDeadlines(ctx context.Context, fn func([]domain.Deadline) ([]domain.Deadline, error)) error {
	return store.Modify(ctx, r.store, store.KeyDeadlines, emptyDeadlines, r.logger, fn)
}

func (r *KVRepository) Notes(ctx context.Context) ([]domain.Note, error) {
	return store.Read(ctx, r.store, store.KeyNotes, emptyNotes, r.logger)
}

func (r *KVRepository) UpdateNotes(ctx context.Context, fn func([]domain.Note) ([]domain.Note, error)) error {
	return store.Modify(ctx, r.store, store.KeyNotes, emptyNotes, r.logger, fn)
}

func (r *KVRepository) Progress(ctx context.Context) ([]domain.ProgressEntry, error) {
	return store.Read(ctx, r.store, store.KeyProgress, emptyProgress, r.logger)
}

func (r *KVRepository) UpdateProgress(ctx context.Context, fn func([]domain.ProgressEntry) ([]domain.ProgressEntry, error)) error {
	return store.Modify(ctx, r.store, store.KeyProgress, emptyProgress, r.logger, fn)
}

func (r *KVRepository) Topics(ctx context.Context) (domain.TopicMap, error) {
	return store.Read(ctx, r.store, store.KeyTopics, emptyTopics, r.logger)
}

func (r *KVRepository) UpdateTopics(ctx context.Context, fn func(domain.TopicMap) error) error {
	return store.Modify(ctx, r.store, store.KeyTopics, emptyTopics, r.logger, func(m domain.TopicMap) (domain.TopicMap, error) {
		if m == nil {
			m = domain.TopicMap{}
		}
		if err := fn(m); err != nil {
			return nil, err
		}
		return m, nil
	})
}

func (r *KVRepository) Profile(ctx context.Context) (domain.Profile, error) {
	return store.Read(ctx, r.store, store.KeyUser, emptyProfile, r.logger)
}

func (r *KVRepository) UpdateProfile(ctx context.Context, fn func(*domain.Profile) error) error {
	return store.Modify(ctx, r.store, store.KeyUser, emptyProfile, r.logger, func(p domain.Profile) (domain.Profile, error) {
		if err := fn(&p); err != nil {
			return domain.Profile{}, err
		}
		return p, nil
	})
}
