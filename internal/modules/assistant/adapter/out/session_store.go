package out

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"aria/internal/modules/assistant/domain"
	assistantout "aria/internal/modules/assistant/port/out"
	"aria/internal/platform/store"
)

// MemorySessions keeps the session for the life of the process.
type MemorySessions struct {
	mu      sync.Mutex
	session domain.Session
}

func NewMemorySessions() assistantout.SessionStore {
	return &MemorySessions{}
}

func (m *MemorySessions) Load(context.Context) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *MemorySessions) Save(_ context.Context, session domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = session
	return nil
}

// KVSessions persists the session so one-shot CLI invocations can continue
// a pending deadline or a quiz.
type KVSessions struct {
	store  store.Store
	logger *zap.Logger
}

func NewKVSessions(st store.Store, logger *zap.Logger) assistantout.SessionStore {
	return &KVSessions{store: st, logger: logger}
}

func (s *KVSessions) Load(ctx context.Context) (domain.Session, error) {
	return store.Read(ctx, s.store, store.KeySession, func() domain.Session { return domain.Session{} }, s.logger)
}

func (s *KVSessions) Save(ctx context.Context, session domain.Session) error {
	return s.store.Update(ctx, func(tx store.Tx) error {
		return store.Set(ctx, tx, store.KeySession, session)
	})
}
