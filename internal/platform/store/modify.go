package store

import (
	"context"

	"go.uber.org/zap"
)

// LoadLogged is Load that reports corrupt documents at warn level.
func LoadLogged[T any](ctx context.Context, r Reader, key string, fallback T, logger *zap.Logger) T {
	res := Get(ctx, r, key, fallback)
	if res.Status == StatusCorrupt && logger != nil {
		logger.Warn("store document unreadable, using default", zap.String("key", key), zap.Error(res.Err))
	}
	return res.Value
}

// Modify reads key, applies fn and writes the result back in one transaction.
// When fn fails nothing is written.
func Modify[T any](ctx context.Context, s Store, key string, fallback func() T, logger *zap.Logger, fn func(T) (T, error)) error {
	return s.Update(ctx, func(tx Tx) error {
		current := LoadLogged(ctx, tx, key, fallback(), logger)
		next, err := fn(current)
		if err != nil {
			return err
		}
		return Set(ctx, tx, key, next)
	})
}

// Read returns the document under key outside of any transaction.
func Read[T any](ctx context.Context, s Store, key string, fallback func() T, logger *zap.Logger) (T, error) {
	var out T
	err := s.View(ctx, func(r Reader) error {
		out = LoadLogged(ctx, r, key, fallback(), logger)
		return nil
	})
	return out, err
}
