// Package store is the key-value persistence layer. Every domain collection
// lives as one JSON document under a domain key. Reads never fail: a missing
// or unreadable document degrades to the caller's fallback, and the Result
// records which of the two happened.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

type Status int

const (
	StatusMissing Status = iota
	StatusLoaded
	StatusCorrupt
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusCorrupt:
		return "corrupt"
	default:
		return "missing"
	}
}

type Result[T any] struct {
	Value  T
	Status Status
	Err    error
}

func (r Result[T]) OK() bool {
	return r.Status == StatusLoaded
}

type Reader interface {
	Raw(ctx context.Context, key string) ([]byte, bool, error)
}

type Writer interface {
	Put(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

type Tx interface {
	Reader
	Writer
}

type Store interface {
	Reader
	// View runs fn against a consistent snapshot.
	View(ctx context.Context, fn func(Reader) error) error
	// Update runs fn in a single transaction; nothing is written if fn fails.
	Update(ctx context.Context, fn func(Tx) error) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Get decodes the document under key. JSON null counts as missing.
func Get[T any](ctx context.Context, r Reader, key string, fallback T) Result[T] {
	raw, ok, err := r.Raw(ctx, key)
	if err != nil {
		return Result[T]{Value: fallback, Status: StatusCorrupt, Err: fmt.Errorf("read %s: %w", key, err)}
	}
	trimmed := bytes.TrimSpace(raw)
	if !ok || len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Result[T]{Value: fallback, Status: StatusMissing}
	}
	var value T
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return Result[T]{Value: fallback, Status: StatusCorrupt, Err: fmt.Errorf("decode %s: %w", key, err)}
	}
	return Result[T]{Value: value, Status: StatusLoaded}
}

// Load is Get without the status.
func Load[T any](ctx context.Context, r Reader, key string, fallback T) T {
	return Get(ctx, r, key, fallback).Value
}

func Set[T any](ctx context.Context, w Writer, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return w.Put(ctx, key, raw)
}
