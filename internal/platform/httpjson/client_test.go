package httpjson_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	apperrors "aria/internal/platform/errors"
	"aria/internal/platform/httpjson"
)

func TestPostAndGet(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/echo":
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			_ = json.NewEncoder(w).Encode(map[string]string{"got": in["say"]})
		case "/query":
			_ = json.NewEncoder(w).Encode(map[string]string{"name": r.URL.Query().Get("name")})
		default:
			http.Error(w, "boom", http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := httpjson.New(srv.URL+"/", time.Second)
	var out map[string]string
	if err := c.Post(context.Background(), "/echo", map[string]string{"say": "hi"}, &out); err != nil {
		t.Fatalf("post: %v", err)
	}
	if out["got"] != "hi" {
		t.Fatalf("out = %v", out)
	}
	if err := c.Get(context.Background(), "/query", url.Values{"name": {"a b"}}, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out["name"] != "a b" {
		t.Fatalf("out = %v", out)
	}

	err := c.Post(context.Background(), "/fail", nil, nil)
	var statusErr *httpjson.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusBadGateway {
		t.Fatalf("expected status error, got %v", err)
	}
	if !errors.Is(err, apperrors.ErrServiceUnavailable) {
		t.Fatalf("status error should unwrap to service unavailable")
	}
}

func TestTransportFailureIsServiceUnavailable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	err := httpjson.New(addr, time.Second).Post(context.Background(), "/x", struct{}{}, nil)
	if !errors.Is(err, apperrors.ErrServiceUnavailable) {
		t.Fatalf("expected service unavailable, got %v", err)
	}
}
