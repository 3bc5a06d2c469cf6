package out_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	wellnessout "aria/internal/modules/wellness/adapter/out"
	"aria/internal/modules/wellness/domain"
	"aria/internal/platform/httpjson"
)

func TestHTTPMirrorPostsEvents(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	got := map[string]map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		got[r.URL.Path] = body
		mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	mirror := wellnessout.NewHTTPMirror(httpjson.New(srv.URL, time.Second))
	ctx := context.Background()
	if err := mirror.LogStart(ctx, domain.MirrorStart{UserID: "Riya", Date: "2024-01-29", Notes: domain.NoteStarted}); err != nil {
		t.Fatalf("log start: %v", err)
	}
	if err := mirror.LogEnd(ctx, domain.MirrorEnd{UserID: "Riya", StartDate: "2024-01-29", EndDate: "2024-02-02"}); err != nil {
		t.Fatalf("log end: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	start := got["/api/period/log-start"]
	if start["userId"] != "Riya" || start["date"] != "2024-01-29" || start["notes"] != "Period started" {
		t.Fatalf("start = %v", start)
	}
	end := got["/api/period/log-end"]
	if end["startDate"] != "2024-01-29" || end["endDate"] != "2024-02-02" {
		t.Fatalf("end = %v", end)
	}
}
