package httpapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aria/internal/bootstrap"
	"aria/internal/httpapi"
	"aria/internal/platform/config"
	"aria/internal/platform/store"
)

// reasoningService answers /api/chat with a fixed deadline action.
func reasoningService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chat":
			_, _ = io.WriteString(w, `{"message":"Added it!","action":{"type":"ADD_DEADLINE","data":{"title":"Thesis","subject":"CS","dueDate":"2099-05-01","startDate":"2099-04-01"}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newAPI(t *testing.T) *httpapi.API {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Service.BaseURL = reasoningService(t).URL
	cfg.Service.Timeout = 5 * time.Second
	cfg.Mirror.Kind = config.MirrorNone
	app, err := bootstrap.New(context.Background(), cfg, zap.NewNop(), bootstrap.Options{Store: store.NewMemory(), Alerts: io.Discard})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return httpapi.New(app.Assistant, app.Planner, app.Reminders, zap.NewNop())
}

func do(t *testing.T, h http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()
	rec := do(t, newAPI(t).Router(), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestActionThenContext(t *testing.T) {
	t.Parallel()
	h := newAPI(t).Router()

	rec := do(t, h, http.MethodPost, "/api/actions", `{"type":"ADD_NOTE","data":{"text":"read chapter 3"}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var outcome struct {
		Handled bool `json:"handled"`
		Toast   struct {
			Message string `json:"message"`
		} `json:"toast"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.True(t, outcome.Handled)
	assert.Equal(t, "📝 Note saved!", outcome.Toast.Message)

	rec = do(t, h, http.MethodGet, "/api/context", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var snapshot struct {
		Notes []struct {
			Text string `json:"text"`
		} `json:"notes"`
		InQuiz bool `json:"inQuiz"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	require.Len(t, snapshot.Notes, 1)
	assert.Equal(t, "read chapter 3", snapshot.Notes[0].Text)
}

func TestChatAppliesReturnedAction(t *testing.T) {
	t.Parallel()
	h := newAPI(t).Router()

	rec := do(t, h, http.MethodPost, "/api/chat", `{"message":"my thesis is due May 1"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var reply struct {
		Message string `json:"message"`
		Outcome struct {
			Handled bool `json:"handled"`
		} `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "Added it!", reply.Message)
	assert.True(t, reply.Outcome.Handled)

	rec = do(t, h, http.MethodGet, "/api/deadlines", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deadlines []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deadlines))
	require.Len(t, deadlines, 1)
	assert.Equal(t, "Thesis", deadlines[0].Title)

	rec = do(t, h, http.MethodGet, "/api/chat/history?limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Added it!")
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()
	h := newAPI(t).Router()

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"empty chat", http.MethodPost, "/api/chat", `{"message":"  "}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/actions", `{`, http.StatusBadRequest},
		{"missing type", http.MethodPost, "/api/actions", `{"data":{}}`, http.StatusBadRequest},
		{"no quiz", http.MethodPost, "/api/quiz/next", "", http.StatusConflict},
		{"bad limit", http.MethodGet, "/api/deadlines?limit=abc", "", http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := do(t, h, tc.method, tc.path, tc.body, nil)
		assert.Equal(t, tc.status, rec.Code, tc.name)
	}

	rec := do(t, h, http.MethodPost, "/api/actions", `{"type":"SING_A_SONG"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"handled":false`)
}

func TestReminderRoutes(t *testing.T) {
	t.Parallel()
	h := newAPI(t).Router()

	rec := do(t, h, http.MethodGet, "/api/reminders", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/reminders/run", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Contains(t, report, "delivered")
}

func TestTokenGuard(t *testing.T) {
	t.Parallel()
	api := newAPI(t)
	api.Tokens = httpapi.NewTokenManager("s3cret")
	h := api.Router()

	rec := do(t, h, http.MethodGet, "/api/context", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	token, err := api.Tokens.Issue("cli", time.Hour)
	require.NoError(t, err)
	rec = do(t, h, http.MethodGet, "/api/context", "", http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusOK, rec.Code)

	forged, err := httpapi.NewTokenManager("other").Issue("cli", time.Hour)
	require.NoError(t, err)
	rec = do(t, h, http.MethodGet, "/api/context", "", http.Header{"Authorization": {"Bearer " + forged}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, err := api.Tokens.Issue("cli", -time.Minute)
	require.NoError(t, err)
	rec = do(t, h, http.MethodGet, "/api/context", "", http.Header{"Authorization": {"Bearer " + expired}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	api := newAPI(t)
	api.Origins = []string{"http://localhost:3000"}
	h := api.Router()

	rec := do(t, h, http.MethodOptions, "/api/chat", "", http.Header{"Origin": {"http://localhost:3000"}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, h, http.MethodGet, "/health", "", http.Header{"Origin": {"http://evil.test"}})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
