package out

import (
	"context"

	"aria/internal/modules/wellness/domain"
	wellnessout "aria/internal/modules/wellness/port/out"
	"aria/internal/platform/httpjson"
)

// HTTPMirror posts period events to the assistant backend, which forwards
// them to its hosted database.
type HTTPMirror struct {
	client *httpjson.Client
}

func NewHTTPMirror(client *httpjson.Client) wellnessout.CycleMirror {
	return &HTTPMirror{client: client}
}

func (m *HTTPMirror) LogStart(ctx context.Context, start domain.MirrorStart) error {
	return m.client.Post(ctx, "/api/period/log-start", start, nil)
}

func (m *HTTPMirror) LogEnd(ctx context.Context, end domain.MirrorEnd) error {
	return m.client.Post(ctx, "/api/period/log-end", end, nil)
}

type NopMirror struct{}

func NewNopMirror() wellnessout.CycleMirror {
	return NopMirror{}
}

func (NopMirror) LogStart(context.Context, domain.MirrorStart) error { return nil }
func (NopMirror) LogEnd(context.Context, domain.MirrorEnd) error     { return nil }
