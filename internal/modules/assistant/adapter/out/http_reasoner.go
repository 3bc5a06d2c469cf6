package out

import (
	"context"
	"fmt"

	assistantout "aria/internal/modules/assistant/port/out"
	"aria/internal/platform/httpjson"
)

// HTTPReasoner calls POST /api/chat on the reasoning service.
type HTTPReasoner struct {
	client *httpjson.Client
}

func NewHTTPReasoner(client *httpjson.Client) assistantout.Reasoner {
	return &HTTPReasoner{client: client}
}

func (r *HTTPReasoner) Chat(ctx context.Context, req assistantout.ChatRequest) (assistantout.ChatReply, error) {
	var reply assistantout.ChatReply
	if err := r.client.Post(ctx, "/api/chat", req, &reply); err != nil {
		return assistantout.ChatReply{}, fmt.Errorf("chat: %w", err)
	}
	return reply, nil
}
