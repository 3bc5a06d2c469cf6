package out

import (
	"context"
	"fmt"
	"net/url"

	"aria/internal/modules/leetcode/domain"
	leetcodeout "aria/internal/modules/leetcode/port/out"
	"aria/internal/platform/httpjson"
)

type HTTPSource struct {
	client *httpjson.Client
}

func NewHTTPSource(client *httpjson.Client) leetcodeout.StatsSource {
	return &HTTPSource{client: client}
}

func (s *HTTPSource) Fetch(ctx context.Context, username string) (domain.Payload, error) {
	var p domain.Payload
	if err := s.client.Get(ctx, "/api/leetcode", url.Values{"username": {username}}, &p); err != nil {
		return domain.Payload{}, fmt.Errorf("fetch leetcode stats: %w", err)
	}
	return p, nil
}
