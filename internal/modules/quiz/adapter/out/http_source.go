package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"aria/internal/modules/quiz/domain"
	quizout "aria/internal/modules/quiz/port/out"
	"aria/internal/platform/httpjson"
)

type quizResponse struct {
	Questions string `json:"questions"`
	Error     string `json:"error"`
}

// HTTPSource calls POST /api/quiz on the reasoning service.
type HTTPSource struct {
	client *httpjson.Client
}

func NewHTTPSource(client *httpjson.Client) quizout.QuestionSource {
	return &HTTPSource{client: client}
}

func (s *HTTPSource) Generate(ctx context.Context, req domain.Request) (string, error) {
	var resp quizResponse
	if err := s.client.Post(ctx, "/api/quiz", req, &resp); err != nil {
		// the service reports configuration problems as {"error": ...} with a 5xx status
		var status *httpjson.StatusError
		if errors.As(err, &status) {
			var body quizResponse
			if json.Unmarshal([]byte(status.Body), &body) == nil && body.Error != "" {
				return "", &domain.RemoteError{Message: body.Error}
			}
		}
		return "", fmt.Errorf("generate quiz: %w", err)
	}
	if resp.Error != "" {
		return "", &domain.RemoteError{Message: resp.Error}
	}
	return resp.Questions, nil
}
