package domain

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	DefaultQuizType       = "mixed"
	DefaultCount          = 5
	MaxCount              = 10
	DefaultHistorySubject = "Mixed"
)

var questionMarker = regexp.MustCompile(`^Q\d+\.`)

// Request asks the question source for a batch of questions. Context is the
// assistant snapshot and is forwarded untouched.
type Request struct {
	QuizType string `json:"quizType"`
	Count    int    `json:"count"`
	Subject  string `json:"subject"`
	Context  any    `json:"context"`
}

func (r Request) Normalize() Request {
	if strings.TrimSpace(r.QuizType) == "" {
		r.QuizType = DefaultQuizType
	}
	switch {
	case r.Count <= 0:
		r.Count = DefaultCount
	case r.Count > MaxCount:
		r.Count = MaxCount
	}
	return r
}

// RemoteError carries the message a question source reported instead of
// questions.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// ParseQuestions groups non-blank lines under "Qn." markers. Lines before the
// first marker become a question of their own.
func ParseQuestions(raw string) []string {
	questions := []string{}
	cur := ""
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if questionMarker.MatchString(strings.TrimSpace(line)) {
			if cur != "" {
				questions = append(questions, strings.TrimSpace(cur))
			}
			cur = line
			continue
		}
		cur += "\n" + line
	}
	if strings.TrimSpace(cur) != "" {
		questions = append(questions, strings.TrimSpace(cur))
	}
	return questions
}

type Session struct {
	Questions    []string `json:"questions"`
	CurrentIndex int      `json:"currentIndex"`
	Score        int      `json:"score"`
	Total        int      `json:"total"`
	Type         string   `json:"type"`
	Subject      string   `json:"subject"`
	StartedAt    int64    `json:"startedAt"`
}

func NewSession(questions []string, req Request, startedAt int64) Session {
	return Session{
		Questions: questions,
		Total:     len(questions),
		Type:      req.QuizType,
		Subject:   req.Subject,
		StartedAt: startedAt,
	}
}

func (s Session) Current() (string, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return "", false
	}
	return s.Questions[s.CurrentIndex], true
}

// Advance moves to the next question and returns it; false once the last
// question has been passed.
func (s *Session) Advance() (string, bool) {
	if s.CurrentIndex < len(s.Questions) {
		s.CurrentIndex++
	}
	return s.Current()
}

func (s Session) IntroMessage() string {
	first, _ := s.Current()
	return fmt.Sprintf("🎯 Quiz time! %d questions. Let's go!\n\n%s", s.Total, first)
}

type HistoryEntry struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Subject string `json:"subject"`
	Pct     int    `json:"pct"`
}

func Percent(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

func LastN[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return append([]T{}, items...)
	}
	return append([]T{}, items[len(items)-n:]...)
}
