package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUserNotFound = errors.New("User not found")

// Payload is the GraphQL response relayed by the reasoning service.
type Payload struct {
	Data struct {
		MatchedUser *struct {
			Username    string `json:"username"`
			SubmitStats struct {
				AcSubmissionNum []DifficultyCount `json:"acSubmissionNum"`
			} `json:"submitStats"`
			Profile struct {
				Ranking int `json:"ranking"`
			} `json:"profile"`
		} `json:"matchedUser"`
		AllQuestionsCount []DifficultyCount `json:"allQuestionsCount"`
	} `json:"data"`
	Error string `json:"error"`
}

type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

type Tier struct {
	Solved int
	Total  int
	Pct    int
}

type Stats struct {
	Username string
	Easy     Tier
	Medium   Tier
	Hard     Tier
	Solved   int
	Ranking  int
}

func countFor(list []DifficultyCount, difficulty string) int {
	for _, c := range list {
		if c.Difficulty == difficulty {
			return c.Count
		}
	}
	return 0
}

func tier(solved, total int) Tier {
	t := Tier{Solved: solved, Total: total}
	if total > 0 {
		t.Pct = int(math.Round(float64(solved) / float64(total) * 100))
	}
	return t
}

// Extract reads per-difficulty counts out of the payload.
func Extract(username string, p Payload) (Stats, error) {
	if p.Error != "" {
		return Stats{}, fmt.Errorf("leetcode: %s", p.Error)
	}
	user := p.Data.MatchedUser
	if user == nil {
		return Stats{}, fmt.Errorf("@%s: %w", username, ErrUserNotFound)
	}
	solved := user.SubmitStats.AcSubmissionNum
	all := p.Data.AllQuestionsCount
	s := Stats{
		Username: username,
		Easy:     tier(countFor(solved, "Easy"), countFor(all, "Easy")),
		Medium:   tier(countFor(solved, "Medium"), countFor(all, "Medium")),
		Hard:     tier(countFor(solved, "Hard"), countFor(all, "Hard")),
		Ranking:  user.Profile.Ranking,
	}
	s.Solved = s.Easy.Solved + s.Medium.Solved + s.Hard.Solved
	return s, nil
}

// Analysis is the short coaching blurb shown under the numbers.
func Analysis(s Stats) string {
	if s.Solved == 0 {
		return "No problems solved yet. Time to start grinding! Start with the easy ones to build momentum. You've got this! 💪"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "✦ You've solved %d problems total. ", s.Solved)
	switch {
	case s.Medium.Solved < 20:
		b.WriteString("Focus on building your Medium problem library, it's the bread and butter of interviews. ")
	case s.Medium.Pct < 15:
		fmt.Fprintf(&b, "Your Medium completion rate is at %d%%. Keep pushing! ", s.Medium.Pct)
	}
	if s.Hard.Solved > 10 {
		b.WriteString("Impressive, you're tackling Hard problems! ")
	}
	if s.Hard.Pct < 5 && s.Solved > 30 {
		b.WriteString("Try sprinkling in some Hard problems now, you have the foundation. ")
	}
	b.WriteString("Keep the consistency going! 🎯")
	return b.String()
}
