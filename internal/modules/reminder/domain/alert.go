package domain

import (
	"fmt"
	"strings"

	"aria/internal/platform/civil"
)

type Channel string

const (
	ChannelNotification Channel = "notification"
	ChannelEmail        Channel = "email"
)

const (
	suffixDue        = "_due"
	suffixMid        = "_mid"
	suffixStartEmail = "_start_email"
	suffixDue2Email  = "_due2_email"
	suffixMidEmail   = "_mid_email"
	periodPrefix     = "period_"
)

// deadline suffixes, longest first so "_mid_email" is not read as "_mid".
var deadlineSuffixes = []string{suffixStartEmail, suffixDue2Email, suffixMidEmail, suffixDue, suffixMid}

var cycleThresholds = []int{3, 1, 0}

type Alert struct {
	Key     string
	Channel Channel
	Title   string
	Body    string
}

type DeadlineInfo struct {
	ID            string
	Title         string
	StartDate     string
	DueDate       string
	Done          bool
	MidwayChecked bool
}

type CycleInfo struct {
	Known         bool
	NextPredicted string
	DaysUntilNext int
}

// Inputs is everything the planner needs to decide what is due today.
type Inputs struct {
	Today      string
	Deadlines  []DeadlineInfo
	Cycle      CycleInfo
	EmailReady bool
}

// PlanNotifications lists every notification candidate for today, ignoring
// what has already been sent.
func PlanNotifications(in Inputs) []Alert {
	alerts := []Alert{}
	for _, d := range in.Deadlines {
		if d.Done {
			continue
		}
		if left, err := civil.DaysBetween(in.Today, d.DueDate); err == nil && left >= 0 && left <= 2 {
			body := fmt.Sprintf("\"%s\" is due TODAY!", d.Title)
			if left > 0 {
				body = fmt.Sprintf("\"%s\" is due in %d %s", d.Title, left, plural(left, "day"))
			}
			alerts = append(alerts, Alert{Key: d.ID + suffixDue, Channel: ChannelNotification, Title: "Aria — Deadline Alert", Body: body})
		}
		if d.StartDate != "" && d.DueDate != "" && !d.MidwayChecked {
			if mid, err := civil.Midpoint(d.StartDate, d.DueDate); err == nil && in.Today >= mid {
				alerts = append(alerts, Alert{
					Key:     d.ID + suffixMid,
					Channel: ChannelNotification,
					Title:   "Aria — Midway Check-in",
					Body:    fmt.Sprintf("Did you actually start \"%s\"?", d.Title),
				})
			}
		}
	}
	if in.Cycle.Known && in.Cycle.NextPredicted != "" {
		for _, threshold := range cycleThresholds {
			if in.Cycle.DaysUntilNext != threshold {
				continue
			}
			alerts = append(alerts, Alert{
				Key:     fmt.Sprintf("%s%s_%d", periodPrefix, in.Cycle.NextPredicted, threshold),
				Channel: ChannelNotification,
				Title:   "Aria — Period Reminder",
				Body:    periodMessage(threshold),
			})
		}
	}
	return alerts
}

func periodMessage(threshold int) string {
	switch threshold {
	case 3:
		return "🌸 Your period is expected in 3 days. Get ready!"
	case 1:
		return "🌸 Your period is expected tomorrow. Stay prepared!"
	default:
		return "🌸 Your period might start today or soon. Take it easy!"
	}
}

// PlanEmails lists email candidates. Nothing is planned unless the email
// configuration is complete.
func PlanEmails(in Inputs) []Alert {
	alerts := []Alert{}
	if !in.EmailReady {
		return alerts
	}
	for _, d := range in.Deadlines {
		if d.Done {
			continue
		}
		due := civil.Display(d.DueDate)
		if d.StartDate != "" && d.StartDate == in.Today {
			alerts = append(alerts, Alert{
				Key:     d.ID + suffixStartEmail,
				Channel: ChannelEmail,
				Title:   "⏰ Time to start: " + d.Title,
				Body:    fmt.Sprintf("Today is the start date for \"%s\" (due %s). Time to get going!", d.Title, due),
			})
		}
		if left, err := civil.DaysBetween(in.Today, d.DueDate); err == nil && left == 2 {
			alerts = append(alerts, Alert{
				Key:     d.ID + suffixDue2Email,
				Channel: ChannelEmail,
				Title:   "🔴 Due in 2 days: " + d.Title,
				Body:    fmt.Sprintf("\"%s\" is due on %s. Finish strong!", d.Title, due),
			})
		}
		if d.StartDate != "" && d.DueDate != "" {
			if mid, err := civil.Midpoint(d.StartDate, d.DueDate); err == nil && mid == in.Today {
				alerts = append(alerts, Alert{
					Key:     d.ID + suffixMidEmail,
					Channel: ChannelEmail,
					Title:   "📍 Midway check-in: " + d.Title,
					Body:    fmt.Sprintf("You're halfway through your timeline for \"%s\". Did you actually start? Due: %s.", d.Title, due),
				})
			}
		}
	}
	return alerts
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// DeadlineID extracts the deadline id from a deadline dedup key.
func DeadlineID(key string) (string, bool) {
	for _, suffix := range deadlineSuffixes {
		if strings.HasSuffix(key, suffix) && len(key) > len(suffix) {
			return strings.TrimSuffix(key, suffix), true
		}
	}
	return "", false
}

// CycleDate extracts the predicted date from a period dedup key.
func CycleDate(key string) (string, bool) {
	if !strings.HasPrefix(key, periodPrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(key, periodPrefix)
	idx := strings.LastIndex(rest, "_")
	if idx <= 0 {
		return "", false
	}
	date := rest[:idx]
	if !civil.Valid(date) {
		return "", false
	}
	return date, true
}
