package domain

import "aria/internal/platform/civil"

type Urgency string

const (
	UrgencyDone    Urgency = "done"
	UrgencyOverdue Urgency = "overdue"
	UrgencyUrgent  Urgency = "urgent"
	UrgencySoon    Urgency = "soon"
	UrgencyFine    Urgency = "fine"
)

const (
	urgentWithinDays = 2
	soonWithinDays   = 7
)

// Classify ranks a deadline relative to today. Dates are YYYY-MM-DD so they
// compare lexically.
func Classify(d Deadline, today string) Urgency {
	if d.Done() {
		return UrgencyDone
	}
	if d.DueDate == "" {
		return UrgencyFine
	}
	if d.DueDate < today {
		return UrgencyOverdue
	}
	daysLeft, err := civil.DaysBetween(today, d.DueDate)
	if err != nil {
		return UrgencyFine
	}
	if daysLeft <= urgentWithinDays {
		return UrgencyUrgent
	}
	if d.StartDate != "" && d.StartDate <= today && daysLeft <= soonWithinDays {
		return UrgencySoon
	}
	return UrgencyFine
}

type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
)

func (u Urgency) Color() Color {
	switch u {
	case UrgencyOverdue, UrgencyUrgent:
		return ColorRed
	case UrgencySoon:
		return ColorYellow
	default:
		return ColorGreen
	}
}
