package domain

import (
	"strings"

	"aria/internal/platform/civil"
)

type Status string

const (
	StatusActive Status = "active"
	StatusDone   Status = "done"
)

const (
	DefaultTitle        = "Untitled"
	DefaultDeadlineType = "assignment"
)

type Deadline struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Subject       string `json:"subject"`
	DueDate       string `json:"dueDate"`
	StartDate     string `json:"startDate"`
	Type          string `json:"type"`
	Status        Status `json:"status"`
	CreatedAt     string `json:"createdAt"`
	CompletedAt   string `json:"completedAt,omitempty"`
	MidwayChecked bool   `json:"midwayChecked"`
}

func (d Deadline) Done() bool {
	return d.Status == StatusDone
}

// Complete marks the deadline done. Completing twice keeps the first date.
func (d *Deadline) Complete(today string) {
	if d.Done() {
		return
	}
	d.Status = StatusDone
	d.CompletedAt = today
}

// DeadlinePatch carries the fields an update may touch; nil means unchanged.
type DeadlinePatch struct {
	Title         *string
	Subject       *string
	DueDate       *string
	StartDate     *string
	Type          *string
	Status        *Status
	MidwayChecked *bool
}

func (p DeadlinePatch) Empty() bool {
	return p.Title == nil && p.Subject == nil && p.DueDate == nil && p.StartDate == nil &&
		p.Type == nil && p.Status == nil && p.MidwayChecked == nil
}

// Apply merges the patch. Status only moves forward: a done deadline stays done.
func (p DeadlinePatch) Apply(d Deadline, today string) Deadline {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Subject != nil {
		d.Subject = *p.Subject
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	if p.StartDate != nil {
		d.StartDate = *p.StartDate
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.MidwayChecked != nil {
		d.MidwayChecked = *p.MidwayChecked
	}
	if p.Status != nil && *p.Status == StatusDone {
		d.Complete(today)
	}
	return d
}

// FindDeadline returns the index of the deadline with the given id, falling
// back to a case-insensitive title match. It returns -1 when nothing matches.
func FindDeadline(deadlines []Deadline, id, title string) int {
	if id != "" {
		for i, d := range deadlines {
			if d.ID == id {
				return i
			}
		}
	}
	if title == "" {
		return -1
	}
	for i, d := range deadlines {
		if strings.EqualFold(d.Title, title) {
			return i
		}
	}
	return -1
}

func ActiveDeadlines(deadlines []Deadline) []Deadline {
	out := make([]Deadline, 0, len(deadlines))
	for _, d := range deadlines {
		if !d.Done() {
			out = append(out, d)
		}
	}
	return out
}

// DueOn lists deadlines whose due date is the given day.
func DueOn(deadlines []Deadline, date string) []Deadline {
	out := []Deadline{}
	for _, d := range deadlines {
		if d.DueDate == date {
			out = append(out, d)
		}
	}
	return out
}

// Midpoint reports the check-in date halfway between start and due.
func (d Deadline) Midpoint() (string, bool) {
	if d.StartDate == "" || d.DueDate == "" {
		return "", false
	}
	mid, err := civil.Midpoint(d.StartDate, d.DueDate)
	if err != nil {
		return "", false
	}
	return mid, true
}
