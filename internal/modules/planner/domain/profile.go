package domain

import "strings"

const (
	DefaultUserName = "friend"
	DefaultUserID   = "default_user"
)

type EmailConfig struct {
	PubKey     string `json:"pubKey"`
	ServiceID  string `json:"serviceId"`
	TemplateID string `json:"templateId"`
	ToEmail    string `json:"toEmail"`
}

func (e EmailConfig) Complete() bool {
	return e.PubKey != "" && e.ServiceID != "" && e.TemplateID != "" && e.ToEmail != ""
}

type Profile struct {
	Name             string      `json:"name"`
	LeetcodeUsername string      `json:"leetcodeUsername"`
	Subjects         []string    `json:"subjects"`
	Email            EmailConfig `json:"emailjs"`
}

func (p Profile) Onboarded() bool {
	return strings.TrimSpace(p.Name) != ""
}

func (p Profile) DisplayName() string {
	if p.Name == "" {
		return DefaultUserName
	}
	return p.Name
}

// UserID identifies the user to the cycle mirror.
func (p Profile) UserID() string {
	if p.Name == "" {
		return DefaultUserID
	}
	return p.Name
}

// AddSubject appends subject unless it is already present (exact match).
func (p *Profile) AddSubject(subject string) bool {
	for _, s := range p.Subjects {
		if s == subject {
			return false
		}
	}
	p.Subjects = append(p.Subjects, subject)
	return true
}

// RemoveSubject drops every case-insensitive match.
func (p *Profile) RemoveSubject(subject string) bool {
	kept := make([]string, 0, len(p.Subjects))
	for _, s := range p.Subjects {
		if !strings.EqualFold(s, subject) {
			kept = append(kept, s)
		}
	}
	removed := len(kept) != len(p.Subjects)
	p.Subjects = kept
	return removed
}

// UniqueSubjects trims and de-duplicates, preserving order.
func UniqueSubjects(subjects []string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, s := range subjects {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
