package domain

import "aria/internal/platform/civil"

// Ledger holds the dedup keys of everything already delivered.
type Ledger struct {
	Notified []string
	Emailed  []string
}

func (l Ledger) has(channel Channel, key string) bool {
	for _, k := range l.keys(channel) {
		if k == key {
			return true
		}
	}
	return false
}

func (l Ledger) keys(channel Channel) []string {
	if channel == ChannelEmail {
		return l.Emailed
	}
	return l.Notified
}

// Pending filters alerts down to those whose key has not fired yet. Duplicate
// candidates collapse to one.
func (l Ledger) Pending(alerts []Alert) []Alert {
	out := []Alert{}
	seen := map[string]bool{}
	for _, a := range alerts {
		id := string(a.Channel) + "\x00" + a.Key
		if seen[id] || l.has(a.Channel, a.Key) {
			continue
		}
		seen[id] = true
		out = append(out, a)
	}
	return out
}

// Record appends the keys of delivered alerts.
func (l *Ledger) Record(delivered []Alert) {
	for _, a := range delivered {
		if l.has(a.Channel, a.Key) {
			continue
		}
		if a.Channel == ChannelEmail {
			l.Emailed = append(l.Emailed, a.Key)
		} else {
			l.Notified = append(l.Notified, a.Key)
		}
	}
}

// Prune drops keys that can never fire again: keys of deadlines that are gone
// or done, and cycle keys predicted more than retentionDays ago. It returns
// how many keys were removed.
func (l *Ledger) Prune(in Inputs, retentionDays int) int {
	active := map[string]bool{}
	for _, d := range in.Deadlines {
		if !d.Done {
			active[d.ID] = true
		}
	}
	cutoff, err := civil.AddDays(in.Today, -retentionDays)
	if err != nil {
		cutoff = ""
	}
	keep := func(key string) bool {
		if id, ok := DeadlineID(key); ok {
			return active[id]
		}
		if date, ok := CycleDate(key); ok && cutoff != "" {
			return date >= cutoff
		}
		return true
	}
	removed := 0
	filter := func(keys []string) []string {
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			if keep(k) {
				out = append(out, k)
			} else {
				removed++
			}
		}
		return out
	}
	l.Notified = filter(l.Notified)
	l.Emailed = filter(l.Emailed)
	return removed
}

// Plan returns every alert due today that has not been delivered before.
func Plan(in Inputs, ledger Ledger) []Alert {
	candidates := append(PlanNotifications(in), PlanEmails(in)...)
	return ledger.Pending(candidates)
}
