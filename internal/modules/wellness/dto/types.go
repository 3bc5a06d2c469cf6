package dto

import "encoding/json"

type GymEntry struct {
	Date  string `json:"date"`
	DidGo bool   `json:"didGo"`
}

type GymStats struct {
	CurrentStreak int `json:"currentStreak"`
	BestStreak    int `json:"bestStreak"`
	ThisWeek      int `json:"thisWeek"`
}

type LogGymInput struct {
	Date  string
	DidGo bool
}

type LogGymOutput struct {
	Entry GymEntry
	Stats GymStats
}

type PeriodEntry struct {
	ID        string `json:"id"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
}

type StartPeriodOutput struct {
	Entry PeriodEntry
	Added bool
}

type EndPeriodOutput struct {
	// Closed is nil when there was no open entry to close.
	Closed  *PeriodEntry
	EndDate string
}

type CycleContext struct {
	Known         bool   `json:"-"`
	LastStart     string `json:"lastStart"`
	NextPredicted string `json:"nextPredicted"`
	DaysUntilNext int    `json:"daysUntilNext"`
	AvgCycle      int    `json:"avgCycle"`
	IsPMS         bool   `json:"isPMS"`
	Phase         string `json:"phase,omitempty"`
}

type cycleAlias CycleContext

// MarshalJSON renders an unknown cycle as {}.
func (c CycleContext) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return []byte("{}"), nil
	}
	return json.Marshal(cycleAlias(c))
}

func (c *CycleContext) UnmarshalJSON(raw []byte) error {
	var v cycleAlias
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*c = CycleContext(v)
	c.Known = c.LastStart != ""
	return nil
}
