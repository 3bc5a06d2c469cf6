package clock

import (
	"time"

	"aria/internal/platform/civil"
)

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

// FixedDate returns a Fixed clock at noon UTC of the given YYYY-MM-DD date.
// It panics on a malformed date and is meant for tests and fixtures.
func FixedDate(date string) Fixed {
	t, err := civil.Parse(date)
	if err != nil {
		panic(err)
	}
	return Fixed{At: t.Add(12 * time.Hour)}
}

// Today returns the current civil date of c.
func Today(c Clock) string {
	return civil.Format(c.Now())
}
