package recurrence

import (
	"errors"
	"time"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

var (
	ErrUnknownFrequency = errors.New("unknown recurrence frequency")
	ErrNoTermination    = errors.New("recurrence requires an occurrence count or an end date")
)

// maxOccurrences caps a series so an end date far in the future cannot
// expand into an unbounded insert loop.
const maxOccurrences = 100

type Window struct {
	Start time.Time
	End   time.Time
}

func ParseFrequency(value string) (Frequency, error) {
	switch Frequency(value) {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return Frequency(value), nil
	default:
		return "", ErrUnknownFrequency
	}
}

// step advances a start instant by one frequency unit. Month stepping
// uses time.AddDate, which normalizes overflow days (Jan 31 plus one
// month lands on Mar 2 or Mar 3).
func (f Frequency) step(t time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t
	}
}

// Expand produces the ordered occurrence windows for a series. The
// window duration is fixed from the template and every occurrence keeps
// it. The first window is always the template itself; expansion stops
// when the occurrence count is reached or the next start would pass the
// end date.
func Expand(start, end time.Time, frequency Frequency, count *int, until *time.Time) ([]Window, error) {
	if _, err := ParseFrequency(string(frequency)); err != nil {
		return nil, err
	}

	if count == nil && until == nil {
		return nil, ErrNoTermination
	}

	limit := maxOccurrences
	if count != nil && *count < limit {
		limit = *count
	}

	duration := end.Sub(start)

	windows := []Window{}
	occurrenceStart := start

	for len(windows) < limit {
		if until != nil && occurrenceStart.After(*until) {
			break
		}

		windows = append(windows, Window{
			Start: occurrenceStart,
			End:   occurrenceStart.Add(duration),
		})

		occurrenceStart = frequency.step(occurrenceStart)
	}

	return windows, nil
}
