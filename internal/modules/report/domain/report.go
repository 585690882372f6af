package domain

import "time"

// TaskRecord is the projected form of a task row.
type TaskRecord struct {
	ID        int
	Name      string
	StartTime time.Time
	EndTime   *time.Time
	Duration  time.Duration
	Tags      []string
	Energy    *int
}

// NameSummary aggregates the closed tasks sharing one name.
type NameSummary struct {
	Name          string
	Count         int
	TotalDuration time.Duration
	// AvgEnergy is zero when no task in the group recorded energy.
	AvgEnergy float64
	Rated     int
}

func (s NameSummary) TotalMinutes() int {
	return int(s.TotalDuration / time.Minute)
}
