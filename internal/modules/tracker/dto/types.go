package dto

import "time"

type StartInput struct {
	Name string
	Tags []string
}

// StopInput carries values given on the command line. Nil fields are asked
// for through the prompter.
type StopInput struct {
	Energy  *int
	Comment *string
}

type RemoveInput struct {
	ID int
}

type TaskOutput struct {
	ID        int
	Name      string
	StartTime time.Time
	EndTime   *time.Time
	Duration  time.Duration
	Tags      []string
	Energy    *int
	Comments  *string
	Active    bool
}
