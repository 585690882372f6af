package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrTaskAlreadyActive   = errors.New("task already active")
	ErrNoActiveTasks       = errors.New("no active tasks")
	ErrInvalidTaskID       = errors.New("invalid task id")
	ErrInvalidTaskName     = errors.New("invalid task name")
	ErrInvalidTaskDuration = errors.New("invalid task duration")
	ErrInvalidTaskTags     = errors.New("invalid task tags")
	ErrInvalidTaskEnergy   = errors.New("invalid task energy")
	ErrInvalidSelection    = errors.New("invalid selection")
)
