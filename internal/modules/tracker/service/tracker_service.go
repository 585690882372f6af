package service

import (
	"time"

	"timer/internal/modules/tracker/domain"
	"timer/internal/platform/clock"
)

type TrackerService struct {
	clock clock.Clock
	loc   *time.Location
}

func NewTrackerService(clock clock.Clock, loc *time.Location) *TrackerService {
	if loc == nil {
		loc = time.Local
	}
	return &TrackerService{clock: clock, loc: loc}
}

func (s *TrackerService) Location() *time.Location {
	return s.loc
}

func (s *TrackerService) now() time.Time {
	return s.clock.Now().In(s.loc)
}

func (s *TrackerService) Start(list *domain.TaskList, name string, tags []string) (domain.Task, error) {
	task, err := domain.NewTask(name, tags, s.now())
	if err != nil {
		return domain.Task{}, err
	}
	return list.Append(task)
}

func (s *TrackerService) AddManual(list *domain.TaskList, name string, day time.Time, minutes, energy int, comment string) (domain.Task, error) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	task, err := domain.NewManualTask(name, day, minutes, energy, comment)
	if err != nil {
		return domain.Task{}, err
	}
	return list.Append(task)
}

func (s *TrackerService) Stop(list *domain.TaskList, energy int, comment string, confirm domain.DurationConfirmer) (domain.Task, error) {
	now := s.now()
	return list.StopActive(func(task *domain.Task) error {
		return task.Stop(now, energy, comment, confirm)
	})
}

func (s *TrackerService) Remove(list *domain.TaskList, id int) (domain.Task, error) {
	return list.Remove(id)
}
