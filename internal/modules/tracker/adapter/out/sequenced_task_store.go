package out

import (
	"context"

	"timer/internal/modules/tracker/domain"
	trackerout "timer/internal/modules/tracker/port/out"
)

// SequencedTaskStore numbers new tasks above every id an earlier run
// issued, including ids whose rows were removed since.
type SequencedTaskStore struct {
	tasks trackerout.TaskRepository
	seq   trackerout.IDSequence
}

func NewSequencedTaskStore(tasks trackerout.TaskRepository, seq trackerout.IDSequence) *SequencedTaskStore {
	return &SequencedTaskStore{tasks: tasks, seq: seq}
}

func (s *SequencedTaskStore) Load(ctx context.Context) (*domain.TaskList, error) {
	list, err := s.tasks.Load(ctx)
	if err != nil {
		return nil, err
	}
	last, err := s.seq.LastID(ctx)
	if err != nil {
		return nil, err
	}
	list.Reserve(last)
	return list, nil
}

func (s *SequencedTaskStore) Save(ctx context.Context, list *domain.TaskList) error {
	if err := s.tasks.Save(ctx, list); err != nil {
		return err
	}
	return s.seq.Advance(ctx, list.LastID())
}
