package usecase

import (
	"context"
	"fmt"
	"time"

	"timer/internal/modules/tracker/domain"
	trackerdto "timer/internal/modules/tracker/dto"
	trackerin "timer/internal/modules/tracker/port/in"
	trackerout "timer/internal/modules/tracker/port/out"
	"timer/internal/modules/tracker/service"
	apperrors "timer/internal/platform/errors"
)

// Interactor runs one operation per call: load the task file, apply the
// operation, and write the file back when the operation changed it.
type Interactor struct {
	svc      *service.TrackerService
	repo     trackerout.TaskRepository
	prompter trackerout.Prompter
}

func NewInteractor(svc *service.TrackerService, repo trackerout.TaskRepository, prompter trackerout.Prompter) trackerin.Usecase {
	return &Interactor{svc: svc, repo: repo, prompter: prompter}
}

func (i *Interactor) Start(ctx context.Context, input trackerdto.StartInput) (trackerdto.TaskOutput, error) {
	list, err := i.repo.Load(ctx)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	task, err := i.svc.Start(list, input.Name, input.Tags)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	if err := i.repo.Save(ctx, list); err != nil {
		return trackerdto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (i *Interactor) StartInteractive(ctx context.Context) (trackerdto.TaskOutput, error) {
	list, err := i.repo.Load(ctx)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	if err := ensureIdle(list); err != nil {
		return trackerdto.TaskOutput{}, err
	}
	prompter, err := i.requirePrompter()
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	category, err := prompter.SelectCategory(ctx, domain.Categories())
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	task, err := i.svc.Start(list, category.String(), nil)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	if err := i.repo.Save(ctx, list); err != nil {
		return trackerdto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (i *Interactor) AddManual(ctx context.Context) (trackerdto.TaskOutput, error) {
	list, err := i.repo.Load(ctx)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	if err := ensureIdle(list); err != nil {
		return trackerdto.TaskOutput{}, err
	}
	prompter, err := i.requirePrompter()
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	category, err := prompter.SelectCategory(ctx, domain.Categories())
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	day, err := prompter.Day(ctx)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	minutes, err := prompter.DurationMinutes(ctx)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	energy, err := prompter.Energy(ctx)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	comment, err := prompter.Comment(ctx)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	task, err := i.svc.AddManual(list, category.String(), day, minutes, energy, comment)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	if err := i.repo.Save(ctx, list); err != nil {
		return trackerdto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (i *Interactor) Stop(ctx context.Context, input trackerdto.StopInput) (trackerdto.TaskOutput, error) {
	list, err := i.repo.Load(ctx)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	if _, ok := list.Active(); !ok {
		return trackerdto.TaskOutput{}, apperrors.ErrNoActiveTasks
	}

	var energy int
	if input.Energy != nil {
		energy = *input.Energy
	} else {
		prompter, err := i.requirePrompter()
		if err != nil {
			return trackerdto.TaskOutput{}, err
		}
		if energy, err = prompter.Energy(ctx); err != nil {
			return trackerdto.TaskOutput{}, err
		}
	}
	var comment string
	if input.Comment != nil {
		comment = *input.Comment
	} else {
		prompter, err := i.requirePrompter()
		if err != nil {
			return trackerdto.TaskOutput{}, err
		}
		if comment, err = prompter.Comment(ctx); err != nil {
			return trackerdto.TaskOutput{}, err
		}
	}

	var confirm domain.DurationConfirmer
	if i.prompter != nil {
		confirm = func(measured time.Duration) (time.Duration, error) {
			return i.prompter.ConfirmDuration(ctx, measured)
		}
	}
	task, err := i.svc.Stop(list, energy, comment, confirm)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	if err := i.repo.Save(ctx, list); err != nil {
		return trackerdto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (i *Interactor) Remove(ctx context.Context, input trackerdto.RemoveInput) (trackerdto.TaskOutput, error) {
	list, err := i.repo.Load(ctx)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	task, err := i.svc.Remove(list, input.ID)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	if err := i.repo.Save(ctx, list); err != nil {
		return trackerdto.TaskOutput{}, err
	}
	return toOutput(task), nil
}

func (i *Interactor) GetActive(ctx context.Context) (trackerdto.TaskOutput, error) {
	list, err := i.repo.Load(ctx)
	if err != nil {
		return trackerdto.TaskOutput{}, err
	}
	task, ok := list.Active()
	if !ok {
		return trackerdto.TaskOutput{}, apperrors.ErrNoActiveTasks
	}
	return toOutput(task), nil
}

func (i *Interactor) List(ctx context.Context) ([]trackerdto.TaskOutput, error) {
	list, err := i.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	tasks := list.Tasks()
	out := make([]trackerdto.TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toOutput(task))
	}
	return out, nil
}

func (i *Interactor) requirePrompter() (trackerout.Prompter, error) {
	if i.prompter == nil {
		return nil, fmt.Errorf("%w: interactive input is not available", apperrors.ErrInvalidInput)
	}
	return i.prompter, nil
}

// ensureIdle rejects a new task before any prompt is shown.
func ensureIdle(list *domain.TaskList) error {
	if active, ok := list.Active(); ok {
		return fmt.Errorf("%w: %q (id %d) is still running", apperrors.ErrTaskAlreadyActive, active.Name, active.ID)
	}
	return nil
}

func toOutput(task domain.Task) trackerdto.TaskOutput {
	return trackerdto.TaskOutput{
		ID:        task.ID,
		Name:      task.Name,
		StartTime: task.StartTime,
		EndTime:   task.EndTime,
		Duration:  task.Duration,
		Tags:      task.Tags,
		Energy:    task.Energy,
		Comments:  task.Comments,
		Active:    task.Active(),
	}
}
