package in

import (
	"context"

	trackerdto "timer/internal/modules/tracker/dto"
	trackerin "timer/internal/modules/tracker/port/in"
)

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, name string, tags []string) (trackerdto.TaskOutput, error) {
	return h.usecase.Start(ctx, trackerdto.StartInput{Name: name, Tags: tags})
}

func (h CLIHandler) StartInteractive(ctx context.Context) (trackerdto.TaskOutput, error) {
	return h.usecase.StartInteractive(ctx)
}

func (h CLIHandler) AddManual(ctx context.Context) (trackerdto.TaskOutput, error) {
	return h.usecase.AddManual(ctx)
}

// Stop closes the active task. Nil arguments are asked for interactively.
func (h CLIHandler) Stop(ctx context.Context, energy *int, comment *string) (trackerdto.TaskOutput, error) {
	return h.usecase.Stop(ctx, trackerdto.StopInput{Energy: energy, Comment: comment})
}

func (h CLIHandler) Remove(ctx context.Context, id int) (trackerdto.TaskOutput, error) {
	return h.usecase.Remove(ctx, trackerdto.RemoveInput{ID: id})
}

func (h CLIHandler) GetActive(ctx context.Context) (trackerdto.TaskOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) List(ctx context.Context) ([]trackerdto.TaskOutput, error) {
	return h.usecase.List(ctx)
}
