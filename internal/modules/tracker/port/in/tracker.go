package in

import (
	"context"

	"timer/internal/modules/tracker/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.TaskOutput, error)
	StartInteractive(ctx context.Context) (dto.TaskOutput, error)
	AddManual(ctx context.Context) (dto.TaskOutput, error)
	Stop(ctx context.Context, input dto.StopInput) (dto.TaskOutput, error)
	Remove(ctx context.Context, input dto.RemoveInput) (dto.TaskOutput, error)
	GetActive(ctx context.Context) (dto.TaskOutput, error)
	List(ctx context.Context) ([]dto.TaskOutput, error)
}
