package in

import (
	"context"

	"timer/internal/modules/report/dto"
)

type Usecase interface {
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
	Summary(ctx context.Context, input dto.SummaryInput) ([]dto.SummaryRow, error)
}
