package in

import (
	"context"
	"time"

	reportdto "timer/internal/modules/report/dto"
	reportin "timer/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Reindex(ctx context.Context) (reportdto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Summary(ctx context.Context, since time.Time) ([]reportdto.SummaryRow, error) {
	return h.usecase.Summary(ctx, reportdto.SummaryInput{Since: since})
}
