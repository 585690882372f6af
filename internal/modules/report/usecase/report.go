package usecase

import (
	"context"

	"timer/internal/modules/report/domain"
	reportdto "timer/internal/modules/report/dto"
	reportin "timer/internal/modules/report/port/in"
	"timer/internal/modules/report/service"
	trackerdto "timer/internal/modules/tracker/dto"
	trackerin "timer/internal/modules/tracker/port/in"
)

type Interactor struct {
	svc     *service.ReportService
	tracker trackerin.Usecase
}

func NewInteractor(svc *service.ReportService, tracker trackerin.Usecase) reportin.Usecase {
	return &Interactor{svc: svc, tracker: tracker}
}

func (i *Interactor) Reindex(ctx context.Context) (reportdto.ReindexOutput, error) {
	tasks, err := i.tracker.List(ctx)
	if err != nil {
		return reportdto.ReindexOutput{}, err
	}
	records := make([]domain.TaskRecord, 0, len(tasks))
	for _, task := range tasks {
		records = append(records, toRecord(task))
	}
	if err := i.svc.Reindex(ctx, records); err != nil {
		return reportdto.ReindexOutput{}, err
	}
	return reportdto.ReindexOutput{Indexed: len(records)}, nil
}

// Summary rebuilds the projection from the task file and then aggregates it,
// so the report never lags behind the file.
func (i *Interactor) Summary(ctx context.Context, input reportdto.SummaryInput) ([]reportdto.SummaryRow, error) {
	if _, err := i.Reindex(ctx); err != nil {
		return nil, err
	}
	summaries, err := i.svc.Summary(ctx, input.Since)
	if err != nil {
		return nil, err
	}
	out := make([]reportdto.SummaryRow, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, reportdto.SummaryRow{
			Name:         s.Name,
			Count:        s.Count,
			TotalMinutes: s.TotalMinutes(),
			AvgEnergy:    s.AvgEnergy,
			Rated:        s.Rated,
		})
	}
	return out, nil
}

func toRecord(task trackerdto.TaskOutput) domain.TaskRecord {
	return domain.TaskRecord{
		ID:        task.ID,
		Name:      task.Name,
		StartTime: task.StartTime,
		EndTime:   task.EndTime,
		Duration:  task.Duration,
		Tags:      task.Tags,
		Energy:    task.Energy,
	}
}
