package service

import (
	"context"
	"time"

	"timer/internal/modules/report/domain"
	reportout "timer/internal/modules/report/port/out"
)

type ReportService struct {
	projector reportout.TaskIndexProjector
}

func NewReportService(projector reportout.TaskIndexProjector) *ReportService {
	return &ReportService{projector: projector}
}

// Reindex replaces the projection with records.
func (s *ReportService) Reindex(ctx context.Context, records []domain.TaskRecord) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, record := range records {
		if err := s.projector.UpsertTask(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReportService) Summary(ctx context.Context, since time.Time) ([]domain.NameSummary, error) {
	return s.projector.Summary(ctx, since)
}
