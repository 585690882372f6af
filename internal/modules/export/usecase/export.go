package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"timer/internal/modules/export/domain"
	exportdto "timer/internal/modules/export/dto"
	exportin "timer/internal/modules/export/port/in"
	"timer/internal/modules/export/service"
	trackerdto "timer/internal/modules/tracker/dto"
	trackerin "timer/internal/modules/tracker/port/in"
	apperrors "timer/internal/platform/errors"
)

type Interactor struct {
	svc     *service.ExportService
	tracker trackerin.Usecase
}

func NewInteractor(svc *service.ExportService, tracker trackerin.Usecase) exportin.Usecase {
	return &Interactor{svc: svc, tracker: tracker}
}

func (i *Interactor) Document(ctx context.Context, input exportdto.DocumentInput) (exportdto.DocumentOutput, error) {
	format, err := domain.ParseFormat(input.Format)
	if err != nil {
		return exportdto.DocumentOutput{}, err
	}
	records, err := i.records(ctx)
	if err != nil {
		return exportdto.DocumentOutput{}, err
	}
	content, err := i.svc.Encode(records, format)
	if err != nil {
		return exportdto.DocumentOutput{}, err
	}
	return exportdto.DocumentOutput{Format: string(format), Content: content}, nil
}

func (i *Interactor) WriteNotes(ctx context.Context, input exportdto.NotesInput) (exportdto.NotesOutput, error) {
	dir := strings.TrimSpace(input.Dir)
	if dir == "" {
		return exportdto.NotesOutput{}, fmt.Errorf("%w: notes directory is required", apperrors.ErrInvalidInput)
	}
	records, err := i.records(ctx)
	if err != nil {
		return exportdto.NotesOutput{}, err
	}
	paths, skipped, err := i.svc.WriteNotes(ctx, dir, records)
	if err != nil {
		return exportdto.NotesOutput{}, err
	}
	return exportdto.NotesOutput{Paths: paths, Skipped: skipped}, nil
}

func (i *Interactor) records(ctx context.Context) ([]domain.Record, error) {
	tasks, err := i.tracker.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Record, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toRecord(task))
	}
	return out, nil
}

func toRecord(task trackerdto.TaskOutput) domain.Record {
	return domain.Record{
		ID:              task.ID,
		Name:            task.Name,
		StartTime:       task.StartTime,
		EndTime:         task.EndTime,
		DurationMinutes: int(task.Duration / time.Minute),
		Tags:            task.Tags,
		Energy:          task.Energy,
		Comments:        task.Comments,
	}
}
