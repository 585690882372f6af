package in

import (
	"context"

	"timer/internal/modules/export/dto"
)

type Usecase interface {
	Document(ctx context.Context, input dto.DocumentInput) (dto.DocumentOutput, error)
	WriteNotes(ctx context.Context, input dto.NotesInput) (dto.NotesOutput, error)
}
