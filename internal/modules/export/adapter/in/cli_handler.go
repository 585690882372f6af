package in

import (
	"context"

	exportdto "timer/internal/modules/export/dto"
	exportin "timer/internal/modules/export/port/in"
)

type CLIHandler struct {
	usecase exportin.Usecase
}

func NewCLIHandler(usecase exportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Document(ctx context.Context, format string) (exportdto.DocumentOutput, error) {
	return h.usecase.Document(ctx, exportdto.DocumentInput{Format: format})
}

func (h CLIHandler) WriteNotes(ctx context.Context, dir string) (exportdto.NotesOutput, error) {
	return h.usecase.WriteNotes(ctx, exportdto.NotesInput{Dir: dir})
}
