package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"timer/internal/modules/export/domain"
	exportout "timer/internal/modules/export/port/out"
)

type ExportService struct {
	notes exportout.NoteStore
}

func NewExportService(notes exportout.NoteStore) *ExportService {
	return &ExportService{notes: notes}
}

func (s *ExportService) Encode(records []domain.Record, format domain.Format) ([]byte, error) {
	if records == nil {
		records = []domain.Record{}
	}
	doc := domain.Document{SchemaVersion: domain.SchemaVersion, Tasks: records}
	switch format {
	case domain.FormatJSON:
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(raw, '\n'), nil
	default:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	}
}

// WriteNotes saves one note per closed record and returns their paths and
// the number of active records left out.
func (s *ExportService) WriteNotes(ctx context.Context, dir string, records []domain.Record) ([]string, int, error) {
	var paths []string
	skipped := 0
	for _, record := range records {
		if record.Active() {
			skipped++
			continue
		}
		path, err := s.notes.Save(ctx, dir, record)
		if err != nil {
			return paths, skipped, err
		}
		paths = append(paths, path)
	}
	return paths, skipped, nil
}
