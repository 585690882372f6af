package out

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"timer/internal/modules/export/domain"
	"timer/internal/platform/markdown"
	"timer/internal/platform/slug"
)

const noteTimeLayout = "2006-01-02T15:04:05Z07:00"

// VaultNoteStore writes task notes into a dated folder tree:
// <dir>/YYYY/MM/DD/HHMMSS-<id>-<slug>.md. The id keeps same-name tasks
// that start in the same second, such as manual entries, apart.
type VaultNoteStore struct {
	fs afero.Fs
}

func NewVaultNoteStore(fsys afero.Fs) *VaultNoteStore {
	return &VaultNoteStore{fs: fsys}
}

func (s *VaultNoteStore) Save(_ context.Context, dir string, record domain.Record) (string, error) {
	if record.EndTime == nil {
		return "", fmt.Errorf("task %d is still active", record.ID)
	}
	date := record.StartTime
	noteDir := filepath.Join(dir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := s.fs.MkdirAll(noteDir, 0o755); err != nil {
		return "", fmt.Errorf("create note dir: %w", err)
	}
	path := filepath.Join(noteDir, fmt.Sprintf("%s-%d-%s.md", date.Format("150405"), record.ID, slug.Make(record.Name)))

	meta := domain.NoteMeta{
		SchemaVersion:   domain.SchemaVersion,
		ID:              record.ID,
		Name:            record.Name,
		StartedAt:       record.StartTime.Format(noteTimeLayout),
		EndedAt:         record.EndTime.Format(noteTimeLayout),
		DurationMinutes: record.DurationMinutes,
		Energy:          record.Energy,
		Tags:            record.Tags,
	}
	rendered, err := markdown.RenderFrontmatter(meta, noteBody(record))
	if err != nil {
		return "", err
	}
	if err := afero.WriteFile(s.fs, path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write task note: %w", err)
	}
	return path, nil
}

func noteBody(record domain.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", record.Name)
	fmt.Fprintf(&b, "- Start: %s\n", record.StartTime.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- End: %s\n", record.EndTime.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- Duration: %d minutes\n", record.DurationMinutes)
	if record.Energy != nil {
		fmt.Fprintf(&b, "- Life energy: %d/10\n", *record.Energy)
	}
	if record.Comments != nil && *record.Comments != "" {
		fmt.Fprintf(&b, "\n## Comments\n\n%s\n", *record.Comments)
	}
	return b.String()
}
