package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "timer/internal/platform/errors"
)

const SchemaVersion = 1

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", apperrors.ErrInvalidInput, raw)
	}
}

// Record is one task as it appears in an export.
type Record struct {
	ID              int        `yaml:"id" json:"id"`
	Name            string     `yaml:"name" json:"name"`
	StartTime       time.Time  `yaml:"start_time" json:"start_time"`
	EndTime         *time.Time `yaml:"end_time,omitempty" json:"end_time,omitempty"`
	DurationMinutes int        `yaml:"duration_minutes" json:"duration_minutes"`
	Tags            []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
	Energy          *int       `yaml:"energy,omitempty" json:"energy,omitempty"`
	Comments        *string    `yaml:"comments,omitempty" json:"comments,omitempty"`
}

func (r Record) Active() bool {
	return r.EndTime == nil
}

type Document struct {
	SchemaVersion int      `yaml:"schema_version" json:"schema_version"`
	Tasks         []Record `yaml:"tasks" json:"tasks"`
}

// NoteMeta is the frontmatter of a task note.
type NoteMeta struct {
	SchemaVersion   int      `yaml:"schema_version"`
	ID              int      `yaml:"id"`
	Name            string   `yaml:"name"`
	StartedAt       string   `yaml:"started_at"`
	EndedAt         string   `yaml:"ended_at"`
	DurationMinutes int      `yaml:"duration_minutes"`
	Energy          *int     `yaml:"energy,omitempty"`
	Tags            []string `yaml:"tags,omitempty"`
}
