package out

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"timer/internal/modules/tracker/domain"
)

const (
	csvTimeLayout = "2006-01-02 15:04:05.000000 -0700"

	legacyFieldCount = 7
	fieldCount       = 8
)

var (
	csvHeader = []string{"id", "name", "start_time", "end_time", "duration", "tags", "energy", "comments"}

	// Older files carry nanosecond fractions and a colon in the offset.
	csvReadLayouts = []string{
		"2006-01-02 15:04:05.999999999 -0700",
		"2006-01-02 15:04:05.999999999 -07:00",
	}
)

func encodeTasks(w io.Writer, tasks []domain.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, task := range tasks {
		if err := cw.Write(encodeTask(task)); err != nil {
			return fmt.Errorf("write task %d: %w", task.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeTask(task domain.Task) []string {
	record := make([]string, fieldCount)
	record[0] = strconv.Itoa(task.ID)
	record[1] = task.Name
	record[2] = task.StartTime.Format(csvTimeLayout)
	if task.EndTime != nil {
		record[3] = task.EndTime.Format(csvTimeLayout)
	}
	record[4] = strconv.FormatInt(int64(task.Duration/time.Second), 10)
	record[5] = strings.Join(task.Tags, ",")
	if task.Energy != nil {
		record[6] = strconv.Itoa(*task.Energy)
	}
	if task.Comments != nil {
		record[7] = *task.Comments
	}
	return record
}

// decodeTasks reads rows in file order. Short rows are skipped with a
// warning; a row whose fields cannot be parsed, or whose id repeats an
// earlier row, fails the whole load.
func decodeTasks(r io.Reader, logger *slog.Logger) ([]domain.Task, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	var tasks []domain.Task
	seen := make(map[int]int)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return tasks, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read task file: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if isHeader(record) || isBlank(record) {
			continue
		}
		if len(record) < legacyFieldCount {
			logger.Warn("skipping short task row", "line", line, "fields", len(record))
			continue
		}
		task, err := decodeTask(record)
		if err != nil {
			return nil, fmt.Errorf("task file line %d: %w", line, err)
		}
		if first, dup := seen[task.ID]; dup {
			return nil, fmt.Errorf("task file line %d: id %d already used on line %d", line, task.ID, first)
		}
		seen[task.ID] = line
		tasks = append(tasks, task)
	}
}

func decodeTask(record []string) (domain.Task, error) {
	id, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return domain.Task{}, fmt.Errorf("parse id %q: %w", record[0], err)
	}
	start, err := parseTime(record[2])
	if err != nil {
		return domain.Task{}, fmt.Errorf("parse start_time: %w", err)
	}
	task := domain.Task{
		ID:        id,
		Name:      record[1],
		StartTime: start,
		Tags:      domain.ParseTags(record[5]),
	}
	if raw := strings.TrimSpace(record[3]); raw != "" {
		end, err := parseTime(raw)
		if err != nil {
			return domain.Task{}, fmt.Errorf("parse end_time: %w", err)
		}
		task.EndTime = &end
	}
	if raw := strings.TrimSpace(record[4]); raw != "" {
		seconds, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.Task{}, fmt.Errorf("parse duration %q: %w", raw, err)
		}
		task.Duration = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(record[6]); raw != "" {
		energy, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Task{}, fmt.Errorf("parse energy %q: %w", raw, err)
		}
		task.Energy = &energy
	}
	if len(record) > legacyFieldCount {
		if comments := strings.TrimRight(record[7], "\r\n"); comments != "" {
			task.Comments = &comments
		}
	}
	return task, nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range csvReadLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.Local(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func isHeader(record []string) bool {
	return strings.EqualFold(strings.TrimSpace(record[0]), csvHeader[0])
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
