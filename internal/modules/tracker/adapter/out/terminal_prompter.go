package out

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/manifoldco/promptui"

	"timer/internal/modules/tracker/domain"
	apperrors "timer/internal/platform/errors"
)

// TerminalPrompter asks its questions with promptui. On a terminal the
// category is picked from a select list and invalid answers are asked
// again. Piped input supplies one line per answer and an invalid answer
// fails the command.
type TerminalPrompter struct {
	stdin    io.Reader
	lines    *bufio.Reader
	out      io.Writer
	terminal bool
	loc      *time.Location
}

func NewTerminalPrompter(in io.Reader, out io.Writer, terminal bool, loc *time.Location) *TerminalPrompter {
	if loc == nil {
		loc = time.Local
	}
	return &TerminalPrompter{
		stdin:    in,
		lines:    bufio.NewReader(in),
		out:      out,
		terminal: terminal,
		loc:      loc,
	}
}

func (p *TerminalPrompter) SelectCategory(_ context.Context, categories []domain.Category) (domain.Category, error) {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.String())
	}
	if p.terminal {
		sel := promptui.Select{
			Label:  "Select a task",
			Items:  names,
			Size:   len(names),
			Stdin:  io.NopCloser(p.stdin),
			Stdout: nopWriteCloser{p.out},
		}
		idx, _, err := sel.Run()
		if err != nil {
			return 0, promptError(err)
		}
		return categories[idx], nil
	}

	var menu strings.Builder
	menu.WriteString("Select a task:\n")
	for i, name := range names {
		fmt.Fprintf(&menu, "%d: %s\n", i+1, name)
	}
	if _, err := io.WriteString(p.out, menu.String()); err != nil {
		return 0, fmt.Errorf("write prompt: %w", err)
	}
	answer, err := p.ask("Task number", func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 || n > len(categories) {
			return fmt.Errorf("%w: %q is not a number between 1 and %d", apperrors.ErrInvalidSelection, s, len(categories))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	n, _ := strconv.Atoi(answer)
	return categories[n-1], nil
}

func (p *TerminalPrompter) Day(_ context.Context) (time.Time, error) {
	answer, err := p.ask("Enter task date (YYYY-MM-DD)", func(s string) error {
		_, err := domain.ParseDay(s, p.loc)
		return err
	})
	if err != nil {
		return time.Time{}, err
	}
	return domain.ParseDay(answer, p.loc)
}

func (p *TerminalPrompter) DurationMinutes(_ context.Context) (int, error) {
	answer, err := p.ask(fmt.Sprintf("Enter task duration in minutes (1-%d)", domain.MaxTaskMinutes), minutesBetween(1))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

func (p *TerminalPrompter) Energy(_ context.Context) (int, error) {
	answer, err := p.ask(fmt.Sprintf("How much life energy did this task give you? (%d-%d)", domain.MinEnergy, domain.MaxEnergy), func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < domain.MinEnergy || n > domain.MaxEnergy {
			return fmt.Errorf("%w: %q is not a number between %d and %d", apperrors.ErrInvalidTaskEnergy, s, domain.MinEnergy, domain.MaxEnergy)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

func (p *TerminalPrompter) Comment(_ context.Context) (string, error) {
	return p.ask("How did the task go?", nil)
}

// ConfirmDuration keeps the measured duration when the answer is empty.
func (p *TerminalPrompter) ConfirmDuration(_ context.Context, measured time.Duration) (time.Duration, error) {
	label := fmt.Sprintf("The task took a long time (%d min); can you confirm the actual duration? (N min)", int(measured.Minutes()))
	check := minutesBetween(0)
	answer, err := p.ask(label, func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return check(s)
	})
	if err != nil {
		return 0, err
	}
	if answer == "" {
		return measured, nil
	}
	minutes, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number of minutes", apperrors.ErrInvalidTaskDuration, answer)
	}
	return time.Duration(minutes) * time.Minute, nil
}

// ask runs one promptui prompt. Piped answers are checked before the prompt
// sees them, since a pipe cannot answer again.
func (p *TerminalPrompter) ask(label string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
		Stdout:   nopWriteCloser{p.out},
	}
	if p.terminal {
		prompt.Stdin = io.NopCloser(p.stdin)
	} else {
		line, err := p.nextLine()
		if err != nil {
			return "", err
		}
		if validate != nil {
			if err := validate(line); err != nil {
				return "", err
			}
		}
		prompt.Stdin = io.NopCloser(strings.NewReader(line + "\n"))
	}
	answer, err := prompt.Run()
	if err != nil {
		return "", promptError(err)
	}
	return strings.TrimSpace(answer), nil
}

func (p *TerminalPrompter) nextLine() (string, error) {
	line, err := p.lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: input closed", apperrors.ErrInvalidInput)
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func minutesBetween(lowest int) promptui.ValidateFunc {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < lowest || n > domain.MaxTaskMinutes {
			return fmt.Errorf("%w: %q is not a number of minutes between %d and %d", apperrors.ErrInvalidTaskDuration, s, lowest, domain.MaxTaskMinutes)
		}
		return nil
	}
}

func promptError(err error) error {
	switch {
	case errors.Is(err, promptui.ErrInterrupt):
		return fmt.Errorf("%w: prompt interrupted", apperrors.ErrInvalidInput)
	case errors.Is(err, promptui.ErrEOF):
		return fmt.Errorf("%w: input closed", apperrors.ErrInvalidInput)
	default:
		return fmt.Errorf("prompt: %w", err)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
