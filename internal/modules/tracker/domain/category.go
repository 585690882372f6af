package domain

import (
	"fmt"

	apperrors "timer/internal/platform/errors"
)

// Category is one of the predefined task names offered by the add menu.
// Values are the 1-indexed menu positions.
type Category int

const (
	CategoryMeetings Category = iota + 1
	CategoryReading
	CategoryJournaling
	CategoryHobbyCode
	CategoryWorkCode
	CategoryBrowseInternet
	CategoryAnki
	CategoryOther
)

var categoryNames = map[Category]string{
	CategoryMeetings:       "Meetings",
	CategoryReading:        "Reading",
	CategoryJournaling:     "Journaling",
	CategoryHobbyCode:      "Hobby Code",
	CategoryWorkCode:       "Work Code",
	CategoryBrowseInternet: "Browse Internet",
	CategoryAnki:           "Anki",
	CategoryOther:          "Other",
}

func Categories() []Category {
	out := make([]Category, 0, len(categoryNames))
	for c := CategoryMeetings; c <= CategoryOther; c++ {
		out = append(out, c)
	}
	return out
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// CategoryAt maps a 1-indexed menu selection to its category.
func CategoryAt(selection int) (Category, error) {
	c := Category(selection)
	if _, ok := categoryNames[c]; !ok {
		return 0, fmt.Errorf("%w: %d is not between 1 and %d", apperrors.ErrInvalidSelection, selection, len(categoryNames))
	}
	return c, nil
}
