package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/templui/smartgoals/internal/model"
)

const (
	maxTitleLength = 200
	maxTextLength  = 2000
	maxNoteLength  = 2000
)

// ValidateGoal checks a submitted goal and returns the normalized input.
// Required fields are trimmed; optional fields are kept as typed.
func ValidateGoal(in model.GoalInput) (model.GoalInput, error) {
	errs := Errors{}

	in.Title = strings.TrimSpace(in.Title)
	in.Type = strings.TrimSpace(in.Type)

	switch {
	case in.Title == "":
		errs.Add("title", "Title is required")
	case utf8.RuneCountInString(in.Title) > maxTitleLength:
		errs.Add("title", "Title is too long (max 200 characters)")
	}

	if in.Type == "" {
		errs.Add("type", "Type is required")
	} else if _, ok := model.ParseGoalType(in.Type); !ok {
		errs.Add("type", "Type must be short-term or long-term")
	}

	optional := map[string]string{
		"description": in.Description,
		"specific":    in.Specific,
		"measurable":  in.Measurable,
		"achievable":  in.Achievable,
		"relevant":    in.Relevant,
		"time_bound":  in.TimeBound,
	}
	for field, value := range optional {
		if utf8.RuneCountInString(value) > maxTextLength {
			errs.Add(field, "Too long (max 2000 characters)")
		}
	}

	return in, errs.Err()
}

// ValidateNote checks a check-in note and returns it trimmed.
func ValidateNote(note string) (string, error) {
	errs := Errors{}

	note = strings.TrimSpace(note)
	switch {
	case note == "":
		errs.Add("note", "Note is required")
	case utf8.RuneCountInString(note) > maxNoteLength:
		errs.Add("note", "Note is too long (max 2000 characters)")
	}

	return note, errs.Err()
}
