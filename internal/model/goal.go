package model

import (
	"time"
)

type GoalType string

const (
	GoalTypeShortTerm GoalType = "short-term"
	GoalTypeLongTerm  GoalType = "long-term"
)

// GoalTypes lists the accepted goal types in display order.
var GoalTypes = []GoalType{GoalTypeShortTerm, GoalTypeLongTerm}

// ParseGoalType returns the matching type, or false for anything else.
func ParseGoalType(s string) (GoalType, bool) {
	for _, t := range GoalTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

func (t GoalType) Label() string {
	switch t {
	case GoalTypeShortTerm:
		return "Short-term"
	case GoalTypeLongTerm:
		return "Long-term"
	default:
		return string(t)
	}
}

type Goal struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Type        GoalType  `db:"type" json:"type"`
	Specific    string    `db:"specific" json:"specific"`
	Measurable  string    `db:"measurable" json:"measurable"`
	Achievable  string    `db:"achievable" json:"achievable"`
	Relevant    string    `db:"relevant" json:"relevant"`
	TimeBound   string    `db:"time_bound" json:"time_bound"`
	Completed   bool      `db:"completed" json:"completed"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// GoalInput carries the user-editable fields of a goal as submitted by a form.
type GoalInput struct {
	Title       string
	Description string
	Type        string
	Specific    string
	Measurable  string
	Achievable  string
	Relevant    string
	TimeBound   string
}

// Input returns the goal's editable fields, used to prefill the edit form.
func (g *Goal) Input() GoalInput {
	return GoalInput{
		Title:       g.Title,
		Description: g.Description,
		Type:        string(g.Type),
		Specific:    g.Specific,
		Measurable:  g.Measurable,
		Achievable:  g.Achievable,
		Relevant:    g.Relevant,
		TimeBound:   g.TimeBound,
	}
}

// HasSMART reports whether any SMART field is filled in.
func (g *Goal) HasSMART() bool {
	return g.Specific != "" || g.Measurable != "" || g.Achievable != "" || g.Relevant != "" || g.TimeBound != ""
}

type GoalWithCheckins struct {
	*Goal
	Checkins []*Checkin `json:"checkins"`
}
