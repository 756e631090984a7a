package pages

import (
	"github.com/templui/smartgoals/internal/model"
	"github.com/templui/smartgoals/internal/validation"
)

// GoalForm backs both the add form and the edit form.
type GoalForm struct {
	Action string
	Submit string
	Values model.GoalInput
	Errors validation.Errors
}

type FormField struct {
	Name  string
	Label string
	Hint  string
	Value string
	Error string
}

// SMARTFields lists the optional SMART text areas in display order.
func (f GoalForm) SMARTFields() []FormField {
	return []FormField{
		{Name: "specific", Label: "Specific", Hint: "What exactly do you want to accomplish?", Value: f.Values.Specific, Error: f.Errors.Get("specific")},
		{Name: "measurable", Label: "Measurable", Hint: "How will you know you got there?", Value: f.Values.Measurable, Error: f.Errors.Get("measurable")},
		{Name: "achievable", Label: "Achievable", Hint: "What makes this realistic?", Value: f.Values.Achievable, Error: f.Errors.Get("achievable")},
		{Name: "relevant", Label: "Relevant", Hint: "Why does it matter to you?", Value: f.Values.Relevant, Error: f.Errors.Get("relevant")},
		{Name: "time_bound", Label: "Time-bound", Hint: "By when?", Value: f.Values.TimeBound, Error: f.Errors.Get("time_bound")},
	}
}

func NewGoalForm() GoalForm {
	return GoalForm{
		Action: "/add",
		Submit: "Add goal",
		Values: model.GoalInput{Type: string(model.GoalTypeShortTerm)},
	}
}

func EditGoalForm(goalID string, values model.GoalInput) GoalForm {
	return GoalForm{
		Action: "/edit/" + goalID,
		Submit: "Save changes",
		Values: values,
	}
}

// GoalsData backs the goal list page.
type GoalsData struct {
	Items  []*model.GoalWithCheckins
	Filter model.GoalType // Empty means all goals

	// CheckinErrors holds a failed check-in submission keyed by goal id.
	CheckinErrors map[string]string
	CheckinNotes  map[string]string
}

type FilterOption struct {
	Label  string
	Href   string
	Active bool
}

func (d GoalsData) FilterOptions() []FilterOption {
	options := []FilterOption{{Label: "All", Href: "/goals", Active: d.Filter == ""}}
	for _, t := range model.GoalTypes {
		options = append(options, FilterOption{
			Label:  t.Label(),
			Href:   "/goals?filter=" + string(t),
			Active: d.Filter == t,
		})
	}
	return options
}
