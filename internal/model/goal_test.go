package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGoalType(t *testing.T) {
	tests := []struct {
		in   string
		want GoalType
		ok   bool
	}{
		{"short-term", GoalTypeShortTerm, true},
		{"long-term", GoalTypeLongTerm, true},
		{"Long-Term", "", false},
		{"", "", false},
		{"mid-term", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseGoalType(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestGoal_InputRoundTrip(t *testing.T) {
	goal := &Goal{Title: "Learn Spanish", Type: GoalTypeLongTerm, Measurable: "B1 exam"}

	in := goal.Input()

	assert.Equal(t, "Learn Spanish", in.Title)
	assert.Equal(t, "long-term", in.Type)
	assert.Equal(t, "B1 exam", in.Measurable)
	assert.True(t, goal.HasSMART())
	assert.False(t, (&Goal{}).HasSMART())
}
