package recurrence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

func TestWeekday(t *testing.T) {
	tests := []struct {
		token    string
		expected rrule.Weekday
		ok       bool
	}{
		{"Mon", rrule.MO, true},
		{"tuesday", rrule.TU, true},
		{"Wednesday", rrule.WE, true},
		{"thu", rrule.TH, true},
		{" Fri ", rrule.FR, true},
		{"Sat", rrule.SA, true},
		{"Sun", rrule.SU, true},
		{"Holiday", rrule.Weekday{}, false},
		{"", rrule.Weekday{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			wd, ok := Weekday(tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, wd)
			}
		})
	}
}

func TestWeekdays_SkipsUnknown(t *testing.T) {
	assert.Equal(t, []rrule.Weekday{rrule.FR, rrule.MO}, Weekdays([]string{"Fri", "TBA", "Mon"}))
	assert.Empty(t, Weekdays(nil))
}

func TestWeeklyRule(t *testing.T) {
	rule, err := WeeklyRule("Fri, Mon / Wed")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rule, "FREQ=WEEKLY"), "unexpected rule %q", rule)
	assert.Contains(t, rule, "BYDAY=MO,WE,FR")

	// The rule text parses back into the same weekdays
	option, err := rrule.StrToROption(rule)
	require.NoError(t, err)
	assert.Equal(t, rrule.WEEKLY, option.Freq)
	assert.Equal(t, []rrule.Weekday{rrule.MO, rrule.WE, rrule.FR}, option.Byweekday)
}

func TestWeeklyRule_NoDays(t *testing.T) {
	for _, input := range []string{"", "   ", "Online"} {
		rule, err := WeeklyRule(input)
		assert.ErrorIs(t, err, ErrNoWeekdays)
		assert.Empty(t, rule)
	}
}
