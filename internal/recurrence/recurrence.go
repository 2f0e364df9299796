// Package recurrence maps canonical day tokens onto RFC 5545 weekdays so a
// combined meeting day can be published as a weekly RRULE.
package recurrence

import (
	"errors"

	"github.com/belphemur/dayscheduler/internal/constants"
	"github.com/belphemur/dayscheduler/internal/days"
	"github.com/teambition/rrule-go"
)

// ErrNoWeekdays is returned when a rule is requested for text with no recognisable day
var ErrNoWeekdays = errors.New("no weekdays found")

var byDay = map[string]rrule.Weekday{
	constants.Mon: rrule.MO,
	constants.Tue: rrule.TU,
	constants.Wed: rrule.WE,
	constants.Thu: rrule.TH,
	constants.Fri: rrule.FR,
	constants.Sat: rrule.SA,
	constants.Sun: rrule.SU,
}

// Weekday returns the RRULE weekday for any surface form days.NormalizeDay accepts
func Weekday(token string) (rrule.Weekday, bool) {
	wd, ok := byDay[days.NormalizeDay(token)]
	return wd, ok
}

// Weekdays converts tokens in order, skipping the ones it does not recognise
func Weekdays(tokens []string) []rrule.Weekday {
	out := make([]rrule.Weekday, 0, len(tokens))
	for _, token := range tokens {
		if wd, ok := Weekday(token); ok {
			out = append(out, wd)
		}
	}
	return out
}

// Option builds a weekly recurrence option for a combined day string
func Option(combined string) (rrule.ROption, error) {
	weekdays := Weekdays(days.ParseCombinedDays(combined))
	if len(weekdays) == 0 {
		return rrule.ROption{}, ErrNoWeekdays
	}
	return rrule.ROption{
		Freq:      rrule.WEEKLY,
		Wkst:      rrule.MO,
		Byweekday: weekdays,
	}, nil
}

// WeeklyRule renders a combined day string such as "MonWedFri" as
// "FREQ=WEEKLY;BYDAY=MO,WE,FR". No DTSTART is attached.
func WeeklyRule(combined string) (string, error) {
	option, err := Option(combined)
	if err != nil {
		return "", err
	}
	return option.RRuleString(), nil
}
