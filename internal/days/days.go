// Package days normalizes, parses, combines and sorts weekday tokens used to
// describe recurring schedule entries such as class meeting days.
//
// Every function is pure and total: unrecognised text is passed through
// unchanged, empty input yields an empty result, and nothing ever returns an
// error. Callers that need strict validation use IsValidDay.
package days

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/belphemur/dayscheduler/internal/constants"
)

// dayMapping maps every accepted surface form to its canonical abbreviation.
// Canonical tokens map to themselves so normalization is idempotent.
var dayMapping = map[string]string{
	"monday":    constants.Mon,
	"tuesday":   constants.Tue,
	"wednesday": constants.Wed,
	"thursday":  constants.Thu,
	"friday":    constants.Fri,
	"saturday":  constants.Sat,
	"sunday":    constants.Sun,

	"Monday":    constants.Mon,
	"Tuesday":   constants.Tue,
	"Wednesday": constants.Wed,
	"Thursday":  constants.Thu,
	"Friday":    constants.Fri,
	"Saturday":  constants.Sat,
	"Sunday":    constants.Sun,

	"mon": constants.Mon,
	"tue": constants.Tue,
	"wed": constants.Wed,
	"thu": constants.Thu,
	"fri": constants.Fri,
	"sat": constants.Sat,
	"sun": constants.Sun,

	constants.Mon: constants.Mon,
	constants.Tue: constants.Tue,
	constants.Wed: constants.Wed,
	constants.Thu: constants.Thu,
	constants.Fri: constants.Fri,
	constants.Sat: constants.Sat,
	constants.Sun: constants.Sun,
}

// fullNames maps a canonical abbreviation to its English day name.
var fullNames = map[string]string{
	constants.Mon: "Monday",
	constants.Tue: "Tuesday",
	constants.Wed: "Wednesday",
	constants.Thu: "Thursday",
	constants.Fri: "Friday",
	constants.Sat: "Saturday",
	constants.Sun: "Sunday",
}

// weeklyRank orders Mon..Sat. Sun has no rank and sorts last.
var weeklyRank = map[string]int{
	constants.Mon: 1,
	constants.Tue: 2,
	constants.Wed: 3,
	constants.Thu: 4,
	constants.Fri: 5,
	constants.Sat: 6,
}

// unranked sorts after every ranked day.
const unranked = 7

var tokenPattern = regexp.MustCompile(`(?i)mon|tue|wed|thu|fri|sat|sun`)

// NormalizeDay trims the input and returns its canonical abbreviation.
// Lookup is exact against the enumerated surface forms; anything else is
// returned trimmed but otherwise unchanged.
func NormalizeDay(input string) string {
	trimmed := strings.TrimSpace(input)
	if canonical, ok := dayMapping[trimmed]; ok {
		return canonical
	}
	return trimmed
}

// CombineDays normalizes each day, drops repeats and concatenates the result
// in first-seen order with no separator, e.g. "MonWedFri". It does not sort.
func CombineDays(days []string) string {
	var sb strings.Builder
	for _, day := range dedupe(mapEach(days, NormalizeDay)) {
		sb.WriteString(day)
	}
	return sb.String()
}

// SplitCombinedDays extracts every weekday token from a combined or delimited
// string ("MonWedFri", "Mon, Wed / Fri") and returns the distinct canonical
// days in weekly order.
func SplitCombinedDays(input string) []string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return []string{}
	}

	matches := tokenPattern.FindAllString(trimmed, -1)
	if len(matches) == 0 {
		return []string{}
	}

	return SortDaysInWeeklyOrder(dedupe(mapEach(matches, normalizeMatch)))
}

// ParseCombinedDays is the lenient entry point used for meeting records. It
// tries SplitCombinedDays first and falls back to HeuristicScan.
func ParseCombinedDays(input string) []string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return []string{}
	}

	if days := SplitCombinedDays(trimmed); len(days) > 0 {
		return days
	}
	return HeuristicScan(input)
}

// HeuristicScan reports which canonical tokens occur anywhere in input,
// ignoring case, in weekly order.
//
// SplitCombinedDays already finds every token this scan can find, so through
// ParseCombinedDays this path only runs when neither finds anything.
func HeuristicScan(input string) []string {
	lower := strings.ToLower(input)
	found := make([]string, 0, len(constants.CanonicalDays()))
	for _, token := range constants.CanonicalDays() {
		if strings.Contains(lower, strings.ToLower(token)) {
			found = append(found, token)
		}
	}
	return SortDaysInWeeklyOrder(dedupe(found))
}

// GetDayMapping returns a copy of the surface form to canonical abbreviation table.
func GetDayMapping() map[string]string {
	return maps.Clone(dayMapping)
}

// GetAllDayAbbreviations returns Mon through Sat. Sun is not part of this list
// even though it is a recognised token.
func GetAllDayAbbreviations() []string {
	return []string{
		constants.Mon,
		constants.Tue,
		constants.Wed,
		constants.Thu,
		constants.Fri,
		constants.Sat,
	}
}

// IsValidDay reports whether the trimmed input is a known surface form or one
// of GetAllDayAbbreviations.
func IsValidDay(input string) bool {
	trimmed := strings.TrimSpace(input)
	if _, ok := dayMapping[trimmed]; ok {
		return true
	}
	return slices.Contains(GetAllDayAbbreviations(), trimmed)
}

// DayAbbreviationToFull maps "Fri" to "Friday". Unknown input is returned as is.
func DayAbbreviationToFull(abbr string) string {
	if full, ok := fullNames[abbr]; ok {
		return full
	}
	return abbr
}

// SortDaysInWeeklyOrder returns a new slice sorted Mon..Sat. Tokens without a
// rank (Sun, unrecognised text) follow in their original relative order.
func SortDaysInWeeklyOrder(days []string) []string {
	sorted := slices.Clone(days)
	if sorted == nil {
		sorted = []string{}
	}
	slices.SortStableFunc(sorted, func(a, b string) int {
		return rank(a) - rank(b)
	})
	return sorted
}

func rank(day string) int {
	if r, ok := weeklyRank[day]; ok {
		return r
	}
	return unranked
}

// normalizeMatch resolves a regex match, falling back to a lowercase lookup
// for mixed-case hits such as "MON" or "fRi".
func normalizeMatch(match string) string {
	if canonical, ok := dayMapping[match]; ok {
		return canonical
	}
	if canonical, ok := dayMapping[strings.ToLower(match)]; ok {
		return canonical
	}
	return match
}

func mapEach(in []string, fn func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}

// dedupe keeps the first occurrence of each value.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
