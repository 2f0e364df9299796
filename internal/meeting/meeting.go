// Package meeting expands meeting-like records whose day field holds several
// days into one record per day.
package meeting

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/belphemur/dayscheduler/internal/constants"
	"github.com/belphemur/dayscheduler/internal/days"
	"github.com/go-viper/mapstructure/v2"
)

var (
	// ErrNotARecord is returned when an input element is not a field mapping
	ErrNotARecord = errors.New("not a meeting record")
	// ErrInvalidRecord marks a mapping that fails Validate
	ErrInvalidRecord = errors.New("invalid meeting record")
)

// Record is a single scheduled session. Only the day field is interpreted,
// every other field is carried over verbatim.
type Record map[string]any

// Day returns the record's day field, or "" when absent or not text
func (r Record) Day() string {
	day, _ := r[constants.DayField].(string)
	return day
}

// Expand splits a record whose day field names several days into one shallow
// copy per day, in weekly order. A record with no recognisable day is returned
// unchanged as the only element.
func Expand(record Record) []Record {
	parsed := days.ParseCombinedDays(record.Day())
	if len(parsed) == 0 {
		return []Record{record}
	}

	expanded := make([]Record, 0, len(parsed))
	for _, day := range parsed {
		copied := maps.Clone(record)
		copied[constants.DayField] = day
		expanded = append(expanded, copied)
	}
	return expanded
}

// ExpandAll expands every record, keeping input order
func ExpandAll(records []Record) []Record {
	expanded := make([]Record, 0, len(records))
	for _, record := range records {
		expanded = append(expanded, Expand(record)...)
	}
	return expanded
}

// Meeting is the typed view of a Record
type Meeting struct {
	Day       string         `mapstructure:"day"`
	StartTime string         `mapstructure:"start_time"`
	EndTime   string         `mapstructure:"end_time"`
	Type      string         `mapstructure:"meeting_type"`
	RoomID    int            `mapstructure:"room_id"`
	Extra     map[string]any `mapstructure:",remain"`
}

// Decode converts a record into a Meeting. Scalar fields are weakly typed so
// room_id may arrive as "12" or 12.
func Decode(record Record) (Meeting, error) {
	var m Meeting
	if record == nil {
		return m, ErrNotARecord
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &m,
	})
	if err != nil {
		return m, fmt.Errorf("failed to create meeting decoder: %w", err)
	}

	if err := decoder.Decode(map[string]any(record)); err != nil {
		return m, fmt.Errorf("failed to decode meeting: %w", err)
	}
	return m, nil
}

// Days returns the individual days of the meeting in weekly order
func (m Meeting) Days() []string {
	return days.ParseCombinedDays(m.Day)
}

// Validate checks that a record decodes into a Meeting and that a non-empty
// day field names at least one weekday. Expand itself never needs this.
func Validate(record Record) error {
	m, err := Decode(record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if strings.TrimSpace(m.Day) != "" && len(m.Days()) == 0 {
		return fmt.Errorf("%w: day %q names no weekday", ErrInvalidRecord, m.Day)
	}
	return nil
}
