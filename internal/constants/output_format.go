package constants

import (
	"fmt"
	"strings"
)

// OutputFormat selects the encoding for expanded records on stdout.
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

func (f OutputFormat) IsValid() bool {
	return f == OutputFormatJSON || f == OutputFormatYAML
}

func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat is case sensitive; "JSON" is rejected.
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(s)
	if !format.IsValid() {
		return "", fmt.Errorf("invalid output format: %s (must be one of %s)", s, OutputFormatChoices())
	}
	return format, nil
}

// GetAllOutputFormats lists the supported formats, default first.
func GetAllOutputFormats() []OutputFormat {
	return []OutputFormat{OutputFormatJSON, OutputFormatYAML}
}

// OutputFormatChoices renders GetAllOutputFormats for flag help and error text,
// e.g. "json, yaml".
func OutputFormatChoices() string {
	formats := GetAllOutputFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}
