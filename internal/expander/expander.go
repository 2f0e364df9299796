package expander

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/belphemur/dayscheduler/internal/config"
	"github.com/belphemur/dayscheduler/internal/constants"
	"github.com/belphemur/dayscheduler/internal/days"
	"github.com/belphemur/dayscheduler/internal/logging"
	"github.com/belphemur/dayscheduler/internal/meeting"
	"github.com/belphemur/dayscheduler/internal/recurrence"
	"github.com/belphemur/dayscheduler/internal/signals"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Fields added to output records when the matching option is on
const (
	RRuleField   = "rrule"
	DayNameField = "day_name"
)

// Options controls a single Expander
type Options struct {
	Format    constants.OutputFormat
	Indent    int
	Mode      string
	EmitRRule bool
	DayNames  bool
	Strict    bool
}

// OptionsFromConfig copies the relevant settings out of cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Format:    cfg.Output.Format,
		Indent:    cfg.Output.Indent,
		Mode:      cfg.Expansion.Mode,
		EmitRRule: cfg.Expansion.EmitRRule,
		DayNames:  cfg.Expansion.DayNames,
		Strict:    cfg.Expansion.Strict,
	}
}

// Result summarises one run
type Result struct {
	Inputs  int
	Outputs int
}

// Expander reads meeting records, splits their combined days and writes them back out
type Expander struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a new Expander
func New(opts Options) *Expander {
	if opts.Format == "" {
		opts.Format = constants.OutputFormatJSON
	}
	if opts.Mode == "" {
		opts.Mode = config.ModeExpand
	}
	return &Expander{
		opts:   opts,
		logger: logging.GetLogger("expander"),
	}
}

// Expand decodes a YAML or JSON stream from r, where each document is a single
// mapping or a sequence of mappings, transforms the records and encodes them to w.
// source is only used for logging and the MeetingsExpanded signal.
func (e *Expander) Expand(ctx context.Context, source string, r io.Reader, w io.Writer) (Result, error) {
	runLogger := e.logger.With().
		Str("source", source).
		Str("mode", e.opts.Mode).
		Str("format", e.opts.Format.String()).
		Logger()

	records, err := decodeRecords(r)
	if err != nil {
		runLogger.Error().Err(err).Msg("Failed to read records")
		return Result{}, fmt.Errorf("failed to read records from %s: %w", source, err)
	}
	runLogger.Debug().Int("records", len(records)).Msg("Decoded input records")

	if err := e.check(records, runLogger); err != nil {
		runLogger.Error().Err(err).Msg("Rejected input records")
		return Result{}, fmt.Errorf("failed to validate records from %s: %w", source, err)
	}

	out := e.transform(records, runLogger)

	if err := e.encode(w, out); err != nil {
		runLogger.Error().Err(err).Msg("Failed to write records")
		return Result{}, fmt.Errorf("failed to write records: %w", err)
	}

	result := Result{Inputs: len(records), Outputs: len(out)}
	runLogger.Info().
		Int("inputs", result.Inputs).
		Int("outputs", result.Outputs).
		Msg("Expanded meeting records")

	signals.EmitMeetingsExpanded(ctx, signals.MeetingsExpandedData{
		Source:  source,
		Inputs:  result.Inputs,
		Outputs: result.Outputs,
	})

	return result, nil
}

// check runs meeting.Validate on every record. In strict mode the first
// failure is returned, otherwise failures are only logged.
func (e *Expander) check(records []meeting.Record, logger zerolog.Logger) error {
	for i, record := range records {
		err := meeting.Validate(record)
		if err == nil {
			continue
		}
		if e.opts.Strict {
			return fmt.Errorf("record %d: %w", i, err)
		}
		logger.Warn().Err(err).Int("record", i).Msg("Record failed validation, passing it through")
	}
	return nil
}

// Transform applies the configured mode and decorations to records
func (e *Expander) Transform(records []meeting.Record) []meeting.Record {
	return e.transform(records, e.logger)
}

func (e *Expander) transform(records []meeting.Record, logger zerolog.Logger) []meeting.Record {
	var out []meeting.Record
	switch e.opts.Mode {
	case config.ModeNormalize:
		out = make([]meeting.Record, 0, len(records))
		for _, record := range records {
			out = append(out, normalize(record))
		}
	default:
		out = meeting.ExpandAll(records)
	}

	for _, record := range out {
		e.decorate(record, logger)
	}
	return out
}

func (e *Expander) decorate(record meeting.Record, logger zerolog.Logger) {
	if record == nil {
		return
	}

	if e.opts.EmitRRule {
		rule, err := recurrence.WeeklyRule(record.Day())
		if err == nil {
			record[RRuleField] = rule
		} else {
			logger.Debug().Err(err).Str("day", record.Day()).Msg("No recurrence rule for record")
		}
	}

	if e.opts.DayNames {
		parsed := days.ParseCombinedDays(record.Day())
		if len(parsed) > 0 {
			names := make([]string, len(parsed))
			for i, day := range parsed {
				names[i] = days.DayAbbreviationToFull(day)
			}
			record[DayNameField] = strings.Join(names, ", ")
		}
	}
}

// normalize rewrites the day field to its canonical combined form, e.g.
// "Fri, mon" becomes "MonFri". Records without a recognisable day are kept as is.
func normalize(record meeting.Record) meeting.Record {
	parsed := days.ParseCombinedDays(record.Day())
	if len(parsed) == 0 {
		return record
	}
	copied := maps.Clone(record)
	copied[constants.DayField] = days.CombineDays(parsed)
	return copied
}

func (e *Expander) encode(w io.Writer, records []meeting.Record) error {
	if records == nil {
		records = []meeting.Record{}
	}

	switch e.opts.Format {
	case constants.OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		if e.opts.Indent > 0 {
			enc.SetIndent(e.opts.Indent)
		}
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", strings.Repeat(" ", e.opts.Indent))
		return enc.Encode(records)
	}
}
