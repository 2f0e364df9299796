package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/belphemur/dayscheduler/internal/config"
	"github.com/belphemur/dayscheduler/internal/constants"
	"github.com/belphemur/dayscheduler/internal/expander"
	"github.com/belphemur/dayscheduler/internal/logging"
	appSignals "github.com/belphemur/dayscheduler/internal/signals"
	"github.com/spf13/pflag"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultConfigPath = "configs/dayscheduler.toml"

func main() {
	isDev := os.Getenv("ENV") != "production"
	logging.Initialize(isDev)
	logger := logging.GetLogger("main")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("Received signal, initiating shutdown")
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("Application run failed")
	}
}

// cliFlags holds the parsed command line
type cliFlags struct {
	configPath string
	input      string
	format     string
	mode       string
	logLevel   string
	rrule      bool
	dayNames   bool
	strict     bool
	help       bool
	version    bool
}

func newFlagSet(f *cliFlags) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(constants.AppName, pflag.ContinueOnError)
	flagSet.StringVarP(&f.configPath, "config", "c", "", "path to TOML config (default: $DAYSCHEDULER_CONFIG or "+defaultConfigPath+")")
	flagSet.StringVarP(&f.input, "input", "i", "-", "YAML or JSON file with meeting records, - for stdin")
	flagSet.StringVarP(&f.format, "format", "f", "", "output format: "+constants.OutputFormatChoices())
	flagSet.StringVarP(&f.mode, "mode", "m", "", "expand (one record per day) or normalize (canonical combined day)")
	flagSet.StringVar(&f.logLevel, "log-level", "", "trace, debug, info, warn, error")
	flagSet.BoolVar(&f.rrule, "rrule", false, "add a weekly RRULE to every output record")
	flagSet.BoolVar(&f.dayNames, "day-names", false, "add the full day name to every output record")
	flagSet.BoolVar(&f.strict, "strict", false, "reject records with undecodable fields or no recognisable day")
	flagSet.BoolVarP(&f.help, "help", "h", false, "show help")
	flagSet.BoolVar(&f.version, "version", false, "print version and exit")
	return flagSet
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	logger := logging.GetLogger("main")

	var flags cliFlags
	flagSet := newFlagSet(&flags)
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stdout, flagSet)
			return nil
		}
		return err
	}

	if flags.help {
		printHelp(stdout, flagSet)
		return nil
	}
	if flags.version {
		fmt.Fprintf(stdout, "%s %s (commit %s, built %s)\n", constants.AppName, version, commit, date)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	configPath := flags.configPath
	if configPath == "" {
		configPath = os.Getenv(config.EnvPrefix + "CONFIG")
	}
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error().Err(err).Str("config_path", configPath).Msg("Failed to load configuration")
		return err
	}

	if err := applyFlags(cfg, flagSet, &flags); err != nil {
		return err
	}

	logging.SetLogLevel(cfg.Service.LogLevel)
	logger.Debug().
		Str("version", version).
		Str("log_level", cfg.Service.LogLevel).
		Str("config_path", configPath).
		Msg("Configuration loaded")

	appSignals.OnMeetingsExpanded(func(ctx context.Context, data appSignals.MeetingsExpandedData) {
		logger.Debug().
			Str("source", data.Source).
			Int("inputs", data.Inputs).
			Int("outputs", data.Outputs).
			Msg("Meetings expanded signal received")
	}, "main")
	defer appSignals.RemoveMeetingsExpandedListener("main")

	source := "stdin"
	in := stdin
	if flags.input != "-" {
		file, err := os.Open(flags.input)
		if err != nil {
			wrappedErr := fmt.Errorf("failed to open input: %w", err)
			logger.Error().Err(wrappedErr).Str("input", flags.input).Msg("Cannot read meeting records")
			return wrappedErr
		}
		defer file.Close()
		source = flags.input
		in = file
	}

	_, err = expander.New(expander.OptionsFromConfig(cfg)).Expand(ctx, source, in, stdout)
	return err
}

// applyFlags overrides configuration with the flags that were set explicitly
func applyFlags(cfg *config.Config, flagSet *pflag.FlagSet, flags *cliFlags) error {
	if flagSet.Changed("format") {
		format, err := constants.ParseOutputFormat(flags.format)
		if err != nil {
			return err
		}
		cfg.Output.Format = format
	}
	if flagSet.Changed("mode") {
		cfg.Expansion.Mode = flags.mode
	}
	if flagSet.Changed("log-level") {
		cfg.Service.LogLevel = flags.logLevel
	}
	if flagSet.Changed("rrule") {
		cfg.Expansion.EmitRRule = flags.rrule
	}
	if flagSet.Changed("day-names") {
		cfg.Expansion.DayNames = flags.dayNames
	}
	if flagSet.Changed("strict") {
		cfg.Expansion.Strict = flags.strict
	}
	return cfg.Validate()
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `dayscheduler expands meeting records whose day field names several
weekdays ("MonWedFri", "Tue / Thu") into one record per day.

Records are read as YAML or JSON, either a single mapping or a list of
mappings, and written as JSON or YAML on stdout.

Usage:
  dayscheduler [flags] [-i records.yaml]

Flags:
%s`, flagSet.FlagUsages())
}
