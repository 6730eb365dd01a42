// Package cli implements the conform command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/reoring/conform/i18n"
	"github.com/reoring/conform/internal/config"
	"github.com/reoring/conform/internal/logging"
	"github.com/reoring/conform/source"
)

// ErrInvalid is returned by validate when the value does not conform.
var ErrInvalid = errors.New("value does not conform to schema")

// app carries the state shared by every subcommand of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath     string
	maxDepth       int
	patternTimeout time.Duration
	language       string
	logLevel       string
	strict         bool

	cfg config.Config
	log *slog.Logger
}

// NewRootCommand builds the command tree reading stdin from in and writing
// results to out and logs to errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut, log: logging.NewNop()}
	root := &cobra.Command{
		Use:           "conform",
		Short:         "Validate and default JSON or YAML documents against a schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.IntVar(&a.maxDepth, "max-depth", 0, "maximum schema nesting followed")
	pf.DurationVar(&a.patternTimeout, "pattern-timeout", 0, "time limit for one pattern match")
	pf.StringVar(&a.language, "lang", "", "message language (en, ja)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&a.strict, "strict", false, "reject documents with duplicate keys")

	root.AddCommand(newValidateCommand(a), newDefaultCommand(a), newSchemaCommand(a))
	return root
}

// setup loads the configuration file and applies explicitly set flags on top.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}
	if flags.Changed("pattern-timeout") {
		cfg.PatternTimeout = a.patternTimeout
	}
	if flags.Changed("lang") {
		cfg.Language = a.language
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("strict") {
		cfg.Strict = a.strict
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.New(a.errOut, level)
	i18n.SetLanguage(cfg.Language)
	a.log.Debug("configuration loaded", "config", a.configPath, "max_depth", cfg.MaxDepth, "pattern_timeout", cfg.PatternTimeout, "language", cfg.Language)
	return nil
}

// readValue decodes the document at path; "-" reads stdin in the given format.
func (a *app) readValue(path, format string) (any, error) {
	opt := source.Options{Strict: a.cfg.Strict}
	if path == "-" {
		f, err := source.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		v, err := source.Decode(a.in, f, opt)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return v, nil
	}
	return source.ReadFile(path, opt)
}

// Execute runs the binary and returns its exit code: 0 on success, 1 when the
// value is invalid or the command failed.
func Execute() int {
	root := NewRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, ErrInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}
