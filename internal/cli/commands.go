package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/reoring/conform"
	"github.com/reoring/conform/jsonschema"
	"github.com/reoring/conform/source"
)

type inputFlags struct {
	schema string
	value  string
	format string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.schema, "schema", "", "schema document (JSON or YAML)")
	cmd.Flags().StringVar(&f.value, "value", "-", "value document, - for stdin")
	cmd.Flags().StringVar(&f.format, "format", "json", "stdin format (json, yaml)")
	_ = cmd.MarkFlagRequired("schema")
}

func (a *app) load(f *inputFlags) (*conform.Schema, any, error) {
	s, err := source.LoadSchema(f.schema, source.Options{Strict: a.cfg.Strict})
	if err != nil {
		return nil, nil, err
	}
	v, err := a.readValue(f.value, f.format)
	if err != nil {
		return nil, nil, err
	}
	return s, v, nil
}

func newValidateCommand(a *app) *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a value against a schema",
		Long:  `Prints "valid" or one line per failed constraint, and exits with status 1 when the value does not conform.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, v, err := a.load(&in)
			if err != nil {
				return err
			}
			iss := conform.Validate(v, s, a.cfg.Options())
			if iss == nil {
				fmt.Fprintln(a.out, "valid")
				return nil
			}
			for _, it := range iss {
				fmt.Fprintln(a.out, it.String())
			}
			a.log.Warn("value rejected", "schema", in.schema, "value", in.value, "issues", len(iss))
			return ErrInvalid
		},
	}
	in.register(cmd)
	return cmd
}

func newDefaultCommand(a *app) *cobra.Command {
	var (
		in       inputFlags
		output   string
		meta     bool
		metaPath []string
	)
	cmd := &cobra.Command{
		Use:   "default",
		Short: "Fill in schema defaults",
		Long:  `Prints the value with absent or invalid fields replaced by the schema's defaults wherever those defaults are themselves valid.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, v, err := a.load(&in)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") {
				output = a.cfg.Format
			}
			f, err := source.ParseFormat(output)
			if err != nil {
				return err
			}
			if !meta {
				return source.Encode(a.out, conform.GetValidValueOrDefault(s, v, a.cfg.Options()), f)
			}

			dec := conform.GetValidValueOrDefaultWithMeta(s, v, a.cfg.Options())
			pm := dec.Presence
			if len(metaPath) > 0 {
				pm = pm.Filter(metaPath, nil)
			}
			applied := 0
			presence := make(map[string]any, len(pm))
			for _, ptr := range sortedPointers(pm) {
				presence[ptr] = pm[ptr].String()
				if pm[ptr]&conform.PresenceDefaultApplied != 0 {
					applied++
				}
			}
			a.log.Info("defaults resolved", "schema", in.schema, "applied", applied)
			return source.Encode(a.out, map[string]any{"value": dec.Value, "presence": presence}, f)
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, yaml)")
	cmd.Flags().BoolVar(&meta, "meta", false, "also print per-pointer presence flags")
	cmd.Flags().StringSliceVar(&metaPath, "meta-path", nil, "restrict presence output to these pointer prefixes")
	return cmd
}

func newSchemaCommand(a *app) *cobra.Command {
	var (
		path   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the schema as it is enforced",
		Long:  `Loads a schema and prints it back with ignored keywords removed and count bounds rounded, which shows exactly what validate and default apply.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := source.LoadSchema(path, source.Options{Strict: a.cfg.Strict})
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") {
				output = a.cfg.Format
			}
			f, err := source.ParseFormat(output)
			if err != nil {
				return err
			}
			return source.Encode(a.out, jsonschema.Export(s), f)
		},
	}
	cmd.Flags().StringVar(&path, "schema", "", "schema document (JSON or YAML)")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, yaml)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func sortedPointers(pm conform.PresenceMap) []string {
	out := make([]string, 0, len(pm))
	for k := range pm {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
