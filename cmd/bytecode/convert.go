package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wippyai/bytecode/codec"
	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/schema"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		to  string
		out string
	)
	cmd := &cobra.Command{
		Use:   "convert --to FORMAT [--out FILE]",
		Short: "rewrite the schema in another format",
		Long: `Convert checks that the schema builds and writes it as yaml, toml, json or
cbor. Without --to the format follows the extension of --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadFile()
			if err != nil {
				return err
			}
			if _, err := schema.Build(f, codec.NewRegistry(codec.WithLogger(a.logger))); err != nil {
				return err
			}
			format, err := outputFormat(to, out)
			if err != nil {
				return err
			}
			return writeSchema(cmd, f, format, out)
		},
	}
	addOutputFlags(cmd.Flags(), &to, &out)
	return cmd
}

// addOutputFlags registers --to and --out for commands that write a schema.
func addOutputFlags(fs *pflag.FlagSet, to, out *string) {
	fs.StringVar(to, "to", "", "output format: "+formatNames())
	fs.StringVarP(out, "out", "o", "", "write to `FILE` instead of standard output")
}

func outputFormat(to, out string) (schema.Format, error) {
	switch {
	case to != "":
		return schema.ParseFormat(to)
	case out != "":
		return schema.FormatOf(out)
	}
	return "", errors.InvalidInput(errors.PhaseSchema, "--to or --out is required")
}

func writeSchema(cmd *cobra.Command, f *schema.File, format schema.Format, out string) error {
	data, err := schema.Marshal(f, format)
	if err != nil {
		return err
	}
	if out == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(errors.PhaseSchema, errors.KindOther, err, "write "+out)
	}
	return nil
}

func formatNames() string {
	names := make([]string, len(schema.Formats))
	for i, f := range schema.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
