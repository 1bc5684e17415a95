package main

import (
	"github.com/spf13/cobra"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/bytecode/codec"
	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/schema"
	"github.com/wippyai/bytecode/witdesc"
)

func newImportWITCmd(a *app) *cobra.Command {
	var (
		to     string
		out    string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "import-wit WIT_JSON",
		Short: "derive a schema from WIT type definitions",
		Long: `Import-wit reads the JSON form of a WIT package (as printed by
"wasm-tools component wit --json") and writes a schema holding every named
type that has a fixed-layout wire form, as YAML unless --to or --out says
otherwise. Types using strings, floats, lists, flags or resource handles are
skipped with a warning, or fail the command with --strict.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := wit.LoadJSON(args[0])
			if err != nil {
				return errors.Wrap(errors.PhaseAdapt, errors.KindOther, err, "load "+args[0])
			}

			ad := witdesc.New(codec.NewRegistry(codec.WithLogger(a.logger)))
			for _, td := range res.TypeDefs {
				if td.Name == nil {
					continue
				}
				if _, err := ad.Register(td); err != nil {
					if strict {
						return err
					}
					a.logger.Warn("skipped WIT type",
						zap.String("name", *td.Name),
						zap.Error(err),
					)
				}
			}

			f, err := schema.FromRegistry(ad.Registry())
			if err != nil {
				return err
			}
			format := schema.FormatYAML
			if to != "" || out != "" {
				if format, err = outputFormat(to, out); err != nil {
					return err
				}
			}
			return writeSchema(cmd, f, format, out)
		},
	}
	addOutputFlags(cmd.Flags(), &to, &out)
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on types without a wire form")
	return cmd
}
