package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/bytecode/errors"
)

func newEncodeCmd(a *app) *cobra.Command {
	var (
		typeName string
		raw      bool
	)
	cmd := &cobra.Command{
		Use:   "encode --type TYPE [VALUE]",
		Short: "encode a YAML value",
		Long: `Encode writes the wire form of VALUE as hex, or as raw bytes with --raw.
VALUE is read from standard input when omitted or "-".

	bytecode encode --type Instr nop
	bytecode encode --type Instr '{push: 9}'
	bytecode encode --type Instr '{jump: {offset: -2, cond: true}}'
	bytecode encode --type Header '{version: 1, count: 3}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.codec(typeName)
			if err != nil {
				return err
			}

			text := "-"
			if len(args) == 1 {
				text = args[0]
			}
			if text == "-" {
				in, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(errors.PhaseEncode, errors.KindOther, err, "read value")
				}
				text = strings.TrimSpace(string(in))
			}

			v, err := parseValue(text)
			if err != nil {
				return err
			}
			out, err := c.Encode(v)
			if err != nil {
				return err
			}
			a.logger.Debug("encoded value",
				zap.String("type", c.Name()),
				zap.Int("size", len(out)),
			)

			if raw {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatHex(out))
			return err
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "type to encode")
	cmd.Flags().BoolVar(&raw, "raw", false, "write raw bytes instead of hex")
	return cmd
}
