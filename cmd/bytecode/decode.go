package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/bytecode/codec"
	"github.com/wippyai/bytecode/errors"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		typeName string
		file     string
		all      bool
	)
	cmd := &cobra.Command{
		Use:   "decode --type TYPE [HEX...]",
		Short: "decode hex or binary input",
		Long: `Decode reads one value of TYPE and prints it as YAML.

Input is hex given as arguments ("02 02 07 05 0c" or "0x020207050c"), hex
on standard input, or raw bytes from --file. With --all the input is read as
a stream of values, one YAML document each.

The exit status is 2 when the input ends before a value is complete and 3
when it holds a tag no variant has.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.codec(typeName)
			if err != nil {
				return err
			}
			src, err := readInput(cmd, file, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !all {
				n, err := decodeOne(out, c, src)
				if err != nil {
					return decodeFailure(err)
				}
				if n < len(src) {
					a.logger.Warn("trailing bytes after value",
						zap.String("type", c.Name()),
						zap.Int("consumed", n),
						zap.Int("trailing", len(src)-n),
					)
				}
				return nil
			}

			for off := 0; off < len(src); {
				fmt.Fprintf(out, "--- # offset %d\n", off)
				n, err := decodeOne(out, c, src[off:])
				if err != nil {
					return decodeFailure(errors.New(errors.PhaseDecode, errors.KindOf(err)).
						Detail("at offset %d", off).
						Cause(err).
						Build())
				}
				off += n
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "type to decode")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read raw bytes from `FILE`")
	cmd.Flags().BoolVar(&all, "all", false, "decode consecutive values until the input ends")
	return cmd
}

func decodeOne(w io.Writer, c *codec.Codec, src []byte) (int, error) {
	v, n, err := c.Decode(src)
	if err != nil {
		return 0, err
	}
	p, err := c.Plain(v)
	if err != nil {
		return 0, err
	}
	text, err := renderValue(p)
	if err != nil {
		return 0, err
	}
	_, err = io.WriteString(w, text)
	return n, err
}

func readInput(cmd *cobra.Command, file string, args []string) ([]byte, error) {
	switch {
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseDecode, errors.KindOther, err, "read input")
		}
		return b, nil
	case len(args) > 0:
		return parseHex(args...)
	}
	in, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindOther, err, "read input")
	}
	return parseHex(string(in))
}
