package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/bytecode/codec"
	"github.com/wippyai/bytecode/descriptor"
	"github.com/wippyai/bytecode/errors"
	"github.com/wippyai/bytecode/schema"
)

func newInspectCmd(a *app) *cobra.Command {
	var typeName string
	cmd := &cobra.Command{
		Use:   "inspect [--type TYPE]",
		Short: "describe the wire layout of schema types",
		Long: `Inspect prints, for each type of the schema or only TYPE, its kind, the
range of encoded sizes and its shape fingerprint, followed by the fields of
a product or the tag bytes and payload of every variant of a sum.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.loadFile()
			if err != nil {
				return err
			}
			reg := codec.NewRegistry(codec.WithLogger(a.logger))
			if _, err := schema.Build(f, reg); err != nil {
				return err
			}

			decls := f.Types
			if typeName != "" {
				d, ok := f.Lookup(typeName)
				if !ok {
					return errors.NotFound(errors.PhaseSchema, "type", typeName)
				}
				decls = []schema.TypeDecl{*d}
			}

			p := newPrinter(cmd.OutOrStdout())
			for i := range decls {
				c, err := reg.CodecByName(decls[i].Name)
				if err != nil {
					return err
				}
				if i > 0 {
					p.line("")
				}
				p.describe(&decls[i], c)
			}
			return p.err
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "only describe this type")
	return cmd
}

type printer struct {
	w     io.Writer
	err   error
	name  lipgloss.Style
	kind  lipgloss.Style
	tag   lipgloss.Style
	faint lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	p := &printer{w: w}
	if isTerminal(w) {
		p.name = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
		p.kind = lipgloss.NewStyle().Foreground(lipgloss.Color("228"))
		p.tag = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
		p.faint = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	}
	return p
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) describe(d *schema.TypeDecl, c *codec.Codec) {
	size := fmt.Sprintf("%d bytes", c.MinSize())
	if !c.Fixed() {
		size = fmt.Sprintf("%d..%d bytes", c.MinSize(), c.MaxSize())
	}
	p.line("%s %s, %s, fingerprint %s",
		p.name.Render(c.Name()),
		p.kind.Render(c.Kind().String()),
		size,
		p.faint.Render(c.Fingerprint().Short()),
	)
	if d.Doc != "" {
		p.line("  %s", p.faint.Render("# "+d.Doc))
	}

	if c.Kind() == descriptor.KindProduct {
		for i, f := range d.Product {
			label := f.Name
			if label == "" {
				label = fmt.Sprintf("%d", i)
			}
			p.line("  %s: %s", label, f.Type)
		}
		return
	}

	lo, hi := c.TagWidth()
	if lo == hi {
		p.line("  %s", p.faint.Render(fmt.Sprintf("tag: %d byte(s)", lo)))
	} else {
		p.line("  %s", p.faint.Render(fmt.Sprintf("tag: %d..%d bytes", lo, hi)))
	}
	for _, v := range c.Variants() {
		p.line("  %-6s %s%s", p.tag.Render(formatHex(v.Tag)), v.Name, payload(v))
	}
}

func payload(v codec.VariantInfo) string {
	switch v.Shape {
	case descriptor.ShapeUnit:
		return ""
	case descriptor.ShapeNamed:
		parts := make([]string, len(v.Fields))
		for i := range v.Fields {
			parts[i] = v.Fields[i] + ": " + v.Types[i]
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "(" + strings.Join(v.Types, ", ") + ")"
}
