package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/bytecode/codec"
	"github.com/wippyai/bytecode/errors"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD580"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newExploreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "decode and encode interactively",
		Long: `Explore lists the schema types. Pick one, then type hex to see it decoded
as you type, or press tab and type a YAML value to see its encoding.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.InvalidInput(errors.PhaseSchema, "explore needs an interactive terminal")
			}
			path, err := a.resolveSchema()
			if err != nil {
				return err
			}
			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}
			codecs := make([]*codec.Codec, 0, reg.Len())
			for _, id := range reg.IDs() {
				c, err := reg.Codec(id)
				if err != nil {
					return err
				}
				codecs = append(codecs, c)
			}
			p := tea.NewProgram(newExploreModel(path, codecs), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

type exploreMode int

const (
	modeSelectType exploreMode = iota
	modeDecode
	modeEncode
)

type exploreModel struct {
	input    textinput.Model
	filename string
	codecs   []*codec.Codec
	selected int
	mode     exploreMode
}

func newExploreModel(filename string, codecs []*codec.Codec) *exploreModel {
	ti := textinput.New()
	ti.Width = 60
	return &exploreModel{
		filename: filename,
		codecs:   codecs,
		input:    ti,
		mode:     modeSelectType,
	}
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if isKey && key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.mode == modeSelectType {
		if !isKey {
			return m, nil
		}
		switch key.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.codecs)-1 {
				m.selected++
			}
		case "enter":
			if len(m.codecs) > 0 {
				m.enter(modeDecode)
				return m, textinput.Blink
			}
		}
		return m, nil
	}

	if isKey {
		switch key.String() {
		case "tab":
			if m.mode == modeDecode {
				m.enter(modeEncode)
			} else {
				m.enter(modeDecode)
			}
			return m, nil
		case "esc":
			m.mode = modeSelectType
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *exploreModel) enter(mode exploreMode) {
	m.mode = mode
	m.input.Reset()
	if mode == modeDecode {
		m.input.Prompt = "hex: "
		m.input.Placeholder = "02 02 07 05 0c"
	} else {
		m.input.Prompt = "value: "
		m.input.Placeholder = "{variant: [fields]}"
	}
	m.input.Focus()
}

func (m *exploreModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bytecode"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if len(m.codecs) == 0 {
		b.WriteString("The schema declares no types.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	switch m.mode {
	case modeSelectType:
		b.WriteString("Select a type:\n\n")
		for i, c := range m.codecs {
			line := m.formatType(c)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • q quit"))

	case modeDecode, modeEncode:
		c := m.codecs[m.selected]
		verb := "Decoding"
		if m.mode == modeEncode {
			verb = "Encoding"
		}
		b.WriteString(fmt.Sprintf("%s %s\n\n", verb, nameStyle.Render(c.Name())))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		if m.mode == modeDecode {
			b.WriteString(liveDecode(c, m.input.Value()))
		} else {
			b.WriteString(liveEncode(c, m.input.Value()))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("tab switch decode/encode • esc back • ctrl+c quit"))
	}

	return b.String()
}

func (m *exploreModel) formatType(c *codec.Codec) string {
	size := fmt.Sprintf("%d", c.MinSize())
	if !c.Fixed() {
		size = fmt.Sprintf("%d..%d", c.MinSize(), c.MaxSize())
	}
	return nameStyle.Render(c.Name()) + " " + kindStyle.Render(c.Kind().String()) + " " + size + " bytes"
}

func liveDecode(c *codec.Codec, input string) string {
	if strings.TrimSpace(input) == "" {
		return helpStyle.Render("type hex bytes")
	}
	src, err := parseHex(input)
	if err != nil {
		return pendingStyle.Render("…")
	}
	v, n, err := c.Decode(src)
	switch {
	case errors.IsIncomplete(err):
		return pendingStyle.Render(fmt.Sprintf("incomplete after %d bytes", len(src)))
	case errors.IsInvalid(err):
		return errorStyle.Render("invalid instruction")
	case err != nil:
		return errorStyle.Render(err.Error())
	}
	p, err := c.Plain(v)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	text, err := renderValue(p)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	out := resultStyle.Render(strings.TrimRight(text, "\n"))
	if n < len(src) {
		out += "\n" + helpStyle.Render(fmt.Sprintf("%d of %d bytes used", n, len(src)))
	}
	return out
}

func liveEncode(c *codec.Codec, input string) string {
	if strings.TrimSpace(input) == "" {
		return helpStyle.Render("type a YAML value")
	}
	v, err := parseValue(input)
	if err != nil {
		return pendingStyle.Render("…")
	}
	out, err := c.Encode(v)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	return resultStyle.Render(formatHex(out))
}
