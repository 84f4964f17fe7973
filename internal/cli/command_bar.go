package cli

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/vocnav/internal/cli/formatter"
)

// commandBar is the ':' prompt at the bottom of the TUI. It runs the same
// cobra commands as the command line and shows their output.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool
	history []string
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 200
	return commandBar{input: ti, state: state}
}

func (c *commandBar) Focus() tea.Cmd {
	c.focused = true
	return c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool { return c.focused }

func (c *commandBar) SetWidth(w int) {
	c.input.Width = max(w-3, 10)
}

func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		c.input.Reset()
		c.Blur()
		return nil
	case tea.KeyEnter:
		line := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.Blur()
		if line == "" {
			return nil
		}
		c.history = append(c.history, line)
		return c.execute(strings.Fields(line))
	case tea.KeyUp:
		if n := len(c.history); n > 0 {
			c.input.SetValue(c.history[n-1])
			c.input.CursorEnd()
		}
		return nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// UpdateNonKey forwards cursor blinks and similar messages.
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	if !c.focused {
		return formatter.Dim(":")
	}
	return formatter.StyleHeader.Render(":") + c.input.View()
}

// execute runs args through a fresh command tree with captured output,
// then rebuilds the screen since the command may have changed state.
func (c *commandBar) execute(args []string) tea.Cmd {
	app := c.state.App
	return func() tea.Msg {
		out := captureCommand(app, args)
		return cmdOutputMsg{output: out}
	}
}

func captureCommand(app *App, args []string) string {
	var buf bytes.Buffer
	root := NewRootCmd(app)
	// The bare command would start a second TUI.
	root.RunE = func(cmd *cobra.Command, _ []string) error { return cmd.Help() }
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		buf.WriteString(formatter.StyleRed.Render("Error: ") + err.Error() + "\n")
	}
	return buf.String()
}
