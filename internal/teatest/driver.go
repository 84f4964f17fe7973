// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of running a tea.Program, the Driver calls Update directly and
// executes returned commands inline, feeding their messages back in until
// nothing is left. Commands that block (toast expiry ticks, cursor blinks)
// are abandoned after a short timeout.
package teatest

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds how many chained messages one input may produce.
const maxDepth = 100

// cmdTimeout separates message factories, which return at once, from
// timer-backed commands such as tea.Tick.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous harness around a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a command returned tea.QuitMsg.
	Quitting bool

	// Seen records every message fed back from a command, in order.
	Seen []tea.Msg
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init runs the model's Init command to completion.
func (d *Driver) Init() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send feeds msg through Update and runs whatever follows from it.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd, 0)
}

// Press sends each key in turn. Names such as "enter", "esc", "up",
// "space" or "ctrl+c" map to their key types; anything else is typed as
// runes.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		d.Send(KeyMsg(k))
	}
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
	"pgdown":    tea.KeyPgDown,
	"pgup":      tea.KeyPgUp,
	"ctrl+c":    tea.KeyCtrlC,
}

// KeyMsg builds the key message for a key name or literal text.
func KeyMsg(k string) tea.KeyMsg {
	if k == "space" || k == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if t, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// View is the model's raw rendering.
func (d *Driver) View() string { return d.Model.View() }

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// Plain is the rendering with terminal escape sequences removed.
func (d *Driver) Plain() string { return Strip(d.Model.View()) }

// Strip removes terminal escape sequences from s.
func Strip(s string) string { return ansiSeq.ReplaceAllString(s, "") }

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: stopped after %d chained messages", maxDepth)
		return
	}

	msg := callWithTimeout(cmd)
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.run(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Seen = append(d.Seen, msg)
		return
	}
	if isBlink(msg) {
		return
	}

	d.Seen = append(d.Seen, msg)
	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.run(next, depth+1)
}

func callWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages of bubbles, which
// would otherwise chain into further blocking timers.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
