// Package shortcuts maps keyboard combinations to commands.
package shortcuts

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/locale"
)

// ErrInvalidCombo is returned for combos without exactly one non-modifier key.
var ErrInvalidCombo = errors.New("invalid key combo")

// Combo is a normalized key combination.
type Combo struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
	Key   string
}

// ParseCombo parses strings like "ctrl+shift+p" or "Cmd+Alt+L".
func ParseCombo(s string) (Combo, error) {
	var c Combo
	for _, part := range strings.Split(strings.ToLower(strings.TrimSpace(s)), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "ctrl", "control":
			c.Ctrl = true
		case "alt", "option":
			c.Alt = true
		case "shift":
			c.Shift = true
		case "meta", "cmd", "super":
			c.Meta = true
		case "":
			return Combo{}, fmt.Errorf("%w: %q", ErrInvalidCombo, s)
		default:
			if c.Key != "" {
				return Combo{}, fmt.Errorf("%w: %q has more than one key", ErrInvalidCombo, s)
			}
			c.Key = part
		}
	}
	if c.Key == "" {
		return Combo{}, fmt.Errorf("%w: %q has no key", ErrInvalidCombo, s)
	}
	return c, nil
}

// String returns the canonical form, modifiers in ctrl, alt, shift, meta order.
func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	if c.Meta {
		parts = append(parts, "meta")
	}
	return strings.Join(append(parts, c.Key), "+")
}

// Runner executes a command on behalf of a shortcut. Both commands.Base and
// router.Router satisfy it.
type Runner interface {
	RunShortcut(command string, event any) error
}

// Event is handed to the Runner as the triggering event.
type Event struct {
	Combo  Combo
	Source any // the host editor's native key event, if any
}

// Binding ties a combo to a command.
type Binding struct {
	Combo         Combo
	Command       string
	DescriptionID string // locale message ID, optional
}

// Manager dispatches combos to commands.
type Manager struct {
	runner   Runner
	bindings map[string]Binding
	logger   *slog.Logger
}

// NewManager creates a Manager. A nil logger discards output.
func NewManager(runner Runner, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		runner:   runner,
		bindings: make(map[string]Binding),
		logger:   logger,
	}
}

// Bind maps combo to command, replacing an existing binding for the combo.
func (m *Manager) Bind(combo, command, descriptionID string) error {
	c, err := ParseCombo(combo)
	if err != nil {
		return err
	}
	if command == "" {
		return fmt.Errorf("shortcuts: bind %q: empty command", combo)
	}
	m.bindings[c.String()] = Binding{Combo: c, Command: command, DescriptionID: descriptionID}
	return nil
}

// Unbind removes the binding for combo and reports whether there was one.
func (m *Manager) Unbind(combo string) bool {
	c, err := ParseCombo(combo)
	if err != nil {
		return false
	}
	if _, ok := m.bindings[c.String()]; !ok {
		return false
	}
	delete(m.bindings, c.String())
	return true
}

// Handle runs the command bound to combo. handled is false for unbound combos.
func (m *Manager) Handle(combo string, source any) (handled bool, err error) {
	c, err := ParseCombo(combo)
	if err != nil {
		return false, err
	}
	b, ok := m.bindings[c.String()]
	if !ok {
		return false, nil
	}
	m.logger.Debug("shortcut", "combo", c.String(), "command", b.Command)
	if err := m.runner.RunShortcut(b.Command, Event{Combo: c, Source: source}); err != nil {
		return true, fmt.Errorf("shortcuts: %s: %w", c, err)
	}
	return true, nil
}

// Bindings returns every binding ordered by combo.
func (m *Manager) Bindings() []Binding {
	out := make([]Binding, 0, len(m.bindings))
	for _, b := range m.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Combo.String() < out[j].Combo.String()
	})
	return out
}

// HelpLine is one row of the shortcut listing.
type HelpLine struct {
	Combo       string `json:"combo"`
	Command     string `json:"command"`
	Description string `json:"description"`
}

// Help describes every binding in the localizer's language. Bindings without
// a translated description fall back to "Run <command>".
func (m *Manager) Help(loc *locale.Localizer) []HelpLine {
	bindings := m.Bindings()
	lines := make([]HelpLine, 0, len(bindings))
	for _, b := range bindings {
		data := map[string]any{"Command": b.Command}
		fallback := loc.Template("shortcut_undefined", "Run "+b.Command, data)
		desc := fallback
		if b.DescriptionID != "" {
			desc = loc.Template(b.DescriptionID, fallback, data)
		}
		lines = append(lines, HelpLine{Combo: b.Combo.String(), Command: b.Command, Description: desc})
	}
	return lines
}
