package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard/component"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/route"
)

// Script is a replayable routing session.
type Script struct {
	Components []ComponentSpec `yaml:"components"`
	Routes     []string        `yaml:"routes"`
	Steps      []Step          `yaml:"steps"`
}

// ComponentSpec declares a traced component.
type ComponentSpec struct {
	Namespace   string `yaml:"namespace"`
	Name        string `yaml:"name"`         // label in the trace, defaults to the namespace
	DeclineOpen bool   `yaml:"decline_open"` // Open returns false
}

// Step is one action. Exactly one action field must be set.
type Step struct {
	To       string     `yaml:"to"`
	Reload   string     `yaml:"reload"`
	Close    string     `yaml:"close"`
	Refresh  string     `yaml:"refresh"`
	Save     string     `yaml:"save"`
	Restore  string     `yaml:"restore"`
	Back     string     `yaml:"back"`
	Shortcut string     `yaml:"shortcut"`
	Args     route.Args `yaml:"args"`
	Expect   *Expect    `yaml:"expect"`
}

// Expect asserts router state after the step.
type Expect struct {
	Is     string     `yaml:"is"`
	Args   route.Args `yaml:"args"`
	PartOf string     `yaml:"part_of"`
	Closed string     `yaml:"closed"` // container with no current route
}

func (s Step) action() (name, target string, err error) {
	set := 0
	for _, a := range []struct{ name, value string }{
		{"to", s.To}, {"reload", s.Reload}, {"close", s.Close}, {"refresh", s.Refresh},
		{"save", s.Save}, {"restore", s.Restore}, {"back", s.Back}, {"shortcut", s.Shortcut},
	} {
		if a.value != "" {
			set++
			name, target = a.name, a.value
		}
	}
	switch {
	case set == 0 && s.Expect != nil:
		return "expect", "", nil
	case set != 1:
		return "", "", fmt.Errorf("step must have exactly one action, has %d", set)
	}
	return name, target, nil
}

// LoadScript reads and validates a YAML script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if len(s.Components) == 0 {
		return nil, fmt.Errorf("script declares no components")
	}
	for i, step := range s.Steps {
		if _, _, err := step.action(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// traced is a component that reports each lifecycle call.
type traced struct {
	component.Base
	name        string
	declineOpen bool
	emit        func(string)
}

func (c *traced) Open() bool {
	if c.declineOpen {
		c.emit(c.name + ".open -> declined")
		return false
	}
	c.emit(c.name + ".open")
	return true
}

func (c *traced) Close()        { c.emit(c.name + ".close") }
func (c *traced) Inactivate()   { c.emit(c.name + ".inactivate") }
func (c *traced) OnCloseRoute() { c.emit(c.name + ".onCloseRoute") }

func (c *traced) OnRoute(args route.Args) {
	c.emit(fmt.Sprintf("%s.onRoute(%v)", c.name, map[string]any(args)))
}
