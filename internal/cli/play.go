package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/component"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/store"
)

var (
	stepColor  = color.New(color.FgCyan, color.Bold)
	traceColor = color.New(color.Faint)
	noteColor  = color.New(color.FgYellow)
	okColor    = color.New(color.FgGreen)
	errorColor = color.New(color.FgRed, color.Bold)
)

var playCmd = &cobra.Command{
	Use:   "play <script.yaml>",
	Short: "Replay a routing script and print the lifecycle trace",
	Long: `Replay a routing script and print the lifecycle trace.

The script declares components (by namespace), the routes to register, and a
list of steps. Each step is one of: to, reload, close, refresh, save, restore,
back, shortcut. A step may carry args and an expect block:

  steps:
    - to: panel/editor/style
      args: {id: 5}
      expect: {is: panel/editor/style, args: {id: 5}, part_of: panel/editor}
    - close: panel
      expect: {closed: panel}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := LoadScript(args[0])
		if err != nil {
			return err
		}
		return Play(script, cmd.OutOrStdout())
	},
}

type player struct {
	out     io.Writer
	session *switchboard.Session
}

// Play runs script against a fresh session, writing the trace to out.
func Play(script *Script, out io.Writer) error {
	p := &player{out: out}

	reg := component.NewRegistry()
	for _, spec := range script.Components {
		name := spec.Name
		if name == "" {
			name = spec.Namespace
		}
		c := &traced{name: name, declineOpen: spec.DeclineOpen, emit: p.trace}
		if err := reg.Register(spec.Namespace, c); err != nil {
			return err
		}
	}

	session, err := switchboard.New(switchboard.Options{
		ConfigPath: configPath,
		Registry:   reg,
		Store:      store.NewMemory(),
		LogLevel:   logLevel(),
	})
	if err != nil {
		return err
	}
	defer session.Close()
	p.session = session

	for _, r := range script.Routes {
		if err := session.Router.Register(r, nil); err != nil {
			return err
		}
	}

	for i, step := range script.Steps {
		if err := p.step(step); err != nil {
			fmt.Fprintln(out, errorColor.Sprintf("  error: %v", err))
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	p.summary()
	return nil
}

func (p *player) trace(line string) {
	fmt.Fprintln(p.out, "  "+traceColor.Sprint(line))
}

func (p *player) note(line string) {
	fmt.Fprintln(p.out, "  "+noteColor.Sprint(line))
}

func (p *player) step(step Step) error {
	name, target, err := step.action()
	if err != nil {
		return err
	}

	header := name + " " + target
	if len(step.Args) > 0 {
		header += fmt.Sprintf(" %v", map[string]any(step.Args))
	}
	fmt.Fprintln(p.out, stepColor.Sprint("> "+header))

	r := p.session.Router
	switch name {
	case "to":
		err = r.To(target, step.Args)
	case "reload":
		err = r.Reload(target, step.Args)
	case "close":
		err = r.Close(target)
	case "refresh":
		err = r.RefreshContainer(target)
	case "save":
		err = r.SaveState(target)
	case "restore":
		var ok bool
		ok, err = r.RestoreState(target)
		if err == nil && !ok {
			p.note("nothing saved")
		}
	case "back":
		var ok bool
		ok, err = r.Back(target)
		if err == nil && !ok {
			p.note("no earlier route")
		}
	case "shortcut":
		var handled bool
		handled, err = p.session.Shortcuts.Handle(target, nil)
		if err == nil && !handled {
			p.note("unbound")
		}
	}
	if err != nil {
		return err
	}

	if step.Expect != nil {
		return p.expect(*step.Expect)
	}
	return nil
}

func (p *player) expect(e Expect) error {
	r := p.session.Router
	if e.Is != "" && !r.Is(e.Is, e.Args) {
		return fmt.Errorf("expected %s %v to be current", e.Is, map[string]any(e.Args))
	}
	if e.PartOf != "" && !r.IsPartOf(e.PartOf) {
		return fmt.Errorf("expected %s to be part of the current route", e.PartOf)
	}
	if e.Closed != "" {
		if cur, ok := r.Current(e.Closed); ok {
			return fmt.Errorf("expected %s to be closed, current route is %s", e.Closed, cur)
		}
	}
	p.trace(okColor.Sprint("ok"))
	return nil
}

func (p *player) summary() {
	r := p.session.Router
	containers := r.Containers()
	if len(containers) == 0 {
		fmt.Fprintln(p.out, stepColor.Sprint("= no open containers"))
		return
	}
	for _, c := range containers {
		cur, _ := r.Current(c)
		args, _ := r.CurrentArgs(c)
		fmt.Fprintln(p.out, stepColor.Sprintf("= %s: %s %v", c, cur, map[string]any(args)))
	}
}
