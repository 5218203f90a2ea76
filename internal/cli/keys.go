package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/switchboard/pkg/switchboard"
	"github.com/BrandonKowalski/switchboard/pkg/switchboard/store"
)

var (
	keysLocale string
	keysJSON   bool
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the configured keyboard shortcuts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := switchboard.New(switchboard.Options{
			ConfigPath: configPath,
			Store:      store.NewMemory(),
			LogLevel:   logLevel(),
		})
		if err != nil {
			return err
		}
		defer session.Close()

		loc := session.Localizer
		if keysLocale != "" {
			loc = session.Catalog.Localizer(keysLocale)
		}
		help := session.Shortcuts.Help(loc)
		out := cmd.OutOrStdout()

		if keysJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(help)
		}

		fmt.Fprintln(out, stepColor.Sprint(loc.Message("shortcuts_title", "Keyboard shortcuts")))
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, line := range help {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", line.Combo, line.Command, line.Description)
		}
		return w.Flush()
	},
}

func init() {
	keysCmd.Flags().StringVar(&keysLocale, "locale", "", "Language for descriptions (overrides the config)")
	keysCmd.Flags().BoolVar(&keysJSON, "json", false, "Output in JSON format")
}
