package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// registerCommands attaches the closed command set to the root. Command
// names must be unique; a duplicate is a wiring mistake and fails at
// startup instead of silently shadowing (or fanning out to) another
// handler. Lookup is exact-match and case-sensitive, so no aliases are
// registered either.
func registerCommands(root *cobra.Command, cmds ...*cobra.Command) {
	seen := make(map[string]bool, len(cmds))
	for _, cmd := range cmds {
		name := cmd.Name()
		if seen[name] {
			panic(fmt.Sprintf("cli: duplicate command registration: %s", name))
		}
		seen[name] = true
		root.AddCommand(cmd)
	}
}
