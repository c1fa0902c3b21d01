package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/controller"
)

// runMenu shows the interactive mode menu and dispatches to the matching
// command runner. Check needs schema flags, so the menu points at the
// subcommand instead of running a flagless diff.
func runMenu(c *cobra.Command, args []string) error {
	choice, err := controller.RunMenu()
	if err != nil {
		return err
	}

	switch choice {
	case controller.MenuScan:
		return runScan(c, args)
	case controller.MenuLint:
		return runLint(c, args)
	case controller.MenuCheck:
		c.Println("check needs schema snapshots; run: gqlscan check --old-admin OLD --new-admin NEW [paths...]")

		return nil
	default:
		return nil
	}
}
