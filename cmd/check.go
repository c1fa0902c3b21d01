package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/adapter"
	m "github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/model"
	"github.com/vipvivek15/GraphQL-Codegen-and-Typecheck-Schema-Validator/internal/schema"
)

var oldAdminFlag string
var newAdminFlag string
var oldStorefrontFlag string
var newStorefrontFlag string
var oldVersionFlag string
var newVersionFlag string

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Diff extracted operations against schema snapshots",
		Long: `Diff extracted operations against old and new schema snapshots and
report deprecated, removed and added fields plus deprecated mutation inputs.
Schema files may be SDL or introspection JSON; at least one surface (admin or
storefront) must be given as an old/new pair. Pattern checks run as well,
with schema findings taking precedence on location collisions.

Exits non-zero when any error-severity finding is produced.`,
		RunE: runCheck,
	}
	cmd.Flags().StringVar(&oldAdminFlag, "old-admin", "", "old admin schema snapshot file")
	cmd.Flags().StringVar(&newAdminFlag, "new-admin", "", "new admin schema snapshot file")
	cmd.Flags().StringVar(&oldStorefrontFlag, "old-storefront", "", "old storefront schema snapshot file")
	cmd.Flags().StringVar(&newStorefrontFlag, "new-storefront", "", "new storefront schema snapshot file")
	cmd.Flags().StringVar(&oldVersionFlag, "old-version", "", "expected version of the old snapshots (YYYY-MM on a quarterly boundary)")
	cmd.Flags().StringVar(&newVersionFlag, "new-version", "", "expected version of the new snapshots (YYYY-MM on a quarterly boundary)")

	return cmd
}

func runCheck(c *cobra.Command, args []string) error {
	surfaces, err := loadSurfaces()
	if err != nil {
		return err
	}

	scanArgs := baseScanArgs(args)
	scanArgs.Surfaces = surfaces
	scanArgs.Patterns = true

	res, err := workflow.Scan(c.Context(), scanArgs)
	if err != nil {
		return err
	}

	if err := ui.DisplayFindings(res.Findings); err != nil {
		return err
	}

	errs := 0

	for _, f := range res.Findings {
		if f.Severity == m.SeverityError {
			errs++
		}
	}

	if errs > 0 {
		return fmt.Errorf("error findings: %d", errs)
	}

	return nil
}

// loadSurfaces builds the surface list from the snapshot flags, validating
// version flags when given.
func loadSurfaces() ([]schema.Surface, error) {
	for _, version := range []string{oldVersionFlag, newVersionFlag} {
		if version != "" && !adapter.ValidVersion(version) {
			return nil, fmt.Errorf("invalid schema version %q", version)
		}
	}

	pairs := []struct {
		name     string
		old, new string
	}{
		{schema.SurfaceAdmin, oldAdminFlag, newAdminFlag},
		{schema.SurfaceStorefront, oldStorefrontFlag, newStorefrontFlag},
	}

	var surfaces []schema.Surface

	for _, pair := range pairs {
		if pair.old == "" && pair.new == "" {
			continue
		}

		if pair.old == "" || pair.new == "" {
			return nil, fmt.Errorf("%s surface needs both old and new snapshots", pair.name)
		}

		sur, err := schemaStore.LoadSurface(pair.name, m.Path(pair.old), m.Path(pair.new))
		if err != nil {
			return nil, err
		}

		surfaces = append(surfaces, sur)
	}

	if len(surfaces) == 0 {
		return nil, fmt.Errorf("check requires at least one old/new schema pair")
	}

	return surfaces, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
