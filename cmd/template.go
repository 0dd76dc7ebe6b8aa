// =============================================================================
// Asset Import - Template Command
// =============================================================================
//
// COMMAND USAGE:
//   asset-import template --entity phone [--out phone_template.xlsx]
//
// Writes a blank import workbook with the exact header labels the validators
// expect. The office workbook carries an input hint row, so its data starts
// on row 3.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/asset-import/internal/config"
	"github.com/ginjaninja78/asset-import/internal/report"
)

var (
	templateEntity string
	templateOut    string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a blank import workbook for an entity",
	RunE: func(cmd *cobra.Command, args []string) error {
		entity := config.Entity(templateEntity)
		if !entity.Valid() {
			return fmt.Errorf("%w: unknown entity %q", config.ErrInvalidConfig, templateEntity)
		}

		out := templateOut
		if out == "" {
			out = fmt.Sprintf("%s_template.xlsx", entity)
		}
		if err := report.WriteTemplate(out, entity); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Template written to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVar(&templateEntity, "entity", "", "Entity of the template (office, phone, router, tablet)")
	templateCmd.Flags().StringVar(&templateOut, "out", "", "Output path (default <entity>_template.xlsx)")
	templateCmd.MarkFlagRequired("entity")
}
