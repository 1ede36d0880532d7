package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/loteria/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a picture directory",
	Long: `Validate checks that a picture directory is ready for generate. It verifies
the input directory structure, that the number of calling cards matches the
configuration and that they share one size, that the requested game cards can
all be distinct, and that there are enough game card templates to frame them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		v := validator.NewValidator(cfg)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "✅ Picture directory '%s' is ready.\n", cfg.PicDir)
		} else {
			fmt.Fprintf(out, "❌ Picture directory '%s' has %d validation errors:\n", cfg.PicDir, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)

	addPicDirFlag(validateCmd)
	addCountFlags(validateCmd)
	validateCmd.Flags().Bool(flagNoOverlay, false, "Skip the game card template checks")
}
