package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/loteria/internal/apperr"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the picture directory and the config file",
	Long: `Init creates the picture directory layout expected by generate:

  <pic_dir>/input/calling_cards        one image per calling card
  <pic_dir>/input/game_card_templates  one frame per game card
  <pic_dir>/output                     generated files

and writes the config file if it does not exist yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, dir := range []string{cfg.CallingCardsDir(), cfg.TemplatesDir(), cfg.OutputDir()} {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return apperr.IO("init", fmt.Errorf("error creating %s: %w", dir, err))
			}
			fmt.Fprintln(out, "Created:", dir)
		}

		fmt.Fprintln(out, "Copy your calling card images and game card templates into the input directories.")
		fmt.Fprintln(out, "Config file initialized at:", resolvedConfigPath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(initCmd)

	addPicDirFlag(initCmd)
}
