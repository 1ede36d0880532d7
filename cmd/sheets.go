package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/loteria/internal/apperr"
	"github.com/arcanaland/loteria/internal/assemble"
	"github.com/arcanaland/loteria/internal/catalog"
	"github.com/arcanaland/loteria/internal/output"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Build only the 3x3 calling card sheets",
	Long: `Sheets lays the calling cards out nine to a page and writes the pages to
<pic_dir>/output/calling_card_sheets. The last page is filled up with copies of
the first calling card. Game cards and the report are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool(flagForce)

		dir := filepath.Join(cfg.OutputDir(), output.SheetsDir)
		if err := (output.Layout{Root: dir}).Check(); err != nil {
			if !force || !errors.Is(err, output.ErrNotEmpty) {
				return fmt.Errorf("%w (use --%s to replace them)", err, flagForce)
			}
			if err := os.RemoveAll(dir); err != nil {
				return apperr.IO("sheets", err)
			}
		}

		cat, err := catalog.Load(cfg.CallingCardsDir())
		if err != nil {
			return err
		}
		if want := cfg.CallingCards; want > 0 && cat.Len() != want {
			return apperr.AssetCount("sheets", "calling cards in "+cfg.CallingCardsDir(), want, cat.Len())
		}
		composer, err := cfg.Composer()
		if err != nil {
			return err
		}

		a := &assemble.Assembler{
			Catalog:  cat,
			Composer: composer,
			Layout:   output.Layout{Root: cfg.OutputDir()},
			Workers:  cfg.Workers,
			Logger:   logger,
		}
		n, err := a.Sheets(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %d calling card sheets at %s\n", n, dir)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sheetsCmd)

	addPicDirFlag(sheetsCmd)
	sheetsCmd.Flags().IntP(flagCallingCards, "c", 0, "Expected number of calling cards")
	sheetsCmd.Flags().Int(flagWorkers, 0, "Parallel workers (0 uses every CPU)")
	sheetsCmd.Flags().BoolP(flagForce, "f", false, "Replace existing sheets without asking")
}
