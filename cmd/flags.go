package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/loteria/internal/config"
)

const (
	flagPicDir       = "pics"
	flagCallingCards = "calling-cards"
	flagGameCards    = "game-cards"
	flagColumns      = "columns"
	flagRows         = "rows"
	flagSeed         = "seed"
	flagWorkers      = "workers"
	flagNoOverlay    = "no-overlay"
	flagForce        = "force"
	flagYes          = "yes"
)

func addPicDirFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(flagPicDir, "p", "", "Picture directory holding input/ and output/")
}

func addCountFlags(cmd *cobra.Command) {
	cmd.Flags().IntP(flagCallingCards, "c", 0, "Number of calling cards")
	cmd.Flags().IntP(flagGameCards, "g", 0, "Number of game cards to generate")
	cmd.Flags().Int(flagColumns, 0, "Columns per game card (at least 2)")
	cmd.Flags().Int(flagRows, 0, "Rows per game card (at least 2)")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int64(flagSeed, 0, "Random seed for reproducible game cards (0 picks one)")
	cmd.Flags().Int(flagWorkers, 0, "Parallel workers (0 uses every CPU)")
}

// applyFlags copies every flag the user set on cmd into cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}

	var err error
	if changed(flagPicDir) {
		if cfg.PicDir, err = flags.GetString(flagPicDir); err != nil {
			return err
		}
	}
	ints := map[string]*int{
		flagCallingCards: &cfg.CallingCards,
		flagGameCards:    &cfg.GameCards,
		flagColumns:      &cfg.Columns,
		flagRows:         &cfg.Rows,
		flagWorkers:      &cfg.Workers,
	}
	for name, dst := range ints {
		if changed(name) {
			if *dst, err = flags.GetInt(name); err != nil {
				return err
			}
		}
	}
	if changed(flagSeed) {
		if cfg.Seed, err = flags.GetInt64(flagSeed); err != nil {
			return err
		}
	}
	if changed(flagNoOverlay) {
		noOverlay, err := flags.GetBool(flagNoOverlay)
		if err != nil {
			return err
		}
		cfg.Overlay = !noOverlay
	}
	return nil
}
