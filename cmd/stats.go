package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/loteria/internal/cardset"
	"github.com/arcanaland/loteria/internal/report"
	"github.com/arcanaland/loteria/internal/session"
	"github.com/arcanaland/loteria/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Generate a batch of game cards without writing any image",
	Long: `Stats generates a batch of game cards the same way generate does and prints
how often each calling card is used. No picture is read and nothing is written,
so it is a quick way to try counts and seeds before building the cards.

Examples:
  loteria stats -c 54 -g 30 --columns 4 --rows 4
  loteria stats -c 54 -g 30 --columns 4 --rows 4 --seed 7 --report`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	RootCmd.AddCommand(statsCmd)

	addCountFlags(statsCmd)
	addRunFlags(statsCmd)
	statsCmd.Flags().Bool("report", false, "Also print the calling cards of every game card")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	withReport, _ := cmd.Flags().GetBool("report")

	out := cmd.OutOrStdout()
	if err := askMissingCounts(newPrompter(cmd.InOrStdin(), out), cfg); err != nil {
		if errors.Is(err, errQuit) {
			return nil
		}
		return err
	}

	params := cfg.Params()
	gen := cardset.NewGenerator(
		cardset.WithSeed(cfg.Seed),
		cardset.WithWorkers(cfg.Workers),
		cardset.WithLogger(logger),
	)
	flow := &session.Flow{
		Generate: func(ctx context.Context) (cardset.Batch, error) {
			return gen.Generate(ctx, params)
		},
		Analyze: func(batch cardset.Batch) (stats.Report, error) {
			return stats.Analyze(batch, params.CallingCards)
		},
		Confirm: func(context.Context, cardset.Batch, stats.Report) (string, error) {
			return session.TokenAccept, nil
		},
	}
	res, err := flow.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	if err := res.Report.WriteChart(out, terminalWidth()); err != nil {
		return err
	}
	if err := res.Report.WriteSummary(out); err != nil {
		return err
	}
	if withReport {
		fmt.Fprintln(out)
		return report.Write(out, res.Batch)
	}
	return nil
}
