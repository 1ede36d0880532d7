package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/loteria/internal/apperr"
	"github.com/arcanaland/loteria/internal/assemble"
	"github.com/arcanaland/loteria/internal/cardset"
	"github.com/arcanaland/loteria/internal/catalog"
	"github.com/arcanaland/loteria/internal/compose"
	"github.com/arcanaland/loteria/internal/config"
	"github.com/arcanaland/loteria/internal/output"
	"github.com/arcanaland/loteria/internal/session"
	"github.com/arcanaland/loteria/internal/stats"
)

// errAborted stops the current round without failing the command.
var errAborted = errors.New("aborted by user")

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate game cards, calling card sheets and a report",
	Long: `Generate asks for any card count missing from the config and flags, loads
the calling cards and game card templates, and generates a batch of unique game
cards. It shows how often each calling card is used and asks for confirmation:
y builds the cards, n generates a new batch, q stops. Any other answer is taken
as n.

After a batch is built you may generate again with a different number of game
cards, reusing the same pictures and grid.

Examples:
  loteria generate
  loteria generate -c 54 -g 30 --columns 4 --rows 4
  loteria generate -c 54 -g 30 --columns 4 --rows 4 --seed 7 --yes --force`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	RootCmd.AddCommand(generateCmd)

	addPicDirFlag(generateCmd)
	addCountFlags(generateCmd)
	addRunFlags(generateCmd)
	generateCmd.Flags().Bool(flagNoOverlay, false, "Write the tiled inserts as game cards, without templates")
	generateCmd.Flags().BoolP(flagForce, "f", false, "Clear a non-empty output directory without asking")
	generateCmd.Flags().BoolP(flagYes, "y", false, "Accept the first batch and exit once it is built")
}

// generateRun holds what stays fixed across rounds of one generate command.
type generateRun struct {
	cfg       *config.Config
	prompt    *prompter
	out       io.Writer
	catalog   *catalog.Catalog
	templates []image.Image
	composer  *compose.Composer
	gen       *cardset.Generator
	force     bool
	yes       bool
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool(flagForce)
	yes, _ := cmd.Flags().GetBool(flagYes)

	out := cmd.OutOrStdout()
	p := newPrompter(cmd.InOrStdin(), out)

	fmt.Fprintln(out, "Welcome to the Lotería Card generator")
	if err := askMissingCounts(p, cfg); err != nil {
		if errors.Is(err, errQuit) {
			return nil
		}
		return err
	}
	fmt.Fprintln(out)

	params := cfg.Params()
	if err := params.Validate(); err != nil {
		return err
	}
	if err := compose.CheckGrid(params.Columns, params.Rows); err != nil {
		return err
	}
	if err := cardset.CheckCapacity(params); err != nil {
		return err
	}

	r := &generateRun{cfg: cfg, prompt: p, out: out, force: force, yes: yes}
	if err := r.loadPictures(); err != nil {
		return err
	}
	if r.composer, err = cfg.Composer(); err != nil {
		return err
	}
	r.gen = cardset.NewGenerator(
		cardset.WithSeed(cfg.Seed),
		cardset.WithWorkers(cfg.Workers),
		cardset.WithLogger(logger),
	)

	for {
		if err := r.round(cmd.Context()); err != nil {
			return err
		}
		if yes {
			return nil
		}

		fmt.Fprintln(out, strings.Repeat("= == ", 17))
		ans, err := p.ask("Press 'enter' if you want to generate again, press 'q' if you want to quit: ")
		if err != nil {
			return err
		}
		if strings.TrimSpace(ans) == quitToken {
			return nil
		}
		fmt.Fprintln(out)
		g, err := p.askPositiveInt("How many game cards do you need? ")
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := r.setGameCards(g); err != nil {
			return err
		}
	}
}

// askMissingCounts prompts for every card count left at zero.
func askMissingCounts(p *prompter, cfg *config.Config) error {
	questions := []struct {
		text string
		dst  *int
	}{
		{"How many calling cards are there? ", &cfg.CallingCards},
		{"How many game cards do you need? ", &cfg.GameCards},
		{"How many columns per game card? ", &cfg.Columns},
		{"How many rows per game card? ", &cfg.Rows},
	}
	for _, q := range questions {
		if *q.dst > 0 {
			continue
		}
		n, err := p.askPositiveInt(q.text)
		if err != nil {
			return err
		}
		*q.dst = n
	}
	return nil
}

func (r *generateRun) loadPictures() error {
	fmt.Fprintln(r.out, "Getting images...")
	cat, err := catalog.LoadExpected(r.cfg.CallingCardsDir(), r.cfg.CallingCards)
	if err != nil {
		return err
	}
	r.catalog = cat
	fmt.Fprintf(r.out, "Got %d calling card images\n", cat.Len())

	if !r.cfg.Overlay {
		return nil
	}
	templates, err := catalog.LoadTemplates(r.cfg.TemplatesDir(), r.cfg.GameCards)
	if err != nil {
		return err
	}
	r.templates = templates
	fmt.Fprintf(r.out, "Got %d game card template images\n", len(templates))
	return nil
}

// setGameCards changes the game card count between rounds.
func (r *generateRun) setGameCards(g int) error {
	next := r.cfg.Params()
	next.GameCards = g
	if err := cardset.CheckCapacity(next); err != nil {
		return err
	}
	if r.templates != nil && len(r.templates) < g {
		return apperr.AssetCount("generate", "game card templates in "+r.cfg.TemplatesDir(), g, len(r.templates))
	}
	r.cfg.GameCards = g
	return nil
}

// round runs one generate/confirm/assemble loop.
func (r *generateRun) round(ctx context.Context) error {
	params := r.cfg.Params()
	flow := &session.Flow{
		Generate: func(ctx context.Context) (cardset.Batch, error) {
			return r.gen.Generate(ctx, params)
		},
		Analyze: func(batch cardset.Batch) (stats.Report, error) {
			return stats.Analyze(batch, params.CallingCards)
		},
		Confirm:  r.confirm,
		Assemble: r.assemble,
		OnUnrecognized: func(string) {
			fmt.Fprintln(r.out, "Don't know what you mean, will assume you meant no.")
		},
		OnTransition: func(from, to session.State) {
			logger.Debug("session state changed", zap.Stringer("from", from), zap.Stringer("to", to))
			switch to {
			case session.Assembling:
				fmt.Fprintln(r.out, "Creating game cards, please wait..")
			case session.Regenerating:
				fmt.Fprintln(r.out, "Recreating the game cards..")
			case session.Aborting:
				fmt.Fprintln(r.out, "Aborting..")
			}
		},
	}

	_, err := flow.Run(ctx)
	if errors.Is(err, errAborted) {
		fmt.Fprintln(r.out, "Aborting..")
		return nil
	}
	return err
}

func (r *generateRun) confirm(_ context.Context, _ cardset.Batch, report stats.Report) (string, error) {
	fmt.Fprintln(r.out)
	if err := report.WriteChart(r.out, terminalWidth()); err != nil {
		return "", err
	}
	if err := report.WriteSummary(r.out); err != nil {
		return "", err
	}
	if r.yes {
		return session.TokenAccept, nil
	}
	return r.prompt.ask("\nOk to proceed? y=yes, n=no, q=quit: ")
}

func (r *generateRun) assemble(ctx context.Context, batch cardset.Batch) error {
	layout := output.Layout{Root: r.cfg.OutputDir()}
	clear := r.force
	if !clear {
		empty, err := layout.Empty()
		if err != nil {
			return err
		}
		if !empty {
			fmt.Fprintf(r.out, "[WARNING] There are some files already generated in %s. "+
				"Please move them since they will be deleted\n", layout.Root)
			if r.yes {
				return layout.Check()
			}
			ans, err := r.prompt.ask("When ready press enter: ")
			if err != nil {
				return err
			}
			if strings.TrimSpace(ans) == quitToken {
				return errAborted
			}
			clear = true
		}
	}

	var mu sync.Mutex
	a := &assemble.Assembler{
		Catalog:   r.catalog,
		Templates: r.templates,
		Composer:  r.composer,
		Layout:    layout,
		Columns:   r.cfg.Columns,
		Rows:      r.cfg.Rows,
		Workers:   r.cfg.Workers,
		Logger:    logger,
		Progress: func(stage string, n, total int) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(r.out, "  *Creating %s %d\n", stage, n)
		},
	}
	res, err := a.Assemble(ctx, batch, clear)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "Created %d game cards at %s\n\n", res.GameCards, r.cfg.OutputDir())
	fmt.Fprintf(r.out, "Created %d calling card sheets at %s\n", res.Sheets, r.cfg.OutputDir())
	fmt.Fprintf(r.out, "Wrote report to %s\n", res.Report)
	return nil
}
