// Package assemble turns an accepted batch into files: one game card and
// one insert per set, the calling card sheets and the text report.
package assemble

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/loteria/internal/apperr"
	"github.com/arcanaland/loteria/internal/cardset"
	"github.com/arcanaland/loteria/internal/catalog"
	"github.com/arcanaland/loteria/internal/compose"
	"github.com/arcanaland/loteria/internal/output"
	"github.com/arcanaland/loteria/internal/report"
)

// Stage names passed to Progress.
const (
	StageGameCard = "game card"
	StageSheet    = "calling card sheet"
)

// Assembler writes the artifacts of a batch under Layout.
type Assembler struct {
	Catalog *catalog.Catalog
	// Templates frame the game cards, template i for game card i+1. Nil
	// disables framing and the insert becomes the game card.
	Templates []image.Image
	Composer  *compose.Composer
	Layout    output.Layout
	Columns   int
	Rows      int
	Workers   int
	Logger    *zap.Logger
	// Progress, when set, is called before each artifact is built. It may
	// be called from several goroutines at once.
	Progress func(stage string, n, total int)
}

// Result counts what Assemble wrote.
type Result struct {
	GameCards int
	Sheets    int
	Report    string
}

// Assemble prepares the output tree, then writes every game card, every
// sheet and the report. With clear false a non-empty output directory
// stops the run before anything is written. A grid that cannot be tiled or
// missing templates fail before the output tree is touched.
func (a *Assembler) Assemble(ctx context.Context, batch cardset.Batch, clear bool) (Result, error) {
	if err := compose.CheckGrid(a.Columns, a.Rows); err != nil {
		return Result{}, err
	}
	if err := a.checkTemplates(batch.Len()); err != nil {
		return Result{}, err
	}
	if err := a.Layout.Prepare(clear); err != nil {
		return Result{}, err
	}
	if err := a.GameCards(ctx, batch); err != nil {
		return Result{}, err
	}
	sheets, err := a.Sheets(ctx)
	if err != nil {
		return Result{}, err
	}
	path := a.Layout.ReportPath()
	if err := report.WriteFile(path, batch); err != nil {
		return Result{}, err
	}
	a.logger().Info("wrote report", zap.String("path", path))
	return Result{GameCards: batch.Len(), Sheets: sheets, Report: path}, nil
}

// GameCards composes and writes the game cards of batch on a bounded pool
// of workers. Files are named by batch position, whatever order the workers
// finish in.
func (a *Assembler) GameCards(ctx context.Context, batch cardset.Batch) error {
	if err := a.checkTemplates(batch.Len()); err != nil {
		return err
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.workers())
	total := batch.Len()
	for i, set := range batch {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			return a.gameCard(i+1, total, set)
		})
	}
	return eg.Wait()
}

func (a *Assembler) gameCard(n, total int, set cardset.Set) error {
	a.progress(StageGameCard, n, total)

	images, err := a.Catalog.Select(set)
	if err != nil {
		return fmt.Errorf("game card %d: %w", n, err)
	}
	var template image.Image
	if a.Templates != nil {
		template = a.Templates[n-1]
	}
	insert, card, err := a.Composer.GameCard(images, template, a.Columns, a.Rows)
	if err != nil {
		return fmt.Errorf("game card %d: %w", n, err)
	}

	insertPath := a.Layout.InsertPath(n, total)
	if err := output.WritePNG(insertPath, insert); err != nil {
		return err
	}
	cardPath := a.Layout.GameCardPath(n, total)
	if err := output.WritePNG(cardPath, card); err != nil {
		return err
	}
	a.logger().Debug("wrote game card",
		zap.Int("card", n),
		zap.Ints("calling_cards", set),
		zap.String("path", cardPath))
	return nil
}

// Sheets writes one 3×3 sheet per nine calling cards and returns how many
// were written.
func (a *Assembler) Sheets(ctx context.Context) (int, error) {
	dir := filepath.Join(a.Layout.Root, output.SheetsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, apperr.IO("assemble.Sheets", err)
	}

	chunks := compose.ChunkSheets(compose.PadForSheets(a.Catalog.Images()))
	total := len(chunks)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.workers())
	for i, chunk := range chunks {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			a.progress(StageSheet, i+1, total)
			sheet, err := a.Composer.Sheet(chunk)
			if err != nil {
				return fmt.Errorf("calling card sheet %d: %w", i+1, err)
			}
			return output.WritePNG(a.Layout.SheetPath(i+1, total), sheet)
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	a.logger().Info("wrote calling card sheets", zap.Int("sheets", total), zap.String("dir", dir))
	return total, nil
}

func (a *Assembler) checkTemplates(gameCards int) error {
	if a.Templates != nil && len(a.Templates) < gameCards {
		return apperr.AssetCount("assemble", "game card templates", gameCards, len(a.Templates))
	}
	return nil
}

func (a *Assembler) workers() int {
	if a.Workers > 0 {
		return a.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (a *Assembler) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *Assembler) progress(stage string, n, total int) {
	if a.Progress != nil {
		a.Progress(stage, n, total)
	}
}
