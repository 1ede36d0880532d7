// Package output owns the layout of the generated files and refuses to
// write into a directory that already holds files unless told to clear it.
package output

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/arcanaland/loteria/internal/apperr"
)

// ErrNotEmpty is wrapped by the IOError returned when the output directory
// already holds files.
var ErrNotEmpty = errors.New("output directory is not empty")

const (
	GameCardsDir   = "game_cards"
	InsertsDir     = "game_card_inserts"
	SheetsDir      = "calling_card_sheets"
	ReportFileName = "report.txt"
)

// Layout is the output tree rooted at Root:
//
//	game_cards/game_card_01.png
//	game_card_inserts/game_card_insert_01.png
//	calling_card_sheets/calling_card_sheet_01.png
//	report.txt
type Layout struct {
	Root string
}

// Ordinal formats n zero-padded to at least two digits, or to the width of
// total when that is wider, so file names sort in card order.
func Ordinal(n, total int) string {
	width := max(2, len(strconv.Itoa(total)))
	return fmt.Sprintf("%0*d", width, n)
}

// GameCardPath returns the path of game card n of total.
func (l Layout) GameCardPath(n, total int) string {
	return filepath.Join(l.Root, GameCardsDir, "game_card_"+Ordinal(n, total)+".png")
}

// InsertPath returns the path of the insert of game card n of total.
func (l Layout) InsertPath(n, total int) string {
	return filepath.Join(l.Root, InsertsDir, "game_card_insert_"+Ordinal(n, total)+".png")
}

// SheetPath returns the path of calling card sheet n of total.
func (l Layout) SheetPath(n, total int) string {
	return filepath.Join(l.Root, SheetsDir, "calling_card_sheet_"+Ordinal(n, total)+".png")
}

// ReportPath returns the path of the text report.
func (l Layout) ReportPath() string {
	return filepath.Join(l.Root, ReportFileName)
}

// Empty reports whether Root is missing or holds no entries.
func (l Layout) Empty() (bool, error) {
	entries, err := os.ReadDir(l.Root)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, apperr.IO("output.Empty", err)
	}
	return len(entries) == 0, nil
}

// Check fails with an IOError wrapping ErrNotEmpty when Root holds files.
func (l Layout) Check() error {
	empty, err := l.Empty()
	if err != nil {
		return err
	}
	if !empty {
		return apperr.IO("output.Check", fmt.Errorf("%s: %w", l.Root, ErrNotEmpty))
	}
	return nil
}

// Prepare creates the output tree. A non-empty Root is deleted first when
// clear is true; otherwise Prepare fails like Check and touches nothing.
func (l Layout) Prepare(clear bool) error {
	if err := l.Check(); err != nil {
		if !clear || !errors.Is(err, ErrNotEmpty) {
			return err
		}
		if err := os.RemoveAll(l.Root); err != nil {
			return apperr.IO("output.Prepare", err)
		}
	}
	for _, dir := range []string{GameCardsDir, InsertsDir, SheetsDir} {
		if err := os.MkdirAll(filepath.Join(l.Root, dir), 0755); err != nil {
			return apperr.IO("output.Prepare", err)
		}
	}
	return nil
}

// WritePNG encodes img as PNG at path.
func WritePNG(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return apperr.IO("output.WritePNG", err)
	}
	return nil
}
