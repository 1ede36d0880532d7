package validator

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/arcanaland/loteria/internal/apperr"
	"github.com/arcanaland/loteria/internal/cardset"
	"github.com/arcanaland/loteria/internal/catalog"
	"github.com/arcanaland/loteria/internal/compose"
	"github.com/arcanaland/loteria/internal/config"
	"github.com/arcanaland/loteria/internal/output"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Validator checks a picture directory against a configuration before any
// card is generated.
type Validator struct {
	Config  *config.Config
	Results ValidationResults

	cardSize image.Point
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{
		Config:  cfg,
		Results: ValidationResults{},
	}
}

// Validate returns the problems found. The error is only set when the
// picture directory itself cannot be inspected.
func (v *Validator) Validate() (ValidationResults, error) {
	if _, err := os.Stat(v.Config.PicDir); err != nil {
		return v.Results, apperr.IO("validator", fmt.Errorf("picture directory %s: %w", v.Config.PicDir, err))
	}

	v.validateDirectoryStructure()
	v.validateCallingCards()
	v.validateCapacity()
	v.validateTemplates()
	v.validateOutput()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// validateDirectoryStructure checks that the input directories exist
func (v *Validator) validateDirectoryStructure() {
	if !isDir(v.Config.CallingCardsDir()) {
		v.errorf("calling card directory not found: %s", v.Config.CallingCardsDir())
	}

	if !isDir(v.Config.TemplatesDir()) {
		if v.Config.Overlay {
			v.errorf("game card template directory not found: %s", v.Config.TemplatesDir())
		} else {
			v.warnf("game card template directory not found (overlay is disabled): %s", v.Config.TemplatesDir())
		}
	}
}

// validateCallingCards checks the count and that all images share one size
func (v *Validator) validateCallingCards() {
	dir := v.Config.CallingCardsDir()
	if !isDir(dir) {
		return // Already reported
	}

	names, err := catalog.ListFiles(dir)
	if err != nil {
		v.errorf("error reading calling card directory: %v", err)
		return
	}
	if len(names) == 0 {
		v.errorf("no calling card images found in %s", dir)
		return
	}
	if want := v.Config.CallingCards; want > 0 && len(names) != want {
		v.errorf("expected %d calling card images, found %d in %s", want, len(names), dir)
	}

	sizes := map[image.Point][]string{}
	for _, name := range names {
		img, err := imaging.Open(filepath.Join(dir, name))
		if err != nil {
			v.errorf("calling card %s cannot be decoded: %v", name, err)
			continue
		}
		s := img.Bounds().Size()
		sizes[s] = append(sizes[s], name)
	}

	if len(sizes) > 1 {
		for s, files := range sizes {
			v.errorf("%d calling card(s) are %dx%d, e.g. %s", len(files), s.X, s.Y, files[0])
		}
		v.errorf("all calling card images must have the same size")
		return
	}
	for s := range sizes {
		v.cardSize = s
	}
}

// validateCapacity checks that the grid can be tiled and that the requested
// game cards can be distinct
func (v *Validator) validateCapacity() {
	p := v.Config.Params()
	if p.CallingCards == 0 || p.GameCards == 0 || p.Columns == 0 || p.Rows == 0 {
		v.warnf("card counts are not all configured; skipping capacity check")
		return
	}
	if err := p.Validate(); err != nil {
		v.errorf("%v", err)
		return
	}
	if err := compose.CheckGrid(p.Columns, p.Rows); err != nil {
		v.errorf("%v", err)
	}
	if err := cardset.CheckCapacity(p); err != nil {
		v.errorf("%v", err)
	}
}

// validateTemplates checks the template count and that the insert fits
func (v *Validator) validateTemplates() {
	dir := v.Config.TemplatesDir()
	if !v.Config.Overlay || !isDir(dir) {
		return
	}

	names, err := catalog.ListFiles(dir)
	if err != nil {
		v.errorf("error reading template directory: %v", err)
		return
	}
	if want := v.Config.GameCards; want > 0 && len(names) < want {
		v.errorf("expected at least %d game card templates, found %d in %s", want, len(names), dir)
	}

	insert, ok := v.insertSize()
	for _, name := range names {
		img, err := imaging.Open(filepath.Join(dir, name))
		if err != nil {
			v.errorf("template %s cannot be decoded: %v", name, err)
			continue
		}
		if !ok {
			continue
		}
		b := img.Bounds()
		if v.Config.Insert.OffsetX+insert.X > b.Dx() || v.Config.Insert.OffsetY+insert.Y > b.Dy() {
			v.errorf("template %s is %dx%d, too small for a %dx%d insert at (%d,%d)",
				name, b.Dx(), b.Dy(), insert.X, insert.Y, v.Config.Insert.OffsetX, v.Config.Insert.OffsetY)
		}
	}
}

// insertSize predicts the resized insert size from the calling card size
func (v *Validator) insertSize() (image.Point, bool) {
	cols, rows := v.Config.Columns, v.Config.Rows
	if v.cardSize == (image.Point{}) || cols < 1 || rows < 1 {
		return image.Point{}, false
	}
	gridW, gridH := rows*v.cardSize.X, cols*v.cardSize.Y
	w := v.Config.Insert.Width
	return image.Pt(w, int(float64(w)/float64(gridW)*float64(gridH))), true
}

// validateOutput warns when generating would need to clear old files
func (v *Validator) validateOutput() {
	layout := output.Layout{Root: v.Config.OutputDir()}
	if err := layout.Check(); err != nil {
		if errors.Is(err, output.ErrNotEmpty) {
			v.warnf("output directory %s already holds files; they will be deleted before generating", layout.Root)
			return
		}
		v.errorf("%v", err)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
