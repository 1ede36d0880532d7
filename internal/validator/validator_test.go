package validator

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/loteria/internal/apperr"
	"github.com/arcanaland/loteria/internal/config"
)

func writeImages(t *testing.T, dir string, n, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for i := 0; i < n; i++ {
		name := filepath.Join(dir, string(rune('a'+i))+".png")
		require.NoError(t, imaging.Save(imaging.New(w, h, color.White), name))
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.PicDir = t.TempDir()
	cfg.CallingCards = 5
	cfg.GameCards = 3
	cfg.Columns = 2
	cfg.Rows = 2
	cfg.Insert = config.InsertConfig{Width: 40, OffsetX: 5, OffsetY: 5}
	return cfg
}

func containsMessage(msgs []string, part string) bool {
	for _, m := range msgs {
		if strings.Contains(m, part) {
			return true
		}
	}
	return false
}

func TestValidateGoodDirectory(t *testing.T) {
	cfg := testConfig(t)
	writeImages(t, cfg.CallingCardsDir(), 5, 10, 15)
	writeImages(t, cfg.TemplatesDir(), 3, 60, 80)

	results, err := NewValidator(cfg).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assert.Empty(t, results.Warnings)
}

func TestValidateMissingPicDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.PicDir = filepath.Join(cfg.PicDir, "missing")
	_, err := NewValidator(cfg).Validate()
	assert.ErrorIs(t, err, apperr.ErrIO)
}

func TestValidateCounts(t *testing.T) {
	cfg := testConfig(t)
	writeImages(t, cfg.CallingCardsDir(), 4, 10, 15)
	writeImages(t, cfg.TemplatesDir(), 2, 60, 80)

	results, err := NewValidator(cfg).Validate()
	require.NoError(t, err)
	assert.True(t, containsMessage(results.Errors, "expected 5 calling card images, found 4"))
	assert.True(t, containsMessage(results.Errors, "expected at least 3 game card templates, found 2"))
}

func TestValidateMixedSizes(t *testing.T) {
	cfg := testConfig(t)
	writeImages(t, cfg.CallingCardsDir(), 4, 10, 15)
	require.NoError(t, imaging.Save(imaging.New(11, 15, color.White), filepath.Join(cfg.CallingCardsDir(), "z.png")))
	writeImages(t, cfg.TemplatesDir(), 3, 60, 80)

	results, err := NewValidator(cfg).Validate()
	require.NoError(t, err)
	assert.True(t, containsMessage(results.Errors, "must have the same size"))
}

func TestValidateCapacity(t *testing.T) {
	cfg := testConfig(t)
	cfg.GameCards = 6 // C(5,4) = 5
	writeImages(t, cfg.CallingCardsDir(), 5, 10, 15)
	writeImages(t, cfg.TemplatesDir(), 6, 60, 80)

	results, err := NewValidator(cfg).Validate()
	require.NoError(t, err)
	assert.True(t, containsMessage(results.Errors, "CapacityError"))
}

func TestValidateUntileableGrid(t *testing.T) {
	cfg := testConfig(t)
	cfg.CallingCards = 8
	cfg.Columns, cfg.Rows = 3, 2
	writeImages(t, cfg.CallingCardsDir(), 8, 10, 15)
	writeImages(t, cfg.TemplatesDir(), 3, 60, 80)

	results, err := NewValidator(cfg).Validate()
	require.NoError(t, err)
	assert.True(t, containsMessage(results.Errors, "CompositionError"))
}

func TestValidateTemplateTooSmall(t *testing.T) {
	cfg := testConfig(t)
	writeImages(t, cfg.CallingCardsDir(), 5, 10, 15)
	// Insert is 40x60 at (5,5); the template needs at least 45x65.
	writeImages(t, cfg.TemplatesDir(), 3, 44, 80)

	results, err := NewValidator(cfg).Validate()
	require.NoError(t, err)
	assert.True(t, containsMessage(results.Errors, "too small for a 40x60 insert"))
}

func TestValidateWithoutOverlay(t *testing.T) {
	cfg := testConfig(t)
	cfg.Overlay = false
	writeImages(t, cfg.CallingCardsDir(), 5, 10, 15)

	results, err := NewValidator(cfg).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assert.True(t, containsMessage(results.Warnings, "overlay is disabled"))
}

func TestValidateWarnsAboutOutput(t *testing.T) {
	cfg := testConfig(t)
	writeImages(t, cfg.CallingCardsDir(), 5, 10, 15)
	writeImages(t, cfg.TemplatesDir(), 3, 60, 80)
	require.NoError(t, os.MkdirAll(cfg.OutputDir(), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.OutputDir(), "report.txt"), nil, 0644))

	results, err := NewValidator(cfg).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assert.True(t, containsMessage(results.Warnings, "already holds files"))
}
