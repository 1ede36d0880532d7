package cmd

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/loteria/internal/apperr"
	"github.com/arcanaland/loteria/internal/config"
	"github.com/arcanaland/loteria/internal/output"
)

func TestAskPositiveIntRetries(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("abc\n0\n 12 \n"), &out)

	n, err := p.askPositiveInt("How many? ")
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Contains(t, out.String(), "**Please enter numeric characters only**")
	assert.Contains(t, out.String(), "**Please enter non-zero numeric characters only**")
	assert.Equal(t, 3, strings.Count(out.String(), "How many? "))
}

func TestAskQuitAndEOF(t *testing.T) {
	p := newPrompter(strings.NewReader("q\n"), &bytes.Buffer{})
	_, err := p.askPositiveInt("How many? ")
	assert.ErrorIs(t, err, errQuit)

	p = newPrompter(strings.NewReader(""), &bytes.Buffer{})
	ans, err := p.ask("Ok? ")
	require.NoError(t, err)
	assert.Equal(t, quitToken, ans)

	p = newPrompter(strings.NewReader("y"), &bytes.Buffer{})
	ans, err = p.ask("Ok? ")
	require.NoError(t, err)
	assert.Equal(t, "y", ans, "last line without newline")
}

func TestAskMissingCountsOnlyAsksZeroFields(t *testing.T) {
	var out bytes.Buffer
	cfg := config.Default()
	cfg.CallingCards = 54
	cfg.Rows = 4

	p := newPrompter(strings.NewReader("30\n4\n"), &out)
	require.NoError(t, askMissingCounts(p, cfg))
	assert.Equal(t, 54, cfg.CallingCards)
	assert.Equal(t, 30, cfg.GameCards)
	assert.Equal(t, 4, cfg.Columns)
	assert.NotContains(t, out.String(), "calling cards are there")
	assert.NotContains(t, out.String(), "rows per game card")
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	addPicDirFlag(cmd)
	addCountFlags(cmd)
	addRunFlags(cmd)
	cmd.Flags().Bool(flagNoOverlay, false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"-g", "7", "--seed", "99", "--no-overlay"}))

	cfg := config.Default()
	cfg.CallingCards = 54
	require.NoError(t, applyFlags(cmd, cfg))
	assert.Equal(t, 54, cfg.CallingCards, "unset flag keeps the config value")
	assert.Equal(t, 7, cfg.GameCards)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.False(t, cfg.Overlay)
	assert.Equal(t, "pics", cfg.PicDir)
}

func TestCardTitle(t *testing.T) {
	assert.Equal(t, "El Gallo", cardTitle("01_el_gallo.png"))
	assert.Equal(t, "La Sirena", cardTitle("la-sirena.jpg"))
	assert.Equal(t, "Ñandú", cardTitle("07_ñandú.png"))
	assert.Equal(t, "23", cardTitle("23.png"))
}

func TestWrapText(t *testing.T) {
	lines := wrapText("el que le cantó a San Pedro no le volverá a cantar", 20)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 20)
	}
	assert.Equal(t, "el que le cantó a", lines[0])
	assert.Equal(t, []string{""}, wrapText("", 20))
}

func writePics(t *testing.T, root string, n int) {
	t.Helper()
	dir := filepath.Join(root, "input", "calling_cards")
	require.NoError(t, os.MkdirAll(dir, 0755))
	for i := 1; i <= n; i++ {
		img := imaging.New(4, 4, color.NRGBA{R: uint8(i * 25), G: 80, B: 40, A: 255})
		require.NoError(t, imaging.Save(img, filepath.Join(dir, fmt.Sprintf("%02d.png", i))))
	}
}

func TestGenerateInteractive(t *testing.T) {
	root := t.TempDir()
	writePics(t, root, 9)
	t.Setenv("LOTERIA_INSERT_WIDTH", "16")
	t.Setenv("LOTERIA_SHEET_WIDTH", "60")
	t.Setenv("LOTERIA_SHEET_HEIGHT", "80")
	t.Setenv("LOTERIA_SHEET_MARGIN", "3")

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetIn(strings.NewReader("maybe\ny\nq\n"))
	RootCmd.SetArgs([]string{
		"generate",
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"--pics", root,
		"-c", "9", "-g", "3", "--columns", "2", "--rows", "2",
		"--seed", "5", "--workers", "2", "--no-overlay",
	})
	require.NoError(t, RootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "Got 9 calling card images")
	assert.Contains(t, text, "Don't know what you mean, will assume you meant no.")
	assert.Equal(t, 2, strings.Count(text, "Ok to proceed?"))
	assert.Contains(t, text, "Created 3 game cards")
	assert.Contains(t, text, "Created 1 calling card sheets")

	outDir := filepath.Join(root, "output")
	cards, err := os.ReadDir(filepath.Join(outDir, output.GameCardsDir))
	require.NoError(t, err)
	assert.Len(t, cards, 3)
	sheets, err := os.ReadDir(filepath.Join(outDir, output.SheetsDir))
	require.NoError(t, err)
	assert.Len(t, sheets, 1)

	rep, err := os.ReadFile(filepath.Join(outDir, output.ReportFileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(rep), "\n"), "\n")
	require.Len(t, lines, 3)
	for i, l := range lines {
		assert.True(t, strings.HasPrefix(l, fmt.Sprintf("Card %d: ", i+1)), l)
		assert.Len(t, strings.Fields(l), 2+4)
	}
}

func TestGenerateRejectsUntileableGrid(t *testing.T) {
	root := t.TempDir()
	writePics(t, root, 9)

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetIn(strings.NewReader(""))
	RootCmd.SetArgs([]string{
		"generate",
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"--pics", root,
		"-c", "9", "-g", "2", "--columns", "3", "--rows", "2",
	})
	err := RootCmd.Execute()
	require.ErrorIs(t, err, apperr.ErrComposition)
	assert.NotContains(t, out.String(), "Getting images")
}

func TestStatsDryRun(t *testing.T) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetIn(strings.NewReader(""))
	RootCmd.SetArgs([]string{
		"stats",
		"--config", filepath.Join(t.TempDir(), "config.toml"),
		"-c", "10", "-g", "4", "--columns", "2", "--rows", "2",
		"--seed", "3", "--report",
	})
	require.NoError(t, RootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "Calling card occurrences min/max for 4 game cards:")
	for i := 1; i <= 4; i++ {
		assert.Contains(t, text, fmt.Sprintf("Card %d: ", i))
	}
}
