package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/loteria/internal/ansi"
	"github.com/arcanaland/loteria/internal/apperr"
	"github.com/arcanaland/loteria/internal/card"
	"github.com/arcanaland/loteria/internal/catalog"
)

const defaultArtWidth = 32

var showCmd = &cobra.Command{
	Use:   "show [index]",
	Short: "Display a calling card with ANSI art",
	Long: `Show displays one calling card of the picture directory as terminal art,
next to its file name, position and size. Calling cards are numbered from 1 in
file name order, the same numbers used in report.txt.

Examples:
  loteria show 1
  loteria show --pics ./pics --width 48 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return apperr.Input("show", "calling card index must be a number, got %q", args[0])
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		cat, err := catalog.Load(cfg.CallingCardsDir())
		if err != nil {
			return fmt.Errorf("error loading calling cards: %w", err)
		}

		c, err := cat.Card(index)
		if err != nil {
			return fmt.Errorf("error getting card: %w", err)
		}

		artWidth, _ := cmd.Flags().GetInt("width")
		plain, _ := cmd.Flags().GetBool("plain")
		art, err := ansi.Render(c.Image, artWidth, ansi.FitHeight(c.Image, artWidth), !plain)
		if err != nil {
			return fmt.Errorf("error rendering ANSI art: %w", err)
		}

		displayCard(cmd.OutOrStdout(), c, cat.Len(), art, terminalWidth())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	addPicDirFlag(showCmd)
	showCmd.Flags().IntP("width", "w", defaultArtWidth, "Width of the art in terminal columns")
	showCmd.Flags().Bool("plain", false, "Render the art without colour codes")
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// cardTitle turns a file name like 01_el_gallo.png into "El Gallo".
func cardTitle(name string) string {
	base := strings.TrimSuffix(name, fileExt(name))
	words := strings.FieldsFunc(base, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	var kept []string
	for _, w := range words {
		if isNumeric(w) {
			continue
		}
		r := []rune(w)
		kept = append(kept, strings.ToUpper(string(r[0]))+string(r[1:]))
	}
	if len(kept) == 0 {
		return base
	}
	return strings.Join(kept, " ")
}

func fileExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[i:]
	}
	return ""
}

// displayCard prints the ANSI art on the left and the card details on the right
func displayCard(out io.Writer, c *card.CallingCard, total int, ansiArt string, width int) {
	ansiLines := strings.Split(strings.TrimRight(ansiArt, "\n"), "\n")
	maxAnsiWidth := 0
	for _, line := range ansiLines {
		maxAnsiWidth = max(maxAnsiWidth, ansi.VisibleWidth(line))
	}

	size := c.Size()
	infoLines := []string{
		colorize.CyanString("Card: ") + colorize.HiWhiteString("%s", cardTitle(c.Name)),
		colorize.CyanString("No.:  ") + colorize.HiWhiteString("%d of %d", c.Index, total),
		colorize.CyanString("File: ") + colorize.HiWhiteString("%s", c.Name),
		colorize.CyanString("Size: ") + colorize.HiWhiteString("%dx%d", size.X, size.Y),
	}

	spacing := 4
	infoStartCol := maxAnsiWidth + spacing

	infoWidth := max(width-infoStartCol-2, 20)
	infoLines = append(infoLines, "", colorize.CyanString("Path:"))
	infoLines = append(infoLines, wrapText(c.Path, infoWidth)...)

	fmt.Fprintln(out)

	maxLines := max(len(ansiLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Fprint(out, "  ")
		if i < len(ansiLines) {
			fmt.Fprint(out, ansiLines[i])
			fmt.Fprint(out, strings.Repeat(" ", infoStartCol-ansi.VisibleWidth(ansiLines[i])))
		} else {
			fmt.Fprint(out, strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Fprint(out, infoLines[i])
		}

		fmt.Fprintln(out)
	}

	fmt.Fprintln(out)
}
