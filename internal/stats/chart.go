package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

const (
	barRune     = '█'
	minBarWidth = 10
)

// WriteChart draws the histogram as horizontal bars, one line per calling
// card, scaled so the longest bar fits in width columns. Cards that never
// appear are red, the least used yellow and the most used green.
func (r Report) WriteChart(w io.Writer, width int) error {
	if len(r.Histogram) == 0 {
		return nil
	}

	labelWidth := len(strconv.Itoa(len(r.Histogram)))
	countWidth := len(strconv.Itoa(r.Max))
	barWidth := width - labelWidth - countWidth - 6
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	title := color.New(color.FgCyan)
	if _, err := title.Fprintf(w, "Total times a calling card shows up out of %d game cards\n", r.GameCards); err != nil {
		return err
	}

	for i, c := range r.Histogram {
		n := 0
		if r.Max > 0 {
			n = c * barWidth / r.Max
		}
		if _, err := fmt.Fprintf(w, "%*d | ", labelWidth, i+1); err != nil {
			return err
		}
		if _, err := r.barColor(c).Fprint(w, strings.Repeat(string(barRune), n)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " %*d\n", countWidth, c); err != nil {
			return err
		}
	}
	return nil
}

func (r Report) barColor(c int) *color.Color {
	switch {
	case c == 0:
		return color.New(color.FgRed)
	case c == r.Max:
		return color.New(color.FgGreen)
	case c == r.Min:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgWhite)
	}
}
