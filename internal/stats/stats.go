// Package stats tallies how often each calling card appears across a batch
// of game cards.
package stats

import (
	"fmt"
	"io"

	"github.com/arcanaland/loteria/internal/apperr"
	"github.com/arcanaland/loteria/internal/cardset"
)

// Report is the occurrence histogram of a batch plus its extremes.
// Histogram[i] counts calling card i+1.
type Report struct {
	GameCards int
	Histogram []int
	Unused    int
	Min       int
	MinCount  int
	Max       int
	MaxCount  int
}

// Analyze counts every calling card index of batch. The result depends on
// nothing but its arguments.
func Analyze(batch cardset.Batch, callingCards int) (Report, error) {
	if callingCards < 1 {
		return Report{}, apperr.Input("stats.Analyze", "calling card count must be positive, got %d", callingCards)
	}

	hist := make([]int, callingCards)
	for n, set := range batch {
		for _, v := range set {
			if v < 1 || v > callingCards {
				return Report{}, apperr.Input("stats.Analyze",
					"game card %d holds calling card %d outside 1..%d", n+1, v, callingCards)
			}
			hist[v-1]++
		}
	}

	r := Report{
		GameCards: len(batch),
		Histogram: hist,
		Min:       hist[0],
		Max:       hist[0],
	}
	for _, c := range hist {
		if c == 0 {
			r.Unused++
		}
		r.Min = min(r.Min, c)
		r.Max = max(r.Max, c)
	}
	for _, c := range hist {
		if c == r.Min {
			r.MinCount++
		}
		if c == r.Max {
			r.MaxCount++
		}
	}
	return r, nil
}

// Count returns how many game cards hold calling card index (1-based).
func (r Report) Count(index int) int {
	if index < 1 || index > len(r.Histogram) {
		return 0
	}
	return r.Histogram[index-1]
}

// Total returns the sum of the histogram, G*K for a complete batch.
func (r Report) Total() int {
	total := 0
	for _, c := range r.Histogram {
		total += c
	}
	return total
}

// WriteSummary prints the unused count and the min/max lines.
func (r Report) WriteSummary(w io.Writer) error {
	var err error
	if r.Unused > 0 {
		_, err = fmt.Fprintf(w, "  There was/were %d calling cards that are not used in any game card.\n", r.Unused)
	} else {
		_, err = fmt.Fprintln(w, "  All calling cards were used at least once.")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "  Calling card occurrences min/max for %d game cards:\n"+
		"   MIN: %d calling card(s) occurred %d time(s)\n"+
		"   MAX: %d calling card(s) occurred %d time(s)\n",
		r.GameCards, r.MinCount, r.Min, r.MaxCount, r.Max)
	return err
}
