// Package report writes the plain-text list of calling cards on each game
// card.
package report

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/arcanaland/loteria/internal/apperr"
	"github.com/arcanaland/loteria/internal/cardset"
)

// Line formats game card n (1-based) as "Card n: v1 v2 ... vK \n", values in
// generation order, each followed by a space.
func Line(n int, set cardset.Set) string {
	buf := make([]byte, 0, 8+len(set)*3)
	buf = append(buf, "Card "...)
	buf = strconv.AppendInt(buf, int64(n), 10)
	buf = append(buf, ": "...)
	for _, v := range set {
		buf = strconv.AppendInt(buf, int64(v), 10)
		buf = append(buf, ' ')
	}
	buf = append(buf, '\n')
	return string(buf)
}

// Write writes one line per game card of batch.
func Write(w io.Writer, batch cardset.Batch) error {
	bw := bufio.NewWriter(w)
	for i, set := range batch {
		if _, err := bw.WriteString(Line(i+1, set)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes the report of batch to path, replacing any existing file.
func WriteFile(path string, batch cardset.Batch) error {
	f, err := os.Create(path)
	if err != nil {
		return apperr.IO("report.WriteFile", err)
	}
	if err := Write(f, batch); err != nil {
		f.Close()
		return apperr.IO("report.WriteFile", err)
	}
	if err := f.Close(); err != nil {
		return apperr.IO("report.WriteFile", err)
	}
	return nil
}
