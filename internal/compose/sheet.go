package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/arcanaland/loteria/internal/apperr"
)

const (
	// SheetSide is the number of calling cards per sheet row and column.
	SheetSide = 3
	// SheetSize is the number of calling cards on one sheet.
	SheetSize = SheetSide * SheetSide
)

// SheetLayout is the blank page a 3×3 block of calling cards is centered on.
type SheetLayout struct {
	Width  int
	Height int
	Margin int // left and right margin; the block is centered vertically
}

// DefaultSheetLayout matches a letter page at 180 dpi.
func DefaultSheetLayout() SheetLayout {
	return SheetLayout{Width: 1545, Height: 2000, Margin: 45}
}

// SheetCount returns ceil(n/9).
func SheetCount(n int) int {
	return (n + SheetSize - 1) / SheetSize
}

// PadForSheets returns a new list holding images followed by copies of the
// first image until its length is a multiple of 9. images is not modified.
func PadForSheets(images []image.Image) []image.Image {
	if len(images) == 0 {
		return nil
	}
	padded := make([]image.Image, len(images), SheetCount(len(images))*SheetSize)
	copy(padded, images)
	for len(padded)%SheetSize != 0 {
		padded = append(padded, images[0])
	}
	return padded
}

// ChunkSheets splits a padded list into consecutive groups of 9.
func ChunkSheets(padded []image.Image) [][]image.Image {
	chunks := make([][]image.Image, 0, SheetCount(len(padded)))
	for start := 0; start < len(padded); start += SheetSize {
		end := min(start+SheetSize, len(padded))
		chunks = append(chunks, padded[start:end])
	}
	return chunks
}

// Sheet tiles nine calling cards row-major into a 3×3 block, scales it to
// the page width minus both margins, and centers it vertically on a white
// page.
func (c *Composer) Sheet(chunk []image.Image) (*image.NRGBA, error) {
	const op = "compose.Sheet"
	if len(chunk) != SheetSize {
		return nil, apperr.Composition(op, "a sheet needs %d calling cards, got %d", SheetSize, len(chunk))
	}
	block, err := Grid(chunk, SheetSide, SheetSide)
	if err != nil {
		return nil, err
	}

	l := c.Page
	resized, err := c.Fit(block, l.Width-2*l.Margin)
	if err != nil {
		return nil, err
	}
	h := resized.Bounds().Dy()
	if h > l.Height {
		return nil, apperr.Composition(op, "calling card block is %d pixels tall, page is only %d", h, l.Height)
	}

	page := imaging.New(l.Width, l.Height, color.White)
	return imaging.Paste(page, resized, image.Pt(l.Margin, (l.Height-h)/2)), nil
}

// Sheets builds every sheet for the catalog, in catalog order.
func (c *Composer) Sheets(images []image.Image) ([]*image.NRGBA, error) {
	chunks := ChunkSheets(PadForSheets(images))
	sheets := make([]*image.NRGBA, 0, len(chunks))
	for _, chunk := range chunks {
		s, err := c.Sheet(chunk)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}
