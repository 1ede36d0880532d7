// Package compose tiles calling card images into game card inserts and
// reference sheets, and frames inserts inside game card templates.
package compose

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/arcanaland/loteria/internal/apperr"
)

// Grid tiles images into one picture made of cols horizontal strips, each
// strip holding rows images side by side. Strip i, slot j shows
// images[i*cols+j]. The stride is cols in both directions, so a non-square
// grid repeats or skips images; that placement is what printed cards have
// always used and must not change.
//
// Every image must have the same size.
func Grid(images []image.Image, cols, rows int) (*image.NRGBA, error) {
	const op = "compose.Grid"
	if cols < 1 || rows < 1 {
		return nil, apperr.Composition(op, "grid must be at least 1×1, got %d×%d", cols, rows)
	}
	if len(images) == 0 {
		return nil, apperr.Composition(op, "no images to tile")
	}

	size, err := commonSize(images)
	if err != nil {
		return nil, err
	}

	canvas := imaging.New(rows*size.X, cols*size.Y, color.Transparent)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			idx := i*cols + j
			if idx >= len(images) {
				return nil, apperr.Composition(op, "tile (%d,%d) needs image %d but only %d were given",
					i, j, idx+1, len(images))
			}
			src := images[idx]
			dst := image.Rect(j*size.X, i*size.Y, (j+1)*size.X, (i+1)*size.Y)
			draw.Draw(canvas, dst, src, src.Bounds().Min, draw.Src)
		}
	}
	return canvas, nil
}

// CheckGrid fails with a CompositionError when a cols×rows grid of
// cols*rows images cannot be tiled by Grid. With the cols stride the last
// tile reads image (cols-1)*cols+rows, which only exists when cols <= rows.
func CheckGrid(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return apperr.Composition("compose.CheckGrid", "grid must be at least 1×1, got %d×%d", cols, rows)
	}
	if last := (cols-1)*cols + rows; last > cols*rows {
		return apperr.Composition("compose.CheckGrid",
			"a %d×%d grid needs image %d but a game card holds only %d; use no more columns than rows",
			cols, rows, last, cols*rows)
	}
	return nil
}

// commonSize returns the size shared by all images.
func commonSize(images []image.Image) (image.Point, error) {
	size := images[0].Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return image.Point{}, apperr.Composition("compose.Grid", "image 1 is empty")
	}
	for n, img := range images[1:] {
		if s := img.Bounds().Size(); s != size {
			return image.Point{}, apperr.Composition("compose.Grid",
				"image %d is %dx%d, expected %dx%d like image 1", n+2, s.X, s.Y, size.X, size.Y)
		}
	}
	return size, nil
}
