package compose

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/arcanaland/loteria/internal/apperr"
)

// InsertLayout places a game card insert inside its template.
type InsertLayout struct {
	Width   int // insert width after resizing, height follows the aspect ratio
	OffsetX int
	OffsetY int
}

// DefaultInsertLayout fits the stock game card templates.
func DefaultInsertLayout() InsertLayout {
	return InsertLayout{Width: 1237, OffsetX: 154, OffsetY: 182}
}

// Composer builds game cards and sheets with fixed layouts.
type Composer struct {
	Insert InsertLayout
	// Page is the blank page calling card sheets are laid out on.
	Page   SheetLayout
	Interp resize.InterpolationFunction
}

// NewComposer returns a Composer with the default layouts and Lanczos3
// resampling.
func NewComposer() *Composer {
	return &Composer{
		Insert: DefaultInsertLayout(),
		Page:   DefaultSheetLayout(),
		Interp: resize.Lanczos3,
	}
}

// GameCard tiles images into a cols×rows insert and, when template is not
// nil, frames the insert inside a copy of template. Without a template the
// insert is returned as the card.
func (c *Composer) GameCard(images []image.Image, template image.Image, cols, rows int) (insert, card *image.NRGBA, err error) {
	insert, err = Grid(images, cols, rows)
	if err != nil {
		return nil, nil, err
	}
	if template == nil {
		return insert, insert, nil
	}
	card, err = c.Overlay(insert, template)
	if err != nil {
		return nil, nil, err
	}
	return insert, card, nil
}

// Overlay resizes insert to the layout width and pastes it over a copy of
// template at the layout offset. Pixels outside the pasted rectangle keep
// the template's values.
func (c *Composer) Overlay(insert, template image.Image) (*image.NRGBA, error) {
	const op = "compose.Overlay"
	resized, err := c.Fit(insert, c.Insert.Width)
	if err != nil {
		return nil, err
	}

	tb := template.Bounds()
	dst := resized.Bounds().Add(image.Pt(c.Insert.OffsetX, c.Insert.OffsetY))
	if c.Insert.OffsetX < 0 || c.Insert.OffsetY < 0 || !dst.In(image.Rect(0, 0, tb.Dx(), tb.Dy())) {
		return nil, apperr.Composition(op, "insert %dx%d at (%d,%d) does not fit template %dx%d",
			resized.Bounds().Dx(), resized.Bounds().Dy(), c.Insert.OffsetX, c.Insert.OffsetY, tb.Dx(), tb.Dy())
	}
	return imaging.Paste(template, resized, image.Pt(c.Insert.OffsetX, c.Insert.OffsetY)), nil
}

// Fit resizes img to width, scaling the height by the same factor and
// truncating it to whole pixels.
func (c *Composer) Fit(img image.Image, width int) (*image.NRGBA, error) {
	const op = "compose.Fit"
	b := img.Bounds()
	if width < 1 || b.Dx() == 0 {
		return nil, apperr.Composition(op, "cannot fit %dx%d image to width %d", b.Dx(), b.Dy(), width)
	}
	height := int(float64(width) / float64(b.Dx()) * float64(b.Dy()))
	if height < 1 {
		return nil, apperr.Composition(op, "%dx%d image collapses to zero height at width %d", b.Dx(), b.Dy(), width)
	}
	return imaging.Clone(resize.Resize(uint(width), uint(height), img, c.Interp)), nil
}

var interpolations = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
}

// ParseInterpolation maps a configuration name to a resampling function.
func ParseInterpolation(name string) (resize.InterpolationFunction, error) {
	if name == "" {
		return resize.Lanczos3, nil
	}
	if f, ok := interpolations[strings.ToLower(name)]; ok {
		return f, nil
	}
	return 0, apperr.Input("compose.ParseInterpolation", "unknown interpolation %q", name)
}

// InterpolationNames lists the accepted interpolation names.
const InterpolationNames = "nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3"
