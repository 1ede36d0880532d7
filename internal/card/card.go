package card

import "image"

// CallingCard is one image of the catalog.
type CallingCard struct {
	Index int    // 1-based position in the catalog
	Name  string // file name the card was loaded from
	Path  string
	Image image.Image
}

// Size returns the pixel size of the card image.
func (c *CallingCard) Size() image.Point {
	if c.Image == nil {
		return image.Point{}
	}
	return c.Image.Bounds().Size()
}
