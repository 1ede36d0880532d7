// Package ansi renders images as true-colour terminal art using upper half
// block characters: each character cell shows two pixel rows.
package ansi

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

const halfBlock = '▀'

// Render converts img to ANSI art of width×height character cells. With
// trueColor false the cells are emitted without escape codes.
func Render(img image.Image, width, height int, trueColor bool) (string, error) {
	if width < 1 || height < 1 {
		return "", fmt.Errorf("invalid ANSI art size %dx%d", width, height)
	}

	// Resize image to desired dimensions (doubled for half-block characters)
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			// The four pixels that make up one character cell
			col1, _ := colorful.MakeColor(colorAt(resized, x, y))
			col2, _ := colorful.MakeColor(colorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(colorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(colorAt(resized, x+1, y+1))

			// Top pixels as foreground, bottom pixels as background
			fg := toRGBA(average(col1, col2))
			bg := toRGBA(average(col3, col4))

			buffer.WriteString(cell(halfBlock, fg, bg, trueColor))
		}
		buffer.WriteString("\n")
	}
	return buffer.String(), nil
}

// FitHeight returns the cell height that keeps img's aspect ratio at the
// given cell width. Cells are square in pixels because each holds 2×2.
func FitHeight(img image.Image, width int) int {
	b := img.Bounds()
	if b.Dx() == 0 {
		return 1
	}
	return max(1, width*b.Dy()/b.Dx())
}

// colorAt returns the color at a specific coordinate, black out of bounds
func colorAt(img image.Image, x, y int) color.Color {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

// average calculates the average of multiple colors
func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// cell formats a character with 24-bit foreground and background codes.
func cell(char rune, fg, bg color.RGBA, trueColor bool) string {
	if !trueColor {
		return string(char)
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		fg.R, fg.G, fg.B, bg.R, bg.G, bg.B, char)
}

// Strip removes ANSI escape sequences from a string
func Strip(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// VisibleWidth returns the number of runes of s that occupy a column.
func VisibleWidth(s string) int {
	return len([]rune(Strip(s)))
}
