// Package catalog loads the ordered calling card images and the game card
// templates from their directories.
package catalog

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/arcanaland/loteria/internal/apperr"
	"github.com/arcanaland/loteria/internal/card"
)

// Catalog is the ordered list of calling cards. Card i of the catalog is
// Cards[i-1].
type Catalog struct {
	Dir   string
	Cards []*card.CallingCard
}

// ListFiles returns the names of the regular files in dir, sorted.
// Symbolic links are followed; directories are skipped.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperr.IO("catalog.ListFiles", err)
	}

	var names []string
	for _, entry := range entries {
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, apperr.IO("catalog.ListFiles", err)
		}
		if info.Mode().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load decodes every file of dir, in file name order.
func Load(dir string) (*Catalog, error) {
	names, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	return load(dir, names)
}

// LoadExpected loads dir and fails with an AssetCountMismatch, before
// decoding anything, unless it holds exactly expected files.
func LoadExpected(dir string, expected int) (*Catalog, error) {
	names, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(names) != expected {
		return nil, apperr.AssetCount("catalog.LoadExpected",
			fmt.Sprintf("calling card images in %s", dir), expected, len(names))
	}
	return load(dir, names)
}

// LoadTemplates decodes the game card templates of dir and fails with an
// AssetCountMismatch when fewer than need are present. Extra templates are
// loaded but unused.
func LoadTemplates(dir string, need int) ([]image.Image, error) {
	names, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(names) < need {
		return nil, apperr.AssetCount("catalog.LoadTemplates",
			fmt.Sprintf("game card templates in %s", dir), need, len(names))
	}
	c, err := load(dir, names)
	if err != nil {
		return nil, err
	}
	return c.Images(), nil
}

func load(dir string, names []string) (*Catalog, error) {
	c := &Catalog{Dir: dir, Cards: make([]*card.CallingCard, 0, len(names))}
	for i, name := range names {
		path := filepath.Join(dir, name)
		img, err := imaging.Open(path)
		if err != nil {
			return nil, apperr.IO("catalog.Load", fmt.Errorf("decode %s: %w", path, err))
		}
		c.Cards = append(c.Cards, &card.CallingCard{
			Index: i + 1,
			Name:  name,
			Path:  path,
			Image: img,
		})
	}
	return c, nil
}

// Len returns the number of calling cards.
func (c *Catalog) Len() int {
	return len(c.Cards)
}

// Card returns calling card index (1-based).
func (c *Catalog) Card(index int) (*card.CallingCard, error) {
	if index < 1 || index > len(c.Cards) {
		return nil, apperr.Input("catalog.Card", "calling card %d is outside 1..%d", index, len(c.Cards))
	}
	return c.Cards[index-1], nil
}

// Images returns the card images in catalog order.
func (c *Catalog) Images() []image.Image {
	imgs := make([]image.Image, len(c.Cards))
	for i, cc := range c.Cards {
		imgs[i] = cc.Image
	}
	return imgs
}

// Select returns the images of the given 1-based indices, in that order.
func (c *Catalog) Select(indices []int) ([]image.Image, error) {
	imgs := make([]image.Image, len(indices))
	for i, idx := range indices {
		cc, err := c.Card(idx)
		if err != nil {
			return nil, err
		}
		imgs[i] = cc.Image
	}
	return imgs, nil
}
