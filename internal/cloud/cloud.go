// Package cloud renders word clouds as PNG images.
package cloud

import (
	"errors"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/idelchi/vidstat/internal/vidstat"
)

const (
	// DefaultWidth is the default image width in pixels.
	DefaultWidth = 1000
	// DefaultHeight is the default image height in pixels.
	DefaultHeight = 600
	// MaxFontSize is the point size of the most frequent word.
	MaxFontSize = 110
	// MinFontSize is the smallest point size drawn.
	MinFontSize = 12

	spiralStep  = 0.1
	spiralSteps = 6000
	padding     = 2
)

// palette holds the word colors, cycled by rank.
//
//nolint:gochecknoglobals // Color table
var palette = [][3]float64{
	{0.12, 0.47, 0.71},
	{1.00, 0.50, 0.05},
	{0.17, 0.63, 0.17},
	{0.84, 0.15, 0.16},
	{0.58, 0.40, 0.74},
	{0.55, 0.34, 0.29},
	{0.09, 0.75, 0.81},
}

// PNG writes a word cloud image to Path.
type PNG struct {
	// Path is the output file.
	Path string
	// Width and Height are the image dimensions (0 uses the defaults).
	Width, Height int
}

// New returns a PNG renderer with the default dimensions.
func New(path string) PNG {
	return PNG{Path: path, Width: DefaultWidth, Height: DefaultHeight}
}

type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) overlaps(o rect) bool {
	return r.x0 < o.x1 && o.x0 < r.x1 && r.y0 < o.y1 && o.y0 < r.y1
}

// Render implements vidstat.CloudRenderer. Words are laid out largest first
// on an Archimedean spiral from the center; words that do not fit are skipped.
func (p PNG) Render(words []vidstat.WordCount) error {
	if p.Path == "" {
		return errors.New("word cloud output path is empty")
	}

	if len(words) == 0 {
		return errors.New("no words to render")
	}

	width, height := p.Width, p.Height
	if width <= 0 {
		width = DefaultWidth
	}

	if height <= 0 {
		height = DefaultHeight
	}

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parsing font: %w", err)
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	maxCount := float64(words[0].Count)
	for _, w := range words {
		maxCount = math.Max(maxCount, float64(w.Count))
	}

	cx, cy := float64(width)/2, float64(height)/2

	var placed []rect

	for i, w := range words {
		size := math.Max(MinFontSize, MaxFontSize*float64(w.Count)/maxCount)
		dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{Size: size}))

		tw, th := dc.MeasureString(w.Word)

		box, ok := place(placed, tw+padding, th+padding, cx, cy, float64(width), float64(height))
		if !ok {
			continue
		}

		placed = append(placed, box)

		c := palette[i%len(palette)]
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawStringAnchored(w.Word, (box.x0+box.x1)/2, (box.y0+box.y1)/2, 0.5, 0.5)
	}

	if err := dc.SavePNG(p.Path); err != nil {
		return fmt.Errorf("writing word cloud %q: %w", p.Path, err)
	}

	return nil
}

// place finds the first free w×h box along a spiral around (cx, cy).
//
//nolint:varnamelen // geometry
func place(placed []rect, w, h, cx, cy, maxX, maxY float64) (rect, bool) {
	for step := range spiralSteps {
		t := spiralStep * float64(step)
		x := cx + t*math.Cos(t)*2
		y := cy + t*math.Sin(t)

		box := rect{x0: x - w/2, y0: y - h/2, x1: x + w/2, y1: y + h/2}
		if box.x0 < 0 || box.y0 < 0 || box.x1 > maxX || box.y1 > maxY {
			continue
		}

		free := true

		for _, other := range placed {
			if box.overlaps(other) {
				free = false

				break
			}
		}

		if free {
			return box, true
		}
	}

	return rect{}, false
}
