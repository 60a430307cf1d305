package render

// Draws the zen garden plant list as a picture: one grid per location, each plant labelled in its
// square.

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pvzedit/config"
	"pvzedit/types"
)

const (
	lineHeight = 13 // because hard-coded basicfont.Face7x13
	charWidth  = 7
	border     = 8
	gap        = 1 // between squares
	maxGrid    = 16
)

type grid struct {
	loc        types.Location
	cols, rows int
}

// Every location shows at least its real size; saves with plants beyond that get a bigger grid,
// up to maxGrid squares a side.
var grids = []grid{
	{types.LocZenGarden, 8, 4},
	{types.LocMushroomGarden, 8, 4},
	{types.LocAquariumGarden, 8, 4},
	{types.LocWheelBarrow, 1, 1},
}

func fit(g grid, plants []types.Plant) grid {
	for _, pl := range plants {
		if pl.Location != g.loc {
			continue
		}
		if int(pl.Column) < maxGrid && int(pl.Column) >= g.cols {
			g.cols = int(pl.Column) + 1
		}
		if int(pl.Row) < maxGrid && int(pl.Row) >= g.rows {
			g.rows = int(pl.Row) + 1
		}
	}
	return g
}

// Garden draws every plant in p.  Plants that don't fit anywhere (unknown locations, silly
// coordinates) are counted at the bottom.
func Garden(p *types.Profile, style config.Render) *image.RGBA {
	plants := p.ZenGarden.Plants
	cell := style.Cell

	laid := []grid{}
	width, height := 0, border+2*lineHeight // title
	for _, g := range grids {
		g = fit(g, plants)
		laid = append(laid, g)
		width = max(width, g.cols*(cell+gap))
		height += 2*lineHeight + g.rows*(cell+gap)
	}
	width += 2 * border
	height += lineHeight + border // footer

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)

	y := border + lineHeight
	text(img, border, y, style.Text, fmt.Sprintf("%v: %v plants", p.General.Name, len(plants)))
	y += lineHeight

	placed := 0
	for _, g := range laid {
		y += lineHeight
		text(img, border, y, style.Text, g.loc.String())
		y += lineHeight / 2

		top := y
		for r := 0; r < g.rows; r++ {
			for c := 0; c < g.cols; c++ {
				draw.Draw(img, square(border, top, cell, c, r), image.NewUniform(style.CellColour), image.Point{}, draw.Src)
			}
		}
		for _, pl := range plants {
			if pl.Location != g.loc || int(pl.Column) >= g.cols || int(pl.Row) >= g.rows {
				continue
			}
			sq := square(border, top, cell, int(pl.Column), int(pl.Row))
			for i, line := range label(pl.Type.String(), cell/charWidth, cell/lineHeight) {
				text(img, sq.Min.X+1, sq.Min.Y+(i+1)*lineHeight-2, style.Text, line)
			}
			placed++
		}
		y = top + g.rows*(cell+gap) + lineHeight/2
	}

	if lost := len(plants) - placed; lost > 0 {
		text(img, border, height-border, style.Text, fmt.Sprintf("%v plants off the grid", lost))
	}
	return img
}

func square(left, top, cell, col, row int) image.Rectangle {
	x := left + col*(cell+gap)
	y := top + row*(cell+gap)
	return image.Rect(x, y, x+cell, y+cell)
}

func text(img draw.Image, x, y int, col color.Color, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// label breaks a name into at most maxLines lines of at most width characters, splitting at
// spaces and hyphens where it can.
func label(name string, width int, maxLines int) []string {
	if width < 1 || maxLines < 1 {
		return nil
	}
	words := strings.FieldsFunc(name, func(r rune) bool { return r == ' ' || r == '-' })
	lines := []string{}
	cur := ""
	for _, word := range words {
		for len(word) > width {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) <= width:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// WritePNG draws p's garden as a PNG.
func WritePNG(w io.Writer, p *types.Profile, style config.Render) error {
	return png.Encode(w, Garden(p, style))
}
