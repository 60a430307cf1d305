package render

import (
	"bytes"
	"image"
	"image/png"
	"reflect"
	"testing"

	"pvzedit/config"
	"pvzedit/types"
)

func testProfile() *types.Profile {
	p := &types.Profile{}
	p.General.Name = "Tester"
	p.ZenGarden.Plants = []types.Plant{
		{Type: 38, Location: types.LocZenGarden, Column: 0, Row: 0},
		{Type: 47, Location: types.LocAquariumGarden, Column: 2, Row: 1},
		{Type: 1, Location: types.LocWheelBarrow},
		{Type: 1, Location: 9},
	}
	return p
}

// hasColour reports whether any pixel in r is exactly c.
func hasColour(img *image.RGBA, r image.Rectangle, c [4]uint8) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			got := img.RGBAAt(x, y)
			if [4]uint8{got.R, got.G, got.B, got.A} == c {
				return true
			}
		}
	}
	return false
}

func TestGarden(t *testing.T) {
	style := config.DefaultRender()
	img := Garden(testProfile(), style)

	wantWidth := 2*border + 8*(style.Cell+gap)
	if img.Bounds().Dx() != wantWidth {
		t.Errorf("width %v, want %v", img.Bounds().Dx(), wantWidth)
	}

	textColour := [4]uint8{style.Text.R, style.Text.G, style.Text.B, style.Text.A}

	// First zen garden square holds a labelled marigold; the one next to it is empty
	top := border + 3*lineHeight + lineHeight/2
	if !hasColour(img, square(border, top, style.Cell, 0, 0), textColour) {
		t.Error("no label in the marigold's square")
	}
	if hasColour(img, square(border, top, style.Cell, 1, 0), textColour) {
		t.Error("text in an empty square")
	}
	c := img.RGBAAt(border+style.Cell+gap+style.Cell/2, top+style.Cell/2)
	if c != style.CellColour {
		t.Errorf("empty square is %v", c)
	}
}

func TestGrowsForStrayPlants(t *testing.T) {
	style := config.DefaultRender()
	p := &types.Profile{}
	p.ZenGarden.Plants = []types.Plant{
		{Location: types.LocMushroomGarden, Column: 11, Row: 0},
		{Location: types.LocMushroomGarden, Column: 1000, Row: 0},
	}
	img := Garden(p, style)
	if img.Bounds().Dx() != 2*border+12*(style.Cell+gap) {
		t.Errorf("width %v", img.Bounds().Dx())
	}
}

func TestLabel(t *testing.T) {
	cases := []struct {
		name     string
		width    int
		lines    int
		expected []string
	}{
		{"Marigold", 6, 3, []string{"Marigo", "ld"}},
		{"Cob Cannon", 6, 3, []string{"Cob", "Cannon"}},
		{"Twin Sunflower", 10, 3, []string{"Twin", "Sunflower"}},
		{"Wall-nut", 10, 3, []string{"Wall nut"}},
		{"Left-facing Repeater", 6, 2, []string{"Left", "facing"}},
		{"Peashooter", 0, 3, nil},
	}
	for _, c := range cases {
		got := label(c.name, c.width, c.lines)
		if !reflect.DeepEqual(got, c.expected) {
			t.Errorf("%q: got %q, want %q", c.name, got, c.expected)
		}
	}
}

func TestWritePNG(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := WritePNG(buf, testProfile(), config.DefaultRender()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Empty() {
		t.Error("empty image")
	}
}
