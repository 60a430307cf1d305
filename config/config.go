package config

// Settings live in pvzedit.ini in the working directory:
//
//	dir = C:/ProgramData/PopCap Games/PlantsVsZombies/userdata
//
//	[render]
//	CELL = 48
//	BACKGROUND_COLOUR = R40g96b40
//	CELL_COLOUR = R96g64b32
//	TEXT_COLOUR = R255g255b255

import (
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"unicode"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

const FileName = "pvzedit.ini"

// DefaultDirs are the places the game keeps its userdata, most likely first.
func DefaultDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			"C:/ProgramData/PopCap Games/PlantsVsZombies/userdata",
			"C:/ProgramData/Steam/PlantsVsZombies/userdata_backup",
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		return []string{filepath.Join(home, "Library/Application Support/PopCap/PlantsVsZombiesMac/userdata")}
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Dir picks the userdata directory: flagDir if given, then the ini file, then whichever default
// exists, and finally the working directory.
func Dir(flagDir string, iniPath string) string {
	if flagDir != "" {
		return flagDir
	}

	cfg, err := ini.Load(iniPath)
	if err == nil {
		// default section can be represented as empty string
		dir := cfg.Section("").Key("dir").String()
		if dir != "" {
			return dir
		}
	}

	for _, dir := range DefaultDirs() {
		if isDir(dir) {
			return dir
		}
	}

	wd, _ := os.Getwd()
	return wd
}

// SetDir remembers dir in the ini file, keeping whatever else is in there.
func SetDir(iniPath string, dir string) error {
	cfg, err := ini.LooseLoad(iniPath)
	if err != nil {
		return err
	}
	cfg.Section("").Key("dir").SetValue(dir)
	return cfg.SaveTo(iniPath)
}

// Render is how the garden picture looks.
type Render struct {
	Cell       int // pixels per garden square
	Background color.RGBA
	CellColour color.RGBA
	Text       color.RGBA
}

func DefaultRender() Render {
	return Render{
		Cell:       48,
		Background: color.RGBA{40, 96, 40, 0xFF},
		CellColour: color.RGBA{96, 64, 32, 0xFF},
		Text:       color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	}
}

// LoadRender reads the [render] section over the defaults.  A missing ini file just means defaults.
func LoadRender(iniPath string) (Render, error) {
	out := DefaultRender()
	cfg, err := ini.LooseLoad(iniPath)
	if err != nil {
		return out, err
	}
	sec := cfg.Section("render")

	if sec.HasKey("CELL") {
		n, err := sec.Key("CELL").Int()
		if err != nil || n < 8 {
			return out, errors.Errorf("CELL must be a number of pixels, at least 8 (got %q)", sec.Key("CELL").String())
		}
		out.Cell = n
	}

	for key, target := range map[string]*color.RGBA{
		"BACKGROUND_COLOUR": &out.Background,
		"CELL_COLOUR":       &out.CellColour,
		"TEXT_COLOUR":       &out.Text,
	} {
		if !sec.HasKey(key) {
			continue
		}
		col, err := ColorFromString(sec.Key(key).String())
		if err != nil {
			return out, errors.Wrap(err, key)
		}
		*target = col
	}
	return out, nil
}

// ColorFromString converts an ini file colour string (e.g. "R255g128b0") into a color.RGBA.
// Each component is a letter (r, g, b or a, any case) followed by 0 to 255.  Alpha is 0xff if
// omitted; r, g and b are 0 if omitted.
func ColorFromString(str string) (color.RGBA, error) {
	out := color.RGBA{0, 0, 0, 0xFF}
	targets := map[rune]*uint8{'r': &out.R, 'g': &out.G, 'b': &out.B, 'a': &out.A}
	seen := map[rune]bool{}

	rest := []rune(str)
	for len(rest) > 0 {
		name := unicode.ToLower(rest[0])
		target, ok := targets[name]
		if !ok {
			return out, errors.Errorf("%q: unexpected colour component %q (not r, g, b or a)", str, rest[0])
		}
		if seen[name] {
			return out, errors.Errorf("%q: %q given twice", str, rest[0])
		}
		seen[name] = true

		n := 1
		for n < len(rest) && unicode.IsDigit(rest[n]) {
			n++
		}
		value, err := strconv.Atoi(string(rest[1:n]))
		if err != nil || value > 255 {
			return out, errors.Errorf("%q: %q needs a value from 0 to 255", str, rest[0])
		}
		*target = uint8(value)
		rest = rest[n:]
	}
	return out, nil
}
