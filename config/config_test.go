package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestColorFromString(t *testing.T) {
	cases := map[string]color.RGBA{
		"R255g128b0": {255, 128, 0, 255},
		"r1G2B3a4":   {1, 2, 3, 4},
		"g42":        {0, 42, 0, 255},
		"":           {0, 0, 0, 255},
		"b10r20":     {20, 0, 10, 255},
	}
	for in, want := range cases {
		got, err := ColorFromString(in)
		if err != nil || got != want {
			t.Errorf("%q: got %v (%v), want %v", in, got, err, want)
		}
	}

	for _, bad := range []string{"R1x2", "R256", "R999g0", "Rg10", "r1R2", "R-1"} {
		if _, err := ColorFromString(bad); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
}

func TestDir(t *testing.T) {
	tmp := t.TempDir()
	iniPath := filepath.Join(tmp, FileName)

	if got := Dir("/from/flag", iniPath); got != "/from/flag" {
		t.Errorf("flag ignored: %v", got)
	}

	if err := SetDir(iniPath, "/from/ini"); err != nil {
		t.Fatal(err)
	}
	if got := Dir("", iniPath); got != "/from/ini" {
		t.Errorf("ini ignored: %v", got)
	}
	if got := Dir("/from/flag", iniPath); got != "/from/flag" {
		t.Errorf("flag should beat the ini: %v", got)
	}
}

func TestSetDirKeepsOtherSettings(t *testing.T) {
	iniPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(iniPath, []byte("dir = old\n\n[render]\nCELL = 20\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := SetDir(iniPath, "new"); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRender(iniPath)
	if err != nil {
		t.Fatal(err)
	}
	if r.Cell != 20 {
		t.Errorf("CELL lost: %v", r.Cell)
	}
	if got := Dir("", iniPath); got != "new" {
		t.Errorf("dir is %v", got)
	}
}

func TestLoadRender(t *testing.T) {
	dir := t.TempDir()

	r, err := LoadRender(filepath.Join(dir, "missing.ini"))
	if err != nil || r != DefaultRender() {
		t.Errorf("missing file: %+v %v", r, err)
	}

	iniPath := filepath.Join(dir, FileName)
	os.WriteFile(iniPath, []byte("[render]\nCELL = 32\nTEXT_COLOUR = R10g20b30\n"), 0644)
	r, err = LoadRender(iniPath)
	if err != nil {
		t.Fatal(err)
	}
	if r.Cell != 32 || r.Text != (color.RGBA{10, 20, 30, 255}) || r.Background != DefaultRender().Background {
		t.Errorf("got %+v", r)
	}

	os.WriteFile(iniPath, []byte("[render]\nCELL = 2\n"), 0644)
	if _, err := LoadRender(iniPath); err == nil {
		t.Error("tiny CELL accepted")
	}
	os.WriteFile(iniPath, []byte("[render]\nCELL_COLOUR = Q1\n"), 0644)
	if _, err := LoadRender(iniPath); err == nil {
		t.Error("bad colour accepted")
	}
}
