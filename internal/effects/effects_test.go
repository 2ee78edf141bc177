package effects

import (
	"image"
	"image/color"
	"testing"
)

func TestRosterOrder(t *testing.T) {
	want := []string{"passthru", "wobbly", "lightning", "sorty", "tiles"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("roster has %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("roster[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRosterKinds(t *testing.T) {
	for _, d := range Roster() {
		if d.Source == "" {
			t.Errorf("effect %q has empty source", d.Name)
		}
		wantKind := KindSimple
		if d.Name == "tiles" {
			wantKind = KindTiles
		}
		if d.Kind != wantKind {
			t.Errorf("effect %q kind = %v, want %v", d.Name, d.Kind, wantKind)
		}
	}
}

func TestIndexByName(t *testing.T) {
	if idx, ok := IndexByName("wobbly"); !ok || idx != 1 {
		t.Errorf("IndexByName(wobbly) = (%d, %v), want (1, true)", idx, ok)
	}
	if _, ok := IndexByName("nope"); ok {
		t.Error("IndexByName(nope) found a match")
	}
}

func TestGlyphSheetGeometry(t *testing.T) {
	sheet, err := GlyphSheet()
	if err != nil {
		t.Fatalf("GlyphSheet: %v", err)
	}
	b := sheet.Bounds()
	if b.Dx() != 128 || b.Dy() != 256 {
		t.Fatalf("glyph sheet is %dx%d, want 128x256", b.Dx(), b.Dy())
	}
}

func TestTileBrightnessOfGlyphSheet(t *testing.T) {
	sheet, err := GlyphSheet()
	if err != nil {
		t.Fatalf("GlyphSheet: %v", err)
	}
	lookup, err := TileBrightness(sheet, TileWidth, TileHeight)
	if err != nil {
		t.Fatalf("TileBrightness: %v", err)
	}
	// 128x256 sheet with 8x16 tiles is a 16x16 grid.
	if len(lookup) != 256 {
		t.Fatalf("lookup has %d entries, want 256", len(lookup))
	}
	for i, v := range lookup {
		if v < 0 || v > 1 {
			t.Errorf("lookup[%d] = %f, outside [0,1]", i, v)
		}
	}
	// Cells are ordered by ascending ink density.
	if lookup[0] > lookup[len(lookup)-1] {
		t.Errorf("lookup not ascending: first %f > last %f", lookup[0], lookup[len(lookup)-1])
	}
}

func TestTileBrightnessUniformImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.White)
		}
	}
	lookup, err := TileBrightness(img, 8, 16)
	if err != nil {
		t.Fatalf("TileBrightness: %v", err)
	}
	if len(lookup) != 4 {
		t.Fatalf("lookup has %d entries, want 4", len(lookup))
	}
	for i, v := range lookup {
		if v < 0.99 || v > 1.0 {
			t.Errorf("white tile %d brightness = %f, want ~1", i, v)
		}
	}
}

func TestTileBrightnessRejectsPartialTiles(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 16))
	if _, err := TileBrightness(img, 8, 16); err == nil {
		t.Error("10-wide image accepted for 8-wide tiles")
	}
	if _, err := TileBrightness(img, 0, 16); err == nil {
		t.Error("zero tile width accepted")
	}
}
