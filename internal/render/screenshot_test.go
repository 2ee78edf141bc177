package render

import (
	"testing"
	"time"
)

func TestScreenshotName(t *testing.T) {
	ts := time.Date(2026, 8, 27, 14, 5, 9, 42_000_000, time.Local)
	got := screenshotName("scrimshady", ts)
	want := "scrimshady_2026-08-27_14_05_09_042.png"
	if got != want {
		t.Errorf("screenshotName = %q, want %q", got, want)
	}
}

func TestBGRAToRGBA(t *testing.T) {
	// 2x2 BGRA with a padded row pitch of 12 bytes.
	data := []byte{
		0xFF, 0x00, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0xAA, 0xBB, 0xCC, 0xDD, // row 0 + pad
		0x00, 0x00, 0xFF, 0xFF, 0x10, 0x20, 0x30, 0x00, 0xAA, 0xBB, 0xCC, 0xDD, // row 1 + pad
	}
	img := bgraToRGBA(data, 12, 2, 2)

	checks := []struct {
		x, y       int
		r, g, b, a uint8
	}{
		{0, 0, 0x00, 0x00, 0xFF, 0xFF}, // blue
		{1, 0, 0x00, 0xFF, 0x00, 0xFF}, // green
		{0, 1, 0xFF, 0x00, 0x00, 0xFF}, // red
		{1, 1, 0x30, 0x20, 0x10, 0xFF}, // alpha forced opaque
	}
	for _, c := range checks {
		i := img.PixOffset(c.x, c.y)
		got := [4]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
		want := [4]uint8{c.r, c.g, c.b, c.a}
		if got != want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, want)
		}
	}
}

func TestWritePNGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := bgraToRGBA(make([]byte, 4*4*4), 16, 4, 4)
	path, err := writePNG(img, dir, "test", time.Now())
	if err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}
