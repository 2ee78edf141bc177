package render

import (
	"image"
	"testing"
)

func TestComputeExtentFullyOnScreen(t *testing.T) {
	ext := ComputeExtent(image.Rect(100, 100, 900, 700), 1920, 1080)
	if !ext.Identity() {
		t.Errorf("on-screen rect not identity: %+v", ext)
	}
	if w, h := ext.ExtendedSize(800, 600); w != 800 || h != 600 {
		t.Errorf("ExtendedSize = %dx%d, want 800x600", w, h)
	}
	if ext.Visible != image.Rect(100, 100, 900, 700) {
		t.Errorf("Visible = %v, want full source rect", ext.Visible)
	}
}

func TestComputeExtentLeftOverhang(t *testing.T) {
	// 800x600 window dragged 50px past the left screen edge.
	ext := ComputeExtent(image.Rect(-50, 0, 750, 600), 1920, 1080)
	if ext.Left != 50 || ext.Top != 0 || ext.Right != 0 || ext.Bottom != 0 {
		t.Fatalf("overhangs = %d/%d/%d/%d, want 50/0/0/0",
			ext.Left, ext.Top, ext.Right, ext.Bottom)
	}
	if w, h := ext.ExtendedSize(800, 600); w != 850 || h != 600 {
		t.Errorf("ExtendedSize = %dx%d, want 850x600", w, h)
	}
	if got := ext.Offset(); got != image.Pt(50, 0) {
		t.Errorf("Offset = %v, want (50,0)", got)
	}
	if ext.Visible != image.Rect(0, 0, 750, 600) {
		t.Errorf("Visible = %v, want (0,0)-(750,600)", ext.Visible)
	}
}

func TestComputeExtentAllEdges(t *testing.T) {
	// Window larger than the screen on every side.
	ext := ComputeExtent(image.Rect(-10, -20, 1950, 1110), 1920, 1080)
	if ext.Left != 10 || ext.Top != 20 || ext.Right != 30 || ext.Bottom != 30 {
		t.Fatalf("overhangs = %d/%d/%d/%d, want 10/20/30/30",
			ext.Left, ext.Top, ext.Right, ext.Bottom)
	}
	if ext.Visible != image.Rect(0, 0, 1920, 1080) {
		t.Errorf("Visible = %v, want full screen", ext.Visible)
	}
}

func TestComputeExtentFullyOffScreen(t *testing.T) {
	ext := ComputeExtent(image.Rect(2000, 0, 2800, 600), 1920, 1080)
	if !ext.Empty() {
		t.Errorf("fully off-screen rect not empty: %+v", ext)
	}
}

// clampedRead mirrors the compute shader's sampling rule on the CPU:
// for a destination coordinate, the source coordinate is dst - offset
// clamped to the valid source bounds.
func clampedRead(dstX, dstY int, ext Extent) (int, int) {
	off := ext.Offset()
	sx := min(max(dstX-off.X, 0), ext.Visible.Dx()-1)
	sy := min(max(dstY-off.Y, 0), ext.Visible.Dy()-1)
	return sx, sy
}

func TestClampedReadRepeatsEdge(t *testing.T) {
	ext := ComputeExtent(image.Rect(-50, 0, 750, 600), 1920, 1080)

	// Padding columns left of the visible region read column 0.
	for _, x := range []int{0, 25, 49} {
		if sx, sy := clampedRead(x, 10, ext); sx != 0 || sy != 10 {
			t.Errorf("clampedRead(%d,10) = (%d,%d), want (0,10)", x, sx, sy)
		}
	}
	// Inside the visible region the read is an identity shift.
	if sx, sy := clampedRead(50, 0, ext); sx != 0 || sy != 0 {
		t.Errorf("clampedRead(50,0) = (%d,%d), want (0,0)", sx, sy)
	}
	if sx, _ := clampedRead(799, 0, ext); sx != 749 {
		t.Errorf("clampedRead(799,0).x = %d, want 749", sx)
	}
	// Beyond the visible region the right edge repeats.
	if sx, _ := clampedRead(849, 0, ext); sx != 749 {
		t.Errorf("clampedRead(849,0).x = %d, want 749", sx)
	}
}
