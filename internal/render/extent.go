// Package render composites captured desktop frames through the active
// effect into the window's swap chain.
package render

import "image"

// Extent describes how the window's source rectangle relates to the
// captured screen: how far it overhangs each screen edge and the sizes
// derived from that. The extended texture is the client size grown by
// the overhang on each axis; the visible region is what remains
// on-screen and is the only part copied from the captured frame.
type Extent struct {
	// Overhang per screen edge, in pixels, zero when the source rect
	// stays inside that edge.
	Left, Top, Right, Bottom int

	// Visible is the on-screen part of the source rectangle, in
	// screen coordinates. Empty when the window is fully off-screen.
	Visible image.Rectangle
}

// ComputeExtent relates the source rectangle (the client area in screen
// coordinates) to a screen of the given size.
func ComputeExtent(src image.Rectangle, screenW, screenH int) Extent {
	screen := image.Rect(0, 0, screenW, screenH)
	return Extent{
		Left:    max(0, -src.Min.X),
		Top:     max(0, -src.Min.Y),
		Right:   max(0, src.Max.X-screenW),
		Bottom:  max(0, src.Max.Y-screenH),
		Visible: src.Intersect(screen),
	}
}

// Identity reports whether the source rect lies fully on-screen, making
// the extend pass a plain copy.
func (e Extent) Identity() bool {
	return e.Left == 0 && e.Top == 0 && e.Right == 0 && e.Bottom == 0
}

// ExtendedSize is the destination size of the extend pass: the source
// rectangle grown by the overhang on each axis.
func (e Extent) ExtendedSize(clientW, clientH int) (int, int) {
	return clientW + e.Left + e.Right, clientH + e.Top + e.Bottom
}

// Offset is the position of the visible region inside the extended
// texture, which equals the left/top overhang.
func (e Extent) Offset() image.Point {
	return image.Pt(e.Left, e.Top)
}

// Empty reports whether nothing of the source rect is on-screen.
func (e Extent) Empty() bool {
	return e.Visible.Empty()
}
