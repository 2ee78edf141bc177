//go:build windows

package render

import (
	"time"
	"unsafe"

	"github.com/scrimshady/scrimshady/internal/d3d11"
)

// saveBackBuffer copies the current back buffer through a CPU-readable
// staging texture and writes it to disk as PNG.
func (s *Session) saveBackBuffer() (string, error) {
	back, err := s.sc.BackBuffer()
	if err != nil {
		return "", err
	}
	defer d3d11.Release(back)

	src := d3d11.TextureDesc(back)
	desc := d3d11.Texture2DDesc{
		Width:          src.Width,
		Height:         src.Height,
		MipLevels:      1,
		ArraySize:      1,
		Format:         src.Format,
		SampleCount:    1,
		Usage:          d3d11.UsageStaging,
		CPUAccessFlags: d3d11.CPUAccessRead,
	}
	cpu, err := s.dev.CreateTexture2D(&desc, nil)
	if err != nil {
		return "", err
	}
	defer d3d11.Release(cpu)

	ctx := s.dev.Context()
	ctx.CopyResource(cpu, back)
	mapped, err := ctx.MapRead(cpu)
	if err != nil {
		return "", err
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(mapped.PData)),
		int(mapped.RowPitch)*int(src.Height))
	img := bgraToRGBA(data, int(mapped.RowPitch), int(src.Width), int(src.Height))
	ctx.Unmap(cpu)

	return writePNG(img, s.shotDir, s.shotPrefix, time.Now())
}
