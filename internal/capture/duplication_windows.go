//go:build windows

package capture

import (
	"fmt"
	"log/slog"

	"github.com/scrimshady/scrimshady/internal/d3d11"
)

// dxgiDuplicator drives IDXGIOutputDuplication for one display output.
type dxgiDuplicator struct {
	handle   uintptr // IDXGIOutputDuplication
	width    uint32
	height   uint32
	frameTex uintptr // held between Acquire and ReleaseFrame
}

// NewDXGIEngine wires a capture engine to the given device and display
// index. The duplicator itself is created lazily on first acquire.
func NewDXGIEngine(dev *d3d11.Device, displayIndex int, log *slog.Logger) *Engine {
	return NewEngine(func() (outputDuplicator, error) {
		return newDXGIDuplicator(dev, displayIndex)
	}, log)
}

func newDXGIDuplicator(dev *d3d11.Device, displayIndex int) (*dxgiDuplicator, error) {
	adapter, err := dev.Adapter()
	if err != nil {
		return nil, translate(err)
	}
	defer d3d11.Release(adapter)

	output, err := d3d11.EnumOutput(adapter, uint32(displayIndex))
	if err != nil {
		return nil, fmt.Errorf("display %d: %w", displayIndex, translate(err))
	}
	defer d3d11.Release(output)

	dupl, err := d3d11.DuplicateOutput(output, dev.Handle())
	if err != nil {
		return nil, translate(err)
	}

	desc := d3d11.DuplicationDesc(dupl)
	return &dxgiDuplicator{
		handle: dupl,
		width:  desc.ModeDesc.Width,
		height: desc.ModeDesc.Height,
	}, nil
}

func (d *dxgiDuplicator) Acquire(timeoutMS uint32) (uintptr, FrameInfo, error) {
	tex, info, err := d3d11.AcquireNextFrame(d.handle, timeoutMS)
	if err != nil {
		return 0, FrameInfo{}, translate(err)
	}
	d.frameTex = tex
	return tex, FrameInfo{
		PresentTime:       info.LastPresentTime,
		AccumulatedFrames: info.AccumulatedFrames,
	}, nil
}

func (d *dxgiDuplicator) ReleaseFrame() error {
	if d.frameTex != 0 {
		d3d11.Release(d.frameTex)
		d.frameTex = 0
	}
	if err := d3d11.ReleaseFrame(d.handle); err != nil {
		return translate(err)
	}
	return nil
}

func (d *dxgiDuplicator) ScreenSize() (uint32, uint32) {
	return d.width, d.height
}

func (d *dxgiDuplicator) Close() {
	if d.frameTex != 0 {
		d3d11.Release(d.frameTex)
		d.frameTex = 0
	}
	d3d11.Release(d.handle)
	d.handle = 0
}

// translate maps DXGI HRESULT failures onto the package sentinels so
// the portable engine can classify without knowing about COM.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case d3d11.IsWaitTimeout(err):
		return ErrTimeout
	case d3d11.IsAccessLost(err):
		return fmt.Errorf("%w: %v", ErrAccessLost, err)
	case d3d11.IsDeviceLost(err):
		return fmt.Errorf("%w: %v", ErrDeviceLost, err)
	default:
		return err
	}
}

var _ outputDuplicator = (*dxgiDuplicator)(nil)
