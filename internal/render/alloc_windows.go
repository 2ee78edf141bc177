//go:build windows

package render

import "github.com/scrimshady/scrimshady/internal/d3d11"

// deviceAllocator backs the resource cache with the D3D11 device and
// the session's swap chain.
type deviceAllocator struct {
	dev *d3d11.Device
	sc  *d3d11.SwapChain
}

func (a *deviceAllocator) AllocStaging(w, h uint32) (stagingSet, error) {
	desc := d3d11.Texture2DDesc{
		Width:       w,
		Height:      h,
		MipLevels:   1,
		ArraySize:   1,
		Format:      d3d11.FormatB8G8R8A8Unorm,
		SampleCount: 1,
		Usage:       d3d11.UsageDefault,
		BindFlags:   d3d11.BindShaderResource,
	}
	tex, err := a.dev.CreateTexture2D(&desc, nil)
	if err != nil {
		return stagingSet{}, err
	}
	srv, err := a.dev.CreateTexture2DSRV(tex, d3d11.FormatB8G8R8A8Unorm)
	if err != nil {
		d3d11.Release(tex)
		return stagingSet{}, err
	}
	return stagingSet{Texture: tex, SRV: srv, W: w, H: h}, nil
}

func (a *deviceAllocator) AllocExtended(w, h uint32) (extendedSet, error) {
	desc := d3d11.Texture2DDesc{
		Width:       w,
		Height:      h,
		MipLevels:   1,
		ArraySize:   1,
		Format:      d3d11.FormatB8G8R8A8Unorm,
		SampleCount: 1,
		Usage:       d3d11.UsageDefault,
		BindFlags:   d3d11.BindShaderResource | d3d11.BindUnorderedAccess,
	}
	tex, err := a.dev.CreateTexture2D(&desc, nil)
	if err != nil {
		return extendedSet{}, err
	}
	srv, err := a.dev.CreateTexture2DSRV(tex, d3d11.FormatB8G8R8A8Unorm)
	if err != nil {
		d3d11.Release(tex)
		return extendedSet{}, err
	}
	uav, err := a.dev.CreateTexture2DUAV(tex, d3d11.FormatB8G8R8A8Unorm)
	if err != nil {
		d3d11.Release(srv)
		d3d11.Release(tex)
		return extendedSet{}, err
	}
	return extendedSet{Texture: tex, SRV: srv, UAV: uav, W: w, H: h}, nil
}

func (a *deviceAllocator) AllocRenderTarget() (uintptr, error) {
	back, err := a.sc.BackBuffer()
	if err != nil {
		return 0, err
	}
	defer d3d11.Release(back)
	return a.dev.CreateRenderTargetView(back)
}

func (a *deviceAllocator) Free(handle uintptr) {
	d3d11.Release(handle)
}

var _ textureAllocator = (*deviceAllocator)(nil)
