//go:build windows

package d3d11

import (
	"syscall"
	"unsafe"
)

var (
	modD3D11         = syscall.NewLazyDLL("d3d11.dll")
	procCreateDevice = modD3D11.NewProc("D3D11CreateDevice")
)

// Device wraps ID3D11Device together with its immediate context.
type Device struct {
	handle uintptr
	ctx    *Context
}

// Context wraps ID3D11DeviceContext.
type Context struct {
	handle uintptr
}

// SwapChain wraps IDXGISwapChain1.
type SwapChain struct {
	handle uintptr
}

// CreateDevice creates a hardware D3D11 device with BGRA support and
// returns it with its immediate context.
func CreateDevice() (*Device, error) {
	var dev, ctx uintptr
	hr, _, _ := procCreateDevice.Call(
		0, // default adapter
		d3dDriverTypeHardware,
		0, // no software rasterizer
		d3d11CreateDeviceBGRASupport,
		0, 0, // default feature levels
		d3d11SDKVersion,
		uintptr(unsafe.Pointer(&dev)),
		0, // chosen feature level not needed
		uintptr(unsafe.Pointer(&ctx)),
	)
	if err := hrError("D3D11CreateDevice", hr); err != nil {
		return nil, err
	}
	return &Device{handle: dev, ctx: &Context{handle: ctx}}, nil
}

// Context returns the device's immediate context.
func (d *Device) Context() *Context { return d.ctx }

// Handle exposes the raw ID3D11Device pointer.
func (d *Device) Handle() uintptr { return d.handle }

// Release frees the context and the device.
func (d *Device) Release() {
	if d.ctx != nil {
		comRelease(&d.ctx.handle)
	}
	comRelease(&d.handle)
}

func comRelease(p *uintptr) {
	Release(*p)
	*p = 0
}

// Adapter returns the IDXGIAdapter the device was created on. The caller
// owns the returned handle.
func (d *Device) Adapter() (uintptr, error) {
	dxgiDev, err := queryInterface("ID3D11Device::QueryInterface(IDXGIDevice)", d.handle, &iidIDXGIDevice)
	if err != nil {
		return 0, err
	}
	defer Release(dxgiDev)

	var adapter uintptr
	_, err = comCall("IDXGIDevice::GetAdapter", dxgiDev, dxgiDeviceGetAdapter,
		uintptr(unsafe.Pointer(&adapter)))
	if err != nil {
		return 0, err
	}
	return adapter, nil
}

// CreateSwapChain creates a two-buffer flip-discard BGRA swap chain
// bound to the given window.
func (d *Device) CreateSwapChain(hwnd uintptr, width, height uint32) (*SwapChain, error) {
	adapter, err := d.Adapter()
	if err != nil {
		return nil, err
	}
	defer Release(adapter)

	var factory uintptr
	_, err = comCall("IDXGIAdapter::GetParent", adapter, dxgiObjectGetParent,
		uintptr(unsafe.Pointer(&iidIDXGIFactory2)),
		uintptr(unsafe.Pointer(&factory)))
	if err != nil {
		return nil, err
	}
	defer Release(factory)

	desc := swapChainDesc1{
		Width:       width,
		Height:      height,
		Format:      FormatB8G8R8A8Unorm,
		SampleCount: 1,
		BufferUsage: usageRenderTargetOutput,
		BufferCount: swapChainBufferCount,
		Scaling:     scalingStretch,
		SwapEffect:  swapEffectFlipDiscard,
		AlphaMode:   alphaModeUnspecified,
	}
	var sc uintptr
	_, err = comCall("IDXGIFactory2::CreateSwapChainForHwnd", factory, dxgiFactory2CreateSwapChainForHwnd,
		d.handle,
		hwnd,
		uintptr(unsafe.Pointer(&desc)),
		0, // no fullscreen desc
		0, // no output restriction
		uintptr(unsafe.Pointer(&sc)))
	if err != nil {
		return nil, err
	}
	return &SwapChain{handle: sc}, nil
}

// CreateTexture2D creates a texture described by desc, optionally with
// initial data (pass nil for none).
func (d *Device) CreateTexture2D(desc *Texture2DDesc, init *SubresourceData) (uintptr, error) {
	var tex uintptr
	_, err := comCall("ID3D11Device::CreateTexture2D", d.handle, d3d11DeviceCreateTexture2D,
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(init)),
		uintptr(unsafe.Pointer(&tex)))
	return tex, err
}

// CreateBuffer creates a buffer described by desc, optionally with
// initial data.
func (d *Device) CreateBuffer(desc *BufferDesc, init *SubresourceData) (uintptr, error) {
	var buf uintptr
	_, err := comCall("ID3D11Device::CreateBuffer", d.handle, d3d11DeviceCreateBuffer,
		uintptr(unsafe.Pointer(desc)),
		uintptr(unsafe.Pointer(init)),
		uintptr(unsafe.Pointer(&buf)))
	return buf, err
}

// CreateTexture2DSRV creates a shader resource view over a 2D texture.
func (d *Device) CreateTexture2DSRV(tex uintptr, format uint32) (uintptr, error) {
	desc := srvDesc{
		Format:        format,
		ViewDimension: srvDimensionTexture2D,
	}
	desc.Union[1] = 1 // Texture2D.MipLevels
	var srv uintptr
	_, err := comCall("ID3D11Device::CreateShaderResourceView", d.handle, d3d11DeviceCreateSRV,
		tex,
		uintptr(unsafe.Pointer(&desc)),
		uintptr(unsafe.Pointer(&srv)))
	return srv, err
}

// CreateBufferSRV creates a shader resource view over the first
// numElements elements of a structured buffer.
func (d *Device) CreateBufferSRV(buf uintptr, numElements uint32) (uintptr, error) {
	desc := srvDesc{
		Format:        FormatUnknown,
		ViewDimension: srvDimensionBuffer,
	}
	desc.Union[1] = numElements // Buffer.NumElements
	var srv uintptr
	_, err := comCall("ID3D11Device::CreateShaderResourceView", d.handle, d3d11DeviceCreateSRV,
		buf,
		uintptr(unsafe.Pointer(&desc)),
		uintptr(unsafe.Pointer(&srv)))
	return srv, err
}

// CreateTexture2DUAV creates an unordered access view over a 2D texture.
func (d *Device) CreateTexture2DUAV(tex uintptr, format uint32) (uintptr, error) {
	desc := uavDesc{
		Format:        format,
		ViewDimension: uavDimensionTexture2D,
	}
	var uav uintptr
	_, err := comCall("ID3D11Device::CreateUnorderedAccessView", d.handle, d3d11DeviceCreateUAV,
		tex,
		uintptr(unsafe.Pointer(&desc)),
		uintptr(unsafe.Pointer(&uav)))
	return uav, err
}

// CreateRenderTargetView creates an RTV over a resource with its own
// format and dimensions.
func (d *Device) CreateRenderTargetView(res uintptr) (uintptr, error) {
	var rtv uintptr
	_, err := comCall("ID3D11Device::CreateRenderTargetView", d.handle, d3d11DeviceCreateRTV,
		res,
		0, // inherit the resource's format
		uintptr(unsafe.Pointer(&rtv)))
	return rtv, err
}

// CreateVertexShader creates a vertex shader from compiled bytecode.
func (d *Device) CreateVertexShader(bytecode []byte) (uintptr, error) {
	var vs uintptr
	_, err := comCall("ID3D11Device::CreateVertexShader", d.handle, d3d11DeviceCreateVertexShader,
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		0, // no class linkage
		uintptr(unsafe.Pointer(&vs)))
	return vs, err
}

// CreatePixelShader creates a pixel shader from compiled bytecode.
func (d *Device) CreatePixelShader(bytecode []byte) (uintptr, error) {
	var ps uintptr
	_, err := comCall("ID3D11Device::CreatePixelShader", d.handle, d3d11DeviceCreatePixelShader,
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		0,
		uintptr(unsafe.Pointer(&ps)))
	return ps, err
}

// CreateComputeShader creates a compute shader from compiled bytecode.
func (d *Device) CreateComputeShader(bytecode []byte) (uintptr, error) {
	var cs uintptr
	_, err := comCall("ID3D11Device::CreateComputeShader", d.handle, d3d11DeviceCreateComputeShader,
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		0,
		uintptr(unsafe.Pointer(&cs)))
	return cs, err
}

// InputElement describes one vertex attribute for CreateInputLayout.
type InputElement struct {
	SemanticName  string
	SemanticIndex uint32
	Format        uint32
	ByteOffset    uint32
}

// CreateInputLayout builds an input layout for the given elements,
// validated against the vertex shader bytecode.
func (d *Device) CreateInputLayout(elements []InputElement, vsBytecode []byte) (uintptr, error) {
	names := make([][]byte, len(elements))
	descs := make([]inputElementDesc, len(elements))
	for i, e := range elements {
		names[i] = append([]byte(e.SemanticName), 0)
		descs[i] = inputElementDesc{
			SemanticName:      uintptr(unsafe.Pointer(&names[i][0])),
			SemanticIndex:     e.SemanticIndex,
			Format:            e.Format,
			AlignedByteOffset: e.ByteOffset,
		}
	}
	var layout uintptr
	_, err := comCall("ID3D11Device::CreateInputLayout", d.handle, d3d11DeviceCreateInputLayout,
		uintptr(unsafe.Pointer(&descs[0])),
		uintptr(len(descs)),
		uintptr(unsafe.Pointer(&vsBytecode[0])),
		uintptr(len(vsBytecode)),
		uintptr(unsafe.Pointer(&layout)))
	return layout, err
}

// CreateLinearClampSampler creates the linear-filtered clamp-addressed
// sampler used by every pixel shader pass.
func (d *Device) CreateLinearClampSampler() (uintptr, error) {
	desc := samplerDesc{
		Filter:         filterMinMagMipLinear,
		AddressU:       addressClamp,
		AddressV:       addressClamp,
		AddressW:       addressClamp,
		ComparisonFunc: comparisonNever,
		MaxLOD:         float32Max,
	}
	var ss uintptr
	_, err := comCall("ID3D11Device::CreateSamplerState", d.handle, d3d11DeviceCreateSamplerState,
		uintptr(unsafe.Pointer(&desc)),
		uintptr(unsafe.Pointer(&ss)))
	return ss, err
}

// TextureDesc queries a texture's D3D11_TEXTURE2D_DESC.
func TextureDesc(tex uintptr) Texture2DDesc {
	var desc Texture2DDesc
	comCallV(tex, d3d11Texture2DGetDesc, uintptr(unsafe.Pointer(&desc)))
	return desc
}

// WriteBuffer replaces the contents of a dynamic buffer with data via a
// WRITE_DISCARD map.
func (c *Context) WriteBuffer(buf uintptr, data []byte) error {
	var mapped MappedSubresource
	_, err := comCall("ID3D11DeviceContext::Map", c.handle, d3d11CtxMap,
		buf, 0, mapWriteDiscard, 0,
		uintptr(unsafe.Pointer(&mapped)))
	if err != nil {
		return err
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(mapped.PData)), len(data))
	copy(dst, data)
	comCallV(c.handle, d3d11CtxUnmap, buf, 0)
	return nil
}

// MapRead maps a staging resource for CPU reading. The caller must call
// Unmap when done with the returned view.
func (c *Context) MapRead(res uintptr) (MappedSubresource, error) {
	var mapped MappedSubresource
	_, err := comCall("ID3D11DeviceContext::Map", c.handle, d3d11CtxMap,
		res, 0, mapRead, 0,
		uintptr(unsafe.Pointer(&mapped)))
	return mapped, err
}

// Unmap releases a mapping obtained from MapRead.
func (c *Context) Unmap(res uintptr) {
	comCallV(c.handle, d3d11CtxUnmap, res, 0)
}

// CopyResource copies an entire resource (same size and format).
func (c *Context) CopyResource(dst, src uintptr) {
	comCallV(c.handle, d3d11CtxCopyResource, dst, src)
}

// CopySubresourceRegion copies the box region of src to (dstX, dstY) in dst.
func (c *Context) CopySubresourceRegion(dst uintptr, dstX, dstY uint32, src uintptr, box *Box) {
	comCallV(c.handle, d3d11CtxCopySubresource,
		dst, 0, uintptr(dstX), uintptr(dstY), 0,
		src, 0, uintptr(unsafe.Pointer(box)))
}

// ClearRenderTarget clears an RTV to the given RGBA color.
func (c *Context) ClearRenderTarget(rtv uintptr, color [4]float32) {
	comCallV(c.handle, d3d11CtxClearRTV, rtv, uintptr(unsafe.Pointer(&color[0])))
}

// SetViewport sets a single full viewport of the given size.
func (c *Context) SetViewport(width, height float32) {
	vp := Viewport{Width: width, Height: height, MaxDepth: 1}
	comCallV(c.handle, d3d11CtxRSSetViewports, 1, uintptr(unsafe.Pointer(&vp)))
}

// SetRenderTarget binds a single render target (0 unbinds).
func (c *Context) SetRenderTarget(rtv uintptr) {
	comCallV(c.handle, d3d11CtxOMSetRenderTargets, 1, uintptr(unsafe.Pointer(&rtv)), 0)
}

// IASetVertexBuffer binds one vertex buffer at slot 0.
func (c *Context) IASetVertexBuffer(buf uintptr, stride uint32) {
	offset := uint32(0)
	comCallV(c.handle, d3d11CtxIASetVertexBuffers,
		0, 1,
		uintptr(unsafe.Pointer(&buf)),
		uintptr(unsafe.Pointer(&stride)),
		uintptr(unsafe.Pointer(&offset)))
}

// IASetInputLayout binds the input layout.
func (c *Context) IASetInputLayout(layout uintptr) {
	comCallV(c.handle, d3d11CtxIASetInputLayout, layout)
}

// IASetTopology sets the primitive topology.
func (c *Context) IASetTopology(topology uint32) {
	comCallV(c.handle, d3d11CtxIASetTopology, uintptr(topology))
}

// VSSetShader binds the vertex shader.
func (c *Context) VSSetShader(vs uintptr) {
	comCallV(c.handle, d3d11CtxVSSetShader, vs, 0, 0)
}

// PSSetShader binds the pixel shader.
func (c *Context) PSSetShader(ps uintptr) {
	comCallV(c.handle, d3d11CtxPSSetShader, ps, 0, 0)
}

// PSSetShaderResources binds SRVs for the pixel stage starting at slot.
func (c *Context) PSSetShaderResources(slot uint32, srvs ...uintptr) {
	comCallV(c.handle, d3d11CtxPSSetShaderResources,
		uintptr(slot), uintptr(len(srvs)), uintptr(unsafe.Pointer(&srvs[0])))
}

// PSSetConstantBuffers binds constant buffers for the pixel stage.
func (c *Context) PSSetConstantBuffers(slot uint32, bufs ...uintptr) {
	comCallV(c.handle, d3d11CtxPSSetConstantBuffers,
		uintptr(slot), uintptr(len(bufs)), uintptr(unsafe.Pointer(&bufs[0])))
}

// PSSetSampler binds one sampler at slot 0 of the pixel stage.
func (c *Context) PSSetSampler(ss uintptr) {
	comCallV(c.handle, d3d11CtxPSSetSamplers, 0, 1, uintptr(unsafe.Pointer(&ss)))
}

// CSSetShader binds the compute shader.
func (c *Context) CSSetShader(cs uintptr) {
	comCallV(c.handle, d3d11CtxCSSetShader, cs, 0, 0)
}

// CSSetShaderResources binds SRVs for the compute stage starting at slot.
func (c *Context) CSSetShaderResources(slot uint32, srvs ...uintptr) {
	comCallV(c.handle, d3d11CtxCSSetShaderResources,
		uintptr(slot), uintptr(len(srvs)), uintptr(unsafe.Pointer(&srvs[0])))
}

// CSSetUnorderedAccessViews binds UAVs for the compute stage.
func (c *Context) CSSetUnorderedAccessViews(slot uint32, uavs ...uintptr) {
	comCallV(c.handle, d3d11CtxCSSetUAVs,
		uintptr(slot), uintptr(len(uavs)), uintptr(unsafe.Pointer(&uavs[0])), 0)
}

// CSSetConstantBuffers binds constant buffers for the compute stage.
func (c *Context) CSSetConstantBuffers(slot uint32, bufs ...uintptr) {
	comCallV(c.handle, d3d11CtxCSSetConstantBuffers,
		uintptr(slot), uintptr(len(bufs)), uintptr(unsafe.Pointer(&bufs[0])))
}

// Dispatch launches a compute grid.
func (c *Context) Dispatch(x, y, z uint32) {
	comCallV(c.handle, d3d11CtxDispatch, uintptr(x), uintptr(y), uintptr(z))
}

// Draw issues a non-indexed draw of count vertices.
func (c *Context) Draw(count uint32) {
	comCallV(c.handle, d3d11CtxDraw, uintptr(count), 0)
}

// Flush submits queued commands to the GPU.
func (c *Context) Flush() {
	comCallV(c.handle, d3d11CtxFlush)
}

// Present presents the swap chain with the given sync interval.
func (s *SwapChain) Present(syncInterval uint32) error {
	_, err := comCall("IDXGISwapChain::Present", s.handle, dxgiSwapChainPresent,
		uintptr(syncInterval), 0)
	return err
}

// BackBuffer returns the swap chain's back buffer texture. The caller
// owns the returned handle.
func (s *SwapChain) BackBuffer() (uintptr, error) {
	var tex uintptr
	_, err := comCall("IDXGISwapChain::GetBuffer", s.handle, dxgiSwapChainGetBuffer,
		0,
		uintptr(unsafe.Pointer(&iidID3D11Texture2D)),
		uintptr(unsafe.Pointer(&tex)))
	return tex, err
}

// ResizeBuffers resizes the swap chain buffers, keeping count and
// format. All outstanding back buffer references must be released first.
func (s *SwapChain) ResizeBuffers(width, height uint32) error {
	_, err := comCall("IDXGISwapChain::ResizeBuffers", s.handle, dxgiSwapChainResizeBuffers,
		0, uintptr(width), uintptr(height), FormatUnknown, 0)
	return err
}

// Release frees the swap chain.
func (s *SwapChain) Release() {
	comRelease(&s.handle)
}
