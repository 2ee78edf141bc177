//go:build windows

package d3d11

// Enum values and struct mirrors for the slice of D3D11/DXGI this
// program uses. Field layouts must match the C headers exactly.

// DXGI_FORMAT
const (
	FormatUnknown       = 0
	FormatR32G32Float   = 16
	FormatB8G8R8A8Unorm = 87
)

// D3D11_USAGE
const (
	UsageDefault   = 0
	UsageImmutable = 1
	UsageDynamic   = 2
	UsageStaging   = 3
)

// D3D11_BIND_FLAG
const (
	BindVertexBuffer    = 0x1
	BindConstantBuffer  = 0x40
	BindShaderResource  = 0x8
	BindRenderTarget    = 0x20
	BindUnorderedAccess = 0x80
)

// D3D11_CPU_ACCESS_FLAG
const (
	CPUAccessWrite = 0x10000
	CPUAccessRead  = 0x20000
)

// D3D11_RESOURCE_MISC_FLAG
const (
	MiscBufferStructured = 0x40
)

// D3D11_MAP
const (
	mapRead         = 1
	mapWriteDiscard = 4
)

// D3D11_PRIMITIVE_TOPOLOGY
const (
	TopologyTriangleStrip = 5
)

// D3D11_SRV_DIMENSION / D3D11_UAV_DIMENSION
const (
	srvDimensionBuffer    = 1
	srvDimensionTexture2D = 4
	uavDimensionBuffer    = 1
	uavDimensionTexture2D = 4
)

// Sampler state values.
const (
	filterMinMagMipLinear = 0x15
	addressClamp          = 3
	comparisonNever       = 8
	float32Max            = 3.402823466e38
)

// AppendAlignedElement packs an input element right after the previous one.
const AppendAlignedElement = 0xffffffff

// Swap-chain values (DXGI_SWAP_CHAIN_DESC1 fields).
const (
	usageRenderTargetOutput = 0x20
	scalingStretch          = 0
	swapEffectFlipDiscard   = 4
	alphaModeUnspecified    = 0
	swapChainBufferCount    = 2
)

// D3D11CreateDevice values.
const (
	d3dDriverTypeHardware        = 1
	d3d11SDKVersion              = 7
	d3d11CreateDeviceBGRASupport = 0x20
)

// Texture2DDesc matches D3D11_TEXTURE2D_DESC (44 bytes).
type Texture2DDesc struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         uint32
	SampleCount    uint32 // DXGI_SAMPLE_DESC.Count
	SampleQuality  uint32 // DXGI_SAMPLE_DESC.Quality
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

// BufferDesc matches D3D11_BUFFER_DESC.
type BufferDesc struct {
	ByteWidth           uint32
	Usage               uint32
	BindFlags           uint32
	CPUAccessFlags      uint32
	MiscFlags           uint32
	StructureByteStride uint32
}

// SubresourceData matches D3D11_SUBRESOURCE_DATA.
type SubresourceData struct {
	SysMem           uintptr
	SysMemPitch      uint32
	SysMemSlicePitch uint32
}

// MappedSubresource matches D3D11_MAPPED_SUBRESOURCE.
type MappedSubresource struct {
	PData      uintptr
	RowPitch   uint32
	DepthPitch uint32
}

// Box matches D3D11_BOX.
type Box struct {
	Left   uint32
	Top    uint32
	Front  uint32
	Right  uint32
	Bottom uint32
	Back   uint32
}

// Viewport matches D3D11_VIEWPORT.
type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

// samplerDesc matches D3D11_SAMPLER_DESC.
type samplerDesc struct {
	Filter         uint32
	AddressU       uint32
	AddressV       uint32
	AddressW       uint32
	MipLODBias     float32
	MaxAnisotropy  uint32
	ComparisonFunc uint32
	BorderColor    [4]float32
	MinLOD         float32
	MaxLOD         float32
}

// srvDesc matches D3D11_SHADER_RESOURCE_VIEW_DESC; the trailing union is
// 16 bytes (largest member).
type srvDesc struct {
	Format        uint32
	ViewDimension uint32
	Union         [4]uint32
}

// uavDesc matches D3D11_UNORDERED_ACCESS_VIEW_DESC; the trailing union
// is 12 bytes.
type uavDesc struct {
	Format        uint32
	ViewDimension uint32
	Union         [3]uint32
}

// inputElementDesc matches D3D11_INPUT_ELEMENT_DESC.
type inputElementDesc struct {
	SemanticName         uintptr // NUL-terminated ANSI string
	SemanticIndex        uint32
	Format               uint32
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       uint32 // 0 = per-vertex
	InstanceDataStepRate uint32
}

// swapChainDesc1 matches DXGI_SWAP_CHAIN_DESC1.
type swapChainDesc1 struct {
	Width         uint32
	Height        uint32
	Format        uint32
	Stereo        int32
	SampleCount   uint32
	SampleQuality uint32
	BufferUsage   uint32
	BufferCount   uint32
	Scaling       uint32
	SwapEffect    uint32
	AlphaMode     uint32
	Flags         uint32
}

// Rational matches DXGI_RATIONAL.
type Rational struct {
	Numerator   uint32
	Denominator uint32
}

// ModeDesc matches DXGI_MODE_DESC.
type ModeDesc struct {
	Width            uint32
	Height           uint32
	RefreshRate      Rational
	Format           uint32
	ScanlineOrdering uint32
	Scaling          uint32
}

// OutduplDesc matches DXGI_OUTDUPL_DESC.
type OutduplDesc struct {
	ModeDesc                   ModeDesc
	Rotation                   uint32
	DesktopImageInSystemMemory int32 // BOOL
}

// OutduplFrameInfo matches DXGI_OUTDUPL_FRAME_INFO.
type OutduplFrameInfo struct {
	LastPresentTime           int64
	LastMouseUpdateTime       int64
	AccumulatedFrames         uint32
	RectsCoalesced            int32
	ProtectedContentMaskedOut int32
	PointerPositionX          int32
	PointerPositionY          int32
	PointerVisible            int32
	TotalMetadataBufferSize   uint32
	PointerShapeBufferSize    uint32
}

// COM vtable indices. Fixed by the COM ABI; interfaces inherit their
// base interface's slots.
//
// IUnknown:    0=QueryInterface, 1=AddRef, 2=Release
// IDXGIObject: 3..6 (SetPrivateData, SetPrivateDataInterface,
//
//	GetPrivateData, GetParent)
const (
	dxgiObjectGetParent = 6 // IDXGIObject

	dxgiDeviceGetAdapter = 7 // IDXGIDevice

	dxgiAdapterEnumOutputs = 7 // IDXGIAdapter

	dxgiFactory2CreateSwapChainForHwnd = 15 // IDXGIFactory2

	dxgiSwapChainPresent       = 8  // IDXGISwapChain
	dxgiSwapChainGetBuffer     = 9  // IDXGISwapChain
	dxgiSwapChainResizeBuffers = 13 // IDXGISwapChain

	dxgiOutput1DuplicateOutput = 22 // IDXGIOutput1

	dxgiDuplGetDesc          = 7  // IDXGIOutputDuplication
	dxgiDuplAcquireNextFrame = 8  // IDXGIOutputDuplication
	dxgiDuplReleaseFrame     = 14 // IDXGIOutputDuplication

	d3d11DeviceCreateBuffer        = 3  // ID3D11Device
	d3d11DeviceCreateTexture2D     = 5  // ID3D11Device
	d3d11DeviceCreateSRV           = 7  // ID3D11Device
	d3d11DeviceCreateUAV           = 8  // ID3D11Device
	d3d11DeviceCreateRTV           = 9  // ID3D11Device
	d3d11DeviceCreateInputLayout   = 11 // ID3D11Device
	d3d11DeviceCreateVertexShader  = 12 // ID3D11Device
	d3d11DeviceCreatePixelShader   = 15 // ID3D11Device
	d3d11DeviceCreateComputeShader = 18 // ID3D11Device
	d3d11DeviceCreateSamplerState  = 23 // ID3D11Device

	d3d11CtxPSSetShaderResources = 8   // ID3D11DeviceContext
	d3d11CtxPSSetShader          = 9   // ID3D11DeviceContext
	d3d11CtxPSSetSamplers        = 10  // ID3D11DeviceContext
	d3d11CtxVSSetShader          = 11  // ID3D11DeviceContext
	d3d11CtxDraw                 = 13  // ID3D11DeviceContext
	d3d11CtxMap                  = 14  // ID3D11DeviceContext
	d3d11CtxUnmap                = 15  // ID3D11DeviceContext
	d3d11CtxPSSetConstantBuffers = 16  // ID3D11DeviceContext
	d3d11CtxIASetInputLayout     = 17  // ID3D11DeviceContext
	d3d11CtxIASetVertexBuffers   = 18  // ID3D11DeviceContext
	d3d11CtxIASetTopology        = 24  // ID3D11DeviceContext
	d3d11CtxOMSetRenderTargets   = 33  // ID3D11DeviceContext
	d3d11CtxDispatch             = 41  // ID3D11DeviceContext
	d3d11CtxRSSetViewports       = 44  // ID3D11DeviceContext
	d3d11CtxCopySubresource      = 46  // ID3D11DeviceContext
	d3d11CtxCopyResource         = 47  // ID3D11DeviceContext
	d3d11CtxClearRTV             = 50  // ID3D11DeviceContext
	d3d11CtxCSSetShaderResources = 67  // ID3D11DeviceContext
	d3d11CtxCSSetUAVs            = 68  // ID3D11DeviceContext
	d3d11CtxCSSetShader          = 69  // ID3D11DeviceContext
	d3d11CtxCSSetConstantBuffers = 71  // ID3D11DeviceContext
	d3d11CtxFlush                = 111 // ID3D11DeviceContext

	d3d11Texture2DGetDesc = 10 // ID3D11Texture2D

	blobGetBufferPointer = 3 // ID3DBlob
	blobGetBufferSize    = 4 // ID3DBlob
)

// COM GUIDs for the interfaces we QueryInterface.
var (
	iidIDXGIDevice     = comGUID{0x54ec77fa, 0x1377, 0x44e6, [8]byte{0x8c, 0x32, 0x88, 0xfd, 0x5f, 0x44, 0xc8, 0x4c}}
	iidIDXGIFactory2   = comGUID{0x50c83a1c, 0xe072, 0x4c48, [8]byte{0x87, 0xb0, 0x36, 0x30, 0xfa, 0x36, 0xa6, 0xd0}}
	iidIDXGIOutput1    = comGUID{0x00cddea8, 0x939b, 0x4b83, [8]byte{0xa3, 0x40, 0xa6, 0x85, 0x22, 0x66, 0x66, 0xcc}}
	iidID3D11Texture2D = comGUID{0x6f15aaf2, 0xd208, 0x4e89, [8]byte{0x9a, 0xb4, 0x48, 0x95, 0x35, 0xd3, 0x4f, 0x9c}}
)
