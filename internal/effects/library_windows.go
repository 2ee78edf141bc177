//go:build windows

package effects

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/draw"
	"math"
	"unsafe"

	"github.com/scrimshady/scrimshady/internal/d3d11"
)

// Entry is one compiled roster effect with the GPU resources it binds
// beyond the shared extended texture. Simple effects carry only the
// pixel shader; the tile effect also carries the glyph sheet, the
// brightness lookup and its own uniform block.
type Entry struct {
	Descriptor
	PS uintptr

	// Tile resources, zero for KindSimple.
	sheetTex  uintptr
	SheetSRV  uintptr
	brightBuf uintptr
	BrightSRV uintptr
	ParamsBuf uintptr
	TileCount uint32
	SheetW    uint32
	SheetH    uint32
}

// Library holds the compiled shader roster plus the shared vertex and
// compute programs. Any single compilation failure aborts construction;
// there is no partial roster.
type Library struct {
	dev     *d3d11.Device
	entries []Entry
	active  int

	VS          uintptr
	InputLayout uintptr
	ExtendCS    uintptr
}

// NewLibrary compiles every shader in the roster and uploads the tile
// effect's auxiliary resources.
func NewLibrary(dev *d3d11.Device, startIndex int) (*Library, error) {
	lib := &Library{dev: dev}

	vsCode, err := d3d11.CompileShader(QuadVertexSource(), "quad.hlsl", "main", "vs_5_0")
	if err != nil {
		lib.Release()
		return nil, err
	}
	if lib.VS, err = dev.CreateVertexShader(vsCode); err != nil {
		lib.Release()
		return nil, err
	}
	layout := []d3d11.InputElement{
		{SemanticName: "POSITION", Format: d3d11.FormatR32G32Float, ByteOffset: 0},
		{SemanticName: "TEXCOORD", Format: d3d11.FormatR32G32Float, ByteOffset: 8},
	}
	if lib.InputLayout, err = dev.CreateInputLayout(layout, vsCode); err != nil {
		lib.Release()
		return nil, err
	}

	csCode, err := d3d11.CompileShader(ExtendComputeSource(), "extend.hlsl", "main", "cs_5_0")
	if err != nil {
		lib.Release()
		return nil, err
	}
	if lib.ExtendCS, err = dev.CreateComputeShader(csCode); err != nil {
		lib.Release()
		return nil, err
	}

	for _, desc := range Roster() {
		psCode, err := d3d11.CompileShader(desc.Source, desc.Name+".hlsl", "main", "ps_5_0")
		if err != nil {
			lib.Release()
			return nil, err
		}
		entry := Entry{Descriptor: desc}
		if entry.PS, err = dev.CreatePixelShader(psCode); err != nil {
			lib.Release()
			return nil, err
		}
		if desc.Kind == KindTiles {
			if err := lib.buildTileResources(&entry); err != nil {
				d3d11.Release(entry.PS)
				lib.Release()
				return nil, fmt.Errorf("effect %s: %w", desc.Name, err)
			}
		}
		lib.entries = append(lib.entries, entry)
	}

	if startIndex >= 0 && startIndex < len(lib.entries) {
		lib.active = startIndex
	}
	return lib, nil
}

// buildTileResources uploads the glyph sheet as a BGRA texture, the
// per-tile brightness lookup as a structured buffer, and allocates the
// tile effect's dynamic uniform block.
func (l *Library) buildTileResources(e *Entry) error {
	sheet, err := GlyphSheet()
	if err != nil {
		return err
	}
	b := sheet.Bounds()
	e.SheetW = uint32(b.Dx())
	e.SheetH = uint32(b.Dy())

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), sheet, b.Min, draw.Src)
	bgra := make([]byte, len(rgba.Pix))
	for i := 0; i < len(bgra); i += 4 {
		bgra[i+0] = rgba.Pix[i+2]
		bgra[i+1] = rgba.Pix[i+1]
		bgra[i+2] = rgba.Pix[i+0]
		bgra[i+3] = rgba.Pix[i+3]
	}
	texDesc := d3d11.Texture2DDesc{
		Width:       e.SheetW,
		Height:      e.SheetH,
		MipLevels:   1,
		ArraySize:   1,
		Format:      d3d11.FormatB8G8R8A8Unorm,
		SampleCount: 1,
		Usage:       d3d11.UsageImmutable,
		BindFlags:   d3d11.BindShaderResource,
	}
	init := d3d11.SubresourceData{
		SysMem:      uintptr(unsafe.Pointer(&bgra[0])),
		SysMemPitch: e.SheetW * 4,
	}
	if e.sheetTex, err = l.dev.CreateTexture2D(&texDesc, &init); err != nil {
		return err
	}
	if e.SheetSRV, err = l.dev.CreateTexture2DSRV(e.sheetTex, d3d11.FormatB8G8R8A8Unorm); err != nil {
		return err
	}

	lookup, err := TileBrightness(sheet, TileWidth, TileHeight)
	if err != nil {
		return err
	}
	e.TileCount = uint32(len(lookup))
	raw := make([]byte, 4*len(lookup))
	for i, v := range lookup {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	bufDesc := d3d11.BufferDesc{
		ByteWidth:           uint32(len(raw)),
		Usage:               d3d11.UsageImmutable,
		BindFlags:           d3d11.BindShaderResource,
		MiscFlags:           d3d11.MiscBufferStructured,
		StructureByteStride: 4,
	}
	bufInit := d3d11.SubresourceData{SysMem: uintptr(unsafe.Pointer(&raw[0]))}
	if e.brightBuf, err = l.dev.CreateBuffer(&bufDesc, &bufInit); err != nil {
		return err
	}
	if e.BrightSRV, err = l.dev.CreateBufferSRV(e.brightBuf, e.TileCount); err != nil {
		return err
	}

	paramsDesc := d3d11.BufferDesc{
		ByteWidth:      tileParamsSize,
		Usage:          d3d11.UsageDynamic,
		BindFlags:      d3d11.BindConstantBuffer,
		CPUAccessFlags: d3d11.CPUAccessWrite,
	}
	e.ParamsBuf, err = l.dev.CreateBuffer(&paramsDesc, nil)
	return err
}

// tileParamsSize is the byte size of the tile effect's uniform block:
// uint2 screenSize, uint2 tileSize, uint gridWidth, uint tileCount,
// uint2 sheetSize.
const tileParamsSize = 32

// TileParams packs the tile uniform block for the given extended
// texture size. gridWidth is glyph cells per sheet row, which the
// shader uses to locate a glyph by ordinal.
func (e *Entry) TileParams(screenW, screenH uint32) []byte {
	buf := make([]byte, tileParamsSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:], screenW)
	le.PutUint32(buf[4:], screenH)
	le.PutUint32(buf[8:], TileWidth)
	le.PutUint32(buf[12:], TileHeight)
	le.PutUint32(buf[16:], e.SheetW/TileWidth)
	le.PutUint32(buf[20:], e.TileCount)
	le.PutUint32(buf[24:], e.SheetW)
	le.PutUint32(buf[28:], e.SheetH)
	return buf
}

// Entries returns the roster in fixed order.
func (l *Library) Entries() []Entry { return l.entries }

// Active returns the currently selected effect.
func (l *Library) Active() *Entry { return &l.entries[l.active] }

// ActiveIndex returns the selected roster index.
func (l *Library) ActiveIndex() int { return l.active }

// SetActive selects an effect by roster index. Out-of-range indices
// leave the selection unchanged.
func (l *Library) SetActive(idx int) {
	if idx >= 0 && idx < len(l.entries) {
		l.active = idx
	}
}

// Release frees every GPU object the library owns.
func (l *Library) Release() {
	for _, e := range l.entries {
		d3d11.Release(e.PS)
		d3d11.Release(e.SheetSRV)
		d3d11.Release(e.sheetTex)
		d3d11.Release(e.BrightSRV)
		d3d11.Release(e.brightBuf)
		d3d11.Release(e.ParamsBuf)
	}
	l.entries = nil
	d3d11.Release(l.ExtendCS)
	d3d11.Release(l.InputLayout)
	d3d11.Release(l.VS)
	l.ExtendCS, l.InputLayout, l.VS = 0, 0, 0
}
