//go:build windows

package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"time"
	"unsafe"

	"github.com/scrimshady/scrimshady/internal/capture"
	"github.com/scrimshady/scrimshady/internal/config"
	"github.com/scrimshady/scrimshady/internal/d3d11"
	"github.com/scrimshady/scrimshady/internal/effects"
	"github.com/scrimshady/scrimshady/internal/win"
)

// windowControl is the slice of the window shell the session calls
// back into when handling user commands.
type windowControl interface {
	SetCaptureExcluded(excluded bool) error
	SetTopmost(topmost bool) error
}

// Session is the per-window pipeline: it owns the GPU device, swap
// chain, shader library, capture engine and size-dependent resources,
// and turns paint events into composited frames.
type Session struct {
	dev   *d3d11.Device
	sc    *d3d11.SwapChain
	eng   *capture.Engine
	lib   *effects.Library
	cache *Cache
	wc    windowControl
	log   *slog.Logger

	vertexBuf uintptr
	sampler   uintptr
	timeBuf   uintptr
	extendBuf uintptr

	clientW, clientH int
	srcRect          image.Rectangle
	start            time.Time

	paused   bool
	topmost  bool
	saveNext bool

	shotDir    string
	shotPrefix string
}

// vertexStride is two float2s per vertex (position, texcoord).
const vertexStride = 16

// cbuffers are bound in 16-byte granules.
const (
	timeBufSize   = 16
	extendBufSize = 32
)

// NewSession builds the whole pipeline against the given window. Any
// failure here is fatal for the process.
func NewSession(hwnd uintptr, wc windowControl, cfg *config.Config, log *slog.Logger) (*Session, error) {
	dev, err := d3d11.CreateDevice()
	if err != nil {
		return nil, fmt.Errorf("create device: %w", err)
	}

	s := &Session{
		dev:        dev,
		wc:         wc,
		log:        log,
		clientW:    cfg.Window.Width,
		clientH:    cfg.Window.Height,
		srcRect:    image.Rect(0, 0, cfg.Window.Width, cfg.Window.Height),
		start:      time.Now(),
		topmost:    cfg.Window.AlwaysOnTop,
		shotDir:    cfg.Screenshot.Dir,
		shotPrefix: cfg.Screenshot.Prefix,
	}

	s.sc, err = dev.CreateSwapChain(hwnd, uint32(cfg.Window.Width), uint32(cfg.Window.Height))
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("create swap chain: %w", err)
	}

	startIdx, _ := config.ResolveEffect(cfg.Effects.Start)
	s.lib, err = effects.NewLibrary(dev, startIdx)
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("compile effects: %w", err)
	}

	if err := s.createStaticResources(); err != nil {
		s.Destroy()
		return nil, err
	}

	s.eng = capture.NewDXGIEngine(dev, cfg.Capture.DisplayIndex, log)
	s.cache = NewCache(&deviceAllocator{dev: dev, sc: s.sc})

	log.Info("session ready",
		"effect", s.lib.Active().Name,
		"display", cfg.Capture.DisplayIndex)
	return s, nil
}

// createStaticResources builds the process-lifetime GPU objects: the
// full-screen quad, the sampler and the two per-frame uniform buffers.
func (s *Session) createStaticResources() error {
	// Triangle strip covering clip space, texcoords mapping the full
	// extended texture.
	verts := []float32{
		-1, 1, 0, 0,
		1, 1, 1, 0,
		-1, -1, 0, 1,
		1, -1, 1, 1,
	}
	raw := make([]byte, len(verts)*4)
	for i, v := range verts {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	desc := d3d11.BufferDesc{
		ByteWidth: uint32(len(raw)),
		Usage:     d3d11.UsageImmutable,
		BindFlags: d3d11.BindVertexBuffer,
	}
	init := d3d11.SubresourceData{SysMem: uintptr(unsafe.Pointer(&raw[0]))}
	var err error
	if s.vertexBuf, err = s.dev.CreateBuffer(&desc, &init); err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}

	if s.sampler, err = s.dev.CreateLinearClampSampler(); err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}

	timeDesc := d3d11.BufferDesc{
		ByteWidth:      timeBufSize,
		Usage:          d3d11.UsageDynamic,
		BindFlags:      d3d11.BindConstantBuffer,
		CPUAccessFlags: d3d11.CPUAccessWrite,
	}
	if s.timeBuf, err = s.dev.CreateBuffer(&timeDesc, nil); err != nil {
		return fmt.Errorf("create time buffer: %w", err)
	}

	extendDesc := d3d11.BufferDesc{
		ByteWidth:      extendBufSize,
		Usage:          d3d11.UsageDynamic,
		BindFlags:      d3d11.BindConstantBuffer,
		CPUAccessFlags: d3d11.CPUAccessWrite,
	}
	if s.extendBuf, err = s.dev.CreateBuffer(&extendDesc, nil); err != nil {
		return fmt.Errorf("create extend buffer: %w", err)
	}
	return nil
}

// Resize reacts to a client-size change: every size-dependent resource
// is invalidated and the swap chain buffers are resized before the next
// frame recreates what it needs.
func (s *Session) Resize(clientW, clientH int) {
	if clientW <= 0 || clientH <= 0 {
		return
	}
	s.clientW, s.clientH = clientW, clientH
	s.cache.InvalidateAll()
	if err := s.sc.ResizeBuffers(uint32(clientW), uint32(clientH)); err != nil {
		s.log.Error("resize swap chain", "error", err)
	}
}

// Reposition updates the screen-space rectangle the client area maps to.
func (s *Session) Reposition(src image.Rectangle) {
	s.srcRect = src
}

// Paint runs one capture-composite-present tick. Recoverable per-frame
// conditions are absorbed (logged at most); only device loss is
// returned, which ends the session.
func (s *Session) Paint() error {
	if s.paused {
		return nil
	}

	frame, err := s.eng.Acquire(0)
	if err != nil {
		switch {
		case errors.Is(err, capture.ErrTimeout):
			return nil
		case errors.Is(err, capture.ErrAccessLost):
			s.log.Debug("capture access lost, recreating next tick")
			return nil
		case errors.Is(err, capture.ErrDeviceLost):
			return err
		default:
			s.log.Error("acquire frame", "error", err)
			return nil
		}
	}
	defer frame.Release()

	if frame.Info.PresentTime == 0 {
		// Metadata-only update (cursor movement), nothing new to
		// composite.
		return nil
	}

	screenW, screenH := s.eng.ScreenSize()
	ext := ComputeExtent(s.srcRect, int(screenW), int(screenH))
	if ext.Empty() {
		return nil
	}

	if err := s.composite(frame, ext); err != nil {
		if errors.Is(err, capture.ErrDeviceLost) || d3d11.IsDeviceLost(err) {
			return err
		}
		s.log.Error("composite frame", "error", err)
		return nil
	}
	return nil
}

// composite copies the visible region out of the captured frame, runs
// the extend pass, draws the active effect and presents.
func (s *Session) composite(frame *capture.Frame, ext Extent) error {
	ctx := s.dev.Context()

	staging, err := s.cache.Staging(uint32(s.clientW), uint32(s.clientH))
	if err != nil {
		return fmt.Errorf("staging texture: %w", err)
	}
	vis := ext.Visible
	box := d3d11.Box{
		Left:   uint32(vis.Min.X),
		Top:    uint32(vis.Min.Y),
		Right:  uint32(vis.Max.X),
		Bottom: uint32(vis.Max.Y),
		Back:   1,
	}
	ctx.CopySubresourceRegion(staging.Texture, 0, 0, frame.Texture, &box)
	if err := frame.Release(); err != nil {
		return err
	}

	extW, extH := ext.ExtendedSize(s.clientW, s.clientH)
	extended, err := s.cache.Extended(uint32(extW), uint32(extH))
	if err != nil {
		return fmt.Errorf("extended texture: %w", err)
	}
	if err := s.dispatchExtend(staging, extended, ext); err != nil {
		return err
	}

	if err := s.draw(extended); err != nil {
		return err
	}

	if s.saveNext {
		s.saveNext = false
		if path, err := s.saveBackBuffer(); err != nil {
			s.log.Error("save screenshot", "error", err)
		} else {
			s.log.Info("screenshot saved", "path", path)
		}
	}

	return s.sc.Present(1)
}

// dispatchExtend fills the extended texture from the staging copy with
// edge-clamped reads, one 8x8 thread group per tile of the output.
func (s *Session) dispatchExtend(staging stagingSet, extended extendedSet, ext Extent) error {
	vis := ext.Visible
	off := ext.Offset()
	params := make([]byte, extendBufSize)
	le := binary.LittleEndian
	le.PutUint32(params[0:], uint32(vis.Dx()))
	le.PutUint32(params[4:], uint32(vis.Dy()))
	le.PutUint32(params[8:], extended.W)
	le.PutUint32(params[12:], extended.H)
	le.PutUint32(params[16:], uint32(int32(off.X)))
	le.PutUint32(params[20:], uint32(int32(off.Y)))
	if err := s.dev.Context().WriteBuffer(s.extendBuf, params); err != nil {
		return fmt.Errorf("extend params: %w", err)
	}

	ctx := s.dev.Context()
	ctx.CSSetShader(s.lib.ExtendCS)
	ctx.CSSetShaderResources(0, staging.SRV)
	ctx.CSSetUnorderedAccessViews(0, extended.UAV)
	ctx.CSSetConstantBuffers(0, s.extendBuf)
	ctx.Dispatch((extended.W+7)/8, (extended.H+7)/8, 1)

	// Unbind so the extended texture can be sampled by the draw.
	ctx.CSSetShaderResources(0, 0)
	ctx.CSSetUnorderedAccessViews(0, 0)
	ctx.CSSetShader(0)
	return nil
}

// draw renders the active effect over the full client area.
func (s *Session) draw(extended extendedSet) error {
	ctx := s.dev.Context()

	secs := float32(time.Since(s.start).Seconds())
	tbuf := make([]byte, timeBufSize)
	binary.LittleEndian.PutUint32(tbuf, math.Float32bits(secs))
	if err := ctx.WriteBuffer(s.timeBuf, tbuf); err != nil {
		return fmt.Errorf("time uniform: %w", err)
	}

	rtv, err := s.cache.RenderTarget()
	if err != nil {
		return fmt.Errorf("render target: %w", err)
	}
	ctx.ClearRenderTarget(rtv, [4]float32{0, 0, 0, 1})
	ctx.SetRenderTarget(rtv)
	ctx.SetViewport(float32(s.clientW), float32(s.clientH))

	ctx.IASetInputLayout(s.lib.InputLayout)
	ctx.IASetVertexBuffer(s.vertexBuf, vertexStride)
	ctx.IASetTopology(d3d11.TopologyTriangleStrip)
	ctx.VSSetShader(s.lib.VS)

	entry := s.lib.Active()
	ctx.PSSetShader(entry.PS)
	ctx.PSSetSampler(s.sampler)
	switch entry.Kind {
	case effects.KindSimple:
		ctx.PSSetShaderResources(0, extended.SRV)
		ctx.PSSetConstantBuffers(0, s.timeBuf)
	case effects.KindTiles:
		if err := ctx.WriteBuffer(entry.ParamsBuf, entry.TileParams(extended.W, extended.H)); err != nil {
			return fmt.Errorf("tile uniform: %w", err)
		}
		ctx.PSSetShaderResources(0, extended.SRV, entry.SheetSRV, entry.BrightSRV)
		ctx.PSSetConstantBuffers(0, s.timeBuf, entry.ParamsBuf)
	}

	ctx.Draw(4)
	ctx.SetRenderTarget(0)
	ctx.PSSetShaderResources(0, 0, 0, 0)
	return nil
}

// Command handles a decoded user command. Failures are logged, never
// fatal.
func (s *Session) Command(cmd win.Command, arg int) {
	switch cmd {
	case win.CmdSelectEffect:
		s.lib.SetActive(arg)
		s.log.Info("effect selected", "effect", s.lib.Active().Name)
	case win.CmdTogglePause:
		s.paused = !s.paused
		// Paused windows become visible to capture so the frozen
		// composite can itself be recorded.
		if err := s.wc.SetCaptureExcluded(!s.paused); err != nil {
			s.log.Error("toggle capture affinity", "error", err)
		}
		s.log.Info("pause toggled", "paused", s.paused)
	case win.CmdSaveScreenshot:
		if !s.paused {
			// Captured at the end of the next composite, right
			// before present.
			s.saveNext = true
			return
		}
		// Paused: no tick will run, grab the frozen back buffer now.
		if path, err := s.saveBackBuffer(); err != nil {
			s.log.Error("save screenshot", "error", err)
		} else {
			s.log.Info("screenshot saved", "path", path)
		}
	case win.CmdToggleTopmost:
		s.topmost = !s.topmost
		if err := s.wc.SetTopmost(s.topmost); err != nil {
			s.log.Error("toggle topmost", "error", err)
		}
		s.log.Info("topmost toggled", "topmost", s.topmost)
	}
}

// Topmost reports the session's initial always-on-top preference.
func (s *Session) Topmost() bool { return s.topmost }

// Destroy releases every GPU object the session owns. Safe on a
// partially constructed session.
func (s *Session) Destroy() {
	if s.eng != nil {
		s.eng.Close()
		s.eng = nil
	}
	if s.cache != nil {
		s.cache.InvalidateAll()
		s.cache = nil
	}
	if s.lib != nil {
		s.lib.Release()
		s.lib = nil
	}
	for _, h := range []*uintptr{&s.vertexBuf, &s.sampler, &s.timeBuf, &s.extendBuf} {
		d3d11.Release(*h)
		*h = 0
	}
	if s.sc != nil {
		s.sc.Release()
		s.sc = nil
	}
	if s.dev != nil {
		s.dev.Release()
		s.dev = nil
	}
}
