// Package capture acquires desktop frames through DXGI output
// duplication and manages the duplication handle's lifecycle.
package capture

import (
	"errors"
	"fmt"
	"log/slog"
)

// Sentinel errors the per-frame loop classifies on. Duplicator
// implementations translate their native failure codes into these.
var (
	// ErrTimeout means no new frame arrived within the acquire timeout.
	ErrTimeout = errors.New("capture: no frame within timeout")
	// ErrAccessLost means the duplication handle was invalidated (mode
	// change, lock screen, UAC prompt) and must be recreated.
	ErrAccessLost = errors.New("capture: duplication access lost")
	// ErrDeviceLost means the GPU device was removed or reset.
	ErrDeviceLost = errors.New("capture: graphics device lost")
)

// FrameInfo carries the metadata of an acquired frame.
type FrameInfo struct {
	// PresentTime is the QPC timestamp of the last desktop present.
	// Zero means only mouse movement accumulated and the desktop
	// image is unchanged.
	PresentTime int64
	// AccumulatedFrames counts desktop updates since the previous
	// acquire.
	AccumulatedFrames uint32
}

// outputDuplicator is one live duplication handle. Exactly one frame
// may be held between Acquire and ReleaseFrame.
type outputDuplicator interface {
	// Acquire waits up to timeoutMS for the next frame and returns
	// the desktop texture handle with its metadata. The texture is
	// only valid until ReleaseFrame.
	Acquire(timeoutMS uint32) (uintptr, FrameInfo, error)
	// ReleaseFrame returns the held frame to the duplication.
	ReleaseFrame() error
	// ScreenSize reports the duplicated output's mode dimensions.
	ScreenSize() (uint32, uint32)
	// Close releases the duplication handle.
	Close()
}

// Engine owns the duplicator lifecycle: it creates the handle lazily,
// drops it on access loss so the next acquire recreates it, and
// enforces the one-outstanding-frame rule.
type Engine struct {
	newDup      func() (outputDuplicator, error)
	dup         outputDuplicator
	outstanding *Frame
	log         *slog.Logger
}

// NewEngine returns an engine that obtains duplicators from factory.
func NewEngine(factory func() (outputDuplicator, error), log *slog.Logger) *Engine {
	return &Engine{newDup: factory, log: log}
}

// Frame is one acquired desktop frame. Release must be called before
// the next Acquire; it is safe to call more than once.
type Frame struct {
	// Texture is the desktop image as a GPU texture handle, valid
	// until Release.
	Texture uintptr
	Info    FrameInfo

	eng      *Engine
	released bool
}

// Release returns the frame to the duplication. Idempotent.
func (f *Frame) Release() error {
	if f.released {
		return nil
	}
	f.released = true
	if f.eng.outstanding == f {
		f.eng.outstanding = nil
	}
	if f.eng.dup == nil {
		return nil
	}
	if err := f.eng.dup.ReleaseFrame(); err != nil {
		if errors.Is(err, ErrAccessLost) {
			f.eng.dropDuplicator()
			return nil
		}
		return err
	}
	return nil
}

// Acquire waits up to timeoutMS for the next desktop frame. On
// ErrAccessLost the stale duplicator has already been dropped and the
// next call will create a fresh one; the caller just skips the tick.
func (e *Engine) Acquire(timeoutMS uint32) (*Frame, error) {
	if e.outstanding != nil {
		return nil, fmt.Errorf("capture: previous frame not released")
	}
	if e.dup == nil {
		dup, err := e.newDup()
		if err != nil {
			if errors.Is(err, ErrAccessLost) {
				// Transient: secure desktop or mode switch in
				// progress. Retry next tick.
				return nil, ErrAccessLost
			}
			return nil, err
		}
		e.dup = dup
		if e.log != nil {
			w, h := dup.ScreenSize()
			e.log.Debug("output duplication created", "width", w, "height", h)
		}
	}

	tex, info, err := e.dup.Acquire(timeoutMS)
	if err != nil {
		if errors.Is(err, ErrAccessLost) {
			e.dropDuplicator()
		}
		return nil, err
	}
	f := &Frame{Texture: tex, Info: info, eng: e}
	e.outstanding = f
	return f, nil
}

// ScreenSize reports the duplicated output's dimensions, or (0, 0)
// when no duplicator currently exists.
func (e *Engine) ScreenSize() (uint32, uint32) {
	if e.dup == nil {
		return 0, 0
	}
	return e.dup.ScreenSize()
}

// Reset drops the current duplicator so the next Acquire recreates it.
func (e *Engine) Reset() {
	e.dropDuplicator()
}

// Close releases the duplicator. The engine is unusable afterwards.
func (e *Engine) Close() {
	e.dropDuplicator()
	e.newDup = nil
}

func (e *Engine) dropDuplicator() {
	if e.outstanding != nil {
		e.outstanding.released = true
		e.outstanding = nil
	}
	if e.dup != nil {
		e.dup.Close()
		e.dup = nil
		if e.log != nil {
			e.log.Debug("output duplication dropped")
		}
	}
}
