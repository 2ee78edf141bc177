//go:build windows

package win

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modUser32 = windows.NewLazySystemDLL("user32.dll")

	procRegisterClassExW              = modUser32.NewProc("RegisterClassExW")
	procCreateWindowExW               = modUser32.NewProc("CreateWindowExW")
	procDestroyWindow                 = modUser32.NewProc("DestroyWindow")
	procDefWindowProcW                = modUser32.NewProc("DefWindowProcW")
	procShowWindow                    = modUser32.NewProc("ShowWindow")
	procGetMessageW                   = modUser32.NewProc("GetMessageW")
	procTranslateMessage              = modUser32.NewProc("TranslateMessage")
	procDispatchMessageW              = modUser32.NewProc("DispatchMessageW")
	procPostQuitMessage               = modUser32.NewProc("PostQuitMessage")
	procLoadCursorW                   = modUser32.NewProc("LoadCursorW")
	procAdjustWindowRect              = modUser32.NewProc("AdjustWindowRect")
	procGetClientRect                 = modUser32.NewProc("GetClientRect")
	procClientToScreen                = modUser32.NewProc("ClientToScreen")
	procValidateRect                  = modUser32.NewProc("ValidateRect")
	procInvalidateRect                = modUser32.NewProc("InvalidateRect")
	procSetWindowPos                  = modUser32.NewProc("SetWindowPos")
	procGetKeyState                   = modUser32.NewProc("GetKeyState")
	procSetWindowDisplayAffinity      = modUser32.NewProc("SetWindowDisplayAffinity")
	procSetProcessDpiAwarenessContext = modUser32.NewProc("SetProcessDpiAwarenessContext")

	modKernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandleW = modKernel32.NewProc("GetModuleHandleW")
)

const (
	wmDestroy = 0x0002
	wmMove    = 0x0003
	wmSize    = 0x0005
	wmPaint   = 0x000F
	wmKeyDown = 0x0100

	wsOverlappedWindow = 0x00CF0000
	wsPopup            = 0x80000000
	wsThickFrame       = 0x00040000

	csHRedraw = 0x0002
	csVRedraw = 0x0001

	cwUseDefault = 0x80000000

	idcArrow = 32512

	vkControl = 0x11

	swpNoMove = 0x0002
	swpNoSize = 0x0001

	wdaNone               = 0x0
	wdaExcludeFromCapture = 0x11
)

// hwndTopmost and hwndNoTopmost are the SetWindowPos insert-after
// pseudo-handles.
var (
	hwndTopmost   = ^uintptr(0)     // -1
	hwndNoTopmost = ^uintptr(0) - 1 // -2
)

// dpiAwarenessPerMonitorV2 is DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2.
var dpiAwarenessPerMonitorV2 = ^uintptr(0) - 3 // -4

type wndClassExW struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   uintptr
	Icon       uintptr
	Cursor     uintptr
	Background uintptr
	MenuName   *uint16
	ClassName  *uint16
	IconSm     uintptr
}

type point struct {
	X, Y int32
}

type rect struct {
	Left, Top, Right, Bottom int32
}

type msg struct {
	HWND    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

// Handler receives the window's events. Paint returning a non-nil
// error ends the session: the window is destroyed and the error is
// returned from Run.
type Handler interface {
	Resize(clientW, clientH int)
	Reposition(src image.Rectangle)
	Paint() error
	Command(cmd Command, arg int)
	Destroy()
}

// Options configures window creation.
type Options struct {
	Title      string
	Width      int
	Height     int
	Borderless bool
}

// Window is the native window plus its message pump.
type Window struct {
	hwnd    uintptr
	handler Handler
	log     *slog.Logger
	fatal   error
}

// The wndproc callback is process-global; it finds its Window through
// the handle registry.
var (
	windowsMu  sync.Mutex
	windowByHW = map[uintptr]*Window{}

	wndprocCB   uintptr
	wndprocOnce sync.Once

	className = windows.StringToUTF16Ptr("scrimshadyWindow")
)

func registerWindow(hwnd uintptr, w *Window) {
	windowsMu.Lock()
	windowByHW[hwnd] = w
	windowsMu.Unlock()
}

func lookupWindow(hwnd uintptr) *Window {
	windowsMu.Lock()
	defer windowsMu.Unlock()
	return windowByHW[hwnd]
}

func unregisterWindow(hwnd uintptr) {
	windowsMu.Lock()
	delete(windowByHW, hwnd)
	windowsMu.Unlock()
}

// New registers the window class on first use and creates the window.
// The window stays hidden until Run.
func New(opts Options, log *slog.Logger) (*Window, error) {
	procSetProcessDpiAwarenessContext.Call(dpiAwarenessPerMonitorV2)

	hinst, _, _ := procGetModuleHandleW.Call(0)
	cursor, _, _ := procLoadCursorW.Call(0, idcArrow)

	var regErr error
	wndprocOnce.Do(func() {
		wndprocCB = syscall.NewCallback(wndproc)
		wc := wndClassExW{
			Size:      uint32(unsafe.Sizeof(wndClassExW{})),
			Style:     csHRedraw | csVRedraw,
			WndProc:   wndprocCB,
			Instance:  hinst,
			Cursor:    cursor,
			ClassName: className,
		}
		atom, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
		if atom == 0 {
			regErr = fmt.Errorf("register window class: %w", err)
		}
	})
	if regErr != nil {
		return nil, regErr
	}

	// Borderless keeps a thick frame so the window stays resizable.
	style := uintptr(wsOverlappedWindow)
	if opts.Borderless {
		style = wsPopup | wsThickFrame
	}
	outW, outH := opts.Width, opts.Height
	if !opts.Borderless {
		r := rect{Right: int32(opts.Width), Bottom: int32(opts.Height)}
		ok, _, _ := procAdjustWindowRect.Call(uintptr(unsafe.Pointer(&r)), style, 0)
		if ok != 0 {
			outW = int(r.Right - r.Left)
			outH = int(r.Bottom - r.Top)
		}
	}

	w := &Window{log: log}
	hwnd, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(windows.StringToUTF16Ptr(opts.Title))),
		style,
		cwUseDefault, cwUseDefault,
		uintptr(outW), uintptr(outH),
		0, 0, hinst, 0,
	)
	if hwnd == 0 {
		return nil, fmt.Errorf("create window: %w", err)
	}
	w.hwnd = hwnd
	registerWindow(hwnd, w)
	return w, nil
}

// HWND returns the native window handle.
func (w *Window) HWND() uintptr { return w.hwnd }

// SetCaptureExcluded hides (or reveals) the window to screen capture,
// including this process's own duplication.
func (w *Window) SetCaptureExcluded(excluded bool) error {
	affinity := uintptr(wdaNone)
	if excluded {
		affinity = wdaExcludeFromCapture
	}
	ok, _, err := procSetWindowDisplayAffinity.Call(w.hwnd, affinity)
	if ok == 0 {
		return fmt.Errorf("set display affinity: %w", err)
	}
	return nil
}

// SetTopmost raises or lowers the window in the z-order band.
func (w *Window) SetTopmost(topmost bool) error {
	after := hwndNoTopmost
	if topmost {
		after = hwndTopmost
	}
	ok, _, err := procSetWindowPos.Call(w.hwnd, after, 0, 0, 0, 0, swpNoMove|swpNoSize)
	if ok == 0 {
		return fmt.Errorf("set window pos: %w", err)
	}
	return nil
}

// SourceRect reports the client area in screen coordinates.
func (w *Window) SourceRect() image.Rectangle {
	var r rect
	procGetClientRect.Call(w.hwnd, uintptr(unsafe.Pointer(&r)))
	var origin point
	procClientToScreen.Call(w.hwnd, uintptr(unsafe.Pointer(&origin)))
	return image.Rect(
		int(origin.X), int(origin.Y),
		int(origin.X)+int(r.Right), int(origin.Y)+int(r.Bottom),
	)
}

// Run shows the window, excludes it from capture and pumps messages
// until the window is destroyed. Returns the fatal paint error if one
// ended the session.
func (w *Window) Run(handler Handler) error {
	w.handler = handler
	handler.Reposition(w.SourceRect())

	if err := w.SetCaptureExcluded(true); err != nil {
		w.log.Warn("capture exclusion unavailable", "error", err)
	}

	procShowWindow.Call(w.hwnd, 1) // SW_SHOWNORMAL

	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if ret == 0 || int32(ret) == -1 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
	return w.fatal
}

func wndproc(hwnd uintptr, message uint32, wparam, lparam uintptr) uintptr {
	w := lookupWindow(hwnd)
	if w == nil || w.handler == nil {
		ret, _, _ := procDefWindowProcW.Call(hwnd, uintptr(message), wparam, lparam)
		return ret
	}

	switch message {
	case wmSize:
		w.handler.Resize(int(uint16(lparam)), int(uint16(lparam>>16)))
		w.handler.Reposition(w.SourceRect())
		return 0

	case wmMove:
		w.handler.Reposition(w.SourceRect())
		return 0

	case wmPaint:
		procValidateRect.Call(hwnd, 0)
		if err := w.handler.Paint(); err != nil {
			w.fatal = err
			w.log.Error("render stopped", "error", err)
			procDestroyWindow.Call(hwnd)
			return 0
		}
		// Keep the paint loop running; Present's vsync paces it.
		procInvalidateRect.Call(hwnd, 0, 0)
		return 0

	case wmKeyDown:
		state, _, _ := procGetKeyState.Call(vkControl)
		ctrl := uint16(state)&0x8000 != 0
		if cmd, arg := Translate(uint32(wparam), ctrl); cmd != CmdNone {
			w.handler.Command(cmd, arg)
		}
		return 0

	case wmDestroy:
		w.handler.Destroy()
		unregisterWindow(hwnd)
		procPostQuitMessage.Call(0)
		return 0
	}

	ret, _, _ := procDefWindowProcW.Call(hwnd, uintptr(message), wparam, lparam)
	return ret
}
