//go:build windows

package d3d11

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"
)

// COM vtable calling infrastructure. Pure Go, no CGO: COM interfaces are
// carried as raw uintptr handles and methods are invoked by vtable index.

// comGUID is a COM GUID (128-bit).
type comGUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// IUnknown vtable indices.
const (
	vtblQueryInterface = 0
	vtblAddRef         = 1
	vtblRelease        = 2
)

// Error is a failed COM call with its HRESULT.
type Error struct {
	Op   string
	Code uint32
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: HRESULT 0x%08X", e.Op, e.Code)
}

func hrError(op string, hr uintptr) error {
	if int32(hr) >= 0 {
		return nil
	}
	return &Error{Op: op, Code: uint32(hr)}
}

func hrCode(err error) (uint32, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code, true
	}
	return 0, false
}

// DXGI failure HRESULTs the per-frame pipeline classifies on.
const (
	hrWaitTimeout   = 0x887A0027 // DXGI_ERROR_WAIT_TIMEOUT
	hrAccessLost    = 0x887A0026 // DXGI_ERROR_ACCESS_LOST
	hrDeviceRemoved = 0x887A0005 // DXGI_ERROR_DEVICE_REMOVED
	hrDeviceReset   = 0x887A0007 // DXGI_ERROR_DEVICE_RESET
)

// IsWaitTimeout reports whether err is DXGI_ERROR_WAIT_TIMEOUT: no new
// frame was ready within the timeout. Not a real failure.
func IsWaitTimeout(err error) bool {
	code, ok := hrCode(err)
	return ok && code == hrWaitTimeout
}

// IsAccessLost reports whether err is DXGI_ERROR_ACCESS_LOST: the
// duplication interface was invalidated (display mode change, UAC,
// lock screen). Recoverable by re-duplicating the output.
func IsAccessLost(err error) bool {
	code, ok := hrCode(err)
	return ok && code == hrAccessLost
}

// IsDeviceLost reports whether err indicates the GPU device itself was
// removed or reset. Not recoverable without recreating the device.
func IsDeviceLost(err error) bool {
	code, ok := hrCode(err)
	return ok && (code == hrDeviceRemoved || code == hrDeviceReset)
}

// comVtblFn resolves a COM vtable function pointer by index.
func comVtblFn(obj uintptr, idx int) uintptr {
	vtablePtr := *(*uintptr)(unsafe.Pointer(obj))
	return *(*uintptr)(unsafe.Pointer(vtablePtr + uintptr(idx)*unsafe.Sizeof(uintptr(0))))
}

// comCall invokes a COM vtable method at the given index and converts a
// failing HRESULT into *Error.
func comCall(op string, obj uintptr, vtableIdx int, args ...uintptr) (uintptr, error) {
	allArgs := make([]uintptr, 0, 1+len(args))
	allArgs = append(allArgs, obj)
	allArgs = append(allArgs, args...)
	ret, _, _ := syscall.SyscallN(comVtblFn(obj, vtableIdx), allArgs...)
	return ret, hrError(op, ret)
}

// comCallV invokes a void COM vtable method (no HRESULT to check).
func comCallV(obj uintptr, vtableIdx int, args ...uintptr) {
	allArgs := make([]uintptr, 0, 1+len(args))
	allArgs = append(allArgs, obj)
	allArgs = append(allArgs, args...)
	syscall.SyscallN(comVtblFn(obj, vtableIdx), allArgs...)
}

// Release calls IUnknown::Release. Safe on zero handles.
func Release(obj uintptr) {
	if obj != 0 {
		comCallV(obj, vtblRelease)
	}
}

// queryInterface performs IUnknown::QueryInterface for the given IID.
func queryInterface(op string, obj uintptr, iid *comGUID) (uintptr, error) {
	var out uintptr
	_, err := comCall(op, obj, vtblQueryInterface,
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&out)),
	)
	if err != nil {
		return 0, err
	}
	return out, nil
}
