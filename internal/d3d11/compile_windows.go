//go:build windows

package d3d11

import (
	"fmt"
	"syscall"
	"unsafe"
)

var (
	modD3DCompiler = syscall.NewLazyDLL("d3dcompiler_47.dll")
	procD3DCompile = modD3DCompiler.NewProc("D3DCompile")
)

// CompileShader compiles HLSL source for the given entry point and
// target profile (e.g. "vs_5_0", "ps_5_0", "cs_5_0") and returns the
// bytecode. Compiler diagnostics are folded into the error.
func CompileShader(source, name, entry, target string) ([]byte, error) {
	src := []byte(source)
	nameC := append([]byte(name), 0)
	entryC := append([]byte(entry), 0)
	targetC := append([]byte(target), 0)

	var code, errs uintptr
	hr, _, _ := procD3DCompile.Call(
		uintptr(unsafe.Pointer(&src[0])),
		uintptr(len(src)),
		uintptr(unsafe.Pointer(&nameC[0])),
		0, // no defines
		0, // no includes
		uintptr(unsafe.Pointer(&entryC[0])),
		uintptr(unsafe.Pointer(&targetC[0])),
		0, 0, // no flags
		uintptr(unsafe.Pointer(&code)),
		uintptr(unsafe.Pointer(&errs)),
	)
	if err := hrError("D3DCompile", hr); err != nil {
		if errs != 0 {
			msg := blobString(errs)
			Release(errs)
			return nil, fmt.Errorf("compile %s (%s): %s", name, target, msg)
		}
		return nil, fmt.Errorf("compile %s (%s): %w", name, target, err)
	}
	if errs != 0 {
		Release(errs)
	}
	defer Release(code)
	return blobBytes(code), nil
}

func blobPtrLen(blob uintptr) (uintptr, int) {
	ptr, _, _ := syscall.SyscallN(comVtblFn(blob, blobGetBufferPointer), blob)
	size, _, _ := syscall.SyscallN(comVtblFn(blob, blobGetBufferSize), blob)
	return ptr, int(size)
}

func blobBytes(blob uintptr) []byte {
	ptr, n := blobPtrLen(blob)
	if ptr == 0 || n == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n))
	return out
}

func blobString(blob uintptr) string {
	b := blobBytes(blob)
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return string(b)
}
