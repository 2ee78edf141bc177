//go:build windows

package d3d11

import "unsafe"

// DXGI output duplication calls. The handles are raw COM pointers; the
// capture package layers lifecycle management on top.

// EnumOutput returns the index'th output of an adapter. The caller owns
// the returned IDXGIOutput handle.
func EnumOutput(adapter uintptr, index uint32) (uintptr, error) {
	var output uintptr
	_, err := comCall("IDXGIAdapter::EnumOutputs", adapter, dxgiAdapterEnumOutputs,
		uintptr(index),
		uintptr(unsafe.Pointer(&output)))
	return output, err
}

// DuplicateOutput creates an output duplication of output bound to the
// given D3D11 device. The caller owns the returned handle.
func DuplicateOutput(output, device uintptr) (uintptr, error) {
	output1, err := queryInterface("IDXGIOutput::QueryInterface(IDXGIOutput1)", output, &iidIDXGIOutput1)
	if err != nil {
		return 0, err
	}
	defer Release(output1)

	var dupl uintptr
	_, err = comCall("IDXGIOutput1::DuplicateOutput", output1, dxgiOutput1DuplicateOutput,
		device,
		uintptr(unsafe.Pointer(&dupl)))
	return dupl, err
}

// DuplicationDesc queries the duplication's output description.
func DuplicationDesc(dupl uintptr) OutduplDesc {
	var desc OutduplDesc
	comCallV(dupl, dxgiDuplGetDesc, uintptr(unsafe.Pointer(&desc)))
	return desc
}

// AcquireNextFrame waits up to timeoutMS for the next desktop frame and
// returns it as an ID3D11Texture2D handle with the frame metadata. The
// caller must Release the texture and then call ReleaseFrame.
func AcquireNextFrame(dupl uintptr, timeoutMS uint32) (uintptr, OutduplFrameInfo, error) {
	var info OutduplFrameInfo
	var resource uintptr
	_, err := comCall("IDXGIOutputDuplication::AcquireNextFrame", dupl, dxgiDuplAcquireNextFrame,
		uintptr(timeoutMS),
		uintptr(unsafe.Pointer(&info)),
		uintptr(unsafe.Pointer(&resource)))
	if err != nil {
		return 0, OutduplFrameInfo{}, err
	}
	defer Release(resource)

	tex, err := queryInterface("IDXGIResource::QueryInterface(ID3D11Texture2D)", resource, &iidID3D11Texture2D)
	if err != nil {
		comCall("IDXGIOutputDuplication::ReleaseFrame", dupl, dxgiDuplReleaseFrame)
		return 0, OutduplFrameInfo{}, err
	}
	return tex, info, nil
}

// ReleaseFrame returns the currently held frame to the duplication.
func ReleaseFrame(dupl uintptr) error {
	_, err := comCall("IDXGIOutputDuplication::ReleaseFrame", dupl, dxgiDuplReleaseFrame)
	return err
}
