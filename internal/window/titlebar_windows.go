//go:build windows

package window

import (
	"syscall"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	DWMWA_USE_IMMERSIVE_DARK_MODE = 20
	DWMWA_BORDER_COLOR            = 34
	DWMWA_CAPTION_COLOR           = 35
)

func setAttribute(win *glfw.Window, attr uintptr, value uint32) {
	hwnd := win.GetWin32Window()
	if hwnd == nil {
		return
	}
	procDwmSetWindowAttribute.Call(
		uintptr(unsafe.Pointer(hwnd)),
		attr,
		uintptr(unsafe.Pointer(&value)),
		unsafe.Sizeof(value),
	)
}

func setDarkTitleBar(win *glfw.Window) {
	setAttribute(win, DWMWA_USE_IMMERSIVE_DARK_MODE, 1)
	setAttribute(win, DWMWA_BORDER_COLOR, 0x00000000)
	setAttribute(win, DWMWA_CAPTION_COLOR, 0x00202020)
}

func setBorderColor(win *glfw.Window, c mgl32.Vec3) {
	// COLORREF is 0x00BBGGRR.
	c = mgl32.Vec3{mgl32.Clamp(c[0], 0, 1), mgl32.Clamp(c[1], 0, 1), mgl32.Clamp(c[2], 0, 1)}
	colorref := uint32(uint8(c[0]*255)) | uint32(uint8(c[1]*255))<<8 | uint32(uint8(c[2]*255))<<16
	setAttribute(win, DWMWA_BORDER_COLOR, colorref)
	setAttribute(win, DWMWA_CAPTION_COLOR, colorref)
}
