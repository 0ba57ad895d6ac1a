//go:build !windows

package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func setDarkTitleBar(*glfw.Window) {}

func setBorderColor(*glfw.Window, mgl32.Vec3) {}
