// Package window provides the glfw drawing surface and frame source for the
// scene engine.
package window

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"HexScene/internal/logger"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

func init() {
	// glfw and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

type Options struct {
	Width   int32
	Height  int32
	Title   string
	VSync   bool
	Samples int
}

// Window is a glfw window with a current OpenGL 4.1 core context. It is both
// the renderer's Surface and the engine's FrameSource.
type Window struct {
	win     *glfw.Window
	started bool
	start   float64

	dragging bool
	lastX    float64

	onResize func(width, height int)
	onKey    func(key glfw.Key)
	onDrag   func(dx float64)
	onGrab   func(held bool)
}

func Open(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: init glfw: %w", err)
	}

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if opts.Samples > 0 {
		glfw.WindowHint(glfw.Samples, opts.Samples)
	}

	win, err := glfw.CreateWindow(int(opts.Width), int(opts.Height), opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: create: %w", err)
	}
	win.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	setDarkTitleBar(win)

	w := &Window{win: win}
	win.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	win.SetKeyCallback(w.keyCallback)
	win.SetMouseButtonCallback(w.mouseButtonCallback)
	win.SetCursorPosCallback(w.cursorPosCallback)

	fw, fh := win.GetFramebufferSize()
	logger.Log.Info("Window opened",
		zap.String("title", opts.Title),
		zap.Int("framebuffer_width", fw), zap.Int("framebuffer_height", fh))
	return w, nil
}

func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// Next presents the frame drawn since the previous call, processes input
// and returns the refresh timestamp. It reports false once the window is
// asked to close or ctx is done.
func (w *Window) Next(ctx context.Context) (time.Duration, bool) {
	if w.started {
		w.win.SwapBuffers()
	} else {
		w.started = true
		w.start = glfw.GetTime()
	}
	glfw.PollEvents()
	if ctx.Err() != nil || w.win.ShouldClose() {
		return 0, false
	}
	return time.Duration((glfw.GetTime() - w.start) * float64(time.Second)), true
}

// OnResize is called with the new framebuffer size, which may be zero while
// the window is minimized.
func (w *Window) OnResize(fn func(width, height int)) { w.onResize = fn }

// OnKey is called for key presses and repeats.
func (w *Window) OnKey(fn func(key glfw.Key)) { w.onKey = fn }

// OnDrag reports horizontal drags with the left mouse button as a fraction
// of the window width. grab is called when the button goes down and up.
func (w *Window) OnDrag(grab func(held bool), drag func(dx float64)) {
	w.onGrab = grab
	w.onDrag = drag
}

// SetBorderColor tints the title bar where the platform supports it.
func (w *Window) SetBorderColor(c mgl32.Vec3) {
	setBorderColor(w.win, c)
}

func (w *Window) SetShouldClose() {
	w.win.SetShouldClose(true)
}

func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Release || w.onKey == nil {
		return
	}
	w.onKey(key)
}

func (w *Window) mouseButtonCallback(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	w.dragging = action == glfw.Press
	if w.dragging {
		w.lastX, _ = win.GetCursorPos()
	}
	if w.onGrab != nil {
		w.onGrab(w.dragging)
	}
}

func (w *Window) cursorPosCallback(win *glfw.Window, xpos, _ float64) {
	if !w.dragging || w.onDrag == nil {
		return
	}
	width, _ := win.GetSize()
	dx := xpos - w.lastX
	w.lastX = xpos
	if width > 0 && dx != 0 {
		w.onDrag(dx / float64(width))
	}
}
