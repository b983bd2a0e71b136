package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type glfwWindow struct {
	handle *glfw.Window
	closed bool
}

// openPlatformWindow creates the GLFW window and routes its key and framebuffer events to w.
//
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func openPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}

	// no client API: the viewer only needs a title bar and keyboard focus
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	resizable := glfw.False
	if w.resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("create glfw window: %w", err)
	}
	gw := &glfwWindow{handle: handle}

	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		if w.onKeyDown == nil {
			if key == glfw.KeyEscape {
				handle.SetShouldClose(true)
			}
			return
		}
		w.onKeyDown(uint32(key))
	})
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
	})
	w.width, w.height = handle.GetFramebufferSize()

	w.platform = gw
	return nil
}

func (g *glfwWindow) open() bool {
	return !g.closed && !g.handle.ShouldClose()
}

func (g *glfwWindow) poll() {
	glfw.PollEvents()
}

func (g *glfwWindow) setTitle(title string) {
	g.handle.SetTitle(title)
}

func (g *glfwWindow) destroy() {
	if g.closed {
		return
	}
	g.closed = true
	g.handle.Destroy()
	glfw.Terminate()
}
