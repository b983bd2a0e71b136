package window

import (
	"fmt"
	"runtime"
	"sync"
)

// Window is the viewer's on-screen presence: a title bar for status text and a keyboard
// source for viewer commands. Nothing is drawn into it.
type Window interface {
	// SetUpdateCallback sets the function called once per message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetKeyDownCallback sets the receiver of key press and key repeat events.
	// Without a receiver, Escape closes the window.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetTitle replaces the title bar text. Safe to call from any goroutine; the title is
	// applied on the next message loop iteration.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// Title returns the most recently requested title.
	//
	// Returns:
	//   - string: the title
	Title() string

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: false once the window was closed by the user or by Close
	IsRunning() bool

	// Close destroys the window and releases the platform library.
	//
	// Returns:
	//   - error: error if the window was never opened
	Close() error

	// ProcessMessages polls input and applies pending titles until the window closes.
	// It must run on the goroutine that called NewWindow.
	ProcessMessages()

	// Size returns the framebuffer size in pixels.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Size() (int, int)
}

type engineWindow struct {
	mu         sync.Mutex
	title      string
	titleDirty bool

	width     int
	height    int
	resizable bool

	platform *glfwWindow

	onUpdate  func()
	onKeyDown func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow opens a window with the specified options applied over a 960x540 default.
// The calling goroutine is locked to its OS thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: error if the platform window could not be created (e.g. no display)
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:  "animview",
		width:  960,
		height: 540,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := openPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.title == title {
		return
	}
	w.title = title
	w.titleDirty = true
}

func (w *engineWindow) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *engineWindow) IsRunning() bool {
	return w.platform != nil && w.platform.open()
}

func (w *engineWindow) Close() error {
	if w.platform == nil {
		return fmt.Errorf("window is not open")
	}
	w.platform.destroy()
	w.platform = nil
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		w.platform.poll()
		if !w.IsRunning() {
			return
		}

		w.mu.Lock()
		title, dirty := w.title, w.titleDirty
		w.titleDirty = false
		w.mu.Unlock()
		if dirty {
			w.platform.setTitle(title)
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Size() (int, int) {
	return w.width, w.height
}
