package common

// Key codes delivered by window.Window key callbacks. They are GLFW key codes, which equal
// the ASCII value for digits, letters and space.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32
	KeyL     = 76
	KeyS     = 83
	KeyEsc   = 256

	// Key0 through Key9 are the top-row digits.
	Key0 = 48
	Key1 = 49
	Key2 = 50
	Key3 = 51
	Key4 = 52
	Key5 = 53
	Key6 = 54
	Key7 = 55
	Key8 = 56
	Key9 = 57
)
