// Package input turns discrete key and pointer events into the clamped
// camera, light and rod-tilt values read by each frame.
package input

// Event is one discrete input signal. The concrete types below are the
// only implementations.
type Event interface {
	isEvent()
}

// KeyDown reports a key press. Key is the lower-case key name, such as
// "a" or "space".
type KeyDown struct{ Key string }

// KeyUp reports a key release.
type KeyUp struct{ Key string }

// PointerDown reports a button press at vertical position Y.
type PointerDown struct{ Y float32 }

// PointerMove reports pointer motion to vertical position Y.
type PointerMove struct{ Y float32 }

// PointerUp reports a button release.
type PointerUp struct{}

// Resize reports a new drawable size in pixels.
type Resize struct{ Width, Height int }

// Quit reports that the window was closed.
type Quit struct{}

func (KeyDown) isEvent()     {}
func (KeyUp) isEvent()       {}
func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Resize) isEvent()      {}
func (Quit) isEvent()        {}
