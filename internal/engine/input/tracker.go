package input

// Range is a closed [Min, Max] interval.
type Range struct {
	Min float32
	Max float32
}

// Clamp limits v to the range.
func (r Range) Clamp(v float32) float32 {
	return max(r.Min, min(r.Max, v))
}

// Settings holds the integration rate, bounds and initial values of the
// tracked variables.
type Settings struct {
	Rate float32 // units per millisecond

	CameraX Range
	CameraY Range
	CameraZ Range
	Look    Range
	LightX  Range
	Tilt    Range

	// TiltDivisor converts pointer pixels into tilt units.
	TiltDivisor float32
	InitialTilt float32

	// Perspective is the projection mode at start.
	Perspective bool
}

// DefaultSettings returns the standard rates and bounds.
func DefaultSettings() Settings {
	return Settings{
		Rate:        0.005,
		CameraX:     Range{Min: -3, Max: 3},
		CameraY:     Range{Min: -1.5, Max: 3},
		CameraZ:     Range{Min: -3, Max: 3},
		Look:        Range{Min: -3, Max: 3},
		LightX:      Range{Min: -3.5, Max: 3},
		Tilt:        Range{Min: 0, Max: 9},
		TiltDivisor: 50,
		InitialTilt: 9,
		Perspective: true,
	}
}

// State is the snapshot of tracked values read by a frame.
type State struct {
	CameraX     float32
	CameraY     float32
	CameraZ     float32
	Look        float32
	LightX      float32
	Tilt        float32
	Perspective bool
	Quit        bool
}

// Tracker folds events into State. Held keys integrate on Tick; pointer
// drags change the tilt immediately.
type Tracker struct {
	settings Settings
	bindings Bindings

	held     [actionCount]bool
	pressed  bool
	pointerY float32

	state State
}

// NewTracker returns a tracker at the initial values: camera, look and
// light at 0 and tilt at InitialTilt, each clamped into its range, with
// the projection chosen in settings.
func NewTracker(settings Settings, bindings Bindings) *Tracker {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Tracker{
		settings: settings,
		bindings: bindings,
		state: State{
			CameraX:     settings.CameraX.Clamp(0),
			CameraY:     settings.CameraY.Clamp(0),
			CameraZ:     settings.CameraZ.Clamp(0),
			Look:        settings.Look.Clamp(0),
			LightX:      settings.LightX.Clamp(0),
			Tilt:        settings.Tilt.Clamp(settings.InitialTilt),
			Perspective: settings.Perspective,
		},
	}
}

// Handle applies one event. Unbound keys are ignored.
func (t *Tracker) Handle(e Event) {
	switch e := e.(type) {
	case KeyDown:
		a, ok := t.bindings[e.Key]
		if !ok {
			return
		}
		switch a {
		case TogglePerspective:
			t.state.Perspective = !t.state.Perspective
		case QuitAction:
			t.state.Quit = true
		default:
			t.held[a] = true
		}
	case KeyUp:
		if a, ok := t.bindings[e.Key]; ok {
			t.held[a] = false
		}
	case PointerDown:
		t.pressed = true
		t.pointerY = e.Y
	case PointerMove:
		if !t.pressed {
			return
		}
		t.state.Tilt = t.settings.Tilt.Clamp(t.state.Tilt + (e.Y-t.pointerY)/t.settings.TiltDivisor)
		t.pointerY = e.Y
	case PointerUp:
		t.pressed = false
	case Quit:
		t.state.Quit = true
	}
}

// Tick integrates every held action over dt milliseconds and clamps the
// result. Each held action moves and clamps in turn, so with both keys of a
// pair held the later one wins at a bound: camera Y applies up then down,
// the others apply their negative action first.
func (t *Tracker) Tick(dt float32) {
	step := dt * t.settings.Rate
	s := &t.state

	move := func(v *float32, r Range, a Action, sign float32) {
		if t.held[a] {
			*v = r.Clamp(*v + sign*step)
		}
	}
	move(&s.CameraY, t.settings.CameraY, MoveYPos, 1)
	move(&s.CameraY, t.settings.CameraY, MoveYNeg, -1)
	move(&s.CameraX, t.settings.CameraX, MoveXNeg, -1)
	move(&s.CameraX, t.settings.CameraX, MoveXPos, 1)
	move(&s.LightX, t.settings.LightX, LightNeg, -1)
	move(&s.LightX, t.settings.LightX, LightPos, 1)
	move(&s.Look, t.settings.Look, LookNeg, -1)
	move(&s.Look, t.settings.Look, LookPos, 1)
	s.CameraZ = t.settings.CameraZ.Clamp(s.CameraZ)
}

// Held reports whether the key bound to a is down.
func (t *Tracker) Held(a Action) bool {
	return a >= 0 && a < actionCount && t.held[a]
}

// State returns the current snapshot.
func (t *Tracker) State() State {
	return t.state
}
