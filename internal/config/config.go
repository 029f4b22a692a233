// Package config handles configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Logging   LoggingConfig   `yaml:"logging"`
	Assets    AssetsConfig    `yaml:"assets"`
	Camera    CameraConfig    `yaml:"camera"`
	Input     InputConfig     `yaml:"input"`
	Animation AnimationConfig `yaml:"animation"`
	Lighting  LightingConfig  `yaml:"lighting"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FPSLimit   int        `yaml:"fps_limit"`
	ShowFPS    bool       `yaml:"show_fps"`
	ClearColor [3]float32 `yaml:"clear_color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// AssetsConfig holds mesh and texture sources.
type AssetsConfig struct {
	Model             string       `yaml:"model"`   // .gltf/.glb; empty uses procedural meshes only
	Texture           string       `yaml:"texture"` // rod texture; empty uses a grey pixel
	MaxTextureSize    int          `yaml:"max_texture_size"`
	GridRowSpacing    float32      `yaml:"grid_row_spacing"`
	GridColumnSpacing float32      `yaml:"grid_column_spacing"`
	GridColor         [3]float32   `yaml:"grid_color"`
	Meshes            []MeshConfig `yaml:"meshes"`
}

// MeshConfig selects the normal generation of one mesh.
type MeshConfig struct {
	Name    string `yaml:"name"`
	Normals string `yaml:"normals"` // smooth, blended or provided
	Invert  bool   `yaml:"invert"`
}

// CameraConfig holds the projection parameters.
type CameraConfig struct {
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	FovY        float32 `yaml:"fov_y"`
	Aspect      float32 `yaml:"aspect"`
	OrthoExtent float32 `yaml:"ortho_extent"`
	Perspective bool    `yaml:"perspective"`
}

// InputConfig holds integration rate, bounds and key bindings.
type InputConfig struct {
	QueueSize   int               `yaml:"queue_size"`
	Rate        float32           `yaml:"rate"`
	CameraX     [2]float32        `yaml:"camera_x"`
	CameraY     [2]float32        `yaml:"camera_y"`
	CameraZ     [2]float32        `yaml:"camera_z"`
	Look        [2]float32        `yaml:"look"`
	LightX      [2]float32        `yaml:"light_x"`
	Tilt        [2]float32        `yaml:"tilt"`
	TiltDivisor float32           `yaml:"tilt_divisor"`
	InitialTilt float32           `yaml:"initial_tilt"`
	Bindings    map[string]string `yaml:"bindings"` // action name -> key name
}

// AnimationConfig holds the oscillators and the rod pendulum.
type AnimationConfig struct {
	Paused      bool               `yaml:"paused"`
	Oscillators []OscillatorConfig `yaml:"oscillators"`
	Pendulum    PendulumConfig     `yaml:"pendulum"`
}

// OscillatorConfig is one ping-pong oscillator. Times are milliseconds,
// speeds degrees per millisecond.
type OscillatorConfig struct {
	Name      string         `yaml:"name"`
	Speed     float32        `yaml:"speed"`
	Period    float32        `yaml:"period"`
	Phase     float32        `yaml:"phase"`
	Direction float32        `yaml:"direction"`
	Targets   []TargetConfig `yaml:"targets"`
}

// TargetConfig binds an oscillator to a part rotation.
type TargetConfig struct {
	Part string     `yaml:"part"`
	Axis [3]float32 `yaml:"axis"`
	Sign float32    `yaml:"sign"`
}

// PendulumConfig drives the rod and its hanging parts from the tilt.
type PendulumConfig struct {
	Rod       string   `yaml:"rod"`
	Followers []string `yaml:"followers"`
	TiltScale float32  `yaml:"tilt_scale"`
	YScale    float32  `yaml:"y_scale"`
	ZScale    float32  `yaml:"z_scale"`
}

// LightingConfig holds the point light and material terms.
type LightingConfig struct {
	LightY    float32    `yaml:"light_y"`
	LightZ    float32    `yaml:"light_z"`
	Ambient   [3]float32 `yaml:"ambient"`
	SpecPower float32    `yaml:"spec_power"`
	SpecColor [3]float32 `yaml:"spec_color"`
}

// Default returns a Config with the standard scene values.
func Default() *Config {
	diagonal := [3]float32{1, 1, 1}
	bodyTargets := []TargetConfig{
		{Part: "body", Axis: [3]float32{0, 1, 0}, Sign: -1},
		{Part: "arm", Axis: [3]float32{0, 1, 0}, Sign: -1},
	}
	for _, part := range []string{
		"foot_left", "foot_right", "rod", "nose", "stomach", "eye_left", "eye_right",
		"pupil_left", "pupil_right", "line", "bob",
	} {
		bodyTargets = append(bodyTargets, TargetConfig{Part: part, Axis: diagonal, Sign: -1})
	}

	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			ClearColor: [3]float32{0.65, 0.85, 0.9},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Assets: AssetsConfig{
			MaxTextureSize:    1024,
			GridRowSpacing:    1,
			GridColumnSpacing: 1,
			GridColor:         [3]float32{0.941, 0.961, 1.0},
			Meshes: []MeshConfig{
				{Name: "body", Normals: "smooth"},
				{Name: "arm", Normals: "smooth", Invert: true},
				{Name: "foot", Normals: "blended", Invert: true},
				{Name: "rod", Normals: "provided"},
				{Name: "nose", Normals: "smooth"},
				{Name: "cube", Normals: "smooth"},
				{Name: "bob", Normals: "smooth"},
			},
		},
		Camera: CameraConfig{
			Near:        1,
			Far:         20,
			FovY:        70,
			Aspect:      1,
			OrthoExtent: 2,
			Perspective: true,
		},
		Input: InputConfig{
			QueueSize:   256,
			Rate:        0.005,
			CameraX:     [2]float32{-3, 3},
			CameraY:     [2]float32{-1.5, 3},
			CameraZ:     [2]float32{-3, 3},
			Look:        [2]float32{-3, 3},
			LightX:      [2]float32{-3.5, 3},
			Tilt:        [2]float32{0, 9},
			TiltDivisor: 50,
			InitialTilt: 9,
			Bindings: map[string]string{
				"move_x_neg":         "a",
				"move_x_pos":         "d",
				"move_y_neg":         "s",
				"move_y_pos":         "w",
				"look_neg":           "x",
				"look_pos":           "z",
				"light_neg":          "t",
				"light_pos":          "y",
				"toggle_perspective": "space",
				"quit":               "escape",
			},
		},
		Animation: AnimationConfig{
			Oscillators: []OscillatorConfig{
				{Name: "arms", Speed: 0.025, Period: 200, Direction: 1,
					Targets: []TargetConfig{{Part: "arm", Axis: [3]float32{0, 1, 0}, Sign: -1}}},
				{Name: "body", Speed: 0.01, Period: 600, Phase: 200, Direction: 1,
					Targets: bodyTargets},
				{Name: "rod", Speed: 0.05, Period: 300, Phase: 150, Direction: -1},
				{Name: "feet", Speed: 0.025, Period: 200, Direction: 1,
					Targets: []TargetConfig{
						{Part: "foot_left", Axis: [3]float32{1, 0, 0}, Sign: -1},
						{Part: "foot_right", Axis: [3]float32{1, 0, 0}, Sign: -1},
					}},
			},
			Pendulum: PendulumConfig{
				Rod:       "rod",
				Followers: []string{"line", "bob"},
				TiltScale: 10,
				YScale:    0.9,
				ZScale:    0.5,
			},
		},
		Lighting: LightingConfig{
			LightY:    1,
			LightZ:    -2,
			Ambient:   [3]float32{0, 0, 0},
			SpecPower: 5,
			SpecColor: [3]float32{1, 1, 1},
		},
	}
}
