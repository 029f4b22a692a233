package app

import (
	"fmt"

	"github.com/Faultbox/figurine/internal/animation"
	"github.com/Faultbox/figurine/internal/assets"
	"github.com/Faultbox/figurine/internal/config"
	"github.com/Faultbox/figurine/internal/engine/input"
	"github.com/Faultbox/figurine/internal/engine/model"
	"github.com/Faultbox/figurine/internal/scene"
	"github.com/Faultbox/figurine/pkg/math"
)

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func rangeOf(r [2]float32) input.Range {
	return input.Range{Min: r[0], Max: r[1]}
}

// SceneSetup returns the default figure with the camera, lighting and clear
// colour taken from cfg.
func SceneSetup(cfg *config.Config) scene.Setup {
	s := scene.DefaultSetup()
	s.ClearColor = vec3(cfg.Graphics.ClearColor)
	s.Projection = scene.Projection{
		Near:        cfg.Camera.Near,
		Far:         cfg.Camera.Far,
		FovY:        cfg.Camera.FovY,
		Aspect:      cfg.Camera.Aspect,
		OrthoExtent: cfg.Camera.OrthoExtent,
	}
	s.Lighting = scene.Lighting{
		LightY:    cfg.Lighting.LightY,
		LightZ:    cfg.Lighting.LightZ,
		Ambient:   vec3(cfg.Lighting.Ambient),
		SpecPower: cfg.Lighting.SpecPower,
		SpecColor: vec3(cfg.Lighting.SpecColor),
	}
	return s
}

// AnimationConfig resolves part names and builds the driver config.
func AnimationConfig(cfg *config.Config) (animation.Config, error) {
	var out animation.Config
	for _, o := range cfg.Animation.Oscillators {
		oc := animation.OscillatorConfig{
			Name:      o.Name,
			Speed:     o.Speed,
			Period:    o.Period,
			Phase:     o.Phase,
			Direction: o.Direction,
		}
		for _, t := range o.Targets {
			id, err := scene.ParsePartID(t.Part)
			if err != nil {
				return animation.Config{}, fmt.Errorf("oscillator %s: %w", o.Name, err)
			}
			oc.Targets = append(oc.Targets, animation.Target{Part: id, Axis: vec3(t.Axis), Sign: t.Sign})
		}
		out.Oscillators = append(out.Oscillators, oc)
	}

	p := cfg.Animation.Pendulum
	rod, err := scene.ParsePartID(p.Rod)
	if err != nil {
		return animation.Config{}, fmt.Errorf("pendulum: %w", err)
	}
	out.Pendulum = animation.PendulumConfig{
		Rod:       rod,
		TiltScale: p.TiltScale,
		YScale:    p.YScale,
		ZScale:    p.ZScale,
	}
	for _, name := range p.Followers {
		id, err := scene.ParsePartID(name)
		if err != nil {
			return animation.Config{}, fmt.Errorf("pendulum: %w", err)
		}
		out.Pendulum.Followers = append(out.Pendulum.Followers, id)
	}
	return out, out.Validate()
}

// InputSettings returns the tracker rates and bounds from cfg.
func InputSettings(cfg *config.Config) input.Settings {
	in := cfg.Input
	return input.Settings{
		Rate:        in.Rate,
		CameraX:     rangeOf(in.CameraX),
		CameraY:     rangeOf(in.CameraY),
		CameraZ:     rangeOf(in.CameraZ),
		Look:        rangeOf(in.Look),
		LightX:      rangeOf(in.LightX),
		Tilt:        rangeOf(in.Tilt),
		TiltDivisor: in.TiltDivisor,
		InitialTilt: in.InitialTilt,
		Perspective: cfg.Camera.Perspective,
	}
}

// Bindings returns the key map from cfg, or the defaults when cfg has none.
func Bindings(cfg *config.Config) (input.Bindings, error) {
	if len(cfg.Input.Bindings) == 0 {
		return input.DefaultBindings(), nil
	}
	return input.ParseBindings(cfg.Input.Bindings)
}

// MeshSpecs resolves the normal mode of every configured mesh.
func MeshSpecs(cfg *config.Config) ([]assets.MeshSpec, error) {
	if len(cfg.Assets.Meshes) == 0 {
		return assets.DefaultSpecs(), nil
	}
	specs := make([]assets.MeshSpec, 0, len(cfg.Assets.Meshes))
	for _, m := range cfg.Assets.Meshes {
		mode, err := model.ParseNormalMode(m.Normals)
		if err != nil {
			return nil, fmt.Errorf("mesh %s: %w", m.Name, err)
		}
		specs = append(specs, assets.MeshSpec{Name: m.Name, Normals: mode, Invert: m.Invert})
	}
	return specs, nil
}

// GridSpec returns the ground grid layout from cfg.
func GridSpec(cfg *config.Config) assets.GridSpec {
	return assets.GridSpec{
		RowSpacing:    cfg.Assets.GridRowSpacing,
		ColumnSpacing: cfg.Assets.GridColumnSpacing,
		Color:         vec3(cfg.Assets.GridColor),
	}
}
