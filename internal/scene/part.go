// Package scene holds the articulated figure: one rotation, scale and world
// placement per part, and the composition of those into per-draw matrices.
package scene

import (
	"fmt"

	"github.com/Faultbox/figurine/pkg/math"
)

// PartID addresses one articulated part of the figure.
type PartID int

const (
	Body PartID = iota
	Arm
	FootLeft
	FootRight
	Rod
	Nose
	Stomach
	EyeLeft
	EyeRight
	PupilLeft
	PupilRight
	Line
	Bob

	// PartCount is the number of articulated parts.
	PartCount
)

var partNames = [PartCount]string{
	Body:       "body",
	Arm:        "arm",
	FootLeft:   "foot_left",
	FootRight:  "foot_right",
	Rod:        "rod",
	Nose:       "nose",
	Stomach:    "stomach",
	EyeLeft:    "eye_left",
	EyeRight:   "eye_right",
	PupilLeft:  "pupil_left",
	PupilRight: "pupil_right",
	Line:       "line",
	Bob:        "bob",
}

func (id PartID) String() string {
	if id < 0 || id >= PartCount {
		return fmt.Sprintf("part(%d)", int(id))
	}
	return partNames[id]
}

// Valid reports whether id names a part.
func (id PartID) Valid() bool {
	return id >= 0 && id < PartCount
}

// ParsePartID looks a part up by name.
func ParsePartID(name string) (PartID, error) {
	for id, n := range partNames {
		if n == name {
			return PartID(id), nil
		}
	}
	return 0, fmt.Errorf("unknown part %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (id PartID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("invalid part id %d", int(id))
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *PartID) UnmarshalText(text []byte) error {
	parsed, err := ParsePartID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// PartTransform is the local transform pair of one part.
type PartTransform struct {
	Rotation math.Mat4
	Scale    math.Mat4
}

// Model returns Rotation × Scale: the part is scaled first, then rotated.
func (t PartTransform) Model() math.Mat4 {
	return t.Rotation.Mul(t.Scale)
}
