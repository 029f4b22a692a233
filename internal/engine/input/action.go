package input

import (
	"fmt"
	"strings"
)

// Action is a logical input bound to a key.
type Action int

const (
	MoveXNeg Action = iota
	MoveXPos
	MoveYNeg
	MoveYPos
	LookNeg
	LookPos
	LightNeg
	LightPos
	TogglePerspective
	QuitAction

	actionCount
)

var actionNames = [actionCount]string{
	MoveXNeg:          "move_x_neg",
	MoveXPos:          "move_x_pos",
	MoveYNeg:          "move_y_neg",
	MoveYPos:          "move_y_pos",
	LookNeg:           "look_neg",
	LookPos:           "look_pos",
	LightNeg:          "light_neg",
	LightPos:          "light_pos",
	TogglePerspective: "toggle_perspective",
	QuitAction:        "quit",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction looks an action up by name.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Bindings maps lower-case key names to actions.
type Bindings map[string]Action

// DefaultBindings returns the standard keyboard layout.
func DefaultBindings() Bindings {
	return Bindings{
		"a":      MoveXNeg,
		"d":      MoveXPos,
		"s":      MoveYNeg,
		"w":      MoveYPos,
		"x":      LookNeg,
		"z":      LookPos,
		"t":      LightNeg,
		"y":      LightPos,
		"space":  TogglePerspective,
		"escape": QuitAction,
	}
}

// ParseBindings converts an action-name to key map, as found in config
// files, into Bindings.
func ParseBindings(keys map[string]string) (Bindings, error) {
	b := make(Bindings, len(keys))
	for name, key := range keys {
		a, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, fmt.Errorf("action %s: empty key", name)
		}
		if prev, dup := b[key]; dup {
			return nil, fmt.Errorf("key %q bound to both %s and %s", key, prev, a)
		}
		b[key] = a
	}
	return b, nil
}
