package engine

import "github.com/milk9111/acengine/prefabs"

type KeyBindings struct {
	Left  []string
	Right []string
	Up    []string
	Down  []string
	Jump  []string
}

// Tuning holds the physics and contact constants the systems read each tick.
type Tuning struct {
	Gravity         float64
	MaxFallSpeed    float64
	JumpImpulse     float64
	Friction        float64
	StopThreshold   float64
	FallMargin      float64
	PlayfieldMargin float64

	StompTolerance float64
	StompBounce    float64
	StompBonus     int
	RespawnX       float64
	RespawnY       float64

	Keys KeyBindings

	// Templates backs "Create object". Nil falls back to the embedded
	// prefabs/objects.yaml.
	Templates *prefabs.ObjectLibrarySpec
}

func DefaultTuning() Tuning {
	return Tuning{
		Gravity:         0.6,
		MaxFallSpeed:    15,
		JumpImpulse:     -12,
		Friction:        0.7,
		StopThreshold:   0.5,
		FallMargin:      50,
		PlayfieldMargin: 50,
		StompTolerance:  10,
		StompBounce:     -8,
		StompBonus:      200,
		RespawnX:        50,
		RespawnY:        50,
		Keys: KeyBindings{
			Left:  []string{"Left"},
			Right: []string{"Right"},
			Up:    []string{"Up"},
			Down:  []string{"Down"},
			Jump:  []string{"Up", "space"},
		},
	}
}

// TuningFromSpec overlays the non-zero values of spec on DefaultTuning.
func TuningFromSpec(spec *prefabs.RuntimeSpec) Tuning {
	t := DefaultTuning()
	if spec == nil {
		return t
	}

	overlay := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	overlay(&t.Gravity, spec.Physics.Gravity)
	overlay(&t.MaxFallSpeed, spec.Physics.MaxFallSpeed)
	overlay(&t.JumpImpulse, spec.Physics.JumpImpulse)
	overlay(&t.Friction, spec.Physics.Friction)
	overlay(&t.StopThreshold, spec.Physics.StopThreshold)
	overlay(&t.FallMargin, spec.Physics.FallMargin)
	overlay(&t.PlayfieldMargin, spec.Physics.PlayfieldMargin)
	overlay(&t.StompTolerance, spec.Contact.StompTolerance)
	overlay(&t.StompBounce, spec.Contact.StompBounce)
	overlay(&t.RespawnX, spec.Contact.RespawnX)
	overlay(&t.RespawnY, spec.Contact.RespawnY)
	if spec.Contact.StompBonus != 0 {
		t.StompBonus = spec.Contact.StompBonus
	}

	keys := func(dst *[]string, v []string) {
		if len(v) > 0 {
			*dst = append([]string(nil), v...)
		}
	}
	keys(&t.Keys.Left, spec.Keys.Left)
	keys(&t.Keys.Right, spec.Keys.Right)
	keys(&t.Keys.Up, spec.Keys.Up)
	keys(&t.Keys.Down, spec.Keys.Down)
	keys(&t.Keys.Jump, spec.Keys.Jump)
	return t
}
