package engine

// MouseButtonPrimary is the left mouse button.
const MouseButtonPrimary = 1

// Input is the per-tick input snapshot. Key names follow Tk keysyms
// ("Left", "space", "a", "Return"). Pressed and Released only hold the keys
// whose state changed since the previous tick.
type Input struct {
	Held     map[string]bool
	Pressed  map[string]bool
	Released map[string]bool
	MouseX   float64
	MouseY   float64
	Buttons  map[int]bool
}

func (in Input) IsHeld(key string) bool {
	return in.Held[key]
}

// AnyHeld reports whether at least one of keys is held.
func (in Input) AnyHeld(keys []string) bool {
	for _, k := range keys {
		if in.Held[k] {
			return true
		}
	}
	return false
}

func (in Input) WasPressed(key string) bool {
	return in.Pressed[key]
}

func (in Input) WasReleased(key string) bool {
	return in.Released[key]
}

func (in Input) ButtonHeld(button int) bool {
	return in.Buttons[button]
}

// Clone copies the snapshot so the host can keep mutating its own maps.
func (in Input) Clone() Input {
	return Input{
		Held:     cloneSet(in.Held),
		Pressed:  cloneSet(in.Pressed),
		Released: cloneSet(in.Released),
		MouseX:   in.MouseX,
		MouseY:   in.MouseY,
		Buttons:  cloneSet(in.Buttons),
	}
}

func cloneSet[K comparable](in map[K]bool) map[K]bool {
	if len(in) == 0 {
		return nil
	}
	out := make(map[K]bool, len(in))
	for k, v := range in {
		if v {
			out[k] = true
		}
	}
	return out
}
