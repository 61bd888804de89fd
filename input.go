package main

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/acengine/engine"
)

// keysyms maps the ebiten keys whose names differ from their Tk keysym.
// Letters and digits are handled in keysym.
var keysyms = map[ebiten.Key]string{
	ebiten.KeyArrowLeft:    "Left",
	ebiten.KeyArrowRight:   "Right",
	ebiten.KeyArrowUp:      "Up",
	ebiten.KeyArrowDown:    "Down",
	ebiten.KeySpace:        "space",
	ebiten.KeyEnter:        "Return",
	ebiten.KeyEscape:       "Escape",
	ebiten.KeyTab:          "Tab",
	ebiten.KeyBackspace:    "BackSpace",
	ebiten.KeyDelete:       "Delete",
	ebiten.KeyShiftLeft:    "Shift_L",
	ebiten.KeyShiftRight:   "Shift_R",
	ebiten.KeyControlLeft:  "Control_L",
	ebiten.KeyControlRight: "Control_R",
	ebiten.KeyAltLeft:      "Alt_L",
	ebiten.KeyAltRight:     "Alt_R",
	ebiten.KeyHome:         "Home",
	ebiten.KeyEnd:          "End",
	ebiten.KeyPageUp:       "Prior",
	ebiten.KeyPageDown:     "Next",
	ebiten.KeyComma:        "comma",
	ebiten.KeyPeriod:       "period",
	ebiten.KeyMinus:        "minus",
	ebiten.KeyEqual:        "equal",
	ebiten.KeySlash:        "slash",
}

var mouseButtons = map[ebiten.MouseButton]int{
	ebiten.MouseButtonLeft:   engine.MouseButtonPrimary,
	ebiten.MouseButtonMiddle: 2,
	ebiten.MouseButtonRight:  3,
}

// Input samples the keyboard and mouse once per tick and translates them to
// the engine's key names.
type Input struct {
	keys []ebiten.Key
}

func NewInput() *Input {
	return &Input{}
}

// Sample satisfies session.InputSource.
func (i *Input) Sample() engine.Input {
	in := engine.Input{
		Held:     map[string]bool{},
		Pressed:  map[string]bool{},
		Released: map[string]bool{},
		Buttons:  map[int]bool{},
	}

	i.keys = inpututil.AppendPressedKeys(i.keys[:0])
	for _, k := range i.keys {
		in.Held[keysym(k)] = true
	}
	i.keys = inpututil.AppendJustPressedKeys(i.keys[:0])
	for _, k := range i.keys {
		in.Pressed[keysym(k)] = true
	}
	i.keys = inpututil.AppendJustReleasedKeys(i.keys[:0])
	for _, k := range i.keys {
		in.Released[keysym(k)] = true
	}

	mx, my := ebiten.CursorPosition()
	in.MouseX, in.MouseY = float64(mx), float64(my)
	for b, n := range mouseButtons {
		if ebiten.IsMouseButtonPressed(b) {
			in.Buttons[n] = true
		}
	}
	return in
}

func keysym(k ebiten.Key) string {
	if s, ok := keysyms[k]; ok {
		return s
	}
	name := k.String()
	switch {
	case len(name) == 1:
		return strings.ToLower(name)
	case strings.HasPrefix(name, "Digit") && len(name) == 6:
		return name[5:]
	}
	return name
}
