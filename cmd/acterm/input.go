package main

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/acengine/engine"
)

// Terminals only report key presses, so a key counts as held for holdFor
// after its most recent press or auto-repeat.
type termInput struct {
	mu      sync.Mutex
	holdFor time.Duration
	now     func() time.Time
	seen    map[string]time.Time
	held    map[string]bool
	clicked bool
	mouseX  float64
	mouseY  float64
}

func newTermInput(holdFor time.Duration) *termInput {
	return &termInput{
		holdFor: holdFor,
		now:     time.Now,
		seen:    map[string]time.Time{},
		held:    map[string]bool{},
	}
}

func (t *termInput) press(key string) {
	if key == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[key] = t.now()
}

func (t *termInput) click(x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clicked = true
	t.mouseX, t.mouseY = x, y
}

// Sample satisfies session.InputSource.
func (t *termInput) Sample() engine.Input {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	in := engine.Input{
		Held:     map[string]bool{},
		Pressed:  map[string]bool{},
		Released: map[string]bool{},
		MouseX:   t.mouseX,
		MouseY:   t.mouseY,
	}
	for key, at := range t.seen {
		if now.Sub(at) > t.holdFor {
			delete(t.seen, key)
			continue
		}
		in.Held[key] = true
		if !t.held[key] {
			in.Pressed[key] = true
		}
	}
	for key := range t.held {
		if !in.Held[key] {
			in.Released[key] = true
		}
	}
	t.held = in.Held
	if t.clicked {
		in.Buttons = map[int]bool{engine.MouseButtonPrimary: true}
		t.clicked = false
	}
	return in
}

var tcellKeysyms = map[tcell.Key]string{
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyEnter:      "Return",
	tcell.KeyEscape:     "Escape",
	tcell.KeyTab:        "Tab",
	tcell.KeyBackspace:  "BackSpace",
	tcell.KeyBackspace2: "BackSpace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "Prior",
	tcell.KeyPgDn:       "Next",
}

func keysym(ev *tcell.EventKey) string {
	if ev.Key() != tcell.KeyRune {
		return tcellKeysyms[ev.Key()]
	}
	switch r := ev.Rune(); r {
	case ' ':
		return "space"
	case ',':
		return "comma"
	case '.':
		return "period"
	case '-':
		return "minus"
	case '=':
		return "equal"
	case '/':
		return "slash"
	default:
		return string(r)
	}
}
