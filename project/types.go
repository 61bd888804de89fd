// Package project holds the authored scene model: a project made of frames,
// each with layers, objects and event groups. Nothing in here carries
// simulation state; the engine clones what it needs at frame load.
package project

type BuildSettings struct {
	Icon       string `json:"icon" yaml:"icon"`
	Splash     string `json:"splash" yaml:"splash"`
	Fullscreen bool   `json:"fullscreen" yaml:"fullscreen"`
	Resizable  bool   `json:"resizable" yaml:"resizable"`
}

// Project is the root document saved by the editor.
type Project struct {
	Name          string        `json:"name" yaml:"name"`
	Author        string        `json:"author" yaml:"author"`
	Version       string        `json:"version" yaml:"version"`
	WindowWidth   int           `json:"window_width" yaml:"window_width"`
	WindowHeight  int           `json:"window_height" yaml:"window_height"`
	FPS           int           `json:"fps" yaml:"fps"`
	GlobalValues  []float64     `json:"global_values" yaml:"global_values"`
	GlobalStrings []string      `json:"global_strings" yaml:"global_strings"`
	Score         int           `json:"score" yaml:"score"`
	Lives         int           `json:"lives" yaml:"lives"`
	Frames        []Frame       `json:"frames" yaml:"frames"`
	ObjectLibrary []Object      `json:"object_library" yaml:"object_library"`
	Sounds        []string      `json:"sounds" yaml:"sounds"`
	Fonts         []string      `json:"fonts" yaml:"fonts"`
	BuildType     string        `json:"build_type" yaml:"build_type"`
	BuildSettings BuildSettings `json:"build_settings" yaml:"build_settings"`
}

// Frame is one scene (level or screen) of a project.
type Frame struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Index         int          `json:"index" yaml:"index"`
	Width         float64      `json:"width" yaml:"width"`
	Height        float64      `json:"height" yaml:"height"`
	BgColor       string       `json:"bg_color" yaml:"bg_color"`
	Layers        []Layer      `json:"layers" yaml:"layers"`
	Objects       []Object     `json:"objects" yaml:"objects"`
	Events        []EventGroup `json:"events" yaml:"events"`
	TransitionIn  string       `json:"transition_in" yaml:"transition_in"`
	TransitionOut string       `json:"transition_out" yaml:"transition_out"`
	Music         string       `json:"music" yaml:"music"`
}

// Layer groups objects for drawing. A hidden layer keeps simulating its
// objects; they are only left out of the render snapshot.
type Layer struct {
	Name    string `json:"name" yaml:"name"`
	Visible bool   `json:"visible" yaml:"visible"`
	Locked  bool   `json:"locked" yaml:"locked"`
	Opacity int    `json:"opacity" yaml:"opacity"`
}

// Object is an authored game object.
type Object struct {
	ID               string           `json:"id" yaml:"id"`
	Type             ObjectType       `json:"type" yaml:"type"`
	Name             string           `json:"name" yaml:"name"`
	X                float64          `json:"x" yaml:"x"`
	Y                float64          `json:"y" yaml:"y"`
	W                float64          `json:"w" yaml:"w"`
	H                float64          `json:"h" yaml:"h"`
	Layer            int              `json:"layer" yaml:"layer"`
	Visible          bool             `json:"visible" yaml:"visible"`
	Color            string           `json:"color" yaml:"color"`
	Outline          string           `json:"outline" yaml:"outline"`
	Speed            float64          `json:"speed" yaml:"speed"`
	Direction        float64          `json:"direction" yaml:"direction"`
	Animations       map[string][]int `json:"animations" yaml:"animations"`
	CurrentAnim      string           `json:"current_anim" yaml:"current_anim"`
	AnimFrame        int              `json:"anim_frame" yaml:"anim_frame"`
	AnimSpeed        int              `json:"anim_speed" yaml:"anim_speed"`
	Movement         Movement         `json:"movement" yaml:"movement"`
	Values           []float64        `json:"values" yaml:"values"`
	Strings          []string         `json:"strings" yaml:"strings"`
	CounterValue     float64          `json:"counter_value" yaml:"counter_value"`
	TextContent      string           `json:"text_content" yaml:"text_content"`
	TextFont         string           `json:"text_font" yaml:"text_font"`
	TextSize         int              `json:"text_size" yaml:"text_size"`
	LivesCount       int              `json:"lives_count" yaml:"lives_count"`
	TimerMS          int              `json:"timer_ms" yaml:"timer_ms"`
	Opacity          int              `json:"opacity" yaml:"opacity"`
	Rotation         float64          `json:"rotation" yaml:"rotation"`
	ScaleX           float64          `json:"scale_x" yaml:"scale_x"`
	ScaleY           float64          `json:"scale_y" yaml:"scale_y"`
	Solid            bool             `json:"solid" yaml:"solid"`
	ScoreValue       int              `json:"score_value" yaml:"score_value"`
	DestroyOnCollect bool             `json:"destroy_on_collect" yaml:"destroy_on_collect"`
	Shape            Shape            `json:"shape" yaml:"shape"`
	Flags            map[string]any   `json:"flags" yaml:"flags"`
}

// EventGroup is one condition list → action list row of the event editor.
// A comment with no conditions or actions is a display-only row.
type EventGroup struct {
	ID         string      `json:"id" yaml:"id"`
	Active     bool        `json:"active" yaml:"active"`
	Comment    string      `json:"comment" yaml:"comment"`
	Conditions []Condition `json:"conditions" yaml:"conditions"`
	Actions    []Action    `json:"actions" yaml:"actions"`
}

func (g EventGroup) IsComment() bool {
	return g.Comment != "" && len(g.Conditions) == 0 && len(g.Actions) == 0
}

type Condition struct {
	ID      string        `json:"id" yaml:"id"`
	Type    ConditionType `json:"type" yaml:"type"`
	Target  string        `json:"target" yaml:"target"`
	Params  Params        `json:"params" yaml:"params"`
	Negated bool          `json:"negated" yaml:"negated"`
}

type Action struct {
	ID     string     `json:"id" yaml:"id"`
	Type   ActionType `json:"type" yaml:"type"`
	Target string     `json:"target" yaml:"target"`
	Params Params     `json:"params" yaml:"params"`
}

// Frame returns the frame at idx.
func (p *Project) Frame(idx int) (*Frame, bool) {
	if p == nil || idx < 0 || idx >= len(p.Frames) {
		return nil, false
	}
	return &p.Frames[idx], true
}

// LayerVisible reports whether objects on layer idx should be drawn. Objects
// referencing a layer the frame does not declare are drawn.
func (f *Frame) LayerVisible(idx int) bool {
	if f == nil || idx < 0 || idx >= len(f.Layers) {
		return true
	}
	return f.Layers[idx].Visible
}
