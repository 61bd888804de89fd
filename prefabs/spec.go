package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// LoadSpec decodes the YAML prefab file into a T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ObjectSpec is the default template for one object type. Fields left out of
// the YAML keep their zero value.
type ObjectSpec struct {
	W                float64   `yaml:"w"`
	H                float64   `yaml:"h"`
	Color            YAMLColor `yaml:"color"`
	Outline          YAMLColor `yaml:"outline"`
	Movement         string    `yaml:"movement"`
	Speed            float64   `yaml:"speed"`
	Shape            string    `yaml:"shape"`
	Solid            bool      `yaml:"solid"`
	Hidden           bool      `yaml:"hidden"`
	ScoreValue       int       `yaml:"score_value"`
	DestroyOnCollect bool      `yaml:"destroy_on_collect"`
	LivesCount       int       `yaml:"lives_count"`
	TextContent      string    `yaml:"text_content"`
}

type ObjectLibrarySpec struct {
	Fallback ObjectSpec            `yaml:"fallback"`
	Objects  map[string]ObjectSpec `yaml:"objects"`
}

// Template returns the spec for typ, or the fallback when the type has no
// entry of its own.
func (s ObjectLibrarySpec) Template(typ string) ObjectSpec {
	if spec, ok := s.Objects[typ]; ok {
		return spec
	}
	return s.Fallback
}

func LoadObjectLibrarySpec() (*ObjectLibrarySpec, error) {
	spec, err := LoadSpec[ObjectLibrarySpec]("objects.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PhysicsSpec struct {
	Gravity         float64 `yaml:"gravity"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	JumpImpulse     float64 `yaml:"jump_impulse"`
	Friction        float64 `yaml:"friction"`
	StopThreshold   float64 `yaml:"stop_threshold"`
	FallMargin      float64 `yaml:"fall_margin"`
	PlayfieldMargin float64 `yaml:"playfield_margin"`
}

type ContactSpec struct {
	StompTolerance float64 `yaml:"stomp_tolerance"`
	StompBounce    float64 `yaml:"stomp_bounce"`
	StompBonus     int     `yaml:"stomp_bonus"`
	RespawnX       float64 `yaml:"respawn_x"`
	RespawnY       float64 `yaml:"respawn_y"`
}

type KeySpec struct {
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
	Up    []string `yaml:"up"`
	Down  []string `yaml:"down"`
	Jump  []string `yaml:"jump"`
}

type LogSpec struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsSpec struct {
	Addr string `yaml:"addr"`
}

// RuntimeSpec tunes the simulation. FPS of zero defers to the project.
type RuntimeSpec struct {
	FPS     int         `yaml:"fps"`
	Seed    int64       `yaml:"seed"`
	Physics PhysicsSpec `yaml:"physics"`
	Contact ContactSpec `yaml:"contact"`
	Keys    KeySpec     `yaml:"keys"`
	Log     LogSpec     `yaml:"log"`
	Metrics MetricsSpec `yaml:"metrics"`
}

func LoadRuntimeSpec() (*RuntimeSpec, error) {
	spec, err := LoadSpec[RuntimeSpec]("runtime.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// Hex formats the colour as #rrggbb, or returns "" when unset.
func (c YAMLColor) Hex() string {
	if c.Color == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor accepts #rrggbb, #rrggbbaa or an SVG colour name such as
// "white" or "skyblue".
func ParseColor(v string) (color.NRGBA, error) {
	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(v))]; ok {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, nil
	}

	s := strings.TrimPrefix(strings.TrimSpace(v), "#")

	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
