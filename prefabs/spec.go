package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/brawler/component"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownHazard   = errors.New("prefabs: unknown hazard")
	ErrUnknownModifier = errors.New("prefabs: unknown modifier")
)

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

type VectorSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type SizeSpec struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// SpriteSpec points at a sprite sheet for a hazard kind. When Sheet is empty
// or cannot be loaded, placeholder frames of Color are generated instead.
type SpriteSpec struct {
	Sheet  string    `yaml:"sheet"`
	FrameW int       `yaml:"frame_w"`
	FrameH int       `yaml:"frame_h"`
	Frames int       `yaml:"frames"`
	Color  YAMLColor `yaml:"color"`
}

// HazardSpec describes one named hazard. Kind selects the animation frames;
// several specs may share a kind.
type HazardSpec struct {
	Name         string     `yaml:"name"`
	Kind         int        `yaml:"kind"`
	Position     VectorSpec `yaml:"position"`
	Velocity     VectorSpec `yaml:"velocity"`
	Duration     int        `yaml:"duration"`
	HitCountdown int        `yaml:"hit_countdown"`
	Hitbox       SizeSpec   `yaml:"hitbox"`
	Impact       VectorSpec `yaml:"impact"`
	Damage       int        `yaml:"damage"`
	Scale        float64    `yaml:"scale"`
	Sprite       SpriteSpec `yaml:"sprite"`
}

type HazardCatalog struct {
	Hazards []HazardSpec `yaml:"hazards"`
}

// LoadHazardCatalog loads and validates a hazard catalog file.
func LoadHazardCatalog(filename string) (*HazardCatalog, error) {
	cat, err := LoadSpec[HazardCatalog](filename)
	if err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &cat, nil
}

func (c *HazardCatalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Hazards))
	for i, h := range c.Hazards {
		if h.Name == "" {
			return fmt.Errorf("hazard %d has no name", i)
		}
		if _, dup := seen[h.Name]; dup {
			return fmt.Errorf("duplicate hazard %q", h.Name)
		}
		seen[h.Name] = struct{}{}
		if h.Kind < 0 {
			return fmt.Errorf("hazard %q: negative kind %d", h.Name, h.Kind)
		}
		if h.Duration <= 0 {
			return fmt.Errorf("hazard %q: duration must be positive", h.Name)
		}
	}
	return nil
}

// Lookup returns the spec named name.
func (c *HazardCatalog) Lookup(name string) (HazardSpec, error) {
	if c != nil {
		for _, h := range c.Hazards {
			if h.Name == name {
				return h, nil
			}
		}
	}
	return HazardSpec{}, fmt.Errorf("%w: %q", ErrUnknownHazard, name)
}

// Kinds returns the size of the frame table needed to cover every kind.
func (c *HazardCatalog) Kinds() int {
	n := 0
	if c == nil {
		return n
	}
	for _, h := range c.Hazards {
		if h.Kind+1 > n {
			n = h.Kind + 1
		}
	}
	return n
}

// ModifierSpec is a named modifier preset. Which parameters are read
// depends on Kind.
type ModifierSpec struct {
	Name       string  `yaml:"name"`
	Kind       string  `yaml:"kind"`
	Duration   int     `yaml:"duration"`
	Multiplier float64 `yaml:"multiplier"`
	Gravity    int     `yaml:"gravity"`
	Strength   float64 `yaml:"strength"`
	Anchor     int     `yaml:"anchor"`
	Push       int     `yaml:"push"`
}

type ModifierCatalog struct {
	Modifiers []ModifierSpec `yaml:"modifiers"`
}

func LoadModifierCatalog(filename string) (*ModifierCatalog, error) {
	cat, err := LoadSpec[ModifierCatalog](filename)
	if err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &cat, nil
}

func (c *ModifierCatalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Modifiers))
	for i, m := range c.Modifiers {
		if m.Name == "" {
			return fmt.Errorf("modifier %d has no name", i)
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("duplicate modifier %q", m.Name)
		}
		seen[m.Name] = struct{}{}
		kind, err := component.ParseModifierKind(m.Kind)
		if err != nil {
			return fmt.Errorf("modifier %q: %w", m.Name, err)
		}
		if m.Duration <= 0 {
			return fmt.Errorf("modifier %q: duration must be positive", m.Name)
		}
		switch kind {
		case component.ModifierPositionRestrain:
			if m.Strength <= 0 || m.Strength >= 1 {
				return fmt.Errorf("modifier %q: strength %g outside (0, 1)", m.Name, m.Strength)
			}
		case component.ModifierDamageBoost:
			if m.Multiplier < 0 {
				return fmt.Errorf("modifier %q: negative multiplier %g", m.Name, m.Multiplier)
			}
		}
	}
	return nil
}

func (c *ModifierCatalog) Lookup(name string) (ModifierSpec, error) {
	if c != nil {
		for _, m := range c.Modifiers {
			if m.Name == name {
				return m, nil
			}
		}
	}
	return ModifierSpec{}, fmt.Errorf("%w: %q", ErrUnknownModifier, name)
}

type CharacterSpec struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Health int    `yaml:"health"`
}

type StageSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Floor  int `yaml:"floor"`
}

// MatchSpec is the top-level description of a round: stage, both players,
// the catalogs to load and the round script.
type MatchSpec struct {
	Name      string          `yaml:"name"`
	Stage     StageSpec       `yaml:"stage"`
	Players   []CharacterSpec `yaml:"players"`
	Hazards   string          `yaml:"hazards"`
	Modifiers string          `yaml:"modifiers"`
	Script    string          `yaml:"script"`
}

// Match bundles a match spec with the catalogs it references.
type Match struct {
	Spec      MatchSpec
	Hazards   *HazardCatalog
	Modifiers *ModifierCatalog
}

// LoadMatch loads a match file and the catalogs it names.
func LoadMatch(filename string) (*Match, error) {
	spec, err := LoadSpec[MatchSpec](filename)
	if err != nil {
		return nil, err
	}
	if len(spec.Players) != 2 {
		return nil, fmt.Errorf("prefabs: %s: need exactly 2 players, got %d", filename, len(spec.Players))
	}
	if spec.Hazards == "" {
		spec.Hazards = "hazards.yaml"
	}
	if spec.Modifiers == "" {
		spec.Modifiers = "modifiers.yaml"
	}
	hazards, err := LoadHazardCatalog(spec.Hazards)
	if err != nil {
		return nil, err
	}
	modifiers, err := LoadModifierCatalog(spec.Modifiers)
	if err != nil {
		return nil, err
	}
	return &Match{Spec: spec, Hazards: hazards, Modifiers: modifiers}, nil
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
