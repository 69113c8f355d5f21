package cloudmorph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// Shape selects which procedural generator fills the target buffer.
type Shape string

const (
	ShapeSphere  Shape = "sphere"
	ShapeFlower  Shape = "flower"
	ShapeHeart   Shape = "heart"
	ShapeTree    Shape = "tree"
	ShapeSnowman Shape = "snowman"
	ShapeGalaxy  Shape = "galaxy"
)

var allShapes = []Shape{ShapeSphere, ShapeFlower, ShapeHeart, ShapeTree, ShapeSnowman, ShapeGalaxy}

// ParseShape maps a free-form string onto the closed shape set. Unknown
// strings fall back to the sphere; the generator itself has a separate
// cube fallback for values that bypass parsing.
func ParseShape(s string) (Shape, bool) {
	for _, shape := range allShapes {
		if string(shape) == s {
			return shape, true
		}
	}
	return ShapeSphere, false
}

// ParticleConfig is the session-wide knob set. The UI and the concept
// mapper mutate it; CloudModule reacts to the changes each frame.
type ParticleConfig struct {
	Size          float32   `json:"size"`
	Speed         float32   `json:"speed"`
	NoiseStrength float32   `json:"noise_strength"`
	ColorPalette  [5]string `json:"color_palette"` // hex, ordered bottom to top
	Shape         Shape     `json:"shape"`
}

func DefaultConfig() ParticleConfig {
	return ParticleConfig{
		Size:          0.15,
		Speed:         1.0,
		NoiseStrength: 1.0,
		ColorPalette:  [5]string{"#0b1a3a", "#1e4d8c", "#3a8fd9", "#7fc7f0", "#e8f7ff"},
		Shape:         ShapeSphere,
	}
}

// Validate checks the invariants the rest of the pipeline relies on:
// non-negative scalars, a known shape, five parseable palette entries.
func (c *ParticleConfig) Validate() error {
	if c.Speed < 0 {
		return fmt.Errorf("speed must be non-negative, got %v", c.Speed)
	}
	if c.NoiseStrength < 0 {
		return fmt.Errorf("noise strength must be non-negative, got %v", c.NoiseStrength)
	}
	if _, ok := ParseShape(string(c.Shape)); !ok {
		return fmt.Errorf("unknown shape %q", c.Shape)
	}
	for i, hex := range c.ColorPalette {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("palette entry %d (%q): %w", i, hex, err)
		}
	}
	return nil
}

// Palette parses the five hex stops. Entries that fail to parse come back
// black rather than aborting; Validate is the place to surface bad input.
func (c *ParticleConfig) Palette() [5]colorful.Color {
	var out [5]colorful.Color
	for i, hex := range c.ColorPalette {
		col, err := colorful.Hex(hex)
		if err != nil {
			col = colorful.Color{}
		}
		out[i] = col
	}
	return out
}

// SaveConfig and LoadConfig round-trip a config as a JSON preset file.

func SaveConfig(cfg *ParticleConfig, filename string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}

func LoadConfig(filename string) (ParticleConfig, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
