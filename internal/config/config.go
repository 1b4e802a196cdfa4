// Package config holds the run configuration and the YAML tracing profile.
package config

import (
	"errors"
	"fmt"
	"image"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/spriteoutline/internal/outline"
	"github.com/ivlev/spriteoutline/internal/solidity"
)

var (
	// ErrSpriteRect indicates a sprite rectangle with non-positive size.
	ErrSpriteRect = errors.New("config: sprite rect must have positive width and height")
	// ErrPixelsPerUnit indicates a non-positive pixels-per-unit factor.
	ErrPixelsPerUnit = errors.New("config: pixels_per_unit must be positive")
)

// Config is the resolved run configuration of one invocation.
type Config struct {
	InputPath    string
	QRPayloads   []string
	QRScale      int
	OutputPath   string
	PreviewDir   string
	DPI          int
	Workers      int
	ShowStats    bool
	Verbose      bool
	BuildVersion string
	Profile      Profile
}

// Profile describes how to trace: what is solid, how pixels map to units
// and which sub-rectangles (sprites) of every frame to trace.
type Profile struct {
	Condition     solidity.Condition `yaml:"condition"`
	PixelsPerUnit float32            `yaml:"pixels_per_unit"`
	Pivot         outline.Vec2       `yaml:"pivot"`
	Sprites       []Sprite           `yaml:"sprites,omitempty"`
}

// Sprite is a named rectangle of a frame in image coordinates (y-down,
// x/y is the top-left corner). A nil Pivot falls back to the profile pivot.
type Sprite struct {
	Name  string        `yaml:"name"`
	Rect  Rect          `yaml:"rect"`
	Pivot *outline.Vec2 `yaml:"pivot,omitempty"`
}

// Rect is the YAML form of an image.Rectangle.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// DefaultProfile traces alpha > 0.5 at 100 pixels per unit around the centre.
func DefaultProfile() Profile {
	return Profile{
		Condition:     solidity.DefaultCondition(),
		PixelsPerUnit: 100,
		Pivot:         outline.Vec2{X: 0.5, Y: 0.5},
	}
}

// PivotFor returns the pivot of sprite s, or the profile pivot.
func (p Profile) PivotFor(s Sprite) outline.Vec2 {
	if s.Pivot != nil {
		return *s.Pivot
	}
	return p.Pivot
}

// Validate checks values the YAML decoder cannot.
func (p Profile) Validate() error {
	if !(p.PixelsPerUnit > 0) {
		return fmt.Errorf("%w: %v", ErrPixelsPerUnit, p.PixelsPerUnit)
	}
	for _, s := range p.Sprites {
		if s.Rect.W <= 0 || s.Rect.H <= 0 {
			return fmt.Errorf("%w: sprite %q", ErrSpriteRect, s.Name)
		}
	}
	return nil
}

// LoadProfile reads a YAML profile. Fields missing from the file keep their
// DefaultProfile values.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}

	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// WriteProfile stores p as YAML.
func WriteProfile(p Profile, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
