// Package solidity decides which pixels of a raster count as "solid" and
// stores the answer as a boolean Mask.
package solidity

import (
	"fmt"
	"image/color"
	"strings"
)

// Channel selects the colour component a Condition looks at.
type Channel int

const (
	Alpha Channel = iota
	Brightness
	Red
	Green
	Blue
)

var channelNames = map[Channel]string{
	Alpha:      "alpha",
	Brightness: "brightness",
	Red:        "red",
	Green:      "green",
	Blue:       "blue",
}

func (c Channel) String() string {
	if s, ok := channelNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ParseChannel parses a channel name as produced by String.
func ParseChannel(s string) (Channel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range channelNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

func (c Channel) MarshalText() ([]byte, error) {
	if _, ok := channelNames[c]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChannel, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Channel) UnmarshalText(b []byte) error {
	v, err := ParseChannel(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Comparator selects how a channel value is compared with the threshold.
type Comparator int

const (
	GreaterThan Comparator = iota
	LessThan
)

func (c Comparator) String() string {
	switch c {
	case GreaterThan:
		return "greater"
	case LessThan:
		return "less"
	default:
		return fmt.Sprintf("Comparator(%d)", int(c))
	}
}

// ParseComparator accepts "greater"/"less" and the symbols ">" and "<".
func ParseComparator(s string) (Comparator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "greater", ">", "gt":
		return GreaterThan, nil
	case "less", "<", "lt":
		return LessThan, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownComparator, s)
}

func (c Comparator) MarshalText() ([]byte, error) {
	if c != GreaterThan && c != LessThan {
		return nil, fmt.Errorf("%w: %d", ErrUnknownComparator, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Comparator) UnmarshalText(b []byte) error {
	v, err := ParseComparator(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Condition is the rule turning one pixel colour into solid / non-solid.
type Condition struct {
	Channel    Channel    `yaml:"channel"`
	Comparator Comparator `yaml:"comparator"`
	Threshold  float64    `yaml:"threshold"`
}

// DefaultCondition treats every pixel with alpha above one half as solid.
func DefaultCondition() Condition {
	return Condition{Channel: Alpha, Comparator: GreaterThan, Threshold: 0.5}
}

// Clamped returns c with Threshold limited to [0,1].
func (c Condition) Clamped() Condition {
	switch {
	case c.Threshold < 0:
		c.Threshold = 0
	case c.Threshold > 1:
		c.Threshold = 1
	}
	return c
}

func (c Condition) String() string {
	op := ">"
	if c.Comparator == LessThan {
		op = "<"
	}
	return fmt.Sprintf("%s %s %.3f", c.Channel, op, c.Clamped().Threshold)
}

// Value returns the normalized [0,1] value of the selected channel of a
// non-premultiplied colour.
func (ch Channel) Value(c color.NRGBA64) float64 {
	const full = 0xffff
	switch ch {
	case Red:
		return float64(c.R) / full
	case Green:
		return float64(c.G) / full
	case Blue:
		return float64(c.B) / full
	case Brightness:
		return (float64(c.R) + float64(c.G) + float64(c.B)) / (3 * full)
	default:
		return float64(c.A) / full
	}
}

// IsSolid reports whether c satisfies cond. The threshold is clamped first.
func IsSolid(c color.Color, cond Condition) bool {
	return cond.Clamped().match(cond.Channel.Value(toNRGBA64(c)))
}

// toNRGBA64 keeps the colour channels of 8-bit NRGBA pixels intact even when
// alpha is zero; the generic model conversion would zero them.
func toNRGBA64(c color.Color) color.NRGBA64 {
	if n, ok := c.(color.NRGBA); ok {
		return nrgbaTo64(n.R, n.G, n.B, n.A)
	}
	return color.NRGBA64Model.Convert(c).(color.NRGBA64)
}

func nrgbaTo64(r, g, b, a uint8) color.NRGBA64 {
	return color.NRGBA64{
		R: uint16(r) * 0x101,
		G: uint16(g) * 0x101,
		B: uint16(b) * 0x101,
		A: uint16(a) * 0x101,
	}
}

func (c Condition) match(v float64) bool {
	if c.Comparator == LessThan {
		return v < c.Threshold
	}
	return v > c.Threshold
}
