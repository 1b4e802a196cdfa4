package main

import (
	"github.com/ivlev/spriteoutline/internal/analyzer"
	"github.com/ivlev/spriteoutline/internal/config"
	"github.com/ivlev/spriteoutline/internal/solidity"
)

// overrides - значения профиля, которые можно задать флагами.
type overrides struct {
	Preset    string
	Channel   string
	Compare   string
	Threshold float64
	PPU       float64
	PivotX    float64
	PivotY    float64
}

// applyOverrides переносит в prof только флаги из set. Пресет сначала
// заменяет условие целиком, затем -channel, -compare и -threshold его уточняют.
func applyOverrides(prof *config.Profile, set map[string]bool, o overrides) error {
	if set["preset"] {
		cond, err := analyzer.NewCondition(o.Preset)
		if err != nil {
			return err
		}
		prof.Condition = cond
	}
	if set["channel"] {
		ch, err := solidity.ParseChannel(o.Channel)
		if err != nil {
			return err
		}
		prof.Condition.Channel = ch
	}
	if set["compare"] {
		cmp, err := solidity.ParseComparator(o.Compare)
		if err != nil {
			return err
		}
		prof.Condition.Comparator = cmp
	}
	if set["threshold"] {
		prof.Condition.Threshold = o.Threshold
	}
	if set["ppu"] {
		prof.PixelsPerUnit = float32(o.PPU)
	}
	if set["pivot-x"] {
		prof.Pivot.X = float32(o.PivotX)
	}
	if set["pivot-y"] {
		prof.Pivot.Y = float32(o.PivotY)
	}
	return prof.Validate()
}
