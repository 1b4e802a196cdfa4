package analyzer

import (
	"fmt"
	"sort"

	"github.com/ivlev/spriteoutline/internal/solidity"
)

var presets = map[string]solidity.Condition{
	"alpha":  solidity.DefaultCondition(),
	"opaque": {Channel: solidity.Alpha, Comparator: solidity.GreaterThan, Threshold: 0.99},
	"dark":   {Channel: solidity.Brightness, Comparator: solidity.LessThan, Threshold: 0.5},
	"light":  {Channel: solidity.Brightness, Comparator: solidity.GreaterThan, Threshold: 0.5},
}

// NewCondition returns the named solidity preset. An empty name selects "alpha".
func NewCondition(variant string) (solidity.Condition, error) {
	if variant == "" {
		variant = "alpha"
	}
	c, ok := presets[variant]
	if !ok {
		return solidity.Condition{}, fmt.Errorf("unknown condition preset: %s", variant)
	}
	return c, nil
}

// Presets lists the preset names in alphabetical order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
