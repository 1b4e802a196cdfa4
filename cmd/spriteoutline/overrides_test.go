package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/spriteoutline/internal/config"
	"github.com/ivlev/spriteoutline/internal/export"
	"github.com/ivlev/spriteoutline/internal/outline"
	"github.com/ivlev/spriteoutline/internal/solidity"
)

func TestApplyOverrides_OnlySetFlags(t *testing.T) {
	prof := config.DefaultProfile()
	prof.PixelsPerUnit = 32
	o := overrides{Channel: "red", Compare: "less", Threshold: 0.9, PPU: 100, PivotX: 0.5, PivotY: 0}

	require.NoError(t, applyOverrides(&prof, map[string]bool{"channel": true, "pivot-y": true}, o))
	assert.Equal(t, solidity.Red, prof.Condition.Channel)
	assert.Equal(t, solidity.GreaterThan, prof.Condition.Comparator)
	assert.Equal(t, 0.5, prof.Condition.Threshold)
	assert.Equal(t, float32(32), prof.PixelsPerUnit)
	assert.Equal(t, outline.Vec2{X: 0.5, Y: 0}, prof.Pivot)
}

func TestApplyOverrides_PresetThenRefine(t *testing.T) {
	prof := config.DefaultProfile()
	set := map[string]bool{"preset": true, "threshold": true}
	require.NoError(t, applyOverrides(&prof, set, overrides{Preset: "dark", Threshold: 0.2}))
	assert.Equal(t, solidity.Condition{Channel: solidity.Brightness, Comparator: solidity.LessThan, Threshold: 0.2}, prof.Condition)
}

func TestApplyOverrides_Errors(t *testing.T) {
	prof := config.DefaultProfile()
	assert.Error(t, applyOverrides(&prof, map[string]bool{"preset": true}, overrides{Preset: "neon"}))
	assert.ErrorIs(t, applyOverrides(&prof, map[string]bool{"channel": true}, overrides{Channel: "hue"}), solidity.ErrUnknownChannel)
	assert.ErrorIs(t, applyOverrides(&prof, map[string]bool{"compare": true}, overrides{Compare: "=="}), solidity.ErrUnknownComparator)
	assert.ErrorIs(t, applyOverrides(&prof, map[string]bool{"ppu": true}, overrides{PPU: -1}), config.ErrPixelsPerUnit)
}

func TestTraceable(t *testing.T) {
	assert.True(t, traceable("sheet.PNG"))
	assert.True(t, traceable("book.pdf"))
	assert.False(t, traceable("notes.txt"))
}

func TestResolveDocument(t *testing.T) {
	dir := t.TempDir()
	_, err := resolveDocument("latest", dir)
	assert.Error(t, err)

	doc := &export.Document{Version: export.Version, Source: "qr", PixelsPerUnit: 100}
	path := filepath.Join(dir, "outline_qr_2026-01-01_00-00-00.yaml")
	require.NoError(t, export.WriteDocument(doc, path))

	got, err := resolveDocument("latest", dir)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	read, err := export.ReadDocument(got)
	require.NoError(t, err)
	assert.Equal(t, "qr", read.Source)

	got, err = resolveDocument("some/file.yaml", dir)
	require.NoError(t, err)
	assert.Equal(t, "some/file.yaml", got)
}
