package solidity_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/spriteoutline/internal/solidity"
)

func TestIsSolid(t *testing.T) {
	cases := []struct {
		name string
		c    color.Color
		cond solidity.Condition
		want bool
	}{
		{"AlphaAbove", color.NRGBA{A: 200}, solidity.DefaultCondition(), true},
		{"AlphaBelow", color.NRGBA{R: 255, A: 100}, solidity.DefaultCondition(), false},
		{"AlphaEqualIsNotGreater", color.NRGBA64{A: 0x8000}, solidity.Condition{Channel: solidity.Alpha, Threshold: float64(0x8000) / 0xffff}, false},
		{"RedGreater", color.NRGBA{R: 255, A: 255}, solidity.Condition{Channel: solidity.Red, Threshold: 0.9}, true},
		{"GreenLess", color.NRGBA{G: 10, A: 255}, solidity.Condition{Channel: solidity.Green, Comparator: solidity.LessThan, Threshold: 0.1}, true},
		{"BlueLess", color.NRGBA{B: 200, A: 255}, solidity.Condition{Channel: solidity.Blue, Comparator: solidity.LessThan, Threshold: 0.5}, false},
		{"BrightnessAverages", color.NRGBA{R: 255, G: 255, B: 0, A: 255}, solidity.Condition{Channel: solidity.Brightness, Threshold: 0.6}, true},
		{"BrightnessDark", color.NRGBA{R: 255, A: 255}, solidity.Condition{Channel: solidity.Brightness, Threshold: 0.5}, false},
		{"TransparentKeepsColour", color.NRGBA{R: 255, G: 255, B: 255}, solidity.Condition{Channel: solidity.Brightness, Threshold: 0.5}, true},
		{"ThresholdClampedHigh", color.NRGBA{A: 255}, solidity.Condition{Channel: solidity.Alpha, Threshold: 7}, false},
		{"ThresholdClampedLow", color.NRGBA{A: 1}, solidity.Condition{Channel: solidity.Alpha, Threshold: -3}, true},
		{"GrayImageColour", color.Gray{Y: 255}, solidity.Condition{Channel: solidity.Brightness, Threshold: 0.99}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, solidity.IsSolid(tc.c, tc.cond))
		})
	}
}

func TestParseNames(t *testing.T) {
	ch, err := solidity.ParseChannel(" Brightness ")
	require.NoError(t, err)
	assert.Equal(t, solidity.Brightness, ch)

	_, err = solidity.ParseChannel("luma")
	require.ErrorIs(t, err, solidity.ErrUnknownChannel)

	cmp, err := solidity.ParseComparator("<")
	require.NoError(t, err)
	assert.Equal(t, solidity.LessThan, cmp)

	_, err = solidity.ParseComparator("equal")
	require.ErrorIs(t, err, solidity.ErrUnknownComparator)
}

func TestConditionYAML(t *testing.T) {
	var cond solidity.Condition
	err := yaml.Unmarshal([]byte("channel: red\ncomparator: less\nthreshold: 0.25\n"), &cond)
	require.NoError(t, err)
	assert.Equal(t, solidity.Condition{Channel: solidity.Red, Comparator: solidity.LessThan, Threshold: 0.25}, cond)

	out, err := yaml.Marshal(solidity.DefaultCondition())
	require.NoError(t, err)
	assert.Contains(t, string(out), "channel: alpha")
	assert.Contains(t, string(out), "comparator: greater")

	err = yaml.Unmarshal([]byte("channel: hue\n"), &cond)
	require.ErrorIs(t, err, solidity.ErrUnknownChannel)
}

func TestMaskFromRows(t *testing.T) {
	m, err := solidity.MaskFromRows(
		"#..",
		"..#",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Width())
	assert.Equal(t, 2, m.Height())
	// First row is the top of the raster.
	assert.True(t, m.Solid(0, 1))
	assert.True(t, m.Solid(2, 0))
	assert.False(t, m.Solid(0, 0))
	assert.False(t, m.Solid(-1, 0))
	assert.False(t, m.Solid(3, 1))
	assert.Equal(t, 2, m.Count())
	assert.Equal(t, "#..\n..#", m.String())

	_, err = solidity.MaskFromRows("##", "#")
	require.ErrorIs(t, err, solidity.ErrMaskRows)
}

func TestClassifyFlipsRows(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	// Top row of the image, left pixel.
	img.SetNRGBA(0, 0, color.NRGBA{A: 255})
	m := solidity.Classify(img, img.Bounds(), solidity.DefaultCondition())
	assert.True(t, m.Solid(0, 1))
	assert.Equal(t, 1, m.Count())
}

func TestClassifySubRect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 2; y < 5; y++ {
		for x := 3; x < 6; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	rect := image.Rect(2, 1, 7, 6)
	m := solidity.Classify(img, rect, solidity.DefaultCondition())
	require.Equal(t, 5, m.Width())
	require.Equal(t, 5, m.Height())
	want, err := solidity.MaskFromRows(
		".....",
		".###.",
		".###.",
		".###.",
		".....",
	)
	require.NoError(t, err)
	assert.True(t, want.Equal(m), "got\n%s", m)
}

func TestClassifyFastPathMatchesGeneric(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for i := range nrgba.Pix {
		nrgba.Pix[i] = uint8(i * 37)
	}
	cond := solidity.Condition{Channel: solidity.Brightness, Threshold: 0.4}

	fast := solidity.Classify(nrgba, nrgba.Bounds(), cond)
	generic := solidity.Classify(struct{ solidity.Pixels }{nrgba}, nrgba.Bounds(), cond)
	assert.True(t, fast.Equal(generic))
}
