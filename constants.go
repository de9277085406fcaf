package main

import (
	"math"
	"time"
)

type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

type Detail int

const (
	DetailAuto Detail = iota
	DetailFull
	DetailReduced
)

func (d Detail) String() string {
	switch d {
	case DetailFull:
		return "full"
	case DetailReduced:
		return "reduced"
	default:
		return "auto"
	}
}

// Entity counts per generation.
const (
	starCountReduced  = 150
	starCountFull     = 250
	nebulaMinReduced  = 3
	nebulaMinFull     = 5
	nebulaCountSpread = 3 // counts fall in [min, min+spread)
)

// Star seeding ranges.
const (
	starSpeedMin        = 0.02
	starSpeedSpread     = 0.1
	starOpacityMin      = 0.1
	starOpacityDark     = 0.9
	starOpacityLight    = 0.6
	pulseSpeedMin       = 0.01
	pulseSpeedSpread    = 0.02
	twinkleSpeedMin     = 0.03
	twinkleSpeedSpread  = 0.05
	trailMinSize        = 1.5
	trailLengthMin      = 10.0
	trailLengthSpread   = 20.0
	trailSpeedScale     = 4.0
	glowMinSize         = 1.8
	glowRadiusScale     = 3.0
	glowOpacityScale    = 0.8
	pulseAmplitude      = 0.1
	twinkleAmplitude    = 0.15
	constellationSize   = 1.2
	constellationRange  = 100.0
	constellationAlpha  = 0.15
	constellationStroke = 0.5
)

// Nebula seeding ranges. Light opacities stay strictly below dark ones:
// max light is 0.02, min dark is 0.035*0.6 = 0.021.
const (
	nebulaRadiusMin    = 100.0
	nebulaRadiusSpread = 200.0
	nebulaLayerMin     = 0.6
	nebulaLayerSpread  = 0.4
	nebulaOpacityDark  = 0.035
	nebulaSpreadDark   = 0.025
	nebulaOpacityLight = 0.008
	nebulaSpreadLight  = 0.012
	nebulaCenterAlpha  = 2.0
	nebulaDriftFreq    = 0.00005 // per millisecond
	nebulaDriftStep    = 0.1
	nebulaSatDark      = 0.7
	nebulaLightDark    = 0.5
	nebulaSatLight     = 0.3
	nebulaLightLight   = 0.85
)

const (
	parallaxFactor  = 0.00008
	parallaxScale   = 2.0
	pointerDebounce = 50 * time.Millisecond
	defaultFPS      = 30
	fullTurn        = 2 * math.Pi
)

// Device classification thresholds.
const (
	compactColumns     = 80  // terminal columns
	mobileBreakpointPx = 768 // surface pixels
)
