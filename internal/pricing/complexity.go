package pricing

import "strings"

// Thresholds and factors for the complexity multiplier.
const (
	volumeThresholdCm3 = 4000.0
	weightThresholdKg  = 1.0

	volumeFactor    = 1.2
	weightFactor    = 1.1
	highFireFactor  = 1.3
	lusterFactor    = 1.2
	techniqueFactor = 1.1

	// MaxComplexity caps the multiplier regardless of how many factors apply.
	MaxComplexity = 2.0
)

// ItemAttributes are the physical/technical attributes of a directory item
// consumed by the complexity model. Zero values simply skip their factor.
type ItemAttributes struct {
	WidthCm    float64
	HeightCm   float64
	LengthCm   float64
	DiameterCm float64
	WeightKg   float64
	FiringType string
	Clay       string
	Glaze      string
	Texture    string
	Engobe     string
	Luster     string
}

// Volume derives the item volume in cm³ from box dimensions, or from
// diameter and height for thrown pieces. Returns 0 when underspecified.
func (a ItemAttributes) Volume() float64 {
	if a.WidthCm > 0 && a.HeightCm > 0 && a.LengthCm > 0 {
		return a.WidthCm * a.HeightCm * a.LengthCm
	}
	if a.DiameterCm > 0 && a.HeightCm > 0 {
		r := a.DiameterCm / 2
		return 3.141592653589793 * r * r * a.HeightCm
	}
	return 0
}

// Complexity derives a dimensionless multiplier in [1.0, 2.0] from the item
// attributes. Independent factors compound; the result is capped. It is a
// total function: missing attributes never fail, they skip their factor.
func Complexity(a ItemAttributes) float64 {
	m := 1.0

	if a.Volume() > volumeThresholdCm3 {
		m *= volumeFactor
	}
	if a.WeightKg > weightThresholdKg {
		m *= weightFactor
	}

	firing := strings.ToLower(a.FiringType)
	if strings.Contains(firing, "high") {
		m *= highFireFactor
	}
	if strings.Contains(firing, "luster") {
		m *= lusterFactor
	}

	techniques := 0
	for _, field := range []string{a.Clay, a.Glaze, a.Texture, a.Engobe, a.Luster} {
		if strings.TrimSpace(field) != "" {
			techniques++
		}
	}
	if techniques > 2 {
		m *= techniqueFactor
	}

	if m > MaxComplexity {
		m = MaxComplexity
	}
	return m
}
