package pricing

import (
	"math"
	"testing"
)

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComplexityBaseline(t *testing.T) {
	if got := Complexity(ItemAttributes{}); !nearlyEqual(got, 1.0) {
		t.Fatalf("empty attributes: got %v, want 1.0", got)
	}
}

func TestComplexityVolume(t *testing.T) {
	// 20 x 20 x 11 = 4400 cm³, over the 4000 threshold.
	a := ItemAttributes{WidthCm: 20, HeightCm: 20, LengthCm: 11}
	if got := Complexity(a); !nearlyEqual(got, 1.2) {
		t.Fatalf("large volume: got %v, want 1.2", got)
	}

	// Just under threshold.
	a = ItemAttributes{WidthCm: 10, HeightCm: 10, LengthCm: 10}
	if got := Complexity(a); !nearlyEqual(got, 1.0) {
		t.Fatalf("small volume: got %v, want 1.0", got)
	}
}

func TestComplexityVolumeFromDiameter(t *testing.T) {
	// π * 10² * 20 ≈ 6283 cm³.
	a := ItemAttributes{DiameterCm: 20, HeightCm: 20}
	if got := Complexity(a); !nearlyEqual(got, 1.2) {
		t.Fatalf("thrown piece volume: got %v, want 1.2", got)
	}
}

func TestComplexityWeight(t *testing.T) {
	a := ItemAttributes{WeightKg: 1.2}
	if got := Complexity(a); !nearlyEqual(got, 1.1) {
		t.Fatalf("heavy item: got %v, want 1.1", got)
	}

	a = ItemAttributes{WeightKg: 1.0}
	if got := Complexity(a); !nearlyEqual(got, 1.0) {
		t.Fatalf("threshold weight is not over threshold: got %v, want 1.0", got)
	}
}

func TestComplexityFiring(t *testing.T) {
	if got := Complexity(ItemAttributes{FiringType: "high_fire"}); !nearlyEqual(got, 1.3) {
		t.Fatalf("high fire: got %v, want 1.3", got)
	}
	if got := Complexity(ItemAttributes{FiringType: "luster firing"}); !nearlyEqual(got, 1.2) {
		t.Fatalf("luster firing: got %v, want 1.2", got)
	}
	if got := Complexity(ItemAttributes{FiringType: "High-Fire Luster"}); !nearlyEqual(got, 1.3*1.2) {
		t.Fatalf("combined firing: got %v, want %v", got, 1.3*1.2)
	}
}

func TestComplexityTechniques(t *testing.T) {
	// Two techniques: no factor.
	a := ItemAttributes{Clay: "stoneware", Glaze: "celadon"}
	if got := Complexity(a); !nearlyEqual(got, 1.0) {
		t.Fatalf("two techniques: got %v, want 1.0", got)
	}

	// Three techniques trigger the factor.
	a.Texture = "carved"
	if got := Complexity(a); !nearlyEqual(got, 1.1) {
		t.Fatalf("three techniques: got %v, want 1.1", got)
	}
}

func TestComplexityCompoundFactors(t *testing.T) {
	// Volume + weight + high fire, two techniques only.
	a := ItemAttributes{
		WidthCm:    30,
		HeightCm:   5,
		LengthCm:   30,
		WeightKg:   1.2,
		FiringType: "high_fire",
		Clay:       "stoneware",
		Glaze:      "tenmoku",
	}
	want := 1.2 * 1.1 * 1.3
	if got := Complexity(a); !nearlyEqual(got, want) {
		t.Fatalf("compound factors: got %v, want %v", got, want)
	}
}

func TestComplexityCap(t *testing.T) {
	// Every factor applies: 1.2 * 1.1 * 1.3 * 1.2 * 1.1 ≈ 2.27, capped.
	a := ItemAttributes{
		WidthCm:    30,
		HeightCm:   30,
		LengthCm:   30,
		WeightKg:   5,
		FiringType: "high fire with luster",
		Clay:       "porcelain",
		Glaze:      "crystalline",
		Texture:    "carved",
		Engobe:     "white",
		Luster:     "gold",
	}
	if got := Complexity(a); !nearlyEqual(got, MaxComplexity) {
		t.Fatalf("all factors: got %v, want cap %v", got, MaxComplexity)
	}
}

func TestVolumeUnderspecified(t *testing.T) {
	a := ItemAttributes{WidthCm: 10, HeightCm: 10} // no length, no diameter
	if got := a.Volume(); got != 0 {
		t.Fatalf("underspecified dimensions: got %v, want 0", got)
	}
}
