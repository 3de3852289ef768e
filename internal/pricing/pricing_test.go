package pricing

import "testing"

func floatPtr(v float64) *float64 { return &v }

func TestCalculateMaterialQuantities(t *testing.T) {
	item := ItemInput{
		Attributes: ItemAttributes{WeightKg: 1.2},
		Materials: []MaterialInput{
			{Type: "clay", Name: "stoneware", UnitCost: 5},
			{Type: "glaze", Name: "tenmoku", UnitCost: 8},
			{Type: "engobe", Name: "white", UnitCost: 4, Quantity: floatPtr(0.3)},
			{Type: "tool", Name: "sponge", UnitCost: 2},
		},
		Quantity: 10,
	}

	b := Calculate(item, nil, Config{ComplexityMultiplier: 1.5})

	// clay and tool default to 1 per piece, the coating glaze uses the item
	// weight, and the engobe carries an explicit quantity.
	wantCosts := []float64{
		5 * 1 * 10,
		8 * 1.2 * 10,
		4 * 0.3 * 10,
		2 * 1 * 10,
	}
	if len(b.MaterialLines) != len(wantCosts) {
		t.Fatalf("got %d material lines, want %d", len(b.MaterialLines), len(wantCosts))
	}
	total := 0.0
	for i, want := range wantCosts {
		if !nearlyEqual(b.MaterialLines[i].Cost, want) {
			t.Errorf("material %q: got cost %v, want %v", b.MaterialLines[i].Name, b.MaterialLines[i].Cost, want)
		}
		total += want
	}
	if !nearlyEqual(b.MaterialCost, total) {
		t.Fatalf("material cost: got %v, want %v", b.MaterialCost, total)
	}
}

func TestCalculateCoatingFallback(t *testing.T) {
	// Coating material with neither quantity nor item weight falls back to
	// 0.5 kg per piece.
	item := ItemInput{
		Materials: []MaterialInput{{Type: "glaze", Name: "ash", UnitCost: 10}},
		Quantity:  4,
	}
	b := Calculate(item, nil, Config{ComplexityMultiplier: 1.5})
	if want := 10 * 0.5 * 4.0; !nearlyEqual(b.MaterialCost, want) {
		t.Fatalf("coating fallback: got %v, want %v", b.MaterialCost, want)
	}
}

func TestCalculateLaborHours(t *testing.T) {
	// Light item: base hours clamp to the 0.5 minimum per piece.
	item := ItemInput{
		Attributes: ItemAttributes{WeightKg: 0.2},
		Quantity:   10,
	}
	stages := []StageInput{
		{Name: "Forming", CostPerHour: 20},
		{Name: "Glaze", CostPerHour: 15},
	}

	b := Calculate(item, stages, Config{ComplexityMultiplier: 1.5})

	wantHours := 0.5 * 1.5 * 10
	for _, line := range b.LaborLines {
		if !nearlyEqual(line.Hours, wantHours) {
			t.Errorf("stage %q: got %v hours, want %v", line.Stage, line.Hours, wantHours)
		}
	}
	if want := wantHours * (20 + 15); !nearlyEqual(b.LaborCost, want) {
		t.Fatalf("labor cost: got %v, want %v", b.LaborCost, want)
	}
}

func TestCalculateHeavyItemHours(t *testing.T) {
	// 8 kg → 0.8 base hours, over the minimum.
	item := ItemInput{
		Attributes: ItemAttributes{WeightKg: 8},
		Quantity:   1,
	}
	b := Calculate(item, []StageInput{{Name: "Forming", CostPerHour: 10}}, Config{ComplexityMultiplier: 2.0})
	if want := 0.8 * 2.0 * 10; !nearlyEqual(b.LaborCost, want) {
		t.Fatalf("heavy item labor: got %v, want %v", b.LaborCost, want)
	}
}

func TestCalculateDefaultsAndIdentity(t *testing.T) {
	item := ItemInput{
		Attributes: ItemAttributes{WeightKg: 1.2},
		Materials: []MaterialInput{
			{Type: "clay", Name: "stoneware", UnitCost: 5},
			{Type: "glaze", Name: "tenmoku", UnitCost: 8},
		},
		Quantity: 10,
	}
	stages := []StageInput{{Name: "Forming", CostPerHour: 20}}

	b := Calculate(item, stages, Config{ComplexityMultiplier: 1.716})

	materialCost := 5*1*10.0 + 8*1.2*10.0 // 146
	laborCost := 0.5 * 1.716 * 10 * 20    // 171.6
	overhead := (materialCost + laborCost) * DefaultOverheadRate
	profit := (materialCost + laborCost + overhead) * DefaultProfitMargin

	if !nearlyEqual(b.MaterialCost, materialCost) {
		t.Errorf("material cost: got %v, want %v", b.MaterialCost, materialCost)
	}
	if !nearlyEqual(b.LaborCost, laborCost) {
		t.Errorf("labor cost: got %v, want %v", b.LaborCost, laborCost)
	}
	if !nearlyEqual(b.Overhead, overhead) {
		t.Errorf("overhead: got %v, want %v", b.Overhead, overhead)
	}
	if !nearlyEqual(b.Profit, profit) {
		t.Errorf("profit: got %v, want %v", b.Profit, profit)
	}
	if !nearlyEqual(b.SellingPrice, b.MaterialCost+b.LaborCost+b.Overhead+b.Profit) {
		t.Fatalf("selling price %v is not the sum of its components", b.SellingPrice)
	}
}

func TestCalculateComputesMultiplierWhenUnset(t *testing.T) {
	// Volume + weight + high fire → 1.2 * 1.1 * 1.3 = 1.716.
	item := ItemInput{
		Attributes: ItemAttributes{
			WidthCm:    30,
			HeightCm:   5,
			LengthCm:   30,
			WeightKg:   1.2,
			FiringType: "high_fire",
		},
		Quantity: 1,
	}

	b := Calculate(item, nil, Config{})
	if want := 1.2 * 1.1 * 1.3; !nearlyEqual(b.ComplexityMultiplier, want) {
		t.Fatalf("computed multiplier: got %v, want %v", b.ComplexityMultiplier, want)
	}

	// Explicit 1.0 also means "compute".
	b = Calculate(item, nil, Config{ComplexityMultiplier: 1.0})
	if want := 1.2 * 1.1 * 1.3; !nearlyEqual(b.ComplexityMultiplier, want) {
		t.Fatalf("multiplier 1.0 should recompute: got %v, want %v", b.ComplexityMultiplier, want)
	}
}

func TestCalculateZeroQuantityPricesOnePiece(t *testing.T) {
	item := ItemInput{
		Materials: []MaterialInput{{Type: "clay", Name: "stoneware", UnitCost: 5}},
	}
	b := Calculate(item, nil, Config{ComplexityMultiplier: 1.5})
	if !nearlyEqual(b.MaterialCost, 5) {
		t.Fatalf("zero quantity: got %v, want 5", b.MaterialCost)
	}
}
