// Package pricing computes cost and selling price for directory items.
// It is pure calculation: inputs in, breakdown out, no side effects.
package pricing

// Defaults applied when a Config field is left at its zero value.
const (
	DefaultProfitMargin = 0.30
	DefaultOverheadRate = 0.15

	// Glaze/engobe consumption falls back to this many kg per piece when the
	// item has neither an explicit material quantity nor a weight.
	fallbackCoatingKg = 0.5

	minHoursPerPiece = 0.5
	hoursPerKg       = 0.1
)

// Config carries the global pricing parameters. A ComplexityMultiplier of 0
// or 1.0 means "compute it from the item attributes".
type Config struct {
	ProfitMargin         float64
	OverheadRate         float64
	ComplexityMultiplier float64
}

// Normalize fills zero fields with defaults and returns the result.
func (c Config) Normalize() Config {
	if c.ProfitMargin == 0 {
		c.ProfitMargin = DefaultProfitMargin
	}
	if c.OverheadRate == 0 {
		c.OverheadRate = DefaultOverheadRate
	}
	return c
}

// MaterialInput is one priced material linked to the item. Quantity is per
// piece; nil means coating materials default to the item weight.
type MaterialInput struct {
	Type     string // clay, glaze, engobe, tool, other
	Name     string
	UnitCost float64
	Quantity *float64
}

// StageInput is one active production stage with an hourly labor rate.
// Stages without a rate must be filtered out by the caller.
type StageInput struct {
	Name        string
	CostPerHour float64
}

// ItemInput bundles everything the calculation needs for one item.
type ItemInput struct {
	Attributes ItemAttributes
	Materials  []MaterialInput
	Quantity   int
}

// MaterialLine is one material cost line in the breakdown.
type MaterialLine struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Cost     float64 `json:"cost"`
}

// LaborLine is one stage labor cost line in the breakdown.
type LaborLine struct {
	Stage string  `json:"stage"`
	Hours float64 `json:"hours"`
	Cost  float64 `json:"cost"`
}

// Breakdown is the full pricing output. SellingPrice always equals
// MaterialCost + LaborCost + Overhead + Profit; callers must not recompute
// subtotals independently.
type Breakdown struct {
	MaterialLines        []MaterialLine `json:"material_lines"`
	LaborLines           []LaborLine    `json:"labor_lines"`
	MaterialCost         float64        `json:"material_cost"`
	LaborCost            float64        `json:"labor_cost"`
	Overhead             float64        `json:"overhead"`
	Profit               float64        `json:"profit"`
	SellingPrice         float64        `json:"selling_price"`
	ComplexityMultiplier float64        `json:"complexity_multiplier"`
}

// Calculate computes the material/labor/overhead/profit breakdown for one
// item at the given quantity.
func Calculate(item ItemInput, stages []StageInput, cfg Config) Breakdown {
	cfg = cfg.Normalize()
	qty := float64(item.Quantity)
	if qty <= 0 {
		qty = 1
	}

	multiplier := cfg.ComplexityMultiplier
	if multiplier == 0 || multiplier == 1.0 {
		multiplier = Complexity(item.Attributes)
	}

	materialLines := make([]MaterialLine, 0, len(item.Materials))
	materialCost := 0.0
	for _, m := range item.Materials {
		perPiece := 0.0
		switch {
		case m.Quantity != nil:
			perPiece = *m.Quantity
		case m.Type == "glaze" || m.Type == "engobe":
			perPiece = item.Attributes.WeightKg
			if perPiece == 0 {
				perPiece = fallbackCoatingKg
			}
		default:
			perPiece = 1
		}
		cost := m.UnitCost * perPiece * qty
		materialCost += cost
		materialLines = append(materialLines, MaterialLine{
			Type:     m.Type,
			Name:     m.Name,
			Quantity: perPiece * qty,
			Cost:     cost,
		})
	}

	baseHours := item.Attributes.WeightKg * hoursPerKg
	if baseHours < minHoursPerPiece {
		baseHours = minHoursPerPiece
	}
	hours := baseHours * multiplier * qty

	laborLines := make([]LaborLine, 0, len(stages))
	laborCost := 0.0
	for _, st := range stages {
		cost := hours * st.CostPerHour
		laborCost += cost
		laborLines = append(laborLines, LaborLine{Stage: st.Name, Hours: hours, Cost: cost})
	}

	overhead := (materialCost + laborCost) * cfg.OverheadRate
	profit := (materialCost + laborCost + overhead) * cfg.ProfitMargin

	return Breakdown{
		MaterialLines:        materialLines,
		LaborLines:           laborLines,
		MaterialCost:         materialCost,
		LaborCost:            laborCost,
		Overhead:             overhead,
		Profit:               profit,
		SellingPrice:         materialCost + laborCost + overhead + profit,
		ComplexityMultiplier: multiplier,
	}
}
