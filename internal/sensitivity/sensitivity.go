// Package sensitivity sweeps the closed-form rate-impact formula across
// alternative data-center deployment assumptions. The formula is static
// arithmetic; the validation engine does not depend on it.
package sensitivity

// Grid and customer constants for the Evergy service territory.
const (
	gridCapacityMW     = 15650.0 // total system capacity
	customersMillions  = 1.7     // residential customer count
	currentAnnualBill  = 2184.0  // $182/month baseline
	capacityPremiumMul = 400.0   // non-linear capacity-market scaling
)

// Assumptions is the base case for the sensitivity sweep.
type Assumptions struct {
	CapacityMW     float64 `yaml:"capacity_mw" json:"capacity_mw"`         // projected DC capacity by 2030
	Utilization    float64 `yaml:"utilization" json:"utilization"`         // effective DC utilization
	CostPerMW      float64 `yaml:"cost_per_mw" json:"cost_per_mw"`         // infrastructure $M per MW
	PassthroughPct float64 `yaml:"passthrough_pct" json:"passthrough_pct"` // share of cost borne by ratepayers
}

// DefaultAssumptions returns the 2030 base case: 1,368 MW of data centers at
// 85% utilization, $1.62M/MW infrastructure cost, 25% ratepayer passthrough.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		CapacityMW:     1368,
		Utilization:    0.85,
		CostPerMW:      1.62,
		PassthroughPct: 0.25,
	}
}

// RateImpact projects the total residential rate increase, in percent, for a
// data-center buildout. It combines the ratepayer share of the required
// infrastructure cost with a non-linear capacity-market premium driven by DC
// penetration of the grid.
func RateImpact(capacityMW, utilization, costPerMW, passthroughPct float64) float64 {
	capacityNeeded := capacityMW / utilization
	infrastructureCost := capacityNeeded * costPerMW // $B
	ratepayerCost := infrastructureCost * passthroughPct

	// Annualized per customer, in dollars.
	annualPerCustomer := ratepayerCost * 1000 / customersMillions
	rateIncreasePct := annualPerCustomer / currentAnnualBill * 100

	penetration := capacityMW / gridCapacityMW
	capacityPremium := penetration * capacityPremiumMul

	return rateIncreasePct + capacityPremium
}

// Scenario is one row of the sensitivity table.
type Scenario struct {
	Name            string  `json:"name"`
	CapacityMW      float64 `json:"capacity_mw"`
	Utilization     float64 `json:"utilization"`
	PassthroughPct  float64 `json:"passthrough_pct"`
	RateIncreasePct float64 `json:"rate_increase_pct"`
	DeltaFromBase   float64 `json:"delta_from_base"` // percentage points vs the base case
}

// Sweep evaluates the base case and the four standard what-if scenarios.
func Sweep(base Assumptions) []Scenario {
	eval := func(name string, a Assumptions) Scenario {
		return Scenario{
			Name:            name,
			CapacityMW:      a.CapacityMW,
			Utilization:     a.Utilization,
			PassthroughPct:  a.PassthroughPct,
			RateIncreasePct: RateImpact(a.CapacityMW, a.Utilization, a.CostPerMW, a.PassthroughPct),
		}
	}

	baseRow := eval("Base Case", base)

	lower := base
	lower.CapacityMW *= 0.70
	efficient := base
	efficient.Utilization *= 0.80 // PUE 1.2 vs 1.5
	allocated := base
	allocated.PassthroughPct = 0.10
	aggressive := base
	aggressive.CapacityMW *= 1.50

	rows := []Scenario{
		baseRow,
		eval("Lower Deployment (-30%)", lower),
		eval("Higher Efficiency (20% reduction)", efficient),
		eval("Strong Cost Allocation (10% passthrough)", allocated),
		eval("Aggressive Deployment (+50%)", aggressive),
	}
	for i := range rows {
		rows[i].DeltaFromBase = rows[i].RateIncreasePct - baseRow.RateIncreasePct
	}
	return rows
}
