// Package confidence turns walk-forward residuals into a margin of error for
// the long-range price projection, and carries the resulting interval through
// the fixed wholesale -> retail -> monthly-bill conversion chain.
package confidence

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Conversion holds the fixed linear constants that turn a wholesale $/MWh
// price into a retail $/kWh rate and a monthly residential bill. The
// retail-rate step includes an additive base cost; it shifts the point
// estimate and both bounds identically, so the interval half-width is
// unaffected by it and is scaled only by RetailMultiplier/1000*MonthlyKWh on
// the way from wholesale margin to bill margin.
type Conversion struct {
	RetailMultiplier float64 `yaml:"retail_multiplier" json:"retail_multiplier"`
	RetailBaseCost   float64 `yaml:"retail_base_cost" json:"retail_base_cost"`
	MonthlyKWh       float64 `yaml:"monthly_kwh" json:"monthly_kwh"`
}

// DefaultConversion returns the Evergy-territory constants: 3.5x wholesale
// pass-through, $0.05/kWh base cost, 1,000 kWh/month usage.
func DefaultConversion() Conversion {
	return Conversion{RetailMultiplier: 3.5, RetailBaseCost: 0.05, MonthlyKWh: 1000}
}

// Validate checks the conversion constants.
func (c Conversion) Validate() error {
	if c.RetailMultiplier <= 0 {
		return fmt.Errorf("conversion: retail multiplier must be positive, got %g", c.RetailMultiplier)
	}
	if c.MonthlyKWh <= 0 {
		return fmt.Errorf("conversion: monthly kWh must be positive, got %g", c.MonthlyKWh)
	}
	return nil
}

// WholesaleToRetail converts a $/MWh wholesale price to a $/kWh retail rate.
func (c Conversion) WholesaleToRetail(wholesale float64) float64 {
	return wholesale/1000*c.RetailMultiplier + c.RetailBaseCost
}

// RetailToWholesale inverts WholesaleToRetail.
func (c Conversion) RetailToWholesale(retail float64) float64 {
	return (retail - c.RetailBaseCost) / c.RetailMultiplier * 1000
}

// RetailToBill converts a $/kWh retail rate to a monthly bill.
func (c Conversion) RetailToBill(retail float64) float64 {
	return retail * c.MonthlyKWh
}

// BillToRetail inverts RetailToBill.
func (c Conversion) BillToRetail(bill float64) float64 {
	return bill / c.MonthlyKWh
}

// Interval is a symmetric two-sided confidence interval around a point
// estimate: UpperBound - PointEstimate == PointEstimate - LowerBound ==
// MarginOfError.
type Interval struct {
	PointEstimate float64 `json:"point_estimate"`
	LowerBound    float64 `json:"lower_bound"`
	UpperBound    float64 `json:"upper_bound"`
	MarginOfError float64 `json:"margin_of_error"`
}

// Estimate is the full confidence output: the wholesale interval and its
// retail and monthly-bill conversions.
type Estimate struct {
	Level         float64  `json:"level"`
	StandardError float64  `json:"standard_error"`
	ZScore        float64  `json:"z_score"`
	Wholesale     Interval `json:"wholesale"`
	Retail        Interval `json:"retail"`
	MonthlyBill   Interval `json:"monthly_bill"`
}

// Estimator computes residual-based confidence intervals at a fixed level.
type Estimator struct {
	level float64
	conv  Conversion
}

// NewEstimator creates an estimator for a confidence level in (0, 1).
func NewEstimator(level float64, conv Conversion) (*Estimator, error) {
	if level <= 0 || level >= 1 {
		return nil, fmt.Errorf("confidence: level must be in (0, 1), got %g", level)
	}
	if err := conv.Validate(); err != nil {
		return nil, err
	}
	return &Estimator{level: level, conv: conv}, nil
}

// Estimate derives the margin of error from the residuals' sample standard
// deviation and the two-sided normal quantile, centers the interval on the
// supplied wholesale point forecast, and converts it to retail and bill
// units. At least two residuals are required.
func (e *Estimator) Estimate(residuals []float64, pointForecast float64) (*Estimate, error) {
	if len(residuals) < 2 {
		return nil, fmt.Errorf("confidence: need at least 2 residuals, have %d", len(residuals))
	}

	se := stat.StdDev(residuals, nil)
	z := distuv.UnitNormal.Quantile((1 + e.level) / 2)
	margin := z * se

	wholesale := Interval{
		PointEstimate: pointForecast,
		LowerBound:    pointForecast - margin,
		UpperBound:    pointForecast + margin,
		MarginOfError: margin,
	}

	return &Estimate{
		Level:         e.level,
		StandardError: se,
		ZScore:        z,
		Wholesale:     wholesale,
		Retail:        e.convertInterval(wholesale, e.conv.WholesaleToRetail),
		MonthlyBill:   e.convertInterval(wholesale, func(w float64) float64 { return e.conv.RetailToBill(e.conv.WholesaleToRetail(w)) }),
	}, nil
}

// convertInterval applies the same linear transform to the point estimate
// and both bounds, so symmetry is preserved exactly.
func (e *Estimator) convertInterval(iv Interval, f func(float64) float64) Interval {
	out := Interval{
		PointEstimate: f(iv.PointEstimate),
		LowerBound:    f(iv.LowerBound),
		UpperBound:    f(iv.UpperBound),
	}
	out.MarginOfError = out.UpperBound - out.PointEstimate
	return out
}
