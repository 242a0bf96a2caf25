// Package diagnostics checks the residuals of a completed validation run for
// systematic bias, non-normality, and serial correlation. All checks consume
// the ordered prediction records produced by the walk-forward runner;
// residuals are recomputed from the records on every call, never cached.
package diagnostics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Bodhi8/kc-datacenter-impact/internal/validate"
)

// Classification labels reported by the residual checks.
const (
	BiasNone     = "no bias"
	BiasPositive = "positive bias (model underestimates)"
	BiasNegative = "negative bias (model overestimates)"

	NormalityNormal    = "approximately normal"
	NormalityNonNormal = "non-normal"

	AutocorrLow     = "low autocorrelation (independent errors)"
	AutocorrPresent = "some autocorrelation present"
)

// minNormalitySamples is the smallest residual count for which the
// D'Agostino-Pearson statistic is defined.
const minNormalitySamples = 8

// minAutocorrSamples: the lag-1 check is skipped at or below this count.
const minAutocorrSamples = 10

// Config holds the diagnostic thresholds.
type Config struct {
	// BiasThreshold is the absolute mean residual, in price units, below
	// which the model is considered unbiased.
	BiasThreshold float64 `yaml:"bias_threshold" json:"bias_threshold"`
}

// DefaultConfig returns the thresholds used by the impact analysis.
func DefaultConfig() Config {
	return Config{BiasThreshold: 2.0}
}

// Summary holds residual distribution statistics. Std is the population
// standard deviation of the residuals.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// BiasCheck classifies the mean residual against the configured threshold.
type BiasCheck struct {
	MeanResidual   float64 `json:"mean_residual"`
	Threshold      float64 `json:"threshold"`
	Classification string  `json:"classification"`
}

// NormalityCheck holds the D'Agostino-Pearson omnibus test result.
type NormalityCheck struct {
	Statistic      float64 `json:"statistic"`
	PValue         float64 `json:"p_value"`
	Classification string  `json:"classification"`
}

// AutocorrelationCheck holds the first-order residual autocorrelation.
type AutocorrelationCheck struct {
	Lag1           float64 `json:"lag1"`
	Classification string  `json:"classification"`
}

// Report is the full residual diagnostic output. Normality is nil when there
// are fewer than 8 residuals; Autocorrelation is nil when there are 10 or
// fewer.
type Report struct {
	Summary         Summary               `json:"summary"`
	Bias            BiasCheck             `json:"bias"`
	Normality       *NormalityCheck       `json:"normality,omitempty"`
	Autocorrelation *AutocorrelationCheck `json:"autocorrelation,omitempty"`
}

// Analyze runs all residual checks over the prediction records.
func Analyze(records []validate.PredictionRecord, cfg Config) (*Report, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("diagnostics: no prediction records to analyze")
	}
	if cfg.BiasThreshold <= 0 {
		return nil, fmt.Errorf("diagnostics: bias threshold must be positive, got %g", cfg.BiasThreshold)
	}

	residuals := validate.Residuals(records)
	report := &Report{
		Summary: summarize(residuals),
	}
	report.Bias = classifyBias(report.Summary.Mean, cfg.BiasThreshold)

	if len(residuals) >= minNormalitySamples {
		report.Normality = normalityCheck(residuals)
	}
	if len(residuals) > minAutocorrSamples {
		report.Autocorrelation = autocorrelationCheck(residuals)
	}
	return report, nil
}

func summarize(residuals []float64) Summary {
	sorted := make([]float64, len(residuals))
	copy(sorted, residuals)
	sort.Float64s(sorted)

	mean := stat.Mean(residuals, nil)
	return Summary{
		Count:  len(residuals),
		Mean:   mean,
		Median: median(sorted),
		Std:    math.Sqrt(stat.PopVariance(residuals, nil)),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func classifyBias(mean, threshold float64) BiasCheck {
	check := BiasCheck{MeanResidual: mean, Threshold: threshold}
	switch {
	case math.Abs(mean) < threshold:
		check.Classification = BiasNone
	case mean > 0:
		// Residual is actual - predicted, so a positive mean means the
		// model predicts below reality.
		check.Classification = BiasPositive
	default:
		check.Classification = BiasNegative
	}
	return check
}

func autocorrelationCheck(residuals []float64) *AutocorrelationCheck {
	lag1 := stat.Correlation(residuals[:len(residuals)-1], residuals[1:], nil)
	check := &AutocorrelationCheck{Lag1: lag1}
	if math.Abs(lag1) < 0.3 {
		check.Classification = AutocorrLow
	} else {
		check.Classification = AutocorrPresent
	}
	return check
}

// normalityCheck runs the D'Agostino-Pearson omnibus test: the squared
// z-transforms of sample skewness and kurtosis sum to a statistic that is
// chi-squared with 2 degrees of freedom under normality.
func normalityCheck(residuals []float64) *NormalityCheck {
	z1 := skewnessZ(residuals)
	z2 := kurtosisZ(residuals)
	k2 := z1*z1 + z2*z2
	p := distuv.ChiSquared{K: 2}.Survival(k2)

	check := &NormalityCheck{Statistic: k2, PValue: p}
	if p > 0.05 {
		check.Classification = NormalityNormal
	} else {
		check.Classification = NormalityNonNormal
	}
	return check
}

// centralMoments returns the population central moments m2, m3, m4.
func centralMoments(x []float64) (m2, m3, m4 float64) {
	mean := stat.Mean(x, nil)
	n := float64(len(x))
	for _, v := range x {
		d := v - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	return m2 / n, m3 / n, m4 / n
}

// skewnessZ is the D'Agostino z-transform of sample skewness.
func skewnessZ(x []float64) float64 {
	n := float64(len(x))
	m2, m3, _ := centralMoments(x)
	g1 := 0.0
	if m2 > 0 {
		g1 = m3 / math.Pow(m2, 1.5)
	}

	y := g1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := 3 * (n*n + 27*n - 70) * (n + 1) * (n + 3) / ((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	if y == 0 {
		y = 1
	}
	return delta * math.Log(y/alpha+math.Sqrt((y/alpha)*(y/alpha)+1))
}

// kurtosisZ is the Anscombe-Glynn z-transform of sample kurtosis.
func kurtosisZ(x []float64) float64 {
	n := float64(len(x))
	m2, _, m4 := centralMoments(x)
	b2 := 3.0
	if m2 > 0 {
		b2 = m4 / (m2 * m2)
	}

	e := 3 * (n - 1) / (n + 1)
	varB2 := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	xStd := (b2 - e) / math.Sqrt(varB2)

	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) *
		math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))

	term1 := 1 - 2/(9*a)
	denom := 1 + xStd*math.Sqrt(2/(a-4))
	var term2 float64
	if denom == 0 {
		term2 = term1
	} else {
		term2 = math.Copysign(math.Cbrt((1-2/a)/math.Abs(denom)), denom)
	}
	return (term1 - term2) / math.Sqrt(2/(9*a))
}
