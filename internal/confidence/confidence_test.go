package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEstimatorRejectsBadLevel(t *testing.T) {
	for _, level := range []float64{0, 1, -0.5, 1.5} {
		_, err := NewEstimator(level, DefaultConversion())
		assert.Error(t, err, "level %g", level)
	}
}

func TestNewEstimatorRejectsBadConversion(t *testing.T) {
	_, err := NewEstimator(0.95, Conversion{RetailMultiplier: 0, MonthlyKWh: 1000})
	assert.Error(t, err)
}

func TestEstimateZScoreAtNinetyFivePercent(t *testing.T) {
	est, err := NewEstimator(0.95, DefaultConversion())
	require.NoError(t, err)

	out, err := est.Estimate([]float64{-2, -1, 0, 1, 2}, 100.98)
	require.NoError(t, err)
	assert.InDelta(t, 1.959964, out.ZScore, 1e-4)
	assert.InDelta(t, 1.581139, out.StandardError, 1e-5)
}

func TestEstimateIntervalSymmetry(t *testing.T) {
	est, err := NewEstimator(0.95, DefaultConversion())
	require.NoError(t, err)

	out, err := est.Estimate([]float64{-3.2, 1.7, 0.4, -0.9, 2.8, -1.1}, 100.98)
	require.NoError(t, err)

	for name, iv := range map[string]Interval{
		"wholesale":    out.Wholesale,
		"retail":       out.Retail,
		"monthly_bill": out.MonthlyBill,
	} {
		assert.InDelta(t, iv.MarginOfError, iv.UpperBound-iv.PointEstimate, 1e-9, "%s upper", name)
		assert.InDelta(t, iv.MarginOfError, iv.PointEstimate-iv.LowerBound, 1e-9, "%s lower", name)
	}
}

func TestEstimateMarginScalesThroughConversionChain(t *testing.T) {
	conv := DefaultConversion()
	est, err := NewEstimator(0.95, conv)
	require.NoError(t, err)

	out, err := est.Estimate([]float64{-2, -1, 0, 1, 2}, 100.98)
	require.NoError(t, err)

	// The additive retail base cost shifts the bounds but not the width.
	wantRetail := out.Wholesale.MarginOfError / 1000 * conv.RetailMultiplier
	assert.InDelta(t, wantRetail, out.Retail.MarginOfError, 1e-9)
	assert.InDelta(t, wantRetail*conv.MonthlyKWh, out.MonthlyBill.MarginOfError, 1e-9)
}

func TestEstimateNeedsTwoResiduals(t *testing.T) {
	est, err := NewEstimator(0.95, DefaultConversion())
	require.NoError(t, err)

	_, err = est.Estimate([]float64{1.5}, 100.98)
	assert.Error(t, err)
}

func TestWiderLevelWidensInterval(t *testing.T) {
	residuals := []float64{-2, -1, 0, 1, 2}

	narrow, err := NewEstimator(0.80, DefaultConversion())
	require.NoError(t, err)
	wide, err := NewEstimator(0.99, DefaultConversion())
	require.NoError(t, err)

	n, err := narrow.Estimate(residuals, 100.98)
	require.NoError(t, err)
	w, err := wide.Estimate(residuals, 100.98)
	require.NoError(t, err)
	assert.Greater(t, w.Wholesale.MarginOfError, n.Wholesale.MarginOfError)
}

func TestConversionRoundTrips(t *testing.T) {
	conv := DefaultConversion()

	wholesale := 100.98
	retail := conv.WholesaleToRetail(wholesale)
	assert.InDelta(t, wholesale, conv.RetailToWholesale(retail), 1e-9)

	bill := conv.RetailToBill(retail)
	assert.InDelta(t, retail, conv.BillToRetail(bill), 1e-12)
}

func TestDefaultConversionConstants(t *testing.T) {
	conv := DefaultConversion()
	assert.Equal(t, 3.5, conv.RetailMultiplier)
	assert.Equal(t, 0.05, conv.RetailBaseCost)
	assert.Equal(t, 1000.0, conv.MonthlyKWh)

	// $100.98/MWh wholesale -> $0.403/kWh retail -> $403.43/month.
	retail := conv.WholesaleToRetail(100.98)
	assert.InDelta(t, 0.40343, retail, 1e-5)
	assert.InDelta(t, 403.43, conv.RetailToBill(retail), 1e-2)
}
