package timeseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLengthsAndCoupling(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	demand, price, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, demand, cfg.Months)
	require.Len(t, price, cfg.Months)

	// Demand stays in a plausible band around the base load.
	for i, d := range demand {
		assert.Greater(t, d, cfg.BaseDemandMW-3000, "month %d", i)
		assert.Less(t, d, cfg.BaseDemandMW+3000, "month %d", i)
	}
	for i, p := range price {
		assert.Greater(t, p, 0.0, "month %d price", i)
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	cfg := DefaultGeneratorConfig()

	d1, p1, err := Generate(cfg)
	require.NoError(t, err)
	d2, p2, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
	assert.Equal(t, p1, p2)
}

func TestGenerateSeedChangesSeries(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	d1, _, err := Generate(cfg)
	require.NoError(t, err)

	cfg.Seed = 7
	d2, _, err := Generate(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)
}

func TestGenerateNoiselessTrend(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.DemandNoiseMW = 0
	cfg.PriceNoise = 0

	demand, price, err := Generate(cfg)
	require.NoError(t, err)

	// Without noise, month 0 sits exactly at the base load and base price.
	assert.InDelta(t, cfg.BaseDemandMW, demand[0], 1e-9)
	assert.InDelta(t, cfg.BasePrice, price[0], 1e-9)

	// Twelve months apart the seasonal term cancels, leaving pure growth.
	growth := demand[12] - demand[0]
	assert.InDelta(t, cfg.BaseDemandMW*cfg.MonthlyGrowth*12, growth, 1e-6)
}

func TestGenerateValidation(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Months = 1
	_, _, err := Generate(cfg)
	assert.Error(t, err)

	cfg = DefaultGeneratorConfig()
	cfg.DemandNoiseMW = -1
	_, _, err = Generate(cfg)
	assert.Error(t, err)
}
