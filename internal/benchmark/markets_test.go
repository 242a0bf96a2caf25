package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVirginia(t *testing.T) {
	markets := Markets()
	require.NotEmpty(t, markets)
	virginia := markets[0]
	require.Equal(t, "Northern Virginia", virginia.Name)

	c := Compare(virginia)
	assert.InDelta(t, 3.8, c.ErrorPoints, 1e-9)
	assert.InDelta(t, 9.09, c.ErrorPct, 0.01)
	assert.Equal(t, RatingExcellent, c.Rating)
}

func TestCompareTexas(t *testing.T) {
	texas := Markets()[1]
	require.Equal(t, "Texas", texas.Name)

	c := Compare(texas)
	assert.InDelta(t, 4.0, c.ErrorPoints, 1e-9)
	assert.Equal(t, RatingExcellent, c.Rating)
}

func TestCompareRatingBands(t *testing.T) {
	cases := []struct {
		name      string
		actual    float64
		predicted float64
		want      string
	}{
		{"within ten percent", 40, 37, RatingExcellent},
		{"within twenty percent", 40, 34, RatingGood},
		{"beyond twenty percent", 40, 28, RatingFair},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Compare(Market{ActualIncreasePct: tc.actual, PredictedIncreasePct: tc.predicted})
			assert.Equal(t, tc.want, c.Rating)
		})
	}
}

func TestCompareAll(t *testing.T) {
	comparisons := CompareAll()
	require.Len(t, comparisons, len(Markets()))
	for _, c := range comparisons {
		assert.GreaterOrEqual(t, c.ErrorPoints, 0.0)
		assert.NotEmpty(t, c.Rating)
	}
}

func TestPJMCapacityShock(t *testing.T) {
	shock := PJMCapacityShock()
	assert.Equal(t, 28.92, shock.PriceBefore)
	assert.Equal(t, 269.92, shock.PriceAfter)
	assert.Equal(t, 833.0, shock.IncreasePct)
	assert.Equal(t, 63.0, shock.DCAttributionPct)
	assert.NotEmpty(t, shock.ValidatedObservations)
}
