package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(year int, month time.Month, day int, amount float64) OrderPoint {
	return OrderPoint{
		CreatedAt: time.Date(year, month, day, 12, 0, 0, 0, time.UTC),
		Amount:    amount,
	}
}

func TestForecastLinearGrowth(t *testing.T) {
	orders := []OrderPoint{
		order(2024, time.January, 15, 100),
		order(2024, time.February, 10, 200),
		order(2024, time.March, 5, 300),
	}

	f := ForecastRevenue(orders, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, f.Points, 4)
	for i, want := range []float64{100, 200, 300} {
		require.NotNil(t, f.Points[i].Revenue)
		assert.Equal(t, want, *f.Points[i].Revenue)
		assert.Nil(t, f.Points[i].Prediction)
	}

	last := f.Points[3]
	assert.Nil(t, last.Revenue)
	require.NotNil(t, last.Prediction)
	assert.Equal(t, 400.0, *last.Prediction)
	assert.Equal(t, "T04/24", last.Name)

	assert.Equal(t, TrendGrowth, f.Trend)
	assert.Equal(t, 33.3, f.GrowthRate)
	assert.Contains(t, f.Advice, "Strong growth")
}

func TestForecastEmptyInput(t *testing.T) {
	f := ForecastRevenue(nil, time.Now())

	assert.Empty(t, f.Points)
	assert.Equal(t, TrendUnknown, f.Trend)
	assert.Zero(t, f.GrowthRate)
}

func TestForecastChronologyRegardlessOfInputOrder(t *testing.T) {
	orders := []OrderPoint{
		order(2024, time.March, 5, 300),
		order(2024, time.January, 15, 100),
		order(2024, time.February, 10, 200),
	}

	f := ForecastRevenue(orders, time.Now())

	require.Len(t, f.Points, 4)
	assert.Equal(t, []string{"T01/24", "T02/24", "T03/24", "T04/24"},
		[]string{f.Points[0].Name, f.Points[1].Name, f.Points[2].Name, f.Points[3].Name})
	assert.Equal(t, 100.0, *f.Points[0].Revenue)
	assert.Equal(t, 300.0, *f.Points[2].Revenue)
}

func TestForecastWindowBound(t *testing.T) {
	var orders []OrderPoint
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		orders = append(orders, OrderPoint{
			CreatedAt: start.AddDate(0, i, 10),
			Amount:    float64(100 + i),
		})
	}

	f := ForecastRevenue(orders, time.Now())

	// 12 observed buckets plus exactly one forecast point.
	require.Len(t, f.Points, 13)
	for _, p := range f.Points[:12] {
		assert.NotNil(t, p.Revenue)
		assert.Nil(t, p.Prediction)
	}
	assert.Nil(t, f.Points[12].Revenue)
	assert.NotNil(t, f.Points[12].Prediction)
}

func TestForecastNeverNegative(t *testing.T) {
	orders := []OrderPoint{
		order(2024, time.January, 10, 1000),
		order(2024, time.February, 10, 100),
	}

	f := ForecastRevenue(orders, time.Now())

	require.Len(t, f.Points, 3)
	require.NotNil(t, f.Points[2].Prediction)
	assert.Equal(t, 0.0, *f.Points[2].Prediction)
	assert.Equal(t, TrendDecline, f.Trend)
	assert.Less(t, f.GrowthRate, 0.0)
	assert.Contains(t, f.Advice, "Decline")
}

func TestForecastMildGrowthAdvice(t *testing.T) {
	orders := []OrderPoint{
		order(2024, time.January, 10, 100),
		order(2024, time.February, 10, 110),
	}

	f := ForecastRevenue(orders, time.Now())

	// Extrapolates to 120, +9.1% over the last observed month.
	assert.Equal(t, TrendGrowth, f.Trend)
	assert.Equal(t, 9.1, f.GrowthRate)
	assert.Contains(t, f.Advice, "Mild growth")
}

func TestForecastAdviceTierUsesRawGrowth(t *testing.T) {
	// Extrapolates to 11001, a raw +10.01% over February. That rounds to
	// 10.0 for display but still clears the strong-growth threshold.
	orders := []OrderPoint{
		order(2024, time.January, 10, 8999),
		order(2024, time.February, 10, 10000),
	}

	f := ForecastRevenue(orders, time.Now())

	assert.Equal(t, 10.0, f.GrowthRate)
	assert.Contains(t, f.Advice, "Strong growth")
}

func TestForecastSingleMonth(t *testing.T) {
	orders := []OrderPoint{order(2024, time.May, 2, 500)}

	f := ForecastRevenue(orders, time.Now())

	require.Len(t, f.Points, 2)
	assert.Equal(t, 500.0, *f.Points[0].Revenue)
	assert.Equal(t, 500.0, *f.Points[1].Prediction)
	assert.Zero(t, f.GrowthRate)
	assert.Equal(t, TrendDecline, f.Trend)
}

func TestForecastSameMonthOrdersAreSummed(t *testing.T) {
	orders := []OrderPoint{
		order(2024, time.January, 3, 40),
		order(2024, time.January, 28, 60),
		order(2024, time.February, 14, 200),
	}

	f := ForecastRevenue(orders, time.Now())

	require.Len(t, f.Points, 3)
	assert.Equal(t, 100.0, *f.Points[0].Revenue)
	assert.Equal(t, 200.0, *f.Points[1].Revenue)
}

func TestSeasonTips(t *testing.T) {
	cases := []struct {
		month time.Month
		want  string
	}{
		{time.April, "Spring"},
		{time.July, "Summer"},
		{time.October, "Autumn"},
		{time.December, "Winter"},
		{time.January, "Winter"},
	}

	orders := []OrderPoint{order(2024, time.January, 10, 100)}
	for _, tc := range cases {
		now := time.Date(2024, tc.month, 15, 0, 0, 0, 0, time.UTC)
		f := ForecastRevenue(orders, now)
		assert.Contains(t, f.SeasonTip, tc.want, "month %s", tc.month)
	}
}
