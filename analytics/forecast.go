package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"shopai/models"
)

// Only the most recent 12 monthly buckets feed the regression, so the chart
// stays a fixed length.
const forecastWindowMonths = 12

// Trend labels reported by the revenue forecast.
const (
	TrendGrowth  = "GROWTH"
	TrendDecline = "DECLINE"
	TrendUnknown = "UNKNOWN"
)

// OrderPoint is one completed order's contribution to the revenue series.
type OrderPoint struct {
	CreatedAt time.Time
	Amount    float64
}

// RevenueForecast is the computed forecast, before top-seller data is
// attached by the handler.
type RevenueForecast struct {
	Points     []models.RevenuePoint
	Trend      string
	GrowthRate float64
	Advice     string
	SeasonTip  string
}

type monthBucket struct {
	month   time.Time
	revenue float64
}

// ForecastRevenue buckets completed orders into calendar months, fits a
// least-squares linear trend over the most recent twelve buckets and
// projects one month ahead. now only drives the seasonal stocking tip.
func ForecastRevenue(orders []OrderPoint, now time.Time) RevenueForecast {
	if len(orders) == 0 {
		return RevenueForecast{
			Points:    []models.RevenuePoint{},
			Trend:     TrendUnknown,
			Advice:    "No data yet",
			SeasonTip: "No data yet",
		}
	}

	buckets := monthlyRevenue(orders)
	if len(buckets) > forecastWindowMonths {
		buckets = buckets[len(buckets)-forecastWindowMonths:]
	}

	xs := make([]float64, len(buckets))
	ys := make([]float64, len(buckets))
	for i, b := range buckets {
		xs[i] = float64(i)
		ys[i] = b.revenue
	}

	// Regress revenue against the month index and predict at the next index.
	// A single bucket has no slope to fit; the prediction is the bucket
	// itself.
	var predicted float64
	if len(buckets) == 1 {
		predicted = ys[0]
	} else {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		predicted = alpha + beta*float64(len(buckets))
	}

	points := make([]models.RevenuePoint, 0, len(buckets)+1)
	for _, b := range buckets {
		revenue := math.Round(b.revenue)
		points = append(points, models.RevenuePoint{
			Name:    monthLabel(b.month),
			Revenue: &revenue,
		})
	}

	// Revenue cannot go negative; the chart point is clamped even when the
	// fitted trend is.
	chartPrediction := math.Round(math.Max(0, predicted))
	nextMonth := buckets[len(buckets)-1].month.AddDate(0, 1, 0)
	points = append(points, models.RevenuePoint{
		Name:       monthLabel(nextMonth),
		Prediction: &chartPrediction,
	})

	lastObserved := ys[len(ys)-1]
	var growth float64
	if lastObserved > 0 {
		growth = (predicted - lastObserved) / lastObserved * 100
	}
	trend := TrendDecline
	if predicted > lastObserved {
		trend = TrendGrowth
	}

	// The advice tier comes from the raw rate; rounding is display-only.
	return RevenueForecast{
		Points:     points,
		Trend:      trend,
		GrowthRate: math.Round(growth*10) / 10,
		Advice:     restockAdvice(growth),
		SeasonTip:  seasonTip(now.Month()),
	}
}

// monthlyRevenue sorts orders chronologically and sums amounts per calendar
// month. Months without orders produce no bucket.
func monthlyRevenue(orders []OrderPoint) []monthBucket {
	sorted := make([]OrderPoint, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var buckets []monthBucket
	for _, o := range sorted {
		month := truncateToMonth(o.CreatedAt)
		if len(buckets) > 0 && buckets[len(buckets)-1].month.Equal(month) {
			buckets[len(buckets)-1].revenue += o.Amount
			continue
		}
		buckets = append(buckets, monthBucket{month: month, revenue: o.Amount})
	}
	return buckets
}

func truncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthLabel renders a bucket as Tmm/yy, e.g. T03/24 for March 2024.
func monthLabel(t time.Time) string {
	return fmt.Sprintf("T%02d/%02d", int(t.Month()), t.Year()%100)
}

func restockAdvice(growth float64) string {
	switch {
	case growth > 10:
		return fmt.Sprintf("Strong growth (+%.1f%%). Restock now.", growth)
	case growth > 0:
		return fmt.Sprintf("Mild growth (+%.1f%%). Maintain current stock levels.", growth)
	default:
		return fmt.Sprintf("Decline (%.1f%%). Cut back on purchasing and clear out inventory.", growth)
	}
}

// seasonTip is a static lookup on the current calendar month, not a learned
// signal.
func seasonTip(month time.Month) string {
	switch month {
	case time.March, time.April, time.May:
		return "Spring season. Stock up on light cardigans and floral dresses."
	case time.June, time.July, time.August:
		return "Summer season. Prioritize cotton tees and shorts."
	case time.September, time.October, time.November:
		return "Autumn season. Stock up on hoodies and blazers."
	default:
		return "Winter/holiday season. Urgently restock puffer jackets and thick knits."
	}
}
