package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopai/models"
)

var segmentBase = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func customer(id int, frequency int, monetary float64, lastPurchase time.Time) CustomerStats {
	return CustomerStats{
		UserID:       id,
		Frequency:    frequency,
		Monetary:     monetary,
		LastPurchase: lastPurchase,
	}
}

func labelOf(details []models.CustomerSegment, userID int) string {
	for _, d := range details {
		if d.UserID == userID {
			return d.Label
		}
	}
	return ""
}

func TestSegmentEmptyInput(t *testing.T) {
	chart, details := SegmentCustomers(nil)

	assert.Empty(t, chart)
	assert.Empty(t, details)
}

func TestSegmentSmallPopulationGenericLabels(t *testing.T) {
	// Three customers, identical recency and frequency, spend 1000/500/100.
	customers := []CustomerStats{
		customer(1, 5, 1000, segmentBase),
		customer(2, 5, 500, segmentBase),
		customer(3, 5, 100, segmentBase),
	}

	chart, details := SegmentCustomers(customers)

	require.Len(t, details, 3)
	require.Len(t, chart, 3)

	// Generic group names in descending spend order, never the semantic
	// quartile labels.
	assert.Equal(t, "Group 1", labelOf(details, 1))
	assert.Equal(t, "Group 2", labelOf(details, 2))
	assert.Equal(t, "Group 3", labelOf(details, 3))
	for _, entry := range chart {
		assert.Equal(t, 1, entry.Value)
	}
}

func TestSegmentFourCustomersSemanticLabels(t *testing.T) {
	customers := []CustomerStats{
		customer(1, 20, 10000, segmentBase),
		customer(2, 10, 5000, segmentBase.AddDate(0, 0, -20)),
		customer(3, 5, 1000, segmentBase.AddDate(0, 0, -60)),
		customer(4, 1, 100, segmentBase.AddDate(0, 0, -180)),
	}

	chart, details := SegmentCustomers(customers)

	require.Len(t, details, 4)
	require.Len(t, chart, 4)

	assert.Equal(t, "VIP (High Spender)", labelOf(details, 1))
	assert.Equal(t, "Potential Customer", labelOf(details, 2))
	assert.Equal(t, "Regular Customer", labelOf(details, 3))
	assert.Equal(t, "At Risk of Churn", labelOf(details, 4))

	// Chart entries ride in spend-rank order.
	assert.Equal(t, "VIP (High Spender)", chart[0].Name)
	assert.Equal(t, "At Risk of Churn", chart[3].Name)
}

func TestSegmentDeterminism(t *testing.T) {
	var customers []CustomerStats
	for i := 0; i < 10; i++ {
		customers = append(customers, customer(
			i+1,
			1+i%4,
			float64(100*(i+1)),
			segmentBase.AddDate(0, 0, -7*i),
		))
	}

	chart1, details1 := SegmentCustomers(customers)
	chart2, details2 := SegmentCustomers(customers)

	assert.Equal(t, chart1, chart2)
	assert.Equal(t, details1, details2)

	// Ten customers form four clusters with the semantic labels.
	total := 0
	for _, entry := range chart1 {
		total += entry.Value
	}
	assert.Equal(t, 10, total)
	for _, d := range details1 {
		assert.Contains(t, segmentLabels[:], d.Label)
	}
}

func TestSegmentRecencyRelativeToSnapshot(t *testing.T) {
	customers := []CustomerStats{
		customer(1, 3, 300, segmentBase),
		customer(2, 3, 200, segmentBase.AddDate(0, 0, -10)),
	}

	_, details := SegmentCustomers(customers)

	require.Len(t, details, 2)
	// Snapshot is the freshest purchase plus one day.
	assert.Equal(t, 1, details[0].Recency)
	assert.Equal(t, 11, details[1].Recency)
}

func TestSegmentHighestSpenderIsVIP(t *testing.T) {
	// Four well-separated cohorts of two; the top cohort must take the VIP
	// label regardless of cluster numbering.
	customers := []CustomerStats{
		customer(1, 25, 20000, segmentBase),
		customer(2, 24, 19500, segmentBase.AddDate(0, 0, -1)),
		customer(3, 12, 8000, segmentBase.AddDate(0, 0, -30)),
		customer(4, 11, 8200, segmentBase.AddDate(0, 0, -32)),
		customer(5, 4, 900, segmentBase.AddDate(0, 0, -90)),
		customer(6, 5, 1100, segmentBase.AddDate(0, 0, -95)),
		customer(7, 1, 120, segmentBase.AddDate(0, 0, -300)),
		customer(8, 1, 80, segmentBase.AddDate(0, 0, -320)),
	}

	_, details := SegmentCustomers(customers)

	require.Len(t, details, 8)
	assert.Equal(t, "VIP (High Spender)", labelOf(details, 1))
}
