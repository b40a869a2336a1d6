package models

// RevenuePoint is one month on the revenue chart. Observed months carry
// Revenue and a nil Prediction; the single trailing forecast month carries
// Prediction and a nil Revenue.
type RevenuePoint struct {
	Name       string   `json:"name"`
	Revenue    *float64 `json:"revenue"`
	Prediction *float64 `json:"prediction"`
}

// TopProduct is a best-selling product ranked by units sold.
type TopProduct struct {
	Name      string `json:"name"`
	TotalSold int    `json:"total_sold"`
}

// RevenueAnalysis contains the qualitative reading of the forecast.
type RevenueAnalysis struct {
	Trend       string       `json:"trend"`
	GrowthRate  float64      `json:"growth_rate"`
	Advice      string       `json:"advice"`
	SeasonTip   string       `json:"season_tip"`
	TopProducts []TopProduct `json:"top_products"`
}

// RevenueForecastResponse is the complete GET /predict-revenue payload.
type RevenueForecastResponse struct {
	Data     []RevenuePoint  `json:"data"`
	Analysis RevenueAnalysis `json:"analysis"`
}

// SegmentCount feeds the segment summary pie chart.
type SegmentCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// CustomerSegment is one customer's RFM detail row.
type CustomerSegment struct {
	UserID    int     `json:"userId"`
	Label     string  `json:"label"`
	Recency   int     `json:"recency"`
	Frequency int     `json:"frequency"`
	Monetary  float64 `json:"monetary"`
}

// SegmentsResponse is the complete GET /customer-segments payload.
type SegmentsResponse struct {
	Status    string            `json:"status"`
	ChartData []SegmentCount    `json:"chart_data"`
	Details   []CustomerSegment `json:"details"`
}

// SentimentStats holds the share of each sentiment as percentages.
type SentimentStats struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// ReviewDetail is a review row joined to its product, plus the classified
// sentiment.
type ReviewDetail struct {
	ID          int    `json:"id"`
	Content     string `json:"content"`
	Rating      int    `json:"rating"`
	ProductName string `json:"productName"`
	Sentiment   string `json:"sentiment"`
}
