package models

// DailyStat is one row of the per-day sales breakdown.
type DailyStat struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// ItemSales is one row of the best-selling item ranking.
type ItemSales struct {
	Name      string `json:"name"`
	TotalSold int64  `json:"total_sold"`
}

// DashboardStats is the aggregate payload served to the admin dashboard.
type DashboardStats struct {
	TotalRevenue    float64     `json:"total_revenue"`
	TotalOrders     int64       `json:"total_orders"`
	PendingOrders   int64       `json:"pending_orders"`
	DailyStats      []DailyStat `json:"daily_stats"`
	TopSellingItems []ItemSales `json:"top_selling_items"`
}
