package models

// SalesSummary aggregates every order for the merchant regardless of status;
// cancelled orders count toward the totals.
type SalesSummary struct {
	TotalSale     float64 `json:"totalSale"`
	OrderCount    int     `json:"orderCount"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

// TrendStat pairs a headline figure with a display trend. The trend values are
// fixed placeholders until historical comparisons exist.
type TrendStat struct {
	Value int    `json:"value"`
	Trend string `json:"trend"`
}

type DashboardTrends struct {
	OrdersChange   TrendStat `json:"ordersChange"`
	RevenueChange  TrendStat `json:"revenueChange"`
	ProductsChange TrendStat `json:"productsChange"`
}

type DashboardAlert struct {
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
}

type DashboardStats struct {
	RecentOrders     []Order          `json:"recentOrders"`
	LowStockProducts []Product        `json:"lowStockProducts"`
	UpcomingRental   *Rental          `json:"upcomingRental"`
	Stats            DashboardTrends  `json:"stats"`
	Alerts           []DashboardAlert `json:"alerts"`
}
