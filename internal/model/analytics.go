package model

// TimeRange selects the analytics reporting window.
type TimeRange string

const (
	RangeDay   TimeRange = "day"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeAll   TimeRange = "all"
)

// Valid reports whether r is a known time range.
func (r TimeRange) Valid() bool {
	switch r {
	case RangeDay, RangeWeek, RangeMonth, RangeYear, RangeAll:
		return true
	}
	return false
}

// AnalyticsStats are the headline numbers of the admin dashboard.
type AnalyticsStats struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	TotalProducts     int     `json:"totalProducts"`
	TotalCustomers    int     `json:"totalCustomers"`
	NewCustomers      int     `json:"newCustomers"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	RevenueGrowth     float64 `json:"revenueGrowth"`
	OrdersGrowth      float64 `json:"ordersGrowth"`
	OutOfStockCount   int     `json:"outOfStockCount"`
	RetentionRate     float64 `json:"retentionRate"`
}

// RevenuePoint is one time bucket of revenue and order count.
type RevenuePoint struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// CategorySales is units sold per catalogue category.
type CategorySales struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TopProduct is one entry of the best-sellers list.
type TopProduct struct {
	Name     string  `json:"name"`
	ImageURL string  `json:"imageUrl"`
	Sales    int     `json:"sales"`
	Revenue  float64 `json:"revenue"`
}

// StatusCount is the order count and revenue for one status.
type StatusCount struct {
	Status  OrderStatus `json:"status"`
	Count   int         `json:"count"`
	Revenue float64     `json:"revenue"`
}

// LowStockProduct is a product running low on inventory.
type LowStockProduct struct {
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	ImageURL string `json:"imageUrl"`
}

// AnalyticsReport is the full admin dashboard payload for one time range.
type AnalyticsReport struct {
	Stats            AnalyticsStats    `json:"stats"`
	RevenueData      []RevenuePoint    `json:"revenueData"`
	CategoryData     []CategorySales   `json:"categoryData"`
	TopProducts      []TopProduct      `json:"topProducts"`
	StatusBreakdown  []StatusCount     `json:"orderStatusData"`
	LowStockProducts []LowStockProduct `json:"lowStockProducts"`
}
