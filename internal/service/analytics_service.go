package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"storefront/internal/cache"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	lowStockThreshold = 10
	topProductsLimit  = 5
	lowStockLimit     = 5
)

// analyticsService implements AnalyticsService. Reports are aggregated in
// memory from the order history; a redis cache (optional) absorbs repeated
// dashboard loads, since the dashboard tolerates eventual consistency.
type analyticsService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	cache       cache.Cache // nil disables caching
	cacheTTL    time.Duration
	now         func() time.Time
	logger      zerolog.Logger
}

// NewAnalyticsService creates a new analytics service. A nil cache disables
// report caching.
func NewAnalyticsService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	reportCache cache.Cache,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) AnalyticsService {
	return &analyticsService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		cache:       reportCache,
		cacheTTL:    cacheTTL,
		now:         time.Now,
		logger:      logger.With().Str("service", "analytics").Logger(),
	}
}

// Report aggregates orders, products and users over the given range.
func (s *analyticsService) Report(ctx context.Context, timeRange model.TimeRange) (*model.AnalyticsReport, error) {
	if !timeRange.Valid() {
		timeRange = model.RangeMonth
	}

	cacheKey := fmt.Sprintf("analytics:%s", timeRange)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err != nil {
			s.logger.Warn().Err(err).Msg("analytics cache read failed")
		} else if cached != "" {
			var report model.AnalyticsReport
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				s.logger.Debug().Str("range", string(timeRange)).Msg("analytics served from cache")
				return &report, nil
			}
		}
	}

	report, err := s.buildReport(ctx, timeRange)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(report); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(encoded), s.cacheTTL); err != nil {
				s.logger.Warn().Err(err).Msg("analytics cache write failed")
			}
		}
	}

	return report, nil
}

func (s *analyticsService) buildReport(ctx context.Context, timeRange model.TimeRange) (*model.AnalyticsReport, error) {
	now := s.now()
	start := rangeStart(now, timeRange)

	orders, err := s.orderRepo.ListCreatedBetween(ctx, start, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load orders for analytics")
		return nil, fmt.Errorf("failed to build analytics report: %w", err)
	}

	var totalRevenue float64
	for _, o := range orders {
		totalRevenue += o.Total
	}
	totalRevenue = model.RoundCurrency(totalRevenue)

	stats := model.AnalyticsStats{
		TotalRevenue: totalRevenue,
		TotalOrders:  len(orders),
	}

	if len(orders) > 0 {
		stats.AverageOrderValue = model.RoundCurrency(totalRevenue / float64(len(orders)))
	}

	// Growth against the previous period of equal length. Meaningless for
	// the all-time range.
	if timeRange != model.RangeAll {
		previousStart := start.Add(-now.Sub(start))
		previous, err := s.orderRepo.ListCreatedBetween(ctx, previousStart, start)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to load previous period orders")
			return nil, fmt.Errorf("failed to build analytics report: %w", err)
		}

		var previousRevenue float64
		for _, o := range previous {
			previousRevenue += o.Total
		}
		if previousRevenue > 0 {
			stats.RevenueGrowth = round1((totalRevenue - previousRevenue) / previousRevenue * 100)
		}
		if len(previous) > 0 {
			stats.OrdersGrowth = round1(float64(len(orders)-len(previous)) / float64(len(previous)) * 100)
		}
	}

	stats.TotalProducts, err = s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics report: %w", err)
	}

	stats.TotalCustomers, err = s.userRepo.CountCustomers(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics report: %w", err)
	}

	stats.NewCustomers, err = s.userRepo.CountCustomers(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics report: %w", err)
	}

	stats.OutOfStockCount, err = s.productRepo.CountOutOfStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics report: %w", err)
	}

	stats.RetentionRate = retentionRate(orders)

	categoryData, topProducts, err := s.productBreakdowns(ctx, orders)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.ListLowStock(ctx, lowStockThreshold, lowStockLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics report: %w", err)
	}

	lowStockProducts := make([]model.LowStockProduct, 0, len(lowStock))
	for _, p := range lowStock {
		lowStockProducts = append(lowStockProducts, model.LowStockProduct{
			Name:     p.Name,
			Stock:    p.Stock,
			ImageURL: p.ImageURL,
		})
	}

	return &model.AnalyticsReport{
		Stats:            stats,
		RevenueData:      revenueBuckets(orders, timeRange),
		CategoryData:     categoryData,
		TopProducts:      topProducts,
		StatusBreakdown:  statusBreakdown(orders),
		LowStockProducts: lowStockProducts,
	}, nil
}

// productBreakdowns resolves item categories against the live catalogue and
// computes units-per-category plus the top products by revenue. Items whose
// product has since been deleted fall into the "Other" category.
func (s *analyticsService) productBreakdowns(ctx context.Context, orders []model.Order) ([]model.CategorySales, []model.TopProduct, error) {
	idSet := make(map[uuid.UUID]struct{})
	for _, o := range orders {
		for _, item := range o.Items {
			idSet[item.ProductID] = struct{}{}
		}
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to resolve products for analytics")
		return nil, nil, fmt.Errorf("failed to build analytics report: %w", err)
	}

	category := make(map[uuid.UUID]string, len(products))
	image := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		category[p.ID] = p.Category
		image[p.ID] = p.ImageURL
	}

	categoryUnits := make(map[string]int)
	type productSales struct {
		name    string
		sales   int
		revenue float64
	}
	sales := make(map[uuid.UUID]*productSales)

	for _, o := range orders {
		for _, item := range o.Items {
			cat, ok := category[item.ProductID]
			if !ok {
				cat = "Other"
			}
			categoryUnits[cat] += item.Quantity

			ps, ok := sales[item.ProductID]
			if !ok {
				ps = &productSales{name: item.Name}
				sales[item.ProductID] = ps
			}
			ps.sales += item.Quantity
			ps.revenue += item.Price * float64(item.Quantity)
		}
	}

	categoryData := make([]model.CategorySales, 0, len(categoryUnits))
	for name, units := range categoryUnits {
		categoryData = append(categoryData, model.CategorySales{Name: name, Value: units})
	}
	sort.Slice(categoryData, func(i, j int) bool {
		if categoryData[i].Value != categoryData[j].Value {
			return categoryData[i].Value > categoryData[j].Value
		}
		return categoryData[i].Name < categoryData[j].Name
	})

	top := make([]model.TopProduct, 0, len(sales))
	for id, ps := range sales {
		top = append(top, model.TopProduct{
			Name:     ps.name,
			ImageURL: image[id],
			Sales:    ps.sales,
			Revenue:  model.RoundCurrency(ps.revenue),
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Revenue != top[j].Revenue {
			return top[i].Revenue > top[j].Revenue
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > topProductsLimit {
		top = top[:topProductsLimit]
	}

	return categoryData, top, nil
}

// revenueBuckets groups revenue and order counts into time buckets sized for
// the selected range. Orders arrive newest first; buckets are emitted in
// chronological order.
func revenueBuckets(orders []model.Order, timeRange model.TimeRange) []model.RevenuePoint {
	buckets := make(map[string]*model.RevenuePoint)
	var keys []string

	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		var key string
		switch timeRange {
		case model.RangeDay:
			key = o.CreatedAt.Format("15:00")
		case model.RangeWeek, model.RangeMonth:
			key = o.CreatedAt.Format("Jan 2")
		default:
			key = o.CreatedAt.Format("Jan")
		}

		point, ok := buckets[key]
		if !ok {
			point = &model.RevenuePoint{Name: key}
			buckets[key] = point
			keys = append(keys, key)
		}
		point.Revenue = model.RoundCurrency(point.Revenue + o.Total)
		point.Orders++
	}

	data := make([]model.RevenuePoint, 0, len(keys))
	for _, key := range keys {
		data = append(data, *buckets[key])
	}
	return data
}

// statusBreakdown counts orders and revenue per fulfilment status.
func statusBreakdown(orders []model.Order) []model.StatusCount {
	counts := make(map[model.OrderStatus]*model.StatusCount)
	for _, o := range orders {
		sc, ok := counts[o.Status]
		if !ok {
			sc = &model.StatusCount{Status: o.Status}
			counts[o.Status] = sc
		}
		sc.Count++
		sc.Revenue = model.RoundCurrency(sc.Revenue + o.Total)
	}

	breakdown := make([]model.StatusCount, 0, len(counts))
	for _, status := range []model.OrderStatus{
		model.StatusPending, model.StatusProcessing, model.StatusShipped,
		model.StatusDelivered, model.StatusCancelled,
	} {
		if sc, ok := counts[status]; ok {
			breakdown = append(breakdown, *sc)
		}
	}
	return breakdown
}

// retentionRate is the share of customers in the order set with more than
// one order, as a percentage.
func retentionRate(orders []model.Order) float64 {
	perUser := make(map[uuid.UUID]int)
	for _, o := range orders {
		perUser[o.UserID]++
	}
	if len(perUser) == 0 {
		return 0
	}

	repeat := 0
	for _, n := range perUser {
		if n > 1 {
			repeat++
		}
	}
	return round1(float64(repeat) / float64(len(perUser)) * 100)
}

// rangeStart returns the inclusive window start for a reporting range.
func rangeStart(now time.Time, timeRange model.TimeRange) time.Time {
	switch timeRange {
	case model.RangeDay:
		return now.AddDate(0, 0, -1)
	case model.RangeWeek:
		return now.AddDate(0, 0, -7)
	case model.RangeMonth:
		return now.AddDate(0, -1, 0)
	case model.RangeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
