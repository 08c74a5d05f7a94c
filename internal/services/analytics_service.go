package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"resto-backend/internal/analytics"
	"resto-backend/internal/apperr"
	"resto-backend/internal/cache"
	"resto-backend/internal/models"
	"resto-backend/internal/period"
	"resto-backend/internal/timeutil"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWeeklyDays  = 7
	DefaultMonthlyDays = 30
	MaxWindowDays      = 366
	MaxTopSellingLimit = 100
)

// AnalyticsService answers the dashboard's sales queries. Every call fetches
// its bills fresh (or from the cache) and reduces them locally.
type AnalyticsService struct {
	bills  BillStore
	cache  *cache.Cache
	clock  timeutil.Clock
	logger *zap.Logger
}

func NewAnalyticsService(bills BillStore, c *cache.Cache, clock timeutil.Clock, logger *zap.Logger) *AnalyticsService {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{bills: bills, cache: c, clock: clock, logger: logger}
}

func (s *AnalyticsService) now() time.Time {
	return s.clock().In(timeutil.Local)
}

// cached serves key from the cache or computes and stores it. Cache failures
// only cost a recomputation. The key is read at the current generation, so a
// result racing an invalidation cannot outlive it.
func cached[T any](ctx context.Context, c *cache.Cache, key string, compute func() (T, error)) (T, error) {
	key = c.Versioned(ctx, key)
	if data, ok := c.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	if data, err := json.Marshal(v); err == nil {
		c.Set(ctx, key, data)
	}
	return v, nil
}

// CalendarStatus returns one status per day of month (YYYY-MM).
func (s *AnalyticsService) CalendarStatus(ctx context.Context, month string) ([]models.DayStatus, error) {
	if month == "" {
		return nil, apperr.Validation("Month parameter is required")
	}
	r, err := period.FromMonthToken(month, timeutil.Local)
	if err != nil {
		return nil, err
	}
	now := s.now()

	key := cache.AnalyticsKey("calendar-status", r.MonthToken(), timeutil.DateKey(now))
	return cached(ctx, s.cache, key, func() ([]models.DayStatus, error) {
		bills, err := s.bills.ListBillsBetween(ctx, r.Start, r.End)
		if err != nil {
			return nil, err
		}
		return analytics.BuildCalendar(r, bills, now), nil
	})
}

// DailySales details one day (YYYY-MM-DD): totals, payment mix, every item
// sold with its orders, and the bills newest first.
func (s *AnalyticsService) DailySales(ctx context.Context, date string) (*models.DailySales, error) {
	if date == "" {
		return nil, apperr.Validation("Date parameter is required")
	}
	r, err := period.Day(date, timeutil.Local)
	if err != nil {
		return nil, err
	}

	key := cache.AnalyticsKey("daily-sales", timeutil.DateKey(r.Start))
	return cached(ctx, s.cache, key, func() (*models.DailySales, error) {
		var (
			bills []models.Bill
			lines []models.BillItemDetail
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			bills, err = s.bills.ListBillsBetween(gctx, r.Start, r.End)
			return err
		})
		g.Go(func() error {
			var err error
			lines, err = s.bills.ListItemsBetween(gctx, r.Start, r.End)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		revenue := analytics.SumRevenue(bills)
		count := analytics.CountBills(bills)

		items := analytics.SortByQuantity(analytics.GroupByItem(lines))
		topItems := make([]models.ItemSales, 0, len(items))
		for _, it := range items {
			topItems = append(topItems, it.ItemSales(true))
		}

		billLines := make([]models.BillLine, 0, len(bills))
		for _, b := range bills {
			billLines = append(billLines, models.BillLine{
				ID:          b.ID,
				Amount:      analytics.Money(b.TotalAmount.Decimal()),
				PaymentType: b.PaymentType,
				Time:        b.CreatedAt,
			})
		}

		return &models.DailySales{
			Date: timeutil.DateKey(r.Start),
			Summary: models.DailySummary{
				TotalRevenue:     analytics.Money(revenue),
				TotalBills:       count,
				UniqueCustomers:  count,
				AvgOrderValue:    analytics.Money(analytics.Average(revenue, count)),
				PaymentBreakdown: analytics.GroupByPaymentType(bills),
			},
			TopItems: topItems,
			Bills:    billLines,
		}, nil
	})
}

// MonthlyStats summarises month (or the last 30 days when empty) and its
// growth over the preceding calendar month. A failed comparison fetch is
// logged and reported as zero growth.
func (s *AnalyticsService) MonthlyStats(ctx context.Context, month string) (*models.MonthlyStats, error) {
	now := s.now()
	r, err := period.MonthOrLastDays(month, now, DefaultMonthlyDays)
	if err != nil {
		return nil, err
	}
	prev := period.PreviousMonth(r)

	key := cache.AnalyticsKey("monthly-stats", month, timeutil.DateKey(now))
	return cached(ctx, s.cache, key, func() (*models.MonthlyStats, error) {
		var current, previous []models.Bill
		prevOK := true

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			current, err = s.bills.ListBillsBetween(gctx, r.Start, r.End)
			return err
		})
		g.Go(func() error {
			var err error
			previous, err = s.bills.ListBillsBetween(gctx, prev.Start, prev.End)
			if err != nil {
				prevOK = false
				s.logger.Warn("previous period fetch failed, growth reported as 0",
					zap.String("month", prev.MonthToken()), zap.Error(err))
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		revenue := analytics.SumRevenue(current)
		count := analytics.CountBills(current)

		growth := 0.0
		if prevOK {
			growth = analytics.Growth(revenue, analytics.SumRevenue(previous)).InexactFloat64()
		}

		return &models.MonthlyStats{
			Revenue:       analytics.Money(revenue),
			Bills:         count,
			Customers:     count,
			AvgOrderValue: analytics.Money(analytics.Average(revenue, count)),
			Growth:        growth,
			Period: models.StatsPeriod{
				Start: r.Start,
				End:   r.End,
				Month: r.MonthToken(),
			},
		}, nil
	})
}

// TopSelling ranks menu items by quantity sold in month (or the last 30 days).
func (s *AnalyticsService) TopSelling(ctx context.Context, month string, limit int) ([]models.ItemSales, error) {
	if limit <= 0 {
		limit = analytics.DefaultTopN
	}
	if limit > MaxTopSellingLimit {
		limit = MaxTopSellingLimit
	}
	now := s.now()
	r, err := period.MonthOrLastDays(month, now, DefaultMonthlyDays)
	if err != nil {
		return nil, err
	}

	key := cache.AnalyticsKey("top-selling", month, strconv.Itoa(limit), timeutil.DateKey(now))
	return cached(ctx, s.cache, key, func() ([]models.ItemSales, error) {
		lines, err := s.bills.ListItemsBetween(ctx, r.Start, r.End)
		if err != nil {
			return nil, err
		}
		top := analytics.TopN(analytics.GroupByItem(lines), limit)
		out := make([]models.ItemSales, 0, len(top))
		for _, it := range top {
			row := it.ItemSales(false)
			row.Icon = analytics.IconFor(it.Category)
			out = append(out, row)
		}
		return out, nil
	})
}

// WeeklySales buckets the last days days (default 7) ending today.
func (s *AnalyticsService) WeeklySales(ctx context.Context, days int) (*models.WeeklySales, error) {
	if days <= 0 {
		days = DefaultWeeklyDays
	}
	if days > MaxWindowDays {
		days = MaxWindowDays
	}
	now := s.now()
	r := period.LastDays(now, days)

	key := cache.AnalyticsKey("weekly-sales", strconv.Itoa(days), timeutil.DateKey(now))
	return cached(ctx, s.cache, key, func() (*models.WeeklySales, error) {
		bills, err := s.bills.ListBillsBetween(ctx, r.Start, r.End)
		if err != nil {
			return nil, err
		}
		buckets := analytics.DailyBuckets(bills, r.Start, days)
		data := make([]models.DaySales, 0, len(buckets))
		for _, b := range buckets {
			data = append(data, b.DaySales())
		}
		return &models.WeeklySales{
			Period:  models.WeeklyPeriod{StartDate: r.Start, EndDate: r.End, Days: days},
			Data:    data,
			Summary: analytics.Summarize(buckets),
		}, nil
	})
}
