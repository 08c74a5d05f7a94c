package analytics

import (
	"resto-backend/internal/models"
	"resto-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// Money rounds d to two places for a response body.
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// ItemSales converts an accumulator. Orders are carried only when withOrders is set.
func (a *ItemAccumulator) ItemSales(withOrders bool) models.ItemSales {
	out := models.ItemSales{
		ID:            a.ID,
		Name:          a.Name,
		Category:      a.Category,
		TotalQuantity: a.TotalQuantity,
		TotalRevenue:  Money(a.TotalRevenue),
	}
	if withOrders {
		out.Orders = make([]models.ItemOrder, 0, len(a.Orders))
		for _, o := range a.Orders {
			out.Orders = append(out.Orders, models.ItemOrder{
				BillID:   o.BillID,
				Quantity: o.Quantity,
				Price:    Money(o.Price.Decimal()),
				Time:     o.BillCreatedAt,
			})
		}
	}
	return out
}

// DaySales converts a bucket into its labelled response row.
func (b DayBucket) DaySales() models.DaySales {
	return models.DaySales{
		Date:          b.Date.Format(timeutil.DateLayout),
		Day:           b.Date.Format("Mon"),
		Sales:         Money(b.Sales),
		BillCount:     b.BillCount,
		AvgOrderValue: Money(b.AvgOrderValue),
		FormattedDate: b.Date.Format(timeutil.ShortLayout),
	}
}

// Summarize totals a run of buckets.
//
// The best day is the earliest day holding the highest positive sales, so a
// window without sales has none. The worst day is the earliest day holding
// the lowest sales, zero included.
func Summarize(buckets []DayBucket) models.WeeklySummary {
	total := decimal.Zero
	bills := 0
	var best, worst *DayBucket

	for i := range buckets {
		b := &buckets[i]
		total = total.Add(b.Sales)
		bills += b.BillCount

		if b.Sales.IsPositive() && (best == nil || b.Sales.GreaterThan(best.Sales)) {
			best = b
		}
		if worst == nil || b.Sales.LessThan(worst.Sales) {
			worst = b
		}
	}

	return models.WeeklySummary{
		TotalSales:    Money(total),
		TotalBills:    bills,
		AvgDailySales: Money(Average(total, len(buckets))),
		AvgOrderValue: Money(Average(total, bills)),
		BestDay:       highlight(best),
		WorstDay:      highlight(worst),
	}
}

func highlight(b *DayBucket) *models.DayHighlight {
	if b == nil {
		return nil
	}
	return &models.DayHighlight{
		Date:  b.Date.Format(timeutil.DateLayout),
		Day:   b.Date.Format("Mon"),
		Sales: Money(b.Sales),
	}
}
