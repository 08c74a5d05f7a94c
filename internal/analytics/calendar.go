package analytics

import (
	"time"

	"resto-backend/internal/models"
	"resto-backend/internal/period"
	"resto-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

type dayTotals struct {
	revenue decimal.Decimal
	bills   int
}

// BuildCalendar returns one entry per day of month in ascending order.
//
// Days after today's date are upcoming regardless of recorded sales. Every
// other day is open when it has at least one bill and open-no-sales otherwise.
// Bills are keyed by their calendar date in the month's location.
func BuildCalendar(month period.Range, bills []models.Bill, today time.Time) []models.DayStatus {
	loc := month.Start.Location()
	todayStart := timeutil.StartOfDay(today.In(loc))

	totals := make(map[string]*dayTotals)
	for _, b := range bills {
		key := b.CreatedAt.In(loc).Format(timeutil.DateLayout)
		t, ok := totals[key]
		if !ok {
			t = &dayTotals{revenue: decimal.Zero}
			totals[key] = t
		}
		t.revenue = t.revenue.Add(b.TotalAmount.Decimal())
		t.bills++
	}

	days := make([]models.DayStatus, 0, 31)
	for d := month.Start; !d.After(month.End); d = d.AddDate(0, 0, 1) {
		key := d.Format(timeutil.DateLayout)
		entry := models.DayStatus{Day: d.Day(), Date: key}

		if t, ok := totals[key]; ok {
			entry.HasSales = t.bills > 0
			entry.TotalRevenue = Money(t.revenue)
			entry.TotalBills = t.bills
		}

		switch {
		case d.After(todayStart):
			entry.IsUpcoming = true
			entry.Status = models.DayUpcoming
		case entry.HasSales:
			entry.Status = models.DayOpen
		default:
			entry.Status = models.DayOpenNoSales
		}
		days = append(days, entry)
	}
	return days
}
