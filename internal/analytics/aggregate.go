// Package analytics reduces bills and bill lines into sales summaries.
//
// All functions are pure. Money is accumulated as decimal.Decimal and only
// rounded when converted to response models.
package analytics

import (
	"sort"
	"time"

	"resto-backend/internal/models"
	"resto-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTopN is the number of items TopN keeps when the caller gives no limit.
const DefaultTopN = 5

var hundred = decimal.NewFromInt(100)

// SumRevenue adds up total_amount across bills. Unparseable amounts count as zero.
func SumRevenue(bills []models.Bill) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range bills {
		sum = sum.Add(b.TotalAmount.Decimal())
	}
	return sum
}

func CountBills(bills []models.Bill) int {
	return len(bills)
}

// Average divides revenue by count, yielding zero for an empty set.
func Average(revenue decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(count)))
}

func AvgOrderValue(bills []models.Bill) decimal.Decimal {
	return Average(SumRevenue(bills), CountBills(bills))
}

// GroupByPaymentType counts bills per payment type.
func GroupByPaymentType(bills []models.Bill) map[string]int {
	breakdown := make(map[string]int)
	for _, b := range bills {
		breakdown[b.PaymentTypeOrDefault()]++
	}
	return breakdown
}

// ItemAccumulator collects every sale of one menu item.
type ItemAccumulator struct {
	ID            uuid.UUID
	Name          string
	Category      string
	TotalQuantity int
	TotalRevenue  decimal.Decimal
	Orders        []models.BillItemDetail
}

// GroupByItem folds bill lines by menu item. The result keeps the order in
// which each item was first seen.
func GroupByItem(lines []models.BillItemDetail) []*ItemAccumulator {
	index := make(map[uuid.UUID]*ItemAccumulator)
	var order []*ItemAccumulator

	for _, line := range lines {
		acc, ok := index[line.MenuItemID]
		if !ok {
			acc = &ItemAccumulator{
				ID:           line.MenuItemID,
				Name:         line.MenuItemName,
				Category:     line.Category,
				TotalRevenue: decimal.Zero,
			}
			index[line.MenuItemID] = acc
			order = append(order, acc)
		}
		acc.TotalQuantity += line.Quantity
		acc.TotalRevenue = acc.TotalRevenue.Add(line.Price.Decimal().Mul(decimal.NewFromInt(int64(line.Quantity))))
		acc.Orders = append(acc.Orders, line)
	}
	return order
}

// SortByQuantity orders items by descending quantity. Ties keep input order.
func SortByQuantity(items []*ItemAccumulator) []*ItemAccumulator {
	sorted := make([]*ItemAccumulator, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalQuantity > sorted[j].TotalQuantity
	})
	return sorted
}

// TopN returns the n best sellers by quantity; n <= 0 means DefaultTopN.
func TopN(items []*ItemAccumulator, n int) []*ItemAccumulator {
	if n <= 0 {
		n = DefaultTopN
	}
	sorted := SortByQuantity(items)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// DayBucket is the sales of one calendar day.
type DayBucket struct {
	Date          time.Time
	Sales         decimal.Decimal
	BillCount     int
	AvgOrderValue decimal.Decimal
}

// DailyBuckets splits bills into days consecutive calendar days beginning at
// start's day. A bill lands in the day whose [00:00:00.000, 23:59:59.999]
// window holds its timestamp.
func DailyBuckets(bills []models.Bill, start time.Time, days int) []DayBucket {
	first := timeutil.StartOfDay(start)
	buckets := make([]DayBucket, 0, days)

	for i := 0; i < days; i++ {
		dayStart := first.AddDate(0, 0, i)
		dayEnd := timeutil.EndOfDay(dayStart)

		var dayBills []models.Bill
		for _, b := range bills {
			if !b.CreatedAt.Before(dayStart) && !b.CreatedAt.After(dayEnd) {
				dayBills = append(dayBills, b)
			}
		}

		sales := SumRevenue(dayBills)
		buckets = append(buckets, DayBucket{
			Date:          dayStart,
			Sales:         sales,
			BillCount:     len(dayBills),
			AvgOrderValue: Average(sales, len(dayBills)),
		})
	}
	return buckets
}

// Growth is the percentage change from previous to current rounded to two
// places. No prior revenue reads as flat.
func Growth(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}
