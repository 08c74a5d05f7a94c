package models

import (
	"time"

	"github.com/google/uuid"
)

// Calendar day statuses. A status is always derived, never stored.
const (
	DayUpcoming    = "upcoming"
	DayOpenNoSales = "open-no-sales"
	DayOpen        = "open"
)

type DayStatus struct {
	Day          int     `json:"day"`
	Date         string  `json:"date"`
	IsUpcoming   bool    `json:"isUpcoming"`
	HasSales     bool    `json:"hasSales"`
	TotalRevenue float64 `json:"totalRevenue"`
	TotalBills   int     `json:"totalBills"`
	Status       string  `json:"status"`
}

type ItemOrder struct {
	BillID   uuid.UUID `json:"billId"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
	Time     time.Time `json:"time"`
}

type ItemSales struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	TotalQuantity int         `json:"totalQuantity"`
	TotalRevenue  float64     `json:"totalRevenue"`
	Orders        []ItemOrder `json:"orders,omitempty"`
	Icon          string      `json:"icon,omitempty"`
}

type DailySummary struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalBills   int     `json:"totalBills"`
	// UniqueCustomers mirrors TotalBills: bills carry no customer identity.
	UniqueCustomers  int            `json:"uniqueCustomers"`
	AvgOrderValue    float64        `json:"avgOrderValue"`
	PaymentBreakdown map[string]int `json:"paymentBreakdown"`
}

type BillLine struct {
	ID          uuid.UUID `json:"id"`
	Amount      float64   `json:"amount"`
	PaymentType *string   `json:"paymentType"`
	Time        time.Time `json:"time"`
}

type DailySales struct {
	Date     string       `json:"date"`
	Summary  DailySummary `json:"summary"`
	TopItems []ItemSales  `json:"topItems"`
	Bills    []BillLine   `json:"bills"`
}

type StatsPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Month string    `json:"month"`
}

type MonthlyStats struct {
	Revenue       float64     `json:"revenue"`
	Bills         int         `json:"bills"`
	Customers     int         `json:"customers"`
	AvgOrderValue float64     `json:"avgOrderValue"`
	Growth        float64     `json:"growth"`
	Period        StatsPeriod `json:"period"`
}

type DaySales struct {
	Date          string  `json:"date"`
	Day           string  `json:"day"`
	Sales         float64 `json:"sales"`
	BillCount     int     `json:"billCount"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	FormattedDate string  `json:"formattedDate"`
}

type DayHighlight struct {
	Date  string  `json:"date"`
	Day   string  `json:"day"`
	Sales float64 `json:"sales"`
}

type WeeklySummary struct {
	TotalSales    float64       `json:"totalSales"`
	TotalBills    int           `json:"totalBills"`
	AvgDailySales float64       `json:"avgDailySales"`
	AvgOrderValue float64       `json:"avgOrderValue"`
	BestDay       *DayHighlight `json:"bestDay"`
	WorstDay      *DayHighlight `json:"worstDay"`
}

type WeeklyPeriod struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Days      int       `json:"days"`
}

type WeeklySales struct {
	Period  WeeklyPeriod  `json:"period"`
	Data    []DaySales    `json:"data"`
	Summary WeeklySummary `json:"summary"`
}
