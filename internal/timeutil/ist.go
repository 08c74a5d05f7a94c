package timeutil

import (
	"time"
)

// Local is the restaurant's business time zone. Defaults to IST (UTC+5:30).
var Local *time.Location

func init() {
	Local = loadIST()
}

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if Asia/Kolkata not available
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// SetLocation switches the business time zone. An unknown name leaves IST in place.
func SetLocation(name string) error {
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	Local = loc
	return nil
}

// Clock returns the current instant. Services hold one so tests can pin "today".
type Clock func() time.Time

// Now returns the current time in the business time zone
func Now() time.Time {
	return time.Now().In(Local)
}

// ToLocal converts any time to the business time zone
func ToLocal(t time.Time) time.Time {
	return t.In(Local)
}

// ParseLocal parses a time string in the business time zone
func ParseLocal(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, Local)
}

// StartOfDay returns 00:00:00.000 of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DateKey formats t's calendar day as YYYY-MM-DD in the business time zone.
func DateKey(t time.Time) string {
	return t.In(Local).Format(DateLayout)
}

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	ShortLayout = "2 Jan"
)
