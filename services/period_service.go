package services

import (
	"errors"
	"fmt"
	"log"
	"time"
)

// Month keys are "YYYY-MM". All ranges are inclusive on both ends and only
// year/month carry meaning; days never enter the arithmetic.
const monthKeyLayout = "2006-01"

// Submission errors for a requested charge range. Callers must keep the two
// cases apart: an inverted/empty range is a different user mistake than a
// range whose every month is already covered.
var (
	ErrEmptyRange       = errors.New("select at least one month")
	ErrRangeAlreadyPaid = errors.New("all months in the selected range are already paid")
)

// MonthYear is a calendar month, 1-indexed.
type MonthYear struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (m MonthYear) Valid() bool {
	return m.Month >= 1 && m.Month <= 12 && m.Year >= 1
}

// Key renders the month as "YYYY-MM".
func (m MonthYear) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Before reports chronological order.
func (m MonthYear) Before(other MonthYear) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// Next returns the following calendar month.
func (m MonthYear) Next() MonthYear {
	if m.Month == 12 {
		return MonthYear{Month: 1, Year: m.Year + 1}
	}
	return MonthYear{Month: m.Month + 1, Year: m.Year}
}

// ParseMonthKey parses a "YYYY-MM" key.
func ParseMonthKey(key string) (MonthYear, error) {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return MonthYear{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return MonthYear{Month: int(t.Month()), Year: t.Year()}, nil
}

// PaymentInterval is one already-covered payment period, month granularity,
// inclusive endpoints.
type PaymentInterval struct {
	StartMonth string `json:"start_month"`
	EndMonth   string `json:"end_month"`
}

// PaidMonthSet expands every interval month-by-month and unions the results.
// Malformed intervals are logged and skipped; a bad row must not sink the
// whole computation, even though skipping can under-count paid months.
func PaidMonthSet(history []PaymentInterval) map[string]bool {
	paid := make(map[string]bool)
	for _, interval := range history {
		start, err := ParseMonthKey(interval.StartMonth)
		if err != nil {
			log.Printf("skipping payment interval with bad start month: %v", err)
			continue
		}
		end, err := ParseMonthKey(interval.EndMonth)
		if err != nil {
			log.Printf("skipping payment interval with bad end month: %v", err)
			continue
		}
		for m := start; !end.Before(m); m = m.Next() {
			paid[m.Key()] = true
		}
	}
	return paid
}

// MonthsInRange lists every month from from to to inclusive. An inverted
// range yields nothing.
func MonthsInRange(from, to MonthYear) []MonthYear {
	if !from.Valid() || !to.Valid() || to.Before(from) {
		return nil
	}
	var months []MonthYear
	for m := from; !to.Before(m); m = m.Next() {
		months = append(months, m)
	}
	return months
}

// UnpaidMonths returns the months of [from, to] not covered by history, in
// chronological order.
func UnpaidMonths(history []PaymentInterval, from, to MonthYear) []MonthYear {
	paid := PaidMonthSet(history)
	var unpaid []MonthYear
	for _, m := range MonthsInRange(from, to) {
		if !paid[m.Key()] {
			unpaid = append(unpaid, m)
		}
	}
	return unpaid
}

// IsMonthPaid reports whether the month is already covered; paid months are
// never valid picker endpoints.
func IsMonthPaid(history []PaymentInterval, m MonthYear) bool {
	return PaidMonthSet(history)[m.Key()]
}

// ChargeAmount is the exact charge for the unpaid months.
func ChargeAmount(unpaidCount int, monthlyAmount float64) float64 {
	return float64(unpaidCount) * monthlyAmount
}

// ValidateChargeableRange resolves the months a new payment may cover.
// It rejects inverted/empty ranges and fully-paid ranges with distinct errors
// so the caller can show the right message instead of charging zero.
func ValidateChargeableRange(history []PaymentInterval, from, to MonthYear) ([]MonthYear, error) {
	months := MonthsInRange(from, to)
	if len(months) == 0 {
		return nil, ErrEmptyRange
	}
	unpaid := UnpaidMonths(history, from, to)
	if len(unpaid) == 0 {
		return nil, ErrRangeAlreadyPaid
	}
	return unpaid, nil
}
