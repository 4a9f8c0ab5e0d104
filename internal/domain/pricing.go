package domain

import (
	"math"
	"time"
)

// PriceBreakdown of a booking, in whole currency units.
type PriceBreakdown struct {
	DailyRate     float64
	Days          int
	BasePrice     float64
	TaxAmount     float64
	TotalAmount   float64
	AdvanceAmount float64
	BalanceAmount float64
}

// Pricing holds the business multipliers. Values come from configuration.
type Pricing struct {
	TaxRate     float64
	AdvanceRate float64
}

// Compute prices durationHours of rental. Every started day is charged in full.
//
//	base    = dailyRate * ceil(hours/24)
//	tax     = round(base * TaxRate)
//	total   = base + tax
//	advance = round(total * AdvanceRate)
//	balance = total - advance
func (p Pricing) Compute(dailyRate float64, durationHours int) PriceBreakdown {
	days := BillableDays(durationHours)
	base := dailyRate * float64(days)
	tax := math.Round(base * p.TaxRate)
	total := base + tax
	advance := math.Round(total * p.AdvanceRate)

	return PriceBreakdown{
		DailyRate:     dailyRate,
		Days:          days,
		BasePrice:     base,
		TaxAmount:     tax,
		TotalAmount:   total,
		AdvanceAmount: advance,
		BalanceAmount: total - advance,
	}
}

// BillableDays is ceil(hours/24).
func BillableDays(durationHours int) int {
	if durationHours <= 0 {
		return 0
	}
	return (durationHours + 23) / 24
}

// DurationHours returns the number of started hours in [start, end).
func DurationHours(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()))
}
