package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period identifies one of the fixed reporting windows the API serves.
type Period string

const (
	PeriodYesterday Period = "yesterday"
	PeriodLastWeek  Period = "last-week"
	PeriodLastMonth Period = "last-month"
)

// Periods lists every known period, in the order the preload job walks them.
func Periods() []Period {
	return []Period{PeriodYesterday, PeriodLastWeek, PeriodLastMonth}
}

func (p Period) Valid() bool {
	switch p {
	case PeriodYesterday, PeriodLastWeek, PeriodLastMonth:
		return true
	}
	return false
}

// DateRange is an inclusive [Start, End] window, both endpoints in the
// deployment's business time zone. Start is never after End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StatsReport is the aggregation result for one period. It is built once by
// the aggregator and never mutated afterwards, so it is safe to share between
// the cache and concurrent readers.
type StatsReport struct {
	TotalOrders          int                        `json:"total_orders"`
	OrdersPerStatus      map[string]int             `json:"orders_per_status"`
	NetValue             decimal.Decimal            `json:"net_value"`
	NetShipping          decimal.Decimal            `json:"net_shipping"`
	NetValuePerStatus    map[string]decimal.Decimal `json:"net_value_per_status"`
	NetShippingPerStatus map[string]decimal.Decimal `json:"net_shipping_per_status"`
	Type                 Period                     `json:"type"`
	DateStart            string                     `json:"date_start"`
	DateEnd              string                     `json:"date_end"`
}

// DateFormat is the layout used for the human-readable report boundaries.
const DateFormat = "02-01-2006"
