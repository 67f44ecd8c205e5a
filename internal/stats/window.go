package stats

import (
	"errors"
	"time"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/types/stats"
)

var ErrInvalidPeriod = errors.New("invalid period")

// ResolveWindow maps a period to its inclusive [start, end] range, computed
// in the business time zone so day, week and month boundaries match the
// shop's local calendar. Weeks run Monday through Sunday.
func ResolveWindow(period stats.Period, now time.Time, loc *time.Location) (stats.DateRange, error) {
	local := now.In(loc)

	switch period {
	case stats.PeriodYesterday:
		y := local.AddDate(0, 0, -1)
		return dayRange(y, y, loc), nil

	case stats.PeriodLastWeek:
		// Weekday is Sunday-based; shift so Monday is 0.
		offset := int(local.Weekday()+6) % 7
		monday := local.AddDate(0, 0, -offset-7)
		return dayRange(monday, monday.AddDate(0, 0, 6), loc), nil

	case stats.PeriodLastMonth:
		firstOfThis := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		firstOfLast := firstOfThis.AddDate(0, -1, 0)
		return dayRange(firstOfLast, firstOfThis.AddDate(0, 0, -1), loc), nil
	}

	return stats.DateRange{}, ErrInvalidPeriod
}

// dayRange spans from 00:00:00 on the first day to 23:59:59 on the last.
func dayRange(first, last time.Time, loc *time.Location) stats.DateRange {
	return stats.DateRange{
		Start: time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc),
		End:   time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, loc),
	}
}
