// Package stats is the pure computation core: aggregate consumption
// figures, drinking-session reconstruction and goal progress. Functions
// here never touch the database or the wall clock; callers fetch records
// and pass the current time in where a period is relative.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tkhs/beerlog/internal/store"
)

// event is a drink record with its parsed combined timestamp.
type event struct {
	store.Drink
	at time.Time
}

// parseEvents validates every record up front. Any malformed record fails
// the whole computation; partial results are never produced.
func parseEvents(drinks []store.Drink) ([]event, error) {
	events := make([]event, 0, len(drinks))
	for _, d := range drinks {
		if d.Amount <= 0 {
			return nil, fmt.Errorf("record %s: invalid amount %d", d.ID, d.Amount)
		}
		at, err := combine(d.Date, d.Time)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", d.ID, err)
		}
		events = append(events, event{Drink: d, at: at})
	}
	return events, nil
}

func combine(date, timeOfDay string) (time.Time, error) {
	layout := "2006-01-02T15:04"
	if strings.Count(timeOfDay, ":") == 2 {
		layout = "2006-01-02T15:04:05"
	}
	t, err := time.Parse(layout, date+"T"+timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %sT%s", date, timeOfDay)
	}
	return t, nil
}

// Compute derives the full statistics object from a record set and the can
// configuration. Empty input yields an all-zero result and no error.
func Compute(drinks []store.Drink, pricing store.CanPricing) (BeerStats, error) {
	events, err := parseEvents(drinks)
	if err != nil {
		return BeerStats{}, err
	}

	var st BeerStats
	cansPerDay := make(map[string]int)
	for _, e := range events {
		st.TotalAmount += e.Amount
		st.TotalCans++
		switch e.Amount {
		case Can350:
			st.Can350Count++
		case Can500:
			st.Can500Count++
		}
		cansPerDay[e.Date]++
	}

	st.TotalCost = st.Can350Count*pricing.Can350.Price + st.Can500Count*pricing.Can500.Price
	st.TotalAlcohol = float64(st.Can350Count)*pricing.Can350.Alcohol + float64(st.Can500Count)*pricing.Can500.Alcohol

	st.DaysWithBeer = len(cansPerDay)
	if st.DaysWithBeer > 0 {
		st.AveragePerDay = float64(st.TotalAmount) / float64(st.DaysWithBeer)
		st.AverageCansPerDay = float64(st.TotalCans) / float64(st.DaysWithBeer)
	}
	for _, n := range cansPerDay {
		if n > st.MaxCansInDay {
			st.MaxCansInDay = n
		}
	}

	st.Pace = paceFromEvents(events)
	return st, nil
}

// DailySeries aggregates consumption per calendar day, ordered by date.
func DailySeries(drinks []store.Drink) ([]DailyPoint, error) {
	if _, err := parseEvents(drinks); err != nil {
		return nil, err
	}

	byDay := make(map[string]*DailyPoint)
	for _, d := range drinks {
		p, ok := byDay[d.Date]
		if !ok {
			p = &DailyPoint{Date: d.Date}
			byDay[d.Date] = p
		}
		p.Amount += d.Amount
		p.Cans++
		switch d.Amount {
		case Can350:
			p.Can350++
		case Can500:
			p.Can500++
		}
	}

	series := make([]DailyPoint, 0, len(byDay))
	for _, p := range byDay {
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}

// HourlyPattern buckets consumption by hour of day. The result always has
// exactly 24 entries, hours 0 through 23 in order.
func HourlyPattern(drinks []store.Drink) ([]HourlyPoint, error) {
	events, err := parseEvents(drinks)
	if err != nil {
		return nil, err
	}

	pattern := make([]HourlyPoint, 24)
	for h := range pattern {
		pattern[h].Hour = h
	}
	for _, e := range events {
		h := e.at.Hour()
		pattern[h].Amount += e.Amount
		pattern[h].Cans++
	}
	return pattern, nil
}

// WeeklyTrend aggregates consumption per ISO week, ordered by week.
func WeeklyTrend(drinks []store.Drink) ([]WeeklyPoint, error) {
	events, err := parseEvents(drinks)
	if err != nil {
		return nil, err
	}

	byWeek := make(map[string]*WeeklyPoint)
	for _, e := range events {
		year, week := e.at.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		p, ok := byWeek[key]
		if !ok {
			p = &WeeklyPoint{Week: key}
			byWeek[key] = p
		}
		p.Amount += e.Amount
		p.Cans++
	}

	trend := make([]WeeklyPoint, 0, len(byWeek))
	for _, p := range byWeek {
		trend = append(trend, *p)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Week < trend[j].Week })
	return trend, nil
}

// Preference returns the share of 350ml versus 500ml cans. Both percentages
// are zero when no sized cans exist.
func Preference(drinks []store.Drink) SizePreference {
	var n350, n500 int
	for _, d := range drinks {
		switch d.Amount {
		case Can350:
			n350++
		case Can500:
			n500++
		}
	}
	total := n350 + n500
	if total == 0 {
		return SizePreference{}
	}
	return SizePreference{
		Can350Percentage: float64(n350) / float64(total) * 100,
		Can500Percentage: float64(n500) / float64(total) * 100,
	}
}
