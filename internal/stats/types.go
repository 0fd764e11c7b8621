package stats

import "time"

// Supported can sizes in ml. Other volumes can be logged; they count toward
// totals and session membership but never toward size-specific figures.
const (
	Can350 = 350
	Can500 = 500
)

// GapThresholdMinutes is the inter-drink gap that separates one drinking
// session from the next. A gap strictly greater than this splits the
// session; a gap of exactly 180 minutes keeps it together.
const GapThresholdMinutes = 180.0

// BeerStats is the full aggregate picture over a set of drink records.
type BeerStats struct {
	TotalAmount       int // ml, all records
	TotalCans         int
	Can350Count       int
	Can500Count       int
	TotalCost         int     // yen, sized cans only
	TotalAlcohol      float64 // grams, sized cans only
	AveragePerDay     float64 // ml per day with at least one record
	AverageCansPerDay float64
	DaysWithBeer      int
	MaxCansInDay      int
	Pace              DrinkingPaceStats
}

// DrinkingPaceStats holds the reconstructed sessions and the per-size
// pacing summaries derived from them.
type DrinkingPaceStats struct {
	Can350   PaceStats
	Can500   PaceStats
	Sessions []Session
}

// PaceStats summarizes time-to-next-can intervals for one can size.
// TotalSessions counts interval samples rather than sessions; the name is
// kept for compatibility with the exported statistics contract.
type PaceStats struct {
	AverageTime   float64 // minutes
	FastestTime   float64
	SlowestTime   float64
	TotalSessions int
}

// Session is a maximal run of same-day drinks with no gap over the
// threshold. Only sessions with two or more cans are ever emitted.
type Session struct {
	StartTime     time.Time
	EndTime       time.Time
	TotalDuration float64 // minutes, end minus start
	Cans          []Can
}

// Can is one drink inside a session. Duration is the minutes until the next
// can in the same session, nil for the last can.
type Can struct {
	Size     int // raw ml
	Time     time.Time
	Duration *float64
}

// DailyPoint is one day's consumption in the daily series.
type DailyPoint struct {
	Date   string
	Amount int
	Cans   int
	Can350 int
	Can500 int
}

// HourlyPoint is one hour-of-day bucket.
type HourlyPoint struct {
	Hour   int
	Amount int
	Cans   int
}

// WeeklyPoint is one ISO-week bucket.
type WeeklyPoint struct {
	Week   string // e.g. 2025-W03
	Amount int
	Cans   int
}

// SizePreference is the share of sized cans per size, in percent.
type SizePreference struct {
	Can350Percentage float64
	Can500Percentage float64
}
