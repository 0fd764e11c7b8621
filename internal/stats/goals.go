package stats

import (
	"time"

	"github.com/tkhs/beerlog/internal/store"
)

// Period selects the goal-tracking window.
type Period int

const (
	PeriodDaily Period = iota
	PeriodWeekly
	PeriodMonthly
)

func (p Period) String() string {
	switch p {
	case PeriodWeekly:
		return "weekly"
	case PeriodMonthly:
		return "monthly"
	default:
		return "daily"
	}
}

// GoalStatus classifies progress against a limit.
type GoalStatus string

const (
	StatusSafe     GoalStatus = "safe"
	StatusWarning  GoalStatus = "warning"
	StatusDanger   GoalStatus = "danger"
	StatusExceeded GoalStatus = "exceeded"
)

// GoalProgress is the consumption so far in one period measured against its
// configured limits.
type GoalProgress struct {
	Period        Period
	Amount        int // ml so far
	Cost          int // yen so far
	Limits        store.GoalLimits
	AmountPercent float64
	CostPercent   float64
	Status        GoalStatus
	DaysInPeriod  int
	RemainingDays int
}

// Progress measures consumption in the period containing now against the
// given limits. now is a parameter so the computation stays deterministic.
func Progress(drinks []store.Drink, limits store.GoalLimits, pricing store.CanPricing, period Period, now time.Time) GoalProgress {
	start, end := periodWindow(period, now)
	today := now.Format("2006-01-02")

	p := GoalProgress{Period: period, Limits: limits}
	for _, d := range drinks {
		if period == PeriodDaily {
			// The daily window is an exact date-string match.
			if d.Date != today {
				continue
			}
		} else {
			day, err := time.Parse("2006-01-02", d.Date)
			if err != nil || day.Before(start) || !day.Before(end) {
				continue
			}
		}
		p.Amount += d.Amount
		switch d.Amount {
		case Can350:
			p.Cost += pricing.Can350.Price
		case Can500:
			p.Cost += pricing.Can500.Price
		}
	}

	if limits.MaxAmount > 0 {
		p.AmountPercent = float64(p.Amount) / float64(limits.MaxAmount) * 100
	}
	if limits.MaxCost > 0 {
		p.CostPercent = float64(p.Cost) / float64(limits.MaxCost) * 100
	}

	worst := p.AmountPercent
	if p.CostPercent > worst {
		worst = p.CostPercent
	}
	switch {
	case worst >= 100:
		p.Status = StatusExceeded
	case worst >= 90:
		p.Status = StatusDanger
	case worst >= 70:
		p.Status = StatusWarning
	default:
		p.Status = StatusSafe
	}

	p.DaysInPeriod = int(end.Sub(start).Hours() / 24)
	elapsed := int(now.Sub(start).Hours()/24) + 1
	if remaining := p.DaysInPeriod - elapsed; remaining > 0 {
		p.RemainingDays = remaining
	}
	return p
}

// FreeDaysThisWeek counts alcohol-free days from the start of the current
// week (Sunday) through today.
func FreeDaysThisWeek(drinks []store.Drink, now time.Time) int {
	start, _ := periodWindow(PeriodWeekly, now)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	logged := make(map[string]bool)
	for _, d := range drinks {
		logged[d.Date] = true
	}

	free := 0
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		if !logged[day.Format("2006-01-02")] {
			free++
		}
	}
	return free
}

// periodWindow returns the half-open [start, end) window containing now.
// Weeks start on Sunday.
func periodWindow(period Period, now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case PeriodWeekly:
		start := midnight.AddDate(0, 0, -int(now.Weekday()))
		return start, start.AddDate(0, 0, 7)
	case PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		return midnight, midnight.AddDate(0, 0, 1)
	}
}
