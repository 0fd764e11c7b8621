package store

import "time"

// Drink is one logged drinking event. Date and Time are kept as the local
// calendar strings they were entered with (YYYY-MM-DD and HH:MM[:SS]); the
// stats package combines them for ordering and no timezone conversion
// happens anywhere.
type Drink struct {
	ID        string
	Name      string
	Amount    int // ml
	Date      string
	Time      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// CanSpec is the per-size configuration for one can size.
type CanSpec struct {
	Price   int     // yen per can
	Alcohol float64 // grams of pure alcohol per can
}

// CanPricing maps the two supported can sizes to their configuration.
type CanPricing struct {
	Can350 CanSpec
	Can500 CanSpec
}

// DefaultCanPricing matches the seeded settings rows.
var DefaultCanPricing = CanPricing{
	Can350: CanSpec{Price: 204, Alcohol: 14},
	Can500: CanSpec{Price: 268, Alcohol: 20},
}

// GoalLimits is the configured consumption ceiling for one period.
type GoalLimits struct {
	MaxAmount int // ml
	MaxCost   int // yen
}

// Goals holds all configured limits.
type Goals struct {
	Daily    GoalLimits
	Weekly   GoalLimits
	Monthly  GoalLimits
	FreeDays int // target alcohol-free days per week
}

// DefaultGoals matches the seeded settings rows.
var DefaultGoals = Goals{
	Daily:    GoalLimits{MaxAmount: 1000, MaxCost: 1000},
	Weekly:   GoalLimits{MaxAmount: 5000, MaxCost: 5000},
	Monthly:  GoalLimits{MaxAmount: 20000, MaxCost: 20000},
	FreeDays: 2,
}

// DrinkFilter is used to filter drinks in queries.
type DrinkFilter struct {
	From   string // inclusive date, YYYY-MM-DD
	To     string // exclusive date, YYYY-MM-DD
	Amount int    // exact size match when > 0
	Limit  int
}

// DailyCount is the aggregated row count per calendar day.
type DailyCount struct {
	Date   string
	Amount int
	Cans   int
}
