package tui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tkhs/beerlog/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewRecords
	viewStats
	viewGoals
	viewSettings
)

var viewNames = []string{"Dashboard", "Records", "Stats", "Goals", "Settings"}

// --- Messages ---

type drinkLoggedMsg struct {
	drink *store.Drink
}

type drinkDeletedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatYen(n int) string {
	return "¥" + humanize.Comma(int64(n))
}

func formatMl(n int) string {
	return humanize.Comma(int64(n)) + "ml"
}

// formatMinutes renders a minute count like "28m" or "2h 05m".
func formatMinutes(m float64) string {
	total := int(m + 0.5)
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func nowClock() string {
	return time.Now().Format("15:04")
}
