package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tkhs/beerlog/internal/stats"
	"github.com/tkhs/beerlog/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	shownDate string // date the loaded data belongs to, for midnight rollover

	todayCans   int
	todayAmount int
	daily       stats.GoalProgress
	freeDays    int
	freeTarget  int
	recent      []store.Drink
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{store: s}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	date        string
	todayCans   int
	todayAmount int
	daily       stats.GoalProgress
	freeDays    int
	freeTarget  int
	recent      []store.Drink
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		date := now.Format("2006-01-02")

		cans, amount, _ := d.store.CountForDate(date)

		// This week's records cover both the daily window and the
		// alcohol-free-day count.
		weekStart := now.AddDate(0, 0, -int(now.Weekday())).Format("2006-01-02")
		week, _ := d.store.ListDrinks(store.DrinkFilter{From: weekStart})

		pricing := d.store.GetCanPricing()
		goals := d.store.GetGoals()

		recent, _ := d.store.ListDrinks(store.DrinkFilter{Limit: 5})

		return dashboardDataMsg{
			date:        date,
			todayCans:   cans,
			todayAmount: amount,
			daily:       stats.Progress(week, goals.Daily, pricing, stats.PeriodDaily, now),
			freeDays:    stats.FreeDaysThisWeek(week, now),
			freeTarget:  goals.FreeDays,
			recent:      recent,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.shownDate = msg.date
		d.todayCans = msg.todayCans
		d.todayAmount = msg.todayAmount
		d.daily = msg.daily
		d.freeDays = msg.freeDays
		d.freeTarget = msg.freeTarget
		d.recent = msg.recent
		return d, nil

	case tickMsg:
		// Reload when the calendar day rolls over under us.
		if d.shownDate != "" && d.shownDate != time.Time(msg).Format("2006-01-02") {
			return d, d.loadData()
		}
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Small):
			return d, d.quickLog(stats.Can350)
		case key.Matches(msg, keys.Large):
			return d, d.quickLog(stats.Can500)
		}
	}
	return d, nil
}

func (d dashboardModel) quickLog(size int) tea.Cmd {
	return func() tea.Msg {
		drink, err := d.store.AddDrink(fmt.Sprintf("%dml can", size), size, today(), nowClock(), "")
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return drinkLoggedMsg{drink: drink}
	}
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	todayPanel := d.renderTodayPanel(contentWidth)
	goalPanel := d.renderGoalPanel(contentWidth)
	recentPanel := d.renderRecentPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, todayPanel, goalPanel, recentPanel)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	count := bigStatStyle.Width(w - 6).Render(fmt.Sprintf("%d 🍺", d.todayCans))

	detail := subtitleStyle.Width(w - 6).Align(lipgloss.Center).Render(
		fmt.Sprintf("%s today · %s", formatMl(d.todayAmount), formatYen(d.daily.Cost)),
	)
	hint := mutedStyle.Width(w - 6).Align(lipgloss.Center).Render("s: log 350ml  b: log 500ml")

	content := lipgloss.JoinVertical(lipgloss.Center, count, detail, hint)
	if d.todayCans > 0 {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderGoalPanel(w int) string {
	title := titleStyle.Render("Daily Goal")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, renderGoalBar("Amount", d.daily.Amount, d.daily.Limits.MaxAmount, d.daily.AmountPercent, formatMl, w-8))
	rows = append(rows, renderGoalBar("Cost", d.daily.Cost, d.daily.Limits.MaxCost, d.daily.CostPercent, formatYen, w-8))
	rows = append(rows, "")

	free := fmt.Sprintf("  Alcohol-free days this week: %d / %d", d.freeDays, d.freeTarget)
	if d.freeDays >= d.freeTarget {
		rows = append(rows, successStyle.Render(free))
	} else {
		rows = append(rows, mutedStyle.Render(free))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Nothing logged yet. Press s or b to log a can."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, r := range d.recent {
		size := sizeGlyph(r.Amount)
		row := fmt.Sprintf("  %s %s  %s %-6s %s", r.Date, r.Time, size, fmt.Sprintf("%dml", r.Amount), r.Name)
		rows = append(rows, normalItemStyle.Render(row))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderGoalBar draws a labelled progress bar colored by how close the
// value is to its limit.
func renderGoalBar(label string, current, limit int, percent float64, format func(int) string, width int) string {
	barWidth := width - 30
	if barWidth < 10 {
		barWidth = 10
	}

	filled := int(percent / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	style := successStyle
	switch {
	case percent >= 100:
		style = errorStyle
	case percent >= 90:
		style = errorStyle
	case percent >= 70:
		style = warningStyle
	}

	bar := style.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))

	return fmt.Sprintf("  %-7s %s %s / %s", label, bar, format(current), format(limit))
}

func sizeGlyph(amount int) string {
	switch amount {
	case stats.Can350:
		return secondaryStyle.Render("◖")
	case stats.Can500:
		return accentStyle.Render("◗")
	default:
		return mutedStyle.Render("·")
	}
}
