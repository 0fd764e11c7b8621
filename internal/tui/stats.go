package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tkhs/beerlog/internal/stats"
	"github.com/tkhs/beerlog/internal/store"
)

type chartMode int

const (
	chartDaily chartMode = iota
	chartHourly
)

const chartDays = 14

type statsModel struct {
	store  *store.Store
	width  int
	height int

	mode   chartMode
	offset int // 14-day blocks back from today (0 = current)

	summary stats.BeerStats
	series  []stats.DailyPoint
	hourly  []stats.HourlyPoint
	pref    stats.SizePreference
	loadErr error

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statsDataMsg struct {
	summary stats.BeerStats
	series  []stats.DailyPoint
	hourly  []stats.HourlyPoint
	pref    stats.SizePreference
	err     error
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		drinks, err := m.store.ListDrinks(store.DrinkFilter{})
		if err != nil {
			return statsDataMsg{err: err}
		}
		pricing := m.store.GetCanPricing()

		summary, err := stats.Compute(drinks, pricing)
		if err != nil {
			return statsDataMsg{err: err}
		}
		series, err := stats.DailySeries(drinks)
		if err != nil {
			return statsDataMsg{err: err}
		}
		hourly, err := stats.HourlyPattern(drinks)
		if err != nil {
			return statsDataMsg{err: err}
		}

		return statsDataMsg{
			summary: summary,
			series:  series,
			hourly:  hourly,
			pref:    stats.Preference(drinks),
		}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.loadErr = msg.err
		if msg.err == nil {
			m.summary = msg.summary
			m.series = msg.series
			m.hourly = msg.hourly
			m.pref = msg.pref
			m.buildChart()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if m.mode == chartDaily {
				m.offset++
				m.buildChart()
			}
			return m, nil
		case key.Matches(msg, keys.Right):
			if m.mode == chartDaily && m.offset > 0 {
				m.offset--
				m.buildChart()
			}
			return m, nil
		case key.Matches(msg, keys.Tab):
			if m.mode == chartDaily {
				m.mode = chartHourly
			} else {
				m.mode = chartDaily
			}
			m.offset = 0
			m.buildChart()
			return m, nil
		}
	}
	return m, nil
}

func (m statsModel) dateRange() (time.Time, time.Time) {
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).
		AddDate(0, 0, 1-chartDays*m.offset)
	return end.AddDate(0, 0, -chartDays), end
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 32 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	if m.mode == chartHourly {
		m.buildHourlyChart()
		return
	}

	byDate := make(map[string]stats.DailyPoint, len(m.series))
	for _, p := range m.series {
		byDate[p.Date] = p
	}

	from, to := m.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		label := d.Format("02")
		p := byDate[d.Format("2006-01-02")]

		values := []barchart.BarValue{
			{Name: "350ml", Value: float64(p.Can350 * stats.Can350), Style: lipgloss.NewStyle().Foreground(colorSecondary)},
			{Name: "500ml", Value: float64(p.Can500 * stats.Can500), Style: lipgloss.NewStyle().Foreground(colorAccent)},
		}
		if other := p.Amount - p.Can350*stats.Can350 - p.Can500*stats.Can500; other > 0 {
			values = append(values, barchart.BarValue{
				Name: "other", Value: float64(other), Style: lipgloss.NewStyle().Foreground(colorSubtle),
			})
		}

		bars = append(bars, barchart.BarData{Label: label, Values: values})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m *statsModel) buildHourlyChart() {
	var bars []barchart.BarData
	for _, h := range m.hourly {
		bars = append(bars, barchart.BarData{
			Label: fmt.Sprintf("%02d", h.Hour),
			Values: []barchart.BarValue{
				{Name: "cans", Value: float64(h.Cans), Style: lipgloss.NewStyle().Foreground(colorPrimary)},
			},
		})
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	if m.loadErr != nil {
		return panelStyle.Width(w).Render(
			errorStyle.Render("Unable to compute statistics: " + m.loadErr.Error()),
		)
	}

	// Mode tabs
	dailyTab := inactiveTabStyle.Render("Daily")
	hourlyTab := inactiveTabStyle.Render("Hourly")
	var rangeLabel string
	if m.mode == chartDaily {
		dailyTab = activeTabStyle.Render("Daily")
		from, to := m.dateRange()
		rangeLabel = mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))
	} else {
		hourlyTab = activeTabStyle.Render("Hourly")
		rangeLabel = mutedStyle.Render("all records by hour of day")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", dailyTab, hourlyTab, "  ", rangeLabel,
	)

	chartView := m.chart.View()
	summary := m.renderSummary()
	pace := m.renderPace()

	nav := mutedStyle.Render("  ←/→: navigate  tab: switch chart")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", summary, "", pace, "", nav,
		),
	)
}

func (m statsModel) renderSummary() string {
	s := m.summary
	if s.TotalCans == 0 {
		return mutedStyle.Render("  No records yet")
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Totals"))
	rows = append(rows, fmt.Sprintf("  %-18s %s (%d cans: %d×350ml, %d×500ml)",
		"Consumed", formatMl(s.TotalAmount), s.TotalCans, s.Can350Count, s.Can500Count))
	rows = append(rows, fmt.Sprintf("  %-18s %s", "Spent", formatYen(s.TotalCost)))
	rows = append(rows, fmt.Sprintf("  %-18s %.0fg pure alcohol", "Alcohol", s.TotalAlcohol))
	rows = append(rows, fmt.Sprintf("  %-18s %.0fml / %.1f cans over %d days (max %d cans)",
		"Per drinking day", s.AveragePerDay, s.AverageCansPerDay, s.DaysWithBeer, s.MaxCansInDay))
	rows = append(rows, fmt.Sprintf("  %-18s 350ml %.0f%%  ·  500ml %.0f%%",
		"Preference", m.pref.Can350Percentage, m.pref.Can500Percentage))

	return strings.Join(rows, "\n")
}

func (m statsModel) renderPace() string {
	p := m.summary.Pace
	if len(p.Sessions) == 0 {
		return mutedStyle.Render("  No multi-can sessions yet")
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Drinking Pace"))
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-8s %10s %10s %10s %9s", "Size", "Average", "Fastest", "Slowest", "Samples")))
	rows = append(rows, paceRow("350ml", p.Can350))
	rows = append(rows, paceRow("500ml", p.Can500))

	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render("  Recent sessions"))
	sessions := p.Sessions
	if len(sessions) > 3 {
		sessions = sessions[len(sessions)-3:]
	}
	for _, sess := range sessions {
		rows = append(rows, fmt.Sprintf("  %s %s–%s  %d cans in %s",
			sess.StartTime.Format("2006-01-02"),
			sess.StartTime.Format("15:04"),
			sess.EndTime.Format("15:04"),
			len(sess.Cans),
			formatMinutes(sess.TotalDuration),
		))
	}

	return strings.Join(rows, "\n")
}

func paceRow(label string, ps stats.PaceStats) string {
	if ps.TotalSessions == 0 {
		return fmt.Sprintf("  %-8s %s", label, mutedStyle.Render("no samples"))
	}
	return fmt.Sprintf("  %-8s %10s %10s %10s %9d",
		label,
		formatMinutes(ps.AverageTime),
		formatMinutes(ps.FastestTime),
		formatMinutes(ps.SlowestTime),
		ps.TotalSessions,
	)
}
