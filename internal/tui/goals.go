package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tkhs/beerlog/internal/stats"
	"github.com/tkhs/beerlog/internal/store"
)

type goalsModel struct {
	store  *store.Store
	width  int
	height int

	daily    stats.GoalProgress
	weekly   stats.GoalProgress
	monthly  stats.GoalProgress
	freeDays int
	goals    store.Goals

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	dailyMl     *string
	dailyCost   *string
	weeklyMl    *string
	weeklyCost  *string
	monthlyMl   *string
	monthlyCost *string
	freeTarget  *string
}

func newGoalsModel(s *store.Store) goalsModel {
	dm, dc, wm, wc, mm, mc, ft := "", "", "", "", "", "", ""
	return goalsModel{
		store:       s,
		dailyMl:     &dm,
		dailyCost:   &dc,
		weeklyMl:    &wm,
		weeklyCost:  &wc,
		monthlyMl:   &mm,
		monthlyCost: &mc,
		freeTarget:  &ft,
	}
}

func (g *goalsModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

type goalsDataMsg struct {
	daily    stats.GoalProgress
	weekly   stats.GoalProgress
	monthly  stats.GoalProgress
	freeDays int
	goals    store.Goals
}

func (g goalsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		drinks, _ := g.store.ListDrinks(store.DrinkFilter{})
		pricing := g.store.GetCanPricing()
		goals := g.store.GetGoals()
		now := time.Now()

		return goalsDataMsg{
			daily:    stats.Progress(drinks, goals.Daily, pricing, stats.PeriodDaily, now),
			weekly:   stats.Progress(drinks, goals.Weekly, pricing, stats.PeriodWeekly, now),
			monthly:  stats.Progress(drinks, goals.Monthly, pricing, stats.PeriodMonthly, now),
			freeDays: stats.FreeDaysThisWeek(drinks, now),
			goals:    goals,
		}
	}
}

func (g goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if g.formActive && g.form != nil {
		return g.updateForm(msg)
	}

	switch msg := msg.(type) {
	case goalsDataMsg:
		g.daily = msg.daily
		g.weekly = msg.weekly
		g.monthly = msg.monthly
		g.freeDays = msg.freeDays
		g.goals = msg.goals
		return g, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return g.showForm()
		}
	}
	return g, nil
}

func (g goalsModel) showForm() (goalsModel, tea.Cmd) {
	*g.dailyMl = strconv.Itoa(g.goals.Daily.MaxAmount)
	*g.dailyCost = strconv.Itoa(g.goals.Daily.MaxCost)
	*g.weeklyMl = strconv.Itoa(g.goals.Weekly.MaxAmount)
	*g.weeklyCost = strconv.Itoa(g.goals.Weekly.MaxCost)
	*g.monthlyMl = strconv.Itoa(g.goals.Monthly.MaxAmount)
	*g.monthlyCost = strconv.Itoa(g.goals.Monthly.MaxCost)
	*g.freeTarget = strconv.Itoa(g.goals.FreeDays)

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Daily limit (ml)").Value(g.dailyMl),
			huh.NewInput().Title("Daily limit (yen)").Value(g.dailyCost),
			huh.NewInput().Title("Weekly limit (ml)").Value(g.weeklyMl),
			huh.NewInput().Title("Weekly limit (yen)").Value(g.weeklyCost),
		).Title("Limits"),
		huh.NewGroup(
			huh.NewInput().Title("Monthly limit (ml)").Value(g.monthlyMl),
			huh.NewInput().Title("Monthly limit (yen)").Value(g.monthlyCost),
			huh.NewInput().Title("Alcohol-free days per week").Value(g.freeTarget),
		).Title("Monthly & Rest"),
	).WithShowHelp(true).WithShowErrors(true)

	g.formActive = true
	return g, g.form.Init()
}

func (g goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			g.formActive = false
			g.form = nil
			return g, nil
		}
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.formActive = false
		g.saveGoals()
		return g, g.refresh()
	}

	return g, cmd
}

func (g goalsModel) saveGoals() {
	goals := store.Goals{
		Daily:    store.GoalLimits{MaxAmount: atoiOr(*g.dailyMl, g.goals.Daily.MaxAmount), MaxCost: atoiOr(*g.dailyCost, g.goals.Daily.MaxCost)},
		Weekly:   store.GoalLimits{MaxAmount: atoiOr(*g.weeklyMl, g.goals.Weekly.MaxAmount), MaxCost: atoiOr(*g.weeklyCost, g.goals.Weekly.MaxCost)},
		Monthly:  store.GoalLimits{MaxAmount: atoiOr(*g.monthlyMl, g.goals.Monthly.MaxAmount), MaxCost: atoiOr(*g.monthlyCost, g.goals.Monthly.MaxCost)},
		FreeDays: atoiOr(*g.freeTarget, g.goals.FreeDays),
	}
	g.store.SetGoals(goals)
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func (g goalsModel) view() string {
	w := g.width - 4

	if g.formActive && g.form != nil {
		title := titleStyle.Render("Edit Goals")
		formView := g.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Goals"))
	rows = append(rows, "")

	for _, p := range []stats.GoalProgress{g.daily, g.weekly, g.monthly} {
		rows = append(rows, g.renderPeriod(p, w)...)
		rows = append(rows, "")
	}

	free := fmt.Sprintf("  Alcohol-free days this week: %d / %d", g.freeDays, g.goals.FreeDays)
	if g.freeDays >= g.goals.FreeDays {
		rows = append(rows, successStyle.Render(free))
	} else {
		rows = append(rows, mutedStyle.Render(free))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  e: edit limits"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (g goalsModel) renderPeriod(p stats.GoalProgress, w int) []string {
	label := p.Period.String()
	label = strings.ToUpper(label[:1]) + label[1:]
	head := subtitleStyle.Render(fmt.Sprintf("  %s", label)) + "  " + statusBadge(p.Status)
	if p.Period != stats.PeriodDaily {
		head += mutedStyle.Render(fmt.Sprintf("  (%d days left)", p.RemainingDays))
	}

	return []string{
		head,
		renderGoalBar("Amount", p.Amount, p.Limits.MaxAmount, p.AmountPercent, formatMl, w-8),
		renderGoalBar("Cost", p.Cost, p.Limits.MaxCost, p.CostPercent, formatYen, w-8),
	}
}

func statusBadge(s stats.GoalStatus) string {
	switch s {
	case stats.StatusExceeded:
		return errorStyle.Render("EXCEEDED")
	case stats.StatusDanger:
		return errorStyle.Render("DANGER")
	case stats.StatusWarning:
		return warningStyle.Render("WARNING")
	default:
		return successStyle.Render("OK")
	}
}
