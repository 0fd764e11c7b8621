package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tkhs/beerlog/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	pricing    store.CanPricing
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	price350   *string
	alcohol350 *string
	price500   *string
	alcohol500 *string
}

func newSettingsModel(s *store.Store) settingsModel {
	p3, a3, p5, a5 := "", "", "", ""
	return settingsModel{
		store:      s,
		price350:   &p3,
		alcohol350: &a3,
		price500:   &p5,
		alcohol500: &a5,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	pricing store.CanPricing
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{pricing: s.store.GetCanPricing()}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.pricing = msg.pricing
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.price350 = strconv.Itoa(s.pricing.Can350.Price)
	*s.alcohol350 = strconv.FormatFloat(s.pricing.Can350.Alcohol, 'f', -1, 64)
	*s.price500 = strconv.Itoa(s.pricing.Can500.Price)
	*s.alcohol500 = strconv.FormatFloat(s.pricing.Can500.Alcohol, 'f', -1, 64)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Price (yen)").Value(s.price350),
			huh.NewInput().Title("Alcohol (g)").Value(s.alcohol350),
		).Title("350ml can"),
		huh.NewGroup(
			huh.NewInput().Title("Price (yen)").Value(s.price500),
			huh.NewInput().Title("Alcohol (g)").Value(s.alcohol500),
		).Title("500ml can"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.savePricing()
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) savePricing() {
	p := s.pricing
	p.Can350.Price = atoiOr(*s.price350, p.Can350.Price)
	p.Can350.Alcohol = parseFloatOr(*s.alcohol350, p.Can350.Alcohol)
	p.Can500.Price = atoiOr(*s.price500, p.Can500.Price)
	p.Can500.Alcohol = parseFloatOr(*s.alcohol500, p.Can500.Alcohol)
	s.store.SetCanPricing(p)
}

func parseFloatOr(str string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil || f < 0 {
		return fallback
	}
	return f
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render("  Can configuration"))
	rows = append(rows, canRow("350ml", s.pricing.Can350))
	rows = append(rows, canRow("500ml", s.pricing.Can500))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  Press enter to edit"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func canRow(label string, spec store.CanSpec) string {
	return fmt.Sprintf("  %s %-8s %s · %sg alcohol",
		sizeGlyphFor(label),
		label,
		highlightStyle.Render(formatYen(spec.Price)),
		highlightStyle.Render(strconv.FormatFloat(spec.Alcohol, 'f', -1, 64)),
	)
}

func sizeGlyphFor(label string) string {
	if label == "350ml" {
		return secondaryStyle.Render("◖")
	}
	return accentStyle.Render("◗")
}
