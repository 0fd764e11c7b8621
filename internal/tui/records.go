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

type recordsModel struct {
	store  *store.Store
	width  int
	height int

	drinks []store.Drink
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"

	// Form field pointers (survive value copies)
	formName  *string
	formSize  *string
	formDate  *string
	formTime  *string
	formNotes *string

	editingID string
}

func newRecordsModel(s *store.Store) recordsModel {
	name, size, date, tod, notes := "", "350", "", "", ""
	return recordsModel{
		store:     s,
		formName:  &name,
		formSize:  &size,
		formDate:  &date,
		formTime:  &tod,
		formNotes: &notes,
	}
}

func (r *recordsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type recordsDataMsg struct {
	drinks []store.Drink
}

func (r recordsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		drinks, _ := r.store.ListDrinks(store.DrinkFilter{Limit: 200})
		return recordsDataMsg{drinks: drinks}
	}
}

func (r recordsModel) update(msg tea.Msg) (recordsModel, tea.Cmd) {
	if r.formActive && r.form != nil {
		return r.updateForm(msg)
	}

	switch msg := msg.(type) {
	case recordsDataMsg:
		r.drinks = msg.drinks
		if r.cursor >= len(r.drinks) {
			r.cursor = max(0, len(r.drinks)-1)
		}
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if r.cursor > 0 {
				r.cursor--
			}
		case key.Matches(msg, keys.Down):
			if r.cursor < len(r.drinks)-1 {
				r.cursor++
			}
		case key.Matches(msg, keys.New):
			return r.showForm("new")
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			if len(r.drinks) > 0 {
				return r.showForm("edit")
			}
		case key.Matches(msg, keys.Delete):
			if len(r.drinks) > 0 {
				id := r.drinks[r.cursor].ID
				return r, func() tea.Msg {
					if err := r.store.DeleteDrink(id); err != nil {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
					return drinkDeletedMsg{}
				}
			}
		}
	}
	return r, nil
}

func (r recordsModel) showForm(formType string) (recordsModel, tea.Cmd) {
	r.formType = formType
	if formType == "edit" {
		d := r.drinks[r.cursor]
		r.editingID = d.ID
		*r.formName = d.Name
		*r.formSize = strconv.Itoa(d.Amount)
		*r.formDate = d.Date
		*r.formTime = d.Time
		*r.formNotes = d.Notes
	} else {
		*r.formName = ""
		*r.formSize = "350"
		*r.formDate = today()
		*r.formTime = nowClock()
		*r.formNotes = ""
	}

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(r.formName),
			huh.NewSelect[string]().Title("Size").
				Options(
					huh.NewOption("350ml can", "350"),
					huh.NewOption("500ml can", "500"),
				).Value(r.formSize),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(r.formDate),
			huh.NewInput().Title("Time (HH:MM)").Value(r.formTime),
			huh.NewInput().Title("Notes").Value(r.formNotes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r recordsModel) updateForm(msg tea.Msg) (recordsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.formActive = false
			r.form = nil
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.formActive = false
		return r, r.submitForm()
	}

	return r, cmd
}

func (r recordsModel) submitForm() tea.Cmd {
	amount, err := strconv.Atoi(*r.formSize)
	if err != nil {
		return func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Invalid size: %v", err), isError: true}
		}
	}
	name, date, tod, notes := *r.formName, *r.formDate, *r.formTime, *r.formNotes
	if name == "" {
		name = fmt.Sprintf("%dml can", amount)
	}

	if r.formType == "edit" {
		id := r.editingID
		return func() tea.Msg {
			if err := r.store.UpdateDrink(id, name, amount, date, tod, notes); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			drink, err := r.store.GetDrink(id)
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
			return drinkLoggedMsg{drink: drink}
		}
	}

	return func() tea.Msg {
		drink, err := r.store.AddDrink(name, amount, date, tod, notes)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return drinkLoggedMsg{drink: drink}
	}
}

func (r recordsModel) view() string {
	w := r.width - 4

	if r.formActive && r.form != nil {
		title := titleStyle.Render("New Record")
		if r.formType == "edit" {
			title = titleStyle.Render("Edit Record")
		}
		formView := r.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Records")

	if len(r.drinks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No records yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-12s %-7s %-7s %-20s %s", "", "Date", "Time", "Size", "Name", "Notes"))
	rows = append(rows, header)

	visible := r.drinks
	maxRows := r.height - 10
	if maxRows > 0 && len(visible) > maxRows {
		// Keep the cursor in view.
		start := r.cursor - maxRows/2
		if start < 0 {
			start = 0
		}
		if start+maxRows > len(visible) {
			start = len(visible) - maxRows
		}
		visible = visible[start : start+maxRows]
	}

	for _, d := range visible {
		cursor := "  "
		style := normalItemStyle
		if d.ID == r.drinks[r.cursor].ID {
			cursor = "> "
			style = selectedItemStyle
		}
		glyph := sizeGlyph(d.Amount)
		row := style.Render(fmt.Sprintf("%s%s %-7s", cursor, d.Date, d.Time)) +
			fmt.Sprintf(" %s %-6s ", glyph, fmt.Sprintf("%dml", d.Amount)) +
			style.Render(fmt.Sprintf("%-20s", d.Name)) +
			mutedStyle.Render(" "+d.Notes)
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
