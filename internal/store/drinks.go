package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AddDrink validates and inserts a new drinking event, returning the stored row.
func (s *Store) AddDrink(name string, amount int, date, timeOfDay, notes string) (*Drink, error) {
	if err := validateDrink(amount, date, timeOfDay); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO drinks (id, name, amount, date, time, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, amount, date, timeOfDay, notes, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert drink: %w", err)
	}
	return s.GetDrink(id)
}

func (s *Store) GetDrink(id string) (*Drink, error) {
	d := &Drink{}
	var createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT id, name, amount, date, time, notes, created_at, updated_at FROM drinks WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &d.Amount, &d.Date, &d.Time, &d.Notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get drink %s: %w", id, err)
	}
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	d.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return d, nil
}

// ListDrinks returns drinks newest-first, optionally filtered.
func (s *Store) ListDrinks(f DrinkFilter) ([]Drink, error) {
	query := `SELECT id, name, amount, date, time, notes, created_at, updated_at FROM drinks WHERE 1=1`
	var args []any

	if f.From != "" {
		query += ` AND date >= ?`
		args = append(args, f.From)
	}
	if f.To != "" {
		query += ` AND date < ?`
		args = append(args, f.To)
	}
	if f.Amount > 0 {
		query += ` AND amount = ?`
		args = append(args, f.Amount)
	}
	query += ` ORDER BY date DESC, time DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drinks: %w", err)
	}
	defer rows.Close()

	var drinks []Drink
	for rows.Next() {
		var d Drink
		var createdAt, updatedAt string
		if err := rows.Scan(&d.ID, &d.Name, &d.Amount, &d.Date, &d.Time, &d.Notes, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		d.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		drinks = append(drinks, d)
	}
	return drinks, rows.Err()
}

// UpdateDrink replaces the editable fields of an existing event.
func (s *Store) UpdateDrink(id, name string, amount int, date, timeOfDay, notes string) error {
	if err := validateDrink(amount, date, timeOfDay); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE drinks SET name = ?, amount = ?, date = ?, time = ?, notes = ?, updated_at = ? WHERE id = ?`,
		name, amount, date, timeOfDay, notes, now, id,
	)
	if err != nil {
		return fmt.Errorf("update drink: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update drink: no row with id %s", id)
	}
	return nil
}

func (s *Store) DeleteDrink(id string) error {
	_, err := s.db.Exec(`DELETE FROM drinks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete drink: %w", err)
	}
	return nil
}

// CountForDate returns the number of cans and total ml logged on one day.
func (s *Store) CountForDate(date string) (cans, amount int, err error) {
	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM drinks WHERE date = ?`, date,
	).Scan(&cans, &amount)
	if err != nil {
		return 0, 0, fmt.Errorf("count for date %s: %w", date, err)
	}
	return cans, amount, nil
}

// DailyCounts aggregates cans and volume per day inside [from, to).
func (s *Store) DailyCounts(from, to string) ([]DailyCount, error) {
	rows, err := s.db.Query(
		`SELECT date, COALESCE(SUM(amount), 0), COUNT(*)
		 FROM drinks WHERE date >= ? AND date < ?
		 GROUP BY date ORDER BY date`, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}
	defer rows.Close()

	var counts []DailyCount
	for rows.Next() {
		var c DailyCount
		if err := rows.Scan(&c.Date, &c.Amount, &c.Cans); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func validateDrink(amount int, date, timeOfDay string) error {
	if amount <= 0 {
		return fmt.Errorf("invalid amount %d: must be positive", amount)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	layout := "15:04"
	if strings.Count(timeOfDay, ":") == 2 {
		layout = "15:04:05"
	}
	if _, err := time.Parse(layout, timeOfDay); err != nil {
		return fmt.Errorf("invalid time %q: want HH:MM or HH:MM:SS", timeOfDay)
	}
	return nil
}
