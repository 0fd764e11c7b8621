package store

import (
	"fmt"
	"strconv"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// GetCanPricing loads the can price/alcohol configuration, falling back to
// defaults for missing or unparsable rows.
func (s *Store) GetCanPricing() CanPricing {
	p := DefaultCanPricing
	p.Can350.Price = s.intSetting("can350_price", p.Can350.Price)
	p.Can350.Alcohol = s.floatSetting("can350_alcohol", p.Can350.Alcohol)
	p.Can500.Price = s.intSetting("can500_price", p.Can500.Price)
	p.Can500.Alcohol = s.floatSetting("can500_alcohol", p.Can500.Alcohol)
	return p
}

// SetCanPricing persists the can configuration.
func (s *Store) SetCanPricing(p CanPricing) error {
	pairs := map[string]string{
		"can350_price":   strconv.Itoa(p.Can350.Price),
		"can350_alcohol": strconv.FormatFloat(p.Can350.Alcohol, 'f', -1, 64),
		"can500_price":   strconv.Itoa(p.Can500.Price),
		"can500_alcohol": strconv.FormatFloat(p.Can500.Alcohol, 'f', -1, 64),
	}
	for k, v := range pairs {
		if err := s.SetSetting(k, v); err != nil {
			return err
		}
	}
	return nil
}

// GetGoals loads the configured limits, falling back to defaults.
func (s *Store) GetGoals() Goals {
	g := DefaultGoals
	g.Daily.MaxAmount = s.intSetting("goal_daily_ml", g.Daily.MaxAmount)
	g.Daily.MaxCost = s.intSetting("goal_daily_cost", g.Daily.MaxCost)
	g.Weekly.MaxAmount = s.intSetting("goal_weekly_ml", g.Weekly.MaxAmount)
	g.Weekly.MaxCost = s.intSetting("goal_weekly_cost", g.Weekly.MaxCost)
	g.Monthly.MaxAmount = s.intSetting("goal_monthly_ml", g.Monthly.MaxAmount)
	g.Monthly.MaxCost = s.intSetting("goal_monthly_cost", g.Monthly.MaxCost)
	g.FreeDays = s.intSetting("goal_free_days", g.FreeDays)
	return g
}

// SetGoals persists the configured limits.
func (s *Store) SetGoals(g Goals) error {
	pairs := map[string]string{
		"goal_daily_ml":     strconv.Itoa(g.Daily.MaxAmount),
		"goal_daily_cost":   strconv.Itoa(g.Daily.MaxCost),
		"goal_weekly_ml":    strconv.Itoa(g.Weekly.MaxAmount),
		"goal_weekly_cost":  strconv.Itoa(g.Weekly.MaxCost),
		"goal_monthly_ml":   strconv.Itoa(g.Monthly.MaxAmount),
		"goal_monthly_cost": strconv.Itoa(g.Monthly.MaxCost),
		"goal_free_days":    strconv.Itoa(g.FreeDays),
	}
	for k, v := range pairs {
		if err := s.SetSetting(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) intSetting(key string, fallback int) int {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (s *Store) floatSetting(key string, fallback float64) float64 {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
