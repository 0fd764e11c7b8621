package store

import (
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// addDrink is a test helper that inserts a record and fails on error.
func addDrink(t *testing.T, s *Store, amount int, date, timeOfDay string) *Drink {
	t.Helper()
	d, err := s.AddDrink("", amount, date, timeOfDay, "")
	if err != nil {
		t.Fatalf("add drink: %v", err)
	}
	return d
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/beerlog.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopening must not re-run the migration.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Drinks
// ============================================================

func TestAddAndGetDrink(t *testing.T) {
	s := newTestStore(t)
	d, err := s.AddDrink("evening can", 350, "2025-07-01", "19:30", "after work")
	if err != nil {
		t.Fatal(err)
	}
	if d.ID == "" {
		t.Fatal("expected generated ID")
	}
	if d.Name != "evening can" || d.Amount != 350 || d.Date != "2025-07-01" || d.Time != "19:30" {
		t.Fatalf("unexpected drink: %+v", d)
	}
	if d.Notes != "after work" {
		t.Fatalf("Notes = %q", d.Notes)
	}
	if d.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}

	got, err := s.GetDrink(d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != d.ID || got.Amount != 350 {
		t.Fatalf("unexpected drink: %+v", got)
	}
}

func TestAddDrinkValidation(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddDrink("", 0, "2025-07-01", "19:30", ""); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if _, err := s.AddDrink("", -350, "2025-07-01", "19:30", ""); err == nil {
		t.Fatal("expected error for negative amount")
	}
	if _, err := s.AddDrink("", 350, "07/01/2025", "19:30", ""); err == nil {
		t.Fatal("expected error for bad date format")
	}
	if _, err := s.AddDrink("", 350, "2025-07-01", "7pm", ""); err == nil {
		t.Fatal("expected error for bad time format")
	}
	if _, err := s.AddDrink("", 350, "2025-07-01", "19:30:05", ""); err != nil {
		t.Fatalf("HH:MM:SS should be accepted: %v", err)
	}
}

func TestGetDrinkNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetDrink("missing"); err == nil {
		t.Fatal("expected error for missing drink")
	}
}

func TestListDrinksNewestFirst(t *testing.T) {
	s := newTestStore(t)
	addDrink(t, s, 350, "2025-07-01", "19:00")
	addDrink(t, s, 500, "2025-07-02", "20:00")
	addDrink(t, s, 350, "2025-07-02", "09:00")

	drinks, err := s.ListDrinks(DrinkFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(drinks) != 3 {
		t.Fatalf("expected 3 drinks, got %d", len(drinks))
	}
	if drinks[0].Date != "2025-07-02" || drinks[0].Time != "20:00" {
		t.Fatalf("expected newest first, got %+v", drinks[0])
	}
	if drinks[2].Date != "2025-07-01" {
		t.Fatalf("expected oldest last, got %+v", drinks[2])
	}
}

func TestListDrinksFilters(t *testing.T) {
	s := newTestStore(t)
	addDrink(t, s, 350, "2025-07-01", "19:00")
	addDrink(t, s, 500, "2025-07-02", "20:00")
	addDrink(t, s, 350, "2025-07-03", "21:00")

	byRange, err := s.ListDrinks(DrinkFilter{From: "2025-07-02", To: "2025-07-03"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byRange) != 1 || byRange[0].Date != "2025-07-02" {
		t.Fatalf("range filter: %+v", byRange)
	}

	bySize, err := s.ListDrinks(DrinkFilter{Amount: 350})
	if err != nil {
		t.Fatal(err)
	}
	if len(bySize) != 2 {
		t.Fatalf("size filter: expected 2, got %d", len(bySize))
	}

	limited, err := s.ListDrinks(DrinkFilter{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit filter: expected 1, got %d", len(limited))
	}
}

func TestUpdateDrink(t *testing.T) {
	s := newTestStore(t)
	d := addDrink(t, s, 350, "2025-07-01", "19:00")

	if err := s.UpdateDrink(d.ID, "renamed", 500, "2025-07-02", "20:00", "edited"); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetDrink(d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "renamed" || got.Amount != 500 || got.Date != "2025-07-02" || got.Notes != "edited" {
		t.Fatalf("unexpected drink after update: %+v", got)
	}
}

func TestUpdateDrinkMissing(t *testing.T) {
	s := newTestStore(t)
	if err := s.UpdateDrink("missing", "x", 350, "2025-07-01", "19:00", ""); err == nil {
		t.Fatal("expected error for missing row")
	}
}

func TestUpdateDrinkValidation(t *testing.T) {
	s := newTestStore(t)
	d := addDrink(t, s, 350, "2025-07-01", "19:00")
	if err := s.UpdateDrink(d.ID, "", -1, "2025-07-01", "19:00", ""); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDeleteDrink(t *testing.T) {
	s := newTestStore(t)
	d := addDrink(t, s, 350, "2025-07-01", "19:00")

	if err := s.DeleteDrink(d.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetDrink(d.ID); err == nil {
		t.Fatal("expected drink to be gone")
	}
}

func TestCountForDate(t *testing.T) {
	s := newTestStore(t)
	addDrink(t, s, 350, "2025-07-01", "19:00")
	addDrink(t, s, 500, "2025-07-01", "21:00")
	addDrink(t, s, 350, "2025-07-02", "19:00")

	cans, amount, err := s.CountForDate("2025-07-01")
	if err != nil {
		t.Fatal(err)
	}
	if cans != 2 || amount != 850 {
		t.Fatalf("cans=%d amount=%d", cans, amount)
	}

	cans, amount, err = s.CountForDate("2025-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if cans != 0 || amount != 0 {
		t.Fatalf("empty day: cans=%d amount=%d", cans, amount)
	}
}

func TestDailyCounts(t *testing.T) {
	s := newTestStore(t)
	addDrink(t, s, 350, "2025-07-01", "19:00")
	addDrink(t, s, 500, "2025-07-01", "21:00")
	addDrink(t, s, 350, "2025-07-03", "19:00")

	counts, err := s.DailyCounts("2025-07-01", "2025-07-04")
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 days, got %d", len(counts))
	}
	if counts[0].Date != "2025-07-01" || counts[0].Cans != 2 || counts[0].Amount != 850 {
		t.Fatalf("day 1: %+v", counts[0])
	}
	if counts[1].Date != "2025-07-03" || counts[1].Cans != 1 {
		t.Fatalf("day 2: %+v", counts[1])
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsSeeded(t *testing.T) {
	s := newTestStore(t)

	v, err := s.GetSetting("can350_price")
	if err != nil {
		t.Fatal(err)
	}
	if v != "204" {
		t.Fatalf("can350_price = %q, want 204", v)
	}
}

func TestSetSettingUpsert(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSetting("can350_price", "210"); err != nil {
		t.Fatal(err)
	}
	v, _ := s.GetSetting("can350_price")
	if v != "210" {
		t.Fatalf("expected 210, got %q", v)
	}

	if err := s.SetSetting("brand_new_key", "1"); err != nil {
		t.Fatal(err)
	}
	v, _ = s.GetSetting("brand_new_key")
	if v != "1" {
		t.Fatalf("expected 1, got %q", v)
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) < 11 {
		t.Fatalf("expected seeded settings, got %d", len(settings))
	}
}

func TestGetCanPricingDefaults(t *testing.T) {
	s := newTestStore(t)
	p := s.GetCanPricing()
	if p != DefaultCanPricing {
		t.Fatalf("expected defaults, got %+v", p)
	}
}

func TestSetCanPricingRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := CanPricing{
		Can350: CanSpec{Price: 199, Alcohol: 12.5},
		Can500: CanSpec{Price: 289, Alcohol: 21},
	}
	if err := s.SetCanPricing(want); err != nil {
		t.Fatal(err)
	}
	if got := s.GetCanPricing(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestGetCanPricingGarbledFallsBack(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting("can350_price", "not-a-number")
	p := s.GetCanPricing()
	if p.Can350.Price != DefaultCanPricing.Can350.Price {
		t.Fatalf("expected fallback price, got %d", p.Can350.Price)
	}
}

func TestGoalsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if g := s.GetGoals(); g != DefaultGoals {
		t.Fatalf("expected default goals, got %+v", g)
	}

	want := Goals{
		Daily:    GoalLimits{MaxAmount: 700, MaxCost: 600},
		Weekly:   GoalLimits{MaxAmount: 3500, MaxCost: 3000},
		Monthly:  GoalLimits{MaxAmount: 14000, MaxCost: 12000},
		FreeDays: 3,
	}
	if err := s.SetGoals(want); err != nil {
		t.Fatal(err)
	}
	if got := s.GetGoals(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
