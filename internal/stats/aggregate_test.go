package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkhs/beerlog/internal/store"
)

var testPricing = store.CanPricing{
	Can350: store.CanSpec{Price: 204, Alcohol: 14},
	Can500: store.CanSpec{Price: 268, Alcohol: 20},
}

func TestCompute(t *testing.T) {
	t.Run("empty input yields all zeros", func(t *testing.T) {
		st, err := Compute(nil, testPricing)

		require.NoError(t, err)
		assert.Equal(t, BeerStats{}, st)
	})

	t.Run("totals cost and alcohol", func(t *testing.T) {
		st, err := Compute([]store.Drink{
			drink("a", 350, "2025-07-01", "19:00"),
			drink("b", 350, "2025-07-01", "20:00"),
			drink("c", 350, "2025-07-02", "19:00"),
			drink("d", 500, "2025-07-02", "20:00"),
			drink("e", 500, "2025-07-03", "19:00"),
		}, testPricing)

		require.NoError(t, err)
		assert.Equal(t, 3*350+2*500, st.TotalAmount)
		assert.Equal(t, 5, st.TotalCans)
		assert.Equal(t, 3, st.Can350Count)
		assert.Equal(t, 2, st.Can500Count)
		assert.Equal(t, 3*204+2*268, st.TotalCost) // 1148
		assert.Equal(t, 3*14.0+2*20.0, st.TotalAlcohol)
		assert.Equal(t, 3, st.DaysWithBeer)
		assert.Equal(t, 2, st.MaxCansInDay)
		assert.InDelta(t, float64(2050)/3, st.AveragePerDay, 1e-9)
		assert.InDelta(t, float64(5)/3, st.AverageCansPerDay, 1e-9)
	})

	t.Run("odd sizes count toward totals but not size figures", func(t *testing.T) {
		st, err := Compute([]store.Drink{
			drink("a", 350, "2025-07-01", "19:00"),
			drink("b", 330, "2025-07-01", "20:00"),
		}, testPricing)

		require.NoError(t, err)
		assert.Equal(t, 680, st.TotalAmount)
		assert.Equal(t, 2, st.TotalCans)
		assert.Equal(t, 1, st.Can350Count)
		assert.Equal(t, 0, st.Can500Count)
		assert.Equal(t, 204, st.TotalCost)
		assert.Equal(t, 14.0, st.TotalAlcohol)

		// Invariant: every record is either 350, 500 or "other".
		other := st.TotalCans - st.Can350Count - st.Can500Count
		assert.Equal(t, 1, other)
	})

	t.Run("embeds pace stats", func(t *testing.T) {
		st, err := Compute([]store.Drink{
			drink("a", 350, "2025-07-01", "12:00"),
			drink("b", 500, "2025-07-01", "12:30"),
		}, testPricing)

		require.NoError(t, err)
		require.Len(t, st.Pace.Sessions, 1)
		assert.Equal(t, 1, st.Pace.Can350.TotalSessions)
	})

	t.Run("idempotent", func(t *testing.T) {
		records := []store.Drink{
			drink("a", 350, "2025-07-01", "12:00"),
			drink("b", 500, "2025-07-01", "12:30"),
			drink("c", 500, "2025-07-03", "23:00"),
		}

		first, err := Compute(records, testPricing)
		require.NoError(t, err)
		second, err := Compute(records, testPricing)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("rejects malformed records outright", func(t *testing.T) {
		_, err := Compute([]store.Drink{
			drink("a", 350, "2025-07-01", "12:00"),
			drink("b", 500, "2025-07-01", "nope"),
		}, testPricing)

		require.Error(t, err)
	})
}

func TestDailySeries(t *testing.T) {
	t.Run("ordered by date with per-size counts", func(t *testing.T) {
		series, err := DailySeries([]store.Drink{
			drink("c", 500, "2025-07-02", "20:00"),
			drink("a", 350, "2025-07-01", "19:00"),
			drink("b", 350, "2025-07-01", "21:00"),
		})

		require.NoError(t, err)
		require.Len(t, series, 2)
		assert.Equal(t, DailyPoint{Date: "2025-07-01", Amount: 700, Cans: 2, Can350: 2}, series[0])
		assert.Equal(t, DailyPoint{Date: "2025-07-02", Amount: 500, Cans: 1, Can500: 1}, series[1])
	})

	t.Run("empty input", func(t *testing.T) {
		series, err := DailySeries(nil)
		require.NoError(t, err)
		assert.Empty(t, series)
	})
}

func TestHourlyPattern(t *testing.T) {
	t.Run("always 24 buckets in order", func(t *testing.T) {
		pattern, err := HourlyPattern(nil)

		require.NoError(t, err)
		require.Len(t, pattern, 24)
		for h, p := range pattern {
			assert.Equal(t, h, p.Hour)
			assert.Zero(t, p.Cans)
			assert.Zero(t, p.Amount)
		}
	})

	t.Run("buckets by hour of day", func(t *testing.T) {
		pattern, err := HourlyPattern([]store.Drink{
			drink("a", 350, "2025-07-01", "19:15"),
			drink("b", 500, "2025-07-02", "19:45"),
			drink("c", 350, "2025-07-02", "00:05"),
		})

		require.NoError(t, err)
		require.Len(t, pattern, 24)
		assert.Equal(t, HourlyPoint{Hour: 19, Amount: 850, Cans: 2}, pattern[19])
		assert.Equal(t, HourlyPoint{Hour: 0, Amount: 350, Cans: 1}, pattern[0])
	})
}

func TestWeeklyTrend(t *testing.T) {
	trend, err := WeeklyTrend([]store.Drink{
		drink("a", 350, "2025-07-01", "19:00"), // ISO week 27
		drink("b", 500, "2025-07-02", "19:00"),
		drink("c", 350, "2025-07-09", "19:00"), // ISO week 28
	})

	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, WeeklyPoint{Week: "2025-W27", Amount: 850, Cans: 2}, trend[0])
	assert.Equal(t, WeeklyPoint{Week: "2025-W28", Amount: 350, Cans: 1}, trend[1])
}

func TestPreference(t *testing.T) {
	t.Run("both zero with no sized cans", func(t *testing.T) {
		assert.Equal(t, SizePreference{}, Preference(nil))
		assert.Equal(t, SizePreference{}, Preference([]store.Drink{
			drink("a", 330, "2025-07-01", "19:00"),
		}))
	})

	t.Run("splits by sized cans only", func(t *testing.T) {
		pref := Preference([]store.Drink{
			drink("a", 350, "2025-07-01", "19:00"),
			drink("b", 350, "2025-07-01", "20:00"),
			drink("c", 500, "2025-07-01", "21:00"),
			drink("d", 330, "2025-07-01", "22:00"),
		})

		assert.InDelta(t, 100.0*2/3, pref.Can350Percentage, 1e-9)
		assert.InDelta(t, 100.0*1/3, pref.Can500Percentage, 1e-9)
	})
}
