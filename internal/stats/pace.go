package stats

import (
	"sort"

	"github.com/tkhs/beerlog/internal/store"
)

// ComputePace reconstructs drinking sessions from an unordered record set
// and derives the per-size pacing summaries.
//
// Sessions are bounded by calendar day: a pair of drinks at 23:50 and 00:10
// is two single-can sessions no matter how small the real gap. That split
// is part of the statistics contract, not an accident.
func ComputePace(drinks []store.Drink) (DrinkingPaceStats, error) {
	events, err := parseEvents(drinks)
	if err != nil {
		return DrinkingPaceStats{}, err
	}
	return paceFromEvents(events), nil
}

func paceFromEvents(events []event) DrinkingPaceStats {
	sort.SliceStable(events, func(i, j int) bool { return events[i].at.Before(events[j].at) })

	// Partition by date, preserving chronological order of both the days
	// and the events within each day.
	var days []string
	byDay := make(map[string][]event)
	for _, e := range events {
		if _, ok := byDay[e.Date]; !ok {
			days = append(days, e.Date)
		}
		byDay[e.Date] = append(byDay[e.Date], e)
	}

	var sessions []Session
	for _, day := range days {
		sessions = append(sessions, daySessions(byDay[day])...)
	}

	return DrinkingPaceStats{
		Can350:   paceForSize(sessions, Can350),
		Can500:   paceForSize(sessions, Can500),
		Sessions: sessions,
	}
}

// daySessions folds one day's chronologically ordered events into sessions.
// The first event opens a session; a gap strictly greater than the
// threshold closes it and opens a new one. Sessions with a single can are
// discarded on close.
func daySessions(events []event) []Session {
	var out []Session
	var cur *Session

	flush := func() {
		if cur != nil && len(cur.Cans) > 1 {
			cur.TotalDuration = cur.EndTime.Sub(cur.StartTime).Minutes()
			out = append(out, *cur)
		}
		cur = nil
	}

	for i, e := range events {
		if cur == nil || e.at.Sub(events[i-1].at).Minutes() > GapThresholdMinutes {
			flush()
			cur = &Session{
				StartTime: e.at,
				EndTime:   e.at,
				Cans:      []Can{{Size: e.Amount, Time: e.at}},
			}
		} else {
			cur.EndTime = e.at
			cur.Cans = append(cur.Cans, Can{Size: e.Amount, Time: e.at})
		}

		// Minutes to the next can on the same day, attached only when the
		// gap stays within the threshold.
		if i+1 < len(events) {
			if gap := events[i+1].at.Sub(e.at).Minutes(); gap <= GapThresholdMinutes {
				d := gap
				cur.Cans[len(cur.Cans)-1].Duration = &d
			}
		}
	}
	flush()
	return out
}

// paceForSize reduces all interval samples of one can size across the given
// sessions. All fields stay zero when no samples exist.
func paceForSize(sessions []Session, size int) PaceStats {
	var durations []float64
	for _, s := range sessions {
		for _, c := range s.Cans {
			if c.Size == size && c.Duration != nil {
				durations = append(durations, *c.Duration)
			}
		}
	}
	if len(durations) == 0 {
		return PaceStats{}
	}

	ps := PaceStats{
		FastestTime:   durations[0],
		SlowestTime:   durations[0],
		TotalSessions: len(durations),
	}
	var sum float64
	for _, d := range durations {
		sum += d
		if d < ps.FastestTime {
			ps.FastestTime = d
		}
		if d > ps.SlowestTime {
			ps.SlowestTime = d
		}
	}
	ps.AverageTime = sum / float64(len(durations))
	return ps
}
