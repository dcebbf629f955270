package reminder

import "time"

// NextTrigger computes the next fire time of r strictly after now, or nil when the
// reminder has no further occurrence. All calendar math happens in now's location.
func NextTrigger(r SupplicationReminder, now time.Time) *time.Time {
	var next time.Time

	switch r.Frequency {
	case FrequencyOnce:
		next = atDay(now, 0, r.ScheduledTime)
		if !next.After(now) {
			return nil
		}
	case FrequencyDaily:
		next = atDay(now, 0, r.ScheduledTime)
		if !next.After(now) {
			next = atDay(now, 1, r.ScheduledTime)
		}
	case FrequencyWeekly:
		found := false
		for offset := 0; offset <= 7; offset++ {
			candidate := atDay(now, offset, r.ScheduledTime)
			if containsDay(r.DaysOfWeek, int(candidate.Weekday())) && candidate.After(now) {
				next = candidate
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	case FrequencyMonthly:
		next = nextMonthly(r, now)
	case FrequencyCustom:
		next = nextCustom(r, now)
	default:
		return nil
	}

	if r.EndDate != nil && !next.Before(*r.EndDate) {
		return nil
	}
	return &next
}

// nextMonthly anchors on the creation day-of-month and clamps to shorter months
func nextMonthly(r SupplicationReminder, now time.Time) time.Time {
	loc := now.Location()
	anchor := now.Day()
	if !r.CreatedAt.IsZero() {
		anchor = r.CreatedAt.In(loc).Day()
	}

	y, m, _ := now.Date()
	candidate := clampedMonthDay(y, m, anchor, r.ScheduledTime, loc)
	if candidate.After(now) {
		return candidate
	}

	first := time.Date(y, m+1, 1, 0, 0, 0, 0, loc)
	return clampedMonthDay(first.Year(), first.Month(), anchor, r.ScheduledTime, loc)
}

// nextCustom steps interval days from the last fire (or creation) until it passes now
func nextCustom(r SupplicationReminder, now time.Time) time.Time {
	loc := now.Location()
	interval := r.CustomInterval
	if interval < 1 {
		interval = 1
	}

	base := r.CreatedAt
	if r.LastTriggered != nil {
		base = *r.LastTriggered
	}
	if base.IsZero() {
		base = now
	}

	candidate := atDay(base.In(loc), interval, r.ScheduledTime)
	if !candidate.After(now) {
		// jump whole intervals first so a long pause does not loop day by day
		skip := calendarDaysBetween(candidate, now) / interval * interval
		candidate = atDay(candidate, skip, r.ScheduledTime)
		for !candidate.After(now) {
			candidate = atDay(candidate, interval, r.ScheduledTime)
		}
	}
	return candidate
}

// atDay returns the time of day on the calendar date offset days after day
func atDay(day time.Time, offset int, at TimeOfDay) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+offset, at.Hour, at.Minute, 0, 0, day.Location())
}

func clampedMonthDay(year int, month time.Month, day int, at TimeOfDay, loc *time.Location) time.Time {
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, at.Hour, at.Minute, 0, 0, loc)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// calendarDaysBetween counts date changes from a to b, ignoring wall-clock time
func calendarDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

func containsDay(days []int, weekday int) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}
