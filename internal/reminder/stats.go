package reminder

import "time"

// ComputeStats derives usage statistics from the reminder list and history log.
// Calendar boundaries use now's location.
func ComputeStats(reminders []SupplicationReminder, history []ReminderHistory, now time.Time) ReminderStats {
	stats := ReminderStats{TotalReminders: len(reminders)}

	for _, r := range reminders {
		if r.IsActive {
			stats.ActiveReminders++
		}
	}

	loc := now.Location()
	y, m, d := now.Date()
	todayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	weekStart := time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, loc)
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, loc)

	completedDays := make(map[string]bool)
	titleCounts := make(map[string]int)
	var titleOrder []string

	for _, h := range history {
		if !h.WasCompleted {
			continue
		}

		at := completionTime(h).In(loc)

		if _, seen := titleCounts[h.SupplicationTitle]; !seen {
			titleOrder = append(titleOrder, h.SupplicationTitle)
		}
		titleCounts[h.SupplicationTitle]++

		if at.After(now) {
			continue
		}
		completedDays[dayKey(at)] = true

		if !at.Before(todayStart) {
			stats.CompletedToday++
		}
		if !at.Before(weekStart) {
			stats.CompletedThisWeek++
		}
		if !at.Before(monthStart) {
			stats.CompletedThisMonth++
		}
	}

	stats.StreakDays = streakDays(completedDays, now)

	best := 0
	for _, title := range titleOrder {
		if titleCounts[title] > best {
			best = titleCounts[title]
			stats.FavoriteSupplication = title
		}
	}

	return stats
}

// streakDays counts consecutive completed days ending today, or yesterday when today has none
func streakDays(completedDays map[string]bool, now time.Time) int {
	y, m, d := now.Date()
	offset := 0
	if !completedDays[dayKey(now)] {
		offset = 1
	}

	streak := 0
	for {
		day := time.Date(y, m, d-offset-streak, 12, 0, 0, 0, now.Location())
		if !completedDays[dayKey(day)] {
			return streak
		}
		streak++
	}
}

func completionTime(h ReminderHistory) time.Time {
	if h.CompletedAt != nil {
		return *h.CompletedAt
	}
	return h.TriggeredAt
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
