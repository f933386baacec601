package posts

import "time"

// RankingWindow resolves the active ranking day for popularity scoring.
// The day rolls over at cutoffHour, not midnight: at or after the cutoff the
// window covers today's calendar day, before it yesterday's. The returned
// window is half-open, [start, end).
//
// Depends on wall-clock time, so it must be resolved per request.
func RankingWindow(now time.Time, cutoffHour int) (start, end time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(day.Add(time.Duration(cutoffHour) * time.Hour)) {
		day = day.AddDate(0, 0, -1)
	}
	return day, day.AddDate(0, 0, 1)
}
