package pomodoro

import "fmt"

// FormatHHMMSS renders seconds as zero-padded hours, minutes and seconds.
func FormatHHMMSS(seconds uint32) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// FormatHourMinute renders a phase length for settings labels, e.g.
// "25 min" or "1 hr 5 min". Seconds are dropped.
func FormatHourMinute(seconds uint32) string {
	hours := seconds / 3600
	minutes := seconds / 60 % 60
	if hours == 0 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%d hr %d min", hours, minutes)
}
