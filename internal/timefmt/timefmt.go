// Package timefmt renders second counts as clock-style strings.
package timefmt

import "fmt"

// FormatMinutesSeconds renders totalSeconds as mm:ss. Minutes are not wrapped
// into hours, so 3600 seconds renders as "60:00".
func FormatMinutesSeconds(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	minutes := totalSeconds / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatHoursMinutesSeconds renders totalSeconds as hh:mm:ss. Hours are at
// least two digits wide and grow as needed.
func FormatHoursMinutesSeconds(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
