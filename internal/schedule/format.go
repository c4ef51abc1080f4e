package schedule

import "fmt"

// FormatRemaining renders a signed day offset for display.
func FormatRemaining(days int) string {
	switch {
	case days < -1:
		return fmt.Sprintf("%d days overdue", -days)
	case days == -1:
		return "1 day overdue"
	case days == 0:
		return "Due today"
	case days == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

// FormatInterval renders a recurrence period, e.g. "Every day",
// "Every 3 days", "Every 2 weeks".
func FormatInterval(value int, unit Unit) string {
	singular := map[Unit]string{
		UnitDays:   "day",
		UnitWeeks:  "week",
		UnitMonths: "month",
	}[unit]
	if value == 1 {
		return "Every " + singular
	}
	return fmt.Sprintf("Every %d %ss", value, singular)
}
