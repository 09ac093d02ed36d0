package calendar

import (
	"github.com/clinicdesk/clinicdesk/internal/appointment"
)

// Summary holds the dashboard counts for the windows containing a single
// reference date.
type Summary struct {
	Date     string                     `json:"date"`
	Day      int                        `json:"day"`
	Week     int                        `json:"week"`
	Month    int                        `json:"month"`
	ByStatus map[appointment.Status]int `json:"by_status"`
}

// Summarize computes how many appointments fall in the day, week and month
// windows around refDate, plus a per-status breakdown of the month window.
func Summarize(appts []appointment.Appointment, refDate string) (Summary, error) {
	day, err := SelectWindow(appts, refDate, GranularityDay)
	if err != nil {
		return Summary{}, err
	}
	week, err := SelectWindow(appts, refDate, GranularityWeek)
	if err != nil {
		return Summary{}, err
	}
	month, err := SelectWindow(appts, refDate, GranularityMonth)
	if err != nil {
		return Summary{}, err
	}

	byStatus := make(map[appointment.Status]int, 4)
	for _, a := range month {
		byStatus[a.Status]++
	}

	return Summary{
		Date:     refDate,
		Day:      len(day),
		Week:     len(week),
		Month:    len(month),
		ByStatus: byStatus,
	}, nil
}
