package export

import (
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicdesk/internal/appointment"
	"github.com/clinicdesk/clinicdesk/internal/calendar"
)

func sample(date, tm, name, reason string, notes *string) appointment.Appointment {
	return appointment.Appointment{
		ID:          uuid.New(),
		PatientID:   uuid.New(),
		PatientName: name,
		Date:        date,
		Time:        tm,
		Reason:      reason,
		Notes:       notes,
		Status:      appointment.StatusConfirmed,
	}
}

func strPtr(s string) *string { return &s }

func TestCSVEmptyInput(t *testing.T) {
	got := CSV(nil)
	assert.Equal(t, "Date,Time,Patient,Reason,Status,Notes,Patient ID\r\n", got)
}

func TestCSVQuotingRoundTrip(t *testing.T) {
	a := sample("2024-03-10", "09:00", "Doe, Jane", `Follow-up, "urgent"`, strPtr(`has "allergies", see chart`))

	out := CSV([]appointment.Appointment{a})

	assert.Contains(t, out, `"Follow-up, ""urgent"""`)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Date", "Time", "Patient", "Reason", "Status", "Notes", "Patient ID"}, records[0])

	row := records[1]
	assert.Equal(t, "2024-03-10", row[0])
	assert.Equal(t, "09:00", row[1])
	assert.Equal(t, "Doe, Jane", row[2])
	assert.Equal(t, `Follow-up, "urgent"`, row[3], "quoted field must parse back to the original")
	assert.Equal(t, "confirmed", row[4])
	assert.Equal(t, `has "allergies", see chart`, row[5])
	assert.Equal(t, a.PatientID.String(), row[6])
}

func TestCSVMissingNotes(t *testing.T) {
	a := sample("2024-03-10", "09:00", "Jane Doe", "checkup", nil)

	out := CSV([]appointment.Appointment{a})

	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `,confirmed,"",`, "missing notes render as an empty quoted field")
	assert.NotContains(t, out, "null")
}

func TestCSVRowCountMatchesInput(t *testing.T) {
	var appts []appointment.Appointment
	for i := 0; i < 25; i++ {
		appts = append(appts, sample("2024-03-10", fmt.Sprintf("%02d:00", i%24), "Jane Doe", "checkup", nil))
	}

	records, err := csv.NewReader(strings.NewReader(CSV(appts))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 26, "one header row plus one row per appointment")
}

func TestCSVPreservesCallerOrder(t *testing.T) {
	appts := calendar.SortSchedule([]appointment.Appointment{
		sample("2024-05-02", "09:00", "A", "r", nil),
		sample("2024-05-02", "08:30", "B", "r", nil),
	})

	records, err := csv.NewReader(strings.NewReader(CSV(appts))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "08:30", records[1][1])
	assert.Equal(t, "09:00", records[2][1])
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "appointments-week-2024-03-10.csv", CSVFilename(calendar.GranularityWeek, "2024-03-10"))
	assert.Equal(t, "calendar-month-2024-03-10.pdf", PDFFilename(calendar.GranularityMonth, "2024-03-10"))
}
