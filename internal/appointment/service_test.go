package appointment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, uuid.UUID) {
	patientID := uuid.New()
	names := func(id uuid.UUID) (string, bool) {
		if id == patientID {
			return "Jane Doe", true
		}
		return "", false
	}
	return NewService(NewMemoryRepository(names)), patientID
}

func TestCreateDefaultsToPending(t *testing.T) {
	svc, patientID := newTestService()

	appt, err := svc.Create(context.Background(), CreateInput{
		PatientID: patientID,
		Date:      "2024-03-10",
		Time:      "09:00",
		Reason:    "Annual physical",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, appt.Status)
	assert.Equal(t, "Jane Doe", appt.PatientName)
	assert.NotEqual(t, uuid.Nil, appt.ID)
}

func TestCreateValidation(t *testing.T) {
	svc, patientID := newTestService()
	ctx := context.Background()

	tests := []struct {
		name    string
		in      CreateInput
		wantErr error
	}{
		{
			"bad date",
			CreateInput{PatientID: patientID, Date: "10-03-2024", Time: "09:00", Reason: "x"},
			ErrInvalidDate,
		},
		{
			"bad time",
			CreateInput{PatientID: patientID, Date: "2024-03-10", Time: "9am", Reason: "x"},
			ErrInvalidTime,
		},
		{
			"missing reason",
			CreateInput{PatientID: patientID, Date: "2024-03-10", Time: "09:00", Reason: "   "},
			ErrMissingReason,
		},
		{
			"unknown status",
			CreateInput{PatientID: patientID, Date: "2024-03-10", Time: "09:00", Reason: "x", Status: "tentative"},
			ErrInvalidStatus,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateUnknownPatient(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateInput{
		PatientID: uuid.New(),
		Date:      "2024-03-10",
		Time:      "09:00",
		Reason:    "Annual physical",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			svc, patientID := newTestService()
			ctx := context.Background()

			appt, err := svc.Create(ctx, CreateInput{
				PatientID: patientID,
				Date:      "2024-03-10",
				Time:      "09:00",
				Reason:    "visit",
				Status:    tt.from,
			})
			require.NoError(t, err)

			updated, err := svc.UpdateStatus(ctx, appt.ID, tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, updated.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
			}
		})
	}
}

func TestUpdateRewritesFields(t *testing.T) {
	svc, patientID := newTestService()
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateInput{
		PatientID: patientID,
		Date:      "2024-03-10",
		Time:      "09:00",
		Reason:    "visit",
	})
	require.NoError(t, err)

	notes := "rescheduled by phone"
	updated, err := svc.Update(ctx, appt.ID, CreateInput{
		Date:   "2024-03-12",
		Time:   "14:30",
		Reason: "visit",
		Notes:  &notes,
		Status: StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", updated.Date)
	assert.Equal(t, "14:30", updated.Time)
	assert.Equal(t, StatusConfirmed, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)
	assert.Equal(t, patientID, updated.PatientID, "patient link survives updates")
}

func TestDeleteAndGet(t *testing.T) {
	svc, patientID := newTestService()
	ctx := context.Background()

	appt, err := svc.Create(ctx, CreateInput{
		PatientID: patientID,
		Date:      "2024-03-10",
		Time:      "09:00",
		Reason:    "visit",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, appt.ID))
	_, err = svc.Get(ctx, appt.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListIsChronological(t *testing.T) {
	svc, patientID := newTestService()
	ctx := context.Background()

	for _, v := range []struct{ date, tm string }{
		{"2024-03-11", "09:00"},
		{"2024-03-10", "15:00"},
		{"2024-03-10", "08:30"},
	} {
		_, err := svc.Create(ctx, CreateInput{
			PatientID: patientID, Date: v.date, Time: v.tm, Reason: "visit",
		})
		require.NoError(t, err)
	}

	appts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, appts, 3)
	assert.Equal(t, "08:30", appts[0].Time)
	assert.Equal(t, "15:00", appts[1].Time)
	assert.Equal(t, "2024-03-11", appts[2].Date)
}
