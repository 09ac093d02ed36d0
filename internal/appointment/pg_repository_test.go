package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var apptRowColumns = []string{
	"id", "patient_id", "name", "date", "time", "reason", "notes", "status", "created_at", "updated_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPgGetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewPgRepository(mock)

	id := uuid.New()
	patientID := uuid.New()
	now := time.Now()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM appointments a JOIN patients p`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(apptRowColumns).
			AddRow(id, patientID, "Jane Doe", day, "09:00", "checkup", (*string)(nil), Status("confirmed"), now, now))

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", got.Date, "DATE column comes back as YYYY-MM-DD")
	assert.Equal(t, "Jane Doe", got.PatientName)
	assert.Nil(t, got.Notes)
	assert.Equal(t, StatusConfirmed, got.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgGetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPgRepository(mock)

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM appointments a JOIN patients p`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(apptRowColumns))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPgList(t *testing.T) {
	mock := newMock(t)
	repo := NewPgRepository(mock)

	now := time.Now()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(apptRowColumns).
		AddRow(uuid.New(), uuid.New(), "A", day, "08:30", "r1", (*string)(nil), Status("pending"), now, now).
		AddRow(uuid.New(), uuid.New(), "B", day, "09:00", "r2", (*string)(nil), Status("confirmed"), now, now)

	mock.ExpectQuery(`SELECT (.+) FROM appointments a JOIN patients p (.+) ORDER BY a.date, a.time`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "08:30", got[0].Time)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgDeleteNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPgRepository(mock)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM appointments`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPgCountByPatient(t *testing.T) {
	mock := newMock(t)
	repo := NewPgRepository(mock)

	patientID := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM appointments`).
		WithArgs(patientID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountByPatient(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
