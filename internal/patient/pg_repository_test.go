package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var patientRowColumns = []string{
	"id", "name", "email", "phone", "date_of_birth", "created_at", "updated_at",
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
	now := time.Now()
	email := "jane@example.com"

	mock.ExpectQuery(`SELECT (.+) FROM patients WHERE id`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(patientRowColumns).
			AddRow(id, "Jane Doe", &email, (*string)(nil), (*string)(nil), now, now))

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
	require.NotNil(t, got.Email)
	assert.Equal(t, email, *got.Email)
	assert.Nil(t, got.Phone)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgGetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPgRepository(mock)

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM patients WHERE id`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(patientRowColumns))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPgSearch(t *testing.T) {
	mock := newMock(t)
	repo := NewPgRepository(mock)

	now := time.Now()
	rows := pgxmock.NewRows(patientRowColumns).
		AddRow(uuid.New(), "Alice Smith", (*string)(nil), (*string)(nil), (*string)(nil), now, now).
		AddRow(uuid.New(), "Bob Smithson", (*string)(nil), (*string)(nil), (*string)(nil), now, now)

	mock.ExpectQuery(`SELECT (.+) FROM patients WHERE name ILIKE`).
		WithArgs("smith").
		WillReturnRows(rows)

	got, err := repo.Search(context.Background(), "smith")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alice Smith", got[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgDeleteNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPgRepository(mock)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM patients`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}
