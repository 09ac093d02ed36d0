package patient

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter map[uuid.UUID]int

func (f fakeCounter) CountByPatient(_ context.Context, id uuid.UUID) (int, error) {
	return f[id], nil
}

func newTestService(counts fakeCounter) *Service {
	if counts == nil {
		counts = fakeCounter{}
	}
	return NewService(NewMemoryRepository(), counts)
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	email := "jane@example.com"
	p, err := svc.Create(ctx, Input{Name: "  Jane Doe ", Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Name, "names are trimmed")

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "   "})
	assert.ErrorIs(t, err, ErrMissingName)

	badDOB := "31-01-1980"
	_, err = svc.Create(ctx, Input{Name: "Jane", DateOfBirth: &badDOB})
	assert.ErrorIs(t, err, ErrInvalidDateOfBirth)
}

func TestDeleteRefusedWithAppointmentsOnFile(t *testing.T) {
	counts := fakeCounter{}
	svc := newTestService(counts)
	ctx := context.Background()

	p, err := svc.Create(ctx, Input{Name: "Jane Doe"})
	require.NoError(t, err)

	counts[p.ID] = 3
	err = svc.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, ErrHasAppointments)

	counts[p.ID] = 0
	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAndSearch(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	for _, name := range []string{"Carol Smith", "Alice Jones", "Bob Smith"} {
		_, err := svc.Create(ctx, Input{Name: name})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Alice Jones", all[0].Name, "list is name-ordered")

	smiths, err := svc.List(ctx, "smith")
	require.NoError(t, err)
	require.Len(t, smiths, 2)
	assert.Equal(t, "Bob Smith", smiths[0].Name)
	assert.Equal(t, "Carol Smith", smiths[1].Name)
}
