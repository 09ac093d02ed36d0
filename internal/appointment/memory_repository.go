package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository backs demo mode, where the service runs without Postgres.
// It is also what the service tests run against.
type MemoryRepository struct {
	mu    sync.RWMutex
	appts map[uuid.UUID]Appointment

	// names resolves patient IDs to display names the way the SQL join
	// does; demo mode wires the patient memory repository in here.
	names func(uuid.UUID) (string, bool)
}

func NewMemoryRepository(names func(uuid.UUID) (string, bool)) *MemoryRepository {
	if names == nil {
		names = func(uuid.UUID) (string, bool) { return "", false }
	}
	return &MemoryRepository{
		appts: make(map[uuid.UUID]Appointment),
		names: names,
	}
}

func (r *MemoryRepository) Create(_ context.Context, a Appointment) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.names(a.PatientID)
	if !ok {
		return nil, ErrPatientNotFound
	}

	now := time.Now()
	a.ID = uuid.New()
	a.PatientName = name
	a.CreatedAt = now
	a.UpdatedAt = now
	r.appts[a.ID] = a

	out := a
	return &out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) Update(_ context.Context, a Appointment) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.appts[a.ID]
	if !ok {
		return nil, ErrNotFound
	}

	cur.Date = a.Date
	cur.Time = a.Time
	cur.Reason = a.Reason
	cur.Notes = a.Notes
	cur.Status = a.Status
	cur.UpdatedAt = time.Now()
	r.appts[cur.ID] = cur

	out := cur
	return &out, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to Status) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.appts[id]
	if !ok || cur.Status != from {
		return nil, ErrNotFound
	}

	cur.Status = to
	cur.UpdatedAt = time.Now()
	r.appts[id] = cur

	out := cur
	return &out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appts[id]; !ok {
		return ErrNotFound
	}
	delete(r.appts, id)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Appointment, 0, len(r.appts))
	for _, a := range r.appts {
		result = append(result, a)
	}
	sortChronological(result)
	return result, nil
}

func (r *MemoryRepository) ListByPatient(_ context.Context, patientID uuid.UUID) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Appointment
	for _, a := range r.appts {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	sortChronological(result)
	return result, nil
}

func (r *MemoryRepository) CountByPatient(_ context.Context, patientID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.appts {
		if a.PatientID == patientID {
			n++
		}
	}
	return n, nil
}

// sortChronological mirrors the ORDER BY date, time of the SQL queries.
func sortChronological(appts []Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
}
