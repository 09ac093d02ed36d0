package patient

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository backs demo mode and the service tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	patients map[uuid.UUID]Patient
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{patients: make(map[uuid.UUID]Patient)}
}

// NameOf resolves a patient ID to a display name; the appointment memory
// repository uses it in place of the SQL join.
func (r *MemoryRepository) NameOf(id uuid.UUID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	return p.Name, ok
}

func (r *MemoryRepository) Create(_ context.Context, p Patient) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.patients[p.ID] = p

	out := p
	return &out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) Update(_ context.Context, p Patient) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.patients[p.ID]
	if !ok {
		return nil, ErrNotFound
	}

	cur.Name = p.Name
	cur.Email = p.Email
	cur.Phone = p.Phone
	cur.DateOfBirth = p.DateOfBirth
	cur.UpdatedAt = time.Now()
	r.patients[cur.ID] = cur

	out := cur
	return &out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[id]; !ok {
		return ErrNotFound
	}
	delete(r.patients, id)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Patient, 0, len(r.patients))
	for _, p := range r.patients {
		result = append(result, p)
	}
	sortByName(result)
	return result, nil
}

func (r *MemoryRepository) Search(_ context.Context, query string) ([]Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var result []Patient
	for _, p := range r.patients {
		if strings.Contains(strings.ToLower(p.Name), q) {
			result = append(result, p)
		}
	}
	sortByName(result)
	return result, nil
}

func sortByName(patients []Patient) {
	sort.SliceStable(patients, func(i, j int) bool {
		if patients[i].Name != patients[j].Name {
			return patients[i].Name < patients[j].Name
		}
		return patients[i].CreatedAt.Before(patients[j].CreatedAt)
	})
}
