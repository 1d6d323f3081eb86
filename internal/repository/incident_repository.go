package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stwalsh4118/sdma/internal/models"
)

// ErrNotFound is returned by update operations when the target record does
// not exist. Lookups return nil, nil instead.
var ErrNotFound = errors.New("record not found")

// IncidentRepository defines the interface for incident data access operations.
type IncidentRepository interface {
	// List returns every stored incident, soft-deleted ones included,
	// in creation order. The returned slice is owned by the caller.
	List(ctx context.Context) ([]models.Incident, error)

	// Create stores a new incident and returns it with its assigned id and
	// creation time. Ids increase monotonically and are never reused.
	Create(ctx context.Context, incident models.Incident) (models.Incident, error)
}

// memoryIncidentRepository keeps incidents in process memory. Appends
// replace the whole list so a reader's snapshot is never mutated.
type memoryIncidentRepository struct {
	mu        sync.RWMutex
	incidents []models.Incident
	nextID    int
	now       func() time.Time
}

// NewMemoryIncidentRepository creates an in-memory IncidentRepository
// preloaded with seed. Seed incidents without an id, or repeating an id
// already taken by an earlier seed incident, are numbered after the highest
// existing id.
func NewMemoryIncidentRepository(seed []models.Incident) IncidentRepository {
	r := &memoryIncidentRepository{
		incidents: make([]models.Incident, 0, len(seed)),
		nextID:    1,
		now:       time.Now,
	}

	for _, inc := range seed {
		if inc.ID >= r.nextID {
			r.nextID = inc.ID + 1
		}
	}
	taken := make(map[int]bool, len(seed))
	for _, inc := range seed {
		if inc.ID <= 0 || taken[inc.ID] {
			inc.ID = r.nextID
			r.nextID++
		}
		taken[inc.ID] = true
		r.incidents = append(r.incidents, inc)
	}

	return r
}

func (r *memoryIncidentRepository) List(ctx context.Context) ([]models.Incident, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	snapshot := r.incidents
	r.mu.RUnlock()

	out := make([]models.Incident, len(snapshot))
	copy(out, snapshot)
	return out, nil
}

func (r *memoryIncidentRepository) Create(ctx context.Context, incident models.Incident) (models.Incident, error) {
	if err := ctx.Err(); err != nil {
		return models.Incident{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	incident.ID = r.nextID
	r.nextID++
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = r.now()
	}

	next := make([]models.Incident, len(r.incidents), len(r.incidents)+1)
	copy(next, r.incidents)
	r.incidents = append(next, incident)

	return incident, nil
}
