package combatant

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/clock"
)

var _ Repository = (*InMemoryRepository)(nil)

// InMemoryRepository implements Repository using in-memory storage. Records
// are stored in their JSON form so callers never share state with the store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
	clock clock.Clock
}

// NewInMemory creates a new in-memory repository
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		store: make(map[string][]byte),
		clock: c,
	}
}

// Create stores a new combatant
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Combatant == nil {
		return nil, errors.InvalidArgument(errCombatantNil)
	}
	if input.Combatant.ID == "" {
		return nil, errors.InvalidArgument(errCombatantIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Combatant.ID]; exists {
		return nil, errors.AlreadyExistsf("combatant with ID %s already exists", input.Combatant.ID)
	}

	stored := *input.Combatant
	now := r.clock.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	if err := r.put(&stored); err != nil {
		return nil, err
	}
	return &CreateOutput{Combatant: &stored}, nil
}

// Get retrieves a combatant by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCombatantIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := r.get(input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Combatant: data}, nil
}

// Update replaces an existing combatant
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Combatant == nil {
		return nil, errors.InvalidArgument(errCombatantNil)
	}
	if input.Combatant.ID == "" {
		return nil, errors.InvalidArgument(errCombatantIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.get(input.Combatant.ID)
	if err != nil {
		return nil, err
	}

	stored := *input.Combatant
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = r.clock.Now()

	if err := r.put(&stored); err != nil {
		return nil, err
	}
	return &UpdateOutput{Combatant: &stored}, nil
}

// Delete removes a combatant by ID
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCombatantIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("combatant with ID %s not found", input.ID)
	}
	delete(r.store, input.ID)
	return &DeleteOutput{}, nil
}

// List returns every stored combatant ordered by ID
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.ids()
	out := make([]*entities.CombatantData, 0, len(ids))
	for _, id := range ids {
		data, err := r.get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return &ListOutput{Combatants: out}, nil
}

// ListIDs returns every stored combatant ID in order
func (r *InMemoryRepository) ListIDs(_ context.Context, _ ListIDsInput) (*ListIDsOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &ListIDsOutput{IDs: r.ids()}, nil
}

// ids must be called with the lock held.
func (r *InMemoryRepository) ids() []string {
	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// get must be called with the lock held.
func (r *InMemoryRepository) get(id string) (*entities.CombatantData, error) {
	raw, exists := r.store[id]
	if !exists {
		return nil, errors.NotFoundf("combatant with ID %s not found", id)
	}

	var data entities.CombatantData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to unmarshal combatant %s", id)
	}
	return &data, nil
}

// put must be called with the write lock held.
func (r *InMemoryRepository) put(data *entities.CombatantData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal combatant data")
	}
	r.store[data.ID] = raw
	return nil
}
