// Package combatant provides the interface for combatant persistence
package combatant

//go:generate mockgen -destination=mock/mock_repository.go -package=combatantmock github.com/KirkDiggler/rpg-combat/internal/repositories/combatant Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
)

// Repository defines the interface for combatant persistence
type Repository interface {
	// Create stores a new combatant
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a combatant with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a combatant by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the combatant doesn't exist
	// Returns errors.DataLoss if the stored record cannot be decoded
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing combatant
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the combatant doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a combatant by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the combatant doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns every stored combatant ordered by ID
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// ListIDs returns every indexed combatant ID in order without decoding
	// the records, so unreadable records can still be found and removed
	// Returns errors.Internal for storage failures
	ListIDs(ctx context.Context, input ListIDsInput) (*ListIDsOutput, error)
}

// CreateInput defines the input for creating a combatant
type CreateInput struct {
	Combatant *entities.CombatantData
}

// CreateOutput defines the output for creating a combatant
type CreateOutput struct {
	Combatant *entities.CombatantData
}

// GetInput defines the input for getting a combatant
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a combatant
type GetOutput struct {
	Combatant *entities.CombatantData
}

// UpdateInput defines the input for updating a combatant
type UpdateInput struct {
	Combatant *entities.CombatantData
}

// UpdateOutput defines the output for updating a combatant
type UpdateOutput struct {
	Combatant *entities.CombatantData
}

// DeleteInput defines the input for deleting a combatant
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a combatant
type DeleteOutput struct{}

// ListInput defines the input for listing combatants
type ListInput struct{}

// ListOutput defines the output for listing combatants
type ListOutput struct {
	Combatants []*entities.CombatantData
}

// ListIDsInput defines the input for listing combatant IDs
type ListIDsInput struct{}

// ListIDsOutput defines the output for listing combatant IDs
type ListIDsOutput struct {
	IDs []string
}

const (
	errCombatantNil     = "combatant cannot be nil"
	errCombatantIDEmpty = "combatant ID cannot be empty"
)
