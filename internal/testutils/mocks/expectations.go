// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/repositories/combatant"
	combatantmock "github.com/KirkDiggler/rpg-combat/internal/repositories/combatant/mock"
)

// FixedNow is the time the simulated repository stamps on writes
var FixedNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// ExpectCombatantGet sets up a mock expectation for getting a combatant from the repository
func ExpectCombatantGet(
	ctx context.Context, mockRepo *combatantmock.MockRepository,
	id string, data *entities.CombatantData, err error,
) *gomock.Call {
	if err != nil {
		return mockRepo.EXPECT().
			Get(ctx, combatant.GetInput{ID: id}).
			Return(nil, err)
	}
	return mockRepo.EXPECT().
		Get(ctx, combatant.GetInput{ID: id}).
		Return(&combatant.GetOutput{Combatant: data}, nil)
}

// ExpectCombatantGets expects one Get per combatant, in order
func ExpectCombatantGets(ctx context.Context, mockRepo *combatantmock.MockRepository, party []*entities.CombatantData) {
	var prev *gomock.Call
	for _, data := range party {
		call := ExpectCombatantGet(ctx, mockRepo, data.ID, data, nil)
		if prev != nil {
			call.After(prev)
		}
		prev = call
	}
}

// ExpectCombatantCreate sets up a mock expectation for creating a combatant
func ExpectCombatantCreate(ctx context.Context, mockRepo *combatantmock.MockRepository) *gomock.Call {
	return mockRepo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input combatant.CreateInput) (*combatant.CreateOutput, error) {
			// the repository stamps both times on create
			if input.Combatant.CreatedAt.IsZero() {
				input.Combatant.CreatedAt = FixedNow
			}
			input.Combatant.UpdatedAt = FixedNow
			return &combatant.CreateOutput{Combatant: input.Combatant}, nil
		})
}

// ExpectCombatantUpdate sets up a mock expectation for updating a combatant
func ExpectCombatantUpdate(ctx context.Context, mockRepo *combatantmock.MockRepository) *gomock.Call {
	return mockRepo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input combatant.UpdateInput) (*combatant.UpdateOutput, error) {
			input.Combatant.UpdatedAt = FixedNow
			return &combatant.UpdateOutput{Combatant: input.Combatant}, nil
		})
}

// ExpectCombatantList sets up a mock expectation for listing combatants
func ExpectCombatantList(
	ctx context.Context, mockRepo *combatantmock.MockRepository,
	party []*entities.CombatantData, err error,
) *gomock.Call {
	if err != nil {
		return mockRepo.EXPECT().List(ctx, combatant.ListInput{}).Return(nil, err)
	}
	return mockRepo.EXPECT().
		List(ctx, combatant.ListInput{}).
		Return(&combatant.ListOutput{Combatants: party}, nil)
}
