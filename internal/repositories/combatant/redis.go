package combatant

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-combat/internal/entities"
	"github.com/KirkDiggler/rpg-combat/internal/errors"
	"github.com/KirkDiggler/rpg-combat/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-combat/internal/redis"
)

const (
	combatantKeyPrefix = "combatant:"
	combatantIndexKey  = "combatants:index"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis combatant repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed combatant repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Combatant == nil {
		return nil, errors.InvalidArgument(errCombatantNil)
	}
	if input.Combatant.ID == "" {
		return nil, errors.InvalidArgument(errCombatantIDEmpty)
	}

	key := combatantKeyPrefix + input.Combatant.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("combatant with ID %s already exists", input.Combatant.ID)
	}

	stored := *input.Combatant
	now := r.clock.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal combatant data")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, combatantIndexKey, stored.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create combatant")
	}

	return &CreateOutput{Combatant: &stored}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCombatantIDEmpty)
	}

	result, err := r.client.Get(ctx, combatantKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("combatant with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get combatant")
	}

	var data entities.CombatantData
	if err := json.Unmarshal([]byte(result), &data); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to unmarshal combatant %s", input.ID)
	}

	return &GetOutput{Combatant: &data}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Combatant == nil {
		return nil, errors.InvalidArgument(errCombatantNil)
	}
	if input.Combatant.ID == "" {
		return nil, errors.InvalidArgument(errCombatantIDEmpty)
	}

	existing, err := r.Get(ctx, GetInput{ID: input.Combatant.ID})
	if err != nil {
		return nil, err
	}

	stored := *input.Combatant
	stored.CreatedAt = existing.Combatant.CreatedAt
	stored.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal combatant data")
	}

	if err := r.client.Set(ctx, combatantKeyPrefix+stored.ID, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update combatant")
	}

	return &UpdateOutput{Combatant: &stored}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCombatantIDEmpty)
	}

	// existence only; a record that no longer decodes must still be removable
	exists, err := r.client.Exists(ctx, combatantKeyPrefix+input.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check combatant existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("combatant with ID %s not found", input.ID)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, combatantKeyPrefix+input.ID)
	pipe.SRem(ctx, combatantIndexKey, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete combatant")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, combatantIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read combatant index")
	}
	sort.Strings(ids)

	slog.DebugContext(ctx, "listing combatants from index",
		"index_key", combatantIndexKey,
		"count", len(ids))

	out := make([]*entities.CombatantData, 0, len(ids))
	for _, id := range ids {
		got, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "combatant not found, cleaning up index",
					"combatant_id", id,
					"index_key", combatantIndexKey)
				r.client.SRem(ctx, combatantIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get combatant %s", id)
		}
		out = append(out, got.Combatant)
	}

	return &ListOutput{Combatants: out}, nil
}

func (r *redisRepository) ListIDs(ctx context.Context, _ ListIDsInput) (*ListIDsOutput, error) {
	ids, err := r.client.SMembers(ctx, combatantIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read combatant index")
	}
	sort.Strings(ids)

	return &ListIDsOutput{IDs: ids}, nil
}
