package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/kristopher-lab/verdure-premium-plant-shop/pkg/errors"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/pagination"
)

// Descriptor describes one entity type kept in the keyed record store: its
// record key prefix, the name of its index, and the initial value used for
// lazily created records. Entity behavior lives in services that operate on
// the store through a descriptor value rather than in per-type subtypes.
type Descriptor[T any] struct {
	Name      string
	IndexName string
	New       func(id string) T
}

// Store is durable, keyed storage for a single entity type, backed by Redis.
// Records are stored as JSON under "<name>:<id>". Every created record's id
// is appended to a per-type index list, which drives cursor pagination.
//
// Mutate is the only sanctioned way to update a record. Calls against the
// same id serialize through an in-process keyed lock; calls against
// different ids share nothing. The store assumes a single writer process per
// key, which holds for this storefront's deployment model.
type Store[T any] struct {
	client *redis.Client
	desc   Descriptor[T]
	locks  *KeyLocks
}

// New creates a store for the entity type described by desc.
func New[T any](client *redis.Client, desc Descriptor[T], locks *KeyLocks) *Store[T] {
	return &Store[T]{
		client: client,
		desc:   desc,
		locks:  locks,
	}
}

// Name returns the entity type name.
func (s *Store[T]) Name() string {
	return s.desc.Name
}

// NewValue returns the descriptor's initial value for the given id.
func (s *Store[T]) NewValue(id string) T {
	return s.desc.New(id)
}

func (s *Store[T]) recordKey(id string) string {
	return s.desc.Name + ":" + id
}

func (s *Store[T]) indexKey() string {
	return "idx:" + s.desc.IndexName
}

// Get retrieves a record by id. Absence is reported as a NotFound application
// error, which callers can branch on with errors.Is(err, apperrors.ErrNotFound).
func (s *Store[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	data, err := s.client.Get(ctx, s.recordKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return zero, apperrors.NotFound(s.desc.Name, id)
		}
		return zero, fmt.Errorf("redis get %s: %w", s.recordKey(id), err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return zero, fmt.Errorf("unmarshal %s: %w", s.desc.Name, err)
	}

	return value, nil
}

// Exists reports whether a record with the given id is present.
func (s *Store[T]) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, s.recordKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", s.recordKey(id), err)
	}
	return n > 0, nil
}

// Create writes the record only if absent and appends its id to the index.
// If the record already exists the call is a no-op that returns the stored
// value, so concurrent requests racing to initialize the same id all converge
// on the first writer's value.
func (s *Store[T]) Create(ctx context.Context, id string, value T) (T, error) {
	var zero T

	data, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("marshal %s: %w", s.desc.Name, err)
	}

	set, err := s.client.SetNX(ctx, s.recordKey(id), data, 0).Result()
	if err != nil {
		return zero, fmt.Errorf("redis setnx %s: %w", s.recordKey(id), err)
	}

	if !set {
		// Lost the race (or the record predates this call); return the winner.
		return s.Get(ctx, id)
	}

	if err := s.client.RPush(ctx, s.indexKey(), id).Err(); err != nil {
		return zero, fmt.Errorf("redis rpush %s: %w", s.indexKey(), err)
	}

	return value, nil
}

// Mutate reads the current record, applies fn, writes the result back, and
// returns it. fn must be a pure function of the current value. Concurrent
// Mutate calls on the same id serialize; no interleaving is observable.
func (s *Store[T]) Mutate(ctx context.Context, id string, fn func(T) T) (T, error) {
	var zero T

	unlock := s.locks.Lock(s.recordKey(id))
	defer unlock()

	current, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	next := fn(current)

	data, err := json.Marshal(next)
	if err != nil {
		return zero, fmt.Errorf("marshal %s: %w", s.desc.Name, err)
	}

	if err := s.client.Set(ctx, s.recordKey(id), data, 0).Err(); err != nil {
		return zero, fmt.Errorf("redis set %s: %w", s.recordKey(id), err)
	}

	return next, nil
}

// Delete removes the record and its index entry. Returns false when no record
// with the given id existed.
func (s *Store[T]) Delete(ctx context.Context, id string) (bool, error) {
	unlock := s.locks.Lock(s.recordKey(id))
	defer unlock()

	n, err := s.client.Del(ctx, s.recordKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis del %s: %w", s.recordKey(id), err)
	}

	if err := s.client.LRem(ctx, s.indexKey(), 1, id).Err(); err != nil {
		return false, fmt.Errorf("redis lrem %s: %w", s.indexKey(), err)
	}

	return n > 0, nil
}

// Count returns the number of ids in the entity type's index.
func (s *Store[T]) Count(ctx context.Context) (int64, error) {
	n, err := s.client.LLen(ctx, s.indexKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("redis llen %s: %w", s.indexKey(), err)
	}
	return n, nil
}

// List returns up to limit records in index order starting after the given
// opaque cursor. The next-page token is nil once the end of the index has
// been reached. Ids whose record was deleted mid-scan are skipped rather
// than surfaced as errors; the listing is eventually consistent over a scan,
// not a snapshot.
func (s *Store[T]) List(ctx context.Context, cursor string, limit int) (pagination.Page[T], error) {
	var empty pagination.Page[T]

	if limit <= 0 {
		limit = pagination.DefaultLimit
	}

	offset, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return empty, apperrors.InvalidInput("invalid cursor")
	}

	total, err := s.client.LLen(ctx, s.indexKey()).Result()
	if err != nil {
		return empty, fmt.Errorf("redis llen %s: %w", s.indexKey(), err)
	}

	ids, err := s.client.LRange(ctx, s.indexKey(), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return empty, fmt.Errorf("redis lrange %s: %w", s.indexKey(), err)
	}

	items := make([]T, 0, len(ids))
	if len(ids) > 0 {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = s.recordKey(id)
		}

		values, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return empty, fmt.Errorf("redis mget %s: %w", s.desc.Name, err)
		}

		for _, raw := range values {
			str, ok := raw.(string)
			if !ok {
				// Record deleted between LRANGE and MGET; skip.
				continue
			}
			var value T
			if err := json.Unmarshal([]byte(str), &value); err != nil {
				return empty, fmt.Errorf("unmarshal %s: %w", s.desc.Name, err)
			}
			items = append(items, value)
		}
	}

	next := ""
	if int64(offset+len(ids)) < total {
		next = pagination.EncodeCursor(offset + len(ids))
	}

	return pagination.NewPage(items, next), nil
}
