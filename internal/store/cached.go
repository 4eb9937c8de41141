package store

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"task-api/internal/models"
)

type cachedStoreImpl struct {
	logger zerolog.Logger
	inner  TaskStore
	cache  ListCache
	sf     singleflight.Group
}

// NewCachedStore wraps a TaskStore with a read-through cache for List.
// Concurrent misses are collapsed into a single backing query, and
// every successful mutation invalidates the cached list. Cache
// failures are logged and otherwise ignored: the store stays the
// source of truth.
func NewCachedStore(
	logger zerolog.Logger,
	inner TaskStore,
	cache ListCache,
) TaskStore {
	return &cachedStoreImpl{
		logger: logger,
		inner:  inner,
		cache:  cache,
	}
}

func (s *cachedStoreImpl) List(ctx context.Context) ([]models.Task, error) {
	v, err, _ := s.sf.Do("list", func() (any, error) {
		if tasks, err := s.cache.GetList(ctx); err == nil && tasks != nil {
			s.logger.Debug().
				Int("count", len(tasks)).
				Msg("task list served from cache")
			return tasks, nil
		}

		tasks, err := s.inner.List(ctx)
		if err != nil {
			return nil, err
		}

		err = s.cache.SetList(ctx, tasks)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Msg("failed to cache task list")
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Task), nil
}

func (s *cachedStoreImpl) Get(ctx context.Context, id string) (*models.Task, error) {
	return s.inner.Get(ctx, id)
}

func (s *cachedStoreImpl) Create(ctx context.Context, fields CreateFields) (*models.Task, error) {
	task, err := s.inner.Create(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return task, nil
}

func (s *cachedStoreImpl) Update(ctx context.Context, id string, fields UpdateFields) (*models.Task, error) {
	task, err := s.inner.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return task, nil
}

func (s *cachedStoreImpl) Delete(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.inner.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return task, nil
}

func (s *cachedStoreImpl) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

func (s *cachedStoreImpl) invalidate(ctx context.Context) {
	err := s.cache.Invalidate(ctx)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("failed to invalidate task list cache")
	}
}
