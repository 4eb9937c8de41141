package store

import (
	"context"
	"errors"

	"task-api/internal/models"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidTaskID    = errors.New("invalid task id")
	ErrEmptyTaskTitle   = errors.New("task title must not be empty")
	ErrStoreUnavailable = errors.New("task store unavailable")
)

// CreateFields carries the caller-supplied fields of a new task.
// Status defaults to models.StatusPending when left empty.
type CreateFields struct {
	Title       string
	Description string
	Status      string
}

// UpdateFields carries a partial update. Nil fields are left unchanged.
type UpdateFields struct {
	Title       *string
	Description *string
	Status      *string
}

type TaskStore interface {
	// List returns every stored task ordered by creation time.
	//
	// It returns ErrStoreUnavailable if the backing store is
	// unreachable or the operation timed out.
	List(ctx context.Context) ([]models.Task, error)

	// Get returns the task with the given ID.
	//
	// It returns ErrTaskNotFound if no such task exists or
	// ErrInvalidTaskID if the ID is malformed.
	Get(ctx context.Context, id string) (*models.Task, error)

	// Create validates the given fields, assigns a fresh unique ID
	// and persists the task with created_at == updated_at.
	//
	// It returns ErrEmptyTaskTitle if the title is missing or blank.
	Create(ctx context.Context, fields CreateFields) (*models.Task, error)

	// Update merges the provided fields into the stored task in a
	// single atomic write, refreshes updated_at and returns the
	// resulting record.
	//
	// It returns ErrTaskNotFound, ErrInvalidTaskID or
	// ErrEmptyTaskTitle when a provided title is blank.
	Update(ctx context.Context, id string, fields UpdateFields) (*models.Task, error)

	// Delete removes the task and returns the removed record.
	//
	// It returns ErrTaskNotFound or ErrInvalidTaskID.
	Delete(ctx context.Context, id string) (*models.Task, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// ListCache caches the full task list. GetList reports a miss
// by returning a nil slice and a nil error.
type ListCache interface {
	GetList(ctx context.Context) ([]models.Task, error)
	SetList(ctx context.Context, tasks []models.Task) error
	Invalidate(ctx context.Context) error
}
