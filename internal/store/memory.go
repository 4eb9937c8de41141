package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-api/internal/models"
)

var _ TaskStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory TaskStore with the same semantics as the
// Mongo-backed one. It serves tests and local runs without a database.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]models.Task),
	}
}

func (s *MemoryStore) List(_ context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id])
	}
	return tasks, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Task, error) {
	key, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[key]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return &task, nil
}

func (s *MemoryStore) Create(_ context.Context, fields CreateFields) (*models.Task, error) {
	title := strings.TrimSpace(fields.Title)
	if title == "" {
		return nil, ErrEmptyTaskTitle
	}

	status := fields.Status
	if status == "" {
		status = models.StatusPending
	}

	now := time.Now().UTC()
	task := models.Task{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: fields.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := task.ID.Hex()
	s.tasks[key] = task
	s.order = append(s.order, key)
	return &task, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fields UpdateFields) (*models.Task, error) {
	key, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	var title string
	if fields.Title != nil {
		title = strings.TrimSpace(*fields.Title)
		if title == "" {
			return nil, ErrEmptyTaskTitle
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[key]
	if !ok {
		return nil, ErrTaskNotFound
	}

	if fields.Title != nil {
		task.Title = title
	}
	if fields.Description != nil {
		task.Description = *fields.Description
	}
	if fields.Status != nil {
		task.Status = *fields.Status
	}
	task.UpdatedAt = time.Now().UTC()

	s.tasks[key] = task
	return &task, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) (*models.Task, error) {
	key, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[key]
	if !ok {
		return nil, ErrTaskNotFound
	}

	delete(s.tasks, key)
	for i, existing := range s.order {
		if existing == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return &task, nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func canonicalID(id string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", ErrInvalidTaskID
	}
	return oid.Hex(), nil
}
