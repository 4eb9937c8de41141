package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"task-api/internal/models"
)

const tasksCollection = "tasks"

type mongoStoreImpl struct {
	logger    zerolog.Logger
	tasks     *mongo.Collection
	opTimeout time.Duration
}

func NewMongoStore(
	logger zerolog.Logger,
	db *mongo.Database,
	opTimeout time.Duration,
) TaskStore {
	return &mongoStoreImpl{
		logger:    logger,
		tasks:     db.Collection(tasksCollection),
		opTimeout: opTimeout,
	}
}

func (s *mongoStoreImpl) List(ctx context.Context) ([]models.Task, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.tasks.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to find tasks")
		return nil, translateMongoError(err)
	}

	tasks := make([]models.Task, 0)
	err = cursor.All(ctx, &tasks)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to decode tasks")
		return nil, translateMongoError(err)
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("listed tasks")

	return tasks, nil
}

func (s *mongoStoreImpl) Get(ctx context.Context, id string) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		s.logger.Warn().
			Str("task_id", id).
			Msg("malformed task id")
		return nil, ErrInvalidTaskID
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	task := new(models.Task)
	err = s.tasks.FindOne(ctx, bson.M{"_id": oid}).Decode(task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to find task")
		return nil, translateMongoError(err)
	}
	s.logger.Debug().
		Str("task_id", id).
		Msg("found task")

	return task, nil
}

func (s *mongoStoreImpl) Create(ctx context.Context, fields CreateFields) (*models.Task, error) {
	title := strings.TrimSpace(fields.Title)
	if title == "" {
		s.logger.Warn().Msg("rejected task without a title")
		return nil, ErrEmptyTaskTitle
	}

	status := fields.Status
	if status == "" {
		status = models.StatusPending
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: fields.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	_, err := s.tasks.InsertOne(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, translateMongoError(err)
	}
	s.logger.Debug().
		Str("task_id", task.ID.Hex()).
		Msg("inserted task")

	s.logger.Info().
		Str("task_id", task.ID.Hex()).
		Msg("created task")
	return task, nil
}

func (s *mongoStoreImpl) Update(ctx context.Context, id string, fields UpdateFields) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		s.logger.Warn().
			Str("task_id", id).
			Msg("malformed task id")
		return nil, ErrInvalidTaskID
	}

	// A single $set keeps the merge atomic: untouched fields are
	// never rewritten, so concurrent partial updates cannot lose
	// each other's writes.
	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		if title == "" {
			s.logger.Warn().
				Str("task_id", id).
				Msg("rejected update with a blank title")
			return nil, ErrEmptyTaskTitle
		}
		set["title"] = title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Status != nil {
		set["status"] = *fields.Status
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	updateOpts := options.FindOneAndUpdate().
		SetReturnDocument(options.After)
	task := new(models.Task)
	err = s.tasks.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		updateOpts,
	).Decode(task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task")
		return nil, translateMongoError(err)
	}
	s.logger.Debug().
		Str("task_id", id).
		Msg("updated task")

	s.logger.Info().
		Str("task_id", id).
		Msg("updated task")
	return task, nil
}

func (s *mongoStoreImpl) Delete(ctx context.Context, id string) (*models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		s.logger.Warn().
			Str("task_id", id).
			Msg("malformed task id")
		return nil, ErrInvalidTaskID
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	task := new(models.Task)
	err = s.tasks.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return nil, translateMongoError(err)
	}
	s.logger.Debug().
		Str("task_id", id).
		Msg("deleted task")

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return task, nil
}

func (s *mongoStoreImpl) Ping(ctx context.Context) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	err := s.tasks.Database().Client().Ping(ctx, readpref.Primary())
	if err != nil {
		return translateMongoError(err)
	}
	return nil
}

func (s *mongoStoreImpl) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// translateMongoError hides driver error types from callers. Timeouts
// and connectivity failures all surface as ErrStoreUnavailable.
func translateMongoError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, mongo.ErrClientDisconnected),
		mongo.IsTimeout(err),
		mongo.IsNetworkError(err):
		return ErrStoreUnavailable
	default:
		return err
	}
}
