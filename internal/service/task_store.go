package service

import (
	"context"

	"taskboard/internal/domain"
)

// TaskRepository is the persistence behind TaskStore. Implementations
// report missing rows as domain.ErrNotFound and must not touch
// user_id or created_at on Update.
type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
}

// TaskStore validates writes and fixes the read order. It does no access
// control: callers scope every call to the current user.
type TaskStore struct {
	repo TaskRepository
}

func NewTaskStore(repo TaskRepository) *TaskStore {
	return &TaskStore{repo: repo}
}

// Create persists a new task owned by ownerID (nil for an ownerless task).
func (s *TaskStore) Create(ctx context.Context, ownerID *int64, title, description string, complete bool) (*domain.Task, error) {
	if err := domain.ValidateTitle(title); err != nil {
		observeTaskOp("create", err)
		return nil, err
	}

	t := &domain.Task{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Complete:    complete,
	}
	err := s.repo.Create(ctx, t)
	observeTaskOp("create", err)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskStore) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies patch to the task. Only title, description and complete change.
func (s *TaskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil {
		if err := domain.ValidateTitle(*patch.Title); err != nil {
			observeTaskOp("update", err)
			return nil, err
		}
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		observeTaskOp("update", err)
		return nil, err
	}
	patch.Apply(t)

	err = s.repo.Update(ctx, t)
	observeTaskOp("update", err)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the task. Deleting a missing task is domain.ErrNotFound.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	observeTaskOp("delete", err)
	return err
}

// ListByOwner returns the owner's tasks with incomplete tasks first.
func (s *TaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	domain.SortTasks(tasks)
	return tasks, nil
}
