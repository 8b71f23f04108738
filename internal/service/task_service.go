package service

import (
	"context"

	"taskboard/internal/domain"
)

// TaskInput is the submitted create/update form.
type TaskInput struct {
	Title       string
	Description string
	Complete    bool
}

// TaskService backs the task pages. Every method takes the current user
// explicitly and only ever touches that user's tasks; a task owned by
// someone else is reported as domain.ErrNotFound.
type TaskService struct {
	store *TaskStore
}

func NewTaskService(store *TaskStore) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) List(ctx context.Context, user *domain.User, searchText string) (*TaskListView, error) {
	return BuildTaskList(ctx, s.store, user, searchText)
}

func (s *TaskService) Detail(ctx context.Context, user *domain.User, id int64) (*domain.Task, error) {
	return s.owned(ctx, user, id)
}

func (s *TaskService) Create(ctx context.Context, user *domain.User, in TaskInput) (*domain.Task, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	owner := user.ID
	return s.store.Create(ctx, &owner, in.Title, in.Description, in.Complete)
}

func (s *TaskService) Update(ctx context.Context, user *domain.User, id int64, in TaskInput) (*domain.Task, error) {
	if _, err := s.owned(ctx, user, id); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, domain.TaskPatch{
		Title:       &in.Title,
		Description: &in.Description,
		Complete:    &in.Complete,
	})
}

// ConfirmDelete loads the task shown on the delete confirmation page.
func (s *TaskService) ConfirmDelete(ctx context.Context, user *domain.User, id int64) (*domain.Task, error) {
	return s.owned(ctx, user, id)
}

func (s *TaskService) Delete(ctx context.Context, user *domain.User, id int64) error {
	if _, err := s.owned(ctx, user, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *TaskService) owned(ctx context.Context, user *domain.User, id int64) (*domain.Task, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.OwnedBy(user.ID) {
		return nil, domain.ErrNotFound
	}
	return t, nil
}
