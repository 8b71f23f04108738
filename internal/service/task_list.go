package service

import (
	"context"

	"taskboard/internal/domain"
)

// TaskListView is everything the task list page renders.
type TaskListView struct {
	User            *domain.User
	Tasks           []*domain.Task
	IncompleteCount int
	SearchText      string
}

// BuildTaskList scopes the list to user, applies the case-sensitive title
// prefix filter and counts incomplete tasks in the filtered set. searchText
// is echoed back as received.
func BuildTaskList(ctx context.Context, store *TaskStore, user *domain.User, searchText string) (*TaskListView, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}

	all, err := store.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(all))
	for _, t := range all {
		if searchText == "" || domain.HasTitlePrefix(t, searchText) {
			tasks = append(tasks, t)
		}
	}

	incomplete := 0
	for _, t := range tasks {
		if !t.Complete {
			incomplete++
		}
	}

	return &TaskListView{
		User:            user,
		Tasks:           tasks,
		IncompleteCount: incomplete,
		SearchText:      searchText,
	}, nil
}
