package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskboard/internal/domain"
)

// MemoryStore keeps users and tasks in process memory. It backs the
// dev server when no database is configured and the service tests.
// Ids are never reused, matching a Postgres sequence.
type MemoryStore struct {
	mu         sync.RWMutex
	tasks      map[int64]*domain.Task
	users      map[int64]*domain.User
	nextTaskID int64
	nextUserID int64
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[int64]*domain.Task),
		users: make(map[int64]*domain.User),
		now:   time.Now,
	}
}

// Tasks returns the store viewed as a task repository.
func (m *MemoryStore) Tasks() *MemoryTaskRepository { return &MemoryTaskRepository{m} }

// Users returns the store viewed as a user repository.
func (m *MemoryStore) Users() *MemoryUserRepository { return &MemoryUserRepository{m} }

type MemoryTaskRepository struct{ m *MemoryStore }

func (r *MemoryTaskRepository) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Task, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	var res []*domain.Task
	for _, t := range r.m.tasks {
		if t.OwnedBy(ownerID) {
			res = append(res, copyTask(t))
		}
	}
	sortByID(res)
	domain.SortTasks(res)
	return res, nil
}

func (r *MemoryTaskRepository) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	t, ok := r.m.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyTask(t), nil
}

func (r *MemoryTaskRepository) Create(_ context.Context, t *domain.Task) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if t.OwnerID != nil {
		if _, ok := r.m.users[*t.OwnerID]; !ok {
			return domain.ErrNotFound
		}
	}

	r.m.nextTaskID++
	t.ID = r.m.nextTaskID
	t.CreatedAt = r.m.now()
	r.m.tasks[t.ID] = copyTask(t)
	return nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, t *domain.Task) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	cur, ok := r.m.tasks[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Title = t.Title
	cur.Description = t.Description
	cur.Complete = t.Complete
	return nil
}

func (r *MemoryTaskRepository) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.tasks, id)
	return nil
}

type MemoryUserRepository struct{ m *MemoryStore }

func (r *MemoryUserRepository) Create(_ context.Context, u *domain.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, existing := range r.m.users {
		if existing.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}

	r.m.nextUserID++
	u.ID = r.m.nextUserID
	u.CreatedAt = r.m.now()
	cp := *u
	r.m.users[u.ID] = &cp
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	u, ok := r.m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, u := range r.m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes the user and every task they own.
func (r *MemoryUserRepository) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.users, id)
	for tid, t := range r.m.tasks {
		if t.OwnedBy(id) {
			delete(r.m.tasks, tid)
		}
	}
	return nil
}

func copyTask(t *domain.Task) *domain.Task {
	cp := *t
	if t.OwnerID != nil {
		owner := *t.OwnerID
		cp.OwnerID = &owner
	}
	return &cp
}

func sortByID(tasks []*domain.Task) {
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
}
