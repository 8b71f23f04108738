package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func connect(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func createUser(t *testing.T, db *pgxpool.Pool) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:     fmt.Sprintf("it_%d", time.Now().UnixNano()),
		PasswordHash: "not-a-real-hash",
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestTaskRepository_CRUD(t *testing.T) {
	db := connect(t)
	ctx := context.Background()
	repo := repository.NewTaskRepository(db)
	u := createUser(t, db)

	task := &domain.Task{OwnerID: &u.ID, Title: "Buy milk"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.ID == 0 || task.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at to be set: %+v", task)
	}

	task.Complete = true
	task.Description = "2 litres"
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}

	got, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if !got.Complete || got.Description != "2 litres" || !got.OwnedBy(u.ID) {
		t.Fatalf("unexpected task after update: %+v", got)
	}

	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if err := repo.Delete(ctx, task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestTaskRepository_ListByOwnerOrdersIncompleteFirst(t *testing.T) {
	db := connect(t)
	ctx := context.Background()
	repo := repository.NewTaskRepository(db)
	u := createUser(t, db)
	other := createUser(t, db)

	for _, tc := range []struct {
		title    string
		complete bool
	}{{"done", true}, {"open 1", false}, {"open 2", false}} {
		task := &domain.Task{OwnerID: &u.ID, Title: tc.title, Complete: tc.complete}
		if err := repo.Create(ctx, task); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}
	if err := repo.Create(ctx, &domain.Task{OwnerID: &other.ID, Title: "not mine"}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	tasks, err := repo.ListByOwner(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "open 1" || tasks[1].Title != "open 2" || tasks[2].Title != "done" {
		t.Fatalf("unexpected order: %q %q %q", tasks[0].Title, tasks[1].Title, tasks[2].Title)
	}
}

func TestUserRepository_DeleteCascadesToTasks(t *testing.T) {
	db := connect(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	u := createUser(t, db)

	task := &domain.Task{OwnerID: &u.ID, Title: "temporary"}
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := users.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := tasks.GetByID(ctx, task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after cascade, got %v", err)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := connect(t)
	u := createUser(t, db)

	dup := &domain.User{Username: u.Username, PasswordHash: "x"}
	err := repository.NewUserRepository(db).Create(context.Background(), dup)
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}
