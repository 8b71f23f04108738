package repository

import (
	"context"
	"errors"
	"testing"

	"taskboard/internal/domain"
)

func newOwner(t *testing.T, s *MemoryStore, name string) int64 {
	t.Helper()
	u := &domain.User{Username: name, PasswordHash: "x"}
	if err := s.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func TestMemoryStore_IDsAreNeverReused(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	owner := newOwner(t, s, "alice")

	a := &domain.Task{OwnerID: &owner, Title: "a"}
	if err := s.Tasks().Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Tasks().Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	b := &domain.Task{OwnerID: &owner, Title: "b"}
	if err := s.Tasks().Create(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID <= a.ID {
		t.Fatalf("expected id > %d, got %d", a.ID, b.ID)
	}
}

func TestMemoryStore_ListByOwnerOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	owner := newOwner(t, s, "alice")
	other := newOwner(t, s, "bob")

	for i, title := range []string{"one", "two", "three"} {
		task := &domain.Task{OwnerID: &owner, Title: title, Complete: i == 0}
		if err := s.Tasks().Create(ctx, task); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := s.Tasks().Create(ctx, &domain.Task{OwnerID: &other, Title: "bob's"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tasks, err := s.Tasks().ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	want := []string{"two", "three", "one"}
	if len(titles) != len(want) {
		t.Fatalf("got %v; want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("got %v; want %v", titles, want)
		}
	}
}

func TestMemoryStore_UpdateKeepsOwnerAndCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	owner := newOwner(t, s, "alice")

	task := &domain.Task{OwnerID: &owner, Title: "a"}
	if err := s.Tasks().Create(ctx, task); err != nil {
		t.Fatalf("create: %v", err)
	}
	created := task.CreatedAt

	intruder := int64(999)
	changed := &domain.Task{ID: task.ID, OwnerID: &intruder, Title: "b", Complete: true}
	if err := s.Tasks().Update(ctx, changed); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.Tasks().GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.OwnedBy(owner) {
		t.Fatalf("owner was reassigned")
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at changed")
	}
	if got.Title != "b" || !got.Complete {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestMemoryStore_DeleteUserCascades(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	owner := newOwner(t, s, "alice")

	task := &domain.Task{OwnerID: &owner, Title: "a"}
	if err := s.Tasks().Create(ctx, task); err != nil {
		t.Fatalf("create: %v", err)
	}
	orphan := &domain.Task{Title: "no owner"}
	if err := s.Tasks().Create(ctx, orphan); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Users().Delete(ctx, owner); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := s.Tasks().GetByID(ctx, task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected task to be gone, got %v", err)
	}
	if _, err := s.Tasks().GetByID(ctx, orphan.ID); err != nil {
		t.Fatalf("ownerless task should survive: %v", err)
	}
}

func TestMemoryStore_DuplicateUsername(t *testing.T) {
	s := NewMemoryStore()
	newOwner(t, s, "alice")

	err := s.Users().Create(context.Background(), &domain.User{Username: "alice"})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}
