package service

import (
	"context"
	"testing"

	"taskboard/internal/domain"
)

func titles(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildTaskList_Scenarios(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	var milk *domain.Task
	for _, title := range []string{"Buy milk", "buy bread", "Clean house"} {
		task, err := f.tasks.Create(ctx, alice, TaskInput{Title: title})
		if err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
		if title == "Buy milk" {
			milk = task
		}
	}

	view, err := BuildTaskList(ctx, f.store, alice, "Buy")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := titles(view.Tasks); !equalStrings(got, []string{"Buy milk"}) {
		t.Fatalf("search Buy: got %v", got)
	}
	if view.IncompleteCount != 1 {
		t.Fatalf("search Buy: count = %d; want 1", view.IncompleteCount)
	}

	if _, err := f.tasks.Update(ctx, alice, milk.ID, TaskInput{Title: "Buy milk", Complete: true}); err != nil {
		t.Fatalf("complete milk: %v", err)
	}

	view, err = BuildTaskList(ctx, f.store, alice, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"buy bread", "Clean house", "Buy milk"}
	if got := titles(view.Tasks); !equalStrings(got, want) {
		t.Fatalf("unfiltered: got %v; want %v", got, want)
	}
	if view.IncompleteCount != 2 {
		t.Fatalf("unfiltered: count = %d; want 2", view.IncompleteCount)
	}

	view, err = BuildTaskList(ctx, f.store, bob, "")
	if err != nil {
		t.Fatalf("list for bob: %v", err)
	}
	if len(view.Tasks) != 0 || view.IncompleteCount != 0 {
		t.Fatalf("bob should see nothing, got %v (count %d)", titles(view.Tasks), view.IncompleteCount)
	}
}

func TestBuildTaskList_UsersAreIsolated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	for _, title := range []string{"a1", "a2"} {
		if _, err := f.tasks.Create(ctx, alice, TaskInput{Title: title}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := f.tasks.Create(ctx, bob, TaskInput{Title: "b1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, search := range []string{"", "a", "b"} {
		view, err := BuildTaskList(ctx, f.store, bob, search)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, task := range view.Tasks {
			if !task.OwnedBy(bob.ID) {
				t.Fatalf("search %q leaked task %q to bob", search, task.Title)
			}
		}
	}
}

func TestBuildTaskList_PrefixMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	const title = "Clean house"
	if _, err := f.tasks.Create(ctx, alice, TaskInput{Title: title}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 1; i <= len(title); i++ {
		view, err := BuildTaskList(ctx, f.store, alice, title[:i])
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(view.Tasks) != 1 {
			t.Fatalf("prefix %q should match", title[:i])
		}
	}

	for _, search := range []string{"house", "lean", "clean", "CLEAN", "Clean house "} {
		view, err := BuildTaskList(ctx, f.store, alice, search)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(view.Tasks) != 0 || view.IncompleteCount != 0 {
			t.Fatalf("%q should not match", search)
		}
	}
}

func TestBuildTaskList_EchoesSearchUntrimmed(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	view, err := BuildTaskList(context.Background(), f.store, alice, "  Buy ")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if view.SearchText != "  Buy " {
		t.Fatalf("search text = %q", view.SearchText)
	}
	if view.User.ID != alice.ID {
		t.Fatalf("view user mismatch")
	}
}

func TestBuildTaskList_RequiresUser(t *testing.T) {
	f := newFixture(t)
	if _, err := BuildTaskList(context.Background(), f.store, nil, ""); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
