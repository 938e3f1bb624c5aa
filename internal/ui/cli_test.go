package ui

import (
	"context"
	"testing"

	"github.com/fieldline/dispatch/internal/config"
	"github.com/fieldline/dispatch/internal/store"
	"github.com/fieldline/dispatch/internal/ticket"
)

func testApp(t *testing.T) (*App, *store.SQLite) {
	t.Helper()
	repo, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	DisableColor()
	return NewApp(repo, config.Default()), repo
}

func run(t *testing.T, a *App, args ...string) {
	t.Helper()
	a.root.SetArgs(args)
	if err := a.root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
}

func TestAddCreatesWorkOrder(t *testing.T) {
	a, repo := testApp(t)

	run(t, a, "add", "Replace compressor",
		"--customer=Acme Foods", "--priority=high", "--category=HVAC", "--hours=2.5")

	items, err := repo.ListWorkItems(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d work orders, want 1", len(items))
	}
	w := items[0]
	if w.Title != "Replace compressor" || w.Customer != "Acme Foods" {
		t.Errorf("got %+v", w)
	}
	if w.Priority != ticket.PriorityHigh {
		t.Errorf("priority = %v", w.Priority)
	}
	if w.EstimatedHours != 2.5 {
		t.Errorf("estimated hours = %v", w.EstimatedHours)
	}
	if w.Number == "" {
		t.Error("a display number should be generated when none is given")
	}
}

func TestAddRequiresCustomer(t *testing.T) {
	a, _ := testApp(t)

	a.root.SetArgs([]string{"add", "No customer"})
	if err := a.root.Execute(); err == nil {
		t.Error("add without --customer should fail")
	}
}

func TestTechAddRegistersTechnician(t *testing.T) {
	a, repo := testApp(t)

	run(t, a, "tech", "add", "Alice", "--color=#f38ba8")
	run(t, a, "tech", "add", "Bob")

	techs, err := repo.ListTechnicians(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(techs) != 2 {
		t.Fatalf("got %d technicians, want 2", len(techs))
	}
	if techs[0].Name != "Alice" || techs[0].AvatarColor != "#f38ba8" {
		t.Errorf("got %+v", techs[0])
	}

	// Re-adding with the same id updates in place.
	run(t, a, "tech", "add", "Alice R", "--id="+techs[0].ID)
	techs, err = repo.ListTechnicians(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(techs) != 2 {
		t.Fatalf("update created a duplicate: %d technicians", len(techs))
	}
}

func TestShowFindsByIDOrNumber(t *testing.T) {
	a, repo := testApp(t)

	w, err := ticket.NewWorkItem("WO-7", "Fix boiler", "Acme")
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateWorkItem(context.Background(), w); err != nil {
		t.Fatal(err)
	}

	run(t, a, "show", w.ID)
	run(t, a, "show", "WO-7")

	a.root.SetArgs([]string{"show", "WO-404"})
	if err := a.root.Execute(); err == nil {
		t.Error("show with an unknown number should fail")
	}
}
