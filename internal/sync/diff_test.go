package sync

import (
	"strings"
	"testing"

	"course-admin/internal/domain"
)

func existingCatalog() []domain.Course {
	return []domain.Course{
		{ID: "10", Name: "Go Basics", Description: "intro", Instructor: "Ana", Price: 19.99, ThumbnailURL: "go.png", VideoURL: "go.mp4"},
		{ID: "11", Name: "SQL", Description: "joins", Instructor: "Bo", Price: 29.99, ThumbnailURL: "sql.png", VideoURL: "sql.mp4"},
	}
}

func TestDiffClassifiesRows(t *testing.T) {
	incoming := []domain.Course{
		// no id: create
		{Name: "New Course", Description: "d", Instructor: "Cho", Price: 9.99, ThumbnailURL: "n.png", VideoURL: "n.mp4"},
		// known id, changed price: update
		{ID: "10", Name: "Go Basics", Description: "intro", Instructor: "Ana", Price: 24.99, ThumbnailURL: "go.png", VideoURL: "go.mp4"},
	}

	plan, err := Diff(incoming, existingCatalog())
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}

	if len(plan.Create) != 1 || plan.Create[0].Name != "New Course" {
		t.Errorf("Create = %+v, want one entry for New Course", plan.Create)
	}
	if len(plan.Update) != 1 || plan.Update[0].ID != "10" {
		t.Fatalf("Update = %+v, want one entry for id 10", plan.Update)
	}
	if plan.Update[0].Fields.Price != 24.99 {
		t.Errorf("update price = %v, want 24.99", plan.Update[0].Fields.Price)
	}
	if len(plan.Delete) != 1 || plan.Delete[0].ID != "11" {
		t.Errorf("Delete = %+v, want one entry for id 11", plan.Delete)
	}
}

func TestDiffUnchangedRowProducesNoUpdate(t *testing.T) {
	incoming := []domain.Course{
		// whitespace and a hair of price drift should not count as a change
		{ID: "10", Name: "  Go Basics ", Description: "intro", Instructor: "Ana", Price: 19.9901, ThumbnailURL: "go.png", VideoURL: "go.mp4"},
		{ID: "11", Name: "SQL", Description: "joins", Instructor: "Bo", Price: 29.99, ThumbnailURL: "sql.png", VideoURL: "sql.mp4"},
	}

	plan, err := Diff(incoming, existingCatalog())
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(plan.Create)+len(plan.Update)+len(plan.Delete) != 0 {
		t.Errorf("expected empty plan, got %+v", plan)
	}
}

func TestDiffUnknownID(t *testing.T) {
	incoming := []domain.Course{
		{ID: "999", Name: "Ghost", Description: "d", Instructor: "x", ThumbnailURL: "g.png", VideoURL: "g.mp4"},
	}

	_, err := Diff(incoming, existingCatalog())
	if err == nil {
		t.Fatal("Expected error for unknown id, got nil")
	}
	if !strings.Contains(err.Error(), "999") {
		t.Errorf("error %q should name the unknown id", err)
	}
}

func TestDiffDuplicateID(t *testing.T) {
	incoming := []domain.Course{
		{ID: "10", Name: "Go Basics", Description: "intro", Instructor: "Ana", Price: 19.99, ThumbnailURL: "go.png", VideoURL: "go.mp4"},
		{ID: "10", Name: "Go Basics v2", Description: "intro", Instructor: "Ana", Price: 19.99, ThumbnailURL: "go.png", VideoURL: "go.mp4"},
	}

	_, err := Diff(incoming, existingCatalog())
	if err == nil {
		t.Fatal("Expected error for duplicate id, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error %q should mention duplicate", err)
	}
}

func TestDiffEmptyInputsDeleteEverything(t *testing.T) {
	plan, err := Diff(nil, existingCatalog())
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(plan.Delete) != 2 {
		t.Errorf("got %d delete candidates, want 2", len(plan.Delete))
	}

	plan, err = Diff(nil, nil)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(plan.Create)+len(plan.Update)+len(plan.Delete) != 0 {
		t.Errorf("expected empty plan for empty inputs, got %+v", plan)
	}
}
