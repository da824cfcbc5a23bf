package service

import (
	"context"
	"testing"

	"task-manager/internal/model"
)

func TestCategoryCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.categories.Create(ctx, CategoryInput{Name: "Work", Description: ptr("office"), Color: "#e74c3c"})
	if !res.Success {
		t.Fatalf("Create failed: %s %v", res.Message, res.Errors)
	}
	if res.Data.ID == 0 || res.Data.Color != "#e74c3c" || res.Data.TaskCount != 0 {
		t.Fatalf("unexpected category: %+v", res.Data)
	}
	if res.Data.Description == nil || *res.Data.Description != "office" {
		t.Fatalf("description not stored: %v", res.Data.Description)
	}

	defaulted := f.categories.Create(ctx, CategoryInput{Name: "Home"})
	if !defaulted.Success || defaulted.Data.Color != model.DefaultCategoryColor {
		t.Fatalf("expected default color, got %+v", defaulted.Data)
	}

	expectKind(t, f.categories.Create(ctx, CategoryInput{Name: "Work"}), KindConflict)
	expectKind(t, f.categories.Create(ctx, CategoryInput{Name: "Bad", Color: "red"}), KindValidation)

	short := f.categories.Create(ctx, CategoryInput{Name: "Short", Color: "#abc"})
	if !short.Success {
		t.Fatalf("#RGB colors must be accepted: %v", short.Errors)
	}
}

func TestCategoryUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	work := f.mustCreateCategory(t, "Work", "#e74c3c")
	f.mustCreateCategory(t, "Home", "")

	expectKind(t, f.categories.Update(ctx, 999, CategoryInput{Name: "X"}), KindNotFound)
	expectKind(t, f.categories.Update(ctx, work.ID, CategoryInput{Name: "Home"}), KindConflict)

	// Keeping its own name is not a conflict.
	res := f.categories.Update(ctx, work.ID, CategoryInput{Name: "Work", Color: "#000000"})
	if !res.Success {
		t.Fatalf("Update failed: %s", res.Message)
	}
	if res.Data.Color != "#000000" || res.Data.Description != nil {
		t.Fatalf("unexpected category: %+v", res.Data)
	}
}

func TestCategoryListCountsTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	annID := f.mustRegister(t, "ann")
	bobID := f.mustRegister(t, "bob")
	work := f.mustCreateCategory(t, "Work", "")
	f.mustCreateCategory(t, "Home", "")

	f.mustCreateTask(t, annID, CreateTaskInput{Title: "a", CategoryID: &work.ID})
	f.mustCreateTask(t, bobID, CreateTaskInput{Title: "b", CategoryID: &work.ID})
	f.mustCreateTask(t, annID, CreateTaskInput{Title: "c"})

	res := f.categories.List(ctx)
	if !res.Success {
		t.Fatalf("List failed: %s", res.Message)
	}
	counts := map[string]int64{}
	for _, c := range res.Data {
		counts[c.Name] = c.TaskCount
	}
	if counts["Work"] != 2 || counts["Home"] != 0 || len(counts) != 2 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if res.Data[0].Name != "Home" {
		t.Fatalf("expected categories ordered by name, got %q first", res.Data[0].Name)
	}

	got := f.categories.Get(ctx, work.ID)
	if !got.Success || got.Data.TaskCount != 2 {
		t.Fatalf("Get: unexpected %+v", got.Data)
	}
	expectKind(t, f.categories.Get(ctx, 999), KindNotFound)
}

func TestCategoryDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	annID := f.mustRegister(t, "ann")
	work := f.mustCreateCategory(t, "Work", "")
	empty := f.mustCreateCategory(t, "Empty", "")
	task := f.mustCreateTask(t, annID, CreateTaskInput{Title: "Ship", CategoryID: &work.ID})

	expectKind(t, f.categories.Delete(ctx, work.ID), KindConflict)

	// Refusal leaves both the category and its task untouched.
	if res := f.categories.Get(ctx, work.ID); !res.Success || res.Data.TaskCount != 1 {
		t.Fatalf("category changed after refused delete: %+v", res.Data)
	}
	kept := f.tasks.Get(ctx, task.ID, annID)
	if !kept.Success || kept.Data.CategoryID == nil || *kept.Data.CategoryID != work.ID {
		t.Fatalf("task changed after refused delete: %+v", kept.Data)
	}

	if res := f.categories.Delete(ctx, empty.ID); !res.Success || !res.Data {
		t.Fatalf("Delete failed: %s", res.Message)
	}
	expectKind(t, f.categories.Get(ctx, empty.ID), KindNotFound)
	expectKind(t, f.categories.Delete(ctx, empty.ID), KindNotFound)
}

func TestSeedDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.categories.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	if err := f.categories.SeedDefaults(ctx); err != nil {
		t.Fatalf("second SeedDefaults: %v", err)
	}

	res := f.categories.List(ctx)
	if !res.Success || len(res.Data) != len(DefaultCategories()) {
		t.Fatalf("expected %d seeded categories, got %+v", len(DefaultCategories()), res.Data)
	}
}
