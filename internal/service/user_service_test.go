package service

import (
	"context"
	"testing"
)

func TestUserUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	annID := f.mustRegister(t, "ann")
	bobID := f.mustRegister(t, "bob")

	expectKind(t, f.userSvc.Update(ctx, bobID, annID, UpdateUserInput{Username: "x", Email: "x@example.com"}), KindForbidden)
	expectKind(t, f.userSvc.Update(ctx, annID, annID, UpdateUserInput{Username: "bob", Email: "ann@example.com"}), KindConflict)

	res := f.userSvc.Update(ctx, annID, annID, UpdateUserInput{Username: "anna", Email: "anna@example.com", Password: "new-password"})
	if !res.Success {
		t.Fatalf("Update failed: %s %v", res.Message, res.Errors)
	}
	if res.Data.Username != "anna" || res.Data.Email != "anna@example.com" {
		t.Fatalf("profile not updated: %+v", res.Data)
	}

	expectKind(t, f.identity.Login(ctx, LoginInput{Username: "anna", Password: "password123"}), KindUnauthorized)
	if login := f.identity.Login(ctx, LoginInput{Username: "anna", Password: "new-password"}); !login.Success {
		t.Fatalf("login with new password failed: %s", login.Message)
	}
}

func TestUserUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	annID := f.mustRegister(t, "ann")

	if res := f.userSvc.Update(ctx, annID, annID, UpdateUserInput{Username: "ann", Email: "ann@example.org"}); !res.Success {
		t.Fatalf("Update failed: %s", res.Message)
	}
	if login := f.identity.Login(ctx, LoginInput{Username: "ann", Password: "password123"}); !login.Success {
		t.Fatalf("old password should still work: %s", login.Message)
	}
}

func TestUserDeleteIsSoft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	annID := f.mustRegister(t, "ann")
	bobID := f.mustRegister(t, "bob")
	f.mustCreateTask(t, annID, CreateTaskInput{Title: "keep me"})

	expectKind(t, f.userSvc.Delete(ctx, bobID, annID), KindForbidden)

	if res := f.userSvc.Delete(ctx, annID, annID); !res.Success || !res.Data {
		t.Fatalf("Delete failed: %s", res.Message)
	}
	expectKind(t, f.userSvc.Delete(ctx, annID, annID), KindNotFound)
	expectKind(t, f.userSvc.Get(ctx, annID), KindNotFound)

	list := f.userSvc.List(ctx)
	if !list.Success || len(list.Data) != 1 || list.Data[0].ID != bobID {
		t.Fatalf("expected only bob to be listed, got %+v", list.Data)
	}

	// Historical tasks survive the soft delete.
	tasks := f.tasks.List(ctx, annID)
	if !tasks.Success || len(tasks.Data) != 1 {
		t.Fatalf("expected the task to remain, got %+v", tasks.Data)
	}

	// A deactivated identity still holds its username.
	res := f.identity.Register(ctx, RegisterInput{Username: "ann", Email: "new@example.com", Password: "password123"})
	expectKind(t, res, KindConflict)
}
