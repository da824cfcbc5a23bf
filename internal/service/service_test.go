package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"task-manager/internal/auth"
	"task-manager/internal/model"
	"task-manager/internal/repository"
	"task-manager/internal/testutil"
)

var testStart = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	users      *repository.UserRepository
	identity   *IdentityService
	userSvc    *UserService
	categories *CategoryService
	tasks      *TaskService
	stats      *StatisticsService
	tokens     *auth.TokenManager
	clock      *testutil.Clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	clock := testutil.NewClock(testStart, time.Second)
	opts := []Option{WithClock(clock.Now), WithLogger(testutil.Logger())}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewTokenManager("0123456789abcdef0123456789abcdef", "task-manager", "clients", time.Hour)

	return &fixture{
		users:      userRepo,
		identity:   NewIdentityService(userRepo, hasher, tokens, opts...),
		userSvc:    NewUserService(userRepo, hasher, opts...),
		categories: NewCategoryService(categoryRepo, opts...),
		tasks:      NewTaskService(taskRepo, categoryRepo, opts...),
		stats:      NewStatisticsService(taskRepo, opts...),
		tokens:     tokens,
		clock:      clock,
	}
}

// mustRegister registers a user and returns its id taken from the issued token.
func (f *fixture) mustRegister(t *testing.T, username string) uint {
	t.Helper()

	res := f.identity.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	if !res.Success {
		t.Fatalf("register %q: %s %v", username, res.Message, res.Errors)
	}
	id, err := f.tokens.Parse(res.Data)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	return id.ID
}

func (f *fixture) mustCreateCategory(t *testing.T, name, color string) CategoryView {
	t.Helper()

	res := f.categories.Create(context.Background(), CategoryInput{Name: name, Color: color})
	if !res.Success {
		t.Fatalf("create category %q: %s %v", name, res.Message, res.Errors)
	}
	return res.Data
}

func (f *fixture) mustCreateTask(t *testing.T, userID uint, in CreateTaskInput) TaskView {
	t.Helper()

	res := f.tasks.Create(context.Background(), in, userID)
	if !res.Success {
		t.Fatalf("create task %q: %s %v", in.Title, res.Message, res.Errors)
	}
	return res.Data
}

func expectKind[T any](t *testing.T, res Result[T], want ErrorKind) {
	t.Helper()

	if res.Success {
		t.Fatalf("expected %v failure, got success: %+v", want, res.Data)
	}
	if res.Kind != want {
		t.Fatalf("expected %v, got %v (%s %v)", want, res.Kind, res.Message, res.Errors)
	}
	if res.Errors == nil {
		t.Fatalf("expected non-nil errors slice")
	}
}

func ptr[T any](v T) *T {
	return &v
}

func priority(p int) *model.Priority {
	v := model.Priority(p)
	return &v
}
