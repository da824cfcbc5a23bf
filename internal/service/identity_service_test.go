package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"task-manager/internal/auth"
	"task-manager/internal/repository"
	"task-manager/internal/testutil"
)

func TestRegisterIssuesTokenAndHashesPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.identity.Register(ctx, RegisterInput{Username: "ann", Email: "ann@example.com", Password: "password123"})
	if !res.Success {
		t.Fatalf("Register failed: %s %v", res.Message, res.Errors)
	}

	id, err := f.tokens.Parse(res.Data)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if id.Username != "ann" || id.Email != "ann@example.com" || id.ID == 0 {
		t.Fatalf("unexpected claims: %+v", id)
	}

	user, err := f.users.FindActiveByID(ctx, id.ID)
	if err != nil {
		t.Fatalf("FindActiveByID: %v", err)
	}
	if user.Password == "password123" || user.Password == "" {
		t.Fatalf("password stored in plaintext or missing: %q", user.Password)
	}
	if !user.IsActive {
		t.Fatalf("new user must be active")
	}
	if !user.CreatedAt.Equal(testStart) {
		t.Fatalf("CreatedAt: got %v, want %v", user.CreatedAt, testStart)
	}
}

func TestRegisterConflicts(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		want     ErrorKind
	}{
		{"same username", "ann", "other@example.com", KindConflict},
		{"same email", "other", "ann@example.com", KindConflict},
		{"username differs by case", "Ann", "other@example.com", KindNone},
		{"email differs by case", "other", "ANN@example.com", KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.mustRegister(t, "ann")

			res := f.identity.Register(context.Background(), RegisterInput{
				Username: tt.username,
				Email:    tt.email,
				Password: "password123",
			})
			if tt.want == KindNone {
				if !res.Success {
					t.Fatalf("expected success, got %v: %s", res.Kind, res.Message)
				}
				return
			}
			expectKind(t, res, tt.want)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.mustRegister(t, "ann")

	res := f.identity.Login(ctx, LoginInput{Username: "ann", Password: "password123"})
	if !res.Success {
		t.Fatalf("Login failed: %s", res.Message)
	}
	id, err := f.tokens.Parse(res.Data)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if id.ID != userID {
		t.Fatalf("token id: got %d, want %d", id.ID, userID)
	}

	wrongPassword := f.identity.Login(ctx, LoginInput{Username: "ann", Password: "nope-nope"})
	expectKind(t, wrongPassword, KindUnauthorized)

	unknownUser := f.identity.Login(ctx, LoginInput{Username: "bob", Password: "password123"})
	expectKind(t, unknownUser, KindUnauthorized)

	if wrongPassword.Message != unknownUser.Message {
		t.Fatalf("login failures must not be distinguishable: %q vs %q", wrongPassword.Message, unknownUser.Message)
	}
}

func TestLoginRejectsDeactivatedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.mustRegister(t, "ann")

	if res := f.userSvc.Delete(ctx, userID, userID); !res.Success {
		t.Fatalf("Delete failed: %s", res.Message)
	}

	expectKind(t, f.identity.Login(ctx, LoginInput{Username: "ann", Password: "password123"}), KindUnauthorized)
	expectKind(t, f.identity.Current(ctx, userID), KindNotFound)
}

func TestCurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.mustRegister(t, "ann")

	res := f.identity.Current(ctx, userID)
	if !res.Success {
		t.Fatalf("Current failed: %s", res.Message)
	}
	if res.Data.ID != userID || res.Data.Username != "ann" || !res.Data.IsActive {
		t.Fatalf("unexpected profile: %+v", res.Data)
	}

	expectKind(t, f.identity.Current(ctx, userID+100), KindNotFound)
}

// flakyHasher fails the first failHash calls to Hash and records every digest it verifies against.
type flakyHasher struct {
	inner     *auth.BcryptHasher
	failHash  int
	hashCalls int
	verified  []string
}

func (h *flakyHasher) Hash(password string) (string, error) {
	h.hashCalls++
	if h.failHash > 0 {
		h.failHash--
		return "", errors.New("entropy unavailable")
	}
	return h.inner.Hash(password)
}

func (h *flakyHasher) Verify(password, digest string) bool {
	h.verified = append(h.verified, digest)
	return h.inner.Verify(password, digest)
}

func TestUnknownUserLoginRecoversFromHashFailure(t *testing.T) {
	hasher := &flakyHasher{inner: auth.NewBcryptHasher(bcrypt.MinCost), failHash: 2}
	tokens := auth.NewTokenManager("0123456789abcdef0123456789abcdef", "task-manager", "clients", time.Hour)
	svc := NewIdentityService(repository.NewUserRepository(testutil.NewDB(t)), hasher, tokens, WithLogger(testutil.Logger()))
	ctx := context.Background()
	login := LoginInput{Username: "ghost", Password: "password123"}

	// Both the dummy digest and the fallback hash fail; the work is still attempted.
	expectKind(t, svc.Login(ctx, login), KindUnauthorized)
	if hasher.hashCalls != 2 || len(hasher.verified) != 0 {
		t.Fatalf("first login: hash calls %d, verifies %d", hasher.hashCalls, len(hasher.verified))
	}

	// The dummy digest is retried rather than left empty.
	expectKind(t, svc.Login(ctx, login), KindUnauthorized)
	if hasher.hashCalls != 3 || len(hasher.verified) != 1 || hasher.verified[0] == "" {
		t.Fatalf("second login: hash calls %d, verified %q", hasher.hashCalls, hasher.verified)
	}

	expectKind(t, svc.Login(ctx, login), KindUnauthorized)
	if hasher.hashCalls != 3 || len(hasher.verified) != 2 || hasher.verified[1] != hasher.verified[0] {
		t.Fatalf("third login must reuse the cached digest: hash calls %d, verified %q", hasher.hashCalls, hasher.verified)
	}
}
