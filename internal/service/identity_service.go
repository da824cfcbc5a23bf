package service

import (
	"context"
	"errors"
	"sync"

	"task-manager/internal/auth"
	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// PasswordHasher turns passwords into digests and checks them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// TokenIssuer mints a signed token for an identity.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

const msgInvalidCredentials = "invalid credentials"

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

// IdentityService registers users, checks credentials and mints tokens.
type IdentityService struct {
	base
	users  *repository.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer

	dummyMu     sync.Mutex
	dummyDigest string
}

func NewIdentityService(users *repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, opts ...Option) *IdentityService {
	return &IdentityService{base: newBase(opts), users: users, hasher: hasher, tokens: tokens}
}

func (s *IdentityService) Register(ctx context.Context, in RegisterInput) Result[string] {
	taken, err := s.users.Taken(ctx, in.Username, in.Email, 0)
	if err != nil {
		return internalError[string](s.log, "failed to register user", err)
	}
	if taken {
		return fail[string](KindConflict, "username or email already exists")
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return internalError[string](s.log, "failed to register user", err)
	}

	user := model.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  digest,
		IsActive:  true,
		CreatedAt: s.utcNow(),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		// The unique index catches registrations that raced past the check above.
		if errors.Is(err, repository.ErrDuplicate) {
			return fail[string](KindConflict, "username or email already exists")
		}
		return internalError[string](s.log, "failed to register user", err)
	}

	token, err := s.tokens.Issue(identityOf(&user))
	if err != nil {
		return internalError[string](s.log, "failed to register user", err, "user_id", user.ID)
	}

	s.log.Info("user registered", "user_id", user.ID)
	return ok(token, "user registered successfully")
}

func (s *IdentityService) Login(ctx context.Context, in LoginInput) Result[string] {
	user, err := s.users.FindActiveByUsername(ctx, in.Username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.equalizeTiming(in.Password)
		return fail[string](KindUnauthorized, msgInvalidCredentials)
	case err != nil:
		return internalError[string](s.log, "failed to log in", err)
	}

	if !s.hasher.Verify(in.Password, user.Password) {
		return fail[string](KindUnauthorized, msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(identityOf(user))
	if err != nil {
		return internalError[string](s.log, "failed to log in", err, "user_id", user.ID)
	}
	return ok(token, "login successful")
}

// Current returns the profile behind an authenticated identity.
func (s *IdentityService) Current(ctx context.Context, id uint) Result[UserView] {
	user, err := s.users.FindActiveByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail[UserView](KindNotFound, "user not found")
	case err != nil:
		return internalError[UserView](s.log, "failed to get user", err, "user_id", id)
	}
	return ok(newUserView(user), "")
}

// equalizeTiming spends the bcrypt work of a real comparison when the user is unknown.
func (s *IdentityService) equalizeTiming(password string) {
	if digest := s.dummy(); digest != "" {
		s.hasher.Verify(password, digest)
		return
	}
	_, _ = s.hasher.Hash(password)
}

// dummy returns the cached digest unknown users are checked against. A failed
// hash is not cached, so the next call tries again.
func (s *IdentityService) dummy() string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyDigest == "" {
		digest, err := s.hasher.Hash("timing-equalizer")
		if err != nil {
			s.log.Warn("cannot prepare dummy digest", "error", err)
			return ""
		}
		s.dummyDigest = digest
	}
	return s.dummyDigest
}

func identityOf(u *model.User) auth.Identity {
	return auth.Identity{ID: u.ID, Username: u.Username, Email: u.Email}
}
