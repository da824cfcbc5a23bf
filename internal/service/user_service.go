package service

import (
	"context"
	"errors"

	"task-manager/internal/repository"
)

type UpdateUserInput struct {
	Username string
	Email    string
	Password string // empty keeps the current password
}

// UserService manages profiles. Users may only modify their own account.
type UserService struct {
	base
	users  *repository.UserRepository
	hasher PasswordHasher
}

func NewUserService(users *repository.UserRepository, hasher PasswordHasher, opts ...Option) *UserService {
	return &UserService{base: newBase(opts), users: users, hasher: hasher}
}

func (s *UserService) List(ctx context.Context) Result[[]UserView] {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return internalError[[]UserView](s.log, "failed to list users", err)
	}
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, newUserView(&users[i]))
	}
	return ok(views, "")
}

func (s *UserService) Get(ctx context.Context, id uint) Result[UserView] {
	user, err := s.users.FindActiveByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail[UserView](KindNotFound, "user not found")
	case err != nil:
		return internalError[UserView](s.log, "failed to get user", err, "user_id", id)
	}
	return ok(newUserView(user), "")
}

func (s *UserService) Update(ctx context.Context, callerID, id uint, in UpdateUserInput) Result[UserView] {
	if callerID != id {
		return fail[UserView](KindForbidden, "you can only update your own profile")
	}

	if _, err := s.users.FindActiveByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail[UserView](KindNotFound, "user not found")
		}
		return internalError[UserView](s.log, "failed to update user", err, "user_id", id)
	}

	taken, err := s.users.Taken(ctx, in.Username, in.Email, id)
	if err != nil {
		return internalError[UserView](s.log, "failed to update user", err, "user_id", id)
	}
	if taken {
		return fail[UserView](KindConflict, "username or email already in use")
	}

	var digest string
	if in.Password != "" {
		if digest, err = s.hasher.Hash(in.Password); err != nil {
			return internalError[UserView](s.log, "failed to update user", err, "user_id", id)
		}
	}

	if err := s.users.UpdateProfile(ctx, id, in.Username, in.Email, digest); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return fail[UserView](KindConflict, "username or email already in use")
		case errors.Is(err, repository.ErrNotFound):
			return fail[UserView](KindNotFound, "user not found")
		}
		return internalError[UserView](s.log, "failed to update user", err, "user_id", id)
	}

	user, err := s.users.FindActiveByID(ctx, id)
	if err != nil {
		return internalError[UserView](s.log, "failed to update user", err, "user_id", id)
	}
	return ok(newUserView(user), "user updated successfully")
}

// Delete deactivates the caller's own account.
func (s *UserService) Delete(ctx context.Context, callerID, id uint) Result[bool] {
	if callerID != id {
		return fail[bool](KindForbidden, "you can only delete your own profile")
	}
	if err := s.users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail[bool](KindNotFound, "user not found")
		}
		return internalError[bool](s.log, "failed to delete user", err, "user_id", id)
	}
	s.log.Info("user deactivated", "user_id", id)
	return ok(true, "user deleted successfully")
}
