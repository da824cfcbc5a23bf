package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"task-manager/internal/service"
)

func newListUsersHandler(log *slog.Logger, svc *service.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.List(ctx))
	}
}

func newGetUserHandler(log *slog.Logger, svc *service.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathIDOrReject(log, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.Get(ctx, id))
	}
}

func newUpdateUserHandler(log *slog.Logger, svc *service.UserService, v *validator, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(log, w, r)
		if !ok {
			return
		}
		id, ok := pathIDOrReject(log, w, r)
		if !ok {
			return
		}

		var in UpdateUserIn
		if problems := v.decode(r, "user_update", &in); problems != nil {
			writeError(log, w, http.StatusBadRequest, "validation failed", problems...)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.Update(ctx, caller.ID, id, in.input()))
	}
}

func newDeleteUserHandler(log *slog.Logger, svc *service.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(log, w, r)
		if !ok {
			return
		}
		id, ok := pathIDOrReject(log, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.Delete(ctx, caller.ID, id))
	}
}

func newStatisticsHandler(log *slog.Logger, svc *service.StatisticsService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(log, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.ForUser(ctx, caller.ID))
	}
}
