package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"task-manager/internal/service"
)

func newRegisterHandler(log *slog.Logger, svc *service.IdentityService, v *validator, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in RegisterIn
		if problems := v.decode(r, "register", &in); problems != nil {
			writeError(log, w, http.StatusBadRequest, "validation failed", problems...)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		res := svc.Register(ctx, service.RegisterInput{Username: in.Username, Email: in.Email, Password: in.Password})
		writeResult(log, w, http.StatusOK, res)
	}
}

func newLoginHandler(log *slog.Logger, svc *service.IdentityService, v *validator, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in LoginIn
		if problems := v.decode(r, "login", &in); problems != nil {
			writeError(log, w, http.StatusBadRequest, "validation failed", problems...)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.Login(ctx, service.LoginInput{Username: in.Username, Password: in.Password}))
	}
}

func newCurrentUserHandler(log *slog.Logger, svc *service.IdentityService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(log, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.Current(ctx, caller.ID))
	}
}
