package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"task-manager/internal/service"
)

func newListCategoriesHandler(log *slog.Logger, svc *service.CategoryService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.List(ctx))
	}
}

func newGetCategoryHandler(log *slog.Logger, svc *service.CategoryService, timeout time.Duration) http.HandlerFunc {
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

func newCreateCategoryHandler(log *slog.Logger, svc *service.CategoryService, v *validator, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in CategoryIn
		if problems := v.decode(r, "category", &in); problems != nil {
			writeError(log, w, http.StatusBadRequest, "validation failed", problems...)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		res := svc.Create(ctx, service.CategoryInput{Name: in.Name, Description: in.Description, Color: in.Color})
		writeResult(log, w, http.StatusCreated, res)
	}
}

func newUpdateCategoryHandler(log *slog.Logger, svc *service.CategoryService, v *validator, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathIDOrReject(log, w, r)
		if !ok {
			return
		}

		var in CategoryIn
		if problems := v.decode(r, "category", &in); problems != nil {
			writeError(log, w, http.StatusBadRequest, "validation failed", problems...)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		res := svc.Update(ctx, id, service.CategoryInput{Name: in.Name, Description: in.Description, Color: in.Color})
		writeResult(log, w, http.StatusOK, res)
	}
}

func newDeleteCategoryHandler(log *slog.Logger, svc *service.CategoryService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathIDOrReject(log, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.Delete(ctx, id))
	}
}
