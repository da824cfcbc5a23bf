package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"task-manager/internal/model"
	"task-manager/internal/service"
)

func newListTasksHandler(log *slog.Logger, svc *service.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(log, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.List(ctx, caller.ID))
	}
}

func newOverdueTasksHandler(log *slog.Logger, svc *service.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(log, w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.ListOverdue(ctx, caller.ID))
	}
}

func newTasksByPriorityHandler(log *slog.Logger, svc *service.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(log, w, r)
		if !ok {
			return
		}
		p, err := strconv.Atoi(r.PathValue("priority"))
		if err != nil {
			writeError(log, w, http.StatusBadRequest, "invalid priority", "priority must be an integer between 1 and 3")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		writeResult(log, w, http.StatusOK, svc.ListByPriority(ctx, caller.ID, model.Priority(p)))
	}
}

func newGetTaskHandler(log *slog.Logger, svc *service.TaskService, timeout time.Duration) http.HandlerFunc {
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

		writeResult(log, w, http.StatusOK, svc.Get(ctx, id, caller.ID))
	}
}

func newCreateTaskHandler(log *slog.Logger, svc *service.TaskService, v *validator, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(log, w, r)
		if !ok {
			return
		}

		var in CreateTaskIn
		if problems := v.decode(r, "task_create", &in); problems != nil {
			writeError(log, w, http.StatusBadRequest, "validation failed", problems...)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		res := svc.Create(ctx, service.CreateTaskInput{
			Title:       in.Title,
			Description: in.Description,
			Priority:    in.Priority,
			DueDate:     in.DueDate,
			CategoryID:  in.CategoryID,
		}, caller.ID)
		writeResult(log, w, http.StatusCreated, res)
	}
}

func newUpdateTaskHandler(log *slog.Logger, svc *service.TaskService, v *validator, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOrReject(log, w, r)
		if !ok {
			return
		}
		id, ok := pathIDOrReject(log, w, r)
		if !ok {
			return
		}

		var in UpdateTaskIn
		if problems := v.decode(r, "task_update", &in); problems != nil {
			writeError(log, w, http.StatusBadRequest, "validation failed", problems...)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		res := svc.Update(ctx, id, service.UpdateTaskInput{
			Title:       in.Title,
			Description: in.Description,
			IsCompleted: in.IsCompleted,
			Priority:    in.Priority,
			DueDate:     in.DueDate,
			CategoryID:  in.CategoryID,
		}, caller.ID)
		writeResult(log, w, http.StatusOK, res)
	}
}

func newDeleteTaskHandler(log *slog.Logger, svc *service.TaskService, timeout time.Duration) http.HandlerFunc {
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

		writeResult(log, w, http.StatusOK, svc.Delete(ctx, id, caller.ID))
	}
}

func newToggleTaskHandler(log *slog.Logger, svc *service.TaskService, timeout time.Duration) http.HandlerFunc {
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

		writeResult(log, w, http.StatusOK, svc.Toggle(ctx, id, caller.ID))
	}
}
