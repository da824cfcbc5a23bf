package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"task-manager/internal/auth"
	"task-manager/internal/service"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Deps are the collaborators the HTTP layer dispatches to.
type Deps struct {
	Identity   *service.IdentityService
	Users      *service.UserService
	Categories *service.CategoryService
	Tasks      *service.TaskService
	Statistics *service.StatisticsService
	Tokens     TokenParser
	Accounts   ActiveChecker
	Pingers    map[string]Pinger
}

// NewRouter wires every route. timeout bounds the service call of each request.
func NewRouter(log *slog.Logger, deps Deps, timeout time.Duration) (http.Handler, error) {
	v, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("init validator: %w", err)
	}

	mux := http.NewServeMux()
	private := func(h http.HandlerFunc) http.Handler {
		return authenticate(log, deps.Tokens, deps.Accounts)(h)
	}

	mux.Handle("GET /api/ping", newPingHandler(log, deps.Pingers, timeout))

	mux.Handle("POST /api/auth/register", newRegisterHandler(log, deps.Identity, v, timeout))
	mux.Handle("POST /api/auth/login", newLoginHandler(log, deps.Identity, v, timeout))
	mux.Handle("GET /api/auth/me", private(newCurrentUserHandler(log, deps.Identity, timeout)))

	mux.Handle("GET /api/users", private(newListUsersHandler(log, deps.Users, timeout)))
	mux.Handle("GET /api/users/statistics", private(newStatisticsHandler(log, deps.Statistics, timeout)))
	mux.Handle("GET /api/users/{id}", private(newGetUserHandler(log, deps.Users, timeout)))
	mux.Handle("PUT /api/users/{id}", private(newUpdateUserHandler(log, deps.Users, v, timeout)))
	mux.Handle("DELETE /api/users/{id}", private(newDeleteUserHandler(log, deps.Users, timeout)))

	mux.Handle("GET /api/categories", private(newListCategoriesHandler(log, deps.Categories, timeout)))
	mux.Handle("POST /api/categories", private(newCreateCategoryHandler(log, deps.Categories, v, timeout)))
	mux.Handle("GET /api/categories/{id}", private(newGetCategoryHandler(log, deps.Categories, timeout)))
	mux.Handle("PUT /api/categories/{id}", private(newUpdateCategoryHandler(log, deps.Categories, v, timeout)))
	mux.Handle("DELETE /api/categories/{id}", private(newDeleteCategoryHandler(log, deps.Categories, timeout)))

	mux.Handle("GET /api/tasks", private(newListTasksHandler(log, deps.Tasks, timeout)))
	mux.Handle("POST /api/tasks", private(newCreateTaskHandler(log, deps.Tasks, v, timeout)))
	mux.Handle("GET /api/tasks/overdue", private(newOverdueTasksHandler(log, deps.Tasks, timeout)))
	mux.Handle("GET /api/tasks/priority/{priority}", private(newTasksByPriorityHandler(log, deps.Tasks, timeout)))
	mux.Handle("GET /api/tasks/{id}", private(newGetTaskHandler(log, deps.Tasks, timeout)))
	mux.Handle("PUT /api/tasks/{id}", private(newUpdateTaskHandler(log, deps.Tasks, v, timeout)))
	mux.Handle("DELETE /api/tasks/{id}", private(newDeleteTaskHandler(log, deps.Tasks, timeout)))
	mux.Handle("PATCH /api/tasks/{id}/toggle", private(newToggleTaskHandler(log, deps.Tasks, timeout)))

	return chain(mux, requestID, accessLog(log), recoverer(log)), nil
}

func newPingHandler(log *slog.Logger, pingers map[string]Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out := map[string]string{}
		code := http.StatusOK
		var down []string

		for name, p := range pingers {
			if err := p.Ping(ctx); err != nil {
				log.Warn("ping failed", "service", name, "error", err)
				out[name] = "down"
				down = append(down, name+" is down")
				code = http.StatusServiceUnavailable
			} else {
				out[name] = "ok"
			}
		}

		writeJSON(log, w, code, envelope{
			Success: code == http.StatusOK,
			Data:    map[string]any{"services": out},
			Message: http.StatusText(code),
			Errors:  down,
		})
	}
}

func pathIDOrReject(log *slog.Logger, w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		writeError(log, w, http.StatusBadRequest, "invalid id", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func callerOrReject(log *slog.Logger, w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	caller, ok := identityFrom(r.Context())
	if !ok {
		writeError(log, w, http.StatusUnauthorized, "authentication required")
		return auth.Identity{}, false
	}
	return caller, true
}
