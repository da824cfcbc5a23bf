package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// CreateTaskInput represents data required to create a task.
type CreateTaskInput struct {
	Title       string
	Description *string
	Priority    *model.Priority // nil means low
	DueDate     *time.Time
	CategoryID  *uint
}

// UpdateTaskInput replaces every editable field of a task.
type UpdateTaskInput struct {
	Title       string
	Description *string
	IsCompleted bool
	Priority    *model.Priority // nil means low
	DueDate     *time.Time
	CategoryID  *uint
}

// TaskService wraps task-related business logic. Every call is scoped to the owning user.
type TaskService struct {
	base
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository, opts ...Option) *TaskService {
	return &TaskService{base: newBase(opts), taskRepo: taskRepo, categoryRepo: categoryRepo}
}

func (s *TaskService) List(ctx context.Context, userID uint) Result[[]TaskView] {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return internalError[[]TaskView](s.log, "failed to list tasks", err, "user_id", userID)
	}
	return ok(newTaskViews(tasks), "")
}

func (s *TaskService) Get(ctx context.Context, id, userID uint) Result[TaskView] {
	task, err := s.taskRepo.FindByID(ctx, userID, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail[TaskView](KindNotFound, "task not found")
	case err != nil:
		return internalError[TaskView](s.log, "failed to get task", err, "task_id", id, "user_id", userID)
	}
	return ok(newTaskView(task), "")
}

func (s *TaskService) Create(ctx context.Context, in CreateTaskInput, userID uint) Result[TaskView] {
	priority, valid := resolvePriority(in.Priority)
	if !valid {
		return fail[TaskView](KindValidation, "invalid task", "priority must be between 1 and 3")
	}
	if res, checked := s.checkCategory(ctx, in.CategoryID); !checked {
		return res
	}

	now := s.utcNow()
	task := model.Task{
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		DueDate:     utcPtr(in.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      userID,
		CategoryID:  in.CategoryID,
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return missingCategory(in.CategoryID)
		}
		return internalError[TaskView](s.log, "failed to create task", err, "user_id", userID)
	}

	return s.reload(ctx, task.ID, userID, "task created successfully")
}

func (s *TaskService) Update(ctx context.Context, id uint, in UpdateTaskInput, userID uint) Result[TaskView] {
	priority, valid := resolvePriority(in.Priority)
	if !valid {
		return fail[TaskView](KindValidation, "invalid task", "priority must be between 1 and 3")
	}
	if res, checked := s.checkCategory(ctx, in.CategoryID); !checked {
		return res
	}

	err := s.taskRepo.Update(ctx, userID, id, repository.TaskChanges{
		Title:       in.Title,
		Description: in.Description,
		IsCompleted: in.IsCompleted,
		Priority:    priority,
		DueDate:     utcPtr(in.DueDate),
		CategoryID:  in.CategoryID,
		UpdatedAt:   s.utcNow(),
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail[TaskView](KindNotFound, "task not found")
	case errors.Is(err, repository.ErrInvalidReference):
		return missingCategory(in.CategoryID)
	case err != nil:
		return internalError[TaskView](s.log, "failed to update task", err, "task_id", id, "user_id", userID)
	}

	return s.reload(ctx, id, userID, "task updated successfully")
}

// Delete removes a task completely.
func (s *TaskService) Delete(ctx context.Context, id, userID uint) Result[bool] {
	err := s.taskRepo.Delete(ctx, userID, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail[bool](KindNotFound, "task not found")
	case err != nil:
		return internalError[bool](s.log, "failed to delete task", err, "task_id", id, "user_id", userID)
	}
	return ok(true, "task deleted successfully")
}

// Toggle flips the completion flag. Two calls restore the original state.
func (s *TaskService) Toggle(ctx context.Context, id, userID uint) Result[bool] {
	err := s.taskRepo.ToggleCompleted(ctx, userID, id, s.utcNow())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail[bool](KindNotFound, "task not found")
	case err != nil:
		return internalError[bool](s.log, "failed to toggle task", err, "task_id", id, "user_id", userID)
	}
	return ok(true, "task status updated successfully")
}

// ListOverdue returns open tasks due strictly before the moment of the call.
func (s *TaskService) ListOverdue(ctx context.Context, userID uint) Result[[]TaskView] {
	tasks, err := s.taskRepo.ListOverdue(ctx, userID, s.utcNow())
	if err != nil {
		return internalError[[]TaskView](s.log, "failed to list overdue tasks", err, "user_id", userID)
	}
	return ok(newTaskViews(tasks), "")
}

func (s *TaskService) ListByPriority(ctx context.Context, userID uint, priority model.Priority) Result[[]TaskView] {
	if !priority.Valid() {
		return fail[[]TaskView](KindValidation, "priority must be between 1 and 3")
	}
	tasks, err := s.taskRepo.ListByPriority(ctx, userID, priority)
	if err != nil {
		return internalError[[]TaskView](s.log, "failed to list tasks by priority", err, "user_id", userID)
	}
	return ok(newTaskViews(tasks), "")
}

func (s *TaskService) reload(ctx context.Context, id, userID uint, message string) Result[TaskView] {
	task, err := s.taskRepo.FindByID(ctx, userID, id)
	if err != nil {
		return internalError[TaskView](s.log, "failed to load task", err, "task_id", id, "user_id", userID)
	}
	return ok(newTaskView(task), message)
}

// checkCategory rejects references to categories that do not exist.
func (s *TaskService) checkCategory(ctx context.Context, categoryID *uint) (Result[TaskView], bool) {
	if categoryID == nil {
		return Result[TaskView]{}, true
	}
	exists, err := s.categoryRepo.Exists(ctx, *categoryID)
	if err != nil {
		return internalError[TaskView](s.log, "failed to check category", err, "category_id", *categoryID), false
	}
	if !exists {
		return missingCategory(categoryID), false
	}
	return Result[TaskView]{}, true
}

func missingCategory(categoryID *uint) Result[TaskView] {
	if categoryID == nil {
		return fail[TaskView](KindValidation, "invalid task", "category does not exist")
	}
	return fail[TaskView](KindValidation, "invalid task", fmt.Sprintf("category %d does not exist", *categoryID))
}

func resolvePriority(p *model.Priority) (model.Priority, bool) {
	if p == nil {
		return model.PriorityLow, true
	}
	return *p, p.Valid()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
