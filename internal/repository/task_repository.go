package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// TaskRow is a task joined with the display fields of its category.
type TaskRow struct {
	model.Task
	CategoryName  *string
	CategoryColor *string
}

// TaskChanges is the full set of user-editable task columns.
type TaskChanges struct {
	Title       string
	Description *string
	IsCompleted bool
	Priority    model.Priority
	DueDate     *time.Time
	CategoryID  *uint
	UpdatedAt   time.Time
}

// TaskRepository handles CRUD for tasks. Every query is scoped by owner.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) joined(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Select("tasks.*, categories.name AS category_name, categories.color AS category_color").
		Joins("LEFT JOIN categories ON categories.id = tasks.category_id").
		Where("tasks.user_id = ?", userID)
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", translate(err))
	}
	return nil
}

// ListByUser orders by priority, then due date with undated tasks last.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uint) ([]TaskRow, error) {
	var tasks []TaskRow
	if err := r.joined(ctx, userID).
		Order("tasks.priority ASC, tasks.due_date ASC NULLS LAST, tasks.id ASC").
		Scan(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*TaskRow, error) {
	var tasks []TaskRow
	if err := r.joined(ctx, userID).Where("tasks.id = ?", taskID).Limit(1).Scan(&tasks).Error; err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	if len(tasks) == 0 {
		return nil, ErrNotFound
	}
	return &tasks[0], nil
}

// ListOverdue returns open tasks whose due date is strictly before now.
func (r *TaskRepository) ListOverdue(ctx context.Context, userID uint, now time.Time) ([]TaskRow, error) {
	var tasks []TaskRow
	if err := r.joined(ctx, userID).
		Where("tasks.due_date IS NOT NULL AND tasks.due_date < ? AND tasks.is_completed = ?", now, false).
		Order("tasks.due_date ASC, tasks.id ASC").
		Scan(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ListByPriority(ctx context.Context, userID uint, priority model.Priority) ([]TaskRow, error) {
	var tasks []TaskRow
	if err := r.joined(ctx, userID).
		Where("tasks.priority = ?", priority).
		Order("tasks.due_date ASC NULLS LAST, tasks.id ASC").
		Scan(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks by priority: %w", err)
	}
	return tasks, nil
}

// Update replaces the editable columns of a task owned by userID.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID uint, changes TaskChanges) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(map[string]interface{}{
			"title":        changes.Title,
			"description":  changes.Description,
			"is_completed": changes.IsCompleted,
			"priority":     changes.Priority,
			"due_date":     changes.DueDate,
			"category_id":  changes.CategoryID,
			"updated_at":   changes.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update task: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleCompleted flips is_completed in place so concurrent toggles never lose a transition.
func (r *TaskRepository) ToggleCompleted(ctx context.Context, userID, taskID uint, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(map[string]interface{}{
			"is_completed": gorm.Expr("NOT is_completed"),
			"updated_at":   updatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("toggle task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task for the given user.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
