package service

import (
	"context"
	"math"
	"time"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// NoCategoryLabel groups tasks that have no category.
const NoCategoryLabel = "No category"

// Statistics summarizes a user's tasks.
type Statistics struct {
	TotalTasks      int                    `json:"totalTasks"`
	CompletedTasks  int                    `json:"completedTasks"`
	PendingTasks    int                    `json:"pendingTasks"`
	OverdueTasks    int                    `json:"overdueTasks"`
	CompletionRate  float64                `json:"completionRate"`
	TasksByCategory map[string]int         `json:"tasksByCategory"`
	TasksByPriority map[model.Priority]int `json:"tasksByPriority"`
}

// StatisticsService builds aggregate metrics over the same task set TaskService manages.
type StatisticsService struct {
	base
	taskRepo *repository.TaskRepository
}

func NewStatisticsService(taskRepo *repository.TaskRepository, opts ...Option) *StatisticsService {
	return &StatisticsService{base: newBase(opts), taskRepo: taskRepo}
}

func (s *StatisticsService) ForUser(ctx context.Context, userID uint) Result[Statistics] {
	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return internalError[Statistics](s.log, "failed to compute statistics", err, "user_id", userID)
	}
	return ok(summarize(tasks, s.utcNow()), "")
}

func summarize(tasks []repository.TaskRow, now time.Time) Statistics {
	stats := Statistics{
		TotalTasks:      len(tasks),
		TasksByCategory: make(map[string]int),
		TasksByPriority: make(map[model.Priority]int),
	}

	for _, task := range tasks {
		if task.IsCompleted {
			stats.CompletedTasks++
		} else if task.DueDate != nil && task.DueDate.Before(now) {
			stats.OverdueTasks++
		}

		// Grouped by display name; a dangling reference has no name and counts as uncategorized.
		label := NoCategoryLabel
		if task.CategoryName != nil {
			label = *task.CategoryName
		}
		stats.TasksByCategory[label]++
		stats.TasksByPriority[task.Priority]++
	}

	stats.PendingTasks = stats.TotalTasks - stats.CompletedTasks
	if stats.TotalTasks > 0 {
		rate := float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}
	return stats
}
