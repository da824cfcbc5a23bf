package service

import (
	"time"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// UserView is the public profile of a user. The password digest never leaves the service layer.
type UserView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	IsActive  bool      `json:"isActive"`
}

type CategoryView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	TaskCount   int64     `json:"taskCount"`
}

type TaskView struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	Description   *string        `json:"description"`
	IsCompleted   bool           `json:"isCompleted"`
	Priority      model.Priority `json:"priority"`
	DueDate       *time.Time     `json:"dueDate"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	UserID        uint           `json:"userId"`
	CategoryID    *uint          `json:"categoryId"`
	CategoryName  *string        `json:"categoryName"`
	CategoryColor *string        `json:"categoryColor"`
}

func newUserView(u *model.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		IsActive:  u.IsActive,
	}
}

func newCategoryView(c *repository.CategoryWithCount) CategoryView {
	return CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
		TaskCount:   c.TaskCount,
	}
}

func newTaskView(t *repository.TaskRow) TaskView {
	return TaskView{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		IsCompleted:   t.IsCompleted,
		Priority:      t.Priority,
		DueDate:       t.DueDate,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		UserID:        t.UserID,
		CategoryID:    t.CategoryID,
		CategoryName:  t.CategoryName,
		CategoryColor: t.CategoryColor,
	}
}

func newTaskViews(rows []repository.TaskRow) []TaskView {
	views := make([]TaskView, 0, len(rows))
	for i := range rows {
		views = append(views, newTaskView(&rows[i]))
	}
	return views
}
