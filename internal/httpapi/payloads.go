package httpapi

import (
	"time"

	"task-manager/internal/model"
	"task-manager/internal/service"
)

type RegisterIn struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginIn struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateUserIn struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password *string `json:"password"`
}

func (in UpdateUserIn) input() service.UpdateUserInput {
	out := service.UpdateUserInput{Username: in.Username, Email: in.Email}
	if in.Password != nil {
		out.Password = *in.Password
	}
	return out
}

type CategoryIn struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

type CreateTaskIn struct {
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Priority    *model.Priority `json:"priority"`
	DueDate     *time.Time      `json:"dueDate"`
	CategoryID  *uint           `json:"categoryId"`
}

type UpdateTaskIn struct {
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	IsCompleted bool            `json:"isCompleted"`
	Priority    *model.Priority `json:"priority"`
	DueDate     *time.Time      `json:"dueDate"`
	CategoryID  *uint           `json:"categoryId"`
}
