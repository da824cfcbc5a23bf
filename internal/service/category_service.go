package service

import (
	"context"
	"errors"
	"regexp"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

var hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

type CategoryInput struct {
	Name        string
	Description *string
	Color       string // empty means the default color
}

// CategoryService manages the categories shared by all users.
type CategoryService struct {
	base
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository, opts ...Option) *CategoryService {
	return &CategoryService{base: newBase(opts), repo: repo}
}

func (s *CategoryService) List(ctx context.Context) Result[[]CategoryView] {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return internalError[[]CategoryView](s.log, "failed to list categories", err)
	}
	views := make([]CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, newCategoryView(&categories[i]))
	}
	return ok(views, "")
}

func (s *CategoryService) Get(ctx context.Context, id uint) Result[CategoryView] {
	category, err := s.repo.GetByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail[CategoryView](KindNotFound, "category not found")
	case err != nil:
		return internalError[CategoryView](s.log, "failed to get category", err, "category_id", id)
	}
	return ok(newCategoryView(category), "")
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) Result[CategoryView] {
	color, valid := normalizeColor(in.Color)
	if !valid {
		return fail[CategoryView](KindValidation, "invalid category", "color must be a valid hex color code")
	}

	taken, err := s.repo.NameTaken(ctx, in.Name, 0)
	if err != nil {
		return internalError[CategoryView](s.log, "failed to create category", err)
	}
	if taken {
		return fail[CategoryView](KindConflict, "a category with that name already exists")
	}

	category := model.Category{
		Name:        in.Name,
		Description: in.Description,
		Color:       color,
		CreatedAt:   s.utcNow(),
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fail[CategoryView](KindConflict, "a category with that name already exists")
		}
		return internalError[CategoryView](s.log, "failed to create category", err)
	}

	s.log.Info("category created", "category_id", category.ID, "name", category.Name)
	return ok(newCategoryView(&repository.CategoryWithCount{Category: category}), "category created successfully")
}

func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) Result[CategoryView] {
	color, valid := normalizeColor(in.Color)
	if !valid {
		return fail[CategoryView](KindValidation, "invalid category", "color must be a valid hex color code")
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail[CategoryView](KindNotFound, "category not found")
		}
		return internalError[CategoryView](s.log, "failed to update category", err, "category_id", id)
	}

	taken, err := s.repo.NameTaken(ctx, in.Name, id)
	if err != nil {
		return internalError[CategoryView](s.log, "failed to update category", err, "category_id", id)
	}
	if taken {
		return fail[CategoryView](KindConflict, "a category with that name already exists")
	}

	if err := s.repo.Update(ctx, id, in.Name, in.Description, color); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return fail[CategoryView](KindConflict, "a category with that name already exists")
		case errors.Is(err, repository.ErrNotFound):
			return fail[CategoryView](KindNotFound, "category not found")
		}
		return internalError[CategoryView](s.log, "failed to update category", err, "category_id", id)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return internalError[CategoryView](s.log, "failed to update category", err, "category_id", id)
	}
	return ok(newCategoryView(updated), "category updated successfully")
}

// Delete refuses to remove a category that still has tasks.
func (s *CategoryService) Delete(ctx context.Context, id uint) Result[bool] {
	err := s.repo.DeleteIfUnused(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fail[bool](KindNotFound, "category not found")
	case errors.Is(err, repository.ErrInUse):
		return fail[bool](KindConflict, "category has associated tasks")
	case err != nil:
		return internalError[bool](s.log, "failed to delete category", err, "category_id", id)
	}
	s.log.Info("category deleted", "category_id", id)
	return ok(true, "category deleted successfully")
}

// DefaultCategories are created on first start when seeding is enabled.
func DefaultCategories() []model.Category {
	describe := func(s string) *string { return &s }
	return []model.Category{
		{Name: "Work", Description: describe("Work-related tasks"), Color: "#e74c3c"},
		{Name: "Personal", Description: describe("Personal tasks"), Color: "#2ecc71"},
		{Name: "Study", Description: describe("Academic tasks"), Color: "#f39c12"},
		{Name: "Home", Description: describe("Household chores"), Color: "#9b59b6"},
	}
}

// SeedDefaults inserts DefaultCategories into an empty table.
func (s *CategoryService) SeedDefaults(ctx context.Context) error {
	now := s.utcNow()
	categories := DefaultCategories()
	for i := range categories {
		categories[i].CreatedAt = now
	}
	created, err := s.repo.CreateIfEmpty(ctx, categories)
	if err != nil {
		return err
	}
	if created {
		s.log.Info("seeded default categories", "count", len(categories))
	}
	return nil
}

// normalizeColor applies the default color and reports whether the result is a #RGB or #RRGGBB code.
func normalizeColor(color string) (string, bool) {
	if color == "" {
		return model.DefaultCategoryColor, true
	}
	return color, hexColor.MatchString(color)
}
