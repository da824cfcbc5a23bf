package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// CategoryWithCount is a category plus the number of tasks referencing it.
type CategoryWithCount struct {
	model.Category
	TaskCount int64
}

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) withCounts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Category{}).
		Select("categories.*, COUNT(tasks.id) AS task_count").
		Joins("LEFT JOIN tasks ON tasks.category_id = categories.id").
		Group("categories.id")
}

func (r *CategoryRepository) List(ctx context.Context) ([]CategoryWithCount, error) {
	var categories []CategoryWithCount
	if err := r.withCounts(ctx).Order("categories.name ASC").Scan(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*CategoryWithCount, error) {
	var categories []CategoryWithCount
	if err := r.withCounts(ctx).Where("categories.id = ?", id).Scan(&categories).Error; err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrNotFound
	}
	return &categories[0], nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return count > 0, nil
}

// NameTaken reports whether a category other than excludeID already has name.
func (r *CategoryRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return count > 0, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", translate(err))
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, id uint, name string, description *string, color string) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        name,
		"description": description,
		"color":       color,
	})
	if res.Error != nil {
		return fmt.Errorf("update category: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteIfUnused removes a category in the same transaction that checks no task
// references it. It returns ErrInUse when tasks still point at the category.
func (r *CategoryRepository) DeleteIfUnused(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Task{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("count category tasks: %w", err)
		}
		if count > 0 {
			return ErrInUse
		}
		res := tx.Delete(&model.Category{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CreateIfEmpty inserts categories only when the table has no rows yet. It reports whether it inserted.
func (r *CategoryRepository) CreateIfEmpty(ctx context.Context, categories []model.Category) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Category{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 || len(categories) == 0 {
			return nil
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed categories: %w", translate(err))
	}
	return created, nil
}
