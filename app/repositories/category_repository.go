package repositories

import (
	"context"
	"strings"

	"github.com/farsishop/storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// parentChain eager-loads enough ancestors for a breadcrumb of the deepest category.
const parentChain = "Parent.Parent.Parent.Parent.Parent"

type CategoryFilter struct {
	HomeOnly   bool
	ActiveOnly bool
}

type CategoryRepositoryImpl interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetAll(ctx context.Context, filter CategoryFilter) ([]models.Category, error)
	GetChildren(ctx context.Context, parentID string, activeOnly bool) ([]models.Category, error)
	Search(ctx context.Context, keyword string, limit int) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	UpdateLevel(ctx context.Context, id string, level int) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (int64, error)
	CountProducts(ctx context.Context, id string) (int64, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Preload("Parent").First(&category, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Preload(parentChain).First(&category, "slug = ?", slug).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetAll(ctx context.Context, filter CategoryFilter) ([]models.Category, error) {
	var categories []models.Category
	query := r.db.WithContext(ctx).Model(&models.Category{})
	if filter.HomeOnly {
		query = query.Where("show_on_home = ? AND is_active = ?", true, true)
	} else if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("display_order ASC").Order("created_at ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetChildren(ctx context.Context, parentID string, activeOnly bool) ([]models.Category, error) {
	var children []models.Category
	query := r.db.WithContext(ctx).Where("parent_id = ?", parentID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("display_order ASC").Order("created_at ASC").Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (r *categoryRepository) Search(ctx context.Context, keyword string, limit int) ([]models.Category, error) {
	var categories []models.Category
	searchKeyword := "%" + strings.ToLower(keyword) + "%"
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND LOWER(name) LIKE ?", true, searchKeyword).
		Order("display_order ASC").
		Limit(limit).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error
}

func (r *categoryRepository) UpdateLevel(ctx context.Context, id string, level int) error {
	return r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Update("level", level).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) CountChildren(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

func (r *categoryRepository) CountProducts(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *categoryRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error
	return count, err
}
