package repositories

import (
	"context"

	"github.com/farsishop/storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttributeRepositoryImpl interface {
	Create(ctx context.Context, attribute *models.Attribute) error
	GetByID(ctx context.Context, id string) (*models.Attribute, error)
	List(ctx context.Context, categoryID string) ([]models.Attribute, error)
	Update(ctx context.Context, attribute *models.Attribute) error
	Delete(ctx context.Context, id string) error
}

type attributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) AttributeRepositoryImpl {
	return &attributeRepository{db: db}
}

func (r *attributeRepository) Create(ctx context.Context, attribute *models.Attribute) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(attribute).Error
}

func (r *attributeRepository) GetByID(ctx context.Context, id string) (*models.Attribute, error) {
	var attribute models.Attribute
	err := r.db.WithContext(ctx).Preload("Category").First(&attribute, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &attribute, nil
}

func (r *attributeRepository) List(ctx context.Context, categoryID string) ([]models.Attribute, error) {
	var attributes []models.Attribute
	query := r.db.WithContext(ctx).Preload("Category")
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if err := query.Order("created_at ASC").Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

func (r *attributeRepository) Update(ctx context.Context, attribute *models.Attribute) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(attribute).Error
}

func (r *attributeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Attribute{}, "id = ?", id).Error
}
