package repositories

import (
	"context"

	"github.com/farsishop/storefront/app/models"
	"gorm.io/gorm"
)

type SliderRepositoryImpl interface {
	Create(ctx context.Context, slider *models.Slider) error
	GetByID(ctx context.Context, id string) (*models.Slider, error)
	List(ctx context.Context, activeOnly bool) ([]models.Slider, error)
	Update(ctx context.Context, slider *models.Slider) error
	Delete(ctx context.Context, id string) error
}

type sliderRepository struct {
	db *gorm.DB
}

func NewSliderRepository(db *gorm.DB) SliderRepositoryImpl {
	return &sliderRepository{db}
}

func (r *sliderRepository) Create(ctx context.Context, slider *models.Slider) error {
	return r.db.WithContext(ctx).Create(slider).Error
}

func (r *sliderRepository) GetByID(ctx context.Context, id string) (*models.Slider, error) {
	var slider models.Slider
	err := r.db.WithContext(ctx).First(&slider, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &slider, nil
}

func (r *sliderRepository) List(ctx context.Context, activeOnly bool) ([]models.Slider, error) {
	var sliders []models.Slider
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("display_order ASC").Order("created_at ASC").Find(&sliders).Error; err != nil {
		return nil, err
	}
	return sliders, nil
}

func (r *sliderRepository) Update(ctx context.Context, slider *models.Slider) error {
	return r.db.WithContext(ctx).Save(slider).Error
}

func (r *sliderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Slider{}, "id = ?", id).Error
}
