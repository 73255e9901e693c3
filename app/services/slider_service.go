package services

import (
	"context"
	"strings"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
)

const msgSliderNotFound = "اسلایدر یافت نشد"

type SliderInput struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Link     *string `json:"link" validate:"omitempty,max=500"`
	Image    string  `json:"image" validate:"required,imageurl,max=500"`
	Order    int     `json:"order"`
	IsActive *bool   `json:"isActive"`
}

type SliderService struct {
	sliders repositories.SliderRepositoryImpl
}

func NewSliderService(sliders repositories.SliderRepositoryImpl) *SliderService {
	return &SliderService{sliders: sliders}
}

func (s *SliderService) List(ctx context.Context, activeOnly bool) ([]models.Slider, error) {
	sliders, err := s.sliders.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if sliders == nil {
		sliders = []models.Slider{}
	}
	return sliders, nil
}

func (s *SliderService) Create(ctx context.Context, in SliderInput) (*models.Slider, error) {
	slider := &models.Slider{IsActive: true}
	applySlider(slider, in)
	if err := s.sliders.Create(ctx, slider); err != nil {
		return nil, err
	}
	return slider, nil
}

func (s *SliderService) Update(ctx context.Context, id string, in SliderInput) (*models.Slider, error) {
	slider, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	applySlider(slider, in)
	if err := s.sliders.Update(ctx, slider); err != nil {
		return nil, err
	}
	return slider, nil
}

func (s *SliderService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	return s.sliders.Delete(ctx, id)
}

func (s *SliderService) get(ctx context.Context, id string) (*models.Slider, error) {
	slider, err := s.sliders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slider == nil {
		return nil, helpers.NewNotFound(msgSliderNotFound)
	}
	return slider, nil
}

func applySlider(slider *models.Slider, in SliderInput) {
	slider.Title = strings.TrimSpace(in.Title)
	slider.Image = strings.TrimSpace(in.Image)
	slider.DisplayOrder = in.Order
	slider.Link = nil
	if in.Link != nil {
		if link := strings.TrimSpace(*in.Link); link != "" {
			slider.Link = &link
		}
	}
	if in.IsActive != nil {
		slider.IsActive = *in.IsActive
	}
}
