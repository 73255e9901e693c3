package services

import (
	"context"
	"strings"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
)

const (
	msgAttributeNotFound = "ویژگی یافت نشد"
	msgAttributeValues   = "حداقل یک مقدار برای ویژگی وارد کنید"
)

type AttributeInput struct {
	Name       string   `json:"name" validate:"required,max=255"`
	Values     []string `json:"values" validate:"required,min=1"`
	CategoryID string   `json:"categoryId" validate:"required"`
}

type AttributeService struct {
	attributes repositories.AttributeRepositoryImpl
	categories repositories.CategoryRepositoryImpl
}

func NewAttributeService(attributes repositories.AttributeRepositoryImpl, categories repositories.CategoryRepositoryImpl) *AttributeService {
	return &AttributeService{attributes: attributes, categories: categories}
}

func (s *AttributeService) List(ctx context.Context, categoryID string) ([]models.Attribute, error) {
	attributes, err := s.attributes.List(ctx, strings.TrimSpace(categoryID))
	if err != nil {
		return nil, err
	}
	if attributes == nil {
		attributes = []models.Attribute{}
	}
	return attributes, nil
}

func (s *AttributeService) Create(ctx context.Context, in AttributeInput) (*models.Attribute, error) {
	attribute := &models.Attribute{}
	if err := s.apply(ctx, attribute, in); err != nil {
		return nil, err
	}
	if err := s.attributes.Create(ctx, attribute); err != nil {
		return nil, err
	}
	return attribute, nil
}

func (s *AttributeService) Update(ctx context.Context, id string, in AttributeInput) (*models.Attribute, error) {
	attribute, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, attribute, in); err != nil {
		return nil, err
	}
	attribute.Category = nil
	if err := s.attributes.Update(ctx, attribute); err != nil {
		return nil, err
	}
	return attribute, nil
}

func (s *AttributeService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	return s.attributes.Delete(ctx, id)
}

func (s *AttributeService) get(ctx context.Context, id string) (*models.Attribute, error) {
	attribute, err := s.attributes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attribute == nil {
		return nil, helpers.NewNotFound(msgAttributeNotFound)
	}
	return attribute, nil
}

func (s *AttributeService) apply(ctx context.Context, attribute *models.Attribute, in AttributeInput) error {
	values := cleanStrings(in.Values)
	if len(values) == 0 {
		return helpers.NewBadRequest(msgAttributeValues)
	}

	category, err := s.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return helpers.NewBadRequest(msgProductCategory)
	}

	attribute.Name = strings.TrimSpace(in.Name)
	attribute.Values = values
	attribute.CategoryID = category.ID
	return nil
}
