package services

import (
	"context"
	"strings"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/farsishop/storefront/app/utils/breadcrumb"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	msgProductNotFound      = "محصول یافت نشد"
	msgProductSlugTaken     = "این نامک قبلا برای محصول دیگری استفاده شده است"
	msgProductCategory      = "دسته‌بندی انتخاب شده وجود ندارد"
	msgProductNegativePrice = "قیمت نمی‌تواند منفی باشد"
)

const (
	defaultProductPageSize = 12
	maxProductPageSize     = 100
	defaultShowcaseLimit   = 8
	maxShowcaseLimit       = 50
)

type ProductInput struct {
	Name          string           `json:"name" validate:"required,max=255"`
	Slug          string           `json:"slug" validate:"omitempty,max=255"`
	Description   string           `json:"description"`
	Images        []string         `json:"images" validate:"omitempty,dive,required,imageurl,max=500"`
	CategoryID    string           `json:"categoryId" validate:"required"`
	IsBestSelling *bool            `json:"isBestSelling"`
	Price         *decimal.Decimal `json:"price"`
	Inventory     *int             `json:"inventory" validate:"omitempty,min=0"`
}

type ProductQuery struct {
	CategoryID string
	Search     string
	Page       int
	Limit      int
}

type ProductPage struct {
	Products   []models.Product   `json:"products"`
	Pagination helpers.Pagination `json:"pagination"`
}

type ProductDetail struct {
	*models.Product
	Breadcrumbs []breadcrumb.Breadcrumb `json:"breadcrumbs"`
}

type ProductService struct {
	products   repositories.ProductRepositoryImpl
	categories repositories.CategoryRepositoryImpl
	logger     zerolog.Logger
}

func NewProductService(products repositories.ProductRepositoryImpl, categories repositories.CategoryRepositoryImpl, logger zerolog.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		logger:     logger.With().Str("service", "product").Logger(),
	}
}

func (s *ProductService) List(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := helpers.ClampLimit(q.Limit, defaultProductPageSize, maxProductPageSize)

	products, total, err := s.products.List(ctx, repositories.ProductFilter{
		CategoryID: q.CategoryID,
		Search:     strings.TrimSpace(q.Search),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	return &ProductPage{
		Products:   products,
		Pagination: helpers.NewPagination(page, limit, total),
	}, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, helpers.NewNotFound(msgProductNotFound)
	}
	return product, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, helpers.NewNotFound(msgProductNotFound)
	}
	return &ProductDetail{
		Product:     product,
		Breadcrumbs: breadcrumb.FromCategory(product.Category),
	}, nil
}

func (s *ProductService) BestSelling(ctx context.Context, limit int) ([]models.Product, error) {
	products, err := s.products.GetBestSelling(ctx, helpers.ClampLimit(limit, defaultShowcaseLimit, maxShowcaseLimit))
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *ProductService) Newest(ctx context.Context, limit int) ([]models.Product, error) {
	products, err := s.products.GetNewest(ctx, helpers.ClampLimit(limit, defaultShowcaseLimit, maxShowcaseLimit))
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := s.apply(ctx, product, in, ""); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, helpers.NewBadRequest(msgProductSlugTaken)
		}
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("category_id", product.CategoryID).Msg("product created")
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, product, in, id); err != nil {
		return nil, err
	}
	product.Category = nil

	if err := s.products.Update(ctx, product); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, helpers.NewBadRequest(msgProductSlugTaken)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func (s *ProductService) apply(ctx context.Context, product *models.Product, in ProductInput, excludeID string) error {
	if in.Price != nil && in.Price.IsNegative() {
		return helpers.NewBadRequest(msgProductNegativePrice)
	}

	category, err := s.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return helpers.NewBadRequest(msgProductCategory)
	}

	slug := helpers.GenerateSlug(in.Slug)
	if slug == "" {
		slug = helpers.GenerateSlug(in.Name)
	}
	if slug == "" {
		return helpers.NewBadRequest(msgInvalidSlug)
	}
	taken, err := s.products.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return helpers.NewBadRequest(msgProductSlugTaken)
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Slug = slug
	product.Description = in.Description
	product.CategoryID = category.ID
	product.Images = cleanStrings(in.Images)
	product.Inventory = in.Inventory
	product.Price = decimal.NullDecimal{}
	if in.Price != nil {
		product.Price = decimal.NewNullDecimal(*in.Price)
	}
	if in.IsBestSelling != nil {
		product.IsBestSelling = *in.IsBestSelling
	}
	return nil
}

// cleanStrings trims every entry and drops the empty ones.
func cleanStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
