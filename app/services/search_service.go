package services

import (
	"context"
	"strings"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type SearchResult struct {
	Products   []models.Product  `json:"products"`
	Categories []models.Category `json:"categories"`
}

type SearchService struct {
	products   repositories.ProductRepositoryImpl
	categories repositories.CategoryRepositoryImpl
}

func NewSearchService(products repositories.ProductRepositoryImpl, categories repositories.CategoryRepositoryImpl) *SearchService {
	return &SearchService{products: products, categories: categories}
}

func (s *SearchService) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	result := &SearchResult{Products: []models.Product{}, Categories: []models.Category{}}

	query = strings.TrimSpace(query)
	if query == "" {
		return result, nil
	}
	limit = helpers.ClampLimit(limit, defaultSearchLimit, maxSearchLimit)

	products, err := s.products.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if products != nil {
		result.Products = products
	}
	if categories != nil {
		result.Categories = categories
	}
	return result, nil
}
