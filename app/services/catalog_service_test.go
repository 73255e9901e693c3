package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/farsishop/storefront/app/repositories/mocks"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_List_Paginates(t *testing.T) {
	products := new(mocks.ProductRepository)
	svc := NewProductService(products, new(mocks.CategoryRepository), zerolog.Nop())
	products.On("List", mock.Anything, repositories.ProductFilter{CategoryID: "c1", Search: "یخچال", Limit: 12, Offset: 24}).
		Return([]models.Product{{ID: "p1"}}, int64(30), nil)

	page, err := svc.List(context.Background(), ProductQuery{CategoryID: "c1", Search: " یخچال ", Page: 3})

	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	products.AssertExpectations(t)
}

func TestProductService_Create(t *testing.T) {
	t.Run("unknown category", func(t *testing.T) {
		categories := new(mocks.CategoryRepository)
		svc := NewProductService(new(mocks.ProductRepository), categories, zerolog.Nop())
		categories.On("GetByID", mock.Anything, "nope").Return(nil, nil)

		_, err := svc.Create(context.Background(), ProductInput{Name: "Fridge", CategoryID: "nope"})

		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("negative price", func(t *testing.T) {
		svc := NewProductService(new(mocks.ProductRepository), new(mocks.CategoryRepository), zerolog.Nop())
		price := decimal.NewFromInt(-1)

		_, err := svc.Create(context.Background(), ProductInput{Name: "Fridge", CategoryID: "c1", Price: &price})

		assertStatus(t, err, http.StatusBadRequest)
	})

	t.Run("stores cleaned images and nullable price", func(t *testing.T) {
		products := new(mocks.ProductRepository)
		categories := new(mocks.CategoryRepository)
		svc := NewProductService(products, categories, zerolog.Nop())
		categories.On("GetByID", mock.Anything, "c1").Return(&models.Category{ID: "c1"}, nil)
		products.On("SlugExists", mock.Anything, "smart-fridge", "").Return(false, nil)
		products.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)

		product, err := svc.Create(context.Background(), ProductInput{
			Name:       "Smart Fridge",
			CategoryID: "c1",
			Images:     []string{" /uploads/product/a.png ", ""},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"/uploads/product/a.png"}, product.Images)
		assert.False(t, product.Price.Valid)
		assert.Equal(t, "smart-fridge", product.Slug)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		products := new(mocks.ProductRepository)
		categories := new(mocks.CategoryRepository)
		svc := NewProductService(products, categories, zerolog.Nop())
		categories.On("GetByID", mock.Anything, "c1").Return(&models.Category{ID: "c1"}, nil)
		products.On("SlugExists", mock.Anything, "fridge", "").Return(true, nil)

		_, err := svc.Create(context.Background(), ProductInput{Name: "Fridge", CategoryID: "c1"})

		assertStatus(t, err, http.StatusBadRequest)
	})
}

func TestProductService_GetBySlug_NotFound(t *testing.T) {
	products := new(mocks.ProductRepository)
	svc := NewProductService(products, new(mocks.CategoryRepository), zerolog.Nop())
	products.On("GetBySlug", mock.Anything, "x").Return(nil, nil)

	_, err := svc.GetBySlug(context.Background(), "x")

	assertStatus(t, err, http.StatusNotFound)
}

func TestAttributeService_RequiresNonEmptyValue(t *testing.T) {
	attributes := new(mocks.AttributeRepository)
	svc := NewAttributeService(attributes, new(mocks.CategoryRepository))

	_, err := svc.Create(context.Background(), AttributeInput{Name: "رنگ", Values: []string{" ", ""}, CategoryID: "c1"})

	assertStatus(t, err, http.StatusBadRequest)
	attributes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAttributeService_Create(t *testing.T) {
	attributes := new(mocks.AttributeRepository)
	categories := new(mocks.CategoryRepository)
	svc := NewAttributeService(attributes, categories)
	categories.On("GetByID", mock.Anything, "c1").Return(&models.Category{ID: "c1"}, nil)
	attributes.On("Create", mock.Anything, mock.AnythingOfType("*models.Attribute")).Return(nil)

	attribute, err := svc.Create(context.Background(), AttributeInput{Name: " رنگ ", Values: []string{"قرمز", " ", "آبی"}, CategoryID: "c1"})

	require.NoError(t, err)
	assert.Equal(t, "رنگ", attribute.Name)
	assert.Equal(t, []string{"قرمز", "آبی"}, attribute.Values)
}

func TestArticleService_CreateDefaultsActive(t *testing.T) {
	articles := new(mocks.ArticleRepository)
	svc := NewArticleService(articles)
	articles.On("SlugExists", mock.Anything, "راهنمای-خرید", "").Return(false, nil)
	articles.On("Create", mock.Anything, mock.AnythingOfType("*models.Article")).Return(nil)

	article, err := svc.Create(context.Background(), ArticleInput{Title: "راهنمای خرید"})

	require.NoError(t, err)
	assert.True(t, article.IsActive)
	assert.Equal(t, "راهنمای-خرید", article.Slug)
}

func TestSliderService_UpdateClearsBlankLink(t *testing.T) {
	sliders := new(mocks.SliderRepository)
	svc := NewSliderService(sliders)
	link := "/products"
	sliders.On("GetByID", mock.Anything, "s1").Return(&models.Slider{ID: "s1", Link: &link, IsActive: true}, nil)
	sliders.On("Update", mock.Anything, mock.AnythingOfType("*models.Slider")).Return(nil)
	inactive := false

	slider, err := svc.Update(context.Background(), "s1", SliderInput{Title: "حراج", Image: "/uploads/slider/a.jpg", Link: strPtr("  "), IsActive: &inactive})

	require.NoError(t, err)
	assert.Nil(t, slider.Link)
	assert.False(t, slider.IsActive)
}

func TestSearchService(t *testing.T) {
	products := new(mocks.ProductRepository)
	categories := new(mocks.CategoryRepository)
	svc := NewSearchService(products, categories)

	empty, err := svc.Search(context.Background(), "   ", 0)
	require.NoError(t, err)
	assert.Empty(t, empty.Products)
	assert.Empty(t, empty.Categories)
	products.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)

	products.On("Search", mock.Anything, "تلویزیون", maxSearchLimit).Return([]models.Product{{ID: "p1"}}, nil)
	categories.On("Search", mock.Anything, "تلویزیون", maxSearchLimit).Return(nil, nil)

	result, err := svc.Search(context.Background(), "تلویزیون", 999)
	require.NoError(t, err)
	assert.Len(t, result.Products, 1)
	assert.NotNil(t, result.Categories)
}

func TestStatsService_Dashboard(t *testing.T) {
	registry, set := mocks.NewRegistry()
	set.Products.On("Count", mock.Anything).Return(int64(12), nil)
	set.Categories.On("Count", mock.Anything).Return(int64(4), nil)
	set.Articles.On("Count", mock.Anything).Return(int64(2), nil)
	set.Users.On("Count", mock.Anything).Return(int64(7), nil)
	set.Orders.On("CountByStatus", mock.Anything).Return(map[models.OrderStatus]int64{
		models.OrderStatusPending:   3,
		models.OrderStatusDelivered: 5,
	}, nil)

	stats, err := NewStatsService(registry).Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.Products)
	assert.Equal(t, int64(8), stats.Orders)
	assert.Equal(t, int64(3), stats.OrdersByStatus[models.OrderStatusPending])
}
