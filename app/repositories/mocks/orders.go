package mocks

import (
	"context"

	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) CreateWithCustomer(ctx context.Context, order *models.Order, customer *models.User) error {
	args := m.Called(ctx, order, customer)
	return args.Error(0)
}

func (m *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderRepository) List(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *OrderRepository) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.OrderStatus]int64), args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// NewRegistry returns a Registry backed by fresh mocks, plus the mocks themselves.
func NewRegistry() (*repositories.Registry, *Set) {
	set := &Set{
		Categories: new(CategoryRepository),
		Products:   new(ProductRepository),
		Attributes: new(AttributeRepository),
		Articles:   new(ArticleRepository),
		Sliders:    new(SliderRepository),
		Orders:     new(OrderRepository),
		Users:      new(UserRepository),
	}
	return &repositories.Registry{
		Categories: set.Categories,
		Products:   set.Products,
		Attributes: set.Attributes,
		Articles:   set.Articles,
		Sliders:    set.Sliders,
		Orders:     set.Orders,
		Users:      set.Users,
	}, set
}

type Set struct {
	Categories *CategoryRepository
	Products   *ProductRepository
	Attributes *AttributeRepository
	Articles   *ArticleRepository
	Sliders    *SliderRepository
	Orders     *OrderRepository
	Users      *UserRepository
}
