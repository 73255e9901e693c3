package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/farsishop/storefront/app/repositories/mocks"
	"github.com/farsishop/storefront/app/utils/sessions"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) OrderCreated(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockNotifier) Close() error {
	return nil
}

type orderFixture struct {
	svc      *OrderService
	orders   *mocks.OrderRepository
	products *mocks.ProductRepository
	users    *mocks.UserRepository
	notifier *mockNotifier
}

func newOrderFixture() orderFixture {
	f := orderFixture{
		orders:   new(mocks.OrderRepository),
		products: new(mocks.ProductRepository),
		users:    new(mocks.UserRepository),
		notifier: new(mockNotifier),
	}
	f.svc = NewOrderService(f.orders, f.products, f.users, f.notifier, zerolog.Nop())
	return f
}

func validOrderInput() OrderInput {
	return OrderInput{
		ProductID:     "prod-1",
		Quantity:      3,
		DesiredPrice:  decimal.NewFromInt(1500000),
		CustomerName:  "علی رضایی",
		CustomerPhone: "۰۹۱۲۱۲۳۴۵۶۷",
	}
}

func TestOrderService_Create_RejectsZeroQuantity(t *testing.T) {
	f := newOrderFixture()
	in := validOrderInput()
	in.Quantity = 0

	_, err := f.svc.Create(context.Background(), nil, in)

	assertStatus(t, err, http.StatusBadRequest)
	appErr, _ := helpers.AsAppError(err)
	assert.Equal(t, "تعداد باید بیشتر از صفر باشد", appErr.Message)
	f.products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestOrderService_Create_RejectsZeroDesiredPrice(t *testing.T) {
	f := newOrderFixture()
	in := validOrderInput()
	in.DesiredPrice = decimal.Zero

	_, err := f.svc.Create(context.Background(), nil, in)

	assertStatus(t, err, http.StatusBadRequest)
	appErr, _ := helpers.AsAppError(err)
	assert.Equal(t, "قیمت پیشنهادی باید بیشتر از صفر باشد", appErr.Message)
}

func TestOrderService_Create_RejectsInvalidPhone(t *testing.T) {
	f := newOrderFixture()
	in := validOrderInput()
	in.CustomerPhone = "12345"

	_, err := f.svc.Create(context.Background(), nil, in)

	assertStatus(t, err, http.StatusBadRequest)
}

func TestOrderService_Create_UnknownProduct(t *testing.T) {
	f := newOrderFixture()
	f.products.On("GetByID", mock.Anything, "prod-1").Return(nil, nil)

	_, err := f.svc.Create(context.Background(), nil, validOrderInput())

	assertStatus(t, err, http.StatusNotFound)
}

func TestOrderService_Create_GuestFindsOrCreatesCustomer(t *testing.T) {
	f := newOrderFixture()
	f.products.On("GetByID", mock.Anything, "prod-1").Return(&models.Product{ID: "prod-1", Name: "یخچال"}, nil)
	f.orders.On("CreateWithCustomer", mock.Anything, mock.AnythingOfType("*models.Order"), mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*models.Order)
			customer := args.Get(2).(*models.User)
			assert.Equal(t, "09121234567@customer.local", customer.Email)
			require.NotNil(t, customer.Phone)
			assert.Equal(t, "09121234567", *customer.Phone)
			assert.True(t, helpers.PasswordCompare(customer.Password, []byte("09121234567")))
			assert.Equal(t, models.RoleUser, customer.Role)
			order.ID = "order-1"
			userID := "user-1"
			order.UserID = &userID
		}).
		Return(nil)
	f.notifier.On("OrderCreated", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)

	receipt, err := f.svc.Create(context.Background(), nil, validOrderInput())

	require.NoError(t, err)
	assert.Equal(t, "order-1", receipt.Order.ID)
	assert.Equal(t, models.OrderStatusPending, receipt.Order.Status)
	assert.Equal(t, "یخچال", receipt.Order.ProductName)
	assert.Equal(t, "09121234567", receipt.Order.CustomerPhone)
	assert.True(t, decimal.NewFromInt(500000).Equal(receipt.Order.UnitPrice))
	assert.Equal(t, "500,000 تومان", receipt.Order.FormattedUnitPrice)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.svc.Wait()
	f.notifier.AssertExpectations(t)
}

func TestOrderService_Create_SnapshotsProductName(t *testing.T) {
	f := newOrderFixture()
	in := validOrderInput()
	in.ProductName = "something the client made up"
	f.products.On("GetByID", mock.Anything, "prod-1").Return(&models.Product{ID: "prod-1", Name: "ماشین لباسشویی"}, nil)
	f.orders.On("CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("OrderCreated", mock.Anything, mock.Anything).Return(nil)

	receipt, err := f.svc.Create(context.Background(), nil, in)

	require.NoError(t, err)
	assert.Equal(t, "ماشین لباسشویی", receipt.Order.ProductName)
}

func TestOrderService_Create_SignedInCustomerUsesOwnAccount(t *testing.T) {
	f := newOrderFixture()
	in := validOrderInput()
	in.UserID = strPtr("user-9")
	f.products.On("GetByID", mock.Anything, "prod-1").Return(&models.Product{ID: "prod-1", Name: "P"}, nil)
	f.users.On("FindByID", mock.Anything, "user-9").Return(&models.User{ID: "user-9"}, nil)
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *models.Order) bool {
		return o.UserID != nil && *o.UserID == "user-9"
	})).Return(nil)
	f.notifier.On("OrderCreated", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Create(context.Background(), &sessions.Claims{UserID: "user-9", Role: models.RoleUser}, in)

	require.NoError(t, err)
	f.svc.Wait()
	f.orders.AssertExpectations(t)
	f.orders.AssertNotCalled(t, "CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Create_IgnoresForeignUserID(t *testing.T) {
	tests := []struct {
		name   string
		viewer *sessions.Claims
	}{
		{name: "anonymous", viewer: nil},
		{name: "other customer", viewer: &sessions.Claims{UserID: "me", Role: models.RoleUser}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			in := validOrderInput()
			in.UserID = strPtr("victim")
			f.products.On("GetByID", mock.Anything, "prod-1").Return(&models.Product{ID: "prod-1", Name: "P"}, nil)
			f.orders.On("CreateWithCustomer", mock.Anything, mock.AnythingOfType("*models.Order"), mock.AnythingOfType("*models.User")).Return(nil)
			f.notifier.On("OrderCreated", mock.Anything, mock.Anything).Return(nil)

			_, err := f.svc.Create(context.Background(), tt.viewer, in)

			require.NoError(t, err)
			f.svc.Wait()
			f.users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
			f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.orders.AssertExpectations(t)
		})
	}
}

func TestOrderService_Create_AdminFilesForAnyUser(t *testing.T) {
	f := newOrderFixture()
	in := validOrderInput()
	in.UserID = strPtr("user-9")
	f.products.On("GetByID", mock.Anything, "prod-1").Return(&models.Product{ID: "prod-1", Name: "P"}, nil)
	f.users.On("FindByID", mock.Anything, "user-9").Return(&models.User{ID: "user-9"}, nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
	f.notifier.On("OrderCreated", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Create(context.Background(), &sessions.Claims{UserID: "a1", Role: models.RoleAdmin}, in)

	require.NoError(t, err)
	f.svc.Wait()
	f.orders.AssertExpectations(t)
}

func TestOrderService_Create_UnknownUser(t *testing.T) {
	f := newOrderFixture()
	in := validOrderInput()
	in.UserID = strPtr("ghost")
	f.products.On("GetByID", mock.Anything, "prod-1").Return(&models.Product{ID: "prod-1", Name: "P"}, nil)
	f.users.On("FindByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := f.svc.Create(context.Background(), &sessions.Claims{UserID: "a1", Role: models.RoleAdmin}, in)

	assertStatus(t, err, http.StatusNotFound)
}

func TestOrderService_Create_NotifierFailureIsIgnored(t *testing.T) {
	f := newOrderFixture()
	f.products.On("GetByID", mock.Anything, "prod-1").Return(&models.Product{ID: "prod-1", Name: "P"}, nil)
	f.orders.On("CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.notifier.On("OrderCreated", mock.Anything, mock.Anything).Return(errors.New("broker unavailable"))

	receipt, err := f.svc.Create(context.Background(), nil, validOrderInput())

	require.NoError(t, err)
	assert.NotNil(t, receipt)
	f.svc.Wait()
	f.notifier.AssertExpectations(t)
}

// stalledNotifier blocks until its context ends, like an SMTP server that
// accepts the connection and never greets.
type stalledNotifier struct {
	started chan struct{}
	ctxErr  chan error
}

func newStalledNotifier() *stalledNotifier {
	return &stalledNotifier{started: make(chan struct{}, 1), ctxErr: make(chan error, 1)}
}

func (n *stalledNotifier) OrderCreated(ctx context.Context, order *models.Order) error {
	n.started <- struct{}{}
	<-ctx.Done()
	n.ctxErr <- ctx.Err()
	return ctx.Err()
}

func (n *stalledNotifier) Close() error { return nil }

func TestOrderService_Create_DoesNotWaitForNotifier(t *testing.T) {
	orders := new(mocks.OrderRepository)
	products := new(mocks.ProductRepository)
	stalled := newStalledNotifier()
	notifier := NewAsyncNotifier(stalled, 200*time.Millisecond, zerolog.Nop())
	svc := NewOrderService(orders, products, new(mocks.UserRepository), notifier, zerolog.Nop())
	products.On("GetByID", mock.Anything, "prod-1").Return(&models.Product{ID: "prod-1", Name: "P"}, nil)
	orders.On("CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Create(ctx, nil, validOrderInput())
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Create blocked on the order notifier")
	}

	// the request ending must not cut the delivery short
	cancel()
	select {
	case <-stalled.started:
	case <-time.After(time.Second):
		t.Fatal("notifier never started")
	}
	svc.Wait()
	assert.ErrorIs(t, <-stalled.ctxErr, context.DeadlineExceeded)
}

func TestOrderService_List_RequiresSession(t *testing.T) {
	f := newOrderFixture()
	_, err := f.svc.List(context.Background(), nil, OrderQuery{})
	assertStatus(t, err, http.StatusUnauthorized)
}

func TestOrderService_List_RejectsUnknownStatus(t *testing.T) {
	f := newOrderFixture()
	admin := &sessions.Claims{UserID: "a", Role: models.RoleAdmin}
	_, err := f.svc.List(context.Background(), admin, OrderQuery{Status: "SHIPPED"})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestOrderService_List_CustomerSeesOnlyOwnOrders(t *testing.T) {
	f := newOrderFixture()
	customer := &sessions.Claims{UserID: "me", Role: models.RoleUser}
	expected := repositories.OrderFilter{UserID: "me", Limit: defaultOrderPageSize}
	f.orders.On("List", mock.Anything, expected).Return([]models.Order{{ID: "o1", Status: models.OrderStatusPending}}, int64(1), nil)

	page, err := f.svc.List(context.Background(), customer, OrderQuery{UserID: "someone-else"})

	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, models.OrderStatusPending, page.Orders[0].Status)
	assert.Equal(t, int64(1), page.Pagination.Total)
	f.orders.AssertExpectations(t)
}

func TestOrderService_List_AdminFiltersByUser(t *testing.T) {
	f := newOrderFixture()
	admin := &sessions.Claims{UserID: "a", Role: models.RoleAdmin}
	expected := repositories.OrderFilter{UserID: "u1", Status: models.OrderStatusPending, Limit: 20, Offset: 20}
	f.orders.On("List", mock.Anything, expected).Return([]models.Order{}, int64(0), nil)

	page, err := f.svc.List(context.Background(), admin, OrderQuery{UserID: "u1", Status: "pending", Page: 2, Limit: 20})

	require.NoError(t, err)
	assert.Empty(t, page.Orders)
	assert.Equal(t, 2, page.Pagination.Page)
	f.orders.AssertExpectations(t)
}

func TestOrderService_Get_ForeignOrderForbidden(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("GetByID", mock.Anything, "o1").Return(&models.Order{ID: "o1", UserID: strPtr("other")}, nil)

	_, err := f.svc.Get(context.Background(), &sessions.Claims{UserID: "me", Role: models.RoleUser}, "o1")

	assertStatus(t, err, http.StatusForbidden)
}

func TestOrderService_Update(t *testing.T) {
	t.Run("invalid status", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, "o1").Return(&models.Order{ID: "o1", Status: models.OrderStatusPending}, nil)
		_, err := f.svc.Update(context.Background(), "o1", OrderUpdateInput{Status: strPtr("LOST")})
		assertStatus(t, err, http.StatusBadRequest)
		f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("confirm", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, "o1").Return(&models.Order{ID: "o1", Status: models.OrderStatusPending, Quantity: 1}, nil)
		f.orders.On("Update", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
		view, err := f.svc.Update(context.Background(), "o1", OrderUpdateInput{Status: strPtr("CONFIRMED"), Notes: strPtr(" تماس گرفته شد ")})
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusConfirmed, view.Status)
		require.NotNil(t, view.Notes)
		assert.Equal(t, "تماس گرفته شد", *view.Notes)
	})

	t.Run("missing", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("GetByID", mock.Anything, "nope").Return(nil, nil)
		_, err := f.svc.Update(context.Background(), "nope", OrderUpdateInput{})
		assertStatus(t, err, http.StatusNotFound)
	})
}

func TestOrderService_Delete(t *testing.T) {
	f := newOrderFixture()
	f.orders.On("GetByID", mock.Anything, "o1").Return(&models.Order{ID: "o1"}, nil)
	f.orders.On("Delete", mock.Anything, "o1").Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), "o1"))
	f.orders.AssertExpectations(t)
}

func TestOrderService_Export(t *testing.T) {
	f := newOrderFixture()
	orders := []models.Order{{
		ID:            "o1",
		ProductName:   "اتو",
		Quantity:      2,
		DesiredPrice:  decimal.NewFromInt(800000),
		CustomerName:  "مریم",
		CustomerPhone: "09121234567",
		Status:        models.OrderStatusReady,
	}}
	f.orders.On("List", mock.Anything, repositories.OrderFilter{}).Return(orders, int64(1), nil)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Export(context.Background(), &buf, ""))

	book, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, book.Sheets, 1)
	sheet := book.Sheets[0]
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "شماره سفارش", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "o1", sheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "400000", sheet.Rows[1].Cells[5].Value)
	assert.Equal(t, "آماده ارسال", sheet.Rows[1].Cells[8].Value)
}
