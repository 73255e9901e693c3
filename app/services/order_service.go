package services

import (
	"context"
	"io"
	"strings"

	"github.com/farsishop/storefront/app/helpers"
	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/repositories"
	"github.com/farsishop/storefront/app/utils/calc"
	"github.com/farsishop/storefront/app/utils/format"
	"github.com/farsishop/storefront/app/utils/sessions"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	msgOrderCreated       = "سفارش شما با موفقیت ثبت شد"
	msgOrderNotFound      = "سفارش یافت نشد"
	msgOrderQuantity      = "تعداد باید بیشتر از صفر باشد"
	msgOrderDesiredPrice  = "قیمت پیشنهادی باید بیشتر از صفر باشد"
	msgOrderInvalidStatus = "وضعیت سفارش نامعتبر است"
	msgUserNotFound       = "کاربر یافت نشد"
)

const (
	defaultOrderPageSize = 10
	maxOrderPageSize     = 100
	customerEmailDomain  = "customer.local"
)

type OrderInput struct {
	ProductID     string          `json:"productId" validate:"required"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity"`
	DesiredPrice  decimal.Decimal `json:"desiredPrice"`
	CustomerName  string          `json:"customerName" validate:"required,max=255"`
	CustomerPhone string          `json:"customerPhone" validate:"required"`
	Notes         *string         `json:"notes"`
	UserID        *string         `json:"userId"`
}

type OrderUpdateInput struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type OrderQuery struct {
	UserID string
	Status string
	Page   int
	Limit  int
}

// OrderView is an order with its derived prices.
type OrderView struct {
	models.Order
	UnitPrice             decimal.Decimal `json:"unitPrice"`
	FormattedDesiredPrice string          `json:"formattedDesiredPrice"`
	FormattedUnitPrice    string          `json:"formattedUnitPrice"`
	StatusLabel           string          `json:"statusLabel"`
}

func NewOrderView(order models.Order) OrderView {
	unit := calc.UnitPrice(order.DesiredPrice, order.Quantity)
	return OrderView{
		Order:                 order,
		UnitPrice:             unit,
		FormattedDesiredPrice: format.Toman(order.DesiredPrice),
		FormattedUnitPrice:    format.Toman(unit),
		StatusLabel:           models.OrderStatusLabels[order.Status],
	}
}

type OrderReceipt struct {
	Message string    `json:"message"`
	Order   OrderView `json:"order"`
}

type OrderPage struct {
	Orders     []OrderView        `json:"orders"`
	Pagination helpers.Pagination `json:"pagination"`
}

type OrderService struct {
	orders   repositories.OrderRepository
	products repositories.ProductRepositoryImpl
	users    repositories.UserRepositoryImpl
	notifier *AsyncNotifier
	logger   zerolog.Logger
}

func NewOrderService(orders repositories.OrderRepository, products repositories.ProductRepositoryImpl, users repositories.UserRepositoryImpl, notifier OrderNotifier, logger zerolog.Logger) *OrderService {
	logger = logger.With().Str("service", "order").Logger()
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	async, ok := notifier.(*AsyncNotifier)
	if !ok {
		async = NewAsyncNotifier(notifier, defaultNotifyTimeout, logger)
	}
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		notifier: async,
		logger:   logger,
	}
}

// Wait blocks until notifications for created orders have been delivered or
// have given up.
func (s *OrderService) Wait() {
	s.notifier.Wait()
}

// Create stores a desired-price order. The order goes to the account of
// orderUserID(viewer, in); failing that the customer account is found or
// created by phone in the same transaction as the order.
func (s *OrderService) Create(ctx context.Context, viewer *sessions.Claims, in OrderInput) (*OrderReceipt, error) {
	if in.Quantity <= 0 {
		return nil, helpers.NewBadRequest(msgOrderQuantity)
	}
	if !in.DesiredPrice.IsPositive() {
		return nil, helpers.NewBadRequest(msgOrderDesiredPrice)
	}

	phone := helpers.NormalizePhone(in.CustomerPhone)
	if !helpers.ValidPhone(phone) {
		return nil, helpers.NewBadRequest(helpers.MsgInvalidPhone)
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, helpers.NewNotFound(msgProductNotFound)
	}

	order := &models.Order{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      in.Quantity,
		DesiredPrice:  in.DesiredPrice,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: phone,
		Status:        models.OrderStatusPending,
		Notes:         trimmedOrNil(in.Notes),
	}

	if userID := orderUserID(viewer, in.UserID); userID != "" {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, helpers.NewNotFound(msgUserNotFound)
		}
		order.UserID = &user.ID
		if err := s.orders.Create(ctx, order); err != nil {
			return nil, err
		}
	} else {
		customer, err := newPlaceholderCustomer(order.CustomerName, phone)
		if err != nil {
			return nil, err
		}
		if err := s.orders.CreateWithCustomer(ctx, order, customer); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("product_id", order.ProductID).
		Int("quantity", order.Quantity).
		Msg("order created")

	_ = s.notifier.OrderCreated(ctx, order)

	return &OrderReceipt{Message: msgOrderCreated, Order: NewOrderView(*order)}, nil
}

// orderUserID picks the account an order is filed under. Admins may name any
// user. A signed-in customer gets their own account, and a userId naming
// anyone else is ignored. Anonymous callers never pick an account.
func orderUserID(viewer *sessions.Claims, requested *string) string {
	if viewer == nil {
		return ""
	}
	id := ""
	if requested != nil {
		id = strings.TrimSpace(*requested)
	}
	if viewer.Role == models.RoleAdmin {
		return id
	}
	if id == "" || id == viewer.UserID {
		return viewer.UserID
	}
	return ""
}

// newPlaceholderCustomer builds the account attached to a phone-only order.
// Its password is the bcrypt hash of the phone number itself.
func newPlaceholderCustomer(name, phone string) (*models.User, error) {
	hash, err := helpers.HashPassword(phone)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Name:     name,
		Email:    phone + "@" + customerEmailDomain,
		Phone:    &phone,
		Password: hash,
		Role:     models.RoleUser,
	}, nil
}

// List pages through orders. Admins may filter by any user; everyone else
// only ever sees their own orders.
func (s *OrderService) List(ctx context.Context, viewer *sessions.Claims, q OrderQuery) (*OrderPage, error) {
	if viewer == nil {
		return nil, helpers.NewUnauthorized(helpers.MsgUnauthorized)
	}

	status := models.OrderStatus(strings.ToUpper(strings.TrimSpace(q.Status)))
	if status != "" && !status.Valid() {
		return nil, helpers.NewBadRequest(msgOrderInvalidStatus)
	}

	userID := strings.TrimSpace(q.UserID)
	if viewer.Role != models.RoleAdmin {
		userID = viewer.UserID
	}

	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := helpers.ClampLimit(q.Limit, defaultOrderPageSize, maxOrderPageSize)

	orders, total, err := s.orders.List(ctx, repositories.OrderFilter{
		UserID: userID,
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, NewOrderView(order))
	}

	return &OrderPage{Orders: views, Pagination: helpers.NewPagination(page, limit, total)}, nil
}

func (s *OrderService) Get(ctx context.Context, viewer *sessions.Claims, id string) (*OrderView, error) {
	if viewer == nil {
		return nil, helpers.NewUnauthorized(helpers.MsgUnauthorized)
	}

	order, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer.Role != models.RoleAdmin && (order.UserID == nil || *order.UserID != viewer.UserID) {
		return nil, helpers.NewForbidden(helpers.MsgForbidden)
	}

	view := NewOrderView(*order)
	return &view, nil
}

func (s *OrderService) Update(ctx context.Context, id string, in OrderUpdateInput) (*OrderView, error) {
	order, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Status != nil {
		status := models.OrderStatus(strings.ToUpper(strings.TrimSpace(*in.Status)))
		if !status.Valid() {
			return nil, helpers.NewBadRequest(msgOrderInvalidStatus)
		}
		order.Status = status
	}
	if in.Notes != nil {
		order.Notes = trimmedOrNil(in.Notes)
	}
	order.User = nil

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", order.ID).Str("status", string(order.Status)).Msg("order updated")
	view := NewOrderView(*order)
	return &view, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// Export writes every order matching status as an XLSX workbook.
func (s *OrderService) Export(ctx context.Context, w io.Writer, status string) error {
	st := models.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return helpers.NewBadRequest(msgOrderInvalidStatus)
	}

	orders, _, err := s.orders.List(ctx, repositories.OrderFilter{Status: st})
	if err != nil {
		return err
	}
	return WriteOrdersXLSX(w, orders)
}

func (s *OrderService) get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, helpers.NewNotFound(msgOrderNotFound)
	}
	return order, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
