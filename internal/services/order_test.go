package services

import (
	"context"
	"testing"
	"time"

	"curaise/internal/cart"
	"curaise/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderRepository keeps orders in memory for testing
type fakeOrderRepository struct {
	orders map[uuid.UUID]*models.Order
	items  map[uuid.UUID][]*models.OrderItemDetail
	byItem map[uuid.UUID]*models.FundraiserItem
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{
		orders: make(map[uuid.UUID]*models.Order),
		items:  make(map[uuid.UUID][]*models.OrderItemDetail),
		byItem: make(map[uuid.UUID]*models.FundraiserItem),
	}
}

func (f *fakeOrderRepository) Create(buyerID uuid.UUID, req *models.OrderCreateRequest, totalAmount decimal.Decimal) (*models.Order, error) {
	order := &models.Order{
		ID:            uuid.New(),
		BuyerID:       buyerID,
		FundraiserID:  req.FundraiserID,
		PickupEventID: req.PickupEventID,
		TotalAmount:   totalAmount,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	f.orders[order.ID] = order

	var details []*models.OrderItemDetail
	for _, input := range req.Items {
		details = append(details, &models.OrderItemDetail{
			Item:     f.byItem[input.ItemID],
			Quantity: input.Quantity,
		})
	}
	f.items[order.ID] = details
	return order, nil
}

func (f *fakeOrderRepository) GetByID(id uuid.UUID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepository) GetItems(orderID uuid.UUID) ([]*models.OrderItemDetail, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepository) GetByBuyer(buyerID uuid.UUID) ([]*models.Order, error) {
	var out []*models.Order
	for _, order := range f.orders {
		if order.BuyerID == buyerID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepository) UpdatePaymentStatus(id uuid.UUID, status models.PaymentStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return models.ErrOrderNotFound
	}
	order.PaymentStatus = status
	return nil
}

func (f *fakeOrderRepository) MarkPickupCompleted(id uuid.UUID) error {
	order, ok := f.orders[id]
	if !ok {
		return models.ErrOrderNotFound
	}
	order.PickupCompleted = true
	return nil
}

// fakeFundraiserRepository serves one fundraiser and its items
type fakeFundraiserRepository struct {
	fundraiser *models.Fundraiser
	items      []*models.FundraiserItem
}

func (f *fakeFundraiserRepository) Create(req *models.FundraiserCreateRequest) (*models.Fundraiser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	f.fundraiser = &models.Fundraiser{
		ID:             uuid.New(),
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		GoalAmount:     req.GoalAmount,
		BuyingStartsAt: req.BuyingStartsAt,
		BuyingEndsAt:   req.BuyingEndsAt,
		PickupStartsAt: req.PickupStartsAt,
		PickupEndsAt:   req.PickupEndsAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return f.fundraiser, nil
}

func (f *fakeFundraiserRepository) GetAll() ([]*models.Fundraiser, error) {
	return []*models.Fundraiser{f.fundraiser}, nil
}

func (f *fakeFundraiserRepository) GetByID(id uuid.UUID) (*models.Fundraiser, error) {
	if f.fundraiser == nil || f.fundraiser.ID != id {
		return nil, models.ErrFundraiserNotFound
	}
	return f.fundraiser, nil
}

func (f *fakeFundraiserRepository) GetItems(fundraiserID uuid.UUID) ([]*models.FundraiserItem, error) {
	return f.items, nil
}

func (f *fakeFundraiserRepository) GetItemsByIDs(fundraiserID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*models.FundraiserItem, error) {
	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	out := make(map[uuid.UUID]*models.FundraiserItem)
	for _, item := range f.items {
		if wanted[item.ID] {
			out[item.ID] = item
		}
	}
	return out, nil
}

func (f *fakeFundraiserRepository) GetPickupEvents(fundraiserID uuid.UUID) ([]*models.PickupEvent, error) {
	return nil, nil
}

func (f *fakeFundraiserRepository) GetAnnouncements(fundraiserID uuid.UUID) ([]*models.Announcement, error) {
	return nil, nil
}

// fakeUserRepository serves fixed users and memberships
type fakeUserRepository struct {
	users   map[uuid.UUID]*models.User
	members map[uuid.UUID]uuid.UUID // user -> organization
}

func (f *fakeUserRepository) Upsert(id uuid.UUID, req *models.UserUpsertRequest) (*models.User, error) {
	user := &models.User{ID: id, Email: req.Email, Name: req.Name, NetID: req.NetID, VenmoHandle: req.VenmoHandle}
	f.users[id] = user
	return user, nil
}

func (f *fakeUserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetOrganizations(userID uuid.UUID) ([]*models.Organization, error) {
	orgID, ok := f.members[userID]
	if !ok {
		return nil, nil
	}
	return []*models.Organization{{ID: orgID}}, nil
}

func (f *fakeUserRepository) IsOrganizationMember(userID, organizationID uuid.UUID) (bool, error) {
	return f.members[userID] == organizationID, nil
}

// recordingEmailService records confirmation sends
type recordingEmailService struct {
	sent int
}

func (r *recordingEmailService) SendOrderConfirmation(buyer *models.User, order *models.Order, fundraiser *models.Fundraiser, items []*models.OrderItemDetail) error {
	r.sent++
	return nil
}

type orderServiceFixture struct {
	service    *OrderService
	orderRepo  *fakeOrderRepository
	cartRepo   *cart.MemoryRepository
	email      *recordingEmailService
	fundraiser *models.Fundraiser
	itemA      *models.FundraiserItem
	itemB      *models.FundraiserItem
	buyer      *models.User
	seller     *models.User
}

func newOrderServiceFixture(t *testing.T) *orderServiceFixture {
	t.Helper()

	now := time.Now()
	fundraiser := &models.Fundraiser{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Name:           "Spring Bake Sale",
		BuyingStartsAt: now.Add(-1 * time.Hour),
		BuyingEndsAt:   now.Add(24 * time.Hour),
		PickupStartsAt: now.Add(48 * time.Hour),
		PickupEndsAt:   now.Add(72 * time.Hour),
	}

	itemA := &models.FundraiserItem{
		ID:           uuid.New(),
		FundraiserID: fundraiser.ID,
		Name:         "Donuts",
		Price:        decimal.RequireFromString("3.50"),
	}
	itemB := &models.FundraiserItem{
		ID:           uuid.New(),
		FundraiserID: fundraiser.ID,
		Name:         "T-Shirt",
		Price:        decimal.RequireFromString("10.00"),
	}

	buyer := &models.User{ID: uuid.New(), Email: "buyer@cornell.edu", Name: "Buyer"}
	seller := &models.User{ID: uuid.New(), Email: "seller@cornell.edu", Name: "Seller"}

	orderRepo := newFakeOrderRepository()
	orderRepo.byItem[itemA.ID] = itemA
	orderRepo.byItem[itemB.ID] = itemB

	fundraiserRepo := &fakeFundraiserRepository{
		fundraiser: fundraiser,
		items:      []*models.FundraiserItem{itemA, itemB},
	}

	userRepo := &fakeUserRepository{
		users: map[uuid.UUID]*models.User{
			buyer.ID:  buyer,
			seller.ID: seller,
		},
		members: map[uuid.UUID]uuid.UUID{
			seller.ID: fundraiser.OrganizationID,
		},
	}

	cartRepo := cart.NewMemoryRepository()
	email := &recordingEmailService{}

	return &orderServiceFixture{
		service:    NewOrderService(orderRepo, fundraiserRepo, userRepo, cartRepo, email),
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		email:      email,
		fundraiser: fundraiser,
		itemA:      itemA,
		itemB:      itemB,
		buyer:      buyer,
		seller:     seller,
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()

	order, err := fx.service.CreateOrder(ctx, fx.buyer.ID, &models.OrderCreateRequest{
		FundraiserID: fx.fundraiser.ID,
		Items: []models.OrderItemInput{
			{ItemID: fx.itemA.ID, Quantity: 2},
			{ItemID: fx.itemB.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 3.50 x 2 + 10.00 x 1, exact to the cent
	assert.Equal(t, "17.00", FormatAmount(order.TotalAmount))
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.False(t, order.PickupCompleted)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 1, fx.email.sent)
}

func TestOrderService_CreateOrder_DrainsBuyerCart(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()

	// Seed the buyer's cart for this fundraiser and another one.
	store := cart.NewStore(fx.buyer.ID.String(), fx.cartRepo)
	require.NoError(t, store.AddItem(ctx, fx.fundraiser.ID.String(), cart.Item{ID: fx.itemA.ID, Price: fx.itemA.Price}, 2))
	require.NoError(t, store.AddItem(ctx, "other-fundraiser", cart.Item{ID: uuid.New()}, 1))

	_, err := fx.service.CreateOrder(ctx, fx.buyer.ID, &models.OrderCreateRequest{
		FundraiserID: fx.fundraiser.ID,
		Items:        []models.OrderItemInput{{ItemID: fx.itemA.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	reloaded, err := cart.Open(ctx, fx.buyer.ID.String(), fx.cartRepo)
	require.NoError(t, err)
	assert.Empty(t, reloaded.GetCartItems(fx.fundraiser.ID.String()))
	assert.Len(t, reloaded.GetCartItems("other-fundraiser"), 1)
}

func TestOrderService_CreateOrder_FromCart(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()

	// A request without items is priced from the buyer's server-side cart.
	store := cart.NewStore(fx.buyer.ID.String(), fx.cartRepo)
	require.NoError(t, store.AddItem(ctx, fx.fundraiser.ID.String(), cart.Item{ID: fx.itemA.ID, Price: fx.itemA.Price}, 2))
	require.NoError(t, store.AddItem(ctx, fx.fundraiser.ID.String(), cart.Item{ID: fx.itemB.ID, Price: fx.itemB.Price}, 1))

	order, err := fx.service.CreateOrder(ctx, fx.buyer.ID, &models.OrderCreateRequest{
		FundraiserID: fx.fundraiser.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "17.00", FormatAmount(order.TotalAmount))
	assert.Len(t, order.Items, 2)

	// The cart the order was built from is drained.
	reloaded, err := cart.Open(ctx, fx.buyer.ID.String(), fx.cartRepo)
	require.NoError(t, err)
	assert.Empty(t, reloaded.GetCartItems(fx.fundraiser.ID.String()))

	// An empty cart still cannot produce an order.
	_, err = fx.service.CreateOrder(ctx, fx.buyer.ID, &models.OrderCreateRequest{
		FundraiserID: fx.fundraiser.ID,
	})
	assert.Error(t, err)
}

func TestOrderService_CreateOrder_Rejections(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()

	t.Run("unknown item", func(t *testing.T) {
		_, err := fx.service.CreateOrder(ctx, fx.buyer.ID, &models.OrderCreateRequest{
			FundraiserID: fx.fundraiser.ID,
			Items:        []models.OrderItemInput{{ItemID: uuid.New(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, models.ErrItemNotFound)
	})

	t.Run("offsale item", func(t *testing.T) {
		fx.itemB.Offsale = true
		defer func() { fx.itemB.Offsale = false }()

		_, err := fx.service.CreateOrder(ctx, fx.buyer.ID, &models.OrderCreateRequest{
			FundraiserID: fx.fundraiser.ID,
			Items:        []models.OrderItemInput{{ItemID: fx.itemB.ID, Quantity: 1}},
		})
		assert.Error(t, err)
	})

	t.Run("closed buying window", func(t *testing.T) {
		fx.fundraiser.BuyingEndsAt = time.Now().Add(-time.Minute)
		defer func() { fx.fundraiser.BuyingEndsAt = time.Now().Add(24 * time.Hour) }()

		_, err := fx.service.CreateOrder(ctx, fx.buyer.ID, &models.OrderCreateRequest{
			FundraiserID: fx.fundraiser.ID,
			Items:        []models.OrderItemInput{{ItemID: fx.itemA.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, models.ErrBuyingWindowClosed)
	})

	t.Run("empty order", func(t *testing.T) {
		_, err := fx.service.CreateOrder(ctx, fx.buyer.ID, &models.OrderCreateRequest{
			FundraiserID: fx.fundraiser.ID,
		})
		assert.Error(t, err)
	})
}

func TestOrderService_ConfirmPayment(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateOrder(ctx, fx.buyer.ID, &models.OrderCreateRequest{
		FundraiserID: fx.fundraiser.ID,
		Items:        []models.OrderItemInput{{ItemID: fx.itemA.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Buyers cannot verify their own payment.
	_, err = fx.service.ConfirmPayment(fx.buyer.ID, created.ID, models.PaymentConfirmed)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	// Back to PENDING is not a verification outcome.
	_, err = fx.service.ConfirmPayment(fx.seller.ID, created.ID, models.PaymentPending)
	assert.Error(t, err)

	order, err := fx.service.ConfirmPayment(fx.seller.ID, created.ID, models.PaymentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentConfirmed, order.PaymentStatus)

	// Already-verified orders cannot be re-verified.
	_, err = fx.service.ConfirmPayment(fx.seller.ID, created.ID, models.PaymentUnverifiable)
	assert.Error(t, err)
}

func TestOrderService_CompletePickup(t *testing.T) {
	fx := newOrderServiceFixture(t)
	ctx := context.Background()

	created, err := fx.service.CreateOrder(ctx, fx.buyer.ID, &models.OrderCreateRequest{
		FundraiserID: fx.fundraiser.ID,
		Items:        []models.OrderItemInput{{ItemID: fx.itemA.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Pickup requires a confirmed payment.
	_, err = fx.service.CompletePickup(fx.seller.ID, created.ID)
	assert.Error(t, err)

	_, err = fx.service.ConfirmPayment(fx.seller.ID, created.ID, models.PaymentConfirmed)
	require.NoError(t, err)

	order, err := fx.service.CompletePickup(fx.seller.ID, created.ID)
	require.NoError(t, err)
	assert.True(t, order.PickupCompleted)

	_, err = fx.service.CompletePickup(fx.seller.ID, created.ID)
	assert.Error(t, err)
}

func TestOrderTotal(t *testing.T) {
	items := []*models.OrderItemDetail{
		{Item: &models.FundraiserItem{Name: "A", Price: decimal.RequireFromString("3.50")}, Quantity: 2},
		{Item: &models.FundraiserItem{Name: "B", Price: decimal.RequireFromString("10.00")}, Quantity: 1},
	}

	assert.Equal(t, "17.00", FormatAmount(OrderTotal(items)))
	assert.Equal(t, "7.00", FormatAmount(LineSubtotal(items[0])))
	assert.Equal(t, "0.00", FormatAmount(OrderTotal(nil)))
}
