package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"curaise/internal/cart"
	"curaise/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService handles order-related business logic
type OrderService struct {
	orderRepo      OrderRepository
	fundraiserRepo FundraiserRepository
	userRepo       UserRepository
	cartRepo       cart.SnapshotRepository
	emailService   EmailService
}

// OrderRepository interface for order data operations
type OrderRepository interface {
	Create(buyerID uuid.UUID, req *models.OrderCreateRequest, totalAmount decimal.Decimal) (*models.Order, error)
	GetByID(id uuid.UUID) (*models.Order, error)
	GetItems(orderID uuid.UUID) ([]*models.OrderItemDetail, error)
	GetByBuyer(buyerID uuid.UUID) ([]*models.Order, error)
	UpdatePaymentStatus(id uuid.UUID, status models.PaymentStatus) error
	MarkPickupCompleted(id uuid.UUID) error
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo OrderRepository,
	fundraiserRepo FundraiserRepository,
	userRepo UserRepository,
	cartRepo cart.SnapshotRepository,
	emailService EmailService,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		fundraiserRepo: fundraiserRepo,
		userRepo:       userRepo,
		cartRepo:       cartRepo,
		emailService:   emailService,
	}
}

// CreateOrder creates a new order for the buyer, prices it from the
// fundraiser's current items, and drains the buyer's cart for that
// fundraiser. A request without items falls back to the buyer's server-side
// cart. The order starts PENDING until the seller verifies payment.
func (s *OrderService) CreateOrder(ctx context.Context, buyerID uuid.UUID, req *models.OrderCreateRequest) (*models.OrderWithItems, error) {
	if len(req.Items) == 0 && req.FundraiserID != uuid.Nil && s.cartRepo != nil {
		store, err := cart.Open(ctx, buyerID.String(), s.cartRepo)
		if err != nil {
			return nil, fmt.Errorf("failed to load cart: %w", err)
		}
		copied := *req
		copied.Items = store.PrepareOrderItems(req.FundraiserID.String())
		req = &copied
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	fundraiser, err := s.fundraiserRepo.GetByID(req.FundraiserID)
	if err != nil {
		return nil, err
	}

	if !fundraiser.IsBuyingOpen(time.Now()) {
		return nil, models.ErrBuyingWindowClosed
	}

	itemIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		itemIDs = append(itemIDs, item.ItemID)
	}

	priced, err := s.fundraiserRepo.GetItemsByIDs(req.FundraiserID, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to price order items: %w", err)
	}

	total := decimal.Zero
	for _, input := range req.Items {
		item, ok := priced[input.ItemID]
		if !ok {
			return nil, models.ErrItemNotFound
		}
		if item.Offsale {
			return nil, fmt.Errorf("item %s is not for sale", item.Name)
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(input.Quantity))))
	}

	order, err := s.orderRepo.Create(buyerID, req, total)
	if err != nil {
		return nil, err
	}

	// Successful submission empties the buyer's cart for this fundraiser.
	if err := s.clearBuyerCart(ctx, buyerID, req.FundraiserID); err != nil {
		log.Printf("Warning: failed to clear cart for buyer %s after order %s: %v", buyerID, order.ID, err)
	}

	details, err := s.orderRepo.GetItems(order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created order items: %w", err)
	}

	withItems := &models.OrderWithItems{Order: order, Items: details}

	if err := s.SendOrderConfirmation(order.ID); err != nil {
		// Log but don't fail order creation on email problems
		log.Printf("Warning: failed to send order confirmation for order %s: %v", order.ID, err)
	}

	return withItems, nil
}

// GetOrder retrieves an order with its line item details
func (s *OrderService) GetOrder(id uuid.UUID) (*models.OrderWithItems, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	details, err := s.orderRepo.GetItems(id)
	if err != nil {
		return nil, err
	}

	return &models.OrderWithItems{Order: order, Items: details}, nil
}

// GetOrdersByBuyer retrieves a buyer's orders with line item details
func (s *OrderService) GetOrdersByBuyer(buyerID uuid.UUID) ([]*models.OrderWithItems, error) {
	orders, err := s.orderRepo.GetByBuyer(buyerID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.OrderWithItems, 0, len(orders))
	for _, order := range orders {
		details, err := s.orderRepo.GetItems(order.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &models.OrderWithItems{Order: order, Items: details})
	}

	return out, nil
}

// ConfirmPayment moves a pending order's payment status to the given verified
// state. Only members of the fundraiser's organization may verify payments.
func (s *OrderService) ConfirmPayment(actorID, orderID uuid.UUID, status models.PaymentStatus) (*models.Order, error) {
	if status != models.PaymentConfirmed && status != models.PaymentUnverifiable {
		return nil, fmt.Errorf("validation failed: payment can only be confirmed or marked unverifiable")
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsPending() {
		return nil, fmt.Errorf("order payment is already %s", order.PaymentStatus)
	}

	if err := s.requireSeller(actorID, order.FundraiserID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdatePaymentStatus(orderID, status); err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(orderID)
}

// CompletePickup marks a confirmed order as picked up. Sellers complete
// pickup at the pickup event; the buyer may also self-report.
func (s *OrderService) CompletePickup(actorID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	if actorID != order.BuyerID {
		if err := s.requireSeller(actorID, order.FundraiserID); err != nil {
			return nil, err
		}
	}

	if !order.CanCompletePickup() {
		if order.PickupCompleted {
			return nil, fmt.Errorf("order pickup is already completed")
		}
		return nil, fmt.Errorf("order payment must be confirmed before pickup")
	}

	if err := s.orderRepo.MarkPickupCompleted(orderID); err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(orderID)
}

// SendOrderConfirmation sends the order confirmation email for an order
func (s *OrderService) SendOrderConfirmation(orderID uuid.UUID) error {
	if s.emailService == nil {
		return fmt.Errorf("email service not available")
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}

	buyer, err := s.userRepo.GetByID(order.BuyerID)
	if err != nil {
		return fmt.Errorf("failed to get buyer: %w", err)
	}

	fundraiser, err := s.fundraiserRepo.GetByID(order.FundraiserID)
	if err != nil {
		return err
	}

	details, err := s.orderRepo.GetItems(order.ID)
	if err != nil {
		return err
	}

	if err := s.emailService.SendOrderConfirmation(buyer, order, fundraiser, details); err != nil {
		return fmt.Errorf("failed to send order confirmation email: %w", err)
	}

	return nil
}

// requireSeller ensures the actor belongs to the organization running the
// fundraiser
func (s *OrderService) requireSeller(actorID, fundraiserID uuid.UUID) error {
	fundraiser, err := s.fundraiserRepo.GetByID(fundraiserID)
	if err != nil {
		return err
	}

	isMember, err := s.userRepo.IsOrganizationMember(actorID, fundraiser.OrganizationID)
	if err != nil {
		return err
	}
	if !isMember {
		return models.ErrUnauthorized
	}

	return nil
}

func (s *OrderService) clearBuyerCart(ctx context.Context, buyerID, fundraiserID uuid.UUID) error {
	if s.cartRepo == nil {
		return nil
	}

	store, err := cart.Open(ctx, buyerID.String(), s.cartRepo)
	if err != nil {
		return err
	}

	return store.ClearCart(ctx, fundraiserID.String())
}

// OrderTotal computes an order's total from its line item details using
// exact decimal math: sum of unit price times quantity.
func OrderTotal(items []*models.OrderItemDetail) decimal.Decimal {
	total := decimal.Zero
	for _, detail := range items {
		total = total.Add(LineSubtotal(detail))
	}
	return total
}

// LineSubtotal computes one line item's subtotal
func LineSubtotal(detail *models.OrderItemDetail) decimal.Decimal {
	return detail.Item.Price.Mul(decimal.NewFromInt(int64(detail.Quantity)))
}

// FormatAmount renders a decimal amount fixed to two places for display
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
