package service

import (
	"context"
	"fmt"

	"storefront/internal/auth"
	"storefront/internal/events"
	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/repository"
	"storefront/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CheckoutOptions configures the checkout service.
type CheckoutOptions struct {
	Rules pricing.Rules
	// RevalidatePrices replaces cart snapshot prices with current catalogue prices.
	RevalidatePrices bool
}

// checkoutService implements CheckoutService.
type checkoutService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
	publisher   events.Publisher
	validator   *validation.Validator
	opts        CheckoutOptions
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	addressRepo repository.AddressRepository,
	publisher events.Publisher,
	validator *validation.Validator,
	opts CheckoutOptions,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		publisher:   publisher,
		validator:   validator,
		opts:        opts,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// Quote prices the selected cart lines without storing anything.
func (s *checkoutService) Quote(ctx context.Context, req model.QuoteRequest) (*model.QuoteResponse, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return nil, model.ErrUnauthenticated
	}

	quote, err := s.price(ctx, id.UserID, req.Items)
	if err != nil {
		return nil, err
	}

	return &model.QuoteResponse{
		Items:         orderItems(quote, uuid.Nil),
		Subtotal:      quote.Subtotal,
		DiscountTotal: quote.DiscountTotal,
		Tax:           quote.Tax,
		Shipping:      quote.Shipping,
		Total:         quote.Total,
	}, nil
}

// PlaceOrder stores one order for the selected cart lines. The order and its
// items are written in a single transaction. Saving the shipping address and
// publishing the order event happen afterwards and never undo the order.
func (s *checkoutService) PlaceOrder(ctx context.Context, req model.CheckoutRequest) (*model.CheckoutResponse, error) {
	id, ok := auth.FromContext(ctx)
	if !ok {
		s.logger.Debug().Msg("checkout attempted without sign-in")
		return nil, model.ErrUnauthenticated
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	quote, err := s.price(ctx, id.UserID, req.Items)
	if err != nil {
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentCOD
	}

	order := &model.Order{
		ID:              uuid.New(),
		UserID:          id.UserID,
		Subtotal:        quote.Subtotal,
		DiscountTotal:   quote.DiscountTotal,
		Tax:             quote.Tax,
		Shipping:        quote.Shipping,
		Total:           quote.Total,
		PaymentMethod:   paymentMethod,
		ShippingDetails: req.Shipping,
	}
	order.Items = orderItems(quote, order.ID)

	if err := s.storeOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", id.UserID).
		Int("item_count", len(order.Items)).
		Str("total", order.Total.StringFixed(2)).
		Msg("order placed")

	resp := &model.CheckoutResponse{Order: order, AddressSaved: true}

	address := &model.ShippingAddress{
		ID:              uuid.New(),
		UserID:          id.UserID,
		ShippingDetails: req.Shipping,
	}
	if err := s.addressRepo.Create(ctx, address); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("order placed but shipping address was not saved")
		resp.AddressSaved = false
	}

	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to publish order event")
	}

	return resp, nil
}

// storeOrder writes the order and its items in one transaction.
func (s *checkoutService) storeOrder(ctx context.Context, order *model.Order) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, order.Items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(order.Items)).
			Msg("failed to create order items")
		return fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// price builds line items from the user's cart and computes the quote.
// With no selection the whole cart is priced. A selected line with zero
// quantity uses the quantity held in the cart.
func (s *checkoutService) price(ctx context.Context, userID string, selection []model.CheckoutItemRequest) (pricing.Quote, error) {
	cart, err := s.cartRepo.List(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to read cart")
		return pricing.Quote{}, fmt.Errorf("failed to read cart: %w", err)
	}

	lines, err := selectLines(cart, selection)
	if err != nil {
		return pricing.Quote{}, err
	}

	if s.opts.RevalidatePrices && len(lines) > 0 {
		if err := s.revalidate(ctx, lines); err != nil {
			return pricing.Quote{}, err
		}
	}

	quote, err := pricing.Calculate(lines, s.opts.Rules)
	if err != nil {
		s.logger.Debug().Err(err).Str("user_id", userID).Msg("cart cannot be priced")
		return pricing.Quote{}, err
	}
	if quote.Total.GreaterThan(model.MaxOrderAmount) {
		s.logger.Debug().Str("user_id", userID).Str("total", quote.Total.String()).Msg("order total out of range")
		return pricing.Quote{}, model.ErrOrderTooLarge
	}

	return quote, nil
}

func selectLines(cart []model.CartItem, selection []model.CheckoutItemRequest) ([]pricing.LineItem, error) {
	if len(selection) == 0 {
		lines := make([]pricing.LineItem, 0, len(cart))
		for _, item := range cart {
			if item.Quantity > model.MaxLineQuantity {
				return nil, model.ErrInvalidQuantity
			}
			lines = append(lines, lineFromCart(item, item.Quantity))
		}
		return lines, nil
	}

	byID := make(map[string]model.CartItem, len(cart))
	for _, item := range cart {
		byID[item.ProductID] = item
	}

	seen := make(map[string]bool, len(selection))
	lines := make([]pricing.LineItem, 0, len(selection))
	for _, sel := range selection {
		if seen[sel.ProductID] {
			return nil, model.NewDomainError(model.ErrCodeValidation, fmt.Sprintf("Product %s is selected more than once", sel.ProductID))
		}
		seen[sel.ProductID] = true

		item, ok := byID[sel.ProductID]
		if !ok {
			return nil, model.ErrCartItemNotFound
		}
		quantity := sel.Quantity
		if quantity == 0 {
			quantity = item.Quantity
		}
		if quantity < 0 || quantity > model.MaxLineQuantity {
			return nil, model.ErrInvalidQuantity
		}
		lines = append(lines, lineFromCart(item, quantity))
	}

	return lines, nil
}

func lineFromCart(item model.CartItem, quantity int) pricing.LineItem {
	return pricing.LineItem{
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  quantity,
	}
}

// revalidate replaces snapshot names and prices with the current catalogue values.
func (s *checkoutService) revalidate(ctx context.Context, lines []pricing.LineItem) error {
	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to read catalogue prices: %w", err)
	}

	current := make(map[string]model.Product, len(products))
	for _, p := range products {
		current[p.ID] = p
	}

	for i := range lines {
		p, ok := current[lines[i].ProductID]
		if !ok {
			s.logger.Warn().Str("product_id", lines[i].ProductID).Msg("cart line refers to a product no longer in the catalogue")
			return model.ErrProductNotFound
		}
		if !p.Price.Equal(lines[i].UnitPrice) {
			s.logger.Info().
				Str("product_id", p.ID).
				Str("cart_price", lines[i].UnitPrice.String()).
				Str("catalogue_price", p.Price.String()).
				Msg("cart price differs from catalogue, using catalogue price")
		}
		lines[i].UnitPrice = p.Price
		lines[i].Name = p.Name
	}

	return nil
}

// orderItems converts priced lines into order item snapshots.
func orderItems(quote pricing.Quote, orderID uuid.UUID) []model.OrderItem {
	items := make([]model.OrderItem, len(quote.Lines))
	for i, line := range quote.Lines {
		items[i] = model.OrderItem{
			OrderID:      orderID,
			ProductID:    line.ProductID,
			Name:         line.Name,
			UnitPrice:    line.UnitPrice,
			Quantity:     line.Quantity,
			LineSubtotal: line.LineSubtotal,
			LineDiscount: line.LineDiscount,
		}
		if orderID != uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return items
}
