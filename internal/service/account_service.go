package service

import (
	"context"
	"fmt"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// accountService implements AccountService.
type accountService struct {
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
	validator   *validation.Validator
	logger      zerolog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	addressRepo repository.AddressRepository,
	validator *validation.Validator,
	logger zerolog.Logger,
) AccountService {
	return &accountService{
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		validator:   validator,
		logger:      logger.With().Str("service", "account").Logger(),
	}
}

// Profile returns the caller's profile, creating it on first sign-in.
func (s *accountService) Profile(ctx context.Context, id auth.Identity) (*model.User, error) {
	user, err := s.userRepo.Ensure(ctx, id.UserID, id.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.UserID).Msg("failed to load profile")
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, id auth.Identity, req model.ProfileUpdateRequest) (*model.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.Profile(ctx, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateProfile(ctx, id.UserID, req)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.UserID).Msg("failed to update profile")
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if user == nil {
		return nil, model.NewDomainError(model.ErrCodeNotFound, "Profile not found")
	}

	s.logger.Info().Str("user_id", id.UserID).Msg("profile updated")
	return user, nil
}

func (s *accountService) ListOrders(ctx context.Context, userID string, limit, offset int) ([]model.Order, error) {
	limit, offset = normalisePage(limit, offset)

	orders, err := s.orderRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one of the caller's orders. Orders belonging to other
// users are reported as not found.
func (s *accountService) GetOrder(ctx context.Context, userID string, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func (s *accountService) ListAddresses(ctx context.Context, userID string) ([]model.ShippingAddress, error) {
	addresses, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list addresses")
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

func (s *accountService) CreateAddress(ctx context.Context, userID string, details model.ShippingDetails) (*model.ShippingAddress, error) {
	if err := s.validator.Struct(details); err != nil {
		return nil, err
	}

	address := &model.ShippingAddress{
		ID:              uuid.New(),
		UserID:          userID,
		ShippingDetails: details,
	}
	if err := s.addressRepo.Create(ctx, address); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create address")
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return address, nil
}

func (s *accountService) UpdateAddress(ctx context.Context, userID string, id uuid.UUID, details model.ShippingDetails) (*model.ShippingAddress, error) {
	if err := s.validator.Struct(details); err != nil {
		return nil, err
	}

	address := &model.ShippingAddress{
		ID:              id,
		UserID:          userID,
		ShippingDetails: details,
	}
	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, wrapRepoErr(err, "failed to update address")
	}
	return address, nil
}

func (s *accountService) DeleteAddress(ctx context.Context, userID string, id uuid.UUID) error {
	if err := s.addressRepo.Delete(ctx, userID, id); err != nil {
		return wrapRepoErr(err, "failed to delete address")
	}
	return nil
}

func (s *accountService) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	limit, offset = normalisePage(limit, offset)

	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
