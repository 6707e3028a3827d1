package service

import (
	"context"
	"errors"
	"fmt"

	"inventorymis/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInventoryNotFound is returned when a sale or a ledger deletion targets a
// product whose inventory row was never established. The create-purchase path
// is the only one that establishes rows; every other path treats a missing
// row as an integrity error and surfaces it instead of papering over it.
var ErrInventoryNotFound = errors.New("inventory record not found for product")

// StockService keeps each product's running balance synchronized with the
// ledger. The ledger service calls these methods explicitly inside its own
// transaction; there is no hidden hook path, so a failed balance update rolls
// the triggering mutation back with it.
type StockService interface {
	OnPurchaseCreated(ctx context.Context, productID uuid.UUID, quantity float64) error
	OnPurchaseDeleted(ctx context.Context, productID uuid.UUID, quantity float64) error
	OnSaleCreated(ctx context.Context, productID uuid.UUID, quantity float64) error
	OnSaleDeleted(ctx context.Context, productID uuid.UUID, quantity float64) error
}

type stockService struct {
	inventoryRepo repository.InventoryRepository
	nonAtomic     bool
}

// StockOption configures a StockService.
type StockOption func(*stockService)

// WithNonAtomicUpdates switches balance maintenance to the legacy
// read-modify-write sequence. Concurrent writers can lose updates in this
// mode; it exists only for compatibility testing against the old behavior.
func WithNonAtomicUpdates() StockOption {
	return func(s *stockService) {
		s.nonAtomic = true
	}
}

func NewStockService(inventoryRepo repository.InventoryRepository, opts ...StockOption) StockService {
	s := &stockService{inventoryRepo: inventoryRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *stockService) OnPurchaseCreated(ctx context.Context, productID uuid.UUID, quantity float64) error {
	if s.nonAtomic {
		inv, _, err := s.inventoryRepo.GetOrCreate(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to get or create inventory: %w", err)
		}
		inv.TotalBalanceQuantity += quantity
		return s.inventoryRepo.Save(ctx, inv)
	}

	if _, _, err := s.inventoryRepo.GetOrCreate(ctx, productID); err != nil {
		return fmt.Errorf("failed to get or create inventory: %w", err)
	}
	return s.inventoryRepo.AdjustBalance(ctx, productID, quantity)
}

func (s *stockService) OnPurchaseDeleted(ctx context.Context, productID uuid.UUID, quantity float64) error {
	return s.adjustStrict(ctx, productID, -quantity)
}

func (s *stockService) OnSaleCreated(ctx context.Context, productID uuid.UUID, quantity float64) error {
	return s.adjustStrict(ctx, productID, -quantity)
}

func (s *stockService) OnSaleDeleted(ctx context.Context, productID uuid.UUID, quantity float64) error {
	return s.adjustStrict(ctx, productID, quantity)
}

// adjustStrict requires the inventory row to exist already. Missing rows mean
// the balance invariant was already broken elsewhere; the error propagates so
// the surrounding transaction aborts.
func (s *stockService) adjustStrict(ctx context.Context, productID uuid.UUID, delta float64) error {
	if s.nonAtomic {
		inv, err := s.inventoryRepo.FindByProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInventoryNotFound
			}
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		inv.TotalBalanceQuantity += delta
		return s.inventoryRepo.Save(ctx, inv)
	}

	err := s.inventoryRepo.AdjustBalance(ctx, productID, delta)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInventoryNotFound
	}
	return err
}
