package service

import (
	"context"
	"errors"
	"fmt"

	"inventorymis/internal/model"
	"inventorymis/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// DTOs
type CreatePurchaseRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	VendorID  string  `json:"vendor_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
}

type CreateSaleRequest struct {
	ProductID  string  `json:"product_id" binding:"required"`
	CustomerID string  `json:"customer_id"` // optional, walk-in sale when empty
	Quantity   float64 `json:"quantity" binding:"required"`
	Price      float64 `json:"price" binding:"required"`
}

// LedgerService owns the transactional records (purchases and sales). Every
// create and delete runs the row write and the balance update in a single
// database transaction.
type LedgerService interface {
	CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (*model.Purchase, error)
	// DeletePurchase returns the removed row so callers can react to the
	// balance movement (e.g. notify dashboard clients).
	DeletePurchase(ctx context.Context, id string) (*model.Purchase, error)
	ListPurchases(ctx context.Context, search string, page, limit int) ([]model.Purchase, int64, error)

	CreateSale(ctx context.Context, req CreateSaleRequest) (*model.Sale, error)
	DeleteSale(ctx context.Context, id string) (*model.Sale, error)
	ListSales(ctx context.Context, search string, page, limit int) ([]model.Sale, int64, error)
}

type ledgerService struct {
	purchaseRepo repository.PurchaseRepository
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	vendorRepo   repository.VendorRepository
	customerRepo repository.CustomerRepository
	stock        StockService
	txManager    repository.TransactionManager
}

func NewLedgerService(
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	customerRepo repository.CustomerRepository,
	stock StockService,
	txManager repository.TransactionManager,
) LedgerService {
	return &ledgerService{
		purchaseRepo: purchaseRepo,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		vendorRepo:   vendorRepo,
		customerRepo: customerRepo,
		stock:        stock,
		txManager:    txManager,
	}
}

func (s *ledgerService) CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (*model.Purchase, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}

	purchase := model.Purchase{
		ProductID: productID,
		VendorID:  vendorID,
		Quantity:  req.Quantity,
		Price:     req.Price,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.productRepo.FindByID(txCtx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %s", ErrNotFound, req.ProductID)
			}
			return fmt.Errorf("failed to find product: %w", err)
		}
		if _, err := s.vendorRepo.FindByID(txCtx, vendorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vendor %s", ErrNotFound, req.VendorID)
			}
			return fmt.Errorf("failed to find vendor: %w", err)
		}

		if err := s.purchaseRepo.Create(txCtx, &purchase); err != nil {
			return fmt.Errorf("failed to create purchase: %w", err)
		}

		return s.stock.OnPurchaseCreated(txCtx, productID, purchase.Quantity)
	})
	if err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (s *ledgerService) DeletePurchase(ctx context.Context, id string) (*model.Purchase, error) {
	purchaseID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase id: %w", err)
	}

	var purchase *model.Purchase
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		purchase, err = s.purchaseRepo.FindByID(txCtx, purchaseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: purchase %s", ErrNotFound, id)
			}
			return fmt.Errorf("failed to find purchase: %w", err)
		}

		if err := s.purchaseRepo.Delete(txCtx, purchaseID); err != nil {
			return fmt.Errorf("failed to delete purchase: %w", err)
		}

		return s.stock.OnPurchaseDeleted(txCtx, purchase.ProductID, purchase.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *ledgerService) ListPurchases(ctx context.Context, search string, page, limit int) ([]model.Purchase, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.purchaseRepo.List(ctx, search, page, limit)
}

func (s *ledgerService) CreateSale(ctx context.Context, req CreateSaleRequest) (*model.Sale, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		parsed, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer id: %w", err)
		}
		customerID = &parsed
	}

	sale := model.Sale{
		ProductID:  productID,
		CustomerID: customerID,
		Quantity:   req.Quantity,
		Price:      req.Price,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.productRepo.FindByID(txCtx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %s", ErrNotFound, req.ProductID)
			}
			return fmt.Errorf("failed to find product: %w", err)
		}
		if customerID != nil {
			if _, err := s.customerRepo.FindByID(txCtx, *customerID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: customer %s", ErrNotFound, req.CustomerID)
				}
				return fmt.Errorf("failed to find customer: %w", err)
			}
		}

		if err := s.saleRepo.Create(txCtx, &sale); err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		// Selling a never-purchased product fails here and the whole
		// transaction, including the sale row above, rolls back.
		return s.stock.OnSaleCreated(txCtx, productID, sale.Quantity)
	})
	if err != nil {
		return nil, err
	}

	return &sale, nil
}

func (s *ledgerService) DeleteSale(ctx context.Context, id string) (*model.Sale, error) {
	saleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid sale id: %w", err)
	}

	var sale *model.Sale
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		sale, err = s.saleRepo.FindByID(txCtx, saleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: sale %s", ErrNotFound, id)
			}
			return fmt.Errorf("failed to find sale: %w", err)
		}

		if err := s.saleRepo.Delete(txCtx, saleID); err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}

		return s.stock.OnSaleDeleted(txCtx, sale.ProductID, sale.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *ledgerService) ListSales(ctx context.Context, search string, page, limit int) ([]model.Sale, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.saleRepo.List(ctx, search, page, limit)
}
