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

// DTOs
type CreateProductRequest struct {
	Title  string `json:"title" binding:"required"`
	Detail string `json:"detail"`
	UnitID string `json:"unit_id" binding:"required"`
	Photo  string `json:"photo"` // optional stored object key or URL
}

type UpdateProductRequest struct {
	Title  string `json:"title" binding:"required"`
	Detail string `json:"detail"`
	UnitID string `json:"unit_id" binding:"required"`
	Photo  string `json:"photo"` // empty keeps the existing photo
}

type ProductService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, search string, page, limit int) ([]model.Product, int64, error)
}

type productService struct {
	productRepo repository.ProductRepository
	unitRepo    repository.UnitRepository
	txManager   repository.TransactionManager
}

func NewProductService(
	productRepo repository.ProductRepository,
	unitRepo repository.UnitRepository,
	txManager repository.TransactionManager,
) ProductService {
	return &productService{
		productRepo: productRepo,
		unitRepo:    unitRepo,
		txManager:   txManager,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	unitID, err := uuid.Parse(req.UnitID)
	if err != nil {
		return nil, fmt.Errorf("invalid unit id: %w", err)
	}

	if _, err := s.unitRepo.FindByID(ctx, unitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unit %s", ErrNotFound, req.UnitID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product := model.Product{
		Title:  req.Title,
		Detail: req.Detail,
		UnitID: unitID,
		Photo:  req.Photo,
	}
	if err := s.productRepo.Create(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}
	unitID, err := uuid.Parse(req.UnitID)
	if err != nil {
		return nil, fmt.Errorf("invalid unit id: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if _, err := s.unitRepo.FindByID(ctx, unitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unit %s", ErrNotFound, req.UnitID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product.Title = req.Title
	product.Detail = req.Detail
	product.UnitID = unitID
	if req.Photo != "" {
		product.Photo = req.Photo
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes the product together with its purchases, sales and
// inventory row (FK cascade), inside one transaction.
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.productRepo.FindByID(txCtx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %s", ErrNotFound, id)
			}
			return fmt.Errorf("database error: %w", err)
		}
		return s.productRepo.Delete(txCtx, productID)
	})
}

func (s *productService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid product id: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, search string, page, limit int) ([]model.Product, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.productRepo.List(ctx, search, page, limit)
}
