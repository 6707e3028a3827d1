package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventorymis/internal/model"
	"inventorymis/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when a unique constraint would be violated.
var ErrDuplicate = errors.New("record already exists")

// DTOs
type CreateVendorRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Address  string `json:"address"`
	Mobile   string `json:"mobile" binding:"required"`
	Status   *bool  `json:"status"` // defaults to active when omitted
}

type CreateUnitRequest struct {
	Title     string `json:"title" binding:"required"`
	ShortName string `json:"short_name" binding:"required"`
}

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// MasterService manages the reference entities (vendors, units, customers).
// Pure CRUD: no derived computation hangs off these records.
type MasterService interface {
	CreateVendor(ctx context.Context, req CreateVendorRequest) (*model.Vendor, error)
	UpdateVendor(ctx context.Context, id string, req CreateVendorRequest) (*model.Vendor, error)
	DeleteVendor(ctx context.Context, id string) error
	ListVendors(ctx context.Context, search string, page, limit int) ([]model.Vendor, int64, error)

	CreateUnit(ctx context.Context, req CreateUnitRequest) (*model.Unit, error)
	UpdateUnit(ctx context.Context, id string, req CreateUnitRequest) (*model.Unit, error)
	DeleteUnit(ctx context.Context, id string) error
	ListUnits(ctx context.Context, search string, page, limit int) ([]model.Unit, int64, error)

	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id string, req CreateCustomerRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	ListCustomers(ctx context.Context, search string, page, limit int) ([]model.Customer, int64, error)
}

type masterService struct {
	vendorRepo   repository.VendorRepository
	unitRepo     repository.UnitRepository
	customerRepo repository.CustomerRepository
}

func NewMasterService(
	vendorRepo repository.VendorRepository,
	unitRepo repository.UnitRepository,
	customerRepo repository.CustomerRepository,
) MasterService {
	return &masterService{
		vendorRepo:   vendorRepo,
		unitRepo:     unitRepo,
		customerRepo: customerRepo,
	}
}

// --- Vendors ---

func (s *masterService) CreateVendor(ctx context.Context, req CreateVendorRequest) (*model.Vendor, error) {
	vendor := model.Vendor{
		FullName: req.FullName,
		Address:  req.Address,
		Mobile:   req.Mobile,
		Status:   true,
	}
	if req.Status != nil {
		vendor.Status = *req.Status
	}
	if err := s.vendorRepo.Create(ctx, &vendor); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	return &vendor, nil
}

func (s *masterService) UpdateVendor(ctx context.Context, id string, req CreateVendorRequest) (*model.Vendor, error) {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", err)
	}

	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	vendor.FullName = req.FullName
	vendor.Address = req.Address
	vendor.Mobile = req.Mobile
	if req.Status != nil {
		vendor.Status = *req.Status
	}

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}
	return vendor, nil
}

func (s *masterService) DeleteVendor(ctx context.Context, id string) error {
	vendorID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid vendor id: %w", err)
	}
	if _, err := s.vendorRepo.FindByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: vendor %s", ErrNotFound, id)
		}
		return fmt.Errorf("database error: %w", err)
	}
	return s.vendorRepo.Delete(ctx, vendorID)
}

func (s *masterService) ListVendors(ctx context.Context, search string, page, limit int) ([]model.Vendor, int64, error) {
	return s.vendorRepo.List(ctx, search, page, limit)
}

// --- Units ---

func (s *masterService) CreateUnit(ctx context.Context, req CreateUnitRequest) (*model.Unit, error) {
	unit := model.Unit{
		Title:     req.Title,
		ShortName: req.ShortName,
	}
	if err := s.unitRepo.Create(ctx, &unit); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: unit title or short name taken", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return &unit, nil
}

func (s *masterService) UpdateUnit(ctx context.Context, id string, req CreateUnitRequest) (*model.Unit, error) {
	unitID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid unit id: %w", err)
	}

	unit, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unit %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	unit.Title = req.Title
	unit.ShortName = req.ShortName

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: unit title or short name taken", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}
	return unit, nil
}

func (s *masterService) DeleteUnit(ctx context.Context, id string) error {
	unitID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid unit id: %w", err)
	}
	if _, err := s.unitRepo.FindByID(ctx, unitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unit %s", ErrNotFound, id)
		}
		return fmt.Errorf("database error: %w", err)
	}
	return s.unitRepo.Delete(ctx, unitID)
}

func (s *masterService) ListUnits(ctx context.Context, search string, page, limit int) ([]model.Unit, int64, error) {
	return s.unitRepo.List(ctx, search, page, limit)
}

// --- Customers ---

func (s *masterService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*model.Customer, error) {
	customer := model.Customer{
		Name:    req.Name,
		Mobile:  req.Mobile,
		Address: req.Address,
	}
	if err := s.customerRepo.Create(ctx, &customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &customer, nil
}

func (s *masterService) UpdateCustomer(ctx context.Context, id string, req CreateCustomerRequest) (*model.Customer, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", err)
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	customer.Name = req.Name
	customer.Mobile = req.Mobile
	customer.Address = req.Address

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *masterService) DeleteCustomer(ctx context.Context, id string) error {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid customer id: %w", err)
	}
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: customer %s", ErrNotFound, id)
		}
		return fmt.Errorf("database error: %w", err)
	}
	return s.customerRepo.Delete(ctx, customerID)
}

func (s *masterService) ListCustomers(ctx context.Context, search string, page, limit int) ([]model.Customer, int64, error) {
	return s.customerRepo.List(ctx, search, page, limit)
}

// isUniqueViolation matches duplicate-key errors across postgres and sqlite.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
