package services

import (
	"context"
	"errors"
	"log"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type MaintenanceService interface {
	Create(ctx context.Context, merchantID int64, req *models.CreateMaintenanceRequest) (*models.MaintenanceRequest, error)
	List(ctx context.Context, merchantID int64) ([]*models.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, merchantID, id int64, status models.MaintenanceStatus) error
}

type maintenanceService struct {
	maintenanceRepo repositories.MaintenanceRepository
	shopRepo        repositories.ShopRepository
	notificationSvc NotificationService
}

func NewMaintenanceService(maintenanceRepo repositories.MaintenanceRepository, shopRepo repositories.ShopRepository, notificationSvc NotificationService) MaintenanceService {
	return &maintenanceService{
		maintenanceRepo: maintenanceRepo,
		shopRepo:        shopRepo,
		notificationSvc: notificationSvc,
	}
}

// Create files a ticket against the merchant's shop; a merchant without a
// shop has nothing to file against.
func (s *maintenanceService) Create(ctx context.Context, merchantID int64, req *models.CreateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	if err := common.ValidateRequiredString(req.IssueType, "issueType"); err != nil {
		return nil, common.NewFieldValidationError("issueType", err.Error())
	}
	if err := common.ValidateRequiredString(req.Description, "description"); err != nil {
		return nil, common.NewFieldValidationError("description", err.Error())
	}
	priority := req.Priority
	if priority == "" {
		priority = models.MaintenancePriorityMedium
	}
	if !models.ValidMaintenancePriority(priority) {
		return nil, common.NewFieldValidationError("priority", "priority must be low, medium or high")
	}

	shop, err := s.shopRepo.GetByMerchant(ctx, merchantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewValidationError("merchant has no shop to file a maintenance request for")
	}
	if err != nil {
		return nil, common.NewUnexpectedError("failed to load shop", err)
	}

	request := &models.MaintenanceRequest{
		MerchantID:  merchantID,
		ShopID:      shop.ID,
		IssueType:   req.IssueType,
		Description: req.Description,
		Priority:    priority,
		Status:      models.MaintenanceStatusPending,
	}
	if err := s.maintenanceRepo.Create(ctx, request); err != nil {
		return nil, common.NewUnexpectedError("failed to create maintenance request", err)
	}

	if err := s.notificationSvc.Notify(ctx, merchantID, models.NotificationTypeSystem,
		"Maintenance Request Submitted",
		request.IssueType,
	); err != nil {
		log.Printf("WARN: failed to notify about maintenance request %d: %v", request.ID, err)
	}
	return request, nil
}

func (s *maintenanceService) List(ctx context.Context, merchantID int64) ([]*models.MaintenanceRequest, error) {
	requests, err := s.maintenanceRepo.List(ctx, merchantID)
	if err != nil {
		return nil, common.NewUnexpectedError("failed to list maintenance requests", err)
	}
	if requests == nil {
		requests = []*models.MaintenanceRequest{}
	}
	return requests, nil
}

func (s *maintenanceService) UpdateStatus(ctx context.Context, merchantID, id int64, status models.MaintenanceStatus) error {
	if !models.ValidMaintenanceStatus(status) {
		return common.NewFieldValidationError("status", "status must be pending, in-progress or resolved")
	}

	request, err := s.maintenanceRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NewNotFoundError("Maintenance request")
	}
	if err != nil {
		return common.NewUnexpectedError("failed to load maintenance request", err)
	}
	if request.MerchantID != merchantID {
		return common.NewAuthorizationError("maintenance request belongs to another merchant")
	}

	found, err := s.maintenanceRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return common.NewUnexpectedError("failed to update maintenance request", err)
	}
	if !found {
		return common.NewNotFoundError("Maintenance request")
	}
	return nil
}
