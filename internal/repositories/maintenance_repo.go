package repositories

import (
	"context"

	"kubramarket/internal/models"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, request *models.MaintenanceRequest) error
	GetByID(ctx context.Context, id int64) (*models.MaintenanceRequest, error)
	List(ctx context.Context, merchantID int64) ([]*models.MaintenanceRequest, error)
	UpdateStatus(ctx context.Context, id int64, status models.MaintenanceStatus) (bool, error)
}

type maintenanceRepo struct {
	db DB
}

func NewMaintenanceRepo(db DB) MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

func (r *maintenanceRepo) Create(ctx context.Context, request *models.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (merchant_id, shop_id, issue_type, description, priority, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, request.MerchantID, request.ShopID, request.IssueType, request.Description, request.Priority, request.Status).
		Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

// GetByID fetches by primary key regardless of owner; callers compare the
// returned merchant_id against the session merchant before exposing the row.
func (r *maintenanceRepo) GetByID(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	request := &models.MaintenanceRequest{}
	query := `
		SELECT id, merchant_id, shop_id, issue_type, description, priority, status, created_at, updated_at
		FROM maintenance_requests
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&request.ID, &request.MerchantID, &request.ShopID, &request.IssueType, &request.Description, &request.Priority, &request.Status, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (r *maintenanceRepo) List(ctx context.Context, merchantID int64) ([]*models.MaintenanceRequest, error) {
	query := `
		SELECT id, merchant_id, shop_id, issue_type, description, priority, status, created_at, updated_at
		FROM maintenance_requests
		WHERE merchant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.MaintenanceRequest
	for rows.Next() {
		request := &models.MaintenanceRequest{}
		if err := rows.Scan(&request.ID, &request.MerchantID, &request.ShopID, &request.IssueType, &request.Description, &request.Priority, &request.Status, &request.CreatedAt, &request.UpdatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *maintenanceRepo) UpdateStatus(ctx context.Context, id int64, status models.MaintenanceStatus) (bool, error) {
	query := `UPDATE maintenance_requests SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
