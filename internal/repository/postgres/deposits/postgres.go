package deposits

import (
	"context"
	"errors"

	"dealer-app-go/internal/db"
	"dealer-app-go/internal/domain/apperr"
	depositsdomain "dealer-app-go/internal/domain/deposits"
	"gorm.io/gorm"
)

const viewSelect = `deposits.*,
	COALESCE(clients.name, '') AS client_name,
	COALESCE(vehicles.plate, '') AS vehicle_plate,
	COALESCE(vehicles.brand, '') AS vehicle_brand,
	COALESCE(vehicles.model, '') AS vehicle_model`

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) HasActive(ctx context.Context, vehicleID int64, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&depositsdomain.Deposit{}).
		Where("vehicle_id = ? AND status = ? AND id <> ?", vehicleID, depositsdomain.StatusActive, excludeID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Storage("deposits.has_active", err)
	}
	return count > 0, nil
}

func (r *PostgresRepository) Create(ctx context.Context, deposit *depositsdomain.Deposit) error {
	if err := r.db.WithContext(ctx).Create(deposit).Error; err != nil {
		return classify("deposits.create", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*depositsdomain.DepositView, error) {
	var view depositsdomain.DepositView
	err := r.viewQuery(ctx).
		Where("deposits.id = ?", id).
		Take(&view).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, depositsdomain.ErrDepositNotFound
		}
		return nil, apperr.Storage("deposits.get", err)
	}
	return &view, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]depositsdomain.DepositView, error) {
	var views []depositsdomain.DepositView
	err := r.viewQuery(ctx).
		Order("deposits.created_at desc, deposits.id desc").
		Find(&views).Error
	if err != nil {
		return nil, apperr.Storage("deposits.list", err)
	}
	return views, nil
}

func (r *PostgresRepository) Update(ctx context.Context, deposit *depositsdomain.Deposit) error {
	result := r.db.WithContext(ctx).
		Model(&depositsdomain.Deposit{}).
		Where("id = ?", deposit.ID).
		Updates(map[string]interface{}{
			"status":         deposit.Status,
			"end_date":       deposit.EndDate,
			"sale_price":     deposit.SalePrice,
			"commission_pct": deposit.CommissionPct,
			"payout_amount":  deposit.PayoutAmount,
			"penalty_amount": deposit.PenaltyAmount,
			"account_number": deposit.AccountNumber,
			"notes":          deposit.Notes,
			"updated_at":     deposit.UpdatedAt,
		})
	if result.Error != nil {
		return classify("deposits.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return depositsdomain.ErrDepositNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&depositsdomain.Deposit{}, "id = ?", id)
	if result.Error != nil {
		return false, apperr.Storage("deposits.delete", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&depositsdomain.Deposit{}).
		Select(viewSelect).
		Joins("left join clients on clients.id = deposits.client_id").
		Joins("left join vehicles on vehicles.id = deposits.vehicle_id")
}

// classify maps constraint failures to domain errors. The partial unique
// index on active deposits is the only unique constraint on the table.
func classify(op string, err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return depositsdomain.ErrActiveDepositExists
	case db.IsForeignKeyViolation(err):
		return depositsdomain.ErrReferenceNotFound
	default:
		return apperr.Storage(op, err)
	}
}
