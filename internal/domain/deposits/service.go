package deposits

import (
	"context"
	"strings"
	"time"

	"dealer-app-go/internal/domain/apperr"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Service struct {
	repo  Repository
	feeds FeedInvalidator
	now   func() time.Time
}

func NewService(repo Repository, feeds FeedInvalidator) *Service {
	if feeds == nil {
		feeds = noopInvalidator{}
	}
	return &Service{repo: repo, feeds: feeds, now: time.Now}
}

func (s *Service) CreateDeposit(ctx context.Context, input CreateInput) (*DepositView, error) {
	if input.ClientID <= 0 {
		return nil, apperr.Validation("client_id is required")
	}
	if input.VehicleID <= 0 {
		return nil, apperr.Validation("vehicle_id is required")
	}

	status := input.Status
	if status == "" {
		status = StatusDraft
	}
	if status != StatusDraft && status != StatusActive {
		return nil, apperr.Validation("status must be BORRADOR or ACTIVO on creation")
	}

	commission := DefaultCommissionPct
	if input.CommissionPct != nil {
		commission = *input.CommissionPct
	}
	if err := validateMoney(input.SalePrice, input.PayoutAmount, input.PenaltyAmount); err != nil {
		return nil, err
	}
	if err := validateCommission(commission); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	start := dateOf(now)
	if input.StartDate != nil {
		start = dateOf(*input.StartDate)
	}

	var end *time.Time
	switch {
	case input.ManagementDays != nil:
		if *input.ManagementDays < 0 {
			return nil, apperr.Validation("management_days must be non-negative")
		}
		derived := start.AddDate(0, 0, *input.ManagementDays)
		end = &derived
	case input.EndDate != nil:
		explicit := dateOf(*input.EndDate)
		end = &explicit
	}
	if end != nil && end.Before(start) {
		return nil, apperr.Validation("end_date must not be before start_date")
	}

	deposit := Deposit{
		ClientID:       input.ClientID,
		VehicleID:      input.VehicleID,
		Status:         status,
		StartDate:      start,
		EndDate:        end,
		SalePrice:      input.SalePrice,
		CommissionPct:  commission,
		PayoutAmount:   input.PayoutAmount,
		ManagementDays: input.ManagementDays,
		PenaltyAmount:  input.PenaltyAmount,
		AccountNumber:  trimOptional(input.AccountNumber),
		Notes:          trimOptional(input.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Fast path for a readable error; the partial unique index decides races.
	if status == StatusActive {
		active, err := s.repo.HasActive(ctx, deposit.VehicleID, 0)
		if err != nil {
			return nil, err
		}
		if active {
			return nil, ErrActiveDepositExists
		}
	}

	if err := s.repo.Create(ctx, &deposit); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, deposit.ID)
}

func (s *Service) GetDeposit(ctx context.Context, id int64) (*DepositView, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListDeposits(ctx context.Context) ([]DepositView, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []DepositView{}, nil
	}
	return items, nil
}

func (s *Service) UpdateDeposit(ctx context.Context, input UpdateInput) (*DepositView, error) {
	if input.empty() {
		return nil, apperr.Validation("no fields to update")
	}

	current, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	deposit := current.Deposit

	becomesActive := false
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperr.Validation("invalid status")
		}
		becomesActive = *input.Status == StatusActive && deposit.Status != StatusActive
		deposit.Status = *input.Status
	}
	if input.EndDate != nil {
		end := dateOf(*input.EndDate)
		if end.Before(deposit.StartDate) {
			return nil, apperr.Validation("end_date must not be before start_date")
		}
		deposit.EndDate = &end
	}
	if err := validateMoney(input.SalePrice, input.PayoutAmount, input.PenaltyAmount); err != nil {
		return nil, err
	}
	if input.SalePrice != nil {
		deposit.SalePrice = input.SalePrice
	}
	if input.CommissionPct != nil {
		if err := validateCommission(*input.CommissionPct); err != nil {
			return nil, err
		}
		deposit.CommissionPct = *input.CommissionPct
	}
	if input.PayoutAmount != nil {
		deposit.PayoutAmount = input.PayoutAmount
	}
	if input.PenaltyAmount != nil {
		deposit.PenaltyAmount = input.PenaltyAmount
	}
	if input.Notes != nil {
		deposit.Notes = trimOptional(input.Notes)
	}
	if input.AccountNumber != nil {
		deposit.AccountNumber = trimOptional(input.AccountNumber)
	}

	if becomesActive {
		active, err := s.repo.HasActive(ctx, deposit.VehicleID, deposit.ID)
		if err != nil {
			return nil, err
		}
		if active {
			return nil, ErrActiveDepositExists
		}
	}

	deposit.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, &deposit); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, deposit.ID)
}

func (s *Service) DeleteDeposit(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrDepositNotFound
	}
	s.feeds.InvalidatePending(ctx)
	return nil
}

func validateMoney(values ...*decimal.Decimal) error {
	for _, value := range values {
		if value != nil && value.IsNegative() {
			return apperr.Validation("amounts must be non-negative")
		}
	}
	return nil
}

func validateCommission(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return apperr.Validation("commission_pct must be between 0 and 100")
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidatePending(context.Context) {}
