package deposits

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft    Status = "BORRADOR"
	StatusActive   Status = "ACTIVO"
	StatusFinished Status = "FINALIZADO"
	StatusSold     Status = "VENDIDO"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusFinished, StatusSold:
		return true
	}
	return false
}

var DefaultCommissionPct = decimal.NewFromFloat(5.0)

type Deposit struct {
	ID             int64            `gorm:"primaryKey;autoIncrement"`
	ClientID       int64            `gorm:"not null;index"`
	VehicleID      int64            `gorm:"not null;index"`
	Status         Status           `gorm:"type:varchar(16);not null;default:BORRADOR"`
	StartDate      time.Time        `gorm:"type:date;not null"`
	EndDate        *time.Time       `gorm:"type:date"`
	SalePrice      *decimal.Decimal `gorm:"type:numeric(12,2)"`
	CommissionPct  decimal.Decimal  `gorm:"type:numeric(5,2);not null"`
	PayoutAmount   *decimal.Decimal `gorm:"type:numeric(12,2)"`
	ManagementDays *int
	PenaltyAmount  *decimal.Decimal `gorm:"type:numeric(12,2)"`
	AccountNumber  *string
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DepositView is a deposit with the client and vehicle fields shown next to it.
type DepositView struct {
	Deposit
	ClientName   string
	VehiclePlate string
	VehicleBrand string
	VehicleModel string
}

type Settlement struct {
	CommissionAmount decimal.Decimal
	OwnerPayout      decimal.Decimal
	Penalty          decimal.Decimal
}

// Settlement derives the money split of a deposit. Without a sale price the
// commission and payout are zero unless a payout amount was agreed explicitly.
func (d Deposit) Settlement() Settlement {
	var result Settlement
	if d.SalePrice != nil {
		result.CommissionAmount = d.SalePrice.Mul(d.CommissionPct).Div(decimal.NewFromInt(100)).Round(2)
		result.OwnerPayout = d.SalePrice.Sub(result.CommissionAmount)
	}
	if d.PayoutAmount != nil {
		result.OwnerPayout = *d.PayoutAmount
	}
	if d.PenaltyAmount != nil {
		result.Penalty = *d.PenaltyAmount
	}
	return result
}

type CreateInput struct {
	ClientID       int64
	VehicleID      int64
	Status         Status
	StartDate      *time.Time
	EndDate        *time.Time
	SalePrice      *decimal.Decimal
	CommissionPct  *decimal.Decimal
	Notes          *string
	PayoutAmount   *decimal.Decimal
	ManagementDays *int
	PenaltyAmount  *decimal.Decimal
	AccountNumber  *string
}

type UpdateInput struct {
	ID            int64
	Status        *Status
	EndDate       *time.Time
	SalePrice     *decimal.Decimal
	CommissionPct *decimal.Decimal
	Notes         *string
	PayoutAmount  *decimal.Decimal
	PenaltyAmount *decimal.Decimal
	AccountNumber *string
}

func (in UpdateInput) empty() bool {
	return in.Status == nil && in.EndDate == nil && in.SalePrice == nil && in.CommissionPct == nil &&
		in.Notes == nil && in.PayoutAmount == nil && in.PenaltyAmount == nil && in.AccountNumber == nil
}
