package deposits

import "context"

type Repository interface {
	HasActive(ctx context.Context, vehicleID int64, excludeID int64) (bool, error)
	Create(ctx context.Context, deposit *Deposit) error
	GetByID(ctx context.Context, id int64) (*DepositView, error)
	List(ctx context.Context) ([]DepositView, error)
	Update(ctx context.Context, deposit *Deposit) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// FeedInvalidator drops cached reminder feeds that may reference a deposit.
type FeedInvalidator interface {
	InvalidatePending(ctx context.Context)
}
