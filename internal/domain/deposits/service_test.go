package deposits

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"dealer-app-go/internal/domain/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepositsRepo struct {
	deposits map[int64]*Deposit
	nextID   int64
	// staleCheck makes HasActive miss rows, as when a concurrent request wins.
	staleCheck bool
}

func newFakeDepositsRepo() *fakeDepositsRepo {
	return &fakeDepositsRepo{deposits: make(map[int64]*Deposit)}
}

func (r *fakeDepositsRepo) HasActive(ctx context.Context, vehicleID int64, excludeID int64) (bool, error) {
	if r.staleCheck {
		return false, nil
	}
	return r.activeFor(vehicleID, excludeID), nil
}

func (r *fakeDepositsRepo) activeFor(vehicleID, excludeID int64) bool {
	for _, deposit := range r.deposits {
		if deposit.VehicleID == vehicleID && deposit.Status == StatusActive && deposit.ID != excludeID {
			return true
		}
	}
	return false
}

func (r *fakeDepositsRepo) Create(ctx context.Context, deposit *Deposit) error {
	if deposit.Status == StatusActive && r.activeFor(deposit.VehicleID, 0) {
		return ErrActiveDepositExists
	}
	r.nextID++
	deposit.ID = r.nextID
	stored := *deposit
	r.deposits[deposit.ID] = &stored
	return nil
}

func (r *fakeDepositsRepo) GetByID(ctx context.Context, id int64) (*DepositView, error) {
	deposit, ok := r.deposits[id]
	if !ok {
		return nil, ErrDepositNotFound
	}
	return &DepositView{Deposit: *deposit, ClientName: "Lucía Romero", VehiclePlate: "1234ABC"}, nil
}

func (r *fakeDepositsRepo) List(ctx context.Context) ([]DepositView, error) {
	items := make([]DepositView, 0, len(r.deposits))
	for _, deposit := range r.deposits {
		items = append(items, DepositView{Deposit: *deposit})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (r *fakeDepositsRepo) Update(ctx context.Context, deposit *Deposit) error {
	if _, ok := r.deposits[deposit.ID]; !ok {
		return ErrDepositNotFound
	}
	if deposit.Status == StatusActive && r.activeFor(deposit.VehicleID, deposit.ID) {
		return ErrActiveDepositExists
	}
	stored := *deposit
	r.deposits[deposit.ID] = &stored
	return nil
}

func (r *fakeDepositsRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.deposits[id]; !ok {
		return false, nil
	}
	delete(r.deposits, id)
	return true, nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) InvalidatePending(context.Context) {
	c.calls++
}

func newTestService(repo Repository) (*Service, *countingInvalidator) {
	feeds := &countingInvalidator{}
	service := NewService(repo, feeds)
	service.now = func() time.Time { return time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC) }
	return service, feeds
}

func date(y int, m time.Month, d int) *time.Time {
	value := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &value
}

func intPtr(v int) *int { return &v }

func dec(v string) *decimal.Decimal {
	value := decimal.RequireFromString(v)
	return &value
}

func TestCreateDepositDerivesEndDate(t *testing.T) {
	service, _ := newTestService(newFakeDepositsRepo())

	deposit, err := service.CreateDeposit(context.Background(), CreateInput{
		ClientID:       1,
		VehicleID:      7,
		StartDate:      date(2024, time.January, 1),
		ManagementDays: intPtr(30),
	})
	require.NoError(t, err)

	require.NotNil(t, deposit.EndDate)
	assert.Equal(t, *date(2024, time.January, 31), *deposit.EndDate)
	assert.Equal(t, StatusDraft, deposit.Status)
	assert.True(t, deposit.CommissionPct.Equal(decimal.NewFromInt(5)))
}

func TestCreateDepositDefaults(t *testing.T) {
	service, _ := newTestService(newFakeDepositsRepo())

	deposit, err := service.CreateDeposit(context.Background(), CreateInput{ClientID: 1, VehicleID: 7})
	require.NoError(t, err)

	assert.Equal(t, *date(2024, time.March, 10), deposit.StartDate)
	assert.Nil(t, deposit.EndDate)
}

func TestCreateDepositExplicitEndDate(t *testing.T) {
	service, _ := newTestService(newFakeDepositsRepo())

	deposit, err := service.CreateDeposit(context.Background(), CreateInput{
		ClientID:  1,
		VehicleID: 7,
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.June, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, *date(2024, time.June, 30), *deposit.EndDate)
}

func TestCreateDepositActiveUniquenessScenario(t *testing.T) {
	service, _ := newTestService(newFakeDepositsRepo())
	ctx := context.Background()

	_, err := service.CreateDeposit(ctx, CreateInput{ClientID: 1, VehicleID: 42, Status: StatusActive})
	require.NoError(t, err)

	_, err = service.CreateDeposit(ctx, CreateInput{ClientID: 2, VehicleID: 42, Status: StatusActive})
	assert.ErrorIs(t, err, ErrActiveDepositExists)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	draft, err := service.CreateDeposit(ctx, CreateInput{ClientID: 2, VehicleID: 42, Status: StatusDraft})
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, draft.Status)
}

func TestCreateDepositIndexBackstop(t *testing.T) {
	repo := newFakeDepositsRepo()
	service, _ := newTestService(repo)
	ctx := context.Background()

	_, err := service.CreateDeposit(ctx, CreateInput{ClientID: 1, VehicleID: 42, Status: StatusActive})
	require.NoError(t, err)

	repo.staleCheck = true
	_, err = service.CreateDeposit(ctx, CreateInput{ClientID: 2, VehicleID: 42, Status: StatusActive})
	assert.ErrorIs(t, err, ErrActiveDepositExists)
}

func TestCreateDepositValidation(t *testing.T) {
	service, _ := newTestService(newFakeDepositsRepo())
	ctx := context.Background()

	cases := map[string]CreateInput{
		"missing client":      {VehicleID: 1},
		"missing vehicle":     {ClientID: 1},
		"finished on create":  {ClientID: 1, VehicleID: 1, Status: StatusFinished},
		"negative days":       {ClientID: 1, VehicleID: 1, ManagementDays: intPtr(-1)},
		"negative price":      {ClientID: 1, VehicleID: 1, SalePrice: dec("-1")},
		"commission over 100": {ClientID: 1, VehicleID: 1, CommissionPct: dec("120")},
		"end before start":    {ClientID: 1, VehicleID: 1, StartDate: date(2024, 2, 1), EndDate: date(2024, 1, 1)},
	}

	for name, input := range cases {
		_, err := service.CreateDeposit(ctx, input)
		assert.ErrorIs(t, err, apperr.ErrValidation, name)
	}
}

func TestUpdateDepositPartial(t *testing.T) {
	service, _ := newTestService(newFakeDepositsRepo())
	ctx := context.Background()

	created, err := service.CreateDeposit(ctx, CreateInput{ClientID: 1, VehicleID: 7, SalePrice: dec("10000"), Notes: strPtr("first")})
	require.NoError(t, err)

	sold := StatusSold
	updated, err := service.UpdateDeposit(ctx, UpdateInput{ID: created.ID, Status: &sold, CommissionPct: dec("7.5")})
	require.NoError(t, err)

	assert.Equal(t, StatusSold, updated.Status)
	assert.True(t, updated.CommissionPct.Equal(decimal.RequireFromString("7.5")))
	assert.True(t, updated.SalePrice.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, "first", *updated.Notes)
}

func TestUpdateDepositIntoActiveRechecksInvariant(t *testing.T) {
	service, _ := newTestService(newFakeDepositsRepo())
	ctx := context.Background()

	_, err := service.CreateDeposit(ctx, CreateInput{ClientID: 1, VehicleID: 42, Status: StatusActive})
	require.NoError(t, err)
	draft, err := service.CreateDeposit(ctx, CreateInput{ClientID: 2, VehicleID: 42})
	require.NoError(t, err)

	active := StatusActive
	_, err = service.UpdateDeposit(ctx, UpdateInput{ID: draft.ID, Status: &active})
	assert.ErrorIs(t, err, ErrActiveDepositExists)
}

func TestUpdateDepositErrors(t *testing.T) {
	service, _ := newTestService(newFakeDepositsRepo())
	ctx := context.Background()

	_, err := service.UpdateDeposit(ctx, UpdateInput{ID: 1})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	notes := "x"
	_, err = service.UpdateDeposit(ctx, UpdateInput{ID: 99, Notes: &notes})
	assert.ErrorIs(t, err, ErrDepositNotFound)

	created, err := service.CreateDeposit(ctx, CreateInput{ClientID: 1, VehicleID: 7})
	require.NoError(t, err)
	bogus := Status("PAUSADO")
	_, err = service.UpdateDeposit(ctx, UpdateInput{ID: created.ID, Status: &bogus})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeleteDepositInvalidatesFeed(t *testing.T) {
	service, feeds := newTestService(newFakeDepositsRepo())
	ctx := context.Background()

	created, err := service.CreateDeposit(ctx, CreateInput{ClientID: 1, VehicleID: 7})
	require.NoError(t, err)

	require.NoError(t, service.DeleteDeposit(ctx, created.ID))
	assert.Equal(t, 1, feeds.calls)

	err = service.DeleteDeposit(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrDepositNotFound))
	assert.Equal(t, 1, feeds.calls)
}

func TestListDepositsNeverNil(t *testing.T) {
	service, _ := newTestService(newFakeDepositsRepo())

	items, err := service.ListDeposits(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSettlement(t *testing.T) {
	deposit := Deposit{SalePrice: dec("18500"), CommissionPct: decimal.RequireFromString("5")}
	settlement := deposit.Settlement()
	assert.Equal(t, "925", settlement.CommissionAmount.String())
	assert.Equal(t, "17575", settlement.OwnerPayout.String())
	assert.True(t, settlement.Penalty.IsZero())

	deposit.PayoutAmount = dec("17000")
	deposit.PenaltyAmount = dec("300")
	settlement = deposit.Settlement()
	assert.Equal(t, "17000", settlement.OwnerPayout.String())
	assert.Equal(t, "300", settlement.Penalty.String())

	empty := Deposit{CommissionPct: DefaultCommissionPct}.Settlement()
	assert.True(t, empty.CommissionAmount.IsZero())
	assert.True(t, empty.OwnerPayout.IsZero())
}

func strPtr(v string) *string { return &v }
