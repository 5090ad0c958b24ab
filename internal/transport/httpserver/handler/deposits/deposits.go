package deposits

import (
	"net/http"
	"time"

	depositsdomain "dealer-app-go/internal/domain/deposits"
	commonhandler "dealer-app-go/internal/transport/httpserver/handler/common"
	"github.com/shopspring/decimal"
)

type createDepositRequest struct {
	ClientID       int64            `json:"client_id"`
	VehicleID      int64            `json:"vehicle_id"`
	Status         string           `json:"status"`
	StartDate      *string          `json:"start_date"`
	EndDate        *string          `json:"end_date"`
	SalePrice      *decimal.Decimal `json:"sale_price"`
	CommissionPct  *decimal.Decimal `json:"commission_pct"`
	Notes          *string          `json:"notes"`
	PayoutAmount   *decimal.Decimal `json:"payout_amount"`
	ManagementDays *int             `json:"management_days"`
	PenaltyAmount  *decimal.Decimal `json:"penalty_amount"`
	AccountNumber  *string          `json:"account_number"`
}

type updateDepositRequest struct {
	Status        *string          `json:"status"`
	EndDate       *string          `json:"end_date"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	CommissionPct *decimal.Decimal `json:"commission_pct"`
	Notes         *string          `json:"notes"`
	PayoutAmount  *decimal.Decimal `json:"payout_amount"`
	PenaltyAmount *decimal.Decimal `json:"penalty_amount"`
	AccountNumber *string          `json:"account_number"`
}

type settlementResponse struct {
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	OwnerPayout      decimal.Decimal `json:"owner_payout"`
	Penalty          decimal.Decimal `json:"penalty"`
}

type depositResponse struct {
	ID             int64              `json:"id"`
	ClientID       int64              `json:"client_id"`
	VehicleID      int64              `json:"vehicle_id"`
	Status         string             `json:"status"`
	StartDate      string             `json:"start_date"`
	EndDate        *string            `json:"end_date"`
	SalePrice      *decimal.Decimal   `json:"sale_price"`
	CommissionPct  decimal.Decimal    `json:"commission_pct"`
	PayoutAmount   *decimal.Decimal   `json:"payout_amount"`
	ManagementDays *int               `json:"management_days"`
	PenaltyAmount  *decimal.Decimal   `json:"penalty_amount"`
	AccountNumber  *string            `json:"account_number"`
	Notes          *string            `json:"notes"`
	ClientName     string             `json:"client_name"`
	VehiclePlate   string             `json:"vehicle_plate"`
	VehicleBrand   string             `json:"vehicle_brand"`
	VehicleModel   string             `json:"vehicle_model"`
	Settlement     settlementResponse `json:"settlement"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type depositListResponse struct {
	Items []depositResponse `json:"items"`
	Total int               `json:"total"`
}

func (h *Handlers) ListDeposits(w http.ResponseWriter, r *http.Request) {
	items, err := h.Deposits.ListDeposits(r.Context())
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "deposits.list: list deposits failed", err)
		return
	}

	response := make([]depositResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toDepositResponse(item))
	}
	writeJSON(w, http.StatusOK, depositListResponse{Items: response, Total: len(response)})
}

func (h *Handlers) GetDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := commonhandler.ParseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	deposit, err := h.Deposits.GetDeposit(r.Context(), id)
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "deposits.get: get deposit failed", err, "deposit_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toDepositResponse(*deposit))
}

func (h *Handlers) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req createDepositRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	startDate, err := parseDateParam(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	endDate, err := parseDateParam(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	deposit, err := h.Deposits.CreateDeposit(r.Context(), depositsdomain.CreateInput{
		ClientID:       req.ClientID,
		VehicleID:      req.VehicleID,
		Status:         depositsdomain.Status(req.Status),
		StartDate:      startDate,
		EndDate:        endDate,
		SalePrice:      req.SalePrice,
		CommissionPct:  req.CommissionPct,
		Notes:          req.Notes,
		PayoutAmount:   req.PayoutAmount,
		ManagementDays: req.ManagementDays,
		PenaltyAmount:  req.PenaltyAmount,
		AccountNumber:  req.AccountNumber,
	})
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "deposits.create: create deposit failed", err,
			"client_id", req.ClientID, "vehicle_id", req.VehicleID, "status", req.Status)
		return
	}

	h.log.Info("deposit created", "deposit_id", deposit.ID, "vehicle_id", deposit.VehicleID, "status", deposit.Status)
	writeJSON(w, http.StatusCreated, toDepositResponse(*deposit))
}

func (h *Handlers) UpdateDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := commonhandler.ParseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req updateDepositRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	endDate, err := parseDateParam(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	input := depositsdomain.UpdateInput{
		ID:            id,
		EndDate:       endDate,
		SalePrice:     req.SalePrice,
		CommissionPct: req.CommissionPct,
		Notes:         req.Notes,
		PayoutAmount:  req.PayoutAmount,
		PenaltyAmount: req.PenaltyAmount,
		AccountNumber: req.AccountNumber,
	}
	if req.Status != nil {
		status := depositsdomain.Status(*req.Status)
		input.Status = &status
	}

	deposit, err := h.Deposits.UpdateDeposit(r.Context(), input)
	if err != nil {
		commonhandler.WriteDomainError(w, h.log, "deposits.update: update deposit failed", err, "deposit_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toDepositResponse(*deposit))
}

func (h *Handlers) DeleteDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := commonhandler.ParseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.Deposits.DeleteDeposit(r.Context(), id); err != nil {
		commonhandler.WriteDomainError(w, h.log, "deposits.delete: delete deposit failed", err, "deposit_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDepositResponse(view depositsdomain.DepositView) depositResponse {
	settlement := view.Settlement()
	return depositResponse{
		ID:             view.ID,
		ClientID:       view.ClientID,
		VehicleID:      view.VehicleID,
		Status:         string(view.Status),
		StartDate:      *formatDate(&view.StartDate),
		EndDate:        formatDate(view.EndDate),
		SalePrice:      view.SalePrice,
		CommissionPct:  view.CommissionPct,
		PayoutAmount:   view.PayoutAmount,
		ManagementDays: view.ManagementDays,
		PenaltyAmount:  view.PenaltyAmount,
		AccountNumber:  view.AccountNumber,
		Notes:          view.Notes,
		ClientName:     view.ClientName,
		VehiclePlate:   view.VehiclePlate,
		VehicleBrand:   view.VehicleBrand,
		VehicleModel:   view.VehicleModel,
		Settlement: settlementResponse{
			CommissionAmount: settlement.CommissionAmount,
			OwnerPayout:      settlement.OwnerPayout,
			Penalty:          settlement.Penalty,
		},
		CreatedAt: view.CreatedAt,
		UpdatedAt: view.UpdatedAt,
	}
}
