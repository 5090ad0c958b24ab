package deposits

import "dealer-app-go/internal/domain/apperr"

var (
	ErrDepositNotFound     = apperr.New(apperr.ErrNotFound, "deposit not found")
	ErrReferenceNotFound   = apperr.New(apperr.ErrNotFound, "client or vehicle not found")
	ErrActiveDepositExists = apperr.New(apperr.ErrConflict, "vehicle already has an active deposit")
)
