package deposits

import (
	depositsdomain "dealer-app-go/internal/domain/deposits"
	"dealer-app-go/pkg/logger"
)

type Handlers struct {
	Deposits *depositsdomain.Service
	log      logger.Logger
}

func New(deposits *depositsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Deposits: deposits,
		log:      log,
	}
}
