package common

import (
	authdomain "dealer-app-go/internal/domain/auth"
	"dealer-app-go/pkg/logger"
)

type Handlers struct {
	Auth *authdomain.Service
	log  logger.Logger
}

func New(auth *authdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Auth: auth,
		log:  log,
	}
}
