package handler

import (
	annotationsdomain "dealer-app-go/internal/domain/annotations"
	authdomain "dealer-app-go/internal/domain/auth"
	depositsdomain "dealer-app-go/internal/domain/deposits"
	annotationshandler "dealer-app-go/internal/transport/httpserver/handler/annotations"
	commonhandler "dealer-app-go/internal/transport/httpserver/handler/common"
	depositshandler "dealer-app-go/internal/transport/httpserver/handler/deposits"
	"dealer-app-go/pkg/logger"
)

type Handlers struct {
	Common      *commonhandler.Handlers
	Deposits    *depositshandler.Handlers
	Annotations *annotationshandler.Handlers
}

func New(
	auth *authdomain.Service,
	deposits *depositsdomain.Service,
	annotations *annotationsdomain.Service,
	feed *annotationsdomain.Aggregator,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Common:      commonhandler.New(auth, log),
		Deposits:    depositshandler.New(deposits, log),
		Annotations: annotationshandler.New(annotations, feed, log),
	}
}
