package annotations

import (
	annotationsdomain "dealer-app-go/internal/domain/annotations"
	"dealer-app-go/pkg/logger"
)

type Handlers struct {
	Annotations *annotationsdomain.Service
	Feed        *annotationsdomain.Aggregator
	log         logger.Logger
}

func New(annotations *annotationsdomain.Service, feed *annotationsdomain.Aggregator, log logger.Logger) *Handlers {
	return &Handlers{
		Annotations: annotations,
		Feed:        feed,
		log:         log,
	}
}
