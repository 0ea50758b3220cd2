package worker

import (
	"github.com/spades-ems/portal/internal/service"
)

// StartNotifierWorker registers candidate notification handlers.
func StartNotifierWorker(notifierService *service.NotifierService) {
	if notifierService == nil {
		return
	}
	notifierService.RegisterHandlers()
}
