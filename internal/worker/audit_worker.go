package worker

import (
	"github.com/spec-kit/insurance-crm/internal/service"
)

// StartAuditWorker registers the change trail handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
