package noop

import (
	"context"
	"log"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a no-op Notifier that logs distribution notices to
// stdout. Used when no email provider is configured.
func NewNoopNotifier() port.Notifier {
	return &noopNotifier{}
}

func (s *noopNotifier) SendDistributionNotice(_ context.Context, toEmail, toName string, doc *domain.Document) error {
	log.Printf("[NOOP NOTICE] Distribution notice for %s (%s): %s - %s", toName, toEmail, doc.Code, doc.Title)
	return nil
}
