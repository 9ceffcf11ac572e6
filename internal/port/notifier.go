package port

import (
	"context"

	"github.com/frogman715/hims-app-sub002/internal/domain"
)

// Notifier delivers distribution notices to recipients. Delivery is
// best-effort; failures must never roll back a committed distribution.
type Notifier interface {
	SendDistributionNotice(ctx context.Context, toEmail, toName string, doc *domain.Document) error
}
