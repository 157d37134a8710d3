package usecase

import (
	"context"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

// LeadNotifier delivers the lead emails. Delivery is best effort: it never
// reports failure to the caller.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead entity.Lead)
}

type LeadEventPublisher interface {
	PublishLeadSubmitted(ctx context.Context, lead entity.Lead) error
}

type QuickCallPublisher interface {
	PublishQuickCall(ctx context.Context, req entity.QuickCallRequest) error
}
