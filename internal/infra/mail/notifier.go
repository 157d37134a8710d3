package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/experttechtutors/tutor-leads/internal/entity"
	"github.com/experttechtutors/tutor-leads/internal/infra/metrics"
)

const (
	kindConfirmation = "confirmation"
	kindAdminAlert   = "admin_alert"
	kindQuickCall    = "quick_call"
)

// Notifier sends the lead emails. Lead notifications are best effort: a
// failed send is logged and counted, never returned.
type Notifier struct {
	mailer     Mailer
	adminEmail string
	logger     *zap.Logger
}

// NewNotifier falls back to the sending account when adminEmail is empty.
func NewNotifier(mailer Mailer, adminEmail, fromAddress string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if adminEmail == "" {
		adminEmail = fromAddress
	}
	return &Notifier{mailer: mailer, adminEmail: adminEmail, logger: logger}
}

func (n *Notifier) AdminEmail() string {
	return n.adminEmail
}

// NotifyLead sends the confirmation and the admin alert concurrently and
// returns once both attempts have finished.
func (n *Notifier) NotifyLead(ctx context.Context, lead entity.Lead) {
	var g errgroup.Group

	g.Go(func() error {
		n.deliver(ctx, kindConfirmation, lead.ID, func() (Email, error) {
			return RenderConfirmation(lead)
		})
		return nil
	})

	g.Go(func() error {
		n.deliver(ctx, kindAdminAlert, lead.ID, func() (Email, error) {
			email, err := RenderAdminAlert(lead)
			email.To = n.adminEmail
			return email, err
		})
		return nil
	})

	_ = g.Wait()
}

// NotifyQuickCall alerts the team about a call-back request. Unlike the
// lead emails the error is returned so the queue can dead-letter it.
func (n *Notifier) NotifyQuickCall(ctx context.Context, req entity.QuickCallRequest) error {
	email, err := RenderQuickCall(req)
	if err != nil {
		metrics.RecordNotification(kindQuickCall, err)
		return err
	}
	email.To = n.adminEmail

	err = n.mailer.Send(ctx, email)
	metrics.RecordNotification(kindQuickCall, err)
	if err != nil {
		return fmt.Errorf("quick call alert: %w", err)
	}
	n.logger.Info("quick call alert sent", zap.String("phone", req.Phone))
	return nil
}

func (n *Notifier) deliver(ctx context.Context, kind, leadID string, build func() (Email, error)) {
	email, err := build()
	if err != nil {
		metrics.RecordNotification(kind, err)
		n.logger.Error("email not rendered",
			zap.String("kind", kind),
			zap.String("lead_id", leadID),
			zap.Error(err),
		)
		return
	}

	err = n.mailer.Send(ctx, email)
	metrics.RecordNotification(kind, err)
	if err != nil {
		n.logger.Warn("email not delivered",
			zap.String("kind", kind),
			zap.String("lead_id", leadID),
			zap.String("to", email.To),
			zap.Error(err),
		)
		return
	}

	n.logger.Info("email sent",
		zap.String("kind", kind),
		zap.String("lead_id", leadID),
		zap.String("to", email.To),
	)
}
