package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

type SubmitLeadUseCase struct {
	Repo       entity.LeadRepositoryInterface
	Notifier   LeadNotifier
	Events     LeadEventPublisher
	Normalizer *Normalizer
	Logger     *zap.Logger
}

// NewSubmitLeadUseCase wires the submission pipeline. events may be nil
// when no broker is configured.
func NewSubmitLeadUseCase(
	repo entity.LeadRepositoryInterface,
	notifier LeadNotifier,
	events LeadEventPublisher,
	logger *zap.Logger,
) *SubmitLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitLeadUseCase{
		Repo:       repo,
		Notifier:   notifier,
		Events:     events,
		Normalizer: NewNormalizer(),
		Logger:     logger,
	}
}

// Execute validates, normalizes, stores and announces a contact form
// submission. Validation failures come back as a *DomainError carrying the
// per-field violations; nothing is stored or sent in that case. Once the
// form is valid, cancellation of ctx no longer stops the pipeline.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, raw RawLead) (*SubmitLeadOutput, error) {
	if violations := ValidateLead(raw); len(violations) > 0 {
		return nil, newValidationFailed(violations)
	}

	// A client hanging up after this point must not cost us the lead.
	ctx = context.WithoutCancel(ctx)

	lead := uc.Normalizer.Normalize(raw)

	id, err := uc.Repo.Save(ctx, &lead)
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistence,
			Message: "failed to save lead",
			Err:     err,
		}
	}
	lead.ID = id

	uc.Logger.Info("new contact form submission",
		zap.String("lead_id", id),
		zap.String("area", lead.Area),
		zap.Strings("subjects", lead.Subjects),
		zap.String("learning_goal", lead.LearningGoal),
	)

	if uc.Notifier != nil {
		uc.Notifier.NotifyLead(ctx, lead)
	}

	if uc.Events != nil {
		if err := uc.Events.PublishLeadSubmitted(ctx, lead); err != nil {
			uc.Logger.Warn("lead event not published", zap.String("lead_id", id), zap.Error(err))
		}
	}

	return &SubmitLeadOutput{LeadID: id, Lead: lead}, nil
}
