package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

type QuickCallUseCase struct {
	Publisher QuickCallPublisher
	Logger    *zap.Logger
	Now       func() time.Time
}

// NewQuickCallUseCase builds the call-back flow. publisher may be nil, in
// which case requests are only logged.
func NewQuickCallUseCase(publisher QuickCallPublisher, logger *zap.Logger) *QuickCallUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuickCallUseCase{Publisher: publisher, Logger: logger, Now: time.Now}
}

func (uc *QuickCallUseCase) Execute(ctx context.Context, input QuickCallInput) (*entity.QuickCallRequest, error) {
	if violations := ValidateQuickCall(input); len(violations) > 0 {
		return nil, newValidationFailed(violations)
	}

	req := entity.QuickCallRequest{
		Name:        strings.TrimSpace(input.Name),
		Phone:       stripWhitespace(input.Phone),
		Subject:     strings.TrimSpace(input.Subject),
		RequestedAt: uc.Now(),
	}

	uc.Logger.Info("quick call request",
		zap.String("name", req.Name),
		zap.String("phone", req.Phone),
		zap.String("subject", req.Subject),
		zap.Time("timestamp", req.RequestedAt),
	)

	if uc.Publisher != nil {
		if err := uc.Publisher.PublishQuickCall(ctx, req); err != nil {
			uc.Logger.Warn("quick call not queued", zap.String("phone", req.Phone), zap.Error(err))
		}
	}

	return &req, nil
}
