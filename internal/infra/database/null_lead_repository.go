package database

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

// NullLeadRepository is used when no database is configured. Saves hand
// back an id without storing anything, the listing is always empty and
// status updates are acknowledged.
type NullLeadRepository struct {
	logger *zap.Logger
}

func NewNullLeadRepository(logger *zap.Logger) *NullLeadRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NullLeadRepository{logger: logger}
}

func (r *NullLeadRepository) Save(_ context.Context, lead *entity.Lead) (string, error) {
	id := uuid.New().String()
	r.logger.Debug("lead not persisted: no database configured",
		zap.String("lead_id", id),
		zap.String("email", lead.Email),
	)
	return id, nil
}

func (r *NullLeadRepository) List(context.Context) ([]entity.Lead, error) {
	return []entity.Lead{}, nil
}

func (r *NullLeadRepository) UpdateStatus(_ context.Context, id string, status entity.LeadStatus) (bool, error) {
	r.logger.Debug("lead status not persisted: no database configured",
		zap.String("lead_id", id),
		zap.String("status", string(status)),
	)
	return true, nil
}
