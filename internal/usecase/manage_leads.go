package usecase

import (
	"context"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

// ManageLeadsUseCase backs the admin endpoints.
type ManageLeadsUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewManageLeadsUseCase(repo entity.LeadRepositoryInterface) *ManageLeadsUseCase {
	return &ManageLeadsUseCase{Repo: repo}
}

func (uc *ManageLeadsUseCase) List(ctx context.Context) ([]entity.Lead, error) {
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodePersistence, Message: "failed to list leads", Err: err}
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	return leads, nil
}

func (uc *ManageLeadsUseCase) UpdateStatus(ctx context.Context, id string, input UpdateStatusInput) error {
	if violations := ValidateStatus(input); len(violations) > 0 {
		return newValidationFailed(violations)
	}

	ok, err := uc.Repo.UpdateStatus(ctx, id, entity.LeadStatus(input.Status))
	if err != nil {
		return &TechnicalError{Code: CodePersistence, Message: "failed to update lead status", Err: err}
	}
	if !ok {
		return &DomainError{Code: CodeLeadNotFound, Message: entity.ErrLeadNotFound.Error()}
	}
	return nil
}
