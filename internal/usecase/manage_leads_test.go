package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/experttechtutors/tutor-leads/internal/entity"
	"github.com/experttechtutors/tutor-leads/internal/usecase"
)

func TestManageLeads_List(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return([]entity.Lead{{ID: "a"}, {ID: "b"}}, nil)

	leads, err := usecase.NewManageLeadsUseCase(repo).List(context.Background())

	require.NoError(t, err)
	assert.Len(t, leads, 2)
}

func TestManageLeads_ListNeverReturnsNil(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return(nil, nil)

	leads, err := usecase.NewManageLeadsUseCase(repo).List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}

func TestManageLeads_ListError(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("timeout"))

	_, err := usecase.NewManageLeadsUseCase(repo).List(context.Background())

	assert.True(t, usecase.IsTechnicalError(err))
}

func TestManageLeads_UpdateStatus(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("UpdateStatus", mock.Anything, "lead-1", entity.LeadStatusContacted).Return(true, nil)
	repo.On("UpdateStatus", mock.Anything, "missing", entity.LeadStatusClosed).Return(false, nil)

	uc := usecase.NewManageLeadsUseCase(repo)

	assert.NoError(t, uc.UpdateStatus(context.Background(), "lead-1", usecase.UpdateStatusInput{Status: "contacted"}))

	err := uc.UpdateStatus(context.Background(), "missing", usecase.UpdateStatusInput{Status: "closed"})
	de, ok := usecase.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, usecase.CodeLeadNotFound, de.Code)

	err = uc.UpdateStatus(context.Background(), "lead-1", usecase.UpdateStatusInput{Status: "archived"})
	de, ok = usecase.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, usecase.CodeValidation, de.Code)

	repo.AssertNumberOfCalls(t, "UpdateStatus", 2)
}
