package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/experttechtutors/tutor-leads/internal/entity"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *entity.Lead) (string, error) {
	args := m.Called(ctx, lead)
	return args.String(0), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

// recordingNotifier stands in for the mail notifier; it only remembers
// which leads it was asked to announce.
type recordingNotifier struct {
	mu    sync.Mutex
	leads []entity.Lead
}

func (n *recordingNotifier) NotifyLead(_ context.Context, lead entity.Lead) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.leads = append(n.leads, lead)
}

func (n *recordingNotifier) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.leads)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadSubmitted(ctx context.Context, lead entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

type MockQuickCallPublisher struct {
	mock.Mock
}

func (m *MockQuickCallPublisher) PublishQuickCall(ctx context.Context, req entity.QuickCallRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
