package mocks

import (
	"context"

	"github.com/dukex/flowsmith/pkg/models"
	"github.com/dukex/flowsmith/pkg/persistence"
	"github.com/stretchr/testify/mock"
)

// MockPersistence is a mock implementation of persistence.Persistence interface.
type MockPersistence struct {
	mock.Mock

	Workflows     *MockWorkflowRepository
	Conversations *MockConversationRepository
	Templates     *MockTemplateRepository
}

// NewMockPersistence returns a MockPersistence with fresh repository mocks.
func NewMockPersistence() *MockPersistence {
	return &MockPersistence{
		Workflows:     &MockWorkflowRepository{},
		Conversations: &MockConversationRepository{},
		Templates:     &MockTemplateRepository{},
	}
}

func (m *MockPersistence) WorkflowRepository() persistence.WorkflowRepository {
	return m.Workflows
}

func (m *MockPersistence) ConversationRepository() persistence.ConversationRepository {
	return m.Conversations
}

func (m *MockPersistence) TemplateRepository() persistence.TemplateRepository {
	return m.Templates
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// AssertRepositoryExpectations asserts expectations on every repository mock.
func (m *MockPersistence) AssertRepositoryExpectations(t mock.TestingT) bool {
	return m.Workflows.AssertExpectations(t) &&
		m.Conversations.AssertExpectations(t) &&
		m.Templates.AssertExpectations(t)
}

// MockWorkflowRepository is a mock implementation of persistence.WorkflowRepository interface.
type MockWorkflowRepository struct {
	mock.Mock
}

func (m *MockWorkflowRepository) Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	args := m.Called(ctx, workflow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) GetByID(ctx context.Context, id int64) (*models.Workflow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Workflow), args.Error(1)
}

func (m *MockWorkflowRepository) ListRecent(ctx context.Context, limit int) ([]*models.Workflow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Workflow), args.Error(1)
}

// MockConversationRepository is a mock implementation of persistence.ConversationRepository interface.
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(
	ctx context.Context,
	messages []models.ChatMessage,
	workflowID *int64,
) (*models.Conversation, error) {
	args := m.Called(ctx, messages, workflowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Append(
	ctx context.Context,
	id int64,
	messages []models.ChatMessage,
) (*models.Conversation, error) {
	args := m.Called(ctx, id, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Conversation), args.Error(1)
}

// MockTemplateRepository is a mock implementation of persistence.TemplateRepository interface.
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Seed(ctx context.Context, templates []models.Template) error {
	args := m.Called(ctx, templates)

	return args.Error(0)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]*models.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Template), args.Error(1)
}

func (m *MockTemplateRepository) GetByID(ctx context.Context, id int64) (*models.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Template), args.Error(1)
}

func (m *MockTemplateRepository) ListByCategory(ctx context.Context, category string) ([]*models.Template, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Template), args.Error(1)
}
