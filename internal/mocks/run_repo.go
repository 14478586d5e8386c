package mocks

import (
	"context"

	"github.com/roster-import-api/internal/models"
)

// MockRunRepository is an in-memory implementation of RunRepository.
type MockRunRepository struct {
	Runs        map[string]*models.ImportRun
	CreateError error
	UpdateError error
}

// NewMockRunRepository creates an empty mock run repository.
func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{Runs: make(map[string]*models.ImportRun)}
}

func (m *MockRunRepository) Create(ctx context.Context, run *models.ImportRun) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	copied := *run
	m.Runs[run.ID] = &copied
	return nil
}

func (m *MockRunRepository) Update(ctx context.Context, run *models.ImportRun) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	copied := *run
	m.Runs[run.ID] = &copied
	return nil
}

func (m *MockRunRepository) GetByID(ctx context.Context, id string) (*models.ImportRun, error) {
	run, ok := m.Runs[id]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}
