package iocache

import (
	"github.com/plantops/capaimpact/internal/contract"
	"github.com/plantops/capaimpact/schema"
	"github.com/stretchr/testify/mock"
)

// MockScoreLogStore is a mock implementation of ScoreLogStore for testing.
type MockScoreLogStore struct {
	mock.Mock
}

var _ contract.ScoreLogStore = &MockScoreLogStore{} // Compile-time check

// Append implements the ScoreLogStore interface.
func (m *MockScoreLogStore) Append(entry schema.ScoreLogEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

// List implements the ScoreLogStore interface.
func (m *MockScoreLogStore) List() ([]schema.ScoreLogEntry, error) {
	args := m.Called()
	entries, _ := args.Get(0).([]schema.ScoreLogEntry)
	return entries, args.Error(1)
}

// GetStatus implements the ScoreLogStore interface.
func (m *MockScoreLogStore) GetStatus() (schema.ScoreLogStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.ScoreLogStatus), args.Error(1)
}

// Close implements the ScoreLogStore interface.
func (m *MockScoreLogStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
