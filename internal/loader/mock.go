package loader

import (
	"context"

	"YieldSentinel/internal/model"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Data []model.Observation
	Err  error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Load(_ context.Context) ([]model.Observation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}
