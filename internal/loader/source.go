package loader

import (
	"context"

	"YieldSentinel/internal/model"
)

// Source defines the interface for loading tick observations.
type Source interface {
	Load(ctx context.Context) ([]model.Observation, error)
	Name() string
}
