package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

type RunRepository struct {
	DB *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{
		DB: db,
	}
}

func (r *RunRepository) Save(ctx context.Context, run domain.SimulationRun) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to save simulation run: %w", err)
	}

	return nil
}

func (r *RunRepository) FindRecent(ctx context.Context, limit int) ([]domain.SimulationRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var runs []domain.SimulationRun
	err := r.DB.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load simulation runs: %w", err)
	}

	return runs, nil
}
