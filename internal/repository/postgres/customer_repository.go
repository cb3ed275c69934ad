package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mnajjaa/banking-agent-simulation-platform/domain"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{
		DB: db,
	}
}

// FindAll loads the full feature table. Called once at startup; the
// engines never touch the database afterwards.
func (r *CustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var customers []domain.Customer
	if err := r.DB.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Customer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}

	return count, nil
}
