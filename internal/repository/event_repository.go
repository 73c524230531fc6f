package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ValkaFea/cinema-booking-bot/internal/model"
)

type EventRepository interface {
	// Последние события аудита, новые первыми.
	ListRecent(ctx context.Context, limit int) ([]model.Event, error)
}

// Реализация на GORM.
type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) ListRecent(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	events := make([]model.Event, 0, limit)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
