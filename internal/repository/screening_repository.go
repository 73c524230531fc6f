package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ValkaFea/cinema-booking-bot/internal/booking"
	"github.com/ValkaFea/cinema-booking-bot/internal/model"
)

type ScreeningRepository interface {
	// Найти показ по id.
	GetByID(ctx context.Context, id int64) (*model.Screening, error)
	// Все показы с числом занятых мест, по возрастанию id.
	ListWithOccupancy(ctx context.Context) ([]booking.ScreeningView, error)
}

// Реализация на GORM.
type GormScreeningRepository struct {
	db *gorm.DB
}

func NewGormScreeningRepository(db *gorm.DB) *GormScreeningRepository {
	return &GormScreeningRepository{db: db}
}

func (r *GormScreeningRepository) GetByID(ctx context.Context, id int64) (*model.Screening, error) {
	var s model.Screening
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListWithOccupancy считает занятость одним запросом: активные брони
// присоединяются к показам, остальное делает GROUP BY.
func (r *GormScreeningRepository) ListWithOccupancy(ctx context.Context) ([]booking.ScreeningView, error) {
	views := make([]booking.ScreeningView, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Screening{}).
		Select("screenings.id, screenings.date, screenings.title, screenings.capacity, COUNT(bookings.id) AS booked").
		Joins("LEFT JOIN bookings ON bookings.screening_id = screenings.id AND bookings.canceled_at IS NULL").
		Group("screenings.id, screenings.date, screenings.title, screenings.capacity").
		Order("screenings.id ASC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
