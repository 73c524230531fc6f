package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ValkaFea/cinema-booking-bot/internal/booking"
	"github.com/ValkaFea/cinema-booking-bot/internal/model"
)

type BookingRepository interface {
	// Активные брони пользователя с данными показа, по возрастанию
	// id показа.
	ListActiveByUser(ctx context.Context, userID int64) ([]booking.UserBookingView, error)
	// Все активные брони: по id показа, затем по времени создания,
	// чтобы потребитель мог группировать подряд идущие строки.
	ListAllActive(ctx context.Context) ([]booking.ActiveBookingRow, error)
}

// Реализация на GORM.
type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) ListActiveByUser(ctx context.Context, userID int64) ([]booking.UserBookingView, error) {
	views := make([]booking.UserBookingView, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Select("bookings.id, bookings.screening_id, screenings.date, screenings.title, bookings.created_at").
		Joins("JOIN screenings ON screenings.id = bookings.screening_id").
		Where("bookings.user_id = ? AND bookings.canceled_at IS NULL", userID).
		Order("screenings.id ASC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (r *GormBookingRepository) ListAllActive(ctx context.Context) ([]booking.ActiveBookingRow, error) {
	rows := make([]booking.ActiveBookingRow, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Select("bookings.screening_id, screenings.date, screenings.title, bookings.user_id, bookings.username, bookings.full_name, bookings.created_at").
		Joins("JOIN screenings ON screenings.id = bookings.screening_id").
		Where("bookings.canceled_at IS NULL").
		Order("screenings.id ASC, bookings.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
