package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Тип события аудита.
type EventType string

const (
	EventTypeBookingCreated   EventType = "booking_created"
	EventTypeBookingCanceled  EventType = "booking_canceled"
	EventTypeScreeningCreated EventType = "screening_created"
	EventTypeScreeningUpdated EventType = "screening_updated"
	EventTypeScreeningDeleted EventType = "screening_deleted"
)

// events — события аудита. Пишутся в той же транзакции, что и
// изменение, которое они описывают.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;index"`

	UserID      *int64 `gorm:"index"`
	ScreeningID *int64 `gorm:"index"`
	BookingID   *int64 `gorm:"index"`

	// Произвольные детали события (JSON).
	Details datatypes.JSON
}

// BeforeCreate назначает идентификатор: SQLite не генерирует UUID
// на стороне базы.
func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
