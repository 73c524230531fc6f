package model

import "time"

// bookings
//
// Бронь не удаляется физически — отмена только проставляет CanceledAt.
// История нужна для защиты показа от удаления и для аудита, поэтому
// после отмены пользователь записывается заново новой строкой.
// Уникальность «не больше одной активной брони на пару (показ,
// пользователь)» держит движок внутри своей транзакции: уникальный
// индекс в базе запретил бы повторную запись после отмены.
type Booking struct {
	ID int64 `gorm:"primaryKey"`

	ScreeningID int64 `gorm:"not null;index:idx_bookings_screening_user;index"`
	UserID      int64 `gorm:"not null;index:idx_bookings_screening_user"`

	// Снимок профиля на момент записи; при смене профиля не обновляется.
	Username string `gorm:"type:varchar(255)"`
	FullName string `gorm:"type:varchar(255)"`

	CreatedAt  time.Time `gorm:"not null"`
	CanceledAt *time.Time

	Screening *Screening `gorm:"foreignKey:ScreeningID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// Active сообщает, действует ли бронь.
func (b *Booking) Active() bool {
	return b.CanceledAt == nil
}
