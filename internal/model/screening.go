package model

import "time"

// screenings
type Screening struct {
	ID int64 `gorm:"primaryKey"`

	// Дата показа — короткая отображаемая строка ("23.11").
	// Хранится и выводится как есть, календарно не валидируется.
	Date     string `gorm:"type:varchar(32);not null"`
	Title    string `gorm:"type:varchar(255);not null"`
	Capacity int    `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
