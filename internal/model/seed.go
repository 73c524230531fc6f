package model

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Стартовое расписание показов.
var seedScreenings = []Screening{
	{ID: 1, Date: "23.11", Title: "Милая Френсис", Capacity: 24},
	{ID: 2, Date: "30.11", Title: "Она", Capacity: 24},
	{ID: 3, Date: "07.12", Title: "Перед рассветом", Capacity: 24},
	{ID: 4, Date: "14.12", Title: "Амели", Capacity: 24},
	{ID: 5, Date: "21.12", Title: "Вкус вишни", Capacity: 24},
	{ID: 6, Date: "28.12", Title: "Париж, я люблю тебя", Capacity: 24},
}

// SeedScreenings заполняет расписание, если его ещё нет. Вставка идёт
// только для отсутствующих id, так что повторная инициализация базы
// безопасна и не трогает уже отредактированные показы.
func SeedScreenings(db *gorm.DB) error {
	screenings := make([]Screening, len(seedScreenings))
	copy(screenings, seedScreenings)
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&screenings).Error
}
