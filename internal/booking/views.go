// Package booking содержит чистую доменную логику ядра бронирования:
// представления для отображения, группировку административного списка
// и валидацию примитивных аргументов из слоя представления.
package booking

import "time"

// ScreeningView — показ вместе с числом занятых мест.
type ScreeningView struct {
	ID       int64
	Date     string
	Title    string
	Capacity int
	Booked   int
}

// FreePlaces возвращает число свободных мест. Если вместимость
// уменьшили ниже текущей занятости, свободных мест ноль, а не
// отрицательное число: существующие брони при этом не отменяются,
// показ просто перестаёт принимать новые.
func (v ScreeningView) FreePlaces() int {
	free := v.Capacity - v.Booked
	if free < 0 {
		return 0
	}
	return free
}

// UserBookingView — активная бронь пользователя вместе с датой и
// названием показа.
type UserBookingView struct {
	ID          int64
	ScreeningID int64
	Date        string
	Title       string
	CreatedAt   time.Time
}

// ActiveBookingRow — строка административного списка всех активных
// броней. Хранилище отдаёт строки отсортированными по показу, затем
// по времени создания.
type ActiveBookingRow struct {
	ScreeningID int64
	Date        string
	Title       string
	UserID      int64
	Username    string
	FullName    string
	CreatedAt   time.Time
}

// ScreeningGroup — брони одного показа в административном списке.
type ScreeningGroup struct {
	ScreeningID int64
	Date        string
	Title       string
	Bookings    []ActiveBookingRow
}

// GroupActiveBookings сворачивает упорядоченный список броней в группы
// по показам. Строки должны идти подряд для каждого показа — именно в
// таком порядке их возвращает хранилище, поэтому достаточно одного
// прохода без дополнительной сортировки.
func GroupActiveBookings(rows []ActiveBookingRow) []ScreeningGroup {
	var groups []ScreeningGroup
	for _, row := range rows {
		n := len(groups)
		if n == 0 || groups[n-1].ScreeningID != row.ScreeningID {
			groups = append(groups, ScreeningGroup{
				ScreeningID: row.ScreeningID,
				Date:        row.Date,
				Title:       row.Title,
			})
			n++
		}
		groups[n-1].Bookings = append(groups[n-1].Bookings, row)
	}
	return groups
}
