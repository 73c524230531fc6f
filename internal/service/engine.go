// Package service реализует движок бронирования — единственный слой,
// которому разрешено изменять показы и брони. Слой представления
// (телеграм-бот) вызывает операции движка с уже разобранными
// примитивными аргументами и переводит коды результата в текст.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ValkaFea/cinema-booking-bot/internal/booking"
	"github.com/ValkaFea/cinema-booking-bot/internal/model"
	"github.com/ValkaFea/cinema-booking-bot/internal/repository"
)

// Результат создания брони.
type CreateOutcome string

const (
	CreateOK            CreateOutcome = "ok"
	CreateNoScreening   CreateOutcome = "no_screening"
	CreateAlreadyBooked CreateOutcome = "already_booked"
	CreateFull          CreateOutcome = "full"
)

// Результат удаления показа.
type DeleteOutcome string

const (
	DeleteOK          DeleteOutcome = "ok"
	DeleteHasBookings DeleteOutcome = "has_bookings"
	DeleteNotFound    DeleteOutcome = "not_found"
)

// Engine реализует операции ядра бронирования. Авторитетное состояние
// живёт только в хранилище: каждая операция перечитывает данные внутри
// своей транзакции, в памяти движок держит лишь таблицу замков.
type Engine struct {
	db *gorm.DB

	screenings repository.ScreeningRepository
	bookings   repository.BookingRepository
	events     repository.EventRepository

	// Замок на показ: проверка вместимости и вставка брони не должны
	// перемежаться для одного показа, иначе два параллельных запроса
	// на последнее место оба пройдут проверку. Замок держится только
	// на время обращения к хранилищу.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewEngine(
	db *gorm.DB,
	screenings repository.ScreeningRepository,
	bookings repository.BookingRepository,
	events repository.EventRepository,
) *Engine {
	return &Engine{
		db:         db,
		screenings: screenings,
		bookings:   bookings,
		events:     events,
		locks:      make(map[int64]*sync.Mutex),
	}
}

func (e *Engine) lockFor(screeningID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[screeningID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[screeningID] = l
	}
	return l
}

// ListScreenings возвращает все показы по возрастанию id с текущей
// занятостью. Чистое чтение без побочных эффектов.
func (e *Engine) ListScreenings(ctx context.Context) ([]booking.ScreeningView, error) {
	views, err := e.screenings.ListWithOccupancy(ctx)
	if err != nil {
		return nil, fmt.Errorf("list screenings: %w", err)
	}
	return views, nil
}

// GetScreening возвращает показ по id; repository.ErrNotFound, если
// такого показа нет.
func (e *Engine) GetScreening(ctx context.Context, id int64) (*model.Screening, error) {
	return e.screenings.GetByID(ctx, id)
}

// CreateBooking записывает пользователя на показ. Проверка показа,
// активной брони и вместимости вместе со вставкой выполняются в одной
// транзакции под замком показа, так что два параллельных запроса на
// последнее место разрешаются ровно в один CreateOK и один CreateFull.
// Код результата осмыслен только при err == nil.
func (e *Engine) CreateBooking(ctx context.Context, screeningID, userID int64, username, fullName string) (CreateOutcome, *model.Booking, error) {
	if err := booking.ValidateUserID(userID); err != nil {
		return "", nil, err
	}

	lock := e.lockFor(screeningID)
	lock.Lock()
	defer lock.Unlock()

	outcome := CreateOK
	var created *model.Booking

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s model.Screening
		if err := tx.First(&s, "id = ?", screeningID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				outcome = CreateNoScreening
				return nil
			}
			return err
		}

		// уже записан?
		var active int64
		if err := tx.Model(&model.Booking{}).
			Where("screening_id = ? AND user_id = ? AND canceled_at IS NULL", screeningID, userID).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			outcome = CreateAlreadyBooked
			return nil
		}

		// сколько уже записано
		var booked int64
		if err := tx.Model(&model.Booking{}).
			Where("screening_id = ? AND canceled_at IS NULL", screeningID).
			Count(&booked).Error; err != nil {
			return err
		}
		if booked >= int64(s.Capacity) {
			outcome = CreateFull
			return nil
		}

		b := model.Booking{
			ScreeningID: screeningID,
			UserID:      userID,
			Username:    username,
			FullName:    fullName,
			CreatedAt:   time.Now().UTC(),
		}
		if err := tx.Create(&b).Error; err != nil {
			return err
		}
		created = &b

		return recordEvent(tx, model.EventTypeBookingCreated, &userID, &screeningID, &b.ID, map[string]any{
			"date":  s.Date,
			"title": s.Title,
		})
	})
	if err != nil {
		return "", nil, fmt.Errorf("create booking: %w", err)
	}
	return outcome, created, nil
}

// CancelBooking помечает бронь отменённой, только если она существует,
// принадлежит userID и ещё активна. Возвращает, была ли запись
// обновлена: повторная отмена ничего не меняет и возвращает false.
func (e *Engine) CancelBooking(ctx context.Context, bookingID, userID int64) (bool, error) {
	if err := booking.ValidateUserID(userID); err != nil {
		return false, err
	}

	canceled := false
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Booking{}).
			Where("id = ? AND user_id = ? AND canceled_at IS NULL", bookingID, userID).
			Update("canceled_at", time.Now().UTC())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		canceled = true
		return recordEvent(tx, model.EventTypeBookingCanceled, &userID, nil, &bookingID, nil)
	})
	if err != nil {
		return false, fmt.Errorf("cancel booking: %w", err)
	}
	return canceled, nil
}

// ListUserBookings возвращает активные брони пользователя с датой и
// названием показа, по возрастанию id показа.
func (e *Engine) ListUserBookings(ctx context.Context, userID int64) ([]booking.UserBookingView, error) {
	if err := booking.ValidateUserID(userID); err != nil {
		return nil, err
	}
	views, err := e.bookings.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	return views, nil
}

// ListAllActiveBookings возвращает все активные брони по всем показам:
// по id показа, затем по времени создания.
func (e *Engine) ListAllActiveBookings(ctx context.Context) ([]booking.ActiveBookingRow, error) {
	rows, err := e.bookings.ListAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all active bookings: %w", err)
	}
	return rows, nil
}

// AddScreening добавляет показ; id назначает хранилище. Дубликаты
// даты и названия допустимы: в один день бывают разные показы.
func (e *Engine) AddScreening(ctx context.Context, date, title string, capacity int) (int64, error) {
	if err := booking.ValidateScreeningInput(date, title, capacity); err != nil {
		return 0, err
	}

	s := model.Screening{Date: date, Title: title, Capacity: capacity}
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&s).Error; err != nil {
			return err
		}
		return recordEvent(tx, model.EventTypeScreeningCreated, nil, &s.ID, nil, map[string]any{
			"date":     s.Date,
			"title":    s.Title,
			"capacity": s.Capacity,
		})
	})
	if err != nil {
		return 0, fmt.Errorf("add screening: %w", err)
	}
	return s.ID, nil
}

// UpdateScreening перезаписывает дату, название и вместимость показа.
// Возвращает, существовала ли запись. Занятость не проверяется:
// уменьшение вместимости ниже текущих броней допустимо и лишь
// останавливает новые записи, не отменяя существующие.
func (e *Engine) UpdateScreening(ctx context.Context, id int64, date, title string, capacity int) (bool, error) {
	if err := booking.ValidateScreeningInput(date, title, capacity); err != nil {
		return false, err
	}

	updated := false
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Screening{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"date":     date,
				"title":    title,
				"capacity": capacity,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		updated = true
		return recordEvent(tx, model.EventTypeScreeningUpdated, nil, &id, nil, map[string]any{
			"date":     date,
			"title":    title,
			"capacity": capacity,
		})
	})
	if err != nil {
		return false, fmt.Errorf("update screening: %w", err)
	}
	return updated, nil
}

// DeleteScreening удаляет показ, только если на него нет ни одной
// брони — ни активной, ни отменённой: история блокирует удаление.
// Проверка и удаление идут в одной транзакции под замком показа,
// чтобы параллельная запись не проскочила между ними.
func (e *Engine) DeleteScreening(ctx context.Context, id int64) (DeleteOutcome, error) {
	lock := e.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	outcome := DeleteOK
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&model.Booking{}).
			Where("screening_id = ?", id).
			Count(&total).Error; err != nil {
			return err
		}
		if total > 0 {
			outcome = DeleteHasBookings
			return nil
		}

		res := tx.Delete(&model.Screening{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			outcome = DeleteNotFound
			return nil
		}
		return recordEvent(tx, model.EventTypeScreeningDeleted, nil, &id, nil, nil)
	})
	if err != nil {
		return "", fmt.Errorf("delete screening: %w", err)
	}
	return outcome, nil
}

// RecentEvents возвращает последние события аудита, новые первыми.
func (e *Engine) RecentEvents(ctx context.Context, limit int) ([]model.Event, error) {
	events, err := e.events.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	return events, nil
}

// recordEvent пишет событие аудита в той же транзакции, что и само
// изменение.
func recordEvent(tx *gorm.DB, et model.EventType, userID, screeningID, bookingID *int64, details map[string]any) error {
	ev := model.Event{
		EventType:   et,
		UserID:      userID,
		ScreeningID: screeningID,
		BookingID:   bookingID,
	}
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return err
		}
		ev.Details = datatypes.JSON(payload)
	}
	return tx.Create(&ev).Error
}
