// Package repository реализует доступ к данным ядра бронирования.
// Репозитории обслуживают чтение и отчётные выборки; изменяющие
// операции идут через транзакции движка в пакете service.
package repository

import "errors"

// ErrNotFound возвращается, когда запрошенной записи не существует.
// Верхний слой переводит её в соответствующий код результата, а не
// в жёсткую ошибку.
var ErrNotFound = errors.New("not found")
