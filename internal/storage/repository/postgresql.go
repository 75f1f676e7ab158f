// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей и их подписок. Все операции над подписками выполняются
// по составному ключу (uid, user_uid), полное восстановление данных —
// в одной транзакции.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки-сентинелы хранилища. Обработчики транслируют их в HTTP-статусы.
var (
	// ErrNotFound — запись не существует или принадлежит другому пользователю.
	ErrNotFound = errors.New("not found")
	// ErrUserExists — нарушена уникальность имени пользователя.
	ErrUserExists = errors.New("username already exists")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и подписками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}
