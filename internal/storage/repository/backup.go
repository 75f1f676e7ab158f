package repository

import (
	"context"
	"fmt"

	"github.com/subtrack-app/subtrack/internal/models"
)

// ListAllUsers возвращает всех пользователей в порядке создания.
func (s *Storage) ListAllUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListAllUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, password_hash, created_at
			  FROM users
			  ORDER BY created_at, uid`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllSubscriptions возвращает все подписки всех пользователей в порядке создания.
func (s *Storage) ListAllSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	const op = "storage.ListAllSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, fee, currency, cycle, payment_day, payment_month,
			      user_uid, created_at
			  FROM subscriptions
			  ORDER BY created_at, uid`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var item models.Subscription
		if err := rows.Scan(&item.UID, &item.Name, &item.Fee, &item.Currency, &item.Cycle,
			&item.PaymentDay, &item.PaymentMonth, &item.UserUID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReplaceAll в одной транзакции удаляет все подписки, затем всех пользователей
// (в этом порядке из-за внешнего ключа) и вставляет данные из резервной копии.
// Любая ошибка откатывает транзакцию целиком, частичное состояние не видно
// другим читателям.
func (s *Storage) ReplaceAll(ctx context.Context, users []models.User, subs []models.Subscription) error {
	const op = "storage.ReplaceAll"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM subscriptions`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	userQuery := `INSERT INTO users (uid, username, password_hash, created_at)
				  VALUES ($1, $2, $3, $4)`
	for _, u := range users {
		if _, err = tx.ExecContext(ctx, userQuery,
			u.UID, u.Username, u.PasswordHash, u.CreatedAt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	subQuery := `INSERT INTO subscriptions (uid, name, fee, currency, cycle,
				     payment_day, payment_month, user_uid, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, sub := range subs {
		if _, err = tx.ExecContext(ctx, subQuery,
			sub.UID, sub.Name, sub.Fee, sub.Currency, sub.Cycle,
			sub.PaymentDay, sub.PaymentMonth, sub.UserUID, sub.CreatedAt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
