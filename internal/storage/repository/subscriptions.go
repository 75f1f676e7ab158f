package repository

import (
	"context"
	"fmt"

	"github.com/subtrack-app/subtrack/internal/models"
)

// CreateSubscription вставляет новую запись подписки.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (uid, name, fee, currency, cycle,
			      payment_day, payment_month, user_uid, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.DB.ExecContext(ctx, query,
		sub.UID, sub.Name, sub.Fee, sub.Currency, sub.Cycle,
		sub.PaymentDay, sub.PaymentMonth, sub.UserUID, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListSubscriptions возвращает все подписки пользователя в порядке создания.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, fee, currency, cycle, payment_day, payment_month,
			      user_uid, created_at
			  FROM subscriptions
			  WHERE user_uid = $1
			  ORDER BY created_at, uid`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
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

// UpdateSubscription целиком заменяет изменяемые поля подписки по составному
// ключу (uid, user_uid). Чужая или несуществующая подписка — ErrNotFound.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET name = $1, fee = $2, currency = $3, cycle = $4,
			      payment_day = $5, payment_month = $6
			  WHERE uid = $7 AND user_uid = $8`
	result, err := s.DB.ExecContext(ctx, query,
		sub.Name, sub.Fee, sub.Currency, sub.Cycle,
		sub.PaymentDay, sub.PaymentMonth, sub.UID, sub.UserUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// RemoveSubscription удаляет подписку по составному ключу (uid, user_uid).
func (s *Storage) RemoveSubscription(ctx context.Context, uid, userUID string) error {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE uid = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, uid, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
