package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserBackup — запись пользователя в документе резервной копии.
// Идентификаторы намеренно не выгружаются: при восстановлении
// пользователям и подпискам выдаются новые uuid.
type UserBackup struct {
	Username      string               `json:"username"`
	PasswordHash  string               `json:"password_hash"`
	CreatedAt     *time.Time           `json:"created_at,omitempty"`
	Subscriptions []SubscriptionBackup `json:"subscriptions"`
}

// SubscriptionBackup — запись подписки внутри UserBackup.
type SubscriptionBackup struct {
	Name         string          `json:"name"`
	Fee          decimal.Decimal `json:"fee"`
	Currency     string          `json:"currency"`
	Cycle        string          `json:"cycle"`
	PaymentDay   int             `json:"payment_day"`
	PaymentMonth *int            `json:"payment_month"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
}
