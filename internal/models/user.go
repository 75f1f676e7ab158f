// Package models содержит доменные структуры трекера подписочных расходов:
// пользователей, подписки, курсы валют и документ резервной копии.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя (uuid)
	Username     string    // Имя пользователя (уникальное, с учётом регистра)
	PasswordHash string    // Bcrypt-хэш пароля
	CreatedAt    time.Time // Дата создания учётной записи
}

// UserSummary — краткая запись о пользователе для административного списка.
type UserSummary struct {
	UID               string    `json:"id"`
	Username          string    `json:"username"`
	CreatedAt         time.Time `json:"createdAt"`
	SubscriptionCount int       `json:"subscriptionCount"`
}
