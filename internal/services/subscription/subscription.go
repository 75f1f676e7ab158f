// Package services содержит бизнес-логику для управления подписками пользователя.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack-app/subtrack/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку.
	CreateSubscription(ctx context.Context, sub models.Subscription) error
	// ListSubscriptions возвращает подписки пользователя в порядке создания.
	ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error)
	// UpdateSubscription заменяет поля подписки по ключу (uid, user_uid).
	UpdateSubscription(ctx context.Context, sub models.Subscription) error
	// RemoveSubscription удаляет подписку по ключу (uid, user_uid).
	RemoveSubscription(ctx context.Context, uid, userUID string) error
}

// SubscriptionService реализует бизнес-логику работы с подписками.
// Все операции ограничены текущим владельцем: чужой идентификатор
// неотличим от несуществующего.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
	}
}

// fromRequest собирает модель подписки из запроса: пропущенная валюта — JPY,
// пропущенный paymentMonth — NULL. paymentMonth сохраняется как прислано
// и при месячном цикле.
func fromRequest(req models.DummySubscription) models.Subscription {
	currency := req.Currency
	if currency == "" {
		currency = models.CurrencyJPY
	}
	return models.Subscription{
		Name:         req.Name,
		Fee:          req.Fee,
		Currency:     currency,
		Cycle:        req.Cycle,
		PaymentDay:   req.PaymentDay,
		PaymentMonth: req.PaymentMonth,
	}
}

// Create создает новую подписку текущего пользователя и возвращает сохранённое представление.
func (s *SubscriptionService) Create(ctx context.Context, userUID string, req models.DummySubscription) (*models.Subscription, error) {
	sub := fromRequest(req)
	sub.UID = uuid.New().String()
	sub.UserUID = userUID
	sub.CreatedAt = time.Now().UTC()

	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info("created new subscription", slog.String("id", sub.UID))
	return &sub, nil
}

// List возвращает все подписки пользователя.
func (s *SubscriptionService) List(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx, userUID)
}

// Update целиком заменяет изменяемые поля подписки: отсутствующие в запросе
// поля сбрасываются к значениям по умолчанию, а не остаются прежними.
func (s *SubscriptionService) Update(ctx context.Context, userUID, uid string, req models.DummySubscription) (*models.Subscription, error) {
	sub := fromRequest(req)
	sub.UID = uid
	sub.UserUID = userUID

	if err := s.repo.UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info("updated subscription", slog.String("id", uid))
	return &sub, nil
}

// Remove удаляет подписку пользователя.
func (s *SubscriptionService) Remove(ctx context.Context, userUID, uid string) error {
	if err := s.repo.RemoveSubscription(ctx, uid, userUID); err != nil {
		return err
	}
	s.log.Info("deleted subscription", slog.String("id", uid))
	return nil
}
