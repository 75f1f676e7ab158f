// Package services содержит бизнес-логику выгрузки и восстановления полного
// набора данных: пользователей вместе с их подписками.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack-app/subtrack/internal/models"
)

// BackupRepository определяет методы хранилища для полной выгрузки и замены данных.
type BackupRepository interface {
	ListAllUsers(ctx context.Context) ([]*models.User, error)
	ListAllSubscriptions(ctx context.Context) ([]*models.Subscription, error)
	// ReplaceAll атомарно заменяет содержимое обеих таблиц.
	ReplaceAll(ctx context.Context, users []models.User, subs []models.Subscription) error
}

// BackupService собирает переносимый документ резервной копии и восстанавливает
// из него данные, заменяя всё содержимое базы.
type BackupService struct {
	repo    BackupRepository
	dataDir string
	log     *slog.Logger
}

// NewBackupService создает новый экземпляр BackupService.
// dataDir — каталог для серверных копий выгрузки.
func NewBackupService(repo BackupRepository, dataDir string, log *slog.Logger) *BackupService {
	return &BackupService{
		repo:    repo,
		dataDir: dataDir,
		log:     log,
	}
}

// Export выгружает всех пользователей с вложенными подписками.
// Идентификаторы в документ не попадают: при восстановлении они генерируются заново.
func (s *BackupService) Export(ctx context.Context) ([]models.UserBackup, error) {
	users, err := s.repo.ListAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.repo.ListAllSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	subsByUser := make(map[string][]models.SubscriptionBackup, len(users))
	for _, sub := range subs {
		createdAt := sub.CreatedAt
		subsByUser[sub.UserUID] = append(subsByUser[sub.UserUID], models.SubscriptionBackup{
			Name:         sub.Name,
			Fee:          sub.Fee,
			Currency:     sub.Currency,
			Cycle:        sub.Cycle,
			PaymentDay:   sub.PaymentDay,
			PaymentMonth: sub.PaymentMonth,
			CreatedAt:    &createdAt,
		})
	}

	doc := make([]models.UserBackup, 0, len(users))
	for _, u := range users {
		createdAt := u.CreatedAt
		userSubs := subsByUser[u.UID]
		if userSubs == nil {
			userSubs = []models.SubscriptionBackup{}
		}
		doc = append(doc, models.UserBackup{
			Username:      u.Username,
			PasswordHash:  u.PasswordHash,
			CreatedAt:     &createdAt,
			Subscriptions: userSubs,
		})
	}
	return doc, nil
}

// WriteSnapshot сохраняет копию документа в каталоге данных под именем
// с меткой времени и возвращает путь к файлу. Копия остаётся на сервере
// независимо от документа, отданного клиенту.
func (s *BackupService) WriteSnapshot(doc []models.UserBackup) (string, error) {
	const op = "backup.WriteSnapshot"
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	name := fmt.Sprintf("subtrack_backup_%s.json", time.Now().UTC().Format("20060102_150405"))
	path := filepath.Join(s.dataDir, name)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return path, nil
}

// Restore разрушительно заменяет весь набор данных содержимым документа.
// Пользователи и подписки получают свежие uuid, created_at восстанавливается
// как есть, при отсутствии — текущее время. Вся замена выполняется хранилищем
// в одной транзакции: при любой ошибке прежние данные остаются нетронутыми.
func (s *BackupService) Restore(ctx context.Context, doc []models.UserBackup) error {
	now := time.Now().UTC()

	users := make([]models.User, 0, len(doc))
	var subs []models.Subscription
	for _, record := range doc {
		user := models.User{
			UID:          uuid.New().String(),
			Username:     record.Username,
			PasswordHash: record.PasswordHash,
			CreatedAt:    now,
		}
		if record.CreatedAt != nil {
			user.CreatedAt = *record.CreatedAt
		}
		users = append(users, user)

		for _, sb := range record.Subscriptions {
			currency := sb.Currency
			if currency == "" {
				currency = models.CurrencyJPY
			}
			sub := models.Subscription{
				UID:          uuid.New().String(),
				Name:         sb.Name,
				Fee:          sb.Fee,
				Currency:     currency,
				Cycle:        sb.Cycle,
				PaymentDay:   sb.PaymentDay,
				PaymentMonth: sb.PaymentMonth,
				UserUID:      user.UID,
				CreatedAt:    now,
			}
			if sb.CreatedAt != nil {
				sub.CreatedAt = *sb.CreatedAt
			}
			subs = append(subs, sub)
		}
	}

	if err := s.repo.ReplaceAll(ctx, users, subs); err != nil {
		return err
	}
	s.log.Info("restored dataset from backup",
		slog.Int("users", len(users)), slog.Int("subscriptions", len(subs)))
	return nil
}
