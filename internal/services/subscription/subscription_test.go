package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/subtrack-app/subtrack/internal/models"
	"github.com/subtrack-app/subtrack/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSubscription(ctx context.Context, sub models.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *RepoMock) ListSubscriptions(ctx context.Context, userUID string) ([]*models.Subscription, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *RepoMock) UpdateSubscription(ctx context.Context, sub models.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *RepoMock) RemoveSubscription(ctx context.Context, uid, userUID string) error {
	return m.Called(ctx, uid, userUID).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSubscriptionService_Create(t *testing.T) {
	month := 4

	tests := []struct {
		name         string
		req          models.DummySubscription
		wantCurrency string
		wantMonth    *int
	}{
		{
			name: "явная валюта сохраняется",
			req: models.DummySubscription{
				Name:       "Netflix",
				Fee:        decimal.NewFromInt(1490),
				Currency:   models.CurrencyUSD,
				Cycle:      models.CycleMonthly,
				PaymentDay: 15,
			},
			wantCurrency: models.CurrencyUSD,
		},
		{
			name: "пропущенная валюта трактуется как JPY",
			req: models.DummySubscription{
				Name:       "Spotify",
				Fee:        decimal.NewFromInt(980),
				Cycle:      models.CycleMonthly,
				PaymentDay: 1,
			},
			wantCurrency: models.CurrencyJPY,
		},
		{
			name: "годовой цикл с месяцем списания",
			req: models.DummySubscription{
				Name:         "Amazon Prime",
				Fee:          decimal.NewFromInt(5900),
				Currency:     models.CurrencyJPY,
				Cycle:        models.CycleYearly,
				PaymentDay:   10,
				PaymentMonth: &month,
			},
			wantCurrency: models.CurrencyJPY,
			wantMonth:    &month,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			service := NewSubscriptionService(repo, newNoopLogger())

			var saved models.Subscription
			repo.On("CreateSubscription", mock.Anything, mock.AnythingOfType("models.Subscription")).
				Run(func(args mock.Arguments) {
					saved = args.Get(1).(models.Subscription)
				}).Return(nil).Once()

			sub, err := service.Create(context.Background(), "user-1", tt.req)
			require.NoError(t, err)

			assert.NotEmpty(t, sub.UID)
			assert.Equal(t, "user-1", saved.UserUID)
			assert.Equal(t, tt.req.Name, saved.Name)
			assert.Equal(t, tt.wantCurrency, saved.Currency)
			assert.Equal(t, tt.wantMonth, saved.PaymentMonth)
			assert.True(t, tt.req.Fee.Equal(saved.Fee))
			assert.False(t, saved.CreatedAt.IsZero())
			repo.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_CreateRepoError(t *testing.T) {
	repo := new(RepoMock)
	service := NewSubscriptionService(repo, newNoopLogger())

	repo.On("CreateSubscription", mock.Anything, mock.Anything).Return(errors.New("db error")).Once()

	_, err := service.Create(context.Background(), "user-1", models.DummySubscription{
		Name:       "Netflix",
		Fee:        decimal.NewFromInt(1490),
		Cycle:      models.CycleMonthly,
		PaymentDay: 15,
	})
	assert.Error(t, err)
}

func TestSubscriptionService_List(t *testing.T) {
	repo := new(RepoMock)
	service := NewSubscriptionService(repo, newNoopLogger())

	expected := []*models.Subscription{
		{UID: "sub-1", Name: "Netflix"},
		{UID: "sub-2", Name: "Spotify"},
	}
	repo.On("ListSubscriptions", mock.Anything, "user-1").Return(expected, nil).Once()

	subs, err := service.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, expected, subs)
}

func TestSubscriptionService_Update(t *testing.T) {
	repo := new(RepoMock)
	service := NewSubscriptionService(repo, newNoopLogger())

	var saved models.Subscription
	repo.On("UpdateSubscription", mock.Anything, mock.AnythingOfType("models.Subscription")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(models.Subscription)
		}).Return(nil).Once()

	req := models.DummySubscription{
		Name:       "Netflix",
		Fee:        decimal.NewFromInt(1990),
		Currency:   models.CurrencyJPY,
		Cycle:      models.CycleMonthly,
		PaymentDay: 20,
	}
	sub, err := service.Update(context.Background(), "user-1", "sub-1", req)
	require.NoError(t, err)

	assert.Equal(t, "sub-1", saved.UID)
	assert.Equal(t, "user-1", saved.UserUID)
	// Замена целиком: отсутствующий paymentMonth сбрасывается в NULL.
	assert.Nil(t, saved.PaymentMonth)
	assert.Equal(t, "sub-1", sub.UID)
}

func TestSubscriptionService_UpdateNotFound(t *testing.T) {
	repo := new(RepoMock)
	service := NewSubscriptionService(repo, newNoopLogger())

	repo.On("UpdateSubscription", mock.Anything, mock.Anything).Return(repository.ErrNotFound).Once()

	_, err := service.Update(context.Background(), "user-1", "missing", models.DummySubscription{
		Name:       "Netflix",
		Fee:        decimal.NewFromInt(1490),
		Cycle:      models.CycleMonthly,
		PaymentDay: 15,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubscriptionService_Remove(t *testing.T) {
	repo := new(RepoMock)
	service := NewSubscriptionService(repo, newNoopLogger())

	repo.On("RemoveSubscription", mock.Anything, "sub-1", "user-1").Return(nil).Once()

	require.NoError(t, service.Remove(context.Background(), "user-1", "sub-1"))
	repo.AssertExpectations(t)
}

func TestSubscriptionService_RemoveForeignLooksAbsent(t *testing.T) {
	repo := new(RepoMock)
	service := NewSubscriptionService(repo, newNoopLogger())

	// Чужая подписка: хранилище не находит пару (uid, user_uid).
	repo.On("RemoveSubscription", mock.Anything, "sub-1", "intruder").Return(repository.ErrNotFound).Once()

	err := service.Remove(context.Background(), "intruder", "sub-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
