// Package services содержит бизнес-логику получения и кеширования курсов валют.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/subtrack-app/subtrack/internal/exchange"
	"github.com/subtrack-app/subtrack/internal/lib/sl"
	"github.com/subtrack-app/subtrack/internal/models"
)

// Фиксированные значения отката при недоступном провайдере.
// Откат никогда не попадает в кеш.
const (
	FallbackUSDJPY = 130
	FallbackJPYUSD = 0.0077
)

// rateTTL — срок жизни закешированного курса.
const rateTTL = time.Hour

// Provider описывает клиент внешнего провайдера курсов.
type Provider interface {
	FetchUSD(ctx context.Context) (*exchange.Rates, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// RateService отдает пару курсов USD/JPY, кешируя её на час
// в разрезе сессии клиента.
type RateService struct {
	provider Provider
	cache    Cache
	log      *slog.Logger
}

// NewRateService создает новый экземпляр RateService.
func NewRateService(provider Provider, cache Cache, log *slog.Logger) *RateService {
	return &RateService{
		provider: provider,
		cache:    cache,
		log:      log,
	}
}

// Get возвращает курс для сессии sessionToken. Закешированное значение
// отдается без изменений до истечения TTL; при промахе курс запрашивается
// у провайдера и кешируется. Ошибка провайдера возвращает фиксированный
// откат вместе с самой ошибкой, кеш при этом не трогается.
func (s *RateService) Get(ctx context.Context, sessionToken string) (*models.ExchangeRate, error) {
	cacheKey := "rate:" + sessionToken

	var cached models.ExchangeRate
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read rate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	res, err := s.provider.FetchUSD(ctx)
	if err != nil {
		s.log.Error("exchange rate provider failed", sl.Err(err))
		return &models.ExchangeRate{
			USDJPY: FallbackUSDJPY,
			JPYUSD: FallbackJPYUSD,
		}, err
	}

	rate := &models.ExchangeRate{
		USDJPY:    res.JPY,
		JPYUSD:    1 / res.JPY,
		Timestamp: res.UpdatedUnix,
		Date:      res.UpdatedUTC,
	}
	if err := s.cache.Set(cacheKey, rate, rateTTL); err != nil {
		s.log.Warn("failed to cache exchange rate", slog.String("key", cacheKey), sl.Err(err))
	}
	return rate, nil
}
