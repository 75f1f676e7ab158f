package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт клиент провайдера курсов. apiURL — базовый адрес API,
// пустая строка не допускается конфигом.
func NewClient(apiURL string) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchUSD запрашивает актуальные курсы с базой USD и извлекает пару USD/JPY.
// Любой не-200 статус, сетевая ошибка или неразборчивый ответ — ошибка;
// политика отката на фиксированные значения живёт уровнем выше.
func (c *Client) FetchUSD(ctx context.Context) (*Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/latest/USD", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var providerResp providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&providerResp); err != nil {
		return nil, err
	}
	if providerResp.Result != "" && providerResp.Result != "success" {
		return nil, errors.New("provider result: " + providerResp.Result)
	}
	jpy, ok := providerResp.Rates["JPY"]
	if !ok || jpy <= 0 {
		return nil, errors.New("JPY rate missing in provider response")
	}

	return &Rates{
		JPY:         jpy,
		UpdatedUnix: providerResp.TimeLastUpdateUnix,
		UpdatedUTC:  providerResp.TimeLastUpdateUTC,
	}, nil
}
