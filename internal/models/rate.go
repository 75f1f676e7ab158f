package models

// ExchangeRate — пара курсов USD/JPY, отдаваемая клиенту и хранимая в кеше.
// Timestamp и Date приходят от внешнего провайдера курсов.
type ExchangeRate struct {
	USDJPY    float64 `json:"USD_JPY"`
	JPYUSD    float64 `json:"JPY_USD"`
	Timestamp int64   `json:"timestamp"`
	Date      string  `json:"date"`
}
